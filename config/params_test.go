package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ignitionBot/internal/ports"
)

func writeParamsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "params.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const validParams = `
atr_period: 14
atr_threshold_factor: 0.7
atr_avg_window: 20
atr_stop_multiple: 2.0
roc_period: 5
roc_threshold: 0.5
trend_ma_period: 100
consolidation_lookback: 3
stoch_cross_tolerance: 0
stochastics:
  - { k_period: 9, k_smoothing: 3, d_period: 3 }
  - { k_period: 14, k_smoothing: 3, d_period: 3 }
  - { k_period: 40, k_smoothing: 4, d_period: 4 }
  - { k_period: 60, k_smoothing: 10, d_period: 10 }
macd_fast_period: 12
macd_slow_period: 26
macd_signal_period: 9
entry_on_next_open: false
initial_capital: 100000
commission_rate: 0.001
`

func TestLoadParams(t *testing.T) {
	params, err := LoadParams(writeParamsFile(t, validParams))
	require.NoError(t, err)

	assert.Equal(t, 14, params.ATRPeriod)
	assert.InDelta(t, 0.7, params.ATRThresholdFactor, 1e-9)
	assert.Equal(t, 3, params.ConsolidationLookback)
	require.Len(t, params.Stochastics, 4)
	assert.Equal(t, 60, params.Stochastics[3].KPeriod)
	assert.InDelta(t, 0.001, params.CommissionRate, 1e-9)
	assert.False(t, params.EntryOnNextOpen)
}

func TestLoadParamsMissingFile(t *testing.T) {
	_, err := LoadParams(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorIs(t, err, ports.ErrConfigurationError)
}

func TestLoadParamsInvalidYAML(t *testing.T) {
	_, err := LoadParams(writeParamsFile(t, "atr_period: [not a number"))
	assert.ErrorIs(t, err, ports.ErrConfigurationError)
}

func TestLoadParamsMissingField(t *testing.T) {
	// No atr_period.
	content := `
atr_threshold_factor: 0.7
atr_avg_window: 20
atr_stop_multiple: 2.0
roc_period: 5
roc_threshold: 0.5
trend_ma_period: 100
consolidation_lookback: 3
stochastics:
  - { k_period: 9, k_smoothing: 3, d_period: 3 }
  - { k_period: 14, k_smoothing: 3, d_period: 3 }
  - { k_period: 40, k_smoothing: 4, d_period: 4 }
  - { k_period: 60, k_smoothing: 10, d_period: 10 }
macd_fast_period: 12
macd_slow_period: 26
macd_signal_period: 9
initial_capital: 100000
`
	_, err := LoadParams(writeParamsFile(t, content))
	assert.Error(t, err)
}

func TestLoadParamsWrongStochasticCount(t *testing.T) {
	content := `
atr_period: 14
atr_threshold_factor: 0.7
atr_avg_window: 20
atr_stop_multiple: 2.0
roc_period: 5
roc_threshold: 0.5
trend_ma_period: 100
consolidation_lookback: 3
stochastics:
  - { k_period: 9, k_smoothing: 3, d_period: 3 }
  - { k_period: 14, k_smoothing: 3, d_period: 3 }
macd_fast_period: 12
macd_slow_period: 26
macd_signal_period: 9
initial_capital: 100000
`
	_, err := LoadParams(writeParamsFile(t, content))
	assert.Error(t, err)
}

func TestLoadParamsMACDPeriodOrdering(t *testing.T) {
	content := `
atr_period: 14
atr_threshold_factor: 0.7
atr_avg_window: 20
atr_stop_multiple: 2.0
roc_period: 5
roc_threshold: 0.5
trend_ma_period: 100
consolidation_lookback: 3
stochastics:
  - { k_period: 9, k_smoothing: 3, d_period: 3 }
  - { k_period: 14, k_smoothing: 3, d_period: 3 }
  - { k_period: 40, k_smoothing: 4, d_period: 4 }
  - { k_period: 60, k_smoothing: 10, d_period: 10 }
macd_fast_period: 26
macd_slow_period: 12
macd_signal_period: 9
initial_capital: 100000
`
	_, err := LoadParams(writeParamsFile(t, content))
	assert.Error(t, err)
}

func TestParamsComponentConfigs(t *testing.T) {
	params, err := LoadParams(writeParamsFile(t, validParams))
	require.NoError(t, err)

	frameCfg := params.FrameConfig()
	assert.Equal(t, 14, frameCfg.ATRPeriod)
	assert.Equal(t, 100, frameCfg.TrendMAPeriod)
	assert.Equal(t, 10, frameCfg.Stochastics[3].DPeriod)

	detCfg := params.DetectorConfig()
	assert.InDelta(t, 0.5, detCfg.ROCThreshold, 1e-9)

	assert.Equal(t, 0, params.ConfirmerConfig().StochCrossTolerance)
	assert.InDelta(t, 2.0, params.TrailingStopConfig().ATRStopMultiple, 1e-9)
}
