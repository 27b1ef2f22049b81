package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"ignitionBot/internal/domain"
	"ignitionBot/internal/indicators"
	"ignitionBot/internal/ports"
	"ignitionBot/internal/risk"
	"ignitionBot/internal/strategy"
)

// StochParams configures one stochastic oscillator of the confirmation set.
type StochParams struct {
	KPeriod    int `yaml:"k_period" validate:"required,gt=0"`
	KSmoothing int `yaml:"k_smoothing" validate:"required,gt=0"`
	DPeriod    int `yaml:"d_period" validate:"required,gt=0"`
}

// Params holds all strategy parameters, loaded from a YAML file. Every field
// must be present; there are no silent defaults at this layer.
type Params struct {
	ATRPeriod          int     `yaml:"atr_period" validate:"required,gt=0"`
	ATRThresholdFactor float64 `yaml:"atr_threshold_factor" validate:"required,gt=0"`
	ATRAvgWindow       int     `yaml:"atr_avg_window" validate:"required,gt=0"`
	ATRStopMultiple    float64 `yaml:"atr_stop_multiple" validate:"required,gt=0"`

	ROCPeriod    int     `yaml:"roc_period" validate:"required,gt=0"`
	ROCThreshold float64 `yaml:"roc_threshold" validate:"required,gt=0"`

	TrendMAPeriod         int `yaml:"trend_ma_period" validate:"required,gt=0"`
	ConsolidationLookback int `yaml:"consolidation_lookback" validate:"required,gt=0"`

	StochCrossTolerance int           `yaml:"stoch_cross_tolerance" validate:"gte=0"`
	Stochastics         []StochParams `yaml:"stochastics" validate:"required,len=4,dive"`

	MACDFastPeriod   int `yaml:"macd_fast_period" validate:"required,gt=0"`
	MACDSlowPeriod   int `yaml:"macd_slow_period" validate:"required,gt=0"`
	MACDSignalPeriod int `yaml:"macd_signal_period" validate:"required,gt=0"`

	EntryOnNextOpen bool    `yaml:"entry_on_next_open"`
	InitialCapital  float64 `yaml:"initial_capital" validate:"required,gt=0"`
	CommissionRate  float64 `yaml:"commission_rate" validate:"gte=0"`
}

// LoadParams reads and validates strategy parameters from a YAML file.
func LoadParams(path string) (*Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read params file %q: %v", ports.ErrConfigurationError, path, err)
	}

	params := &Params{}
	if err := yaml.Unmarshal(data, params); err != nil {
		return nil, fmt.Errorf("%w: failed to parse params file %q: %v", ports.ErrConfigurationError, path, err)
	}

	if err := validator.New().Struct(params); err != nil {
		return nil, fmt.Errorf("%w: params validation failed for %q: %v", ports.ErrConfigurationError, path, err)
	}
	if params.MACDFastPeriod >= params.MACDSlowPeriod {
		return nil, fmt.Errorf("%w: params validation failed for %q: macd_fast_period must be less than macd_slow_period", ports.ErrConfigurationError, path)
	}

	return params, nil
}

// FrameConfig maps the parameters onto the indicator frame builder.
func (p *Params) FrameConfig() indicators.FrameConfig {
	cfg := indicators.FrameConfig{
		ATRPeriod:        p.ATRPeriod,
		ATRAvgWindow:     p.ATRAvgWindow,
		ROCPeriod:        p.ROCPeriod,
		TrendMAPeriod:    p.TrendMAPeriod,
		MACDFastPeriod:   p.MACDFastPeriod,
		MACDSlowPeriod:   p.MACDSlowPeriod,
		MACDSignalPeriod: p.MACDSignalPeriod,
	}
	for i := 0; i < domain.NumStochastics; i++ {
		cfg.Stochastics[i] = indicators.StochConfig{
			KPeriod:    p.Stochastics[i].KPeriod,
			KSmoothing: p.Stochastics[i].KSmoothing,
			DPeriod:    p.Stochastics[i].DPeriod,
		}
	}
	return cfg
}

// DetectorConfig maps the parameters onto the breakout detector.
func (p *Params) DetectorConfig() strategy.DetectorConfig {
	return strategy.DetectorConfig{
		ATRThresholdFactor:    p.ATRThresholdFactor,
		ROCThreshold:          p.ROCThreshold,
		ConsolidationLookback: p.ConsolidationLookback,
	}
}

// ConfirmerConfig maps the parameters onto the oscillator confirmer.
func (p *Params) ConfirmerConfig() strategy.ConfirmerConfig {
	return strategy.ConfirmerConfig{StochCrossTolerance: p.StochCrossTolerance}
}

// TrailingStopConfig maps the parameters onto the trailing-stop manager.
func (p *Params) TrailingStopConfig() risk.TrailingStopConfig {
	return risk.TrailingStopConfig{ATRStopMultiple: p.ATRStopMultiple}
}
