package indicators

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ignitionBot/internal/domain"
)

func testFrameConfig() FrameConfig {
	return FrameConfig{
		ATRPeriod:     3,
		ATRAvgWindow:  3,
		ROCPeriod:     2,
		TrendMAPeriod: 4,
		Stochastics: [domain.NumStochastics]StochConfig{
			{KPeriod: 3, KSmoothing: 2, DPeriod: 2},
			{KPeriod: 4, KSmoothing: 2, DPeriod: 2},
			{KPeriod: 5, KSmoothing: 2, DPeriod: 2},
			{KPeriod: 6, KSmoothing: 2, DPeriod: 2},
		},
		MACDFastPeriod:   3,
		MACDSlowPeriod:   6,
		MACDSignalPeriod: 2,
	}
}

func TestBuildFrame(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]*domain.Bar, 30)
	price := 100.0
	for i := range bars {
		bars[i] = barHLC(t0, i, price+1, price-1, price)
		price += 0.5
	}

	frame, err := BuildFrame(bars, testFrameConfig())
	require.NoError(t, err)

	assert.Equal(t, len(bars), frame.Len())
	require.NoError(t, frame.Validate(len(bars)))

	// Warm-up placement: ATR NaN through its period, defined after.
	assert.True(t, math.IsNaN(frame.ATR[2]))
	assert.False(t, math.IsNaN(frame.ATR[3]))
	assert.True(t, math.IsNaN(frame.ROC[1]))
	assert.False(t, math.IsNaN(frame.ROC[2]))
	assert.True(t, math.IsNaN(frame.TrendSMA[2]))
	assert.False(t, math.IsNaN(frame.TrendSMA[3]))

	// Deep into the series everything is defined.
	last := len(bars) - 1
	assert.True(t, domain.Defined(frame.ATRRatio[last]))
	assert.True(t, domain.Defined(frame.MACDHist[last]))
	for s := 0; s < domain.NumStochastics; s++ {
		assert.True(t, domain.Defined(frame.Stochastics[s].K[last]))
		assert.True(t, domain.Defined(frame.Stochastics[s].D[last]))
	}
}

func TestBuildFrameEmptyBars(t *testing.T) {
	_, err := BuildFrame(nil, testFrameConfig())
	assert.Error(t, err)
}

func TestBuildFrameNoLookahead(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]*domain.Bar, 30)
	price := 100.0
	for i := range bars {
		bars[i] = barHLC(t0, i, price+1, price-1, price)
		price += 0.5
	}

	full, err := BuildFrame(bars, testFrameConfig())
	require.NoError(t, err)
	truncated, err := BuildFrame(bars[:20], testFrameConfig())
	require.NoError(t, err)

	// A value at bar i must not depend on bars after i.
	for i := 0; i < 20; i++ {
		if domain.Defined(full.ATR[i]) {
			assert.InDelta(t, full.ATR[i], truncated.ATR[i], 1e-9)
		}
		if domain.Defined(full.MACDLine[i]) {
			assert.InDelta(t, full.MACDLine[i], truncated.MACDLine[i], 1e-9)
		}
	}
}
