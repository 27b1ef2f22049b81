package indicators

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"ignitionBot/internal/domain"
)

func TestStochastic(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := []*domain.Bar{
		barHLC(t0, 0, 10, 8, 9),
		barHLC(t0, 1, 11, 9, 10),
		barHLC(t0, 2, 12, 10, 11),
		barHLC(t0, 3, 12, 10, 10),
	}

	k, d := Stochastic(bars, StochConfig{KPeriod: 3, KSmoothing: 1, DPeriod: 2})

	assert.True(t, math.IsNaN(k[0]))
	assert.True(t, math.IsNaN(k[1]))
	// fastK[2] = 100 * (11-8) / (12-8) = 75
	assert.InDelta(t, 75.0, k[2], 1e-9)
	// fastK[3] = 100 * (10-9) / (12-9)
	assert.InDelta(t, 100.0/3.0, k[3], 1e-9)

	assert.True(t, math.IsNaN(d[2]))
	assert.InDelta(t, (75.0+100.0/3.0)/2.0, d[3], 1e-9)
}

func TestStochasticZeroRange(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := []*domain.Bar{
		barHLC(t0, 0, 10, 10, 10),
		barHLC(t0, 1, 10, 10, 10),
		barHLC(t0, 2, 10, 10, 10),
	}

	k, _ := Stochastic(bars, StochConfig{KPeriod: 2, KSmoothing: 1, DPeriod: 1})

	// A flat window clamps to 0 instead of dividing by zero.
	assert.InDelta(t, 0.0, k[1], 1e-9)
	assert.InDelta(t, 0.0, k[2], 1e-9)
}

func TestStochasticSmoothing(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := []*domain.Bar{
		barHLC(t0, 0, 10, 8, 9),
		barHLC(t0, 1, 11, 9, 10),
		barHLC(t0, 2, 12, 10, 11),
		barHLC(t0, 3, 12, 10, 10),
		barHLC(t0, 4, 12, 10, 11),
	}

	k, _ := Stochastic(bars, StochConfig{KPeriod: 3, KSmoothing: 2, DPeriod: 2})

	// %K is the 2-bar average of raw %K, so it lags one extra bar.
	assert.True(t, math.IsNaN(k[2]))
	assert.InDelta(t, (75.0+100.0/3.0)/2.0, k[3], 1e-9)
}
