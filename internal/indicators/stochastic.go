package indicators

import "ignitionBot/internal/domain"

// StochConfig holds one stochastic oscillator parameterization as
// (%K period, %K smoothing, %D smoothing).
type StochConfig struct {
	KPeriod    int
	KSmoothing int
	DPeriod    int
}

// Stochastic computes the slow stochastic oscillator: raw %K over the
// KPeriod high/low range, smoothed by KSmoothing to give %K, then smoothed by
// DPeriod to give %D. A zero high/low range yields 0 for that bar, matching
// the convention of clamping rather than dividing by zero.
func Stochastic(bars []*domain.Bar, cfg StochConfig) (k, d []float64) {
	highs := make([]float64, len(bars))
	lows := make([]float64, len(bars))
	closes := make([]float64, len(bars))
	for i, b := range bars {
		highs[i] = b.High
		lows[i] = b.Low
		closes[i] = b.Close
	}

	lowest := rollingMin(lows, cfg.KPeriod)
	highest := rollingMax(highs, cfg.KPeriod)

	fastK := nanSeries(len(bars))
	for i := cfg.KPeriod - 1; i < len(bars); i++ {
		rng := highest[i] - lowest[i]
		if rng == 0 {
			fastK[i] = 0
			continue
		}
		fastK[i] = 100 * (closes[i] - lowest[i]) / rng
	}

	k = SMA(fastK, cfg.KSmoothing)
	d = SMA(k, cfg.DPeriod)
	return k, d
}
