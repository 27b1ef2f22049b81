package indicators

import (
	"math"

	"ignitionBot/internal/domain"
)

// ATR computes the Average True Range series using exponential smoothing of
// the true range. The first period entries are NaN (warm-up).
func ATR(bars []*domain.Bar, period int) []float64 {
	out := nanSeries(len(bars))
	if len(bars) == 0 || period <= 0 {
		return out
	}

	trueRanges := make([]float64, len(bars))
	trueRanges[0] = bars[0].High - bars[0].Low
	for i := 1; i < len(bars); i++ {
		high := bars[i].High
		low := bars[i].Low
		prevClose := bars[i-1].Close

		// True Range is the greatest of:
		// 1. Current High - Current Low
		// 2. |Current High - Previous Close|
		// 3. |Current Low - Previous Close|
		tr1 := high - low
		tr2 := math.Abs(high - prevClose)
		tr3 := math.Abs(low - prevClose)
		trueRanges[i] = math.Max(tr1, math.Max(tr2, tr3))
	}

	multiplier := 2.0 / float64(period+1)
	atr := trueRanges[0]
	for i := 1; i < len(bars); i++ {
		atr = (trueRanges[i]-atr)*multiplier + atr
		if i >= period {
			out[i] = atr
		}
	}
	return out
}

// ATRRatio divides each ATR value by the rolling mean of ATR over window
// bars. Values below 1 indicate volatility contraction relative to the recent
// average; the consolidation detector compares this ratio against its
// threshold factor.
func ATRRatio(atr []float64, window int) []float64 {
	avg := SMA(atr, window)
	out := nanSeries(len(atr))
	for i := range atr {
		if math.IsNaN(atr[i]) || math.IsNaN(avg[i]) || avg[i] == 0 {
			continue
		}
		out[i] = atr[i] / avg[i]
	}
	return out
}
