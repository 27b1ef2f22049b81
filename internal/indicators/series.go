// Package indicators computes aligned per-bar indicator series from a bar
// sequence. All series have one value per input bar; positions before an
// indicator's warm-up period hold NaN.
package indicators

import "math"

var nan = math.NaN()

// nanSeries returns a series of length n filled with NaN.
func nanSeries(n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = nan
	}
	return s
}

// SMA computes a simple moving average over values. The first period-1
// entries are NaN; a NaN inside the window propagates to the result.
func SMA(values []float64, period int) []float64 {
	out := nanSeries(len(values))
	if period <= 0 {
		return out
	}
	for i := period - 1; i < len(values); i++ {
		sum := 0.0
		defined := true
		for j := i - period + 1; j <= i; j++ {
			if math.IsNaN(values[j]) {
				defined = false
				break
			}
			sum += values[j]
		}
		if defined {
			out[i] = sum / float64(period)
		}
	}
	return out
}

// EMA computes an exponential moving average with multiplier 2/(period+1),
// seeded from the first defined value. The first period-1 entries after the
// seed are NaN (warm-up), although the recursion runs from the seed onward so
// later values match a full-history EMA.
func EMA(values []float64, period int) []float64 {
	out := nanSeries(len(values))
	if period <= 0 {
		return out
	}
	multiplier := 2.0 / float64(period+1)

	start := -1
	for i, v := range values {
		if !math.IsNaN(v) {
			start = i
			break
		}
	}
	if start < 0 {
		return out
	}

	ema := values[start]
	for i := start + 1; i < len(values); i++ {
		if math.IsNaN(values[i]) {
			continue
		}
		ema = (values[i]-ema)*multiplier + ema
		if i >= start+period-1 {
			out[i] = ema
		}
	}
	if period == 1 {
		out[start] = values[start]
	}
	return out
}

// rollingMin and rollingMax compute min/max over a trailing window.
func rollingMin(values []float64, period int) []float64 {
	out := nanSeries(len(values))
	for i := period - 1; i < len(values); i++ {
		m := values[i-period+1]
		for j := i - period + 2; j <= i; j++ {
			if values[j] < m {
				m = values[j]
			}
		}
		out[i] = m
	}
	return out
}

func rollingMax(values []float64, period int) []float64 {
	out := nanSeries(len(values))
	for i := period - 1; i < len(values); i++ {
		m := values[i-period+1]
		for j := i - period + 2; j <= i; j++ {
			if values[j] > m {
				m = values[j]
			}
		}
		out[i] = m
	}
	return out
}
