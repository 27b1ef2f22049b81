package indicators

import "math"

// MACD computes the MACD line (fast EMA minus slow EMA of the input), the
// signal line (EMA of the MACD line) and the histogram (line minus signal).
func MACD(values []float64, fastPeriod, slowPeriod, signalPeriod int) (line, signal, hist []float64) {
	fast := EMA(values, fastPeriod)
	slow := EMA(values, slowPeriod)

	line = nanSeries(len(values))
	for i := range values {
		if math.IsNaN(fast[i]) || math.IsNaN(slow[i]) {
			continue
		}
		line[i] = fast[i] - slow[i]
	}

	signal = EMA(line, signalPeriod)

	hist = nanSeries(len(values))
	for i := range values {
		if math.IsNaN(line[i]) || math.IsNaN(signal[i]) {
			continue
		}
		hist[i] = line[i] - signal[i]
	}
	return line, signal, hist
}
