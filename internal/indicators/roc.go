package indicators

// ROC computes the Rate of Change series: percentage change of each value
// versus the value period bars earlier. The first period entries are NaN.
func ROC(values []float64, period int) []float64 {
	out := nanSeries(len(values))
	if period <= 0 {
		return out
	}
	for i := period; i < len(values); i++ {
		if values[i-period] == 0 {
			continue
		}
		out[i] = (values[i]/values[i-period] - 1) * 100
	}
	return out
}
