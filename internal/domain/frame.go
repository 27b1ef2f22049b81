package domain

import (
	"fmt"
	"math"
)

// NumStochastics is the number of independently parameterized stochastic
// oscillator pairs evaluated for agreement ("quad stochastics").
const NumStochastics = 4

// StochSeries holds the %K and %D series for one stochastic configuration.
type StochSeries struct {
	K []float64
	D []float64
}

// IndicatorFrame holds per-bar aligned indicator series. Every series has one
// value per bar; values before an indicator's warm-up period are NaN and must
// never be used as trade signals.
type IndicatorFrame struct {
	ATR      []float64 // Average True Range
	ATRRatio []float64 // ATR relative to its rolling average; <1 means volatility contraction
	ROC      []float64 // Rate of Change, percent
	TrendSMA []float64 // Trend-filter simple moving average of close

	Stochastics [NumStochastics]StochSeries

	MACDLine   []float64
	MACDSignal []float64
	MACDHist   []float64
}

// Defined reports whether v carries a usable indicator value.
func Defined(v float64) bool {
	return !math.IsNaN(v)
}

// Len returns the common series length.
func (f *IndicatorFrame) Len() int {
	return len(f.ATR)
}

// Validate checks that every series is aligned with a bar sequence of length n.
// A nil frame never aligns.
func (f *IndicatorFrame) Validate(n int) error {
	if f == nil {
		return fmt.Errorf("%w: frame is nil", ErrSeriesMismatch)
	}
	check := func(name string, s []float64) error {
		if len(s) != n {
			return fmt.Errorf("%w: %s has %d values for %d bars", ErrSeriesMismatch, name, len(s), n)
		}
		return nil
	}
	named := map[string][]float64{
		"atr": f.ATR, "atr_ratio": f.ATRRatio, "roc": f.ROC, "trend_sma": f.TrendSMA,
		"macd_line": f.MACDLine, "macd_signal": f.MACDSignal, "macd_hist": f.MACDHist,
	}
	for _, name := range []string{"atr", "atr_ratio", "roc", "trend_sma", "macd_line", "macd_signal", "macd_hist"} {
		if err := check(name, named[name]); err != nil {
			return err
		}
	}
	for i, st := range f.Stochastics {
		if err := check(fmt.Sprintf("stoch_%d_k", i), st.K); err != nil {
			return err
		}
		if err := check(fmt.Sprintf("stoch_%d_d", i), st.D); err != nil {
			return err
		}
	}
	return nil
}
