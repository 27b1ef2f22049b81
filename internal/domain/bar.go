package domain

import (
	"fmt"
	"time"
)

// Bar represents a single OHLCV candlestick. Immutable once produced.
type Bar struct {
	OpenTime  time.Time // Start time of the interval
	CloseTime time.Time // End time of the interval
	Symbol    string    // Trading symbol
	Interval  string    // Bar interval (e.g., "1m", "1h")
	Open      float64   // Opening price
	High      float64   // Highest price
	Low       float64   // Lowest price
	Close     float64   // Closing price
	Volume    float64   // Traded volume
}

// ValidateBars checks that the bar sequence has strictly increasing open
// timestamps. The backtest fold relies on this ordering; a duplicate or
// out-of-order timestamp breaks causality and is fatal.
func ValidateBars(bars []*Bar) error {
	for i := 1; i < len(bars); i++ {
		if !bars[i].OpenTime.After(bars[i-1].OpenTime) {
			return fmt.Errorf("%w: bar %d (%s) does not follow bar %d (%s)",
				ErrNonMonotonicSeries, i, bars[i].OpenTime, i-1, bars[i-1].OpenTime)
		}
	}
	return nil
}
