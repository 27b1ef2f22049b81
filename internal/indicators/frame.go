package indicators

import (
	"fmt"

	"ignitionBot/internal/domain"
)

// FrameConfig holds the periods needed to build a full indicator frame.
type FrameConfig struct {
	ATRPeriod     int
	ATRAvgWindow  int
	ROCPeriod     int
	TrendMAPeriod int

	Stochastics [domain.NumStochastics]StochConfig

	MACDFastPeriod   int
	MACDSlowPeriod   int
	MACDSignalPeriod int
}

// BuildFrame computes every indicator series for the bar sequence in a single
// upfront vectorized pass. No value at bar i depends on any bar after i.
func BuildFrame(bars []*domain.Bar, cfg FrameConfig) (*domain.IndicatorFrame, error) {
	if len(bars) == 0 {
		return nil, fmt.Errorf("cannot build indicator frame from empty bar series")
	}

	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}

	frame := &domain.IndicatorFrame{}
	frame.ATR = ATR(bars, cfg.ATRPeriod)
	frame.ATRRatio = ATRRatio(frame.ATR, cfg.ATRAvgWindow)
	frame.ROC = ROC(closes, cfg.ROCPeriod)
	frame.TrendSMA = SMA(closes, cfg.TrendMAPeriod)

	for i, sc := range cfg.Stochastics {
		k, d := Stochastic(bars, sc)
		frame.Stochastics[i] = domain.StochSeries{K: k, D: d}
	}

	frame.MACDLine, frame.MACDSignal, frame.MACDHist = MACD(
		closes, cfg.MACDFastPeriod, cfg.MACDSlowPeriod, cfg.MACDSignalPeriod)

	if err := frame.Validate(len(bars)); err != nil {
		return nil, fmt.Errorf("built frame failed alignment check: %w", err)
	}
	return frame, nil
}
