package strategy

import (
	"fmt"

	"ignitionBot/internal/domain"
	"ignitionBot/internal/ports"
)

// DetectorConfig holds parameters for consolidation and ignition detection.
type DetectorConfig struct {
	ATRThresholdFactor    float64 // Consolidating when ATR ratio < this factor (e.g., 0.7)
	ROCThreshold          float64 // Absolute ROC (percent) required to flag ignition
	ConsolidationLookback int     // Bars to look back for a consolidating regime before ignition
}

// Detector classifies each bar's volatility regime and flags momentum
// ignition bars. It holds no rolling state: regime is a pure function of the
// precomputed ATR ratio, and the consolidation precondition is tested by
// re-reading the frame for the preceding bars.
type Detector struct {
	cfg    DetectorConfig
	logger ports.Logger
}

// NewDetector creates a new Detector instance.
func NewDetector(cfg DetectorConfig, logger ports.Logger) (*Detector, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is required for detector")
	}
	if cfg.ATRThresholdFactor <= 0 {
		return nil, fmt.Errorf("ATR threshold factor must be positive")
	}
	if cfg.ROCThreshold <= 0 {
		return nil, fmt.Errorf("ROC threshold must be positive")
	}
	if cfg.ConsolidationLookback <= 0 {
		return nil, fmt.Errorf("consolidation lookback must be positive")
	}
	return &Detector{cfg: cfg, logger: logger}, nil
}

// Regime classifies bar i. Bars with an undefined ATR ratio are classified
// Expanding: consolidation is never flagged on incomplete data.
func (d *Detector) Regime(frame *domain.IndicatorFrame, i int) domain.Regime {
	ratio := frame.ATRRatio[i]
	if domain.Defined(ratio) && ratio < d.cfg.ATRThresholdFactor {
		return domain.RegimeConsolidating
	}
	return domain.RegimeExpanding
}

// Ignition flags bar i as a momentum-ignition bar. A bullish ignition needs
// ROC at or above the threshold with the close above the trend SMA; bearish
// is symmetric. Ignition is only meaningful breaking out of quiet: at least
// one of the preceding ConsolidationLookback bars must have been
// Consolidating, otherwise the bar yields None regardless of momentum.
func (d *Detector) Ignition(bar *domain.Bar, frame *domain.IndicatorFrame, i int) domain.Ignition {
	roc := frame.ROC[i]
	sma := frame.TrendSMA[i]
	if !domain.Defined(roc) || !domain.Defined(sma) {
		return domain.IgnitionNone
	}
	if !d.consolidatedRecently(frame, i) {
		return domain.IgnitionNone
	}

	switch {
	case roc >= d.cfg.ROCThreshold && bar.Close > sma:
		return domain.IgnitionBullish
	case roc <= -d.cfg.ROCThreshold && bar.Close < sma:
		return domain.IgnitionBearish
	}
	return domain.IgnitionNone
}

// consolidatedRecently reports whether any of the ConsolidationLookback bars
// immediately before bar i was Consolidating.
func (d *Detector) consolidatedRecently(frame *domain.IndicatorFrame, i int) bool {
	for j := i - 1; j >= 0 && j >= i-d.cfg.ConsolidationLookback; j-- {
		if d.Regime(frame, j) == domain.RegimeConsolidating {
			return true
		}
	}
	return false
}
