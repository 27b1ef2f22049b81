package strategy

import (
	"fmt"

	"ignitionBot/internal/domain"
	"ignitionBot/internal/ports"
)

// ConfirmerConfig holds parameters for the confirmation aggregator.
type ConfirmerConfig struct {
	// StochCrossTolerance is how many bars before the current one a
	// stochastic %K/%D cross may have occurred and still count (0 = the
	// cross must happen on the current bar).
	StochCrossTolerance int
}

// Confirmer combines quad-stochastic alignment and MACD crossover state into
// a single directional confirmation per bar. Requiring agreement of all five
// oscillator signals is deliberate; weakening the conjunction changes the
// strategy's risk profile and is a configuration decision, not a code fix.
type Confirmer struct {
	cfg    ConfirmerConfig
	logger ports.Logger
}

// NewConfirmer creates a new Confirmer instance.
func NewConfirmer(cfg ConfirmerConfig, logger ports.Logger) (*Confirmer, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is required for confirmer")
	}
	if cfg.StochCrossTolerance < 0 {
		return nil, fmt.Errorf("stochastic cross tolerance cannot be negative")
	}
	return &Confirmer{cfg: cfg, logger: logger}, nil
}

// Evaluate produces the confirmation state for bar i. Bullish requires all
// four stochastic pairs to have crossed %K above %D within the tolerance
// window AND the MACD line to cross above its signal on bar i itself; bearish
// is symmetric. Anything less yields None.
func (c *Confirmer) Evaluate(frame *domain.IndicatorFrame, i int) domain.Confirmation {
	stochBull := c.stochAligned(frame, i, true)
	stochBear := c.stochAligned(frame, i, false)
	macdBull := macdCrossed(frame, i, true)
	macdBear := macdCrossed(frame, i, false)

	switch {
	case stochBull && macdBull:
		return domain.ConfirmBullish
	case stochBear && macdBear:
		return domain.ConfirmBearish
	}
	return domain.ConfirmNone
}

// stochAligned reports whether every stochastic pair crossed in the given
// direction within the tolerance window and still sits on the crossed side at
// bar i. An undefined value in any pair fails the alignment.
func (c *Confirmer) stochAligned(frame *domain.IndicatorFrame, i int, bullish bool) bool {
	for p := range frame.Stochastics {
		st := &frame.Stochastics[p]
		if !domain.Defined(st.K[i]) || !domain.Defined(st.D[i]) {
			return false
		}
		if bullish && st.K[i] <= st.D[i] {
			return false
		}
		if !bullish && st.K[i] >= st.D[i] {
			return false
		}
		if !crossedWithin(st.K, st.D, i, c.cfg.StochCrossTolerance, bullish) {
			return false
		}
	}
	return true
}

// crossedWithin reports whether k crossed d in the given direction on any bar
// in (i-tolerance .. i].
func crossedWithin(k, d []float64, i, tolerance int, bullish bool) bool {
	for j := i; j >= 1 && j >= i-tolerance; j-- {
		if crossedAt(k, d, j, bullish) {
			return true
		}
	}
	return false
}

// crossedAt reports a cross of k over (or under) d exactly at bar j.
func crossedAt(k, d []float64, j int, bullish bool) bool {
	if !domain.Defined(k[j]) || !domain.Defined(d[j]) ||
		!domain.Defined(k[j-1]) || !domain.Defined(d[j-1]) {
		return false
	}
	if bullish {
		return k[j-1] <= d[j-1] && k[j] > d[j]
	}
	return k[j-1] >= d[j-1] && k[j] < d[j]
}

// macdCrossed reports a MACD line/signal cross in the given direction exactly
// at bar i.
func macdCrossed(frame *domain.IndicatorFrame, i int, bullish bool) bool {
	if i < 1 {
		return false
	}
	return crossedAt(frame.MACDLine, frame.MACDSignal, i, bullish)
}
