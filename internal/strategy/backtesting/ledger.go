package backtesting

import (
	"fmt"

	"ignitionBot/internal/domain"
	"ignitionBot/internal/ports"
)

// Ledger is the append-only record of closed trades produced by a backtest
// run. Equity is not stored per trade; the curve is re-derived from the
// recorded returns so the two can never disagree.
type Ledger struct {
	initialCapital float64
	commissionRate float64
	trades         []*domain.Trade
	seen           map[int64]bool
}

// NewLedger creates an empty ledger.
func NewLedger(initialCapital, commissionRate float64) (*Ledger, error) {
	if initialCapital <= 0 {
		return nil, fmt.Errorf("initial capital must be positive")
	}
	if commissionRate < 0 {
		return nil, fmt.Errorf("commission rate cannot be negative")
	}
	return &Ledger{
		initialCapital: initialCapital,
		commissionRate: commissionRate,
		seen:           make(map[int64]bool),
	}, nil
}

// Record appends a closed trade. Each position may settle exactly once; a
// second trade for the same position ID is rejected.
func (l *Ledger) Record(trade *domain.Trade) error {
	if trade == nil {
		return fmt.Errorf("cannot record nil trade")
	}
	if l.seen[trade.PositionID] {
		return fmt.Errorf("%w: position %d already settled", ports.ErrDuplicateEntry, trade.PositionID)
	}
	l.seen[trade.PositionID] = true
	l.trades = append(l.trades, trade)
	return nil
}

// Trades returns a snapshot of the recorded trades in settlement order.
// Mutating the returned slice does not affect the ledger.
func (l *Ledger) Trades() []*domain.Trade {
	trades := make([]*domain.Trade, len(l.trades))
	copy(trades, l.trades)
	return trades
}

// EquityCurve folds the recorded net returns over the initial capital,
// producing one point per trade exit.
func (l *Ledger) EquityCurve() []domain.EquityPoint {
	curve := make([]domain.EquityPoint, 0, len(l.trades))
	equity := l.initialCapital
	for _, trade := range l.trades {
		equity *= 1 + trade.Return
		curve = append(curve, domain.EquityPoint{Time: trade.ExitTime, Equity: equity})
	}
	return curve
}

// FinalEquity returns the capital remaining after all recorded trades.
func (l *Ledger) FinalEquity() float64 {
	equity := l.initialCapital
	for _, trade := range l.trades {
		equity *= 1 + trade.Return
	}
	return equity
}

// NetReturn computes the direction-aware fractional return of a round trip,
// net of commission on both legs.
func (l *Ledger) NetReturn(entryPrice, exitPrice float64, dir domain.Direction) float64 {
	gross := (exitPrice - entryPrice) / entryPrice
	if dir == domain.Short {
		gross = -gross
	}
	return gross - 2*l.commissionRate
}
