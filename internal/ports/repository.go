package ports

import (
	"context"
	"time"

	"ignitionBot/internal/domain"
)

// BarRepository defines the interface for storing and retrieving historical bars.
type BarRepository interface {
	// SaveBars persists a batch of bars. Existing (symbol, interval, open_time)
	// rows are replaced.
	SaveBars(ctx context.Context, bars []*domain.Bar) error
	// FindBars retrieves bars for a symbol/interval between start and end,
	// ordered by open time ascending.
	FindBars(ctx context.Context, symbol, interval string, start, end time.Time) ([]*domain.Bar, error)
}

// TradeRepository defines the interface for storing and retrieving completed
// backtest trades and their equity curve.
type TradeRepository interface {
	// CreateTrade saves a new trade record and returns its assigned ID.
	CreateTrade(ctx context.Context, runID string, trade *domain.Trade) (int64, error)
	// SaveEquityCurve persists the equity curve of a backtest run.
	SaveEquityCurve(ctx context.Context, runID string, points []domain.EquityPoint) error
	// FindTradesByRun retrieves all trades of a run, ordered by exit time.
	FindTradesByRun(ctx context.Context, runID string) ([]*domain.Trade, error)
}
