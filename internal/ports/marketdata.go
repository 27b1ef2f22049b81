package ports

import (
	"context"
	"time"

	"ignitionBot/internal/domain"
)

// MarketDataSource defines the interface for fetching historical bar data.
// This abstraction decouples the backtest pipeline from a specific provider.
type MarketDataSource interface {
	// Ping checks connectivity to the provider API.
	Ping(ctx context.Context) error

	// GetBars retrieves the most recent bars for the given symbol and interval.
	GetBars(ctx context.Context, symbol string, interval string, limit int) ([]*domain.Bar, error)

	// GetBarsRange retrieves all bars between start and end, following the
	// provider's pagination. The result is ordered by open time.
	GetBarsRange(ctx context.Context, symbol, interval string, start, end time.Time) ([]*domain.Bar, error)
}
