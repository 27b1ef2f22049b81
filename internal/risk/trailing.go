package risk

import (
	"context"
	"fmt"

	"ignitionBot/internal/domain"
	"ignitionBot/internal/ports"
)

// TrailingStopConfig holds configuration for the trailing-stop manager.
type TrailingStopConfig struct {
	ATRStopMultiple float64 // Stop distance in ATR multiples (e.g., 2.0)
}

// TrailingStopManager recomputes the protective stop of an open position on
// every bar from current volatility, and decides exits. The stop only ever
// ratchets in the direction favorable to the position.
type TrailingStopManager struct {
	cfg    TrailingStopConfig
	logger ports.Logger
}

// NewTrailingStopManager creates a new trailing-stop manager instance.
func NewTrailingStopManager(cfg TrailingStopConfig, logger ports.Logger) (*TrailingStopManager, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is required for trailing-stop manager")
	}
	if cfg.ATRStopMultiple <= 0 {
		return nil, fmt.Errorf("ATR stop multiple must be positive")
	}
	return &TrailingStopManager{cfg: cfg, logger: logger}, nil
}

// InitialStop returns the protective stop for a position entered at
// entryPrice with the given ATR.
func (m *TrailingStopManager) InitialStop(entryPrice, atr float64, dir domain.Direction) float64 {
	if dir == domain.Long {
		return entryPrice - atr*m.cfg.ATRStopMultiple
	}
	return entryPrice + atr*m.cfg.ATRStopMultiple
}

// Update recomputes the trailing stop of pos for the given bar and reports
// whether the bar crossed it. On exit the returned price is the stop level
// itself, not the bar close. An undefined ATR retains the previous stop
// unchanged; protection is never widened or dropped because of missing data.
func (m *TrailingStopManager) Update(ctx context.Context, pos *domain.Position, bar *domain.Bar, atr float64) (exited bool, exitPrice float64) {
	if domain.Defined(atr) {
		if pos.Direction == domain.Long {
			candidate := bar.Close - atr*m.cfg.ATRStopMultiple
			if candidate > pos.TrailingStop {
				pos.TrailingStop = candidate
			}
		} else {
			candidate := bar.Close + atr*m.cfg.ATRStopMultiple
			if candidate < pos.TrailingStop {
				pos.TrailingStop = candidate
			}
		}
	} else {
		m.logger.Debug(ctx, "ATR undefined, retaining trailing stop",
			map[string]interface{}{"trailingStop": pos.TrailingStop, "openTime": bar.OpenTime})
	}

	if pos.Direction == domain.Long && bar.Low <= pos.TrailingStop {
		return true, pos.TrailingStop
	}
	if pos.Direction == domain.Short && bar.High >= pos.TrailingStop {
		return true, pos.TrailingStop
	}
	return false, 0
}
