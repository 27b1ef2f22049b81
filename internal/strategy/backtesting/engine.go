package backtesting

import (
	"context"
	"fmt"

	"ignitionBot/internal/domain"
	"ignitionBot/internal/ports"
	"ignitionBot/internal/risk"
	"ignitionBot/internal/strategy"
)

// EngineConfig holds the run-level parameters of a backtest.
type EngineConfig struct {
	Symbol          string
	EntryOnNextOpen bool // Fill at the next bar's open instead of the signal bar's close
	InitialCapital  float64
	CommissionRate  float64
}

// Result is the output of a completed backtest run.
type Result struct {
	Trades      []*domain.Trade
	EquityCurve []domain.EquityPoint
	FinalEquity float64
}

// pendingEntry is a signal awaiting its fill on the next bar's open.
type pendingEntry struct {
	direction domain.Direction
	atr       float64 // ATR at the signal bar, used for the initial stop
}

// Engine replays a bar series through the detector, confirmer and
// trailing-stop manager, producing a trade ledger and equity curve. A single
// pass over the same inputs is fully deterministic.
type Engine struct {
	cfg       EngineConfig
	detector  *strategy.Detector
	confirmer *strategy.Confirmer
	stops     *risk.TrailingStopManager
	logger    ports.Logger
}

// NewEngine creates a backtest engine instance.
func NewEngine(cfg EngineConfig, detector *strategy.Detector, confirmer *strategy.Confirmer, stops *risk.TrailingStopManager, logger ports.Logger) (*Engine, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is required for backtest engine")
	}
	if detector == nil {
		return nil, fmt.Errorf("detector is required for backtest engine")
	}
	if confirmer == nil {
		return nil, fmt.Errorf("confirmer is required for backtest engine")
	}
	if stops == nil {
		return nil, fmt.Errorf("trailing-stop manager is required for backtest engine")
	}
	if cfg.Symbol == "" {
		return nil, fmt.Errorf("symbol is required for backtest engine")
	}
	if cfg.InitialCapital <= 0 {
		return nil, fmt.Errorf("initial capital must be positive")
	}
	if cfg.CommissionRate < 0 {
		return nil, fmt.Errorf("commission rate cannot be negative")
	}
	return &Engine{
		cfg:       cfg,
		detector:  detector,
		confirmer: confirmer,
		stops:     stops,
		logger:    logger,
	}, nil
}

// Run replays bars against frame and returns the resulting trades and equity
// curve. The bar series must be strictly increasing in open time and the
// frame must cover it exactly.
func (e *Engine) Run(ctx context.Context, bars []*domain.Bar, frame *domain.IndicatorFrame) (*Result, error) {
	if err := domain.ValidateBars(bars); err != nil {
		return nil, fmt.Errorf("invalid bar series: %w", err)
	}
	if err := frame.Validate(len(bars)); err != nil {
		return nil, fmt.Errorf("invalid indicator frame: %w", err)
	}

	ledger, err := NewLedger(e.cfg.InitialCapital, e.cfg.CommissionRate)
	if err != nil {
		return nil, err
	}

	var (
		pos     *domain.Position
		pending *pendingEntry
		nextID  int64 = 1
	)

	e.logger.Info(ctx, "starting backtest run", map[string]interface{}{
		"symbol":          e.cfg.Symbol,
		"bars":            len(bars),
		"entryOnNextOpen": e.cfg.EntryOnNextOpen,
		"initialCapital":  e.cfg.InitialCapital,
	})

	for i, bar := range bars {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("backtest canceled: %w", ctx.Err())
		default:
		}

		// Fill a pending signal at this bar's open before anything else.
		if pending != nil {
			pos = e.openPosition(ctx, nextID, pending.direction, bar.Open, pending.atr, bar)
			nextID++
			pending = nil
		}

		// Exits are evaluated before entries, and a bar that closes a
		// position never opens a new one.
		exitedThisBar := false
		if pos != nil {
			exited, exitPrice := e.stops.Update(ctx, pos, bar, frame.ATR[i])
			if exited {
				if err := e.closePosition(ctx, ledger, pos, exitPrice, bar, domain.ExitReasonStop); err != nil {
					return nil, err
				}
				pos = nil
				exitedThisBar = true
			}
		}

		if pos != nil || exitedThisBar {
			continue
		}

		ignition := e.detector.Ignition(bar, frame, i)
		if ignition == domain.IgnitionNone {
			continue
		}
		confirmation := e.confirmer.Evaluate(frame, i)
		var dir domain.Direction
		switch {
		case ignition == domain.IgnitionBullish && confirmation == domain.ConfirmBullish:
			dir = domain.Long
		case ignition == domain.IgnitionBearish && confirmation == domain.ConfirmBearish:
			dir = domain.Short
		default:
			continue
		}
		if !domain.Defined(frame.ATR[i]) {
			e.logger.Debug(ctx, "signal skipped, ATR undefined", map[string]interface{}{
				"openTime": bar.OpenTime, "direction": dir,
			})
			continue
		}

		if e.cfg.EntryOnNextOpen {
			// A signal on the last bar has no bar left to fill on.
			if i == len(bars)-1 {
				e.logger.Debug(ctx, "signal on final bar dropped", map[string]interface{}{
					"openTime": bar.OpenTime, "direction": dir,
				})
				continue
			}
			pending = &pendingEntry{direction: dir, atr: frame.ATR[i]}
			continue
		}

		pos = e.openPosition(ctx, nextID, dir, bar.Close, frame.ATR[i], bar)
		nextID++
	}

	// Any position still open is settled at the final close.
	if pos != nil {
		last := bars[len(bars)-1]
		if err := e.closePosition(ctx, ledger, pos, last.Close, last, domain.ExitReasonEndOfData); err != nil {
			return nil, err
		}
	}

	result := &Result{
		Trades:      ledger.Trades(),
		EquityCurve: ledger.EquityCurve(),
		FinalEquity: ledger.FinalEquity(),
	}
	e.logger.Info(ctx, "backtest run complete", map[string]interface{}{
		"symbol":      e.cfg.Symbol,
		"trades":      len(result.Trades),
		"finalEquity": result.FinalEquity,
	})
	return result, nil
}

func (e *Engine) openPosition(ctx context.Context, id int64, dir domain.Direction, entryPrice, atr float64, bar *domain.Bar) *domain.Position {
	stop := e.stops.InitialStop(entryPrice, atr, dir)
	pos := &domain.Position{
		ID:           id,
		Symbol:       e.cfg.Symbol,
		Direction:    dir,
		EntryPrice:   entryPrice,
		Quantity:     e.cfg.InitialCapital / entryPrice,
		InitialStop:  stop,
		TrailingStop: stop,
		EntryTime:    bar.OpenTime,
		Status:       domain.StatusOpen,
	}
	e.logger.Debug(ctx, "position opened", map[string]interface{}{
		"positionID": id,
		"direction":  dir,
		"entryPrice": entryPrice,
		"stop":       stop,
		"openTime":   bar.OpenTime,
	})
	return pos
}

func (e *Engine) closePosition(ctx context.Context, ledger *Ledger, pos *domain.Position, exitPrice float64, bar *domain.Bar, reason domain.ExitReason) error {
	pos.ExitPrice = exitPrice
	pos.ExitTime = bar.CloseTime
	pos.Status = domain.StatusClosed

	trade := &domain.Trade{
		ID:         pos.ID,
		PositionID: pos.ID,
		Symbol:     pos.Symbol,
		Direction:  pos.Direction,
		EntryPrice: pos.EntryPrice,
		ExitPrice:  exitPrice,
		Quantity:   pos.Quantity,
		Return:     ledger.NetReturn(pos.EntryPrice, exitPrice, pos.Direction),
		EntryTime:  pos.EntryTime,
		ExitTime:   pos.ExitTime,
		ExitReason: reason,
	}
	if err := ledger.Record(trade); err != nil {
		return fmt.Errorf("failed to record trade: %w", err)
	}
	e.logger.Debug(ctx, "position closed", map[string]interface{}{
		"positionID": pos.ID,
		"exitPrice":  exitPrice,
		"reason":     reason,
		"return":     trade.Return,
	})
	return nil
}
