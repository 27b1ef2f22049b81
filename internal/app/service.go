package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"ignitionBot/config"
	"ignitionBot/internal/domain"
	"ignitionBot/internal/indicators"
	"ignitionBot/internal/ports"
	"ignitionBot/internal/risk"
	"ignitionBot/internal/strategy"
	"ignitionBot/internal/strategy/analytics"
	"ignitionBot/internal/strategy/backtesting"
	"ignitionBot/internal/utils"
)

// BacktestService orchestrates a full backtest run: loading bars, building
// the indicator frame, replaying the strategy and persisting the results.
type BacktestService struct {
	cfg       *config.Config
	params    *config.Params
	logger    ports.Logger
	source    ports.MarketDataSource
	barRepo   ports.BarRepository
	tradeRepo ports.TradeRepository
}

// RunSummary bundles everything a completed run produced.
type RunSummary struct {
	RunID   string
	Result  *backtesting.Result
	Metrics *analytics.PerformanceMetrics
}

// NewBacktestService creates a new application service instance.
func NewBacktestService(
	cfg *config.Config,
	params *config.Params,
	logger ports.Logger,
	source ports.MarketDataSource,
	barRepo ports.BarRepository,
	tradeRepo ports.TradeRepository,
) (*BacktestService, error) {
	if cfg == nil || params == nil || logger == nil || barRepo == nil || tradeRepo == nil {
		return nil, fmt.Errorf("missing required dependencies for BacktestService")
	}
	// The market data source is optional; runs over already-persisted bars
	// work without one.
	return &BacktestService{
		cfg:       cfg,
		params:    params,
		logger:    logger,
		source:    source,
		barRepo:   barRepo,
		tradeRepo: tradeRepo,
	}, nil
}

// Run executes one backtest over the configured symbol, interval and range.
func (s *BacktestService) Run(ctx context.Context) (*RunSummary, error) {
	bars, err := s.loadBars(ctx)
	if err != nil {
		return nil, err
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("no bars available for %s %s", s.cfg.Symbol, s.cfg.Interval)
	}
	s.logger.Info(ctx, "Bars loaded", map[string]interface{}{
		"symbol":   s.cfg.Symbol,
		"interval": s.cfg.Interval,
		"count":    len(bars),
		"first":    bars[0].OpenTime,
		"last":     bars[len(bars)-1].OpenTime,
	})

	frame, err := indicators.BuildFrame(bars, s.params.FrameConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to build indicator frame: %w", err)
	}

	engine, err := s.buildEngine()
	if err != nil {
		return nil, err
	}

	result, err := engine.Run(ctx, bars, frame)
	if err != nil {
		return nil, fmt.Errorf("backtest run failed: %w", err)
	}

	metrics := analytics.AnalyzePerformance(result.Trades, s.params.InitialCapital)
	runID := uuid.NewString()

	if err := s.persistResults(ctx, runID, result); err != nil {
		return nil, err
	}
	if err := s.writeReports(ctx, runID, result); err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "Backtest complete", map[string]interface{}{
		"runID":       runID,
		"trades":      metrics.TotalTrades,
		"winRate":     metrics.WinRate,
		"totalReturn": metrics.TotalReturn,
		"maxDrawdown": metrics.MaxDrawdown,
		"finalEquity": metrics.FinalEquity,
	})

	return &RunSummary{RunID: runID, Result: result, Metrics: metrics}, nil
}

// loadBars prefers locally persisted bars and falls back to the market data
// source, persisting whatever it fetched for the next run.
func (s *BacktestService) loadBars(ctx context.Context) ([]*domain.Bar, error) {
	if s.cfg.HasDateRange() {
		bars, err := s.barRepo.FindBars(ctx, s.cfg.Symbol, s.cfg.Interval, s.cfg.StartDate, s.cfg.EndDate)
		if err != nil {
			return nil, fmt.Errorf("failed to load bars from repository: %w", err)
		}
		if len(bars) > 0 {
			return bars, nil
		}
		if s.source == nil {
			return nil, fmt.Errorf("%w: no persisted bars for %s %s and no market data source configured", ports.ErrSourceUnavailable, s.cfg.Symbol, s.cfg.Interval)
		}
		bars, err = s.source.GetBarsRange(ctx, s.cfg.Symbol, s.cfg.Interval, s.cfg.StartDate, s.cfg.EndDate)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch bar range: %w", err)
		}
		if err := s.barRepo.SaveBars(ctx, bars); err != nil {
			return nil, fmt.Errorf("failed to persist fetched bars: %w", err)
		}
		return bars, nil
	}

	if s.source == nil {
		return nil, fmt.Errorf("%w: no date range configured", ports.ErrSourceUnavailable)
	}
	bars, err := s.source.GetBars(ctx, s.cfg.Symbol, s.cfg.Interval, s.cfg.FetchLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bars: %w", err)
	}
	if err := s.barRepo.SaveBars(ctx, bars); err != nil {
		return nil, fmt.Errorf("failed to persist fetched bars: %w", err)
	}
	return bars, nil
}

func (s *BacktestService) buildEngine() (*backtesting.Engine, error) {
	detector, err := strategy.NewDetector(s.params.DetectorConfig(), s.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create detector: %w", err)
	}
	confirmer, err := strategy.NewConfirmer(s.params.ConfirmerConfig(), s.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create confirmer: %w", err)
	}
	stops, err := risk.NewTrailingStopManager(s.params.TrailingStopConfig(), s.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create trailing-stop manager: %w", err)
	}
	engine, err := backtesting.NewEngine(backtesting.EngineConfig{
		Symbol:          s.cfg.Symbol,
		EntryOnNextOpen: s.params.EntryOnNextOpen,
		InitialCapital:  s.params.InitialCapital,
		CommissionRate:  s.params.CommissionRate,
	}, detector, confirmer, stops, s.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create backtest engine: %w", err)
	}
	return engine, nil
}

func (s *BacktestService) persistResults(ctx context.Context, runID string, result *backtesting.Result) error {
	for _, trade := range result.Trades {
		if _, err := s.tradeRepo.CreateTrade(ctx, runID, trade); err != nil {
			return fmt.Errorf("failed to persist trade for position %d: %w", trade.PositionID, err)
		}
	}
	if err := s.tradeRepo.SaveEquityCurve(ctx, runID, result.EquityCurve); err != nil {
		return fmt.Errorf("failed to persist equity curve: %w", err)
	}
	return nil
}

func (s *BacktestService) writeReports(ctx context.Context, runID string, result *backtesting.Result) error {
	if err := os.MkdirAll(s.cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %q: %w", s.cfg.OutputDir, err)
	}
	tradesPath := filepath.Join(s.cfg.OutputDir, fmt.Sprintf("trades_%s.csv", runID))
	if err := utils.WriteTradesToCSV(result.Trades, tradesPath); err != nil {
		return fmt.Errorf("failed to write trades report: %w", err)
	}
	equityPath := filepath.Join(s.cfg.OutputDir, fmt.Sprintf("equity_%s.csv", runID))
	if err := utils.WriteEquityCurveToCSV(result.EquityCurve, equityPath); err != nil {
		return fmt.Errorf("failed to write equity report: %w", err)
	}
	s.logger.Debug(ctx, "Reports written", map[string]interface{}{
		"trades": tradesPath,
		"equity": equityPath,
	})
	return nil
}
