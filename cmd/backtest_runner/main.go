package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"ignitionBot/config"
	"ignitionBot/internal/adapters/logger"
	"ignitionBot/internal/adapters/sqlite"
	"ignitionBot/internal/app"
	"ignitionBot/internal/domain"
	"ignitionBot/internal/ports"
	"ignitionBot/internal/strategy/analytics"
	"ignitionBot/internal/utils"
)

// csvSource adapts a local CSV file to the market data port so the runner
// works fully offline.
type csvSource struct {
	bars []*domain.Bar
}

func (s *csvSource) Ping(ctx context.Context) error { return nil }

// GetBars returns the whole file; the fetch limit only applies to remote
// sources.
func (s *csvSource) GetBars(ctx context.Context, symbol, interval string, limit int) ([]*domain.Bar, error) {
	return s.bars, nil
}

func (s *csvSource) GetBarsRange(ctx context.Context, symbol, interval string, start, end time.Time) ([]*domain.Bar, error) {
	out := make([]*domain.Bar, 0, len(s.bars))
	for _, b := range s.bars {
		if !b.OpenTime.Before(start) && b.OpenTime.Before(end) {
			out = append(out, b)
		}
	}
	return out, nil
}

func main() {
	csvPath := flag.String("csv", "", "Optional CSV file of bars to backtest instead of fetching")
	flag.Parse()

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	// 2. Initialize Logger
	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: os.Stderr,
	})

	// 3. Load Strategy Parameters
	params, err := config.LoadParams(cfg.ParamsPath)
	if err != nil {
		appLogger.Error(context.Background(), err, "FATAL: Failed to load strategy parameters")
		log.Fatalf("FATAL: Failed to load strategy parameters: %v", err)
	}

	// 4. Initialize Repository (Database Adapter)
	repo, err := sqlite.NewRepository(sqlite.Config{
		DBPath: cfg.DBPath,
		Logger: appLogger,
	})
	if err != nil {
		appLogger.Error(context.Background(), err, "FATAL: Failed to initialize database repository")
		log.Fatalf("FATAL: Failed to initialize database repository: %v", err)
	}
	defer repo.Close()

	// 5. Pick the market data source: a local CSV when given, otherwise
	// whatever bars the repository already holds.
	var source ports.MarketDataSource
	if *csvPath != "" {
		bars, err := utils.ReadBarsFromCSV(*csvPath)
		if err != nil {
			appLogger.Error(context.Background(), err, "FATAL: Failed to read bars from CSV")
			log.Fatalf("FATAL: Failed to read bars from CSV: %v", err)
		}
		appLogger.Info(context.Background(), "Loaded bars from CSV", map[string]interface{}{
			"file":  *csvPath,
			"count": len(bars),
		})
		source = &csvSource{bars: bars}
	}

	// 6. Run the backtest
	service, err := app.NewBacktestService(cfg, params, appLogger, source, repo, repo)
	if err != nil {
		appLogger.Error(context.Background(), err, "FATAL: Failed to initialize backtest service")
		log.Fatalf("FATAL: Failed to initialize backtest service: %v", err)
	}

	summary, err := service.Run(context.Background())
	if err != nil {
		appLogger.Error(context.Background(), err, "FATAL: Backtest run failed")
		log.Fatalf("FATAL: Backtest run failed: %v", err)
	}

	printSummary(summary.RunID, summary.Metrics)
}

func printSummary(runID string, m *analytics.PerformanceMetrics) {
	fmt.Printf("\n=== Backtest Results (%s) ===\n", runID)
	fmt.Printf("Total Trades:        %d\n", m.TotalTrades)
	fmt.Printf("Winning Trades:      %d\n", m.WinningTrades)
	fmt.Printf("Losing Trades:       %d\n", m.LosingTrades)
	fmt.Printf("Win Rate:            %.2f%%\n", m.WinRate*100)
	fmt.Printf("Total Return:        %.2f%%\n", m.TotalReturn*100)
	fmt.Printf("Final Equity:        %.2f\n", m.FinalEquity)
	fmt.Printf("Max Drawdown:        %.2f%%\n", m.MaxDrawdown*100)
	fmt.Printf("Profit Factor:       %.2f\n", m.ProfitFactor)
	fmt.Printf("Sharpe Ratio:        %.2f\n", m.SharpeRatio)
	fmt.Printf("Expectancy:          %.4f\n", m.Expectancy)
	fmt.Printf("Avg Trade Duration:  %s\n", m.AverageTradeDuration)
	for _, mr := range m.GetMonthlyReturns() {
		fmt.Printf("  %s: %.2f%%\n", mr.Month.Format("2006-01"), mr.Return*100)
	}
}
