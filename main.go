package main

import (
	"context"
	"log" // Use standard log only for initial fatal errors before logger is set up
	"os"

	"ignitionBot/config"
	"ignitionBot/internal/adapters/binanceclient"
	"ignitionBot/internal/adapters/logger"
	"ignitionBot/internal/adapters/sqlite"
	"ignitionBot/internal/app"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err) // Use standard log before logger is ready
	}

	// 2. Initialize Logger
	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: os.Stderr,
	})
	appLogger.Info(context.Background(), "Logger initialized", map[string]interface{}{"level": cfg.LogLevel})

	// 3. Load Strategy Parameters
	params, err := config.LoadParams(cfg.ParamsPath)
	if err != nil {
		appLogger.Error(context.Background(), err, "FATAL: Failed to load strategy parameters")
		log.Fatalf("FATAL: Failed to load strategy parameters: %v", err)
	}
	appLogger.Info(context.Background(), "Strategy parameters loaded", map[string]interface{}{"path": cfg.ParamsPath})

	// 4. Initialize Repository (Database Adapter)
	repo, err := sqlite.NewRepository(sqlite.Config{
		DBPath: cfg.DBPath,
		Logger: appLogger,
	})
	if err != nil {
		appLogger.Error(context.Background(), err, "FATAL: Failed to initialize database repository")
		log.Fatalf("FATAL: Failed to initialize database repository: %v", err)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			appLogger.Error(context.Background(), err, "Error closing database repository")
		}
	}()

	// 5. Initialize Market Data Source (Binance Adapter)
	binanceClient, err := binanceclient.New(binanceclient.Config{
		APIKey:     cfg.APIKey,
		SecretKey:  cfg.SecretKey,
		UseTestnet: cfg.IsTestnet,
		Logger:     appLogger,
	})
	if err != nil {
		appLogger.Error(context.Background(), err, "FATAL: Failed to initialize Binance client")
		log.Fatalf("FATAL: Failed to initialize Binance client: %v", err)
	}

	// 6. Initialize Application Service
	service, err := app.NewBacktestService(cfg, params, appLogger, binanceClient, repo, repo)
	if err != nil {
		appLogger.Error(context.Background(), err, "FATAL: Failed to initialize backtest service")
		log.Fatalf("FATAL: Failed to initialize backtest service: %v", err)
	}

	// 7. Run
	summary, err := service.Run(context.Background())
	if err != nil {
		appLogger.Error(context.Background(), err, "FATAL: Backtest run failed")
		log.Fatalf("FATAL: Backtest run failed: %v", err)
	}
	appLogger.Info(context.Background(), "Run finished", map[string]interface{}{
		"runID":       summary.RunID,
		"trades":      summary.Metrics.TotalTrades,
		"finalEquity": summary.Metrics.FinalEquity,
	})
}
