package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"ignitionBot/config"
	"ignitionBot/internal/adapters/binanceclient"
	"ignitionBot/internal/adapters/logger"
	"ignitionBot/internal/adapters/sqlite"
	"ignitionBot/internal/utils"
)

func main() {
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

	// 3. Initialize Market Data Source (Binance Adapter)
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

	// 5. Resolve fetch range, defaulting to the last three months
	end := cfg.EndDate
	if end.IsZero() {
		end = time.Now()
	}
	start := cfg.StartDate
	if start.IsZero() {
		start = end.AddDate(0, -3, 0)
	}

	appLogger.Info(context.Background(), "Fetching bars", map[string]interface{}{
		"symbol":   cfg.Symbol,
		"interval": cfg.Interval,
		"start":    start,
		"end":      end,
	})
	bars, err := binanceClient.GetBarsRange(context.Background(), cfg.Symbol, cfg.Interval, start, end)
	if err != nil {
		appLogger.Error(context.Background(), err, "Error fetching bars")
		log.Fatalf("Error fetching bars: %v", err)
	}
	appLogger.Info(context.Background(), "Fetched bars", map[string]interface{}{"count": len(bars)})

	// 6. Persist to the database and a CSV snapshot
	if err := repo.SaveBars(context.Background(), bars); err != nil {
		appLogger.Error(context.Background(), err, "Error saving bars to database")
		log.Fatalf("Error saving bars to database: %v", err)
	}

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		log.Fatalf("Error creating output directory: %v", err)
	}
	filename := filepath.Join(cfg.OutputDir, fmt.Sprintf("%s_%s_%s_to_%s.csv",
		cfg.Symbol, cfg.Interval, start.Format("20060102"), end.Format("20060102")))
	if err := utils.WriteBarsToCSV(bars, filename); err != nil {
		appLogger.Error(context.Background(), err, "Error writing CSV")
		log.Fatalf("Error writing CSV: %v", err)
	}
	appLogger.Info(context.Background(), "Saved bars", map[string]interface{}{"filename": filename})
}
