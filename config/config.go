package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"ignitionBot/internal/ports"
)

// Config holds all application configuration.
type Config struct {
	// Binance API (kline endpoints are public, keys optional)
	APIKey    string
	SecretKey string
	IsTestnet bool

	// Market Data
	Symbol     string
	Interval   string
	FetchLimit int       // Bars to fetch when no date range is given
	StartDate  time.Time // Optional range start (zero when unset)
	EndDate    time.Time // Optional range end (zero when unset)

	// Strategy parameters file
	ParamsPath string

	// Database
	DBPath string

	// Output
	OutputDir string

	// Logging
	LogLevel  string
	LogFormat string
}

// LoadConfig loads configuration from environment variables (.env file).
func LoadConfig() (*Config, error) {
	// Load .env file, but don't fail if it doesn't exist (allow pure env vars)
	_ = godotenv.Load()

	cfg := &Config{}
	var err error
	var errs []string // Collect validation errors

	cfg.APIKey = getEnv("BINANCE_API_KEY", "")
	cfg.SecretKey = getEnv("BINANCE_API_SECRET", "")
	cfg.IsTestnet = getEnvAsBool("IS_TESTNET", false)

	cfg.Symbol = getEnv("SYMBOL", "ETHUSDT")
	if cfg.Symbol == "" {
		errs = append(errs, "SYMBOL must be set")
	}

	cfg.Interval = getEnv("INTERVAL", "1h")
	if cfg.Interval == "" {
		errs = append(errs, "INTERVAL must be set")
	}

	cfg.FetchLimit = getEnvAsInt("FETCH_LIMIT", 1000)
	if cfg.FetchLimit <= 0 {
		errs = append(errs, "FETCH_LIMIT must be positive")
	}

	cfg.StartDate, err = getEnvAsTime("START_DATE")
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid START_DATE: %v", err))
	}
	cfg.EndDate, err = getEnvAsTime("END_DATE")
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid END_DATE: %v", err))
	}
	if !cfg.StartDate.IsZero() && !cfg.EndDate.IsZero() && !cfg.StartDate.Before(cfg.EndDate) {
		errs = append(errs, "START_DATE must be before END_DATE")
	}

	cfg.ParamsPath = getEnv("PARAMS_PATH", "./config/params.yaml")
	if cfg.ParamsPath == "" {
		errs = append(errs, "PARAMS_PATH must be set")
	}

	cfg.DBPath = getEnv("DB_PATH", "./data/ignition_bot.db")
	if cfg.DBPath == "" {
		errs = append(errs, "DB_PATH must be set")
	}

	cfg.OutputDir = getEnv("OUTPUT_DIR", "./data")
	if cfg.OutputDir == "" {
		errs = append(errs, "OUTPUT_DIR must be set")
	}

	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.LogFormat = getEnv("LOG_FORMAT", "console")

	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ports.ErrConfigurationError, strings.Join(errs, "; "))
	}

	return cfg, nil
}

// HasDateRange reports whether both range bounds were provided.
func (c *Config) HasDateRange() bool {
	return !c.StartDate.IsZero() && !c.EndDate.IsZero()
}

// --- Env Var Helpers ---

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsTime parses a timestamp env var, accepting RFC3339 or a bare date.
func getEnvAsTime(key string) (time.Time, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, valueStr); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", valueStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q is not RFC3339 or YYYY-MM-DD", valueStr)
	}
	return t, nil
}
