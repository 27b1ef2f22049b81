package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"ignitionBot/internal/domain"
	"ignitionBot/internal/ports"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Repository implements the ports.BarRepository and ports.TradeRepository interfaces using SQLite.
type Repository struct {
	db     *sql.DB
	logger ports.Logger
}

// Config holds configuration for the SQLite repository.
type Config struct {
	DBPath string
	Logger ports.Logger
}

// NewRepository creates a new SQLite repository instance.
func NewRepository(cfg Config) (*Repository, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for SQLite repository")
	}
	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = "./data/ignition_bot.db" // Default path
	}

	// Create data directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		err = fmt.Errorf("failed to create data directory '%s': %w", filepath.Dir(dbPath), err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000") // WAL mode for better concurrency
	if err != nil {
		err = fmt.Errorf("failed to open database at '%s': %w: %w", dbPath, ports.ErrDBConnection, err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		err = fmt.Errorf("failed to ping database at '%s': %w: %w", dbPath, ports.ErrDBConnection, err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	// SQLite handles concurrency internally, but the Go driver benefits
	// from limiting connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	cfg.Logger.Info(context.Background(), "SQLite database connection established", map[string]interface{}{"path": dbPath})

	repo := &Repository{db: db, logger: cfg.Logger}

	if err := repo.initializeSchema(context.Background()); err != nil {
		db.Close()
		err = fmt.Errorf("failed to initialize database schema: %w", err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	return repo, nil
}

// initializeSchema creates tables if they don't exist.
func (r *Repository) initializeSchema(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS bars (
		symbol TEXT NOT NULL,
		interval TEXT NOT NULL,
		open_time TIMESTAMP NOT NULL,
		close_time TIMESTAMP NOT NULL,
		open REAL NOT NULL,
		high REAL NOT NULL,
		low REAL NOT NULL,
		close REAL NOT NULL,
		volume REAL NOT NULL,
		PRIMARY KEY (symbol, interval, open_time)
	);

	CREATE TABLE IF NOT EXISTS trade_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		position_id INTEGER NOT NULL,
		symbol TEXT NOT NULL,
		direction TEXT NOT NULL,
		entry_price REAL NOT NULL,
		exit_price REAL NOT NULL,
		quantity REAL NOT NULL,
		net_return REAL NOT NULL,
		entry_time TIMESTAMP NOT NULL,
		exit_time TIMESTAMP NOT NULL,
		exit_reason TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS equity_curve (
		run_id TEXT NOT NULL,
		time TIMESTAMP NOT NULL,
		equity REAL NOT NULL,
		PRIMARY KEY (run_id, time)
	);

	CREATE INDEX IF NOT EXISTS idx_trade_history_run_exit_time ON trade_history (run_id, exit_time);
	`
	_, err := r.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to execute schema initialization: %w: %w", ports.ErrUpdateFailed, err)
	}
	return nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	if r.db != nil {
		r.logger.Info(context.Background(), "Closing SQLite database connection")
		return r.db.Close()
	}
	return nil
}

// --- BarRepository Implementation ---

// SaveBars persists a batch of bars inside a single transaction, replacing
// duplicates on (symbol, interval, open_time).
func (r *Repository) SaveBars(ctx context.Context, bars []*domain.Bar) error {
	if len(bars) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for SaveBars: %w: %w", ports.ErrUpdateFailed, err)
	}
	defer tx.Rollback()

	const query = `
	INSERT OR REPLACE INTO bars (symbol, interval, open_time, close_time, open, high, low, close, volume)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare bar insert: %w: %w", ports.ErrUpdateFailed, err)
	}
	defer stmt.Close()

	for _, b := range bars {
		if _, err := stmt.ExecContext(ctx,
			b.Symbol, b.Interval, b.OpenTime, b.CloseTime,
			b.Open, b.High, b.Low, b.Close, b.Volume); err != nil {
			return fmt.Errorf("failed to insert bar %s %s at %s: %w: %w", b.Symbol, b.Interval, b.OpenTime, ports.ErrUpdateFailed, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit SaveBars transaction: %w: %w", ports.ErrUpdateFailed, err)
	}
	r.logger.Debug(ctx, "Bars saved", map[string]interface{}{"count": len(bars)})
	return nil
}

// FindBars retrieves bars for a symbol/interval between start and end,
// ordered by open time ascending.
func (r *Repository) FindBars(ctx context.Context, symbol, interval string, start, end time.Time) ([]*domain.Bar, error) {
	const query = `
	SELECT symbol, interval, open_time, close_time, open, high, low, close, volume
	FROM bars
	WHERE symbol = ? AND interval = ? AND open_time >= ? AND open_time < ?
	ORDER BY open_time ASC`

	rows, err := r.db.QueryContext(ctx, query, symbol, interval, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query bars for %s %s: %w: %w", symbol, interval, ports.ErrQueryFailed, err)
	}
	defer rows.Close()

	bars := make([]*domain.Bar, 0)
	for rows.Next() {
		b := &domain.Bar{}
		if err := rows.Scan(&b.Symbol, &b.Interval, &b.OpenTime, &b.CloseTime,
			&b.Open, &b.High, &b.Low, &b.Close, &b.Volume); err != nil {
			return nil, fmt.Errorf("failed to scan bar during FindBars: %w: %w", ports.ErrQueryFailed, err)
		}
		bars = append(bars, b)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bar rows: %w: %w", ports.ErrQueryFailed, err)
	}
	return bars, nil
}

// --- TradeRepository Implementation ---

// CreateTrade saves a new trade record and returns its assigned ID.
func (r *Repository) CreateTrade(ctx context.Context, runID string, trade *domain.Trade) (int64, error) {
	const query = `
	INSERT INTO trade_history (run_id, position_id, symbol, direction, entry_price, exit_price,
	                           quantity, net_return, entry_time, exit_time, exit_reason)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		runID, trade.PositionID, trade.Symbol, trade.Direction, trade.EntryPrice, trade.ExitPrice,
		trade.Quantity, trade.Return, trade.EntryTime, trade.ExitTime, trade.ExitReason)
	if err != nil {
		return 0, fmt.Errorf("failed to insert trade history for symbol %s: %w: %w", trade.Symbol, ports.ErrUpdateFailed, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for trade history %s: %w: %w", trade.Symbol, ports.ErrUpdateFailed, err)
	}
	r.logger.Debug(ctx, "Trade history created", map[string]interface{}{"tradeID": id, "runID": runID, "symbol": trade.Symbol})
	return id, nil
}

// SaveEquityCurve persists the equity curve of a backtest run.
func (r *Repository) SaveEquityCurve(ctx context.Context, runID string, points []domain.EquityPoint) error {
	if len(points) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for SaveEquityCurve: %w: %w", ports.ErrUpdateFailed, err)
	}
	defer tx.Rollback()

	const query = `INSERT OR REPLACE INTO equity_curve (run_id, time, equity) VALUES (?, ?, ?)`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare equity point insert: %w: %w", ports.ErrUpdateFailed, err)
	}
	defer stmt.Close()

	for _, p := range points {
		if _, err := stmt.ExecContext(ctx, runID, p.Time, p.Equity); err != nil {
			return fmt.Errorf("failed to insert equity point at %s: %w: %w", p.Time, ports.ErrUpdateFailed, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit SaveEquityCurve transaction: %w: %w", ports.ErrUpdateFailed, err)
	}
	r.logger.Debug(ctx, "Equity curve saved", map[string]interface{}{"runID": runID, "points": len(points)})
	return nil
}

// FindTradesByRun retrieves all trades of a run, ordered by exit time.
func (r *Repository) FindTradesByRun(ctx context.Context, runID string) ([]*domain.Trade, error) {
	const query = `
	SELECT id, position_id, symbol, direction, entry_price, exit_price,
	       quantity, net_return, entry_time, exit_time, exit_reason
	FROM trade_history
	WHERE run_id = ? ORDER BY exit_time ASC`

	rows, err := r.db.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query trade history for run %s: %w: %w", runID, ports.ErrQueryFailed, err)
	}
	defer rows.Close()

	trades := make([]*domain.Trade, 0)
	for rows.Next() {
		trade, err := scanTrade(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade history during FindTradesByRun: %w: %w", ports.ErrQueryFailed, err)
		}
		trades = append(trades, trade)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trade history rows: %w: %w", ports.ErrQueryFailed, err)
	}
	return trades, nil
}

// scanner defines an interface compatible with *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

// scanTrade scans a row into a domain.Trade struct.
func scanTrade(s scanner) (*domain.Trade, error) {
	th := &domain.Trade{}
	var direction, exitReason string
	err := s.Scan(
		&th.ID, &th.PositionID, &th.Symbol, &direction, &th.EntryPrice, &th.ExitPrice,
		&th.Quantity, &th.Return, &th.EntryTime, &th.ExitTime, &exitReason)
	if err != nil {
		return nil, err // Handle sql.ErrNoRows in the caller
	}
	th.Direction = domain.Direction(direction)
	if exitReason == "" {
		th.ExitReason = domain.ExitReasonUnknown
	} else {
		th.ExitReason = domain.ExitReason(exitReason)
	}
	return th, nil
}
