package recorder

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"CoinSentinel/pkg/logger"
)

// SQLiteRecorder persists decision history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so ad-hoc reads don't block the bot's writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	logger.Info("sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS decisions (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp     INTEGER NOT NULL,
			market        TEXT NOT NULL,
			kind          TEXT NOT NULL,
			executed      INTEGER NOT NULL,
			reason        TEXT,
			price         REAL,
			quantity      REAL,
			notional      REAL,
			profit        REAL,
			profit_rate   REAL,
			rsi_current   REAL,
			rsi_previous  REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_decisions_market ON decisions(market)`,
		`CREATE TABLE IF NOT EXISTS cycles (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp        INTEGER NOT NULL,
			markets_scanned  INTEGER,
			orders_placed    INTEGER,
			error            TEXT
		)`,
	}
	for _, stmt := range stmts {
		if _, err := r.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec migration: %w", err)
		}
	}
	return nil
}

// RecordDecision inserts one decision event.
func (r *SQLiteRecorder) RecordDecision(e *DecisionEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	executed := 0
	if e.Executed {
		executed = 1
	}
	_, err := r.db.Exec(
		`INSERT INTO decisions (timestamp, market, kind, executed, reason, price,
			quantity, notional, profit, profit_rate, rsi_current, rsi_previous)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		time.Now().Unix(), e.Market, e.Kind, executed, e.Reason, e.Price,
		e.Quantity, e.Notional, e.Profit, e.ProfitRate, e.RSICurrent, e.RSIPrevious,
	)
	if err != nil {
		return fmt.Errorf("insert decision: %w", err)
	}
	return nil
}

// RecordCycle inserts one scan-cycle outcome.
func (r *SQLiteRecorder) RecordCycle(e *CycleEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(
		`INSERT INTO cycles (timestamp, markets_scanned, orders_placed, error)
		 VALUES (?, ?, ?, ?)`,
		time.Now().Unix(), e.MarketsScanned, e.OrdersPlaced, e.Err,
	)
	if err != nil {
		return fmt.Errorf("insert cycle: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (r *SQLiteRecorder) Close() error {
	return r.db.Close()
}
