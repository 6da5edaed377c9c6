package recorder

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"B3Radar/internal/model"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists historical data to a SQLite database.
type SQLiteRecorder struct {
	db     *sql.DB
	mu     sync.Mutex
	logger *zap.Logger
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, logger *zap.Logger) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so the API can read while a refresh writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, logger: logger.With(zap.String("component", "recorder"))}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	r.logger.Info("sqlite recorder opened", zap.String("path", dbPath))
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS refreshes (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp  INTEGER NOT NULL,
			timeframe  TEXT,
			collected  INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_refreshes_ts ON refreshes(timestamp)`,

		`CREATE TABLE IF NOT EXISTS opportunities (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			refresh_id     INTEGER NOT NULL REFERENCES refreshes(id),
			position       INTEGER NOT NULL,
			ticker         TEXT NOT NULL,
			price          REAL,
			change_pct     REAL,
			rsi            REAL,
			macd           REAL,
			adx            REAL,
			ma20           REAL,
			ma50           REAL,
			support        REAL,
			resistance     REAL,
			liquidity_rank INTEGER,
			score          INTEGER,
			composite      REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_opportunities_ticker ON opportunities(ticker)`,

		`CREATE TABLE IF NOT EXISTS alerts (
			id        TEXT PRIMARY KEY,
			timestamp INTEGER NOT NULL,
			type      TEXT NOT NULL,
			ticker    TEXT NOT NULL,
			message   TEXT,
			signals   TEXT,
			score     INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_alerts_ts ON alerts(timestamp)`,

		`CREATE TABLE IF NOT EXISTS watchlist (
			position INTEGER NOT NULL,
			ticker   TEXT PRIMARY KEY
		)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordRefresh(snap *RefreshSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`INSERT INTO refreshes (timestamp, timeframe, collected) VALUES (?,?,?)`,
		snap.At.Unix(), snap.Timeframe.String(), snap.Collected)
	if err != nil {
		return fmt.Errorf("insert refresh: %w", err)
	}
	refreshID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("refresh id: %w", err)
	}

	for i, rec := range snap.Top {
		_, err := tx.Exec(`INSERT INTO opportunities
			(refresh_id, position, ticker, price, change_pct, rsi, macd, adx, ma20, ma50,
			 support, resistance, liquidity_rank, score, composite)
			VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
			refreshID, i+1, rec.Ticker, rec.Price, rec.ChangePct, rec.RSI, rec.MACD, rec.ADX,
			rec.MA20, rec.MA50, rec.Support, rec.Resistance, rec.LiquidityRank, rec.Score, rec.Composite,
		)
		if err != nil {
			return fmt.Errorf("insert opportunity %s: %w", rec.Ticker, err)
		}
	}
	return tx.Commit()
}

func (r *SQLiteRecorder) RecordAlerts(alerts []model.Alert) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range alerts {
		signals, err := json.Marshal(a.Signals)
		if err != nil {
			return fmt.Errorf("encode signals: %w", err)
		}
		_, err = r.db.Exec(`INSERT OR IGNORE INTO alerts
			(id, timestamp, type, ticker, message, signals, score)
			VALUES (?,?,?,?,?,?,?)`,
			a.ID, a.Timestamp.UnixMilli(), string(a.Type), a.Ticker, a.Message, string(signals), a.Score,
		)
		if err != nil {
			return fmt.Errorf("insert alert %s: %w", a.ID, err)
		}
	}
	return nil
}

// RecentAlerts returns up to limit alerts, newest first.
func (r *SQLiteRecorder) RecentAlerts(limit int) ([]model.Alert, error) {
	rows, err := r.db.Query(`SELECT id, timestamp, type, ticker, message, signals, score
		FROM alerts ORDER BY timestamp DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query alerts: %w", err)
	}
	defer rows.Close()

	var out []model.Alert
	for rows.Next() {
		var (
			a       model.Alert
			ts      int64
			typ     string
			signals string
		)
		if err := rows.Scan(&a.ID, &ts, &typ, &a.Ticker, &a.Message, &signals, &a.Score); err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		a.Type = model.AlertType(typ)
		a.Timestamp = time.UnixMilli(ts)
		if err := json.Unmarshal([]byte(signals), &a.Signals); err != nil {
			return nil, fmt.Errorf("decode signals of %s: %w", a.ID, err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// SaveWatchlist replaces the stored watchlist.
func (r *SQLiteRecorder) SaveWatchlist(tickers []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM watchlist`); err != nil {
		return fmt.Errorf("clear watchlist: %w", err)
	}
	for i, t := range tickers {
		if _, err := tx.Exec(`INSERT INTO watchlist (position, ticker) VALUES (?,?)`, i, t); err != nil {
			return fmt.Errorf("insert %s: %w", t, err)
		}
	}
	return tx.Commit()
}

func (r *SQLiteRecorder) LoadWatchlist() ([]string, error) {
	rows, err := r.db.Query(`SELECT ticker FROM watchlist ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query watchlist: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("scan watchlist: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	r.logger.Info("closing sqlite recorder")
	return r.db.Close()
}
