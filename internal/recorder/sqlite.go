package recorder

import (
	"database/sql"
	"fmt"
	"math"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/contactkeval/bsm-pricer/internal/logger"
	"github.com/contactkeval/bsm-pricer/internal/pricing"
)

// SQLiteRecorder appends quotes to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex

	now func() time.Time
}

// StoredQuote is a quote read back from history.
type StoredQuote struct {
	ID        int64
	Timestamp time.Time
	pricing.Quote
}

// NewSQLiteRecorder opens (or creates) the database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, now: time.Now}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	logger.Infof("quote history opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	return r.exec(migrations)
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS quotes (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp   INTEGER NOT NULL,
		option_type TEXT NOT NULL,
		spot        REAL,
		strike      REAL,
		maturity    REAL,
		rate        REAL,
		volatility  REAL,
		price       REAL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_quotes_ts ON quotes(timestamp)`,
}

func (r *SQLiteRecorder) exec(stmts []string) error {
	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %.40q: %w", s, err)
		}
	}
	return nil
}

// RecordQuote inserts q. Non-finite values are stored as NULL.
func (r *SQLiteRecorder) RecordQuote(q *pricing.Quote) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO quotes
		(timestamp, option_type, spot, strike, maturity, rate, volatility, price)
		VALUES (?,?,?,?,?,?,?,?)`,
		r.now().Unix(), string(q.Type),
		nullable(q.S), nullable(q.K), nullable(q.T),
		nullable(q.R), nullable(q.Sigma), nullable(q.Price),
	)
	if err != nil {
		return fmt.Errorf("insert quote: %w", err)
	}
	logger.Debugf("recorded %s quote price=%f", q.Type, q.Price)
	return nil
}

// Recent returns up to n quotes, newest first.
func (r *SQLiteRecorder) Recent(n int) ([]StoredQuote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT id, timestamp, option_type, spot, strike, maturity, rate, volatility, price
		FROM quotes ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query quotes: %w", err)
	}
	defer rows.Close()

	var out []StoredQuote
	for rows.Next() {
		var (
			sq                     StoredQuote
			ts                     int64
			optType                string
			s, k, t, rate, vol, px sql.NullFloat64
		)
		if err := rows.Scan(&sq.ID, &ts, &optType, &s, &k, &t, &rate, &vol, &px); err != nil {
			return nil, fmt.Errorf("scan quote: %w", err)
		}
		sq.Timestamp = time.Unix(ts, 0)
		sq.Type = pricing.OptionType(optType)
		sq.S, sq.K, sq.T = orNaN(s), orNaN(k), orNaN(t)
		sq.R, sq.Sigma, sq.Price = orNaN(rate), orNaN(vol), orNaN(px)
		out = append(out, sq)
	}
	return out, rows.Err()
}

// Close closes the underlying database.
func (r *SQLiteRecorder) Close() error {
	logger.Infof("closing quote history")
	return r.db.Close()
}

func nullable(v float64) sql.NullFloat64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}

func orNaN(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}
	return v.Float64
}
