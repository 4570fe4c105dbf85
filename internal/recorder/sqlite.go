package recorder

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	"CryptoPulse/internal/model"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists evaluations to a SQLite database.
type SQLiteRecorder struct {
	db     *sql.DB
	mu     sync.Mutex
	logger *logrus.Logger
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, logger *logrus.Logger) (*SQLiteRecorder, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, logger: logger}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	logger.WithField("path", dbPath).Info("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS analyses (
			id          TEXT PRIMARY KEY,
			timestamp   INTEGER NOT NULL,
			symbol      TEXT NOT NULL,
			timeframe   TEXT NOT NULL,
			class       TEXT,
			close       REAL,
			rsi         REAL,
			sma         REAL,
			signal      TEXT,
			severity    INTEGER,
			sub_signals TEXT,
			sentiment   INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_ts ON analyses(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_target ON analyses(symbol, timeframe)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

type subSignalRow struct {
	Name      string `json:"name"`
	Label     string `json:"label"`
	Favorable bool   `json:"favorable"`
}

func (r *SQLiteRecorder) RecordAnalysis(a *model.Analysis) error {
	rows := make([]subSignalRow, len(a.Signal.SubSignals))
	for i, s := range a.Signal.SubSignals {
		rows[i] = subSignalRow{Name: s.Name, Label: s.Label, Favorable: s.Favorable}
	}
	subs, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("encode sub-signals: %w", err)
	}

	var class string
	if a.Snapshot != nil {
		class = string(a.Snapshot.Class)
	}
	var sentiment sql.NullInt64
	if a.Sentiment != nil {
		sentiment = sql.NullInt64{Int64: int64(a.Sentiment.Value), Valid: true}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	_, err = r.db.Exec(`INSERT INTO analyses
		(id, timestamp, symbol, timeframe, class, close, rsi, sma, signal, severity, sub_signals, sentiment)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		a.ID, a.EvaluatedAt.Unix(), a.Symbol, string(a.Timeframe), class,
		a.Signal.Close, a.Signal.RSI, a.Signal.SMA,
		string(a.Signal.Signal.Type), a.Signal.Signal.Severity, string(subs), sentiment,
	)
	if err != nil {
		return fmt.Errorf("insert analysis %s: %w", a.ID, err)
	}
	return nil
}

func (r *SQLiteRecorder) Close() error {
	r.logger.Info("closing sqlite recorder")
	return r.db.Close()
}
