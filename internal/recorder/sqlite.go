package recorder

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"QuantSentinel/internal/model"
)

// SQLiteRecorder persists reports to a SQLite database.
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

	// WAL mode for better concurrent read performance (dashboards read
	// while the analyzer writes).
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS indicator_reports (
			id              TEXT PRIMARY KEY,
			timestamp       INTEGER NOT NULL,
			symbol          TEXT NOT NULL,
			market          TEXT,
			interval        TEXT,
			rsi             REAL,
			macd_line       REAL,
			macd_signal     REAL,
			macd_histogram  REAL,
			boll_upper      REAL,
			boll_middle     REAL,
			boll_lower      REAL,
			bias            REAL,
			psy             REAL,
			plus_di         REAL,
			minus_di        REAL,
			adx             REAL,
			vwap            REAL,
			funding_rate    REAL,
			netflow         REAL,
			nupl            REAL,
			mayer_multiple  REAL,
			indicators_json TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_reports_symbol_ts ON indicator_reports(symbol, timestamp)`,

		`CREATE TABLE IF NOT EXISTS report_failures (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			symbol    TEXT NOT NULL,
			interval  TEXT,
			reason    TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_failures_ts ON report_failures(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordReport inserts one report row. Frequently queried indicators get
// their own columns; the full map is kept as JSON alongside.
func (r *SQLiteRecorder) RecordReport(report *model.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	blob, err := json.Marshal(report.Indicators)
	if err != nil {
		return fmt.Errorf("encode indicators: %w", err)
	}

	ind := report.Indicators
	_, err = r.db.Exec(`INSERT INTO indicator_reports
		(id, timestamp, symbol, market, interval,
		 rsi, macd_line, macd_signal, macd_histogram,
		 boll_upper, boll_middle, boll_lower,
		 bias, psy, plus_di, minus_di, adx, vwap,
		 funding_rate, netflow, nupl, mayer_multiple, indicators_json)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		uuid.NewString(), report.Timestamp.Unix(), report.Symbol, report.Market, report.Interval,
		ind["RSI"].Scalar(),
		ind["MACD"].Field("line"), ind["MACD"].Field("signal"), ind["MACD"].Field("histogram"),
		ind["BollingerBands"].Field("upper"), ind["BollingerBands"].Field("middle"), ind["BollingerBands"].Field("lower"),
		ind["BIAS"].Scalar(), ind["PSY"].Scalar(),
		ind["DMI"].Field("plus_di"), ind["DMI"].Field("minus_di"), ind["DMI"].Field("adx"),
		ind["VWAP"].Scalar(),
		ind["FundingRate"].Scalar(), ind["ExchangeNetflow"].Scalar(),
		ind["NUPL"].Scalar(), ind["MayerMultiple"].Scalar(),
		string(blob),
	)
	return err
}

// RecordFailure logs a terminal engine failure for a symbol.
func (r *SQLiteRecorder) RecordFailure(symbol, interval, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO report_failures (timestamp, symbol, interval, reason)
		VALUES (?,?,?,?)`,
		time.Now().Unix(), symbol, interval, reason,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
