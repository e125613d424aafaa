package recorder

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"finsim-mcp/internal/simulation"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists simulation runs to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so dashboards can read while the server writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("SQLite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS simulation_runs (
			id                  INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp           INTEGER NOT NULL,
			customer_id         TEXT,
			scenario            TEXT NOT NULL,
			iterations          INTEGER NOT NULL,
			percentile_10       REAL,
			percentile_25       REAL,
			percentile_50       REAL,
			percentile_75       REAL,
			percentile_90       REAL,
			mean                REAL,
			std_dev             REAL,
			min_value           REAL,
			max_value           REAL,
			probability_success REAL,
			ci_low              REAL,
			ci_high             REAL,
			converged           INTEGER,
			outliers            INTEGER,
			processing_ms       REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON simulation_runs(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_scenario ON simulation_runs(scenario)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordRun(customerID string, res *simulation.Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	converged := 0
	if c, ok := res.Metadata["convergence_achieved"].(bool); ok && c {
		converged = 1
	}
	outliers := 0
	if n, ok := res.Metadata["outliers_detected"].(int); ok {
		outliers = n
	}

	_, err := r.db.Exec(`INSERT INTO simulation_runs
		(timestamp, customer_id, scenario, iterations,
		 percentile_10, percentile_25, percentile_50, percentile_75, percentile_90,
		 mean, std_dev, min_value, max_value,
		 probability_success, ci_low, ci_high,
		 converged, outliers, processing_ms)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), customerID, res.ScenarioName, res.Iterations,
		res.Percentile10, res.Percentile25, res.Percentile50, res.Percentile75, res.Percentile90,
		res.Mean, res.StdDev, res.MinValue, res.MaxValue,
		res.ProbabilitySuccess, res.ConfidenceInterval95[0], res.ConfidenceInterval95[1],
		converged, outliers, res.ProcessingTimeMs,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Debug().Msg("Closing sqlite recorder")
	return r.db.Close()
}
