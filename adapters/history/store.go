package history

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"courserank/domain/survey"
	"courserank/internal/errors"
)

// RunRecord is one recorded pipeline run.
type RunRecord struct {
	ID              string    `db:"id"`
	InputFile       string    `db:"input_file"`
	Mode            string    `db:"mode"`
	RelevantColumns int       `db:"relevant_columns"`
	SkippedColumns  int       `db:"skipped_columns"`
	UnknownGroups   int       `db:"unknown_groups"`
	Conflicts       int       `db:"conflicts"`
	CreatedAt       time.Time `db:"created_at"`
}

// RunAggregate is one course's aggregate within a recorded run.
type RunAggregate struct {
	RunID       string  `db:"run_id"`
	RankOrder   int     `db:"rank_order"`
	Course      string  `db:"course"`
	MeanScore   float64 `db:"mean_score"`
	SampleCount int     `db:"sample_count"`
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id               TEXT PRIMARY KEY,
	input_file       TEXT NOT NULL,
	mode             TEXT NOT NULL,
	relevant_columns INTEGER NOT NULL,
	skipped_columns  INTEGER NOT NULL,
	unknown_groups   INTEGER NOT NULL,
	conflicts        INTEGER NOT NULL,
	created_at       TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS run_aggregates (
	run_id       TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	rank_order   INTEGER NOT NULL,
	course       TEXT NOT NULL,
	mean_score   REAL NOT NULL,
	sample_count INTEGER NOT NULL,
	PRIMARY KEY (run_id, course)
);
`

// Store persists run history in a local SQLite database.
type Store struct {
	db *sqlx.DB
}

// Open opens (and if needed creates) the history database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.HistoryError(err)
		}
	}

	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, errors.HistoryError(err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.HistoryError(err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun records one run and its ranked aggregates atomically.
func (s *Store) SaveRun(ctx context.Context, run RunRecord, aggregates []survey.CourseAggregate) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.HistoryError(err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `INSERT INTO runs (
		id, input_file, mode, relevant_columns, skipped_columns, unknown_groups, conflicts, created_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.InputFile, run.Mode,
		run.RelevantColumns, run.SkippedColumns, run.UnknownGroups, run.Conflicts,
		run.CreatedAt,
	)
	if err != nil {
		return errors.HistoryError(err)
	}

	for rank, agg := range aggregates {
		_, err = tx.ExecContext(ctx, `INSERT INTO run_aggregates (
			run_id, rank_order, course, mean_score, sample_count
		) VALUES (?, ?, ?, ?, ?)`,
			run.ID, rank+1, agg.Course, agg.Mean, agg.Count,
		)
		if err != nil {
			return errors.HistoryError(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.HistoryError(err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	var runs []RunRecord
	err := s.db.SelectContext(ctx, &runs,
		`SELECT * FROM runs ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, errors.HistoryError(err)
	}
	return runs, nil
}

// GetRun returns one run and its aggregates in ranked order.
func (s *Store) GetRun(ctx context.Context, id string) (*RunRecord, []RunAggregate, error) {
	var run RunRecord
	err := s.db.GetContext(ctx, &run, `SELECT * FROM runs WHERE id = ?`, id)
	if err == sql.ErrNoRows {
		return nil, nil, errors.HistoryError(err)
	}
	if err != nil {
		return nil, nil, errors.HistoryError(err)
	}

	var aggregates []RunAggregate
	err = s.db.SelectContext(ctx, &aggregates,
		`SELECT * FROM run_aggregates WHERE run_id = ? ORDER BY rank_order`, id)
	if err != nil {
		return nil, nil, errors.HistoryError(err)
	}
	return &run, aggregates, nil
}

// LatestRun returns the newest recorded run, or nil when the history is
// empty.
func (s *Store) LatestRun(ctx context.Context) (*RunRecord, []RunAggregate, error) {
	var run RunRecord
	err := s.db.GetContext(ctx, &run,
		`SELECT * FROM runs ORDER BY created_at DESC, id DESC LIMIT 1`)
	if err == sql.ErrNoRows {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, errors.HistoryError(err)
	}
	return s.GetRun(ctx, run.ID)
}
