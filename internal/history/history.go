// Package history handles SQLite persistence of completed runs.
package history

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/kweston/typequest/internal/game"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for run history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			lesson_index INTEGER NOT NULL,
			lesson_title TEXT NOT NULL,
			score INTEGER NOT NULL,
			accuracy INTEGER NOT NULL,
			speed INTEGER NOT NULL,
			max_combo INTEGER NOT NULL,
			errors INTEGER NOT NULL,
			correct_chars INTEGER NOT NULL,
			total_chars INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ended_at ON runs(ended_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertRun stores one completed run.
func (s *Store) InsertRun(ctx context.Context, run game.Run) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (started_at, ended_at, lesson_index, lesson_title, score, accuracy, speed, max_combo, errors, correct_chars, total_chars)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.StartedAt.Format(time.RFC3339Nano),
		run.EndedAt.Format(time.RFC3339Nano),
		run.LessonIndex,
		run.LessonTitle,
		run.Score,
		run.Accuracy,
		run.Speed,
		run.MaxCombo,
		run.Errors,
		run.CorrectChars,
		run.TotalChars,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Record satisfies the game controller's recorder hook.
func (s *Store) Record(run game.Run) error {
	_, err := s.InsertRun(context.Background(), run)
	return err
}

// ListRuns returns the most recent runs, newest first. A limit of 0 or
// less means no limit.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]game.Run, error) {
	query := `SELECT started_at, ended_at, lesson_index, lesson_title, score, accuracy, speed, max_combo, errors, correct_chars, total_chars
		FROM runs ORDER BY ended_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []game.Run
	for rows.Next() {
		var run game.Run
		var started, ended string
		if err := rows.Scan(&started, &ended, &run.LessonIndex, &run.LessonTitle,
			&run.Score, &run.Accuracy, &run.Speed, &run.MaxCombo,
			&run.Errors, &run.CorrectChars, &run.TotalChars); err != nil {
			return nil, err
		}
		if run.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
			return nil, err
		}
		if run.EndedAt, err = time.Parse(time.RFC3339Nano, ended); err != nil {
			return nil, err
		}
		result = append(result, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
