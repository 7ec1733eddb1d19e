package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS best_score (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		score INTEGER NOT NULL DEFAULT 0,
		updated_at INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS results (
		id TEXT PRIMARY KEY,
		score INTEGER NOT NULL,
		lines INTEGER NOT NULL,
		level INTEGER NOT NULL,
		pieces INTEGER NOT NULL,
		seed INTEGER NOT NULL,
		finished_at INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_results_score ON results(score DESC, finished_at)`,
}

// SQLiteStore persists to a SQLite database file.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path and applies
// migrations. Use ":memory:" for a throwaway database.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open db: %w", err)
	}
	// a single connection keeps ":memory:" databases coherent and serializes writers
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("store: enable WAL: %w", err)
	}
	for _, m := range migrations {
		if _, err := s.db.ExecContext(ctx, m); err != nil {
			return fmt.Errorf("store: migrate: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStore) LoadBest(ctx context.Context) (int, error) {
	var best sql.NullInt64
	err := s.db.QueryRowContext(ctx, `
		SELECT MAX(score) FROM (
			SELECT score FROM best_score
			UNION ALL
			SELECT score FROM results
		)`).Scan(&best)
	if err != nil {
		return 0, fmt.Errorf("store: load best: %w", err)
	}
	return int(best.Int64), nil
}

func (s *SQLiteStore) SaveBest(ctx context.Context, score int) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO best_score (id, score, updated_at) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			score = MAX(best_score.score, excluded.score),
			updated_at = excluded.updated_at`,
		score, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("store: save best: %w", err)
	}
	return nil
}

func (s *SQLiteStore) RecordGame(ctx context.Context, r Result) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO results (id, score, lines, level, pieces, seed, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID.String(), r.Score, r.Lines, r.Level, r.Pieces, r.Seed, r.FinishedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("store: record game %s: %w", r.ID, err)
	}
	return nil
}

func (s *SQLiteStore) GetResult(ctx context.Context, id uuid.UUID) (Result, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, score, lines, level, pieces, seed, finished_at
		FROM results WHERE id = ?`, id.String())
	r, err := scanResult(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Result{}, ErrNotFound
	}
	if err != nil {
		return Result{}, fmt.Errorf("store: get result %s: %w", id, err)
	}
	return r, nil
}

func (s *SQLiteStore) TopResults(ctx context.Context, n int) ([]Result, error) {
	if n <= 0 {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, score, lines, level, pieces, seed, finished_at
		FROM results
		ORDER BY score DESC, finished_at ASC
		LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("store: top results: %w", err)
	}
	defer rows.Close()

	var out []Result
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, fmt.Errorf("store: top results: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: top results: %w", err)
	}
	return out, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanResult(sc scanner) (Result, error) {
	var (
		r        Result
		id       string
		finished int64
	)
	if err := sc.Scan(&id, &r.Score, &r.Lines, &r.Level, &r.Pieces, &r.Seed, &finished); err != nil {
		return Result{}, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return Result{}, fmt.Errorf("parse id %q: %w", id, err)
	}
	r.ID = parsed
	r.FinishedAt = time.UnixMilli(finished).UTC()
	return r, nil
}
