// Package store persists the best score and the history of finished games.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/plus3/blockfall/tetris"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("store: not found")

// Result summarizes one finished game.
type Result struct {
	ID         uuid.UUID
	Score      int
	Lines      int
	Level      int
	Pieces     int
	Seed       int64
	FinishedAt time.Time
}

// NewResult builds a result from the final snapshot and counters of a game.
func NewResult(snap tetris.Snapshot, stats tetris.Stats, seed int64) Result {
	return Result{
		ID:         uuid.New(),
		Score:      snap.Score,
		Lines:      snap.Lines,
		Level:      snap.Level,
		Pieces:     stats.Pieces(),
		Seed:       seed,
		FinishedAt: time.Now().UTC(),
	}
}

// Store is implemented by every persistence backend.
type Store interface {
	// LoadBest returns the best score ever recorded, or 0 when there is none.
	LoadBest(ctx context.Context) (int, error)
	// SaveBest records score if it beats the stored best.
	SaveBest(ctx context.Context, score int) error
	RecordGame(ctx context.Context, r Result) error
	GetResult(ctx context.Context, id uuid.UUID) (Result, error)
	// TopResults returns up to n results ordered by score, highest first.
	TopResults(ctx context.Context, n int) ([]Result, error)
	Close() error
}

// Reporter adapts a store to the session's best-score collaborator.
func Reporter(ctx context.Context, s Store) tetris.BestScoreReporter {
	return tetris.ReporterFunc(func(score int) error {
		return s.SaveBest(ctx, score)
	})
}
