package main

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/plus3/blockfall/arena"
	"github.com/plus3/blockfall/bot"
	"github.com/plus3/blockfall/store"
	"github.com/plus3/blockfall/tetris"
)

// frameDelta is the synthetic frame time fed to every session.
const frameDelta = 16 * time.Millisecond

type runOptions struct {
	Games     int
	SeedBase  int64
	SeedStep  int64
	MaxPieces int
	Workers   int
	Weights   bot.Weights
}

// gameResult is one finished game plus the CPU time its systems used.
type gameResult struct {
	arena.Result
	SystemTime time.Duration
}

// seeds returns the seed for each game in order.
func (o runOptions) seeds() []int64 {
	out := make([]int64, o.Games)
	for i := range out {
		out[i] = o.SeedBase + int64(i)*o.SeedStep
	}
	return out
}

// runGames plays every game to completion, spreading them across worker
// arenas. Each arena is owned by one goroutine. When st is non-nil every
// result is recorded as soon as its worker finishes.
func runGames(ctx context.Context, opts runOptions, st store.Store) ([]gameResult, error) {
	if opts.Games <= 0 {
		return nil, nil
	}
	workers := max(1, min(opts.Workers, opts.Games))

	arenas := make([]*arena.Arena, workers)
	for i := range arenas {
		arenas[i] = arena.New(opts.Games/workers + 1)
	}
	for i, seed := range opts.seeds() {
		arenas[i%workers].Add(seed,
			arena.WithBot(opts.Weights),
			arena.WithMaxPieces(opts.MaxPieces),
		)
	}

	perWorker := make([][]gameResult, workers)
	g, ctx := errgroup.WithContext(ctx)
	for i, a := range arenas {
		g.Go(func() error {
			if err := a.Drain(ctx, frameDelta); err != nil {
				return fmt.Errorf("worker %d: %w", i, err)
			}

			var results []gameResult
			for _, res := range a.Results() {
				entry, _ := a.Get(res.ID)
				results = append(results, gameResult{
					Result:     res,
					SystemTime: systemTime(entry),
				})
				if st == nil {
					continue
				}
				if err := st.RecordGame(ctx, store.NewResult(res.Final, res.Stats, res.Seed)); err != nil {
					return fmt.Errorf("worker %d: %w", i, err)
				}
				if err := st.SaveBest(ctx, res.Final.Score); err != nil {
					return fmt.Errorf("worker %d: %w", i, err)
				}
			}
			perWorker[i] = results
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []gameResult
	for _, results := range perWorker {
		all = append(all, results...)
	}
	return all, nil
}

func systemTime(e *arena.Entry) time.Duration {
	var total time.Duration
	for _, sys := range e.Scheduler.GetStats().Systems {
		total += sys.TotalDuration
	}
	return total
}

// pieceTotals sums spawned pieces per kind across games.
func pieceTotals(results []gameResult) map[tetris.Cell]int {
	out := make(map[tetris.Cell]int, len(tetris.Kinds))
	for _, r := range results {
		for k, n := range r.Stats.Spawned {
			out[k] += n
		}
	}
	return out
}
