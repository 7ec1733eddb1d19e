package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/blockfall/bot"
	"github.com/plus3/blockfall/store"
)

func testOptions() runOptions {
	return runOptions{
		Games:     5,
		SeedBase:  100,
		SeedStep:  3,
		MaxPieces: 25,
		Workers:   2,
		Weights:   bot.DefaultWeights,
	}
}

func TestSeeds(t *testing.T) {
	assert.Equal(t, []int64{100, 103, 106, 109, 112}, testOptions().seeds())
}

func TestRunGames(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()

	results, err := runGames(ctx, testOptions(), st)
	require.NoError(t, err)
	require.Len(t, results, 5)

	seeds := map[int64]bool{}
	for _, r := range results {
		seeds[r.Seed] = true
		assert.True(t, r.Capped)
		assert.Equal(t, 25, r.Stats.Pieces())
	}
	assert.Len(t, seeds, 5)

	stored, err := st.TopResults(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, stored, 5)
	best, err := st.LoadBest(ctx)
	require.NoError(t, err)
	assert.Equal(t, stored[0].Score, best)
}

func TestRunGamesDeterministic(t *testing.T) {
	opts := testOptions()
	opts.Workers = 1
	first, err := runGames(context.Background(), opts, nil)
	require.NoError(t, err)

	opts.Workers = 4
	second, err := runGames(context.Background(), opts, nil)
	require.NoError(t, err)

	scores := func(rs []gameResult) map[int64]int {
		out := map[int64]int{}
		for _, r := range rs {
			out[r.Seed] = r.Final.Score
		}
		return out
	}
	assert.Equal(t, scores(first), scores(second))
}

func TestRunGamesCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := testOptions()
	opts.MaxPieces = 0
	_, err := runGames(ctx, opts, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunGamesNone(t *testing.T) {
	opts := testOptions()
	opts.Games = 0
	results, err := runGames(context.Background(), opts, nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestReport(t *testing.T) {
	opts := testOptions()
	results, err := runGames(context.Background(), opts, nil)
	require.NoError(t, err)

	report := newReport(opts, results, 3)
	assert.Equal(t, 5, report.Finished)
	assert.Equal(t, 5, report.Capped)
	assert.Equal(t, 125, report.Pieces.Total)
	assert.Len(t, report.Top, 3)
	assert.GreaterOrEqual(t, report.Top[0].Final.Score, report.Top[1].Final.Score)
	assert.Len(t, report.Kinds, 7)

	var buf bytes.Buffer
	require.NoError(t, report.Generate(&buf))
	out := buf.String()
	assert.Contains(t, out, "# Blockfall Headless Report")
	assert.Contains(t, out, "- **Games:** 5")
	assert.Contains(t, out, "- **Piece Cap:** 25")
	assert.Contains(t, out, "5 stopped at the piece cap, 0 topped out")
	assert.Contains(t, out, "| I |")
}

func TestIntStatsFinalize(t *testing.T) {
	s := IntStats{Samples: []int{4, 10, 1}}
	s.Finalize()
	assert.Equal(t, 1, s.Min)
	assert.Equal(t, 10, s.Max)
	assert.Equal(t, 15, s.Total)
	assert.InDelta(t, 5.0, s.Avg, 0.0001)

	var empty IntStats
	empty.Finalize()
	assert.Zero(t, empty.Avg)
}
