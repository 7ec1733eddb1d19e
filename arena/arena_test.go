package arena_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/blockfall/arena"
	"github.com/plus3/blockfall/bot"
	"github.com/plus3/blockfall/loop"
	"github.com/plus3/blockfall/tetris"
)

func TestArenaRegistry(t *testing.T) {
	a := arena.New(4)

	first := a.Add(10)
	second := a.Add(20)
	third := a.Add(30)

	assert.Equal(t, 3, a.Len())
	assert.NotEqual(t, first, second)
	assert.Equal(t, []arena.SessionID{first, second, third}, a.IDs())

	e, ok := a.Get(second)
	require.True(t, ok)
	assert.Equal(t, int64(20), e.Seed)
	assert.Equal(t, tetris.Ready, e.Session.State())
	assert.Nil(t, e.Player)

	assert.True(t, a.Remove(second))
	assert.False(t, a.Remove(second))
	_, ok = a.Get(second)
	assert.False(t, ok)
	assert.Equal(t, 2, a.Len())

	// IDs are never reused
	fourth := a.Add(40)
	assert.NotEqual(t, second, fourth)
}

func TestArenaStepIsolatesSessions(t *testing.T) {
	a := arena.New(2)
	left := a.Add(1)
	right := a.Add(1)

	l, _ := a.Get(left)
	r, _ := a.Get(right)

	l.Scheduler.Push(tetris.StartIntent, tetris.MoveLeft, tetris.MoveLeft)
	r.Scheduler.Push(tetris.StartIntent)

	assert.Equal(t, 2, a.Step(16*time.Millisecond))

	assert.Equal(t, tetris.Running, l.Session.State())
	assert.Equal(t, tetris.Running, r.Session.State())
	assert.Equal(t, r.Session.Active().Col-2, l.Session.Active().Col)
	assert.Equal(t, l.Session.Active().Kind, r.Session.Active().Kind)
}

func TestArenaPieceCap(t *testing.T) {
	a := arena.New(2)
	id := a.Add(77, arena.WithBot(bot.DefaultWeights), arena.WithMaxPieces(20))

	require.NoError(t, a.Drain(context.Background(), 16*time.Millisecond))
	assert.Zero(t, a.Active())

	e, _ := a.Get(id)
	assert.True(t, e.Done())

	results := a.Results()
	require.Len(t, results, 1)
	res := results[0]
	assert.Equal(t, id, res.ID)
	assert.Equal(t, int64(77), res.Seed)
	assert.True(t, res.Capped)
	assert.Equal(t, 20, res.Stats.Pieces())
	assert.Positive(t, res.Frames)

	// finished entries are not stepped again
	frames := res.Frames
	a.Step(16 * time.Millisecond)
	assert.Equal(t, frames, a.Results()[0].Frames)
}

func TestArenaGameOverFinishes(t *testing.T) {
	var games int
	a := arena.New(1)
	id := a.Add(3, arena.WithSystems(&loop.GameOverSystem{
		OnGameOver: func(tetris.Snapshot, tetris.Stats) { games++ },
	}))

	e, _ := a.Get(id)
	e.Scheduler.Push(tetris.StartIntent)
	a.Step(0)

	b := e.Session.Board()
	for row := 0; row < tetris.Rows; row++ {
		for col := 0; col < tetris.Cols-1; col++ {
			b.Set(col, row, tetris.S)
		}
	}
	e.Scheduler.Push(tetris.HardDropIntent)

	assert.Zero(t, a.Step(0))
	assert.True(t, e.Done())
	assert.Equal(t, 1, games)

	results := a.Results()
	require.Len(t, results, 1)
	assert.False(t, results[0].Capped)
	assert.Equal(t, tetris.GameOver, results[0].Final.State)
}

func TestArenaDrainCancelled(t *testing.T) {
	a := arena.New(1)
	a.Add(5) // never started, never finishes

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := a.Drain(ctx, time.Millisecond)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, a.Results())
}

func TestArenaDeterministicBots(t *testing.T) {
	a := arena.New(2)
	a.Add(99, arena.WithBot(bot.DefaultWeights), arena.WithMaxPieces(40))
	a.Add(99, arena.WithBot(bot.DefaultWeights), arena.WithMaxPieces(40))

	require.NoError(t, a.Drain(context.Background(), 16*time.Millisecond))

	results := a.Results()
	require.Len(t, results, 2)
	assert.Equal(t, results[0].Final.Score, results[1].Final.Score)
	assert.Equal(t, results[0].Final.Lines, results[1].Final.Lines)
	assert.Equal(t, results[0].Final.Board.String(), results[1].Final.Board.String())
}
