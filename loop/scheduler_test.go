package loop_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/blockfall/loop"
	"github.com/plus3/blockfall/tetris"
)

type recordSystem struct {
	label string
	log   *[]string
}

func (s *recordSystem) Execute(frame *loop.Frame) {
	*s.log = append(*s.log, s.label)
}

type otherSystem struct {
	log *[]string
}

func (s otherSystem) Execute(frame *loop.Frame) {
	*s.log = append(*s.log, "other")
}

// fillForGameOver fills every row but leaves the right column open so no row
// completes. The next lock spawns into row 0 and ends the game.
func fillForGameOver(b *tetris.Board) {
	for row := 0; row < tetris.Rows; row++ {
		for col := 0; col < tetris.Cols-1; col++ {
			b.Set(col, row, tetris.J)
		}
	}
}

func TestScheduler(t *testing.T) {
	t.Run("systems run in registration order", func(t *testing.T) {
		var log []string
		s := loop.NewScheduler(tetris.NewSession(tetris.WithSeed(1)))
		s.Register(&recordSystem{label: "first", log: &log})
		s.Register(otherSystem{log: &log})
		s.Register(&recordSystem{label: "last", log: &log})

		s.Once(time.Millisecond)
		s.Once(time.Millisecond)

		assert.Equal(t, []string{"first", "other", "last", "first", "other", "last"}, log)

		stats := s.GetStats()
		assert.Equal(t, 3, stats.SystemCount)
		assert.Equal(t, int64(2), stats.Frames)
		require.Len(t, stats.Systems, 3)
		assert.Equal(t, "recordSystem", stats.Systems[0].Name)
		assert.Equal(t, "otherSystem", stats.Systems[1].Name)
		for _, sys := range stats.Systems {
			assert.Equal(t, int64(2), sys.ExecutionCount)
			assert.LessOrEqual(t, sys.MinDuration, sys.MaxDuration)
			assert.GreaterOrEqual(t, sys.TotalDuration, sys.MaxDuration)
		}
	})

	t.Run("stats before first frame", func(t *testing.T) {
		s := loop.NewGameScheduler(tetris.NewSession(tetris.WithSeed(1)))
		stats := s.GetStats()
		assert.Equal(t, 2, stats.SystemCount)
		assert.Equal(t, int64(0), stats.Frames)
		for _, sys := range stats.Systems {
			assert.Zero(t, sys.ExecutionCount)
			assert.Zero(t, sys.MinDuration)
			assert.Zero(t, sys.AvgDuration)
		}
	})

	t.Run("nil system panics", func(t *testing.T) {
		s := loop.NewScheduler(tetris.NewSession())
		assert.Panics(t, func() { s.Register(nil) })
	})

	t.Run("frame carries delta and index", func(t *testing.T) {
		var deltas []time.Duration
		var indexes []int64
		s := loop.NewScheduler(tetris.NewSession(tetris.WithSeed(1)))
		s.Register(loop.SystemFunc(func(frame *loop.Frame) {
			deltas = append(deltas, frame.DeltaTime)
			indexes = append(indexes, frame.Index)
		}))

		s.Once(16 * time.Millisecond)
		s.Once(17 * time.Millisecond)

		assert.Equal(t, []time.Duration{16 * time.Millisecond, 17 * time.Millisecond}, deltas)
		assert.Equal(t, []int64{0, 1}, indexes)
		assert.Equal(t, "SystemFunc", s.GetStats().Systems[0].Name)
	})

	t.Run("deferred commands run after all systems", func(t *testing.T) {
		var log []string
		s := loop.NewScheduler(tetris.NewSession(tetris.WithSeed(1)))
		s.Register(loop.SystemFunc(func(frame *loop.Frame) {
			frame.Commands.Defer(func() { log = append(log, "deferred") })
			log = append(log, "a")
		}))
		s.Register(loop.SystemFunc(func(frame *loop.Frame) {
			log = append(log, "b")
		}))

		s.Once(0)
		assert.Equal(t, []string{"a", "b", "deferred"}, log)

		s.Once(0)
		assert.Equal(t, []string{"a", "b", "deferred", "a", "b", "deferred"}, log)
	})
}

func TestIntentSystem(t *testing.T) {
	session := tetris.NewSession(tetris.WithSeed(3))
	s := loop.NewScheduler(session)
	intents := &loop.IntentSystem{}
	s.Register(intents)

	s.Push(tetris.StartIntent, tetris.HoldIntent, tetris.HoldIntent)
	assert.Equal(t, 3, s.Commands().Pending())

	s.Once(0)

	assert.Equal(t, tetris.Running, session.State())
	assert.True(t, session.HoldUsed())
	assert.Equal(t, int64(2), intents.Applied)
	assert.Equal(t, int64(1), intents.Rejected)
	assert.Zero(t, s.Commands().Pending())

	s.Push(tetris.MoveLeft)
	s.Commands().Clear()
	s.Once(0)
	assert.Equal(t, int64(2), intents.Applied)
}

func TestGameScheduler(t *testing.T) {
	session := tetris.NewSession(tetris.WithSeed(5))
	s := loop.NewGameScheduler(session)

	s.Push(tetris.StartIntent)
	for range 16 {
		s.Once(50 * time.Millisecond)
	}

	assert.Equal(t, tetris.Running, session.State())
	assert.Equal(t, 0, session.Active().Row)

	// oversize deltas are clamped by the session, one row per interval
	for range 16 {
		s.Once(time.Second)
	}
	assert.Equal(t, 1, session.Active().Row)
}

func TestGameOverSystem(t *testing.T) {
	session := tetris.NewSession(tetris.WithSeed(9))
	s := loop.NewGameScheduler(session)

	var finished []tetris.Snapshot
	var counters []tetris.Stats
	over := &loop.GameOverSystem{OnGameOver: func(snap tetris.Snapshot, stats tetris.Stats) {
		finished = append(finished, snap)
		counters = append(counters, stats)
	}}
	s.Register(over)

	s.Push(tetris.StartIntent)
	s.Once(0)
	require.Equal(t, tetris.Running, session.State())

	fillForGameOver(session.Board())
	s.Push(tetris.HardDropIntent)
	s.Once(0)
	require.Equal(t, tetris.GameOver, session.State())

	s.Once(0)
	s.Once(0)
	require.Len(t, finished, 1)
	assert.Equal(t, 1, over.Games)
	assert.Equal(t, tetris.GameOver, finished[0].State)
	assert.Equal(t, 1, counters[0].Locks)

	s.Push(tetris.RestartIntent)
	s.Once(0)
	fillForGameOver(session.Board())
	s.Push(tetris.HardDropIntent)
	s.Once(0)

	assert.Len(t, finished, 2)
	assert.Equal(t, 2, over.Games)
}

func TestSchedulerRun(t *testing.T) {
	session := tetris.NewSession(tetris.WithSeed(2))
	s := loop.NewGameScheduler(session)
	s.Push(tetris.StartIntent)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()

	s.Run(ctx, 5*time.Millisecond)

	assert.Positive(t, s.GetStats().Frames)
	assert.Equal(t, tetris.Running, session.State())
}
