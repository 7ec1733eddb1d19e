package loop

import (
	"context"
	"reflect"
	"time"

	"github.com/plus3/blockfall/tetris"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount int
	Frames      int64
	Systems     []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemTimings struct {
	name  string
	count int64
	min   time.Duration
	max   time.Duration
	total time.Duration
	last  time.Duration
}

func (t *systemTimings) record(d time.Duration) {
	t.count++
	t.last = d
	t.total += d
	if d < t.min {
		t.min = d
	}
	if d > t.max {
		t.max = d
	}
}

// Scheduler runs its systems in registration order against a single session.
type Scheduler struct {
	session  *tetris.Session
	commands *Commands
	systems  []System
	timings  []*systemTimings
	frames   int64
}

// NewScheduler creates a scheduler driving session. No systems are
// registered; see NewGameScheduler for the standard pipeline.
func NewScheduler(session *tetris.Session) *Scheduler {
	return &Scheduler{
		session:  session,
		commands: newCommands(),
	}
}

// NewGameScheduler registers IntentSystem followed by ClockSystem, so queued
// input is applied before gravity advances.
func NewGameScheduler(session *tetris.Session) *Scheduler {
	s := NewScheduler(session)
	s.Register(&IntentSystem{})
	s.Register(ClockSystem{})
	return s
}

// Register appends a system. The stats name is the system's type name.
func (s *Scheduler) Register(system System) {
	if system == nil {
		panic("loop: Register called with nil system")
	}
	s.systems = append(s.systems, system)
	s.timings = append(s.timings, &systemTimings{
		name: systemName(system),
		min:  time.Duration(1<<63 - 1),
	})
}

func systemName(system System) string {
	t := reflect.TypeOf(system)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

// Session returns the session this scheduler drives.
func (s *Scheduler) Session() *tetris.Session {
	return s.session
}

// Push queues intents to be applied at the start of the next frame.
func (s *Scheduler) Push(intents ...tetris.Intent) {
	s.commands.Push(intents...)
}

// Commands exposes the scheduler's command buffer to input sources.
func (s *Scheduler) Commands() *Commands {
	return s.commands
}

// Once executes every registered system with the given delta time, then
// flushes deferred commands.
func (s *Scheduler) Once(dt time.Duration) {
	frame := newFrame(dt, s.frames, s.session, s.commands)
	s.frames++

	for i, system := range s.systems {
		start := time.Now()
		system.Execute(frame)
		s.timings[i].record(time.Since(start))
	}

	s.commands.Flush()
}

// Run executes all systems at the given interval until ctx is cancelled. The
// delta passed to each frame is the measured wall-clock time since the last.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			s.Once(dt)
		}
	}
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Frames:      s.frames,
		Systems:     make([]SystemStats, len(s.timings)),
	}

	for i, t := range s.timings {
		var avg time.Duration
		minDuration := t.min
		if t.count > 0 {
			avg = t.total / time.Duration(t.count)
		} else {
			minDuration = 0
		}
		stats.Systems[i] = SystemStats{
			Name:           t.name,
			ExecutionCount: t.count,
			MinDuration:    minDuration,
			MaxDuration:    t.max,
			AvgDuration:    avg,
			LastDuration:   t.last,
			TotalDuration:  t.total,
		}
	}
	return stats
}
