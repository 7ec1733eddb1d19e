package loop

import "github.com/plus3/blockfall/tetris"

// IntentSystem applies every queued intent to the session, in order.
type IntentSystem struct {
	Applied  int64
	Rejected int64
}

func (s *IntentSystem) Execute(frame *Frame) {
	for _, intent := range frame.Commands.Drain() {
		if frame.Session.Apply(intent) {
			s.Applied++
		} else {
			s.Rejected++
		}
	}
}

// ClockSystem feeds the frame delta to the session's gravity clock.
type ClockSystem struct{}

func (ClockSystem) Execute(frame *Frame) {
	frame.Session.Tick(frame.DeltaTime)
}

// GameOverFunc receives the final snapshot and counters of a finished game.
type GameOverFunc func(snap tetris.Snapshot, stats tetris.Stats)

// GameOverSystem calls OnGameOver once each time the session enters
// GameOver. Register it after ClockSystem. The callback runs after the frame's
// other systems via Commands.Defer.
type GameOverSystem struct {
	OnGameOver GameOverFunc
	Games      int

	reported bool
}

func (s *GameOverSystem) Execute(frame *Frame) {
	if frame.Session.State() != tetris.GameOver {
		s.reported = false
		return
	}
	if s.reported {
		return
	}
	s.reported = true
	s.Games++

	if s.OnGameOver == nil {
		return
	}
	snap := frame.Session.Snapshot()
	stats := frame.Session.Stats()
	frame.Commands.Defer(func() {
		s.OnGameOver(snap, stats)
	})
}
