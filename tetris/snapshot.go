package tetris

import "time"

// Snapshot is an immutable copy of everything a renderer needs for one
// frame. Mutating a snapshot never affects the session.
type Snapshot struct {
	Board    *Board
	Active   Piece
	GhostRow int
	Next     Cell
	Hold     Cell
	HoldUsed bool
	Score    int
	Lines    int
	Level    int
	Best     int
	Interval time.Duration
	State    State
}

// Snapshot captures the current session state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Board:    s.board.Clone(),
		Active:   s.Active(),
		GhostRow: s.GhostRow(),
		Next:     s.next,
		Hold:     s.hold,
		HoldUsed: s.holdUsed,
		Score:    s.score,
		Lines:    s.lines,
		Level:    s.level,
		Best:     s.best,
		Interval: s.interval,
		State:    s.state,
	}
}

// Renderer consumes snapshots to produce a visual frame.
type Renderer interface {
	Render(snap Snapshot)
}
