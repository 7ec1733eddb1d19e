package tetris

// EventKind identifies a notable session transition.
type EventKind int

const (
	EventStarted EventKind = iota
	EventLocked
	EventLinesCleared
	EventLevelUp
	EventHold
	EventPaused
	EventResumed
	EventGameOver
)

func (k EventKind) String() string {
	switch k {
	case EventStarted:
		return "started"
	case EventLocked:
		return "locked"
	case EventLinesCleared:
		return "lines-cleared"
	case EventLevelUp:
		return "level-up"
	case EventHold:
		return "hold"
	case EventPaused:
		return "paused"
	case EventResumed:
		return "resumed"
	case EventGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// Event is delivered synchronously to the session's EventHandler after the
// transition has been applied. Score, Level and Lines are the values after
// the transition; Cleared is only set for EventLinesCleared.
type Event struct {
	Kind    EventKind
	Piece   Cell
	Cleared int
	Score   int
	Lines   int
	Level   int
}

// EventHandler receives session events. Handlers must not call back into the
// session that emitted the event.
type EventHandler func(Event)
