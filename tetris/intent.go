package tetris

import (
	"fmt"
	"strings"
)

// Intent is a discrete player action delivered by an input source. Hosts
// translate device input into intents; the session never sees keys.
type Intent int

const (
	MoveLeft Intent = iota
	MoveRight
	SoftDropIntent
	HardDropIntent
	RotateCW
	RotateCCW
	HoldIntent
	TogglePauseIntent
	RestartIntent
	StartIntent
)

var intentNames = [...]string{
	MoveLeft:          "move-left",
	MoveRight:         "move-right",
	SoftDropIntent:    "soft-drop",
	HardDropIntent:    "hard-drop",
	RotateCW:          "rotate-cw",
	RotateCCW:         "rotate-ccw",
	HoldIntent:        "hold",
	TogglePauseIntent: "pause",
	RestartIntent:     "restart",
	StartIntent:       "start",
}

// Intents lists every intent in declaration order.
func Intents() []Intent {
	out := make([]Intent, len(intentNames))
	for i := range intentNames {
		out[i] = Intent(i)
	}
	return out
}

func (i Intent) String() string {
	if i < 0 || int(i) >= len(intentNames) {
		return fmt.Sprintf("Intent(%d)", int(i))
	}
	return intentNames[i]
}

// ParseIntent resolves an intent by its name, as used in key binding
// configuration.
func ParseIntent(name string) (Intent, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range intentNames {
		if n == name {
			return Intent(i), nil
		}
	}
	return 0, fmt.Errorf("unknown intent %q", name)
}

// Apply performs the session operation bound to intent and reports whether
// it changed anything.
func (s *Session) Apply(intent Intent) bool {
	switch intent {
	case MoveLeft:
		return s.TryMove(-1, 0)
	case MoveRight:
		return s.TryMove(1, 0)
	case SoftDropIntent:
		if s.state != Running {
			return false
		}
		s.SoftDrop()
		return true
	case HardDropIntent:
		if s.state != Running {
			return false
		}
		s.HardDrop()
		return true
	case RotateCW:
		return s.TryRotate(Clockwise)
	case RotateCCW:
		return s.TryRotate(CounterClockwise)
	case HoldIntent:
		return s.Hold()
	case TogglePauseIntent:
		return s.TogglePause()
	case RestartIntent:
		s.Restart()
		return true
	case StartIntent:
		return s.Start()
	default:
		return false
	}
}
