package bot

import (
	"github.com/plus3/blockfall/loop"
	"github.com/plus3/blockfall/tetris"
)

// Player is a loop.System that plans once per spawned piece and queues the
// resulting intents. Register it after the scheduler's IntentSystem; its
// intents are applied at the start of the following frame.
type Player struct {
	Weights Weights
	// AutoStart queues a start intent while the session is Ready.
	AutoStart bool

	Planned int
	pieces  int
	waiting bool
}

// NewPlayer returns a player using DefaultWeights.
func NewPlayer() *Player {
	return &Player{Weights: DefaultWeights, AutoStart: true}
}

func (p *Player) Execute(frame *loop.Frame) {
	session := frame.Session
	switch session.State() {
	case tetris.Ready:
		if p.AutoStart && frame.Commands.Pending() == 0 {
			frame.Commands.Push(tetris.StartIntent)
		}
		return
	case tetris.Running:
	default:
		p.waiting = false
		return
	}

	spawned := session.Stats().Pieces()
	if p.waiting && spawned == p.pieces {
		return
	}

	placement, ok := PlanWeighted(session.Snapshot(), p.Weights)
	if !ok {
		return
	}
	frame.Commands.Push(placement.Intents()...)
	p.pieces = spawned
	p.waiting = true
	p.Planned++
}
