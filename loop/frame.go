package loop

import (
	"time"

	"github.com/plus3/blockfall/tetris"
)

// Frame is passed to every system during one scheduler step.
type Frame struct {
	DeltaTime time.Duration
	Index     int64
	Session   *tetris.Session
	Commands  *Commands
}

func newFrame(dt time.Duration, index int64, session *tetris.Session, commands *Commands) *Frame {
	return &Frame{
		DeltaTime: dt,
		Index:     index,
		Session:   session,
		Commands:  commands,
	}
}
