// Package loop drives tetris sessions frame by frame. A Scheduler runs an
// ordered list of Systems against one session each frame; hosts push input
// intents into the frame's command buffer and systems apply them before the
// gravity clock advances.
package loop

// System represents a behavior that runs once per frame. Systems may keep
// their own state between frames.
type System interface {
	Execute(frame *Frame)
}

// SystemFunc adapts a plain function to System.
type SystemFunc func(frame *Frame)

func (f SystemFunc) Execute(frame *Frame) {
	f(frame)
}
