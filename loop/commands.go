package loop

import "github.com/plus3/blockfall/tetris"

// Commands buffers work produced outside or during a frame. Intents are
// queued by input sources and drained by IntentSystem; deferred functions run
// after every system has executed.
type Commands struct {
	intents []tetris.Intent
	defers  []func()
}

func newCommands() *Commands {
	return &Commands{}
}

// Push queues intents for the next frame, in order.
func (c *Commands) Push(intents ...tetris.Intent) {
	c.intents = append(c.intents, intents...)
}

// Pending returns how many intents are waiting.
func (c *Commands) Pending() int {
	return len(c.intents)
}

// Drain returns the queued intents and empties the queue.
func (c *Commands) Drain() []tetris.Intent {
	out := c.intents
	c.intents = nil
	return out
}

// Clear drops every queued intent without applying it.
func (c *Commands) Clear() {
	c.intents = c.intents[:0]
}

// Defer queues fn to run at the end of the current frame.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Flush runs deferred functions in the order they were queued.
func (c *Commands) Flush() {
	for _, fn := range c.defers {
		fn()
	}
	c.defers = c.defers[:0]
}
