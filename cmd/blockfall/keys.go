package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/plus3/blockfall/loop"
	"github.com/plus3/blockfall/tetris"
)

// Key repeat timing in ticks, at the default 60 TPS.
const (
	repeatDelay    = 10
	repeatInterval = 3
)

// repeatable intents fire again while their key is held.
var repeatable = map[tetris.Intent]bool{
	tetris.MoveLeft:       true,
	tetris.MoveRight:      true,
	tetris.SoftDropIntent: true,
}

// parseKeys resolves key names into a key to intent table. A key bound to two
// intents is an error.
func parseKeys(bindings map[tetris.Intent][]string) (map[ebiten.Key]tetris.Intent, error) {
	out := make(map[ebiten.Key]tetris.Intent)
	for _, intent := range tetris.Intents() {
		for _, name := range bindings[intent] {
			var key ebiten.Key
			if err := key.UnmarshalText([]byte(name)); err != nil {
				return nil, fmt.Errorf("key %q for %s: %w", name, intent, err)
			}
			if prev, ok := out[key]; ok && prev != intent {
				return nil, fmt.Errorf("key %q bound to both %s and %s", name, prev, intent)
			}
			out[key] = intent
		}
	}
	return out, nil
}

// shouldFire reports whether a key held for d ticks triggers this tick.
func shouldFire(d int, repeat bool) bool {
	if d == 1 {
		return true
	}
	if !repeat || d < repeatDelay {
		return false
	}
	return (d-repeatDelay)%repeatInterval == 0
}

// Keyboard is a loop.System that turns key presses into intents. Register it
// ahead of IntentSystem so presses apply in the same frame.
type Keyboard struct {
	Keys    map[ebiten.Key]tetris.Intent
	Enabled bool
}

func (k *Keyboard) Execute(frame *loop.Frame) {
	if !k.Enabled {
		return
	}
	for _, intent := range tetris.Intents() {
		for key, bound := range k.Keys {
			if bound != intent {
				continue
			}
			if shouldFire(inpututil.KeyPressDuration(key), repeatable[intent]) {
				frame.Commands.Push(intent)
				break
			}
		}
	}
}
