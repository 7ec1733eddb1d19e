package tetris

import (
	"math/rand/v2"
	"time"
)

// Bag deals tetromino kinds using the 7-bag rule: every refill holds each
// kind exactly once in a uniformly random order.
type Bag struct {
	rng   *rand.Rand
	queue []Cell
}

// NewBag returns a bag drawing from src. A nil src is seeded from the clock.
func NewBag(src *rand.Rand) *Bag {
	if src == nil {
		src = NewRand(time.Now().UnixNano())
	}
	return &Bag{rng: src}
}

// NewRand returns a deterministic random source for the given seed.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
}

// Refill discards whatever is left and loads a fresh shuffled set of all
// seven kinds.
func (b *Bag) Refill() {
	b.queue = b.queue[:0]
	b.queue = append(b.queue, b.shuffled()...)
}

func (b *Bag) shuffled() []Cell {
	set := Kinds
	for i := len(set) - 1; i > 0; i-- {
		j := b.rng.IntN(i + 1)
		set[i], set[j] = set[j], set[i]
	}
	return set[:]
}

// TakeNext removes and returns the next kind, refilling first if the bag is
// empty.
func (b *Bag) TakeNext() Cell {
	if len(b.queue) == 0 {
		b.Refill()
	}
	kind := b.queue[0]
	b.queue = b.queue[1:]
	return kind
}

// Peek returns the next n kinds without consuming them. Lookahead past the
// current bag appends further bags, so later draws stay consistent with what
// was previewed.
func (b *Bag) Peek(n int) []Cell {
	for len(b.queue) < n {
		b.queue = append(b.queue, b.shuffled()...)
	}
	out := make([]Cell, n)
	copy(out, b.queue[:n])
	return out
}

// Len returns how many kinds are queued before the next refill.
func (b *Bag) Len() int {
	return len(b.queue)
}
