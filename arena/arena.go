// Package arena runs many independent sessions side by side. Each entry owns
// its session and scheduler; the arena only steps them and collects results.
// An Arena is not safe for concurrent use; run one arena per goroutine.
package arena

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/kamstrup/intmap"

	"github.com/plus3/blockfall/bot"
	"github.com/plus3/blockfall/loop"
	"github.com/plus3/blockfall/tetris"
)

// SessionID identifies an entry within one arena.
type SessionID uint32

// Entry is one session and the machinery that drives it.
type Entry struct {
	ID        SessionID
	Seed      int64
	Session   *tetris.Session
	Scheduler *loop.Scheduler
	Player    *bot.Player

	maxPieces int
	done      bool
	capped    bool
	frames    int64
}

// Done reports whether the entry has finished, by game over or piece cap.
func (e *Entry) Done() bool { return e.done }

// Result is the outcome of a finished entry.
type Result struct {
	ID     SessionID
	Seed   int64
	Final  tetris.Snapshot
	Stats  tetris.Stats
	Frames int64
	// Capped is set when the game was stopped by the piece cap rather than
	// ending on its own.
	Capped bool
}

type entryConfig struct {
	bot       bool
	weights   bot.Weights
	maxPieces int
	session   []tetris.Option
	systems   []loop.System
}

// EntryOption configures an entry at Add time.
type EntryOption func(*entryConfig)

// WithBot drives the entry with an autoplayer using the given weights.
func WithBot(w bot.Weights) EntryOption {
	return func(c *entryConfig) {
		c.bot = true
		c.weights = w
	}
}

// WithMaxPieces finishes the entry once n pieces have spawned. Zero means no
// cap.
func WithMaxPieces(n int) EntryOption {
	return func(c *entryConfig) {
		c.maxPieces = n
	}
}

// WithSessionOptions passes extra options to the entry's session. The seed
// is always applied first.
func WithSessionOptions(opts ...tetris.Option) EntryOption {
	return func(c *entryConfig) {
		c.session = append(c.session, opts...)
	}
}

// WithSystems registers extra systems after the standard pipeline.
func WithSystems(systems ...loop.System) EntryOption {
	return func(c *entryConfig) {
		c.systems = append(c.systems, systems...)
	}
}

// Arena is a registry of entries keyed by SessionID.
type Arena struct {
	entries *intmap.Map[SessionID, *Entry]
	nextID  SessionID
}

// New creates an empty arena sized for about capacity entries.
func New(capacity int) *Arena {
	return &Arena{
		entries: intmap.New[SessionID, *Entry](capacity),
		nextID:  1,
	}
}

// Add creates a session seeded with seed and returns its ID. Bot entries are
// started on their first step; others wait for a start intent.
func (a *Arena) Add(seed int64, opts ...EntryOption) SessionID {
	var cfg entryConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	sessionOpts := append([]tetris.Option{tetris.WithSeed(seed)}, cfg.session...)
	session := tetris.NewSession(sessionOpts...)

	e := &Entry{
		ID:        a.nextID,
		Seed:      seed,
		Session:   session,
		Scheduler: loop.NewGameScheduler(session),
		maxPieces: cfg.maxPieces,
	}
	if cfg.bot {
		e.Player = bot.NewPlayer()
		e.Player.Weights = cfg.weights
		e.Scheduler.Register(e.Player)
	}
	for _, sys := range cfg.systems {
		e.Scheduler.Register(sys)
	}

	a.entries.Put(e.ID, e)
	a.nextID++
	return e.ID
}

// Get returns the entry for id.
func (a *Arena) Get(id SessionID) (*Entry, bool) {
	return a.entries.Get(id)
}

// Remove drops an entry. It reports whether the entry existed.
func (a *Arena) Remove(id SessionID) bool {
	return a.entries.Del(id)
}

// Len returns the number of entries, finished or not.
func (a *Arena) Len() int {
	return a.entries.Len()
}

// Active returns the number of entries that have not finished.
func (a *Arena) Active() int {
	n := 0
	a.entries.ForEach(func(_ SessionID, e *Entry) bool {
		if !e.done {
			n++
		}
		return true
	})
	return n
}

// Step runs one frame of every unfinished entry and returns how many are
// still active afterwards.
func (a *Arena) Step(dt time.Duration) int {
	active := 0
	a.entries.ForEach(func(_ SessionID, e *Entry) bool {
		if e.done {
			return true
		}
		e.Scheduler.Once(dt)
		e.frames++
		e.checkDone()
		if !e.done {
			active++
		}
		return true
	})
	return active
}

func (e *Entry) checkDone() {
	if e.Session.State() == tetris.GameOver {
		e.done = true
		return
	}
	if e.maxPieces > 0 && e.Session.Stats().Pieces() >= e.maxPieces {
		e.done = true
		e.capped = true
	}
}

// Drain steps the arena with a fixed dt until every entry has finished or
// ctx is cancelled.
func (a *Arena) Drain(ctx context.Context, dt time.Duration) error {
	for a.Step(dt) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return nil
}

// Results returns the outcome of every finished entry, ordered by ID.
func (a *Arena) Results() []Result {
	var out []Result
	a.entries.ForEach(func(id SessionID, e *Entry) bool {
		if !e.done {
			return true
		}
		out = append(out, Result{
			ID:     id,
			Seed:   e.Seed,
			Final:  e.Session.Snapshot(),
			Stats:  e.Session.Stats(),
			Frames: e.frames,
			Capped: e.capped,
		})
		return true
	})
	slices.SortFunc(out, func(a, b Result) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

// IDs returns every entry ID in ascending order.
func (a *Arena) IDs() []SessionID {
	ids := make([]SessionID, 0, a.entries.Len())
	a.entries.ForEach(func(id SessionID, _ *Entry) bool {
		ids = append(ids, id)
		return true
	})
	slices.Sort(ids)
	return ids
}
