package tetris

import (
	"fmt"
	"maps"
	"math/rand/v2"
	"time"
)

// State is the lifecycle state of a Session.
type State int

const (
	Ready State = iota
	Running
	Paused
	GameOver
)

func (s State) String() string {
	switch s {
	case Ready:
		return "READY"
	case Running:
		return "RUNNING"
	case Paused:
		return "PAUSED"
	case GameOver:
		return "GAME OVER"
	default:
		return "UNKNOWN"
	}
}

// DefaultMaxStep bounds the elapsed time a single Tick may account for, so a
// stalled host does not drop several rows at once.
const DefaultMaxStep = 50 * time.Millisecond

// BestScoreReporter is told about a new best score when a game ends.
type BestScoreReporter interface {
	ReportBest(score int) error
}

// ReporterFunc adapts a function to BestScoreReporter.
type ReporterFunc func(score int) error

func (f ReporterFunc) ReportBest(score int) error {
	return f(score)
}

// Stats counts per-game piece activity.
type Stats struct {
	Spawned   map[Cell]int
	Locks     int
	Holds     int
	HardDrops int
	SoftDrops int
}

// Pieces returns the total number of pieces spawned.
func (st Stats) Pieces() int {
	n := 0
	for _, c := range st.Spawned {
		n += c
	}
	return n
}

// Session is one play-through: board, bag, active/next/held pieces, score
// progression and the lifecycle state machine. A Session is not safe for
// concurrent use; all calls must come from the goroutine that drives it.
type Session struct {
	board *Board
	bag   *Bag

	active   Piece
	next     Cell
	hold     Cell
	holdUsed bool

	state    State
	score    int
	lines    int
	level    int
	best     int
	interval time.Duration
	acc      time.Duration
	maxStep  time.Duration

	stats    Stats
	reporter BestScoreReporter
	onEvent  EventHandler
	err      error
}

// Option configures a Session.
type Option func(*Session)

// WithRand sets the random source used by the piece bag.
func WithRand(src *rand.Rand) Option {
	return func(s *Session) {
		s.bag = NewBag(src)
	}
}

// WithSeed makes the piece sequence deterministic.
func WithSeed(seed int64) Option {
	return WithRand(NewRand(seed))
}

// WithBestScore seeds the best score loaded from storage.
func WithBestScore(best int) Option {
	return func(s *Session) {
		s.best = best
	}
}

// WithReporter sets the collaborator told about new best scores.
func WithReporter(r BestScoreReporter) Option {
	return func(s *Session) {
		s.reporter = r
	}
}

// WithEventHandler registers a handler for session events.
func WithEventHandler(h EventHandler) Option {
	return func(s *Session) {
		s.onEvent = h
	}
}

// WithMaxStep overrides DefaultMaxStep. Non-positive values are ignored.
func WithMaxStep(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.maxStep = d
		}
	}
}

// NewSession creates a session in the Ready state with its first two pieces
// already drawn.
func NewSession(opts ...Option) *Session {
	s := &Session{
		board:   NewBoard(),
		maxStep: DefaultMaxStep,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.bag == nil {
		s.bag = NewBag(nil)
	}
	s.reset()
	return s
}

func (s *Session) reset() {
	s.board.Reset()
	s.score = 0
	s.lines = 0
	s.level = 1
	s.interval = DropInterval(1)
	s.acc = 0
	s.hold = Empty
	s.holdUsed = false
	s.stats = Stats{Spawned: make(map[Cell]int, len(Kinds))}
	s.err = nil

	s.bag.Refill()
	s.spawn(s.bag.TakeNext())
	s.next = s.bag.TakeNext()
}

// Start begins a game from Ready or GameOver. It has no effect while a game
// is running or paused.
func (s *Session) Start() bool {
	if s.state == Running || s.state == Paused {
		return false
	}
	s.begin()
	return true
}

// Restart discards the current game, whatever its state, and starts anew.
func (s *Session) Restart() {
	s.begin()
}

func (s *Session) begin() {
	s.reset()
	s.state = Running
	s.emit(EventStarted, Empty, 0)
}

// TogglePause switches between Running and Paused. It does nothing in the
// Ready and GameOver states.
func (s *Session) TogglePause() bool {
	switch s.state {
	case Running:
		s.state = Paused
		s.emit(EventPaused, Empty, 0)
	case Paused:
		s.state = Running
		s.emit(EventResumed, Empty, 0)
	default:
		return false
	}
	return true
}

// Tick advances the gravity clock by dt, clamped to the max step. Once the
// accumulated time reaches the drop interval the piece falls one row, or
// locks if it cannot.
func (s *Session) Tick(dt time.Duration) {
	if s.state != Running {
		return
	}

	s.acc += min(max(dt, 0), s.maxStep)
	if s.acc < s.interval {
		return
	}
	s.acc = 0

	if !s.TryMove(0, 1) {
		s.lock()
	}
}

// HardDrop drops the active piece straight to its landing row and locks it.
// It returns the number of rows fallen.
func (s *Session) HardDrop() int {
	if s.state != Running {
		return 0
	}
	row := GhostRow(s.board, s.active)
	dist := row - s.active.Row
	s.active.Row = row
	s.stats.HardDrops++
	s.lock()
	return dist
}

// SoftDrop moves the active piece down one row for a small bonus. When the
// piece is resting it locks instead and SoftDrop returns false.
func (s *Session) SoftDrop() bool {
	if s.state != Running {
		return false
	}
	if s.TryMove(0, 1) {
		s.score += SoftDropBonus
		s.stats.SoftDrops++
		return true
	}
	s.lock()
	return false
}

// Hold stashes the active piece. With an empty slot the next piece comes in;
// otherwise the held kind is swapped back in at the spawn position. Hold is
// available once per locked piece.
func (s *Session) Hold() bool {
	if s.state != Running || s.holdUsed {
		return false
	}
	s.holdUsed = true

	current := s.active.Kind
	if s.hold == Empty {
		s.hold = current
		s.spawn(s.next)
		s.next = s.bag.TakeNext()
	} else {
		swap := s.hold
		s.hold = current
		s.spawn(swap)
	}
	s.stats.Holds++
	s.emit(EventHold, current, 0)

	if Collides(s.board, s.active.Matrix, s.active.Col, s.active.Row) {
		s.endGame()
	}
	return true
}

func (s *Session) lock() {
	locked := s.active.Kind
	s.board.Merge(s.active)
	s.stats.Locks++
	s.emit(EventLocked, locked, 0)

	s.scoreLines(s.board.ClearCompletedLines())
	s.holdUsed = false

	s.spawn(s.next)
	s.next = s.bag.TakeNext()

	if Collides(s.board, s.active.Matrix, s.active.Col, s.active.Row) {
		s.endGame()
	}
}

func (s *Session) scoreLines(cleared int) {
	if cleared == 0 {
		return
	}

	s.score += LineClearReward(cleared, s.level)
	s.lines += cleared

	previous := s.level
	s.level = LevelForLines(s.lines)
	s.interval = DropInterval(s.level)

	s.emit(EventLinesCleared, Empty, cleared)
	if s.level > previous {
		s.emit(EventLevelUp, Empty, 0)
	}
}

func (s *Session) spawn(kind Cell) {
	s.active = Spawn(kind)
	s.stats.Spawned[kind]++
}

func (s *Session) endGame() {
	s.state = GameOver

	if s.score > s.best {
		s.best = s.score
		if s.reporter != nil {
			if err := s.reporter.ReportBest(s.best); err != nil {
				s.err = fmt.Errorf("report best score: %w", err)
			}
		}
	}

	s.emit(EventGameOver, Empty, 0)
}

func (s *Session) emit(kind EventKind, piece Cell, cleared int) {
	if s.onEvent == nil {
		return
	}
	s.onEvent(Event{
		Kind:    kind,
		Piece:   piece,
		Cleared: cleared,
		Score:   s.score,
		Lines:   s.lines,
		Level:   s.level,
	})
}

// Board returns the live board. Hosts should render from Snapshot instead;
// direct access exists for fixtures and analysis.
func (s *Session) Board() *Board { return s.board }

// Active returns a copy of the falling piece.
func (s *Session) Active() Piece {
	p := s.active
	p.Matrix = p.Matrix.Clone()
	return p
}

func (s *Session) State() State            { return s.state }
func (s *Session) Score() int              { return s.score }
func (s *Session) Lines() int              { return s.lines }
func (s *Session) Level() int              { return s.level }
func (s *Session) Best() int               { return s.best }
func (s *Session) Next() Cell              { return s.next }
func (s *Session) Held() Cell              { return s.hold }
func (s *Session) HoldUsed() bool          { return s.holdUsed }
func (s *Session) Interval() time.Duration { return s.interval }

// Err returns the last error reported by the best-score collaborator during
// this game, if any.
func (s *Session) Err() error { return s.err }

// Stats returns a copy of the per-game counters.
func (s *Session) Stats() Stats {
	st := s.stats
	st.Spawned = maps.Clone(s.stats.Spawned)
	return st
}
