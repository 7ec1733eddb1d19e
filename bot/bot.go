// Package bot plays tetris on its own. Plan picks a placement for the active
// piece by searching every reachable rotation and column; Player turns plans
// into intents so the bot drives a session like any other input source.
package bot

import (
	"math"

	"github.com/plus3/blockfall/tetris"
)

// Weights score a board after a candidate placement. Lines is a reward; the
// rest are penalties and are subtracted.
type Weights struct {
	Lines     float64
	Height    float64
	Holes     float64
	Bumpiness float64
}

// DefaultWeights are tuned for long survival rather than tetrises.
var DefaultWeights = Weights{
	Lines:     0.760666,
	Height:    0.510066,
	Holes:     0.35663,
	Bumpiness: 0.184483,
}

// Placement is a plan for one piece: rotate clockwise Rotations times, shift
// to Column, then hard drop.
type Placement struct {
	Rotations int
	Column    int
	Row       int
	Lines     int
	Score     float64
	Moves     []int
}

// Intents expands the placement into the input sequence that performs it.
func (p Placement) Intents() []tetris.Intent {
	out := make([]tetris.Intent, 0, p.Rotations+len(p.Moves)+1)
	for range p.Rotations {
		out = append(out, tetris.RotateCW)
	}
	for _, dx := range p.Moves {
		if dx < 0 {
			out = append(out, tetris.MoveLeft)
		} else {
			out = append(out, tetris.MoveRight)
		}
	}
	return append(out, tetris.HardDropIntent)
}

// Plan returns the best placement for the snapshot's active piece using
// DefaultWeights. ok is false when the session is not running or no
// placement exists.
func Plan(snap tetris.Snapshot) (Placement, bool) {
	return PlanWeighted(snap, DefaultWeights)
}

// PlanWeighted is Plan with explicit weights.
func PlanWeighted(snap tetris.Snapshot, w Weights) (Placement, bool) {
	if snap.State != tetris.Running {
		return Placement{}, false
	}

	best := Placement{Score: math.Inf(-1)}
	found := false
	scratch := tetris.NewBoard()

	piece := snap.Active
	for rot := 0; rot < 4; rot++ {
		if rot > 0 {
			next, ok := tetris.RotateWithKicks(snap.Board, piece, tetris.Clockwise)
			if !ok {
				break
			}
			piece = next
		}

		for _, cand := range reachable(snap.Board, piece) {
			*scratch = *snap.Board
			landed := cand.piece
			landed.Row = tetris.GhostRow(scratch, landed)
			scratch.Merge(landed)
			lines := scratch.ClearCompletedLines()

			score := Evaluate(scratch, lines, w)
			if !found || score > best.Score {
				best = Placement{
					Rotations: rot,
					Column:    landed.Col,
					Row:       landed.Row,
					Lines:     lines,
					Score:     score,
					Moves:     cand.moves,
				}
				found = true
			}
		}
	}
	return best, found
}

type candidate struct {
	piece tetris.Piece
	moves []int
}

// reachable lists every column the piece can slide to from where it is,
// with the single-step moves that get it there.
func reachable(b *tetris.Board, p tetris.Piece) []candidate {
	out := []candidate{{piece: p}}
	for _, dir := range [...]int{-1, 1} {
		cur := p
		var moves []int
		for !tetris.Collides(b, cur.Matrix, cur.Col+dir, cur.Row) {
			cur.Col += dir
			moves = append(moves, dir)
			out = append(out, candidate{piece: cur, moves: append([]int(nil), moves...)})
		}
	}
	return out
}

// Evaluate scores a board after lines were cleared from it.
func Evaluate(b *tetris.Board, lines int, w Weights) float64 {
	aggregate := 0
	bumpiness := 0
	prev := -1
	for col := 0; col < tetris.Cols; col++ {
		h := b.ColumnHeight(col)
		aggregate += h
		if prev >= 0 {
			bumpiness += abs(h - prev)
		}
		prev = h
	}

	return w.Lines*float64(lines) -
		w.Height*float64(aggregate) -
		w.Holes*float64(b.Holes()) -
		w.Bumpiness*float64(bumpiness)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
