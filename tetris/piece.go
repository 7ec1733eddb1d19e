// Package tetris implements a single-player falling-block game engine:
// an occupancy board, a 7-bag piece generator, a collision resolver with
// wall kicks, and a frame-driven session state machine with hold, ghost
// projection and classic line-clear scoring.
//
// The package performs no I/O and does no rendering. Hosts drive a Session
// with Tick and Apply and read it back through Snapshot.
package tetris

import "fmt"

// Cell is the content of a single board cell. The zero value is Empty; every
// other value names the tetromino that was locked there.
type Cell uint8

const (
	Empty Cell = iota
	I
	O
	T
	S
	Z
	J
	L
)

// Kinds lists the seven tetromino kinds in canonical bag order.
var Kinds = [...]Cell{I, O, T, S, Z, J, L}

func (c Cell) String() string {
	switch c {
	case Empty:
		return "."
	case I:
		return "I"
	case O:
		return "O"
	case T:
		return "T"
	case S:
		return "S"
	case Z:
		return "Z"
	case J:
		return "J"
	case L:
		return "L"
	default:
		return fmt.Sprintf("Cell(%d)", uint8(c))
	}
}

// IsPiece reports whether c is one of the seven tetromino kinds.
func (c Cell) IsPiece() bool {
	return c >= I && c <= L
}

// ParseCell converts a single-letter kind (or "." for empty) into a Cell.
func ParseCell(r rune) (Cell, error) {
	switch r {
	case '.', ' ':
		return Empty, nil
	case 'I':
		return I, nil
	case 'O':
		return O, nil
	case 'T':
		return T, nil
	case 'S':
		return S, nil
	case 'Z':
		return Z, nil
	case 'J':
		return J, nil
	case 'L':
		return L, nil
	default:
		return Empty, fmt.Errorf("unknown cell %q", r)
	}
}

// Shape is a square occupancy matrix indexed [row][col].
type Shape [][]bool

var shapes = map[Cell][]string{
	I: {
		"....",
		"####",
		"....",
		"....",
	},
	O: {
		"##",
		"##",
	},
	T: {
		".#.",
		"###",
		"...",
	},
	S: {
		".##",
		"##.",
		"...",
	},
	Z: {
		"##.",
		".##",
		"...",
	},
	J: {
		"#..",
		"###",
		"...",
	},
	L: {
		"..#",
		"###",
		"...",
	},
}

// ShapeOf returns a fresh copy of the spawn orientation for kind.
// It panics if kind is not a tetromino.
func ShapeOf(kind Cell) Shape {
	rows, ok := shapes[kind]
	if !ok {
		panic("tetris: no shape for " + kind.String())
	}

	m := make(Shape, len(rows))
	for y, row := range rows {
		m[y] = make([]bool, len(row))
		for x, ch := range row {
			m[y][x] = ch == '#'
		}
	}
	return m
}

// Clone returns a deep copy of the matrix.
func (m Shape) Clone() Shape {
	c := make(Shape, len(m))
	for y := range m {
		c[y] = make([]bool, len(m[y]))
		copy(c[y], m[y])
	}
	return c
}

// Equal reports whether two matrices have identical occupancy.
func (m Shape) Equal(other Shape) bool {
	if len(m) != len(other) {
		return false
	}
	for y := range m {
		if len(m[y]) != len(other[y]) {
			return false
		}
		for x := range m[y] {
			if m[y][x] != other[y][x] {
				return false
			}
		}
	}
	return true
}

// Bounds returns the leftmost and rightmost occupied columns of the matrix.
// ok is false for a matrix with no occupied cells.
func (m Shape) Bounds() (minX, maxX int, ok bool) {
	minX, maxX = len(m), -1
	for y := range m {
		for x, filled := range m[y] {
			if !filled {
				continue
			}
			minX = min(minX, x)
			maxX = max(maxX, x)
		}
	}
	return minX, maxX, maxX >= 0
}

// Direction selects a quarter turn.
type Direction int

const (
	Clockwise        Direction = 1
	CounterClockwise Direction = -1
)

// Rotate returns m turned a quarter in the given direction. The input is
// never modified.
func Rotate(m Shape, dir Direction) Shape {
	n := len(m)
	rotated := make(Shape, n)
	for i := range rotated {
		rotated[i] = make([]bool, n)
	}

	for y := range n {
		for x := range n {
			if dir == Clockwise {
				rotated[x][n-1-y] = m[y][x]
			} else {
				rotated[n-1-x][y] = m[y][x]
			}
		}
	}

	return rotated
}

// Piece is the falling tetromino. Col and Row locate the top-left corner of
// Matrix on the board; Row is negative only while the piece is entering.
type Piece struct {
	Kind   Cell
	Matrix Shape
	Col    int
	Row    int
}

// Spawn builds a piece of the given kind centred horizontally one row above
// the visible board.
func Spawn(kind Cell) Piece {
	m := ShapeOf(kind)
	return Piece{
		Kind:   kind,
		Matrix: m,
		Col:    (Cols - len(m[0])) / 2,
		Row:    -1,
	}
}

// Cells calls fn with the absolute board coordinates of every occupied cell.
func (p Piece) Cells(fn func(col, row int)) {
	for y := range p.Matrix {
		for x, filled := range p.Matrix[y] {
			if filled {
				fn(p.Col+x, p.Row+y)
			}
		}
	}
}
