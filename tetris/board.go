package tetris

import (
	"fmt"
	"strings"
)

const (
	Rows = 20
	Cols = 10
)

// Board is the fixed-size occupancy grid of locked cells.
type Board struct {
	cells [Rows][Cols]Cell
}

// NewBoard returns an empty board.
func NewBoard() *Board {
	return &Board{}
}

// ParseBoard builds a board from the format produced by String: one line per
// row, "." for empty cells and a kind letter otherwise. Fewer than Rows lines
// are aligned to the bottom of the board; blank lines are ignored.
func ParseBoard(text string) (*Board, error) {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) > Rows {
		return nil, fmt.Errorf("board has %d rows, want at most %d", len(lines), Rows)
	}

	b := NewBoard()
	offset := Rows - len(lines)
	for y, line := range lines {
		runes := []rune(line)
		if len(runes) != Cols {
			return nil, fmt.Errorf("row %d has %d cells, want %d", y, len(runes), Cols)
		}
		for x, r := range runes {
			c, err := ParseCell(r)
			if err != nil {
				return nil, fmt.Errorf("row %d col %d: %w", y, x, err)
			}
			b.cells[offset+y][x] = c
		}
	}
	return b, nil
}

// IsOccupied reports whether (col, row) is inside the board and holds a
// locked cell. Cells above the board are never occupied.
func (b *Board) IsOccupied(col, row int) bool {
	if row < 0 || row >= Rows || col < 0 || col >= Cols {
		return false
	}
	return b.cells[row][col] != Empty
}

// Cell returns the content at (col, row), or Empty when out of range.
func (b *Board) Cell(col, row int) Cell {
	if row < 0 || row >= Rows || col < 0 || col >= Cols {
		return Empty
	}
	return b.cells[row][col]
}

// Set writes c at (col, row). Out of range writes are ignored.
func (b *Board) Set(col, row int, c Cell) {
	if row < 0 || row >= Rows || col < 0 || col >= Cols {
		return
	}
	b.cells[row][col] = c
}

// Row returns a copy of a single row.
func (b *Board) Row(row int) [Cols]Cell {
	return b.cells[row]
}

// Reset empties every cell.
func (b *Board) Reset() {
	b.cells = [Rows][Cols]Cell{}
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	c := *b
	return &c
}

// Merge writes the piece's occupied cells into the grid. Cells above the
// board are dropped.
func (b *Board) Merge(p Piece) {
	p.Cells(func(col, row int) {
		if row >= 0 && row < Rows && col >= 0 && col < Cols {
			b.cells[row][col] = p.Kind
		}
	})
}

// ClearCompletedLines removes every full row, shifting the rows above it
// down and inserting empty rows at the top. It returns the number of rows
// removed.
func (b *Board) ClearCompletedLines() int {
	cleared := 0
	for y := Rows - 1; y >= 0; y-- {
		if !b.rowFull(y) {
			continue
		}

		copy(b.cells[1:y+1], b.cells[0:y])
		b.cells[0] = [Cols]Cell{}
		cleared++

		// the row that slid into y has not been checked yet
		y++
	}
	return cleared
}

func (b *Board) rowFull(y int) bool {
	for _, c := range b.cells[y] {
		if c == Empty {
			return false
		}
	}
	return true
}

// ColumnHeight returns how many rows tall the stack is in column col.
func (b *Board) ColumnHeight(col int) int {
	for y := 0; y < Rows; y++ {
		if b.cells[y][col] != Empty {
			return Rows - y
		}
	}
	return 0
}

// Height returns the height of the tallest column.
func (b *Board) Height() int {
	h := 0
	for x := 0; x < Cols; x++ {
		h = max(h, b.ColumnHeight(x))
	}
	return h
}

// Holes counts empty cells that have a locked cell somewhere above them.
func (b *Board) Holes() int {
	holes := 0
	for x := 0; x < Cols; x++ {
		covered := false
		for y := 0; y < Rows; y++ {
			if b.cells[y][x] != Empty {
				covered = true
			} else if covered {
				holes++
			}
		}
	}
	return holes
}

// Filled returns the number of non-empty cells.
func (b *Board) Filled() int {
	n := 0
	for y := range b.cells {
		for _, c := range b.cells[y] {
			if c != Empty {
				n++
			}
		}
	}
	return n
}

func (b *Board) String() string {
	var sb strings.Builder
	sb.Grow(Rows * (Cols + 1))
	for y := range b.cells {
		for _, c := range b.cells[y] {
			sb.WriteString(c.String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
