package tetris_test

import (
	"strings"
	"testing"

	"github.com/plus3/blockfall/tetris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fillRow(b *tetris.Board, row int, kind tetris.Cell, except ...int) {
	skip := make(map[int]bool, len(except))
	for _, x := range except {
		skip[x] = true
	}
	for x := 0; x < tetris.Cols; x++ {
		if !skip[x] {
			b.Set(x, row, kind)
		}
	}
}

func TestBoardIsOccupied(t *testing.T) {
	b := tetris.NewBoard()
	b.Set(4, 0, tetris.T)

	assert.True(t, b.IsOccupied(4, 0))
	assert.False(t, b.IsOccupied(5, 0))
	assert.False(t, b.IsOccupied(4, -1), "rows above the board are never occupied")
	assert.False(t, b.IsOccupied(-1, 5))
	assert.False(t, b.IsOccupied(tetris.Cols, 5))
	assert.False(t, b.IsOccupied(4, tetris.Rows))
}

func TestBoardMerge(t *testing.T) {
	b := tetris.NewBoard()
	p := tetris.Spawn(tetris.T)

	// spawned at row -1: only the bottom row of the T is on the board
	b.Merge(p)
	assert.Equal(t, 3, b.Filled())
	assert.Equal(t, tetris.T, b.Cell(3, 0))
	assert.Equal(t, tetris.T, b.Cell(4, 0))
	assert.Equal(t, tetris.T, b.Cell(5, 0))

	p.Row = 10
	b.Merge(p)
	assert.Equal(t, 7, b.Filled())
	assert.Equal(t, tetris.T, b.Cell(4, 10))
	assert.True(t, b.IsOccupied(3, 11))
}

func TestClearCompletedLines(t *testing.T) {
	t.Run("non contiguous rows", func(t *testing.T) {
		b := tetris.NewBoard()
		before := make(map[int][tetris.Cols]tetris.Cell)
		for y := 0; y < tetris.Rows; y++ {
			if y == 3 || y == 5 {
				fillRow(b, y, tetris.I)
				continue
			}
			fillRow(b, y, tetris.Kinds[y%len(tetris.Kinds)], y%tetris.Cols)
			before[y] = b.Row(y)
		}

		cleared := b.ClearCompletedLines()
		require.Equal(t, 2, cleared)

		empty := [tetris.Cols]tetris.Cell{}
		assert.Equal(t, empty, b.Row(0))
		assert.Equal(t, empty, b.Row(1))

		next := 2
		for y := 0; y < tetris.Rows; y++ {
			if y == 3 || y == 5 {
				continue
			}
			assert.Equal(t, before[y], b.Row(next), "original row %d should now be row %d", y, next)
			next++
		}
		assert.Equal(t, tetris.Rows, next)
	})

	t.Run("contiguous rows at the bottom", func(t *testing.T) {
		b := tetris.NewBoard()
		for y := tetris.Rows - 4; y < tetris.Rows; y++ {
			fillRow(b, y, tetris.L)
		}
		b.Set(0, tetris.Rows-5, tetris.Z)

		assert.Equal(t, 4, b.ClearCompletedLines())
		assert.Equal(t, 1, b.Filled())
		assert.Equal(t, tetris.Z, b.Cell(0, tetris.Rows-1))
	})

	t.Run("top row", func(t *testing.T) {
		b := tetris.NewBoard()
		fillRow(b, 0, tetris.O)
		assert.Equal(t, 1, b.ClearCompletedLines())
		assert.Equal(t, 0, b.Filled())
	})

	t.Run("nothing to clear", func(t *testing.T) {
		b := tetris.NewBoard()
		fillRow(b, tetris.Rows-1, tetris.S, 9)
		assert.Equal(t, 0, b.ClearCompletedLines())
		assert.Equal(t, tetris.Cols-1, b.Filled())
	})
}

func TestParseBoard(t *testing.T) {
	text := `
		..........
		T.........
		TTI..OO..J
	`
	b, err := tetris.ParseBoard(text)
	require.NoError(t, err)

	assert.Equal(t, tetris.T, b.Cell(0, tetris.Rows-2))
	assert.Equal(t, tetris.I, b.Cell(2, tetris.Rows-1))
	assert.Equal(t, tetris.J, b.Cell(9, tetris.Rows-1))
	assert.Equal(t, 7, b.Filled())

	again, err := tetris.ParseBoard(b.String())
	require.NoError(t, err)
	assert.Equal(t, b.String(), again.String())

	_, err = tetris.ParseBoard("TTT")
	assert.Error(t, err)

	_, err = tetris.ParseBoard("..........\n....X.....")
	assert.Error(t, err)

	_, err = tetris.ParseBoard(strings.Repeat("..........\n", tetris.Rows+1))
	assert.Error(t, err)
}

func TestBoardMetrics(t *testing.T) {
	b, err := tetris.ParseBoard(`
		..T.......
		.TT.......
		..T..O....
		.....O....
	`)
	require.NoError(t, err)

	assert.Equal(t, 4, b.Height())
	assert.Equal(t, 4, b.ColumnHeight(2))
	assert.Equal(t, 3, b.ColumnHeight(1))
	assert.Equal(t, 0, b.ColumnHeight(9))
	// two gaps under the T in column 1, one in column 2
	assert.Equal(t, 3, b.Holes())

	c := b.Clone()
	c.Reset()
	assert.Equal(t, 0, c.Filled())
	assert.Equal(t, 6, b.Filled())
}
