package tetris_test

import (
	"testing"

	"github.com/plus3/blockfall/tetris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollisionBoundary(t *testing.T) {
	b := tetris.NewBoard()

	for _, kind := range tetris.Kinds {
		for _, dir := range []tetris.Direction{tetris.Clockwise, tetris.CounterClockwise} {
			m := tetris.ShapeOf(kind)
			for turn := range 4 {
				minX, maxX, ok := m.Bounds()
				require.True(t, ok)

				leftmost := -minX
				rightmost := tetris.Cols - 1 - maxX
				row := 5

				assert.True(t, tetris.Collides(b, m, leftmost-1, row), "%s turn %d: past the left wall", kind, turn)
				assert.True(t, tetris.Collides(b, m, rightmost+1, row), "%s turn %d: past the right wall", kind, turn)
				for col := leftmost; col <= rightmost; col++ {
					assert.False(t, tetris.Collides(b, m, col, row), "%s turn %d col %d", kind, turn, col)
				}

				m = tetris.Rotate(m, dir)
			}
		}
	}
}

func TestCollidesFloorAndStack(t *testing.T) {
	b := tetris.NewBoard()
	o := tetris.ShapeOf(tetris.O)

	assert.False(t, tetris.Collides(b, o, 4, tetris.Rows-2))
	assert.True(t, tetris.Collides(b, o, 4, tetris.Rows-1), "below the floor")

	b.Set(5, tetris.Rows-1, tetris.J)
	assert.True(t, tetris.Collides(b, o, 4, tetris.Rows-2))
	assert.False(t, tetris.Collides(b, o, 6, tetris.Rows-2))
}

func TestCollidesAboveBoardIsFree(t *testing.T) {
	b := tetris.NewBoard()
	fillRow(b, 0, tetris.Z)

	i := tetris.ShapeOf(tetris.I)
	// the I occupies matrix row 1, so row -2 puts it at board row -1
	assert.False(t, tetris.Collides(b, i, 3, -2))
	assert.True(t, tetris.Collides(b, i, 3, -1))
}

func TestGhostRow(t *testing.T) {
	b := tetris.NewBoard()
	for _, kind := range tetris.Kinds {
		p := tetris.Spawn(kind)
		assert.Equal(t, tetris.Rows-2, tetris.GhostRow(b, p), "kind %s", kind)
		assert.Equal(t, -1, p.Row, "ghost projection must not move the piece")
	}

	b.Set(4, 10, tetris.S)
	p := tetris.Spawn(tetris.T)
	// T bottom row spans cols 3..5 at matrix row 1
	assert.Equal(t, 8, tetris.GhostRow(b, p))
}

func TestRotateWithKicks(t *testing.T) {
	t.Run("no shift preferred", func(t *testing.T) {
		b := tetris.NewBoard()
		p := tetris.Spawn(tetris.T)
		p.Row = 5

		rotated, ok := tetris.RotateWithKicks(b, p, tetris.Clockwise)
		require.True(t, ok)
		assert.Equal(t, p.Col, rotated.Col)
		assert.True(t, tetris.Rotate(p.Matrix, tetris.Clockwise).Equal(rotated.Matrix))
	})

	t.Run("kicks off the left wall", func(t *testing.T) {
		b := tetris.NewBoard()
		vertical := tetris.Rotate(tetris.ShapeOf(tetris.I), tetris.Clockwise)
		p := tetris.Piece{Kind: tetris.I, Matrix: vertical, Col: -2, Row: 5}
		require.False(t, tetris.Collides(b, p.Matrix, p.Col, p.Row))

		rotated, ok := tetris.RotateWithKicks(b, p, tetris.Clockwise)
		require.True(t, ok)
		// 0, -1, +1 and -2 all poke through the wall; +2 is the first fit
		assert.Equal(t, 0, rotated.Col)
		assert.Equal(t, -2, p.Col)
	})

	t.Run("left kick tried before right", func(t *testing.T) {
		b := tetris.NewBoard()
		p := tetris.Spawn(tetris.T)
		p.Row = 5
		// block the stem of the unshifted clockwise T
		b.Set(p.Col+1, 7, tetris.O)
		require.False(t, tetris.Collides(b, p.Matrix, p.Col, p.Row))

		rotated, ok := tetris.RotateWithKicks(b, p, tetris.Clockwise)
		require.True(t, ok)
		assert.Equal(t, p.Col-1, rotated.Col)
	})

	t.Run("blocked in a well", func(t *testing.T) {
		b := tetris.NewBoard()
		for y := 10; y < tetris.Rows; y++ {
			fillRow(b, y, tetris.L, 4)
		}
		vertical := tetris.Rotate(tetris.ShapeOf(tetris.I), tetris.Clockwise)
		p := tetris.Piece{Kind: tetris.I, Matrix: vertical, Col: 2, Row: 12}
		require.False(t, tetris.Collides(b, p.Matrix, p.Col, p.Row))

		rotated, ok := tetris.RotateWithKicks(b, p, tetris.Clockwise)
		assert.False(t, ok)
		assert.Equal(t, p.Col, rotated.Col)
		assert.True(t, vertical.Equal(rotated.Matrix))
	})
}
