package tetris

// KickOffsets are the horizontal shifts tried, in order, when a rotation is
// blocked. The same table applies to every kind and orientation.
var KickOffsets = [...]int{0, -1, 1, -2, 2}

// Collides reports whether matrix m placed with its top-left corner at
// (col, row) overlaps a wall, the floor, or a locked cell. Space above the
// board is always free.
func Collides(b *Board, m Shape, col, row int) bool {
	for y := range m {
		for x, filled := range m[y] {
			if !filled {
				continue
			}

			gx := col + x
			gy := row + y

			if gx < 0 || gx >= Cols || gy >= Rows {
				return true
			}

			if gy >= 0 && b.IsOccupied(gx, gy) {
				return true
			}
		}
	}
	return false
}

// GhostRow returns the lowest row p can fall to from its current row without
// colliding. The piece itself is not modified.
func GhostRow(b *Board, p Piece) int {
	row := p.Row
	for !Collides(b, p.Matrix, p.Col, row+1) {
		row++
	}
	return row
}

// RotateWithKicks turns p in the given direction and returns the first kicked
// placement that fits. ok is false when every kick offset collides.
func RotateWithKicks(b *Board, p Piece, dir Direction) (Piece, bool) {
	rotated := Rotate(p.Matrix, dir)
	for _, kick := range KickOffsets {
		if !Collides(b, rotated, p.Col+kick, p.Row) {
			p.Matrix = rotated
			p.Col += kick
			return p, true
		}
	}
	return p, false
}

// TryMove shifts the active piece by (dx, dy) if the destination is free.
// Blocked moves and moves outside the Running state leave everything
// unchanged and return false.
func (s *Session) TryMove(dx, dy int) bool {
	if s.state != Running {
		return false
	}
	if Collides(s.board, s.active.Matrix, s.active.Col+dx, s.active.Row+dy) {
		return false
	}
	s.active.Col += dx
	s.active.Row += dy
	return true
}

// TryRotate turns the active piece a quarter, trying each of KickOffsets in
// order. It returns false and leaves the piece untouched when every offset
// collides.
func (s *Session) TryRotate(dir Direction) bool {
	if s.state != Running {
		return false
	}
	rotated, ok := RotateWithKicks(s.board, s.active, dir)
	if !ok {
		return false
	}
	s.active = rotated
	return true
}

// MoveToColumn slides the active piece one column at a time toward target,
// stopping early at the first blocked step. It reports whether the piece
// moved at all.
func (s *Session) MoveToColumn(target int) bool {
	moved := false
	for s.active.Col < target && s.TryMove(1, 0) {
		moved = true
	}
	for s.active.Col > target && s.TryMove(-1, 0) {
		moved = true
	}
	return moved
}

// GhostRow returns the landing row of the active piece.
func (s *Session) GhostRow() int {
	return GhostRow(s.board, s.active)
}
