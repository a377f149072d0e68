package board

import "github.com/domino14/gomoku/move"

// Direction is a unit step along a line of the board.
type Direction struct {
	DR, DC int
}

// Directions are the four line orientations: horizontal, vertical, and the
// two diagonals. Their negations are not listed; callers that need both
// ways walk backwards themselves.
var Directions = [4]Direction{{0, 1}, {1, 0}, {1, 1}, {1, -1}}

// CheckWin scans every stone of side and reports whether any of them starts
// a run of WinLength in one of the four directions.
func (b *Board) CheckWin(side Side) bool {
	c := side.Cell()
	if b.stones < WinLength {
		return false
	}
	for r := 0; r < Size; r++ {
		for col := 0; col < Size; col++ {
			if b.cells[r][col] != c {
				continue
			}
			for _, d := range Directions {
				if b.runFrom(r, col, d, c) >= WinLength {
					return true
				}
			}
		}
	}
	return false
}

// CheckWinAt only looks at lines through m. It agrees with CheckWin when m is
// the most recent stone placed.
func (b *Board) CheckWinAt(m move.Move, side Side) bool {
	if !InBounds(m.Row, m.Col) {
		return false
	}
	c := side.Cell()
	if b.cells[m.Row][m.Col] != c {
		return false
	}
	for _, d := range Directions {
		n := b.runFrom(m.Row, m.Col, d, c) +
			b.runFrom(m.Row, m.Col, Direction{-d.DR, -d.DC}, c) - 1
		if n >= WinLength {
			return true
		}
	}
	return false
}

// WinningLine returns the cells of a five-in-a-row for side, if one exists.
func (b *Board) WinningLine(side Side) ([]move.Move, bool) {
	c := side.Cell()
	for r := 0; r < Size; r++ {
		for col := 0; col < Size; col++ {
			if b.cells[r][col] != c {
				continue
			}
			for _, d := range Directions {
				if b.runFrom(r, col, d, c) >= WinLength {
					line := make([]move.Move, WinLength)
					for k := range line {
						line[k] = move.New(r+k*d.DR, col+k*d.DC)
					}
					return line, true
				}
			}
		}
	}
	return nil, false
}

// runFrom counts consecutive c cells starting at (r, col), capped at
// WinLength.
func (b *Board) runFrom(r, col int, d Direction, c Cell) int {
	n := 0
	for n < WinLength {
		rr, cc := r+n*d.DR, col+n*d.DC
		if !InBounds(rr, cc) || b.cells[rr][cc] != c {
			break
		}
		n++
	}
	return n
}
