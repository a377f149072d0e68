package movegen

import (
	"github.com/domino14/gomoku/board"
)

// Anchors marks the empty cells that lie within some radius of a stone.
type Anchors struct {
	marks  [board.Size * board.Size]bool
	count  int
	radius int
}

// MakeAnchors marks the neighborhood of every stone on b.
func MakeAnchors(b *board.Board, radius int) *Anchors {
	a := &Anchors{radius: radius}
	for r := 0; r < board.Size; r++ {
		for c := 0; c < board.Size; c++ {
			if b.At(r, c) != board.Empty {
				a.markAround(b, r, c)
			}
		}
	}
	return a
}

func (a *Anchors) markAround(b *board.Board, row, col int) {
	for r := row - a.radius; r <= row+a.radius; r++ {
		for c := col - a.radius; c <= col+a.radius; c++ {
			if !board.InBounds(r, c) || b.At(r, c) != board.Empty {
				continue
			}
			pos := r*board.Size + c
			if !a.marks[pos] {
				a.marks[pos] = true
				a.count++
			}
		}
	}
}

// IsAnchor reports whether (row, col) is an empty cell near a stone.
func (a *Anchors) IsAnchor(row, col int) bool {
	if !board.InBounds(row, col) {
		return false
	}
	return a.marks[row*board.Size+col]
}

// Count is the number of marked cells.
func (a *Anchors) Count() int {
	return a.count
}
