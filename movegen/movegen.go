// Package movegen lists the candidate moves for a position. Only empty cells
// near existing stones are considered, since play far from every stone is
// almost never useful.
package movegen

import (
	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/move"
)

// DefaultRadius is the Chebyshev distance from a stone within which empty
// cells are candidates.
const DefaultRadius = 2

// Generate is GenerateWithin(b, DefaultRadius).
func Generate(b *board.Board) []move.Move {
	return GenerateWithin(b, DefaultRadius)
}

// GenerateWithin returns every empty cell within radius of a stone, in
// row-major order. On an empty board it returns only the center. If no cell
// qualifies, every empty cell is returned. A full board yields nothing.
func GenerateWithin(b *board.Board, radius int) []move.Move {
	if b.Stones() == 0 {
		return []move.Move{Center()}
	}
	anchors := MakeAnchors(b, radius)
	moves := make([]move.Move, 0, anchors.count)
	for r := 0; r < board.Size; r++ {
		for c := 0; c < board.Size; c++ {
			if anchors.IsAnchor(r, c) {
				moves = append(moves, move.New(r, c))
			}
		}
	}
	if len(moves) == 0 {
		return AllEmpty(b)
	}
	return moves
}

// AllEmpty returns every empty cell in row-major order.
func AllEmpty(b *board.Board) []move.Move {
	moves := make([]move.Move, 0, b.CountEmpty())
	for r := 0; r < board.Size; r++ {
		for c := 0; c < board.Size; c++ {
			if b.At(r, c) == board.Empty {
				moves = append(moves, move.New(r, c))
			}
		}
	}
	return moves
}

// Center is the middle cell of the board.
func Center() move.Move {
	return move.New(board.Size/2, board.Size/2)
}

// CenterBlock returns the in-bounds cells within radius of the center,
// row-major.
func CenterBlock(radius int) []move.Move {
	ctr := Center()
	var moves []move.Move
	for r := ctr.Row - radius; r <= ctr.Row+radius; r++ {
		for c := ctr.Col - radius; c <= ctr.Col+radius; c++ {
			if board.InBounds(r, c) {
				moves = append(moves, move.New(r, c))
			}
		}
	}
	return moves
}
