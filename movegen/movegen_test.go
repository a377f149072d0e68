package movegen

import (
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/move"
)

func TestGenerateEmptyBoard(t *testing.T) {
	is := is.New(t)
	moves := Generate(board.New())
	is.Equal(moves, []move.Move{{Row: 7, Col: 7}})
}

func TestGenerateSingleStone(t *testing.T) {
	is := is.New(t)
	b := board.New()
	is.NoErr(b.Play(move.New(7, 7), board.SideA))
	moves := Generate(b)
	is.Equal(len(moves), 24) // 5x5 block minus the stone
	is.Equal(moves[0], move.New(5, 5))
	is.Equal(moves[len(moves)-1], move.New(9, 9))
	for _, m := range moves {
		is.Equal(b.At(m.Row, m.Col), board.Empty)
	}
	for i := 1; i < len(moves); i++ {
		is.True(moves[i-1].Index(board.Size) < moves[i].Index(board.Size))
	}
}

func TestGenerateCornerAndDedup(t *testing.T) {
	is := is.New(t)
	b := board.New()
	is.NoErr(b.Play(move.New(0, 0), board.SideA))
	is.NoErr(b.Play(move.New(0, 1), board.SideB))
	moves := Generate(b)
	// rows 0..2, cols 0..3, minus the two stones.
	is.Equal(len(moves), 3*4-2)
	seen := map[move.Move]bool{}
	for _, m := range moves {
		is.True(!seen[m])
		seen[m] = true
	}
}

func TestGenerateWithinRadius(t *testing.T) {
	is := is.New(t)
	b := board.New()
	is.NoErr(b.Play(move.New(7, 7), board.SideA))
	is.Equal(len(GenerateWithin(b, 1)), 8)
	is.Equal(len(GenerateWithin(b, 3)), 48)
	a := MakeAnchors(b, 1)
	is.Equal(a.Count(), 8)
	is.True(a.IsAnchor(6, 6))
	is.True(!a.IsAnchor(7, 7))
	is.True(!a.IsAnchor(5, 5))
	is.True(!a.IsAnchor(-1, 5))
}

func TestGenerateFallbackAndFull(t *testing.T) {
	is := is.New(t)
	b := board.New()
	is.NoErr(b.Play(move.New(0, 0), board.SideA))
	// radius 0 marks nothing, so every empty cell is a candidate.
	is.Equal(len(GenerateWithin(b, 0)), board.Size*board.Size-1)

	full := board.New()
	for r := 0; r < board.Size; r++ {
		for c := 0; c < board.Size; c++ {
			is.NoErr(full.Play(move.New(r, c), board.Side((r+c)%2)))
		}
	}
	is.Equal(len(Generate(full)), 0)
}

func TestCenterBlock(t *testing.T) {
	is := is.New(t)
	block := CenterBlock(3)
	is.Equal(len(block), 49)
	is.Equal(block[0], move.New(4, 4))
	is.Equal(Center(), move.New(7, 7))
}
