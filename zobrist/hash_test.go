package zobrist

import (
	"testing"

	"github.com/matryer/is"
)

func TestPlayAndUnplay(t *testing.T) {
	is := is.New(t)
	z := New(15)
	squares := make([]uint8, 15*15)
	squares[112] = 1
	squares[113] = 2
	h := z.Hash(squares)

	// play and unplay a stone. The final hash should be the same as the
	// beginning hash.
	h1 := z.Toggle(h, 40, 2)
	h2 := z.Toggle(h1, 40, 2)
	is.Equal(h, h2)
	is.True(h1 != h2) // extremely unlikely to collide, but this is not technically always true.
}

func TestHashAfterMakingPlay(t *testing.T) {
	is := is.New(t)
	z := New(15)
	squares := make([]uint8, 15*15)
	h := z.Hash(squares)
	is.Equal(h, uint64(0))

	h = z.Toggle(h, 0, 1)
	h = z.Toggle(h, 224, 2)
	squares[0] = 1
	squares[224] = 2
	is.Equal(h, z.Hash(squares))

	// different pieces on the same square hash differently.
	is.True(z.Toggle(0, 5, 1) != z.Toggle(0, 5, 2))
	is.Equal(z.Toggle(h, 7, 0), h)
	is.Equal(z.BoardDim(), 15)
}
