package zobrist

import (
	"lukechampine.com/frand"
)

const bignum = 1<<63 - 2

// NumPieces is the number of distinct stone kinds that can sit on a square.
const NumPieces = 2

// generate a zobrist hash for a gomoku position.
// https://en.wikipedia.org/wiki/Zobrist_hashing
// Only stones are hashed; the side to move is not part of the key.
type Zobrist struct {
	posTable [][NumPieces]uint64
	boardDim int
}

// New returns an initialized table for a boardDim x boardDim board.
func New(boardDim int) *Zobrist {
	z := &Zobrist{}
	z.Initialize(boardDim)
	return z
}

func (z *Zobrist) Initialize(boardDim int) {
	z.boardDim = boardDim
	z.posTable = make([][NumPieces]uint64, boardDim*boardDim)
	for i := range z.posTable {
		for j := 0; j < NumPieces; j++ {
			z.posTable[i][j] = frand.Uint64n(bignum) + 1
		}
	}
}

func (z *Zobrist) BoardDim() int {
	return z.boardDim
}

// Hash computes the key of a full position. squares is in row-major order;
// 0 is empty and 1..NumPieces are stones.
func (z *Zobrist) Hash(squares []uint8) uint64 {
	key := uint64(0)
	for i, piece := range squares {
		if piece == 0 {
			continue
		}
		key ^= z.posTable[i][piece-1]
	}
	return key
}

// Toggle adds or removes a stone at idx. Toggling the same stone twice
// restores the original key.
func (z *Zobrist) Toggle(key uint64, idx int, piece uint8) uint64 {
	if piece == 0 {
		return key
	}
	return key ^ z.posTable[idx][piece-1]
}
