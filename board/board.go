// Package board holds the gomoku grid, the two sides, and win detection.
package board

import (
	"errors"
	"fmt"
	"strings"

	"github.com/domino14/gomoku/move"
	"github.com/domino14/gomoku/zobrist"
)

const (
	// Size is the side length of the square board.
	Size = 15
	// WinLength is how many stones in a row win the game.
	WinLength = 5
)

var (
	ErrOutOfBounds   = errors.New("move is out of bounds")
	ErrOccupied      = errors.New("square is occupied")
	ErrBadBoardText  = errors.New("badly formatted board")
	ErrInvalidSide   = errors.New("invalid side")
	hasher           = zobrist.New(Size)
	displayForCell   = [...]byte{Empty: '.', SideACell: 'X', SideBCell: 'O'}
	defaultSideNames = [...]string{SideA: "A", SideB: "B"}
)

// Cell is the content of a single square.
type Cell uint8

const (
	Empty Cell = iota
	SideACell
	SideBCell
)

func (c Cell) String() string {
	switch c {
	case SideACell:
		return "A"
	case SideBCell:
		return "B"
	}
	return "empty"
}

// Side is one of the two players. SideA is the maximizing side for
// evaluation purposes.
type Side uint8

const (
	SideA Side = iota
	SideB
)

// Opponent returns the other side.
func (s Side) Opponent() Side {
	if s == SideA {
		return SideB
	}
	return SideA
}

// Cell is the stone this side places.
func (s Side) Cell() Cell {
	if s == SideA {
		return SideACell
	}
	return SideBCell
}

func (s Side) String() string {
	if s > SideB {
		return "none"
	}
	return defaultSideNames[s]
}

// SideFromString parses "a"/"b" (also "x"/"o").
func SideFromString(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "a", "x", "sidea":
		return SideA, nil
	case "b", "o", "sideb":
		return SideB, nil
	}
	return SideA, fmt.Errorf("%w: %q", ErrInvalidSide, s)
}

// Board is a dense Size x Size grid. The zobrist key and the stone count are
// kept in step with every mutation, so copying a Board by value yields an
// independent position.
type Board struct {
	cells  [Size][Size]Cell
	key    uint64
	stones int
}

// New returns an empty board.
func New() *Board {
	return &Board{}
}

// InBounds is a pure range check against [0, Size).
func InBounds(row, col int) bool {
	return row >= 0 && col >= 0 && row < Size && col < Size
}

func (b *Board) At(row, col int) Cell {
	return b.cells[row][col]
}

func (b *Board) IsEmpty(row, col int) bool {
	return InBounds(row, col) && b.cells[row][col] == Empty
}

// Hash is the zobrist digest of the stones on the board.
func (b *Board) Hash() uint64 {
	return b.key
}

func (b *Board) Stones() int {
	return b.stones
}

func (b *Board) CountEmpty() int {
	return Size*Size - b.stones
}

func (b *Board) IsFull() bool {
	return b.stones == Size*Size
}

func (b *Board) Clone() *Board {
	c := *b
	return &c
}

func (b *Board) Reset() {
	*b = Board{}
}

func (b *Board) set(row, col int, c Cell) {
	prev := b.cells[row][col]
	if prev == c {
		return
	}
	idx := row*Size + col
	b.key = hasher.Toggle(b.key, idx, uint8(prev))
	b.key = hasher.Toggle(b.key, idx, uint8(c))
	if prev == Empty {
		b.stones++
	} else if c == Empty {
		b.stones--
	}
	b.cells[row][col] = c
}

// Play validates and places a stone for side. The board is left untouched
// when an error is returned.
func (b *Board) Play(m move.Move, side Side) error {
	if !InBounds(m.Row, m.Col) {
		return fmt.Errorf("%w: %v", ErrOutOfBounds, m)
	}
	if b.cells[m.Row][m.Col] != Empty {
		return fmt.Errorf("%w: %v", ErrOccupied, m)
	}
	b.set(m.Row, m.Col, side.Cell())
	return nil
}

// WithStone places a stone for side at m, runs fn, then puts back whatever
// was on the square before. The square is restored even if fn panics.
func (b *Board) WithStone(m move.Move, side Side, fn func()) {
	prev := b.cells[m.Row][m.Col]
	b.set(m.Row, m.Col, side.Cell())
	defer b.set(m.Row, m.Col, prev)
	fn()
}

// Squares returns the cells in row-major order.
func (b *Board) Squares() []uint8 {
	sq := make([]uint8, 0, Size*Size)
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			sq = append(sq, uint8(b.cells[r][c]))
		}
	}
	return sq
}

// Equals compares cell contents only.
func (b *Board) Equals(other *Board) bool {
	return b.cells == other.cells
}

// String renders the board with one line per row: '.' empty, 'X' for side A
// and 'O' for side B.
func (b *Board) String() string {
	var sb strings.Builder
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			sb.WriteByte(displayForCell[b.cells[r][c]])
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Parse reads the format written by String. Blank lines and lines starting
// with '#' are skipped.
func Parse(text string) (*Board, error) {
	b := New()
	row := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if row >= Size {
			return nil, fmt.Errorf("%w: more than %d rows", ErrBadBoardText, Size)
		}
		if len(line) != Size {
			return nil, fmt.Errorf("%w: row %d has %d columns", ErrBadBoardText, row, len(line))
		}
		for col := 0; col < Size; col++ {
			switch line[col] {
			case '.':
			case 'X', 'x':
				b.set(row, col, SideACell)
			case 'O', 'o':
				b.set(row, col, SideBCell)
			default:
				return nil, fmt.Errorf("%w: unexpected %q at row %d col %d",
					ErrBadBoardText, line[col], row, col)
			}
		}
		row++
	}
	if row != Size {
		return nil, fmt.Errorf("%w: expected %d rows, got %d", ErrBadBoardText, Size, row)
	}
	return b, nil
}
