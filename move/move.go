// Package move defines a single stone placement on the board.
package move

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Move is a stone placement. Row and Col are 0-indexed.
type Move struct {
	Row int `yaml:"row" json:"row"`
	Col int `yaml:"col" json:"col"`
}

var ErrBadCoords = errors.New("badly formatted coordinates")

var reCoords *regexp.Regexp

func init() {
	reCoords = regexp.MustCompile(`^\(?\s*(?P<row>[0-9]+)\s*,\s*(?P<col>[0-9]+)\s*\)?$`)
}

// New creates a move at row, col.
func New(row, col int) Move {
	return Move{Row: row, Col: col}
}

// IsValid reports whether the move lies on a board with the given dimension.
func (m Move) IsValid(dim int) bool {
	return m.Row >= 0 && m.Col >= 0 && m.Row < dim && m.Col < dim
}

// Index is the row-major offset of the move on a board with the given
// dimension.
func (m Move) Index(dim int) int {
	return m.Row*dim + m.Col
}

func (m Move) String() string {
	return fmt.Sprintf("(%d,%d)", m.Row, m.Col)
}

// FromString parses "r,c" or "(r,c)".
func FromString(s string) (Move, error) {
	matches := reCoords.FindStringSubmatch(strings.TrimSpace(s))
	if matches == nil {
		return Move{}, fmt.Errorf("%w: %q", ErrBadCoords, s)
	}
	row, err := strconv.Atoi(matches[reCoords.SubexpIndex("row")])
	if err != nil {
		return Move{}, err
	}
	col, err := strconv.Atoi(matches[reCoords.SubexpIndex("col")])
	if err != nil {
		return Move{}, err
	}
	return Move{Row: row, Col: col}, nil
}
