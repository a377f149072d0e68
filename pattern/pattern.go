// Package pattern holds the scores of five-cell windows. Scores are from the
// point of view of SideA: a SideA shape is worth s and the same shape made of
// SideB stones is worth -0.9*s.
package pattern

import (
	"fmt"
	"sync"

	"github.com/domino14/gomoku/board"
)

// Length is the number of cells in a window.
const Length = board.WinLength

// OpponentFactor scales a base score when the shape belongs to SideB.
const OpponentFactor = -0.9

const (
	FiveScore  = 1_000_000
	FourScore  = 10_000
	ThreeScore = 1_000
	TwoScore   = 100
)

// Pattern is the content of a window, read along one of the four directions.
type Pattern [Length]board.Cell

// numPatterns is 3^Length; a pattern's index is its base-3 value.
const numPatterns = 243

func (p Pattern) index() int {
	idx := 0
	for _, c := range p {
		idx = idx*3 + int(c)
	}
	return idx
}

func (p Pattern) String() string {
	var buf [Length]byte
	for i, c := range p {
		switch c {
		case board.SideACell:
			buf[i] = 'A'
		case board.SideBCell:
			buf[i] = 'B'
		default:
			buf[i] = '.'
		}
	}
	return string(buf[:])
}

// FromString parses a window written with 'A', 'B' and '.'.
func FromString(s string) (Pattern, error) {
	var p Pattern
	if len(s) != Length {
		return p, fmt.Errorf("pattern %q must have %d cells", s, Length)
	}
	for i := 0; i < Length; i++ {
		switch s[i] {
		case 'A':
			p[i] = board.SideACell
		case 'B':
			p[i] = board.SideBCell
		case '.':
			p[i] = board.Empty
		default:
			return p, fmt.Errorf("pattern %q has bad cell %q", s, s[i])
		}
	}
	return p, nil
}

// Mirror swaps the two sides; empty cells stay put.
func Mirror(p Pattern) Pattern {
	var m Pattern
	for i, c := range p {
		switch c {
		case board.SideACell:
			m[i] = board.SideBCell
		case board.SideBCell:
			m[i] = board.SideACell
		}
	}
	return m
}

// Entry is a scored pattern.
type Entry struct {
	Pattern Pattern
	Score   float64
}

// Table is an immutable pattern -> score mapping. It is safe for concurrent
// readers.
type Table struct {
	scores  [numPatterns]float64
	known   [numPatterns]bool
	entries []Entry
}

// NewTable builds a table from SideA shapes. Every shape gets its mirror
// added with OpponentFactor applied.
func NewTable(base map[string]float64) (*Table, error) {
	t := &Table{}
	for s, score := range base {
		p, err := FromString(s)
		if err != nil {
			return nil, err
		}
		for _, c := range p {
			if c == board.SideBCell {
				return nil, fmt.Errorf("base pattern %q must only hold side A stones", s)
			}
		}
		t.add(p, score)
		t.add(Mirror(p), OpponentFactor*score)
	}
	return t, nil
}

func (t *Table) add(p Pattern, score float64) {
	i := p.index()
	if !t.known[i] {
		t.entries = append(t.entries, Entry{Pattern: p, Score: score})
	}
	t.scores[i] = score
	t.known[i] = true
}

// Lookup returns the score of p and whether p is in the table.
func (t *Table) Lookup(p Pattern) (float64, bool) {
	i := p.index()
	return t.scores[i], t.known[i]
}

// Score is Lookup without the presence flag; unknown shapes are worth 0.
func (t *Table) Score(p Pattern) float64 {
	return t.scores[p.index()]
}

func (t *Table) Len() int {
	return len(t.entries)
}

// Entries returns a copy of every pattern in the table.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

var baseScores = map[string]float64{
	"AAAAA": FiveScore,

	"AAAA.": FourScore,
	".AAAA": FourScore,
	"AAA.A": FourScore,
	"AA.AA": FourScore,
	"A.AAA": FourScore,

	"AAA..": ThreeScore,
	"..AAA": ThreeScore,
	"AA.A.": ThreeScore,
	".A.AA": ThreeScore,
	"A.AA.": ThreeScore,
	".AA.A": ThreeScore,
	"A..AA": ThreeScore,
	"AA..A": ThreeScore,

	"AA...": TwoScore,
	"...AA": TwoScore,
	"A.A..": TwoScore,
	"..A.A": TwoScore,
	"A...A": TwoScore,
	".A..A": TwoScore,
	"A..A.": TwoScore,
	".AA..": TwoScore,
	"..AA.": TwoScore,
	"A.A.A": TwoScore,
}

var (
	defaultTable     *Table
	defaultTableOnce sync.Once
)

// Default returns the shared standard table.
func Default() *Table {
	defaultTableOnce.Do(func() {
		t, err := NewTable(baseScores)
		if err != nil {
			panic(err)
		}
		defaultTable = t
	})
	return defaultTable
}
