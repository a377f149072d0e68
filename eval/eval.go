// Package eval scores board positions by summing pattern scores over every
// five-cell window.
package eval

import (
	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/move"
	"github.com/domino14/gomoku/pattern"
)

// Evaluator computes static scores. Positive values favor SideA.
// It is not safe for concurrent use unless its cache is in multi-threaded
// mode.
type Evaluator struct {
	table *pattern.Table
	cache *Cache
}

// New returns an evaluator over table. cache may be nil, in which case
// nothing is memoized.
func New(table *pattern.Table, cache *Cache) *Evaluator {
	if table == nil {
		table = pattern.Default()
	}
	return &Evaluator{table: table, cache: cache}
}

func (e *Evaluator) Table() *pattern.Table {
	return e.table
}

func (e *Evaluator) Cache() *Cache {
	return e.cache
}

// Evaluate returns the memoized static score of b.
func (e *Evaluator) Evaluate(b *board.Board) float64 {
	if e.cache == nil {
		return e.Static(b)
	}
	key := b.Hash()
	if v, ok := e.cache.Lookup(key); ok {
		return v
	}
	v := e.Static(b)
	e.cache.Store(key, v)
	return v
}

// Static sums the table score of every window that fits on the board, in all
// four directions. A stone belongs to several overlapping windows and is
// counted in each of them.
func (e *Evaluator) Static(b *board.Board) float64 {
	score := 0.0
	for r := 0; r < board.Size; r++ {
		for c := 0; c < board.Size; c++ {
			for _, d := range board.Directions {
				if p, ok := Window(b, r, c, d); ok {
					score += e.table.Score(p)
				}
			}
		}
	}
	return score
}

// WindowsThrough sums the table score of every window that contains m. It
// does not consult the cache.
func (e *Evaluator) WindowsThrough(b *board.Board, m move.Move) float64 {
	score := 0.0
	for _, d := range board.Directions {
		for off := -(pattern.Length - 1); off <= 0; off++ {
			if p, ok := Window(b, m.Row+off*d.DR, m.Col+off*d.DC, d); ok {
				score += e.table.Score(p)
			}
		}
	}
	return score
}

// Window reads the pattern starting at (row, col) along d. It returns false
// if any of its cells is off the board.
func Window(b *board.Board, row, col int, d board.Direction) (pattern.Pattern, bool) {
	var p pattern.Pattern
	endR, endC := row+(pattern.Length-1)*d.DR, col+(pattern.Length-1)*d.DC
	if !board.InBounds(row, col) || !board.InBounds(endR, endC) {
		return p, false
	}
	for k := 0; k < pattern.Length; k++ {
		p[k] = b.At(row+k*d.DR, col+k*d.DC)
	}
	return p, true
}
