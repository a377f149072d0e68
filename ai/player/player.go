// Package player has the move selectors that can sit on either side of a
// game: the search engine and a family of weaker randomized players.
package player

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"lukechampine.com/frand"

	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/move"
	"github.com/domino14/gomoku/search"
)

var ErrUnknownPlayer = errors.New("unknown player kind")

// Player chooses moves for one side.
type Player interface {
	Name() string
	Side() board.Side
	// ChooseMove returns false when there is no move to make. b must be
	// left as it was found.
	ChooseMove(ctx context.Context, b *board.Board) (move.Move, bool)
	Stats() MoveStats
}

// MoveStats counts what a player's chosen moves did.
type MoveStats struct {
	// Blocks is the number of moves that took a square where the opponent
	// would have won.
	Blocks int `yaml:"blocks"`
	// Opportunities is the number of moves that won the game.
	Opportunities int `yaml:"opportunities"`
	TotalMoves    int `yaml:"total-moves"`
}

// Record classifies m, about to be played by side on b.
func (s *MoveStats) Record(b *board.Board, m move.Move, side board.Side) {
	s.TotalMoves++
	b.WithStone(m, side, func() {
		if b.CheckWinAt(m, side) {
			s.Opportunities++
		}
	})
	b.WithStone(m, side.Opponent(), func() {
		if b.CheckWinAt(m, side.Opponent()) {
			s.Blocks++
		}
	})
}

func (s MoveStats) Add(o MoveStats) MoveStats {
	return MoveStats{
		Blocks:        s.Blocks + o.Blocks,
		Opportunities: s.Opportunities + o.Opportunities,
		TotalMoves:    s.TotalMoves + o.TotalMoves,
	}
}

const KindEngine = "engine"

// Kinds lists the names accepted by New.
func Kinds() []string {
	kinds := []string{KindEngine}
	for _, l := range []Level{LevelLow, LevelMedium, LevelHigh} {
		kinds = append(kinds, "random-"+l.String())
	}
	return kinds
}

// New builds a player by kind: "engine" or "random-<level>". rng is only
// used by random players and may be nil.
func New(kind string, side board.Side, settings search.Settings, rng *frand.RNG) (Player, error) {
	kind = strings.ToLower(strings.TrimSpace(kind))
	if kind == KindEngine {
		return NewEnginePlayer(side, settings, nil), nil
	}
	if lvl, ok := strings.CutPrefix(kind, "random-"); ok {
		level, err := LevelFromString(lvl)
		if err != nil {
			return nil, err
		}
		return NewRandomPlayer(side, level, rng), nil
	}
	return nil, fmt.Errorf("%w: %q (want one of %v)", ErrUnknownPlayer, kind, Kinds())
}
