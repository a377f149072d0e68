// Package arena plays computer-vs-computer games and collects statistics
// about them.
package arena

import (
	"context"
	"errors"
	"fmt"

	"github.com/cespare/xxhash"
	"github.com/rs/zerolog/log"

	"github.com/domino14/gomoku/ai/player"
	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/move"
)

var ErrIllegalMove = errors.New("illegal move")

// NoWinner marks a drawn game.
const NoWinner = -1

// GameRecord is the outcome of one game. Winner, Players and Stats are
// indexed by player; Starter is the index of the player who moved first.
type GameRecord struct {
	ID          int                 `yaml:"id"`
	Players     [2]string           `yaml:"players"`
	Starter     int                 `yaml:"starter"`
	Winner      int                 `yaml:"winner"`
	Moves       []move.Move         `yaml:"moves"`
	Fingerprint uint64              `yaml:"fingerprint"`
	Stats       [2]player.MoveStats `yaml:"stats"`
	// Board is the final position.
	Board *board.Board `yaml:"-"`
}

func (r GameRecord) IsDraw() bool {
	return r.Winner == NoWinner
}

// Fingerprint hashes a move sequence. Games with the same moves in the same
// order share a fingerprint.
func Fingerprint(moves []move.Move) uint64 {
	buf := make([]byte, 0, 2*len(moves))
	for _, m := range moves {
		buf = append(buf, byte(m.Row), byte(m.Col))
	}
	return xxhash.Sum64(buf)
}

// Play runs a game to completion. players[0] moves first. The players must
// be on opposite sides. A game ends when a move completes five, when the
// board fills up, or when the player to move has nothing to play; the last
// two are draws.
func Play(ctx context.Context, players [2]player.Player) (GameRecord, error) {
	rec := GameRecord{
		Winner:  NoWinner,
		Players: [2]string{players[0].Name(), players[1].Name()},
	}
	if players[0].Side() == players[1].Side() {
		return rec, fmt.Errorf("both players are on side %v", players[0].Side())
	}
	b := board.New()
	rec.Board = b

	for turn := 0; ; turn++ {
		if err := ctx.Err(); err != nil {
			return rec, err
		}
		idx := turn % 2
		p := players[idx]
		m, ok := p.ChooseMove(ctx, b)
		if !ok {
			log.Debug().Int("turn", turn).Msg("no-move-draw")
			break
		}
		if err := b.Play(m, p.Side()); err != nil {
			return rec, fmt.Errorf("%w by %s: %w", ErrIllegalMove, p.Name(), err)
		}
		rec.Moves = append(rec.Moves, m)
		if b.CheckWinAt(m, p.Side()) {
			rec.Winner = idx
			break
		}
		if b.IsFull() {
			break
		}
	}
	rec.Fingerprint = Fingerprint(rec.Moves)
	rec.Stats = [2]player.MoveStats{players[0].Stats(), players[1].Stats()}
	return rec, nil
}
