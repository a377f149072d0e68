package arena

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"lukechampine.com/frand"

	"github.com/domino14/gomoku/ai/player"
	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/config"
	"github.com/domino14/gomoku/search"
)

// PlayerFactory builds a fresh player of the given kind for one game.
type PlayerFactory func(kind string, side board.Side, rng *frand.RNG) (player.Player, error)

// DefaultFactory builds players with player.New.
func DefaultFactory(settings search.Settings) PlayerFactory {
	return func(kind string, side board.Side, rng *frand.RNG) (player.Player, error) {
		return player.New(kind, side, settings, rng)
	}
}

type Settings struct {
	Games   int
	Threads int
	// Player1 and Player2 are player kinds. They take turns moving first;
	// whoever moves first plays side A.
	Player1 string
	Player2 string
	// Seeds holds one seed per game. Missing seeds are drawn from Seed.
	Seeds [][SeedSize]byte
	Seed  uint64
}

func SettingsFromConfig(cfg *config.Config) Settings {
	return Settings{
		Games:   cfg.GetInt(config.ConfigArenaGames),
		Threads: cfg.GetInt(config.ConfigArenaThreads),
		Player1: cfg.GetString(config.ConfigArenaFirst),
		Player2: cfg.GetString(config.ConfigArenaSecond),
		Seed:    cfg.GetUint64(config.ConfigArenaSeed),
	}
}

// GameSeeds returns exactly Games seeds, generating any that are missing.
func (s Settings) GameSeeds() [][SeedSize]byte {
	seeds := make([][SeedSize]byte, 0, s.Games)
	seeds = append(seeds, s.Seeds[:min(len(s.Seeds), s.Games)]...)
	if missing := s.Games - len(seeds); missing > 0 {
		seeds = append(seeds, GenerateSeeds(missing, MasterRNG(s.Seed))...)
	}
	return seeds
}

// Run plays s.Games games with at most s.Threads in flight. Player1 moves
// first in even-numbered games and Player2 in odd-numbered ones. Records
// come back in game order.
func Run(ctx context.Context, s Settings, factory PlayerFactory) ([]GameRecord, error) {
	if s.Games < 0 {
		return nil, fmt.Errorf("negative number of games: %d", s.Games)
	}
	threads := max(s.Threads, 1)
	seeds := s.GameSeeds()
	records := make([]GameRecord, s.Games)

	log.Info().Int("games", s.Games).Int("threads", threads).
		Str("player1", s.Player1).Str("player2", s.Player2).Msg("arena-starting")
	tstart := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(threads)
	for i := 0; i < s.Games; i++ {
		i := i
		g.Go(func() error {
			rec, err := playOne(gctx, s, factory, i, seeds[i])
			if err != nil {
				return fmt.Errorf("game %d: %w", i, err)
			}
			records[i] = rec
			log.Debug().Int("game", i).Int("winner", rec.Winner).
				Int("length", len(rec.Moves)).Msg("game-finished")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	log.Info().Int("games", s.Games).
		Float64("time-elapsed-sec", time.Since(tstart).Seconds()).
		Msg("arena-finished")
	return records, nil
}

// playOne builds fresh players for game id and plays it. Records use slot
// order (Player1, Player2) no matter who moved first.
func playOne(ctx context.Context, s Settings, factory PlayerFactory, id int, seed [SeedSize]byte) (GameRecord, error) {
	rng := seedRNG(seed)
	kinds := [2]string{s.Player1, s.Player2}
	starter := id % 2

	var slots [2]player.Player
	for slot := range slots {
		side := board.SideB
		if slot == starter {
			side = board.SideA
		}
		// each player gets its own stream.
		p, err := factory(kinds[slot], side, frand.NewCustom(rng.Bytes(SeedSize), 1024, 12))
		if err != nil {
			return GameRecord{}, err
		}
		slots[slot] = p
	}

	rec, err := Play(ctx, [2]player.Player{slots[starter], slots[1-starter]})
	if err != nil {
		return rec, err
	}
	rec.ID = id
	if starter == 1 {
		rec.Players[0], rec.Players[1] = rec.Players[1], rec.Players[0]
		rec.Stats[0], rec.Stats[1] = rec.Stats[1], rec.Stats[0]
		if rec.Winner != NoWinner {
			rec.Winner = 1 - rec.Winner
		}
	}
	rec.Starter = starter
	return rec, nil
}
