package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/config"
	"github.com/domino14/gomoku/move"
	"github.com/domino14/gomoku/movegen"
	"github.com/domino14/gomoku/search"
)

func setupLogger(cfg *config.Config) {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	output.FormatMessage = func(i interface{}) string {
		return fmt.Sprintf("%s", i)
	}
	output.FormatFieldName = func(i interface{}) string {
		return fmt.Sprintf("%s:", i)
	}

	level := zerolog.InfoLevel
	if cfg.GetBool(config.ConfigDebug) {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	logger := zerolog.New(output).Level(level).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &logger
	log.Logger = logger
}

type candidate struct {
	m     move.Move
	score float64
}

// rankCandidates scores every candidate by the static evaluation after the
// side plays it, best for that side first.
func rankCandidates(eng *search.Engine, b *board.Board, side board.Side) []candidate {
	moves := movegen.GenerateWithin(b, eng.Settings().Radius)
	ranked := lo.Map(moves, func(m move.Move, _ int) candidate {
		var score float64
		b.WithStone(m, side, func() {
			score = eng.Evaluate(b)
		})
		return candidate{m, score}
	})
	sort.SliceStable(ranked, func(i, j int) bool {
		if side == board.SideA {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].score < ranked[j].score
	})
	return ranked
}

func analyze(ctx context.Context, cfg *config.Config, path string) error {
	text, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	b, err := board.Parse(string(text))
	if err != nil {
		return err
	}
	settings, err := search.SettingsFromConfig(cfg)
	if err != nil {
		return err
	}
	eng := search.NewEngine(settings, nil)

	fmt.Println(b.String())
	fmt.Printf("stones: %d  empty: %d  evaluation: %.1f\n", b.Stones(), b.CountEmpty(), eng.Evaluate(b))
	for _, side := range []board.Side{board.SideA, board.SideB} {
		if line, ok := b.WinningLine(side); ok {
			fmt.Printf("%v has five: %v\n", side, line)
			return nil
		}
	}

	ranked := rankCandidates(eng, b, settings.Side)
	top := max(0, min(cfg.GetInt(config.ConfigAnalyzeTop), len(ranked)))
	fmt.Printf("\n%d candidates for %v, top %d:\n", len(ranked), settings.Side, top)
	for i, c := range ranked[:top] {
		fmt.Printf("%3d. %-8v %12.1f\n", i+1, c.m, c.score)
	}

	m, ok := eng.FindBestMove(ctx, b)
	if !ok {
		fmt.Println("\nno move available")
		return nil
	}
	stats := eng.Stats()
	fmt.Printf("\nbest move for %v: %v\n", settings.Side, m)
	fmt.Printf("depth %d/%d  score %.1f  nodes %d  cutoffs %d  fast-path %v  timed-out %v  elapsed %v\n",
		stats.Depth, stats.TargetDepth, stats.Score, stats.Nodes, stats.Cutoffs,
		stats.FastPath, stats.TimedOut, stats.Elapsed.Round(time.Millisecond))
	fmt.Printf("cache: %d entries, hit rate %.2f\n", stats.Cache.Entries, stats.Cache.HitRate())
	return nil
}

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	setupLogger(cfg)
	if len(cfg.Args()) != 1 {
		fmt.Fprintln(os.Stderr, "usage: analyze [flags] <board-file>")
		os.Exit(2)
	}
	if err := analyze(context.Background(), cfg, cfg.Args()[0]); err != nil {
		log.Fatal().Err(err).Msg("analyze-failed")
	}
}
