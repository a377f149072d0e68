package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/gomoku/arena"
	"github.com/domino14/gomoku/config"
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

	var logger zerolog.Logger
	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		logger = zerolog.New(output).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		logger = zerolog.New(output).Level(zerolog.InfoLevel).With().Timestamp().Logger()
	}
	zerolog.DefaultContextLogger = &logger
	log.Logger = logger
	logger.Debug().Msg("Debug logging is on")
}

// gameSeeds reads per-game seeds from path, or writes freshly generated ones
// there if the file does not exist yet.
func gameSeeds(s arena.Settings, path string) ([][arena.SeedSize]byte, error) {
	if path == "" {
		return nil, nil
	}
	seeds, err := arena.LoadSeeds(path)
	if err == nil {
		log.Info().Int("seeds", len(seeds)).Str("file", path).Msg("loaded-seeds")
		return seeds, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	seeds = s.GameSeeds()
	if err := arena.SaveSeeds(seeds, path); err != nil {
		return nil, err
	}
	log.Info().Int("seeds", len(seeds)).Str("file", path).Msg("saved-seeds")
	return seeds, nil
}

func writeTo(path string, write func(io.Writer) error) error {
	if path == "" {
		return write(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func run(ctx context.Context, cfg *config.Config) error {
	searchSettings, err := search.SettingsFromConfig(cfg)
	if err != nil {
		return err
	}
	s := arena.SettingsFromConfig(cfg)
	if s.Seeds, err = gameSeeds(s, cfg.GetString(config.ConfigArenaSeedsFile)); err != nil {
		return err
	}

	records, err := arena.Run(ctx, s, arena.DefaultFactory(searchSettings))
	if err != nil {
		return err
	}
	if path := cfg.GetString(config.ConfigArenaGameLog); path != "" {
		err := writeTo(path, func(w io.Writer) error {
			return arena.WriteGameLog(w, records)
		})
		if err != nil {
			return err
		}
	}
	return writeTo(cfg.GetString(config.ConfigArenaOutput), arena.Summarize(s, records).WriteYAML)
}

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	setupLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Error().Err(err).Msg("arena-failed")
		stop()
		os.Exit(1)
	}
}
