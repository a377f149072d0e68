package config

import (
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigDebug                   = "debug"
	ConfigFile                    = "config-file"
	ConfigSearchSide              = "search-side"
	ConfigSearchTimeBudget        = "search-time-budget"
	ConfigSearchHardLimit         = "search-hard-limit"
	ConfigSearchMaxDepth          = "search-max-depth"
	ConfigSearchDepthSchedule     = "search-depth-schedule"
	ConfigEvalCacheMaxEntries     = "eval-cache-max-entries"
	ConfigEvalCacheMemoryFraction = "eval-cache-memory-fraction"
	ConfigMovegenRadius           = "movegen-radius"
	ConfigArenaGames              = "arena-games"
	ConfigArenaThreads            = "arena-threads"
	ConfigArenaFirst              = "arena-first"
	ConfigArenaSecond             = "arena-second"
	ConfigArenaSeed               = "arena-seed"
	ConfigArenaOutput             = "arena-output"
	ConfigArenaSeedsFile          = "arena-seeds-file"
	ConfigArenaGameLog            = "arena-game-log"
	ConfigAnalyzeTop              = "analyze-top"
)

// Config holds settings from, in decreasing priority: command-line flags,
// GOMOKU_* environment variables, an optional YAML config file, and the flag
// defaults.
type Config struct {
	*viper.Viper
	args []string
}

func (c *Config) Load(args []string) error {
	c.Viper = viper.New()

	fs := pflag.NewFlagSet("gomoku", pflag.ContinueOnError)
	fs.Bool(ConfigDebug, false, "debug logging on")
	fs.String(ConfigFile, "", "optional YAML file with any of these settings")
	fs.String(ConfigSearchSide, "b", "side the search engine plays: a or b")
	fs.Duration(ConfigSearchTimeBudget, 2500*time.Millisecond, "time after which no deeper iteration is started")
	fs.Bool(ConfigSearchHardLimit, false, "also abort an iteration in progress when the time budget runs out")
	fs.Int(ConfigSearchMaxDepth, 0, "upper bound on search depth; 0 for no bound")
	fs.String(ConfigSearchDepthSchedule, "200:2,150:3,4", "empty-cell thresholds and depths, e.g. 200:2,150:3,4")
	fs.Int(ConfigEvalCacheMaxEntries, 0, "max positions in the evaluation cache; 0 sizes it from memory")
	fs.Float64(ConfigEvalCacheMemoryFraction, 0.01, "fraction of system memory for the evaluation cache")
	fs.Int(ConfigMovegenRadius, 2, "distance from a stone within which cells are candidate moves")
	fs.Int(ConfigArenaGames, 20, "number of games to play")
	fs.Int(ConfigArenaThreads, 4, "number of games to play at once")
	fs.String(ConfigArenaFirst, "engine", "first player: engine, random-low, random-medium or random-high")
	fs.String(ConfigArenaSecond, "random-high", "second player: engine, random-low, random-medium or random-high")
	fs.Uint64(ConfigArenaSeed, 0, "seed for the random players; 0 for a random seed")
	fs.String(ConfigArenaOutput, "", "file to write the YAML summary to; stdout if empty")
	fs.String(ConfigArenaSeedsFile, "", "per-game seeds; read if the file exists, otherwise written")
	fs.String(ConfigArenaGameLog, "", "file to write a CSV line per game to")
	fs.Int(ConfigAnalyzeTop, 10, "number of candidate moves to list")

	if err := fs.Parse(args); err != nil {
		return err
	}
	c.args = fs.Args()

	c.SetEnvPrefix("gomoku")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()
	if err := c.BindPFlags(fs); err != nil {
		return err
	}
	if f := c.GetString(ConfigFile); f != "" {
		c.SetConfigFile(f)
		c.SetConfigType("yaml")
		if err := c.ReadInConfig(); err != nil {
			return err
		}
	}
	return nil
}

// Args are the positional arguments left after flag parsing.
func (c *Config) Args() []string {
	return c.args
}
