package search

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/config"
	"github.com/domino14/gomoku/movegen"
)

var ErrBadDepthSchedule = errors.New("bad depth schedule")

// DepthRule applies Depth when a position has more than MoreEmptyThan empty
// cells.
type DepthRule struct {
	MoreEmptyThan int `yaml:"more-empty-than"`
	Depth         int `yaml:"depth"`
}

// DepthSchedule picks the search depth from the number of empty cells. Rules
// are tried in order; Fallback is used when none applies. Emptier boards get
// shallower searches.
type DepthSchedule struct {
	Rules    []DepthRule `yaml:"rules"`
	Fallback int         `yaml:"fallback"`
}

func DefaultDepthSchedule() DepthSchedule {
	return DepthSchedule{
		Rules:    []DepthRule{{MoreEmptyThan: 200, Depth: 2}, {MoreEmptyThan: 150, Depth: 3}},
		Fallback: 4,
	}
}

func (s DepthSchedule) DepthFor(empty int) int {
	for _, r := range s.Rules {
		if empty > r.MoreEmptyThan {
			return r.Depth
		}
	}
	return s.Fallback
}

func (s DepthSchedule) String() string {
	parts := make([]string, 0, len(s.Rules)+1)
	for _, r := range s.Rules {
		parts = append(parts, fmt.Sprintf("%d:%d", r.MoreEmptyThan, r.Depth))
	}
	parts = append(parts, strconv.Itoa(s.Fallback))
	return strings.Join(parts, ",")
}

// ParseDepthSchedule reads "threshold:depth,...,fallback", e.g.
// "200:2,150:3,4". Thresholds must strictly decrease and depths must not
// decrease.
func ParseDepthSchedule(s string) (DepthSchedule, error) {
	var sched DepthSchedule
	fields := strings.Split(strings.TrimSpace(s), ",")
	for i, f := range fields {
		f = strings.TrimSpace(f)
		last := i == len(fields)-1
		if last {
			d, err := strconv.Atoi(f)
			if err != nil || d < 1 {
				return sched, fmt.Errorf("%w: fallback depth %q", ErrBadDepthSchedule, f)
			}
			sched.Fallback = d
			continue
		}
		thr, dep, ok := strings.Cut(f, ":")
		if !ok {
			return sched, fmt.Errorf("%w: rule %q needs threshold:depth", ErrBadDepthSchedule, f)
		}
		t, err := strconv.Atoi(strings.TrimSpace(thr))
		if err != nil {
			return sched, fmt.Errorf("%w: %w", ErrBadDepthSchedule, err)
		}
		d, err := strconv.Atoi(strings.TrimSpace(dep))
		if err != nil || d < 1 {
			return sched, fmt.Errorf("%w: depth %q", ErrBadDepthSchedule, dep)
		}
		sched.Rules = append(sched.Rules, DepthRule{MoreEmptyThan: t, Depth: d})
	}
	for i := 1; i < len(sched.Rules); i++ {
		if sched.Rules[i].MoreEmptyThan >= sched.Rules[i-1].MoreEmptyThan ||
			sched.Rules[i].Depth < sched.Rules[i-1].Depth {
			return sched, fmt.Errorf("%w: %q is not monotonic", ErrBadDepthSchedule, s)
		}
	}
	if n := len(sched.Rules); n > 0 && sched.Fallback < sched.Rules[n-1].Depth {
		return sched, fmt.Errorf("%w: fallback shallower than %d", ErrBadDepthSchedule, sched.Rules[n-1].Depth)
	}
	return sched, nil
}

type Settings struct {
	// Side is the side the engine moves for.
	Side board.Side
	// TimeBudget is checked between iterations; no deeper iteration starts
	// once it is spent. Zero means no limit.
	TimeBudget time.Duration
	// HardLimit also aborts an iteration of depth 2 or more when the budget
	// runs out mid-search.
	HardLimit bool
	// MaxDepth caps the scheduled depth when positive.
	MaxDepth int
	Schedule DepthSchedule
	Radius   int
	// CacheMaxEntries bounds the evaluation cache; if zero the bound is
	// derived from CacheMemoryFraction.
	CacheMaxEntries     int
	CacheMemoryFraction float64
}

func DefaultSettings() Settings {
	return Settings{
		Side:                board.SideB,
		TimeBudget:          2500 * time.Millisecond,
		Schedule:            DefaultDepthSchedule(),
		Radius:              movegen.DefaultRadius,
		CacheMemoryFraction: 0.01,
	}
}

func SettingsFromConfig(cfg *config.Config) (Settings, error) {
	s := DefaultSettings()
	side, err := board.SideFromString(cfg.GetString(config.ConfigSearchSide))
	if err != nil {
		return s, err
	}
	s.Side = side
	s.TimeBudget = cfg.GetDuration(config.ConfigSearchTimeBudget)
	s.HardLimit = cfg.GetBool(config.ConfigSearchHardLimit)
	s.MaxDepth = cfg.GetInt(config.ConfigSearchMaxDepth)
	if sched := cfg.GetString(config.ConfigSearchDepthSchedule); sched != "" {
		s.Schedule, err = ParseDepthSchedule(sched)
		if err != nil {
			return s, err
		}
	}
	s.Radius = cfg.GetInt(config.ConfigMovegenRadius)
	s.CacheMaxEntries = cfg.GetInt(config.ConfigEvalCacheMaxEntries)
	s.CacheMemoryFraction = cfg.GetFloat64(config.ConfigEvalCacheMemoryFraction)
	return s, nil
}

// DepthFor is the scheduled depth for a position with empty empty cells,
// capped by MaxDepth.
func (s Settings) DepthFor(empty int) int {
	d := s.Schedule.DepthFor(empty)
	if s.MaxDepth > 0 && d > s.MaxDepth {
		d = s.MaxDepth
	}
	if d < 1 {
		d = 1
	}
	return d
}
