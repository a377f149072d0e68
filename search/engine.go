// Package search finds moves with iterative-deepening alpha-beta minimax.
// SideA is the maximizing side throughout; scores come from package eval.
package search

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/eval"
	"github.com/domino14/gomoku/move"
	"github.com/domino14/gomoku/movegen"
	"github.com/domino14/gomoku/pattern"
)

// WinScore is returned for a line in which a side completes five.
const WinScore = pattern.FiveScore

var ErrSearchTimeout = errors.New("search timeout")

// Stats describes the last FindBestMove call.
type Stats struct {
	Nodes       uint64          `yaml:"nodes"`
	Cutoffs     uint64          `yaml:"cutoffs"`
	TargetDepth int             `yaml:"target-depth"`
	Depth       int             `yaml:"depth"`
	Score       float64         `yaml:"score"`
	FastPath    string          `yaml:"fast-path,omitempty"`
	TimedOut    bool            `yaml:"timed-out"`
	Elapsed     time.Duration   `yaml:"elapsed"`
	Cache       eval.CacheStats `yaml:"cache"`
}

// Engine searches positions for a single side. An Engine and its cache must
// not be used from more than one goroutine at a time.
type Engine struct {
	settings Settings
	eval     *eval.Evaluator
	cache    *eval.Cache
	stats    Stats

	// set for the iteration in progress.
	hardLimit bool
	deadline  time.Time
	done      <-chan struct{}

	// called at the start of every iteration; used by tests.
	onIteration func(depth int)
}

// NewEngine builds an engine. If cache is nil one is created according to
// the settings.
func NewEngine(settings Settings, cache *eval.Cache) *Engine {
	if settings.Radius < 1 {
		settings.Radius = movegen.DefaultRadius
	}
	if cache == nil {
		if settings.CacheMaxEntries > 0 {
			cache = eval.NewCache(settings.CacheMaxEntries)
		} else {
			cache = eval.NewCacheForMemory(settings.CacheMemoryFraction)
		}
	}
	return &Engine{
		settings: settings,
		cache:    cache,
		eval:     eval.New(pattern.Default(), cache),
	}
}

func (e *Engine) Settings() Settings {
	return e.settings
}

func (e *Engine) Side() board.Side {
	return e.settings.Side
}

func (e *Engine) Stats() Stats {
	return e.stats
}

// Evaluate is the cached static evaluation of b.
func (e *Engine) Evaluate(b *board.Board) float64 {
	return e.eval.Evaluate(b)
}

func (e *Engine) Evaluator() *eval.Evaluator {
	return e.eval
}

// FindBestMove returns a move for the engine's side. The board is returned
// in the state it was passed in. The second return value is false when there
// is nowhere to play.
func (e *Engine) FindBestMove(ctx context.Context, b *board.Board) (move.Move, bool) {
	tstart := time.Now()
	e.stats = Stats{}
	e.cache.Clear()
	side := e.settings.Side

	candidates := movegen.GenerateWithin(b, e.settings.Radius)
	if len(candidates) == 0 {
		log.Debug().Msg("no-candidates")
		return move.Move{}, false
	}
	e.stats.TargetDepth = e.settings.DepthFor(b.CountEmpty())

	best, found := e.fastPath(b, candidates, side)
	if !found {
		best, found = e.iterativelyDeepen(ctx, b, tstart)
	}
	e.stats.Elapsed = time.Since(tstart)
	e.stats.Cache = e.cache.Stats()

	log.Info().
		Str("side", side.String()).
		Str("move", best.String()).
		Str("fast-path", e.stats.FastPath).
		Int("depth", e.stats.Depth).
		Int("target-depth", e.stats.TargetDepth).
		Float64("score", e.stats.Score).
		Uint64("nodes", e.stats.Nodes).
		Uint64("cutoffs", e.stats.Cutoffs).
		Uint64("cache-lookups", e.stats.Cache.Lookups).
		Uint64("cache-hits", e.stats.Cache.Hits).
		Float64("time-elapsed-sec", e.stats.Elapsed.Seconds()).
		Msg("best-move")
	return best, found
}

// fastPath looks for a move that wins on the spot, then for one that stops
// the opponent from winning on the spot.
func (e *Engine) fastPath(b *board.Board, candidates []move.Move, side board.Side) (move.Move, bool) {
	if m, ok := firstWinningMove(b, candidates, side); ok {
		e.stats.FastPath = "win"
		e.stats.Score = signFor(side) * WinScore
		return m, true
	}
	if m, ok := firstWinningMove(b, candidates, side.Opponent()); ok {
		e.stats.FastPath = "block"
		return m, true
	}
	return move.Move{}, false
}

func firstWinningMove(b *board.Board, candidates []move.Move, side board.Side) (move.Move, bool) {
	for _, m := range candidates {
		won := false
		b.WithStone(m, side, func() {
			won = b.CheckWin(side)
		})
		if won {
			return m, true
		}
	}
	return move.Move{}, false
}

func (e *Engine) iterativelyDeepen(ctx context.Context, b *board.Board, tstart time.Time) (move.Move, bool) {
	var best move.Move
	found := false
	maximizing := e.settings.Side == board.SideA

	for depth := 1; depth <= e.stats.TargetDepth; depth++ {
		if depth > 1 {
			if e.settings.TimeBudget > 0 && time.Since(tstart) > e.settings.TimeBudget {
				log.Debug().Int("completed", e.stats.Depth).Msg("time-budget-spent")
				break
			}
			if ctx.Err() != nil {
				log.Debug().Err(ctx.Err()).Int("completed", e.stats.Depth).Msg("search-cancelled")
				break
			}
		}
		log.Debug().Int("plies", depth).Msg("deepening-iteratively")

		e.hardLimit = e.settings.HardLimit && depth > 1
		if e.settings.TimeBudget > 0 {
			e.deadline = tstart.Add(e.settings.TimeBudget)
		} else {
			e.hardLimit = false
		}
		score, m, ok, err := e.searchDepth(ctx, b, depth, maximizing, found)
		e.hardLimit = false
		if err != nil {
			if errors.Is(err, ErrSearchTimeout) {
				e.stats.TimedOut = true
				log.Debug().Int("plies", depth).Msg("iteration-timed-out")
			} else {
				log.Err(err).Int("plies", depth).Str("keeping", best.String()).Msg("iteration-failed")
			}
			break
		}
		if !ok {
			break
		}
		best, found = m, true
		e.stats.Depth = depth
		e.stats.Score = score
		log.Debug().Int("ply", depth).Float64("score", score).Str("move", m.String()).
			Uint64("nodes", e.stats.Nodes).Msg("best-val")
	}
	return best, found
}

// searchDepth runs one iteration. A timeout or a panic inside it becomes an
// error, unless no earlier iteration produced a move, in which case a panic
// is passed on to the caller.
func (e *Engine) searchDepth(ctx context.Context, b *board.Board, depth int, maximizing, haveFallback bool) (
	score float64, m move.Move, ok bool, err error) {

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if rerr, isErr := r.(error); isErr && errors.Is(rerr, ErrSearchTimeout) {
			err = rerr
			return
		}
		if !haveFallback {
			panic(r)
		}
		err = fmt.Errorf("panic at depth %d: %v", depth, r)
	}()
	e.done = ctx.Done()
	if e.onIteration != nil {
		e.onIteration(depth)
	}
	score, m, ok = e.alphaBeta(b, depth, math.Inf(-1), math.Inf(1), maximizing)
	return score, m, ok, nil
}

// SearchDepth runs a single fixed-depth search from b with side to move,
// without the fast paths or any time limit.
func (e *Engine) SearchDepth(b *board.Board, depth int, side board.Side) (float64, move.Move, bool) {
	e.hardLimit = false
	return e.alphaBeta(b, depth, math.Inf(-1), math.Inf(1), side == board.SideA)
}

func (e *Engine) checkTime() {
	if !e.hardLimit {
		return
	}
	if time.Now().After(e.deadline) {
		panic(ErrSearchTimeout)
	}
	select {
	case <-e.done:
		panic(ErrSearchTimeout)
	default:
	}
}

type scoredMove struct {
	m     move.Move
	score float64
}

// orderMoves sorts candidates by the static score after mover plays each
// one: best for the maximizer first when maximizing, lowest first
// otherwise. Ties keep their row-major order.
func (e *Engine) orderMoves(b *board.Board, moves []move.Move, mover board.Side, maximizing bool) {
	scored := make([]scoredMove, len(moves))
	for i, m := range moves {
		scored[i].m = m
		b.WithStone(m, mover, func() {
			scored[i].score = e.eval.Evaluate(b)
		})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		if maximizing {
			return scored[i].score > scored[j].score
		}
		return scored[i].score < scored[j].score
	})
	for i := range scored {
		moves[i] = scored[i].m
	}
}

// alphaBeta is plain minimax with alpha-beta pruning. The maximizing side
// always plays SideA stones.
func (e *Engine) alphaBeta(b *board.Board, depth int, α, β float64, maximizing bool) (float64, move.Move, bool) {
	e.stats.Nodes++
	if depth == 0 {
		return e.eval.Evaluate(b), move.Move{}, false
	}
	e.checkTime()

	moves := movegen.GenerateWithin(b, e.settings.Radius)
	if len(moves) == 0 {
		return 0, move.Move{}, false
	}
	mover := board.SideB
	if maximizing {
		mover = board.SideA
	}
	e.orderMoves(b, moves, mover, maximizing)

	best := moves[0]
	bestScore := math.Inf(1)
	if maximizing {
		bestScore = math.Inf(-1)
	}
	for _, m := range moves {
		var score float64
		won := false
		b.WithStone(m, mover, func() {
			if b.CheckWinAt(m, mover) {
				won = true
				return
			}
			score, _, _ = e.alphaBeta(b, depth-1, α, β, !maximizing)
		})
		if won {
			return signFor(mover) * WinScore, m, true
		}
		if maximizing {
			if score > bestScore {
				bestScore, best = score, m
			}
			α = math.Max(α, bestScore)
		} else {
			if score < bestScore {
				bestScore, best = score, m
			}
			β = math.Min(β, bestScore)
		}
		if β <= α {
			e.stats.Cutoffs++
			break
		}
	}
	return bestScore, best, true
}

func signFor(side board.Side) float64 {
	if side == board.SideA {
		return 1
	}
	return -1
}
