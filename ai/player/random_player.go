package player

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"
	"lukechampine.com/frand"

	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/eval"
	"github.com/domino14/gomoku/move"
	"github.com/domino14/gomoku/movegen"
	"github.com/domino14/gomoku/pattern"
)

// Level sets how much a RandomPlayer relies on chance.
type Level int

const (
	LevelLow Level = iota
	LevelMedium
	LevelHigh
)

func (l Level) String() string {
	switch l {
	case LevelLow:
		return "low"
	case LevelMedium:
		return "medium"
	case LevelHigh:
		return "high"
	}
	return fmt.Sprintf("level(%d)", int(l))
}

func LevelFromString(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return LevelLow, nil
	case "medium":
		return LevelMedium, nil
	case "high":
		return LevelHigh, nil
	}
	return LevelLow, fmt.Errorf("%w: level %q", ErrUnknownPlayer, s)
}

const (
	winBonus = pattern.FiveScore
	// an empty board gives a low-level player this much room around the center.
	openingRadius = 3
)

type levelParams struct {
	radius        int
	blockBonus    float64
	patternWeight float64
	jitter        int
	centerBonus   bool
}

var levelTable = [...]levelParams{
	LevelLow:    {radius: 3, blockBonus: 50_000, patternWeight: 0.3, jitter: 5000},
	LevelMedium: {radius: 2, blockBonus: 500_000, patternWeight: 0.7, jitter: 1000},
	LevelHigh:   {radius: 1, blockBonus: 900_000, patternWeight: 1.0, jitter: 100, centerBonus: true},
}

// RandomPlayer picks moves with a one-ply heuristic plus noise. Higher
// levels look at fewer, closer cells and trust the heuristic more.
type RandomPlayer struct {
	side   board.Side
	level  Level
	params levelParams
	rng    *frand.RNG
	eval   *eval.Evaluator
	stats  MoveStats
}

// NewRandomPlayer returns a player for side. A nil rng gets a fresh one.
func NewRandomPlayer(side board.Side, level Level, rng *frand.RNG) *RandomPlayer {
	if level < LevelLow || level > LevelHigh {
		level = LevelLow
	}
	if rng == nil {
		rng = frand.New()
	}
	return &RandomPlayer{
		side:   side,
		level:  level,
		params: levelTable[level],
		rng:    rng,
		eval:   eval.New(pattern.Default(), nil),
	}
}

func (p *RandomPlayer) Name() string {
	return "random-" + p.level.String()
}

func (p *RandomPlayer) Side() board.Side {
	return p.side
}

func (p *RandomPlayer) Level() Level {
	return p.level
}

func (p *RandomPlayer) Stats() MoveStats {
	return p.stats
}

// Candidates lists the cells this player considers.
func (p *RandomPlayer) Candidates(b *board.Board) []move.Move {
	if b.Stones() == 0 {
		if p.level == LevelLow {
			return lo.Filter(movegen.CenterBlock(openingRadius), func(m move.Move, _ int) bool {
				return b.IsEmpty(m.Row, m.Col)
			})
		}
		return []move.Move{movegen.Center()}
	}
	return movegen.GenerateWithin(b, p.params.radius)
}

// ScoreMove rates m for this player. Larger is better.
func (p *RandomPlayer) ScoreMove(b *board.Board, m move.Move) float64 {
	score := 0.0
	opp := p.side.Opponent()
	b.WithStone(m, opp, func() {
		if b.CheckWinAt(m, opp) {
			score += p.params.blockBonus
		}
	})
	b.WithStone(m, p.side, func() {
		if b.CheckWinAt(m, p.side) {
			score += winBonus
		}
		score += p.params.patternWeight * p.ownScore(b, m)
	})
	score += float64(p.rng.Intn(p.params.jitter + 1))
	if p.params.centerBonus {
		ctr := movegen.Center()
		dist := abs(m.Row-ctr.Row) + abs(m.Col-ctr.Col)
		score += float64(max(0, (board.Size-dist)*50))
	}
	return score
}

// ownScore is the pattern score of windows through m, which holds this
// player's stone, so only its own shapes count. SideB shapes are scaled
// back to their base values.
func (p *RandomPlayer) ownScore(b *board.Board, m move.Move) float64 {
	s := p.eval.WindowsThrough(b, m)
	if p.side == board.SideB {
		return s / pattern.OpponentFactor
	}
	return s
}

type rankedMove struct {
	m     move.Move
	score float64
}

func (p *RandomPlayer) rank(b *board.Board, moves []move.Move) []rankedMove {
	ranked := lo.Map(moves, func(m move.Move, _ int) rankedMove {
		return rankedMove{m: m, score: p.ScoreMove(b, m)}
	})
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})
	return ranked
}

func (p *RandomPlayer) pickFromTop(ranked []rankedMove, n int) move.Move {
	top := ranked[:min(n, len(ranked))]
	return top[p.rng.Intn(len(top))].m
}

func (p *RandomPlayer) ChooseMove(ctx context.Context, b *board.Board) (move.Move, bool) {
	moves := p.Candidates(b)
	if len(moves) == 0 {
		return move.Move{}, false
	}
	m := p.choose(b, moves)
	p.stats.Record(b, m, p.side)
	return m, true
}

func (p *RandomPlayer) choose(b *board.Board, moves []move.Move) move.Move {
	switch p.level {
	case LevelLow:
		if p.rng.Float64() < 0.7 {
			return moves[p.rng.Intn(len(moves))]
		}
		return p.pickFromTop(p.rank(b, moves), 8)
	case LevelMedium:
		ranked := p.rank(b, moves)
		if ranked[0].score >= 900_000 && p.rng.Float64() < 0.8 {
			return ranked[0].m
		}
		return p.pickFromTop(ranked, 5)
	default:
		ranked := p.rank(b, moves)
		if ranked[0].score >= 500_000 {
			return ranked[0].m
		}
		if p.rng.Float64() < 0.8 {
			return ranked[0].m
		}
		return p.pickFromTop(ranked, 3)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
