package player

import (
	"context"

	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/eval"
	"github.com/domino14/gomoku/move"
	"github.com/domino14/gomoku/search"
)

// EnginePlayer moves with the alpha-beta search engine.
type EnginePlayer struct {
	engine *search.Engine
	stats  MoveStats
}

// NewEnginePlayer plays side with the given search settings; settings.Side
// is overridden. cache may be nil.
func NewEnginePlayer(side board.Side, settings search.Settings, cache *eval.Cache) *EnginePlayer {
	settings.Side = side
	return &EnginePlayer{engine: search.NewEngine(settings, cache)}
}

func (p *EnginePlayer) Name() string {
	return KindEngine
}

func (p *EnginePlayer) Side() board.Side {
	return p.engine.Side()
}

func (p *EnginePlayer) Engine() *search.Engine {
	return p.engine
}

func (p *EnginePlayer) ChooseMove(ctx context.Context, b *board.Board) (move.Move, bool) {
	m, ok := p.engine.FindBestMove(ctx, b)
	if ok {
		p.stats.Record(b, m, p.Side())
	}
	return m, ok
}

func (p *EnginePlayer) Stats() MoveStats {
	return p.stats
}
