package player

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
	"lukechampine.com/frand"

	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/eval"
	"github.com/domino14/gomoku/move"
	"github.com/domino14/gomoku/search"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func seededRNG(seed byte) *frand.RNG {
	s := make([]byte, 32)
	s[0] = seed
	return frand.NewCustom(s, 1024, 12)
}

func mustParse(t *testing.T, text string) *board.Board {
	t.Helper()
	b, err := board.Parse(text)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

// X (side A) threatens to complete five at (7,7).
const fourForA = `
...............
...............
...............
...............
...............
...............
.....O.........
..OXXXX........
.......O.......
...............
...............
...............
...............
...............
...............
`

func testSettings() search.Settings {
	s := search.DefaultSettings()
	s.MaxDepth = 2
	s.CacheMaxEntries = 1 << 16
	return s
}

func TestLevels(t *testing.T) {
	is := is.New(t)
	for _, l := range []Level{LevelLow, LevelMedium, LevelHigh} {
		parsed, err := LevelFromString(l.String())
		is.NoErr(err)
		is.Equal(parsed, l)
	}
	_, err := LevelFromString("expert")
	is.True(errors.Is(err, ErrUnknownPlayer))
	is.Equal(Kinds(), []string{"engine", "random-low", "random-medium", "random-high"})
}

func TestNewByKind(t *testing.T) {
	is := is.New(t)
	p, err := New("engine", board.SideA, testSettings(), nil)
	is.NoErr(err)
	is.Equal(p.Name(), "engine")
	is.Equal(p.Side(), board.SideA)

	p, err = New("Random-High", board.SideB, testSettings(), seededRNG(1))
	is.NoErr(err)
	is.Equal(p.Name(), "random-high")
	is.Equal(p.Side(), board.SideB)

	_, err = New("random-expert", board.SideB, testSettings(), nil)
	is.True(errors.Is(err, ErrUnknownPlayer))
	_, err = New("human", board.SideB, testSettings(), nil)
	is.True(errors.Is(err, ErrUnknownPlayer))
}

func TestRandomCandidatesOnEmptyBoard(t *testing.T) {
	is := is.New(t)
	b := board.New()
	is.Equal(len(NewRandomPlayer(board.SideA, LevelLow, seededRNG(1)).Candidates(b)), 49)
	is.Equal(NewRandomPlayer(board.SideA, LevelMedium, seededRNG(1)).Candidates(b), []move.Move{{Row: 7, Col: 7}})
	is.Equal(NewRandomPlayer(board.SideA, LevelHigh, seededRNG(1)).Candidates(b), []move.Move{{Row: 7, Col: 7}})
}

func TestRandomCandidateRadius(t *testing.T) {
	is := is.New(t)
	b := board.New()
	is.NoErr(b.Play(move.New(7, 7), board.SideA))
	is.Equal(len(NewRandomPlayer(board.SideB, LevelLow, nil).Candidates(b)), 48)
	is.Equal(len(NewRandomPlayer(board.SideB, LevelMedium, nil).Candidates(b)), 24)
	is.Equal(len(NewRandomPlayer(board.SideB, LevelHigh, nil).Candidates(b)), 8)
}

func TestHighLevelCenterBonus(t *testing.T) {
	is := is.New(t)
	p := NewRandomPlayer(board.SideA, LevelHigh, seededRNG(2))
	score := p.ScoreMove(board.New(), move.New(7, 7))
	is.True(score >= 750 && score <= 850)
	score = p.ScoreMove(board.New(), move.New(0, 0))
	is.True(score >= 50 && score <= 150) // manhattan 14 from the center
}

func TestRandomHighTakesWinAndBlock(t *testing.T) {
	is := is.New(t)
	b := mustParse(t, fourForA)
	before := b.Clone()

	for seed := byte(0); seed < 10; seed++ {
		winner := NewRandomPlayer(board.SideA, LevelHigh, seededRNG(seed))
		m, ok := winner.ChooseMove(context.Background(), b)
		is.True(ok)
		is.Equal(m, move.New(7, 7))
		is.Equal(winner.Stats().Opportunities, 1)

		blocker := NewRandomPlayer(board.SideB, LevelHigh, seededRNG(seed))
		m, ok = blocker.ChooseMove(context.Background(), b)
		is.True(ok)
		is.Equal(m, move.New(7, 7))
		is.Equal(blocker.Stats().Blocks, 1)
		is.Equal(blocker.Stats().TotalMoves, 1)
	}
	is.True(b.Equals(before))
}

func TestRandomPlayersPickEmptyCells(t *testing.T) {
	is := is.New(t)
	for _, level := range []Level{LevelLow, LevelMedium, LevelHigh} {
		b := board.New()
		a := NewRandomPlayer(board.SideA, level, seededRNG(byte(level)))
		o := NewRandomPlayer(board.SideB, level, seededRNG(byte(level)+10))
		for i := 0; i < 20; i++ {
			for _, p := range []*RandomPlayer{a, o} {
				m, ok := p.ChooseMove(context.Background(), b)
				is.True(ok)
				is.NoErr(b.Play(m, p.Side()))
			}
		}
		is.Equal(a.Stats().TotalMoves, 20)
		is.Equal(o.Stats().TotalMoves, 20)
	}
}

func TestScoreMoveFavorsOwnShapes(t *testing.T) {
	is := is.New(t)
	b := board.New()
	is.NoErr(b.Play(move.New(7, 7), board.SideB))
	is.NoErr(b.Play(move.New(7, 8), board.SideB))
	p := NewRandomPlayer(board.SideB, LevelMedium, seededRNG(3))
	near := p.ScoreMove(b, move.New(7, 9))
	far := p.ScoreMove(b, move.New(5, 5))
	// a three beats jitter of at most 1000.
	is.True(near > far)
}

func TestEnginePlayerBlocks(t *testing.T) {
	is := is.New(t)
	b := mustParse(t, fourForA)
	p := NewEnginePlayer(board.SideB, testSettings(), eval.NewCache(1<<10))
	m, ok := p.ChooseMove(context.Background(), b)
	is.True(ok)
	is.Equal(m, move.New(7, 7))
	is.Equal(p.Stats(), MoveStats{Blocks: 1, TotalMoves: 1})
	is.Equal(p.Engine().Stats().FastPath, "block")
}

func TestMoveStatsAdd(t *testing.T) {
	is := is.New(t)
	s := MoveStats{Blocks: 1, Opportunities: 2, TotalMoves: 3}
	is.Equal(s.Add(s), MoveStats{Blocks: 2, Opportunities: 4, TotalMoves: 6})
}
