package search

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/eval"
	"github.com/domino14/gomoku/move"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func newTestEngine(side board.Side, maxDepth int) *Engine {
	s := DefaultSettings()
	s.Side = side
	s.MaxDepth = maxDepth
	return NewEngine(s, eval.NewCache(1<<16))
}

func mustParse(t *testing.T, text string) *board.Board {
	t.Helper()
	b, err := board.Parse(text)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

// side B (O) has an open four on row 7.
const openFourForB = `
...............
...............
...............
...............
...............
.....X.........
......X........
...OOOO........
.......X.......
........X......
...............
...............
...............
...............
...............
`

// side A (X) has four on row 7, closed on the left by O.
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

const midGame = `
...............
...............
...............
...............
.....O.........
......X.O......
.....XOX.......
....X.OX.......
.....O.X.......
........O......
...............
...............
...............
...............
...............
`

func TestEmptyBoardPlaysCenter(t *testing.T) {
	is := is.New(t)
	e := newTestEngine(board.SideB, 0)
	m, ok := e.FindBestMove(context.Background(), board.New())
	is.True(ok)
	is.Equal(m, move.New(7, 7))
}

func TestTakesImmediateWin(t *testing.T) {
	is := is.New(t)
	b := mustParse(t, openFourForB)
	e := newTestEngine(board.SideB, 2)
	m, ok := e.FindBestMove(context.Background(), b)
	is.True(ok)
	is.True(m == move.New(7, 2) || m == move.New(7, 7))
	is.Equal(e.Stats().FastPath, "win")
}

func TestTakesImmediateWinAsSideA(t *testing.T) {
	is := is.New(t)
	b := mustParse(t, fourForA)
	e := newTestEngine(board.SideA, 2)
	m, ok := e.FindBestMove(context.Background(), b)
	is.True(ok)
	is.Equal(m, move.New(7, 7))
	is.Equal(e.Stats().Score, float64(WinScore))
}

func TestBlocksOpponentFour(t *testing.T) {
	is := is.New(t)
	b := mustParse(t, fourForA)
	e := newTestEngine(board.SideB, 2)
	m, ok := e.FindBestMove(context.Background(), b)
	is.True(ok)
	is.Equal(m, move.New(7, 7))
	is.Equal(e.Stats().FastPath, "block")
}

func TestBoardUnchanged(t *testing.T) {
	is := is.New(t)
	for _, text := range []string{openFourForB, fourForA, midGame} {
		b := mustParse(t, text)
		before := b.Clone()
		for _, side := range []board.Side{board.SideA, board.SideB} {
			e := newTestEngine(side, 3)
			_, ok := e.FindBestMove(context.Background(), b)
			is.True(ok)
			is.True(b.Equals(before))
			is.Equal(b.Hash(), before.Hash())
			is.Equal(b.Stones(), before.Stones())
		}
	}
}

func TestIterativeDeepeningReachesTarget(t *testing.T) {
	is := is.New(t)
	b := mustParse(t, midGame)
	e := newTestEngine(board.SideB, 2)
	m, ok := e.FindBestMove(context.Background(), b)
	is.True(ok)
	is.Equal(b.At(m.Row, m.Col), board.Empty)
	st := e.Stats()
	is.Equal(st.TargetDepth, 2)
	is.Equal(st.Depth, 2)
	is.Equal(st.FastPath, "")
	is.True(st.Nodes > 0)
	is.True(st.Cache.Lookups > 0)
}

func TestFullBoardHasNoMove(t *testing.T) {
	is := is.New(t)
	b := board.New()
	// fill so that no row, column or diagonal holds five of a kind.
	for r := 0; r < board.Size; r++ {
		for c := 0; c < board.Size; c++ {
			side := board.Side(((c + 2*r) / 2) % 2)
			is.NoErr(b.Play(move.New(r, c), side))
		}
	}
	e := newTestEngine(board.SideB, 2)
	_, ok := e.FindBestMove(context.Background(), b)
	is.True(!ok)
}

func TestSearchDepthScoresWins(t *testing.T) {
	b := mustParse(t, openFourForB)
	e := newTestEngine(board.SideB, 0)
	score, m, ok := e.SearchDepth(b, 1, board.SideB)
	assert.True(t, ok)
	assert.Equal(t, float64(-WinScore), score)
	assert.Contains(t, []move.Move{move.New(7, 2), move.New(7, 7)}, m)

	// side A to move cannot win at once; it should stop one end.
	score, m, ok = e.SearchDepth(b, 2, board.SideA)
	assert.True(t, ok)
	assert.Equal(t, float64(-WinScore), score)
	assert.Contains(t, []move.Move{move.New(7, 2), move.New(7, 7)}, m)
}

func TestPanicInDeeperIterationFallsBack(t *testing.T) {
	is := is.New(t)
	b := mustParse(t, midGame)
	e := newTestEngine(board.SideB, 3)
	e.onIteration = func(depth int) {
		if depth == 2 {
			panic("bad iteration")
		}
	}
	before := b.Clone()
	m, ok := e.FindBestMove(context.Background(), b)
	is.True(ok)
	is.Equal(e.Stats().Depth, 1)
	is.Equal(b.At(m.Row, m.Col), board.Empty)
	is.True(b.Equals(before))
}

func TestPanicInFirstIterationPropagates(t *testing.T) {
	b := mustParse(t, midGame)
	before := b.Clone()
	e := newTestEngine(board.SideB, 3)
	e.onIteration = func(depth int) {
		panic("bad iteration")
	}
	assert.Panics(t, func() {
		e.FindBestMove(context.Background(), b)
	})
	assert.True(t, b.Equals(before))
}

func TestHardLimitAbortsIteration(t *testing.T) {
	is := is.New(t)
	b := mustParse(t, midGame)
	s := DefaultSettings()
	s.MaxDepth = 3
	s.TimeBudget = 200 * time.Millisecond
	s.HardLimit = true
	e := NewEngine(s, eval.NewCache(1<<16))
	e.onIteration = func(depth int) {
		if depth == 2 {
			time.Sleep(300 * time.Millisecond)
		}
	}
	before := b.Clone()
	m, ok := e.FindBestMove(context.Background(), b)
	is.True(ok)
	is.True(e.Stats().TimedOut)
	is.Equal(e.Stats().Depth, 1)
	is.Equal(b.At(m.Row, m.Col), board.Empty)
	is.True(b.Equals(before))
}

func TestCancelledContextStopsAfterFirstDepth(t *testing.T) {
	is := is.New(t)
	b := mustParse(t, midGame)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	e := newTestEngine(board.SideB, 3)
	_, ok := e.FindBestMove(ctx, b)
	is.True(ok)
	is.Equal(e.Stats().Depth, 1)
}

func TestDepthSchedule(t *testing.T) {
	is := is.New(t)
	s := DefaultSettings()
	is.Equal(s.DepthFor(225), 2)
	is.Equal(s.DepthFor(201), 2)
	is.Equal(s.DepthFor(200), 3)
	is.Equal(s.DepthFor(151), 3)
	is.Equal(s.DepthFor(150), 4)
	is.Equal(s.DepthFor(3), 4)
	s.MaxDepth = 3
	is.Equal(s.DepthFor(3), 3)

	sched, err := ParseDepthSchedule("200:2, 150:3, 4")
	is.NoErr(err)
	is.Equal(sched, DefaultDepthSchedule())
	is.Equal(sched.String(), "200:2,150:3,4")

	sched, err = ParseDepthSchedule("3")
	is.NoErr(err)
	is.Equal(sched.DepthFor(224), 3)

	for _, bad := range []string{"", "200:2,150:", "150:2,200:3,4", "200:3,150:2,4", "200:x,4", "200:2,1", "0"} {
		_, err = ParseDepthSchedule(bad)
		is.True(err != nil)
	}
}
