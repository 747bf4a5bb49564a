package searcher

import (
	"strings"
	"testing"

	"connect4/game"

	"github.com/stretchr/testify/require"
)

// drawLayout builds a full 7x6 board without any four-in-a-row, leaving the
// given top cells empty.
func drawLayout(holes ...[2]int) string {
	var sb strings.Builder
	for y := 5; y >= 0; y-- {
		for x := 0; x < 7; x++ {
			hole := false
			for _, h := range holes {
				if h == [2]int{x, y} {
					hole = true
				}
			}
			switch {
			case hole:
				sb.WriteString(".")
			case (x/2+y)%2 == 0:
				sb.WriteString("R")
			default:
				sb.WriteString("Y")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func mustParse(t *testing.T, layout string, next game.Player) *game.Board {
	t.Helper()
	b, err := game.ParseBoard(layout, next)
	require.NoError(t, err)
	return b
}

var simulators = []Simulator{CopyOnWrite, PlayAndUndo}

func TestMinimaxSearch(t *testing.T) {
	t.Run("never selects a full column", func(t *testing.T) {
		b := mustParse(t, drawLayout([2]int{4, 5}, [2]int{6, 5}), game.Red)

		for seed := uint64(0); seed < 20; seed++ {
			m := NewMinimax(WithIdentity(game.Red), WithDepth(3), WithSeed(seed))
			column, err := m.ChooseMove(b)

			require.NoError(t, err)
			require.Contains(t, []int{4, 6}, column, "Column %d is full", column)
		}
	})

	t.Run("single open column is always chosen", func(t *testing.T) {
		b := mustParse(t, drawLayout([2]int{6, 5}), game.Red)

		for _, simulator := range simulators {
			for seed := uint64(0); seed < 5; seed++ {
				m := NewMinimax(WithIdentity(game.Red), WithSimulator(simulator), WithSeed(seed))
				result, err := m.Search(b)

				require.NoError(t, err)
				require.Equal(t, 6, result.Column)
				require.Len(t, result.Scores, 1)
			}
		}
	})

	t.Run("takes a win in one ply", func(t *testing.T) {
		b := mustParse(t, `
			.......
			.......
			.......
			.......
			YY.....
			RRR.Y..`, game.Red)

		for depth := 1; depth <= 4; depth++ {
			for _, simulator := range simulators {
				for _, goroutines := range []int{1, 4} {
					m := NewMinimax(WithIdentity(game.Red), WithDepth(depth), WithSimulator(simulator), WithGoroutines(goroutines))
					result, err := m.Search(b)

					require.NoError(t, err)
					require.Equal(t, 3, result.Column, "depth %d simulator %s goroutines %d", depth, simulator, goroutines)
					for _, score := range result.Scores {
						if score.Column == 3 {
							require.Equal(t, depth, score.Value, "Immediate win should score the full depth")
						} else {
							require.Less(t, score.Value, depth)
						}
					}
				}
			}
		}
	})

	t.Run("blocks the opponent's immediate win", func(t *testing.T) {
		b := mustParse(t, `
			.......
			.......
			.......
			.......
			YY.....
			RRR....`, game.Yellow)

		for seed := uint64(0); seed < 10; seed++ {
			m := NewMinimax(WithDepth(2), WithSeed(seed))
			column, err := m.ChooseMove(b)

			require.NoError(t, err)
			require.Equal(t, 3, column)
		}
	})

	t.Run("losing scores are not clipped by the initial bound", func(t *testing.T) {
		// Yellow threatens both ends of its row, so every red move loses.
		b := mustParse(t, `
			.......
			.......
			.......
			.......
			......R
			.YYY.RR`, game.Red)

		m := NewMinimax(WithIdentity(game.Red), WithDepth(2))
		result, err := m.Search(b)

		require.NoError(t, err)
		require.Len(t, result.Scores, 7)
		for _, score := range result.Scores {
			require.Equal(t, -1, score.Value, "column %d should lose at the next ply", score.Column)
		}
	})

	t.Run("ties are broken at random", func(t *testing.T) {
		b := game.NewDefaultBoard()
		_, err := b.PlayColumn(3)
		require.NoError(t, err)

		chosen := map[int]bool{}
		for seed := uint64(0); seed < 50; seed++ {
			m := NewMinimax(WithDepth(1), WithSeed(seed))
			result, err := m.Search(b)
			require.NoError(t, err)
			for _, score := range result.Scores {
				require.Zero(t, score.Value, "Nothing is decided within one ply")
			}
			chosen[result.Column] = true
		}

		require.Greater(t, len(chosen), 1, "Equal moves should not always resolve to the same column")
	})

	t.Run("same seed gives the same choice", func(t *testing.T) {
		b := game.NewDefaultBoard()
		_, err := b.PlayColumn(0)
		require.NoError(t, err)

		first, err := NewMinimax(WithDepth(2), WithSeed(7)).ChooseMove(b)
		require.NoError(t, err)
		second, err := NewMinimax(WithDepth(2), WithSeed(7)).ChooseMove(b)
		require.NoError(t, err)

		require.Equal(t, first, second)
	})

	t.Run("refuses out of turn and after the game ended", func(t *testing.T) {
		m := NewMinimax()

		_, err := m.Search(game.NewDefaultBoard())
		require.ErrorIs(t, err, ErrNotAITurn)

		_, err = m.Search(mustParse(t, drawLayout(), game.Yellow))
		require.ErrorIs(t, err, game.ErrGameOver)
	})
}

func TestMinimaxLeavesBoardUntouched(t *testing.T) {
	layout := `
		.......
		.......
		...Y...
		..RY...
		.RYR...
		RYYRY..`
	for _, simulator := range simulators {
		for _, goroutines := range []int{1, 3} {
			b := mustParse(t, layout, game.Red)
			before := b.Clone()

			m := NewMinimax(WithIdentity(game.Red), WithDepth(4), WithSimulator(simulator), WithGoroutines(goroutines))
			_, err := m.Search(b)

			require.NoError(t, err)
			require.Equal(t, before, b, "simulator %s goroutines %d modified the board", simulator, goroutines)
		}
	}
}

func TestMinimaxParallelMatchesSequential(t *testing.T) {
	b := mustParse(t, `
		.......
		.......
		.......
		...Y...
		..YR...
		.RRYY..`, game.Red)

	sequential, err := NewMinimax(WithIdentity(game.Red), WithDepth(4)).Search(b)
	require.NoError(t, err)

	for _, goroutines := range []int{2, 7, 16} {
		parallel, err := NewMinimax(WithIdentity(game.Red), WithDepth(4), WithGoroutines(goroutines)).Search(b)
		require.NoError(t, err)
		require.Equal(t, sequential.Scores, parallel.Scores, "goroutines %d", goroutines)
	}

	undo, err := NewMinimax(WithIdentity(game.Red), WithDepth(4), WithSimulator(PlayAndUndo)).Search(b)
	require.NoError(t, err)
	require.Equal(t, sequential.Scores, undo.Scores, "Simulators should agree")
}

func TestMinimaxDrawPolicy(t *testing.T) {
	b := mustParse(t, drawLayout([2]int{6, 5}), game.Red)

	t.Run("penalized draws score the draw penalty", func(t *testing.T) {
		m := NewMinimax(WithIdentity(game.Red), WithDrawPolicy(PenalizeDraws))
		result, err := m.Search(b)

		require.NoError(t, err)
		require.Equal(t, []Score{{Column: 6, Value: DrawPenalty}}, result.Scores)
	})

	t.Run("neutral draws score zero", func(t *testing.T) {
		m := NewMinimax(WithIdentity(game.Red), WithDrawPolicy(NeutralDraws))
		result, err := m.Search(b)

		require.NoError(t, err)
		require.Equal(t, []Score{{Column: 6, Value: DrawNeutral}}, result.Scores)
	})

	t.Run("parsing", func(t *testing.T) {
		policy, err := ParseDrawPolicy("Neutral")
		require.NoError(t, err)
		require.Equal(t, NeutralDraws, policy)

		policy, err = ParseDrawPolicy("penalize")
		require.NoError(t, err)
		require.Equal(t, PenalizeDraws, policy)

		_, err = ParseDrawPolicy("ignore")
		require.ErrorIs(t, err, ErrUnknownPolicy)
	})
}

func TestMinimaxEvaluator(t *testing.T) {
	m := NewMinimax(WithIdentity(game.Red))

	t.Run("horizon scores zero even on a won board", func(t *testing.T) {
		b := mustParse(t, "R......\nR......\nR......\nR......\nYYY....\n", game.Yellow)
		require.Equal(t, game.Red, b.Winner())

		require.Equal(t, 0, m.search(0, b, true, nil, traceNode{}))
	})

	t.Run("own win scores the remaining depth", func(t *testing.T) {
		b := mustParse(t, "R......\nR......\nR......\nR......\nYYY....\n", game.Yellow)

		require.Equal(t, 3, m.search(3, b, false, nil, traceNode{}))
	})

	t.Run("opponent win scores the negative remaining depth", func(t *testing.T) {
		b := mustParse(t, "Y......\nY......\nY......\nY......\nRRR....\n", game.Red)

		require.Equal(t, -2, m.search(2, b, true, nil, traceNode{}))
	})
}

func TestMinimaxMakeMove(t *testing.T) {
	t.Run("plays on the computer's turn and notifies", func(t *testing.T) {
		g := game.NewDefaultGame()
		_, err := g.PlayColumn(3)
		require.NoError(t, err)
		updates := 0
		g.OnGridUpdated(func() { updates++ })

		column, played := NewMinimax(WithDepth(2)).MakeMove(g)

		require.True(t, played)
		require.GreaterOrEqual(t, column, 0)
		require.Less(t, column, 7)
		require.Equal(t, 1, updates)
		require.Equal(t, game.Red, g.CurrentPlayer())
	})

	t.Run("quietly does nothing on the human's turn", func(t *testing.T) {
		g := game.NewDefaultGame()
		before := g.Snapshot()

		_, played := NewMinimax().MakeMove(g)

		require.False(t, played)
		require.Equal(t, before, g.Snapshot())
	})

	t.Run("quietly does nothing once the game ended", func(t *testing.T) {
		g := game.NewDefaultGame()
		for _, x := range []int{0, 1, 0, 1, 0, 1, 0} {
			_, err := g.PlayColumn(x)
			require.NoError(t, err)
		}

		_, played := NewMinimax(WithIdentity(game.Red)).MakeMove(g)

		require.False(t, played)
	})
}

func TestMinimaxInstrumentation(t *testing.T) {
	b := game.NewDefaultBoard()
	_, err := b.PlayColumn(3)
	require.NoError(t, err)

	t.Run("metrics count the explored tree", func(t *testing.T) {
		m := NewMinimax(WithDepth(2), WithMetrics(), WithGoroutines(2))
		result, err := m.Search(b)

		require.NoError(t, err)
		require.Equal(t, 7, result.Metric.Candidates)
		require.Equal(t, 2, result.Metric.Depth)
		require.Equal(t, 2, result.Metric.Goroutines)
		require.Equal(t, "penalize", result.Metric.DrawPolicy)
		require.Equal(t, "copy", result.Metric.Simulator)
		// root children are searched at full depth, so the horizon is three plies down
		require.Equal(t, 7+7*7+7*7*7, result.Metric.Nodes)
		require.Equal(t, 7*7*7, result.Metric.Leaves)
	})

	t.Run("metrics are off by default", func(t *testing.T) {
		result, err := NewMinimax(WithDepth(1)).Search(b)

		require.NoError(t, err)
		require.Zero(t, result.Metric.Nodes)
	})

	t.Run("trace records the first plies as a digraph", func(t *testing.T) {
		m := NewMinimax(WithDepth(2), WithTrace(1))
		result, err := m.Search(b)

		require.NoError(t, err)
		require.Contains(t, result.Trace, "digraph")
		require.Contains(t, result.Trace, "root")
		for x := 0; x < 7; x++ {
			require.Contains(t, result.Trace, `"c`+string(rune('0'+x)))
		}
		require.Equal(t, 7, strings.Count(result.Trace, "->"), "Only the first ply should be traced")
	})

	t.Run("trace is empty by default", func(t *testing.T) {
		result, err := NewMinimax(WithDepth(1)).Search(b)

		require.NoError(t, err)
		require.Empty(t, result.Trace)
	})
}
