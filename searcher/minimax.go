package searcher

import (
	"math"
	"sync"
	"time"

	"connect4/experiments/metrics"
	"connect4/game"
	"connect4/meta"
	"connect4/utils"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(m *Minimax)

// Result is the outcome of one root search.
type Result struct {
	Column int
	Scores []Score // one per open column, ascending by column
	Metric metrics.SearchMetric
	Trace  string // Graphviz DOT, empty unless WithTrace
}

// Minimax picks moves for one identity by exhaustive depth-bounded search.
// A Minimax runs one search at a time.
type Minimax struct {
	identity   game.Player
	depth      int
	drawPolicy DrawPolicy
	simulator  Simulator
	goroutines int
	rand       *rand.Rand
	metrics    metrics.Collector
	traceDepth int
}

func WithIdentity(player game.Player) Option {
	return func(m *Minimax) {
		if player == game.Red || player == game.Yellow {
			m.identity = player
		}
	}
}

func WithDepth(depth int) Option {
	return func(m *Minimax) {
		if depth > 0 {
			m.depth = depth
		}
	}
}

func WithDrawPolicy(policy DrawPolicy) Option {
	return func(m *Minimax) {
		m.drawPolicy = policy
	}
}

func WithSimulator(simulator Simulator) Option {
	return func(m *Minimax) {
		if simulator != nil {
			m.simulator = simulator
		}
	}
}

// WithGoroutines searches root columns in parallel, each on its own board.
func WithGoroutines(goroutines int) Option {
	return func(m *Minimax) {
		if goroutines > 0 {
			m.goroutines = goroutines
		}
	}
}

// WithSeed makes tie-breaks reproducible.
func WithSeed(seed uint64) Option {
	return func(m *Minimax) {
		m.rand = rand.New(rand.NewSource(seed))
	}
}

func WithMetrics() Option {
	return func(m *Minimax) {
		m.metrics = metrics.NewCollector()
	}
}

// WithTrace records the first plies of every search in Result.Trace.
func WithTrace(plies int) Option {
	return func(m *Minimax) {
		if plies > 0 {
			m.traceDepth = plies
		}
	}
}

func NewMinimax(options ...Option) *Minimax {
	m := &Minimax{ // Default values
		identity:   game.Yellow,
		depth:      meta.DEFAULT_DEPTH,
		drawPolicy: PenalizeDraws,
		simulator:  CopyOnWrite,
		goroutines: 1,
		metrics:    metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.rand == nil {
		m.rand = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return m
}

func (m *Minimax) Identity() game.Player {
	return m.identity
}

func (m *Minimax) Depth() int {
	return m.depth
}

func (m *Minimax) IsAITurn(b *game.Board) bool {
	return b.CurrentPlayer() == m.identity
}

// MakeMove plays the best column for the computer on g. It does nothing and
// reports false when the game is over or it is the other player's turn.
func (m *Minimax) MakeMove(g *game.Game) (int, bool) {
	if g.HasGameEnded() || g.CurrentPlayer() != m.identity {
		return -1, false
	}

	column, err := m.ChooseMove(g.Snapshot())
	if err != nil {
		log.Warn().Err(err).Msg("no move found")
		return -1, false
	}
	if _, err := g.PlayColumn(column); err != nil {
		log.Error().Err(err).Msgf("chosen column %d was rejected", column)
		return -1, false
	}
	return column, true
}

func (m *Minimax) ChooseMove(b *game.Board) (int, error) {
	result, err := m.Search(b)
	if err != nil {
		return -1, err
	}
	return result.Column, nil
}

// Search scores every open column and picks one of the best at random.
// b itself is never modified.
func (m *Minimax) Search(b *game.Board) (Result, error) {
	if b.HasGameEnded() {
		return Result{}, game.ErrGameOver
	}
	if !m.IsAITurn(b) {
		return Result{}, ErrNotAITurn
	}

	root := b.Clone()
	trace := newTracer(m.traceDepth)
	m.metrics.Start(m.depth, m.goroutines, m.drawPolicy.String(), m.simulator.String())

	var scores []Score
	if m.goroutines > 1 {
		scores = m.searchParallel(root, trace)
	} else {
		scores = m.searchSequential(root, trace)
	}

	values := make([]int, len(scores))
	for i, score := range scores {
		values[i] = score.Value
	}
	best := utils.MaxIndices(values)
	pick := scores[best[m.rand.Intn(len(best))]]

	metric := m.metrics.Complete(len(scores), pick.Value)
	log.Debug().Msgf("%s picked column %d from %d tied of %v", m.identity, pick.Column, len(best), scores)

	return Result{
		Column: pick.Column,
		Scores: scores,
		Metric: metric,
		Trace:  trace.String(),
	}, nil
}

func (m *Minimax) searchSequential(root *game.Board, trace *tracer) []Score {
	top := trace.root()
	scores := make([]Score, 0, root.Columns())
	for x := 0; x < root.Columns(); x++ {
		child, undo, ok := m.simulator.Simulate(root, x)
		if !ok {
			continue
		}
		value := m.search(m.depth, child, false, trace, trace.child(top, x))
		undo()
		scores = append(scores, Score{Column: x, Value: value})
	}
	return scores
}

// searchParallel hands root columns to a pool of workers. Every branch gets its
// own clone and results are merged by column, so scores match searchSequential.
func (m *Minimax) searchParallel(root *game.Board, trace *tracer) []Score {
	top := trace.root()
	moves := root.LegalMoves()
	values := make([]int, len(moves))
	played := make([]bool, len(moves))

	task := make(chan int, len(moves))
	for i := range moves {
		task <- i
	}
	close(task)

	var wg sync.WaitGroup
	for w := 0; w < min(m.goroutines, len(moves)); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for i := range task {
				child, undo, ok := m.simulator.Simulate(root.Clone(), moves[i])
				if !ok {
					continue
				}
				values[i] = m.search(m.depth, child, false, trace, trace.child(top, moves[i]))
				played[i] = true
				undo()
			}
		}()
	}
	wg.Wait()

	scores := make([]Score, 0, len(moves))
	for i, x := range moves {
		if played[i] {
			scores = append(scores, Score{Column: x, Value: values[i]})
		}
	}
	return scores
}

// search returns the value of b for the computer. maximizing is true when the
// computer is the one to move at b; it alternates with every ply.
func (m *Minimax) search(depth int, b *game.Board, maximizing bool, trace *tracer, node traceNode) int {
	m.metrics.AddNode()

	leaf := func(value int) int {
		m.metrics.AddLeaf()
		trace.score(node, value)
		return value
	}

	if depth == 0 {
		return leaf(0)
	}
	if !b.SpotLeftOnBoard() {
		return leaf(m.drawPolicy.Score())
	}
	switch b.Winner() {
	case m.identity:
		return leaf(depth)
	case m.identity.Opponent():
		return leaf(-depth)
	}

	best := math.MaxInt
	if maximizing {
		best = math.MinInt
	}
	for x := 0; x < b.Columns(); x++ {
		child, undo, ok := m.simulator.Simulate(b, x)
		if !ok {
			continue
		}
		score := m.search(depth-1, child, !maximizing, trace, trace.child(node, x))
		undo()
		if maximizing {
			best = max(best, score)
		} else {
			best = min(best, score)
		}
	}

	trace.score(node, best)
	return best
}
