package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Depth      int
	Goroutines int
	DrawPolicy string
	Simulator  string
	Duration   time.Duration
	Nodes      int
	Leaves     int
	Candidates int // columns scored at the root
	BestScore  int
}

type MoveMetric struct {
	Step   int
	Player string
	Column int
	SearchMetric
}

type GameMetric struct {
	StartingPlayer string
	Winner         string // "none" for a draw
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

// Collector gathers statistics for one search at a time. AddNode and AddLeaf may
// be called from several goroutines.
type Collector interface {
	Start(depth, goroutines int, drawPolicy, simulator string)
	AddNode()
	AddLeaf()
	Complete(candidates, bestScore int) SearchMetric
}

type collector struct {
	depth      int
	goroutines int
	drawPolicy string
	simulator  string
	startTime  time.Time
	nodes      atomic.Int64
	leaves     atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(depth, goroutines int, drawPolicy, simulator string) {
	m.startTime = time.Now()
	m.depth = depth
	m.goroutines = goroutines
	m.drawPolicy = drawPolicy
	m.simulator = simulator
	m.nodes.Store(0)
	m.leaves.Store(0)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddLeaf() {
	m.leaves.Add(1)
}

func (m *collector) Complete(candidates, bestScore int) SearchMetric {
	return SearchMetric{
		Depth:      m.depth,
		Goroutines: m.goroutines,
		DrawPolicy: m.drawPolicy,
		Simulator:  m.simulator,
		Duration:   time.Since(m.startTime),
		Nodes:      int(m.nodes.Load()),
		Leaves:     int(m.leaves.Load()),
		Candidates: candidates,
		BestScore:  bestScore,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(depth, goroutines int, drawPolicy, simulator string) {}
func (m *dummyCollector) AddNode()                                                  {}
func (m *dummyCollector) AddLeaf()                                                  {}
func (m *dummyCollector) Complete(candidates, bestScore int) SearchMetric           { return SearchMetric{} }
