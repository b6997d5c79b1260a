package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Strategy   string
	Evaluation string
	Depth      int
	Goroutines int
	Duration   time.Duration
	Successors int // Successor states generated
	Leaves     int // Evaluation function calls
	Cutoffs    int // Nodes abandoned by pruning
}

type MoveMetric struct {
	Step   int
	Agent  int // Agent index
	Action string
	SearchMetric
}

type GameMetric struct {
	Layout     string
	Outcome    string
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
	FinalScore float64
}

// Collector counts the work done by one search at a time. Counters may be
// incremented concurrently; Start and Complete must bracket a single search.
type Collector interface {
	Start(strategy string, depth, goroutines int)
	AddSuccessor()
	AddLeaf()
	AddCutoff()
	Complete() SearchMetric
}

type collector struct {
	strategy   string
	depth      int
	goroutines int
	startTime  time.Time
	successors atomic.Int64
	leaves     atomic.Int64
	cutoffs    atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(strategy string, depth, goroutines int) {
	m.startTime = time.Now()
	m.strategy = strategy
	m.depth = depth
	m.goroutines = goroutines
	m.successors.Store(0)
	m.leaves.Store(0)
	m.cutoffs.Store(0)
}

func (m *collector) AddSuccessor() {
	m.successors.Add(1)
}

func (m *collector) AddLeaf() {
	m.leaves.Add(1)
}

func (m *collector) AddCutoff() {
	m.cutoffs.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Strategy:   m.strategy,
		Depth:      m.depth,
		Goroutines: m.goroutines,
		Duration:   time.Since(m.startTime),
		Successors: int(m.successors.Load()),
		Leaves:     int(m.leaves.Load()),
		Cutoffs:    int(m.cutoffs.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(strategy string, depth, goroutines int) {}
func (m *dummyCollector) AddSuccessor()                                {}
func (m *dummyCollector) AddLeaf()                                     {}
func (m *dummyCollector) AddCutoff()                                   {}
func (m *dummyCollector) Complete() SearchMetric                       { return SearchMetric{} }
