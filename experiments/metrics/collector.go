package metrics

import (
	"time"
)

type SearchMetric struct {
	Strategy    string
	Duration    time.Duration
	Expanded    int
	Generated   int
	Replaced    int
	MaxFrontier int
	Found       bool
}

type SweepMetric struct {
	Sweep    int
	Delta    float64
	States   int
	Duration time.Duration
}

type SolveMetric struct {
	Duration  time.Duration
	Sweeps    []SweepMetric
	Converged bool
}

type EpisodeMetric struct {
	Episode  int
	Steps    int
	Return   float64
	Terminal bool // Ended in a terminal state rather than at the step cap
}

// SearchCollector records diagnostics for a single best-first search.
type SearchCollector interface {
	Start(strategy string)
	AddExpansion()
	AddGenerated(n int)
	AddReplacement()
	ObserveFrontier(size int)
	Complete(found bool) SearchMetric
}

// SweepCollector records diagnostics for a single value iteration run.
type SweepCollector interface {
	Start()
	AddSweep(delta float64, states int)
	Complete(converged bool) SolveMetric
}

type searchCollector struct {
	strategy    string
	startTime   time.Time
	expanded    int
	generated   int
	replaced    int
	maxFrontier int
}

func NewSearchCollector() SearchCollector {
	return &searchCollector{}
}

func (m *searchCollector) Start(strategy string) {
	*m = searchCollector{strategy: strategy, startTime: time.Now()}
}

func (m *searchCollector) AddExpansion() {
	m.expanded++
}

func (m *searchCollector) AddGenerated(n int) {
	m.generated += n
}

func (m *searchCollector) AddReplacement() {
	m.replaced++
}

func (m *searchCollector) ObserveFrontier(size int) {
	if size > m.maxFrontier {
		m.maxFrontier = size
	}
}

func (m *searchCollector) Complete(found bool) SearchMetric {
	return SearchMetric{
		Strategy:    m.strategy,
		Duration:    time.Since(m.startTime),
		Expanded:    m.expanded,
		Generated:   m.generated,
		Replaced:    m.replaced,
		MaxFrontier: m.maxFrontier,
		Found:       found,
	}
}

type sweepCollector struct {
	startTime time.Time
	lastSweep time.Time
	sweeps    []SweepMetric
}

func NewSweepCollector() SweepCollector {
	return &sweepCollector{}
}

func (m *sweepCollector) Start() {
	m.startTime = time.Now()
	m.lastSweep = m.startTime
	m.sweeps = nil
}

func (m *sweepCollector) AddSweep(delta float64, states int) {
	now := time.Now()
	m.sweeps = append(m.sweeps, SweepMetric{
		Sweep:    len(m.sweeps) + 1,
		Delta:    delta,
		States:   states,
		Duration: now.Sub(m.lastSweep),
	})
	m.lastSweep = now
}

func (m *sweepCollector) Complete(converged bool) SolveMetric {
	return SolveMetric{
		Duration:  time.Since(m.startTime),
		Sweeps:    m.sweeps,
		Converged: converged,
	}
}

type dummySearchCollector struct{}

func NewDummySearchCollector() SearchCollector {
	return &dummySearchCollector{}
}

func (m *dummySearchCollector) Start(strategy string)            {}
func (m *dummySearchCollector) AddExpansion()                    {}
func (m *dummySearchCollector) AddGenerated(n int)               {}
func (m *dummySearchCollector) AddReplacement()                  {}
func (m *dummySearchCollector) ObserveFrontier(size int)         {}
func (m *dummySearchCollector) Complete(found bool) SearchMetric { return SearchMetric{} }

type dummySweepCollector struct{}

func NewDummySweepCollector() SweepCollector {
	return &dummySweepCollector{}
}

func (m *dummySweepCollector) Start()                              {}
func (m *dummySweepCollector) AddSweep(delta float64, states int)  {}
func (m *dummySweepCollector) Complete(converged bool) SolveMetric { return SolveMetric{} }
