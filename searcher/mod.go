package searcher

import "planner/experiments/metrics"

// Problem describes an implicit graph to search. States must be usable as map
// keys; Expand returns successors carrying their own accumulated cost.
type Problem[S comparable] interface {
	Start() S
	IsGoal(state S) bool
	Expand(node *Node[S]) []*Node[S]
}

// Evaluate scores a node; the frontier pops the lowest score first.
type Evaluate[S comparable] func(node *Node[S]) float64

// Heuristic estimates the remaining cost from a state to the nearest goal.
type Heuristic[S comparable] func(state S) float64

// Result of a best-first search. Path is nil when Found is false.
type Result[S comparable] struct {
	Found       bool
	Path        []S
	Cost        float64
	Expanded    int
	MaxFrontier int
	Truncated   bool
	Metric      metrics.SearchMetric
}
