package searcher

import (
	"planner/experiments/metrics"

	"github.com/rs/zerolog/log"
)

type Option func(o *options)

type options struct {
	name    string
	limit   int
	metrics metrics.SearchCollector
}

// WithName labels the strategy in logs and metrics.
func WithName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}

// WithExpansionLimit stops the search as not found once this many states
// have been expanded without reaching a goal.
func WithExpansionLimit(limit int) Option {
	return func(o *options) {
		if limit > 0 {
			o.limit = limit
		}
	}
}

func WithMetrics(collector metrics.SearchCollector) Option {
	return func(o *options) {
		if collector != nil {
			o.metrics = collector
		}
	}
}

// BestFirst is a graph search parameterized by its evaluation function:
// UniformCost, Greedy and AStar all run through the same loop.
type BestFirst[S comparable] struct {
	evaluate Evaluate[S]
	options
}

func NewBestFirst[S comparable](evaluate Evaluate[S], opts ...Option) *BestFirst[S] {
	if evaluate == nil {
		panic("best-first search needs an evaluation function")
	}
	b := &BestFirst[S]{ // Default values
		evaluate: evaluate,
		options: options{
			name:    "best-first",
			metrics: metrics.NewDummySearchCollector(),
		},
	}
	for _, option := range opts {
		option(&b.options)
	}
	return b
}

func (b *BestFirst[S]) Name() string {
	return b.name
}

// Search runs best-first search from the problem's start state. Expanded
// states are closed for good; a cheaper route to a state still in the
// frontier replaces the stale entry.
func (b *BestFirst[S]) Search(problem Problem[S]) Result[S] {
	b.metrics.Start(b.name)

	frontier := NewFrontier(b.evaluate)
	mustInsert(frontier, NewNode(problem.Start(), 0, nil))
	expanded := make(map[S]struct{})
	maxFrontier := 0

	for frontier.Len() > 0 {
		maxFrontier = max(maxFrontier, frontier.Len())
		b.metrics.ObserveFrontier(frontier.Len())

		if b.limit > 0 && len(expanded) >= b.limit {
			log.Warn().Msgf("%s search stopped after %d expansions", b.name, len(expanded))
			return Result[S]{
				Expanded:    len(expanded),
				MaxFrontier: maxFrontier,
				Truncated:   true,
				Metric:      b.metrics.Complete(false),
			}
		}

		node, err := frontier.PopMin()
		if err != nil {
			break
		}
		expanded[node.state] = struct{}{}
		b.metrics.AddExpansion()

		if problem.IsGoal(node.state) {
			path := node.Path()
			log.Debug().Msgf("%s search found a path of %d states with cost %g, expanded %d states, max frontier %d",
				b.name, len(path), node.cost, len(expanded), maxFrontier)
			return Result[S]{
				Found:       true,
				Path:        path,
				Cost:        node.cost,
				Expanded:    len(expanded),
				MaxFrontier: maxFrontier,
				Metric:      b.metrics.Complete(true),
			}
		}

		successors := problem.Expand(node)
		b.metrics.AddGenerated(len(successors))
		for _, successor := range successors {
			if _, closed := expanded[successor.state]; closed {
				continue
			}

			current, queued := frontier.Lookup(successor.state)
			if !queued {
				mustInsert(frontier, successor)
				continue
			}
			if current.cost > successor.cost {
				frontier.Remove(current)
				mustInsert(frontier, successor)
				b.metrics.AddReplacement()
			}
		}
	}

	log.Debug().Msgf("%s search exhausted the frontier after expanding %d states", b.name, len(expanded))
	return Result[S]{
		Expanded:    len(expanded),
		MaxFrontier: maxFrontier,
		Metric:      b.metrics.Complete(false),
	}
}

func mustInsert[S comparable](frontier *Frontier[S], node *Node[S]) {
	if err := frontier.Insert(node); err != nil {
		panic(err)
	}
}
