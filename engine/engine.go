package engine

import (
	"errors"

	"planner/experiments/metrics"
)

var (
	ErrUnknownState = errors.New("state is not part of the model")
	ErrNoAction     = errors.New("policy has no action for state")
)

type Engine[S, A comparable] interface {
	// Run plays one episode from start until a terminal state or the step cap
	Run(start S) (Episode[S, A], error)
}

type Step[S, A comparable] struct {
	State  S
	Action A
	Next   S
	Reward float64
}

type Episode[S, A comparable] struct {
	Steps    []Step[S, A]
	Return   float64 // Discounted
	Terminal bool
}

func (e Episode[S, A]) States() []S {
	if len(e.Steps) == 0 {
		return nil
	}
	states := make([]S, 0, len(e.Steps)+1)
	states = append(states, e.Steps[0].State)
	for _, step := range e.Steps {
		states = append(states, step.Next)
	}
	return states
}

func (e Episode[S, A]) Metric(id int) metrics.EpisodeMetric {
	return metrics.EpisodeMetric{
		Episode:  id,
		Steps:    len(e.Steps),
		Return:   e.Return,
		Terminal: e.Terminal,
	}
}
