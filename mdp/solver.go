package mdp

import (
	"fmt"
	"math"

	"planner/experiments/metrics"
	"planner/meta"

	"github.com/rs/zerolog/log"
)

type Option func(o *options)

type options struct {
	epsilon   float64
	maxSweeps int
	metrics   metrics.SweepCollector
}

// WithEpsilon sets how close to the optimal value function the result must be.
func WithEpsilon(epsilon float64) Option {
	return func(o *options) {
		o.epsilon = epsilon
	}
}

// WithMaxSweeps stops value iteration with ErrNotConverged after n sweeps.
func WithMaxSweeps(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxSweeps = n
		}
	}
}

func WithMetrics(collector metrics.SweepCollector) Option {
	return func(o *options) {
		if collector != nil {
			o.metrics = collector
		}
	}
}

// Result of value iteration. Expanded logs every state touched, sweep by
// sweep, in enumeration order.
type Result[S comparable] struct {
	Values   map[S]float64
	Sweeps   int
	Deltas   []float64
	Expanded []S
	Metric   metrics.SolveMetric
}

// ValueIteration applies the Bellman optimality operator until the largest
// change in a sweep drops below epsilon*(1-gamma)/gamma, which bounds the
// distance of the result from the optimal value function by epsilon.
//
// Each sweep reads only the previous sweep's values.
func ValueIteration[S, A comparable](model *Model[S, A], opts ...Option) (*Result[S], error) {
	o := options{ // Default values
		epsilon: meta.DEFAULT_EPSILON,
		metrics: metrics.NewDummySweepCollector(),
	}
	for _, option := range opts {
		option(&o)
	}

	if err := model.Validate(); err != nil {
		return nil, err
	}
	if math.IsNaN(o.epsilon) || o.epsilon <= 0 {
		return nil, configErrorf(ErrInvalidEpsilon, "epsilon %v", o.epsilon)
	}

	gamma := model.Gamma()
	threshold := math.Inf(1) // gamma == 0: one sweep is exact
	if gamma > 0 {
		threshold = o.epsilon * (1 - gamma) / gamma
	}

	states := model.States()
	values := make(map[S]float64, len(states))
	for _, s := range states {
		values[s] = 0
	}

	result := &Result[S]{}
	o.metrics.Start()
	for {
		updated := make(map[S]float64, len(states))
		delta := 0.0
		for _, s := range states {
			result.Expanded = append(result.Expanded, s)

			best := math.Inf(-1)
			for _, a := range model.Actions(s) {
				best = math.Max(best, model.Q(s, a, values))
			}
			updated[s] = best
			delta = math.Max(delta, math.Abs(best-values[s]))
		}
		values = updated

		result.Sweeps++
		result.Deltas = append(result.Deltas, delta)
		o.metrics.AddSweep(delta, len(states))
		log.Debug().Msgf("sweep %d delta %g", result.Sweeps, delta)

		if delta < threshold {
			break
		}
		if o.maxSweeps > 0 && result.Sweeps >= o.maxSweeps {
			result.Values = values
			result.Metric = o.metrics.Complete(false)
			log.Warn().Msgf("value iteration stopped after %d sweeps with delta %g", result.Sweeps, delta)
			return result, fmt.Errorf("%w: delta %g after %d sweeps", ErrNotConverged, delta, result.Sweeps)
		}
	}

	result.Values = values
	result.Metric = o.metrics.Complete(true)
	log.Info().Msgf("value iteration needed %d sweeps to converge and touched %d states",
		result.Sweeps, len(result.Expanded))
	return result, nil
}
