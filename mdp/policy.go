package mdp

import (
	"fmt"
)

// Policy maps every state to the action it prescribes.
type Policy[S, A comparable] map[S]A

// Actions lists the prescribed actions for states, in the given order.
func (p Policy[S, A]) Actions(states []S) []A {
	actions := make([]A, 0, len(states))
	for _, s := range states {
		actions = append(actions, p[s])
	}
	return actions
}

// ExtractPolicy picks, for each state, the action with the highest Q-value
// under values. Ties go to the action that was added to the model first.
func ExtractPolicy[S, A comparable](model *Model[S, A], values map[S]float64) (Policy[S, A], error) {
	if err := model.Validate(); err != nil {
		return nil, err
	}
	for _, s := range model.States() {
		if _, ok := values[s]; !ok {
			return nil, fmt.Errorf("%w: %v", ErrMissingValue, s)
		}
	}

	policy := make(Policy[S, A], len(model.States()))
	for _, s := range model.States() {
		actions := model.Actions(s)
		best := actions[0]
		bestQ := model.Q(s, best, values)
		for _, a := range actions[1:] {
			if q := model.Q(s, a, values); q > bestQ {
				best = a
				bestQ = q
			}
		}
		policy[s] = best
	}
	return policy, nil
}
