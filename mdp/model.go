package mdp

import (
	"math"

	"planner/meta"
	"planner/utils"
)

const ProbabilityTolerance = meta.PROBABILITY_TOLERANCE

// Outcome is one possible successor of a state-action pair.
type Outcome[S comparable] struct {
	Next S
	Prob float64
}

type stateAction[S, A comparable] struct {
	state  S
	action A
}

type transition[S, A comparable] struct {
	state  S
	action A
	next   S
}

// Model is a finite discounted MDP. States, the actions of each state and the
// outcomes of each state-action pair are enumerated in insertion order, which
// makes solving and policy extraction reproducible.
//
// A Model is filled once through the Add/Set methods and only read afterwards.
type Model[S, A comparable] struct {
	gamma    float64
	states   []S
	known    map[S]struct{}
	actions  map[S][]A
	outcomes map[stateAction[S, A]][]Outcome[S]
	rewards  map[transition[S, A]]float64
}

func NewModel[S, A comparable](gamma float64) *Model[S, A] {
	return &Model[S, A]{
		gamma:    gamma,
		known:    make(map[S]struct{}),
		actions:  make(map[S][]A),
		outcomes: make(map[stateAction[S, A]][]Outcome[S]),
		rewards:  make(map[transition[S, A]]float64),
	}
}

func (m *Model[S, A]) AddState(s S) *Model[S, A] {
	if _, ok := m.known[s]; !ok {
		m.known[s] = struct{}{}
		m.states = append(m.states, s)
	}
	return m
}

// AddAction makes a legal in s, registering s if needed.
func (m *Model[S, A]) AddAction(s S, a A) *Model[S, A] {
	m.AddState(s)
	if utils.FindIndex(m.actions[s], a) < 0 {
		m.actions[s] = append(m.actions[s], a)
	}
	return m
}

// AddTransition adds p to the probability of reaching next by taking a in s.
// The successor must be registered as a state separately.
func (m *Model[S, A]) AddTransition(s S, a A, next S, p float64) *Model[S, A] {
	m.AddAction(s, a)
	key := stateAction[S, A]{s, a}
	outcomes := m.outcomes[key]
	for i := range outcomes {
		if outcomes[i].Next == next {
			outcomes[i].Prob += p
			return m
		}
	}
	m.outcomes[key] = append(outcomes, Outcome[S]{Next: next, Prob: p})
	return m
}

// SetReward sets the reward for the transition s -a-> next. Transitions
// without a reward pay 0.
func (m *Model[S, A]) SetReward(s S, a A, next S, r float64) *Model[S, A] {
	m.rewards[transition[S, A]{s, a, next}] = r
	return m
}

func (m *Model[S, A]) Gamma() float64 {
	return m.gamma
}

func (m *Model[S, A]) States() []S {
	return m.states
}

func (m *Model[S, A]) HasState(s S) bool {
	_, ok := m.known[s]
	return ok
}

func (m *Model[S, A]) Actions(s S) []A {
	return m.actions[s]
}

func (m *Model[S, A]) Outcomes(s S, a A) []Outcome[S] {
	return m.outcomes[stateAction[S, A]{s, a}]
}

// Reward looks up the reward of a transition; ok is false when none was set.
func (m *Model[S, A]) Reward(s S, a A, next S) (r float64, ok bool) {
	r, ok = m.rewards[transition[S, A]{s, a, next}]
	return r, ok
}

// RewardOrZero applies the missing-reward convention: an absent entry pays 0.
func (m *Model[S, A]) RewardOrZero(s S, a A, next S) float64 {
	if r, ok := m.Reward(s, a, next); ok {
		return r
	}
	return 0
}

// Q is the expected discounted return of taking a in s and then following
// values: sum over outcomes of p * (r + gamma * V(next)).
func (m *Model[S, A]) Q(s S, a A, values map[S]float64) float64 {
	q := 0.0
	for _, o := range m.Outcomes(s, a) {
		q += o.Prob * (m.RewardOrZero(s, a, o.Next) + m.gamma*values[o.Next])
	}
	return q
}

// Validate checks everything value iteration relies on: gamma in [0,1), at
// least one action per state, known successors, and outcome probabilities
// that are non-negative and sum to 1 for every pair with successors.
//
// Every state is swept, so a state without actions is rejected even when no
// transition leads to it.
func (m *Model[S, A]) Validate() error {
	if math.IsNaN(m.gamma) || m.gamma < 0 || m.gamma >= 1 {
		return configErrorf(ErrInvalidDiscount, "gamma %v is not in [0,1)", m.gamma)
	}

	for _, s := range m.states {
		actions := m.actions[s]
		if len(actions) == 0 {
			return configErrorf(ErrNoActions, "state %v", s)
		}

		for _, a := range actions {
			outcomes := m.Outcomes(s, a)
			if len(outcomes) == 0 {
				continue
			}

			sum := 0.0
			for _, o := range outcomes {
				if !m.HasState(o.Next) {
					return configErrorf(ErrUnknownState, "state %v action %v leads to unregistered state %v", s, a, o.Next)
				}
				if math.IsNaN(o.Prob) || o.Prob < 0 {
					return configErrorf(ErrInvalidProbability, "state %v action %v next %v has probability %v", s, a, o.Next, o.Prob)
				}
				sum += o.Prob
			}
			if !utils.ApproxEqual(sum, 1.0, ProbabilityTolerance) {
				return configErrorf(ErrInvalidProbability, "state %v action %v probabilities sum to %v", s, a, sum)
			}
		}
	}
	return nil
}
