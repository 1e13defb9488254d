package engine

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"planner/mdp"
	"planner/meta"
)

type Option func(o *options)

type options struct {
	seed     uint64
	maxSteps int
}

func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

func WithMaxSteps(steps int) Option {
	return func(o *options) {
		if steps > 0 {
			o.maxSteps = steps
		}
	}
}

var _ Engine[int, int] = (*Local[int, int])(nil)

// Local executes a fixed policy against the model's transition probabilities.
type Local[S, A comparable] struct {
	model    *mdp.Model[S, A]
	policy   mdp.Policy[S, A]
	terminal func(S) bool
	rng      *rand.Rand
	options
}

func NewLocal[S, A comparable](model *mdp.Model[S, A], policy mdp.Policy[S, A], opts ...Option) *Local[S, A] {
	o := options{seed: 1, maxSteps: meta.MAX_STEPS}
	for _, option := range opts {
		option(&o)
	}

	l := &Local[S, A]{
		model:   model,
		policy:  policy,
		rng:     rand.New(rand.NewSource(o.seed)),
		options: o,
	}
	l.terminal = l.absorbing
	return l
}

// WithTerminal replaces the default terminal test, which stops in any state
// whose policy action can only lead back to itself. That includes a wall bump
// without confusion, so pass a goal test when Terminal must mean the goal was
// reached.
func (l *Local[S, A]) WithTerminal(terminal func(S) bool) *Local[S, A] {
	if terminal != nil {
		l.terminal = terminal
	}
	return l
}

func (l *Local[S, A]) absorbing(s S) bool {
	a, ok := l.policy[s]
	if !ok {
		return false
	}
	outcomes := l.model.Outcomes(s, a)
	return len(outcomes) == 1 && outcomes[0].Next == s
}

// Run executes the policy from start until a terminal state is reached or the step cap runs out.
func (l *Local[S, A]) Run(start S) (Episode[S, A], error) {
	if !l.model.HasState(start) {
		return Episode[S, A]{}, fmt.Errorf("%w: %v", ErrUnknownState, start)
	}

	var episode Episode[S, A]
	discount := 1.0
	state := start
	for len(episode.Steps) < l.maxSteps {
		if l.terminal(state) {
			episode.Terminal = true
			break
		}
		action, ok := l.policy[state]
		if !ok {
			return episode, fmt.Errorf("%w: %v", ErrNoAction, state)
		}

		outcomes := l.model.Outcomes(state, action)
		if len(outcomes) == 0 {
			episode.Terminal = true
			break
		}
		next := l.sample(outcomes)
		reward := l.model.RewardOrZero(state, action, next)
		episode.Steps = append(episode.Steps, Step[S, A]{State: state, Action: action, Next: next, Reward: reward})
		episode.Return += discount * reward
		discount *= l.model.Gamma()
		state = next
	}
	if !episode.Terminal && l.terminal(state) {
		episode.Terminal = true
	}

	log.Debug().Msgf("episode from %v ended after %d steps with return %.3f", start, len(episode.Steps), episode.Return)
	return episode, nil
}

// RunMany plays n episodes from start sharing one random stream.
func (l *Local[S, A]) RunMany(start S, n int) ([]Episode[S, A], error) {
	episodes := make([]Episode[S, A], 0, n)
	reached := 0
	for i := 0; i < n; i++ {
		episode, err := l.Run(start)
		if err != nil {
			return episodes, err
		}
		if episode.Terminal {
			reached++
		}
		episodes = append(episodes, episode)
	}
	log.Info().Msgf("%d of %d episodes reached a terminal state", reached, n)
	return episodes, nil
}

func (l *Local[S, A]) sample(outcomes []mdp.Outcome[S]) S {
	u := l.rng.Float64()
	acc := 0.0
	for _, o := range outcomes {
		acc += o.Prob
		if u < acc {
			return o.Next
		}
	}
	// Rounding left u above the cumulative sum
	return outcomes[len(outcomes)-1].Next
}
