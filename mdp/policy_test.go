package mdp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

// argmaxQ recomputes the greedy action straight from the model tables.
func argmaxQ[S, A comparable](m *Model[S, A], values map[S]float64, s S) (A, float64) {
	var best A
	bestQ := math.Inf(-1)
	for _, a := range m.Actions(s) {
		q := 0.0
		for _, o := range m.Outcomes(s, a) {
			r, ok := m.Reward(s, a, o.Next)
			if !ok {
				r = 0
			}
			q += o.Prob * (r + m.Gamma()*values[o.Next])
		}
		if q > bestQ {
			best, bestQ = a, q
		}
	}
	return best, bestQ
}

func TestExtractPolicy(t *testing.T) {
	t.Run("picking the rewarding action", func(t *testing.T) {
		m := NewModel[string, string](0.9).
			AddState("s").
			AddState("good").
			AddState("bad").
			AddTransition("s", "left", "bad", 1).
			AddTransition("s", "right", "good", 1).
			AddTransition("good", "stay", "good", 1).
			AddTransition("bad", "stay", "bad", 1).
			SetReward("good", "stay", "good", 1).
			SetReward("bad", "stay", "bad", -1)
		solved, err := ValueIteration(m)
		require.NoError(t, err)

		got, err := ExtractPolicy(m, solved.Values)

		require.NoError(t, err)
		require.Equal(t, "right", got["s"])
		require.Equal(t, "stay", got["good"])
		require.Equal(t, "stay", got["bad"])
	})

	t.Run("breaking ties by action order", func(t *testing.T) {
		m := NewModel[string, string](0.5).
			AddState("s").
			AddAction("s", "second").
			AddAction("s", "first").
			AddTransition("s", "second", "s", 1).
			AddTransition("s", "first", "s", 1)

		got, err := ExtractPolicy(m, map[string]float64{"s": 0})

		require.NoError(t, err)
		require.Equal(t, "second", got["s"], "Equal Q-values should go to the first enumerated action")
	})

	t.Run("matching an independent arg-max", func(t *testing.T) {
		m := randomModel(99, 50, 0.9)
		solved, err := ValueIteration(m)
		require.NoError(t, err)

		got, err := ExtractPolicy(m, solved.Values)

		require.NoError(t, err)
		require.Len(t, got, 50)
		for _, s := range m.States() {
			want, wantQ := argmaxQ(m, solved.Values, s)
			require.Equal(t, wantQ, m.Q(s, got[s], solved.Values), "State %d should take a maximizing action", s)
			require.Equal(t, want, got[s], "State %d should take the first maximizing action", s)
		}
	})

	t.Run("repeating with identical inputs", func(t *testing.T) {
		m := randomModel(17, 30, 0.9)
		first, err := ValueIteration(m)
		require.NoError(t, err)
		second, err := ValueIteration(m)
		require.NoError(t, err)

		p1, err := ExtractPolicy(m, first.Values)
		require.NoError(t, err)
		p2, err := ExtractPolicy(m, second.Values)
		require.NoError(t, err)

		require.Equal(t, p1, p2)
	})

	t.Run("listing actions in state order", func(t *testing.T) {
		p := Policy[string, string]{"a": "up", "b": "down"}

		require.Equal(t, []string{"down", "up"}, p.Actions([]string{"b", "a"}))
	})

	t.Run("failing on a missing value", func(t *testing.T) {
		_, err := ExtractPolicy(twoStates(0.9), map[string]float64{"s0": 10})

		require.ErrorIs(t, err, ErrMissingValue)
		require.Contains(t, err.Error(), "s1")
	})

	t.Run("failing on an invalid model", func(t *testing.T) {
		_, err := ExtractPolicy(twoStates(1.0), map[string]float64{"s0": 0, "s1": 0})

		require.ErrorIs(t, err, ErrInvalidDiscount)
	})
}
