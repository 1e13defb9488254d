package traveler

import (
	"fmt"

	"planner/mdp"
	"planner/meta"
)

type MDPOption func(o *mdpOptions)

type mdpOptions struct {
	goalReward float64
}

func WithGoalReward(reward float64) MDPOption {
	return func(o *mdpOptions) {
		o.goalReward = reward
	}
}

// MDP models the confused traveler: the intended move happens with
// probability 1-confusion and each other move with confusion/3. Every step
// pays the entry cost of the cell the traveler ends up in, entering the goal
// adds the goal reward, and the goal absorbs with a single Stay action.
func (g *Grid) MDP(gamma, confusion float64, opts ...MDPOption) (*mdp.Model[Cell, Move], error) {
	if confusion < 0 || confusion > 1 {
		return nil, fmt.Errorf("confusion %v is not in [0,1]", confusion)
	}
	o := mdpOptions{goalReward: meta.GOAL_REWARD}
	for _, option := range opts {
		option(&o)
	}

	model := mdp.NewModel[Cell, Move](gamma)
	cells := g.Cells()
	for _, c := range cells {
		model.AddState(c)
	}

	for _, c := range cells {
		if c == g.Goal {
			model.AddTransition(c, Stay, c, 1)
			continue
		}
		for _, intended := range Moves {
			for _, actual := range Moves {
				p := confusion / float64(len(Moves)-1)
				if actual == intended {
					p = 1 - confusion
				}
				if p == 0 {
					continue
				}
				next := g.Neighbor(c, actual)
				model.AddTransition(c, intended, next, p)
				model.SetReward(c, intended, next, g.reward(next, o.goalReward))
			}
		}
	}

	if err := model.Validate(); err != nil {
		return nil, err
	}
	return model, nil
}

func (g *Grid) reward(next Cell, goalReward float64) float64 {
	r := -g.Cost(next)
	if next == g.Goal {
		r += goalReward
	}
	return r
}
