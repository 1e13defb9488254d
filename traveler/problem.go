package traveler

import (
	"math"

	"planner/searcher"
	"planner/utils"
)

type problem struct {
	grid *Grid
}

// Problem exposes the grid as a search problem from Start to Goal. Stepping
// into a cell costs that cell's terrain cost.
func (g *Grid) Problem() searcher.Problem[Cell] {
	return problem{grid: g}
}

func (p problem) Start() Cell {
	return p.grid.Start
}

func (p problem) IsGoal(c Cell) bool {
	return c == p.grid.Goal
}

func (p problem) Expand(node *searcher.Node[Cell]) []*searcher.Node[Cell] {
	from := node.State()
	successors := make([]*searcher.Node[Cell], 0, len(Moves))
	for _, m := range Moves {
		next := p.grid.Neighbor(from, m)
		if next == from {
			continue
		}
		successors = append(successors, node.Child(next, p.grid.Cost(next)))
	}
	return successors
}

// Euclidean is the straight-line distance to goal.
func Euclidean(goal Cell) searcher.Heuristic[Cell] {
	return func(c Cell) float64 {
		return math.Hypot(float64(c.Row-goal.Row), float64(c.Col-goal.Col))
	}
}

// Manhattan is the grid distance to goal ignoring walls.
func Manhattan(goal Cell) searcher.Heuristic[Cell] {
	return func(c Cell) float64 {
		return float64(utils.Abs(c.Row-goal.Row) + utils.Abs(c.Col-goal.Col))
	}
}
