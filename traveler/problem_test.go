package traveler

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"planner/searcher"
)

func requireConnected(t *testing.T, g *Grid, path []Cell) {
	require.Equal(t, g.Start, path[0])
	require.Equal(t, g.Goal, path[len(path)-1])
	for i := 1; i < len(path); i++ {
		d := math.Abs(float64(path[i].Row-path[i-1].Row)) + math.Abs(float64(path[i].Col-path[i-1].Col))
		require.Equal(t, 1.0, d, "Step %d should move to an adjacent cell", i)
		require.False(t, g.IsWall(path[i]))
	}
}

func TestGridSearch(t *testing.T) {
	g, err := ParseGrid(maze)
	require.NoError(t, err)

	strategies := map[string]searcher.Evaluate[Cell]{
		"uniform cost": searcher.UniformCost[Cell](),
		"euclidean A*": searcher.AStar(Euclidean(g.Goal)),
		"manhattan A*": searcher.AStar(Manhattan(g.Goal)),
	}
	for name, evaluate := range strategies {
		t.Run("finding a shortest path with "+name, func(t *testing.T) {
			got := searcher.NewBestFirst(evaluate).Search(g.Problem())

			require.True(t, got.Found)
			require.Equal(t, 5.0, got.Cost)
			require.Len(t, got.Path, 6)
			requireConnected(t, g, got.Path)
		})
	}

	t.Run("going around expensive terrain", func(t *testing.T) {
		g, err := ParseGrid([]string{"S9G", "..."})
		require.NoError(t, err)

		got := searcher.NewBestFirst(searcher.UniformCost[Cell]()).Search(g.Problem())

		require.True(t, got.Found)
		require.Equal(t, 4.0, got.Cost, "Detour through cheap cells beats the 9")
		require.NotContains(t, got.Path, Cell{0, 1})
	})

	t.Run("reporting an unreachable goal", func(t *testing.T) {
		g, err := ParseGrid([]string{"S#G"})
		require.NoError(t, err)

		got := searcher.NewBestFirst(searcher.UniformCost[Cell]()).Search(g.Problem())

		require.False(t, got.Found)
		require.Equal(t, 1, got.Expanded)
	})

	t.Run("skipping blocked moves", func(t *testing.T) {
		successors := g.Problem().Expand(searcher.NewNode(Cell{0, 0}, 0, nil))

		require.Len(t, successors, 2)
		require.Equal(t, Cell{1, 0}, successors[0].State())
		require.Equal(t, Cell{0, 1}, successors[1].State())
	})
}

func TestHeuristics(t *testing.T) {
	goal := Cell{2, 3}

	require.Equal(t, 5.0, Euclidean(goal)(Cell{-1, -1}))
	require.Equal(t, 7.0, Manhattan(goal)(Cell{-1, -1}))
	require.Equal(t, 0.0, Euclidean(goal)(goal))
}
