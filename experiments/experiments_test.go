package experiments

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"planner/experiments/metrics"
	"planner/traveler"
)

func testGrid(t *testing.T) *traveler.Grid {
	g, err := traveler.ParseGrid([]string{
		"S...#....",
		".##.#.##.",
		".#..2..#.",
		".#.###.#.",
		"...#...9G",
	})
	require.NoError(t, err)
	return g
}

func readLines(t *testing.T, path string) []string {
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func TestCompareStrategies(t *testing.T) {
	g := testGrid(t)

	t.Run("agreeing on the optimal cost", func(t *testing.T) {
		results, err := CompareStrategies(g, Strategies(g), nil)

		require.NoError(t, err)
		require.Len(t, results, 4)
		for _, result := range results {
			require.True(t, result.Found)
		}
		optimal := results[0].Cost
		require.Equal(t, optimal, results[2].Cost, "A* with an admissible heuristic is optimal")
		require.Equal(t, optimal, results[3].Cost)
		require.GreaterOrEqual(t, results[1].Cost, optimal, "Greedy may settle for a worse path")
		require.LessOrEqual(t, results[2].Expanded, results[0].Expanded, "A* should not expand more than uniform cost")
	})

	t.Run("storing one record per strategy", func(t *testing.T) {
		writer, err := metrics.NewWriter(t.TempDir(), "strategies")
		require.NoError(t, err)

		_, err = CompareStrategies(g, Strategies(g), writer)

		require.NoError(t, err)
		lines := readLines(t, filepath.Join(writer.Dir(), "search_records.csv"))
		require.Len(t, lines, 5)
		require.True(t, strings.HasPrefix(lines[1], "uniform-cost,true,"))
		require.True(t, strings.HasPrefix(lines[4], "astar-manhattan,true,"))
	})
}

func TestSolveAndSimulate(t *testing.T) {
	g := testGrid(t)

	t.Run("reaching the goal under the extracted policy", func(t *testing.T) {
		config := DefaultPlanConfig()
		config.Episodes = 20

		plan, err := SolveAndSimulate(g, config, nil)

		require.NoError(t, err)
		require.Len(t, plan.Policy, len(g.Cells()))
		require.Len(t, plan.Episodes, 20)
		require.True(t, plan.Solved.Metric.Converged)
		for _, episode := range plan.Episodes {
			require.True(t, episode.Terminal)
		}
	})

	t.Run("storing sweeps, chart and episodes", func(t *testing.T) {
		writer, err := metrics.NewWriter(t.TempDir(), "plan")
		require.NoError(t, err)
		config := DefaultPlanConfig()
		config.Episodes = 5

		plan, err := SolveAndSimulate(g, config, writer)

		require.NoError(t, err)
		require.Len(t, readLines(t, filepath.Join(writer.Dir(), "sweep_records.csv")), plan.Solved.Sweeps+1)
		require.Len(t, readLines(t, filepath.Join(writer.Dir(), "episode_records.csv")), 6)
		require.FileExists(t, filepath.Join(writer.Dir(), "convergence.html"))
	})

	t.Run("planning from partial values when sweeps run out", func(t *testing.T) {
		config := DefaultPlanConfig()
		config.MaxSweeps = 3
		config.Episodes = 5

		plan, err := SolveAndSimulate(g, config, nil)

		require.NoError(t, err)
		require.NotNil(t, plan)
		require.Equal(t, 3, plan.Solved.Sweeps)
		require.False(t, plan.Solved.Metric.Converged, "Capped run should not report convergence")
		require.Len(t, plan.Policy, len(g.Cells()), "Every cell should still get an action")
		require.Len(t, plan.Episodes, 5)
	})

	t.Run("failing on invalid confusion", func(t *testing.T) {
		config := DefaultPlanConfig()
		config.Confusion = 2

		_, err := SolveAndSimulate(g, config, nil)

		require.Error(t, err)
	})
}

func TestRunDiscountExperiment(t *testing.T) {
	g := testGrid(t)
	root := t.TempDir()

	records, err := RunDiscountExperiment(g, []float64{0.5, 0.9, 0.99}, 0.2, 1e-3, root)

	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Less(t, len(records[0].Sweeps), len(records[2].Sweeps), "Larger discounts need more sweeps")
	for _, record := range records {
		require.True(t, record.Converged)
	}
	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	require.Len(t, entries, 3)
}
