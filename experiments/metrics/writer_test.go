package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err, "Should open %s", path)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err, "Should parse %s", path)
	return rows
}

func TestWriter(t *testing.T) {
	t.Run("creating the output directory", func(t *testing.T) {
		root := t.TempDir()

		w, err := NewWriter(root, "traveler")

		require.NoError(t, err)
		require.DirExists(t, w.Dir(), "Writer should create its base directory")
		require.Equal(t, filepath.Join(root, "traveler"), filepath.Dir(w.Dir()),
			"Base directory should be nested under root/name")
	})

	t.Run("writing sweep records", func(t *testing.T) {
		w, err := NewWriter(t.TempDir(), "vi")
		require.NoError(t, err)

		err = w.WriteSweepRecords([]SweepMetric{
			{Sweep: 1, Delta: 10, States: 2, Duration: time.Millisecond},
			{Sweep: 2, Delta: 0, States: 2},
		})
		require.NoError(t, err)

		rows := readCSV(t, filepath.Join(w.Dir(), "sweep_records.csv"))
		require.Equal(t, []string{"sweep", "delta", "states", "duration"}, rows[0], "Should write the header first")
		require.Len(t, rows, 3, "Should write one row per sweep")
		require.Equal(t, []string{"1", "10", "2", "1ms"}, rows[1])
	})

	t.Run("writing search records", func(t *testing.T) {
		w, err := NewWriter(t.TempDir(), "search")
		require.NoError(t, err)

		err = w.WriteSearchRecords([]SearchMetric{
			{Strategy: "astar", Found: true, Expanded: 4, Generated: 6, Replaced: 1, MaxFrontier: 2},
		})
		require.NoError(t, err)

		rows := readCSV(t, filepath.Join(w.Dir(), "search_records.csv"))
		require.Len(t, rows, 2)
		require.Equal(t, []string{"astar", "true", "4", "6", "1", "2", "0s"}, rows[1])
	})

	t.Run("writing episode records", func(t *testing.T) {
		w, err := NewWriter(t.TempDir(), "episodes")
		require.NoError(t, err)

		err = w.WriteEpisodeRecords([]EpisodeMetric{{Episode: 1, Steps: 3, Return: -1.5, Terminal: true}})
		require.NoError(t, err)

		rows := readCSV(t, filepath.Join(w.Dir(), "episode_records.csv"))
		require.Equal(t, []string{"episode", "steps", "return", "terminal"}, rows[0])
		require.Equal(t, []string{"1", "3", "-1.5", "true"}, rows[1])
	})

	t.Run("rendering the convergence chart", func(t *testing.T) {
		w, err := NewWriter(t.TempDir(), "chart")
		require.NoError(t, err)

		err = w.WriteConvergenceChart("two states", []SweepMetric{{Sweep: 1, Delta: 10}, {Sweep: 2, Delta: 0}})
		require.NoError(t, err)

		content, err := os.ReadFile(filepath.Join(w.Dir(), "convergence.html"))
		require.NoError(t, err)
		require.Contains(t, string(content), "two states", "Chart should carry its title")
	})
}
