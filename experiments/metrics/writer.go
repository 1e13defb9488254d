package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/rs/zerolog/log"
)

type Writer struct {
	baseDir string
}

// NewWriter creates root/name/<timestamp> and writes every record file there.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405.000000000Z")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteSearchRecords(records []SearchMetric) error {
	header := []string{"strategy", "found", "expanded", "generated", "replaced", "max_frontier", "duration"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			record.Strategy,
			strconv.FormatBool(record.Found),
			strconv.Itoa(record.Expanded),
			strconv.Itoa(record.Generated),
			strconv.Itoa(record.Replaced),
			strconv.Itoa(record.MaxFrontier),
			record.Duration.String(),
		})
	}
	return w.writeCSV("search_records.csv", header, rows)
}

func (w *Writer) WriteSweepRecords(records []SweepMetric) error {
	header := []string{"sweep", "delta", "states", "duration"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Sweep),
			strconv.FormatFloat(record.Delta, 'g', -1, 64),
			strconv.Itoa(record.States),
			record.Duration.String(),
		})
	}
	return w.writeCSV("sweep_records.csv", header, rows)
}

func (w *Writer) WriteEpisodeRecords(records []EpisodeMetric) error {
	header := []string{"episode", "steps", "return", "terminal"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Episode),
			strconv.Itoa(record.Steps),
			strconv.FormatFloat(record.Return, 'g', -1, 64),
			strconv.FormatBool(record.Terminal),
		})
	}
	return w.writeCSV("episode_records.csv", header, rows)
}

func (w *Writer) writeCSV(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	for _, row := range rows {
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write %s row: %w", name, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", name, err)
	}

	log.Debug().Msgf("stored %d rows in %s", len(rows), path)
	return nil
}

// WriteConvergenceChart renders the per-sweep delta of a value iteration run
// as an HTML line chart.
func (w *Writer) WriteConvergenceChart(title string, sweeps []SweepMetric) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: "max |V_new - V| per sweep",
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: "shine",
		}),
	)

	steps := make([]string, 0, len(sweeps))
	items := make([]opts.LineData, 0, len(sweeps))
	for _, sweep := range sweeps {
		steps = append(steps, strconv.Itoa(sweep.Sweep))
		items = append(items, opts.LineData{Value: sweep.Delta})
	}
	line.SetXAxis(steps).AddSeries("delta", items)

	page := components.NewPage()
	page.AddCharts(line)

	path := filepath.Join(w.baseDir, "convergence.html")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create convergence chart: %w", err)
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		return fmt.Errorf("failed to render convergence chart: %w", err)
	}
	return nil
}
