package main

import (
	_ "embed"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"planner/experiments"
	"planner/experiments/metrics"
	"planner/meta"
	"planner/traveler"
)

//go:embed maps/default.txt
var defaultMap string

func main() {
	mapPath := flag.String("map", "", "Grid file (defaults to the built-in map)")
	gamma := flag.Float64("gamma", meta.DEFAULT_GAMMA, "Discount factor in [0,1)")
	epsilon := flag.Float64("epsilon", meta.DEFAULT_EPSILON, "Value iteration accuracy")
	confusion := flag.Float64("confusion", meta.DEFAULT_CONFUSION, "Probability of an unintended move")
	maxSweeps := flag.Int("max-sweeps", 0, "Stop value iteration after this many sweeps (0 means no cap)")
	strategy := flag.String("strategy", "astar-euclidean", "Search strategy: uniform-cost, greedy-euclidean, astar-euclidean, astar-manhattan or all")
	episodes := flag.Int("episodes", meta.EPISODES, "Number of simulated episodes under the policy")
	seed := flag.Uint64("seed", 1, "Seed for episode sampling")
	discounts := flag.String("discounts", "", "Comma-separated discount factors to compare, e.g. 0.5,0.9,0.99")
	out := flag.String("out", "", "Directory for CSV records and charts (nothing is stored when empty)")
	color := flag.Bool("color", true, "Colorize the rendered grids")
	level := flag.String("log-level", "info", "Log level: debug, info, warn or error")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	logLevel, err := zerolog.ParseLevel(*level)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}
	zerolog.SetGlobalLevel(logLevel)

	grid, err := loadGrid(*mapPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load map")
	}
	renderer := traveler.NewRenderer(grid, *color)

	// Deterministic traveler: best-first search
	configs, err := selectStrategies(grid, *strategy)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid strategy")
	}
	writer := newWriter(*out, "strategies")
	results, err := experiments.CompareStrategies(grid, configs, writer)
	if err != nil {
		log.Fatal().Err(err).Msg("strategy comparison failed")
	}
	for i, result := range results {
		fmt.Printf("%s: found=%t cost=%g expanded=%d\n", configs[i].Name, result.Found, result.Cost, result.Expanded)
		if result.Found {
			path := result.Path
			render(os.Stdout, configs[i].Name+" path", func(w io.Writer) error { return renderer.Path(w, path) })
		}
	}

	// Confused traveler: value iteration and policy execution
	config := experiments.PlanConfig{
		Gamma:     *gamma,
		Epsilon:   *epsilon,
		Confusion: *confusion,
		MaxSweeps: *maxSweeps,
		Episodes:  *episodes,
		MaxSteps:  meta.MAX_STEPS,
		Seed:      *seed,
	}
	plan, err := experiments.SolveAndSimulate(grid, config, newWriter(*out, "plan"))
	if err != nil {
		log.Fatal().Err(err).Msg("planning failed")
	}
	fmt.Printf("\nvalues after %d sweeps:\n", plan.Solved.Sweeps)
	render(os.Stdout, "values", func(w io.Writer) error { return renderer.Values(w, plan.Solved.Values) })
	fmt.Println("\npolicy:")
	render(os.Stdout, "policy", func(w io.Writer) error { return renderer.Policy(w, plan.Policy) })

	reached, total := 0, 0.0
	for _, episode := range plan.Episodes {
		if episode.Terminal {
			reached++
		}
		total += episode.Return
	}
	if len(plan.Episodes) > 0 {
		fmt.Printf("\n%d of %d episodes reached the goal, mean return %.3f\n", reached, len(plan.Episodes), total/float64(len(plan.Episodes)))
	}

	if *discounts == "" {
		return
	}
	gammas, err := parseFloats(*discounts)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid discounts")
	}
	records, err := experiments.RunDiscountExperiment(grid, gammas, *confusion, *epsilon, *out)
	if err != nil {
		log.Fatal().Err(err).Msg("discount experiment failed")
	}
	for _, record := range records {
		fmt.Printf("gamma=%g: %d sweeps in %s\n", record.Gamma, len(record.Sweeps), record.Duration)
	}
}

// render draws onto w and logs a failure without stopping the run.
func render(w io.Writer, what string, draw func(w io.Writer) error) error {
	err := draw(w)
	if err != nil {
		log.Error().Err(err).Msgf("failed to render %s", what)
	}
	return err
}

func loadGrid(path string) (*traveler.Grid, error) {
	if path == "" {
		return traveler.ReadGrid(strings.NewReader(defaultMap))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return traveler.ReadGrid(f)
}

func selectStrategies(grid *traveler.Grid, name string) ([]experiments.StrategyConfig, error) {
	all := experiments.Strategies(grid)
	if name == "all" {
		return all, nil
	}
	for _, config := range all {
		if config.Name == name {
			return []experiments.StrategyConfig{config}, nil
		}
	}
	return nil, fmt.Errorf("unknown strategy %q", name)
}

func newWriter(root, name string) *metrics.Writer {
	if root == "" {
		return nil
	}
	writer, err := metrics.NewWriter(root, name)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create experiment writer")
	}
	return writer
}

func parseFloats(list string) ([]float64, error) {
	var values []float64
	for _, field := range strings.Split(list, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}
