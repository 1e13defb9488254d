package experiments

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"planner/engine"
	"planner/experiments/metrics"
	"planner/mdp"
	"planner/meta"
	"planner/searcher"
	"planner/traveler"
)

type StrategyConfig struct {
	ID       int
	Name     string
	Evaluate searcher.Evaluate[traveler.Cell]
}

// Strategies lists the evaluation functions compared on a grid.
func Strategies(g *traveler.Grid) []StrategyConfig {
	return []StrategyConfig{
		{ID: 1, Name: "uniform-cost", Evaluate: searcher.UniformCost[traveler.Cell]()},
		{ID: 2, Name: "greedy-euclidean", Evaluate: searcher.Greedy(traveler.Euclidean(g.Goal))},
		{ID: 3, Name: "astar-euclidean", Evaluate: searcher.AStar(traveler.Euclidean(g.Goal))},
		{ID: 4, Name: "astar-manhattan", Evaluate: searcher.AStar(traveler.Manhattan(g.Goal))},
	}
}

// CompareStrategies searches g once per config. The search records are stored
// when writer is not nil.
func CompareStrategies(g *traveler.Grid, configs []StrategyConfig, writer *metrics.Writer) ([]searcher.Result[traveler.Cell], error) {
	log.Info().Msgf("starting strategy comparison over %d strategies...", len(configs))

	results := make([]searcher.Result[traveler.Cell], 0, len(configs))
	records := make([]metrics.SearchMetric, 0, len(configs))
	for _, config := range configs {
		bfs := searcher.NewBestFirst(config.Evaluate,
			searcher.WithName(config.Name),
			searcher.WithMetrics(metrics.NewSearchCollector()),
		)
		result := bfs.Search(g.Problem())
		results = append(results, result)
		records = append(records, result.Metric)

		log.Info().Msgf("%s: found=%t cost=%g expanded=%d max_frontier=%d", config.Name, result.Found, result.Cost, result.Expanded, result.MaxFrontier)
	}

	log.Info().Msg("completed strategy comparison")

	if writer == nil {
		return results, nil
	}
	err := writer.WriteSearchRecords(records)
	if err != nil {
		return results, fmt.Errorf("failed to write search records: %w", err)
	}
	log.Info().Msg("stored search records")
	return results, nil
}

type PlanConfig struct {
	Gamma     float64
	Epsilon   float64
	Confusion float64
	MaxSweeps int
	Episodes  int
	MaxSteps  int
	Seed      uint64
}

func DefaultPlanConfig() PlanConfig {
	return PlanConfig{
		Gamma:     meta.DEFAULT_GAMMA,
		Epsilon:   meta.DEFAULT_EPSILON,
		Confusion: meta.DEFAULT_CONFUSION,
		Episodes:  meta.EPISODES,
		MaxSteps:  meta.MAX_STEPS,
		Seed:      1,
	}
}

type Plan struct {
	Model    *mdp.Model[traveler.Cell, traveler.Move]
	Solved   *mdp.Result[traveler.Cell]
	Policy   mdp.Policy[traveler.Cell, traveler.Move]
	Episodes []engine.Episode[traveler.Cell, traveler.Move]
}

// SolveAndSimulate builds the confused traveler model for g, solves it by value
// iteration, extracts the greedy policy and plays it from the start cell.
// When MaxSweeps stops the solver early the policy comes from the partial
// values and Solved.Metric.Converged is false.
func SolveAndSimulate(g *traveler.Grid, config PlanConfig, writer *metrics.Writer) (*Plan, error) {
	model, err := g.MDP(config.Gamma, config.Confusion)
	if err != nil {
		return nil, fmt.Errorf("failed to build model: %w", err)
	}
	log.Info().Msgf("built model with %d states, gamma=%g confusion=%g", len(model.States()), config.Gamma, config.Confusion)

	opts := []mdp.Option{
		mdp.WithEpsilon(config.Epsilon),
		mdp.WithMetrics(metrics.NewSweepCollector()),
	}
	if config.MaxSweeps > 0 {
		opts = append(opts, mdp.WithMaxSweeps(config.MaxSweeps))
	}
	solved, err := mdp.ValueIteration(model, opts...)
	switch {
	case errors.Is(err, mdp.ErrNotConverged) && solved != nil:
		log.Warn().Err(err).Msgf("using values after %d sweeps", solved.Sweeps)
	case err != nil:
		return nil, fmt.Errorf("failed to solve model: %w", err)
	}

	policy, err := mdp.ExtractPolicy(model, solved.Values)
	if err != nil {
		return nil, fmt.Errorf("failed to extract policy: %w", err)
	}

	local := engine.NewLocal(model, policy,
		engine.WithSeed(config.Seed),
		engine.WithMaxSteps(config.MaxSteps),
	).WithTerminal(func(c traveler.Cell) bool { return c == g.Goal })
	episodes, err := local.RunMany(g.Start, config.Episodes)
	if err != nil {
		return nil, fmt.Errorf("failed to simulate policy: %w", err)
	}

	plan := &Plan{Model: model, Solved: solved, Policy: policy, Episodes: episodes}
	if writer == nil {
		return plan, nil
	}

	err = writer.WriteSweepRecords(solved.Metric.Sweeps)
	if err != nil {
		return plan, fmt.Errorf("failed to write sweep records: %w", err)
	}
	err = writer.WriteConvergenceChart(fmt.Sprintf("Value iteration (gamma=%g)", config.Gamma), solved.Metric.Sweeps)
	if err != nil {
		return plan, fmt.Errorf("failed to write convergence chart: %w", err)
	}
	records := make([]metrics.EpisodeMetric, 0, len(episodes))
	for i, episode := range episodes {
		records = append(records, episode.Metric(i+1))
	}
	err = writer.WriteEpisodeRecords(records)
	if err != nil {
		return plan, fmt.Errorf("failed to write episode records: %w", err)
	}
	log.Info().Msgf("stored solver and episode records in %s", writer.Dir())
	return plan, nil
}
