package experiments

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"planner/experiments/metrics"
	"planner/mdp"
	"planner/traveler"
)

type DiscountRecord struct {
	Gamma float64
	metrics.SolveMetric
}

// RunDiscountExperiment solves g once per discount factor and, when root is not
// empty, stores each run's sweeps and convergence chart under root/discount_<gamma>.
func RunDiscountExperiment(g *traveler.Grid, gammas []float64, confusion, epsilon float64, root string) ([]DiscountRecord, error) {
	records := make([]DiscountRecord, 0, len(gammas))

	log.Info().Msgf("starting discount experiment over %v...", gammas)

	for i, gamma := range gammas {
		model, err := g.MDP(gamma, confusion)
		if err != nil {
			return records, fmt.Errorf("failed to build model for gamma %g: %w", gamma, err)
		}
		solved, err := mdp.ValueIteration(model,
			mdp.WithEpsilon(epsilon),
			mdp.WithMetrics(metrics.NewSweepCollector()),
		)
		if err != nil {
			return records, fmt.Errorf("failed to solve model for gamma %g: %w", gamma, err)
		}
		records = append(records, DiscountRecord{Gamma: gamma, SolveMetric: solved.Metric})

		log.Info().Msgf("completed run %d of %d: gamma=%g sweeps=%d", i+1, len(gammas), gamma, solved.Sweeps)

		if root == "" {
			continue
		}
		writer, err := metrics.NewWriter(root, fmt.Sprintf("discount_%g", gamma))
		if err != nil {
			return records, err
		}
		err = writer.WriteSweepRecords(solved.Metric.Sweeps)
		if err != nil {
			return records, fmt.Errorf("failed to write sweep records: %w", err)
		}
		err = writer.WriteConvergenceChart(fmt.Sprintf("gamma=%g", gamma), solved.Metric.Sweeps)
		if err != nil {
			return records, fmt.Errorf("failed to write convergence chart: %w", err)
		}
	}

	log.Info().Msg("completed discount experiment")
	return records, nil
}
