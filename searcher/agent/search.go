package agent

import (
	"fmt"

	"multiagent/experiments/metrics"
	"multiagent/game"
	"multiagent/searcher"

	"github.com/rs/zerolog/log"
)

type searchAgent struct {
	config   Config
	searcher searcher.Searcher
	metrics  metrics.Collector
}

// NewSearchAgent returns an agent playing as the protagonist with the
// configured strategy. Unknown names and non-positive depths are rejected here,
// before any search runs.
func NewSearchAgent(config Config) (Agent, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	evaluate, err := game.LookupEvaluation(config.EvaluationFunction)
	if err != nil {
		return nil, err
	}

	collector := metrics.NewCollector()
	s, err := searcher.New(config.Strategy,
		searcher.WithEvaluationFn(evaluate),
		searcher.WithGoroutines(config.Goroutines),
		searcher.WithMetrics(collector),
	)
	if err != nil {
		return nil, err
	}

	return &searchAgent{config: config, searcher: s, metrics: collector}, nil
}

// FindMove is not safe for concurrent use: the metrics collector measures one
// search at a time.
func (a *searchAgent) FindMove(state game.State) (game.Action, metrics.SearchMetric, error) {
	a.metrics.Start(a.searcher.Name(), a.config.Depth, a.config.Goroutines)
	result, err := a.searcher.Search(state, a.config.Depth)
	metric := a.metrics.Complete()
	metric.Evaluation = a.config.EvaluationFunction
	if err != nil {
		return game.Stop, metric, fmt.Errorf("%s search failed: %w", a.searcher.Name(), err)
	}

	log.Debug().
		Str("strategy", metric.Strategy).
		Str("action", string(result.Action)).
		Float64("value", result.Value).
		Int("successors", metric.Successors).
		Int("cutoffs", metric.Cutoffs).
		Dur("duration", metric.Duration).
		Msg("search complete")

	return result.Action, metric, nil
}
