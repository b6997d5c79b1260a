package agent

import (
	"multiagent/experiments/metrics"
	"multiagent/game"
)

type Agent interface {
	// FindMove returns the action to play in state and the metrics collected while choosing it
	FindMove(state game.State) (game.Action, metrics.SearchMetric, error)
}
