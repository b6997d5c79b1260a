package engine

import (
	"context"

	"multiagent/experiments/metrics"
)

type Outcome string

const (
	Win     Outcome = "win"
	Lose    Outcome = "lose"
	Timeout Outcome = "timeout" // MaxMoves reached without a result
	Stalled Outcome = "stalled" // A full round passed without any agent able to move
)

type Engine interface {
	// Run plays a game till a win or loss, till a max number of moves is reached,
	// or till no agent can move
	Run(ctx context.Context) (Outcome, metrics.GameMetric, []metrics.MoveMetric, error)
}
