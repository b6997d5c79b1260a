package engine

import (
	"context"
	"fmt"
	"time"

	"multiagent/experiments/metrics"
	"multiagent/game"
	"multiagent/meta"
	"multiagent/searcher/agent"
	"multiagent/utils"

	"github.com/rs/zerolog/log"
)

type LocalEngine struct {
	Layout   string
	State    game.State
	Agents   []agent.Agent // Agents[i] plays agent index i
	MaxMoves int
}

// NewLocalEngine returns an engine over state. Agent 0 is the protagonist.
func NewLocalEngine(layout string, state game.State, agents []agent.Agent) *LocalEngine {
	if len(agents) != state.NumAgents() {
		panic(fmt.Sprintf("state has %d agents but %d were given", state.NumAgents(), len(agents)))
	}

	return &LocalEngine{
		Layout:   layout,
		State:    state,
		Agents:   agents,
		MaxMoves: meta.MaxMoves,
	}
}

// Run asks each agent for a move in index order until the game is over.
// Cancelling ctx stops the game between moves.
func (e *LocalEngine) Run(ctx context.Context) (Outcome, metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{Layout: e.Layout, StartTime: time.Now()}
	var moveMetrics []metrics.MoveMetric

	log.Info().Msgf("game started on %q with %d agents", e.Layout, len(e.Agents))

	step := 0
	skipped := 0 // Consecutive agents without a legal action
	agentIndex := game.Protagonist
	for !game.IsTerminal(e.State) && step < e.MaxMoves && skipped < len(e.Agents) {
		if err := ctx.Err(); err != nil {
			return "", gameMetric, moveMetrics, err
		}

		legal := e.State.LegalActions(agentIndex)
		if len(legal) == 0 { // Nothing to do this turn
			skipped++
			agentIndex = (agentIndex + 1) % len(e.Agents)
			continue
		}
		skipped = 0

		step++
		action, searchMetric, err := e.Agents[agentIndex].FindMove(e.State)
		if err != nil {
			return "", gameMetric, moveMetrics, fmt.Errorf("agent %d failed to find a move at step %d: %w", agentIndex, step, err)
		}
		if utils.FindIndex(legal, action) < 0 {
			return "", gameMetric, moveMetrics, fmt.Errorf("agent %d chose %q at step %d: %w", agentIndex, action, step, game.ErrIllegalAction)
		}

		next, err := e.State.Successor(agentIndex, action)
		if err != nil {
			return "", gameMetric, moveMetrics, err
		}
		e.State = next

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Agent:        agentIndex,
			Action:       string(action),
			SearchMetric: searchMetric,
		})
		log.Debug().
			Int("step", step).
			Int("agent", agentIndex).
			Str("action", string(action)).
			Float64("score", e.State.Score()).
			Msg("move played")

		agentIndex = (agentIndex + 1) % len(e.Agents)
	}

	outcome := Timeout
	switch {
	case e.State.IsWin():
		outcome = Win
	case e.State.IsLose():
		outcome = Lose
	case skipped >= len(e.Agents):
		outcome = Stalled
	}

	gameMetric.Outcome = string(outcome)
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = step
	gameMetric.FinalScore = e.State.Score()

	log.Info().Msgf("game over after %d moves: %s with score %.0f", step, outcome, e.State.Score())

	return outcome, gameMetric, moveMetrics, nil
}
