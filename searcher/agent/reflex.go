package agent

import (
	"multiagent/experiments/metrics"
	"multiagent/game"
	"multiagent/utils"

	"golang.org/x/exp/rand"
)

const (
	ReflexName = "reflex"
	RandomName = "random"
)

// ActionEvaluate scores the protagonist playing action in state
type ActionEvaluate func(state game.State, action game.Action) (float64, error)

type reflexAgent struct {
	evaluate ActionEvaluate
	rng      *rand.Rand
}

// NewReflexAgent returns a protagonist that scores each immediate successor
// and picks uniformly at random among the best. A nil evaluate uses
// EvaluateReflex.
func NewReflexAgent(evaluate ActionEvaluate, rng *rand.Rand) Agent {
	if rng == nil {
		panic("reflex agent needs a random source")
	}
	if evaluate == nil {
		evaluate = EvaluateReflex
	}
	return reflexAgent{evaluate: evaluate, rng: rng}
}

func (a reflexAgent) FindMove(state game.State) (game.Action, metrics.SearchMetric, error) {
	metric := metrics.SearchMetric{Strategy: ReflexName, Depth: 1}
	actions := state.LegalActions(game.Protagonist)
	if len(actions) == 0 {
		return game.Stop, metric, nil
	}

	scores := make([]float64, len(actions))
	for i, action := range actions {
		score, err := a.evaluate(state, action)
		if err != nil {
			return game.Stop, metric, err
		}
		scores[i] = score
	}
	metric.Successors = len(actions)

	best := utils.ArgMaxAll(scores)
	return actions[best[a.rng.Intn(len(best))]], metric, nil
}

// EvaluateReflex scores the successor by its score, plus the reciprocal of the
// distance to the closest food, minus the reciprocal of the distance to the
// closest adversary. States without positional features score as Score().
func EvaluateReflex(state game.State, action game.Action) (float64, error) {
	next, err := state.Successor(game.Protagonist, action)
	if err != nil {
		return 0, err
	}
	f, ok := next.(game.Features)
	if !ok {
		return next.Score(), nil
	}

	value := next.Score()
	if d, ok := game.ClosestFood(f); ok && d > 0 {
		value += 1.0 / float64(d)
	}
	if d, ok := game.ClosestThreat(f, next.NumAgents()); ok && d > 0 {
		value -= 1.0 / float64(d)
	}
	return value, nil
}

type randomAgent struct {
	index int
	rng   *rand.Rand
}

// NewRandomAgent returns an agent that plays uniformly at random among the
// legal actions of agent index, the adversary model expectimax assumes.
func NewRandomAgent(index int, rng *rand.Rand) Agent {
	if rng == nil {
		panic("random agent needs a random source")
	}
	return randomAgent{index: index, rng: rng}
}

func (a randomAgent) FindMove(state game.State) (game.Action, metrics.SearchMetric, error) {
	metric := metrics.SearchMetric{Strategy: RandomName}
	actions := state.LegalActions(a.index)
	if len(actions) == 0 {
		return game.Stop, metric, nil
	}
	return actions[a.rng.Intn(len(actions))], metric, nil
}
