package searcher

import (
	"math"

	"multiagent/game"
)

// Minimax expands every node within the depth bound. The protagonist
// maximizes and every adversary minimizes.
type Minimax struct {
	base
}

func NewMinimax(options ...Option) *Minimax {
	return &Minimax{base: newBase(options)}
}

func (m *Minimax) Name() string {
	return MinimaxName
}

func (m *Minimax) Search(state game.State, depth int) (Result, error) {
	if isLeaf(state, depth) {
		return m.leaf(state), nil
	}
	if m.goroutines > 1 {
		return m.searchRoot(state, depth, m.value)
	}
	return m.value(state, game.Protagonist, depth)
}

func (m *Minimax) value(state game.State, agent, depth int) (Result, error) {
	if isLeaf(state, depth) {
		return m.leaf(state), nil
	}
	actions := state.LegalActions(agent)
	if len(actions) == 0 {
		return m.leaf(state), nil
	}

	best, fold := Result{Value: math.Inf(-1), Action: actions[0]}, maximize
	if agent != game.Protagonist {
		best, fold = Result{Value: math.Inf(1), Action: actions[0]}, minimize
	}

	nextAgent, nextDepth := next(agent, depth, state.NumAgents())
	for _, action := range actions {
		child, err := m.successor(state, agent, action)
		if err != nil {
			return Result{}, err
		}
		r, err := m.value(child, nextAgent, nextDepth)
		if err != nil {
			return Result{}, err
		}
		best = fold(best, Result{Value: r.Value, Action: action})
	}
	return best, nil
}
