package searcher

import (
	"math"

	"multiagent/game"
)

// Expectimax models every adversary as choosing uniformly at random among its
// legal actions. Adversary nodes are chance nodes valued at the mean of their
// children and are never pruned.
type Expectimax struct {
	base
}

func NewExpectimax(options ...Option) *Expectimax {
	return &Expectimax{base: newBase(options)}
}

func (e *Expectimax) Name() string {
	return ExpectimaxName
}

func (e *Expectimax) Search(state game.State, depth int) (Result, error) {
	if isLeaf(state, depth) {
		return e.leaf(state), nil
	}
	if e.goroutines > 1 {
		return e.searchRoot(state, depth, e.value)
	}
	return e.value(state, game.Protagonist, depth)
}

func (e *Expectimax) value(state game.State, agent, depth int) (Result, error) {
	if isLeaf(state, depth) {
		return e.leaf(state), nil
	}
	actions := state.LegalActions(agent)
	if len(actions) == 0 {
		return e.leaf(state), nil
	}

	nextAgent, nextDepth := next(agent, depth, state.NumAgents())
	if agent == game.Protagonist {
		best := Result{Value: math.Inf(-1), Action: actions[0]}
		for _, action := range actions {
			r, err := e.child(state, agent, action, nextAgent, nextDepth)
			if err != nil {
				return Result{}, err
			}
			best = maximize(best, Result{Value: r, Action: action})
		}
		return best, nil
	}

	// Chance node: the reported action is the last one enumerated and carries
	// no meaning, callers only read the value
	expected := Result{Value: 0, Action: game.Stop}
	weight := float64(len(actions))
	for _, action := range actions {
		r, err := e.child(state, agent, action, nextAgent, nextDepth)
		if err != nil {
			return Result{}, err
		}
		expected.Value += r / weight
		expected.Action = action
	}
	return expected, nil
}

func (e *Expectimax) child(state game.State, agent int, action game.Action, nextAgent, nextDepth int) (float64, error) {
	successor, err := e.successor(state, agent, action)
	if err != nil {
		return 0, err
	}
	r, err := e.value(successor, nextAgent, nextDepth)
	if err != nil {
		return 0, err
	}
	return r.Value, nil
}
