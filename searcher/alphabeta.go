package searcher

import (
	"math"

	"multiagent/game"
)

// AlphaBeta is minimax with branch-and-bound pruning. It returns the same
// value as Minimax; the action may differ only among actions tied at that
// value.
type AlphaBeta struct {
	base
}

func NewAlphaBeta(options ...Option) *AlphaBeta {
	return &AlphaBeta{base: newBase(options)}
}

func (a *AlphaBeta) Name() string {
	return AlphaBetaName
}

// Search runs sequentially regardless of WithGoroutines, cutoffs depend on
// the bounds established by earlier siblings.
func (a *AlphaBeta) Search(state game.State, depth int) (Result, error) {
	return a.value(state, game.Protagonist, depth, math.Inf(-1), math.Inf(1))
}

// alpha and beta are passed by value: a bound tightened in one subtree never
// leaks into its siblings' subtrees.
func (a *AlphaBeta) value(state game.State, agent, depth int, alpha, beta float64) (Result, error) {
	if isLeaf(state, depth) {
		return a.leaf(state), nil
	}
	actions := state.LegalActions(agent)
	if len(actions) == 0 {
		return a.leaf(state), nil
	}

	nextAgent, nextDepth := next(agent, depth, state.NumAgents())
	if agent == game.Protagonist {
		best := Result{Value: math.Inf(-1), Action: actions[0]}
		for _, action := range actions {
			r, err := a.child(state, agent, action, nextAgent, nextDepth, alpha, beta)
			if err != nil {
				return Result{}, err
			}
			if r.Value > beta { // The minimizer above will never allow this node
				a.metrics.AddCutoff()
				return r, nil
			}
			alpha = max(alpha, r.Value)
			best = maximize(best, r)
		}
		return best, nil
	}

	best := Result{Value: math.Inf(1), Action: actions[0]}
	for _, action := range actions {
		r, err := a.child(state, agent, action, nextAgent, nextDepth, alpha, beta)
		if err != nil {
			return Result{}, err
		}
		if r.Value < alpha { // The maximizer above already has something better
			a.metrics.AddCutoff()
			return r, nil
		}
		beta = min(beta, r.Value)
		best = minimize(best, r)
	}
	return best, nil
}

// child returns the value of playing action, paired with that action
func (a *AlphaBeta) child(state game.State, agent int, action game.Action, nextAgent, nextDepth int, alpha, beta float64) (Result, error) {
	successor, err := a.successor(state, agent, action)
	if err != nil {
		return Result{}, err
	}
	r, err := a.value(successor, nextAgent, nextDepth, alpha, beta)
	if err != nil {
		return Result{}, err
	}
	return Result{Value: r.Value, Action: action}, nil
}
