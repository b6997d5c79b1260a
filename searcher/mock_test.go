package searcher

import (
	"fmt"

	"multiagent/game"

	"golang.org/x/exp/rand"
)

// mockState is an explicit game tree. Turn order is implicit in the tree
// shape: the children of a node are the moves of whichever agent is to move.
type mockState struct {
	agents   int
	score    float64
	win      bool
	lose     bool
	actions  []game.Action
	children []*mockState
	reject   game.Action // Listed as legal but refused by Successor
}

func (m *mockState) LegalActions(agent int) []game.Action {
	return m.actions
}

func (m *mockState) Successor(agent int, action game.Action) (game.State, error) {
	if action == m.reject {
		return nil, fmt.Errorf("%w: %q", game.ErrIllegalAction, action)
	}
	for i, a := range m.actions {
		if a == action {
			return m.children[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q", game.ErrIllegalAction, action)
}

func (m *mockState) NumAgents() int { return m.agents }
func (m *mockState) IsWin() bool    { return m.win }
func (m *mockState) IsLose() bool   { return m.lose }
func (m *mockState) Score() float64 { return m.score }

// leaf returns a childless node scored v
func leaf(v float64) *mockState {
	return &mockState{score: v}
}

// branch returns a node whose actions are named a0, a1, ... in child order
func branch(children ...*mockState) *mockState {
	node := &mockState{children: children}
	for i := range children {
		node.actions = append(node.actions, game.Action(fmt.Sprintf("a%d", i)))
	}
	return node
}

// withAgents sets the agent count on every node of the tree
func withAgents(root *mockState, agents int) *mockState {
	root.agents = agents
	for _, child := range root.children {
		withAgents(child, agents)
	}
	return root
}

// randomTree builds a tree covering plies full rounds for the given agent
// count. Leaf scores are small integers so ties are common, and some inner
// nodes are terminal.
func randomTree(rng *rand.Rand, agents, plies, branching int) *mockState {
	var build func(levels int) *mockState
	build = func(levels int) *mockState {
		if levels == 0 {
			return leaf(float64(rng.Intn(10)))
		}
		if rng.Intn(10) == 0 {
			node := leaf(float64(rng.Intn(10)))
			node.win = rng.Intn(2) == 0
			node.lose = !node.win
			return node
		}
		children := make([]*mockState, 1+rng.Intn(branching))
		for i := range children {
			children[i] = build(levels - 1)
		}
		return branch(children...)
	}
	return withAgents(build(agents*plies), agents)
}

// scenarioTree is a two-agent tree of depth 1: the protagonist picks between
// adversary nodes over leaves [3, 5] and [1, 9].
func scenarioTree() *mockState {
	return withAgents(branch(
		branch(leaf(3), leaf(5)),
		branch(leaf(1), leaf(9)),
	), 2)
}
