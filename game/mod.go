package game

import "errors"

// Action is an opaque move token drawn from an agent's legal actions.
type Action string

// Stop is the placeholder action reported at leaves and before any real
// action has been chosen.
const Stop Action = "Stop"

// Protagonist is the agent index of the maximizing player.
const Protagonist = 0

var ErrIllegalAction = errors.New("illegal action")

// State should be immutable - Successor always returns a new copy and never
// modifies the receiver.
type State interface {
	// LegalActions returns the actions available to agent, empty at terminal states
	LegalActions(agent int) []Action
	// Successor returns the state after agent plays action, or an error wrapping
	// ErrIllegalAction if the action is not currently legal for agent
	Successor(agent int, action Action) (State, error)
	NumAgents() int
	IsWin() bool
	IsLose() bool
	Score() float64
}

// Evaluate maps a game state to a desirability score from the protagonist's
// perspective. Higher is better.
type Evaluate func(State) float64

// IsTerminal reports whether state is a win or a loss.
func IsTerminal(state State) bool {
	return state.IsWin() || state.IsLose()
}
