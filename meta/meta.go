// meta/meta.go
package meta

// DefaultDepth is the search depth, in rounds of every agent moving once, used
// when none is configured.
const DefaultDepth = 2

// DefaultStrategy names the search strategy used when none is configured.
const DefaultStrategy = "minimax"

// DefaultEvaluation names the evaluation function used when none is configured.
const DefaultEvaluation = "simple-score"

// DefaultLayout names the built-in maze played when none is given.
const DefaultLayout = "small"

// MaxMoves bounds the number of agent moves in a single game.
const MaxMoves = 1000
