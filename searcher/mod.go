package searcher

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"multiagent/experiments/metrics"
	"multiagent/game"

	"golang.org/x/sync/errgroup"
)

// Strategy names
const (
	MinimaxName    = "minimax"
	AlphaBetaName  = "alphabeta"
	ExpectimaxName = "expectimax"
)

var ErrUnknownStrategy = errors.New("unknown search strategy")

// Result is the value of a node and the action that achieves it. Leaves and
// nodes without legal actions report game.Stop.
type Result struct {
	Value  float64
	Action game.Action
}

// Searcher is a depth-bounded adversarial search entered at the protagonist's turn
type Searcher interface {
	Search(state game.State, depth int) (Result, error)
	Name() string
}

type Option func(b *base)

// WithEvaluationFn sets the function applied at leaves
func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(b *base) {
		if evaluate != nil {
			b.evaluate = evaluate
		}
	}
}

// WithGoroutines expands the root's children concurrently. Strategies whose
// cutoffs depend on sibling order ignore it.
func WithGoroutines(goroutines int) Option {
	return func(b *base) {
		if goroutines > 0 {
			b.goroutines = goroutines
		}
	}
}

func WithMetrics(collector metrics.Collector) Option {
	return func(b *base) {
		if collector != nil {
			b.metrics = collector
		}
	}
}

var constructors = map[string]func(...Option) Searcher{
	MinimaxName:    func(o ...Option) Searcher { return NewMinimax(o...) },
	AlphaBetaName:  func(o ...Option) Searcher { return NewAlphaBeta(o...) },
	ExpectimaxName: func(o ...Option) Searcher { return NewExpectimax(o...) },
}

// New returns the searcher registered under name.
func New(name string, options ...Option) (Searcher, error) {
	constructor, ok := constructors[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %v)", ErrUnknownStrategy, name, Names())
	}
	return constructor(options...), nil
}

// Names returns the registered strategy names in sorted order
func Names() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// base holds the read-only configuration shared by every strategy
type base struct {
	evaluate   game.Evaluate
	goroutines int
	metrics    metrics.Collector
}

func newBase(options []Option) base {
	b := base{ // Default values
		evaluate:   game.EvaluateScore,
		goroutines: 1,
		metrics:    metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(&b)
	}
	return b
}

// valueFn computes the value of state with agent to move at the given depth
type valueFn func(state game.State, agent, depth int) (Result, error)

func (b *base) leaf(state game.State) Result {
	b.metrics.AddLeaf()
	return Result{Value: b.evaluate(state), Action: game.Stop}
}

func (b *base) successor(state game.State, agent int, action game.Action) (game.State, error) {
	child, err := state.Successor(agent, action)
	if err != nil {
		return nil, fmt.Errorf("agent %d playing %q: %w", agent, action, err)
	}
	b.metrics.AddSuccessor()
	return child, nil
}

// searchRoot expands the protagonist's children with up to b.goroutines
// workers, then folds the values in action order so ties resolve exactly as
// in a sequential search.
func (b *base) searchRoot(state game.State, depth int, value valueFn) (Result, error) {
	actions := state.LegalActions(game.Protagonist)
	if len(actions) == 0 {
		return b.leaf(state), nil
	}
	nextAgent, nextDepth := next(game.Protagonist, depth, state.NumAgents())

	values := make([]float64, len(actions))
	var g errgroup.Group
	g.SetLimit(b.goroutines)
	for i, action := range actions {
		i, action := i, action
		g.Go(func() error {
			child, err := b.successor(state, game.Protagonist, action)
			if err != nil {
				return err
			}
			r, err := value(child, nextAgent, nextDepth)
			if err != nil {
				return err
			}
			values[i] = r.Value
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	best := Result{Value: math.Inf(-1), Action: actions[0]}
	for i, action := range actions {
		best = maximize(best, Result{Value: values[i], Action: action})
	}
	return best, nil
}

func isLeaf(state game.State, depth int) bool {
	return depth <= 0 || game.IsTerminal(state)
}

// next returns the agent that moves after agent, and the depth it moves at.
// Depth drops once play wraps around to the protagonist.
func next(agent, depth, numAgents int) (int, int) {
	agent++
	if agent >= numAgents {
		return game.Protagonist, depth - 1
	}
	return agent, depth
}

// maximize keeps best unless child is strictly greater, so the first action wins ties.
// Folds are seeded with the node's first action, never game.Stop, so a node
// with legal actions always reports one of them even if every child is -Inf.
func maximize(best, child Result) Result {
	if child.Value > best.Value {
		return child
	}
	return best
}

// minimize keeps best unless child is strictly smaller
func minimize(best, child Result) Result {
	if child.Value < best.Value {
		return child
	}
	return best
}
