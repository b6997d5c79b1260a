package searcher

import (
	"math"
	"testing"

	"multiagent/experiments/metrics"
	"multiagent/game"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

/**
Tests the three strategies on explicit trees:
- leaves: depth 0 and win/lose states evaluate immediately
- scenarios: minimax picks max of mins, alpha-beta prunes the 9 leaf,
  expectimax averages chance nodes
- properties on random trees: alpha-beta value equals minimax value, prunes
  no more than minimax expands, one-agent games agree across strategies,
  concurrent root expansion matches sequential search
- failures: illegal actions abort the search, empty action sets evaluate
*/

func strategies(options ...Option) []Searcher {
	return []Searcher{NewMinimax(options...), NewAlphaBeta(options...), NewExpectimax(options...)}
}

func TestSearchAtLeaves(t *testing.T) {
	t.Run("depth zero returns the evaluation of the state", func(t *testing.T) {
		for _, name := range Names() {
			root := scenarioTree()
			root.score = 7
			collector := metrics.NewCollector()
			s := strategiesWith(name, WithMetrics(collector))

			got, err := s.Search(root, 0)

			require.NoError(t, err, s.Name())
			require.Equal(t, Result{Value: 7, Action: game.Stop}, got, s.Name())
			require.Equal(t, 0, collector.Complete().Successors, "%s should not expand a depth 0 root", s.Name())
			require.Equal(t, 1, collector.Complete().Leaves, s.Name())
		}
	})

	t.Run("win or lose short-circuits regardless of depth", func(t *testing.T) {
		for _, terminal := range []func(*mockState){
			func(m *mockState) { m.win = true },
			func(m *mockState) { m.lose = true },
		} {
			for _, s := range strategies() {
				root := scenarioTree()
				root.score = -2
				terminal(root)

				got, err := s.Search(root, 3)

				require.NoError(t, err, s.Name())
				require.Equal(t, Result{Value: -2, Action: game.Stop}, got, "%s should not expand a terminal state", s.Name())
			}
		}
	})

	t.Run("nodes without legal actions evaluate themselves", func(t *testing.T) {
		stuck := leaf(4) // adversary to move, no actions, not terminal
		root := withAgents(branch(stuck), 2)

		for _, s := range strategies() {
			got, err := s.Search(root, 2)

			require.NoError(t, err, s.Name())
			require.Equal(t, Result{Value: 4, Action: "a0"}, got, s.Name())
		}

		empty := withAgents(&mockState{score: 1}, 3)
		for _, s := range strategies() {
			got, err := s.Search(empty, 2)

			require.NoError(t, err, s.Name())
			require.Equal(t, Result{Value: 1, Action: game.Stop}, got, "%s should report the placeholder action", s.Name())
		}
	})
}

func TestInfiniteValuesKeepLegalActions(t *testing.T) {
	loss := math.Inf(-1)
	win := math.Inf(1)

	t.Run("max node where every child is lost", func(t *testing.T) {
		root := withAgents(branch(leaf(loss), leaf(loss)), 1)

		for _, s := range strategies() {
			got, err := s.Search(root, 1)

			require.NoError(t, err, s.Name())
			require.Equal(t, Result{Value: loss, Action: "a0"}, got, s.Name())
		}
	})

	t.Run("min node where every child is won", func(t *testing.T) {
		adversary := withAgents(branch(leaf(win), leaf(win)), 2)

		got, err := NewMinimax().value(adversary, 1, 1)
		require.NoError(t, err)
		require.Equal(t, Result{Value: win, Action: "a0"}, got)

		got, err = NewAlphaBeta().value(adversary, 1, 1, math.Inf(-1), math.Inf(1))
		require.NoError(t, err)
		require.Equal(t, Result{Value: win, Action: "a0"}, got)
	})

	t.Run("concurrent root where every child is lost", func(t *testing.T) {
		root := withAgents(branch(leaf(loss), leaf(loss), leaf(loss)), 1)

		for _, s := range []Searcher{NewMinimax(WithGoroutines(3)), NewExpectimax(WithGoroutines(3))} {
			got, err := s.Search(root, 1)

			require.NoError(t, err, s.Name())
			require.Equal(t, Result{Value: loss, Action: "a0"}, got, s.Name())
		}
	})
}

func strategiesWith(name string, options ...Option) Searcher {
	s, err := New(name, options...)
	if err != nil {
		panic(err)
	}
	return s
}

func TestMinimaxScenario(t *testing.T) {
	collector := metrics.NewCollector()
	s := NewMinimax(WithMetrics(collector))

	got, err := s.Search(scenarioTree(), 1)

	require.NoError(t, err)
	require.Equal(t, Result{Value: 3, Action: "a0"}, got, "Should pick max(min(3,5), min(1,9))")
	require.Equal(t, 6, collector.Complete().Successors, "Minimax should expand every node")
	require.Equal(t, 4, collector.Complete().Leaves)
}

func TestAlphaBetaScenario(t *testing.T) {
	collector := metrics.NewCollector()
	var evaluated []float64
	evaluate := func(s game.State) float64 {
		evaluated = append(evaluated, s.Score())
		return s.Score()
	}
	s := NewAlphaBeta(WithMetrics(collector), WithEvaluationFn(evaluate))

	got, err := s.Search(scenarioTree(), 1)

	require.NoError(t, err)
	require.Equal(t, Result{Value: 3, Action: "a0"}, got, "Should match the minimax result")
	require.Equal(t, 5, collector.Complete().Successors, "The leaf after 1 should be pruned")
	require.Equal(t, 1, collector.Complete().Cutoffs)
	require.Equal(t, []float64{3, 5, 1}, evaluated, "The 9 leaf should never be evaluated")
}

func TestExpectimaxScenario(t *testing.T) {
	t.Run("protagonist prefers the better expectation", func(t *testing.T) {
		got, err := NewExpectimax().Search(scenarioTree(), 1)

		require.NoError(t, err)
		require.Equal(t, Result{Value: 5, Action: "a1"}, got, "Should prefer (1+9)/2 over (3+5)/2")
	})

	t.Run("chance node averages its children", func(t *testing.T) {
		e := NewExpectimax()
		chance := scenarioTree().children[1]

		got, err := e.value(chance, 1, 1)

		require.NoError(t, err)
		require.InDelta(t, 5.0, got.Value, 1e-9)
		require.Equal(t, game.Action("a1"), got.Action, "Should report the last enumerated action")
	})

	t.Run("aggregation law", func(t *testing.T) {
		root := withAgents(branch(branch(leaf(1), leaf(2), leaf(4))), 2)

		got, err := NewExpectimax().Search(root, 1)

		require.NoError(t, err)
		require.InDelta(t, 7.0/3.0, got.Value, 1e-9)
	})

	t.Run("chance nodes are never pruned", func(t *testing.T) {
		collector := metrics.NewCollector()

		_, err := NewExpectimax(WithMetrics(collector)).Search(scenarioTree(), 1)

		require.NoError(t, err)
		require.Equal(t, 6, collector.Complete().Successors)
	})
}

func TestAlphaBetaMatchesMinimax(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		agents := 1 + rng.Intn(3)
		plies := 1 + rng.Intn(3)
		root := randomTree(rng, agents, plies, 3)

		mmMetrics, abMetrics := metrics.NewCollector(), metrics.NewCollector()
		mm := NewMinimax(WithMetrics(mmMetrics))
		ab := NewAlphaBeta(WithMetrics(abMetrics))

		want, err := mm.Search(root, plies)
		require.NoError(t, err)
		got, err := ab.Search(root, plies)
		require.NoError(t, err)

		require.Equal(t, want.Value, got.Value, "tree %d: alpha-beta value should equal minimax value", i)
		require.LessOrEqual(t, abMetrics.Complete().Successors, mmMetrics.Complete().Successors,
			"tree %d: alpha-beta should never expand more than minimax", i)

		// The chosen action may differ, but only among actions tied at the optimum
		if got.Action != game.Stop && got.Action != want.Action {
			child, err := root.Successor(game.Protagonist, got.Action)
			require.NoError(t, err)
			nextAgent, nextDepth := next(game.Protagonist, plies, agents)
			r, err := NewMinimax().value(child, nextAgent, nextDepth)
			require.NoError(t, err)
			require.Equal(t, want.Value, r.Value, "tree %d: alpha-beta picked a non-optimal action", i)
		}
	}
}

func TestSingleAgentReduction(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		plies := 1 + rng.Intn(4)
		root := randomTree(rng, 1, plies, 3)

		want, err := NewMinimax().Search(root, plies)
		require.NoError(t, err)
		for _, s := range strategies() {
			got, err := s.Search(root, plies)
			require.NoError(t, err)
			require.Equal(t, want.Value, got.Value, "tree %d: %s should reduce to maximization", i, s.Name())
		}
	}
}

func TestConcurrentRoot(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 50; i++ {
		agents := 1 + rng.Intn(3)
		plies := 1 + rng.Intn(2)
		root := randomTree(rng, agents, plies, 4)

		for _, name := range []string{MinimaxName, ExpectimaxName, AlphaBetaName} {
			seqMetrics := metrics.NewCollector()
			sequential := strategiesWith(name, WithMetrics(seqMetrics))
			parMetrics := metrics.NewCollector()
			parallel := strategiesWith(name, WithGoroutines(4), WithMetrics(parMetrics))

			want, err := sequential.Search(root, plies)
			require.NoError(t, err)
			got, err := parallel.Search(root, plies)
			require.NoError(t, err)

			require.Equal(t, want, got, "tree %d: concurrent %s should match sequential search", i, name)
			require.Equal(t, seqMetrics.Complete().Successors, parMetrics.Complete().Successors, "tree %d: %s", i, name)
		}
	}
}

func TestIllegalActionAbortsSearch(t *testing.T) {
	for _, s := range strategies() {
		root := withAgents(branch(branch(leaf(1), leaf(2)), branch(leaf(3))), 2)
		root.children[0].reject = "a1"

		_, err := s.Search(root, 1)

		require.ErrorIs(t, err, game.ErrIllegalAction, "%s should propagate the collaborator's error", s.Name())
	}
}

func TestNew(t *testing.T) {
	for _, name := range Names() {
		s, err := New(name)
		require.NoError(t, err)
		require.Equal(t, name, s.Name())
	}

	_, err := New("mcts")
	require.ErrorIs(t, err, ErrUnknownStrategy)
}

func TestMazeSearch(t *testing.T) {
	state := game.NewMaze(game.MustParseLayout(game.Layouts["tiny"]))

	for _, evaluate := range []game.Evaluate{game.EvaluateScore, game.EvaluateComposite} {
		want, err := NewMinimax(WithEvaluationFn(evaluate)).Search(state, 2)
		require.NoError(t, err)
		got, err := NewAlphaBeta(WithEvaluationFn(evaluate)).Search(state, 2)
		require.NoError(t, err)

		require.Equal(t, want.Value, got.Value)
		require.Contains(t, state.LegalActions(game.Protagonist), got.Action)
	}
}
