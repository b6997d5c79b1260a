package game

import (
	"errors"
	"fmt"
	"sort"
)

// Composite evaluation weights
const (
	foodDistanceWeight = 10.0
	foodCountWeight    = 100.0
	threatWeight       = 50.0
	threatRadius       = 3
)

var ErrUnknownEvaluation = errors.New("unknown evaluation function")

var evaluations = map[string]Evaluate{
	"simple-score": EvaluateScore,
	"composite":    EvaluateComposite,
}

// Names accepted for backwards compatibility with older agent configs
var evaluationAliases = map[string]string{
	"scoreEvaluationFunction":  "simple-score",
	"betterEvaluationFunction": "composite",
	"better":                   "composite",
}

// LookupEvaluation resolves an evaluation function by name.
func LookupEvaluation(name string) (Evaluate, error) {
	if canonical, ok := evaluationAliases[name]; ok {
		name = canonical
	}
	evaluate, ok := evaluations[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %v)", ErrUnknownEvaluation, name, EvaluationNames())
	}
	return evaluate, nil
}

// EvaluationNames returns the canonical evaluation function names in sorted order.
func EvaluationNames() []string {
	names := make([]string, 0, len(evaluations))
	for name := range evaluations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// EvaluateScore simply returns the state's built-in score
func EvaluateScore(s State) float64 {
	return s.Score()
}

// EvaluateComposite combines the score with penalties for the distance to the
// closest remaining objective, the number of objectives left, and the proximity
// of the closest threat. States without positional features score as
// EvaluateScore.
func EvaluateComposite(s State) float64 {
	f, ok := s.(Features)
	if !ok {
		return s.Score()
	}

	value := s.Score()
	if closest, ok := ClosestFood(f); ok {
		value -= foodDistanceWeight * float64(closest)
	}
	value -= foodCountWeight * float64(f.NumFood())

	// Only threats within the radius matter, and closer ones matter more
	if d, ok := ClosestThreat(f, s.NumAgents()); ok && d > 0 && d <= threatRadius {
		value -= threatWeight / float64(d)
	}
	return value
}

// ClosestFood returns the distance from the protagonist to the nearest food,
// false when no food is left
func ClosestFood(f Features) (int, bool) {
	food := f.Food()
	if len(food) == 0 {
		return 0, false
	}
	from := f.Position(Protagonist)
	closest := ManhattanDistance(from, food[0])
	for _, p := range food[1:] {
		closest = min(closest, ManhattanDistance(from, p))
	}
	return closest, true
}

// ClosestThreat returns the distance from the protagonist to the nearest
// adversary, false when there are none
func ClosestThreat(f Features, numAgents int) (int, bool) {
	if numAgents < 2 {
		return 0, false
	}
	from := f.Position(Protagonist)
	closest := ManhattanDistance(from, f.Position(1))
	for agent := 2; agent < numAgents; agent++ {
		closest = min(closest, ManhattanDistance(from, f.Position(agent)))
	}
	return closest, true
}
