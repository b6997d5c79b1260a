package game

import (
	"fmt"
	"slices"

	"multiagent/utils"
)

// Directions
const (
	North Action = "North"
	South Action = "South"
	East  Action = "East"
	West  Action = "West"
)

var directions = []Action{North, South, East, West}

var deltas = map[Action]Position{
	North: {X: 0, Y: -1},
	South: {X: 0, Y: 1},
	East:  {X: 1, Y: 0},
	West:  {X: -1, Y: 0},
	Stop:  {X: 0, Y: 0},
}

// Scoring
const (
	TimePenalty = 1.0
	FoodReward  = 10.0
	WinReward   = 500.0
	LosePenalty = 500.0
)

// Features exposes the positional information composite evaluations and the
// reflex agent rely on. Only states with a spatial layout implement it.
type Features interface {
	Position(agent int) Position
	Food() []Position
	NumFood() int
}

// Maze is a grid pursuit game: the protagonist collects food while adversaries
// chase it. It implements State and Features.
type Maze struct {
	layout *Layout    // Static, shared between all states
	agents []Position // Index 0 is the protagonist
	food   []Position // Remaining food
	score  float64
	won    bool
	lost   bool
}

// NewMaze returns the initial state for layout.
func NewMaze(layout *Layout) *Maze {
	agents := make([]Position, 0, layout.NumAgents())
	agents = append(agents, layout.Protagonist)
	agents = append(agents, layout.Adversaries...)
	return &Maze{
		layout: layout,
		agents: agents,
		food:   slices.Clone(layout.Food),
	}
}

func (m *Maze) LegalActions(agent int) []Action {
	if m.won || m.lost || agent < 0 || agent >= len(m.agents) {
		return nil
	}

	from := m.agents[agent]
	actions := make([]Action, 0, len(directions)+1)
	for _, d := range directions {
		if !m.layout.IsWall(move(from, d)) {
			actions = append(actions, d)
		}
	}
	// Adversaries keep moving unless boxed in
	if agent == Protagonist || len(actions) == 0 {
		actions = append(actions, Stop)
	}
	return actions
}

func (m *Maze) Successor(agent int, action Action) (State, error) {
	if utils.FindIndex(m.LegalActions(agent), action) < 0 {
		return nil, fmt.Errorf("%w: agent %d cannot play %q", ErrIllegalAction, agent, action)
	}

	next := m.copy()
	next.agents[agent] = move(next.agents[agent], action)

	if agent == Protagonist {
		next.score -= TimePenalty
	}
	if next.caught() {
		next.score -= LosePenalty
		next.lost = true
		return next, nil
	}
	if agent == Protagonist {
		next.eat()
	}
	return next, nil
}

func (m *Maze) copy() *Maze {
	return &Maze{
		layout: m.layout,
		agents: slices.Clone(m.agents),
		food:   slices.Clone(m.food),
		score:  m.score,
		won:    m.won,
		lost:   m.lost,
	}
}

// caught reports whether an adversary shares the protagonist's cell
func (m *Maze) caught() bool {
	return slices.Contains(m.agents[1:], m.agents[Protagonist])
}

func (m *Maze) eat() {
	i := slices.Index(m.food, m.agents[Protagonist])
	if i < 0 {
		return
	}
	m.food = slices.Delete(m.food, i, i+1)
	m.score += FoodReward
	if len(m.food) == 0 {
		m.score += WinReward
		m.won = true
	}
}

func (m *Maze) NumAgents() int {
	return len(m.agents)
}

func (m *Maze) IsWin() bool {
	return m.won
}

func (m *Maze) IsLose() bool {
	return m.lost
}

func (m *Maze) Score() float64 {
	return m.score
}

func (m *Maze) Position(agent int) Position {
	return m.agents[agent]
}

// Food returns a copy of the remaining food positions
func (m *Maze) Food() []Position {
	return slices.Clone(m.food)
}

func (m *Maze) NumFood() int {
	return len(m.food)
}

func move(p Position, action Action) Position {
	d := deltas[action]
	return Position{X: p.X + d.X, Y: p.Y + d.Y}
}
