package experiments

import (
	"context"
	"errors"
	"fmt"

	"multiagent/engine"
	"multiagent/experiments/metrics"
	"multiagent/game"
	"multiagent/searcher/agent"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultNumGames = 10 // Per agent config
	DefaultOutDir   = "experiments"
)

// Experiment plays every config as the protagonist against random adversaries
type Experiment struct {
	Name     string
	Layout   string // Built-in layout name or layout file path
	NumGames int
	Parallel int    // Games played at once
	Seed     uint64 // Adversary randomness, offset per game
	MaxMoves int    // Zero keeps the engine default
	Configs  []agent.Config
	OutDir   string
}

type result struct {
	game  metrics.GameRecord
	moves []metrics.MoveRecord
}

// Run plays the experiment and writes its agent configs, game records and move
// records as CSV. It returns the directory they were written to.
func Run(ctx context.Context, exp Experiment) (string, error) {
	if len(exp.Configs) == 0 {
		return "", errors.New("experiment needs at least one agent config")
	}
	if exp.NumGames <= 0 {
		exp.NumGames = DefaultNumGames
	}
	if exp.Parallel <= 0 {
		exp.Parallel = 1
	}
	if exp.OutDir == "" {
		exp.OutDir = DefaultOutDir
	}
	layout, err := game.LoadLayout(exp.Layout)
	if err != nil {
		return "", err
	}

	configs := make([]metrics.AgentConfig, len(exp.Configs))
	for i, c := range exp.Configs {
		if err := c.Validate(); err != nil {
			return "", fmt.Errorf("invalid agent config %d: %w", i, err)
		}
		configs[i] = metrics.AgentConfig{
			ID:         i + 1,
			Strategy:   c.Strategy,
			Evaluation: c.EvaluationFunction,
			Depth:      c.Depth,
			Goroutines: c.Goroutines,
		}
	}

	log.Info().Msgf("starting %s experiment with %d configs and %d games each...", exp.Name, len(configs), exp.NumGames)

	// Each game writes only its own slot
	results := make([]result, len(configs)*exp.NumGames)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(exp.Parallel)
	for ci, config := range exp.Configs {
		ci, config := ci, config
		for gi := 0; gi < exp.NumGames; gi++ {
			id := ci*exp.NumGames + gi + 1
			g.Go(func() error {
				r, err := runGame(ctx, exp, layout, config, id)
				if err != nil {
					return fmt.Errorf("game %d with agent %d: %w", id, ci+1, err)
				}
				r.game.Agent = ci + 1
				results[id-1] = r
				log.Info().Msgf("completed game %d of %d: %s", id, len(results), r.game.Outcome)
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return "", err
	}

	log.Info().Msgf("completed %s experiment", exp.Name)

	gameRecords := make([]metrics.GameRecord, 0, len(results))
	moveRecords := []metrics.MoveRecord{}
	for _, r := range results {
		gameRecords = append(gameRecords, r.game)
		moveRecords = append(moveRecords, r.moves...)
	}

	writer, err := metrics.NewWriter(exp.OutDir, exp.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return "", fmt.Errorf("failed to store game records: %w", err)
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return "", fmt.Errorf("failed to store move records: %w", err)
	}
	log.Info().Msgf("stored results in %s", writer.Dir())

	return writer.Dir(), nil
}

// runGame plays one game. Agents are built per game since search agents are
// not safe for concurrent use.
func runGame(ctx context.Context, exp Experiment, layout *game.Layout, config agent.Config, id int) (result, error) {
	protagonist, err := agent.NewSearchAgent(config)
	if err != nil {
		return result{}, err
	}
	rng := rand.New(rand.NewSource(exp.Seed + uint64(id)))
	agents := []agent.Agent{protagonist}
	for i := 1; i < layout.NumAgents(); i++ {
		agents = append(agents, agent.NewRandomAgent(i, rng))
	}

	e := engine.NewLocalEngine(exp.Layout, game.NewMaze(layout), agents)
	if exp.MaxMoves > 0 {
		e.MaxMoves = exp.MaxMoves
	}
	_, gameMetric, moveMetrics, err := e.Run(ctx)
	if err != nil {
		return result{}, err
	}

	r := result{game: metrics.GameRecord{ID: id, GameMetric: gameMetric}}
	for _, mm := range moveMetrics {
		r.moves = append(r.moves, metrics.MoveRecord{Game: id, MoveMetric: mm})
	}
	return r, nil
}
