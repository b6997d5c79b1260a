package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"multiagent/engine"
	"multiagent/experiments"
	"multiagent/game"
	"multiagent/meta"
	"multiagent/searcher/agent"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

func main() {
	strategy := flag.String("strategy", meta.DefaultStrategy, "Search strategy: minimax, alphabeta or expectimax")
	evaluation := flag.String("eval", meta.DefaultEvaluation, "Evaluation function name")
	depth := flag.Int("depth", meta.DefaultDepth, "Search depth in rounds of every agent moving once")
	goroutines := flag.Int("goroutines", 1, "Goroutines expanding the root (minimax and expectimax)")
	configPath := flag.String("config", "", "YAML agent config, strategy flags given explicitly override it")
	agentKind := flag.String("agent", "search", "Protagonist kind: search or reflex")
	layout := flag.String("layout", meta.DefaultLayout, "Built-in layout name or layout file")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "Seed for the adversaries")
	games := flag.Int("games", 1, "Number of games to play")
	experiment := flag.String("experiment", "", "Run a named experiment over the agents in -config")
	parallel := flag.Int("parallel", 1, "Experiment games played at once")
	out := flag.String("out", experiments.DefaultOutDir, "Experiment output directory")
	verbose := flag.Bool("verbose", false, "Log every move")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *experiment != "" {
		if *configPath == "" {
			log.Fatal().Msg("an experiment needs a -config file listing its agents")
		}
		configs, err := agent.LoadConfigs(*configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load agent configs")
		}
		dir, err := experiments.Run(ctx, experiments.Experiment{
			Name:     *experiment,
			Layout:   *layout,
			NumGames: *games,
			Parallel: *parallel,
			Seed:     *seed,
			Configs:  configs,
			OutDir:   *out,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("experiment failed")
		}
		fmt.Println(dir)
		return
	}

	config := agent.Config{
		Strategy:           *strategy,
		EvaluationFunction: *evaluation,
		Depth:              *depth,
		Goroutines:         *goroutines,
	}
	if *configPath != "" {
		loaded, err := agent.LoadConfig(*configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load agent config")
		}
		config = overrideConfig(loaded, config, setFlags())
	}

	l, err := game.LoadLayout(*layout)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load layout")
	}
	rng := rand.New(rand.NewSource(*seed))

	wins := 0
	for i := 0; i < *games; i++ {
		protagonist, err := newProtagonist(*agentKind, config, rng)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create agent")
		}
		agents := []agent.Agent{protagonist}
		for a := 1; a < l.NumAgents(); a++ {
			agents = append(agents, agent.NewRandomAgent(a, rng))
		}

		e := engine.NewLocalEngine(*layout, game.NewMaze(l), agents)
		outcome, gameMetric, _, err := e.Run(ctx)
		if err != nil {
			log.Fatal().Err(err).Msgf("game %d failed", i+1)
		}
		if outcome == engine.Win {
			wins++
		}
		fmt.Printf("Game %d: %s, score %.0f in %d moves\n", i+1, outcome, gameMetric.FinalScore, gameMetric.TotalMoves)
	}
	fmt.Printf("Won %d of %d games\n", wins, *games)
}

// setFlags returns the names of the flags given on the command line
func setFlags() map[string]bool {
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

// overrideConfig replaces the fields of loaded whose flags were set explicitly
func overrideConfig(loaded, flags agent.Config, set map[string]bool) agent.Config {
	if set["strategy"] {
		loaded.Strategy = flags.Strategy
	}
	if set["eval"] {
		loaded.EvaluationFunction = flags.EvaluationFunction
	}
	if set["depth"] {
		loaded.Depth = flags.Depth
	}
	if set["goroutines"] {
		loaded.Goroutines = flags.Goroutines
	}
	return loaded
}

func newProtagonist(kind string, config agent.Config, rng *rand.Rand) (agent.Agent, error) {
	switch kind {
	case "search":
		return agent.NewSearchAgent(config)
	case agent.ReflexName:
		return agent.NewReflexAgent(nil, rng), nil
	default:
		return nil, fmt.Errorf("unknown agent kind %q", kind)
	}
}
