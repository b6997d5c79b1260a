package agent

import (
	"errors"
	"fmt"
	"os"

	"multiagent/game"
	"multiagent/meta"
	"multiagent/searcher"

	"gopkg.in/yaml.v3"
)

var ErrInvalidDepth = errors.New("depth must be a positive integer")

// Config selects a search strategy, its evaluation function and depth bound.
// Zero values fall back to the defaults in meta.
type Config struct {
	Strategy           string `yaml:"strategy"`
	EvaluationFunction string `yaml:"evaluationFunction"`
	Depth              int    `yaml:"depth"`
	Goroutines         int    `yaml:"goroutines"`
}

func DefaultConfig() Config {
	return Config{
		Strategy:           meta.DefaultStrategy,
		EvaluationFunction: meta.DefaultEvaluation,
		Depth:              meta.DefaultDepth,
		Goroutines:         1,
	}
}

// Validate resolves every name in the config so misconfiguration fails before
// any search runs.
func (c Config) Validate() error {
	if c.Depth < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidDepth, c.Depth)
	}
	if _, err := searcher.New(c.Strategy); err != nil {
		return err
	}
	if _, err := game.LookupEvaluation(c.EvaluationFunction); err != nil {
		return err
	}
	return nil
}

func (c Config) withDefaults() Config {
	defaults := DefaultConfig()
	if c.Strategy == "" {
		c.Strategy = defaults.Strategy
	}
	if c.EvaluationFunction == "" {
		c.EvaluationFunction = defaults.EvaluationFunction
	}
	if c.Depth == 0 {
		c.Depth = defaults.Depth
	}
	if c.Goroutines <= 0 {
		c.Goroutines = defaults.Goroutines
	}
	return c
}

// LoadConfig reads a single agent config from a YAML file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read agent config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("failed to parse agent config %s: %w", path, err)
	}
	c = c.withDefaults()
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid agent config %s: %w", path, err)
	}
	return c, nil
}

// LoadConfigs reads a list of agent configs from a YAML file of the form
//
//	agents:
//	  - strategy: alphabeta
//	    depth: 3
func LoadConfigs(path string) ([]Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read agent configs: %w", err)
	}

	var file struct {
		Agents []Config `yaml:"agents"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse agent configs %s: %w", path, err)
	}
	if len(file.Agents) == 0 {
		return nil, fmt.Errorf("no agents in %s", path)
	}

	configs := make([]Config, len(file.Agents))
	for i, c := range file.Agents {
		c = c.withDefaults()
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("invalid agent config %d in %s: %w", i, path, err)
		}
		configs[i] = c
	}
	return configs, nil
}
