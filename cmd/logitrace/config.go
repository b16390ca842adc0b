package main

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config describes a batch of bimatrix games to trace.
type Config struct {
	Solver SolverSettings `hcl:"solver,block"`
	Games  []GameConfig   `hcl:"game,block"`
}

// SolverSettings carries the tracer configuration shared by all games.
type SolverSettings struct {
	MaxLambda float64 `hcl:"max_lambda,optional"`
	FullGraph bool    `hcl:"full_graph,optional"`
}

// GameConfig defines one bimatrix game by its payoff matrices.
type GameConfig struct {
	Name string      `hcl:"name,label"`
	Row  [][]float64 `hcl:"row"`
	Col  [][]float64 `hcl:"col"`
}

// DefaultConfig returns a small demo batch.
func DefaultConfig() *Config {
	return &Config{
		Solver: SolverSettings{MaxLambda: 30.0},
		Games: []GameConfig{
			{
				Name: "coordination",
				Row:  [][]float64{{1, 0}, {0, 1}},
				Col:  [][]float64{{1, 0}, {0, 1}},
			},
			{
				Name: "matching_pennies",
				Row:  [][]float64{{1, -1}, {-1, 1}},
				Col:  [][]float64{{-1, 1}, {1, -1}},
			},
		},
	}
}

// LoadConfig loads a batch configuration from an HCL file, falling back to
// the demo batch when the file does not exist.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	if config.Solver.MaxLambda == 0 {
		config.Solver.MaxLambda = 30.0
	}

	return &config, nil
}

// Validate validates the batch configuration.
func (c *Config) Validate() error {
	if c.Solver.MaxLambda <= 0 {
		return fmt.Errorf("max_lambda must be positive, got %v", c.Solver.MaxLambda)
	}
	if len(c.Games) == 0 {
		return fmt.Errorf("at least one game must be configured")
	}

	for _, g := range c.Games {
		if len(g.Row) == 0 || len(g.Row[0]) == 0 {
			return fmt.Errorf("game %s: empty payoff matrix", g.Name)
		}
		if len(g.Row) != len(g.Col) {
			return fmt.Errorf("game %s: row and col matrices disagree on shape", g.Name)
		}
		for i := range g.Row {
			if len(g.Row[i]) != len(g.Row[0]) || len(g.Col[i]) != len(g.Row[0]) {
				return fmt.Errorf("game %s: payoff matrices are ragged at row %d", g.Name, i)
			}
		}
	}

	return nil
}
