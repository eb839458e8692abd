// Package config loads simulation settings from an HCL file.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/cribbage/internal/player"
)

const (
	DefaultGames     = 100
	DefaultVerbosity = 0
	DefaultLogDir    = "logs"
	MaxVerbosity     = 2
)

// DefaultPlayerNames are the seat names used when no player blocks are given.
var DefaultPlayerNames = [2]string{"Player 1", "Player 2"}

// Config represents a complete simulation configuration.
type Config struct {
	Simulation SimulationSettings `hcl:"simulation,block"`
	Players    []PlayerConfig     `hcl:"player,block"`
}

// SimulationSettings controls a batch of games. Seed is nil when each run
// should draw a fresh master seed; TrackSeeds defaults to true.
type SimulationSettings struct {
	Games       int    `hcl:"games,optional"`
	Seed        *int64 `hcl:"seed,optional"`
	TrackSeeds  *bool  `hcl:"track_seeds,optional"`
	Workers     int    `hcl:"workers,optional"`
	Verbosity   int    `hcl:"verbosity,optional"`
	LogDir      string `hcl:"log_dir,optional"`
	HandHistory bool   `hcl:"hand_history,optional"`
}

// PlayerConfig names a seat and its policy.
type PlayerConfig struct {
	Name   string `hcl:"name,label"`
	Policy string `hcl:"policy,optional"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads configuration from an HCL file. A missing file yields defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
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

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Simulation.Games == 0 {
		c.Simulation.Games = DefaultGames
	}
	if c.Simulation.TrackSeeds == nil {
		track := true
		c.Simulation.TrackSeeds = &track
	}
	if c.Simulation.LogDir == "" {
		c.Simulation.LogDir = DefaultLogDir
	}

	// Fill missing seats in order.
	for i := len(c.Players); i < len(DefaultPlayerNames); i++ {
		c.Players = append(c.Players, PlayerConfig{Name: DefaultPlayerNames[i]})
	}
	for i := range c.Players {
		if c.Players[i].Policy == "" {
			c.Players[i].Policy = player.DefaultPolicy
		}
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Simulation.Games <= 0 {
		return fmt.Errorf("games must be greater than 0, got %d", c.Simulation.Games)
	}
	if c.Simulation.Seed != nil && *c.Simulation.Seed < 0 {
		return fmt.Errorf("seed must not be negative, got %d", *c.Simulation.Seed)
	}
	if c.Simulation.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Simulation.Workers)
	}
	if c.Simulation.Verbosity < 0 || c.Simulation.Verbosity > MaxVerbosity {
		return fmt.Errorf("verbosity must be between 0 and %d, got %d", MaxVerbosity, c.Simulation.Verbosity)
	}

	if len(c.Players) != 2 {
		return fmt.Errorf("exactly 2 players must be configured, got %d", len(c.Players))
	}
	if c.Players[0].Name == c.Players[1].Name {
		return fmt.Errorf("player %s: names must be distinct", c.Players[0].Name)
	}
	for _, p := range c.Players {
		if p.Name == "" {
			return fmt.Errorf("player name must not be empty")
		}
		if _, err := player.NewPolicy(p.Policy); err != nil {
			return fmt.Errorf("player %s: %w", p.Name, err)
		}
	}
	return nil
}

// TrackSeeds reports whether per-game seeds are recorded.
func (c *Config) TrackSeeds() bool {
	return c.Simulation.TrackSeeds == nil || *c.Simulation.TrackSeeds
}

// PlayerNames returns the two seat names.
func (c *Config) PlayerNames() [2]string {
	return [2]string{c.Players[0].Name, c.Players[1].Name}
}
