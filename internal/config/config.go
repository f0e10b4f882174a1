package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/abilitycore/internal/logger"
)

// EnvPath overrides the config file path used by cmd/abilitysim.
const EnvPath = "ABILITYSIM_CONFIG"

// DefaultPath is the config file read when EnvPath is unset.
const DefaultPath = "config/abilitysim.yaml"

var ErrInvalidConfig = errors.New("invalid config")

// Simulation holds all configuration for the simulation host.
type Simulation struct {
	// Fixed simulation step
	TickInterval time.Duration `yaml:"tick_interval"`
	// Total simulated time; 0 runs until the scenario ends
	Duration time.Duration `yaml:"duration"`
	// Realtime paces ticks with a wall-clock ticker instead of running flat out
	Realtime bool `yaml:"realtime"`

	// Content
	ContentPath  string `yaml:"content_path"`
	ScenarioPath string `yaml:"scenario_path"`

	// Engine
	EventQueueSize int     `yaml:"event_queue_size"`
	CellSize       float64 `yaml:"cell_size"`
	Seed           uint64  `yaml:"seed"` // crit RNG seed; 0 = random

	Logging logger.Config `yaml:"logging"`
}

// DefaultSimulation returns Simulation config with sensible defaults.
func DefaultSimulation() Simulation {
	return Simulation{
		TickInterval:   100 * time.Millisecond,
		Duration:       0,
		Realtime:       false,
		ContentPath:    "config/content.yaml",
		ScenarioPath:   "config/scenario.yaml",
		EventQueueSize: 1024,
		CellSize:       16,
		Logging:        logger.DefaultConfig(),
	}
}

// LoadSimulation loads simulation config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadSimulation(path string) (Simulation, error) {
	cfg := DefaultSimulation()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (s Simulation) Validate() error {
	switch {
	case s.TickInterval <= 0:
		return fmt.Errorf("%w: tick_interval must be positive", ErrInvalidConfig)
	case s.Duration < 0:
		return fmt.Errorf("%w: duration must not be negative", ErrInvalidConfig)
	case s.EventQueueSize <= 0:
		return fmt.Errorf("%w: event_queue_size must be positive", ErrInvalidConfig)
	case s.CellSize <= 0:
		return fmt.Errorf("%w: cell_size must be positive", ErrInvalidConfig)
	}
	return nil
}

// Step returns the tick interval in simulation seconds.
func (s Simulation) Step() float64 {
	return s.TickInterval.Seconds()
}

// PathFromEnv returns the config path from EnvPath or DefaultPath.
func PathFromEnv() string {
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	return DefaultPath
}
