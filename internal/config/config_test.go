package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "abilitysim.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSimulation_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadSimulation(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultSimulation(), cfg)
	assert.InDelta(t, 0.1, cfg.Step(), 1e-12)
}

func TestLoadSimulation_OverridesDefaults(t *testing.T) {
	path := writeFile(t, `
tick_interval: 50ms
duration: 30s
content_path: content/pack.yaml
event_queue_size: 64
seed: 42
logging:
  level: DEBUG
  console_enabled: true
  console_format: json
`)

	cfg, err := LoadSimulation(path)
	require.NoError(t, err)
	assert.Equal(t, 50*time.Millisecond, cfg.TickInterval)
	assert.Equal(t, 30*time.Second, cfg.Duration)
	assert.Equal(t, "content/pack.yaml", cfg.ContentPath)
	assert.Equal(t, "config/scenario.yaml", cfg.ScenarioPath, "unset keys keep defaults")
	assert.Equal(t, 64, cfg.EventQueueSize)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, 16.0, cfg.CellSize)
	assert.Equal(t, "DEBUG", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.ConsoleFormat)
	assert.Equal(t, 10, cfg.Logging.FileMaxSizeMB)
}

func TestLoadSimulation_Errors(t *testing.T) {
	t.Run("malformed yaml", func(t *testing.T) {
		_, err := LoadSimulation(writeFile(t, "tick_interval: [nope"))
		assert.Error(t, err)
	})

	t.Run("invalid value", func(t *testing.T) {
		_, err := LoadSimulation(writeFile(t, "event_queue_size: 0"))
		assert.True(t, errors.Is(err, ErrInvalidConfig))
	})

	t.Run("directory", func(t *testing.T) {
		_, err := LoadSimulation(t.TempDir())
		assert.Error(t, err)
	})
}

func TestSimulation_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Simulation)
	}{
		{"zero tick", func(s *Simulation) { s.TickInterval = 0 }},
		{"negative duration", func(s *Simulation) { s.Duration = -time.Second }},
		{"zero queue", func(s *Simulation) { s.EventQueueSize = 0 }},
		{"zero cell", func(s *Simulation) { s.CellSize = 0 }},
	}

	assert.NoError(t, DefaultSimulation().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultSimulation()
			tt.mutate(&cfg)
			assert.True(t, errors.Is(cfg.Validate(), ErrInvalidConfig))
		})
	}
}

func TestPathFromEnv(t *testing.T) {
	t.Setenv(EnvPath, "")
	assert.Equal(t, DefaultPath, PathFromEnv())

	t.Setenv(EnvPath, "/etc/abilitysim.yaml")
	assert.Equal(t, "/etc/abilitysim.yaml", PathFromEnv())
}
