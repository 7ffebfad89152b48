package xr

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 10, cfg.FormWindow)
	assert.Equal(t, 4, cfg.FormHalfLife)
	assert.InDelta(t, 0.6, cfg.AttackWeight, 1e-12)
	assert.InDelta(t, 0.4, cfg.DefenseWeight, 1e-12)
	assert.InDelta(t, 0.3, cfg.HomeAdvantage, 1e-12)
	assert.InDelta(t, 72.0, cfg.VisibilityWindowHours, 1e-12)
}

func TestLoadConfigEmptyPathUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := "form_window: 6\nhome_advantage: 0.25\nexpected_teams:\n  - arsenal\n  - spurs\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	// Overridden keys
	assert.Equal(t, 6, cfg.FormWindow)
	assert.InDelta(t, 0.25, cfg.HomeAdvantage, 1e-12)
	assert.Equal(t, []string{"arsenal", "spurs"}, cfg.ExpectedTeams)

	// Untouched keys keep their defaults
	assert.Equal(t, 4, cfg.FormHalfLife)
	assert.InDelta(t, 3.5, cfg.MaxXG, 1e-12)
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("form_window: 0\n"), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestConfigValidateBounds(t *testing.T) {
	cases := []func(*Config){
		func(c *Config) { c.FormHalfLife = 0 },
		func(c *Config) { c.AttackWeight = 1.5 },
		func(c *Config) { c.DefenseWeight = -0.1 },
		func(c *Config) { c.MinXG = 2.0; c.MaxXG = 1.0 },
		func(c *Config) { c.PressSlope = -0.1 },
		func(c *Config) { c.PressRateThreshold = -1 },
		func(c *Config) { c.CrossCap = -0.5 },
		func(c *Config) { c.CounterEfficiency = -0.1 },
		func(c *Config) { c.DominanceScale = 0 },
		func(c *Config) { c.MaxGoalsModeled = 2 },
		func(c *Config) { c.TopScorelines = 0 },
		func(c *Config) { c.VisibilityWindowHours = 0 },
	}

	for i, mutate := range cases {
		cfg := DefaultConfig()
		mutate(cfg)
		assert.Error(t, cfg.Validate(), "case %d", i)
	}
}
