package xr

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config contains every parameter that influences prediction outcomes.
// A Config is threaded explicitly through all engine calls so that
// multiple leagues or seasons can run side by side without cross-talk.
type Config struct {

	// === FORM AGGREGATION ===

	FormWindow   int `yaml:"form_window"`    // Max recent matches per team (default: 10)
	FormHalfLife int `yaml:"form_half_life"` // Matches for a weight to halve (default: 4)

	// === BASE EXPECTED GOALS ===

	AttackWeight  float64 `yaml:"attack_weight"`  // Weight of own attack ratio (default: 0.6)
	DefenseWeight float64 `yaml:"defense_weight"` // Weight of opponent defence term (default: 0.4)
	HomeAdvantage float64 `yaml:"home_advantage"` // Constant added to home xG (default: 0.3)
	MinXG         float64 `yaml:"min_xg"`         // Lower clamp on predicted xG (default: 0.2)
	MaxXG         float64 `yaml:"max_xg"`         // Upper clamp on predicted xG (default: 3.5)

	// === MATCHUP ADJUSTMENT RULES ===

	// Press vs pass-completion
	PressRateThreshold      float64 `yaml:"press_rate_threshold"`      // Pressures/match to qualify as a pressing side (default: 140)
	PassCompletionThreshold float64 `yaml:"pass_completion_threshold"` // Opponent pass % below this is exploitable (default: 78)
	PassCompletionUpper     float64 `yaml:"pass_completion_upper"`     // Reference pass % the shortfall is measured from (default: 85)
	PressSlope              float64 `yaml:"press_slope"`               // xG per point of pass-completion shortfall (default: 0.02)
	PressCap                float64 `yaml:"press_cap"`                 // Max press adjustment (default: 0.25)

	// Cross volume vs weak box defence
	CrossRateThreshold  float64 `yaml:"cross_rate_threshold"`  // Crosses/match to qualify as a crossing side (default: 18)
	BoxDefenseThreshold float64 `yaml:"box_defense_threshold"` // Final-third defensive actions below this is weak (default: 15)
	CrossSlope          float64 `yaml:"cross_slope"`           // xG per cross above the threshold (default: 0.01)
	CrossCap            float64 `yaml:"cross_cap"`             // Max crossing adjustment (default: 0.25)

	// Possession dominance vs counter efficiency
	PossessionDominance float64 `yaml:"possession_dominance"` // Possession gap that counts as dominance (default: 15)
	CounterEfficiency   float64 `yaml:"counter_efficiency"`   // xG-per-shot above this is a counter threat (default: 0.15)
	DominanceScale      float64 `yaml:"dominance_scale"`      // Divisor turning the gap into a fraction (default: 20)
	CounterCap          float64 `yaml:"counter_cap"`          // Max counter adjustment (default: 0.2)

	// === SCORELINE DISTRIBUTION ===

	MaxGoalsModeled int `yaml:"max_goals_modeled"` // Grid covers 0..N goals per side (default: 10)
	TopScorelines   int `yaml:"top_scorelines"`    // Scorelines reported per prediction (default: 5)

	// === VISIBILITY ===

	VisibilityWindowHours float64 `yaml:"visibility_window_hours"` // Hours before kickoff a prediction unlocks (default: 72)

	// === COLLABORATOR EDGES ===

	DatabasePath  string   `yaml:"database_path"`  // sqlite database location, empty disables persistence
	ExpectedTeams []string `yaml:"expected_teams"` // season roster; empty disables the roster gate
}

// DefaultConfig returns the configuration with all standard values
func DefaultConfig() *Config {
	return &Config{
		FormWindow:   10,
		FormHalfLife: 4,

		AttackWeight:  0.6,
		DefenseWeight: 0.4,
		HomeAdvantage: 0.3,
		MinXG:         0.2,
		MaxXG:         3.5,

		PressRateThreshold:      140.0,
		PassCompletionThreshold: 78.0,
		PassCompletionUpper:     85.0,
		PressSlope:              0.02,
		PressCap:                0.25,

		CrossRateThreshold:  18.0,
		BoxDefenseThreshold: 15.0,
		CrossSlope:          0.01,
		CrossCap:            0.25,

		PossessionDominance: 15.0,
		CounterEfficiency:   0.15,
		DominanceScale:      20.0,
		CounterCap:          0.2,

		MaxGoalsModeled: 10,
		TopScorelines:   5,

		VisibilityWindowHours: 72.0,
	}
}

// LoadConfig reads a YAML configuration file over the defaults, so a
// partial file only overrides the keys it names
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate ensures all configuration values are within usable ranges
func (c *Config) Validate() error {
	if c.FormWindow < 1 {
		return fmt.Errorf("form_window must be at least 1, got: %d", c.FormWindow)
	}
	if c.FormHalfLife < 1 {
		return fmt.Errorf("form_half_life must be at least 1, got: %d", c.FormHalfLife)
	}
	if c.AttackWeight < 0 || c.AttackWeight > 1 {
		return fmt.Errorf("attack_weight must be between 0.0 and 1.0, got: %f", c.AttackWeight)
	}
	if c.DefenseWeight < 0 || c.DefenseWeight > 1 {
		return fmt.Errorf("defense_weight must be between 0.0 and 1.0, got: %f", c.DefenseWeight)
	}
	if c.MinXG < 0 || c.MaxXG <= c.MinXG {
		return fmt.Errorf("xG clamp bounds invalid: min=%f max=%f", c.MinXG, c.MaxXG)
	}
	if c.PressRateThreshold < 0 || c.PassCompletionThreshold < 0 || c.PassCompletionUpper < 0 {
		return fmt.Errorf("press rule thresholds must be non-negative")
	}
	if c.PressSlope < 0 || c.PressCap < 0 {
		return fmt.Errorf("press rule slope and cap must be non-negative, got slope=%f cap=%f", c.PressSlope, c.PressCap)
	}
	if c.CrossRateThreshold < 0 || c.BoxDefenseThreshold < 0 {
		return fmt.Errorf("crossing rule thresholds must be non-negative")
	}
	if c.CrossSlope < 0 || c.CrossCap < 0 {
		return fmt.Errorf("crossing rule slope and cap must be non-negative, got slope=%f cap=%f", c.CrossSlope, c.CrossCap)
	}
	if c.PossessionDominance < 0 || c.CounterEfficiency < 0 || c.CounterCap < 0 {
		return fmt.Errorf("counter rule parameters must be non-negative")
	}
	if c.DominanceScale <= 0 {
		return fmt.Errorf("dominance_scale must be positive, got: %f", c.DominanceScale)
	}
	if c.MaxGoalsModeled < 3 {
		return fmt.Errorf("max_goals_modeled should be at least 3 to capture realistic scores, got: %d", c.MaxGoalsModeled)
	}
	if c.TopScorelines < 1 {
		return fmt.Errorf("top_scorelines must be at least 1, got: %d", c.TopScorelines)
	}
	if c.VisibilityWindowHours <= 0 {
		return fmt.Errorf("visibility_window_hours must be positive, got: %f", c.VisibilityWindowHours)
	}
	return nil
}
