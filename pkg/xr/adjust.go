package xr

import (
	"math"
)

// MatchupAdjustment is one applied heuristic rule: its name, the signed
// xG it added (always reported against the side it benefits), and the
// raw inputs that produced it so a reader can see why it fired.
type MatchupAdjustment struct {
	Name      string             `json:"name"`
	Side      string             `json:"side"` // "home" or "away"
	Magnitude float64            `json:"magnitude"`
	Inputs    map[string]float64 `json:"inputs,omitempty"`
}

// MatchupResult is the adjusted expected-goal pair for one fixture
type MatchupResult struct {
	BaseXGHome  float64             `json:"baseXgHome"`
	BaseXGAway  float64             `json:"baseXgAway"`
	XGHome      float64             `json:"xgHome"`
	XGAway      float64             `json:"xgAway"`
	Adjustments []MatchupAdjustment `json:"adjustments"`
}

// ratio divides a rate by its league baseline, falling back to neutral
// (1.0) when the baseline is unavailable or either operand is invalid
func ratio(x, baseline float64) float64 {
	if baseline <= 0 || x < 0 || math.IsNaN(x) || math.IsNaN(baseline) {
		return 1.0
	}
	return x / baseline
}

// clamp bounds a predicted xG so noisy small-sample inputs cannot
// produce degenerate Poisson tails
func clamp(xg, lo, hi float64) float64 {
	if xg < lo {
		return lo
	}
	if xg > hi {
		return hi
	}
	return xg
}

// baseExpectedGoals blends the attacking side's attack ratio with the
// defending side's leakiness, both measured against the league baseline
func baseExpectedGoals(attack, opponentAgainst float64, league *LeagueAverages, cfg *Config) float64 {
	attackRatio := ratio(attack, league.XG)
	defenseRatio := ratio(opponentAgainst, league.XG)
	return cfg.AttackWeight*attackRatio + cfg.DefenseWeight*(1-defenseRatio)
}

// BuildMatchupXG combines two form profiles and the league baseline into
// base and adjusted expected goals plus the ordered adjustment list.
//
// Every rule reads raw form inputs rather than the running xG total, so
// the rules are independent and their order never changes the result.
func BuildMatchupXG(homeForm, awayForm *TeamForm, league *LeagueAverages, cfg *Config) *MatchupResult {
	result := &MatchupResult{
		BaseXGHome:  baseExpectedGoals(homeForm.XGFor, awayForm.XGAgainst, league, cfg),
		BaseXGAway:  baseExpectedGoals(awayForm.XGFor, homeForm.XGAgainst, league, cfg),
		Adjustments: []MatchupAdjustment{},
	}

	homeXG := result.BaseXGHome
	awayXG := result.BaseXGAway

	apply := func(adj MatchupAdjustment) {
		if adj.Side == "home" {
			homeXG += adj.Magnitude
		} else {
			awayXG += adj.Magnitude
		}
		result.Adjustments = append(result.Adjustments, adj)
	}

	// Press vs pass-completion, both directions
	if adj, ok := pressAdjustment(homeForm, awayForm, "home", cfg); ok {
		apply(adj)
	}
	if adj, ok := pressAdjustment(awayForm, homeForm, "away", cfg); ok {
		apply(adj)
	}

	// Cross volume vs weak box defence, both directions
	if adj, ok := crossingAdjustment(homeForm, awayForm, "home", cfg); ok {
		apply(adj)
	}
	if adj, ok := crossingAdjustment(awayForm, homeForm, "away", cfg); ok {
		apply(adj)
	}

	// Possession dominance exposes the dominant side to counters
	if adj, ok := counterAdjustment(homeForm, awayForm, cfg); ok {
		apply(adj)
	}

	// Fixed home advantage
	apply(MatchupAdjustment{
		Name:      "home advantage",
		Side:      "home",
		Magnitude: cfg.HomeAdvantage,
	})

	result.XGHome = clamp(homeXG, cfg.MinXG, cfg.MaxXG)
	result.XGAway = clamp(awayXG, cfg.MinXG, cfg.MaxXG)

	return result
}

// pressAdjustment rewards a high-press side facing an opponent that
// struggles to complete passes: the deeper the opponent sits under the
// reference completion rate, the more turnovers the press converts
func pressAdjustment(team, opponent *TeamForm, side string, cfg *Config) (MatchupAdjustment, bool) {
	if team.Matches == 0 || opponent.Matches == 0 {
		return MatchupAdjustment{}, false
	}
	if team.PressuresFor <= cfg.PressRateThreshold {
		return MatchupAdjustment{}, false
	}
	if opponent.PassCompletionPct <= 0 || opponent.PassCompletionPct >= cfg.PassCompletionThreshold {
		return MatchupAdjustment{}, false
	}

	magnitude := math.Min(cfg.PressCap, (cfg.PassCompletionUpper-opponent.PassCompletionPct)*cfg.PressSlope)
	if magnitude <= 0 {
		return MatchupAdjustment{}, false
	}

	return MatchupAdjustment{
		Name:      "press vs pass completion",
		Side:      side,
		Magnitude: magnitude,
		Inputs: map[string]float64{
			"pressures":         team.PressuresFor,
			"opponent_pass_pct": opponent.PassCompletionPct,
		},
	}, true
}

// crossingAdjustment rewards a high-volume crossing side against an
// opponent with little final-third defensive presence
func crossingAdjustment(team, opponent *TeamForm, side string, cfg *Config) (MatchupAdjustment, bool) {
	if team.Matches == 0 || opponent.Matches == 0 {
		return MatchupAdjustment{}, false
	}
	if team.CrossesFor <= cfg.CrossRateThreshold {
		return MatchupAdjustment{}, false
	}
	if opponent.BoxDefenseActions() >= cfg.BoxDefenseThreshold {
		return MatchupAdjustment{}, false
	}

	magnitude := math.Min(cfg.CrossCap, (team.CrossesFor-cfg.CrossRateThreshold)*cfg.CrossSlope)
	if magnitude <= 0 {
		return MatchupAdjustment{}, false
	}

	return MatchupAdjustment{
		Name:      "crossing vs box defense",
		Side:      side,
		Magnitude: magnitude,
		Inputs: map[string]float64{
			"crosses":              team.CrossesFor,
			"opponent_box_defense": opponent.BoxDefenseActions(),
		},
	}, true
}

// counterAdjustment: when one side dominates the ball, an efficient
// opponent gets extra xG from counter-attacks. The benefit goes to the
// possession-disadvantaged side.
func counterAdjustment(homeForm, awayForm *TeamForm, cfg *Config) (MatchupAdjustment, bool) {
	if homeForm.Matches == 0 || awayForm.Matches == 0 {
		return MatchupAdjustment{}, false
	}

	gap := homeForm.PossessionPct - awayForm.PossessionPct
	if math.Abs(gap) <= cfg.PossessionDominance {
		return MatchupAdjustment{}, false
	}

	// the side without the ball is the counter threat
	counter := awayForm
	side := "away"
	if gap < 0 {
		counter = homeForm
		side = "home"
	}

	efficiency := counter.XGPerShot()
	if efficiency <= cfg.CounterEfficiency {
		return MatchupAdjustment{}, false
	}

	magnitude := math.Min(cfg.CounterCap, (math.Abs(gap)/cfg.DominanceScale)*efficiency)
	if magnitude <= 0 {
		return MatchupAdjustment{}, false
	}

	return MatchupAdjustment{
		Name:      "counter threat vs possession dominance",
		Side:      side,
		Magnitude: magnitude,
		Inputs: map[string]float64{
			"possession_gap": math.Abs(gap),
			"xg_per_shot":    efficiency,
		},
	}, true
}
