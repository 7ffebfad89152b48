package xr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Worked matchup: a pressing, crossing home side against a sloppy
// opponent. Every applied rule and the final xG pair are checked.
func TestBuildMatchupXGWorkedMatchup(t *testing.T) {
	cfg := DefaultConfig()
	league := quietLeague() // XG baseline 1.3

	home := formWith("arsenal", func(f *TeamForm) {
		f.XGFor = 1.8
		f.XGAgainst = 1.0
		f.PressuresFor = 150
		f.CrossesFor = 23
		f.PassCompletionPct = 85
		f.PossessionPct = 52
		f.TacklesFinalThirdFor = 12
		f.InterceptionsFor = 8
	})
	away := formWith("spurs", func(f *TeamForm) {
		f.XGFor = 1.1
		f.XGAgainst = 0.9
		f.PressuresFor = 100
		f.CrossesFor = 10
		f.PassCompletionPct = 76
		f.PossessionPct = 48
		f.TacklesFinalThirdFor = 6
		f.InterceptionsFor = 5
	})

	result := BuildMatchupXG(home, away, league, cfg)

	// base = 0.6*(1.8/1.3) + 0.4*(1 - 0.9/1.3)
	assert.InDelta(t, 0.9538461538, result.BaseXGHome, 1e-9)
	assert.InDelta(t, 0.6, result.BaseXGAway, 1e-9)

	// press (85-76)*0.02, crossing (23-18)*0.01, home advantage
	require.Len(t, result.Adjustments, 3)

	press := result.Adjustments[0]
	assert.Equal(t, "press vs pass completion", press.Name)
	assert.Equal(t, "home", press.Side)
	assert.InDelta(t, 0.18, press.Magnitude, 1e-9)

	crossing := result.Adjustments[1]
	assert.Equal(t, "crossing vs box defense", crossing.Name)
	assert.Equal(t, "home", crossing.Side)
	assert.InDelta(t, 0.05, crossing.Magnitude, 1e-9)

	homeAdv := result.Adjustments[2]
	assert.Equal(t, "home advantage", homeAdv.Name)
	assert.Equal(t, "home", homeAdv.Side)
	assert.InDelta(t, 0.3, homeAdv.Magnitude, 1e-9)

	assert.InDelta(t, result.BaseXGHome+0.18+0.05+0.3, result.XGHome, 1e-9)
	assert.InDelta(t, 0.6, result.XGAway, 1e-9)
}

func TestBuildMatchupXGNeutralBaselineFallback(t *testing.T) {
	cfg := DefaultConfig()
	league := &LeagueAverages{} // no baseline available

	home := formWith("arsenal", func(f *TeamForm) { f.XGFor = 1.8 })
	away := formWith("spurs", func(f *TeamForm) { f.XGFor = 1.1 })

	result := BuildMatchupXG(home, away, league, cfg)

	// Both ratios fall back to 1.0: base = 0.6*1 + 0.4*(1-1)
	assert.InDelta(t, 0.6, result.BaseXGHome, 1e-9)
	assert.InDelta(t, 0.6, result.BaseXGAway, 1e-9)
}

func TestBuildMatchupXGClampBounds(t *testing.T) {
	cfg := DefaultConfig()
	league := quietLeague()

	monster := formWith("city", func(f *TeamForm) {
		f.XGFor = 20
		f.XGAgainst = 2.6
	})
	hapless := formWith("strugglers", func(f *TeamForm) {
		f.XGFor = 0
		f.XGAgainst = 2.6
	})

	result := BuildMatchupXG(monster, hapless, league, cfg)

	assert.Equal(t, cfg.MaxXG, result.XGHome)
	// away base 0.6*0 + 0.4*(1 - 2.6/1.3) is negative before clamping
	assert.Equal(t, cfg.MinXG, result.XGAway)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.2, clamp(-1.0, 0.2, 3.5))
	assert.Equal(t, 3.5, clamp(9.9, 0.2, 3.5))
	assert.Equal(t, 1.4, clamp(1.4, 0.2, 3.5))
	assert.Equal(t, 0.2, clamp(0.2, 0.2, 3.5))
	assert.Equal(t, 3.5, clamp(3.5, 0.2, 3.5))
}

func TestPressAdjustmentGates(t *testing.T) {
	cfg := DefaultConfig()

	press := func(pressures, oppPct float64) (MatchupAdjustment, bool) {
		team := formWith("a", func(f *TeamForm) { f.PressuresFor = pressures })
		opp := formWith("b", func(f *TeamForm) { f.PassCompletionPct = oppPct })
		return pressAdjustment(team, opp, "home", cfg)
	}

	// Qualifying pair fires
	adj, ok := press(150, 76)
	require.True(t, ok)
	assert.InDelta(t, 0.18, adj.Magnitude, 1e-9)

	// Threshold boundaries do not fire
	_, ok = press(140, 76)
	assert.False(t, ok)
	_, ok = press(150, 78)
	assert.False(t, ok)

	// An unknown completion rate never reads as exploitable
	_, ok = press(150, 0)
	assert.False(t, ok)

	// Deep shortfalls hit the cap
	adj, ok = press(150, 60)
	require.True(t, ok)
	assert.Equal(t, cfg.PressCap, adj.Magnitude)
}

func TestCrossingAdjustmentGates(t *testing.T) {
	cfg := DefaultConfig()

	crossing := func(crosses, tackles, interceptions float64) (MatchupAdjustment, bool) {
		team := formWith("a", func(f *TeamForm) { f.CrossesFor = crosses })
		opp := formWith("b", func(f *TeamForm) {
			f.TacklesFinalThirdFor = tackles
			f.InterceptionsFor = interceptions
		})
		return crossingAdjustment(team, opp, "away", cfg)
	}

	adj, ok := crossing(23, 6, 5)
	require.True(t, ok)
	assert.Equal(t, "away", adj.Side)
	assert.InDelta(t, 0.05, adj.Magnitude, 1e-9)

	// Enough bodies in the box nullifies the crossing threat
	_, ok = crossing(23, 10, 5)
	assert.False(t, ok)

	// Volume below the threshold does not qualify
	_, ok = crossing(18, 6, 5)
	assert.False(t, ok)

	// Extreme volume hits the cap
	adj, ok = crossing(60, 6, 5)
	require.True(t, ok)
	assert.Equal(t, cfg.CrossCap, adj.Magnitude)
}

func TestCounterAdjustmentBenefitsDisadvantagedSide(t *testing.T) {
	cfg := DefaultConfig()

	dominant := formWith("city", func(f *TeamForm) { f.PossessionPct = 65 })
	counterPuncher := formWith("underdogs", func(f *TeamForm) {
		f.PossessionPct = 35
		f.XGFor = 2.0
		f.ShotsFor = 10 // 0.2 xG per shot
	})

	adj, ok := counterAdjustment(dominant, counterPuncher, cfg)
	require.True(t, ok)
	assert.Equal(t, "away", adj.Side)
	assert.Equal(t, cfg.CounterCap, adj.Magnitude)

	// Same shape the other way round credits the home side
	adj, ok = counterAdjustment(counterPuncher, dominant, cfg)
	require.True(t, ok)
	assert.Equal(t, "home", adj.Side)
}

func TestCounterAdjustmentRequiresEfficiency(t *testing.T) {
	cfg := DefaultConfig()

	dominant := formWith("city", func(f *TeamForm) { f.PossessionPct = 65 })
	blunt := formWith("underdogs", func(f *TeamForm) {
		f.PossessionPct = 35
		f.XGFor = 1.0
		f.ShotsFor = 10 // 0.1 xG per shot, not a threat
	})

	_, ok := counterAdjustment(dominant, blunt, cfg)
	assert.False(t, ok)
}

func TestBuildMatchupXGMonotoneInAttack(t *testing.T) {
	cfg := DefaultConfig()
	league := quietLeague()

	// Sweep the home attacking rate upward with everything else fixed;
	// the predicted home xG must never drop. The profile is chosen so
	// the sweep crosses rule gates and both clamp bounds.
	away := formWith("spurs", func(f *TeamForm) {
		f.XGFor = 1.1
		f.XGAgainst = 2.0
		f.PassCompletionPct = 76
		f.PossessionPct = 65
		f.TacklesFinalThirdFor = 6
		f.InterceptionsFor = 5
	})

	prev := -1.0
	for xgFor := 0.0; xgFor <= 8.0; xgFor += 0.05 {
		home := formWith("arsenal", func(f *TeamForm) {
			f.XGFor = xgFor
			f.ShotsFor = 10
			f.PressuresFor = 150
			f.CrossesFor = 23
			f.PossessionPct = 35
		})

		result := BuildMatchupXG(home, away, league, cfg)
		assert.GreaterOrEqual(t, result.XGHome, prev, "xG must not drop at xgFor=%.2f", xgFor)
		prev = result.XGHome
	}
}

func TestAdjustmentsSkipNeutralForms(t *testing.T) {
	cfg := DefaultConfig()
	league := quietLeague()

	home := NeutralTeamForm("arsenal")
	away := NeutralTeamForm("spurs")

	result := BuildMatchupXG(home, away, league, cfg)

	// Only the fixed home advantage applies without a form sample
	require.Len(t, result.Adjustments, 1)
	assert.Equal(t, "home advantage", result.Adjustments[0].Name)
}
