package xr

import (
	"fmt"
	"sort"
	"time"

	"github.com/formlab/xresult/internal/logger"
)

// Compile-time check to ensure Prediction implements Persistable
var _ Persistable = (*Prediction)(nil)

// Prediction is the full engine output for one fixture. Probability
// fields default to -1.0 and actual goals to -1 so a consumer can
// always tell a computed zero from a value that was never produced.
type Prediction struct {
	FixtureID    string    `json:"fixtureId" column:"fixture_id" dbtype:"TEXT" primary:"true" index:"true"`
	KickoffUTC   time.Time `json:"kickoffUtc" column:"kickoff_utc" dbtype:"DATETIME" index:"true"`
	Season       string    `json:"season" column:"season" dbtype:"TEXT" index:"true"`
	HomeID       string    `json:"homeId" column:"home_id" dbtype:"TEXT NOT NULL" index:"true"`
	AwayID       string    `json:"awayId" column:"away_id" dbtype:"TEXT NOT NULL" index:"true"`
	HomeTeamName string    `json:"homeTeamName" column:"home_team_name" dbtype:"TEXT"`
	AwayTeamName string    `json:"awayTeamName" column:"away_team_name" dbtype:"TEXT"`

	// Form snapshots and adjustments travel in JSON output only; the
	// flat metrics below are what the database keeps
	HomeForm    *TeamForm           `json:"homeForm,omitempty"`
	AwayForm    *TeamForm           `json:"awayForm,omitempty"`
	Adjustments []MatchupAdjustment `json:"adjustments,omitempty"`

	BaseXGHome float64 `json:"baseXgHome" column:"base_xg_home" dbtype:"REAL DEFAULT -1.0"`
	BaseXGAway float64 `json:"baseXgAway" column:"base_xg_away" dbtype:"REAL DEFAULT -1.0"`
	XGHome     float64 `json:"xgHome" column:"xg_home" dbtype:"REAL DEFAULT -1.0"`
	XGAway     float64 `json:"xgAway" column:"xg_away" dbtype:"REAL DEFAULT -1.0"`

	HomeWinPct float64 `json:"homeWinPct" column:"home_win_pct" dbtype:"REAL DEFAULT -1.0"`
	DrawPct    float64 `json:"drawPct" column:"draw_pct" dbtype:"REAL DEFAULT -1.0"`
	AwayWinPct float64 `json:"awayWinPct" column:"away_win_pct" dbtype:"REAL DEFAULT -1.0"`

	XPtsHome float64 `json:"xptsHome" column:"xpts_home" dbtype:"REAL DEFAULT -1.0"`
	XPtsAway float64 `json:"xptsAway" column:"xpts_away" dbtype:"REAL DEFAULT -1.0"`

	MostLikelyHomeGoals int `json:"mostLikelyHomeGoals" column:"most_likely_home_goals" dbtype:"INTEGER DEFAULT -1"`
	MostLikelyAwayGoals int `json:"mostLikelyAwayGoals" column:"most_likely_away_goals" dbtype:"INTEGER DEFAULT -1"`

	TopScorelines []ScorelineProb `json:"topScorelines,omitempty"`

	HoursUntilKickoff float64 `json:"hoursUntilKickoff" column:"hours_until_kickoff" dbtype:"REAL DEFAULT 0.0"`
	ShowPrediction    bool    `json:"showPrediction" column:"show_prediction" dbtype:"INTEGER DEFAULT 0"`

	// Populated from the completed record by identity match; never an
	// input to the computation for this fixture
	ActualHomeGoals int `json:"actualHomeGoals" column:"actual_home_goals" dbtype:"INTEGER DEFAULT -1"`
	ActualAwayGoals int `json:"actualAwayGoals" column:"actual_away_goals" dbtype:"INTEGER DEFAULT -1"`

	CreatedAt time.Time `json:"createdAt" column:"created_at" dbtype:"DATETIME DEFAULT CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `json:"updatedAt" column:"updated_at" dbtype:"DATETIME DEFAULT CURRENT_TIMESTAMP"`
}

/////////////////////////////////////////////////////////////////////////
////// Persistable Interface Implementation
/////////////////////////////////////////////////////////////////////////

// GetPrimaryKey returns the primary key as a map
func (p *Prediction) GetPrimaryKey() map[string]any {
	return map[string]any{
		"fixture_id": p.FixtureID,
	}
}

// SetPrimaryKey sets the primary key from a map
func (p *Prediction) SetPrimaryKey(pk map[string]any) error {
	if id, ok := pk["fixture_id"]; ok {
		if idStr, ok := id.(string); ok {
			p.FixtureID = idStr
			return nil
		}
		return fmt.Errorf("primary key 'fixture_id' must be a string")
	}
	return fmt.Errorf("primary key 'fixture_id' not found")
}

// GetTableName returns the table name for predictions
func (p *Prediction) GetTableName() string {
	return "prediction"
}

// BeforeSave stamps the record timestamps
func (p *Prediction) BeforeSave() error {
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	return nil
}

// AfterSave is called after saving
func (p *Prediction) AfterSave() error {
	return nil
}

/////////////////////////////////////////////////////////////////////////
////// Prediction Assembler
/////////////////////////////////////////////////////////////////////////

// Predictor runs the whole pipeline over a match history. It holds no
// state between runs; identical history, config and reference time
// always produce identical output.
type Predictor struct {
	cfg *Config
}

// NewPredictor returns a Predictor for the given configuration,
// substituting defaults when cfg is nil
func NewPredictor(cfg *Config) *Predictor {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Predictor{cfg: cfg}
}

// Run computes a Prediction for every fixture in the history. Each
// fixture sees only matches strictly before its own kickoff; the
// reference time `now` drives the visibility gate only. The only
// batch-fatal conditions are structurally invalid input and a roster
// mismatch; per-fixture data gaps recover through the documented
// fallbacks.
func (pr *Predictor) Run(history []*MatchRecord, now time.Time) ([]*Prediction, error) {
	if history == nil {
		return nil, &MalformedInputError{Reason: "history collection is nil"}
	}
	for _, m := range history {
		if m == nil {
			return nil, &MalformedInputError{Reason: "history contains a nil record"}
		}
		if err := m.Validate(); err != nil {
			return nil, err
		}
	}

	if len(pr.cfg.ExpectedTeams) > 0 {
		if err := ValidateRoster(history, pr.cfg.ExpectedTeams); err != nil {
			return nil, err
		}
	}

	league := ComputeLeagueAverages(history)
	logger.Debug("league baseline computed", "appearances", league.Appearances, "xg", league.XG)

	predictions := make([]*Prediction, 0, len(history))
	for _, fixture := range history {
		predictions = append(predictions, pr.predictFixture(fixture, history, league, now))
	}

	// Deterministic output order: kickoff, then fixture id
	sort.Slice(predictions, func(i, j int) bool {
		if !predictions[i].KickoffUTC.Equal(predictions[j].KickoffUTC) {
			return predictions[i].KickoffUTC.Before(predictions[j].KickoffUTC)
		}
		return predictions[i].FixtureID < predictions[j].FixtureID
	})

	logger.Info("prediction batch complete", "fixtures", len(predictions))
	return predictions, nil
}

// predictFixture assembles one Prediction: form strictly before the
// fixture, matchup xG, scoreline distribution, visibility gate, and the
// actual result once known
func (pr *Predictor) predictFixture(fixture *MatchRecord, history []*MatchRecord, league *LeagueAverages, now time.Time) *Prediction {
	homeForm := ComputeTeamForm(history, fixture.HomeID, fixture.UTCTime, pr.cfg)
	awayForm := ComputeTeamForm(history, fixture.AwayID, fixture.UTCTime, pr.cfg)

	matchup := BuildMatchupXG(homeForm, awayForm, league, pr.cfg)
	dist := ComputeScorelineDistribution(matchup.XGHome, matchup.XGAway, pr.cfg)

	hours := fixture.UTCTime.Sub(now).Hours()

	p := &Prediction{
		FixtureID:    fixture.ID,
		KickoffUTC:   fixture.UTCTime,
		Season:       fixture.Season,
		HomeID:       fixture.HomeID,
		AwayID:       fixture.AwayID,
		HomeTeamName: fixture.HomeTeamName,
		AwayTeamName: fixture.AwayTeamName,

		HomeForm:    homeForm,
		AwayForm:    awayForm,
		Adjustments: matchup.Adjustments,

		BaseXGHome: matchup.BaseXGHome,
		BaseXGAway: matchup.BaseXGAway,
		XGHome:     matchup.XGHome,
		XGAway:     matchup.XGAway,

		HomeWinPct: dist.HomeWinPct,
		DrawPct:    dist.DrawPct,
		AwayWinPct: dist.AwayWinPct,
		XPtsHome:   dist.XPtsHome,
		XPtsAway:   dist.XPtsAway,

		MostLikelyHomeGoals: dist.MostLikelyHomeGoals,
		MostLikelyAwayGoals: dist.MostLikelyAwayGoals,
		TopScorelines:       dist.TopScorelines,

		HoursUntilKickoff: hours,
		ShowPrediction:    hours > 0 && hours <= pr.cfg.VisibilityWindowHours,

		ActualHomeGoals: -1,
		ActualAwayGoals: -1,
	}

	if fixture.HasBeenPlayed() {
		p.ActualHomeGoals = fixture.HomeGoals
		p.ActualAwayGoals = fixture.AwayGoals
	}

	return p
}
