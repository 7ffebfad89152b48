package xr

import (
	"math"
	"sort"
	"time"
)

// TeamForm is a team's recency-weighted statistical profile over its
// most recent matches before some cutoff. Every rate is a weighted
// per-match value; "for" is the side the team played on, "against" the
// opposing side.
type TeamForm struct {
	TeamID  string `json:"teamId"`
	Matches int    `json:"matches"` // sample size n, 0..FormWindow

	XGFor     float64 `json:"xgFor"`
	XGAgainst float64 `json:"xgAgainst"`

	GoalsFor     float64 `json:"goalsFor"`
	GoalsAgainst float64 `json:"goalsAgainst"`

	ShotsFor     float64 `json:"shotsFor"`
	ShotsAgainst float64 `json:"shotsAgainst"`

	ShotsOnTargetFor     float64 `json:"shotsOnTargetFor"`
	ShotsOnTargetAgainst float64 `json:"shotsOnTargetAgainst"`

	CrossesFor     float64 `json:"crossesFor"`
	CrossesAgainst float64 `json:"crossesAgainst"`

	CornersFor     float64 `json:"cornersFor"`
	CornersAgainst float64 `json:"cornersAgainst"`

	PressuresFor     float64 `json:"pressuresFor"`
	PressuresAgainst float64 `json:"pressuresAgainst"`

	TacklesFinalThirdFor     float64 `json:"tacklesFinalThirdFor"`
	TacklesFinalThirdAgainst float64 `json:"tacklesFinalThirdAgainst"`

	InterceptionsFor     float64 `json:"interceptionsFor"`
	InterceptionsAgainst float64 `json:"interceptionsAgainst"`

	CardsFor     float64 `json:"cardsFor"`
	CardsAgainst float64 `json:"cardsAgainst"`

	PossessionPct     float64 `json:"possessionPct"`
	PassCompletionPct float64 `json:"passCompletionPct"`
}

// NeutralTeamForm is the n=0 profile: a defined neutral value for every
// rate so no caller ever divides by the sample size
func NeutralTeamForm(teamID string) *TeamForm {
	return &TeamForm{
		TeamID:        teamID,
		Matches:       0,
		PossessionPct: 50.0,
	}
}

// XGPerShot is the team's attacking efficiency, guarded for tiny shot
// samples where the ratio is meaningless
func (f *TeamForm) XGPerShot() float64 {
	if f.ShotsFor < 1 {
		return 0.1
	}
	return f.XGFor / f.ShotsFor
}

// BoxDefenseActions is the final-third defensive presence used by the
// crossing adjustment rule
func (f *TeamForm) BoxDefenseActions() float64 {
	return f.TacklesFinalThirdFor + f.InterceptionsFor
}

// exponentialWeights returns weights for n matches ordered newest first,
// where weight k = base^k / sum and base = 0.5^(1/halflife). The
// weights sum to 1.
func exponentialWeights(n, halflife int) []float64 {
	if n <= 0 {
		return nil
	}
	base := math.Pow(0.5, 1.0/float64(halflife))
	weights := make([]float64, n)
	sum := 0.0
	for k := 0; k < n; k++ {
		weights[k] = math.Pow(base, float64(k))
		sum += weights[k]
	}
	for k := range weights {
		weights[k] /= sum
	}
	return weights
}

// statValue converts a count field to its weighted-sum contribution: a
// missing value contributes 0 without shrinking the denominator. This
// understates form for sparsely covered teams, which mirrors how the
// feed has always been treated.
func statValue(v int) float64 {
	if v < 0 {
		return 0
	}
	return float64(v)
}

func statValueF(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

// possessionValue treats a missing possession share as an even 50
func possessionValue(v float64) float64 {
	if v < 0 {
		return 50.0
	}
	return v
}

// ComputeTeamForm aggregates the most recent played matches for a team
// strictly before the cutoff into a weighted per-match profile. Fewer
// than FormWindow matches uses all of them; zero matches returns the
// neutral profile.
func ComputeTeamForm(history []*MatchRecord, teamID string, cutoff time.Time, cfg *Config) *TeamForm {
	var recent []*MatchRecord
	for _, m := range history {
		if m.Involves(teamID) && m.HasBeenPlayed() && m.UTCTime.Before(cutoff) {
			recent = append(recent, m)
		}
	}

	// Most recent first, window applied after the sort
	sort.Slice(recent, func(i, j int) bool {
		if !recent[i].UTCTime.Equal(recent[j].UTCTime) {
			return recent[i].UTCTime.After(recent[j].UTCTime)
		}
		return recent[i].ID < recent[j].ID
	})
	if len(recent) > cfg.FormWindow {
		recent = recent[:cfg.FormWindow]
	}

	if len(recent) == 0 {
		return NeutralTeamForm(teamID)
	}

	form := &TeamForm{TeamID: teamID, Matches: len(recent)}
	weights := exponentialWeights(len(recent), cfg.FormHalfLife)

	for k, m := range recent {
		w := weights[k]
		home := m.HomeID == teamID

		if home {
			form.XGFor += w * statValueF(m.HomeXG)
			form.XGAgainst += w * statValueF(m.AwayXG)
			form.GoalsFor += w * statValue(m.HomeGoals)
			form.GoalsAgainst += w * statValue(m.AwayGoals)
			form.ShotsFor += w * statValue(m.HomeShots)
			form.ShotsAgainst += w * statValue(m.AwayShots)
			form.ShotsOnTargetFor += w * statValue(m.HomeShotsOnTarget)
			form.ShotsOnTargetAgainst += w * statValue(m.AwayShotsOnTarget)
			form.CrossesFor += w * statValue(m.HomeCrosses)
			form.CrossesAgainst += w * statValue(m.AwayCrosses)
			form.CornersFor += w * statValue(m.HomeCorners)
			form.CornersAgainst += w * statValue(m.AwayCorners)
			form.PressuresFor += w * statValue(m.HomePressures)
			form.PressuresAgainst += w * statValue(m.AwayPressures)
			form.TacklesFinalThirdFor += w * statValue(m.HomeTacklesFinalThird)
			form.TacklesFinalThirdAgainst += w * statValue(m.AwayTacklesFinalThird)
			form.InterceptionsFor += w * statValue(m.HomeInterceptions)
			form.InterceptionsAgainst += w * statValue(m.AwayInterceptions)
			form.CardsFor += w * statValue(m.HomeCards)
			form.CardsAgainst += w * statValue(m.AwayCards)
			form.PossessionPct += w * possessionValue(m.HomePossession)
			form.PassCompletionPct += w * statValueF(m.HomePassCompletion)
		} else {
			form.XGFor += w * statValueF(m.AwayXG)
			form.XGAgainst += w * statValueF(m.HomeXG)
			form.GoalsFor += w * statValue(m.AwayGoals)
			form.GoalsAgainst += w * statValue(m.HomeGoals)
			form.ShotsFor += w * statValue(m.AwayShots)
			form.ShotsAgainst += w * statValue(m.HomeShots)
			form.ShotsOnTargetFor += w * statValue(m.AwayShotsOnTarget)
			form.ShotsOnTargetAgainst += w * statValue(m.HomeShotsOnTarget)
			form.CrossesFor += w * statValue(m.AwayCrosses)
			form.CrossesAgainst += w * statValue(m.HomeCrosses)
			form.CornersFor += w * statValue(m.AwayCorners)
			form.CornersAgainst += w * statValue(m.HomeCorners)
			form.PressuresFor += w * statValue(m.AwayPressures)
			form.PressuresAgainst += w * statValue(m.HomePressures)
			form.TacklesFinalThirdFor += w * statValue(m.AwayTacklesFinalThird)
			form.TacklesFinalThirdAgainst += w * statValue(m.HomeTacklesFinalThird)
			form.InterceptionsFor += w * statValue(m.AwayInterceptions)
			form.InterceptionsAgainst += w * statValue(m.HomeInterceptions)
			form.CardsFor += w * statValue(m.AwayCards)
			form.CardsAgainst += w * statValue(m.HomeCards)
			form.PossessionPct += w * possessionValue(m.AwayPossession)
			form.PassCompletionPct += w * statValueF(m.AwayPassCompletion)
		}
	}

	return form
}
