package xr

// LeagueAverages holds the mean per-appearance rate for each tracked
// stat, computed once per run over every played match in the history
// (each match contributes two appearances). A zero average means
// "baseline unavailable" and is never used as a divisor; ratio() treats
// it as neutral.
type LeagueAverages struct {
	Appearances int `json:"appearances"`

	XG                float64 `json:"xg"`
	Goals             float64 `json:"goals"`
	Shots             float64 `json:"shots"`
	ShotsOnTarget     float64 `json:"shotsOnTarget"`
	Crosses           float64 `json:"crosses"`
	Corners           float64 `json:"corners"`
	Pressures         float64 `json:"pressures"`
	TacklesFinalThird float64 `json:"tacklesFinalThird"`
	Interceptions     float64 `json:"interceptions"`
	Cards             float64 `json:"cards"`
	PassCompletionPct float64 `json:"passCompletionPct"`
	PossessionPct     float64 `json:"possessionPct"`
}

// ComputeLeagueAverages computes the league baseline over all played
// matches. An empty history returns all-zero averages; downstream
// ratios fall back to neutral rather than dividing by zero.
func ComputeLeagueAverages(history []*MatchRecord) *LeagueAverages {
	avg := &LeagueAverages{}

	for _, m := range history {
		if !m.HasBeenPlayed() {
			continue
		}
		// home appearance
		avg.Appearances++
		avg.XG += statValueF(m.HomeXG)
		avg.Goals += statValue(m.HomeGoals)
		avg.Shots += statValue(m.HomeShots)
		avg.ShotsOnTarget += statValue(m.HomeShotsOnTarget)
		avg.Crosses += statValue(m.HomeCrosses)
		avg.Corners += statValue(m.HomeCorners)
		avg.Pressures += statValue(m.HomePressures)
		avg.TacklesFinalThird += statValue(m.HomeTacklesFinalThird)
		avg.Interceptions += statValue(m.HomeInterceptions)
		avg.Cards += statValue(m.HomeCards)
		avg.PassCompletionPct += statValueF(m.HomePassCompletion)
		avg.PossessionPct += possessionValue(m.HomePossession)

		// away appearance
		avg.Appearances++
		avg.XG += statValueF(m.AwayXG)
		avg.Goals += statValue(m.AwayGoals)
		avg.Shots += statValue(m.AwayShots)
		avg.ShotsOnTarget += statValue(m.AwayShotsOnTarget)
		avg.Crosses += statValue(m.AwayCrosses)
		avg.Corners += statValue(m.AwayCorners)
		avg.Pressures += statValue(m.AwayPressures)
		avg.TacklesFinalThird += statValue(m.AwayTacklesFinalThird)
		avg.Interceptions += statValue(m.AwayInterceptions)
		avg.Cards += statValue(m.AwayCards)
		avg.PassCompletionPct += statValueF(m.AwayPassCompletion)
		avg.PossessionPct += possessionValue(m.AwayPossession)
	}

	if avg.Appearances == 0 {
		return avg
	}

	n := float64(avg.Appearances)
	avg.XG /= n
	avg.Goals /= n
	avg.Shots /= n
	avg.ShotsOnTarget /= n
	avg.Crosses /= n
	avg.Corners /= n
	avg.Pressures /= n
	avg.TacklesFinalThird /= n
	avg.Interceptions /= n
	avg.Cards /= n
	avg.PassCompletionPct /= n
	avg.PossessionPct /= n

	return avg
}
