package xr

import (
	"time"
)

// baseKickoff anchors every test fixture so assertions on form windows
// and visibility are reproducible
var baseKickoff = time.Date(2025, 9, 6, 15, 0, 0, 0, time.UTC)

// playedMatch builds a completed fixture with a full stat line. Stats
// are deliberately asymmetric so perspective bugs (home stats credited
// to the away side) show up immediately.
func playedMatch(id string, kickoff time.Time, home, away string, homeGoals, awayGoals int) *MatchRecord {
	m := NewMatchRecord()
	m.ID = id
	m.UTCTime = kickoff
	m.Season = "2025/2026"
	m.HomeID = home
	m.HomeTeamName = home
	m.AwayID = away
	m.AwayTeamName = away
	m.HomeGoals = homeGoals
	m.AwayGoals = awayGoals

	m.HomeXG = 1.5
	m.AwayXG = 1.1
	m.HomeShots = 14
	m.AwayShots = 9
	m.HomeShotsOnTarget = 5
	m.AwayShotsOnTarget = 3
	m.HomeCards = 2
	m.AwayCards = 3
	m.HomePossession = 55
	m.AwayPossession = 45
	m.HomePassCompletion = 84
	m.AwayPassCompletion = 79
	m.HomeCrosses = 16
	m.AwayCrosses = 12
	m.HomeCorners = 6
	m.AwayCorners = 4
	m.HomePressures = 130
	m.AwayPressures = 145
	m.HomeTacklesFinalThird = 8
	m.AwayTacklesFinalThird = 5
	m.HomeInterceptions = 10
	m.AwayInterceptions = 12
	return m
}

// upcomingMatch builds a scheduled fixture with no result or stats
func upcomingMatch(id string, kickoff time.Time, home, away string) *MatchRecord {
	m := NewMatchRecord()
	m.ID = id
	m.UTCTime = kickoff
	m.Season = "2025/2026"
	m.HomeID = home
	m.HomeTeamName = home
	m.AwayID = away
	m.AwayTeamName = away
	return m
}

// formWith builds a TeamForm with only the fields a matchup rule reads,
// everything else neutral
func formWith(teamID string, mutate func(*TeamForm)) *TeamForm {
	f := NeutralTeamForm(teamID)
	f.Matches = 5
	f.PassCompletionPct = 82
	if mutate != nil {
		mutate(f)
	}
	return f
}

// quietLeague is a baseline where no matchup rule can fire from the
// default formWith profile
func quietLeague() *LeagueAverages {
	return &LeagueAverages{
		Appearances:       20,
		XG:                1.3,
		Goals:             1.4,
		Shots:             12,
		ShotsOnTarget:     4,
		Crosses:           15,
		Corners:           5,
		Pressures:         120,
		TacklesFinalThird: 7,
		Interceptions:     9,
		Cards:             2,
		PassCompletionPct: 81,
		PossessionPct:     50,
	}
}
