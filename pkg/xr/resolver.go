package xr

import (
	"encoding/json"
	"strconv"
	"time"
)

// Upstream feeds disagree on field names, so every field is extracted
// through an ordered alias list tried in sequence. The first alias
// present wins; a record with none of the aliases keeps the missing
// sentinel.

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// firstString returns the first alias present as a non-empty string
func firstString(data map[string]any, aliases ...string) (string, bool) {
	for _, key := range aliases {
		if raw, ok := data[key]; ok {
			if s, ok := raw.(string); ok && s != "" {
				return s, true
			}
		}
	}
	return "", false
}

// firstNumber returns the first alias present as a number, accepting
// JSON numbers and numeric strings
func firstNumber(data map[string]any, aliases ...string) (float64, bool) {
	for _, key := range aliases {
		raw, ok := data[key]
		if !ok || raw == nil {
			continue
		}
		switch v := raw.(type) {
		case float64:
			return v, true
		case int:
			return float64(v), true
		case string:
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return f, true
			}
		}
	}
	return 0, false
}

// firstTime returns the first alias parseable as a timestamp
func firstTime(data map[string]any, aliases ...string) (time.Time, bool) {
	s, ok := firstString(data, aliases...)
	if !ok {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// nestedTeam pulls id and name out of a nested team object like
// {"home": {"id": "...", "shortName": "..."}}
func nestedTeam(data map[string]any, key string) (id, name string, ok bool) {
	team, isMap := data[key].(map[string]any)
	if !isMap {
		return "", "", false
	}
	id, _ = firstString(team, "id", "teamId")
	name, _ = firstString(team, "shortName", "name")
	return id, name, id != "" || name != ""
}

func setInt(dst *int, data map[string]any, aliases ...string) {
	if v, ok := firstNumber(data, aliases...); ok {
		*dst = int(v)
	}
}

func setFloat(dst *float64, data map[string]any, aliases ...string) {
	if v, ok := firstNumber(data, aliases...); ok {
		*dst = v
	}
}

// ParseMatchRecord builds a MatchRecord from one decoded JSON object.
// Fields no alias matches stay at their missing sentinel.
func ParseMatchRecord(data map[string]any) *MatchRecord {
	m := NewMatchRecord()

	m.ID, _ = firstString(data, "id", "matchId", "match_id")
	m.Season, _ = firstString(data, "season")
	if t, ok := firstTime(data, "date", "utcTime", "kickoff", "datetime"); ok {
		m.UTCTime = t
	}

	// Team identity: nested objects first, then flat aliases. When a
	// feed has no separate id the name is the join key.
	if id, name, ok := nestedTeam(data, "home"); ok {
		m.HomeID, m.HomeTeamName = id, name
	} else {
		m.HomeTeamName, _ = firstString(data, "home", "homeTeam", "home_team", "homeTeamName")
		m.HomeID, _ = firstString(data, "homeId", "home_id")
	}
	if id, name, ok := nestedTeam(data, "away"); ok {
		m.AwayID, m.AwayTeamName = id, name
	} else {
		m.AwayTeamName, _ = firstString(data, "away", "awayTeam", "away_team", "awayTeamName")
		m.AwayID, _ = firstString(data, "awayId", "away_id")
	}
	if m.HomeID == "" {
		m.HomeID = m.HomeTeamName
	}
	if m.AwayID == "" {
		m.AwayID = m.AwayTeamName
	}
	if m.HomeTeamName == "" {
		m.HomeTeamName = m.HomeID
	}
	if m.AwayTeamName == "" {
		m.AwayTeamName = m.AwayID
	}

	setInt(&m.HomeGoals, data, "home_goals", "homeGoals", "actualHomeGoals")
	setInt(&m.AwayGoals, data, "away_goals", "awayGoals", "actualAwayGoals")

	setFloat(&m.HomeXG, data, "home_xg", "homeXg", "xg_home")
	setFloat(&m.AwayXG, data, "away_xg", "awayXg", "xg_away")

	setInt(&m.HomeShots, data, "home_shots", "homeShots", "shots_home")
	setInt(&m.AwayShots, data, "away_shots", "awayShots", "shots_away")
	setInt(&m.HomeShotsOnTarget, data, "home_sot", "homeShotsOnTarget", "home_shots_on_target")
	setInt(&m.AwayShotsOnTarget, data, "away_sot", "awayShotsOnTarget", "away_shots_on_target")

	setInt(&m.HomeCards, data, "home_cards", "homeCards", "home_yellow_cards")
	setInt(&m.AwayCards, data, "away_cards", "awayCards", "away_yellow_cards")

	setFloat(&m.HomePossession, data, "home_possession", "homePossession", "possession_home")
	setFloat(&m.AwayPossession, data, "away_possession", "awayPossession", "possession_away")
	// Possession is usually reported for one side only
	if m.HomePossession >= 0 && m.AwayPossession < 0 {
		m.AwayPossession = 100 - m.HomePossession
	} else if m.AwayPossession >= 0 && m.HomePossession < 0 {
		m.HomePossession = 100 - m.AwayPossession
	}

	setFloat(&m.HomePassCompletion, data, "home_pass_completion", "homePassCompletion", "home_passes_pct")
	setFloat(&m.AwayPassCompletion, data, "away_pass_completion", "awayPassCompletion", "away_passes_pct")
	// Some feeds only carry raw completed/attempted pass counts
	if m.HomePassCompletion < 0 {
		if comp, ok := firstNumber(data, "home_passes_comp", "homePassesCompleted"); ok {
			if att, ok := firstNumber(data, "home_passes_att", "homePassesAttempted"); ok && att > 0 {
				m.HomePassCompletion = 100 * comp / att
			}
		}
	}
	if m.AwayPassCompletion < 0 {
		if comp, ok := firstNumber(data, "away_passes_comp", "awayPassesCompleted"); ok {
			if att, ok := firstNumber(data, "away_passes_att", "awayPassesAttempted"); ok && att > 0 {
				m.AwayPassCompletion = 100 * comp / att
			}
		}
	}

	setInt(&m.HomeCrosses, data, "home_crosses", "homeCrosses")
	setInt(&m.AwayCrosses, data, "away_crosses", "awayCrosses")
	setInt(&m.HomeCorners, data, "home_corners", "homeCorners")
	setInt(&m.AwayCorners, data, "away_corners", "awayCorners")
	setInt(&m.HomePressures, data, "home_pressures", "homePressures")
	setInt(&m.AwayPressures, data, "away_pressures", "awayPressures")
	setInt(&m.HomeTacklesFinalThird, data, "home_tackles_final_3rd", "homeTacklesFinalThird", "home_tackles_final_third")
	setInt(&m.AwayTacklesFinalThird, data, "away_tackles_final_3rd", "awayTacklesFinalThird", "away_tackles_final_third")
	setInt(&m.HomeInterceptions, data, "home_interceptions", "homeInterceptions")
	setInt(&m.AwayInterceptions, data, "away_interceptions", "awayInterceptions")

	return m
}

// ParseMatchHistory decodes an ingestion payload (a JSON array of match
// objects) into validated MatchRecords. A payload that is not an array
// of objects, or a record missing its identity, fails the whole batch.
func ParseMatchHistory(data []byte) ([]*MatchRecord, error) {
	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &MalformedInputError{Reason: "history is not a JSON array of match objects"}
	}

	records := make([]*MatchRecord, 0, len(raw))
	for _, item := range raw {
		m := ParseMatchRecord(item)
		if err := m.Validate(); err != nil {
			return nil, err
		}
		records = append(records, m)
	}
	return records, nil
}
