package xr

import (
	"encoding/json"
	"fmt"
	"time"
)

// Compile-time check to ensure MatchRecord implements Persistable
var _ Persistable = (*MatchRecord)(nil)

// MatchRecord is one fixture as delivered by the ingestion collaborator.
// Every optional numeric field defaults to -1 (or -1.0) so the display
// layer can always tell "zero" from "unknown"; goals are -1 exactly when
// the match has not been played.
type MatchRecord struct {
	ID      string    `json:"id" column:"id" dbtype:"TEXT" primary:"true" index:"true"`
	UTCTime time.Time `json:"utcTime" column:"utc_time" dbtype:"DATETIME" index:"true"`
	Season  string    `json:"season" column:"season" dbtype:"TEXT" index:"true"`

	HomeTeamName string `json:"homeTeamName" column:"home_team_name" dbtype:"TEXT NOT NULL"`
	AwayTeamName string `json:"awayTeamName" column:"away_team_name" dbtype:"TEXT NOT NULL"`
	HomeID       string `json:"homeId" column:"home_id" dbtype:"TEXT NOT NULL" index:"true"`
	AwayID       string `json:"awayId" column:"away_id" dbtype:"TEXT NOT NULL" index:"true"`

	HomeGoals int `json:"homeGoals" column:"home_goals" dbtype:"INTEGER DEFAULT -1"`
	AwayGoals int `json:"awayGoals" column:"away_goals" dbtype:"INTEGER DEFAULT -1"`

	HomeXG float64 `json:"homeXg" column:"home_xg" dbtype:"REAL DEFAULT -1.0"`
	AwayXG float64 `json:"awayXg" column:"away_xg" dbtype:"REAL DEFAULT -1.0"`

	HomeShots         int `json:"homeShots" column:"home_shots" dbtype:"INTEGER DEFAULT -1"`
	AwayShots         int `json:"awayShots" column:"away_shots" dbtype:"INTEGER DEFAULT -1"`
	HomeShotsOnTarget int `json:"homeShotsOnTarget" column:"home_shots_on_target" dbtype:"INTEGER DEFAULT -1"`
	AwayShotsOnTarget int `json:"awayShotsOnTarget" column:"away_shots_on_target" dbtype:"INTEGER DEFAULT -1"`

	HomeCards int `json:"homeCards" column:"home_cards" dbtype:"INTEGER DEFAULT -1"`
	AwayCards int `json:"awayCards" column:"away_cards" dbtype:"INTEGER DEFAULT -1"`

	HomePossession     float64 `json:"homePossession" column:"home_possession" dbtype:"REAL DEFAULT -1.0"`
	AwayPossession     float64 `json:"awayPossession" column:"away_possession" dbtype:"REAL DEFAULT -1.0"`
	HomePassCompletion float64 `json:"homePassCompletion" column:"home_pass_completion" dbtype:"REAL DEFAULT -1.0"`
	AwayPassCompletion float64 `json:"awayPassCompletion" column:"away_pass_completion" dbtype:"REAL DEFAULT -1.0"`

	// Style stats feeding the matchup adjustment rules
	HomeCrosses           int `json:"homeCrosses" column:"home_crosses" dbtype:"INTEGER DEFAULT -1"`
	AwayCrosses           int `json:"awayCrosses" column:"away_crosses" dbtype:"INTEGER DEFAULT -1"`
	HomeCorners           int `json:"homeCorners" column:"home_corners" dbtype:"INTEGER DEFAULT -1"`
	AwayCorners           int `json:"awayCorners" column:"away_corners" dbtype:"INTEGER DEFAULT -1"`
	HomePressures         int `json:"homePressures" column:"home_pressures" dbtype:"INTEGER DEFAULT -1"`
	AwayPressures         int `json:"awayPressures" column:"away_pressures" dbtype:"INTEGER DEFAULT -1"`
	HomeTacklesFinalThird int `json:"homeTacklesFinalThird" column:"home_tackles_final_third" dbtype:"INTEGER DEFAULT -1"`
	AwayTacklesFinalThird int `json:"awayTacklesFinalThird" column:"away_tackles_final_third" dbtype:"INTEGER DEFAULT -1"`
	HomeInterceptions     int `json:"homeInterceptions" column:"home_interceptions" dbtype:"INTEGER DEFAULT -1"`
	AwayInterceptions     int `json:"awayInterceptions" column:"away_interceptions" dbtype:"INTEGER DEFAULT -1"`

	CreatedAt time.Time `json:"createdAt" column:"created_at" dbtype:"DATETIME DEFAULT CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `json:"updatedAt" column:"updated_at" dbtype:"DATETIME DEFAULT CURRENT_TIMESTAMP"`
}

// NewMatchRecord creates a MatchRecord with every optional numeric field
// at its missing sentinel
func NewMatchRecord() *MatchRecord {
	return &MatchRecord{
		HomeGoals:             -1,
		AwayGoals:             -1,
		HomeXG:                -1.0,
		AwayXG:                -1.0,
		HomeShots:             -1,
		AwayShots:             -1,
		HomeShotsOnTarget:     -1,
		AwayShotsOnTarget:     -1,
		HomeCards:             -1,
		AwayCards:             -1,
		HomePossession:        -1.0,
		AwayPossession:        -1.0,
		HomePassCompletion:    -1.0,
		AwayPassCompletion:    -1.0,
		HomeCrosses:           -1,
		AwayCrosses:           -1,
		HomeCorners:           -1,
		AwayCorners:           -1,
		HomePressures:         -1,
		AwayPressures:         -1,
		HomeTacklesFinalThird: -1,
		AwayTacklesFinalThird: -1,
		HomeInterceptions:     -1,
		AwayInterceptions:     -1,
	}
}

// HasBeenPlayed reports whether the fixture has a final score
func (m *MatchRecord) HasBeenPlayed() bool {
	return m.HomeGoals >= 0 && m.AwayGoals >= 0
}

// IsScheduled reports whether the fixture is still in the future of the
// given reference time
func (m *MatchRecord) IsScheduled(now time.Time) bool {
	return !m.HasBeenPlayed() && m.UTCTime.After(now)
}

// Involves reports whether the given team plays in this fixture
func (m *MatchRecord) Involves(teamID string) bool {
	return m.HomeID == teamID || m.AwayID == teamID
}

// ScoreStr renders the final score, or "" for an unplayed fixture
func (m *MatchRecord) ScoreStr() string {
	if !m.HasBeenPlayed() {
		return ""
	}
	return fmt.Sprintf("%d - %d", m.HomeGoals, m.AwayGoals)
}

// Validate checks the structural invariants the batch depends on.
// A violation here is MalformedInput and fails the whole run; individual
// missing stats are not checked because they recover locally.
func (m *MatchRecord) Validate() error {
	if m.ID == "" {
		return &MalformedInputError{Reason: "match record without id"}
	}
	if m.HomeID == "" || m.AwayID == "" {
		return &MalformedInputError{Reason: fmt.Sprintf("match %s missing team identity", m.ID)}
	}
	if m.UTCTime.IsZero() {
		return &MalformedInputError{Reason: fmt.Sprintf("match %s missing kickoff time", m.ID)}
	}
	if (m.HomeGoals >= 0) != (m.AwayGoals >= 0) {
		return &MalformedInputError{Reason: fmt.Sprintf("match %s has a half-recorded score", m.ID)}
	}
	return nil
}

// ToJSON serializes the record with missing sentinels intact
func (m *MatchRecord) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

/////////////////////////////////////////////////////////////////////////
////// Persistable Interface Implementation
/////////////////////////////////////////////////////////////////////////

// GetPrimaryKey returns the primary key as a map
func (m *MatchRecord) GetPrimaryKey() map[string]any {
	return map[string]any{
		"id": m.ID,
	}
}

// SetPrimaryKey sets the primary key from a map
func (m *MatchRecord) SetPrimaryKey(pk map[string]any) error {
	if id, ok := pk["id"]; ok {
		if idStr, ok := id.(string); ok {
			m.ID = idStr
			return nil
		}
		return fmt.Errorf("primary key 'id' must be a string")
	}
	return fmt.Errorf("primary key 'id' not found")
}

// GetTableName returns the table name for match records
func (m *MatchRecord) GetTableName() string {
	return "match_record"
}

// BeforeSave stamps the record timestamps
func (m *MatchRecord) BeforeSave() error {
	now := time.Now()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now
	return nil
}

// AfterSave is called after saving
func (m *MatchRecord) AfterSave() error {
	return nil
}

/////////////////////////////////////////////////////////////////////////
////// Collection Operations
/////////////////////////////////////////////////////////////////////////

// TeamNamesFromHistory extracts the distinct team names seen in the
// history, used by the roster validation gate
func TeamNamesFromHistory(history []*MatchRecord) []string {
	seen := make(map[string]bool)
	var names []string
	for _, m := range history {
		if m.HomeTeamName != "" && !seen[m.HomeTeamName] {
			seen[m.HomeTeamName] = true
			names = append(names, m.HomeTeamName)
		}
		if m.AwayTeamName != "" && !seen[m.AwayTeamName] {
			seen[m.AwayTeamName] = true
			names = append(names, m.AwayTeamName)
		}
	}
	return names
}

// TeamIDsFromHistory extracts the distinct team IDs in the history
func TeamIDsFromHistory(history []*MatchRecord) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, m := range history {
		if m.HomeID != "" && !seen[m.HomeID] {
			seen[m.HomeID] = true
			ids = append(ids, m.HomeID)
		}
		if m.AwayID != "" && !seen[m.AwayID] {
			seen[m.AwayID] = true
			ids = append(ids, m.AwayID)
		}
	}
	return ids
}
