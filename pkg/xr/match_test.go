package xr

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMatchRecordSentinels(t *testing.T) {
	m := NewMatchRecord()

	assert.Equal(t, -1, m.HomeGoals)
	assert.Equal(t, -1, m.AwayGoals)
	assert.InDelta(t, -1.0, m.HomeXG, 1e-12)
	assert.Equal(t, -1, m.HomePressures)
	assert.InDelta(t, -1.0, m.HomePossession, 1e-12)
	assert.False(t, m.HasBeenPlayed())
}

func TestMatchRecordValidate(t *testing.T) {
	valid := playedMatch("m1", baseKickoff, "arsenal", "spurs", 1, 1)
	assert.NoError(t, valid.Validate())

	noID := playedMatch("", baseKickoff, "arsenal", "spurs", 1, 1)
	assert.Error(t, noID.Validate())

	noTeam := playedMatch("m1", baseKickoff, "arsenal", "spurs", 1, 1)
	noTeam.AwayID = ""
	assert.Error(t, noTeam.Validate())

	noKickoff := playedMatch("m1", time.Time{}, "arsenal", "spurs", 1, 1)
	assert.Error(t, noKickoff.Validate())

	halfScore := playedMatch("m1", baseKickoff, "arsenal", "spurs", 1, 1)
	halfScore.HomeGoals = -1
	err := halfScore.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "half-recorded")
}

func TestMatchRecordScheduling(t *testing.T) {
	now := baseKickoff

	future := upcomingMatch("m1", now.Add(time.Hour), "arsenal", "spurs")
	assert.True(t, future.IsScheduled(now))

	past := upcomingMatch("m2", now.Add(-time.Hour), "arsenal", "spurs")
	assert.False(t, past.IsScheduled(now))

	played := playedMatch("m3", now.Add(time.Hour), "arsenal", "spurs", 1, 0)
	assert.False(t, played.IsScheduled(now))
}

func TestMatchRecordInvolves(t *testing.T) {
	m := playedMatch("m1", baseKickoff, "arsenal", "spurs", 1, 0)
	assert.True(t, m.Involves("arsenal"))
	assert.True(t, m.Involves("spurs"))
	assert.False(t, m.Involves("chelsea"))
}

func TestMatchRecordJSONKeepsSentinels(t *testing.T) {
	m := upcomingMatch("m1", baseKickoff, "arsenal", "spurs")

	data, err := m.ToJSON()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	// Missing values travel as -1, never as 0
	assert.Equal(t, float64(-1), decoded["homeGoals"])
	assert.Equal(t, float64(-1), decoded["homeXg"])
	assert.Equal(t, float64(-1), decoded["homePossession"])
}

func TestTeamNamesFromHistory(t *testing.T) {
	history := standardHistory()

	names := TeamNamesFromHistory(history)
	assert.ElementsMatch(t, []string{"arsenal", "spurs", "chelsea", "city"}, names)

	ids := TeamIDsFromHistory(history)
	assert.ElementsMatch(t, names, ids)
}

func TestValidateRoster(t *testing.T) {
	history := standardHistory()

	assert.NoError(t, ValidateRoster(history, nil))
	assert.NoError(t, ValidateRoster(history, []string{"arsenal", "spurs", "chelsea", "city"}))

	err := ValidateRoster(history, []string{"arsenal", "spurs"})
	var mismatch *RosterMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.ElementsMatch(t, []string{"chelsea", "city"}, mismatch.Unexpected)
	assert.Contains(t, err.Error(), "not in expected roster: chelsea, city")
}
