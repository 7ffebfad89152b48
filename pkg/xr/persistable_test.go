package xr

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDatabaseRoundTrip drives the whole persistence layer against an
// in-memory database: table creation, insert, update, lookup and bulk
// save inside one transaction.
func TestDatabaseRoundTrip(t *testing.T) {
	require.NoError(t, InitDatabase(":memory:"))
	defer CloseDatabase()

	match := playedMatch("m1", baseKickoff, "arsenal", "spurs", 2, 1)

	// Insert
	require.NoError(t, Save(match))
	assert.False(t, match.CreatedAt.IsZero(), "BeforeSave must stamp timestamps")

	exists, err := Exists(match)
	require.NoError(t, err)
	assert.True(t, exists)

	// Load into a fresh record
	loaded := NewMatchRecord()
	require.NoError(t, FindByPrimaryKey(loaded, map[string]any{"id": "m1"}))
	assert.Equal(t, "arsenal", loaded.HomeID)
	assert.Equal(t, 2, loaded.HomeGoals)
	assert.InDelta(t, 1.5, loaded.HomeXG, 1e-9)
	assert.True(t, loaded.UTCTime.Equal(baseKickoff))

	// Update instead of duplicate insert
	match.HomeGoals = 3
	require.NoError(t, Save(match))

	reloaded := NewMatchRecord()
	require.NoError(t, FindByPrimaryKey(reloaded, map[string]any{"id": "m1"}))
	assert.Equal(t, 3, reloaded.HomeGoals)

	all, err := FindAll(&MatchRecord{})
	require.NoError(t, err)
	assert.Len(t, all, 1)

	// Missing primary key is an error, not a zero record
	missing := NewMatchRecord()
	assert.Error(t, FindByPrimaryKey(missing, map[string]any{"id": "nope"}))

	// Delete
	require.NoError(t, Delete(match))
	exists, err = Exists(match)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestDatabaseBulkSaveBatch(t *testing.T) {
	require.NoError(t, InitDatabase(":memory:"))
	defer CloseDatabase()

	predictions, err := NewPredictor(DefaultConfig()).Run(standardHistory(), baseKickoff)
	require.NoError(t, err)

	objects := make([]Persistable, 0, len(predictions))
	for _, p := range predictions {
		objects = append(objects, p)
	}
	require.NoError(t, BulkSave(objects))

	rows, err := FindAll(&Prediction{})
	require.NoError(t, err)
	require.Len(t, rows, len(predictions))

	loaded := &Prediction{}
	require.NoError(t, FindByPrimaryKey(loaded, map[string]any{"fixture_id": "r3a"}))
	assert.Equal(t, "arsenal", loaded.HomeID)
	assert.InDelta(t, 48.0, loaded.HoursUntilKickoff, 1e-9)
	assert.True(t, loaded.ShowPrediction)
	assert.Equal(t, -1, loaded.ActualHomeGoals)
	assert.Greater(t, loaded.HomeWinPct, 0.0)

	// Saving the same batch again updates in place
	require.NoError(t, BulkSave(objects))
	rows, err = FindAll(&Prediction{})
	require.NoError(t, err)
	assert.Len(t, rows, len(predictions))
}

func TestFindWhere(t *testing.T) {
	require.NoError(t, InitDatabase(":memory:"))
	defer CloseDatabase()

	for _, m := range standardHistory() {
		require.NoError(t, Save(m))
	}

	played, err := FindWhere(&MatchRecord{}, "home_goals >= 0")
	require.NoError(t, err)
	assert.Len(t, played, 4)

	arsenal, err := FindWhere(&MatchRecord{}, "home_id = ? OR away_id = ?", "arsenal", "arsenal")
	require.NoError(t, err)
	assert.Len(t, arsenal, 3)

	for _, row := range arsenal {
		m, ok := row.(*MatchRecord)
		require.True(t, ok)
		assert.True(t, m.Involves("arsenal"))
	}
}

func TestInitDatabaseGuards(t *testing.T) {
	require.NoError(t, CloseDatabase())

	// Operations before initialization fail cleanly
	_, err := Exists(NewMatchRecord())
	assert.Error(t, err)

	require.NoError(t, InitDatabase(":memory:"))
	defer CloseDatabase()

	// A second init is a no-op, not a reopen
	require.NoError(t, InitDatabase(":memory:"))

	m := upcomingMatch("g1", baseKickoff.Add(time.Hour), "arsenal", "spurs")
	require.NoError(t, Save(m))
}
