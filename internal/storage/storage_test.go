package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/go-team-stats/internal/model"
)

func openMemDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	require.NoError(t, err, "open in-memory db")
	t.Cleanup(func() { db.Close() })
	return db
}

func date(s string) time.Time {
	d, _ := time.Parse(dateLayout, s)
	return d
}

func sampleDataset() *model.Dataset {
	end := date("2024-05-31")
	return &model.Dataset{
		Matches: []model.Match{
			{ID: 1, Date: date("2024-01-01"), Opponent: "Rivals", Venue: "North", Tournament: "Liga", GoalsFor: 2, GoalsAgainst: 0},
			{ID: 2, Date: date("2024-01-10"), Opponent: "Others", Venue: "South", Tournament: "Copa", GoalsFor: 1, GoalsAgainst: 1},
			{ID: 3, Date: date("2024-02-01"), Opponent: "Rivals", Venue: "North", Tournament: "Liga", GoalsFor: 3, GoalsAgainst: 1},
		},
		Players: []model.Player{
			{Name: "Ana", Position: "FW", Active: true, MatchesPlayed: 3, MatchesEligible: 3},
			{Name: "Beto", Position: "DF", Active: false, MatchesPlayed: 1, MatchesEligible: 2, EndDate: &end},
		},
		Events: []model.PerformanceEvent{
			{MatchID: 1, Player: "Ana", Goals: 2},
			{MatchID: 3, Player: "Beto", Goals: 1, Assists: 1, YellowCards: 1},
			{MatchID: 3, Player: "Ana", Goals: 2, RedCards: 1},
		},
	}
}

func TestReplaceAndLoadDataset(t *testing.T) {
	db := openMemDB(t)
	want := sampleDataset()
	require.NoError(t, db.ReplaceDataset(want))

	got, err := db.LoadDataset()
	require.NoError(t, err)
	assert.Equal(t, want.Matches, got.Matches)
	assert.Equal(t, want.Events, got.Events, "events keep insertion order")

	require.Len(t, got.Players, 2)
	assert.Equal(t, want.Players[0], got.Players[0])
	require.NotNil(t, got.Players[1].EndDate)
	assert.True(t, got.Players[1].EndDate.Equal(*want.Players[1].EndDate))
	assert.False(t, got.Players[1].Active)
}

func TestReplaceDataset_Idempotent(t *testing.T) {
	db := openMemDB(t)
	ds := sampleDataset()
	require.NoError(t, db.ReplaceDataset(ds))
	require.NoError(t, db.ReplaceDataset(ds), "second replace should succeed")

	ov, err := db.GetOverview()
	require.NoError(t, err)
	assert.Equal(t, 3, ov.Matches)
	assert.Equal(t, 2, ov.Players)
	assert.Equal(t, 3, ov.Events)
	assert.Equal(t, 2, ov.Tournaments)
	assert.Equal(t, "2024-01-01", ov.EarliestMatch)
	assert.Equal(t, "2024-02-01", ov.LatestMatch)
}

func TestInsertHelpers(t *testing.T) {
	db := openMemDB(t)
	ds := sampleDataset()
	require.NoError(t, db.InsertMatches(ds.Matches))
	require.NoError(t, db.InsertMatches(ds.Matches[:1]), "INSERT OR REPLACE keeps matches idempotent")
	require.NoError(t, db.InsertPlayers(ds.Players))

	updated := ds.Players[0]
	updated.MatchesPlayed = 9
	require.NoError(t, db.InsertPlayers([]model.Player{updated}))
	require.NoError(t, db.InsertEvents([]model.PerformanceEvent{{MatchID: 42, Player: "Ghost", Goals: 1}}))

	got, err := db.LoadDataset()
	require.NoError(t, err)
	assert.Len(t, got.Matches, 3)
	require.Len(t, got.Players, 2)
	assert.Equal(t, 9, got.Players[0].MatchesPlayed)
	require.Len(t, got.Events, 1)
	assert.Equal(t, 42, got.Events[0].MatchID, "orphaned events are stored as-is")
}

func TestListTournaments(t *testing.T) {
	db := openMemDB(t)
	require.NoError(t, db.ReplaceDataset(sampleDataset()))

	list, err := db.ListTournaments()
	require.NoError(t, err)
	assert.Equal(t, []TournamentCount{{Name: "Liga", Matches: 2}, {Name: "Copa", Matches: 1}}, list)
}

func TestQueryRaw(t *testing.T) {
	db := openMemDB(t)
	require.NoError(t, db.ReplaceDataset(sampleDataset()))

	cols, rows, err := db.QueryRaw("SELECT player, SUM(goals) AS g FROM performance_events GROUP BY player ORDER BY g DESC")
	require.NoError(t, err)
	assert.Equal(t, []string{"player", "g"}, cols)
	assert.Equal(t, [][]string{{"Ana", "4"}, {"Beto", "1"}}, rows)

	_, _, err = db.QueryRaw("SELECT * FROM nope")
	assert.Error(t, err)
}

func TestDeleteTournament(t *testing.T) {
	db := openMemDB(t)
	require.NoError(t, db.ReplaceDataset(sampleDataset()))

	n, err := db.DeleteTournament("Liga")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, err := db.LoadDataset()
	require.NoError(t, err)
	require.Len(t, got.Matches, 1)
	assert.Equal(t, "Copa", got.Matches[0].Tournament)
	assert.Empty(t, got.Events, "events of removed matches go too")
	assert.Len(t, got.Players, 2, "roster is kept")

	n, err = db.DeleteTournament("Nope")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestOpen_RejectsNewerSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.db")
	db, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, path, db.Path())
	_, err = db.conn.Exec("PRAGMA user_version = 99")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = Open(path)
	assert.ErrorContains(t, err, "newer teamstats")
}
