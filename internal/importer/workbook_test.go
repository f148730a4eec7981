package importer

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/pable/go-team-stats/internal/model"
)

// region helpers

func addSheet(t *testing.T, f *excelize.File, name string, rows [][]any) {
	t.Helper()
	_, err := f.NewSheet(name)
	require.NoError(t, err)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow(name, cell, &r))
	}
}

func workbook(t *testing.T, build func(f *excelize.File)) *bytes.Reader {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	build(f)
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return bytes.NewReader(buf.Bytes())
}

func standardWorkbook(t *testing.T) *bytes.Reader {
	return workbook(t, func(f *excelize.File) {
		addSheet(t, f, "Matches", [][]any{
			{"Match ID", "Fecha", "Oponente", "Ubicacion", "Torneo", "GF", "GC"},
			{1, "2024-01-01", "Rivals", "North", "Liga", 2, 0},
			{2, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), "Others", "South", "Copa", 1, 1},
			{nil, "2024-01-20", "Nobody", "", "", 0, 0},
		})
		addSheet(t, f, "Players", [][]any{
			{"Nombre", "Posicion", "Activo", "PJ", "PT", "Fecha Fin"},
			{"Ana", "Delantera", "Si", 2, 2, nil},
			{"Beto", "Defensa", "No", 1, 2, "2024-05-31"},
		})
		addSheet(t, f, "Stats", [][]any{
			{"Partido ID", "Jugador", "Goles", "Asistencias", "Amarillas", "Rojas"},
			{1, "Ana", 2, 0, 0, 0},
			{2, "Beto", 1, 1, 1},
		})
		addSheet(t, f, "Tournaments", [][]any{
			{"Torneo"},
			{"Liga"},
			{"Copa"},
			{"Amistoso"},
		})
	})
}

// endregion

// region tests

func TestRead_StandardWorkbook(t *testing.T) {
	res, err := Read(standardWorkbook(t))
	require.NoError(t, err)
	ds := res.Dataset

	require.Len(t, ds.Matches, 2)
	assert.Equal(t, 1, ds.Matches[0].ID)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), ds.Matches[0].Date)
	assert.Equal(t, "Liga", ds.Matches[0].Tournament)
	assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), ds.Matches[1].Date, "serial dates are converted")
	assert.Equal(t, 1, ds.Matches[1].GoalsAgainst)

	require.Len(t, ds.Players, 2)
	assert.True(t, ds.Players[0].Active)
	assert.Nil(t, ds.Players[0].EndDate)
	assert.False(t, ds.Players[1].Active)
	require.NotNil(t, ds.Players[1].EndDate)
	assert.Equal(t, time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC), *ds.Players[1].EndDate)
	assert.Equal(t, 2, ds.Players[1].MatchesEligible)

	require.Len(t, ds.Events, 2)
	assert.Equal(t, 2, ds.Events[0].Goals)
	assert.Equal(t, 1, ds.Events[1].YellowCards)
	assert.Equal(t, 0, ds.Events[1].RedCards, "missing trailing cell reads as zero")

	require.Len(t, res.Skipped, 1)
	assert.Contains(t, res.Skipped[0], "row 4")

	assert.NoError(t, ds.Validate())

	assert.Equal(t, []string{"Liga", "Copa", "Amistoso"}, res.Tournaments)
	assert.Equal(t, []string{"Amistoso"}, res.UnplayedTournaments())
}

func TestRead_EnglishHeadersAndSheetAliases(t *testing.T) {
	r := workbook(t, func(f *excelize.File) {
		addSheet(t, f, "partidos", [][]any{
			{"ID", "Date", "Opponent", "Venue", "Tournament", "Goals For", "Goals Against"},
			{7, "15/03/2024", "Rivals", "Home", "Cup", 0, 3},
		})
		addSheet(t, f, "Jugadores", [][]any{
			{"Name", "Position", "Active", "Played", "Eligible"},
			{"Cleo", "GK", "yes", 1, 1},
		})
		addSheet(t, f, "Events", [][]any{
			{"Match ID", "Player", "Goals", "Assists"},
			{7, "Cleo", 0, 1},
		})
	})

	res, err := Read(r)
	require.NoError(t, err)
	assert.Empty(t, res.Tournaments, "the Tournaments sheet is optional")
	require.Len(t, res.Dataset.Matches, 1)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), res.Dataset.Matches[0].Date)
	assert.True(t, res.Dataset.Players[0].Active)
	assert.Equal(t, 1, res.Dataset.Events[0].Assists)
}

func TestRead_Errors(t *testing.T) {
	t.Run("missing sheet", func(t *testing.T) {
		r := workbook(t, func(f *excelize.File) {
			addSheet(t, f, "Matches", [][]any{{"Match ID", "Fecha", "GF", "GC"}})
		})
		_, err := Read(r)
		assert.ErrorContains(t, err, "Players")
	})

	t.Run("missing column", func(t *testing.T) {
		r := workbook(t, func(f *excelize.File) {
			addSheet(t, f, "Matches", [][]any{{"Match ID", "Fecha", "GF"}})
		})
		_, err := Read(r)
		assert.ErrorContains(t, err, "GC")
	})

	t.Run("bad number", func(t *testing.T) {
		r := workbook(t, func(f *excelize.File) {
			addSheet(t, f, "Matches", [][]any{
				{"Match ID", "Fecha", "GF", "GC"},
				{1, "2024-01-01", "two", 0},
			})
		})
		_, err := Read(r)
		assert.ErrorContains(t, err, "row 2")
	})
}

func TestParseHelpers(t *testing.T) {
	n, err := parseInt("3.0")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = parseInt("2.5")
	assert.Error(t, err)

	n, err = parseInt("")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	d, err := parseDate("45292")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), d)

	_, err = parseDate("yesterday")
	assert.Error(t, err)

	for _, s := range []string{"Si", "sí", "YES", "1"} {
		assert.True(t, parseBool(s), s)
	}
	for _, s := range []string{"No", "", "0"} {
		assert.False(t, parseBool(s), s)
	}
}

func TestWrite_RoundTrip(t *testing.T) {
	res, err := Read(standardWorkbook(t))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, res.Dataset, []string{"Amistoso", "Liga"}))

	again, err := Read(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, res.Dataset, again.Dataset)
	assert.Empty(t, again.Skipped)
	assert.Equal(t, []string{"Liga", "Copa", "Amistoso"}, again.Tournaments)
	assert.Equal(t, []string{"Amistoso"}, again.UnplayedTournaments())
}

func TestWrite_EmptyDataset(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, &model.Dataset{}, nil))

	res, err := Read(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Empty(t, res.Dataset.Matches)
	assert.Empty(t, res.Dataset.Events)
}

// endregion
