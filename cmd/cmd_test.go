package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/pable/go-team-stats/internal/aggregator"
	"github.com/pable/go-team-stats/internal/model"
)

func init() {
	color.NoColor = true
}

// region helpers

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sampleDataset() *model.Dataset {
	return &model.Dataset{
		Matches: []model.Match{
			{ID: 1, Date: day(2024, 1, 1), Opponent: "Rivals", Venue: "North", Tournament: "Liga", GoalsFor: 2, GoalsAgainst: 0},
			{ID: 2, Date: day(2024, 1, 10), Opponent: "Others", Venue: "South", Tournament: "Copa", GoalsFor: 0, GoalsAgainst: 1},
			{ID: 3, Date: day(2024, 2, 1), Opponent: "Rivals", Venue: "North", Tournament: "Liga", GoalsFor: 3, GoalsAgainst: 1},
		},
		Players: []model.Player{
			{Name: "Ana Maria", Position: "FW", Active: true, MatchesPlayed: 2, MatchesEligible: 3},
			{Name: "Beto", Position: "DF", Active: true, MatchesPlayed: 1, MatchesEligible: 3},
		},
		Events: []model.PerformanceEvent{
			{MatchID: 1, Player: "Ana Maria", Goals: 2},
			{MatchID: 3, Player: "Ana Maria", Goals: 1, Assists: 2},
			{MatchID: 3, Player: "Beto", Goals: 2, YellowCards: 1},
		},
	}
}

func testSession(ds *model.Dataset) (*session, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	s := newSession(ds, aggregator.AllTournaments, func() (*model.Dataset, error) { return ds, nil }, &out, &errOut)
	s.now = func() time.Time { return day(2024, 6, 1) }
	return s, &out, &errOut
}

// withStore points the package flags at a fresh database for one test.
func withStore(t *testing.T) string {
	t.Helper()
	oldDB, oldT := dbPath, tournament
	dir := t.TempDir()
	dbPath = filepath.Join(dir, "data", "stats.db")
	tournament = aggregator.AllTournaments
	t.Cleanup(func() { dbPath, tournament = oldDB, oldT })
	return dir
}

func writeWorkbook(t *testing.T, path string) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheets := map[string][][]any{
		"Matches": {
			{"Match ID", "Fecha", "Oponente", "Ubicacion", "Torneo", "GF", "GC"},
			{1, "2024-01-01", "Rivals", "North", "Liga", 2, 0},
			{2, "2024-01-10", "Others", "South", "Copa", 0, 1},
			{3, "2024-02-01", "Rivals", "North", "Liga", 3, 1},
		},
		"Players": {
			{"Nombre", "Posicion", "Activo", "PJ", "PT", "Fecha Fin"},
			{"Ana", "FW", "Si", 3, 3},
			{"Beto", "DF", "No", 1, 2, "2024-03-01"},
		},
		"Stats": {
			{"Partido ID", "Jugador", "Goles", "Asistencias", "Amarillas", "Rojas"},
			{1, "Ana", 2, 0, 0, 0},
			{3, "Ana", 1, 1, 0, 0},
			{3, "Beto", 2, 0, 1, 0},
			{9, "Ana", 5, 0, 0, 0},
		},
	}
	for name, rows := range sheets {
		_, err := f.NewSheet(name)
		require.NoError(t, err)
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			r := row
			require.NoError(t, f.SetSheetRow(name, cell, &r))
		}
	}
	require.NoError(t, f.SaveAs(path))
}

func testCommand() (*cobra.Command, *bytes.Buffer) {
	var buf bytes.Buffer
	c := &cobra.Command{}
	c.SetContext(context.Background())
	c.SetOut(&buf)
	c.SetErr(&buf)
	return c, &buf
}

// endregion

// region shell

func TestSession_Commands(t *testing.T) {
	s, out, errOut := testSession(sampleDataset())
	s.run(strings.NewReader(strings.Join([]string{
		"use liga",
		"summary",
		`player "Ana Maria" assists`,
		"sumary",
		"exit",
		"rankings",
	}, "\n")), false)

	assert.Equal(t, "Liga", s.tournament)
	assert.Contains(t, out.String(), "Team summary (Liga)")
	assert.Contains(t, out.String(), "Ana Maria (Liga)")
	assert.Contains(t, out.String(), "Assists per match")
	assert.Contains(t, errOut.String(), `did you mean "summary"?`)
	assert.NotContains(t, out.String(), "--- Goals ---", "nothing runs after exit")
}

func TestSession_UnknownTournamentAndPlayer(t *testing.T) {
	s, _, errOut := testSession(sampleDataset())
	s.exec("use Cpa")
	assert.Equal(t, aggregator.AllTournaments, s.tournament)
	assert.Contains(t, errOut.String(), `did you mean "Copa"?`)

	errOut.Reset()
	s.exec("player Bet")
	assert.Contains(t, errOut.String(), "(unknown)")
	assert.Contains(t, errOut.String(), "Beto")

	errOut.Reset()
	s.exec("player Beto matches")
	assert.Contains(t, errOut.String(), "not a player measure")
}

func TestSession_EmptyTournamentView(t *testing.T) {
	ds := sampleDataset()
	ds.Matches = append(ds.Matches, model.Match{ID: 4, Date: day(2024, 3, 1), Tournament: "Amistoso"})
	s, _, errOut := testSession(ds)
	s.exec("use amistoso")
	require.Equal(t, "Amistoso", s.tournament)

	s.exec("player Beto")
	assert.Empty(t, errOut.String(), "a view with matches but no events still has a card")

	s.tournament = "Nope"
	s.exec("summary")
	assert.Contains(t, errOut.String(), "(no data)")
}

func TestSession_QuotedArgumentsAndSharedSplitter(t *testing.T) {
	require.NotNil(t, lineSplitter)
	s, _, _ := testSession(sampleDataset())
	assert.Equal(t, lineSplitter, s.tokens)

	args, err := s.split(`player "Ana Maria" assists`)
	require.NoError(t, err)
	assert.Equal(t, []string{"player", "Ana Maria", "assists"}, args)
}

func TestUnquote(t *testing.T) {
	assert.Equal(t, "Ana Maria", unquote(`"Ana Maria"`))
	assert.Equal(t, "Ana Maria", unquote("“Ana Maria”"))
	assert.Equal(t, "Ana", unquote("Ana"))
	assert.Equal(t, `"`, unquote(`"`))
}

// endregion

// region analyze

func TestBuildSeasonContext(t *testing.T) {
	ds := sampleDataset()
	raw, err := buildSeasonContext(ds, aggregator.Select(ds, "Liga"), day(2024, 6, 1))
	require.NoError(t, err)

	var sc seasonContext
	require.NoError(t, json.Unmarshal([]byte(raw), &sc))
	assert.Equal(t, "Liga", sc.Tournament)
	require.NotNil(t, sc.Team)
	assert.Equal(t, 2, sc.Team.Wins)
	assert.EqualValues(t, 100, sc.Team.WinRatePct)
	assert.Nil(t, sc.Team.WorstVenue, "no losses in Liga")
	assert.Equal(t, []aggregator.Entry{{Name: "Ana Maria", Value: 3}, {Name: "Beto", Value: 2}}, sc.Rankings["goals"])
	assert.NotContains(t, sc.Rankings, "red")
	assert.NotEmpty(t, sc.Notes)
	require.Len(t, sc.Players, 2)
	require.NotNil(t, sc.Players[0].AppearanceRatePct)
	assert.EqualValues(t, 67, *sc.Players[0].AppearanceRatePct)
}

func TestAskAnalyst_RequiresKey(t *testing.T) {
	var buf bytes.Buffer
	err := askAnalyst(t.Context(), &buf, "", "model", "{}", "why?")
	assert.ErrorContains(t, err, "no API key")
	assert.Empty(t, buf.String())
}

func apiError(status int) *anthropic.Error {
	return &anthropic.Error{
		StatusCode: status,
		Request:    httptest.NewRequest(http.MethodPost, "https://api.anthropic.com/v1/messages", nil),
		Response:   &http.Response{StatusCode: status},
	}
}

func TestAnalystError(t *testing.T) {
	assert.NoError(t, analystError(nil))

	err := analystError(apiError(http.StatusUnauthorized))
	assert.ErrorContains(t, err, "rejected the API key (HTTP 401)")

	err = analystError(fmt.Errorf("stream: %w", apiError(http.StatusNotFound)))
	assert.ErrorContains(t, err, "unknown model")

	plain := errors.New("connection reset")
	err = analystError(plain)
	assert.ErrorIs(t, err, plain)
	assert.ErrorContains(t, err, "analyst request")
}

// endregion

// region commands

func TestImportThenQuery(t *testing.T) {
	dir := withStore(t)
	workbook := filepath.Join(dir, "season.xlsx")
	writeWorkbook(t, workbook)

	c, buf := testCommand()
	require.NoError(t, runImport(c, []string{workbook}))
	assert.Contains(t, buf.String(), "2-0-1")

	buf.Reset()
	require.NoError(t, runImport(c, []string{workbook}), "re-import replaces the snapshot")

	buf.Reset()
	require.NoError(t, runTournaments(c, nil))
	assert.Contains(t, buf.String(), "Liga")
	assert.Contains(t, buf.String(), "Copa")

	buf.Reset()
	tournament = "Liga"
	require.NoError(t, runSummary(c, nil))
	out := buf.String()
	assert.Contains(t, out, "Team summary (Liga)")
	assert.Contains(t, out, "100.0%")
	assert.Contains(t, out, "2.50")

	buf.Reset()
	require.NoError(t, runRankings(c, nil))
	assert.Contains(t, buf.String(), "(no data)", "no red cards")

	buf.Reset()
	playerMeasure = "goals"
	require.NoError(t, runPlayer(c, []string{"beto"}))
	assert.Contains(t, buf.String(), "inactive since 2024-03-01")

	err := runPlayer(c, []string{"Zed"})
	var ref *model.MissingReferenceError
	assert.ErrorAs(t, err, &ref)

	buf.Reset()
	require.NoError(t, runSQL(c, []string{"SELECT COUNT(*) AS n FROM performance_events"}))
	assert.Contains(t, buf.String(), "4")
}

func TestImport_FromURL(t *testing.T) {
	dir := withStore(t)
	workbook := filepath.Join(dir, "season.xlsx")
	writeWorkbook(t, workbook)
	data, err := os.ReadFile(workbook)
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/season.xlsx" {
			http.NotFound(w, r)
			return
		}
		w.Write(data) //nolint:errcheck
	}))
	defer srv.Close()

	c, buf := testCommand()
	require.NoError(t, runImport(c, []string{srv.URL + "/season.xlsx"}))
	assert.Contains(t, buf.String(), "2-0-1")

	assert.ErrorContains(t, runImport(c, []string{srv.URL + "/other.xlsx"}), "HTTP 404")
}

func TestShow(t *testing.T) {
	dir := withStore(t)
	workbook := filepath.Join(dir, "season.xlsx")
	writeWorkbook(t, workbook)

	c, buf := testCommand()
	require.NoError(t, runImport(c, []string{workbook}))

	buf.Reset()
	tournament = "Copa"
	require.NoError(t, runShow(c, []string{"3"}), "show ignores the tournament filter")
	out := buf.String()
	assert.Contains(t, out, "Match 3: vs Rivals (2024-02-01)")
	assert.Contains(t, out, "Score: 3-1")
	assert.Contains(t, out, "Beto")

	buf.Reset()
	require.NoError(t, runShow(c, []string{"2"}))
	assert.Contains(t, buf.String(), "(no data)")

	var ref *model.MissingReferenceError
	assert.ErrorAs(t, runShow(c, []string{"42"}), &ref)
	assert.ErrorContains(t, runShow(c, []string{"x"}), "not a number")
}

func TestExport(t *testing.T) {
	dir := withStore(t)
	workbook := filepath.Join(dir, "season.xlsx")
	writeWorkbook(t, workbook)
	t.Cleanup(func() { exportFormat, exportOut = "", "" })

	c, buf := testCommand()
	require.NoError(t, runImport(c, []string{workbook}))

	buf.Reset()
	tournament = "Liga"
	require.NoError(t, runExport(c, nil))
	var sc seasonContext
	require.NoError(t, json.Unmarshal(buf.Bytes(), &sc))
	assert.Equal(t, "Liga", sc.Tournament)
	require.NotNil(t, sc.Team)
	assert.Equal(t, 2, sc.Team.Matches)

	exportOut = filepath.Join(dir, "backup.xlsx")
	require.NoError(t, runExport(c, nil))

	// The workbook export imports into a fresh store unchanged.
	tournament = aggregator.AllTournaments
	dbPath = filepath.Join(dir, "copy.db")
	buf.Reset()
	require.NoError(t, runImport(c, []string{exportOut}))
	assert.Contains(t, buf.String(), "2-0-1")

	exportFormat, exportOut = "csv", ""
	assert.ErrorContains(t, runExport(c, nil), "unknown format")
	exportFormat = "xlsx"
	assert.ErrorContains(t, runExport(c, nil), "needs --out")
}

func TestDrop(t *testing.T) {
	dir := withStore(t)
	workbook := filepath.Join(dir, "season.xlsx")
	writeWorkbook(t, workbook)
	t.Cleanup(func() { dropForce = false })

	c, buf := testCommand()
	require.NoError(t, runImport(c, []string{workbook}))

	buf.Reset()
	tournament = "Copa"
	require.NoError(t, runDrop(c, nil))
	assert.Contains(t, buf.String(), "--force")

	dropForce = true
	buf.Reset()
	require.NoError(t, runDrop(c, nil))
	assert.Contains(t, buf.String(), `Deleted 1 "Copa" matches`)

	tournament = aggregator.AllTournaments
	ds, _, err := loadView()
	require.NoError(t, err)
	assert.Equal(t, []string{"Liga"}, ds.Tournaments())

	buf.Reset()
	require.NoError(t, runDrop(c, nil))
	assert.Contains(t, buf.String(), "Deleted: ")
	assert.NoFileExists(t, dbPath)
}

func TestLoadView_EmptyStore(t *testing.T) {
	withStore(t)
	_, _, err := loadView()
	assert.ErrorContains(t, err, "no matches stored yet")
}

func TestCheckDataset(t *testing.T) {
	ds := sampleDataset()
	ds.Events = append(ds.Events, model.PerformanceEvent{MatchID: 99, Player: "Beto"})
	assert.NoError(t, checkDataset(ds), "orphans only warn")

	ds.Matches = append(ds.Matches, ds.Matches[0])
	assert.ErrorContains(t, checkDataset(ds), "duplicate match id")
}

func TestParsePlayerMeasure(t *testing.T) {
	m, err := parsePlayerMeasure("Amarillas")
	require.NoError(t, err)
	assert.Equal(t, model.YellowCards, m)

	_, err = parsePlayerMeasure("matches")
	assert.Error(t, err)
}

// endregion
