// Package importer reads a team workbook (Matches, Players and Stats sheets) into a
// model.Dataset.
package importer

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/pable/go-team-stats/internal/model"
)

// Sheet names, with accepted aliases.
var (
	matchSheets  = []string{"Matches", "Partidos"}
	playerSheets = []string{"Players", "Jugadores"}
	statSheets   = []string{"Stats", "Events", "Estadisticas"}
	tourSheets   = []string{"Tournaments", "Torneos"}
)

// Column headers, with accepted aliases. Matching is case-insensitive.
var (
	colMatchID    = []string{"Match ID", "ID"}
	colDate       = []string{"Fecha", "Date"}
	colOpponent   = []string{"Oponente", "Opponent"}
	colVenue      = []string{"Ubicacion", "Ubicación", "Venue"}
	colTournament = []string{"Torneo", "Tournament"}
	colGF         = []string{"GF", "Goals For"}
	colGC         = []string{"GC", "GA", "Goals Against"}

	colName     = []string{"Nombre", "Name"}
	colPosition = []string{"Posicion", "Posición", "Position"}
	colActive   = []string{"Activo", "Active"}
	colPJ       = []string{"PJ", "Played"}
	colPT       = []string{"PT", "Eligible"}
	colEndDate  = []string{"Fecha Fin", "End Date"}

	colEventMatch = []string{"Partido ID", "Match ID"}
	colPlayer     = []string{"Jugador", "Player"}
	colGoals      = []string{"Goles", "Goals"}
	colAssists    = []string{"Asistencias", "Assists"}
	colYellow     = []string{"Amarillas", "Yellow", "Yellow Cards"}
	colRed        = []string{"Rojas", "Red", "Red Cards"}
)

// dateLayouts are tried in order for text date cells.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"02-01-2006",
	"02/01/2006",
	"2/1/2006",
	"1/2/06",
}

// Result is an imported dataset plus the rows that were skipped. Tournaments is
// the optional Tournaments sheet, which may list competitions with no matches yet.
type Result struct {
	Dataset     *model.Dataset
	Tournaments []string
	Skipped     []string
}

// UnplayedTournaments returns tournaments listed in the Tournaments sheet that no
// imported match belongs to.
func (r *Result) UnplayedTournaments() []string {
	played := make(map[string]bool)
	for _, t := range r.Dataset.Tournaments() {
		played[t] = true
	}
	var out []string
	for _, t := range r.Tournaments {
		if !played[t] {
			out = append(out, t)
		}
	}
	return out
}

// Load reads the workbook at path.
func Load(path string) (*Result, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	return read(f)
}

// Read reads a workbook from r.
func Read(r io.Reader) (*Result, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	return read(f)
}

func read(f *excelize.File) (*Result, error) {
	res := &Result{Dataset: &model.Dataset{}}

	matches, err := sheetRows(f, matchSheets)
	if err != nil {
		return nil, err
	}
	if err := readMatches(matches, res); err != nil {
		return nil, err
	}

	players, err := sheetRows(f, playerSheets)
	if err != nil {
		return nil, err
	}
	if err := readPlayers(players, res); err != nil {
		return nil, err
	}

	stats, err := sheetRows(f, statSheets)
	if err != nil {
		return nil, err
	}
	if err := readEvents(stats, res); err != nil {
		return nil, err
	}

	if tours, err := sheetRows(f, tourSheets); err == nil {
		readTournaments(tours, res)
	}
	return res, nil
}

// sheetRows returns the raw rows of the first sheet matching one of names.
// Raw values keep dates as serial numbers regardless of cell formatting.
func sheetRows(f *excelize.File, names []string) (*table, error) {
	for _, sheet := range f.GetSheetList() {
		for _, want := range names {
			if !strings.EqualFold(strings.TrimSpace(sheet), want) {
				continue
			}
			rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
			if err != nil {
				return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
			}
			return newTable(sheet, rows), nil
		}
	}
	return nil, fmt.Errorf("workbook has no %s sheet", names[0])
}

func readMatches(t *table, res *Result) error {
	id, err := t.require(colMatchID)
	if err != nil {
		return err
	}
	dateCol, err := t.require(colDate)
	if err != nil {
		return err
	}
	gf, err := t.require(colGF)
	if err != nil {
		return err
	}
	gc, err := t.require(colGC)
	if err != nil {
		return err
	}
	opp, venue, tour := t.optional(colOpponent), t.optional(colVenue), t.optional(colTournament)

	for n, row := range t.body() {
		line := n + 2
		if t.cell(row, id) == "" {
			res.Skipped = append(res.Skipped, fmt.Sprintf("%s row %d: no match id", t.name, line))
			continue
		}
		m := model.Match{
			Opponent:   t.cell(row, opp),
			Venue:      t.cell(row, venue),
			Tournament: t.cell(row, tour),
		}
		if m.ID, err = parseInt(t.cell(row, id)); err != nil {
			return fmt.Errorf("%s row %d: match id: %w", t.name, line, err)
		}
		if m.Date, err = parseDate(t.cell(row, dateCol)); err != nil {
			return fmt.Errorf("%s row %d: date: %w", t.name, line, err)
		}
		if m.GoalsFor, err = parseInt(t.cell(row, gf)); err != nil {
			return fmt.Errorf("%s row %d: goals for: %w", t.name, line, err)
		}
		if m.GoalsAgainst, err = parseInt(t.cell(row, gc)); err != nil {
			return fmt.Errorf("%s row %d: goals against: %w", t.name, line, err)
		}
		res.Dataset.Matches = append(res.Dataset.Matches, m)
	}
	return nil
}

func readPlayers(t *table, res *Result) error {
	name, err := t.require(colName)
	if err != nil {
		return err
	}
	pos, active, pj, pt, end := t.optional(colPosition), t.optional(colActive), t.optional(colPJ), t.optional(colPT), t.optional(colEndDate)

	for n, row := range t.body() {
		line := n + 2
		p := model.Player{
			Name:     t.cell(row, name),
			Position: t.cell(row, pos),
			Active:   parseBool(t.cell(row, active)),
		}
		if p.Name == "" {
			res.Skipped = append(res.Skipped, fmt.Sprintf("%s row %d: no name", t.name, line))
			continue
		}
		if p.MatchesPlayed, err = parseInt(t.cell(row, pj)); err != nil {
			return fmt.Errorf("%s row %d: PJ: %w", t.name, line, err)
		}
		if p.MatchesEligible, err = parseInt(t.cell(row, pt)); err != nil {
			return fmt.Errorf("%s row %d: PT: %w", t.name, line, err)
		}
		if raw := t.cell(row, end); raw != "" && !p.Active {
			d, err := parseDate(raw)
			if err != nil {
				return fmt.Errorf("%s row %d: end date: %w", t.name, line, err)
			}
			p.EndDate = &d
		}
		res.Dataset.Players = append(res.Dataset.Players, p)
	}
	return nil
}

func readEvents(t *table, res *Result) error {
	matchCol, err := t.require(colEventMatch)
	if err != nil {
		return err
	}
	playerCol, err := t.require(colPlayer)
	if err != nil {
		return err
	}
	cols := []struct {
		idx   int
		label string
		dst   func(*model.PerformanceEvent) *int
	}{
		{t.optional(colGoals), "goals", func(e *model.PerformanceEvent) *int { return &e.Goals }},
		{t.optional(colAssists), "assists", func(e *model.PerformanceEvent) *int { return &e.Assists }},
		{t.optional(colYellow), "yellow cards", func(e *model.PerformanceEvent) *int { return &e.YellowCards }},
		{t.optional(colRed), "red cards", func(e *model.PerformanceEvent) *int { return &e.RedCards }},
	}

	for n, row := range t.body() {
		line := n + 2
		e := model.PerformanceEvent{Player: t.cell(row, playerCol)}
		if t.cell(row, matchCol) == "" || e.Player == "" {
			res.Skipped = append(res.Skipped, fmt.Sprintf("%s row %d: no match id or player", t.name, line))
			continue
		}
		if e.MatchID, err = parseInt(t.cell(row, matchCol)); err != nil {
			return fmt.Errorf("%s row %d: match id: %w", t.name, line, err)
		}
		for _, c := range cols {
			v, err := parseInt(t.cell(row, c.idx))
			if err != nil {
				return fmt.Errorf("%s row %d: %s: %w", t.name, line, c.label, err)
			}
			*c.dst(&e) = v
		}
		res.Dataset.Events = append(res.Dataset.Events, e)
	}
	return nil
}

// readTournaments takes the first column, whatever its header.
func readTournaments(t *table, res *Result) {
	for _, row := range t.body() {
		if name := t.cell(row, 0); name != "" {
			res.Tournaments = append(res.Tournaments, name)
		}
	}
}

// ---- cell parsing ----

// parseInt accepts integers and integral floats ("2", "2.0"). Empty cells read as 0,
// which is how a blank counter in the sheet is meant.
func parseInt(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	if f != float64(int(f)) {
		return 0, fmt.Errorf("not a whole number: %q", s)
	}
	return int(f), nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, err
		}
		y, m, d := t.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "si", "sí", "s", "yes", "y", "true", "1":
		return true
	}
	return false
}
