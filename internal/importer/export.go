package importer

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/pable/go-team-stats/internal/model"
)

// Write encodes ds as a workbook that Read accepts, using the first header alias
// of every column. The Tournaments sheet lists ds.Tournaments() plus extra.
func Write(w io.Writer, ds *model.Dataset, extra []string) error {
	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	matches := [][]any{{colMatchID[0], colDate[0], colOpponent[0], colVenue[0], colTournament[0], colGF[0], colGC[0]}}
	for _, m := range ds.Matches {
		matches = append(matches, []any{m.ID, m.Date.Format(dateLayouts[0]), m.Opponent, m.Venue, m.Tournament, m.GoalsFor, m.GoalsAgainst})
	}

	players := [][]any{{colName[0], colPosition[0], colActive[0], colPJ[0], colPT[0], colEndDate[0]}}
	for _, p := range ds.Players {
		active, end := "No", ""
		if p.Active {
			active = "Si"
		} else if p.EndDate != nil {
			end = p.EndDate.Format(dateLayouts[0])
		}
		players = append(players, []any{p.Name, p.Position, active, p.MatchesPlayed, p.MatchesEligible, end})
	}

	events := [][]any{{colEventMatch[0], colPlayer[0], colGoals[0], colAssists[0], colYellow[0], colRed[0]}}
	for _, e := range ds.Events {
		events = append(events, []any{e.MatchID, e.Player, e.Goals, e.Assists, e.YellowCards, e.RedCards})
	}

	tours := [][]any{{colTournament[0]}}
	seen := make(map[string]bool)
	for _, t := range append(ds.Tournaments(), extra...) {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		tours = append(tours, []any{t})
	}

	// NewFile starts with a default sheet; reuse it for matches.
	if err := f.SetSheetName(f.GetSheetName(0), matchSheets[0]); err != nil {
		return err
	}
	sheets := []struct {
		name string
		rows [][]any
	}{
		{matchSheets[0], matches},
		{playerSheets[0], players},
		{statSheets[0], events},
		{tourSheets[0], tours},
	}
	for i, s := range sheets {
		if i > 0 {
			if _, err := f.NewSheet(s.name); err != nil {
				return fmt.Errorf("sheet %s: %w", s.name, err)
			}
		}
		for r, row := range s.rows {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(s.name, cell, &row); err != nil {
				return fmt.Errorf("sheet %s row %d: %w", s.name, r+1, err)
			}
		}
		if err := f.SetRowStyle(s.name, 1, 1, bold); err != nil {
			return fmt.Errorf("sheet %s: %w", s.name, err)
		}
	}
	return f.Write(w)
}
