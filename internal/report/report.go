// Package report renders aggregator results as terminal tables.
package report

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/go-team-stats/internal/aggregator"
	"github.com/pable/go-team-stats/internal/model"
)

const dateLayout = "2006-01-02"

var cSection = color.New(color.FgCyan, color.Bold)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

func section(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n\n", cSection.Sprintf("--- %s ---", title))
}

// Placeholder is the text shown in place of a value that could not be computed.
func Placeholder(err error) string {
	switch {
	case errors.Is(err, model.ErrEmptyDataset):
		return "no data"
	case errors.Is(err, model.ErrDivisionByZero):
		return "n/a"
	case errors.Is(err, model.ErrMissingReference):
		return "unknown"
	default:
		return "—"
	}
}

// TournamentLabel is how a tournament filter is shown in headers.
func TournamentLabel(t string) string {
	if aggregator.IsAll(t) {
		return "all tournaments"
	}
	return t
}

// PrintTeamSummary prints the headline counters, rates and leaders.
func PrintTeamSummary(w io.Writer, t *aggregator.Team) {
	fmt.Fprintf(w, "\n=== Team summary (%s) ===\n\n", TournamentLabel(t.Tournament))
	fmt.Fprintf(w, "  Matches        : %d\n", t.Matches)
	fmt.Fprintf(w, "  Record (W-D-L) : %d-%d-%d\n", t.Wins, t.Draws, t.Losses)
	fmt.Fprintf(w, "  Win rate       : %.1f%%\n", t.WinRate)
	fmt.Fprintf(w, "  Clean sheets   : %d\n", t.CleanSheets)
	fmt.Fprintf(w, "  Win streak     : %d\n", t.LongestWinStreak)

	section(w, "Totals")
	table := newTable(w)
	table.Header("", "TOTAL", "PER MATCH")
	table.Append("Goals scored", strconv.Itoa(t.GoalsFor), fmt.Sprintf("%.2f", t.GoalsPerMatch))
	table.Append("Assists", strconv.Itoa(t.Assists), fmt.Sprintf("%.2f", t.AssistsPerMatch))
	table.Append("Goals conceded", strconv.Itoa(t.GoalsAgainst), fmt.Sprintf("%.2f", t.ConcededPerMatch))
	table.Render()

	section(w, "Highlights")
	lt := newTable(w)
	lt.Header("", "WHO / WHERE", "COUNT")
	lt.Append(leaderRow("Top scorer", t.TopScorer, t.TopScorerErr)...)
	lt.Append(leaderRow("Top assister", t.TopAssister, t.TopAssisterErr)...)
	lt.Append(venueRow("Best venue (wins)", t.BestVenue, t.BestVenueErr)...)
	lt.Append(venueRow("Worst venue (losses)", t.WorstVenue, t.WorstVenueErr)...)
	lt.Render()
}

func leaderRow(label string, e aggregator.Entry, err error) []any {
	if err != nil {
		return []any{label, Placeholder(err), "—"}
	}
	return []any{label, e.Name, strconv.Itoa(e.Value)}
}

func venueRow(label string, v aggregator.VenueCount, err error) []any {
	if err != nil {
		return []any{label, Placeholder(err), "—"}
	}
	return []any{label, v.Venue, strconv.Itoa(v.Matches)}
}

// PrintRankings prints one table per measure. Empty tables print a placeholder line.
func PrintRankings(w io.Writer, set aggregator.RankingSet) {
	for _, t := range set.Tables {
		section(w, rankingTitle(t.Measure))
		if t.Err != nil {
			fmt.Fprintf(w, "  (%s)\n", Placeholder(t.Err))
			continue
		}
		table := newTable(w)
		table.Header("#", "PLAYER", strings.ToUpper(t.Measure.String()))
		for i, e := range t.Entries {
			table.Append(strconv.Itoa(i+1), e.Name, strconv.Itoa(e.Value))
		}
		table.Render()
	}
}

func rankingTitle(m model.Measure) string {
	switch m {
	case model.Goals:
		return "Goals"
	case model.Assists:
		return "Assists"
	case model.YellowCards:
		return "Yellow cards"
	case model.RedCards:
		return "Red cards"
	default:
		return m.String()
	}
}

// PrintPlayerCard prints a player's profile, totals and attendance.
func PrintPlayerCard(w io.Writer, c *aggregator.PlayerCard, tournament string) {
	status := "inactive since"
	if c.Active {
		status = "active as of"
	}
	fmt.Fprintf(w, "\n=== %s (%s) ===\n\n", c.Name, TournamentLabel(tournament))
	fmt.Fprintf(w, "  Position : %s\n", orDash(c.Position))
	fmt.Fprintf(w, "  Status   : %s %s\n", status, c.StatusDate.Format(dateLayout))

	section(w, "Totals")
	table := newTable(w)
	table.Header("GOALS", "ASSISTS", "YELLOW", "RED", "GOALS/PJ", "ASSISTS/PJ")
	gpm, apm := Placeholder(c.PerMatchErr), Placeholder(c.PerMatchErr)
	if c.PerMatchErr == nil {
		gpm, apm = fmt.Sprintf("%.2f", c.GoalsPerMatch), fmt.Sprintf("%.2f", c.AssistsPerMatch)
	}
	table.Append(
		strconv.Itoa(c.Goals),
		strconv.Itoa(c.Assists),
		strconv.Itoa(c.YellowCards),
		strconv.Itoa(c.RedCards),
		gpm,
		apm,
	)
	table.Render()

	section(w, "Attendance")
	at := newTable(w)
	at.Header("PJ", "PT", "RATE")
	rate := Placeholder(c.AppearanceErr)
	if c.AppearanceErr == nil {
		rate = fmt.Sprintf("%.0f%%", c.AppearanceRate)
	}
	at.Append(strconv.Itoa(c.MatchesPlayed), strconv.Itoa(c.MatchesEligible), rate)
	at.Render()
}

// PrintPlayerTrend prints one row per match with the player's value for measure.
func PrintPlayerTrend(w io.Writer, player string, m model.Measure, points []aggregator.TrendPoint) {
	section(w, fmt.Sprintf("%s per match: %s", rankingTitle(m), player))
	table := newTable(w)
	table.Header("DATE", "OPPONENT", "TOURNAMENT", strings.ToUpper(m.String()), "BAR")
	for _, p := range points {
		table.Append(
			p.Date.Format(dateLayout),
			p.Opponent,
			p.Tournament,
			strconv.Itoa(p.Value),
			bar(p.Value),
		)
	}
	table.Render()
}

// PrintMonthlyTrend prints goals scored and matches played per calendar month.
func PrintMonthlyTrend(w io.Writer, buckets []aggregator.MonthBucket) {
	section(w, "Goals per month")
	table := newTable(w)
	table.Header("MONTH", "MATCHES", "GOALS", "GOALS/MATCH", "BAR")
	for _, b := range buckets {
		perMatch := "—"
		if r, err := aggregator.PerMatch(b.Goals, b.Matches); err == nil {
			perMatch = fmt.Sprintf("%.2f", r)
		}
		table.Append(b.Month.String(), strconv.Itoa(b.Matches), strconv.Itoa(b.Goals), perMatch, bar(b.Goals))
	}
	table.Render()
}

// PrintRows prints an arbitrary result set, as returned by a raw query.
func PrintRows(w io.Writer, cols []string, rows [][]string) {
	table := newTable(w)
	header := make([]any, len(cols))
	for i, c := range cols {
		header[i] = c
	}
	table.Header(header...)
	for _, row := range rows {
		cells := make([]any, len(row))
		for i, v := range row {
			cells[i] = v
		}
		table.Append(cells...)
	}
	table.Render()
}

const maxBar = 20

func bar(n int) string {
	if n <= 0 {
		return ""
	}
	if n > maxBar {
		return strings.Repeat("#", maxBar) + "+"
	}
	return strings.Repeat("#", n)
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}

// PrintMatch prints one match header and the per-player event lines recorded for it.
func PrintMatch(w io.Writer, m *model.Match, events []model.PerformanceEvent) {
	fmt.Fprintf(w, "\n=== Match %d: vs %s (%s) ===\n", m.ID, orDash(m.Opponent), m.Date.Format("2006-01-02"))
	fmt.Fprintf(w, "Tournament: %s   Venue: %s\n", orDash(m.Tournament), orDash(m.Venue))
	fmt.Fprintf(w, "Score: %d-%d %s", m.GoalsFor, m.GoalsAgainst, outcomeColor(m.Outcome()).Sprint(m.Outcome()))
	if m.CleanSheet() {
		fmt.Fprint(w, "  (clean sheet)")
	}
	fmt.Fprintln(w)

	section(w, "Players")
	if len(events) == 0 {
		fmt.Fprintln(w, "  (no data)")
		return
	}
	table := newTable(w)
	table.Header("PLAYER", "G", "A", "Y", "R")
	var g, a, y, r int
	for _, e := range events {
		table.Append(e.Player, strconv.Itoa(e.Goals), strconv.Itoa(e.Assists),
			strconv.Itoa(e.YellowCards), strconv.Itoa(e.RedCards))
		g, a, y, r = g+e.Goals, a+e.Assists, y+e.YellowCards, r+e.RedCards
	}
	table.Footer("TOTAL", strconv.Itoa(g), strconv.Itoa(a), strconv.Itoa(y), strconv.Itoa(r))
	table.Render()
	if g > m.GoalsFor {
		fmt.Fprintf(w, "note: players are credited with %d goals but the scoreline says %d\n", g, m.GoalsFor)
	}
}

func outcomeColor(o model.Outcome) *color.Color {
	switch o {
	case model.Win:
		return color.New(color.FgGreen, color.Bold)
	case model.Draw:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}
