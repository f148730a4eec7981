package aggregator

import (
	"strings"

	"github.com/pable/go-team-stats/internal/model"
)

// AllTournaments selects every match. The empty string behaves the same.
const AllTournaments = "all"

// View is a filtered, joined snapshot that every query runs over.
// Matches and Events are fresh slices; the source dataset is never modified.
type View struct {
	Tournament string
	Matches    []model.Match
	Events     []EventWithMatch
	Orphans    []model.PerformanceEvent
}

// IsAll reports whether tournament is the all-tournaments sentinel.
func IsAll(tournament string) bool {
	return tournament == "" || strings.EqualFold(tournament, AllTournaments)
}

// FilterMatches returns the matches played in tournament.
func FilterMatches(matches []model.Match, tournament string) []model.Match {
	out := make([]model.Match, 0, len(matches))
	for _, m := range matches {
		if IsAll(tournament) || m.Tournament == tournament {
			out = append(out, m)
		}
	}
	return out
}

// FilterEvents returns the joined rows whose match belongs to tournament.
func FilterEvents(rows []EventWithMatch, tournament string) []EventWithMatch {
	out := make([]EventWithMatch, 0, len(rows))
	for _, r := range rows {
		if IsAll(tournament) || r.Tournament == tournament {
			out = append(out, r)
		}
	}
	return out
}

// Select joins the dataset and narrows it to one tournament (or all).
func Select(ds *model.Dataset, tournament string) *View {
	rows, orphans := JoinEvents(ds.Matches, ds.Events)
	return &View{
		Tournament: tournament,
		Matches:    FilterMatches(ds.Matches, tournament),
		Events:     FilterEvents(rows, tournament),
		Orphans:    orphans,
	}
}

// Narrow applies a further tournament filter to an existing view.
func (v *View) Narrow(tournament string) *View {
	label := tournament
	if IsAll(tournament) {
		label = v.Tournament
	}
	return &View{
		Tournament: label,
		Matches:    FilterMatches(v.Matches, tournament),
		Events:     FilterEvents(v.Events, tournament),
		Orphans:    v.Orphans,
	}
}

// Empty reports whether no matches survive the filter.
func (v *View) Empty() bool {
	return len(v.Matches) == 0
}

// rawEvents strips the match context back off the joined rows.
func (v *View) rawEvents() []model.PerformanceEvent {
	out := make([]model.PerformanceEvent, len(v.Events))
	for i := range v.Events {
		out[i] = v.Events[i].PerformanceEvent
	}
	return out
}
