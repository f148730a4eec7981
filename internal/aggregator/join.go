package aggregator

import (
	"time"

	"github.com/pable/go-team-stats/internal/model"
)

// EventWithMatch is a performance event denormalised with its match context.
type EventWithMatch struct {
	model.PerformanceEvent
	Date       time.Time
	Opponent   string
	Venue      string
	Tournament string
}

// EventTotals are per-match sums of event fields. Zero when the match has no events.
type EventTotals struct {
	Goals, Assists        int
	YellowCards, RedCards int
	Rows                  int
}

// Value extracts one measure from the totals.
func (t EventTotals) Value(m model.Measure) int {
	switch m {
	case model.Goals:
		return t.Goals
	case model.Assists:
		return t.Assists
	case model.YellowCards:
		return t.YellowCards
	case model.RedCards:
		return t.RedCards
	case model.MatchCount:
		return t.Rows
	default:
		return 0
	}
}

// MatchWithEvents is a match row with its (possibly zero) event totals.
type MatchWithEvents struct {
	model.Match
	Totals EventTotals
}

// JoinEvents augments each event with its match's date, venue, tournament and opponent.
// Events referencing an unknown match are dropped from the view and returned as orphans.
func JoinEvents(matches []model.Match, events []model.PerformanceEvent) (rows []EventWithMatch, orphans []model.PerformanceEvent) {
	byID := indexMatches(matches)
	rows = make([]EventWithMatch, 0, len(events))
	for _, e := range events {
		m, ok := byID[e.MatchID]
		if !ok {
			orphans = append(orphans, e)
			continue
		}
		rows = append(rows, EventWithMatch{
			PerformanceEvent: e,
			Date:             m.Date,
			Opponent:         m.Opponent,
			Venue:            m.Venue,
			Tournament:       m.Tournament,
		})
	}
	return rows, orphans
}

// MatchesWithEvents returns one row per match, in input order, carrying the sum of the
// events that pass keep (nil keeps all). Matches without events get zero totals.
func MatchesWithEvents(matches []model.Match, events []model.PerformanceEvent, keep func(*model.PerformanceEvent) bool) []MatchWithEvents {
	totals := make(map[int]EventTotals, len(matches))
	for i := range events {
		e := &events[i]
		if keep != nil && !keep(e) {
			continue
		}
		t := totals[e.MatchID]
		t.Goals += e.Goals
		t.Assists += e.Assists
		t.YellowCards += e.YellowCards
		t.RedCards += e.RedCards
		t.Rows++
		totals[e.MatchID] = t
	}

	out := make([]MatchWithEvents, 0, len(matches))
	for _, m := range matches {
		// Missing map entries read as the zero EventTotals.
		out = append(out, MatchWithEvents{Match: m, Totals: totals[m.ID]})
	}
	return out
}

func indexMatches(matches []model.Match) map[int]*model.Match {
	byID := make(map[int]*model.Match, len(matches))
	for i := range matches {
		byID[matches[i].ID] = &matches[i]
	}
	return byID
}
