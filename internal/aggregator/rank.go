package aggregator

import (
	"fmt"
	"time"

	"github.com/pable/go-team-stats/internal/model"
)

// Entry is one row of a ranking table.
type Entry struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// GroupKey selects what a reduction is grouped by.
type GroupKey int

const (
	ByPlayer GroupKey = iota
	ByVenue
	ByMonth
)

func (k GroupKey) String() string {
	switch k {
	case ByPlayer:
		return "player"
	case ByVenue:
		return "venue"
	case ByMonth:
		return "month"
	default:
		return "?"
	}
}

// Month is a (year, month) time bucket.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf buckets a date.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Before orders buckets chronologically.
func (m Month) Before(o Month) bool {
	if m.Year != o.Year {
		return m.Year < o.Year
	}
	return m.Month < o.Month
}

// Aggregate sums measure per key over the view, sorted by value descending with
// first-encountered tie-break. Player-level measures are read from the joined events;
// MatchCount grouped by venue or month counts the view's matches instead.
func Aggregate(v *View, key GroupKey, measure model.Measure) []Entry {
	if measure == model.MatchCount && key != ByPlayer {
		groups := groupSum(len(v.Matches),
			func(i int) string { return matchLabel(&v.Matches[i], key) },
			func(int) int { return 1 },
		)
		return entries(groups)
	}
	groups := groupSum(len(v.Events),
		func(i int) string { return eventLabel(&v.Events[i], key) },
		func(i int) int { return v.Events[i].Value(measure) },
	)
	return entries(groups)
}

// Ranking is the player table for measure with zero-value players removed.
// It fails with ErrEmptyDataset when the view has no matches or nobody scores above zero.
func Ranking(v *View, measure model.Measure) ([]Entry, error) {
	if v.Empty() {
		return nil, fmt.Errorf("%s ranking: %w", measure, model.ErrEmptyDataset)
	}
	groups := groupSum(len(v.Events),
		func(i int) string { return v.Events[i].Player },
		func(i int) int { return v.Events[i].Value(measure) },
	)
	ranked := nonZero(groups)
	if len(ranked) == 0 {
		return nil, fmt.Errorf("%s ranking: %w", measure, model.ErrEmptyDataset)
	}
	return entries(ranked), nil
}

// Leader returns the single top player for measure, even when that value is zero.
// No matches or no events under the filter yields ErrEmptyDataset rather than a
// spurious zero winner.
func Leader(v *View, measure model.Measure) (Entry, error) {
	if v.Empty() || len(v.Events) == 0 {
		return Entry{}, fmt.Errorf("%s leader: %w", measure, model.ErrEmptyDataset)
	}
	groups := groupSum(len(v.Events),
		func(i int) string { return v.Events[i].Player },
		func(i int) int { return v.Events[i].Value(measure) },
	)
	return Entry{Name: groups[0].Key, Value: groups[0].Value}, nil
}

func entries(groups []Group[string]) []Entry {
	out := make([]Entry, len(groups))
	for i, g := range groups {
		out[i] = Entry{Name: g.Key, Value: g.Value}
	}
	return out
}

func eventLabel(e *EventWithMatch, key GroupKey) string {
	switch key {
	case ByVenue:
		return e.Venue
	case ByMonth:
		return MonthOf(e.Date).String()
	default:
		return e.Player
	}
}

func matchLabel(m *model.Match, key GroupKey) string {
	if key == ByMonth {
		return MonthOf(m.Date).String()
	}
	return m.Venue
}
