package aggregator

import (
	"fmt"
	"sort"
	"time"

	"github.com/pable/go-team-stats/internal/model"
)

// MonthBucket is one point of the monthly team trend.
type MonthBucket struct {
	Month   Month
	Goals   int // sum of goals-for
	Matches int
}

// TrendPoint is one match of a player trend.
type TrendPoint struct {
	MatchID    int       `json:"match_id"`
	Date       time.Time `json:"date"`
	Opponent   string    `json:"opponent"`
	Tournament string    `json:"tournament"`
	Value      int       `json:"value"`
}

// MonthlyTrend buckets the view's matches by (year, month), summing goals-for and
// counting matches. Buckets are ordered by time, not by value.
func MonthlyTrend(v *View) ([]MonthBucket, error) {
	if v.Empty() {
		return nil, fmt.Errorf("monthly trend: %w", model.ErrEmptyDataset)
	}
	idx := make(map[Month]int)
	var out []MonthBucket
	for _, m := range v.Matches {
		k := MonthOf(m.Date)
		j, ok := idx[k]
		if !ok {
			j = len(out)
			idx[k] = j
			out = append(out, MonthBucket{Month: k})
		}
		out[j].Goals += m.GoalsFor
		out[j].Matches++
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Month.Before(out[j].Month)
	})
	return out, nil
}

// PlayerTrend is the player's per-match value for measure across every match in the
// view, in date order. Matches where the player recorded nothing read as zero.
func PlayerTrend(v *View, player string, measure model.Measure) ([]TrendPoint, error) {
	if v.Empty() {
		return nil, fmt.Errorf("%s trend for %s: %w", measure, player, model.ErrEmptyDataset)
	}
	rows := MatchesWithEvents(Chronological(v.Matches), v.rawEvents(), func(e *model.PerformanceEvent) bool {
		return e.Player == player
	})
	out := make([]TrendPoint, len(rows))
	for i, r := range rows {
		out[i] = TrendPoint{
			MatchID:    r.ID,
			Date:       r.Date,
			Opponent:   r.Opponent,
			Tournament: r.Tournament,
			Value:      r.Totals.Value(measure),
		}
	}
	return out, nil
}
