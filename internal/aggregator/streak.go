package aggregator

import (
	"sort"

	"github.com/pable/go-team-stats/internal/model"
)

// LongestWinStreak returns the length of the longest contiguous run of wins.
// outcomes must already be in chronological order.
func LongestWinStreak(outcomes []model.Outcome) int {
	current, best := 0, 0
	for _, o := range outcomes {
		if o != model.Win {
			current = 0
			continue
		}
		current++
		if current > best {
			best = current
		}
	}
	return best
}

// Chronological returns a copy of matches sorted by date ascending.
// Matches on the same date keep their input order.
func Chronological(matches []model.Match) []model.Match {
	out := make([]model.Match, len(matches))
	copy(out, matches)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// Outcomes maps matches to their outcomes, preserving order.
func Outcomes(matches []model.Match) []model.Outcome {
	out := make([]model.Outcome, len(matches))
	for i := range matches {
		out[i] = matches[i].Outcome()
	}
	return out
}
