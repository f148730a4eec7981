package aggregator

import (
	"fmt"

	"github.com/pable/go-team-stats/internal/model"
)

// Team holds the headline counters for a view.
type Team struct {
	Tournament string

	Matches             int
	Wins, Draws, Losses int
	CleanSheets         int
	LongestWinStreak    int

	GoalsFor, GoalsAgainst, Assists int

	// Rates rounded to 2 decimals. WinRate is a percentage rounded to 1 decimal.
	GoalsPerMatch    float64
	AssistsPerMatch  float64
	ConcededPerMatch float64
	WinRate          float64

	TopScorer      Entry
	TopScorerErr   error
	TopAssister    Entry
	TopAssisterErr error

	BestVenue     VenueCount
	BestVenueErr  error
	WorstVenue    VenueCount
	WorstVenueErr error
}

// TeamSummary computes the headline counters. An empty view fails with ErrEmptyDataset;
// otherwise leader and venue failures are recorded on the result and the rest is returned.
func TeamSummary(v *View) (*Team, error) {
	if v.Empty() {
		return nil, fmt.Errorf("team summary: %w", model.ErrEmptyDataset)
	}

	t := &Team{Tournament: v.Tournament, Matches: len(v.Matches)}
	for i := range v.Matches {
		m := &v.Matches[i]
		switch m.Outcome() {
		case model.Win:
			t.Wins++
		case model.Draw:
			t.Draws++
		default:
			t.Losses++
		}
		if m.CleanSheet() {
			t.CleanSheets++
		}
		t.GoalsFor += m.GoalsFor
		t.GoalsAgainst += m.GoalsAgainst
	}
	for i := range v.Events {
		t.Assists += v.Events[i].Assists
	}
	t.LongestWinStreak = LongestWinStreak(Outcomes(Chronological(v.Matches)))

	// Matches > 0 here, so the rate calls cannot hit a zero denominator.
	t.GoalsPerMatch, _ = PerMatch(t.GoalsFor, t.Matches)
	t.AssistsPerMatch, _ = PerMatch(t.Assists, t.Matches)
	t.ConcededPerMatch, _ = PerMatch(t.GoalsAgainst, t.Matches)
	t.WinRate, _ = PercentageTo(t.Wins, t.Matches, 1)

	t.TopScorer, t.TopScorerErr = Leader(v, model.Goals)
	t.TopAssister, t.TopAssisterErr = Leader(v, model.Assists)
	t.BestVenue, t.BestVenueErr = BestVenue(v)
	t.WorstVenue, t.WorstVenueErr = WorstVenue(v)
	return t, nil
}
