package aggregator

import (
	"fmt"

	"github.com/pable/go-team-stats/internal/model"
)

// VenueCount is a venue and the number of matches with the requested outcome there.
type VenueCount struct {
	Venue   string `json:"venue"`
	Matches int    `json:"matches"`
}

// BestVenue is the venue with the most wins.
func BestVenue(v *View) (VenueCount, error) {
	return topVenue(v, model.Win)
}

// WorstVenue is the venue with the most losses.
func WorstVenue(v *View) (VenueCount, error) {
	return topVenue(v, model.Loss)
}

func topVenue(v *View, want model.Outcome) (VenueCount, error) {
	if v.Empty() {
		return VenueCount{}, fmt.Errorf("venue with most %s: %w", want, model.ErrEmptyDataset)
	}
	var matching []*model.Match
	for i := range v.Matches {
		if v.Matches[i].Outcome() == want {
			matching = append(matching, &v.Matches[i])
		}
	}
	if len(matching) == 0 {
		return VenueCount{}, fmt.Errorf("venue with most %s: %w", want, model.ErrEmptyDataset)
	}
	groups := groupSum(len(matching),
		func(i int) string { return matching[i].Venue },
		func(int) int { return 1 },
	)
	return VenueCount{Venue: groups[0].Key, Matches: groups[0].Value}, nil
}
