package aggregator

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/pable/go-team-stats/internal/model"
)

const maxSuggestions = 3

// PlayerCard is the per-player summary under the active tournament filter.
type PlayerCard struct {
	Name       string
	Position   string
	Active     bool
	StatusDate time.Time // as-of date when active, end date otherwise

	Goals, Assists        int
	YellowCards, RedCards int

	MatchesPlayed   int // PJ
	MatchesEligible int // PT

	// AppearanceRate is PJ/PT as a whole percent.
	AppearanceRate float64
	AppearanceErr  error

	// Per played match, rounded to 2 decimals.
	GoalsPerMatch   float64
	AssistsPerMatch float64
	PerMatchErr     error
}

// ResolvePlayer maps a user-typed name onto the roster. Exact matches win, then a
// unique case-insensitive match. Otherwise the error carries fuzzy suggestions.
func ResolvePlayer(ds *model.Dataset, name string) (string, error) {
	if _, ok := ds.Player(name); ok {
		return name, nil
	}
	var folded []string
	for _, p := range ds.Players {
		if strings.EqualFold(p.Name, name) {
			folded = append(folded, p.Name)
		}
	}
	if len(folded) == 1 {
		return folded[0], nil
	}
	return "", &model.MissingReferenceError{Kind: "player", Key: name, Suggestions: suggest(name, ds.PlayerNames())}
}

func suggest(name string, candidates []string) []string {
	ranks := fuzzy.RankFindFold(name, candidates)
	if len(ranks) == 0 {
		// The typed name may be longer than the roster entry, e.g. a full name.
		for _, c := range candidates {
			if fuzzy.MatchFold(c, name) {
				ranks = append(ranks, fuzzy.Rank{Source: c, Target: c})
			}
		}
	}
	sort.Sort(ranks)
	var out []string
	for _, r := range ranks {
		if len(out) == maxSuggestions {
			break
		}
		out = append(out, r.Target)
	}
	return out
}

// PlayerSummary builds the card for name. Unknown players fail with a
// *MissingReferenceError; an empty view fails with ErrEmptyDataset.
func PlayerSummary(ds *model.Dataset, v *View, name string, now time.Time) (*PlayerCard, error) {
	resolved, err := ResolvePlayer(ds, name)
	if err != nil {
		return nil, err
	}
	if v.Empty() {
		return nil, fmt.Errorf("summary for %s: %w", resolved, model.ErrEmptyDataset)
	}
	p, _ := ds.Player(resolved)

	card := &PlayerCard{
		Name:            p.Name,
		Position:        p.Position,
		Active:          p.Active,
		StatusDate:      p.StatusDate(now),
		MatchesPlayed:   p.MatchesPlayed,
		MatchesEligible: p.MatchesEligible,
	}
	for i := range v.Events {
		e := &v.Events[i]
		if e.Player != p.Name {
			continue
		}
		card.Goals += e.Goals
		card.Assists += e.Assists
		card.YellowCards += e.YellowCards
		card.RedCards += e.RedCards
	}

	if card.AppearanceRate, err = PercentageTo(p.MatchesPlayed, p.MatchesEligible, 0); err != nil {
		card.AppearanceErr = fmt.Errorf("appearance rate for %s: %w", p.Name, err)
	}
	if card.GoalsPerMatch, err = PerMatch(card.Goals, p.MatchesPlayed); err != nil {
		card.PerMatchErr = fmt.Errorf("per-match rates for %s: %w", p.Name, err)
	} else {
		card.AssistsPerMatch, _ = PerMatch(card.Assists, p.MatchesPlayed)
	}
	return card, nil
}
