package model

import (
	"fmt"
	"strings"
	"time"
)

// Outcome is the Win/Draw/Loss classification of a match scoreline.
type Outcome int

const (
	Win Outcome = iota
	Draw
	Loss
)

func (o Outcome) String() string {
	switch o {
	case Win:
		return "W"
	case Draw:
		return "D"
	default:
		return "L"
	}
}

// OutcomeOf classifies a scoreline from the team's point of view.
func OutcomeOf(goalsFor, goalsAgainst int) Outcome {
	switch {
	case goalsFor > goalsAgainst:
		return Win
	case goalsFor == goalsAgainst:
		return Draw
	default:
		return Loss
	}
}

// ---- Record store rows ----

// Match is one played fixture.
type Match struct {
	ID           int       `json:"id"`
	Date         time.Time `json:"date"`
	Opponent     string    `json:"opponent"`
	Venue        string    `json:"venue"`
	Tournament   string    `json:"tournament"`
	GoalsFor     int       `json:"goals_for"`
	GoalsAgainst int       `json:"goals_against"`
}

// Outcome is recomputed from the scoreline on every call.
func (m *Match) Outcome() Outcome {
	return OutcomeOf(m.GoalsFor, m.GoalsAgainst)
}

// CleanSheet reports whether the team conceded nothing.
func (m *Match) CleanSheet() bool {
	return m.GoalsAgainst == 0
}

// Player is one roster entry. EndDate is only meaningful when Active is false.
type Player struct {
	Name            string     `json:"name"`
	Position        string     `json:"position"`
	Active          bool       `json:"active"`
	MatchesPlayed   int        `json:"matches_played"`   // PJ
	MatchesEligible int        `json:"matches_eligible"` // PT
	EndDate         *time.Time `json:"end_date,omitempty"`
}

// Validate checks the roster invariants.
func (p *Player) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("player with empty name")
	}
	if !p.Active && p.EndDate == nil {
		return fmt.Errorf("player %q is inactive but has no end date", p.Name)
	}
	if p.MatchesPlayed < 0 || p.MatchesEligible < 0 {
		return fmt.Errorf("player %q has negative match counts", p.Name)
	}
	return nil
}

// StatusDate returns now for active players and the end date otherwise.
func (p *Player) StatusDate(now time.Time) time.Time {
	if p.Active || p.EndDate == nil {
		return now
	}
	return *p.EndDate
}

// PerformanceEvent is one player's contribution within one match.
type PerformanceEvent struct {
	MatchID     int    `json:"match_id"`
	Player      string `json:"player"`
	Goals       int    `json:"goals"`
	Assists     int    `json:"assists"`
	YellowCards int    `json:"yellow_cards"`
	RedCards    int    `json:"red_cards"`
}

// Value extracts the given measure from the event.
func (e *PerformanceEvent) Value(m Measure) int {
	switch m {
	case Goals:
		return e.Goals
	case Assists:
		return e.Assists
	case YellowCards:
		return e.YellowCards
	case RedCards:
		return e.RedCards
	case MatchCount:
		return 1
	default:
		return 0
	}
}

func (e *PerformanceEvent) validate() error {
	if e.Goals < 0 || e.Assists < 0 || e.YellowCards < 0 || e.RedCards < 0 {
		return fmt.Errorf("event for %q in match %d has negative counters", e.Player, e.MatchID)
	}
	return nil
}

// Measure names a summable quantity.
type Measure int

const (
	Goals Measure = iota
	Assists
	YellowCards
	RedCards
	MatchCount
)

// PlayerMeasures are the four per-player categories shown in ranking tables.
var PlayerMeasures = []Measure{Goals, Assists, YellowCards, RedCards}

func (m Measure) String() string {
	switch m {
	case Goals:
		return "goals"
	case Assists:
		return "assists"
	case YellowCards:
		return "yellow"
	case RedCards:
		return "red"
	case MatchCount:
		return "matches"
	default:
		return "?"
	}
}

// ParseMeasure accepts the canonical names plus a few aliases.
func ParseMeasure(s string) (Measure, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "goals", "goles", "g":
		return Goals, nil
	case "assists", "asistencias", "a":
		return Assists, nil
	case "yellow", "yellows", "amarillas", "y":
		return YellowCards, nil
	case "red", "reds", "rojas", "r":
		return RedCards, nil
	case "matches", "match_count":
		return MatchCount, nil
	}
	return 0, fmt.Errorf("unknown measure %q (want goals, assists, yellow or red)", s)
}

// ---- Snapshot ----

// Dataset is an immutable, loaded-once snapshot of the three record sets.
type Dataset struct {
	Matches []Match
	Players []Player
	Events  []PerformanceEvent
}

// Validate checks identity, counter and reference invariants across the snapshot.
func (d *Dataset) Validate() error {
	ids := make(map[int]struct{}, len(d.Matches))
	for _, m := range d.Matches {
		if _, dup := ids[m.ID]; dup {
			return fmt.Errorf("duplicate match id %d", m.ID)
		}
		if m.GoalsFor < 0 || m.GoalsAgainst < 0 {
			return fmt.Errorf("match %d has a negative score", m.ID)
		}
		ids[m.ID] = struct{}{}
	}
	names := make(map[string]struct{}, len(d.Players))
	for i := range d.Players {
		p := &d.Players[i]
		if err := p.Validate(); err != nil {
			return err
		}
		if _, dup := names[p.Name]; dup {
			return fmt.Errorf("duplicate player name %q", p.Name)
		}
		names[p.Name] = struct{}{}
	}
	for i := range d.Events {
		if err := d.Events[i].validate(); err != nil {
			return err
		}
	}
	// Reference checks run last so callers can treat a MissingReferenceError as
	// the only remaining problem.
	for i := range d.Events {
		e := &d.Events[i]
		if _, ok := ids[e.MatchID]; !ok {
			return &MissingReferenceError{Kind: "match", Key: fmt.Sprint(e.MatchID)}
		}
	}
	return nil
}

// Player looks up a roster entry by exact name.
func (d *Dataset) Player(name string) (*Player, bool) {
	for i := range d.Players {
		if d.Players[i].Name == name {
			return &d.Players[i], true
		}
	}
	return nil, false
}

// PlayerNames returns roster names in roster order.
func (d *Dataset) PlayerNames() []string {
	out := make([]string, 0, len(d.Players))
	for _, p := range d.Players {
		out = append(out, p.Name)
	}
	return out
}

// Tournaments returns distinct tournament names in first-seen match order.
func (d *Dataset) Tournaments() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, m := range d.Matches {
		if _, ok := seen[m.Tournament]; ok {
			continue
		}
		seen[m.Tournament] = struct{}{}
		out = append(out, m.Tournament)
	}
	return out
}
