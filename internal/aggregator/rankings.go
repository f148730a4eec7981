package aggregator

import (
	"golang.org/x/sync/errgroup"

	"github.com/pable/go-team-stats/internal/model"
)

// Table is one ranking table. Err is set instead of Entries when the table is empty.
type Table struct {
	Measure model.Measure
	Entries []Entry
	Err     error
}

// RankingSet holds the goals, assists, yellow card and red card tables in that order.
type RankingSet struct {
	Tables []Table
}

// Table returns the table for measure, or nil if it was not computed.
func (s *RankingSet) Table(m model.Measure) *Table {
	for i := range s.Tables {
		if s.Tables[i].Measure == m {
			return &s.Tables[i]
		}
	}
	return nil
}

// Rankings computes the four player ranking tables concurrently. A failing table
// records its own error and never affects the others.
func Rankings(v *View) RankingSet {
	set := RankingSet{Tables: make([]Table, len(model.PlayerMeasures))}
	var g errgroup.Group
	for i, m := range model.PlayerMeasures {
		g.Go(func() error {
			entries, err := Ranking(v, m)
			set.Tables[i] = Table{Measure: m, Entries: entries, Err: err}
			return nil
		})
	}
	_ = g.Wait()
	return set
}
