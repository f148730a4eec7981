package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pable/go-team-stats/internal/model"
	"github.com/pable/go-team-stats/internal/report"
)

var showCmd = &cobra.Command{
	Use:   "show <match-id>",
	Short: "Show one match with its per-player events",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("match id %q is not a number", args[0])
	}

	ds, _, err := loadView()
	if err != nil {
		return err
	}
	m, events, err := findMatch(ds, id)
	if err != nil {
		return err
	}
	report.PrintMatch(cmd.OutOrStdout(), m, events)
	return nil
}

// findMatch looks a match up by id. The tournament filter is not applied.
func findMatch(ds *model.Dataset, id int) (*model.Match, []model.PerformanceEvent, error) {
	for i := range ds.Matches {
		if ds.Matches[i].ID != id {
			continue
		}
		var events []model.PerformanceEvent
		for _, e := range ds.Events {
			if e.MatchID == id {
				events = append(events, e)
			}
		}
		return &ds.Matches[i], events, nil
	}
	return nil, nil, &model.MissingReferenceError{Kind: "match", Key: strconv.Itoa(id)}
}
