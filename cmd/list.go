package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pable/go-team-stats/internal/aggregator"
	"github.com/pable/go-team-stats/internal/report"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored matches in date order",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	_, v, err := loadView()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if v.Empty() {
		fmt.Fprintf(out, "No matches for %s.\n", report.TournamentLabel(v.Tournament))
		return nil
	}

	cols := []string{"ID", "DATE", "OPPONENT", "VENUE", "TOURNAMENT", "SCORE", "RESULT"}
	var rows [][]string
	for _, m := range aggregator.Chronological(v.Matches) {
		rows = append(rows, []string{
			strconv.Itoa(m.ID),
			m.Date.Format("2006-01-02"),
			m.Opponent,
			m.Venue,
			m.Tournament,
			fmt.Sprintf("%d-%d", m.GoalsFor, m.GoalsAgainst),
			m.Outcome().String(),
		})
	}
	report.PrintRows(out, cols, rows)
	fmt.Fprintf(out, "\n(%d matches)\n", len(rows))
	return nil
}
