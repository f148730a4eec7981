package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/go-team-stats/internal/report"
)

var sqlCmd = &cobra.Command{
	Use:   "sql <query>",
	Short: "Run a raw SQL query against the stats database",
	Long: `Run an arbitrary SQL query against the stats database and print results as a table.

Schema overview:
  matches(id, match_date TEXT 'YYYY-MM-DD', opponent, venue, tournament,
    goals_for, goals_against)
  players(seq, name, position, active 0/1, matches_played, matches_eligible,
    end_date TEXT)
  performance_events(seq, match_id, player, goals, assists, yellow_cards, red_cards)

Example:
  teamstats sql "SELECT venue, COUNT(*) FROM matches WHERE goals_for > goals_against GROUP BY venue"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSQL,
}

func runSQL(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	cols, rows, err := db.QueryRaw(query)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(rows) == 0 {
		fmt.Fprintln(out, "(no rows)")
		return nil
	}
	report.PrintRows(out, cols, rows)
	fmt.Fprintf(out, "\n(%d rows)\n", len(rows))
	return nil
}
