package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pable/go-team-stats/internal/report"
)

var tournamentsCmd = &cobra.Command{
	Use:   "tournaments",
	Short: "List tournaments with their match counts",
	Args:  cobra.NoArgs,
	RunE:  runTournaments,
}

func runTournaments(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	list, err := db.ListTournaments()
	if err != nil {
		return fmt.Errorf("list tournaments: %w", err)
	}
	out := cmd.OutOrStdout()
	if len(list) == 0 {
		fmt.Fprintln(out, "No matches stored yet. Run 'teamstats import <workbook.xlsx>' to add some.")
		return nil
	}
	rows := make([][]string, len(list))
	for i, t := range list {
		rows[i] = []string{t.Name, strconv.Itoa(t.Matches)}
	}
	report.PrintRows(out, []string{"TOURNAMENT", "MATCHES"}, rows)
	return nil
}
