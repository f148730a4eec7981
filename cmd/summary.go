package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pable/go-team-stats/internal/aggregator"
	"github.com/pable/go-team-stats/internal/report"
)

// summaryCmd prints the team's headline numbers for the selected tournament.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show the team summary",
	Long: `Display results (W-D-L, win rate), goals, assists and goals conceded with
per-match rates, clean sheets, the longest winning streak, the top scorer and
assister, and the venues with the most wins and losses.`,
	Args: cobra.NoArgs,
	RunE: runSummary,
}

func runSummary(cmd *cobra.Command, args []string) error {
	_, v, err := loadView()
	if err != nil {
		return err
	}
	team, err := aggregator.TeamSummary(v)
	if err != nil {
		return err
	}
	report.PrintTeamSummary(cmd.OutOrStdout(), team)
	return nil
}
