package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pable/go-team-stats/internal/aggregator"
	"github.com/pable/go-team-stats/internal/report"
)

var rankingsCmd = &cobra.Command{
	Use:   "rankings",
	Short: "Player rankings for goals, assists, yellow and red cards",
	Long:  "Print one table per measure, highest first. Players with a zero total are left out.",
	Args:  cobra.NoArgs,
	RunE:  runRankings,
}

func runRankings(cmd *cobra.Command, args []string) error {
	_, v, err := loadView()
	if err != nil {
		return err
	}
	report.PrintRankings(cmd.OutOrStdout(), aggregator.Rankings(v))
	return nil
}
