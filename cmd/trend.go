package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pable/go-team-stats/internal/aggregator"
	"github.com/pable/go-team-stats/internal/report"
)

var trendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Goals scored and matches played per month",
	Args:  cobra.NoArgs,
	RunE:  runTrend,
}

func runTrend(cmd *cobra.Command, args []string) error {
	_, v, err := loadView()
	if err != nil {
		return err
	}
	buckets, err := aggregator.MonthlyTrend(v)
	if err != nil {
		return err
	}
	report.PrintMonthlyTrend(cmd.OutOrStdout(), buckets)
	return nil
}
