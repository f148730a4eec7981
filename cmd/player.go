package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pable/go-team-stats/internal/aggregator"
	"github.com/pable/go-team-stats/internal/model"
	"github.com/pable/go-team-stats/internal/report"
)

var playerMeasure string

// playerCmd prints a summary card and per-match trend for one or more players.
var playerCmd = &cobra.Command{
	Use:   "player <name> [<name>...]",
	Short: "Summary and per-match trend for one or more players",
	Long: `Show position, status, totals, per-match rates and attendance (PJ/PT) for each
named player, followed by their per-match values for --measure across every match
in the selected tournament. Names are matched exactly, then case-insensitively.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPlayer,
}

func init() {
	playerCmd.Flags().StringVarP(&playerMeasure, "measure", "m", "goals", "trend measure: goals, assists, yellow or red")
}

func runPlayer(cmd *cobra.Command, args []string) error {
	measure, err := parsePlayerMeasure(playerMeasure)
	if err != nil {
		return err
	}
	ds, v, err := loadView()
	if err != nil {
		return err
	}
	for _, name := range args {
		if err := printPlayer(cmd, ds, v, name, measure); err != nil {
			return err
		}
	}
	return nil
}

func printPlayer(cmd *cobra.Command, ds *model.Dataset, v *aggregator.View, name string, measure model.Measure) error {
	out := cmd.OutOrStdout()
	card, err := aggregator.PlayerSummary(ds, v, name, time.Now())
	if err != nil {
		return err
	}
	report.PrintPlayerCard(out, card, v.Tournament)

	points, err := aggregator.PlayerTrend(v, card.Name, measure)
	if err != nil {
		fmt.Fprintf(out, "  (%s)\n", report.Placeholder(err))
		return nil
	}
	report.PrintPlayerTrend(out, card.Name, measure, points)
	return nil
}

// parsePlayerMeasure accepts the four player measures only.
func parsePlayerMeasure(s string) (model.Measure, error) {
	m, err := model.ParseMeasure(s)
	if err != nil {
		return 0, err
	}
	if m == model.MatchCount {
		return 0, fmt.Errorf("measure %q is not a player measure", s)
	}
	return m, nil
}
