package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-team-stats/internal/config"
)

var (
	cfg        = config.Load()
	dbPath     string
	tournament string
)

var rootCmd = &cobra.Command{
	Use:   "teamstats",
	Short: "Team match statistics tool",
	Long: `Import a team's match workbook and compute results, rankings,
player summaries and trends, optionally filtered to one tournament.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", cfg.DBPath, "path to SQLite database (env TEAMSTATS_DB)")
	rootCmd.PersistentFlags().StringVarP(&tournament, "tournament", "t", cfg.Tournament, `tournament filter, or "all" (env TEAMSTATS_TOURNAMENT)`)

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(tournamentsCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(rankingsCmd)
	rootCmd.AddCommand(playerCmd)
	rootCmd.AddCommand(trendCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(sqlCmd)
	rootCmd.AddCommand(dropCmd)
	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(analyzeCmd)
}
