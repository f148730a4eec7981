package cmd

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pable/go-team-stats/internal/aggregator"
	"github.com/pable/go-team-stats/internal/importer"
	"github.com/pable/go-team-stats/internal/logger"
	"github.com/pable/go-team-stats/internal/model"
	"github.com/pable/go-team-stats/internal/remote"
	"github.com/pable/go-team-stats/internal/report"
)

var importAppend bool

var importCmd = &cobra.Command{
	Use:   "import <workbook.xlsx|url>",
	Short: "Import a team workbook into the database",
	Long: `Read the Matches, Players and Stats sheets (and Tournaments, if present) of a
workbook and store them. The workbook may be a local file or an http(s) URL; a
shared Google Sheets link is fetched as xlsx, and TEAMSTATS_FETCH_TOKEN, when set,
is sent as a bearer token. By default the stored snapshot is replaced, so importing
the same workbook twice is a no-op. With --append, matches and players are
upserted and event rows are added to what is already stored.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVar(&importAppend, "append", false, "merge into the stored data instead of replacing it")
}

func runImport(cmd *cobra.Command, args []string) error {
	path := args[0]

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	logger.Printf("Reading %s...", path)
	res, err := readWorkbook(cmd, path)
	if err != nil {
		return fmt.Errorf("import workbook: %w", err)
	}
	for _, s := range res.Skipped {
		logger.Warnf("skipped %s", s)
	}
	for _, t := range res.UnplayedTournaments() {
		logger.Warnf("tournament %q has no matches", t)
	}
	ds := res.Dataset
	if err := checkDataset(ds); err != nil {
		return err
	}

	if importAppend {
		if err := db.InsertMatches(ds.Matches); err != nil {
			return fmt.Errorf("insert matches: %w", err)
		}
		if err := db.InsertPlayers(ds.Players); err != nil {
			return fmt.Errorf("insert players: %w", err)
		}
		if err := db.InsertEvents(ds.Events); err != nil {
			return fmt.Errorf("insert events: %w", err)
		}
	} else if err := db.ReplaceDataset(ds); err != nil {
		return fmt.Errorf("store dataset: %w", err)
	}

	ov, err := db.GetOverview()
	if err != nil {
		return fmt.Errorf("get overview: %w", err)
	}
	logger.Printf("Stored %d matches, %d players, %d event rows across %d tournaments",
		ov.Matches, ov.Players, ov.Events, ov.Tournaments)

	stored, err := loadDataset(db)
	if err != nil {
		return err
	}
	team, err := aggregator.TeamSummary(aggregator.Select(stored, tournament))
	if errors.Is(err, model.ErrEmptyDataset) {
		logger.Warnf("no matches for tournament %q", tournament)
		return nil
	}
	if err != nil {
		return err
	}
	report.PrintTeamSummary(cmd.OutOrStdout(), team)
	return nil
}

func readWorkbook(cmd *cobra.Command, path string) (*importer.Result, error) {
	if !remote.IsURL(path) {
		return importer.Load(path)
	}
	data, err := remote.NewClient(cfg.FetchToken).Download(cmd.Context(), path)
	if err != nil {
		return nil, err
	}
	return importer.Read(bytes.NewReader(data))
}
