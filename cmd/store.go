package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pable/go-team-stats/internal/aggregator"
	"github.com/pable/go-team-stats/internal/logger"
	"github.com/pable/go-team-stats/internal/model"
	"github.com/pable/go-team-stats/internal/storage"
)

func openStore() (*storage.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return db, nil
}

// loadDataset reads the stored snapshot and checks it. Events pointing at unknown
// matches are reported and left out of every aggregate; any other problem fails.
func loadDataset(db *storage.DB) (*model.Dataset, error) {
	ds, err := db.LoadDataset()
	if err != nil {
		return nil, err
	}
	if len(ds.Matches) == 0 {
		return nil, fmt.Errorf("no matches stored yet, run 'teamstats import <workbook.xlsx>' first")
	}
	if err := checkDataset(ds); err != nil {
		return nil, err
	}
	return ds, nil
}

func checkDataset(ds *model.Dataset) error {
	err := ds.Validate()
	switch {
	case err == nil:
		return nil
	case errors.Is(err, model.ErrMissingReference):
		_, orphans := aggregator.JoinEvents(ds.Matches, ds.Events)
		logger.Warnf("%d event row(s) reference unknown matches and are ignored (first: %v)", len(orphans), err)
		return nil
	default:
		return fmt.Errorf("invalid dataset: %w", err)
	}
}

// loadView opens the store and returns the snapshot with the --tournament view.
func loadView() (*model.Dataset, *aggregator.View, error) {
	db, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	defer db.Close()

	ds, err := loadDataset(db)
	if err != nil {
		return nil, nil, err
	}
	return ds, aggregator.Select(ds, tournament), nil
}
