package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-team-stats/internal/aggregator"
)

var dropForce bool

var dropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Delete stored data",
	Long: `Without --tournament, delete the whole SQLite database; re-import the workbook
to rebuild it. With --tournament, remove only that tournament's matches and their
event rows, keeping the roster and every other tournament.`,
	Args: cobra.NoArgs,
	RunE: runDrop,
}

func init() {
	dropCmd.Flags().BoolVarP(&dropForce, "force", "f", false, "skip confirmation prompt")
}

func runDrop(cmd *cobra.Command, _ []string) error {
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	whole := aggregator.IsAll(tournament)

	if !dropForce {
		if whole {
			fmt.Fprintf(errOut, "This will permanently delete: %s\n", dbPath)
		} else {
			fmt.Fprintf(errOut, "This will delete every %q match from %s\n", tournament, dbPath)
		}
		fmt.Fprintln(errOut, "Re-run with --force to confirm.")
		return nil
	}

	if !whole {
		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()
		n, err := db.DeleteTournament(tournament)
		if err != nil {
			return fmt.Errorf("drop tournament: %w", err)
		}
		if n == 0 {
			fmt.Fprintf(out, "No %q matches stored, nothing to drop.\n", tournament)
			return nil
		}
		fmt.Fprintf(out, "Deleted %d %q matches.\n", n, tournament)
		return nil
	}

	if err := os.Remove(dbPath); err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(out, "Database does not exist, nothing to drop.")
			return nil
		}
		return fmt.Errorf("remove database: %w", err)
	}
	// WAL side files outlive an unclean close.
	for _, suffix := range []string{"-wal", "-shm"} {
		_ = os.Remove(dbPath + suffix)
	}
	fmt.Fprintf(out, "Deleted: %s\n", dbPath)
	return nil
}
