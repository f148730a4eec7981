package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pable/go-team-stats/internal/api"
	"github.com/pable/go-team-stats/internal/logger"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the statistics as a JSON API",
	Long: `Start an HTTP server exposing read-only JSON endpoints:

  GET /health
  GET /api/tournaments
  GET /api/summary?tournament=
  GET /api/rankings?tournament=
  GET /api/players
  GET /api/players/:name?tournament=
  GET /api/players/:name/trend?measure=goals&tournament=
  GET /api/trend/monthly?tournament=

Requests without ?tournament= use the --tournament flag.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", cfg.Addr, "listen address (env TEAMSTATS_ADDR)")
}

func runServe(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	// Fail fast on a bad snapshot; handlers reload it per request.
	if _, err := loadDataset(db); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         serveAddr,
		Handler:      api.NewRouter(api.NewHandler(db, tournament)),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Printf("Server starting on %s", serveAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Printf("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
