package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	api "github.com/edgar-analytics/edgar-dashboard/internal/api/http"
	"github.com/edgar-analytics/edgar-dashboard/internal/dashboard"
	"github.com/edgar-analytics/edgar-dashboard/internal/report"
	"github.com/edgar-analytics/edgar-dashboard/internal/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the reporting API and dashboard",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	dbh, err := openDB(ctx)
	cancel()
	if err != nil {
		return err
	}
	defer dbh.Close()

	bs, err := storage.NewFSStore(cfg.BlobBasePath)
	if err != nil {
		return fmt.Errorf("blob store: %w", err)
	}
	dash, err := dashboard.Routes(cfg.APIBaseURL, logger)
	if err != nil {
		return err
	}
	notFound, err := dashboard.NotFoundHandler(cfg.APIBaseURL, logger)
	if err != nil {
		return err
	}

	router := api.NewRouter(api.Deps{
		Store:     report.NewSQLStore(dbh.SQL, string(dbh.Driver)),
		Blobs:     bs,
		Log:       logger,
		Origins:   cfg.CORSOrigins,
		Timeout:   cfg.RequestTimeout,
		Dashboard: dash,
		NotFound:  notFound,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(done)

	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.HTTPAddr, "mode", cfg.Mode, "driver", dbh.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-done:
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
