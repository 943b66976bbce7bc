package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/edgar-analytics/edgar-dashboard/internal/config"
	"github.com/edgar-analytics/edgar-dashboard/internal/db"
	"github.com/edgar-analytics/edgar-dashboard/internal/lib/slogcustom"
)

var (
	envFiles []string
	cfg      config.Config
	logger   *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "edgar",
	Short: "Edgar exam analytics",
	Long: `Reporting API and dashboard over the Edgar exam database.

Configuration comes from the environment, optionally seeded from .env files.
Without a subcommand the HTTP server is started.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadDotEnv(envFiles...); err != nil {
			return fmt.Errorf("load env: %w", err)
		}
		cfg = config.FromEnv()
		logger = slogcustom.New(cfg.LogFormat, cfg.LogLevel)
		slog.SetDefault(logger)
		return nil
	},
	RunE: runServe,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "dotenv files to load (default .env)")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(reportCmd)
}

func openDB(ctx context.Context) (*db.DB, error) {
	driver, err := db.ParseDriver(cfg.DBDriver)
	if err != nil {
		return nil, err
	}
	d, err := db.Open(ctx, driver, cfg.DSN(), cfg.DBMaxConns)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	return d, nil
}
