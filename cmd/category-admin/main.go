package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mytheresa/category-admin/app"
	"github.com/mytheresa/category-admin/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	configPath string

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "category-admin",
	Short: "Admin pages for category records backed by a REST API",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return err
		}
		logger, err = cfg.NewLogger()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the admin pages",
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := app.NewAdmin(cfg, logger)
		if err != nil {
			return err
		}
		logger.Info("admin using api", zap.String("base_url", cfg.APIBaseURL))
		return app.Serve(cmd.Context(), cfg.AdminAddr, h, logger)
	},
}

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Serve the categories REST API",
	RunE: func(cmd *cobra.Command, args []string) error {
		h, closeDB, err := app.NewAPI(cfg, logger)
		if err != nil {
			return err
		}
		defer closeDB()
		return app.Serve(cmd.Context(), cfg.APIAddr, h, logger)
	},
}

var devCmd = &cobra.Command{
	Use:   "dev",
	Short: "Serve the REST API and the admin pages in one process",
	RunE: func(cmd *cobra.Command, args []string) error {
		api, closeDB, err := app.NewAPI(cfg, logger)
		if err != nil {
			return err
		}
		defer closeDB()

		admin, err := app.NewAdmin(cfg, logger)
		if err != nil {
			return err
		}

		g, ctx := errgroup.WithContext(cmd.Context())
		g.Go(func() error { return app.Serve(ctx, cfg.APIAddr, api, logger.Named("api")) })
		g.Go(func() error { return app.Serve(ctx, cfg.AdminAddr, admin, logger.Named("admin")) })
		return g.Wait()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
	rootCmd.AddCommand(serveCmd, apiCmd, devCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
