package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/adaptlearn/internal/bootstrap"
	"github.com/at-ishikawa/adaptlearn/internal/config"
	"github.com/at-ishikawa/adaptlearn/internal/engine"
	"github.com/at-ishikawa/adaptlearn/internal/metrics"
	"github.com/at-ishikawa/adaptlearn/internal/server"
)

var (
	configFile string
	debugMode  bool
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "adaptlearn-server",
		Short:         "Adaptive learning engine HTTP server",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogger(debugMode)
			if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("godotenv.Load() > %w", err)
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return fmt.Errorf("loadConfig() > %w", err)
			}
			return run(cmd.Context(), cfg)
		},
	}
	rootCmd.Flags().StringVar(&configFile, "config", "", "config file path")
	rootCmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug mode")
	rootCmd.Flags().AddFlagSet(bootstrap.StoreFlags())
	return rootCmd
}

func run(ctx context.Context, cfg *config.Config) error {
	app := bootstrap.New()

	repos, closeStore, err := bootstrap.OpenRepositories(cfg)
	if err != nil {
		return fmt.Errorf("bootstrap.OpenRepositories() > %w", err)
	}
	app.AddShutdownHook("store", func(context.Context) error {
		return closeStore()
	})

	srv, err := newServer(cfg, repos)
	if err != nil {
		return err
	}
	app.AddShutdownHook("http server", srv.Shutdown)

	return app.Run(ctx, func(ctx context.Context) error {
		slog.Default().Info("starting server", "addr", srv.Addr, "store", cfg.Store.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
}

func newServer(cfg *config.Config, repos engine.Repositories) (*http.Server, error) {
	registry := prometheus.NewRegistry()
	if err := registry.Register(collectors.NewGoCollector()); err != nil {
		return nil, fmt.Errorf("register go collector: %w", err)
	}
	m := metrics.New(registry)

	service := engine.New(repos, cfg.Engine, engine.WithMetrics(m))
	return server.New(cfg.Server, server.NewHTTPHandler(service, cfg.Server, m, registry)), nil
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("config.NewConfigLoader() > %w", err)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, err
	}
	if err := bootstrap.ApplyStoreFlags(cmd.Flags(), &cfg.Store); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setupLogger configures the default logger based on debug mode
func setupLogger(debugMode bool) {
	logLevel := slog.LevelInfo
	if debugMode {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(
		slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		})),
	)
}
