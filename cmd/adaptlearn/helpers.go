package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/adaptlearn/internal/apiclient"
	"github.com/at-ishikawa/adaptlearn/internal/bootstrap"
	"github.com/at-ishikawa/adaptlearn/internal/cli"
	"github.com/at-ishikawa/adaptlearn/internal/config"
	"github.com/at-ishikawa/adaptlearn/internal/engine"
	"github.com/at-ishikawa/adaptlearn/internal/server"
)

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, err
	}
	if err := bootstrap.ApplyStoreFlags(cmd.Flags(), &cfg.Store); err != nil {
		return nil, fmt.Errorf("invalid store flags: %w", err)
	}
	return cfg, nil
}

// runEngine calls fn with the server client when --remote is set and with a
// local engine over the configured store otherwise.
func runEngine(cmd *cobra.Command, fn func(ctx context.Context, e server.Engine, cfg *config.Config, r *cli.Renderer) error) (err error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	renderer := cli.NewRenderer(cmd.OutOrStdout())

	if remoteURL != "" {
		return fn(cmd.Context(), apiclient.New(remoteURL), cfg, renderer)
	}

	repos, closeStore, err := bootstrap.OpenRepositories(cfg)
	if err != nil {
		return fmt.Errorf("bootstrap.OpenRepositories() > %w", err)
	}
	defer func() {
		if closeErr := closeStore(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close store: %w", closeErr))
		}
	}()
	return fn(cmd.Context(), engine.New(repos, cfg.Engine), cfg, renderer)
}

// runLocal is runEngine for commands which need direct store access.
func runLocal(cmd *cobra.Command, fn func(ctx context.Context, repos engine.Repositories, cfg *config.Config, r *cli.Renderer) error) (err error) {
	if remoteURL != "" {
		return fmt.Errorf("%s does not support --remote", cmd.Name())
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	repos, closeStore, err := bootstrap.OpenRepositories(cfg)
	if err != nil {
		return fmt.Errorf("bootstrap.OpenRepositories() > %w", err)
	}
	defer func() {
		if closeErr := closeStore(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close store: %w", closeErr))
		}
	}()
	return fn(cmd.Context(), repos, cfg, cli.NewRenderer(cmd.OutOrStdout()))
}
