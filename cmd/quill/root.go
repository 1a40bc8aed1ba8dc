// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quill Contributors

package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/quillmail/quill/internal/command"
	"github.com/quillmail/quill/internal/command/commands"
	"github.com/quillmail/quill/internal/config"
	"github.com/quillmail/quill/internal/hooks"
	"github.com/quillmail/quill/internal/logging"
	"github.com/quillmail/quill/internal/observability"
)

const version = "0.1.0-dev"

// Global flags available to all subcommands.
var configFile string

// NewRootCmd creates the root command for the Quill CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quill",
		Short: "Quill - a terminal mail client",
		Long: `Quill is a terminal mail client with per-mode commands,
Lua hooks, and a notmuch-style search interface.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd)
		},
	}

	// Global flag for config file path
	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")

	cmd.Flags().String("log-format", "", "log format (json or text)")
	cmd.Flags().String("metrics-addr", "", "metrics/health HTTP address (empty = disabled)")

	cmd.AddCommand(NewCommandsCmd())

	return cmd
}

// run wires configuration, logging, the registry, and the factory, then
// hands off to the interactive loop.
func run(cmd *cobra.Command) error {
	cfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return err
	}

	if err := setupLogging(cfg.LogFormat); err != nil {
		return err
	}

	reg := command.NewRegistry()
	commands.RegisterAll(reg)

	provider, err := hooks.Load(cfg.HooksFile)
	if err != nil {
		logging.Error(slog.Default(), "failed to load hooks file", err)
		return err
	}
	defer provider.Close()

	aliases := command.NewAliasTable()
	aliases.Load(cfg.Aliases)

	factory, err := command.NewFactory(reg,
		command.WithHookProvider(provider),
		command.WithAliases(aliases),
	)
	if err != nil {
		return err
	}

	if cfg.MetricsAddr != "" {
		srv := observability.NewServer(cfg.MetricsAddr, func() bool { return true })
		command.RegisterMetrics(srv.Registry())
		if _, err := srv.Start(); err != nil {
			return err
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Stop(ctx)
		}()
	}

	slog.Info("starting quill",
		"log_format", cfg.LogFormat,
		"hooks_file", cfg.HooksFile,
	)

	return runInteractive(cmd, factory)
}

// runInteractive owns the input loop.
func runInteractive(cmd *cobra.Command, _ *command.Factory) error {
	cmd.Println("interactive interface: not implemented yet")
	return nil
}

// setupLogging configures the default slog logger.
func setupLogging(format string) error {
	handler, err := logging.NewHandler(os.Stderr, format, "quill", version, slog.LevelInfo)
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(handler))
	return nil
}
