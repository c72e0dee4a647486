// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ember Contributors

package main

import (
	"context"
	"log/slog"
	"net"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/emberpath/ember/internal/auth"
	"github.com/emberpath/ember/internal/command"
	"github.com/emberpath/ember/internal/command/handlers"
	"github.com/emberpath/ember/internal/config"
	"github.com/emberpath/ember/internal/game"
	"github.com/emberpath/ember/internal/logging"
	"github.com/emberpath/ember/internal/observability"
	"github.com/emberpath/ember/internal/session"
	"github.com/emberpath/ember/internal/telnet"
	"github.com/emberpath/ember/internal/text"
	"github.com/emberpath/ember/internal/world/sqlite"
)

// NewRootCmd creates the root command for the Ember CLI.
func NewRootCmd() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "ember <store>",
		Short: "Ember - a persistent multi-user text world",
		Long: `Ember serves a persistent, user-extensible text world over telnet.
<store> is the path to the world database; the special path "` + sqlite.MemorySentinel + `"
serves a throwaway in-memory world.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile, cmd.Flags())
			if err != nil {
				return err
			}
			cmd.SilenceUsage = true
			return serve(cmd.Context(), cfg, args[0])
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configFile, "config", "", "config file path")
	flags.String("host", config.Defaults().Host, "listen host")
	flags.Int("port", config.Defaults().Port, "listen port")
	flags.String("metrics-addr", "", "metrics listen address (empty disables)")
	flags.String("log-format", config.Defaults().LogFormat, "log format: json or text")
	flags.String("log-level", config.Defaults().LogLevel, "log level: debug, info, warn, error")
	flags.Bool("echo-io", false, "log every line sent and received")
	flags.Bool("show-tracebacks", false, "append error detail to internal error messages")
	flags.Bool("init", false, "seed a default world into an empty store")
	flags.String("motd", "", "message printed after login")

	cmd.AddCommand(newMigrateCmd())

	return cmd
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate <store>",
		Short: "Apply pending schema migrations and exit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			store, err := sqlite.Open(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer store.Close() //nolint:errcheck
			slog.Info("schema up to date", "store", args[0])
			return nil
		},
	}
}

func serve(ctx context.Context, cfg config.Config, storePath string) error {
	logging.SetDefault("ember", version, logging.Options{
		Format: cfg.LogFormat,
		Level:  parseLevel(cfg.LogLevel),
	})

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := sqlite.Open(ctx, storePath)
	if err != nil {
		return err
	}
	defer store.Close() //nolint:errcheck

	hasher := auth.NewHasher()
	if err := seedIfNeeded(ctx, store, hasher, cfg, storePath); err != nil {
		return err
	}

	registry := command.NewRegistry()
	handlers.Register(registry)

	sessions := session.NewRegistry()
	engine := game.NewEngine(store, sessions, registry, auth.NewService(hasher), game.Options{
		MOTD:           cfg.MOTD,
		OnLogin:        cfg.OnLogin,
		BootstrapID:    cfg.BootstrapID,
		ShowTracebacks: cfg.ShowTracebacks,
		Texts:          text.NewTable(cfg.Texts),
	})

	server := telnet.NewServer(net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)), engine, cfg.EchoIO)

	if cfg.MetricsAddr != "" {
		obs := observability.NewServer(cfg.MetricsAddr, func() bool {
			return server.Addr() != ""
		})
		if _, err := obs.Start(); err != nil {
			return err
		}
		defer func() {
			shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := obs.Stop(shutCtx); err != nil {
				slog.Error("observability shutdown failed", "error", err)
			}
		}()
	}

	err = server.Run(ctx)
	slog.Info("server stopped")
	return err
}

// seedIfNeeded writes the default world into a store that has none. An
// in-memory store is always fresh and is seeded unconditionally.
func seedIfNeeded(ctx context.Context, store *sqlite.Store, hasher *auth.Hasher, cfg config.Config, storePath string) error {
	if !cfg.Init && storePath != sqlite.MemorySentinel {
		return nil
	}
	initialized, err := store.Initialized(ctx)
	if err != nil {
		return err
	}
	if initialized {
		return nil
	}
	hash, salt, err := hasher.Hash(cfg.BootstrapPassword)
	if err != nil {
		return err
	}
	if err := store.Seed(ctx, hash, salt); err != nil {
		return err
	}
	slog.Info("seeded default world", "bootstrap_id", sqlite.SeedCharacterID)
	return nil
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}
