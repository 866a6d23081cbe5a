// Copyright 2026 The Deadball Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/deadball-project/deadball-desktop/lib/backend"
	"github.com/deadball-project/deadball-desktop/lib/config"
	"github.com/deadball-project/deadball-desktop/lib/diaglog"
	"github.com/deadball-project/deadball-desktop/lib/lifecycle"
	"github.com/deadball-project/deadball-desktop/lib/process"
	"github.com/deadball-project/deadball-desktop/lib/version"
)

func main() {
	if err := run(); err != nil {
		process.Fatal(err)
	}
}

func run() error {
	var (
		configPath  string
		showVersion bool
		verbose     bool
	)

	flags := pflag.NewFlagSet("deadball-shell", pflag.ContinueOnError)
	flags.StringVar(&configPath, "config", "", "path to shell config file (default: $"+config.EnvVar+", then built-in defaults)")
	flags.BoolVar(&showVersion, "version", false, "print version information and exit")
	flags.BoolVarP(&verbose, "verbose", "v", false, "log tier probes and other debug events")
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	if showVersion {
		fmt.Printf("deadball-shell %s\n", version.Info())
		return nil
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logPath := cfg.Paths.LogFile
	if logPath == "" {
		logPath = diaglog.DefaultPath()
	}
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger, logCloser := diaglog.New(logPath, level)
	defer logCloser.Close()
	slog.SetDefault(logger)

	logger.Info("deadball shell starting",
		"version", version.Short(),
		"environment", string(cfg.Environment),
		"log", logPath)

	resolver := &backend.Resolver{
		DevCheckout:  cfg.Paths.DevCheckout,
		DataDir:      cfg.Paths.DataDir,
		ResourcesDir: cfg.Paths.Resources,
		Logger:       logger,
	}
	if resolver.DataDir == "" {
		resolver.DataDir = backend.DefaultDataDir()
		if resolver.DataDir == "" {
			logger.Warn("no user config directory; data-copy and extraction tiers disabled")
		}
	}
	if resolver.ResourcesDir == "" {
		resolver.ResourcesDir = executableRelativeResources()
	}

	// In the desktop build the windowing layer subscribes to this and
	// surfaces the failure in the webview. The headless host records
	// it in the diagnostics log.
	notifier := backend.NotifierFunc(func(message string) {
		logger.Error("backend-error", "message", message)
	})

	supervisor := backend.NewSupervisor(logger, notifier)
	bridge := lifecycle.New(resolver, supervisor, cfg.Backend, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bridge.HandleEvent(lifecycle.EventSetup)

	<-ctx.Done()
	logger.Info("shutdown requested")

	// The real host fires exit-requested and then a final exit; both
	// funnel into the same idempotent terminate.
	bridge.HandleEvent(lifecycle.EventExitRequested)
	bridge.HandleEvent(lifecycle.EventExit)
	return nil
}

// executableRelativeResources returns the conventional bundled
// resources directory: "resources" next to the running executable.
func executableRelativeResources() string {
	executable, err := os.Executable()
	if err != nil {
		return ""
	}
	return filepath.Join(filepath.Dir(executable), "resources")
}
