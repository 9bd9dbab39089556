package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/osse101/onsenkatsu/internal/app"
	"github.com/osse101/onsenkatsu/internal/bootstrap"
	"github.com/osse101/onsenkatsu/internal/config"
	"github.com/osse101/onsenkatsu/internal/logger"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	registry := newRegistry()
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		registry.PrintHelp(stdout)
		if len(args) == 0 {
			return 1
		}
		return 0
	}

	cmd, ok := registry.Get(args[0])
	if !ok {
		fmt.Fprintf(stderr, "unknown command: %s\n\n", args[0])
		registry.PrintHelp(stderr)
		return 1
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer logFile.Close()

	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		slog.Warn("Environment check failed", "error", err)
	}
	for _, w := range warnings {
		slog.Warn(w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithRequestID(ctx, logger.GenerateRequestID())

	bus, journal, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	components, err := bootstrap.InitializeServices(ctx, cfg, bus)
	if err != nil {
		_ = journal.Close()
		slog.Error("Failed to initialize services", "error", err)
		fmt.Fprintln(stderr, app.UserMessage(err))
		return 1
	}
	components.Journal = journal
	defer components.Close()

	a := app.New(ctx, components.Services, app.NewFileStateStore(cfg.StatePath()), stdout, app.Options{
		EquippedFetchTimeout: cfg.EquippedFetchTimeout,
		ClientSideExp:        cfg.CompanionClientExp,
		OAuthRedirectURL:     cfg.OAuthRedirectURL(),
		OAuthCallbackPort:    cfg.OAuthCallbackPort,
		JournalPath:          cfg.JournalPath(),
	})

	if err := cmd.Run(ctx, a, args[1:]); err != nil {
		logger.FromContext(ctx).Error("Command failed", "command", cmd.Name(), "error", err)
		fmt.Fprintln(stderr, app.UserMessage(err))
		return 1
	}
	return 0
}
