package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	registry := newRegistry()

	if len(os.Args) < 2 {
		registry.PrintHelp(os.Stdout)
		os.Exit(1)
	}

	cmd, ok := registry.Get(os.Args[1])
	if !ok {
		PrintError("Unknown command: %s", os.Args[1])
		registry.PrintHelp(os.Stdout)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.Run(ctx, os.Args[2:]); err != nil {
		PrintError("%v", err)
		stop()
		os.Exit(1)
	}
}
