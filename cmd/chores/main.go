// Package main is the entry point for the chores CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"chores/internal/cli"
	"chores/internal/commands"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Create dispatcher over the in-memory store
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, cli.MemoryFactory(os.Stderr))

	// Run, discard pending deletions, and exit with code
	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	dispatcher.Close()
	os.Exit(code)
}
