// Package commands provides the command interface and implementations.
package commands

import (
	"bufio"
	"context"
	"flag"
	"io"

	"chores/internal/config"
	"chores/internal/confirm"
	"chores/internal/service"
)

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsStore returns true if the command reads or mutates the chore list.
	// Commands like help and version return false.
	NeedsStore() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// cfg is always provided (config dir, undo window, flags).
	// svc is nil if NeedsStore() returns false.
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int
}

// ConfirmAware is implemented by commands that ask before destroying data.
// The dispatcher injects the confirmation service before Run.
type ConfirmAware interface {
	SetConfirmer(c confirm.Service)
}

// LineRunner runs one command line against the current session.
type LineRunner func(ctx context.Context, args []string, out, errOut io.Writer) int

// Interactive is implemented by commands that read further command lines.
// The dispatcher injects its line runner and shared input before Run.
type Interactive interface {
	SetRunner(run LineRunner, in *bufio.Reader)
}
