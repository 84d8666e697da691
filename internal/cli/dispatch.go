package cli

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"chores/internal/commands"
	"chores/internal/config"
	"chores/internal/confirm"
	"chores/internal/exitcode"
	"chores/internal/service"
)

// ServiceFactory creates a Service from config.
// Used to inject the store during dispatch.
type ServiceFactory func(ctx context.Context, cfg *config.Config) (service.Service, error)

// Dispatcher handles command-line parsing and dispatch.
// The store is created on first use and shared by later dispatches, which
// is what lets shell lines undo each other's deletions.
type Dispatcher struct {
	registry *commands.Registry
	factory  ServiceFactory
	in       *bufio.Reader
	svc      service.Service

	// session holds the common flags of a running shell; lines typed
	// into it start from these values.
	session commonFlags
}

// commonFlags are the flags every command accepts.
type commonFlags struct {
	configDir  string
	quiet      bool
	debug      bool
	yes        bool
	seedFile   string
	undoWindow string
	logFile    string
}

func (f *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.configDir, "config", f.configDir, "")
	fs.BoolVar(&f.quiet, "quiet", f.quiet, "")
	fs.BoolVar(&f.debug, "debug", f.debug, "")
	fs.BoolVar(&f.yes, "yes", f.yes, "")
	fs.BoolVar(&f.yes, "y", f.yes, "")
	fs.StringVar(&f.seedFile, "seed", f.seedFile, "")
	fs.StringVar(&f.undoWindow, "undo-window", f.undoWindow, "")
	fs.StringVar(&f.logFile, "log-file", f.logFile, "")
}

// NewDispatcher creates a new dispatcher with the given registry and service factory.
func NewDispatcher(registry *commands.Registry, factory ServiceFactory) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		factory:  factory,
		in:       bufio.NewReader(os.Stdin),
	}
}

// SetInput replaces the reader used for confirmations and shell lines.
func (d *Dispatcher) SetInput(in io.Reader) {
	d.in = bufio.NewReader(in)
}

// Close releases the store. Pending deletions become permanent.
func (d *Dispatcher) Close() error {
	if c, ok := d.svc.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	// No args -> dispatch to "list" command with no args
	if len(args) == 0 {
		return d.dispatch(ctx, "list", nil, out, errOut)
	}

	cmdName := args[0]

	// If first token starts with -, it's an error (flags require a command)
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	return d.dispatch(ctx, cmdName, args[1:], out, errOut)
}

func (d *Dispatcher) dispatch(ctx context.Context, cmdName string, args []string, out, errOut io.Writer) int {
	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}
	return d.dispatchCommand(ctx, cmd, args, out, errOut)
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	// Create flag set with custom error handling
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard) // We handle errors ourselves

	// Common flags, defaulting to the enclosing shell's
	flags := d.session
	flags.register(fs)

	// Register command-specific flags
	cmd.RegisterFlags(fs)

	// Parse flags
	if err := fs.Parse(args); err != nil {
		return reportFlagError(errOut, err)
	}

	// Check if first positional arg starts with - (should have been parsed as flag)
	positionalArgs := fs.Args()
	if len(positionalArgs) > 0 && strings.HasPrefix(positionalArgs[0], "-") {
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", positionalArgs[0])
		return exitcode.UserError
	}

	// Load config: defaults, config.toml, .env, environment, then flags
	cfg, err := config.Load(flags.configDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.ConfigError
	}
	cfg.Quiet = flags.quiet
	cfg.Debug = flags.debug
	if flags.yes {
		cfg.AssumeYes = true
	}
	if flags.seedFile != "" {
		cfg.SeedFile = flags.seedFile
	}
	if flags.logFile != "" {
		cfg.LogFile = flags.logFile
	}
	if flags.undoWindow != "" {
		w, err := config.ParseUndoWindow(flags.undoWindow)
		if err != nil {
			fmt.Fprintf(errOut, "error: --undo-window: %s\n", err)
			return exitcode.ConfigError
		}
		cfg.UndoWindow = w
	}

	var svc service.Service
	if cmd.NeedsStore() {
		svc, err = d.service(ctx, cfg)
		if err != nil {
			fmt.Fprintf(errOut, "error: %s\n", err)
			return exitcode.ConfigError
		}
	}

	if ca, ok := cmd.(commands.ConfirmAware); ok {
		ca.SetConfirmer(d.confirmer(cfg, errOut))
	}
	if ic, ok := cmd.(commands.Interactive); ok {
		ic.SetRunner(d.Run, d.in)
		prev := d.session
		d.session = flags
		defer func() { d.session = prev }()
	}

	// Run command
	return cmd.Run(ctx, cfg, svc, positionalArgs, out, errOut)
}

// service returns the session store, creating it on first use.
func (d *Dispatcher) service(ctx context.Context, cfg *config.Config) (service.Service, error) {
	if d.svc != nil {
		return d.svc, nil
	}
	if d.factory == nil {
		return nil, fmt.Errorf("no store configured")
	}
	svc, err := d.factory(ctx, cfg)
	if err != nil {
		return nil, err
	}
	d.svc = svc
	return svc, nil
}

func (d *Dispatcher) confirmer(cfg *config.Config, errOut io.Writer) confirm.Service {
	if cfg.AssumeYes {
		return confirm.Always(true)
	}
	return confirm.NewPrompt(d.in, errOut)
}

func reportFlagError(errOut io.Writer, err error) int {
	errStr := err.Error()

	// Check for missing flag value
	if strings.Contains(errStr, "needs a value") || strings.Contains(errStr, "flag needs an argument") {
		// Extract flag name
		parts := strings.Split(errStr, ":")
		if len(parts) > 0 {
			flagPart := strings.TrimSpace(parts[len(parts)-1])
			fmt.Fprintf(errOut, "error: flag needs an argument: %s\n", flagPart)
			return exitcode.UserError
		}
	}

	// Check for unknown flag
	if strings.HasPrefix(errStr, "flag provided but not defined:") {
		flagName := strings.TrimPrefix(errStr, "flag provided but not defined: ")
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", flagName)
		return exitcode.UserError
	}

	fmt.Fprintf(errOut, "error: %s\n", errStr)
	return exitcode.UserError
}
