package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"chores/internal/config"
	"chores/internal/exitcode"
	"chores/internal/service"
)

// Version is the application version. Set at build time with
// -ldflags "-X chores/internal/commands.Version=...".
var Version = "0.1.0"

func init() {
	Register(&VersionCmd{})
}

// VersionCmd implements the version command.
type VersionCmd struct {
	verbose bool
}

func (c *VersionCmd) Name() string      { return "version" }
func (c *VersionCmd) Aliases() []string { return nil }
func (c *VersionCmd) Synopsis() string  { return "Print version" }
func (c *VersionCmd) Usage() string     { return "chores version [--verbose]" }
func (c *VersionCmd) NeedsStore() bool  { return false }

func (c *VersionCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.verbose, "verbose", false, "")
}

func (c *VersionCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprintf(out, "chores %s\n", Version)
	if c.verbose {
		path := cfg.ConfigPath()
		if !cfg.HasConfigFile() {
			path += " (not found)"
		}
		fmt.Fprintf(out, "config: %s\n", path)
		fmt.Fprintf(out, "undo window: %s\n", cfg.UndoWindow)
	}
	return exitcode.Success
}
