package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"chores/internal/config"
	"chores/internal/exitcode"
	"chores/internal/service"
	"chores/internal/ui"
)

func init() {
	Register(&TuiCmd{})
}

// TuiCmd implements the tui command.
type TuiCmd struct{}

func (c *TuiCmd) Name() string      { return "tui" }
func (c *TuiCmd) Aliases() []string { return nil }
func (c *TuiCmd) Synopsis() string  { return "Open the full-screen task view" }
func (c *TuiCmd) Usage() string     { return "chores tui" }
func (c *TuiCmd) NeedsStore() bool  { return true }

func (c *TuiCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *TuiCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if !ui.IsTTY(out) {
		fmt.Fprintln(errOut, "error: tui requires a TTY")
		return exitcode.UserError
	}

	var opts []ui.Option
	if cfg.AssumeYes {
		opts = append(opts, ui.WithoutConfirm())
	}
	if err := ui.Run(ctx, svc, opts...); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	return exitcode.Success
}
