package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	"chores/internal/config"
	"chores/internal/exitcode"
	"chores/internal/output"
	"chores/internal/service"
)

func init() {
	Register(&PendingCmd{})
}

// PendingCmd implements the pending command.
type PendingCmd struct {
	now func() time.Time
}

// SetNow sets the time source (for testing).
func (c *PendingCmd) SetNow(now func() time.Time) {
	c.now = now
}

func (c *PendingCmd) Name() string      { return "pending" }
func (c *PendingCmd) Aliases() []string { return nil }
func (c *PendingCmd) Synopsis() string  { return "List deletions that can still be undone" }
func (c *PendingCmd) Usage() string     { return "chores pending" }
func (c *PendingCmd) NeedsStore() bool  { return true }

func (c *PendingCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *PendingCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	pending, err := svc.Pending(ctx)
	if err != nil {
		return reportStoreError(errOut, err)
	}

	if len(pending) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "nothing to undo")
		}
		return exitcode.Success
	}

	now := time.Now
	if c.now != nil {
		now = c.now
	}
	output.FormatPending(out, pending, now())
	return exitcode.Success
}
