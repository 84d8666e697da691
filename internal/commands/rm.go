package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"chores/internal/config"
	"chores/internal/confirm"
	"chores/internal/exitcode"
	"chores/internal/output"
	"chores/internal/service"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct {
	id      string
	confirm confirm.Service
}

// SetID sets the task ID (for testing).
func (c *RmCmd) SetID(id string) {
	c.id = id
}

// SetConfirmer implements ConfirmAware.
func (c *RmCmd) SetConfirmer(s confirm.Service) {
	c.confirm = s
}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return []string{"delete"} }
func (c *RmCmd) Synopsis() string  { return "Delete a task (undoable for a few seconds)" }
func (c *RmCmd) Usage() string     { return "chores rm [--id <id>] <n>" }
func (c *RmCmd) NeedsStore() bool  { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.id, "id", "", "")
}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	task, code := resolveTarget(ctx, svc, c.id, args, errOut)
	if code != exitcode.Success {
		return code
	}

	if !cfg.AssumeYes {
		if c.confirm == nil {
			fmt.Fprintln(errOut, "error: confirmation required (use --yes)")
			return exitcode.UserError
		}
		ok, err := c.confirm.Confirm(ctx, "Are you sure?", fmt.Sprintf("Delete %q.", output.NormalizeTitle(task.Title)))
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		if !ok {
			fmt.Fprintln(errOut, "error: delete cancelled")
			return exitcode.UserError
		}
	}

	d, err := svc.Delete(ctx, task.ID)
	if err != nil {
		return reportStoreError(errOut, err)
	}

	if !cfg.Quiet {
		output.FormatDeleted(out, d)
	}
	return exitcode.Success
}
