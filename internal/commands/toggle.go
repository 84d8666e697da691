package commands

import (
	"context"
	"flag"
	"io"

	"chores/internal/config"
	"chores/internal/exitcode"
	"chores/internal/output"
	"chores/internal/service"
)

func init() {
	Register(&ToggleCmd{})
}

// ToggleCmd implements the toggle command.
type ToggleCmd struct {
	id string
}

// SetID sets the task ID (for testing).
func (c *ToggleCmd) SetID(id string) {
	c.id = id
}

func (c *ToggleCmd) Name() string      { return "toggle" }
func (c *ToggleCmd) Aliases() []string { return []string{"done"} }
func (c *ToggleCmd) Synopsis() string  { return "Flip a task between pending and completed" }
func (c *ToggleCmd) Usage() string     { return "chores toggle [--id <id>] <n>" }
func (c *ToggleCmd) NeedsStore() bool  { return true }

func (c *ToggleCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.id, "id", "", "")
}

func (c *ToggleCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	target, code := resolveTarget(ctx, svc, c.id, args, errOut)
	if code != exitcode.Success {
		return code
	}

	task, err := svc.ToggleStatus(ctx, target.ID)
	if err != nil {
		return reportStoreError(errOut, err)
	}

	if !cfg.Quiet {
		output.FormatToggled(out, task)
	}
	return exitcode.Success
}
