package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"chores/internal/config"
	"chores/internal/exitcode"
	"chores/internal/output"
	"chores/internal/service"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command. `chores` with no args runs it too.
type ListCmd struct{}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string     { return "chores list" }
func (c *ListCmd) NeedsStore() bool  { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	tasks, err := svc.Tasks(ctx)
	if err != nil {
		return reportStoreError(errOut, err)
	}

	if len(tasks) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, output.NoTasks)
		}
		return exitcode.Success
	}

	output.FormatTaskTable(out, tasks)
	return exitcode.Success
}
