package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"chores/internal/config"
	"chores/internal/exitcode"
	"chores/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct {
	registry *Registry
}

// SetRegistry sets the registry listed by help (for testing).
func (c *HelpCmd) SetRegistry(r *Registry) {
	c.registry = r
}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "chores help" }
func (c *HelpCmd) NeedsStore() bool  { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	r := c.registry
	if r == nil {
		r = DefaultRegistry
	}
	fmt.Fprint(out, usageText(r))
	return exitcode.Success
}

func usageText(r *Registry) string {
	var b strings.Builder
	b.WriteString("Usage:\n")
	b.WriteString("  chores                                   List all tasks\n")

	for _, cmd := range r.All() {
		fmt.Fprintf(&b, "  %-40s %s\n", cmd.Usage(), cmd.Synopsis())
		if aliases := cmd.Aliases(); len(aliases) > 0 {
			fmt.Fprintf(&b, "  %-40s (alias: %s)\n", "", strings.Join(aliases, ", "))
		}
	}

	b.WriteString(commonFlagsText)
	return b.String()
}

const commonFlagsText = `
Common flags (place after the command):
  --config <dir>          Override config directory
  --quiet                 Suppress informational output
  --debug                 Print debug logs to stderr
  --yes, -y               Delete without asking
  --seed <file>           Load tasks from a JSON seed file
  --undo-window <dur>     How long a delete can be undone (default 5s)
  --log-file <path>       Write debug logs to a rotated file

Shell:
  Tasks live for the length of one process. Run "chores shell" to
  delete and undo across several commands; "exit" leaves the shell.
`
