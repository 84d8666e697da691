package commands

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"chores/internal/config"
	"chores/internal/exitcode"
	"chores/internal/service"
)

func init() {
	Register(&ShellCmd{})
}

// Prompt is printed before each shell line.
const Prompt = "chores> "

// ShellCmd implements the shell command. Every line is dispatched like a
// command-line invocation against the same store, so deletions made in the
// shell can be undone until their window closes.
type ShellCmd struct {
	run LineRunner
	in  *bufio.Reader
}

// SetRunner implements Interactive.
func (c *ShellCmd) SetRunner(run LineRunner, in *bufio.Reader) {
	c.run = run
	c.in = in
}

func (c *ShellCmd) Name() string      { return "shell" }
func (c *ShellCmd) Aliases() []string { return []string{"repl"} }
func (c *ShellCmd) Synopsis() string  { return "Run commands interactively" }
func (c *ShellCmd) Usage() string     { return "chores shell" }
func (c *ShellCmd) NeedsStore() bool  { return true }

func (c *ShellCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ShellCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if c.run == nil || c.in == nil {
		fmt.Fprintln(errOut, "error: shell is not available")
		return exitcode.UserError
	}

	for {
		if ctx.Err() != nil {
			return exitcode.Success
		}
		if !cfg.Quiet {
			fmt.Fprint(out, Prompt)
		}

		line, err := c.in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			fmt.Fprintf(errOut, "error: read input: %v\n", err)
			return exitcode.UserError
		}

		fields := strings.Fields(line)
		if len(fields) > 0 {
			switch fields[0] {
			case "exit", "quit":
				return exitcode.Success
			case "shell", "repl", "tui":
				fmt.Fprintf(errOut, "error: %s is not available inside the shell\n", fields[0])
			default:
				c.run(ctx, fields, out, errOut)
			}
		}

		if errors.Is(err, io.EOF) {
			if !cfg.Quiet {
				fmt.Fprintln(out)
			}
			return exitcode.Success
		}
	}
}
