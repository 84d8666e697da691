package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"chores/internal/config"
	"chores/internal/exitcode"
	"chores/internal/output"
	"chores/internal/service"
)

func init() {
	Register(&UndoCmd{})
}

// UndoCmd implements the undo command.
type UndoCmd struct{}

func (c *UndoCmd) Name() string      { return "undo" }
func (c *UndoCmd) Aliases() []string { return nil }
func (c *UndoCmd) Synopsis() string  { return "Restore a deleted task" }
func (c *UndoCmd) Usage() string     { return "chores undo [token]" }
func (c *UndoCmd) NeedsStore() bool  { return true }

func (c *UndoCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UndoCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 1 {
		fmt.Fprintf(errOut, "error: too many arguments: %s\n", args[1])
		return exitcode.UserError
	}

	pending, err := svc.Pending(ctx)
	if err != nil {
		return reportStoreError(errOut, err)
	}

	var token service.UndoToken
	if len(args) == 0 {
		// No token: undo the most recent deletion still in its window.
		if len(pending) == 0 {
			fmt.Fprintln(errOut, "error: nothing to undo")
			return exitcode.UserError
		}
		token = pending[len(pending)-1].Token
	} else {
		token, err = matchToken(args[0], pending)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
	}

	task, err := svc.Undo(ctx, token)
	if err != nil {
		return reportStoreError(errOut, err)
	}

	if !cfg.Quiet {
		output.FormatRestored(out, task)
	}
	return exitcode.Success
}

// matchToken expands a token prefix against pending deletions. Input that
// matches nothing is passed through so the store can report why it failed.
func matchToken(ref string, pending []service.Deletion) (service.UndoToken, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("empty undo token")
	}

	var matches []service.UndoToken
	for _, d := range pending {
		if d.Token == service.UndoToken(ref) {
			return d.Token, nil
		}
		if strings.HasPrefix(string(d.Token), ref) {
			matches = append(matches, d.Token)
		}
	}

	switch len(matches) {
	case 0:
		return service.UndoToken(ref), nil
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("ambiguous undo token: %s", ref)
	}
}
