package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"chores/internal/exitcode"
	"chores/internal/service"
)

// resolveTarget picks the task a command acts on: by --id when given,
// otherwise by the positional task number. On failure it reports the
// error and returns a non-zero exit code.
func resolveTarget(ctx context.Context, svc service.Service, id string, args []string, errOut io.Writer) (service.Task, int) {
	if id != "" {
		if len(args) > 0 {
			fmt.Fprintln(errOut, "error: cannot use both --id and task number")
			return service.Task{}, exitcode.UserError
		}
		task, err := svc.Task(ctx, id)
		if err != nil {
			return service.Task{}, reportStoreError(errOut, err)
		}
		return task, exitcode.Success
	}

	ref, err := ParseTaskRef(args)
	if err != nil {
		if err == ErrTaskRefRequired {
			fmt.Fprintln(errOut, "error: task reference required")
		} else {
			fmt.Fprintf(errOut, "error: %v\n", err)
		}
		return service.Task{}, exitcode.UserError
	}

	task, err := findTaskByNumber(ctx, svc, ref.TaskNum)
	if err != nil {
		if strings.Contains(err.Error(), "out of range") {
			fmt.Fprintf(errOut, "error: task number out of range: %d\n", ref.TaskNum)
			return service.Task{}, exitcode.UserError
		}
		return service.Task{}, reportStoreError(errOut, err)
	}
	return task, exitcode.Success
}
