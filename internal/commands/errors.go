package commands

import (
	"errors"
	"fmt"
	"io"

	"chores/internal/exitcode"
	"chores/internal/service"
)

// reportStoreError prints err in CLI form and returns the matching exit code.
func reportStoreError(errOut io.Writer, err error) int {
	switch {
	case service.IsNotFound(err):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	case errors.Is(err, service.ErrExpired), errors.Is(err, service.ErrAlreadyConsumed):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UndoError
	default:
		fmt.Fprintf(errOut, "error: store error: %v\n", err)
		return exitcode.StoreError
	}
}
