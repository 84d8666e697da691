package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"unicode"

	"chores/internal/service"
)

// TaskRef is a 1-based position in the displayed list.
type TaskRef struct {
	TaskNum int
}

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ParseTaskRef parses a task reference from args.
//
// Parsing rules:
// 1. No args → error: task reference required
// 2. First arg all digits → task number
// 3. More than one arg → error: too many arguments
// 4. Otherwise → error: invalid task reference: <ref>
func ParseTaskRef(args []string) (TaskRef, error) {
	if len(args) == 0 {
		return TaskRef{}, ErrTaskRefRequired
	}

	firstArg := args[0]
	if !isAllDigits(firstArg) {
		return TaskRef{}, fmt.Errorf("invalid task reference: %s", firstArg)
	}
	if len(args) > 1 {
		return TaskRef{}, fmt.Errorf("too many arguments: %s", args[1])
	}

	num, err := strconv.Atoi(firstArg)
	if err != nil {
		return TaskRef{}, fmt.Errorf("invalid task reference: %s", firstArg)
	}
	return TaskRef{TaskNum: num}, nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// findTaskByNumber finds a task by its 1-based position in the list.
func findTaskByNumber(ctx context.Context, svc service.Service, num int) (service.Task, error) {
	tasks, err := svc.Tasks(ctx)
	if err != nil {
		return service.Task{}, err
	}
	if num < 1 || num > len(tasks) {
		return service.Task{}, fmt.Errorf("task number out of range: %d", num)
	}
	return tasks[num-1], nil
}
