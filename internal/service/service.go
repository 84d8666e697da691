// Package service defines the store-agnostic interface for chore list operations.
package service

import "context"

// Service defines the interface the views use to read and mutate the chore list.
// Views never touch the store's internals; they hold a snapshot from Tasks
// and learn about changes through Subscribe.
type Service interface {
	// Tasks returns a copy of the list in display order.
	Tasks(ctx context.Context) ([]Task, error)

	// Task returns the task with the given ID.
	Task(ctx context.Context, id string) (Task, error)

	// ToggleStatus flips a task between pending and completed.
	ToggleStatus(ctx context.Context, id string) (Task, error)

	// Delete removes a task and opens an undo window for it.
	Delete(ctx context.Context, id string) (Deletion, error)

	// Undo restores a deleted task at its original position.
	// Fails with ErrExpired once the window has elapsed and with
	// ErrAlreadyConsumed if the token was already used.
	Undo(ctx context.Context, token UndoToken) (Task, error)

	// Pending returns outstanding deletions, oldest first.
	Pending(ctx context.Context) ([]Deletion, error)

	// Subscribe registers fn for store events and returns a function that
	// removes it.
	Subscribe(fn func(Event)) (unsubscribe func())
}
