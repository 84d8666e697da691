// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"time"

	"chores/internal/backend/memory"
	"chores/internal/service"
)

// FakeService is a memory store on a FakeClock with error injection.
type FakeService struct {
	*memory.Store
	Clock *FakeClock

	// Error injection for testing
	TasksErr   error
	ToggleErr  error
	DeleteErr  error
	UndoErr    error
	PendingErr error
}

// NewFakeService creates a FakeService holding tasks with a 5s undo window.
// It panics on invalid seed data.
func NewFakeService(tasks ...service.Task) *FakeService {
	clock := NewFakeClock()
	store, err := memory.New(tasks, memory.WithClock(clock), memory.WithUndoWindow(5*time.Second))
	if err != nil {
		panic(err)
	}
	return &FakeService{Store: store, Clock: clock}
}

// Tasks implements service.Service.
func (f *FakeService) Tasks(ctx context.Context) ([]service.Task, error) {
	if f.TasksErr != nil {
		return nil, f.TasksErr
	}
	return f.Store.Tasks(ctx)
}

// ToggleStatus implements service.Service.
func (f *FakeService) ToggleStatus(ctx context.Context, id string) (service.Task, error) {
	if f.ToggleErr != nil {
		return service.Task{}, f.ToggleErr
	}
	return f.Store.ToggleStatus(ctx, id)
}

// Delete implements service.Service.
func (f *FakeService) Delete(ctx context.Context, id string) (service.Deletion, error) {
	if f.DeleteErr != nil {
		return service.Deletion{}, f.DeleteErr
	}
	return f.Store.Delete(ctx, id)
}

// Undo implements service.Service.
func (f *FakeService) Undo(ctx context.Context, token service.UndoToken) (service.Task, error) {
	if f.UndoErr != nil {
		return service.Task{}, f.UndoErr
	}
	return f.Store.Undo(ctx, token)
}

// Pending implements service.Service.
func (f *FakeService) Pending(ctx context.Context) ([]service.Deletion, error) {
	if f.PendingErr != nil {
		return nil, f.PendingErr
	}
	return f.Store.Pending(ctx)
}

// IDs returns the task IDs currently in the list, in order.
func (f *FakeService) IDs() []string {
	tasks, _ := f.Store.Tasks(context.Background())
	ids := make([]string, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	return ids
}

// Letters returns tasks A..E, all pending, for ordering tests.
func Letters() []service.Task {
	var tasks []service.Task
	for _, id := range []string{"A", "B", "C", "D", "E"} {
		tasks = append(tasks, service.Task{
			ID:        id,
			Title:     "Task " + id,
			Assignee:  "Sam",
			DueDate:   service.Date{Year: 2023, Month: time.May, Day: 14},
			Status:    service.StatusPending,
			Recurring: service.RecurNone,
		})
	}
	return tasks
}
