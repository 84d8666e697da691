// Package memory implements service.Service as an in-process chore list
// with soft deletes that can be undone for a bounded window.
package memory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"chores/internal/service"
)

// DefaultUndoWindow is how long a deleted task can be restored.
const DefaultUndoWindow = 5 * time.Second

// ErrClosed is returned by mutations after Close.
var ErrClosed = errors.New("store closed")

// maxSettled bounds how many restored or discarded tokens are remembered.
// Older ones are forgotten and report NotFound.
const maxSettled = 1024

type deletionState int

const (
	stateRestored deletionState = iota + 1
	stateDiscarded
)

type deletion struct {
	service.Deletion
	timer Timer
}

type listener struct {
	id int
	fn func(service.Event)
}

// Store owns the chore list and every deletion made from it.
// All methods are safe for concurrent use; undo-window callbacks
// serialise with view calls on the same mutex.
type Store struct {
	mu        sync.Mutex
	tasks     []service.Task
	deletions map[service.UndoToken]*deletion // pending only
	pending   []service.UndoToken             // oldest first
	listeners []listener
	nextSubID int
	closed    bool

	// Tombstones for finished deletions, without the task snapshot.
	settled      map[service.UndoToken]deletionState
	settledOrder []service.UndoToken

	// Events queue under mu and are delivered by one goroutine at a time.
	outbox     []service.Event
	delivering bool

	window   time.Duration
	clock    Clock
	logger   *log.Logger
	newToken func() service.UndoToken
	onClose  func() error
}

// Option configures a Store.
type Option func(*Store)

// WithUndoWindow sets the undo window. Non-positive values keep the default.
func WithUndoWindow(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.window = d
		}
	}
}

// WithClock replaces the wall clock, mainly for tests.
func WithClock(c Clock) Option {
	return func(s *Store) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithLogger sets the logger used for lifecycle messages.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithOnClose registers fn to run at the end of Close, for releasing
// resources the store's logger writes to.
func WithOnClose(fn func() error) Option {
	return func(s *Store) {
		s.onClose = fn
	}
}

// New creates a store seeded with tasks. Task IDs must be non-empty and unique.
func New(tasks []service.Task, opts ...Option) (*Store, error) {
	seen := make(map[string]bool, len(tasks))
	for i, t := range tasks {
		if t.ID == "" {
			return nil, fmt.Errorf("task %d: empty id", i)
		}
		if seen[t.ID] {
			return nil, fmt.Errorf("task %d: duplicate id: %s", i, t.ID)
		}
		seen[t.ID] = true
	}

	s := &Store{
		tasks:     slices.Clone(tasks),
		deletions: make(map[service.UndoToken]*deletion),
		settled:   make(map[service.UndoToken]deletionState),
		window:    DefaultUndoWindow,
		clock:     RealClock{},
		logger:    log.New(io.Discard),
		newToken: func() service.UndoToken {
			return service.UndoToken(uuid.NewString())
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// UndoWindow returns the configured undo window.
func (s *Store) UndoWindow() time.Duration {
	return s.window
}

// Tasks implements service.Service.
func (s *Store) Tasks(ctx context.Context) ([]service.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.tasks), nil
}

// Task implements service.Service.
func (s *Store) Task(ctx context.Context, id string) (service.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return service.Task{}, service.NotFoundError{Kind: "task", ID: id}
	}
	return s.tasks[i], nil
}

// ToggleStatus implements service.Service.
func (s *Store) ToggleStatus(ctx context.Context, id string) (service.Task, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return service.Task{}, ErrClosed
	}
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return service.Task{}, service.NotFoundError{Kind: "task", ID: id}
	}
	s.tasks[i].Status = s.tasks[i].Status.Toggled()
	task := s.tasks[i]
	s.queueLocked(service.Event{Kind: service.EventToggled, Task: task})
	s.mu.Unlock()

	s.logger.Debug("task toggled", "id", task.ID, "status", task.Status)
	s.flush()
	return task, nil
}

// Delete implements service.Service. The task leaves the list immediately;
// it is discarded for good when the undo window elapses without an Undo.
func (s *Store) Delete(ctx context.Context, id string) (service.Deletion, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return service.Deletion{}, ErrClosed
	}
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return service.Deletion{}, service.NotFoundError{Kind: "task", ID: id}
	}

	task := s.tasks[i]
	s.tasks = slices.Delete(s.tasks, i, i+1)

	token := s.newToken()
	now := s.clock.Now()
	d := &deletion{
		Deletion: service.Deletion{
			Token:     token,
			Task:      task,
			Index:     i,
			DeletedAt: now,
			ExpiresAt: now.Add(s.window),
		},
	}
	s.deletions[token] = d
	s.pending = append(s.pending, token)
	// Each deletion runs its own countdown.
	d.timer = s.clock.AfterFunc(s.window, func() { s.finalize(token) })
	out := d.Deletion
	s.queueLocked(service.Event{
		Kind:      service.EventDeleted,
		Task:      task,
		Token:     token,
		Index:     i,
		ExpiresAt: out.ExpiresAt,
	})
	s.mu.Unlock()

	s.logger.Debug("task deleted", "id", task.ID, "index", i, "token", token.Short())
	s.flush()
	return out, nil
}

// Undo implements service.Service.
func (s *Store) Undo(ctx context.Context, token service.UndoToken) (service.Task, error) {
	s.mu.Lock()
	d, ok := s.deletions[token]
	if !ok {
		state, known := s.settled[token]
		s.mu.Unlock()
		switch {
		case !known:
			return service.Task{}, service.NotFoundError{Kind: "undo token", ID: string(token)}
		case state == stateRestored:
			return service.Task{}, service.AlreadyConsumedError{Token: token}
		default:
			return service.Task{}, service.ExpiredError{Token: token}
		}
	}

	// The timer callback may be queued behind us; the clock decides.
	if !s.clock.Now().Before(d.ExpiresAt) {
		ev := s.discardLocked(d)
		s.mu.Unlock()
		s.logger.Debug("task permanently deleted", "id", ev.Task.ID, "token", token.Short())
		s.flush()
		return service.Task{}, service.ExpiredError{Token: token}
	}

	d.timer.Stop()
	s.settleLocked(token, stateRestored)
	idx := min(d.Index, len(s.tasks))
	s.tasks = slices.Insert(s.tasks, idx, d.Task)
	task := d.Task
	s.queueLocked(service.Event{Kind: service.EventRestored, Task: task, Token: token, Index: idx})
	s.mu.Unlock()

	s.logger.Debug("task restored", "id", task.ID, "index", idx, "token", token.Short())
	s.flush()
	return task, nil
}

// Pending implements service.Service.
func (s *Store) Pending(ctx context.Context) ([]service.Deletion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]service.Deletion, 0, len(s.pending))
	for _, tok := range s.pending {
		out = append(out, s.deletions[tok].Deletion)
	}
	return out, nil
}

// Subscribe implements service.Service. Events reach listeners in the order
// the mutations happened. A listener runs on the goroutine that made the
// mutation, or on one already delivering earlier events; mutations it makes
// itself are delivered after it returns.
func (s *Store) Subscribe(fn func(service.Event)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.listeners = append(s.listeners, listener{id: id, fn: fn})
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.listeners = slices.DeleteFunc(s.listeners, func(l listener) bool { return l.id == id })
	}
}

// Close stops every countdown and discards all outstanding deletions.
// Mutations fail with ErrClosed afterwards; reads keep working.
func (s *Store) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	for _, tok := range slices.Clone(s.pending) {
		d := s.deletions[tok]
		d.timer.Stop()
		ev := s.discardLocked(d)
		s.logger.Debug("task permanently deleted", "id", ev.Task.ID, "token", ev.Token.Short())
	}
	s.mu.Unlock()

	s.flush()
	if s.onClose != nil {
		return s.onClose()
	}
	return nil
}

// finalize runs when a deletion's window elapses. It is a no-op when the
// deletion was already restored or discarded.
func (s *Store) finalize(token service.UndoToken) {
	s.mu.Lock()
	d, ok := s.deletions[token]
	if !ok {
		s.mu.Unlock()
		return
	}
	ev := s.discardLocked(d)
	s.mu.Unlock()

	s.logger.Debug("task permanently deleted", "id", ev.Task.ID, "token", token.Short())
	s.flush()
}

// discardLocked settles d as discarded and queues its event.
func (s *Store) discardLocked(d *deletion) service.Event {
	s.settleLocked(d.Token, stateDiscarded)
	ev := service.Event{
		Kind:      service.EventDiscarded,
		Task:      d.Task,
		Token:     d.Token,
		Index:     d.Index,
		ExpiresAt: d.ExpiresAt,
	}
	s.queueLocked(ev)
	return ev
}

// settleLocked drops a pending deletion and keeps only its final state.
func (s *Store) settleLocked(token service.UndoToken, state deletionState) {
	delete(s.deletions, token)
	s.pending = slices.DeleteFunc(s.pending, func(t service.UndoToken) bool { return t == token })

	s.settled[token] = state
	s.settledOrder = append(s.settledOrder, token)
	if len(s.settledOrder) > maxSettled {
		delete(s.settled, s.settledOrder[0])
		s.settledOrder = slices.Delete(s.settledOrder, 0, 1)
	}
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.tasks, func(t service.Task) bool { return t.ID == id })
}

func (s *Store) queueLocked(ev service.Event) {
	s.outbox = append(s.outbox, ev)
}

// flush delivers queued events in order. If another call is already
// delivering, it picks up whatever was queued here. Callers must not hold s.mu.
func (s *Store) flush() {
	s.mu.Lock()
	if s.delivering {
		s.mu.Unlock()
		return
	}
	s.delivering = true
	for len(s.outbox) > 0 {
		ev := s.outbox[0]
		s.outbox = slices.Delete(s.outbox, 0, 1)
		ls := slices.Clone(s.listeners)
		s.mu.Unlock()
		for _, l := range ls {
			l.fn(ev)
		}
		s.mu.Lock()
	}
	s.delivering = false
	s.mu.Unlock()
}
