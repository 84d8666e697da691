// Package service defines the store-agnostic interface for chore list operations.
package service

import (
	"fmt"
	"strings"
	"time"
)

// Status is the completion state of a task.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// Toggled returns the opposite status.
func (s Status) Toggled() Status {
	if s == StatusCompleted {
		return StatusPending
	}
	return StatusCompleted
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return s == StatusPending || s == StatusCompleted
}

// Recurrence is how often a chore repeats.
type Recurrence string

const (
	RecurNone     Recurrence = "none"
	RecurDaily    Recurrence = "daily"
	RecurWeekly   Recurrence = "weekly"
	RecurBiweekly Recurrence = "biweekly"
	RecurMonthly  Recurrence = "monthly"
)

// Valid reports whether r is a known recurrence.
func (r Recurrence) Valid() bool {
	switch r {
	case RecurNone, RecurDaily, RecurWeekly, RecurBiweekly, RecurMonthly:
		return true
	}
	return false
}

// DateLayout is the text form of a Date.
const DateLayout = "2006-01-02"

// Date is a calendar date without time of day.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// String returns the YYYY-MM-DD form.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Display returns the day-first form used by the views (DD/MM/YYYY).
func (d Date) Display() string {
	if d.IsZero() {
		return "-"
	}
	return fmt.Sprintf("%02d/%02d/%04d", d.Day, int(d.Month), d.Year)
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Task represents a single household chore.
type Task struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Assignee  string     `json:"assignee"`
	DueDate   Date       `json:"dueDate"`
	Status    Status     `json:"status"`
	Recurring Recurrence `json:"recurring"`
}

// UndoToken identifies one deletion. It is opaque to callers.
type UndoToken string

// Short returns the first 8 characters, used for display and prefix lookup.
func (t UndoToken) Short() string {
	if len(t) <= 8 {
		return string(t)
	}
	return string(t[:8])
}

// Deletion is a task removed from the list that can still be restored.
type Deletion struct {
	Token     UndoToken
	Task      Task
	Index     int
	DeletedAt time.Time
	ExpiresAt time.Time
}

// Window returns the full undo window the deletion was granted.
func (d Deletion) Window() time.Duration {
	return d.ExpiresAt.Sub(d.DeletedAt)
}

// Remaining returns how much of the undo window is left at now.
func (d Deletion) Remaining(now time.Time) time.Duration {
	left := d.ExpiresAt.Sub(now)
	if left < 0 {
		return 0
	}
	return left
}

// EventKind names a store mutation.
type EventKind int

const (
	EventToggled EventKind = iota + 1
	EventDeleted
	EventRestored
	EventDiscarded
)

func (k EventKind) String() string {
	switch k {
	case EventToggled:
		return "toggled"
	case EventDeleted:
		return "deleted"
	case EventRestored:
		return "restored"
	case EventDiscarded:
		return "discarded"
	}
	return "unknown"
}

// Event is emitted after every store mutation.
// Token, Index and ExpiresAt are set for deletion lifecycle events only.
type Event struct {
	Kind      EventKind
	Task      Task
	Token     UndoToken
	Index     int
	ExpiresAt time.Time
}
