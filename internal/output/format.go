// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"chores/internal/service"
)

// NoTasks is printed when the list is empty.
const NoTasks = "no tasks found"

// FormatTaskTable writes one row per task.
// Format: "{N:>4}  {BOX} {TITLE}  {ASSIGNEE}  {DUE}  {RECURRING}  {STATUS}\n"
// with TITLE and ASSIGNEE padded to the widest value in the list.
func FormatTaskTable(w io.Writer, tasks []service.Task) {
	titleW, assigneeW := 0, 0
	for _, t := range tasks {
		titleW = max(titleW, lipgloss.Width(normalizeTitle(t.Title)))
		assigneeW = max(assigneeW, lipgloss.Width(normalizeAssignee(t.Assignee)))
	}
	for i, t := range tasks {
		fmt.Fprintf(w, "%4d  %s %s  %s  %s  %s  %s\n",
			i+1,
			Checkbox(t.Status),
			pad(normalizeTitle(t.Title), titleW),
			pad(normalizeAssignee(t.Assignee), assigneeW),
			t.DueDate.Display(),
			pad(string(t.Recurring), 9),
			t.Status,
		)
	}
}

// Checkbox renders a status as "[x]" or "[ ]".
func Checkbox(s service.Status) string {
	if s == service.StatusCompleted {
		return "[x]"
	}
	return "[ ]"
}

// FormatToggled reports a status change.
func FormatToggled(w io.Writer, task service.Task) {
	fmt.Fprintf(w, "%s: %s\n", normalizeTitle(task.Title), task.Status)
}

// FormatDeleted reports a deletion and how to undo it.
func FormatDeleted(w io.Writer, d service.Deletion) {
	fmt.Fprintf(w, "deleted: %s (undo %s within %s)\n", normalizeTitle(d.Task.Title), d.Token.Short(), d.Window())
}

// FormatRestored reports a successful undo.
func FormatRestored(w io.Writer, task service.Task) {
	fmt.Fprintf(w, "restored: %s\n", normalizeTitle(task.Title))
}

// FormatPending writes one line per outstanding deletion.
// Format: "  {TOKEN8}  {TITLE}  {REMAINING} left\n"
func FormatPending(w io.Writer, pending []service.Deletion, now time.Time) {
	for _, d := range pending {
		left := d.Remaining(now).Round(100 * time.Millisecond)
		fmt.Fprintf(w, "  %s  %s  %s left\n", d.Token.Short(), normalizeTitle(d.Task.Title), left)
	}
}

// NormalizeTitle is the exported form of the title cleanup used by the views.
func NormalizeTitle(title string) string {
	return normalizeTitle(title)
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	// Replace newlines with spaces
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	// Trim and check for empty
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}

func normalizeAssignee(name string) string {
	if strings.TrimSpace(name) == "" {
		return "-"
	}
	return name
}

func pad(s string, width int) string {
	if n := width - lipgloss.Width(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}
