// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, not found, declined).
	UserError = 1

	// ConfigError indicates a bad config file, seed file or flag value.
	ConfigError = 2

	// UndoError indicates an undo that came too late or was already applied.
	UndoError = 3

	// StoreError indicates an unexpected store failure.
	StoreError = 4
)
