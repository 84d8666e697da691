// Package logging builds the leveled console logger shared by the CLI and the stores.
package logging

import (
	"io"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Prefix tags every log line.
const Prefix = "chores"

// Options control logger construction.
type Options struct {
	// Debug lowers the level to debug and adds timestamps.
	Debug bool

	// Quiet raises the level to error.
	Quiet bool

	// File, when set, makes Open send logs to a size-rotated file instead
	// of the console writer. File logs are always at debug level.
	File string
}

// New returns a logger writing human-readable lines to w. Options.File is
// ignored; use Open for file logging.
func New(w io.Writer, opts Options) *log.Logger {
	level := log.WarnLevel
	switch {
	case opts.Debug:
		level = log.DebugLevel
	case opts.Quiet:
		level = log.ErrorLevel
	}
	return newLogger(w, level, opts.Debug)
}

// Open is New with Options.File honoured. The returned closer releases
// the log file and must be called once logging is done.
func Open(w io.Writer, opts Options) (*log.Logger, io.Closer) {
	if opts.File == "" {
		return New(w, opts), io.NopCloser(nil)
	}
	f := RotatingFile(opts.File)
	return newLogger(f, log.DebugLevel, true), f
}

func newLogger(w io.Writer, level log.Level, timestamps bool) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       log.TextFormatter,
		Prefix:          Prefix,
		ReportTimestamp: timestamps,
		TimeFormat:      "15:04:05.000",
	})
}

// RotatingFile returns a writer that rotates path at 10 MB, keeping three
// compressed backups for four weeks.
func RotatingFile(path string) io.WriteCloser {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
