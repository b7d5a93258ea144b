// Package log provides a leveled logger shared by the whole CLI.
// Verbosity maps to -v flags: quiet by default, -v for progress and
// counts, -vv for per-request detail, -vvv for full payloads.
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Verbosity levels
const (
	LevelQuiet = iota // errors and warnings only
	LevelInfo         // -v: progress, counts
	LevelDebug        // -vv: API calls, pagination
	LevelTrace        // -vvv: response payloads
)

// slog has no trace level; park one below debug.
const slogLevelTrace = slog.Level(-8)

var (
	verbosity  int
	logger     *slog.Logger
	output     io.Writer
	inProgress bool
)

func init() {
	output = os.Stderr
	verbosity = LevelQuiet
	logger = slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}

// Initialize sets up the global logger with the given verbosity level.
func Initialize(level int, w io.Writer) {
	verbosity = level
	output = w

	var slogLevel slog.Level
	switch {
	case level >= LevelTrace:
		slogLevel = slogLevelTrace
	case level >= LevelDebug:
		slogLevel = slog.LevelDebug
	case level >= LevelInfo:
		slogLevel = slog.LevelInfo
	default:
		slogLevel = slog.LevelWarn
	}

	logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slogLevel}))
}

// Info logs at info level (-v).
func Info(msg string, args ...any) {
	if verbosity >= LevelInfo {
		breakProgress()
		logger.Info(msg, args...)
	}
}

// Debug logs at debug level (-vv).
func Debug(msg string, args ...any) {
	if verbosity >= LevelDebug {
		breakProgress()
		logger.Debug(msg, args...)
	}
}

// Trace logs at trace level (-vvv).
func Trace(msg string, args ...any) {
	if verbosity >= LevelTrace {
		breakProgress()
		logger.Log(context.Background(), slogLevelTrace, msg, args...)
	}
}

// Warn logs at warn level (always visible).
func Warn(msg string, args ...any) {
	breakProgress()
	logger.Warn(msg, args...)
}

// Error logs at error level (always visible).
func Error(msg string, args ...any) {
	breakProgress()
	logger.Error(msg, args...)
}

// Progress prints an in-place progress line (carriage return, no newline).
// Shown at info level and above; the TUI replaces this when active.
func Progress(format string, args ...any) {
	if verbosity >= LevelInfo {
		inProgress = true
		_, _ = fmt.Fprintf(output, "\r"+format, args...)
	}
}

// ProgressDone finishes the current progress line.
func ProgressDone() {
	if verbosity >= LevelInfo && inProgress {
		_, _ = fmt.Fprintln(output, " done")
		inProgress = false
	}
}

// breakProgress terminates an in-progress line so log output doesn't
// overwrite it.
func breakProgress() {
	if inProgress {
		_, _ = fmt.Fprintln(output)
		inProgress = false
	}
}

// IsInfo returns true if info-level logging is enabled.
func IsInfo() bool {
	return verbosity >= LevelInfo
}

// IsDebug returns true if debug-level logging is enabled.
func IsDebug() bool {
	return verbosity >= LevelDebug
}

// Verbosity returns the current verbosity level.
func Verbosity() int {
	return verbosity
}
