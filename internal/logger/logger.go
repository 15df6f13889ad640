// Package logger provides leveled logging for trustsearch.
// Debug and info messages are printed only in verbose mode (the --verbose
// flag) to help users follow the aggregation pipeline; warnings are always
// printed. Output is slog text records on stderr.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
	base              = newLogger(os.Stderr, false)
)

func newLogger(w io.Writer, v bool) *slog.Logger {
	level := slog.LevelWarn
	if v {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}))
}

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
	base = newLogger(output, verbose)
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	base = newLogger(output, verbose)
}

// Slog returns the underlying structured logger.
func Slog() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	logf(Slog(), slog.LevelDebug, format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	logf(Slog(), slog.LevelInfo, format, args...)
}

// Warn prints a warning message. Warnings are printed in every mode.
func Warn(format string, args ...any) {
	logf(Slog(), slog.LevelWarn, format, args...)
}

// Entry is a logger carrying fixed attributes, such as a pipeline run ID.
type Entry struct {
	attrs []any
}

// With returns an Entry that adds attrs (alternating keys and values)
// to every record it writes.
func With(attrs ...any) *Entry {
	return &Entry{attrs: attrs}
}

// Debug prints a message with the entry's attributes if verbose mode is enabled.
func (e *Entry) Debug(format string, args ...any) {
	logf(Slog().With(e.attrs...), slog.LevelDebug, format, args...)
}

// Info prints a message with the entry's attributes if verbose mode is enabled.
func (e *Entry) Info(format string, args ...any) {
	logf(Slog().With(e.attrs...), slog.LevelInfo, format, args...)
}

// Warn prints a warning with the entry's attributes.
func (e *Entry) Warn(format string, args ...any) {
	logf(Slog().With(e.attrs...), slog.LevelWarn, format, args...)
}

func logf(l *slog.Logger, level slog.Level, format string, args ...any) {
	ctx := context.Background()
	if !l.Enabled(ctx, level) {
		return
	}
	l.Log(ctx, level, fmt.Sprintf(format, args...))
}
