package vfs

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger wraps slog.Logger with the fields handles and scanners report.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a Logger with the given handler.
// If handler is nil, warnings and errors go to stderr as text.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelWarn,
		})
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewTextLogger creates a Logger writing human-readable text to w.
func NewTextLogger(w io.Writer, level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewJSONLogger creates a Logger writing JSON records to w.
func NewJSONLogger(w io.Writer, level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// NoopLogger creates a Logger that discards all output.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

var defaultLogger = NewLogger(nil)

// DefaultLogger is the logger handles use until SetLogger is called on them.
func DefaultLogger() *Logger {
	return defaultLogger
}

// ParseLevel maps debug, info, warn and error to slog levels. Anything else
// is warn.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// WithPath adds a path field to the logger.
func (l *Logger) WithPath(path string) *Logger {
	return &Logger{Logger: l.Logger.With("path", path)}
}

// LogUnsupported reports an operation a backend cannot perform.
func (l *Logger) LogUnsupported(op, path string, backend Type) {
	l.Warn("operation not supported",
		"op", op,
		"path", path,
		"backend", backend.String(),
	)
}

// LogOpen logs the outcome of acquiring a handle's resource.
func (l *Logger) LogOpen(path string, mode OpenMode, err error) {
	if err != nil {
		l.Debug("open failed",
			"path", path,
			"mode", mode.String(),
			"error", err,
		)
	} else {
		l.Debug("open completed",
			"path", path,
			"mode", mode.String(),
		)
	}
}

// LogResolve logs how a path was mapped to a backend.
func (l *Logger) LogResolve(path string, backend Type, container, member string) {
	l.Debug("backend resolved",
		"path", path,
		"backend", backend.String(),
		"container", container,
		"member", member,
	)
}

// LogScan logs the end of a scan.
func (l *Logger) LogScan(root string, matches int, err error) {
	if err != nil {
		l.Warn("scan failed",
			"root", root,
			"matches", matches,
			"error", err,
		)
	} else {
		l.Debug("scan completed",
			"root", root,
			"matches", matches,
		)
	}
}
