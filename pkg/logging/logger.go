// Package logging provides structured, component-scoped logging for gridview.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Level represents log severity
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// ParseLevel maps a configured level name to a Level.
func ParseLevel(s string) (Level, error) {
	switch Level(strings.ToLower(strings.TrimSpace(s))) {
	case LevelDebug:
		return LevelDebug, nil
	case LevelInfo, "":
		return LevelInfo, nil
	case LevelWarn, "warning":
		return LevelWarn, nil
	case LevelError:
		return LevelError, nil
	default:
		return "", fmt.Errorf("unknown log level %q", s)
	}
}

func (l Level) slogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Logger is a structured logger for gridview components
type Logger struct {
	*slog.Logger
	closer io.Closer
}

// New creates a JSON logger writing to w.
func New(w io.Writer, component string, level Level) *Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level.slogLevel(),
	})

	logger := slog.New(handler).With(
		slog.String("component", component),
		slog.String("system", "gridview"),
	)

	return &Logger{Logger: logger}
}

// NewFile creates a logger appending to path. The terminal belongs to the
// backend while the viewer runs, so interactive sessions log to a file.
func NewFile(path, component string, level Level) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	l := New(f, component, level)
	l.closer = f
	return l, nil
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return &Logger{Logger: slog.New(slog.NewJSONHandler(io.Discard, nil))}
}

// With returns a child logger scoped to a sub-component.
func (l *Logger) With(component string) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.String("subcomponent", component)),
	}
}

// Close releases the log file, if any.
func (l *Logger) Close() error {
	if l == nil || l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// RenderCompleted logs a finished frame.
func (l *Logger) RenderCompleted(width, height int, d time.Duration) {
	l.Debug("render completed",
		slog.Int("width", width),
		slog.Int("height", height),
		slog.Float64("duration_ms", float64(d.Microseconds())/1000),
	)
}

// RenderFailed logs a frame that was abandoned.
func (l *Logger) RenderFailed(width, height int, err error) {
	l.Error("render failed",
		slog.Int("width", width),
		slog.Int("height", height),
		slog.String("error", err.Error()),
	)
}

// DocumentLoaded logs a table document (re)load.
func (l *Logger) DocumentLoaded(source string, rows, cols int) {
	l.Info("document loaded",
		slog.String("source", source),
		slog.Int("rows", rows),
		slog.Int("cols", cols),
	)
}
