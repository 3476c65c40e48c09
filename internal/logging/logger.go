// Package logging provides the leveled, optionally colored console logger
// with an optional file sink. It is a thin printf-style layer over log/slog.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/backmassage/convert2qt/internal/config"
	"github.com/backmassage/convert2qt/internal/term"
)

// runIDKey tags every file record with the run that produced it, so
// appended log files can be split per invocation.
const runIDKey = "run_id"

// Logger provides leveled, optionally colored logging with optional file sink.
type Logger struct {
	mu    sync.Mutex
	log   *slog.Logger
	file  *os.File
	runID string
}

// NewLogger initializes colors from cfg and optionally opens the log file.
// Call Close when done.
func NewLogger(cfg *config.Config) (*Logger, error) {
	return newLogger(cfg, os.Stdout, os.Stderr)
}

func newLogger(cfg *config.Config, out, errOut io.Writer) (*Logger, error) {
	term.Configure(cfg.Logging.Color)

	l := &Logger{runID: uuid.NewString()}
	handlers := []slog.Handler{newConsoleHandler(out, errOut)}

	if path := cfg.Logging.File; path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		l.file = f
		fh := slog.NewTextHandler(f, &slog.HandlerOptions{
			Level:       slog.LevelDebug,
			ReplaceAttr: replaceLevel,
		})
		handlers = append(handlers, fh.WithAttrs([]slog.Attr{slog.String(runIDKey, l.runID)}))
	}

	l.log = slog.New(newFanoutHandler(handlers...))
	return l, nil
}

// RunID identifies this process in the log file.
func (l *Logger) RunID() string { return l.runID }

// Close closes the log file if one was opened.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

func (l *Logger) line(level slog.Level, text string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.log.Log(context.Background(), level, text)
}

// Info logs at INFO level (blue).
func (l *Logger) Info(format string, args ...interface{}) {
	l.line(slog.LevelInfo, fmt.Sprintf(format, args...))
}

// Success logs at SUCCESS level (green).
func (l *Logger) Success(format string, args ...interface{}) {
	l.line(LevelSuccess, fmt.Sprintf(format, args...))
}

// Warn logs at WARN level (yellow).
func (l *Logger) Warn(format string, args ...interface{}) {
	l.line(slog.LevelWarn, fmt.Sprintf(format, args...))
}

// Error logs at ERROR level (red), to stderr.
func (l *Logger) Error(format string, args ...interface{}) {
	l.line(slog.LevelError, fmt.Sprintf(format, args...))
}

// Debug logs at DEBUG level (cyan) only when verbose; no-op otherwise.
func (l *Logger) Debug(verbose bool, format string, args ...interface{}) {
	if !verbose {
		return
	}
	l.line(slog.LevelDebug, fmt.Sprintf(format, args...))
}
