package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/backmassage/convert2qt/internal/term"
)

// LevelSuccess sits between Info and Warn.
const LevelSuccess = slog.Level(2)

// levelName maps slog levels to the labels printed in brackets.
func levelName(l slog.Level) string {
	switch {
	case l >= slog.LevelError:
		return "ERROR"
	case l >= slog.LevelWarn:
		return "WARN"
	case l >= LevelSuccess:
		return "SUCCESS"
	case l >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}

func levelColor(l slog.Level) string {
	switch {
	case l >= slog.LevelError:
		return term.Red
	case l >= slog.LevelWarn:
		return term.Yellow
	case l >= LevelSuccess:
		return term.Green
	case l >= slog.LevelInfo:
		return term.Blue
	default:
		return term.Cyan
	}
}

// consoleHandler prints "2006-01-02 15:04:05 [LEVEL] message key=value"
// lines. Errors go to errOut, everything else to out.
type consoleHandler struct {
	mu     *sync.Mutex
	out    io.Writer
	errOut io.Writer
	attrs  []slog.Attr
}

func newConsoleHandler(out, errOut io.Writer) *consoleHandler {
	return &consoleHandler{mu: &sync.Mutex{}, out: out, errOut: errOut}
}

func (h *consoleHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *consoleHandler) Handle(_ context.Context, r slog.Record) error {
	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	var b strings.Builder
	b.WriteString(ts.Format("2006-01-02 15:04:05"))
	b.WriteByte(' ')
	if c := levelColor(r.Level); c != "" {
		b.WriteString(c + "[" + levelName(r.Level) + "]" + term.NC)
	} else {
		b.WriteString("[" + levelName(r.Level) + "]")
	}
	b.WriteByte(' ')
	b.WriteString(r.Message)
	write := func(a slog.Attr) bool {
		if a.Key == runIDKey {
			return true
		}
		b.WriteString(" " + a.Key + "=" + a.Value.String())
		return true
	}
	for _, a := range h.attrs {
		write(a)
	}
	r.Attrs(write)
	b.WriteByte('\n')

	w := h.out
	if r.Level >= slog.LevelError {
		w = h.errOut
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(w, b.String())
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &next
}

// Groups are flattened; the console output has no nesting.
func (h *consoleHandler) WithGroup(string) slog.Handler { return h }

// fanoutHandler duplicates records to every handler that accepts them.
type fanoutHandler struct {
	handlers []slog.Handler
}

func newFanoutHandler(handlers ...slog.Handler) slog.Handler {
	var filtered []slog.Handler
	for _, h := range handlers {
		if h != nil {
			filtered = append(filtered, h)
		}
	}
	if len(filtered) == 1 {
		return filtered[0]
	}
	return &fanoutHandler{handlers: filtered}
}

func (h *fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *fanoutHandler) Handle(ctx context.Context, r slog.Record) error {
	var firstErr error
	for _, handler := range h.handlers {
		if !handler.Enabled(ctx, r.Level) {
			continue
		}
		if err := handler.Handle(ctx, r.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (h *fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		next[i] = handler.WithAttrs(attrs)
	}
	return &fanoutHandler{handlers: next}
}

func (h *fanoutHandler) WithGroup(name string) slog.Handler {
	next := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		next[i] = handler.WithGroup(name)
	}
	return &fanoutHandler{handlers: next}
}

// replaceLevel prints LevelSuccess as SUCCESS in the file handler.
func replaceLevel(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.LevelKey {
		if l, ok := a.Value.Any().(slog.Level); ok {
			a.Value = slog.StringValue(levelName(l))
		}
	}
	return a
}
