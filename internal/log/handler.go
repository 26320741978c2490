package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// BaseHandler provides common formatting logic for all handlers
type BaseHandler struct {
	level slog.Level
	mu    *sync.Mutex
}

// Enabled reports whether the handler handles records at the given level
func (h *BaseHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

// CallbackFunc receives every record a CallbackHandler accepts
type CallbackFunc func(record slog.Record)

// NewCallbackLogger returns a logger whose records go to callback
func NewCallbackLogger(callback CallbackFunc, minLevel slog.Level, attrs ...slog.Attr) *slog.Logger {
	var handler slog.Handler = NewCallbackHandler(callback, minLevel)
	if len(attrs) > 0 {
		handler = handler.WithAttrs(attrs)
	}
	return slog.New(handler)
}

// CallbackHandler is a slog.Handler that forwards log records to a callback function
type CallbackHandler struct {
	BaseHandler
	callback CallbackFunc
	attrs    []slog.Attr
}

// NewCallbackHandler creates a new slog handler that forwards logs to a callback
func NewCallbackHandler(callback CallbackFunc, level slog.Level) *CallbackHandler {
	return &CallbackHandler{
		BaseHandler: BaseHandler{level: level, mu: &sync.Mutex{}},
		callback:    callback,
	}
}

// Handle handles the Record by forwarding to the callback
func (h *CallbackHandler) Handle(_ context.Context, record slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.callback == nil {
		return nil
	}

	if len(h.attrs) > 0 {
		record.AddAttrs(h.attrs...)
	}

	h.callback(record)
	return nil
}

// WithAttrs returns a new Handler whose attributes consist of both the receiver's attributes and the arguments
func (h *CallbackHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &CallbackHandler{
		BaseHandler: h.BaseHandler,
		callback:    h.callback,
		attrs:       merged,
	}
}

// WithGroup returns a new Handler with the given group name
func (h *CallbackHandler) WithGroup(name string) slog.Handler {
	// Groups are flattened
	return h
}

// Handler is a slog.Handler for formatted, human readable output
type Handler struct {
	level     slog.Level
	mu        *sync.Mutex
	component string
	attrs     []slog.Attr
	output    io.Writer
}

// NewHandler creates a new handler for formatted output
func NewHandler(output io.Writer, level slog.Level) *Handler {
	return &Handler{
		level:  level,
		mu:     &sync.Mutex{},
		output: output,
	}
}

// Enabled returns whether the handler handles records at the given level
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

// Handle processes the Record and outputs formatted log
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	var prefix string
	if h.component != "" {
		prefix = "[" + h.component + "] "
	}

	_, err := fmt.Fprintf(h.output, "%s%s%s\n", LevelPrefix(r.Level), prefix, FormatRecord(r, h.attrs...))
	return err
}

// WithAttrs returns a new Handler with the given attributes. A "component"
// attribute becomes the line prefix instead of a key=value pair.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append([]slog.Attr(nil), h.attrs...)
	for _, a := range attrs {
		if a.Key == ComponentKey {
			next.component = a.Value.String()
			continue
		}
		next.attrs = append(next.attrs, a)
	}
	return &next
}

// WithGroup returns a new Handler with the given group name
func (h *Handler) WithGroup(name string) slog.Handler {
	// Groups are flattened
	return h
}

// ComponentKey is the attribute used to tag log lines with their origin
const ComponentKey = "component"

// LevelPrefix returns the bracketed level tag; INFO has none
func LevelPrefix(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "[ERROR] "
	case level >= slog.LevelWarn:
		return "[WARN] "
	case level >= slog.LevelInfo:
		return ""
	default:
		return "[DEBUG] "
	}
}

// FormatRecord renders the message followed by key=value attributes
func FormatRecord(r slog.Record, extra ...slog.Attr) string {
	formatted := r.Message
	appendAttr := func(a slog.Attr) bool {
		if a.Key == slog.TimeKey || a.Key == ComponentKey {
			return true
		}
		formatted += fmt.Sprintf(" %s=%v", a.Key, a.Value.Any())
		return true
	}
	for _, a := range extra {
		appendAttr(a)
	}
	r.Attrs(appendAttr)
	return formatted
}
