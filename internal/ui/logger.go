package ui

import (
	"log/slog"
	"sync"
	"time"

	"github.com/rail44/adminui/internal/log"
)

// logHistory is how many records the status area keeps
const logHistory = 3

// LogEntry represents a single log message
type LogEntry struct {
	Level     slog.Level
	Message   string
	Timestamp time.Time
}

// logBuffer keeps the most recent log entries. Records arrive from fetch
// commands on other goroutines, so access is guarded.
type logBuffer struct {
	mu      sync.RWMutex
	entries []LogEntry
	limit   int
}

func newLogBuffer(limit int) *logBuffer {
	return &logBuffer{limit: limit}
}

// Handle is a log.CallbackFunc
func (b *logBuffer) Handle(r slog.Record) {
	b.add(LogEntry{
		Level:     r.Level,
		Message:   log.FormatRecord(r),
		Timestamp: r.Time,
	})
}

func (b *logBuffer) add(e LogEntry) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = append(b.entries, e)
	if len(b.entries) > b.limit {
		b.entries = b.entries[len(b.entries)-b.limit:]
	}
}

// Recent returns a copy of the buffered entries, oldest first
func (b *logBuffer) Recent() []LogEntry {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]LogEntry(nil), b.entries...)
}
