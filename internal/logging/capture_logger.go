package logging

import (
	"fmt"
	"strings"
	"sync"
)

// Level identifies the severity of a captured entry.
type Level string

const (
	LevelVerbose Level = "verbose"
	LevelInfo    Level = "info"
	LevelWarn    Level = "warn"
	LevelError   Level = "error"
)

// Entry is one captured log message.
type Entry struct {
	Level   Level
	Message string
}

// CaptureLogger keeps every message in memory.
type CaptureLogger struct {
	mu      sync.Mutex
	entries []Entry
}

// NewCaptureLogger creates an empty CaptureLogger.
func NewCaptureLogger() *CaptureLogger {
	return &CaptureLogger{}
}

func (l *CaptureLogger) record(level Level, format string, args []interface{}) {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, Entry{Level: level, Message: msg})
}

// Verbose records a verbose message.
func (l *CaptureLogger) Verbose(format string, args ...interface{}) {
	l.record(LevelVerbose, format, args)
}

// Info records an informational message.
func (l *CaptureLogger) Info(format string, args ...interface{}) {
	l.record(LevelInfo, format, args)
}

// Warn records a warning.
func (l *CaptureLogger) Warn(format string, args ...interface{}) {
	l.record(LevelWarn, format, args)
}

// Error records an error.
func (l *CaptureLogger) Error(format string, args ...interface{}) {
	l.record(LevelError, format, args)
}

// Entries returns a copy of all captured entries.
func (l *CaptureLogger) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Messages returns the messages captured at the given level.
func (l *CaptureLogger) Messages(level Level) []string {
	var out []string
	for _, e := range l.Entries() {
		if e.Level == level {
			out = append(out, e.Message)
		}
	}
	return out
}

// Contains reports whether any message at level contains substr.
func (l *CaptureLogger) Contains(level Level, substr string) bool {
	for _, msg := range l.Messages(level) {
		if strings.Contains(msg, substr) {
			return true
		}
	}
	return false
}
