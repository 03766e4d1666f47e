package testutils

import (
	"sync"

	"github.com/jzx17/airetry/pkg/logger"
)

// LogEntry is one recorded log call
type LogEntry struct {
	Level  string
	Msg    string
	Err    error
	Fields map[string]interface{}
}

// RecordingLogger keeps every log call for assertions. It is safe for
// concurrent use.
type RecordingLogger struct {
	store  *logStore
	fields map[string]interface{}
}

type logStore struct {
	mu      sync.Mutex
	entries []LogEntry
}

var _ logger.Logger = (*RecordingLogger)(nil)

// NewRecordingLogger creates an empty recording logger
func NewRecordingLogger() *RecordingLogger {
	return &RecordingLogger{store: &logStore{}}
}

func (l *RecordingLogger) record(level, msg string, err error, fields map[string]interface{}) {
	merged := make(map[string]interface{}, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}

	l.store.mu.Lock()
	defer l.store.mu.Unlock()
	l.store.entries = append(l.store.entries, LogEntry{Level: level, Msg: msg, Err: err, Fields: merged})
}

func (l *RecordingLogger) Debug(msg string, fields map[string]interface{}) {
	l.record("debug", msg, nil, fields)
}

func (l *RecordingLogger) Info(msg string, fields map[string]interface{}) {
	l.record("info", msg, nil, fields)
}

func (l *RecordingLogger) Warn(msg string, fields map[string]interface{}) {
	l.record("warn", msg, nil, fields)
}

func (l *RecordingLogger) Error(msg string, err error, fields map[string]interface{}) {
	l.record("error", msg, err, fields)
}

func (l *RecordingLogger) WithComponent(component string) logger.Logger {
	return l.WithFields(map[string]interface{}{"component": component})
}

// WithFields returns a child that records into the same entry list
func (l *RecordingLogger) WithFields(fields map[string]interface{}) logger.Logger {
	merged := make(map[string]interface{}, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &RecordingLogger{store: l.store, fields: merged}
}

// Entries returns a copy of the recorded entries at level, or all entries
// when level is empty
func (l *RecordingLogger) Entries(level string) []LogEntry {
	l.store.mu.Lock()
	defer l.store.mu.Unlock()

	var out []LogEntry
	for _, e := range l.store.entries {
		if level == "" || e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

// Warnings returns the recorded warn entries
func (l *RecordingLogger) Warnings() []LogEntry {
	return l.Entries("warn")
}
