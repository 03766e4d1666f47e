package logger

import (
	"github.com/go-logr/logr"
)

// logr has no warn level; warnings are emitted at V(0) with this key set
const severityKey = "severity"

type logrLogger struct {
	log logr.Logger
}

// FromLogr adapts a logr.Logger. Debug maps to V(1); Info and Warn map to
// V(0), with Warn tagged severity=warning.
func FromLogr(log logr.Logger) Logger {
	return &logrLogger{log: log}
}

func (l *logrLogger) Debug(msg string, fields map[string]interface{}) {
	l.log.V(1).Info(msg, keysAndValues(fields)...)
}

func (l *logrLogger) Info(msg string, fields map[string]interface{}) {
	l.log.Info(msg, keysAndValues(fields)...)
}

func (l *logrLogger) Warn(msg string, fields map[string]interface{}) {
	kv := append([]interface{}{severityKey, "warning"}, keysAndValues(fields)...)
	l.log.Info(msg, kv...)
}

func (l *logrLogger) Error(msg string, err error, fields map[string]interface{}) {
	l.log.Error(err, msg, keysAndValues(fields)...)
}

func (l *logrLogger) WithComponent(component string) Logger {
	return &logrLogger{log: l.log.WithName(component)}
}

func (l *logrLogger) WithFields(fields map[string]interface{}) Logger {
	return &logrLogger{log: l.log.WithValues(keysAndValues(fields)...)}
}

func keysAndValues(fields map[string]interface{}) []interface{} {
	kv := make([]interface{}, 0, len(fields)*2)
	for _, k := range sortedKeys(fields) {
		kv = append(kv, k, fields[k])
	}
	return kv
}
