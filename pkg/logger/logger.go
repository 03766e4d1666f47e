// Package logger provides the structured logger used across the module
package logger

import (
	"io"
	"os"
	"sort"
	"time"

	"github.com/rs/zerolog"
)

// Config logger configuration
type Config struct {
	Level  string    // log level: debug, info, warn, error
	Pretty bool      // human-readable console output
	JSON   bool      // force JSON output even when Pretty is set
	Output io.Writer // defaults to os.Stderr
}

// Logger is a structured, leveled logger
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
	WithComponent(component string) Logger
	WithFields(fields map[string]interface{}) Logger
}

type ZeroLogger struct {
	log zerolog.Logger
}

func NewLogger(config Config) Logger {
	output := config.Output
	if output == nil {
		output = os.Stderr
	}
	if config.Pretty && !config.JSON {
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339,
		}
	}

	level, err := zerolog.ParseLevel(config.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	logger := zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger()

	return &ZeroLogger{
		log: logger,
	}
}

// FromZerolog wraps an existing zerolog.Logger
func FromZerolog(log zerolog.Logger) Logger {
	return &ZeroLogger{log: log}
}

func (l *ZeroLogger) Debug(msg string, fields map[string]interface{}) {
	send(l.log.Debug(), msg, fields)
}

func (l *ZeroLogger) Info(msg string, fields map[string]interface{}) {
	send(l.log.Info(), msg, fields)
}

func (l *ZeroLogger) Warn(msg string, fields map[string]interface{}) {
	send(l.log.Warn(), msg, fields)
}

func (l *ZeroLogger) Error(msg string, err error, fields map[string]interface{}) {
	event := l.log.Error()
	if err != nil {
		event = event.Err(err)
	}
	send(event, msg, fields)
}

func (l *ZeroLogger) WithComponent(component string) Logger {
	return &ZeroLogger{
		log: l.log.With().Str("component", component).Logger(),
	}
}

func (l *ZeroLogger) WithFields(fields map[string]interface{}) Logger {
	ctx := l.log.With()
	for _, k := range sortedKeys(fields) {
		ctx = ctx.Interface(k, fields[k])
	}
	return &ZeroLogger{
		log: ctx.Logger(),
	}
}

// send is a no-op for disabled levels (zerolog returns a nil event)
func send(event *zerolog.Event, msg string, fields map[string]interface{}) {
	if event == nil {
		return
	}
	for _, k := range sortedKeys(fields) {
		event = event.Interface(k, fields[k])
	}
	event.Msg(msg)
}

func sortedKeys(fields map[string]interface{}) []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

type nopLogger struct{}

// Nop returns a logger that discards everything
func Nop() Logger {
	return nopLogger{}
}

func (nopLogger) Debug(string, map[string]interface{})        {}
func (nopLogger) Info(string, map[string]interface{})         {}
func (nopLogger) Warn(string, map[string]interface{})         {}
func (nopLogger) Error(string, error, map[string]interface{}) {}
func (n nopLogger) WithComponent(string) Logger               { return n }
func (n nopLogger) WithFields(map[string]interface{}) Logger  { return n }
