package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Logger wraps zerolog.Logger for engine components.
type Logger struct {
	logger zerolog.Logger
}

// Init initializes the global logger from config and applies the configured
// level globally.
func Init(cfg Config) {
	cfg.ApplyDefaults()

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	SetGlobal(New(&cfg))
}

// New creates a logger instance from configuration.
func New(cfg *Config) *Logger {
	var zl zerolog.Logger
	if strings.ToLower(cfg.Format) == "console" {
		zl = zerolog.New(zerolog.ConsoleWriter{
			Out:     outputWriter(cfg.Output),
			NoColor: cfg.NoColor,
		})
	} else {
		zl = zerolog.New(outputWriter(cfg.Output))
	}

	if cfg.Timestamp {
		zl = zl.With().Timestamp().Logger()
	}
	if cfg.Caller {
		zl = zl.With().Caller().Logger()
	}

	return &Logger{logger: zl}
}

// NewWithWriter creates a JSON logger writing to w. Intended for tests
// and embedding applications that manage their own output streams.
func NewWithWriter(w io.Writer) *Logger {
	return &Logger{logger: zerolog.New(w)}
}

// NewDefault creates a logger with default configuration.
func NewDefault() *Logger {
	cfg := Config{}
	cfg.ApplyDefaults()
	return New(&cfg)
}

func outputWriter(output string) io.Writer {
	switch strings.ToLower(output) {
	case "stdout":
		return os.Stdout
	default:
		return os.Stderr
	}
}

// WithComponent returns a logger tagged with a component name.
func (l *Logger) WithComponent(name string) *Logger {
	return &Logger{logger: l.logger.With().Str(FieldComponent, name).Logger()}
}

// WithFields returns a logger with additional fields.
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	zc := l.logger.With()
	for k, v := range fields {
		zc = zc.Interface(k, v)
	}
	return &Logger{logger: zc.Logger()}
}

// WithError returns a logger with an error field.
func (l *Logger) WithError(err error) *Logger {
	return &Logger{logger: l.logger.With().Err(err).Logger()}
}

// Z returns the underlying zerolog.Logger.
func (l *Logger) Z() zerolog.Logger { return l.logger }

// Trace logs a trace message.
func (l *Logger) Trace(msg string, fields ...map[string]interface{}) {
	event := l.logger.Trace()
	addFields(event, fields...)
	event.Msg(msg)
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, fields ...map[string]interface{}) {
	event := l.logger.Debug()
	addFields(event, fields...)
	event.Msg(msg)
}

// Info logs an info message.
func (l *Logger) Info(msg string, fields ...map[string]interface{}) {
	event := l.logger.Info()
	addFields(event, fields...)
	event.Msg(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, fields ...map[string]interface{}) {
	event := l.logger.Warn()
	addFields(event, fields...)
	event.Msg(msg)
}

// Error logs an error message.
func (l *Logger) Error(msg string, fields ...map[string]interface{}) {
	event := l.logger.Error()
	addFields(event, fields...)
	event.Msg(msg)
}

func addFields(event *zerolog.Event, fields ...map[string]interface{}) {
	for _, m := range fields {
		for k, v := range m {
			event.Interface(k, v)
		}
	}
}

// --- Global logger ---

var global *Logger

// SetGlobal sets the global logger instance.
func SetGlobal(l *Logger) { global = l }

// Global returns the global logger, creating a default one if needed.
func Global() *Logger {
	if global == nil {
		global = NewDefault()
	}
	return global
}

// Debug logs a debug message on the global logger.
func Debug(msg string, fields ...map[string]interface{}) { Global().Debug(msg, fields...) }

// Info logs an info message on the global logger.
func Info(msg string, fields ...map[string]interface{}) { Global().Info(msg, fields...) }

// Warn logs a warning message on the global logger.
func Warn(msg string, fields ...map[string]interface{}) { Global().Warn(msg, fields...) }

// Error logs an error message on the global logger.
func Error(msg string, fields ...map[string]interface{}) { Global().Error(msg, fields...) }
