package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"
)

// LogLevel is a thin enum for user friendly level configuration decoupled from slog.
type LogLevel int

const (
	// LogLevelDebug is the debug logging level.
	LogLevelDebug LogLevel = iota
	// LogLevelInfo is the informational logging level.
	LogLevelInfo
	// LogLevelWarn is the warning logging level.
	LogLevelWarn
	// LogLevelError is the error logging level.
	LogLevelError
)

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func slogLevel(l LogLevel) slog.Level {
	switch l {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Logger defines the minimal logging interface for SessionHub. This allows
// users to provide their own logger implementation or use the built-in adapters.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// NoOpLogger discards all log records. It is the default for every component
// so logging is strictly opt-in.
type NoOpLogger struct{}

// Debug discards the record.
func (NoOpLogger) Debug(string, ...any) {}

// Info discards the record.
func (NoOpLogger) Info(string, ...any) {}

// Warn discards the record.
func (NoOpLogger) Warn(string, ...any) {}

// Error discards the record.
func (NoOpLogger) Error(string, ...any) {}

// SlogAdapter wraps *slog.Logger to implement the Logger interface.
type SlogAdapter struct {
	*slog.Logger
}

// NewSlogAdapter creates a Logger from *slog.Logger.
func NewSlogAdapter(logger *slog.Logger) Logger {
	return &SlogAdapter{Logger: logger}
}

// NewDefaultSlogLogger creates a Logger using slog.Default().
func NewDefaultSlogLogger() Logger {
	return NewSlogAdapter(slog.Default())
}

// NewSlogLogger builds a Logger writing to stderr in the given format
// ("json" or "text") at the given level.
func NewSlogLogger(level LogLevel, format string) Logger {
	return NewSlogAdapter(slog.New(newHandler(os.Stderr, level, format)))
}

func newHandler(w io.Writer, level LogLevel, format string) slog.Handler {
	opts := &slog.HandlerOptions{Level: slogLevel(level)}
	if format == "text" {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}

// SessionHubLogger wraps slog.Logger adding contextual cloning helpers and a
// domain convenience method for operation outcomes. It is cheap to copy via
// the With* methods.
type SessionHubLogger struct {
	logger    *slog.Logger
	level     LogLevel
	component string
	userID    string
	context   map[string]any
}

// LoggerConfig configures construction of a SessionHubLogger.
type LoggerConfig struct {
	Level     LogLevel
	Format    string // json or text
	Output    io.Writer
	Component string
}

// DefaultLoggerConfig returns a baseline JSON info level configuration.
func DefaultLoggerConfig() *LoggerConfig {
	return &LoggerConfig{Level: LogLevelInfo, Format: "json", Output: os.Stderr}
}

// NewLogger builds a SessionHubLogger from a config (or defaults if nil).
func NewLogger(cfg *LoggerConfig) *SessionHubLogger {
	if cfg == nil {
		cfg = DefaultLoggerConfig()
	}
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	return &SessionHubLogger{
		logger:    slog.New(newHandler(out, cfg.Level, cfg.Format)),
		level:     cfg.Level,
		component: cfg.Component,
		context:   map[string]any{},
	}
}

func (l *SessionHubLogger) clone() *SessionHubLogger {
	nl := *l
	nl.context = make(map[string]any, len(l.context))
	for k, v := range l.context {
		nl.context[k] = v
	}
	return &nl
}

// WithComponent sets the logical component (store, manager, ws, registry).
func (l *SessionHubLogger) WithComponent(c string) *SessionHubLogger {
	nl := l.clone()
	nl.component = c
	return nl
}

// WithUser attaches the user id the following records relate to.
func (l *SessionHubLogger) WithUser(id string) *SessionHubLogger {
	nl := l.clone()
	nl.userID = id
	return nl
}

// WithContext adds a key/value attribute attached to every log entry.
func (l *SessionHubLogger) WithContext(key string, value any) *SessionHubLogger {
	nl := l.clone()
	nl.context[key] = value
	return nl
}

func (l *SessionHubLogger) buildAttrs() []slog.Attr {
	attrs := make([]slog.Attr, 0, len(l.context)+2)
	if l.component != "" {
		attrs = append(attrs, slog.String("component", l.component))
	}
	if l.userID != "" {
		attrs = append(attrs, slog.String("user_id", l.userID))
	}
	for k, v := range l.context {
		attrs = append(attrs, slog.Any(k, v))
	}
	return attrs
}

func (l *SessionHubLogger) log(level slog.Level, allowed bool, msg string, args ...any) {
	if !allowed {
		return
	}
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	l.logger.LogAttrs(context.Background(), level, msg, l.buildAttrs()...)
}

// Debug logs at debug level.
func (l *SessionHubLogger) Debug(msg string, args ...any) {
	l.log(slog.LevelDebug, l.level <= LogLevelDebug, msg, args...)
}

// Info logs at info level.
func (l *SessionHubLogger) Info(msg string, args ...any) {
	l.log(slog.LevelInfo, l.level <= LogLevelInfo, msg, args...)
}

// Warn logs at warn level.
func (l *SessionHubLogger) Warn(msg string, args ...any) {
	l.log(slog.LevelWarn, l.level <= LogLevelWarn, msg, args...)
}

// Error logs at error level.
func (l *SessionHubLogger) Error(msg string, args ...any) {
	l.log(slog.LevelError, l.level <= LogLevelError, msg, args...)
}

// LogOperation records latency and outcome of a session operation.
func (l *SessionHubLogger) LogOperation(op string, dur time.Duration, err error) {
	attrs := l.buildAttrs()
	attrs = append(attrs, slog.String("operation", op), slog.Duration("duration", dur), slog.Bool("success", err == nil))
	level := slog.LevelInfo
	msg := "Session operation completed"
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		level = slog.LevelWarn
		msg = "Session operation failed"
	}
	l.logger.LogAttrs(context.Background(), level, msg, attrs...)
}
