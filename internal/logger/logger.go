package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger writes structured JSON records tagged with service and hostname.
type Logger struct {
	service  string
	hostname string
	handler  *slog.Logger
}

// New creates a Logger writing to stdout at the given level
// ("debug", "info", "warn", "error"; anything else means info).
func New(service, level string) *Logger {
	return NewWithWriter(service, level, os.Stdout)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(service, level string, w io.Writer) *Logger {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	handler := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: parseLevel(level),
	}))

	return &Logger{
		service:  service,
		hostname: hostname,
		handler:  handler,
	}
}

// Discard returns a Logger that drops everything.
func Discard() *Logger {
	return NewWithWriter("discard", "error", io.Discard)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func (l *Logger) Debug(action, message string, attrs ...slog.Attr) {
	l.log(slog.LevelDebug, action, message, attrs)
}

func (l *Logger) Info(action, message string, attrs ...slog.Attr) {
	l.log(slog.LevelInfo, action, message, attrs)
}

func (l *Logger) Warn(action, message string, attrs ...slog.Attr) {
	l.log(slog.LevelWarn, action, message, attrs)
}

func (l *Logger) Error(action, message string, err error, attrs ...slog.Attr) {
	if err != nil {
		attrs = append(attrs, slog.Group("error", slog.String("msg", err.Error())))
	}
	l.log(slog.LevelError, action, message, attrs)
}

func (l *Logger) log(level slog.Level, action, message string, attrs []slog.Attr) {
	base := []slog.Attr{
		slog.String("service", l.service),
		slog.String("hostname", l.hostname),
		slog.String("action", action),
	}
	l.handler.LogAttrs(context.Background(), level, message, append(base, attrs...)...)
}
