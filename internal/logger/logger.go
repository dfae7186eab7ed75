// Package logger configures the application slog logger and carries a request scoped logger through the context.
//
// In dev the logs are colourised text (tint), every other environment gets JSON.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/lmittmann/tint"
)

// LevelNone disables logging - it is above any level the application logs at.
const LevelNone = slog.Level(100)

type contextKey int

const (
	requestLoggerKey contextKey = iota
	logAttrsKey
)

// ParseLogLevel converts a LOG_LEVEL value to a slog.Level. Unknown values default to info.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "none", "off":
		return LevelNone
	default:
		return slog.LevelInfo
	}
}

// InitLogger creates the application logger and installs it as the slog default.
func InitLogger(level slog.Level, environment string) *slog.Logger {
	return newLogger(os.Stdout, level, environment)
}

func newLogger(w io.Writer, level slog.Level, environment string) *slog.Logger {
	var handler slog.Handler

	if level == LevelNone {
		handler = slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: LevelNone})
	} else if environment == "dev" {
		handler = tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	}

	l := slog.New(handler)
	slog.SetDefault(l)
	return l
}

// ContextWithRequestLogger stores a request scoped logger in ctx
func ContextWithRequestLogger(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, requestLoggerKey, l)
}

// ContextRequestLogger returns the request scoped logger, or the default logger when there is none.
func ContextRequestLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(requestLoggerKey).(*slog.Logger); ok && l != nil {
		return l
	}
	return slog.Default()
}

type logAttrs struct {
	mu    sync.Mutex
	attrs []slog.Attr
}

// ContextWithLogAttrsHolder prepares ctx so handlers can add attributes to the final request log line.
func ContextWithLogAttrsHolder(ctx context.Context) context.Context {
	return context.WithValue(ctx, logAttrsKey, &logAttrs{})
}

// ContextWithLogAttrs adds attributes to the final request log line.
// It is a no-op when the request was not set up by the request logging middleware.
func ContextWithLogAttrs(ctx context.Context, attrs ...slog.Attr) {
	holder, ok := ctx.Value(logAttrsKey).(*logAttrs)
	if !ok {
		return
	}
	holder.mu.Lock()
	defer holder.mu.Unlock()
	holder.attrs = append(holder.attrs, attrs...)
}

// ContextLogAttrs returns the attributes collected for the request
func ContextLogAttrs(ctx context.Context) []slog.Attr {
	holder, ok := ctx.Value(logAttrsKey).(*logAttrs)
	if !ok {
		return nil
	}
	holder.mu.Lock()
	defer holder.mu.Unlock()
	return append([]slog.Attr(nil), holder.attrs...)
}
