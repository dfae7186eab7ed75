package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"none", LevelNone},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLogLevel(tt.in); got != tt.want {
				t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewLogger_JSONOutsideDev(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, slog.LevelInfo, "prod")

	l.Debug("hidden")
	l.Info("shown", slog.String("component", "test"))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected a single JSON log line, got %q: %v", buf.String(), err)
	}
	if entry["msg"] != "shown" {
		t.Errorf("msg = %v, want shown", entry["msg"])
	}
	if entry["component"] != "test" {
		t.Errorf("component = %v, want test", entry["component"])
	}
}

func TestNewLogger_None(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, LevelNone, "dev")
	l.Error("should not be written")
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestContextRequestLogger(t *testing.T) {
	ctx := context.Background()
	if ContextRequestLogger(ctx) != slog.Default() {
		t.Error("expected default logger when none is set")
	}

	l := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	ctx = ContextWithRequestLogger(ctx, l)
	if ContextRequestLogger(ctx) != l {
		t.Error("expected the request logger stored in the context")
	}
}

func TestContextWithLogAttrs(t *testing.T) {
	// without a holder the call is ignored
	ContextWithLogAttrs(context.Background(), slog.String("ignored", "x"))

	ctx := ContextWithLogAttrsHolder(context.Background())
	ContextWithLogAttrs(ctx, slog.String("post_id", "abc"))
	ContextWithLogAttrs(ctx, slog.Int("count", 2))

	attrs := ContextLogAttrs(ctx)
	if len(attrs) != 2 {
		t.Fatalf("got %d attrs, want 2", len(attrs))
	}
	if attrs[0].Key != "post_id" || attrs[1].Key != "count" {
		t.Errorf("unexpected attrs: %v", attrs)
	}
}
