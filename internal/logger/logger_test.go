package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/zapponejosh/lunarcal/internal/config"
)

func TestNew_Level(t *testing.T) {
	var buf bytes.Buffer
	log := New(&config.Config{LogLevel: "warn", LogFormat: "text"}, &buf)

	log.Info("hidden")
	log.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message logged at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn message missing: %q", out)
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(&config.Config{LogLevel: "info", LogFormat: "json"}, &buf)

	log.Info("hello", slog.Int("year", 2024))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["msg"] != "hello" {
		t.Errorf("msg = %v, want hello", entry["msg"])
	}
	if entry["year"] != float64(2024) {
		t.Errorf("year = %v, want 2024", entry["year"])
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRequestID(t *testing.T) {
	ctx := context.Background()
	if got := RequestID(ctx); got != "" {
		t.Errorf("RequestID(empty) = %q, want empty", got)
	}

	ctx = WithRequestID(ctx, "abc123")
	if got := RequestID(ctx); got != "abc123" {
		t.Errorf("RequestID() = %q, want %q", got, "abc123")
	}
}

func TestContextHelpers(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	ctx := WithRequestID(context.Background(), "req-7")
	Debug(ctx, "debug line")
	Info(ctx, "info line")
	Warn(ctx, "warn line")
	Error(ctx, "error line", errors.New("boom"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d log lines, want 4:\n%s", len(lines), buf.String())
	}
	for i, level := range []string{"DEBUG", "INFO", "WARN", "ERROR"} {
		if !strings.Contains(lines[i], "level="+level) || !strings.Contains(lines[i], "request_id=req-7") {
			t.Errorf("line %d = %q, want level %s with request_id", i, lines[i], level)
		}
	}
	if !strings.Contains(lines[3], "error=boom") {
		t.Errorf("error line %q lacks error attribute", lines[3])
	}
}
