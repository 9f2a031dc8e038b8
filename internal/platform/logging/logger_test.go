package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"go.opentelemetry.io/otel/trace"
)

func TestNewWritesJSONWithFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(Options{Level: LevelInfo, Output: &buf, Service: "reconciler"})
	logger.Info("player resolved", "player", "Josh Allen", "attempts", 1, "err", errors.New("boom"))
	logger.Debug("filtered out")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected exactly one line, got %d: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := sonic.UnmarshalString(lines[0], &entry); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if entry["msg"] != "player resolved" || entry["level"] != "INFO" {
		t.Fatalf("unexpected entry: %v", entry)
	}
	if entry["service"] != "reconciler" || entry["player"] != "Josh Allen" || entry["err"] != "boom" {
		t.Fatalf("missing fields: %v", entry)
	}
}

func TestContextVariantAddsTraceIDs(t *testing.T) {
	t.Parallel()

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	var buf bytes.Buffer
	New(Options{Level: LevelDebug, Output: &buf}).WarnContext(ctx, "fetch failed")

	out := buf.String()
	if !strings.Contains(out, traceID.String()) || !strings.Contains(out, spanID.String()) {
		t.Fatalf("expected trace fields in %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]Level{"debug": LevelDebug, "": LevelInfo, "WARNING": LevelWarn, "error": LevelError}
	for raw, want := range cases {
		got, ok := ParseLevel(raw)
		if !ok || got != want {
			t.Fatalf("ParseLevel(%q) = %v,%v want %v", raw, got, ok, want)
		}
	}
	if _, ok := ParseLevel("loud"); ok {
		t.Fatalf("expected unknown level to be rejected")
	}
}

func TestNilLoggerFallsBackToDefault(t *testing.T) {
	t.Parallel()

	var logger *Logger
	logger.Info("ignored")
	if logger.With("k", "v") == nil {
		t.Fatalf("expected non-nil child logger")
	}
}
