package observability

import (
	"errors"
	"math"
	"testing"

	otellog "go.opentelemetry.io/otel/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestShouldSkipUptraceLog(t *testing.T) {
	if !shouldSkipUptraceLog("http request", map[string]any{"path": "/healthz"}) {
		t.Fatalf("expected health check log to be skipped")
	}
	if shouldSkipUptraceLog("http request", map[string]any{"path": "/v1/teams/BUF/efficiencies"}) {
		t.Fatalf("did not expect non-health log to be skipped")
	}
	if shouldSkipUptraceLog("qstash publish request", map[string]any{"path": "/healthz"}) {
		t.Fatalf("did not expect other events to be skipped")
	}
}

func TestBuildOTelLogAttributes_SortedKeys(t *testing.T) {
	attrs := buildOTelLogAttributes(map[string]any{
		"team":    "BUF",
		"attempt": int64(2),
		"error":   errors.New("boom"),
	})
	if len(attrs) != 3 {
		t.Fatalf("expected 3 attributes, got %d", len(attrs))
	}
	if attrs[0].Key != "attempt" || attrs[0].Value.AsInt64() != 2 {
		t.Fatalf("unexpected attempt attribute: %+v", attrs[0])
	}
	if attrs[1].Key != "error" || attrs[1].Value.AsString() != "boom" {
		t.Fatalf("unexpected error attribute: %+v", attrs[1])
	}
	if attrs[2].Key != "team" || attrs[2].Value.AsString() != "BUF" {
		t.Fatalf("unexpected team attribute: %+v", attrs[2])
	}
}

func TestToOTelLogValue(t *testing.T) {
	if v := toOTelLogValue(map[string]any{"Yds": 11, "win": true}, 0); v.Kind() != otellog.KindMap || len(v.AsMap()) != 2 {
		t.Fatalf("expected 2-item map value, got %s", v.Kind())
	}
	if v := toOTelLogValue(math.NaN(), 0); v.Kind() != otellog.KindString {
		t.Fatalf("expected NaN as string, got %s", v.Kind())
	}
	if v := toOTelLogValue([]string{"QB", "RB"}, 0); v.Kind() != otellog.KindSlice {
		t.Fatalf("expected slice value, got %s", v.Kind())
	}
	if v := toOTelLogValue(uint8(7), 0); v.AsInt64() != 7 {
		t.Fatalf("expected uint8 as int64")
	}
}

func TestUptraceLogCore_RespectsLevelAndWith(t *testing.T) {
	core := newUptraceLogCore(zapcore.WarnLevel, "test")
	if core.Enabled(zapcore.InfoLevel) {
		t.Fatalf("info must be disabled at warn level")
	}
	child := core.With([]zapcore.Field{zap.String("component", "resolver")})
	if got := child.(*uptraceLogCore).fields; len(got) != 1 {
		t.Fatalf("expected one inherited field, got %d", len(got))
	}
	if len(core.(*uptraceLogCore).fields) != 0 {
		t.Fatalf("With must not mutate the parent core")
	}
	if err := child.Write(zapcore.Entry{Level: zapcore.ErrorLevel, Message: "resolver failed"}, []zapcore.Field{zap.Int("attempt", 3)}); err != nil {
		t.Fatalf("write: %v", err)
	}
}
