package httpapi

import (
	"net/http"
	"strings"
	"testing"

	crerr "github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/riskibarqy/antelope-reconciler/internal/domain/roster"
	"github.com/riskibarqy/antelope-reconciler/internal/platform/logging"
	"github.com/riskibarqy/antelope-reconciler/internal/usecase"
)

func TestRequestLogging_LevelFollowsStatus(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	logger := logging.FromZap(zap.New(core))

	reconciler := &stubReconciler{
		refreshFn: func(roster.WorkItem) (usecase.RefreshResult, error) {
			return usecase.RefreshResult{}, crerr.Wrap(usecase.ErrStore, "pq: connection refused")
		},
	}
	router := NewRouter(NewHandler(reconciler, nil, nil, logger), logger, false, nil, testJobToken)

	doRequest(t, router, http.MethodGet, "/healthz", "", "")
	doRequest(t, router, http.MethodPost, "/v1/internal/jobs/verify-player", validWorkItem, "wrong")
	rec, body := doRequest(t, router, http.MethodPost, "/v1/internal/jobs/verify-player", validWorkItem, testJobToken)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	errObj, _ := body["error"].(map[string]any)
	if msg, _ := errObj["message"].(string); strings.Contains(msg, "pq:") {
		t.Fatalf("driver error leaked into response: %q", msg)
	}

	entries := logs.FilterMessage("http request").All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 request lines (health skipped), got %d", len(entries))
	}
	if entries[0].Level != zapcore.WarnLevel {
		t.Fatalf("401 should log at warn, got %s", entries[0].Level)
	}
	if entries[1].Level != zapcore.ErrorLevel {
		t.Fatalf("500 should log at error, got %s", entries[1].Level)
	}
	cause, _ := entries[1].ContextMap()["error"].(string)
	if !strings.Contains(cause, "pq: connection refused") {
		t.Fatalf("expected cause on the 500 line, got %v", entries[1].ContextMap())
	}
}
