package httpapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/antelope-reconciler/internal/domain/playermeta"
	"github.com/riskibarqy/antelope-reconciler/internal/domain/roster"
	"github.com/riskibarqy/antelope-reconciler/internal/platform/logging"
	"github.com/riskibarqy/antelope-reconciler/internal/usecase"
)

const maxRequestBodyBytes = 1 << 20

type PlayerReconciler interface {
	RefreshPlayer(ctx context.Context, item roster.WorkItem) (usecase.RefreshResult, error)
	RefreshRoster(ctx context.Context, items []roster.WorkItem) (usecase.RosterResult, error)
	GetPlayer(ctx context.Context, id int64) (playermeta.Record, error)
}

type PlayerEnqueuer interface {
	EnqueuePlayers(ctx context.Context, input usecase.EnqueueInput) (usecase.EnqueueResult, error)
}

type TeamEfficiencyReader interface {
	Compute(ctx context.Context, team string) (usecase.TeamEfficiency, error)
	ComputeAll(ctx context.Context) ([]usecase.TeamEfficiency, error)
}

type Handler struct {
	reconciler PlayerReconciler
	enqueuer   PlayerEnqueuer
	efficiency TeamEfficiencyReader
	logger     *logging.Logger
	validator  *validator.Validate
}

// NewHandler accepts nil services; their routes answer 503.
func NewHandler(
	reconciler PlayerReconciler,
	enqueuer PlayerEnqueuer,
	efficiency TeamEfficiencyReader,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		reconciler: reconciler,
		enqueuer:   enqueuer,
		efficiency: efficiency,
		logger:     logger,
		validator:  validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeJSON reads a JSON body into out. An empty body is accepted when
// allowEmpty is set.
func decodeJSON(r *http.Request, out any, allowEmpty bool) error {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: read request body: %v", usecase.ErrInvalidInput, err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		if allowEmpty {
			return nil
		}
		return fmt.Errorf("%w: request body is required", usecase.ErrInvalidInput)
	}
	if err := sonic.ConfigDefault.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}
