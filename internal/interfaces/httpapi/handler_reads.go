package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/riskibarqy/antelope-reconciler/internal/usecase"
)

func (h *Handler) GetTeamEfficiencies(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamEfficiencies")
	defer span.End()

	if h.efficiency == nil {
		writeError(ctx, w, fmt.Errorf("%w: team efficiency service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	team := strings.TrimSpace(r.PathValue("team"))
	result, err := h.efficiency.Compute(ctx, team)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toTeamEfficiencyDTO(result))
}

func (h *Handler) ListTeamEfficiencies(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamEfficiencies")
	defer span.End()

	if h.efficiency == nil {
		writeError(ctx, w, fmt.Errorf("%w: team efficiency service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	items, err := h.efficiency.ComputeAll(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list team efficiencies failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]teamEfficiencyDTO, 0, len(items))
	for _, item := range items {
		out = append(out, toTeamEfficiencyDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayer")
	defer span.End()

	if h.reconciler == nil {
		writeError(ctx, w, fmt.Errorf("%w: reconciliation service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	raw := strings.TrimSpace(r.PathValue("playerID"))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeError(ctx, w, fmt.Errorf("%w: player id must be a positive integer, got %q", usecase.ErrInvalidInput, raw))
		return
	}

	rec, err := h.reconciler.GetPlayer(ctx, id)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toPlayerDTO(rec))
}
