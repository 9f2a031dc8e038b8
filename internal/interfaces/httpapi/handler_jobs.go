package httpapi

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/antelope-reconciler/internal/domain/roster"
	"github.com/riskibarqy/antelope-reconciler/internal/usecase"
)

type verifyRosterRequest struct {
	Items []roster.WorkItem `json:"items" validate:"required,min=1"`
}

type enqueuePlayersRequest struct {
	Teams []string `json:"teams" validate:"omitempty,dive,required"`
	Force bool     `json:"force"`
}

func (h *Handler) VerifyPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.VerifyPlayer")
	defer span.End()

	if h.reconciler == nil {
		writeError(ctx, w, fmt.Errorf("%w: reconciliation service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	var item roster.WorkItem
	if err := decodeJSON(r, &item, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, item); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.reconciler.RefreshPlayer(ctx, item)
	if err != nil {
		h.logger.WarnContext(ctx, "verify player job failed",
			"player", item.PlayerName,
			"team", item.TeamName,
			"position", item.PlayerPosition,
			"run_id", item.RunID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) VerifyRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.VerifyRoster")
	defer span.End()

	if h.reconciler == nil {
		writeError(ctx, w, fmt.Errorf("%w: reconciliation service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	var req verifyRosterRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.reconciler.RefreshRoster(ctx, req.Items)
	if err != nil {
		h.logger.WarnContext(ctx, "verify roster job failed", "items", len(req.Items), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) EnqueuePlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.EnqueuePlayers")
	defer span.End()

	if h.enqueuer == nil {
		writeError(ctx, w, fmt.Errorf("%w: enqueue service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	var req enqueuePlayersRequest
	if err := decodeJSON(r, &req, true); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.enqueuer.EnqueuePlayers(ctx, usecase.EnqueueInput{Teams: req.Teams, Force: req.Force})
	if err != nil {
		h.logger.WarnContext(ctx, "enqueue players job failed", "teams", req.Teams, "force", req.Force, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}
