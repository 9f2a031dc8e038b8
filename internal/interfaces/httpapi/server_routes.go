package httpapi

import (
	"net/http"

	"github.com/riskibarqy/antelope-reconciler/internal/usecase"
)

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET "+openAPIPath, handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/teams/efficiencies", handler.ListTeamEfficiencies)
	mux.HandleFunc("GET /v1/teams/{team}/efficiencies", handler.GetTeamEfficiencies)
	mux.HandleFunc("GET /v1/players/{playerID}", handler.GetPlayer)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST "+usecase.VerifyPlayerJobPath, RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.VerifyPlayer)))
	mux.Handle("POST /v1/internal/jobs/verify-roster", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.VerifyRoster)))
	mux.Handle("POST /v1/internal/jobs/enqueue-players", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.EnqueuePlayers)))
}
