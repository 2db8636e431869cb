// Package api exposes the league sync service to the chat gateway over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/pitwall/internal/domain/model"
	"github.com/okian/pitwall/internal/domain/standings"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// StartUpdate begins a league sync in the background.
	StartUpdate(ctx context.Context, key string) error

	Status(key string) (model.LeagueStatus, error)
	Standings(ctx context.Context, key string) ([]standings.Row, error)
	Result(ctx context.Context, key string, accountID int64) (standings.Result, error)
	Leagues() []model.League
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler *HealthHandler
	statsHandler  *StatsHandler
	leagueHandler *LeagueHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler: NewHealthHandler(),
		statsHandler:  NewStatsHandler(statsProvider),
		leagueHandler: NewLeagueHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("GET /leagues", MetricsMiddleware(s.leagueHandler.HandleList, "leagues"))
	mux.HandleFunc("POST /leagues/{key}/update", MetricsMiddleware(s.leagueHandler.HandleUpdate, "update"))
	mux.HandleFunc("GET /leagues/{key}/status", MetricsMiddleware(s.leagueHandler.HandleStatus, "status"))
	mux.HandleFunc("GET /leagues/{key}/standings", MetricsMiddleware(s.leagueHandler.HandleStandings, "standings"))
	mux.HandleFunc("GET /leagues/{key}/result", MetricsMiddleware(s.leagueHandler.HandleResult, "result"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeServiceError translates service sentinels to HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrUnknownLeague):
		writeError(w, http.StatusNotFound, "unknown_league", err)
	case errors.Is(err, model.ErrPlayerNotFound):
		writeError(w, http.StatusNotFound, "player_not_found", err)
	case errors.Is(err, model.ErrNoSnapshot):
		writeError(w, http.StatusNotFound, "no_snapshot", err)
	case errors.Is(err, model.ErrRunInProgress):
		writeError(w, http.StatusConflict, "run_in_progress", err)
	case errors.Is(err, model.ErrMissingCredentials):
		writeError(w, http.StatusServiceUnavailable, "credentials_missing", err)
	case errors.Is(err, ErrBadRequest):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
