package api

import (
	"fmt"
	"net/http"
	"strconv"
)

// LeagueHandler serves league sync and snapshot routes.
type LeagueHandler struct {
	deps Dependencies
}

// NewLeagueHandler creates a new league handler.
func NewLeagueHandler(deps Dependencies) *LeagueHandler {
	return &LeagueHandler{deps: deps}
}

type leagueView struct {
	Key string `json:"key"`
	Tag string `json:"tag"`
}

type updateResponse struct {
	Status string `json:"status"`
	Key    string `json:"key"`
}

// HandleList handles GET /leagues requests.
func (h *LeagueHandler) HandleList(w http.ResponseWriter, _ *http.Request) {
	leagues := h.deps.Leagues()
	out := make([]leagueView, 0, len(leagues))
	for _, l := range leagues {
		out = append(out, leagueView{Key: l.Key, Tag: l.Tag})
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleUpdate handles POST /leagues/{key}/update requests. The sync runs in
// the background; progress is polled through the status route.
func (h *LeagueHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	if err := h.deps.StartUpdate(r.Context(), key); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, updateResponse{Status: "started", Key: key})
}

// HandleStatus handles GET /leagues/{key}/status requests.
func (h *LeagueHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	st, err := h.deps.Status(r.PathValue("key"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// HandleStandings handles GET /leagues/{key}/standings requests.
func (h *LeagueHandler) HandleStandings(w http.ResponseWriter, r *http.Request) {
	rows, err := h.deps.Standings(r.Context(), r.PathValue("key"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// HandleResult handles GET /leagues/{key}/result?account_id=N requests.
func (h *LeagueHandler) HandleResult(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("account_id")
	accountID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeServiceError(w, fmt.Errorf("%w: account_id %q", ErrBadRequest, raw))
		return
	}
	res, err := h.deps.Result(r.Context(), r.PathValue("key"), accountID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
