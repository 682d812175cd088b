package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/benched/internal/api/apierr"
	"github.com/mcoot/benched/internal/api/request"
	"github.com/mcoot/benched/internal/api/response"
	"github.com/mcoot/benched/internal/api/sse"
	"github.com/mcoot/benched/internal/dependencies/random"
	"github.com/mcoot/benched/internal/model"
	"github.com/mcoot/benched/internal/palette"
	"github.com/mcoot/benched/internal/services/roster"
)

// RosterHandler handles roster and player endpoints
type RosterHandler struct {
	store  *roster.Store
	random random.Random
	hub    *sse.Hub
	logger *slog.Logger
}

// NewRosterHandler creates a new roster handler. hub may be nil, in which case
// the events endpoint is not served.
func NewRosterHandler(store *roster.Store, rnd random.Random, hub *sse.Hub, logger *slog.Logger) *RosterHandler {
	return &RosterHandler{
		store:  store,
		random: rnd,
		hub:    hub,
		logger: logger.With(slog.String("component", "roster-handler")),
	}
}

// Get handles GET /api/v1/roster
func (h *RosterHandler) Get(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, h.store.Snapshot())
}

// Teams handles GET /api/v1/roster/teams
func (h *RosterHandler) Teams(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Snapshot()
	response.JSON(w, http.StatusOK, response.TeamsFromModel(snap.Teams, snap.TeamSize, snap.ColumnWidth))
}

// History handles GET /api/v1/roster/history
func (h *RosterHandler) History(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.HistoryFromModel(h.store.History()))
}

// SetTeamSize handles PUT /api/v1/roster/team-size
func (h *RosterHandler) SetTeamSize(w http.ResponseWriter, r *http.Request) {
	var req request.TeamSizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, apierr.NewInvalidRequestError("Invalid request body"))
		return
	}

	if err := h.store.SetTeamSize(req.TeamSize); err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, h.store.Snapshot())
}

// ActivateAll handles POST /api/v1/roster/activate-all
func (h *RosterHandler) ActivateAll(w http.ResponseWriter, r *http.Request) {
	if err := h.store.BulkActivate(); err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, h.store.Snapshot())
}

// BenchAll handles POST /api/v1/roster/bench-all
func (h *RosterHandler) BenchAll(w http.ResponseWriter, r *http.Request) {
	if err := h.store.BulkDeactivate(); err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, h.store.Snapshot())
}

// Undo handles POST /api/v1/roster/undo
func (h *RosterHandler) Undo(w http.ResponseWriter, r *http.Request) {
	entry, err := h.store.Undo()
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.HistoryEntryFromModel(entry))
}

// Events handles GET /api/v1/roster/events
func (h *RosterHandler) Events(w http.ResponseWriter, r *http.Request) {
	if h.hub == nil {
		http.NotFound(w, r)
		return
	}
	initial, err := sse.SnapshotMessage(h.store.Snapshot())
	if err != nil {
		h.logger.Error("failed to encode initial snapshot", slog.Any("error", err))
		initial = nil
	}
	sse.ServeSSE(w, r, h.hub, initial)
}

// GetPlayer handles GET /api/v1/players/{id}
func (h *RosterHandler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	p, err := h.store.Get(playerID(r))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.PlayerFromModel(p))
}

// CreatePlayer handles POST /api/v1/players
func (h *RosterHandler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	req, err := h.decodePlayer(r)
	if err != nil {
		WriteError(w, err)
		return
	}
	if req.Color == "" {
		req.Color = palette.RandomDark(h.random)
	}

	p, _, err := h.store.AddOrEdit("", req.Name, req.Color)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, response.PlayerFromModel(p))
}

// UpdatePlayer handles PUT /api/v1/players/{id}
func (h *RosterHandler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	id := playerID(r)
	req, err := h.decodePlayer(r)
	if err != nil {
		WriteError(w, err)
		return
	}
	if req.Color == "" {
		existing, err := h.store.Get(id)
		if err != nil {
			WriteError(w, err)
			return
		}
		req.Color = existing.Color
	}

	p, changed, err := h.store.AddOrEdit(id, req.Name, req.Color)
	if err != nil {
		WriteError(w, err)
		return
	}
	if !changed {
		WriteError(w, model.ErrPlayerNotFound)
		return
	}
	response.JSON(w, http.StatusOK, response.PlayerFromModel(p))
}

// TogglePlayer handles POST /api/v1/players/{id}/toggle
func (h *RosterHandler) TogglePlayer(w http.ResponseWriter, r *http.Request) {
	id := playerID(r)
	if !h.apply(w, func() (bool, error) { return h.store.ToggleActive(id) }) {
		return
	}
	p, err := h.store.Get(id)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.PlayerFromModel(p))
}

// QuickRemovePlayer handles POST /api/v1/players/{id}/quick-remove
func (h *RosterHandler) QuickRemovePlayer(w http.ResponseWriter, r *http.Request) {
	id := playerID(r)
	if h.apply(w, func() (bool, error) { return h.store.QuickRemove(id) }) {
		response.NoContent(w)
	}
}

// DeletePlayer handles DELETE /api/v1/players/{id}
func (h *RosterHandler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	id := playerID(r)
	if h.apply(w, func() (bool, error) { return h.store.Delete(id) }) {
		response.NoContent(w)
	}
}

// apply runs a by-id operation and writes the error response when it failed
// or the id was unknown. Reports whether the caller should write a success.
func (h *RosterHandler) apply(w http.ResponseWriter, op func() (bool, error)) bool {
	changed, err := op()
	if err != nil {
		WriteError(w, err)
		return false
	}
	if !changed {
		WriteError(w, model.ErrPlayerNotFound)
		return false
	}
	return true
}

func (h *RosterHandler) decodePlayer(r *http.Request) (request.PlayerRequest, error) {
	var req request.PlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		return req, apierr.NewInvalidRequestError("Invalid request body")
	}
	if req.Color != "" {
		color, err := palette.Normalize(req.Color)
		if err != nil {
			return req, apierr.NewInvalidColorError("Color must be #rgb, #rrggbb, rgb(r, g, b) or rgba(r, g, b, a)")
		}
		req.Color = color
	}
	return req, nil
}

func playerID(r *http.Request) model.PlayerID {
	return model.PlayerID(mux.Vars(r)["id"])
}
