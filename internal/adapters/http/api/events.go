// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/matchpoint/gamenight/internal/adapters/repository"
	"github.com/matchpoint/gamenight/internal/domain/model"
)

// EventsHandler handles event lifecycle requests.
type EventsHandler struct {
	deps Dependencies
}

// NewEventsHandler creates a new events handler.
func NewEventsHandler(deps Dependencies) *EventsHandler {
	return &EventsHandler{deps: deps}
}

type constraintsRequest struct {
	AvoidRecentSessions int  `json:"avoid_recent_sessions"`
	BalanceStrength     bool `json:"balance_strength"`
	AllowTierMixing     bool `json:"allow_tier_mixing"`
	MasterCount         int  `json:"master_count"`
	MasterPercentage    int  `json:"master_percentage"`
}

type createEventRequest struct {
	Name            string             `json:"name"`
	Date            string             `json:"date"`
	MastersCourts   []string           `json:"masters_courts"`
	ExplorersCourts []string           `json:"explorers_courts"`
	Constraints     constraintsRequest `json:"constraints"`
}

type rsvpRequest struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Rating   int    `json:"rating"`
}

type drawRequest struct {
	Seed string `json:"seed"`
}

// HandleEvents handles POST /events requests.
func (h *EventsHandler) HandleEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req createEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		writeError(w, fmt.Errorf("%w: date must be RFC3339 or YYYY-MM-DD", ErrBadRequest))
		return
	}
	ev, err := h.deps.CreateEvent(r.Context(), model.Event{
		Name:            req.Name,
		Date:            date,
		MastersCourts:   req.MastersCourts,
		ExplorersCourts: req.ExplorersCourts,
		Constraints: model.Constraints{
			AvoidRecentSessions: req.Constraints.AvoidRecentSessions,
			BalanceStrength:     req.Constraints.BalanceStrength,
			AllowTierMixing:     req.Constraints.AllowTierMixing,
			TierRule: model.TierRule{
				Count:      req.Constraints.MasterCount,
				Percentage: req.Constraints.MasterPercentage,
			},
		},
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toEventResponse(ev))
}

// HandleEvent dispatches /events/{id} and its sub-resources.
func (h *EventsHandler) HandleEvent(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/events/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		writeError(w, ErrBadRequest)
		return
	}
	id := parts[0]

	switch {
	case len(parts) == 1 && r.Method == http.MethodGet:
		h.getEvent(w, r, id)
	case len(parts) == 2 && parts[1] == "rsvps" && r.Method == http.MethodPost:
		h.postRSVP(w, r, id)
	case len(parts) == 2 && parts[1] == "freeze" && r.Method == http.MethodPost:
		h.postFreeze(w, r, id)
	case len(parts) == 2 && parts[1] == "draw" && r.Method == http.MethodPost:
		h.postDraw(w, r, id)
	case len(parts) == 2 && parts[1] == "draw" && r.Method == http.MethodGet:
		h.getDraw(w, r, id)
	case len(parts) == 2 && parts[1] == "publish" && r.Method == http.MethodPost:
		h.postPublish(w, r, id)
	case len(parts) == 2 && parts[1] == "results" && r.Method == http.MethodPost:
		h.postResults(w, r, id)
	default:
		http.NotFound(w, r)
	}
}

func (h *EventsHandler) getEvent(w http.ResponseWriter, r *http.Request, id string) {
	ev, err := h.deps.Event(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toEventResponse(ev))
}

func (h *EventsHandler) postRSVP(w http.ResponseWriter, r *http.Request, id string) {
	var req rsvpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}
	rsvp, err := h.deps.RSVP(r.Context(), id, model.Player{
		ID:     req.PlayerID,
		Name:   req.Name,
		Email:  req.Email,
		Rating: req.Rating,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toRSVPResponse(rsvp))
}

func (h *EventsHandler) postFreeze(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.deps.Freeze(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"state": string(model.EventFrozen)})
}

func (h *EventsHandler) postDraw(w http.ResponseWriter, r *http.Request, id string) {
	var req drawRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, fmt.Errorf("%w: %w", ErrBadRequest, err))
			return
		}
	}
	ev, err := h.deps.GenerateDraw(r.Context(), id, req.Seed)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toDrawResponse(ev.Draw))
}

func (h *EventsHandler) getDraw(w http.ResponseWriter, r *http.Request, id string) {
	ev, err := h.deps.Event(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if ev.Draw == nil {
		writeError(w, fmt.Errorf("%w: draw for event %s", repository.ErrNotFound, id))
		return
	}
	writeJSON(w, http.StatusOK, toDrawResponse(ev.Draw))
}

func (h *EventsHandler) postPublish(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.deps.Publish(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"state": string(model.EventPublished)})
}
