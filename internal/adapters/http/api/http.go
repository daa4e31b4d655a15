// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/matchpoint/gamenight/internal/adapters/repository"
	service "github.com/matchpoint/gamenight/internal/app"
	"github.com/matchpoint/gamenight/internal/domain/model"
	"github.com/matchpoint/gamenight/internal/domain/rating"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	CreateEvent(ctx context.Context, ev model.Event) (model.Event, error)
	Event(ctx context.Context, id string) (model.Event, error)
	RSVP(ctx context.Context, eventID string, p model.Player) (model.RSVP, error)
	Freeze(ctx context.Context, eventID string) error
	Publish(ctx context.Context, eventID string) error
	GenerateDraw(ctx context.Context, eventID, seed string) (model.Event, error)
	SubmitResults(ctx context.Context, eventID, batchID string, results []model.MatchResult) (rating.Result, error)
	TopN(ctx context.Context, n int) ([]repository.RankEntry, error)
	Rank(ctx context.Context, playerID string) (repository.RankEntry, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	eventsHandler  *EventsHandler
	rankingHandler *RankingHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxRankingLimit int) *Server {
	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		eventsHandler:  NewEventsHandler(deps),
		rankingHandler: NewRankingHandler(deps, maxRankingLimit),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/events", MetricsMiddleware(s.eventsHandler.HandleEvents, "events"))
	mux.HandleFunc("/events/", MetricsMiddleware(s.eventsHandler.HandleEvent, "event"))
	mux.HandleFunc("/ranking", MetricsMiddleware(s.rankingHandler.HandleGetRanking, "ranking"))
	mux.HandleFunc("/players/", MetricsMiddleware(s.rankingHandler.HandleGetPlayerRank, "player_rank"))
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

func writeError(w http.ResponseWriter, err error) {
	status, code := statusFor(err)
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// statusFor translates service and repository error kinds to HTTP statuses.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, service.ErrValidation), errors.Is(err, repository.ErrInvalidLimit), errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, repository.ErrConflict):
		return http.StatusConflict, "conflict"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// parseDate accepts RFC3339 timestamps or plain dates.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
