// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	service "github.com/matchpoint/gamenight/internal/app"
)

// StatsProvider reports the service's operational summary.
type StatsProvider interface {
	GetStats() service.Stats
}

// statsResponse is the wire shape of the stats endpoint.
type statsResponse struct {
	Started          bool `json:"started"`
	Events           int  `json:"events"`
	Players          int  `json:"players"`
	LookbackSessions int  `json:"lookbackSessions"`
	AllowTierMixing  bool `json:"allowTierMixing"`
}

// StatsHandler serves the operational stats endpoint.
type StatsHandler struct {
	provider StatsProvider
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(provider StatsProvider) *StatsHandler {
	return &StatsHandler{provider: provider}
}

// HandleStats handles GET /stats requests.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	stats := h.provider.GetStats()
	writeJSON(w, http.StatusOK, statsResponse{
		Started:          stats.Started,
		Events:           stats.Events,
		Players:          stats.Players,
		LookbackSessions: stats.LookbackSessions,
		AllowTierMixing:  stats.AllowTierMixing,
	})
}
