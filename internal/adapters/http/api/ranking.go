// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// defaultRankingLimit applies when no limit query parameter is given.
const defaultRankingLimit = 20

// RankingHandler handles club ranking requests.
type RankingHandler struct {
	deps     Dependencies
	maxLimit int
}

// NewRankingHandler creates a new ranking handler.
func NewRankingHandler(deps Dependencies, maxLimit int) *RankingHandler {
	return &RankingHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

// HandleGetRanking handles GET /ranking?limit=N requests.
func (h *RankingHandler) HandleGetRanking(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	n := defaultRankingLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			writeError(w, fmt.Errorf("%w: limit must be a positive integer", ErrBadRequest))
			return
		}
		n = parsed
	}
	if n > h.maxLimit {
		writeError(w, fmt.Errorf("%w: limit exceeds maximum of %d", ErrBadRequest, h.maxLimit))
		return
	}
	entries, err := h.deps.TopN(r.Context(), n)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// HandleGetPlayerRank handles GET /players/{player_id}/rank requests.
func (h *RankingHandler) HandleGetPlayerRank(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/players/"), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] != "rank" {
		writeError(w, ErrBadRequest)
		return
	}
	entry, err := h.deps.Rank(r.Context(), parts[0])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}
