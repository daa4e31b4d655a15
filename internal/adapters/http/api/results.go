package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/matchpoint/gamenight/internal/domain/model"
)

type matchResultRequest struct {
	MatchID string    `json:"match_id"`
	Tier    string    `json:"tier"`
	TeamA   [2]string `json:"team_a"`
	TeamB   [2]string `json:"team_b"`
	SetsA   int       `json:"sets_a"`
	SetsB   int       `json:"sets_b"`
}

type resultsRequest struct {
	BatchID string               `json:"batch_id"`
	Matches []matchResultRequest `json:"matches"`
}

type ratingRunResponse struct {
	WeeklyScores map[string]int `json:"weekly_scores"`
	NewRatings   map[string]int `json:"new_ratings"`
}

func (h *EventsHandler) postResults(w http.ResponseWriter, r *http.Request, id string) {
	var req resultsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}

	results := make([]model.MatchResult, len(req.Matches))
	for i, m := range req.Matches {
		results[i] = model.MatchResult{
			MatchID: m.MatchID,
			Tier:    model.Tier(m.Tier),
			TeamA:   m.TeamA,
			TeamB:   m.TeamB,
			SetsA:   m.SetsA,
			SetsB:   m.SetsB,
		}
	}

	res, err := h.deps.SubmitResults(r.Context(), id, req.BatchID, results)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ratingRunResponse{
		WeeklyScores: res.WeeklyScores,
		NewRatings:   res.NewRatings,
	})
}
