package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/matchpoint/gamenight/internal/domain/model"
	"github.com/matchpoint/gamenight/internal/domain/rating"
	"github.com/matchpoint/gamenight/pkg/logger"
	"github.com/matchpoint/gamenight/pkg/metrics"
)

// maxSetsPerTeam bounds a reported set count.
const maxSetsPerTeam = 6

// SubmitResults scores a batch of match results for a published event and
// applies the resulting weekly scores and ratings. The batch id makes the
// run idempotent: replaying an applied batch fails instead of rating twice.
func (s *Service) SubmitResults(ctx context.Context, eventID, batchID string, results []model.MatchResult) (rating.Result, error) {
	start := time.Now()

	if err := validateResults(results); err != nil {
		metrics.RecordRatingFailure()
		return rating.Result{}, err
	}
	if batchID == "" {
		batchID = uuid.NewString()
	}

	ev, err := s.repo.Event(ctx, eventID)
	if err != nil {
		metrics.RecordRatingFailure()
		return rating.Result{}, err
	}

	scope := participantScope(ev, results)

	allRatings, err := s.repo.Ratings(ctx)
	if err != nil {
		metrics.RecordRatingFailure()
		return rating.Result{}, err
	}
	allWindows, err := s.repo.WeeklyWindows(ctx)
	if err != nil {
		metrics.RecordRatingFailure()
		return rating.Result{}, err
	}

	current := make(map[string]int, len(scope))
	windows := make(map[string][]int, len(scope))
	for id := range scope {
		current[id] = allRatings[id]
		if w, ok := allWindows[id]; ok {
			windows[id] = w
		}
	}

	res := rating.Compute(current, windows, results)

	snap := model.RatingSnapshot{
		BatchID:   batchID,
		EventID:   eventID,
		Algorithm: rating.Algorithm,
		Before:    current,
		After:     res.NewRatings,
		AppliedAt: s.now(),
	}
	if err := s.repo.ApplyRatings(ctx, snap, res.WeeklyScores); err != nil {
		metrics.RecordRatingFailure()
		return rating.Result{}, err
	}

	metrics.RecordRatingRun()
	metrics.RecordPlayersRated(len(res.NewRatings))
	metrics.RecordRatingDuration(float64(time.Since(start).Milliseconds()))

	s.log.Info(ctx, "rating run applied",
		logger.String("eventID", eventID),
		logger.String("batchID", batchID),
		logger.Int("matches", len(results)),
		logger.Int("players", len(res.NewRatings)),
	)
	return res, nil
}

// participantScope is the set of players affected by this rating run: every
// player in the event's draw plus every player named in the results. Players
// outside the scope keep their ratings untouched.
func participantScope(ev model.Event, results []model.MatchResult) map[string]struct{} {
	scope := make(map[string]struct{})
	if ev.Draw != nil {
		for _, a := range ev.Draw.Assignments {
			for _, id := range [...]string{a.TeamA[0], a.TeamA[1], a.TeamB[0], a.TeamB[1]} {
				scope[id] = struct{}{}
			}
		}
	}
	for _, m := range results {
		for _, id := range m.TeamA {
			scope[id] = struct{}{}
		}
		for _, id := range m.TeamB {
			scope[id] = struct{}{}
		}
	}
	return scope
}

func validateResults(results []model.MatchResult) error {
	if len(results) == 0 {
		return fmt.Errorf("%w: result batch must not be empty", ErrValidation)
	}
	for _, m := range results {
		switch {
		case m.SetsA < 0 || m.SetsA > maxSetsPerTeam || m.SetsB < 0 || m.SetsB > maxSetsPerTeam:
			return fmt.Errorf("%w: match %s set counts must be 0-%d", ErrValidation, m.MatchID, maxSetsPerTeam)
		case m.Tier != model.TierMasters && m.Tier != model.TierExplorers:
			return fmt.Errorf("%w: match %s has unknown tier %q", ErrValidation, m.MatchID, m.Tier)
		case m.TeamA == m.TeamB:
			return fmt.Errorf("%w: match %s teams must differ", ErrValidation, m.MatchID)
		}
		for _, id := range append(m.TeamA[:], m.TeamB[:]...) {
			if id == "" {
				return fmt.Errorf("%w: match %s has an empty player id", ErrValidation, m.MatchID)
			}
		}
	}
	return nil
}
