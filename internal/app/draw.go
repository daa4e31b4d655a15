package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/matchpoint/gamenight/internal/domain/balance"
	"github.com/matchpoint/gamenight/internal/domain/history"
	"github.com/matchpoint/gamenight/internal/domain/model"
	"github.com/matchpoint/gamenight/internal/domain/schedule"
	"github.com/matchpoint/gamenight/internal/domain/tier"
	"github.com/matchpoint/gamenight/pkg/logger"
	"github.com/matchpoint/gamenight/pkg/metrics"
)

// playableUnit is the smallest schedulable group: two teams of two players.
const playableUnit = 4

// GenerateDraw builds and persists the complete schedule for an event.
// Eligible players (confirmed, plus anyone a previous draw waitlisted) are
// taken top-rated first up to court capacity, split into tiers, paired, and
// scheduled per tier. Players that do not fit are waitlisted. An empty seed
// derives a fresh one; passing the seed of a previous draw reproduces it for
// identical inputs.
func (s *Service) GenerateDraw(ctx context.Context, eventID, seed string) (model.Event, error) {
	start := time.Now()

	ev, err := s.repo.Event(ctx, eventID)
	if err != nil {
		metrics.RecordDrawFailure()
		return model.Event{}, err
	}

	plan, err := s.planDraw(ctx, ev, seed)
	if err != nil {
		metrics.RecordDrawFailure()
		return model.Event{}, err
	}

	updated, err := s.repo.SaveDraw(ctx, eventID, plan.draw, plan.selected)
	if err != nil {
		metrics.RecordDrawFailure()
		return model.Event{}, err
	}

	metrics.RecordDrawGenerated()
	metrics.RecordMatchupsScheduled(len(plan.draw.Assignments))
	metrics.RecordPlayersWaitlisted(plan.waitlisted)
	metrics.RecordDrawDuration(float64(time.Since(start).Milliseconds()))

	s.log.Info(ctx, "draw generated",
		logger.String("eventID", eventID),
		logger.String("seed", plan.draw.Seed),
		logger.Int("assignments", len(plan.draw.Assignments)),
		logger.Int("selected", len(plan.selected)),
		logger.Int("waitlisted", plan.waitlisted),
	)

	s.announce(ctx, updated)
	return updated, nil
}

// drawPlan is the computed draw before persistence.
type drawPlan struct {
	draw       model.Draw
	selected   []string
	waitlisted int
}

// planDraw runs capacity allocation, tier split, pairing and scheduling.
func (s *Service) planDraw(ctx context.Context, ev model.Event, seed string) (drawPlan, error) {
	switch ev.State {
	case model.EventOpen, model.EventFrozen, model.EventDrawn:
	default:
		return drawPlan{}, fmt.Errorf("%w: event is %s, draw generation needs an open or frozen event", ErrValidation, ev.State)
	}
	if len(ev.MastersCourts) == 0 && len(ev.ExplorersCourts) == 0 {
		return drawPlan{}, fmt.Errorf("%w: no courts selected for either tier", ErrValidation)
	}

	eligible := ev.EligiblePlayers()
	if len(eligible) < playableUnit {
		return drawPlan{}, fmt.Errorf("%w: need at least %d players to generate draw, have %d", ErrValidation, playableUnit, len(eligible))
	}

	mastersCapacity := len(ev.MastersCourts) * playableUnit
	explorersCapacity := len(ev.ExplorersCourts) * playableUnit
	totalCapacity := mastersCapacity + explorersCapacity

	sorted := make([]model.Player, len(eligible))
	copy(sorted, eligible)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Rating > sorted[j].Rating
	})

	selectedCount := len(sorted)
	if selectedCount > totalCapacity {
		selectedCount = totalCapacity
	}
	selectedCount -= selectedCount % playableUnit
	if selectedCount < playableUnit {
		return drawPlan{}, fmt.Errorf("%w: capacity allows only %d players, need %d", ErrValidation, selectedCount, playableUnit)
	}
	field := sorted[:selectedCount]

	masterCount := tier.MastersCount(selectedCount, ev.Constraints.TierRule)
	if masterCount > mastersCapacity {
		masterCount = mastersCapacity
	}
	masterCount -= masterCount % playableUnit
	explorerCount := selectedCount - masterCount
	if masterCount < playableUnit && explorerCount < playableUnit {
		return drawPlan{}, fmt.Errorf("%w: neither tier reaches %d players (masters %d, explorers %d)", ErrValidation, playableUnit, masterCount, explorerCount)
	}

	lookback := ev.Constraints.AvoidRecentSessions
	published, err := s.repo.PublishedEvents(ctx, s.now())
	if err != nil {
		return drawPlan{}, err
	}
	recent := history.Build(published, lookback, s.now())

	if seed == "" {
		seed = s.newSeed(ev.ID)
	}

	draw := model.Draw{
		ID:          uuid.NewString(),
		EventID:     ev.ID,
		Seed:        seed,
		Constraints: ev.Constraints,
		GeneratedAt: s.now(),
	}

	var selected []string
	var leftovers []model.Player

	passes := []struct {
		tier    model.Tier
		players []model.Player
		courts  []string
	}{
		{model.TierMasters, field[:masterCount], ev.MastersCourts},
		{model.TierExplorers, field[masterCount:], ev.ExplorersCourts},
	}
	for _, pass := range passes {
		if len(pass.players) < playableUnit || len(pass.courts) == 0 {
			leftovers = append(leftovers, pass.players...)
			continue
		}
		assignments, placed, left := generateTier(pass.players, pass.courts, pass.tier, seed, recent, 0)
		draw.Assignments = append(draw.Assignments, assignments...)
		selected = append(selected, placed...)
		leftovers = append(leftovers, left...)
	}

	// Mixed leftover pass across both tiers' courts, stored as EXPLORERS.
	// Round numbers continue after the explorer rounds so a court is never
	// double-booked within a stored round.
	if ev.Constraints.AllowTierMixing && len(leftovers) >= playableUnit {
		mixCount := len(leftovers) - len(leftovers)%playableUnit
		sort.SliceStable(leftovers, func(i, j int) bool {
			return leftovers[i].Rating > leftovers[j].Rating
		})
		courts := append(append([]string(nil), ev.MastersCourts...), ev.ExplorersCourts...)
		offset := maxRound(draw.Assignments, model.TierExplorers)
		assignments, placed, _ := generateTier(leftovers[:mixCount], courts, model.TierExplorers, seed, recent, offset)
		draw.Assignments = append(draw.Assignments, assignments...)
		selected = append(selected, placed...)
	}

	if len(selected) == 0 {
		return drawPlan{}, fmt.Errorf("%w: no playable tier could be formed", ErrValidation)
	}

	return drawPlan{
		draw:       draw,
		selected:   selected,
		waitlisted: len(eligible) - len(selected),
	}, nil
}

// generateTier pairs and schedules one tier. Returned rounds are 1-based
// after roundOffset. The balancer's odd leftover, if any, joins the unplaced
// players instead of being dropped.
func generateTier(players []model.Player, courts []string, t model.Tier, seed string, recent balance.History, roundOffset int) (assignments []model.Assignment, placed []string, leftovers []model.Player) {
	teams, leftover := balance.Teams(players, fmt.Sprintf("%s/%s", seed, t), recent)
	if leftover != nil {
		leftovers = append(leftovers, *leftover)
	}
	if len(teams) < 2 {
		for _, tm := range teams {
			leftovers = append(leftovers, tm.Player1, tm.Player2)
		}
		return nil, nil, leftovers
	}

	rounds := schedule.Rounds(teams, schedule.MaxSimultaneous(len(teams), len(courts)))
	for r, matchups := range rounds {
		for i, m := range matchups {
			assignments = append(assignments, model.Assignment{
				Round:   roundOffset + r + 1,
				CourtID: courts[i%len(courts)],
				TeamA:   [2]string{m.TeamA.Player1.ID, m.TeamA.Player2.ID},
				TeamB:   [2]string{m.TeamB.Player1.ID, m.TeamB.Player2.ID},
				Tier:    t,
			})
		}
	}
	for _, tm := range teams {
		placed = append(placed, tm.Player1.ID, tm.Player2.ID)
	}
	return assignments, placed, leftovers
}

func maxRound(assignments []model.Assignment, t model.Tier) int {
	maxR := 0
	for _, a := range assignments {
		if a.Tier == t && a.Round > maxR {
			maxR = a.Round
		}
	}
	return maxR
}
