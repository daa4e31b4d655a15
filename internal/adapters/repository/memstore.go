package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/matchpoint/gamenight/internal/domain/model"
	"github.com/matchpoint/gamenight/pkg/metrics"
)

// weeklyWindowSize caps the per-player rolling score history.
const weeklyWindowSize = 4

// playerRecord tracks a registered player and their weekly score history,
// oldest first.
type playerRecord struct {
	player model.Player
	window []int
}

// MemStore implements Store with mutex-guarded in-memory state. All event
// mutations run under one lock, which gives the per-event serialization the
// draw and RSVP flows require.
type MemStore struct {
	mu          sync.RWMutex
	events      map[string]*model.Event
	players     map[string]*playerRecord
	snapshots   []model.RatingSnapshot
	seenBatches map[string]struct{}
}

// NewMemStore creates an empty in-memory store.
func NewMemStore(ctx context.Context) *MemStore {
	return &MemStore{
		events:      make(map[string]*model.Event),
		players:     make(map[string]*playerRecord),
		seenBatches: make(map[string]struct{}),
	}
}

// CreateEvent stores a new event in OPEN state and returns it with its id.
func (s *MemStore) CreateEvent(ctx context.Context, ev model.Event) (model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if _, exists := s.events[ev.ID]; exists {
		return model.Event{}, fmt.Errorf("%w: event %s exists", ErrConflict, ev.ID)
	}
	ev.State = model.EventOpen
	ev.RSVPs = nil
	ev.Draw = nil

	stored := ev
	s.events[ev.ID] = &stored
	metrics.UpdateEventsTracked(len(s.events))
	return copyEvent(&stored), nil
}

// Event returns an event by id.
func (s *MemStore) Event(ctx context.Context, id string) (model.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ev, ok := s.events[id]
	if !ok {
		return model.Event{}, fmt.Errorf("%w: event %s", ErrNotFound, id)
	}
	return copyEvent(ev), nil
}

// AddRSVP confirms a player for an open event. Overflow beyond court
// capacity is resolved at draw time, not here. The player is registered for
// ranking on first contact; a known player's stored rating wins over the
// submitted one.
func (s *MemStore) AddRSVP(ctx context.Context, eventID string, p model.Player) (model.RSVP, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ev, ok := s.events[eventID]
	if !ok {
		return model.RSVP{}, fmt.Errorf("%w: event %s", ErrNotFound, eventID)
	}
	if ev.State != model.EventOpen {
		return model.RSVP{}, fmt.Errorf("%w: event %s is %s, rsvps closed", ErrConflict, eventID, ev.State)
	}
	for _, r := range ev.RSVPs {
		if r.Player.ID == p.ID {
			return model.RSVP{}, fmt.Errorf("%w: player %s already responded", ErrConflict, p.ID)
		}
	}

	if rec, known := s.players[p.ID]; known {
		p.Rating = rec.player.Rating
		rec.player.Name = p.Name
		rec.player.Email = p.Email
	} else {
		s.players[p.ID] = &playerRecord{player: p}
		metrics.UpdatePlayersTracked(len(s.players))
	}

	rsvp := model.RSVP{Player: p, Status: model.RSVPConfirmed}
	ev.RSVPs = append(ev.RSVPs, rsvp)
	return rsvp, nil
}

// Freeze transitions an OPEN event to FROZEN.
func (s *MemStore) Freeze(ctx context.Context, eventID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ev, ok := s.events[eventID]
	if !ok {
		return fmt.Errorf("%w: event %s", ErrNotFound, eventID)
	}
	if ev.State != model.EventOpen {
		return fmt.Errorf("%w: event %s is %s, cannot freeze", ErrConflict, eventID, ev.State)
	}
	ev.State = model.EventFrozen
	return nil
}

// SaveDraw atomically replaces the draw, reconciles every rsvp against the
// selected set, and marks the event DRAWN. An existing unpublished draw is
// superseded; players it had waitlisted are promoted back to CONFIRMED when
// the new draw selects them.
func (s *MemStore) SaveDraw(ctx context.Context, eventID string, draw model.Draw, selected []string) (model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ev, ok := s.events[eventID]
	if !ok {
		return model.Event{}, fmt.Errorf("%w: event %s", ErrNotFound, eventID)
	}
	switch ev.State {
	case model.EventOpen, model.EventFrozen, model.EventDrawn:
	default:
		return model.Event{}, fmt.Errorf("%w: event %s is %s, draw locked", ErrConflict, eventID, ev.State)
	}

	selectedSet := make(map[string]struct{}, len(selected))
	for _, id := range selected {
		selectedSet[id] = struct{}{}
	}

	// Waitlist status only ever comes from a prior draw, so every rsvp is
	// reconsidered from scratch and positions are reassigned in rsvp order.
	pos := 0
	for i := range ev.RSVPs {
		r := &ev.RSVPs[i]
		if _, in := selectedSet[r.Player.ID]; in {
			r.Status = model.RSVPConfirmed
			r.WaitlistPosition = 0
			continue
		}
		pos++
		r.Status = model.RSVPWaitlisted
		r.WaitlistPosition = pos
	}

	stored := draw
	ev.Draw = &stored
	ev.State = model.EventDrawn
	return copyEvent(ev), nil
}

// Publish transitions a DRAWN event to PUBLISHED.
func (s *MemStore) Publish(ctx context.Context, eventID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ev, ok := s.events[eventID]
	if !ok {
		return fmt.Errorf("%w: event %s", ErrNotFound, eventID)
	}
	if ev.State != model.EventDrawn {
		return fmt.Errorf("%w: event %s is %s, cannot publish", ErrConflict, eventID, ev.State)
	}
	ev.State = model.EventPublished
	return nil
}

// PublishedEvents returns published or rated events dated at or before now,
// newest first.
func (s *MemStore) PublishedEvents(ctx context.Context, now time.Time) ([]model.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Event
	for _, ev := range s.events {
		if ev.State != model.EventPublished && ev.State != model.EventRated {
			continue
		}
		if ev.Date.After(now) {
			continue
		}
		out = append(out, copyEvent(ev))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out, nil
}

// Ratings returns the current rating of every registered player.
func (s *MemStore) Ratings(ctx context.Context) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]int, len(s.players))
	for id, rec := range s.players {
		out[id] = rec.player.Rating
	}
	return out, nil
}

// WeeklyWindows returns up to the four most recent weekly scores per player,
// oldest first.
func (s *MemStore) WeeklyWindows(ctx context.Context) (map[string][]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string][]int, len(s.players))
	for id, rec := range s.players {
		if len(rec.window) == 0 {
			continue
		}
		w := make([]int, len(rec.window))
		copy(w, rec.window)
		out[id] = w
	}
	return out, nil
}

// ApplyRatings writes new ratings and the audit snapshot, rolls the weekly
// windows forward, and marks the event RATED. Batch ids are recorded so a
// replayed batch fails with ErrConflict instead of double-applying.
func (s *MemStore) ApplyRatings(ctx context.Context, snap model.RatingSnapshot, weeklyScores map[string]int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, seen := s.seenBatches[snap.BatchID]; seen {
		metrics.RecordDuplicateBatch()
		return fmt.Errorf("%w: batch %s already applied", ErrConflict, snap.BatchID)
	}
	ev, ok := s.events[snap.EventID]
	if !ok {
		return fmt.Errorf("%w: event %s", ErrNotFound, snap.EventID)
	}
	if ev.State != model.EventPublished {
		return fmt.Errorf("%w: event %s is %s, results not accepted", ErrConflict, snap.EventID, ev.State)
	}

	for id, newRating := range snap.After {
		rec, known := s.players[id]
		if !known {
			rec = &playerRecord{player: model.Player{ID: id}}
			s.players[id] = rec
		}
		rec.player.Rating = newRating
		rec.window = append(rec.window, weeklyScores[id])
		if len(rec.window) > weeklyWindowSize {
			rec.window = rec.window[len(rec.window)-weeklyWindowSize:]
		}
	}

	s.seenBatches[snap.BatchID] = struct{}{}
	s.snapshots = append(s.snapshots, snap)
	ev.State = model.EventRated
	metrics.UpdatePlayersTracked(len(s.players))
	return nil
}

// Rank returns the ranking row for a player.
func (s *MemStore) Rank(ctx context.Context, playerID string) (RankEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.players[playerID]
	if !ok {
		return RankEntry{}, fmt.Errorf("%w: player %s", ErrNotFound, playerID)
	}
	rank := 1
	for _, other := range s.players {
		if ranksAbove(other, rec) {
			rank++
		}
	}
	return RankEntry{
		Rank:     rank,
		PlayerID: rec.player.ID,
		Name:     rec.player.Name,
		Rating:   rec.player.Rating,
	}, nil
}

// TopN returns the top-N ranking rows ordered by rating descending, ties
// broken by player id for a stable listing.
func (s *MemStore) TopN(ctx context.Context, n int) ([]RankEntry, error) {
	if n < 1 {
		return nil, ErrInvalidLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	recs := make([]*playerRecord, 0, len(s.players))
	for _, rec := range s.players {
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool {
		return ranksAbove(recs[i], recs[j])
	})

	if n > len(recs) {
		n = len(recs)
	}
	out := make([]RankEntry, n)
	for i := 0; i < n; i++ {
		out[i] = RankEntry{
			Rank:     i + 1,
			PlayerID: recs[i].player.ID,
			Name:     recs[i].player.Name,
			Rating:   recs[i].player.Rating,
		}
	}
	return out, nil
}

// Counts reports stored event and player totals.
func (s *MemStore) Counts(ctx context.Context) (int, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events), len(s.players)
}

// Snapshots returns the recorded rating audit snapshots, oldest first.
func (s *MemStore) Snapshots(ctx context.Context) []model.RatingSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.RatingSnapshot, len(s.snapshots))
	copy(out, s.snapshots)
	return out
}

func ranksAbove(a, b *playerRecord) bool {
	if a.player.Rating != b.player.Rating {
		return a.player.Rating > b.player.Rating
	}
	return a.player.ID < b.player.ID
}

// copyEvent returns a detached copy so callers cannot alias stored state.
func copyEvent(ev *model.Event) model.Event {
	out := *ev
	out.RSVPs = make([]model.RSVP, len(ev.RSVPs))
	copy(out.RSVPs, ev.RSVPs)
	if ev.Draw != nil {
		draw := *ev.Draw
		draw.Assignments = make([]model.Assignment, len(ev.Draw.Assignments))
		copy(draw.Assignments, ev.Draw.Assignments)
		out.Draw = &draw
	}
	out.MastersCourts = append([]string(nil), ev.MastersCourts...)
	out.ExplorersCourts = append([]string(nil), ev.ExplorersCourts...)
	return out
}
