// Package repository defines the event/player store interface and errors.
package repository

import (
	"context"
	"time"

	"github.com/matchpoint/gamenight/internal/domain/model"
)

// RankEntry is one row of the club ranking.
type RankEntry struct {
	Rank     int
	PlayerID string
	Name     string
	Rating   int
}

// Store provides serialized access to events, RSVPs, draws and ratings.
// Mutations on one event are atomic with respect to each other; the draw and
// rating pipelines rely on that for their state transitions.
type Store interface {
	// CreateEvent stores a new event in OPEN state and returns it with its id.
	CreateEvent(ctx context.Context, ev model.Event) (model.Event, error)

	// Event returns an event by id. Returns ErrNotFound if unknown.
	Event(ctx context.Context, id string) (model.Event, error)

	// AddRSVP confirms a player for an open event; capacity overflow is
	// resolved when the draw is generated. The player's rating is
	// registered for ranking queries.
	AddRSVP(ctx context.Context, eventID string, p model.Player) (model.RSVP, error)

	// Freeze transitions an OPEN event to FROZEN.
	Freeze(ctx context.Context, eventID string) error

	// SaveDraw atomically replaces the event's draw, demotes confirmed
	// players not in selected to the end of the waitlist, and transitions
	// the event to DRAWN. Requires OPEN or FROZEN state.
	SaveDraw(ctx context.Context, eventID string, draw model.Draw, selected []string) (model.Event, error)

	// Publish transitions a DRAWN event to PUBLISHED, exposing its draw to
	// partner-history lookups.
	Publish(ctx context.Context, eventID string) error

	// PublishedEvents returns published (or rated) events dated at or before
	// now, newest first.
	PublishedEvents(ctx context.Context, now time.Time) ([]model.Event, error)

	// Ratings returns the current rating of every registered player.
	Ratings(ctx context.Context) (map[string]int, error)

	// WeeklyWindows returns up to the four most recent weekly scores per
	// player, oldest first.
	WeeklyWindows(ctx context.Context) (map[string][]int, error)

	// ApplyRatings atomically writes new ratings, appends weekly scores to
	// the rolling windows, records the audit snapshot, and transitions the
	// event to RATED. Returns ErrConflict when the batch was applied before.
	ApplyRatings(ctx context.Context, snap model.RatingSnapshot, weeklyScores map[string]int) error

	// Rank returns the ranking row for a player. Returns ErrNotFound if the
	// player is unknown.
	Rank(ctx context.Context, playerID string) (RankEntry, error)

	// TopN returns the top-N ranking rows ordered by rating descending.
	TopN(ctx context.Context, n int) ([]RankEntry, error)

	// Counts reports stored event and player totals.
	Counts(ctx context.Context) (events, players int)
}
