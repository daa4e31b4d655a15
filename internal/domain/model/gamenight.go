// Package model contains domain models passed between layers.
package model

import "time"

// Tier labels the two skill groups a game night is split into.
type Tier string

const (
	TierMasters   Tier = "MASTERS"
	TierExplorers Tier = "EXPLORERS"
)

// EventState tracks the lifecycle of a game night.
type EventState string

const (
	EventOpen      EventState = "OPEN"
	EventFrozen    EventState = "FROZEN"
	EventDrawn     EventState = "DRAWN"
	EventPublished EventState = "PUBLISHED"
	EventRated     EventState = "RATED"
)

// RSVPStatus marks a player as playing or queued for a slot.
type RSVPStatus string

const (
	RSVPConfirmed  RSVPStatus = "CONFIRMED"
	RSVPWaitlisted RSVPStatus = "WAITLISTED"
)

// Player is a club member as seen by the draw and rating computations.
type Player struct {
	ID     string
	Name   string
	Email  string
	Rating int // current rolling rating, >= 0
}

// RSVP attaches a player to an event with a status and, when waitlisted,
// a 1-based queue position.
type RSVP struct {
	Player           Player
	Status           RSVPStatus
	WaitlistPosition int // 0 unless Status == RSVPWaitlisted
}

// Team pairs two distinct players for one tier-generation run.
type Team struct {
	Player1 Player
	Player2 Player
}

// AvgRating is the mean rating of the pair.
func (t Team) AvgRating() float64 {
	return float64(t.Player1.Rating+t.Player2.Rating) / 2
}

// Has reports whether the team contains the given player id.
func (t Team) Has(playerID string) bool {
	return t.Player1.ID == playerID || t.Player2.ID == playerID
}

// Matchup is one scheduled game between two teams.
type Matchup struct {
	TeamA Team
	TeamB Team
}

// Assignment is the persisted form of a matchup placed on a court in a round.
// Round numbering is 1-based and restarts per tier.
type Assignment struct {
	Round   int
	CourtID string
	TeamA   [2]string // player ids
	TeamB   [2]string
	Tier    Tier
}

// Draw is the full generated schedule for one event.
type Draw struct {
	ID          string
	EventID     string
	Seed        string
	Constraints Constraints
	Assignments []Assignment
	GeneratedAt time.Time
}

// TierRule selects how many players go to the MASTERS tier.
// Precedence: Count when > 0, else Percentage when > 0, else half the field.
type TierRule struct {
	Count      int
	Percentage int // 0-100
}

// Constraints is the draw-generation configuration for an event.
type Constraints struct {
	AvoidRecentSessions int  // partner-history lookback, sessions
	BalanceStrength     bool // informational; teams are always balanced
	AllowTierMixing     bool
	TierRule            TierRule
}

// Event is a game night with its court selections and RSVPs.
type Event struct {
	ID              string
	Name            string
	Date            time.Time
	State           EventState
	MastersCourts   []string
	ExplorersCourts []string
	Constraints     Constraints
	RSVPs           []RSVP
	Draw            *Draw
}

// EligiblePlayers returns the players a draw may select: everyone confirmed
// plus everyone a previous draw waitlisted, since regeneration reconsiders
// the whole field.
func (e Event) EligiblePlayers() []Player {
	var out []Player
	for _, r := range e.RSVPs {
		if r.Status == RSVPConfirmed || r.Status == RSVPWaitlisted {
			out = append(out, r.Player)
		}
	}
	return out
}

// MatchResult is a reported score for one matchup, input to the rating run.
// Set counts are 0-6 inclusive, validated by the caller.
type MatchResult struct {
	MatchID string
	Tier    Tier
	TeamA   [2]string
	TeamB   [2]string
	SetsA   int
	SetsB   int
}

// RatingSnapshot is the audit record written after a rating run.
type RatingSnapshot struct {
	BatchID   string
	EventID   string
	Algorithm string
	Before    map[string]int
	After     map[string]int
	AppliedAt time.Time
}
