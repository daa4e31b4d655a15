package api

import (
	"time"

	"github.com/matchpoint/gamenight/internal/domain/model"
)

type rsvpResponse struct {
	PlayerID         string `json:"player_id"`
	Name             string `json:"name"`
	Rating           int    `json:"rating"`
	Status           string `json:"status"`
	WaitlistPosition int    `json:"waitlist_position,omitempty"`
}

type assignmentResponse struct {
	Round   int       `json:"round"`
	CourtID string    `json:"court_id"`
	TeamA   [2]string `json:"team_a"`
	TeamB   [2]string `json:"team_b"`
	Tier    string    `json:"tier"`
}

type drawResponse struct {
	ID          string               `json:"id"`
	EventID     string               `json:"event_id"`
	Seed        string               `json:"seed"`
	GeneratedAt time.Time            `json:"generated_at"`
	Assignments []assignmentResponse `json:"assignments"`
}

type eventResponse struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	Date            time.Time      `json:"date"`
	State           string         `json:"state"`
	MastersCourts   []string       `json:"masters_courts"`
	ExplorersCourts []string       `json:"explorers_courts"`
	RSVPs           []rsvpResponse `json:"rsvps"`
	Draw            *drawResponse  `json:"draw,omitempty"`
}

func toRSVPResponse(r model.RSVP) rsvpResponse {
	return rsvpResponse{
		PlayerID:         r.Player.ID,
		Name:             r.Player.Name,
		Rating:           r.Player.Rating,
		Status:           string(r.Status),
		WaitlistPosition: r.WaitlistPosition,
	}
}

func toDrawResponse(d *model.Draw) *drawResponse {
	if d == nil {
		return nil
	}
	out := &drawResponse{
		ID:          d.ID,
		EventID:     d.EventID,
		Seed:        d.Seed,
		GeneratedAt: d.GeneratedAt,
		Assignments: make([]assignmentResponse, len(d.Assignments)),
	}
	for i, a := range d.Assignments {
		out.Assignments[i] = assignmentResponse{
			Round:   a.Round,
			CourtID: a.CourtID,
			TeamA:   a.TeamA,
			TeamB:   a.TeamB,
			Tier:    string(a.Tier),
		}
	}
	return out
}

func toEventResponse(ev model.Event) eventResponse {
	out := eventResponse{
		ID:              ev.ID,
		Name:            ev.Name,
		Date:            ev.Date,
		State:           string(ev.State),
		MastersCourts:   ev.MastersCourts,
		ExplorersCourts: ev.ExplorersCourts,
		RSVPs:           make([]rsvpResponse, len(ev.RSVPs)),
		Draw:            toDrawResponse(ev.Draw),
	}
	for i, r := range ev.RSVPs {
		out.RSVPs[i] = toRSVPResponse(r)
	}
	return out
}
