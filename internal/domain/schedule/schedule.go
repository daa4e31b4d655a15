// Package schedule produces round-robin matchups bounded by court capacity.
package schedule

import (
	"github.com/matchpoint/gamenight/internal/domain/model"
)

// MaxSimultaneous bounds the matchups per round by the courts available and
// by the number of games the field can play at once.
func MaxSimultaneous(teamCount, courtCount int) int {
	limit := teamCount / 2
	if courtCount < limit {
		limit = courtCount
	}
	return limit
}

// Rounds generates the complete round-robin for teams using the circle
// method and re-chunks it into rounds of at most maxSimultaneous matchups,
// preserving generation order. With an even team count every unordered pair
// of teams appears exactly once, n*(n-1)/2 matchups total. Callers ensure an
// even team count upstream.
func Rounds(teams []model.Team, maxSimultaneous int) [][]model.Matchup {
	flat := roundRobin(teams)
	if len(flat) == 0 || maxSimultaneous < 1 {
		return nil
	}

	rounds := make([][]model.Matchup, 0, (len(flat)+maxSimultaneous-1)/maxSimultaneous)
	for start := 0; start < len(flat); start += maxSimultaneous {
		end := start + maxSimultaneous
		if end > len(flat) {
			end = len(flat)
		}
		rounds = append(rounds, flat[start:end])
	}
	return rounds
}

// roundRobin runs n-1 circle-method iterations: pair position i with
// position n-1-i, then rotate every position except 0 by one.
func roundRobin(teams []model.Team) []model.Matchup {
	n := len(teams)
	if n < 2 {
		return nil
	}

	ring := make([]model.Team, n)
	copy(ring, teams)

	var flat []model.Matchup
	for iter := 0; iter < n-1; iter++ {
		for i := 0; i < n/2; i++ {
			a, b := ring[i], ring[n-1-i]
			if a == b {
				continue
			}
			flat = append(flat, model.Matchup{TeamA: a, TeamB: b})
		}
		// Rotate all but the fixed head.
		last := ring[n-1]
		copy(ring[2:], ring[1:n-1])
		ring[1] = last
	}
	return flat
}
