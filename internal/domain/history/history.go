// Package history indexes who recently shared a court with whom.
package history

import (
	"time"

	"github.com/matchpoint/gamenight/internal/domain/model"
)

// sessionSpan is the calendar window attributed to one session when
// computing the lookback cutoff.
const sessionSpan = 7 * 24 * time.Hour

// Index maps a player id to the set of player ids they partnered with or
// opposed in recent published draws. Partners and opponents are not
// distinguished; both count as "shared a court".
type Index map[string]map[string]struct{}

// Shared reports whether a and b appeared in the same matchup recently.
func (ix Index) Shared(a, b string) bool {
	_, ok := ix[a][b]
	return ok
}

// Build scans the most recent lookbackSessions published events, newest
// first, no older than lookbackSessions weeks before now, and records the
// symmetric relations among all four players of every assignment. The index
// is rebuilt from scratch on every call.
func Build(published []model.Event, lookbackSessions int, now time.Time) Index {
	ix := make(Index)
	if lookbackSessions < 1 {
		return ix
	}
	cutoff := now.Add(-time.Duration(lookbackSessions) * sessionSpan)

	// Events arrive ordered by date descending from the repository; walk
	// until either the session count or the date cutoff stops us.
	sessions := 0
	for _, ev := range published {
		if sessions >= lookbackSessions {
			break
		}
		if ev.State != model.EventPublished && ev.State != model.EventRated {
			continue
		}
		if ev.Date.Before(cutoff) {
			continue
		}
		if ev.Draw == nil {
			continue
		}
		for _, a := range ev.Draw.Assignments {
			ids := []string{a.TeamA[0], a.TeamA[1], a.TeamB[0], a.TeamB[1]}
			for _, p := range ids {
				for _, q := range ids {
					if p == q {
						continue
					}
					ix.add(p, q)
				}
			}
		}
		sessions++
	}
	return ix
}

func (ix Index) add(a, b string) {
	set, ok := ix[a]
	if !ok {
		set = make(map[string]struct{})
		ix[a] = set
	}
	set[b] = struct{}{}
}
