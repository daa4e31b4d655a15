// Package balance forms rating-balanced pairs within a single tier.
package balance

import (
	"hash/fnv"
	"math"
	"math/rand"
	"sort"

	"github.com/matchpoint/gamenight/internal/domain/model"
)

// Pairing weights. The repeat penalty dominates any rating difference a club
// event can produce, so a recent partner is only picked when no alternative
// candidate remains.
const (
	ratingDiffWeight = 0.5
	repeatPenalty    = 1000
	jitterSpan       = 10
)

// History reports whether two players shared a court in the lookback window.
type History interface {
	Shared(a, b string) bool
}

// Teams pairs players greedily in descending rating order. For each unpaired
// player every later unpaired candidate is scored as
//
//	-ratingDiffWeight*|Δrating| - repeatPenalty(if recent) + jitter
//
// and the best candidate wins. The jitter comes from a PRNG derived from
// seed, so identical players and seed reproduce identical teams. With an odd
// player count the last unpaired player is returned as leftover instead of a
// team slot.
func Teams(players []model.Player, seed string, recent History) ([]model.Team, *model.Player) {
	sorted := make([]model.Player, len(players))
	copy(sorted, players)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Rating > sorted[j].Rating
	})

	rng := rand.New(rand.NewSource(SeedSource(seed)))

	used := make([]bool, len(sorted))
	teams := make([]model.Team, 0, len(sorted)/2)
	var leftover *model.Player

	for i := range sorted {
		if used[i] {
			continue
		}
		best := -1
		bestScore := math.Inf(-1)
		for j := i + 1; j < len(sorted); j++ {
			if used[j] {
				continue
			}
			score := -ratingDiffWeight * math.Abs(float64(sorted[i].Rating-sorted[j].Rating))
			if recent != nil && recent.Shared(sorted[i].ID, sorted[j].ID) {
				score -= repeatPenalty
			}
			score += rng.Float64() * jitterSpan
			if score > bestScore {
				bestScore = score
				best = j
			}
		}
		if best < 0 {
			p := sorted[i]
			leftover = &p
			break
		}
		used[i] = true
		used[best] = true
		teams = append(teams, model.Team{Player1: sorted[i], Player2: sorted[best]})
	}

	return teams, leftover
}

// SeedSource hashes an arbitrary seed string into a PRNG source value.
func SeedSource(seed string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(seed))
	return int64(h.Sum64())
}
