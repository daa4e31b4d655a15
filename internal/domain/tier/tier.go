// Package tier splits a rating-sorted field into the two skill groups.
package tier

import (
	"github.com/matchpoint/gamenight/internal/domain/model"
)

// MastersCount resolves how many of n players go to MASTERS under the rule.
// Precedence: fixed count, then percentage, then half the field. The result
// is clamped to [0, n].
func MastersCount(n int, rule model.TierRule) int {
	var count int
	switch {
	case rule.Count > 0:
		count = rule.Count
	case rule.Percentage > 0:
		count = n * rule.Percentage / 100
	default:
		count = n / 2
	}
	if count > n {
		count = n
	}
	if count < 0 {
		count = 0
	}
	return count
}

// Assign maps every player to a tier. Players must already be sorted by
// rating descending; ties at the split boundary keep their pre-sort order.
// The mapping is always complete.
func Assign(players []model.Player, rule model.TierRule) map[string]model.Tier {
	count := MastersCount(len(players), rule)
	out := make(map[string]model.Tier, len(players))
	for i, p := range players {
		if i < count {
			out[p.ID] = model.TierMasters
		} else {
			out[p.ID] = model.TierExplorers
		}
	}
	return out
}
