package tier_test

import (
	"fmt"
	"testing"

	"github.com/matchpoint/gamenight/internal/domain/model"
	"github.com/matchpoint/gamenight/internal/domain/tier"
	"github.com/smartystreets/goconvey/convey"
)

func ratedPlayers(n int) []model.Player {
	players := make([]model.Player, n)
	for i := range players {
		players[i] = model.Player{
			ID:     fmt.Sprintf("p%02d", i),
			Rating: 2000 - i*10,
		}
	}
	return players
}

func TestAssign(t *testing.T) {
	convey.Convey("Given 20 players sorted by rating descending", t, func() {
		players := ratedPlayers(20)

		convey.Convey("When assigning with a fixed master count of 8", func() {
			got := tier.Assign(players, model.TierRule{Count: 8})

			convey.Convey("Then exactly the top 8 are MASTERS", func() {
				for i, p := range players {
					if i < 8 {
						convey.So(got[p.ID], convey.ShouldEqual, model.TierMasters)
					} else {
						convey.So(got[p.ID], convey.ShouldEqual, model.TierExplorers)
					}
				}
			})

			convey.Convey("And repeating the call yields the identical mapping", func() {
				again := tier.Assign(players, model.TierRule{Count: 8})
				convey.So(again, convey.ShouldResemble, got)
			})
		})

		convey.Convey("When assigning with a master percentage of 25", func() {
			got := tier.Assign(players, model.TierRule{Percentage: 25})

			convey.Convey("Then floor(20*25/100) = 5 players are MASTERS", func() {
				masters := 0
				for _, t := range got {
					if t == model.TierMasters {
						masters++
					}
				}
				convey.So(masters, convey.ShouldEqual, 5)
			})
		})

		convey.Convey("When assigning with no rule", func() {
			got := tier.Assign(players, model.TierRule{})

			convey.Convey("Then the field splits 50-50", func() {
				masters := 0
				for _, t := range got {
					if t == model.TierMasters {
						masters++
					}
				}
				convey.So(masters, convey.ShouldEqual, 10)
			})
		})

		convey.Convey("When the fixed count exceeds the field", func() {
			got := tier.Assign(players, model.TierRule{Count: 50})

			convey.Convey("Then everyone is MASTERS", func() {
				for _, p := range players {
					convey.So(got[p.ID], convey.ShouldEqual, model.TierMasters)
				}
			})
		})
	})

	convey.Convey("Given players tied in rating at the split boundary", t, func() {
		players := []model.Player{
			{ID: "a", Rating: 1500},
			{ID: "b", Rating: 1400},
			{ID: "c", Rating: 1400},
			{ID: "d", Rating: 1300},
		}

		convey.Convey("When assigning with a master count of 2", func() {
			got := tier.Assign(players, model.TierRule{Count: 2})

			convey.Convey("Then the tie breaks by pre-sort order", func() {
				convey.So(got["a"], convey.ShouldEqual, model.TierMasters)
				convey.So(got["b"], convey.ShouldEqual, model.TierMasters)
				convey.So(got["c"], convey.ShouldEqual, model.TierExplorers)
				convey.So(got["d"], convey.ShouldEqual, model.TierExplorers)
			})
		})
	})

	convey.Convey("Given no players", t, func() {
		convey.Convey("When assigning", func() {
			got := tier.Assign(nil, model.TierRule{Count: 4})

			convey.Convey("Then the mapping is empty", func() {
				convey.So(got, convey.ShouldBeEmpty)
			})
		})
	})
}

func TestMastersCount(t *testing.T) {
	convey.Convey("Given the rule precedence", t, func() {
		convey.Convey("A fixed count wins over a percentage", func() {
			convey.So(tier.MastersCount(20, model.TierRule{Count: 4, Percentage: 50}), convey.ShouldEqual, 4)
		})

		convey.Convey("A percentage floors the share", func() {
			convey.So(tier.MastersCount(10, model.TierRule{Percentage: 35}), convey.ShouldEqual, 3)
		})

		convey.Convey("The default halves the field, flooring", func() {
			convey.So(tier.MastersCount(9, model.TierRule{}), convey.ShouldEqual, 4)
		})
	})
}
