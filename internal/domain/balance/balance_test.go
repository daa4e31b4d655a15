package balance_test

import (
	"fmt"
	"testing"

	"github.com/matchpoint/gamenight/internal/domain/balance"
	"github.com/matchpoint/gamenight/internal/domain/history"
	"github.com/matchpoint/gamenight/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func fieldOf(n int) []model.Player {
	players := make([]model.Player, n)
	for i := range players {
		players[i] = model.Player{
			ID:     fmt.Sprintf("p%02d", i),
			Rating: 1800 - i*25,
		}
	}
	return players
}

func teamIDs(teams []model.Team) [][2]string {
	out := make([][2]string, len(teams))
	for i, t := range teams {
		out[i] = [2]string{t.Player1.ID, t.Player2.ID}
	}
	return out
}

func TestTeams(t *testing.T) {
	convey.Convey("Given an even field of rated players", t, func() {
		players := fieldOf(8)

		convey.Convey("When pairing with a seed", func() {
			teams, leftover := balance.Teams(players, "seed-1", nil)

			convey.Convey("Then every player lands in exactly one team", func() {
				convey.So(leftover, convey.ShouldBeNil)
				convey.So(teams, convey.ShouldHaveLength, 4)

				seen := make(map[string]bool)
				for _, tm := range teams {
					convey.So(seen[tm.Player1.ID], convey.ShouldBeFalse)
					convey.So(seen[tm.Player2.ID], convey.ShouldBeFalse)
					seen[tm.Player1.ID] = true
					seen[tm.Player2.ID] = true
				}
				convey.So(seen, convey.ShouldHaveLength, 8)
			})

			convey.Convey("And the same seed reproduces the same teams", func() {
				again, _ := balance.Teams(players, "seed-1", nil)
				convey.So(teamIDs(again), convey.ShouldResemble, teamIDs(teams))
			})
		})
	})

	convey.Convey("Given an odd field", t, func() {
		players := fieldOf(5)

		convey.Convey("When pairing", func() {
			teams, leftover := balance.Teams(players, "seed-odd", nil)

			convey.Convey("Then the last unpaired player is returned explicitly", func() {
				convey.So(teams, convey.ShouldHaveLength, 2)
				convey.So(leftover, convey.ShouldNotBeNil)

				paired := make(map[string]bool)
				for _, tm := range teams {
					paired[tm.Player1.ID] = true
					paired[tm.Player2.ID] = true
				}
				convey.So(paired[leftover.ID], convey.ShouldBeFalse)
			})
		})
	})

	convey.Convey("Given two players who recently shared a court", t, func() {
		players := []model.Player{
			{ID: "a", Rating: 1500},
			{ID: "b", Rating: 1500},
			{ID: "c", Rating: 1500},
			{ID: "d", Rating: 1500},
		}
		recent := history.Index{
			"a": {"b": {}},
			"b": {"a": {}},
		}

		convey.Convey("When pairing with any seed", func() {
			convey.Convey("Then a and b are never paired while an alternative exists", func() {
				for i := 0; i < 20; i++ {
					teams, _ := balance.Teams(players, fmt.Sprintf("seed-%d", i), recent)
					for _, tm := range teams {
						together := tm.Has("a") && tm.Has("b")
						convey.So(together, convey.ShouldBeFalse)
					}
				}
			})
		})
	})

	convey.Convey("Given players with one natural rating pairing", t, func() {
		players := []model.Player{
			{ID: "high1", Rating: 2000},
			{ID: "high2", Rating: 1990},
			{ID: "low1", Rating: 1000},
			{ID: "low2", Rating: 990},
		}

		convey.Convey("When pairing", func() {
			teams, _ := balance.Teams(players, "seed-balance", nil)

			convey.Convey("Then rating proximity dominates the jitter", func() {
				convey.So(teams, convey.ShouldHaveLength, 2)
				convey.So(teams[0].Has("high1"), convey.ShouldBeTrue)
				convey.So(teams[0].Has("high2"), convey.ShouldBeTrue)
				convey.So(teams[1].Has("low1"), convey.ShouldBeTrue)
				convey.So(teams[1].Has("low2"), convey.ShouldBeTrue)
			})
		})
	})

	convey.Convey("Given fewer than two players", t, func() {
		convey.Convey("When pairing one player", func() {
			teams, leftover := balance.Teams(fieldOf(1), "seed", nil)

			convey.Convey("Then there are no teams and the player is left over", func() {
				convey.So(teams, convey.ShouldBeEmpty)
				convey.So(leftover, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When pairing nobody", func() {
			teams, leftover := balance.Teams(nil, "seed", nil)

			convey.Convey("Then there is nothing at all", func() {
				convey.So(teams, convey.ShouldBeEmpty)
				convey.So(leftover, convey.ShouldBeNil)
			})
		})
	})
}

func TestSeedSource(t *testing.T) {
	convey.Convey("Given two distinct seeds", t, func() {
		convey.Convey("Then their sources differ and are stable", func() {
			convey.So(balance.SeedSource("x"), convey.ShouldEqual, balance.SeedSource("x"))
			convey.So(balance.SeedSource("x"), convey.ShouldNotEqual, balance.SeedSource("y"))
		})
	})
}
