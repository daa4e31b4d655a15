package schedule_test

import (
	"fmt"
	"testing"

	"github.com/matchpoint/gamenight/internal/domain/model"
	"github.com/matchpoint/gamenight/internal/domain/schedule"
	"github.com/smartystreets/goconvey/convey"
)

func teamsOf(n int) []model.Team {
	teams := make([]model.Team, n)
	for i := range teams {
		teams[i] = model.Team{
			Player1: model.Player{ID: fmt.Sprintf("t%da", i)},
			Player2: model.Player{ID: fmt.Sprintf("t%db", i)},
		}
	}
	return teams
}

func pairKey(m model.Matchup) string {
	a := m.TeamA.Player1.ID
	b := m.TeamB.Player1.ID
	if a > b {
		a, b = b, a
	}
	return a + "|" + b
}

func TestRounds(t *testing.T) {
	convey.Convey("Given an even number of teams", t, func() {
		for _, n := range []int{2, 4, 6, 8, 10} {
			n := n
			convey.Convey(fmt.Sprintf("When scheduling %d teams on plenty of courts", n), func() {
				rounds := schedule.Rounds(teamsOf(n), n/2)

				convey.Convey("Then every unordered team pair meets exactly once", func() {
					seen := make(map[string]int)
					total := 0
					for _, round := range rounds {
						for _, m := range round {
							seen[pairKey(m)]++
							total++
						}
					}
					convey.So(total, convey.ShouldEqual, n*(n-1)/2)
					for _, count := range seen {
						convey.So(count, convey.ShouldEqual, 1)
					}
				})

				convey.Convey("And no team plays itself", func() {
					for _, round := range rounds {
						for _, m := range round {
							convey.So(m.TeamA, convey.ShouldNotResemble, m.TeamB)
						}
					}
				})
			})
		}
	})

	convey.Convey("Given 4 teams and 2 simultaneous matches", t, func() {
		rounds := schedule.Rounds(teamsOf(4), 2)

		convey.Convey("Then the 6 matchups chunk into 3 rounds of 2", func() {
			convey.So(rounds, convey.ShouldHaveLength, 3)
			for _, round := range rounds {
				convey.So(round, convey.ShouldHaveLength, 2)
			}
		})

		convey.Convey("And no team appears twice within a round", func() {
			for _, round := range rounds {
				seen := make(map[string]bool)
				for _, m := range round {
					for _, id := range []string{m.TeamA.Player1.ID, m.TeamB.Player1.ID} {
						convey.So(seen[id], convey.ShouldBeFalse)
						seen[id] = true
					}
				}
			}
		})
	})

	convey.Convey("Given a single court", t, func() {
		rounds := schedule.Rounds(teamsOf(4), 1)

		convey.Convey("Then every round holds exactly one matchup", func() {
			convey.So(rounds, convey.ShouldHaveLength, 6)
			for _, round := range rounds {
				convey.So(round, convey.ShouldHaveLength, 1)
			}
		})
	})

	convey.Convey("Given degenerate inputs", t, func() {
		convey.Convey("One team yields no rounds", func() {
			convey.So(schedule.Rounds(teamsOf(1), 1), convey.ShouldBeEmpty)
		})

		convey.Convey("Zero simultaneous matches yields no rounds", func() {
			convey.So(schedule.Rounds(teamsOf(4), 0), convey.ShouldBeEmpty)
		})
	})
}

func TestMaxSimultaneous(t *testing.T) {
	convey.Convey("Given court and team counts", t, func() {
		convey.Convey("Courts bound the concurrency when scarce", func() {
			convey.So(schedule.MaxSimultaneous(8, 2), convey.ShouldEqual, 2)
		})

		convey.Convey("The field bounds the concurrency when courts are plentiful", func() {
			convey.So(schedule.MaxSimultaneous(4, 5), convey.ShouldEqual, 2)
		})
	})
}
