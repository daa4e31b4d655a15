package history_test

import (
	"testing"
	"time"

	"github.com/matchpoint/gamenight/internal/domain/history"
	"github.com/matchpoint/gamenight/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func publishedEvent(id string, date time.Time, assignments ...model.Assignment) model.Event {
	return model.Event{
		ID:    id,
		Date:  date,
		State: model.EventPublished,
		Draw: &model.Draw{
			ID:          "draw-" + id,
			EventID:     id,
			Assignments: assignments,
		},
	}
}

func TestBuild(t *testing.T) {
	now := time.Date(2026, 8, 31, 19, 0, 0, 0, time.UTC)

	convey.Convey("Given one published event with one assignment", t, func() {
		events := []model.Event{
			publishedEvent("e1", now.AddDate(0, 0, -7), model.Assignment{
				Round: 1, CourtID: "c1", Tier: model.TierMasters,
				TeamA: [2]string{"a", "b"},
				TeamB: [2]string{"c", "d"},
			}),
		}

		convey.Convey("When building the index", func() {
			ix := history.Build(events, 4, now)

			convey.Convey("Then partners and opponents are related symmetrically", func() {
				convey.So(ix.Shared("a", "b"), convey.ShouldBeTrue)
				convey.So(ix.Shared("b", "a"), convey.ShouldBeTrue)
				convey.So(ix.Shared("a", "c"), convey.ShouldBeTrue)
				convey.So(ix.Shared("a", "d"), convey.ShouldBeTrue)
				convey.So(ix.Shared("c", "d"), convey.ShouldBeTrue)
			})

			convey.Convey("And unrelated players are not indexed", func() {
				convey.So(ix.Shared("a", "x"), convey.ShouldBeFalse)
				convey.So(ix.Shared("a", "a"), convey.ShouldBeFalse)
			})
		})
	})

	convey.Convey("Given more published events than the lookback allows", t, func() {
		events := []model.Event{
			publishedEvent("recent", now.AddDate(0, 0, -3), model.Assignment{
				TeamA: [2]string{"a", "b"}, TeamB: [2]string{"c", "d"},
			}),
			publishedEvent("older", now.AddDate(0, 0, -10), model.Assignment{
				TeamA: [2]string{"e", "f"}, TeamB: [2]string{"g", "h"},
			}),
		}

		convey.Convey("When looking back a single session", func() {
			ix := history.Build(events, 1, now)

			convey.Convey("Then only the most recent event is indexed", func() {
				convey.So(ix.Shared("a", "b"), convey.ShouldBeTrue)
				convey.So(ix.Shared("e", "f"), convey.ShouldBeFalse)
			})
		})
	})

	convey.Convey("Given events older than the session window", t, func() {
		events := []model.Event{
			publishedEvent("ancient", now.AddDate(0, -6, 0), model.Assignment{
				TeamA: [2]string{"a", "b"}, TeamB: [2]string{"c", "d"},
			}),
		}

		convey.Convey("When building with a 4-session lookback", func() {
			ix := history.Build(events, 4, now)

			convey.Convey("Then nothing is indexed", func() {
				convey.So(ix.Shared("a", "b"), convey.ShouldBeFalse)
			})
		})
	})

	convey.Convey("Given a drawn-but-unpublished event", t, func() {
		ev := publishedEvent("e1", now.AddDate(0, 0, -1), model.Assignment{
			TeamA: [2]string{"a", "b"}, TeamB: [2]string{"c", "d"},
		})
		ev.State = model.EventDrawn

		convey.Convey("When building the index", func() {
			ix := history.Build([]model.Event{ev}, 4, now)

			convey.Convey("Then it contributes nothing", func() {
				convey.So(ix.Shared("a", "b"), convey.ShouldBeFalse)
			})
		})
	})

	convey.Convey("Given a zero lookback", t, func() {
		events := []model.Event{
			publishedEvent("e1", now, model.Assignment{
				TeamA: [2]string{"a", "b"}, TeamB: [2]string{"c", "d"},
			}),
		}

		convey.Convey("When building the index", func() {
			ix := history.Build(events, 0, now)

			convey.Convey("Then the index is empty", func() {
				convey.So(ix.Shared("a", "b"), convey.ShouldBeFalse)
			})
		})
	})
}
