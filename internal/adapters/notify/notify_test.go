package notify_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/matchpoint/gamenight/internal/adapters/notify"
	"github.com/matchpoint/gamenight/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

// fakeMailer records every send; an optional gate blocks delivery until
// released.
type fakeMailer struct {
	mu    sync.Mutex
	sends [][]string
	gate  chan struct{}
	fail  error
}

func (m *fakeMailer) Send(_ context.Context, to []string, _, _ string) error {
	if m.gate != nil {
		<-m.gate
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	m.sends = append(m.sends, to)
	return nil
}

func (m *fakeMailer) sent() [][]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]string, len(m.sends))
	copy(out, m.sends)
	return out
}

func notification(recipients ...string) notify.Notification {
	return notify.Notification{
		EventID:    "ev-1",
		EventName:  "tuesday night",
		Date:       time.Date(2026, 9, 1, 19, 0, 0, 0, time.UTC),
		Recipients: recipients,
	}
}

func TestDispatcher(t *testing.T) {
	ctx := context.Background()

	Convey("Given a started dispatcher", t, func() {
		mailer := &fakeMailer{}
		d := notify.NewDispatcher(mailer)
		d.Start(ctx)

		Convey("When a notification is enqueued", func() {
			ok := d.Enqueue(ctx, notification("a@club.example", "b@club.example"))
			d.Stop()

			Convey("Then it is delivered before Stop returns", func() {
				So(ok, ShouldBeTrue)
				So(mailer.sent(), ShouldHaveLength, 1)
				So(mailer.sent()[0], ShouldResemble, []string{"a@club.example", "b@club.example"})
			})
		})

		Convey("When a notification has no recipients", func() {
			ok := d.Enqueue(ctx, notification())
			d.Stop()

			Convey("Then nothing is sent", func() {
				So(ok, ShouldBeTrue)
				So(mailer.sent(), ShouldBeEmpty)
			})
		})

		Convey("When delivery fails", func() {
			mailer.fail = context.DeadlineExceeded
			ok := d.Enqueue(ctx, notification("a@club.example"))
			d.Stop()

			Convey("Then the failure stays internal", func() {
				So(ok, ShouldBeTrue)
				So(mailer.sent(), ShouldBeEmpty)
			})
		})
	})

	Convey("Given a dispatcher that was never started", t, func() {
		d := notify.NewDispatcher(&fakeMailer{})

		Convey("When enqueueing", func() {
			ok := d.Enqueue(ctx, notification("a@club.example"))

			Convey("Then the notification is refused", func() {
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When stopping", func() {
			Convey("Then it is a no-op", func() {
				So(d.Stop, ShouldNotPanic)
			})
		})
	})

	Convey("Given a dispatcher with a full queue", t, func() {
		gate := make(chan struct{})
		mailer := &fakeMailer{gate: gate}
		d := notify.NewDispatcher(mailer, notify.WithQueueCapacity(1))
		d.Start(ctx)

		// First notification blocks in the mailer, second fills the queue.
		So(d.Enqueue(ctx, notification("a@club.example")), ShouldBeTrue)
		time.Sleep(10 * time.Millisecond)
		So(d.Enqueue(ctx, notification("b@club.example")), ShouldBeTrue)

		Convey("When enqueueing one more", func() {
			ok := d.Enqueue(ctx, notification("c@club.example"))
			close(gate)
			d.Stop()

			Convey("Then it is dropped", func() {
				So(ok, ShouldBeFalse)
				So(mailer.sent(), ShouldHaveLength, 2)
			})
		})
	})
}
