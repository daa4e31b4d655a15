// Package notify delivers draw announcements to event participants.
//
// Delivery is fire-and-forget: the draw pipeline enqueues and moves on, a
// dispatcher goroutine drains the bounded queue, and send failures are
// logged and counted but never surfaced to the caller.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/matchpoint/gamenight/pkg/logger"
	"github.com/matchpoint/gamenight/pkg/metrics"
)

// defaultQueueCapacity bounds the notification queue.
const defaultQueueCapacity = 1024

// Notification announces a published draw to its recipients.
type Notification struct {
	EventID    string
	EventName  string
	Date       time.Time
	Recipients []string
}

// Notifier is the sink the draw pipeline posts to.
type Notifier interface {
	// Enqueue submits a notification for async delivery.
	// Returns false if the queue is full and the notification was dropped.
	Enqueue(ctx context.Context, n Notification) bool
}

// Dispatcher implements Notifier with a bounded channel and one consumer
// goroutine.
type Dispatcher struct {
	queue  chan Notification
	mailer Mailer
	log    logger.Logger

	mu      sync.Mutex
	started bool
	done    chan struct{}
}

// Option applies a configuration option to the Dispatcher.
type Option func(*Dispatcher)

// WithQueueCapacity bounds the pending notification queue.
func WithQueueCapacity(n int) Option {
	return func(d *Dispatcher) {
		if n > 0 {
			d.queue = make(chan Notification, n)
		}
	}
}

// WithLogger sets a custom logger for the dispatcher.
func WithLogger(log logger.Logger) Option {
	return func(d *Dispatcher) {
		if log != nil {
			d.log = log
		}
	}
}

// NewDispatcher creates a dispatcher delivering through mailer.
func NewDispatcher(mailer Mailer, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		queue:  make(chan Notification, defaultQueueCapacity),
		mailer: mailer,
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Start launches the consumer goroutine. Safe to call once.
func (d *Dispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started {
		return
	}
	if d.log == nil {
		d.log = logger.Get().Named("notify")
	}
	d.started = true
	go d.run(ctx)
}

// Stop closes the queue and waits for in-flight deliveries to finish.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if !d.started {
		d.mu.Unlock()
		return
	}
	d.started = false
	close(d.queue)
	d.mu.Unlock()
	<-d.done
}

// Enqueue submits a notification for async delivery.
func (d *Dispatcher) Enqueue(ctx context.Context, n Notification) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.started {
		return false
	}
	select {
	case d.queue <- n:
		metrics.UpdateNotifyQueueSize(len(d.queue))
		return true
	default:
		metrics.RecordNotificationDropped()
		d.log.Warn(ctx, "notification queue full, dropping",
			logger.String("eventID", n.EventID),
			logger.Int("recipients", len(n.Recipients)),
		)
		return false
	}
}

func (d *Dispatcher) run(ctx context.Context) {
	defer close(d.done)
	for n := range d.queue {
		metrics.UpdateNotifyQueueSize(len(d.queue))
		d.deliver(ctx, n)
	}
}

func (d *Dispatcher) deliver(ctx context.Context, n Notification) {
	if len(n.Recipients) == 0 {
		return
	}
	start := time.Now()
	err := d.mailer.Send(ctx, n.Recipients, subjectFor(n), bodyFor(n))
	metrics.RecordNotifySendDuration(float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.RecordNotificationError()
		d.log.Error(ctx, "notification delivery failed",
			logger.String("eventID", n.EventID),
			logger.Error(err),
		)
		return
	}
	metrics.RecordNotificationSent()
	d.log.Info(ctx, "draw notification sent",
		logger.String("eventID", n.EventID),
		logger.Int("recipients", len(n.Recipients)),
	)
}
