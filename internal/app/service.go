// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/matchpoint/gamenight/internal/adapters/notify"
	"github.com/matchpoint/gamenight/internal/adapters/repository"
	"github.com/matchpoint/gamenight/internal/domain/model"
	"github.com/matchpoint/gamenight/pkg/logger"
)

// Service coordinates draw generation and rating runs against the
// repository and notification collaborators.
type Service struct {
	mu sync.RWMutex

	repo     repository.Store
	notifier notify.Notifier

	// Configuration
	lookbackSessions int
	allowTierMixing  bool

	// Injection points for deterministic tests
	now     func() time.Time
	newSeed func(eventID string) string

	started bool

	log logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithRepository sets the backing store.
func WithRepository(repo repository.Store) Option {
	return func(s *Service) {
		if repo != nil {
			s.repo = repo
		}
	}
}

// WithNotifier sets the notification sink.
func WithNotifier(n notify.Notifier) Option {
	return func(s *Service) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithLookbackSessions sets the default partner-history window.
func WithLookbackSessions(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.lookbackSessions = n
		}
	}
}

// WithAllowTierMixing enables the mixed leftover pass by default.
func WithAllowTierMixing(allow bool) Option {
	return func(s *Service) {
		s.allowTierMixing = allow
	}
}

// WithClock injects a time source for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithSeedFunc injects the draw-seed derivation for tests.
func WithSeedFunc(f func(eventID string) string) Option {
	return func(s *Service) {
		if f != nil {
			s.newSeed = f
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		lookbackSessions: 4,
		now:              time.Now,
	}
	s.newSeed = func(eventID string) string {
		// Event id + wall clock + a random component; persisted on the draw
		// so a regeneration from the stored seed reproduces it.
		return fmt.Sprintf("%s:%d:%s", eventID, s.now().UnixNano(), uuid.NewString()[:8])
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.log == nil {
		s.log = logger.Get()
	}
	if s.repo == nil {
		s.repo = repository.NewMemStore(ctx)
		s.log.Info(ctx, "using in-memory store")
	}

	s.started = true
	s.log.Info(ctx, "game night service started",
		logger.Int("lookbackSessions", s.lookbackSessions),
		logger.Bool("allowTierMixing", s.allowTierMixing),
	)
	return nil
}

// Stop shuts the service down.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.log.Info(context.Background(), "game night service stopped")
}

// CreateEvent validates and stores a new game night.
func (s *Service) CreateEvent(ctx context.Context, ev model.Event) (model.Event, error) {
	switch {
	case ev.Name == "":
		return model.Event{}, fmt.Errorf("%w: event name required", ErrValidation)
	case ev.Date.IsZero():
		return model.Event{}, fmt.Errorf("%w: event date required", ErrValidation)
	case len(ev.MastersCourts) == 0 && len(ev.ExplorersCourts) == 0:
		return model.Event{}, fmt.Errorf("%w: at least one court must be selected", ErrValidation)
	}
	if ev.Constraints.AvoidRecentSessions == 0 {
		ev.Constraints.AvoidRecentSessions = s.lookbackSessions
	}
	if !ev.Constraints.AllowTierMixing {
		ev.Constraints.AllowTierMixing = s.allowTierMixing
	}
	if err := validateTierRule(ev.Constraints.TierRule); err != nil {
		return model.Event{}, err
	}
	return s.repo.CreateEvent(ctx, ev)
}

// Event returns an event with its RSVPs and draw.
func (s *Service) Event(ctx context.Context, id string) (model.Event, error) {
	return s.repo.Event(ctx, id)
}

// RSVP confirms a player for an event.
func (s *Service) RSVP(ctx context.Context, eventID string, p model.Player) (model.RSVP, error) {
	switch {
	case p.ID == "":
		return model.RSVP{}, fmt.Errorf("%w: player id required", ErrValidation)
	case p.Rating < 0:
		return model.RSVP{}, fmt.Errorf("%w: rating must not be negative", ErrValidation)
	}
	return s.repo.AddRSVP(ctx, eventID, p)
}

// Freeze closes RSVPs for an event.
func (s *Service) Freeze(ctx context.Context, eventID string) error {
	return s.repo.Freeze(ctx, eventID)
}

// Publish publishes a drawn event, exposing its draw to the partner-history
// lookback. Participants were already notified when the draw was generated.
func (s *Service) Publish(ctx context.Context, eventID string) error {
	return s.repo.Publish(ctx, eventID)
}

// TopN returns the top N club ranking rows.
func (s *Service) TopN(ctx context.Context, n int) ([]repository.RankEntry, error) {
	return s.repo.TopN(ctx, n)
}

// Rank returns the ranking row for one player.
func (s *Service) Rank(ctx context.Context, playerID string) (repository.RankEntry, error) {
	return s.repo.Rank(ctx, playerID)
}

// Stats is a point-in-time operational summary of the service. Event and
// player counts are zero until the service has started.
type Stats struct {
	Started          bool
	Events           int
	Players          int
	LookbackSessions int
	AllowTierMixing  bool
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{
		Started:          s.started,
		LookbackSessions: s.lookbackSessions,
		AllowTierMixing:  s.allowTierMixing,
	}
	if s.started {
		stats.Events, stats.Players = s.repo.Counts(context.Background())
	}
	return stats
}

// announce enqueues a draw notification for every participant with an email
// address. Failures are the dispatcher's problem, never the caller's.
func (s *Service) announce(ctx context.Context, ev model.Event) {
	if s.notifier == nil {
		return
	}
	var recipients []string
	for _, r := range ev.RSVPs {
		if r.Player.Email != "" {
			recipients = append(recipients, r.Player.Email)
		}
	}
	s.notifier.Enqueue(ctx, notify.Notification{
		EventID:    ev.ID,
		EventName:  ev.Name,
		Date:       ev.Date,
		Recipients: recipients,
	})
}

func validateTierRule(rule model.TierRule) error {
	switch {
	case rule.Count < 0:
		return fmt.Errorf("%w: master count must not be negative", ErrValidation)
	case rule.Percentage < 0 || rule.Percentage > 100:
		return fmt.Errorf("%w: master percentage must be 0-100", ErrValidation)
	}
	return nil
}
