// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults; Load layers file and env.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// LookbackSessions is the default partner-history window in sessions.
	LookbackSessions int `koanf:"lookback_sessions"`

	// AllowTierMixing enables the mixed leftover pass during draw generation.
	AllowTierMixing bool `koanf:"allow_tier_mixing"`

	// MaxRankingLimit caps GET /ranking?limit.
	MaxRankingLimit int `koanf:"max_ranking_limit"`

	// NotifyQueueSize bounds the in-memory notification queue.
	NotifyQueueSize int `koanf:"notify_queue_size"`

	// ResendAPIKey authenticates against the Resend mail API. Empty disables
	// outbound mail; notifications are then logged only.
	ResendAPIKey string `koanf:"resend_api_key"`

	// MailFrom is the sender address for draw notifications.
	MailFrom string `koanf:"mail_from"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		Addr:             ":9080",
		LookbackSessions: 4,
		AllowTierMixing:  false,
		MaxRankingLimit:  100,
		NotifyQueueSize:  1024,
		MailFrom:         "gamenight@matchpoint.club",
	}
}
