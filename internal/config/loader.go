package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if GAMENIGHT_CONFIG is set
//  3. env (prefix GAMENIGHT_)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("GAMENIGHT_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: GAMENIGHT_ADDR, GAMENIGHT_LOOKBACK_SESSIONS, ...
	// Keys keep their underscores to match the koanf tags on the struct.
	envProvider := env.Provider("GAMENIGHT_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "gamenight_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	switch {
	case cfg.Addr == "":
		return nil, fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case cfg.LookbackSessions < 0:
		return nil, fmt.Errorf("%w: lookback_sessions must not be negative", ErrInvalidConfig)
	case cfg.MaxRankingLimit < 1:
		return nil, fmt.Errorf("%w: max_ranking_limit must be positive", ErrInvalidConfig)
	case cfg.NotifyQueueSize < 1:
		return nil, fmt.Errorf("%w: notify_queue_size must be positive", ErrInvalidConfig)
	}
	return &cfg, nil
}
