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

const (
	envPrefix  = "PITWALL_"
	envConfig  = "PITWALL_CONFIG"
	keyDelimit = "."
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if PITWALL_CONFIG is set
//  3. env (prefix PITWALL_)
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, os.Getenv(envConfig))
}

// LoadFrom is Load with an explicit YAML path. An empty path skips the file layer.
func LoadFrom(_ context.Context, path string) (*Config, error) {
	base := New()

	k := koanf.New(keyDelimit)

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// PITWALL_ENTRANT_DELAY -> entrant_delay. Underscores are kept to match
	// the flat koanf tags.
	envProvider := env.Provider(envPrefix, keyDelimit, func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, strings.ToLower(envPrefix))
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}
	// The file path itself is not a config key.
	k.Delete("config")

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	for key, league := range cfg.Leagues {
		if league.Key == "" {
			league.Key = key
			cfg.Leagues[key] = league
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the fields every component relies on.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.DataDir == "":
		return fmt.Errorf("%w: data_dir must not be empty", ErrInvalidConfig)
	case c.APIBaseURL == "":
		return fmt.Errorf("%w: api_base_url must not be empty", ErrInvalidConfig)
	case c.TokenCache != TokenCacheFile && c.TokenCache != TokenCacheBolt:
		return fmt.Errorf("%w: token_cache must be %q or %q, got %q", ErrInvalidConfig, TokenCacheFile, TokenCacheBolt, c.TokenCache)
	case c.TokenTTL <= 0:
		return fmt.Errorf("%w: token_ttl must be positive", ErrInvalidConfig)
	case c.EntrantDelay < 0 || c.RetryDelay < 0:
		return fmt.Errorf("%w: delays must not be negative", ErrInvalidConfig)
	case c.MaxRetries < 0:
		return fmt.Errorf("%w: max_retries must not be negative", ErrInvalidConfig)
	}
	for key, league := range c.Leagues {
		if league.Tag == "" || league.LeagueID == "" {
			return fmt.Errorf("%w: league %q needs tag and league_id", ErrInvalidConfig, key)
		}
		if strings.ContainsAny(league.Tag, `/\`) {
			return fmt.Errorf("%w: league %q tag must not contain path separators", ErrInvalidConfig, key)
		}
	}
	return nil
}
