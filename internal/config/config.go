// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - New() returns a Config populated with defaults.
// - Load layers an optional YAML file and PITWALL_* environment variables on top.
// - Validation failures wrap ErrInvalidConfig.
package config

import (
	"path/filepath"
	"sort"
	"time"

	"github.com/okian/pitwall/internal/domain/model"
)

// Token cache backends.
const (
	TokenCacheFile = "file"
	TokenCacheBolt = "bolt"
)

const (
	cookieFile  = "cookie.txt"
	sessionFile = "session.db"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// DataDir holds the token cache and league snapshots.
	DataDir string `koanf:"data_dir"`

	// TokenCache selects the session token backend: "file" or "bolt".
	TokenCache string `koanf:"token_cache"`

	// TokenTTL is how long a cached session token is reused.
	TokenTTL time.Duration `koanf:"token_ttl"`

	// Remote fantasy API.
	APIBaseURL  string        `koanf:"api_base_url"`
	AuthURL     string        `koanf:"auth_url"`
	APIKey      string        `koanf:"api_key"`
	UserAgent   string        `koanf:"user_agent"`
	HTTPTimeout time.Duration `koanf:"http_timeout"`

	// EntrantDelay is the pause after each entrant before the next one starts.
	EntrantDelay time.Duration `koanf:"entrant_delay"`

	// RetryDelay is the wait before each retry sweep.
	RetryDelay time.Duration `koanf:"retry_delay"`

	// MaxRetries bounds retry sweeps; 0 retries until every entrant succeeds.
	MaxRetries int `koanf:"max_retries"`

	// Login and Password authenticate against the fantasy platform.
	Login    string `koanf:"login"`
	Password string `koanf:"password"`

	// Lookup maps remote driver/team ids to display names.
	Lookup map[string]string `koanf:"lookup"`

	// Leagues maps a chat guild key to its fantasy league.
	Leagues map[string]model.League `koanf:"leagues"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:     "info",
		Addr:         ":9080",
		DataDir:      ".",
		TokenCache:   TokenCacheFile,
		TokenTTL:     24 * time.Hour,
		APIBaseURL:   "https://fantasy-api.formula1.com/partner_games/f1",
		AuthURL:      "https://api.formula1.com/v2/account/subscriber/authenticate/by-password",
		UserAgent:    "pitwall/1.0",
		HTTPTimeout:  20 * time.Second,
		EntrantDelay: time.Second,
		RetryDelay:   5 * time.Second,
		MaxRetries:   5,
		Lookup:       map[string]string{},
		Leagues:      map[string]model.League{},
	}
}

// Credentials returns the configured fantasy login.
func (c *Config) Credentials() model.Credentials {
	return model.Credentials{Login: c.Login, Password: c.Password}
}

// TokenCachePath is where the selected token backend keeps its state.
func (c *Config) TokenCachePath() string {
	if c.TokenCache == TokenCacheBolt {
		return filepath.Join(c.DataDir, sessionFile)
	}
	return filepath.Join(c.DataDir, cookieFile)
}

// LeagueList returns the configured leagues ordered by key.
func (c *Config) LeagueList() []model.League {
	keys := make([]string, 0, len(c.Leagues))
	for k := range c.Leagues {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]model.League, 0, len(keys))
	for _, k := range keys {
		out = append(out, c.Leagues[k])
	}
	return out
}
