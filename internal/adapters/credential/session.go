// Package credential obtains the fantasy session token and caches it between
// runs. A cached token is reused until it is older than the freshness window.
package credential

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/okian/pitwall/internal/domain/model"
	"github.com/okian/pitwall/pkg/logger"
	"github.com/okian/pitwall/pkg/metrics"
)

const defaultTTL = 24 * time.Hour

// Authenticator exchanges credentials for a raw subscription token.
type Authenticator interface {
	Login(ctx context.Context, creds model.Credentials) (string, error)
}

// Session hands out a fresh encoded token, regenerating it when stale.
type Session struct {
	cache  TokenCache
	auth   Authenticator
	ttl    time.Duration
	now    func() time.Time
	logger logger.Logger

	mu sync.Mutex
}

// NewSession creates a session over cache that logs in through auth.
func NewSession(cache TokenCache, auth Authenticator, opts ...Option) *Session {
	s := &Session{
		cache:  cache,
		auth:   auth,
		ttl:    defaultTTL,
		now:    time.Now,
		logger: logger.Get().Named("credential"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TTL returns the freshness window.
func (s *Session) TTL() time.Duration { return s.ttl }

// Token returns the cached token when it is younger than the freshness
// window, otherwise logs in and replaces the cached value.
func (s *Session) Token(ctx context.Context, creds model.Credentials) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, err := s.cache.Load(ctx)
	switch {
	case err == nil:
		if age := s.now().Sub(entry.Modified); age < s.ttl {
			metrics.RecordTokenEvent("hit")
			s.logger.Debug(ctx, "reusing cached session token", logger.Duration("age", age))
			return entry.Token, nil
		}
	case errors.Is(err, ErrNoToken):
	default:
		// An unreadable cache is treated as a miss; the store below will
		// surface a persistent fault.
		metrics.RecordTokenEvent("error")
		s.logger.Warn(ctx, "token cache unreadable", logger.Error(err))
	}

	return s.regenerate(ctx, creds)
}

// Refresh forces a new login regardless of the cached entry.
func (s *Session) Refresh(ctx context.Context, creds model.Credentials) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.regenerate(ctx, creds)
}

func (s *Session) regenerate(ctx context.Context, creds model.Credentials) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	raw, err := s.auth.Login(ctx, creds)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		metrics.RecordTokenEvent("rejected")
		return "", fmt.Errorf("%w: %w", ErrAuthRejected, err)
	}
	token, err := EncodeToken(raw)
	if err != nil {
		metrics.RecordTokenEvent("error")
		return "", err
	}
	if err := s.cache.Store(ctx, token); err != nil {
		metrics.RecordTokenEvent("error")
		return "", err
	}
	metrics.RecordTokenEvent("regenerated")
	s.logger.Info(ctx, "session token regenerated")
	return token, nil
}

type tokenEnvelope struct {
	Data struct {
		SubscriptionToken string `json:"subscriptionToken"`
	} `json:"data"`
}

// EncodeToken wraps a subscription token in the envelope the data endpoints
// expect, query-escapes it and base64 encodes the result.
func EncodeToken(subscription string) (string, error) {
	var env tokenEnvelope
	env.Data.SubscriptionToken = subscription
	b, err := json.Marshal(env)
	if err != nil {
		return "", fmt.Errorf("encode token envelope: %w", err)
	}
	return base64.StdEncoding.EncodeToString([]byte(url.QueryEscape(string(b)))), nil
}
