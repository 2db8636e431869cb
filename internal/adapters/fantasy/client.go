// Package fantasy is a typed client for the remote fantasy game API.
//
// Only 200 and 304 are accepted as success. A 304 is answered from the
// client's conditional-request cache when the body was seen before.
package fantasy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/okian/pitwall/internal/domain/model"
	"github.com/okian/pitwall/pkg/logger"
	"github.com/okian/pitwall/pkg/metrics"
)

const (
	defaultTimeout   = 20 * time.Second
	defaultUserAgent = "pitwall/1.0"
	maxBodyBytes     = 8 << 20

	// HeaderSession carries the encoded session token on every data request.
	HeaderSession = "X-F1-Cookie-Data"
	headerAPIKey  = "apiKey"
)

// Client talks to the fantasy API. It is safe for concurrent use.
type Client struct {
	http      *http.Client
	baseURL   string
	authURL   string
	apiKey    string
	userAgent string
	logger    logger.Logger

	mu    sync.Mutex
	etags map[string]cachedBody
}

type cachedBody struct {
	etag string
	body []byte
}

// NewClient creates a client rooted at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		http:      &http.Client{Timeout: defaultTimeout},
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: defaultUserAgent,
		logger:    logger.Get().Named("fantasy"),
		etags:     make(map[string]cachedBody),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Login exchanges credentials for a raw subscription token.
func (c *Client) Login(ctx context.Context, creds model.Credentials) (string, error) {
	const op = "fantasy.login"
	payload, err := json.Marshal(loginRequest{Login: creds.Login, Password: creds.Password})
	if err != nil {
		return "", fmt.Errorf("%s: encode: %w", op, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.authURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if c.apiKey != "" {
		req.Header.Set(headerAPIKey, c.apiKey)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.RecordAPIRequest("login", "transport_error", msSince(start))
		return "", fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = resp.Body.Close() }()
	metrics.RecordAPIRequest("login", strconv.Itoa(resp.StatusCode), msSince(start))

	if !acceptable(resp.StatusCode) {
		return "", &StatusError{Op: op, Code: resp.StatusCode}
	}

	var body loginResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&body); err != nil {
		return "", fmt.Errorf("%s: %w: %w", op, ErrMalformedResponse, err)
	}
	if body.Data == nil || body.Data.SubscriptionToken == "" {
		return "", fmt.Errorf("%s: %w: missing subscription token", op, ErrMalformedResponse)
	}
	return body.Data.SubscriptionToken, nil
}

// League fetches the roster of a league.
func (c *Client) League(ctx context.Context, token, leagueID string) (*League, error) {
	var env leagueEnvelope
	if err := c.get(ctx, "league", token, "/leagues/"+url.PathEscape(leagueID), &env); err != nil {
		return nil, err
	}
	if env.League == nil {
		return nil, fmt.Errorf("fantasy.league %s: %w: missing league", leagueID, ErrMalformedResponse)
	}
	return env.League, nil
}

// User fetches an entrant profile.
func (c *Client) User(ctx context.Context, token, userID string) (*User, error) {
	var env userEnvelope
	if err := c.get(ctx, "user", token, "/users/"+url.PathEscape(userID), &env); err != nil {
		return nil, err
	}
	if env.User == nil {
		return nil, fmt.Errorf("fantasy.user %s: %w: missing user", userID, ErrMalformedResponse)
	}
	return env.User, nil
}

// PickedTeam fetches the detail of a historical team.
func (c *Client) PickedTeam(ctx context.Context, token, teamID string) (*PickedTeam, error) {
	var env pickedTeamEnvelope
	if err := c.get(ctx, "picked_team", token, "/picked_teams/"+url.PathEscape(teamID), &env); err != nil {
		return nil, err
	}
	if env.PickedTeam == nil {
		return nil, fmt.Errorf("fantasy.picked_team %s: %w: missing picked_team", teamID, ErrMalformedResponse)
	}
	return env.PickedTeam, nil
}

func (c *Client) get(ctx context.Context, endpoint, token, path string, out any) error {
	op := "fantasy." + endpoint
	target := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if token != "" {
		req.Header.Set(HeaderSession, token)
	}
	cached, haveCached := c.cached(target)
	if haveCached && cached.etag != "" {
		req.Header.Set("If-None-Match", cached.etag)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.RecordAPIRequest(endpoint, "transport_error", msSince(start))
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = resp.Body.Close() }()
	metrics.RecordAPIRequest(endpoint, strconv.Itoa(resp.StatusCode), msSince(start))

	if !acceptable(resp.StatusCode) {
		c.logger.Debug(ctx, "fantasy api rejected request",
			logger.String("endpoint", endpoint),
			logger.String("path", path),
			logger.Int("status", resp.StatusCode),
		)
		return &StatusError{Op: op, Code: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%s: read body: %w", op, err)
	}

	if resp.StatusCode == http.StatusNotModified && len(bytes.TrimSpace(body)) == 0 {
		if !haveCached {
			return fmt.Errorf("%s: %w: 304 without cached body", op, ErrMalformedResponse)
		}
		metrics.RecordAPINotModified()
		body = cached.body
	} else if etag := resp.Header.Get("ETag"); etag != "" {
		c.remember(target, cachedBody{etag: etag, body: body})
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s: %w: %w", op, ErrMalformedResponse, err)
	}
	return nil
}

func (c *Client) cached(target string) (cachedBody, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.etags[target]
	return b, ok
}

func (c *Client) remember(target string, b cachedBody) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.etags[target] = b
}

func acceptable(code int) bool {
	return code == http.StatusOK || code == http.StatusNotModified
}

func msSince(start time.Time) float64 {
	return float64(time.Since(start).Milliseconds())
}
