package service

import (
	"context"
	"fmt"

	"github.com/okian/pitwall/internal/adapters/credential"
	"github.com/okian/pitwall/internal/adapters/fantasy"
	"github.com/okian/pitwall/internal/adapters/repository"
	"github.com/okian/pitwall/internal/app/fetcher"
	"github.com/okian/pitwall/internal/config"
	"github.com/okian/pitwall/internal/domain/model"
	"github.com/okian/pitwall/pkg/logger"
)

// Pipeline is the set of components built from a Config.
type Pipeline struct {
	Client  *fantasy.Client
	Cache   credential.TokenCache
	Session *credential.Session
	Fetcher *fetcher.Fetcher
	Store   *repository.JSONStore

	closers []func() error
}

// Close releases resources held by the token cache.
func (p *Pipeline) Close() error {
	var first error
	for _, c := range p.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Options returns the service options that wire this pipeline in.
func (p *Pipeline) Options() []Option {
	return []Option{
		WithSession(p.Session),
		WithFetcher(p.Fetcher),
		WithStore(p.Store),
	}
}

// BuildPipeline constructs the fantasy client, token cache, session, fetcher
// and snapshot store described by cfg.
func BuildPipeline(ctx context.Context, cfg *config.Config) (*Pipeline, error) {
	log := logger.Get()
	p := &Pipeline{}

	p.Client = fantasy.NewClient(cfg.APIBaseURL,
		fantasy.WithAuthURL(cfg.AuthURL),
		fantasy.WithAPIKey(cfg.APIKey),
		fantasy.WithUserAgent(cfg.UserAgent),
		fantasy.WithTimeout(cfg.HTTPTimeout),
		fantasy.WithLogger(log.Named("fantasy")),
	)

	switch cfg.TokenCache {
	case config.TokenCacheBolt:
		bc, err := credential.OpenBoltCache(cfg.TokenCachePath())
		if err != nil {
			return nil, fmt.Errorf("open token cache: %w", err)
		}
		p.Cache = bc
		p.closers = append(p.closers, bc.Close)
	default:
		p.Cache = credential.NewFileCache(cfg.TokenCachePath())
	}
	log.Debug(ctx, "token cache ready",
		logger.String("backend", cfg.TokenCache),
		logger.String("path", cfg.TokenCachePath()),
	)

	p.Session = credential.NewSession(p.Cache, p.Client,
		credential.WithTTL(cfg.TokenTTL),
		credential.WithLogger(log.Named("credential")),
	)
	p.Fetcher = fetcher.New(p.Client,
		fetcher.WithEntrantDelay(cfg.EntrantDelay),
		fetcher.WithRetryDelay(cfg.RetryDelay),
		fetcher.WithMaxRetries(cfg.MaxRetries),
		fetcher.WithLogger(log.Named("fetcher")),
	)
	p.Store = repository.NewJSONStore(cfg.DataDir, repository.WithLogger(log.Named("repository")))
	return p, nil
}

// NewFromConfig builds the pipeline and a Service over it. The caller owns
// the returned Pipeline and must Close it.
func NewFromConfig(ctx context.Context, cfg *config.Config, opts ...Option) (*Service, *Pipeline, error) {
	p, err := BuildPipeline(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	all := append([]Option{
		WithLeagues(cfg.LeagueList()...),
		WithLookup(model.Lookup(cfg.Lookup)),
		WithCredentials(cfg.Credentials()),
	}, p.Options()...)
	all = append(all, opts...)
	return New(all...), p, nil
}
