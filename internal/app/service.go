// Package service wires the league sync pipeline and serves the queries the
// chat gateway needs over the persisted snapshots.
package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/okian/pitwall/internal/adapters/progress"
	"github.com/okian/pitwall/internal/adapters/repository"
	"github.com/okian/pitwall/internal/app/fetcher"
	"github.com/okian/pitwall/internal/domain/model"
	"github.com/okian/pitwall/internal/domain/standings"
	"github.com/okian/pitwall/pkg/logger"
	"github.com/okian/pitwall/pkg/metrics"
)

// Final status texts shown once a run ends.
const (
	StatusUpdated = "Fantasy details updated."
	StatusFailed  = "Fantasy update failed."
)

// TokenSource yields a fresh session token.
type TokenSource interface {
	Token(ctx context.Context, creds model.Credentials) (string, error)
}

// LeagueFetcher crawls a league.
type LeagueFetcher interface {
	FetchLeague(ctx context.Context, league model.League, token string, lookup model.Lookup, reporter progress.Reporter) (*fetcher.Result, error)
}

// Service runs league syncs and answers snapshot queries.
type Service struct {
	mu sync.RWMutex

	leagues map[string]model.League
	lookup  model.Lookup
	creds   model.Credentials

	session TokenSource
	fetcher LeagueFetcher
	store   repository.Store
	board   *progress.Board

	running map[string]bool
	lastRun map[string]*model.RunReport

	started bool
	baseCtx context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	logger logger.Logger
}

// New constructs a Service. Session, fetcher and store must be supplied
// through options before Update is called.
func New(opts ...Option) *Service {
	s := &Service{
		leagues: make(map[string]model.League),
		lookup:  model.Lookup{},
		board:   progress.NewBoard(),
		running: make(map[string]bool),
		lastRun: make(map[string]*model.RunReport),
		logger:  logger.Get().Named("service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start enables background runs.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	s.baseCtx, s.cancel = context.WithCancel(context.WithoutCancel(ctx))
	s.started = true
	s.logger.Info(ctx, "fantasy sync service started", logger.Int("leagues", len(s.leagues)))
	return nil
}

// Stop cancels background runs and waits for them to return.
func (s *Service) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.cancel()
	s.started = false
	s.mu.Unlock()

	s.wg.Wait()
	s.logger.Info(context.Background(), "fantasy sync service stopped")
}

// Leagues returns the registered leagues ordered by key.
func (s *Service) Leagues() []model.League {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.League, 0, len(s.leagues))
	for _, l := range s.leagues {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// League returns the league registered under key.
func (s *Service) League(key string) (model.League, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.leagues[key]
	if !ok {
		return model.League{}, fmt.Errorf("%w: %s", model.ErrUnknownLeague, key)
	}
	return l, nil
}

// Update runs one sync for the league under key and waits for it. reporter
// may be nil.
func (s *Service) Update(ctx context.Context, key string, reporter progress.Reporter) (*model.RunReport, error) {
	league, err := s.acquire(key)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, league, reporter)
}

// StartUpdate begins a sync in the background. It fails fast when the league
// is unknown or already running.
func (s *Service) StartUpdate(ctx context.Context, key string) error {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return ErrNotStarted
	}
	league, err := s.acquireLocked(key)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	base := s.baseCtx
	// Added under the lock so a concurrent Stop cannot reach wg.Wait first.
	s.wg.Add(1)
	s.mu.Unlock()

	s.logger.Info(ctx, "league update queued", logger.String("league", league.Tag))
	go func() {
		defer s.wg.Done()
		_, _ = s.run(base, league, nil)
	}()
	return nil
}

func (s *Service) acquire(key string) (model.League, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.acquireLocked(key)
}

// acquireLocked marks key as running. s.mu must be held.
func (s *Service) acquireLocked(key string) (model.League, error) {
	league, ok := s.leagues[key]
	if !ok {
		return model.League{}, fmt.Errorf("%w: %s", model.ErrUnknownLeague, key)
	}
	if s.creds.Empty() {
		return model.League{}, model.ErrMissingCredentials
	}
	if s.running[key] {
		return model.League{}, fmt.Errorf("%w: %s", model.ErrRunInProgress, key)
	}
	s.running[key] = true
	return league, nil
}

func (s *Service) release(key string, report *model.RunReport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.running, key)
	s.lastRun[key] = report
}

func (s *Service) run(ctx context.Context, league model.League, reporter progress.Reporter) (*model.RunReport, error) {
	report := &model.RunReport{Tag: league.Tag, StartedAt: time.Now()}
	log := s.logger.With(logger.String("league", league.Tag))
	rep := progress.Multi(s.board.Reporter(league.Key), progress.LogReporter{Logger: log}, reporter)

	metrics.AddRunsInFlight(1)
	defer metrics.AddRunsInFlight(-1)

	err := s.sync(ctx, league, rep, report)
	report.FinishedAt = time.Now()
	dur := report.FinishedAt.Sub(report.StartedAt)
	if err != nil {
		report.Error = err.Error()
		metrics.RecordRun("failure", dur)
		rep.SetStatus(ctx, StatusFailed)
		log.Error(ctx, "league update failed", logger.Error(err), logger.Duration("duration", dur))
	} else {
		metrics.RecordRun("success", dur)
		metrics.UpdateLastSuccess(league.Tag, report.FinishedAt)
		rep.SetStatus(ctx, StatusUpdated)
		log.Info(ctx, "league update finished",
			logger.String("run_id", report.RunID),
			logger.Int("entrants", report.Entrants),
			logger.Int("failed", len(report.Failed)),
			logger.Duration("duration", dur),
		)
	}
	s.release(league.Key, report)
	return report, err
}

func (s *Service) sync(ctx context.Context, league model.League, rep progress.Reporter, report *model.RunReport) error {
	if s.session == nil || s.fetcher == nil || s.store == nil {
		return ErrNotConfigured
	}
	token, err := s.session.Token(ctx, s.creds)
	if err != nil {
		return err
	}
	res, err := s.fetcher.FetchLeague(ctx, league, token, s.lookup, rep)
	if err != nil {
		return err
	}
	report.RunID = res.RunID
	report.Entrants = len(res.Entrants)
	report.Ignored = len(res.Ignored)
	for _, e := range res.Entrants {
		if e.Status == model.StatusNoPicks {
			report.NoPicks++
		}
	}
	for _, e := range res.Failed {
		report.Failed = append(report.Failed, e.ID)
	}
	return s.store.Persist(ctx, league.Tag, res.Entrants, res.Details)
}

// Standings returns the league table from the latest snapshot.
func (s *Service) Standings(ctx context.Context, key string) ([]standings.Row, error) {
	league, err := s.League(key)
	if err != nil {
		return nil, err
	}
	if s.store == nil {
		return nil, ErrNotConfigured
	}
	rows, err := s.store.Summary(ctx, league.Tag)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: %w", model.ErrNoSnapshot, err)
	}
	if err != nil {
		return nil, err
	}
	return standings.Rank(rows), nil
}

// Result returns the latest picks and totals of the entrant registered to
// accountID in the league under key.
func (s *Service) Result(ctx context.Context, key string, accountID int64) (standings.Result, error) {
	league, err := s.League(key)
	if err != nil {
		return standings.Result{}, err
	}
	remoteID, ok := league.RemoteID(accountID)
	if !ok {
		return standings.Result{}, fmt.Errorf("%w: account %d", model.ErrPlayerNotFound, accountID)
	}
	if s.store == nil {
		return standings.Result{}, ErrNotConfigured
	}
	details, err := s.store.Details(ctx, league.Tag)
	if errors.Is(err, repository.ErrNotFound) {
		return standings.Result{}, fmt.Errorf("%w: %w", model.ErrNoSnapshot, err)
	}
	if err != nil {
		return standings.Result{}, err
	}
	e, ok := details[remoteID]
	if !ok {
		return standings.Result{}, fmt.Errorf("%w: entrant %s", model.ErrPlayerNotFound, remoteID)
	}
	return standings.NewResult(e), nil
}

// Status reports the progress and last outcome of the league under key.
func (s *Service) Status(key string) (model.LeagueStatus, error) {
	league, err := s.League(key)
	if err != nil {
		return model.LeagueStatus{}, err
	}
	st := model.LeagueStatus{Key: league.Key, Tag: league.Tag}
	if p, ok := s.board.Get(key); ok {
		st.Progress = p.Text
		st.ProgressAt = p.At
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	st.Running = s.running[key]
	if r := s.lastRun[key]; r != nil {
		cp := *r
		st.LastRun = &cp
	}
	return st, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	running := make([]string, 0, len(s.running))
	for k := range s.running {
		running = append(running, k)
	}
	sort.Strings(running)

	return map[string]interface{}{
		"started":   s.started,
		"leagues":   len(s.leagues),
		"running":   running,
		"lastRuns":  len(s.lastRun),
		"lookupLen": len(s.lookup),
	}
}
