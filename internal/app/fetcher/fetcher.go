// Package fetcher crawls one fantasy league: roster first, then each
// entrant's latest picks, one at a time, with retry sweeps for entrants that
// hit transient failures.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/okian/pitwall/internal/adapters/fantasy"
	"github.com/okian/pitwall/internal/adapters/mq/queue"
	"github.com/okian/pitwall/internal/adapters/mq/worker"
	"github.com/okian/pitwall/internal/adapters/progress"
	"github.com/okian/pitwall/internal/domain/model"
	"github.com/okian/pitwall/pkg/logger"
	"github.com/okian/pitwall/pkg/metrics"
)

const (
	defaultEntrantDelay = time.Second
	defaultRetryDelay   = 5 * time.Second
	defaultMaxRetries   = 5
)

// API is the subset of the fantasy client the fetcher needs.
type API interface {
	League(ctx context.Context, token, leagueID string) (*fantasy.League, error)
	User(ctx context.Context, token, userID string) (*fantasy.User, error)
	PickedTeam(ctx context.Context, token, teamID string) (*fantasy.PickedTeam, error)
}

// Fetcher retrieves league rosters and entrant picks.
type Fetcher struct {
	api          API
	entrantDelay time.Duration
	retryDelay   time.Duration
	maxRetries   int
	queueCap     int
	sleep        func(ctx context.Context, d time.Duration) error
	logger       logger.Logger
}

// Result is the outcome of one league crawl.
type Result struct {
	RunID  string
	League model.League
	// Entrants holds every non-failed entrant in roster order.
	Entrants []model.Entrant
	Details  map[string]model.Entrant
	// Failed holds entrants that exhausted their retries.
	Failed  []model.Entrant
	Ignored []string
}

// New creates a fetcher over api.
func New(api API, opts ...Option) *Fetcher {
	f := &Fetcher{
		api:          api,
		entrantDelay: defaultEntrantDelay,
		retryDelay:   defaultRetryDelay,
		maxRetries:   defaultMaxRetries,
		sleep:        sleepContext,
		logger:       logger.Get().Named("fetcher"),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchLeague crawls league with token. A roster failure is fatal and wraps
// ErrLeagueLookup; per-entrant failures are retried in sweeps and surface in
// Result.Failed once the retry budget is spent.
func (f *Fetcher) FetchLeague(ctx context.Context, league model.League, token string, lookup model.Lookup, reporter progress.Reporter) (*Result, error) {
	if reporter == nil {
		reporter = progress.Discard
	}
	runID := uuid.NewString()
	log := f.logger.With(logger.String("run_id", runID), logger.String("league", league.Tag))

	roster, err := f.api.League(ctx, token, league.LeagueID)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		log.Error(ctx, "league lookup failed", logger.String("league_id", league.LeagueID), logger.Error(err))
		return nil, fmt.Errorf("%w: %s: %w", ErrLeagueLookup, league.LeagueID, err)
	}

	res := &Result{RunID: runID, League: league, Details: make(map[string]model.Entrant)}
	entrants := make([]*model.Entrant, 0, len(roster.Entrants))
	for _, row := range roster.Entrants {
		id := row.RemoteID()
		if league.Ignored(id) {
			res.Ignored = append(res.Ignored, id)
			continue
		}
		entrants = append(entrants, model.NewEntrant(id, row.TeamName, row.Points(), league))
	}
	log.Info(ctx, "league roster fetched",
		logger.Int("entrants", len(entrants)),
		logger.Int("ignored", len(res.Ignored)),
	)

	capacity := max(len(entrants), 1)
	if f.queueCap > 0 {
		capacity = f.queueCap
	}
	q := queue.NewInMemoryQueue(queue.WithCapacity(capacity))
	handler := worker.HandlerFunc(func(ctx context.Context, j queue.Job) error {
		return f.handle(ctx, log, token, lookup, reporter, j)
	})
	w := worker.NewSequential(q, handler,
		worker.WithDelay(f.entrantDelay),
		worker.WithLogger(log),
		worker.WithName("entrants"),
	)

	for _, e := range entrants {
		if err := enqueue(ctx, q, queue.Job{Entrant: e}); err != nil {
			return nil, err
		}
	}
	failed, err := w.Drain(ctx)
	if err != nil {
		return nil, err
	}

	for sweep := 1; len(failed) > 0 && (f.maxRetries == 0 || sweep <= f.maxRetries); sweep++ {
		metrics.RecordRetrySweep()
		log.Info(ctx, "retrying failed entrants",
			logger.Int("sweep", sweep),
			logger.Int("pending", len(failed)),
		)
		if err := f.sleep(ctx, f.retryDelay); err != nil {
			return nil, err
		}
		for _, j := range failed {
			if err := enqueue(ctx, q, queue.Job{Entrant: j.Entrant, Sweep: sweep}); err != nil {
				return nil, err
			}
		}
		if failed, err = w.Drain(ctx); err != nil {
			return nil, err
		}
	}

	for _, j := range failed {
		j.Entrant.Status = model.StatusFailed
		log.Warn(ctx, "entrant failed after retries",
			logger.String("entrant", j.Entrant.ID),
			logger.Int("attempts", j.Entrant.Attempts),
		)
	}

	for _, e := range entrants {
		metrics.RecordEntrantOutcome(string(e.Status))
		if e.Status == model.StatusFailed {
			res.Failed = append(res.Failed, *e)
			continue
		}
		res.Entrants = append(res.Entrants, *e)
		res.Details[e.ID] = *e
	}
	return res, nil
}

func (f *Fetcher) handle(ctx context.Context, log logger.Logger, token string, lookup model.Lookup, reporter progress.Reporter, j queue.Job) error {
	e := j.Entrant
	e.Attempts++

	status := "Updating: " + e.Name
	if j.Sweep > 0 {
		status += fmt.Sprintf(" (retry %d)", j.Sweep)
	}
	reporter.SetStatus(ctx, status)

	if err := f.fetchEntrant(ctx, log, token, lookup, e); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		e.Retry = true
		metrics.RecordEntrantOutcome("retry")
		log.Warn(ctx, "entrant fetch failed",
			logger.String("entrant", e.ID),
			logger.Int("attempt", e.Attempts),
			logger.Error(err),
		)
		return err
	}
	e.Retry = false
	return nil
}

func (f *Fetcher) fetchEntrant(ctx context.Context, log logger.Logger, token string, lookup model.Lookup, e *model.Entrant) error {
	user, err := f.api.User(ctx, token, e.ID)
	if structural(err) {
		f.noPicks(ctx, log, e, err)
		return nil
	}
	if err != nil {
		return err
	}
	pickID, err := user.LatestPick()
	if structural(err) {
		f.noPicks(ctx, log, e, err)
		return nil
	}
	if err != nil {
		return err
	}

	team, err := f.api.PickedTeam(ctx, token, pickID)
	if structural(err) {
		f.noPicks(ctx, log, e, err)
		return nil
	}
	if err != nil {
		return err
	}
	e.Picks = buildPicks(team, lookup)
	e.Status = model.StatusComplete
	return nil
}

// structural reports whether err means the remote answered successfully but
// without the data needed for picks. Those entrants are kept, not retried.
func structural(err error) bool {
	return errors.Is(err, fantasy.ErrNoHistoricalPicks) || errors.Is(err, fantasy.ErrMalformedResponse)
}

func (f *Fetcher) noPicks(ctx context.Context, log logger.Logger, e *model.Entrant, err error) {
	e.Picks = model.Picks{Drivers: []model.Pick{}}
	e.Status = model.StatusNoPicks
	log.Warn(ctx, "missing historical team info",
		logger.String("entrant", e.ID),
		logger.String("name", e.Name),
		logger.Error(err),
	)
}

func enqueue(ctx context.Context, q queue.Queue, j queue.Job) error {
	if q.Enqueue(ctx, j) {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return fmt.Errorf("%w: entrant %s", ErrEnqueue, j.Entrant.ID)
}

// buildPicks partitions a picked team into its constructor and drivers and
// resolves the boosted players. Drivers keep API order.
func buildPicks(team *fantasy.PickedTeam, lookup model.Lookup) model.Picks {
	picks := model.Picks{Drivers: make([]model.Pick, 0, len(team.PickedPlayers))}
	for _, pp := range team.PickedPlayers {
		id := pp.Player.RemoteID()
		pick := model.Pick{
			ID:     id,
			Name:   lookup.NameOr(id, pp.Player.DisplayName),
			Price:  pp.Player.Price,
			Picked: pp.Player.PickedPercentage,
			Score:  pp.Score,
		}
		if !pp.Player.IsDriver() {
			if picks.Team == nil {
				picks.Team = &pick
			}
			continue
		}
		picks.Drivers = append(picks.Drivers, pick)
		picks.RaceScore += pp.Score
	}

	if team.BoostedPlayerID != nil {
		id := strconv.FormatInt(*team.BoostedPlayerID, 10)
		picks.Turbo = lookup.Resolve(id)
		for i := range picks.Drivers {
			if picks.Drivers[i].ID == id {
				picks.Drivers[i].Turbo = true
			}
		}
	}
	if team.MegaBoostedPlayerID != nil {
		id := strconv.FormatInt(*team.MegaBoostedPlayerID, 10)
		picks.Mega = lookup.Resolve(id)
		for i := range picks.Drivers {
			if picks.Drivers[i].ID == id {
				picks.Drivers[i].Mega = true
			}
		}
	}
	return picks
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
