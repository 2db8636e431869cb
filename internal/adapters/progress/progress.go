// Package progress carries free-text status updates from a running sync to
// whoever is watching it.
package progress

import (
	"context"
	"sync"
	"time"

	"github.com/okian/pitwall/pkg/logger"
)

// Reporter receives status text. Implementations must not block for long;
// the fetch loop calls them inline.
type Reporter interface {
	SetStatus(ctx context.Context, text string)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(ctx context.Context, text string)

// SetStatus implements Reporter.
func (f ReporterFunc) SetStatus(ctx context.Context, text string) { f(ctx, text) }

// Discard drops every update.
var Discard Reporter = ReporterFunc(func(context.Context, string) {})

// LogReporter writes each update as a debug log line.
type LogReporter struct {
	Logger logger.Logger
}

// SetStatus implements Reporter.
func (r LogReporter) SetStatus(ctx context.Context, text string) {
	l := r.Logger
	if l == nil {
		l = logger.Get()
	}
	l.Debug(ctx, "progress", logger.String("status", text))
}

// Multi fans an update out to several reporters in order.
func Multi(reporters ...Reporter) Reporter {
	var rs []Reporter
	for _, r := range reporters {
		if r != nil {
			rs = append(rs, r)
		}
	}
	return ReporterFunc(func(ctx context.Context, text string) {
		for _, r := range rs {
			r.SetStatus(ctx, text)
		}
	})
}

// Status is the latest update seen for a key.
type Status struct {
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

// Board remembers the latest status per key. It is safe for concurrent use.
type Board struct {
	mu     sync.RWMutex
	status map[string]Status
	now    func() time.Time
}

// NewBoard creates an empty board.
func NewBoard() *Board {
	return &Board{status: make(map[string]Status), now: time.Now}
}

// Reporter returns a Reporter that writes under key.
func (b *Board) Reporter(key string) Reporter {
	return ReporterFunc(func(_ context.Context, text string) {
		b.Set(key, text)
	})
}

// Set records text as the latest status of key.
func (b *Board) Set(key, text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.status[key] = Status{Text: text, At: b.now()}
}

// Get returns the latest status of key.
func (b *Board) Get(key string) (Status, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	s, ok := b.status[key]
	return s, ok
}
