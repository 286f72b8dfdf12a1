// Package search owns the debounced search cycle: the quiet-period
// timer, the minimum-length guard, request dispatch, and the staleness
// guard that drops out-of-order responses.
package search

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/userpeek/userpeek/internal/errors"
	"github.com/userpeek/userpeek/internal/platform"
)

// Searcher is the slice of the platform client the controller needs.
// Satisfied by *platform.Client.
type Searcher interface {
	SearchUsers(ctx context.Context, keyword string, limit int) ([]platform.User, error)
}

// UpdateKind distinguishes the events the controller emits.
type UpdateKind int

const (
	// UpdateCleared: the query dropped below the minimum length;
	// results and error were cleared without a network call.
	UpdateCleared UpdateKind = iota
	// UpdateDispatched: the quiet period elapsed and a request is now
	// in flight for Query.
	UpdateDispatched
	// UpdateResults: the in-flight request succeeded.
	UpdateResults
	// UpdateError: the in-flight request failed.
	UpdateError
)

// Update is one event in the controller's output stream.
type Update struct {
	Kind  UpdateKind
	Seq   uint64
	Query string
	Users []platform.User
	Err   error
}

// Config configures a Controller.
type Config struct {
	// Window is the debounce quiet period.
	Window time.Duration
	// MinQueryLength is the minimum trimmed query length (in runes)
	// that triggers a search.
	MinQueryLength int
	// Limit is the fixed result limit per request.
	Limit int
}

// Controller debounces query edits into search requests. Each edit
// cancels and replaces the pending timer, so only the text present
// after the quiet period is ever sent. Every dispatch carries a
// monotonically increasing sequence number; a response whose sequence
// is no longer the latest issued is dropped, which closes the
// out-of-order response race. The controller never retries: the next
// edit-driven cycle is the only recovery path.
type Controller struct {
	searcher Searcher
	cfg      Config
	logger   *slog.Logger

	mu      sync.Mutex
	timer   *time.Timer
	seq     uint64 // Latest issued cycle, bumped on dispatch and clear.
	stopped bool
	updates chan Update
}

// NewController creates a controller. A nil logger falls back to
// slog.Default().
func NewController(searcher Searcher, cfg Config, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		searcher: searcher,
		cfg:      cfg,
		logger:   logger,
		updates:  make(chan Update, 32),
	}
}

// Updates returns the stream of controller events. Closed by Stop.
func (c *Controller) Updates() <-chan Update {
	return c.updates
}

// SetQuery registers an edit to the query text. Text shorter than the
// minimum length cancels any pending search and clears state
// immediately without contacting the network; otherwise the debounce
// timer restarts and a search for this text dispatches after the
// quiet period.
func (c *Controller) SetQuery(text string) {
	trimmed := strings.TrimSpace(text)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped {
		return
	}

	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}

	if len([]rune(trimmed)) < c.cfg.MinQueryLength {
		// Bump the sequence so any in-flight response is stale.
		c.seq++
		c.emitLocked(Update{Kind: UpdateCleared, Seq: c.seq, Query: trimmed})
		return
	}

	c.timer = time.AfterFunc(c.cfg.Window, func() {
		c.dispatch(trimmed)
	})
}

// dispatch issues the search request for text. Runs on the timer's
// goroutine after the quiet period.
func (c *Controller) dispatch(text string) {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}
	c.seq++
	seq := c.seq
	c.emitLocked(Update{Kind: UpdateDispatched, Seq: seq, Query: text})
	c.mu.Unlock()

	users, err := c.searcher.SearchUsers(context.Background(), text, c.cfg.Limit)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		return
	}
	if seq != c.seq {
		// A newer cycle was issued while this request was in flight.
		c.logger.Debug("stale_search_dropped",
			slog.Uint64("seq", seq),
			slog.Uint64("latest", c.seq),
			slog.String("query", text),
		)
		return
	}

	if err != nil {
		c.logger.Warn("search_failed",
			slog.Uint64("seq", seq),
			slog.String("query", text),
			slog.String("category", string(errors.GetCategory(err))),
			slog.String("error", err.Error()),
		)
		c.emitLocked(Update{Kind: UpdateError, Seq: seq, Query: text, Err: err})
		return
	}
	c.emitLocked(Update{Kind: UpdateResults, Seq: seq, Query: text, Users: users})
}

// emitLocked sends an update without blocking. The caller holds mu.
// A full buffer evicts the oldest update to make room, so the newest
// state always lands and a terminal results/error update can never be
// lost behind a stalled consumer.
func (c *Controller) emitLocked(u Update) {
	select {
	case c.updates <- u:
		return
	default:
	}

	// All senders hold mu, so after evicting one entry the send below
	// cannot race another producer for the freed slot.
	select {
	case old := <-c.updates:
		c.logger.Warn("search_update_evicted",
			slog.Uint64("seq", old.Seq),
			slog.Int("kind", int(old.Kind)),
		)
	default:
	}

	select {
	case c.updates <- u:
	default:
	}
}

// Stop cancels any pending timer and closes the update stream.
// Safe to call multiple times.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped {
		return
	}
	c.stopped = true

	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	close(c.updates)
}
