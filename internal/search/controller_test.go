package search

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/userpeek/userpeek/internal/platform"
)

// fakeSearcher records requests and serves canned results. An optional
// block channel holds a request in flight until released, for testing
// the staleness guard.
type fakeSearcher struct {
	mu       sync.Mutex
	keywords []string
	users    []platform.User
	err      error
	block    chan struct{}
}

func (f *fakeSearcher) SearchUsers(_ context.Context, keyword string, limit int) ([]platform.User, error) {
	f.mu.Lock()
	f.keywords = append(f.keywords, keyword)
	block := f.block
	f.block = nil
	users, err := f.users, f.err
	f.mu.Unlock()

	if block != nil {
		<-block
	}
	return users, err
}

func (f *fakeSearcher) requests() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.keywords...)
}

func testController(s Searcher, window time.Duration) *Controller {
	return NewController(s, Config{
		Window:         window,
		MinQueryLength: 2,
		Limit:          10,
	}, nil)
}

// waitFor drains updates until one of the wanted kind arrives or the
// timeout elapses.
func waitFor(t *testing.T, c *Controller, kind UpdateKind) Update {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case u, ok := <-c.Updates():
			if !ok {
				t.Fatal("update stream closed while waiting")
			}
			if u.Kind == kind {
				return u
			}
		case <-deadline:
			t.Fatalf("timeout waiting for update kind %d", kind)
		}
	}
}

func TestSetQuery_ShortQueryClearsWithoutNetworkCall(t *testing.T) {
	searcher := &fakeSearcher{}
	c := testController(searcher, 10*time.Millisecond)
	defer c.Stop()

	c.SetQuery("r")

	u := waitFor(t, c, UpdateCleared)
	assert.Equal(t, "r", u.Query)

	// Give a would-be timer time to fire
	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, searcher.requests())
}

func TestSetQuery_EmptyAndWhitespaceClear(t *testing.T) {
	searcher := &fakeSearcher{}
	c := testController(searcher, 10*time.Millisecond)
	defer c.Stop()

	c.SetQuery("   ")
	waitFor(t, c, UpdateCleared)

	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, searcher.requests())
}

func TestSetQuery_DebouncesRapidEdits(t *testing.T) {
	searcher := &fakeSearcher{users: []platform.User{{ID: 1, Name: "roblox"}}}
	c := testController(searcher, 60*time.Millisecond)
	defer c.Stop()

	// N rapid edits within the window produce exactly one request,
	// for the final query value.
	for _, q := range []string{"ro", "rob", "robl", "roblo", "roblox"} {
		c.SetQuery(q)
		time.Sleep(5 * time.Millisecond)
	}

	u := waitFor(t, c, UpdateResults)
	assert.Equal(t, "roblox", u.Query)

	require.Equal(t, []string{"roblox"}, searcher.requests())
}

func TestDispatch_TrimsKeyword(t *testing.T) {
	searcher := &fakeSearcher{}
	c := testController(searcher, 5*time.Millisecond)
	defer c.Stop()

	c.SetQuery("  ro  ")
	waitFor(t, c, UpdateResults)

	assert.Equal(t, []string{"ro"}, searcher.requests())
}

func TestDispatch_SuccessCarriesResultsInOrder(t *testing.T) {
	users := []platform.User{
		{ID: 2, Name: "rob"},
		{ID: 1, Name: "roblox"},
	}
	searcher := &fakeSearcher{users: users}
	c := testController(searcher, 5*time.Millisecond)
	defer c.Stop()

	c.SetQuery("ro")

	dispatched := waitFor(t, c, UpdateDispatched)
	result := waitFor(t, c, UpdateResults)

	assert.Equal(t, dispatched.Seq, result.Seq)
	assert.Equal(t, users, result.Users)
}

func TestDispatch_FailureEmitsError(t *testing.T) {
	searcher := &fakeSearcher{err: fmt.Errorf("status 500")}
	c := testController(searcher, 5*time.Millisecond)
	defer c.Stop()

	c.SetQuery("ro")

	u := waitFor(t, c, UpdateError)
	require.Error(t, u.Err)
	assert.Equal(t, "status 500", u.Err.Error())
	assert.Empty(t, u.Users)

	// No retry: exactly one request was made
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, []string{"ro"}, searcher.requests())
}

func TestDispatch_StaleResponseIsDropped(t *testing.T) {
	release := make(chan struct{})
	searcher := &fakeSearcher{
		users: []platform.User{{ID: 1, Name: "old"}},
		block: release,
	}
	c := testController(searcher, 5*time.Millisecond)
	defer c.Stop()

	// First cycle dispatches and blocks in flight
	c.SetQuery("old")
	waitFor(t, c, UpdateDispatched)

	// Second cycle supersedes it while the first is still blocked
	c.SetQuery("new")
	waitFor(t, c, UpdateDispatched)

	// Release the first response; it must be dropped, and the second
	// cycle's results are the only ones emitted
	close(release)

	u := waitFor(t, c, UpdateResults)
	assert.Equal(t, "new", u.Query)

	// No further result updates from the stale cycle
	select {
	case extra, ok := <-c.Updates():
		if ok {
			assert.NotEqual(t, "old", extra.Query, "stale response surfaced")
		}
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSetQuery_ClearInvalidatesInFlightResponse(t *testing.T) {
	release := make(chan struct{})
	searcher := &fakeSearcher{
		users: []platform.User{{ID: 1, Name: "old"}},
		block: release,
	}
	c := testController(searcher, 5*time.Millisecond)
	defer c.Stop()

	c.SetQuery("old")
	waitFor(t, c, UpdateDispatched)

	// Query drops below the minimum while the request is in flight
	c.SetQuery("o")
	waitFor(t, c, UpdateCleared)

	close(release)

	// The stale result never surfaces
	select {
	case u, ok := <-c.Updates():
		if ok {
			assert.NotEqual(t, UpdateResults, u.Kind, "stale response surfaced after clear")
		}
	case <-time.After(100 * time.Millisecond):
	}
}

func TestEmit_FullBufferEvictsOldestNotNewest(t *testing.T) {
	c := testController(&fakeSearcher{}, time.Millisecond)
	defer c.Stop()

	// Overfill the buffer without a consumer. The last update is the
	// terminal one a stalled consumer must still see.
	c.mu.Lock()
	for i := uint64(1); i <= 40; i++ {
		kind := UpdateDispatched
		if i == 40 {
			kind = UpdateResults
		}
		c.emitLocked(Update{Kind: kind, Seq: i, Query: "roblox"})
	}
	c.mu.Unlock()

	var got []Update
	for len(c.updates) > 0 {
		got = append(got, <-c.updates)
	}

	// Oldest entries were evicted; the newest, including the terminal
	// results update, all landed.
	require.Len(t, got, 32)
	assert.Equal(t, uint64(9), got[0].Seq)
	last := got[len(got)-1]
	assert.Equal(t, UpdateResults, last.Kind)
	assert.Equal(t, uint64(40), last.Seq)
}

func TestStop_CancelsPendingTimer(t *testing.T) {
	searcher := &fakeSearcher{}
	c := testController(searcher, 20*time.Millisecond)

	c.SetQuery("ro")
	c.Stop()

	time.Sleep(60 * time.Millisecond)
	assert.Empty(t, searcher.requests())

	// Stream is closed
	_, ok := <-c.Updates()
	assert.False(t, ok)
}

func TestStop_IsIdempotent(t *testing.T) {
	c := testController(&fakeSearcher{}, time.Millisecond)
	c.Stop()
	c.Stop()
}
