// File: internal/blacklist/blacklist_test.go
package blacklist

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kevinhagel/northstar-funding-sub000/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	mu      sync.Mutex
	calls   int32
	names   map[string]bool
	err     error
	delay   time.Duration
}

func (f *fakeStore) IsDomainBlacklisted(ctx context.Context, name string) (bool, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.err != nil {
		return false, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.names[name], nil
}

func TestIsBlacklistedCachesResultAcrossCalls(t *testing.T) {
	store := &fakeStore{names: map[string]bool{"scam-grants.example": true}}
	c := New(DefaultConfig(), store, logging.NewSimpleLogger())

	got, err := c.IsBlacklisted(context.Background(), "scam-grants.example")
	require.NoError(t, err)
	assert.True(t, got)

	got, err = c.IsBlacklisted(context.Background(), "scam-grants.example")
	require.NoError(t, err)
	assert.True(t, got)
	assert.Equal(t, int32(1), atomic.LoadInt32(&store.calls), "second lookup must be served from cache")
}

func TestIsBlacklistedMissingFromStoreCachedAsFalse(t *testing.T) {
	store := &fakeStore{names: map[string]bool{}}
	c := New(DefaultConfig(), store, logging.NewSimpleLogger())

	got, err := c.IsBlacklisted(context.Background(), "unknown-foundation.example")
	require.NoError(t, err)
	assert.False(t, got)
}

func TestIsBlacklistedNormalizesWWWAndCase(t *testing.T) {
	store := &fakeStore{names: map[string]bool{"example.org": true}}
	c := New(DefaultConfig(), store, logging.NewSimpleLogger())

	got, err := c.IsBlacklisted(context.Background(), "WWW.Example.ORG")
	require.NoError(t, err)
	assert.True(t, got)
}

func TestIsBlacklistedStoreFailureIsLoggedNotTreatedAsFalse(t *testing.T) {
	store := &fakeStore{err: errors.New("connection refused")}
	c := New(DefaultConfig(), store, logging.NewSimpleLogger())

	_, err := c.IsBlacklisted(context.Background(), "example.org")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBlacklistCacheUnavailable)
}

func TestInvalidateForcesStoreLookupOnNextCall(t *testing.T) {
	store := &fakeStore{names: map[string]bool{"example.org": false}}
	c := New(DefaultConfig(), store, logging.NewSimpleLogger())

	_, err := c.IsBlacklisted(context.Background(), "example.org")
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&store.calls))

	store.mu.Lock()
	store.names["example.org"] = true
	store.mu.Unlock()
	c.Invalidate("example.org")

	got, err := c.IsBlacklisted(context.Background(), "example.org")
	require.NoError(t, err)
	assert.True(t, got)
	assert.Equal(t, int32(2), atomic.LoadInt32(&store.calls))
}

func TestConcurrentColdLookupsOnlyHitStoreOnce(t *testing.T) {
	store := &fakeStore{names: map[string]bool{"example.org": true}, delay: 20 * time.Millisecond}
	c := New(DefaultConfig(), store, logging.NewSimpleLogger())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = c.IsBlacklisted(context.Background(), "example.org")
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&store.calls), "concurrent cold lookups for the same key must collapse into one store call")
}

func TestBatchOf25ChecksUnderHundredMillis(t *testing.T) {
	store := &fakeStore{names: map[string]bool{"example.org": true}}
	c := New(DefaultConfig(), store, logging.NewSimpleLogger())

	_, err := c.IsBlacklisted(context.Background(), "example.org")
	require.NoError(t, err)

	start := time.Now()
	for i := 0; i < 25; i++ {
		_, err := c.IsBlacklisted(context.Background(), "example.org")
		require.NoError(t, err)
	}
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}
