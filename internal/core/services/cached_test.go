package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/trustsearch/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/trustsearch/internal/core/domain"
	"github.com/custodia-labs/trustsearch/internal/core/ports/driven"
)

type movableClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *movableClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *movableClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newCachedPipeline(t *testing.T, p *fakeProvider) (*CachedAggregator, *movableClock, *recordingMetrics) {
	t.Helper()
	cache, err := memory.NewResultCache(16)
	require.NoError(t, err)

	clock := &movableClock{now: time.Unix(1_700_000_100, 0)}
	metrics := newRecordingMetrics()
	svc := NewAggregationService([]driven.Provider{p}, domain.Credentials{})
	cached := NewCachedAggregator(svc, cache, 300*time.Second,
		WithCacheClock(clock.Now), WithCacheMetrics(metrics))
	return cached, clock, metrics
}

func TestCachedAggregator_Coherence(t *testing.T) {
	p := newFakeProvider("wiki", item("CRISPR", "https://en.wikipedia.org/wiki/CRISPR", domain.KindEncyclopedia))
	cached, _, metrics := newCachedPipeline(t, p)
	req := domain.AggregateRequest{Query: "CRISPR", MaxItemsPerSection: 5}

	first, err := cached.Aggregate(context.Background(), req)
	require.NoError(t, err)
	second, err := cached.Aggregate(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), p.calls.Load())
	assert.Equal(t, 1, metrics.hits)
	assert.Equal(t, 1, metrics.misses)
}

func TestCachedAggregator_NormalizedQueryShares(t *testing.T) {
	p := newFakeProvider("wiki")
	cached, _, _ := newCachedPipeline(t, p)

	_, err := cached.Aggregate(context.Background(), domain.AggregateRequest{Query: "Gene  Editing", MaxItemsPerSection: 5})
	require.NoError(t, err)
	_, err = cached.Aggregate(context.Background(), domain.AggregateRequest{Query: " gene editing", MaxItemsPerSection: 5})
	require.NoError(t, err)

	assert.Equal(t, int32(1), p.calls.Load())
}

func TestCachedAggregator_KeyIncludesParameters(t *testing.T) {
	p := newFakeProvider("wiki")
	cached, _, _ := newCachedPipeline(t, p)
	ctx := context.Background()

	reqs := []domain.AggregateRequest{
		{Query: "topic", MaxItemsPerSection: 5},
		{Query: "topic", MaxItemsPerSection: 6},
		{Query: "topic", MaxItemsPerSection: 5, IncludeWeb: true},
		{Query: "topic", MaxItemsPerSection: 5, IncludeVideo: true},
	}
	for _, req := range reqs {
		_, err := cached.Aggregate(ctx, req)
		require.NoError(t, err)
	}

	assert.Equal(t, int32(len(reqs)), p.calls.Load())
}

func TestCachedAggregator_BucketAdvanceRecomputes(t *testing.T) {
	p := newFakeProvider("wiki")
	cached, clock, _ := newCachedPipeline(t, p)
	req := domain.AggregateRequest{Query: "topic", MaxItemsPerSection: 5}

	_, err := cached.Aggregate(context.Background(), req)
	require.NoError(t, err)

	clock.Advance(300 * time.Second)
	_, err = cached.Aggregate(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, int32(2), p.calls.Load())
}

func TestCachedAggregator_ReturnsCopies(t *testing.T) {
	p := newFakeProvider("wiki", item("CRISPR", "https://en.wikipedia.org/wiki/CRISPR", domain.KindEncyclopedia))
	cached, _, _ := newCachedPipeline(t, p)
	req := domain.AggregateRequest{Query: "CRISPR", MaxItemsPerSection: 5}

	first, err := cached.Aggregate(context.Background(), req)
	require.NoError(t, err)
	first[0].Items[0].Title = "mutated"
	first[0].Items[0].SetScore(0)

	second, err := cached.Aggregate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "CRISPR", second[0].Items[0].Title)
	assert.InDelta(t, 72, second[0].Items[0].ScoreValue(), 1e-9)
}

func TestCachedAggregator_ValidatesBeforeLookup(t *testing.T) {
	p := newFakeProvider("wiki")
	cached, _, metrics := newCachedPipeline(t, p)

	_, err := cached.Aggregate(context.Background(), domain.AggregateRequest{Query: "x", MaxItemsPerSection: 5})

	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Equal(t, 0, metrics.misses)
	assert.Equal(t, int32(0), p.calls.Load())
}

func TestCachedAggregator_ConcurrentMissesShareRun(t *testing.T) {
	p := newFakeProvider("slow", item("a", "https://a.example", domain.KindArticle))
	p.delay = 50 * time.Millisecond
	cached, _, _ := newCachedPipeline(t, p)
	req := domain.AggregateRequest{Query: "topic", MaxItemsPerSection: 5}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := cached.Aggregate(context.Background(), req)
			assert.NoError(t, err)
			assert.Equal(t, 1, out.TotalItems())
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), p.calls.Load())
}

func TestCachedAggregator_CancelledCallerDoesNotCutSharedRun(t *testing.T) {
	p := newFakeProvider("wiki", item("CRISPR", "https://en.wikipedia.org/wiki/CRISPR", domain.KindEncyclopedia))
	p.delay = 150 * time.Millisecond
	cached, _, _ := newCachedPipeline(t, p)
	req := domain.AggregateRequest{Query: "CRISPR", MaxItemsPerSection: 5}

	leaderCtx, cancel := context.WithCancel(context.Background())
	leaderErr := make(chan error, 1)
	go func() {
		_, err := cached.Aggregate(leaderCtx, req)
		leaderErr <- err
	}()

	time.Sleep(30 * time.Millisecond)
	followerOut := make(chan domain.SectionedResults, 1)
	go func() {
		out, err := cached.Aggregate(context.Background(), req)
		assert.NoError(t, err)
		followerOut <- out
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()

	assert.ErrorIs(t, <-leaderErr, context.Canceled)
	out := <-followerOut
	assert.Equal(t, 1, out.TotalItems())
	assert.Equal(t, int32(1), p.calls.Load())

	// The detached run completed, so it was stored.
	_, err := cached.Aggregate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int32(1), p.calls.Load())
}

func TestCachedAggregator_PurgeDropsInFlightRun(t *testing.T) {
	p := newFakeProvider("wiki", item("a", "https://a.example", domain.KindArticle))
	p.delay = 100 * time.Millisecond
	cached, _, _ := newCachedPipeline(t, p)
	req := domain.AggregateRequest{Query: "topic", MaxItemsPerSection: 5}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := cached.Aggregate(context.Background(), req)
		assert.NoError(t, err)
	}()

	time.Sleep(30 * time.Millisecond)
	cached.Purge()
	<-done

	_, err := cached.Aggregate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int32(2), p.calls.Load())
}

func TestCachedAggregator_BucketUsesFractionalWindow(t *testing.T) {
	cache, err := memory.NewResultCache(4)
	require.NoError(t, err)
	clock := &movableClock{now: time.Unix(0, 0)}
	cached := NewCachedAggregator(newFakeProviderService(), cache, 1500*time.Millisecond,
		WithCacheClock(clock.Now))

	clock.Advance(1200 * time.Millisecond)
	assert.Equal(t, int64(0), cached.Bucket())

	clock.Advance(400 * time.Millisecond)
	assert.Equal(t, int64(1), cached.Bucket())
}

func TestCachedAggregator_Purge(t *testing.T) {
	p := newFakeProvider("wiki")
	cached, _, _ := newCachedPipeline(t, p)
	req := domain.AggregateRequest{Query: "topic", MaxItemsPerSection: 5}

	_, _ = cached.Aggregate(context.Background(), req)
	cached.Purge()
	_, _ = cached.Aggregate(context.Background(), req)

	assert.Equal(t, int32(2), p.calls.Load())
}

func newFakeProviderService() *AggregationService {
	return NewAggregationService([]driven.Provider{newFakeProvider("wiki")}, domain.Credentials{})
}

func TestCacheKey(t *testing.T) {
	req := domain.AggregateRequest{Query: " CRISPR  Cas9 ", MaxItemsPerSection: 5, IncludeVideo: true}

	assert.Equal(t, `42|"crispr cas9"|5|false|true`, CacheKey(req, 42))
}
