package services

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/custodia-labs/trustsearch/internal/core/domain"
	"github.com/custodia-labs/trustsearch/internal/core/ports/driven"
)

// fakeProvider returns canned items and counts its calls.
type fakeProvider struct {
	name    string
	group   driven.ProviderGroup
	limit   int
	timeout time.Duration
	items   []domain.CandidateItem
	delay   time.Duration
	panics  bool
	block   bool

	calls    atomic.Int32
	mu       sync.Mutex
	lastReq  driven.ProviderRequest
	finished chan struct{}
}

func newFakeProvider(name string, items ...domain.CandidateItem) *fakeProvider {
	return &fakeProvider{
		name:    name,
		group:   driven.GroupCore,
		limit:   8,
		timeout: time.Second,
		items:   items,
	}
}

func (f *fakeProvider) Name() string { return f.name }
func (f *fakeProvider) Group() driven.ProviderGroup { return f.group }
func (f *fakeProvider) Limit() int { return f.limit }
func (f *fakeProvider) Timeout() time.Duration { return f.timeout }

func (f *fakeProvider) Search(ctx context.Context, req driven.ProviderRequest) []domain.CandidateItem {
	f.calls.Add(1)
	f.mu.Lock()
	f.lastReq = req
	f.mu.Unlock()

	if f.panics {
		panic("boom")
	}
	if f.block {
		// Ignores ctx on purpose.
		<-f.finished
		return f.items
	}
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil
		}
	}
	out := make([]domain.CandidateItem, len(f.items))
	copy(out, f.items)
	return out
}

func (f *fakeProvider) request() driven.ProviderRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastReq
}

// recordingMetrics captures metric calls.
type recordingMetrics struct {
	mu           sync.Mutex
	providers    map[string]int
	aggregations int
	hits         int
	misses       int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{providers: make(map[string]int)}
}

func (m *recordingMetrics) ObserveProvider(provider string, _ time.Duration, items int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.providers[provider] = items
}

func (m *recordingMetrics) ObserveAggregation(time.Duration, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.aggregations++
}

func (m *recordingMetrics) CacheHit() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hits++
}

func (m *recordingMetrics) CacheMiss() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.misses++
}

func fixedClock(year int) func() time.Time {
	return func() time.Time {
		return time.Date(year, time.June, 1, 12, 0, 0, 0, time.UTC)
	}
}

func item(title, url string, kind domain.Kind) domain.CandidateItem {
	return domain.NewItem(title, url, "", "test", kind)
}
