package services

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/trustsearch/internal/core/domain"
	"github.com/custodia-labs/trustsearch/internal/core/ports/driven"
	"github.com/custodia-labs/trustsearch/internal/core/ports/driving"
	"github.com/custodia-labs/trustsearch/internal/logger"
)

// Ensure AggregationService implements the interface.
var _ driving.AggregationService = (*AggregationService)(nil)

const (
	// DefaultWorkers bounds concurrent provider calls.
	DefaultWorkers = 6

	// DefaultProviderTimeout applies to providers that report no timeout.
	DefaultProviderTimeout = 15 * time.Second
)

// AggregationService runs the aggregation pipeline: provider fan-out,
// normalisation, scoring and sectioning.
type AggregationService struct {
	providers   []driven.Provider
	credentials atomic.Pointer[domain.Credentials]
	scorer      *Scorer
	sectioner   *Sectioner
	metrics     driven.Metrics
	workers     int
}

// AggregationOption configures an AggregationService.
type AggregationOption func(*AggregationService)

// WithWorkers bounds the number of providers called concurrently.
func WithWorkers(n int) AggregationOption {
	return func(s *AggregationService) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m driven.Metrics) AggregationOption {
	return func(s *AggregationService) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithScorer replaces the default scorer.
func WithScorer(scorer *Scorer) AggregationOption {
	return func(s *AggregationService) {
		s.scorer = scorer
	}
}

// WithSectioner replaces the default four-section layout.
func WithSectioner(sectioner *Sectioner) AggregationOption {
	return func(s *AggregationService) {
		s.sectioner = sectioner
	}
}

// NewAggregationService creates the pipeline over providers, called in the
// given order. Provider order decides which duplicate survives normalisation.
func NewAggregationService(
	providers []driven.Provider,
	creds domain.Credentials,
	opts ...AggregationOption,
) *AggregationService {
	s := &AggregationService{
		providers: providers,
		scorer:    NewScorer(),
		sectioner: NewSectioner(nil),
		metrics:   nopMetrics{},
		workers:   DefaultWorkers,
	}
	s.credentials.Store(&creds)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetCredentials replaces the credentials used by subsequent runs.
// Runs already in flight keep the value they started with.
func (s *AggregationService) SetCredentials(creds domain.Credentials) {
	s.credentials.Store(&creds)
}

// Credentials returns the credentials handed to providers.
func (s *AggregationService) Credentials() domain.Credentials {
	return *s.credentials.Load()
}

// Providers returns the configured providers in call order.
func (s *AggregationService) Providers() []driven.Provider {
	return s.providers
}

// Aggregate validates req, fans out to the enabled providers, and returns
// sectioned results. Provider failures never produce an error.
func (s *AggregationService) Aggregate(
	ctx context.Context, req domain.AggregateRequest,
) (domain.SectionedResults, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	log := logger.With("run", uuid.NewString())
	logger.Section("Aggregation")
	log.Debug("Query: %q, max per section: %d, web: %t, video: %t",
		req.TrimmedQuery(), req.MaxItemsPerSection, req.IncludeWeb, req.IncludeVideo)

	active := s.selectProviders(req)
	log.Debug("Providers enabled: %d of %d", len(active), len(s.providers))

	contributions := s.fanOut(ctx, log, active, req)

	var merged []domain.CandidateItem
	for _, items := range contributions {
		merged = append(merged, items...)
	}
	log.Debug("Merged: %d items", len(merged))

	normalized := Normalize(merged)
	log.Debug("Normalized: %d items (%d duplicates)", len(normalized), len(merged)-len(normalized))

	s.scorer.Score(normalized)

	results := s.sectioner.Section(normalized, req.MaxItemsPerSection)
	for _, sec := range results {
		log.Debug("Section %q: %d items", sec.Label, len(sec.Items))
	}

	elapsed := time.Since(start)
	s.metrics.ObserveAggregation(elapsed, results.TotalItems())
	log.Info("Aggregation finished in %s with %d items", elapsed.Round(time.Millisecond), results.TotalItems())

	return results, nil
}

// selectProviders keeps configured order and drops disabled groups.
func (s *AggregationService) selectProviders(req domain.AggregateRequest) []driven.Provider {
	active := make([]driven.Provider, 0, len(s.providers))
	for _, p := range s.providers {
		if p.Group().Enabled(req) {
			active = append(active, p)
		}
	}
	return active
}

// fanOut calls every provider concurrently and returns one slot per
// provider, in provider order, regardless of completion order.
func (s *AggregationService) fanOut(
	ctx context.Context, log *logger.Entry, providers []driven.Provider, req domain.AggregateRequest,
) [][]domain.CandidateItem {
	slots := make([][]domain.CandidateItem, len(providers))
	creds := s.Credentials()
	query := req.TrimmedQuery()

	var g errgroup.Group
	g.SetLimit(s.workers)
	for i, p := range providers {
		g.Go(func() error {
			slots[i] = s.call(ctx, log, p, driven.ProviderRequest{
				Query:       query,
				Limit:       p.Limit(),
				Credentials: creds,
			})
			return nil
		})
	}
	_ = g.Wait()

	return slots
}

// call runs one provider under its own deadline. The wait is bounded even
// when the provider ignores cancellation, and a panic yields no items.
func (s *AggregationService) call(
	ctx context.Context, log *logger.Entry, p driven.Provider, req driven.ProviderRequest,
) []domain.CandidateItem {
	start := time.Now()

	timeout := p.Timeout()
	if timeout <= 0 {
		timeout = DefaultProviderTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan []domain.CandidateItem, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Warn("Provider %s panicked: %v", p.Name(), r)
				done <- nil
			}
		}()
		done <- p.Search(ctx, req)
	}()

	var items []domain.CandidateItem
	select {
	case items = <-done:
	case <-ctx.Done():
		log.Warn("Provider %s abandoned after %s: %v", p.Name(), time.Since(start).Round(time.Millisecond), ctx.Err())
	}

	if req.Limit >= 0 && len(items) > req.Limit {
		items = items[:req.Limit]
	}

	elapsed := time.Since(start)
	s.metrics.ObserveProvider(p.Name(), elapsed, len(items))
	log.Debug("Provider %s: %d items in %s", p.Name(), len(items), elapsed.Round(time.Millisecond))

	return items
}

// nopMetrics discards every measurement.
type nopMetrics struct{}

func (nopMetrics) ObserveProvider(string, time.Duration, int) {}
func (nopMetrics) ObserveAggregation(time.Duration, int) {}
func (nopMetrics) CacheHit() {}
func (nopMetrics) CacheMiss() {}
