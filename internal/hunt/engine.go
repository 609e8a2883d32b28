// Package hunt implements the listing acquisition and ranking pipeline:
// concurrent per-source fetching with error isolation, relevance scoring,
// identity deduplication and result capping.
package hunt

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"internhunt-go/internal/models"
	"internhunt-go/internal/scoring"
	"internhunt-go/internal/sources"
	"internhunt-go/internal/storage"
)

const defaultWorkers = 6

// Config bounds the pipeline's concurrency and request behavior.
type Config struct {
	Workers        int
	RequestTimeout time.Duration
	MaxRetries     int
	BackoffUnit    time.Duration
}

// Engine orchestrates a hunt run across all enabled sources.
type Engine struct {
	registry *sources.Registry
	store    storage.Store // optional archive sink, may be nil
	cfg      Config
	metrics  *Metrics
	logger   *log.Logger
}

// Metrics tracks pipeline performance across runs.
type Metrics struct {
	TotalFetched      int64
	TotalKept         int64
	TotalDuplicates   int64
	TotalErrors       int64
	RunDuration       time.Duration
	SourcePerformance map[string]SourceMetrics
	mu                sync.RWMutex
}

// SourceMetrics tracks performance per source.
type SourceMetrics struct {
	ListingsFetched int64
	Errors          int64
	ResponseTime    time.Duration
	LastFetched     time.Time
}

// NewEngine creates an engine over the given source registry. store may be
// nil to disable result archiving.
func NewEngine(registry *sources.Registry, store storage.Store, cfg Config, logger *log.Logger) *Engine {
	if cfg.Workers <= 0 {
		cfg.Workers = defaultWorkers
	}
	return &Engine{
		registry: registry,
		store:    store,
		cfg:      cfg,
		metrics:  &Metrics{SourcePerformance: make(map[string]SourceMetrics)},
		logger:   logger,
	}
}

// Run fetches from every enabled source concurrently, then scores,
// sorts, deduplicates and caps the aggregate. Individual source failures
// are isolated into their outcome; if every source fails the result is
// simply empty. The returned error is reserved for configuration defects
// such as an empty registry.
func (e *Engine) Run(ctx context.Context, criteria models.UserCriteria) ([]models.ScoredListing, []models.SourceOutcome, error) {
	start := time.Now()
	defer func() {
		e.metrics.mu.Lock()
		e.metrics.RunDuration = time.Since(start)
		e.metrics.mu.Unlock()
	}()

	enabled := e.registry.Enabled()
	if len(enabled) == 0 {
		return nil, nil, fmt.Errorf("no enabled sources")
	}

	outcomes := make(chan models.SourceOutcome, len(enabled))

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, e.cfg.Workers)

	for _, src := range enabled {
		wg.Add(1)
		go func(src sources.Source) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			// Each worker owns its fetcher, so rate-limit state is never
			// shared across sources. A registry-configured rate limit
			// overrides the adapter's default.
			fetcherCfg := FetcherConfig{
				RequestTimeout: e.cfg.RequestTimeout,
				MaxRetries:     e.cfg.MaxRetries,
				BackoffUnit:    e.cfg.BackoffUnit,
			}
			if c, ok := e.registry.GetConfig(src.Name()); ok && c.RateLimit > 0 {
				fetcherCfg.MinDelay = c.RateLimit
			}
			fetcher := NewFetcher(fetcherCfg, e.logger)

			result := fetcher.Fetch(ctx, src, criteria)
			outcomes <- result.Outcome(src.Name())
		}(src)
	}

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	// Only this goroutine touches the accumulator; workers hand their
	// results over by value through the channel.
	var all []models.RawListing
	summary := make([]models.SourceOutcome, 0, len(enabled))

	for outcome := range outcomes {
		summary = append(summary, outcome)
		e.recordOutcome(outcome)

		if !outcome.OK {
			e.logger.Printf("[engine] %s failed: %s", outcome.Source, outcome.Err)
			continue
		}
		e.logger.Printf("[engine] %s: %d listings in %v", outcome.Source, len(outcome.Listings), outcome.Duration)
		all = append(all, outcome.Listings...)
	}

	fresh := filterByPostAge(all, criteria.MaxPostAgeDays)
	if dropped := len(all) - len(fresh); dropped > 0 {
		e.logger.Printf("[engine] Dropped %d listings older than %d days", dropped, criteria.MaxPostAgeDays)
	}

	scored := scoring.NewScorer(criteria).ScoreAll(fresh)
	unique := Dedupe(scored)
	duplicates := len(scored) - len(unique)

	if len(unique) > criteria.ResultCap {
		unique = unique[:criteria.ResultCap]
	}

	e.metrics.mu.Lock()
	e.metrics.TotalFetched += int64(len(all))
	e.metrics.TotalKept += int64(len(unique))
	e.metrics.TotalDuplicates += int64(duplicates)
	e.metrics.mu.Unlock()

	e.logger.Printf("[engine] Run complete: %d fetched, %d scored, %d duplicates, %d returned in %v",
		len(all), len(scored), duplicates, len(unique), time.Since(start))

	if e.store != nil && len(unique) > 0 {
		if err := e.store.SaveResults(unique); err != nil {
			e.logger.Printf("[engine] Failed to archive results: %v", err)
		}
	}

	return unique, summary, nil
}

func (e *Engine) recordOutcome(outcome models.SourceOutcome) {
	e.metrics.mu.Lock()
	defer e.metrics.mu.Unlock()

	sm := e.metrics.SourcePerformance[outcome.Source]
	sm.ListingsFetched += int64(len(outcome.Listings))
	sm.ResponseTime = outcome.Duration
	sm.LastFetched = time.Now()
	if !outcome.OK {
		sm.Errors++
		e.metrics.TotalErrors++
	}
	e.metrics.SourcePerformance[outcome.Source] = sm
}

// GetMetrics returns a copy of the current metrics.
func (e *Engine) GetMetrics() Metrics {
	e.metrics.mu.RLock()
	defer e.metrics.mu.RUnlock()

	perf := make(map[string]SourceMetrics, len(e.metrics.SourcePerformance))
	for k, v := range e.metrics.SourcePerformance {
		perf[k] = v
	}

	return Metrics{
		TotalFetched:      e.metrics.TotalFetched,
		TotalKept:         e.metrics.TotalKept,
		TotalDuplicates:   e.metrics.TotalDuplicates,
		TotalErrors:       e.metrics.TotalErrors,
		RunDuration:       e.metrics.RunDuration,
		SourcePerformance: perf,
	}
}
