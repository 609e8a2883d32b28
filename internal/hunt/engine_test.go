package hunt_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"internhunt-go/internal/hunt"
	"internhunt-go/internal/models"
	"internhunt-go/internal/sources"
	"internhunt-go/internal/storage"
)

func engineConfig() hunt.Config {
	return hunt.Config{
		Workers:        4,
		RequestTimeout: time.Second,
		MaxRetries:     0,
		BackoffUnit:    time.Millisecond,
	}
}

func registryOf(srcs ...sources.Source) *sources.Registry {
	registry := sources.NewRegistry()
	for _, src := range srcs {
		registry.Register(src, sources.Config{Enabled: true})
	}
	return registry
}

func pythonCriteria(t *testing.T, resultCap int) models.UserCriteria {
	t.Helper()
	c, err := models.NewUserCriteria(models.UserCriteria{
		WantedKeywords: []string{"python"},
		ResultCap:      resultCap,
	})
	if err != nil {
		t.Fatalf("NewUserCriteria failed: %v", err)
	}
	return c
}

func okSource(name string, listings ...models.RawListing) *stubSource {
	return &stubSource{name: name, responses: []stubResponse{{listings: listings}}}
}

func failingSource(name string) *stubSource {
	return &stubSource{name: name, responses: []stubResponse{{err: errors.New("connection refused")}}}
}

// ── error isolation ────────────────────────────────────────────────────────

func TestRun_FailedSourceIsIsolated(t *testing.T) {
	registry := registryOf(
		okSource("alpha", models.RawListing{Title: "Python Intern", Company: "Acme"}),
		failingSource("beta"),
		okSource("gamma", models.RawListing{Title: "Python Developer Intern", Company: "Globex"}),
	)
	engine := hunt.NewEngine(registry, nil, engineConfig(), discard)

	results, outcomes, err := engine.Run(context.Background(), pythonCriteria(t, 10))
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if len(results) != 2 {
		t.Errorf("got %d results, want 2 from the healthy sources", len(results))
	}
	if len(outcomes) != 3 {
		t.Fatalf("got %d outcomes, want one per enabled source", len(outcomes))
	}

	byName := make(map[string]models.SourceOutcome, len(outcomes))
	for _, o := range outcomes {
		byName[o.Source] = o
	}
	if byName["beta"].OK {
		t.Error("failed source reported OK")
	}
	if byName["beta"].Err == "" {
		t.Error("failed source outcome must carry the error text")
	}
	if !byName["alpha"].OK || !byName["gamma"].OK {
		t.Error("healthy sources must report OK despite a sibling failure")
	}
}

func TestRun_AllSourcesFailingIsEmptyNotError(t *testing.T) {
	registry := registryOf(failingSource("alpha"), failingSource("beta"))
	engine := hunt.NewEngine(registry, nil, engineConfig(), discard)

	results, outcomes, err := engine.Run(context.Background(), pythonCriteria(t, 10))
	if err != nil {
		t.Fatalf("Run returned error: %v (all-fail is an empty result, not a failure)", err)
	}
	if len(results) != 0 {
		t.Errorf("got %d results, want 0", len(results))
	}
	if len(outcomes) != 2 {
		t.Errorf("got %d outcomes, want 2", len(outcomes))
	}
}

func TestRun_NoEnabledSources(t *testing.T) {
	registry := sources.NewRegistry()
	registry.Register(okSource("dormant"), sources.Config{Enabled: false})
	engine := hunt.NewEngine(registry, nil, engineConfig(), discard)

	if _, _, err := engine.Run(context.Background(), pythonCriteria(t, 10)); err == nil {
		t.Error("Run with no enabled sources should fail")
	}
}

func TestRun_RegistryRateLimitOverridesSource(t *testing.T) {
	// The adapter advertises an unusable delay; the registry config tunes
	// it down. A retry forces a second rate-limit wait, so an ignored
	// override would stall the run for the full ten seconds.
	src := &stubSource{
		name:      "tuned",
		rateLimit: 10 * time.Second,
		responses: []stubResponse{
			{err: timeoutError{}},
			{listings: []models.RawListing{{Title: "Python Intern", Company: "Acme"}}},
		},
	}
	registry := sources.NewRegistry()
	registry.Register(src, sources.Config{Enabled: true, RateLimit: time.Millisecond})

	cfg := engineConfig()
	cfg.MaxRetries = 1
	engine := hunt.NewEngine(registry, nil, cfg, discard)

	start := time.Now()
	results, _, err := engine.Run(context.Background(), pythonCriteria(t, 10))
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("got %d results, want 1", len(results))
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("run took %v; the configured rate limit was not applied", elapsed)
	}
}

// ── ranking pipeline ───────────────────────────────────────────────────────

func stipendListing(title, company string, stipend int) models.RawListing {
	return models.RawListing{Title: title, Company: company, Stipend: &stipend}
}

func TestRun_RanksAcrossSources(t *testing.T) {
	registry := registryOf(
		okSource("alpha",
			stipendListing("Python Intern", "Low Corp", 5000),
			stipendListing("Python Intern", "High Corp", 25000),
		),
		okSource("beta",
			stipendListing("Python Intern", "Mid Corp", 15000),
		),
	)
	engine := hunt.NewEngine(registry, nil, engineConfig(), discard)

	results, _, err := engine.Run(context.Background(), pythonCriteria(t, 10))
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Fatalf("results out of order at %d: %v after %v", i, results[i].Score, results[i-1].Score)
		}
	}
	if results[0].Listing.Company != "High Corp" {
		t.Errorf("top result = %q, want the highest-stipend listing", results[0].Listing.Company)
	}
}

func TestRun_DeduplicatesAcrossSources(t *testing.T) {
	registry := registryOf(
		okSource("alpha", stipendListing("Python Intern", "Acme", 10000)),
		okSource("beta", stipendListing("Python  Intern!", "ACME", 20000)),
	)
	engine := hunt.NewEngine(registry, nil, engineConfig(), discard)

	results, _, err := engine.Run(context.Background(), pythonCriteria(t, 10))
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1 after cross-source dedup", len(results))
	}
	if results[0].Listing.Stipend == nil || *results[0].Listing.Stipend != 20000 {
		t.Error("the higher-scoring duplicate should survive")
	}

	metrics := engine.GetMetrics()
	if metrics.TotalDuplicates != 1 {
		t.Errorf("TotalDuplicates = %d, want 1", metrics.TotalDuplicates)
	}
}

func TestRun_CapsResults(t *testing.T) {
	listings := make([]models.RawListing, 0, 8)
	for _, company := range []string{"A", "B", "C", "D", "E", "F", "G", "H"} {
		listings = append(listings, models.RawListing{Title: "Python Intern", Company: company})
	}
	registry := registryOf(okSource("alpha", listings...))
	engine := hunt.NewEngine(registry, nil, engineConfig(), discard)

	results, _, err := engine.Run(context.Background(), pythonCriteria(t, 3))
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(results) != 3 {
		t.Errorf("got %d results, want the cap of 3", len(results))
	}
}

func TestRun_FiltersByPostAge(t *testing.T) {
	registry := registryOf(okSource("alpha",
		models.RawListing{Title: "Python Intern", Company: "Fresh", PostedDateText: "2 days ago"},
		models.RawListing{Title: "Python Intern", Company: "Stale", PostedDateText: "3 weeks ago"},
	))
	engine := hunt.NewEngine(registry, nil, engineConfig(), discard)

	criteria, err := models.NewUserCriteria(models.UserCriteria{
		WantedKeywords: []string{"python"},
		MaxPostAgeDays: 7,
		ResultCap:      10,
	})
	if err != nil {
		t.Fatalf("NewUserCriteria failed: %v", err)
	}

	results, _, runErr := engine.Run(context.Background(), criteria)
	if runErr != nil {
		t.Fatalf("Run returned error: %v", runErr)
	}
	if len(results) != 1 || results[0].Listing.Company != "Fresh" {
		t.Errorf("expected only the fresh listing, got %d results", len(results))
	}
}

// ── archiving and metrics ──────────────────────────────────────────────────

type captureStore struct {
	saved []models.ScoredListing
	err   error
}

func (s *captureStore) SaveResults(results []models.ScoredListing) error {
	s.saved = append(s.saved, results...)
	return s.err
}

var _ storage.Store = (*captureStore)(nil)

func TestRun_ArchivesResults(t *testing.T) {
	store := &captureStore{}
	registry := registryOf(okSource("alpha", models.RawListing{Title: "Python Intern", Company: "Acme"}))
	engine := hunt.NewEngine(registry, store, engineConfig(), discard)

	if _, _, err := engine.Run(context.Background(), pythonCriteria(t, 10)); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(store.saved) != 1 {
		t.Errorf("store received %d results, want 1", len(store.saved))
	}
}

func TestRun_ArchiveFailureDoesNotFailRun(t *testing.T) {
	store := &captureStore{err: errors.New("supabase unreachable")}
	registry := registryOf(okSource("alpha", models.RawListing{Title: "Python Intern", Company: "Acme"}))
	engine := hunt.NewEngine(registry, store, engineConfig(), discard)

	results, _, err := engine.Run(context.Background(), pythonCriteria(t, 10))
	if err != nil {
		t.Fatalf("Run returned error: %v (archiving is best-effort)", err)
	}
	if len(results) != 1 {
		t.Errorf("got %d results, want 1", len(results))
	}
}

func TestRun_RecordsMetrics(t *testing.T) {
	registry := registryOf(
		okSource("alpha", models.RawListing{Title: "Python Intern", Company: "Acme"}),
		failingSource("beta"),
	)
	engine := hunt.NewEngine(registry, nil, engineConfig(), discard)

	if _, _, err := engine.Run(context.Background(), pythonCriteria(t, 10)); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	metrics := engine.GetMetrics()
	if metrics.TotalFetched != 1 {
		t.Errorf("TotalFetched = %d, want 1", metrics.TotalFetched)
	}
	if metrics.TotalKept != 1 {
		t.Errorf("TotalKept = %d, want 1", metrics.TotalKept)
	}
	if metrics.TotalErrors != 1 {
		t.Errorf("TotalErrors = %d, want 1", metrics.TotalErrors)
	}
	if sm, ok := metrics.SourcePerformance["beta"]; !ok || sm.Errors != 1 {
		t.Errorf("SourcePerformance[beta] = %+v, want one recorded error", metrics.SourcePerformance["beta"])
	}
}
