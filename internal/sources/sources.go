// Package sources defines the platform adapter interface and the adapters
// shipped with the binary. The pipeline depends only on the Source
// interface; everything platform-specific (endpoints, markup, feeds)
// stays behind it.
package sources

import (
	"context"
	"math/rand"
	"net/http"
	"time"

	"internhunt-go/internal/models"
)

// Source is one external internship platform.
type Source interface {
	// Name identifies the platform in outcomes, metrics and logs.
	Name() string
	// RateLimit is the minimum delay between requests to this platform.
	RateLimit() time.Duration
	// Fetch returns the platform's listings matching the criteria. A
	// malformed individual listing is skipped, not an error; errors mean
	// the fetch as a whole failed.
	Fetch(ctx context.Context, criteria models.UserCriteria) ([]models.RawListing, error)
}

// Config holds per-source settings.
type Config struct {
	Enabled   bool          `json:"enabled"`
	RateLimit time.Duration `json:"rate_limit"`
}

// Registry manages the registered sources.
type Registry struct {
	sources []Source
	configs map[string]Config
}

// NewRegistry creates an empty source registry.
func NewRegistry() *Registry {
	return &Registry{configs: make(map[string]Config)}
}

// Register adds a source. Registration order is preserved.
func (r *Registry) Register(source Source, config Config) {
	r.sources = append(r.sources, source)
	r.configs[source.Name()] = config
}

// Enabled returns the enabled sources in registration order.
func (r *Registry) Enabled() []Source {
	enabled := make([]Source, 0, len(r.sources))
	for _, source := range r.sources {
		if r.configs[source.Name()].Enabled {
			enabled = append(enabled, source)
		}
	}
	return enabled
}

// All returns every registered source in registration order.
func (r *Registry) All() []Source {
	return r.sources
}

// GetConfig returns the configuration for a source.
func (r *Registry) GetConfig(name string) (Config, bool) {
	config, ok := r.configs[name]
	return config, ok
}

// Browser User-Agent strings rotated across requests so adapters look like
// ordinary traffic.
var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:121.0) Gecko/20100101 Firefox/121.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1 Safari/605.1.15",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
}

func randomUserAgent() string {
	return userAgents[rand.Intn(len(userAgents))]
}

// newRequest builds a GET request with a rotated User-Agent.
func newRequest(ctx context.Context, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", randomUserAgent())
	return req, nil
}
