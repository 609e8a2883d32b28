package hunt

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"time"

	"internhunt-go/internal/models"
	"internhunt-go/internal/sources"
)

// FetchStatus tags the terminal state of one source fetch. Expected
// failures are values, not errors: a timeout that exhausted its retries
// and a broken transport look different to the caller.
type FetchStatus int

const (
	FetchSuccess FetchStatus = iota
	FetchRetryableFailure
	FetchFatalFailure
)

func (s FetchStatus) String() string {
	switch s {
	case FetchSuccess:
		return "success"
	case FetchRetryableFailure:
		return "retries exhausted"
	case FetchFatalFailure:
		return "fatal"
	}
	return "unknown"
}

// FetchResult is the outcome of running one source to completion.
type FetchResult struct {
	Status   FetchStatus
	Listings []models.RawListing
	Err      error
	Duration time.Duration
}

// Outcome converts the result into the per-source summary handed to the
// caller.
func (r FetchResult) Outcome(source string) models.SourceOutcome {
	outcome := models.SourceOutcome{
		Source:   source,
		OK:       r.Status == FetchSuccess,
		Duration: r.Duration,
	}
	if r.Err != nil {
		outcome.Err = r.Err.Error()
	}
	if outcome.OK {
		outcome.Listings = r.Listings
	}
	return outcome
}

// FetcherConfig bounds a fetcher's request behavior.
type FetcherConfig struct {
	RequestTimeout time.Duration
	MaxRetries     int
	BackoffUnit    time.Duration // 1 unit = 2^0 backoff after the first timeout
	MinDelay       time.Duration // overrides the source's own rate limit when positive
}

// Fetcher executes one source's fetch with rate limiting, a request
// timeout, and retry with exponential backoff. Rate-limit state is
// per-instance, so concurrent fetchers never block each other. Fetch
// never panics to its caller.
type Fetcher struct {
	cfg         FetcherConfig
	lastRequest time.Time
	logger      *log.Logger
}

// NewFetcher creates a fetcher. A zero BackoffUnit defaults to one second.
func NewFetcher(cfg FetcherConfig, logger *log.Logger) *Fetcher {
	if cfg.BackoffUnit <= 0 {
		cfg.BackoffUnit = time.Second
	}
	return &Fetcher{cfg: cfg, logger: logger}
}

// Fetch runs the source to a terminal state. Timeouts are retried up to
// MaxRetries with 2^attempt backoff; any other error fails immediately.
func (f *Fetcher) Fetch(ctx context.Context, src sources.Source, criteria models.UserCriteria) FetchResult {
	start := time.Now()

	var listings []models.RawListing
	var lastErr error
	status := FetchFatalFailure

	minDelay := src.RateLimit()
	if f.cfg.MinDelay > 0 {
		minDelay = f.cfg.MinDelay
	}

	for attempt := 0; attempt <= f.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := f.cfg.BackoffUnit << (attempt - 1)
			f.logger.Printf("[fetcher] Retrying %s (attempt %d/%d) after %v",
				src.Name(), attempt+1, f.cfg.MaxRetries+1, backoff)
			select {
			case <-ctx.Done():
				return FetchResult{Status: FetchFatalFailure, Err: ctx.Err(), Duration: time.Since(start)}
			case <-time.After(backoff):
			}
		}

		if err := f.waitRateLimit(ctx, minDelay); err != nil {
			return FetchResult{Status: FetchFatalFailure, Err: err, Duration: time.Since(start)}
		}

		listings, lastErr = f.invoke(ctx, src, criteria)
		if lastErr == nil {
			status = FetchSuccess
			break
		}
		if isTimeout(lastErr) {
			status = FetchRetryableFailure
			f.logger.Printf("[fetcher] Timeout from %s on attempt %d: %v", src.Name(), attempt+1, lastErr)
			continue
		}
		status = FetchFatalFailure
		break
	}

	return FetchResult{
		Status:   status,
		Listings: listings,
		Err:      lastErr,
		Duration: time.Since(start),
	}
}

// waitRateLimit blocks until the source's minimum delay has elapsed since
// this fetcher's previous request.
func (f *Fetcher) waitRateLimit(ctx context.Context, minDelay time.Duration) error {
	if !f.lastRequest.IsZero() && minDelay > 0 {
		if elapsed := time.Since(f.lastRequest); elapsed < minDelay {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(minDelay - elapsed):
			}
		}
	}
	f.lastRequest = time.Now()
	return nil
}

// invoke runs the adapter under the request timeout, converting a panic
// into an error so one misbehaving adapter cannot take down the run.
func (f *Fetcher) invoke(ctx context.Context, src sources.Source, criteria models.UserCriteria) (listings []models.RawListing, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("source %s panicked: %v", src.Name(), r)
		}
	}()

	fetchCtx := ctx
	if f.cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, f.cfg.RequestTimeout)
		defer cancel()
	}
	return src.Fetch(fetchCtx, criteria)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return os.IsTimeout(err)
}
