package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"internhunt-go/internal/config"
	"internhunt-go/internal/hunt"
	"internhunt-go/internal/models"
	"internhunt-go/internal/sources"
	"internhunt-go/internal/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	cfg, err := config.LoadConfig("config.json")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	logger, logFile, err := setupLogging(cfg.Monitoring.LogFile)
	if err != nil {
		log.Fatalf("Failed to setup logging: %v", err)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	criteria, err := cfg.Criteria.ToCriteria()
	if err != nil {
		logger.Fatalf("Invalid criteria: %v", err)
	}

	var store storage.Store
	if cfg.Archive.Enabled {
		supaStore, err := storage.NewSupabaseStore(cfg.Archive.SupabaseURL, cfg.Archive.SupabaseKey)
		if err != nil {
			logger.Fatalf("Failed to initialize archive store: %v", err)
		}
		store = supaStore
	}

	registry := buildRegistry(cfg)
	engine := hunt.NewEngine(registry, store, hunt.Config{
		Workers:        cfg.Pipeline.Workers,
		RequestTimeout: cfg.Pipeline.RequestTimeout,
		MaxRetries:     cfg.Pipeline.MaxRetries,
	}, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	logger.Printf("Starting hunter with %d workers across %d sources",
		cfg.Pipeline.Workers, len(registry.Enabled()))

	runHunt(ctx, engine, criteria, logger)

	if cfg.Pipeline.HuntInterval <= 0 {
		logger.Println("No hunt interval configured, exiting after single run")
		return
	}

	scheduler := cron.New()
	_, err = scheduler.AddFunc(fmt.Sprintf("@every %s", cfg.Pipeline.HuntInterval), func() {
		runHunt(ctx, engine, criteria, logger)
	})
	if err != nil {
		logger.Fatalf("Failed to schedule hunts: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()
	logger.Printf("Scheduled hunts every %v", cfg.Pipeline.HuntInterval)

	if cfg.Monitoring.Enabled {
		go reportMetrics(ctx, engine, cfg.Monitoring.MetricsInterval, logger)
	}

	sig := <-sigChan
	logger.Printf("Received signal %v, shutting down", sig)
	cancel()
}

// runHunt executes one pipeline run and logs the per-source summary.
func runHunt(ctx context.Context, engine *hunt.Engine, criteria models.UserCriteria, logger *log.Logger) {
	results, outcomes, err := engine.Run(ctx, criteria)
	if err != nil {
		logger.Printf("Hunt failed: %v", err)
		return
	}

	for _, outcome := range outcomes {
		if outcome.OK {
			logger.Printf("  %s: %d listings (%v)", outcome.Source, len(outcome.Listings), outcome.Duration)
		} else {
			logger.Printf("  %s: FAILED: %s", outcome.Source, outcome.Err)
		}
	}

	if len(results) == 0 {
		logger.Println("No listings matched the criteria")
		return
	}

	logger.Printf("Top results (%d total):", len(results))
	for i, r := range results {
		if i >= 10 {
			break
		}
		logger.Printf("  %2d. [%.1f] %s at %s (%s) %s",
			i+1, r.Score, r.Listing.Title, r.Listing.Company, r.Listing.Source, r.Listing.URL)
	}
}

// reportMetrics periodically logs engine metrics.
func reportMetrics(ctx context.Context, engine *hunt.Engine, interval time.Duration, logger *log.Logger) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m := engine.GetMetrics()
			logger.Printf("Metrics: fetched=%d kept=%d duplicates=%d errors=%d last_run=%v",
				m.TotalFetched, m.TotalKept, m.TotalDuplicates, m.TotalErrors, m.RunDuration)
			for source, perf := range m.SourcePerformance {
				logger.Printf("  %s: fetched=%d errors=%d response_time=%v",
					source, perf.ListingsFetched, perf.Errors, perf.ResponseTime)
			}
		}
	}
}

// buildRegistry wires the configured sources.
func buildRegistry(cfg *config.Config) *sources.Registry {
	client := &http.Client{Timeout: cfg.Pipeline.RequestTimeout}

	registry := sources.NewRegistry()

	internshala := sources.NewInternshalaSource(client)
	registry.Register(internshala, sources.Config{
		Enabled:   cfg.Sources.Internshala.Enabled,
		RateLimit: internshala.RateLimit(),
	})

	unstop := sources.NewUnstopSource(client)
	registry.Register(unstop, sources.Config{
		Enabled:   cfg.Sources.Unstop.Enabled,
		RateLimit: unstop.RateLimit(),
	})

	feeds := sources.NewFeedSource("RemoteFeeds", cfg.Sources.RemoteFeeds.URLs)
	registry.Register(feeds, sources.Config{
		Enabled:   cfg.Sources.RemoteFeeds.Enabled,
		RateLimit: feeds.RateLimit(),
	})

	return registry
}

// setupLogging configures logging based on the configuration.
func setupLogging(logFile string) (*log.Logger, *os.File, error) {
	var logOutput *os.File
	var err error

	if logFile != "" {
		if err := os.MkdirAll(filepath.Dir(logFile), 0755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		logOutput, err = os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
	} else {
		logOutput = os.Stdout
	}

	logger := log.New(logOutput, "[HUNTER] ", log.LstdFlags)
	return logger, logOutput, nil
}
