package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"internhunt-go/internal/models"
)

// Config holds the application configuration.
type Config struct {
	Criteria   CriteriaConfig   `json:"criteria"`
	Pipeline   PipelineConfig   `json:"pipeline"`
	Sources    SourcesConfig    `json:"sources"`
	Archive    ArchiveConfig    `json:"archive"`
	Monitoring MonitoringConfig `json:"monitoring"`
}

// CriteriaConfig holds the user's search criteria.
type CriteriaConfig struct {
	WantedKeywords     []string `json:"wanted_keywords"`
	RejectKeywords     []string `json:"reject_keywords"`
	RemotePreference   string   `json:"remote_preference"` // yes, no, any
	MinStipend         int      `json:"min_stipend"`
	MaxPostAgeDays     int      `json:"max_post_age_days"`
	ResultCap          int      `json:"result_cap"`
	PreferredLocations []string `json:"preferred_locations"`
	ResumeSkills       []string `json:"resume_skills"`
}

// ToCriteria converts the config section into validated criteria.
func (c CriteriaConfig) ToCriteria() (models.UserCriteria, error) {
	return models.NewUserCriteria(models.UserCriteria{
		WantedKeywords:     c.WantedKeywords,
		RejectKeywords:     c.RejectKeywords,
		RemotePreference:   models.RemotePreference(c.RemotePreference),
		MinStipend:         c.MinStipend,
		MaxPostAgeDays:     c.MaxPostAgeDays,
		ResultCap:          c.ResultCap,
		PreferredLocations: c.PreferredLocations,
		ResumeSkills:       c.ResumeSkills,
	})
}

// PipelineConfig bounds the acquisition pipeline.
type PipelineConfig struct {
	Workers        int           `json:"workers"`
	RequestTimeout time.Duration `json:"request_timeout"`
	MaxRetries     int           `json:"max_retries"`
	HuntInterval   time.Duration `json:"hunt_interval"` // 0 disables periodic runs
}

// SourcesConfig holds per-source enablement.
type SourcesConfig struct {
	Internshala SourceConfig     `json:"internshala"`
	Unstop      SourceConfig     `json:"unstop"`
	RemoteFeeds FeedSourceConfig `json:"remote_feeds"`
}

// SourceConfig holds configuration for individual sources.
type SourceConfig struct {
	Enabled bool `json:"enabled"`
}

// FeedSourceConfig configures the RSS feed source.
type FeedSourceConfig struct {
	Enabled bool     `json:"enabled"`
	URLs    []string `json:"urls"`
}

// ArchiveConfig configures the optional Supabase result archive.
// Credentials fall back to SUPABASE_URL / SUPABASE_KEY env vars.
type ArchiveConfig struct {
	Enabled     bool   `json:"enabled"`
	SupabaseURL string `json:"supabase_url"`
	SupabaseKey string `json:"supabase_key"`
}

// MonitoringConfig holds monitoring configuration.
type MonitoringConfig struct {
	Enabled         bool          `json:"enabled"`
	MetricsInterval time.Duration `json:"metrics_interval"`
	LogFile         string        `json:"log_file"`
}

// DefaultConfig returns a default configuration.
func DefaultConfig() *Config {
	return &Config{
		Criteria: CriteriaConfig{
			WantedKeywords:   []string{"software development", "python", "backend"},
			RemotePreference: "any",
			MaxPostAgeDays:   30,
			ResultCap:        100,
		},
		Pipeline: PipelineConfig{
			Workers:        6,
			RequestTimeout: 15 * time.Second,
			MaxRetries:     2,
			HuntInterval:   0,
		},
		Sources: SourcesConfig{
			Internshala: SourceConfig{Enabled: true},
			Unstop:      SourceConfig{Enabled: true},
			RemoteFeeds: FeedSourceConfig{
				Enabled: false,
				URLs:    []string{"https://weworkremotely.com/categories/remote-programming-jobs.rss"},
			},
		},
		Archive: ArchiveConfig{
			Enabled:     false,
			SupabaseURL: os.Getenv("SUPABASE_URL"),
			SupabaseKey: os.Getenv("SUPABASE_KEY"),
		},
		Monitoring: MonitoringConfig{
			Enabled:         true,
			MetricsInterval: time.Minute,
			LogFile:         "",
		},
	}
}

// LoadConfig loads configuration from a JSON file, falling back to
// defaults when the file does not exist.
func LoadConfig(filename string) (*Config, error) {
	config := DefaultConfig()

	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return config, nil
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves configuration to a JSON file.
func (c *Config) SaveConfig(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if _, err := c.Criteria.ToCriteria(); err != nil {
		return fmt.Errorf("invalid criteria: %w", err)
	}

	if c.Pipeline.Workers <= 0 {
		return fmt.Errorf("pipeline workers must be positive")
	}
	if c.Pipeline.MaxRetries < 0 {
		return fmt.Errorf("max retries cannot be negative")
	}
	if c.Pipeline.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive")
	}

	if c.Sources.RemoteFeeds.Enabled && len(c.Sources.RemoteFeeds.URLs) == 0 {
		return fmt.Errorf("remote feeds enabled but no feed URLs configured")
	}

	hasEnabledSource := c.Sources.Internshala.Enabled ||
		c.Sources.Unstop.Enabled ||
		c.Sources.RemoteFeeds.Enabled
	if !hasEnabledSource {
		return fmt.Errorf("at least one source must be enabled")
	}

	return nil
}
