package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"internhunt-go/internal/config"
	"internhunt-go/internal/hunt"
	"internhunt-go/internal/models"
	"internhunt-go/internal/skills"
	"internhunt-go/internal/sources"
	"internhunt-go/internal/storage"
	"internhunt-go/internal/ui"
)

func main() {
	var (
		configFile = flag.String("config", "config.json", "Configuration file path")
		command    = flag.String("cmd", "hunt", "Command to run: hunt, test, sources, config, skills")
		keywords   = flag.String("keywords", "", "Comma-separated wanted keywords (overrides config)")
		reject     = flag.String("reject", "", "Comma-separated reject keywords (overrides config)")
		remote     = flag.String("remote", "", "Remote preference: yes, no, any (overrides config)")
		minStipend = flag.Int("min-stipend", -1, "Minimum stipend in INR (overrides config)")
		maxAge     = flag.Int("max-age", -1, "Maximum post age in days, 0 = unlimited (overrides config)")
		resultCap  = flag.Int("cap", 0, "Maximum number of results (overrides config)")
		locations  = flag.String("locations", "", "Comma-separated preferred locations (overrides config)")
		resumeFile = flag.String("resume", "", "Path to a plain-text resume for skill extraction")
		source     = flag.String("source", "", "Specific source to test (internshala, unstop, feeds)")
		output     = flag.String("output", "console", "Output format: console, json")
		help       = flag.Bool("help", false, "Show help message")
	)
	flag.Parse()

	if *help {
		printUsage()
		os.Exit(0)
	}

	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	switch *command {
	case "hunt":
		criteria := buildCriteria(cfg, *keywords, *reject, *remote, *minStipend, *maxAge, *resultCap, *locations, *resumeFile)
		runHuntCommand(cfg, criteria, *output)
	case "test":
		runTestCommand(cfg, *source)
	case "sources":
		runSourcesCommand(cfg, *output)
	case "config":
		runConfigCommand(cfg, *output)
	case "skills":
		runSkillsCommand(*resumeFile, *output)
	default:
		fmt.Printf("Unknown command: %s\n", *command)
		printUsage()
		os.Exit(1)
	}
}

// buildCriteria starts from the config file and applies flag overrides.
func buildCriteria(cfg *config.Config, keywords, reject, remote string, minStipend, maxAge, resultCap int, locations, resumeFile string) models.UserCriteria {
	section := cfg.Criteria
	if keywords != "" {
		section.WantedKeywords = splitList(keywords)
	}
	if reject != "" {
		section.RejectKeywords = splitList(reject)
	}
	if remote != "" {
		section.RemotePreference = remote
	}
	if minStipend >= 0 {
		section.MinStipend = minStipend
	}
	if maxAge >= 0 {
		section.MaxPostAgeDays = maxAge
	}
	if resultCap > 0 {
		section.ResultCap = resultCap
	}
	if locations != "" {
		section.PreferredLocations = splitList(locations)
	}
	if resumeFile != "" {
		if extracted := extractSkills(resumeFile); len(extracted) > 0 {
			section.ResumeSkills = extracted
		}
	}

	criteria, err := section.ToCriteria()
	if err != nil {
		log.Fatalf("Invalid criteria: %v", err)
	}
	return criteria
}

func extractSkills(resumeFile string) []string {
	text, err := os.ReadFile(resumeFile)
	if err != nil {
		log.Fatalf("Failed to read resume file: %v", err)
	}
	matched, err := skills.NewLibraryMatcher().Match(string(text))
	if err != nil {
		log.Fatalf("Skill extraction failed: %v", err)
	}
	return matched
}

func runHuntCommand(cfg *config.Config, criteria models.UserCriteria, output string) {
	logger := log.New(os.Stderr, "[HUNTER] ", log.LstdFlags)

	var store storage.Store
	if cfg.Archive.Enabled {
		supaStore, err := storage.NewSupabaseStore(cfg.Archive.SupabaseURL, cfg.Archive.SupabaseKey)
		if err != nil {
			log.Fatalf("Failed to initialize archive store: %v", err)
		}
		store = supaStore
	}

	engine := hunt.NewEngine(buildRegistry(cfg), store, hunt.Config{
		Workers:        cfg.Pipeline.Workers,
		RequestTimeout: cfg.Pipeline.RequestTimeout,
		MaxRetries:     cfg.Pipeline.MaxRetries,
	}, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	results, outcomes, err := engine.Run(ctx, criteria)
	if err != nil {
		log.Fatalf("Hunt failed: %v", err)
	}

	if output == "json" {
		outputJSON(map[string]interface{}{
			"results":  results,
			"outcomes": outcomes,
		})
		return
	}
	printResults(results, outcomes)
}

func printResults(results []models.ScoredListing, outcomes []models.SourceOutcome) {
	fmt.Println(ui.HeaderStyle.Render("Internship Hunt Results"))
	fmt.Println()

	for _, outcome := range outcomes {
		if outcome.OK {
			fmt.Printf("%s %s: %d listings in %v\n",
				ui.SuccessStyle.Render("✓"), ui.SourceStyle.Render(outcome.Source),
				len(outcome.Listings), outcome.Duration.Round(time.Millisecond))
		} else {
			fmt.Printf("%s %s: %s\n",
				ui.ErrorStyle.Render("✗"), ui.SourceStyle.Render(outcome.Source), outcome.Err)
		}
	}
	fmt.Println()

	if len(results) == 0 {
		fmt.Println(ui.DimStyle.Render("No internships matched your criteria."))
		return
	}

	for i, r := range results {
		stipendText := r.Listing.RawStipendText
		if stipendText == "" {
			stipendText = "stipend not disclosed"
		}
		fmt.Printf("%2d. %s %s\n", i+1,
			ui.ScoreStyle.Render(fmt.Sprintf("[%.1f]", r.Score)),
			ui.TitleStyle.Render(r.Listing.Title))
		fmt.Printf("    %s · %s · %s · %s\n",
			r.Listing.Company, r.Listing.Location,
			ui.SourceStyle.Render(r.Listing.Source), stipendText)
		fmt.Printf("    %s\n", ui.LinkStyle.Render(r.Listing.URL))
		fmt.Printf("    %s\n", ui.DimStyle.Render(fmt.Sprintf(
			"keyword %.0f · skill %.0f · stipend %.1f · remote %.0f · location %.0f",
			r.Breakdown.Keyword, r.Breakdown.Skill, r.Breakdown.Stipend,
			r.Breakdown.Remote, r.Breakdown.Location)))
	}
}

func runTestCommand(cfg *config.Config, sourceName string) {
	registry := buildRegistry(cfg)

	toTest := registry.All()
	if sourceName != "" {
		toTest = nil
		for _, src := range registry.All() {
			if strings.EqualFold(src.Name(), sourceName) || strings.Contains(strings.ToLower(src.Name()), strings.ToLower(sourceName)) {
				toTest = append(toTest, src)
			}
		}
		if len(toTest) == 0 {
			log.Fatalf("Unknown source: %s", sourceName)
		}
	}

	criteria, err := cfg.Criteria.ToCriteria()
	if err != nil {
		log.Fatalf("Invalid criteria: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	for _, src := range toTest {
		start := time.Now()
		listings, err := src.Fetch(ctx, criteria)
		if err != nil {
			fmt.Printf("%s %s test failed: %v\n", ui.ErrorStyle.Render("✗"), src.Name(), err)
			continue
		}
		fmt.Printf("%s %s test passed: fetched %d listings in %v\n",
			ui.SuccessStyle.Render("✓"), src.Name(), len(listings), time.Since(start).Round(time.Millisecond))
	}
}

func runSourcesCommand(cfg *config.Config, output string) {
	registry := buildRegistry(cfg)

	if output == "json" {
		status := make(map[string]bool)
		for _, src := range registry.All() {
			c, _ := registry.GetConfig(src.Name())
			status[src.Name()] = c.Enabled
		}
		outputJSON(status)
		return
	}

	fmt.Println("Available sources:")
	for _, src := range registry.All() {
		c, _ := registry.GetConfig(src.Name())
		state := ui.DimStyle.Render("disabled")
		if c.Enabled {
			state = ui.SuccessStyle.Render("enabled")
		}
		fmt.Printf("- %s: %s (min request delay: %v)\n", src.Name(), state, src.RateLimit())
	}
}

func runConfigCommand(cfg *config.Config, output string) {
	if output == "json" {
		masked := *cfg
		masked.Archive.SupabaseKey = maskString(masked.Archive.SupabaseKey)
		outputJSON(masked)
		return
	}

	fmt.Println("Current configuration:")
	fmt.Printf("Wanted keywords: %v\n", cfg.Criteria.WantedKeywords)
	fmt.Printf("Reject keywords: %v\n", cfg.Criteria.RejectKeywords)
	fmt.Printf("Remote preference: %s\n", cfg.Criteria.RemotePreference)
	fmt.Printf("Minimum stipend: ₹%d\n", cfg.Criteria.MinStipend)
	fmt.Printf("Result cap: %d\n", cfg.Criteria.ResultCap)
	fmt.Printf("Workers: %d\n", cfg.Pipeline.Workers)
	fmt.Printf("Request timeout: %v\n", cfg.Pipeline.RequestTimeout)
	fmt.Printf("Archive enabled: %t\n", cfg.Archive.Enabled)
	if cfg.Archive.Enabled {
		fmt.Printf("Supabase URL: %s\n", maskString(cfg.Archive.SupabaseURL))
		fmt.Printf("Supabase key: %s\n", maskString(cfg.Archive.SupabaseKey))
	}
}

func runSkillsCommand(resumeFile, output string) {
	if resumeFile == "" {
		log.Fatal("skills command requires -resume <file>")
	}

	matched := extractSkills(resumeFile)
	if output == "json" {
		outputJSON(matched)
		return
	}

	if len(matched) == 0 {
		fmt.Println(ui.DimStyle.Render("No known skills found in resume."))
		return
	}
	fmt.Printf("Found %d skills:\n", len(matched))
	for _, skill := range matched {
		fmt.Printf("- %s\n", skill)
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

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func outputJSON(data interface{}) {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		log.Printf("Failed to encode JSON: %v", err)
	}
}

func maskString(s string) string {
	if len(s) <= 8 {
		return "***"
	}
	return s[:4] + "***" + s[len(s)-4:]
}

func printUsage() {
	fmt.Println("Internship Hunter CLI")
	fmt.Println("Usage:")
	fmt.Println("  hunter-cli [options]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  -cmd hunt      - Run the acquisition and ranking pipeline")
	fmt.Println("  -cmd test      - Test configured sources")
	fmt.Println("  -cmd sources   - List available sources")
	fmt.Println("  -cmd config    - Show configuration")
	fmt.Println("  -cmd skills    - Extract skills from a resume text file")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -config string      - Configuration file (default: config.json)")
	fmt.Println("  -keywords string    - Wanted keywords, comma-separated")
	fmt.Println("  -reject string      - Reject keywords, comma-separated")
	fmt.Println("  -remote string      - Remote preference: yes, no, any")
	fmt.Println("  -min-stipend int    - Minimum stipend in INR")
	fmt.Println("  -max-age int        - Maximum post age in days (0 = unlimited)")
	fmt.Println("  -cap int            - Maximum number of results")
	fmt.Println("  -locations string   - Preferred locations, comma-separated")
	fmt.Println("  -resume string      - Plain-text resume for skill extraction")
	fmt.Println("  -source string      - Specific source for -cmd test")
	fmt.Println("  -output string      - Output format: console, json")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  hunter-cli -cmd hunt -keywords 'python, ml' -remote yes -cap 25")
	fmt.Println("  hunter-cli -cmd hunt -resume resume.txt -output json")
	fmt.Println("  hunter-cli -cmd test -source unstop")
}
