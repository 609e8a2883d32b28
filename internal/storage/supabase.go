package storage

import (
	"fmt"
	"os"
	"time"

	supabase "github.com/nedpals/supabase-go"

	"internhunt-go/internal/models"
)

// SupabaseStore archives ranked results using the nedpals/supabase-go SDK.
type SupabaseStore struct {
	client *supabase.Client
}

// resultRow flattens a scored listing into one archive table row.
type resultRow struct {
	Title          string    `json:"title"`
	Company        string    `json:"company"`
	Location       string    `json:"location"`
	URL            string    `json:"url"`
	Source         string    `json:"source"`
	RawStipendText string    `json:"raw_stipend_text,omitempty"`
	Stipend        *int      `json:"stipend,omitempty"`
	Score          float64   `json:"score"`
	KeywordScore   float64   `json:"keyword_score"`
	SkillScore     float64   `json:"skill_score"`
	StipendScore   float64   `json:"stipend_score"`
	RemoteScore    float64   `json:"remote_score"`
	LocationScore  float64   `json:"location_score"`
	RankedAt       time.Time `json:"ranked_at"`
}

// NewSupabaseStore creates a SupabaseStore. It reads SUPABASE_URL and
// SUPABASE_KEY from environment variables if empty values are provided.
func NewSupabaseStore(supabaseURL, supabaseKey string) (*SupabaseStore, error) {
	if supabaseURL == "" {
		supabaseURL = os.Getenv("SUPABASE_URL")
	}
	if supabaseKey == "" {
		supabaseKey = os.Getenv("SUPABASE_KEY")
	}
	if supabaseURL == "" || supabaseKey == "" {
		return nil, fmt.Errorf("supabase URL and key must be provided via args or SUPABASE_URL / SUPABASE_KEY env vars")
	}

	client := supabase.CreateClient(supabaseURL, supabaseKey)
	return &SupabaseStore{client: client}, nil
}

// SaveResults archives one run's ranked results in a single batch insert.
func (s *SupabaseStore) SaveResults(results []models.ScoredListing) error {
	if len(results) == 0 {
		return nil
	}

	now := time.Now()
	rows := make([]resultRow, 0, len(results))
	for _, r := range results {
		rows = append(rows, resultRow{
			Title:          r.Listing.Title,
			Company:        r.Listing.Company,
			Location:       r.Listing.Location,
			URL:            r.Listing.URL,
			Source:         r.Listing.Source,
			RawStipendText: r.Listing.RawStipendText,
			Stipend:        r.Listing.Stipend,
			Score:          r.Score,
			KeywordScore:   r.Breakdown.Keyword,
			SkillScore:     r.Breakdown.Skill,
			StipendScore:   r.Breakdown.Stipend,
			RemoteScore:    r.Breakdown.Remote,
			LocationScore:  r.Breakdown.Location,
			RankedAt:       now,
		})
	}

	var inserted []resultRow
	return s.client.DB.From("hunt_results").Insert(rows).Execute(&inserted)
}
