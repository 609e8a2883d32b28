package models

import "time"

// RawListing is a single internship listing as produced by a source adapter.
// It is immutable once handed to the pipeline.
type RawListing struct {
	Title          string `json:"title"`
	Company        string `json:"company"`
	Location       string `json:"location"`
	Description    string `json:"description,omitempty"`
	URL            string `json:"url"`
	PostedDateText string `json:"posted_date_text,omitempty"`
	Source         string `json:"source"`
	RawStipendText string `json:"raw_stipend_text,omitempty"`
	Stipend        *int   `json:"stipend,omitempty"` // in INR, nil if unpaid/not specified
}

// ScoreBreakdown holds the per-component scores for transparency.
// Every component is non-negative and Total equals their sum.
type ScoreBreakdown struct {
	Keyword  float64 `json:"keyword"`
	Skill    float64 `json:"skill"`
	Stipend  float64 `json:"stipend"`
	Remote   float64 `json:"remote"`
	Location float64 `json:"location"`
}

// Total returns the sum of all components.
func (b ScoreBreakdown) Total() float64 {
	return b.Keyword + b.Skill + b.Stipend + b.Remote + b.Location
}

// ScoredListing pairs a listing with its relevance score. Created only by
// the scorer and never mutated afterwards.
type ScoredListing struct {
	Listing   RawListing     `json:"listing"`
	Score     float64        `json:"score"`
	Breakdown ScoreBreakdown `json:"breakdown"`
}

// SourceOutcome is the terminal result of fetching from one source.
type SourceOutcome struct {
	Source   string        `json:"source"`
	Listings []RawListing  `json:"listings,omitempty"`
	OK       bool          `json:"ok"`
	Err      string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration"`
}
