package hunt_test

import (
	"testing"

	"internhunt-go/internal/hunt"
	"internhunt-go/internal/models"
)

func scored(title, company string, score float64) models.ScoredListing {
	return models.ScoredListing{
		Listing: models.RawListing{Title: title, Company: company},
		Score:   score,
	}
}

// ── identity normalization ─────────────────────────────────────────────────

func TestNormalizeIdentity(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"ML Intern", "ml intern"},
		{"ML  Intern!!", "ml intern"},
		{"  Senior (ML) Intern  ", "senior ml intern"},
		{"Ｍachine Ｌearning", "machine learning"}, // fullwidth folds via NFKC
		{"data_engineer", "data_engineer"},
		{"", ""},
	}
	for _, c := range cases {
		if got := hunt.NormalizeIdentity(c.in); got != c.want {
			t.Errorf("NormalizeIdentity(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

// ── deduplication ──────────────────────────────────────────────────────────

func TestDedupe_Empty(t *testing.T) {
	if got := hunt.Dedupe(nil); len(got) != 0 {
		t.Errorf("Dedupe(nil) returned %d entries, want 0", len(got))
	}
	if got := hunt.Dedupe([]models.ScoredListing{}); len(got) != 0 {
		t.Errorf("Dedupe(empty) returned %d entries, want 0", len(got))
	}
}

func TestDedupe_AllUnique(t *testing.T) {
	in := []models.ScoredListing{
		scored("ML Intern", "Acme", 12),
		scored("Backend Intern", "Acme", 10),
		scored("ML Intern", "Globex", 8),
	}
	out := hunt.Dedupe(in)
	if len(out) != 3 {
		t.Fatalf("got %d entries, want 3", len(out))
	}
	for i := range in {
		if out[i].Listing != in[i].Listing {
			t.Errorf("position %d changed: got %+v, want %+v", i, out[i].Listing, in[i].Listing)
		}
	}
}

func TestDedupe_MaxScoreWinsAtFirstSeenPosition(t *testing.T) {
	out := hunt.Dedupe([]models.ScoredListing{
		scored("ML Intern", "Acme", 15.0),
		scored("Backend Intern", "Globex", 12.0),
		scored("ML  Intern!!", "acme", 18.0), // same identity, higher score
	})

	if len(out) != 2 {
		t.Fatalf("got %d entries, want 2", len(out))
	}
	if out[0].Score != 18.0 {
		t.Errorf("surviving duplicate score = %v, want 18.0", out[0].Score)
	}
	if out[0].Listing.Company != "acme" {
		t.Errorf("higher-scoring duplicate should survive, got company %q", out[0].Listing.Company)
	}
	if out[1].Listing.Title != "Backend Intern" {
		t.Errorf("second position = %q, want the Globex listing", out[1].Listing.Title)
	}
}

func TestDedupe_TieKeepsFirstSeen(t *testing.T) {
	out := hunt.Dedupe([]models.ScoredListing{
		{Listing: models.RawListing{Title: "ML Intern", Company: "Acme", URL: "https://a.example"}, Score: 15},
		{Listing: models.RawListing{Title: "ml intern", Company: "ACME", URL: "https://b.example"}, Score: 15},
	})
	if len(out) != 1 {
		t.Fatalf("got %d entries, want 1", len(out))
	}
	if out[0].Listing.URL != "https://a.example" {
		t.Errorf("equal-score duplicate should keep the first occurrence, got %q", out[0].Listing.URL)
	}
}

func TestDedupe_SameTitleDifferentCompany(t *testing.T) {
	out := hunt.Dedupe([]models.ScoredListing{
		scored("ML Intern", "Acme", 10),
		scored("ML Intern", "Globex", 9),
	})
	if len(out) != 2 {
		t.Errorf("distinct companies collapsed: got %d entries, want 2", len(out))
	}
}
