// Package scoring ranks listings against user criteria. Matching is
// word-boundary based throughout so short terms like "ai" never match
// inside "email".
package scoring

import (
	"regexp"
	"sort"
	"strings"

	"internhunt-go/internal/models"
)

// Component weights.
const (
	keywordWeight  = 10.0
	skillWeight    = 3.0
	stipendCap     = 3.0
	stipendDivisor = 10000.0
	remoteBonus    = 5.0
	locationBonus  = 5.0
)

// Remote-work indicator phrases, matched case-insensitively as whole words.
var remotePatterns = []string{
	`\bremote\b`,
	`\bwfh\b`,
	`\bwork from home\b`,
	`\bwork-from-home\b`,
	`\bpan india\b`,
	`\bpan-india\b`,
	`\banywhere in india\b`,
}

var remoteRe = regexp.MustCompile("(?i)" + strings.Join(remotePatterns, "|"))

// Scorer scores listings against one criteria set. All regex construction
// happens once in NewScorer, not per listing, so a whole run matches
// consistently.
type Scorer struct {
	criteria models.UserCriteria
	wanted   []termMatcher
	reject   []termMatcher
	skills   []termMatcher
}

type termMatcher struct {
	term string
	re   *regexp.Regexp
}

func compileTerms(terms []string) []termMatcher {
	matchers := make([]termMatcher, 0, len(terms))
	for _, term := range terms {
		matchers = append(matchers, termMatcher{
			term: term,
			re:   regexp.MustCompile(`\b` + regexp.QuoteMeta(term) + `\b`),
		})
	}
	return matchers
}

// NewScorer builds a scorer for the given criteria, expanding both wanted
// and reject keywords through the abbreviation table.
func NewScorer(criteria models.UserCriteria) *Scorer {
	return &Scorer{
		criteria: criteria,
		wanted:   compileTerms(expandTerms(criteria.WantedKeywords)),
		reject:   compileTerms(expandTerms(criteria.RejectKeywords)),
		skills:   compileTerms(criteria.ResumeSkills),
	}
}

// Score evaluates one listing. The boolean is false when the listing is
// rejected: either a reject keyword matched (absolute, overrides all
// positive factors) or wanted keywords were given and none matched.
func (s *Scorer) Score(listing models.RawListing) (models.ScoredListing, bool) {
	searchable := strings.ToLower(listing.Title + " " + listing.Description)

	for _, m := range s.reject {
		if m.re.MatchString(searchable) {
			return models.ScoredListing{}, false
		}
	}

	keyword := s.scoreKeywords(searchable)
	if len(s.criteria.WantedKeywords) > 0 && keyword == 0 {
		return models.ScoredListing{}, false
	}

	breakdown := models.ScoreBreakdown{
		Keyword:  keyword,
		Skill:    s.scoreSkills(searchable),
		Stipend:  s.scoreStipend(listing),
		Remote:   s.scoreRemote(listing),
		Location: s.scoreLocation(listing),
	}

	return models.ScoredListing{
		Listing:   listing,
		Score:     breakdown.Total(),
		Breakdown: breakdown,
	}, true
}

// ScoreAll scores every listing, drops rejects, and returns the survivors
// sorted by score descending. The sort is stable so equal scores keep
// their input order.
func (s *Scorer) ScoreAll(listings []models.RawListing) []models.ScoredListing {
	scored := make([]models.ScoredListing, 0, len(listings))
	for _, listing := range listings {
		if sl, ok := s.Score(listing); ok {
			scored = append(scored, sl)
		}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

func (s *Scorer) scoreKeywords(searchable string) float64 {
	matches := 0
	for _, m := range s.wanted {
		if m.re.MatchString(searchable) {
			matches++
		}
	}
	return float64(matches) * keywordWeight
}

func (s *Scorer) scoreSkills(searchable string) float64 {
	matches := 0
	for _, m := range s.skills {
		if m.re.MatchString(searchable) {
			matches++
		}
	}
	return float64(matches) * skillWeight
}

func (s *Scorer) scoreStipend(listing models.RawListing) float64 {
	if listing.Stipend == nil {
		return 0
	}
	if *listing.Stipend <= s.criteria.MinStipend {
		return 0
	}
	score := float64(*listing.Stipend-s.criteria.MinStipend) / stipendDivisor
	if score > stipendCap {
		return stipendCap
	}
	return score
}

func (s *Scorer) scoreRemote(listing models.RawListing) float64 {
	if s.criteria.RemotePreference != models.RemoteYes {
		return 0
	}
	if remoteRe.MatchString(listing.Location + " " + listing.Description) {
		return remoteBonus
	}
	return 0
}

func (s *Scorer) scoreLocation(listing models.RawListing) float64 {
	location := strings.ToLower(listing.Location)
	for _, preferred := range s.criteria.PreferredLocations {
		if strings.Contains(location, preferred) {
			return locationBonus
		}
	}
	return 0
}
