package scoring

import (
	"sort"
	"strings"
)

// keywordExpansions maps common abbreviations to their longer forms and
// back, so a user searching "ml" also matches "machine learning" postings.
// Loaded once at process start and shared by every scorer instance.
var keywordExpansions = map[string][]string{
	"ml":                   {"ml", "machine learning"},
	"ai":                   {"ai", "artificial intelligence"},
	"nlp":                  {"nlp", "natural language processing"},
	"cv":                   {"cv", "computer vision"},
	"dl":                   {"dl", "deep learning"},
	"ds":                   {"ds", "data science"},
	"da":                   {"da", "data analytics", "data analysis"},
	"bi":                   {"bi", "business intelligence"},
	"api":                  {"api", "application programming interface"},
	"ui":                   {"ui", "user interface"},
	"ux":                   {"ux", "user experience"},
	"db":                   {"db", "database"},
	"devops":               {"devops", "dev ops"},
	"sde":                  {"sde", "software development engineer", "software developer"},
	"swe":                  {"swe", "software engineer"},
	"qa":                   {"qa", "quality assurance"},
	"genai":                {"genai", "gen ai", "generative ai", "generative artificial intelligence"},
	"llm":                  {"llm", "large language model"},
	"gpt":                  {"gpt", "generative pre-trained transformer"},
	"software development": {"software development", "software dev", "software engineering"},
	"data science":         {"data science", "data scientist"},
	"machine learning":     {"machine learning", "ml"},
}

// expandTerms returns the deduplicated union of the given terms and their
// expansions, sorted for deterministic matcher construction.
func expandTerms(terms []string) []string {
	seen := make(map[string]bool)
	for _, term := range terms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}
		seen[term] = true
		for _, expansion := range keywordExpansions[term] {
			seen[expansion] = true
		}
	}

	expanded := make([]string, 0, len(seen))
	for term := range seen {
		expanded = append(expanded, term)
	}
	sort.Strings(expanded)
	return expanded
}
