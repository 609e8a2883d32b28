package hunt

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"internhunt-go/internal/models"
)

// Listing platforms report posting times as relative text ("3 days ago",
// "2 weeks ago", "Today"). ParsePostedAge turns that text into an age.
var relativeAgeRe = regexp.MustCompile(`(\d+)\s*(hour|day|week|month)s?\s*ago`)

// ParsePostedAge parses relative posted-date text into an age. The boolean
// is false when the text carries no recognizable age.
func ParsePostedAge(text string) (time.Duration, bool) {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return 0, false
	}

	switch lower {
	case "today", "just now", "few hours ago", "a few hours ago":
		return 0, true
	case "yesterday":
		return 24 * time.Hour, true
	}

	m := relativeAgeRe.FindStringSubmatch(lower)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}

	switch m[2] {
	case "hour":
		return time.Duration(n) * time.Hour, true
	case "day":
		return time.Duration(n) * 24 * time.Hour, true
	case "week":
		return time.Duration(n) * 7 * 24 * time.Hour, true
	case "month":
		return time.Duration(n) * 30 * 24 * time.Hour, true
	}
	return 0, false
}

// filterByPostAge drops listings older than maxDays. A limit of zero means
// unlimited, and listings whose age cannot be determined are kept.
func filterByPostAge(listings []models.RawListing, maxDays int) []models.RawListing {
	if maxDays <= 0 {
		return listings
	}
	limit := time.Duration(maxDays) * 24 * time.Hour
	kept := make([]models.RawListing, 0, len(listings))
	for _, listing := range listings {
		if age, ok := ParsePostedAge(listing.PostedDateText); ok && age > limit {
			continue
		}
		kept = append(kept, listing)
	}
	return kept
}
