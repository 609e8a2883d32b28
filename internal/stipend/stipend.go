// Package stipend normalizes free-text stipend strings into integer INR
// amounts. Listings advertise stipends in wildly inconsistent formats
// ("₹15,000-20,000/month", "15k", "Unpaid"); the pipeline needs one
// canonical non-negative integer or nothing.
package stipend

import (
	"regexp"
	"strconv"
	"strings"
)

// Substrings that mean "no stipend to parse". Checked before any numeric
// content, so "Unpaid (₹0)" still comes back as unknown.
var unpaidIndicators = []string{"unpaid", "not disclosed", "not mentioned", "n/a", "na"}

var (
	currencyRe = regexp.MustCompile(`[₹$,]`)
	numberRe   = regexp.MustCompile(`\d+(?:\.\d+)?`)
)

// Parse extracts a stipend amount from raw listing text. The boolean is
// false when the text is empty, marked unpaid/undisclosed, or contains no
// numbers. Ranges like "15000-20000" resolve to the minimum value; a bare
// "15k" (no thousands separator) is scaled to 15000. The result is never
// negative.
func Parse(text string) (int, bool) {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return 0, false
	}

	for _, indicator := range unpaidIndicators {
		if strings.Contains(lower, indicator) {
			return 0, false
		}
	}

	cleaned := currencyRe.ReplaceAllString(lower, "")
	numbers := numberRe.FindAllString(cleaned, -1)
	if len(numbers) == 0 {
		return 0, false
	}

	// Scale "15k" to 15000, but never double-scale "15,000": the k rule
	// only fires when the original text has no thousands separator.
	hasComma := strings.Contains(text, ",")
	hasK := strings.Contains(lower, "k")

	min := -1
	for _, s := range numbers {
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			continue
		}
		if n < 1000 && !hasComma && hasK {
			n *= 1000
		}
		v := int(n)
		if min < 0 || v < min {
			min = v
		}
	}
	if min < 0 {
		return 0, false
	}
	return min, true
}
