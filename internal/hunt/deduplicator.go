package hunt

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"internhunt-go/internal/models"
)

// NormalizeIdentity canonicalizes text for duplicate detection: Unicode
// NFKC normalization, lowercasing, stripping everything that is not a
// word character or whitespace, and collapsing whitespace runs.
func NormalizeIdentity(text string) string {
	normed := strings.ToLower(norm.NFKC.String(text))
	var b strings.Builder
	b.Grow(len(normed))
	for _, r := range normed {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func identityKey(listing models.RawListing) string {
	return NormalizeIdentity(listing.Title) + "::" + NormalizeIdentity(listing.Company)
}

// Dedupe collapses listings sharing a normalized title::company identity.
// For each identity the highest-scoring duplicate survives (first-seen on
// ties) and is emitted at the position of the first occurrence of that
// key, so the output order stays predictable no matter which duplicate
// won.
func Dedupe(scored []models.ScoredListing) []models.ScoredListing {
	if len(scored) == 0 {
		return nil
	}

	best := make(map[string]models.ScoredListing, len(scored))
	for _, sl := range scored {
		key := identityKey(sl.Listing)
		if current, ok := best[key]; !ok || sl.Score > current.Score {
			best[key] = sl
		}
	}

	deduped := make([]models.ScoredListing, 0, len(best))
	emitted := make(map[string]bool, len(best))
	for _, sl := range scored {
		key := identityKey(sl.Listing)
		if emitted[key] {
			continue
		}
		emitted[key] = true
		deduped = append(deduped, best[key])
	}
	return deduped
}
