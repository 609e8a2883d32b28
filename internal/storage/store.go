package storage

import "internhunt-go/internal/models"

// Store archives ranked results. The pipeline works entirely in memory;
// archiving is an optional sink and never affects run semantics.
type Store interface {
	SaveResults(results []models.ScoredListing) error
}
