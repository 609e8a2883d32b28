package models

import (
	"fmt"
	"strings"
)

// RemotePreference states how the user feels about remote internships.
type RemotePreference string

const (
	RemoteYes RemotePreference = "yes"
	RemoteNo  RemotePreference = "no"
	RemoteAny RemotePreference = "any"
)

// ParseRemotePreference validates a remote preference string.
func ParseRemotePreference(s string) (RemotePreference, error) {
	switch RemotePreference(strings.ToLower(strings.TrimSpace(s))) {
	case RemoteYes:
		return RemoteYes, nil
	case RemoteNo:
		return RemoteNo, nil
	case RemoteAny, "":
		return RemoteAny, nil
	}
	return "", fmt.Errorf("invalid remote preference %q (want yes, no or any)", s)
}

// UserCriteria is the user's search preferences driving scoring and
// filtering. Build it with NewUserCriteria so all string sets are
// lowercased and deduplicated.
type UserCriteria struct {
	WantedKeywords     []string         `json:"wanted_keywords"`
	RejectKeywords     []string         `json:"reject_keywords"`
	RemotePreference   RemotePreference `json:"remote_preference"`
	MinStipend         int              `json:"min_stipend"`
	MaxPostAgeDays     int              `json:"max_post_age_days"` // 0 = unlimited
	ResultCap          int              `json:"result_cap"`
	PreferredLocations []string         `json:"preferred_locations"`
	ResumeSkills       []string         `json:"resume_skills"`
}

// NewUserCriteria validates raw criteria and returns a copy with every
// string set lowercased, trimmed and deduplicated.
func NewUserCriteria(raw UserCriteria) (UserCriteria, error) {
	if raw.ResultCap <= 0 {
		return UserCriteria{}, fmt.Errorf("result cap must be positive, got %d", raw.ResultCap)
	}
	if raw.MinStipend < 0 {
		return UserCriteria{}, fmt.Errorf("minimum stipend cannot be negative, got %d", raw.MinStipend)
	}
	if raw.MaxPostAgeDays < 0 {
		return UserCriteria{}, fmt.Errorf("maximum post age cannot be negative, got %d", raw.MaxPostAgeDays)
	}

	pref, err := ParseRemotePreference(string(raw.RemotePreference))
	if err != nil {
		return UserCriteria{}, err
	}

	c := raw
	c.RemotePreference = pref
	c.WantedKeywords = normalizeSet(raw.WantedKeywords)
	c.RejectKeywords = normalizeSet(raw.RejectKeywords)
	c.PreferredLocations = normalizeSet(raw.PreferredLocations)
	c.ResumeSkills = normalizeSet(raw.ResumeSkills)
	return c, nil
}

// normalizeSet lowercases and trims every term, dropping empties and
// duplicates while preserving first-seen order.
func normalizeSet(terms []string) []string {
	seen := make(map[string]bool, len(terms))
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
