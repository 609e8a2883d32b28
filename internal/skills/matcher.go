// Package skills provides resume skill extraction. The semantic matcher
// is an external service consumed behind the Matcher interface;
// LibraryMatcher is the offline fallback built on the fixed vocabulary.
package skills

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// Matcher returns ranked candidate skill terms for free resume text.
type Matcher interface {
	Match(resumeText string) ([]string, error)
}

// LibraryMatcher matches the fixed skill vocabulary against resume text
// with word-boundary matching, ranked by occurrence count.
type LibraryMatcher struct {
	patterns []skillPattern
}

type skillPattern struct {
	skill string
	re    *regexp.Regexp
}

// NewLibraryMatcher compiles matchers for the whole vocabulary once.
func NewLibraryMatcher() *LibraryMatcher {
	all := AllSkills()
	patterns := make([]skillPattern, 0, len(all))
	for _, skill := range all {
		patterns = append(patterns, skillPattern{
			skill: skill,
			re:    compileSkillRe(skill),
		})
	}
	return &LibraryMatcher{patterns: patterns}
}

// compileSkillRe builds a whole-word pattern for one vocabulary term. Plain
// \b breaks on terms with symbol edges: \bc\+\+\b can never match because
// \b after "+" demands a following word character, while a bare \bc\b
// claims the "C" inside "C++". Word-character edges keep \b; symbol edges
// anchor on any non-word neighbour, and word-character right edges also
// refuse a trailing "+" or "#" so "C" stays distinct from "C++" and "C#".
func compileSkillRe(term string) *regexp.Regexp {
	runes := []rune(term)

	left := `\b`
	if !isWordRune(runes[0]) {
		left = `(?:^|[^\w])`
	}
	right := `(?:[^\w+#]|$)`
	if !isWordRune(runes[len(runes)-1]) {
		right = `(?:[^\w]|$)`
	}
	return regexp.MustCompile(`(?i)` + left + regexp.QuoteMeta(term) + right)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Match returns the vocabulary skills found in the text, most frequent
// first; ties break alphabetically for determinism.
func (m *LibraryMatcher) Match(resumeText string) ([]string, error) {
	type hit struct {
		skill string
		count int
	}

	var hits []hit
	for _, p := range m.patterns {
		if n := len(p.re.FindAllStringIndex(resumeText, -1)); n > 0 {
			hits = append(hits, hit{skill: p.skill, count: n})
		}
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].count != hits[j].count {
			return hits[i].count > hits[j].count
		}
		return strings.ToLower(hits[i].skill) < strings.ToLower(hits[j].skill)
	})

	matched := make([]string, 0, len(hits))
	for _, h := range hits {
		matched = append(matched, h.skill)
	}
	return matched, nil
}
