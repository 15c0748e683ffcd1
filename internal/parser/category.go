package parser

import (
	"strings"
)

// Confidence levels for category detection.
const (
	categoryBoundaryConfidence    = 0.9
	categorySubstringConfidence   = 0.7
	subCategoryBoundaryConfidence = 0.85
	subCategorySubstrConfidence   = 0.65
)

// CategoryMatch is a canonical category name found in the input.
type CategoryMatch struct {
	Name       string
	Confidence float64
}

// DetectCategory returns the first category, in table order, with a trigger
// contained in the lowercased text. This is first-match, not best-match: an
// earlier entry with a weak substring hit beats a later exact one.
func (p *Parser) DetectCategory(text string) (CategoryMatch, bool) {
	lower := strings.ToLower(text)
	for _, entry := range p.categories {
		if conf, ok := entry.match(lower, categoryBoundaryConfidence, categorySubstringConfidence); ok {
			return CategoryMatch{Name: entry.name, Confidence: conf}, true
		}
	}
	return CategoryMatch{}, false
}

// DetectSubCategories returns every sub-category with a trigger in the text,
// once per canonical name, in table order.
func (p *Parser) DetectSubCategories(text string) []CategoryMatch {
	lower := strings.ToLower(text)
	var matches []CategoryMatch
	for _, entry := range p.subCategories {
		if conf, ok := entry.match(lower, subCategoryBoundaryConfidence, subCategorySubstrConfidence); ok {
			matches = append(matches, CategoryMatch{Name: entry.name, Confidence: conf})
		}
	}
	return matches
}

// match scores the first trigger contained in lower. Later triggers of the
// same entry are not consulted even if one of them would match on a word
// boundary.
func (e compiledEntry) match(lower string, boundary, substring float64) (float64, bool) {
	for _, t := range e.triggers {
		if t.phrase == "" || !strings.Contains(lower, t.phrase) {
			continue
		}
		if t.boundary.MatchString(lower) {
			return boundary, true
		}
		return substring, true
	}
	return 0, false
}
