package parser

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const entityConfidence = 0.7

var (
	capitalizedWord = regexp.MustCompile(`^[A-ZÁÉÍÓÚÑ][a-záéíóúñ]+$`)
	upperWord       = regexp.MustCompile(`^[A-Z]{2,}$`)
	upperInitial    = regexp.MustCompile(`^[A-ZÁÉÍÓÚÑ]`)
)

// introDelimiter separates the two parties of an introduction ("A <> B").
const introDelimiter = "<>"

// DetectEntities finds people and companies mentioned in the text. It merges,
// in first-seen order and without duplicates:
//   - tokens that are known names (any position, any case),
//   - capitalized tokens after the first one,
//   - all-uppercase tokens of two or more letters,
//   - the trailing capitalized token of each side of an "A <> B" introduction.
//
// Stopwords and category vocabulary are never reported, except through the
// known-names pass.
func (p *Parser) DetectEntities(text string) Detection[[]string] {
	var entities []string
	seen := make(map[string]struct{})
	add := func(word string) {
		if _, ok := seen[word]; ok {
			return
		}
		seen[word] = struct{}{}
		entities = append(entities, word)
	}

	for i, word := range strings.Fields(text) {
		clean := cleanToken(word)
		if utf8.RuneCountInString(clean) < 2 {
			continue
		}
		lower := strings.ToLower(clean)

		if _, ok := p.knownNames[lower]; ok {
			add(clean)
			continue
		}

		_, skip := p.skip[lower]
		if i > 0 && !skip && capitalizedWord.MatchString(clean) {
			add(clean)
		}
		if !skip && upperWord.MatchString(clean) {
			add(clean)
		}
	}

	if strings.Contains(text, introDelimiter) {
		for _, part := range strings.Split(text, introDelimiter) {
			fields := strings.Fields(part)
			if len(fields) == 0 {
				continue
			}
			last := fields[len(fields)-1]
			if !upperInitial.MatchString(last) {
				continue
			}
			clean := cleanToken(last)
			if clean == "" {
				continue
			}
			if _, skip := p.skip[strings.ToLower(clean)]; skip {
				continue
			}
			add(clean)
		}
	}

	if len(entities) == 0 {
		return Detection[[]string]{Value: []string{}, Confidence: 0}
	}
	return Detection[[]string]{Value: entities, Confidence: entityConfidence}
}

// cleanToken strips sentence punctuation from a token.
func cleanToken(word string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '.', ',', ';', ':', '!', '?', '(', ')':
			return -1
		}
		return r
	}, word)
}
