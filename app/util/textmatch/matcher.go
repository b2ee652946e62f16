package textmatch

import (
	"unicode"

	goahocorasick "github.com/anknown/ahocorasick"
	"github.com/samber/oops"
)

// Matcher finds phrase patterns inside free text. Input and patterns are
// normalized the same way (lowercase, punctuation and spacing stripped), so
// "chest in-drawing" still matches the "chest indrawing" pattern.
type Matcher struct {
	machine  *goahocorasick.Machine
	original map[string]string
}

func New(patterns []string) (*Matcher, error) {
	normalized := make([][]rune, 0, len(patterns))
	original := make(map[string]string, len(patterns))

	for _, pattern := range patterns {
		norm := normalizeRunes([]rune(pattern))
		if len(norm) == 0 {
			continue
		}

		normalized = append(normalized, norm)
		original[string(norm)] = pattern
	}

	machine := new(goahocorasick.Machine)
	if err := machine.Build(normalized); err != nil {
		return nil, oops.Errorf("failed to build pattern automaton: %w", err)
	}

	return &Matcher{
		machine:  machine,
		original: original,
	}, nil
}

// FirstMatch returns the original form of the first pattern found in text.
func (m *Matcher) FirstMatch(text string) (string, bool) {
	norm := normalizeRunes([]rune(text))
	if len(norm) == 0 {
		return "", false
	}

	terms := m.machine.MultiPatternSearch(norm, true)
	if len(terms) == 0 {
		return "", false
	}

	return m.original[string(terms[0].Word)], true
}

// Matches returns the original forms of all distinct patterns found in text.
func (m *Matcher) Matches(text string) []string {
	norm := normalizeRunes([]rune(text))
	if len(norm) == 0 {
		return nil
	}

	seen := make(map[string]bool)
	var result []string

	for _, term := range m.machine.MultiPatternSearch(norm, false) {
		pattern := m.original[string(term.Word)]
		if seen[pattern] {
			continue
		}

		seen[pattern] = true
		result = append(result, pattern)
	}

	return result
}

func (m *Matcher) MatchesAny(text string) bool {
	_, ok := m.FirstMatch(text)
	return ok
}

func normalizeRunes(input []rune) []rune {
	out := make([]rune, 0, len(input))

	for _, r := range input {
		if unicode.IsPunct(r) || unicode.IsSpace(r) || unicode.IsSymbol(r) {
			continue
		}

		out = append(out, unicode.ToLower(r))
	}

	return out
}
