// Package airports holds the static IATA airport code registry used to
// validate route candidates pulled out of email text.
package airports

import (
	"regexp"
	"strings"
)

var (
	codeSet     map[string]struct{}
	stopwordSet map[string]struct{}

	// Only standalone uppercase triples are candidates; lowercase words like
	// "lax" or "sea" in prose are ignored.
	tokenRe = regexp.MustCompile(`\b[A-Z]{3}\b`)
)

func init() {
	stopwordSet = make(map[string]struct{}, len(stopwords))
	for _, w := range stopwords {
		stopwordSet[w] = struct{}{}
	}

	codeSet = make(map[string]struct{}, 1400)
	for _, block := range regionCodes {
		for _, code := range strings.Fields(block) {
			if _, stop := stopwordSet[code]; stop {
				continue
			}
			codeSet[code] = struct{}{}
		}
	}
}

func normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// IsValidCode reports whether code is a known airport. Matching is
// case-insensitive.
func IsValidCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	_, ok := codeSet[normalize(code)]
	return ok
}

// FindCodesInText returns the distinct valid codes found in text, in order
// of first occurrence.
func FindCodesInText(text string) []string {
	found := make([]string, 0, 4)
	seen := make(map[string]struct{})
	for _, token := range tokenRe.FindAllString(text, -1) {
		if _, dup := seen[token]; dup {
			continue
		}
		if !IsValidCode(token) {
			continue
		}
		seen[token] = struct{}{}
		found = append(found, token)
	}
	return found
}

// Count returns the number of registered codes.
func Count() int {
	return len(codeSet)
}
