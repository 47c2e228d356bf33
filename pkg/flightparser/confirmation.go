package flightparser

import (
	"regexp"
	"strings"
)

// Group 1 is the separator after the label, group 2 the candidate code.
// Tried in order; the first plausible match wins.
var confirmationRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i:\bconfirmation(?:\s+(?:code|number|no\.?))?)(\s*(?:#|:|\b(?i:is)\b)?\s*:?)\s*([A-Z0-9]{5,8})\b`),
	regexp.MustCompile(`(?i:\bbooking\s+(?:code|reference|ref\.?|number))(\s*(?:#|:|\b(?i:is)\b)?\s*:?)\s*([A-Z0-9]{5,8})\b`),
	regexp.MustCompile(`(?i:\brecord\s+locator)(\s*(?:#|:|\b(?i:is)\b)?\s*:?)\s*([A-Z0-9]{5,8})\b`),
	regexp.MustCompile(`(?i:\bPNR)(\s*(?:#|:)?)\s*([A-Z0-9]{6})\b`),
	regexp.MustCompile(`(?i:c[óo]digo\s+de\s+reserva)(\s*(?:#|:)?)\s*([A-Z0-9]{5,8})\b`),
	regexp.MustCompile(`(?i:n[úu]mero\s+de\s+confirmaci[óo]n)(\s*(?:#|:)?)\s*([A-Z0-9]{5,8})\b`),
}

// ExtractConfirmationNumber returns the booking code following a known
// label, or "" when none is present. A code made only of letters must be
// set off from its label by "#", ":" or "is", so headings like
// "FLIGHT CONFIRMATION DETAILS" are not read as codes.
func ExtractConfirmationNumber(text string) string {
	for _, re := range confirmationRes {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if plausibleCode(m[1], m[2]) {
				return m[2]
			}
		}
	}
	return ""
}

func plausibleCode(separator, code string) bool {
	if strings.TrimSpace(separator) != "" {
		return true
	}
	return strings.ContainsAny(code, "0123456789")
}

func firstCapture(text string, res []*regexp.Regexp) string {
	for _, re := range res {
		if m := re.FindStringSubmatch(text); m != nil {
			return m[1]
		}
	}
	return ""
}
