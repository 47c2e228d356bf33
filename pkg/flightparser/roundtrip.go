package flightparser

import "regexp"

var (
	roundTripRe = regexp.MustCompile(`(?i)\b(?:round[\s-]?trip|ida\s+y\s+vuelta)\b`)
	oneWayRe    = regexp.MustCompile(`(?i)(?:\bone[\s-]?way\b|\bs[óo]lo\s+ida\b)`)
	returnRe    = regexp.MustCompile(`(?i)\breturn(?:ing)?\b`)
)

// DetectRoundTrip decides whether the itinerary has a return leg. Rules
// apply in order: an explicit round-trip phrase, then an explicit one-way
// phrase (which short-circuits to false), then two or more distinct dates,
// then the word "return".
func DetectRoundTrip(text string, dates []string) bool {
	if roundTripRe.MatchString(text) {
		return true
	}
	if oneWayRe.MatchString(text) {
		return false
	}
	if len(dates) >= 2 {
		return true
	}
	return returnRe.MatchString(text)
}
