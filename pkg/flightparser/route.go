package flightparser

import (
	"regexp"

	"flightmail-service/pkg/airports"
)

// Route is an origin/destination pair of registry-valid airport codes.
type Route struct {
	Origin      string
	Destination string
	FromScan    bool
}

// routeMatcher returns the first valid pair it can find in text.
type routeMatcher func(text string) (origin, destination string, ok bool)

const codeInParens = `\(([A-Z]{3})(?:\s*[-–][^)\n]*)?\)`

var (
	fromToRe = regexp.MustCompile(`(?i:\bfrom)\b\s*:?\s*(?:[^\n()]{0,40}\()?([A-Z]{3})\b\)?[\s\S]{0,80}?\b(?i:to)\b\s*:?\s*(?:[^\n()]{0,40}\()?([A-Z]{3})\b`)
	arrowRe  = regexp.MustCompile(`\b([A-Z]{3})\s*(?:→|->|–|—|-|›|»|✈|>|\bto\b)\s*([A-Z]{3})\b`)

	departLabelRe = regexp.MustCompile(`(?i)\bdepart(?:ing|ure|s|ed)?\b`)
	arriveLabelRe = regexp.MustCompile(`(?i)\barriv(?:ing|al|es|ed|e)\b`)

	cityCodeRe = regexp.MustCompile(codeInParens + `\s*(?:(?i:to)|→|->|–|—|-|›|»|✈|>)\s*[^()\n]{0,60}?` + codeInParens)

	bareCodeRe = regexp.MustCompile(`\b[A-Z]{3}\b`)
)

// labeledWindow bounds how far after a depart/arrive label a code may sit.
const labeledWindow = 80

var routeMatchers = []routeMatcher{
	regexPair(fromToRe),
	regexPair(arrowRe),
	labeledPair(departLabelRe, arriveLabelRe),
	regexPair(cityCodeRe),
}

// ExtractRoute finds the origin and destination airports in text. Labeled
// patterns are tried in order; if none yields two valid codes the first two
// distinct valid codes anywhere in the document are used.
func ExtractRoute(text string) (Route, bool) {
	if route, ok := matchRoute(text, routeMatchers); ok {
		return route, true
	}
	codes := airports.FindCodesInText(text)
	if len(codes) >= 2 {
		return Route{Origin: codes[0], Destination: codes[1], FromScan: true}, true
	}
	return Route{}, false
}

func matchRoute(text string, matchers []routeMatcher) (Route, bool) {
	for _, match := range matchers {
		if origin, dest, ok := match(text); ok {
			return Route{Origin: origin, Destination: dest}, true
		}
	}
	return Route{}, false
}

func validPair(origin, dest string) bool {
	return origin != dest && airports.IsValidCode(origin) && airports.IsValidCode(dest)
}

// regexPair uses the first two capture groups of re as origin and destination.
func regexPair(re *regexp.Regexp) routeMatcher {
	return func(text string) (string, string, bool) {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if validPair(m[1], m[2]) {
				return m[1], m[2], true
			}
		}
		return "", "", false
	}
}

// labeledPair takes the first valid code after a departure label and the
// first valid code after the next arrival label that follows it.
func labeledPair(departRe, arriveRe *regexp.Regexp) routeMatcher {
	return func(text string) (string, string, bool) {
		for _, dep := range departRe.FindAllStringIndex(text, -1) {
			origin, originEnd := firstCodeWithin(text, dep[1], labeledWindow)
			if origin == "" {
				continue
			}
			arr := arriveRe.FindStringIndex(text[originEnd:])
			if arr == nil {
				continue
			}
			dest, _ := firstCodeWithin(text, originEnd+arr[1], labeledWindow)
			if validPair(origin, dest) {
				return origin, dest, true
			}
		}
		return "", "", false
	}
}

// firstCodeWithin returns the first registry-valid code starting within
// window bytes of from, and the offset just past it.
func firstCodeWithin(text string, from, window int) (string, int) {
	end := from + window
	if end > len(text) {
		end = len(text)
	}
	for _, loc := range bareCodeRe.FindAllStringIndex(text[from:end], -1) {
		code := text[from+loc[0] : from+loc[1]]
		if airports.IsValidCode(code) {
			return code, from + loc[1]
		}
	}
	return "", from
}
