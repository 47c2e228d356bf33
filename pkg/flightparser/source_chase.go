package flightparser

import (
	"regexp"
	"strings"

	"flightmail-service/pkg/airports"
)

// UnknownAirline is reported when a portal email names no known carrier.
const UnknownAirline = "Unknown Airline"

const (
	chaseStructuredConfidence = 0.8
	chaseScanConfidence       = 0.7
)

var chaseConfirmationRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i:\bairline\s+confirmation(?:\s+(?:code|number))?)\s*[#:]?\s*([A-Z0-9]{5,8})\b`),
	regexp.MustCompile(`(?i:\btrip\s+id)\s*[#:]?\s*([A-Z0-9]{5,8})\b`),
}

// Portal footers are full of card and rewards jargon.
var chaseStopwords = map[string]struct{}{
	"PTS": {}, "APR": {}, "APY": {}, "CSR": {}, "CSP": {}, "ATM": {}, "FAQ": {},
}

type carrierHint struct {
	needle string
	name   string
}

// Checked in order against lowercased text; more specific names first.
var carrierHints = []carrierHint{
	{"united airlines", "United Airlines"},
	{"delta air lines", "Delta Air Lines"},
	{"delta airlines", "Delta Air Lines"},
	{"american airlines", "American Airlines"},
	{"southwest airlines", "Southwest Airlines"},
	{"jetblue", "JetBlue"},
	{"alaska airlines", "Alaska Airlines"},
	{"spirit airlines", "Spirit Airlines"},
	{"frontier airlines", "Frontier Airlines"},
	{"hawaiian airlines", "Hawaiian Airlines"},
	{"sun country", "Sun Country Airlines"},
	{"air canada", "Air Canada"},
	{"british airways", "British Airways"},
	{"virgin atlantic", "Virgin Atlantic"},
	{"lufthansa", "Lufthansa"},
	{"air france", "Air France"},
	{"klm", "KLM"},
	{"iberia", "Iberia"},
	{"aer lingus", "Aer Lingus"},
	{"tap air portugal", "TAP Air Portugal"},
	{"emirates", "Emirates"},
	{"qatar airways", "Qatar Airways"},
	{"aeromexico", "Aeromexico"},
	{"avianca", "Avianca"},
	{"latam", "LATAM"},
	{"copa airlines", "Copa Airlines"},
	{"ryanair", "Ryanair"},
	{"easyjet", "easyJet"},
}

// DetectAirline names the carrier mentioned in a portal email.
func DetectAirline(text string) string {
	lower := strings.ToLower(text)
	for _, hint := range carrierHints {
		if strings.Contains(lower, hint.needle) {
			return hint.name
		}
	}
	return UnknownAirline
}

// ParseChaseTravel handles bank travel-portal itineraries. These relay a
// booking on some other carrier, so the airline is detected from the text.
// When no structured route is present it scans for bare codes before
// deferring to the generic strategy.
func ParseChaseTravel(subject, body string) ParserResult {
	text := joinText(subject, body)
	airline := DetectAirline(text)

	confirmation := firstCapture(text, chaseConfirmationRes)
	if confirmation == "" {
		confirmation = ExtractConfirmationNumber(text)
	}

	base := chaseStructuredConfidence
	route, ok := matchRoute(text, []routeMatcher{regexPair(cityCodeRe), regexPair(arrowRe)})
	if !ok {
		origin, dest, found := scanPortalCodes(text)
		if !found {
			return hybridGeneric(SourceChaseTravel, airline, confirmation, subject, body)
		}
		route = Route{Origin: origin, Destination: dest, FromScan: true}
		base = chaseScanConfidence
	}

	dates := ExtractDates(text)
	roundTrip := DetectRoundTrip(text, dates)

	flight := &ParsedFlight{
		Origin:             route.Origin,
		Destination:        route.Destination,
		IsOneWay:           !roundTrip,
		Airline:            airline,
		ConfirmationNumber: confirmation,
		Confidence:         scoreSource(base, len(dates) > 0, confirmation != ""),
		RouteFromScan:      route.FromScan,
	}
	applyDates(flight, dates, roundTrip)

	return succeed(string(SourceChaseTravel), flight)
}

// scanPortalCodes returns the first two distinct registry codes among the
// uppercase triples in text, skipping portal jargon.
func scanPortalCodes(text string) (string, string, bool) {
	var codes []string
	for _, token := range bareCodeRe.FindAllString(text, -1) {
		if _, stop := chaseStopwords[token]; stop || airports.IsStopword(token) {
			continue
		}
		if !airports.IsValidCode(token) {
			continue
		}
		if len(codes) == 1 && codes[0] == token {
			continue
		}
		codes = append(codes, token)
		if len(codes) == 2 {
			return codes[0], codes[1], true
		}
	}
	return "", "", false
}
