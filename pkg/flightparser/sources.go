package flightparser

import (
	"regexp"

	"flightmail-service/pkg/airports"
)

// Source identifies a sender family with a dedicated strategy.
type Source string

const (
	SourceUnknown     Source = ""
	SourceUnited      Source = "united"
	SourceDelta       Source = "delta"
	SourceAmerican    Source = "american"
	SourceSouthwest   Source = "southwest"
	SourceJetBlue     Source = "jetblue"
	SourceRyanair     Source = "ryanair"
	SourceChaseTravel Source = "chase-travel"
)

// Strategy extracts a flight from one email's subject and body.
type Strategy func(subject, body string) ParserResult

// DefaultStrategies maps every known source to its strategy.
func DefaultStrategies() map[Source]Strategy {
	return map[Source]Strategy{
		SourceUnited:      unitedProfile.parse,
		SourceDelta:       deltaProfile.parse,
		SourceAmerican:    americanProfile.parse,
		SourceSouthwest:   southwestProfile.parse,
		SourceJetBlue:     jetblueProfile.parse,
		SourceRyanair:     ryanairProfile.parse,
		SourceChaseTravel: ParseChaseTravel,
	}
}

const (
	sourceDateBonus         = 0.05
	sourceConfirmationBonus = 0.05
)

// airlineProfile describes an airline's own confirmation layout. Empty
// date or confirmation rules fall back to the shared extractors.
type airlineProfile struct {
	source         Source
	airline        string
	baseConfidence float64
	routes         []routeMatcher
	dates          []dateRule
	confirmation   []*regexp.Regexp
}

func (p airlineProfile) parse(subject, body string) ParserResult {
	text := joinText(subject, body)

	confirmation := firstCapture(text, p.confirmation)
	if confirmation == "" {
		confirmation = ExtractConfirmationNumber(text)
	}

	route, ok := matchRoute(text, p.routes)
	if !ok {
		return hybridGeneric(p.source, p.airline, confirmation, subject, body)
	}

	var dates []string
	if len(p.dates) > 0 {
		dates = collectDates(text, p.dates)
	}
	if len(dates) == 0 {
		dates = ExtractDates(text)
	}
	roundTrip := DetectRoundTrip(text, dates)

	flight := &ParsedFlight{
		Origin:             route.Origin,
		Destination:        route.Destination,
		IsOneWay:           !roundTrip,
		Airline:            p.airline,
		ConfirmationNumber: confirmation,
		Confidence:         scoreSource(p.baseConfidence, len(dates) > 0, confirmation != ""),
	}
	applyDates(flight, dates, roundTrip)

	return succeed(string(p.source), flight)
}

func scoreSource(base float64, hasDate, hasConfirmation bool) float64 {
	c := base
	if hasDate {
		c += sourceDateBonus
	}
	if hasConfirmation {
		c += sourceConfirmationBonus
	}
	return c
}

// hybridParserUsed tags results produced by generic extraction on behalf
// of a source strategy.
func hybridParserUsed(source Source) string {
	return string(source) + "+" + ParserGeneric
}

// hybridGeneric runs the generic strategy and overlays what the source
// already knows: the airline and, when found, the confirmation code.
func hybridGeneric(source Source, airline, confirmation, subject, body string) ParserResult {
	result := ParseGeneric(subject, body)
	result.ParserUsed = hybridParserUsed(source)
	if !result.Success {
		return result
	}
	if airline != "" {
		result.Flight.Airline = airline
	}
	if confirmation != "" {
		result.Flight.ConfirmationNumber = confirmation
	}
	return result
}

// parenCodes takes the first two distinct valid codes that appear in
// parentheses, for layouts without from/to wording.
func parenCodes() routeMatcher {
	re := regexp.MustCompile(`\(([A-Z]{3})\)`)
	return func(text string) (string, string, bool) {
		var origin string
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			code := m[1]
			if !airports.IsValidCode(code) {
				continue
			}
			if origin == "" {
				origin = code
				continue
			}
			if code != origin {
				return origin, code, true
			}
		}
		return "", "", false
	}
}
