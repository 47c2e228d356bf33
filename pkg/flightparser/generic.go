package flightparser

import "strings"

// ParserGeneric is the parserUsed tag of the source-agnostic strategy.
const ParserGeneric = "generic"

const (
	genericBase              = 0.3
	genericRouteBonus        = 0.3
	genericDateBonus         = 0.2
	genericConfirmationBonus = 0.1
)

// ParseGeneric applies the shared extractors to subject and body. It fails
// only when no route can be found.
func ParseGeneric(subject, body string) ParserResult {
	text := joinText(subject, body)

	route, ok := ExtractRoute(text)
	if !ok {
		return fail(ParserGeneric, ErrNoRouteFound, "could not find origin and destination airports")
	}

	dates := ExtractDates(text)
	confirmation := ExtractConfirmationNumber(text)
	roundTrip := DetectRoundTrip(text, dates)

	confidence := genericBase + genericRouteBonus
	if len(dates) > 0 {
		confidence += genericDateBonus
	}
	if confirmation != "" {
		confidence += genericConfirmationBonus
	}

	flight := &ParsedFlight{
		Origin:             route.Origin,
		Destination:        route.Destination,
		IsOneWay:           !roundTrip,
		ConfirmationNumber: confirmation,
		Confidence:         confidence,
		RouteFromScan:      route.FromScan,
	}
	applyDates(flight, dates, roundTrip)

	return succeed(ParserGeneric, flight)
}

// applyDates sets the earliest date as departure and, for round trips, the
// second as return.
func applyDates(flight *ParsedFlight, dates []string, roundTrip bool) {
	if len(dates) > 0 {
		flight.DepartureDate = dates[0]
	}
	if roundTrip && len(dates) > 1 {
		flight.ReturnDate = dates[1]
	}
}

func joinText(subject, body string) string {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return body
	}
	return subject + "\n" + body
}
