// Package flightparser turns flight confirmation emails into structured
// trip data. Source-specific strategies run first, then a generic
// strategy, then a language-model fallback.
package flightparser

import "math"

// ParsedFlight is the structured result of a successful extraction.
type ParsedFlight struct {
	Origin             string  `json:"origin"`
	Destination        string  `json:"destination"`
	DepartureDate      string  `json:"departureDate,omitempty"`
	ReturnDate         string  `json:"returnDate,omitempty"`
	IsOneWay           bool    `json:"isOneWay"`
	Airline            string  `json:"airline,omitempty"`
	ConfirmationNumber string  `json:"confirmationNumber,omitempty"`
	Confidence         float64 `json:"confidence"`
	// RouteFromScan is set when the route came from scanning bare codes in
	// the document rather than from a labeled pattern.
	RouteFromScan bool `json:"routeFromScan,omitempty"`
}

// ErrorKind classifies why a parse attempt failed.
type ErrorKind string

const (
	ErrNoRouteFound             ErrorKind = "no_route_found"
	ErrLowConfidence            ErrorKind = "low_confidence"
	ErrModelUnavailable         ErrorKind = "model_unavailable"
	ErrModelRequestFailed       ErrorKind = "model_request_failed"
	ErrModelResponseUnparseable ErrorKind = "model_response_unparseable"
	ErrModelMissingFields       ErrorKind = "model_missing_fields"
)

// ParserResult is the outcome of one parse attempt. Exactly one of Flight
// or ErrorKind is set.
type ParserResult struct {
	Success    bool          `json:"success"`
	Flight     *ParsedFlight `json:"flight,omitempty"`
	Error      string        `json:"error,omitempty"`
	ErrorKind  ErrorKind     `json:"errorKind,omitempty"`
	ParserUsed string        `json:"parserUsed"`
}

// Confidence returns the flight confidence, or 0 for failed results.
func (r ParserResult) Confidence() float64 {
	if !r.Success || r.Flight == nil {
		return 0
	}
	return r.Flight.Confidence
}

func succeed(parserUsed string, flight *ParsedFlight) ParserResult {
	flight.Confidence = roundConfidence(flight.Confidence)
	return ParserResult{Success: true, Flight: flight, ParserUsed: parserUsed}
}

func fail(parserUsed string, kind ErrorKind, msg string) ParserResult {
	return ParserResult{Success: false, Error: msg, ErrorKind: kind, ParserUsed: parserUsed}
}

// roundConfidence keeps additive scores like 0.3+0.3+0.2 at two decimals so
// threshold comparisons are exact.
func roundConfidence(c float64) float64 {
	if c < 0 {
		c = 0
	}
	if c > 1 {
		c = 1
	}
	return math.Round(c*100) / 100
}
