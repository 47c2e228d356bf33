package flightparser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"flightmail-service/pkg/airports"
	"flightmail-service/pkg/logger"
)

// ParserModel is the parserUsed tag of the model fallback.
const ParserModel = "model"

const (
	DefaultModelTimeout    = 30 * time.Second
	DefaultMaxBodyChars    = 5000
	defaultModelConfidence = 0.7
)

// ErrBackendUnavailable is returned by a Completer that has no usable
// backend (missing credentials, provider disabled).
var ErrBackendUnavailable = errors.New("model backend unavailable")

// Completer sends a system prompt and a user message to a language model
// and returns its raw text reply.
type Completer interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

const modelSystemPrompt = `You extract flight booking details from emails.
Origin is where the trip starts. Destination is the final destination of the
outbound journey, never a connection or layover airport.
Use 3-letter IATA codes when the email gives them, otherwise the city name.
Dates must be ISO format YYYY-MM-DD.
Respond ONLY with a JSON object and no other text, using exactly these fields
and null for anything the email does not state:
{
  "origin": "departure airport code or city, or null",
  "destination": "final destination airport code or city (not a layover), or null",
  "departureDate": "YYYY-MM-DD or null",
  "returnDate": "YYYY-MM-DD or null",
  "isOneWay": true, false or null,
  "airline": "airline name or null",
  "confirmationNumber": "booking code or null",
  "confidence": number between 0 and 1, or null
}
If the email has no flight, return {"origin": null, "destination": null}.`

// modelReply mirrors the JSON the prompt asks for. Pointers distinguish
// absent fields from zero values.
type modelReply struct {
	Origin             *string  `json:"origin"`
	Destination        *string  `json:"destination"`
	DepartureDate      *string  `json:"departureDate"`
	ReturnDate         *string  `json:"returnDate"`
	IsOneWay           *bool    `json:"isOneWay"`
	Airline            *string  `json:"airline"`
	ConfirmationNumber *string  `json:"confirmationNumber"`
	Confidence         *float64 `json:"confidence"`
}

// ModelParser is the last-resort extraction stage.
type ModelParser struct {
	completer    Completer
	timeout      time.Duration
	maxBodyChars int
	logger       logger.Logger
}

// ModelOption configures a ModelParser.
type ModelOption func(*ModelParser)

func WithModelTimeout(d time.Duration) ModelOption {
	return func(m *ModelParser) {
		if d > 0 {
			m.timeout = d
		}
	}
}

func WithMaxBodyChars(n int) ModelOption {
	return func(m *ModelParser) {
		if n > 0 {
			m.maxBodyChars = n
		}
	}
}

func WithModelLogger(l logger.Logger) ModelOption {
	return func(m *ModelParser) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewModelParser creates a model fallback over completer. A nil completer
// yields a parser that always reports the backend as unavailable.
func NewModelParser(completer Completer, opts ...ModelOption) *ModelParser {
	m := &ModelParser{
		completer:    completer,
		timeout:      DefaultModelTimeout,
		maxBodyChars: DefaultMaxBodyChars,
		logger:       logger.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ParseWithModel asks the language model to extract the flight. It never
// panics and every failure comes back as a ParserResult.
func (m *ModelParser) ParseWithModel(ctx context.Context, from, subject, body string) (result ParserResult) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("model fallback panicked", "panic", r)
			result = fail(ParserModel, ErrModelRequestFailed, fmt.Sprintf("model fallback panicked: %v", r))
		}
	}()

	if m == nil || m.completer == nil {
		return fail(ParserModel, ErrModelUnavailable, ErrBackendUnavailable.Error())
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	start := time.Now()
	reply, err := m.completer.Complete(ctx, modelSystemPrompt, m.buildPrompt(from, subject, body))
	if err != nil {
		m.logger.Warn("model request failed", "error", err, "elapsed", time.Since(start))
		switch {
		case errors.Is(err, ErrBackendUnavailable):
			return fail(ParserModel, ErrModelUnavailable, err.Error())
		case errors.Is(err, context.DeadlineExceeded):
			return fail(ParserModel, ErrModelRequestFailed, fmt.Sprintf("model request timed out after %s", m.timeout))
		default:
			return fail(ParserModel, ErrModelRequestFailed, err.Error())
		}
	}

	return parseModelReply(reply)
}

func (m *ModelParser) buildPrompt(from, subject, body string) string {
	var b strings.Builder
	b.WriteString("From: ")
	b.WriteString(from)
	b.WriteString("\nSubject: ")
	b.WriteString(subject)
	b.WriteString("\n\n")
	b.WriteString(truncateRunes(body, m.maxBodyChars))
	return b.String()
}

func parseModelReply(reply string) ParserResult {
	raw, ok := extractJSONObject(reply)
	if !ok {
		return fail(ParserModel, ErrModelResponseUnparseable, "no JSON object in model response")
	}

	var parsed modelReply
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return fail(ParserModel, ErrModelResponseUnparseable, fmt.Sprintf("invalid JSON in model response: %v", err))
	}

	origin := normalizePlace(deref(parsed.Origin))
	destination := normalizePlace(deref(parsed.Destination))
	if origin == "" || destination == "" {
		return fail(ParserModel, ErrModelMissingFields, "model response is missing origin or destination")
	}

	flight := &ParsedFlight{
		Origin:             origin,
		Destination:        destination,
		IsOneWay:           true,
		Airline:            deref(parsed.Airline),
		ConfirmationNumber: deref(parsed.ConfirmationNumber),
		Confidence:         defaultModelConfidence,
	}
	if parsed.IsOneWay != nil {
		flight.IsOneWay = *parsed.IsOneWay
	}
	if parsed.Confidence != nil {
		flight.Confidence = *parsed.Confidence
	}
	if d, ok := NormalizeDate(deref(parsed.DepartureDate)); ok {
		flight.DepartureDate = d
	}
	if !flight.IsOneWay {
		if d, ok := NormalizeDate(deref(parsed.ReturnDate)); ok {
			flight.ReturnDate = d
		}
	}

	return succeed(ParserModel, flight)
}

// extractJSONObject returns the first brace-balanced {...} block in s.
func extractJSONObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

func truncateRunes(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit])
}

// normalizePlace upper-cases airport codes and leaves city names as given.
func normalizePlace(place string) string {
	if airports.IsValidCode(place) {
		return strings.ToUpper(place)
	}
	return place
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
