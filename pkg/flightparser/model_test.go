package flightparser

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCompleter struct {
	complete func(ctx context.Context, system, prompt string) (string, error)
	system   string
	prompt   string
}

func (s *stubCompleter) Complete(ctx context.Context, system, prompt string) (string, error) {
	s.system = system
	s.prompt = prompt
	return s.complete(ctx, system, prompt)
}

func replying(reply string) *stubCompleter {
	return &stubCompleter{complete: func(context.Context, string, string) (string, error) {
		return reply, nil
	}}
}

func TestParseWithModel_Replies(t *testing.T) {
	tests := []struct {
		name     string
		reply    string
		wantKind ErrorKind
		want     *ParsedFlight
	}{
		{
			name:  "json wrapped in prose with defaults",
			reply: "Here you go: {\"origin\": \"sfo\", \"destination\": \"JFK\", \"departureDate\": \"2024-05-01\"} Done.",
			want:  &ParsedFlight{Origin: "SFO", Destination: "JFK", DepartureDate: "2024-05-01", IsOneWay: true, Confidence: 0.7},
		},
		{
			name: "round trip with every field",
			reply: `{"origin":"LHR","destination":"JFK","departureDate":"2024-06-01","returnDate":"June 9, 2024",` +
				`"isOneWay":false,"airline":"British Airways","confirmationNumber":"XY12AB","confidence":0.92}`,
			want: &ParsedFlight{
				Origin: "LHR", Destination: "JFK", DepartureDate: "2024-06-01", ReturnDate: "2024-06-09",
				IsOneWay: false, Airline: "British Airways", ConfirmationNumber: "XY12AB", Confidence: 0.92,
			},
		},
		{
			name:  "city names keep their case",
			reply: `{"origin":"sfo","destination":"Paris","departureDate":null,"isOneWay":null,"confidence":null}`,
			want:  &ParsedFlight{Origin: "SFO", Destination: "Paris", IsOneWay: true, Confidence: 0.7},
		},
		{
			name:  "return date dropped for one way",
			reply: `{"origin":"LHR","destination":"JFK","returnDate":"2024-06-09","isOneWay":true}`,
			want:  &ParsedFlight{Origin: "LHR", Destination: "JFK", IsOneWay: true, Confidence: 0.7},
		},
		{
			name:     "no json",
			reply:    "I could not find a flight.",
			wantKind: ErrModelResponseUnparseable,
		},
		{
			name:     "broken json",
			reply:    "{origin: LHR}",
			wantKind: ErrModelResponseUnparseable,
		},
		{
			name:     "null destination",
			reply:    `{"origin":"LHR","destination":null}`,
			wantKind: ErrModelMissingFields,
		},
		{
			name:     "empty origin",
			reply:    `{"origin":"  ","destination":"JFK"}`,
			wantKind: ErrModelMissingFields,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewModelParser(replying(tt.reply))

			result := m.ParseWithModel(context.Background(), "a@b.com", "Trip", "body")

			assert.Equal(t, ParserModel, result.ParserUsed)
			if tt.want != nil {
				require.True(t, result.Success, result.Error)
				assert.Equal(t, tt.want, result.Flight)
				return
			}
			assert.False(t, result.Success)
			assert.Equal(t, tt.wantKind, result.ErrorKind)
		})
	}
}

func TestParseWithModel_SystemPrompt(t *testing.T) {
	c := replying(`{"origin":"SEA","destination":"HNL"}`)

	NewModelParser(c).ParseWithModel(context.Background(), "a@b.com", "Trip", "SEA to HNL via SFO")

	assert.Contains(t, c.system, "final destination")
	assert.Contains(t, c.system, "never a connection or layover")
	assert.Contains(t, c.system, "null for anything the email does not state")
	assert.Contains(t, c.system, "YYYY-MM-DD")
}

func TestParseWithModel_BackendErrors(t *testing.T) {
	t.Run("nil completer", func(t *testing.T) {
		result := NewModelParser(nil).ParseWithModel(context.Background(), "", "", "")
		assert.Equal(t, ErrModelUnavailable, result.ErrorKind)
	})

	t.Run("backend unavailable", func(t *testing.T) {
		c := &stubCompleter{complete: func(context.Context, string, string) (string, error) {
			return "", ErrBackendUnavailable
		}}
		result := NewModelParser(c).ParseWithModel(context.Background(), "", "", "")
		assert.Equal(t, ErrModelUnavailable, result.ErrorKind)
	})

	t.Run("request error", func(t *testing.T) {
		c := &stubCompleter{complete: func(context.Context, string, string) (string, error) {
			return "", errors.New("API error (401): invalid key")
		}}
		result := NewModelParser(c).ParseWithModel(context.Background(), "", "", "")
		assert.Equal(t, ErrModelRequestFailed, result.ErrorKind)
		assert.Contains(t, result.Error, "401")
	})

	t.Run("timeout", func(t *testing.T) {
		c := &stubCompleter{complete: func(ctx context.Context, _, _ string) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		}}
		result := NewModelParser(c, WithModelTimeout(10*time.Millisecond)).
			ParseWithModel(context.Background(), "", "", "")
		assert.Equal(t, ErrModelRequestFailed, result.ErrorKind)
		assert.Contains(t, result.Error, "timed out")
	})

	t.Run("panic recovered", func(t *testing.T) {
		c := &stubCompleter{complete: func(context.Context, string, string) (string, error) {
			panic("boom")
		}}
		result := NewModelParser(c).ParseWithModel(context.Background(), "", "", "")
		assert.False(t, result.Success)
		assert.Equal(t, ErrModelRequestFailed, result.ErrorKind)
	})
}

func TestParseWithModel_TruncatesBody(t *testing.T) {
	c := replying(`{"origin":"LHR","destination":"JFK"}`)
	body := strings.Repeat("é", 6000)

	NewModelParser(c).ParseWithModel(context.Background(), "from@x.com", "Subject line", body)

	assert.Equal(t, DefaultMaxBodyChars, strings.Count(c.prompt, "é"))
	assert.Contains(t, c.prompt, "From: from@x.com")
	assert.Contains(t, c.prompt, "Subject: Subject line")
}

func TestExtractJSONObject(t *testing.T) {
	got, ok := extractJSONObject(`noise {"a":"}","b":{"c":1}} trailing {"d":2}`)
	assert.True(t, ok)
	assert.Equal(t, `{"a":"}","b":{"c":1}}`, got)

	_, ok = extractJSONObject(`{"unterminated": true`)
	assert.False(t, ok)
}
