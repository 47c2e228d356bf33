package flightparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectRoundTrip(t *testing.T) {
	twoDates := []string{"2024-01-15", "2024-01-22"}
	oneDate := []string{"2024-01-15"}

	tests := []struct {
		name  string
		text  string
		dates []string
		want  bool
	}{
		{"round trip phrase", "Your round-trip to Paris", oneDate, true},
		{"roundtrip single word", "ROUNDTRIP fare", nil, true},
		{"spanish round trip", "Vuelo de ida y vuelta", nil, true},
		{"one way wins over dates and return", "One-way ticket. See our return policy.", twoDates, false},
		{"spanish one way", "Solo ida", twoDates, false},
		{"one way in footer still wins", "Outbound Jan 15, return Jan 22.\nFares shown are one way per person.", twoDates, false},
		{"one way beats return flight mention", "One-way ticket. Need a return flight? Book now.", twoDates, false},
		{"one way with a return flight notice", "One-way ticket. Your return flight is not included.", nil, false},
		{"two dates", "Outbound and inbound", twoDates, true},
		{"returning keyword", "Returning flight details", oneDate, true},
		{"nothing", "Just a flight", oneDate, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectRoundTrip(tt.text, tt.dates))
		})
	}
}
