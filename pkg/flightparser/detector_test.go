package flightparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectSource(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		subject string
		body    string
		want    Source
	}{
		{"airline domain in sender", "reservations@united.com", "", "", SourceUnited},
		{"subdomain sender", "DeltaAirLines@t.delta.com", "Your trip", "", SourceDelta},
		{"american short domain", "no-reply@info.email.aa.com", "", "", SourceAmerican},
		{"portal wins over quoted airline", "no-reply@chasetravel.com", "", "Your United Airlines flight via united.com", SourceChaseTravel},
		{"trip id beats quoted airline name", "noreply@expedia.com", "Trip ID 1234", "your United Airlines flight", SourceChaseTravel},
		{"chase sender domain", "travel@chase.com", "Your itinerary", "Delta Air Lines", SourceChaseTravel},
		{"forwarded airline name in subject", "friend@gmail.com", "Fwd: Your Delta Air Lines trip", "", SourceDelta},
		{"domain in body", "me@example.com", "", "Manage at jetblue.com", SourceJetBlue},
		{"case insensitive", "me@example.com", "RYANAIR booking", "", SourceRyanair},
		{"unknown", "me@example.com", "Hello", "See you soon", SourceUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectSource(tt.from, tt.subject, tt.body))
		})
	}
}
