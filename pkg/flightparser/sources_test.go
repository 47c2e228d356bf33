package flightparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceStrategies(t *testing.T) {
	tests := []struct {
		name   string
		source Source
		body   string
		want   ParsedFlight
	}{
		{
			name:   "united",
			source: SourceUnited,
			body:   "Washington, DC (IAD) to Paris (CDG)\nMon, Jan 15, 2024\nConfirmation: ABC123",
			want: ParsedFlight{
				Origin: "IAD", Destination: "CDG", DepartureDate: "2024-01-15", IsOneWay: true,
				Airline: "United Airlines", ConfirmationNumber: "ABC123", Confidence: 0.85,
			},
		},
		{
			name:   "delta compact dates",
			source: SourceDelta,
			body:   "Confirmation #: GH7K2L\nATL › LAX\nSat 15JAN24 DL 1234",
			want: ParsedFlight{
				Origin: "ATL", Destination: "LAX", DepartureDate: "2024-01-15", IsOneWay: true,
				Airline: "Delta Air Lines", ConfirmationNumber: "GH7K2L", Confidence: 0.9,
			},
		},
		{
			name:   "american parenthesized codes",
			source: SourceAmerican,
			body:   "Record Locator: QWERTY\nDallas/Fort Worth (DFW)\n7:00 AM\nLos Angeles (LAX)\nMonday, January 15, 2024",
			want: ParsedFlight{
				Origin: "DFW", Destination: "LAX", DepartureDate: "2024-01-15", IsOneWay: true,
				Airline: "American Airlines", ConfirmationNumber: "QWERTY", Confidence: 0.85,
			},
		},
		{
			name:   "southwest stacked lines",
			source: SourceSouthwest,
			body:   "Confirmation # AB12CD\nDeparts\n6:00AM\nDAL\nDallas (Love Field)\nArrives\n7:05AM\nHOU\nTuesday, 01/16/24",
			want: ParsedFlight{
				Origin: "DAL", Destination: "HOU", DepartureDate: "2024-01-16", IsOneWay: true,
				Airline: "Southwest Airlines", ConfirmationNumber: "AB12CD", Confidence: 0.9,
			},
		},
		{
			name:   "jetblue",
			source: SourceJetBlue,
			body:   "Your confirmation code is HJKLMN\nJFK - BOS\nJanuary 20, 2024",
			want: ParsedFlight{
				Origin: "JFK", Destination: "BOS", DepartureDate: "2024-01-20", IsOneWay: true,
				Airline: "JetBlue", ConfirmationNumber: "HJKLMN", Confidence: 0.85,
			},
		},
		{
			name:   "ryanair day first short year",
			source: SourceRyanair,
			body:   "Reservation number: AB1CDE\nDublin (DUB) - London Stansted (STN)\nMon, 15 Jan 24",
			want: ParsedFlight{
				Origin: "DUB", Destination: "STN", DepartureDate: "2024-01-15", IsOneWay: true,
				Airline: "Ryanair", ConfirmationNumber: "AB1CDE", Confidence: 0.9,
			},
		},
		{
			name:   "chase travel round trip",
			source: SourceChaseTravel,
			body: "Trip ID: 1234567\nYour flight on Alaska Airlines\nSeattle (SEA) to Honolulu (HNL)\n" +
				"Departure: Fri, Feb 9, 2024\nReturn: Fri, Feb 16, 2024",
			want: ParsedFlight{
				Origin: "SEA", Destination: "HNL", DepartureDate: "2024-02-09", ReturnDate: "2024-02-16",
				IsOneWay: false, Airline: "Alaska Airlines", ConfirmationNumber: "1234567", Confidence: 0.9,
			},
		},
	}

	strategies := DefaultStrategies()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			strategy, ok := strategies[tt.source]
			require.True(t, ok)

			result := strategy("", tt.body)

			require.True(t, result.Success, result.Error)
			assert.Equal(t, string(tt.source), result.ParserUsed)
			assert.Equal(t, tt.want, *result.Flight)
		})
	}
}

func TestSourceStrategy_HybridFallback(t *testing.T) {
	result := unitedProfile.parse("Your flight", "Flight: SFO-EWR\nConfirmation: QX12ZP")

	require.True(t, result.Success)
	assert.Equal(t, "united+generic", result.ParserUsed)
	assert.Equal(t, "United Airlines", result.Flight.Airline)
	assert.Equal(t, "QX12ZP", result.Flight.ConfirmationNumber)
	assert.Equal(t, "SFO", result.Flight.Origin)
	assert.Equal(t, "EWR", result.Flight.Destination)
	assert.Equal(t, 0.7, result.Flight.Confidence)
}

func TestSourceStrategy_HybridFailureKeepsTag(t *testing.T) {
	result := deltaProfile.parse("Delta", "Thanks for flying Delta")

	assert.False(t, result.Success)
	assert.Equal(t, "delta+generic", result.ParserUsed)
	assert.Equal(t, ErrNoRouteFound, result.ErrorKind)
}

func TestParseChaseTravel_ScanFallback(t *testing.T) {
	body := "Chase Travel itinerary\nFlight: SEA HNL\nYou earned 500 PTS"

	result := ParseChaseTravel("", body)

	require.True(t, result.Success)
	assert.Equal(t, "SEA", result.Flight.Origin)
	assert.Equal(t, "HNL", result.Flight.Destination)
	assert.Equal(t, UnknownAirline, result.Flight.Airline)
	assert.True(t, result.Flight.RouteFromScan)
	assert.Equal(t, 0.7, result.Flight.Confidence)
}

func TestParseChaseTravel_DefersToGeneric(t *testing.T) {
	result := ParseChaseTravel("", "Chase Travel: your hotel is booked")

	assert.False(t, result.Success)
	assert.Equal(t, "chase-travel+generic", result.ParserUsed)
}

func TestDetectAirline(t *testing.T) {
	assert.Equal(t, "Air Canada", DetectAirline("Operated by AIR CANADA"))
	assert.Equal(t, "Delta Air Lines", DetectAirline("delta air lines flight 12"))
	assert.Equal(t, UnknownAirline, DetectAirline("Your flight is booked"))
}
