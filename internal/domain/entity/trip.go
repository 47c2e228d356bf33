package entity

import (
	"time"
)

// Trip review status
const (
	TripStatusConfirmed     = "confirmed"
	TripStatusPendingReview = "pending_review"
)

// Place is a geocoded airport or city.
type Place struct {
	Query     string  `bson:"query" json:"query"`
	Code      string  `bson:"code,omitempty" json:"code,omitempty"`
	Name      string  `bson:"name,omitempty" json:"name,omitempty"`
	City      string  `bson:"city,omitempty" json:"city,omitempty"`
	Country   string  `bson:"country,omitempty" json:"country,omitempty"`
	Latitude  float64 `bson:"latitude" json:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude"`
	Resolved  bool    `bson:"resolved" json:"resolved"`
}

// Trip is a flight recorded against the user who forwarded the
// confirmation. Failed extractions are stored as pending-review
// placeholders carrying the error and the subject, never the body.
type Trip struct {
	ID                 string    `bson:"_id" json:"id"`
	DedupeKey          string    `bson:"dedupeKey" json:"dedupeKey"`
	UserEmail          string    `bson:"userEmail" json:"userEmail"`
	Status             string    `bson:"status" json:"status"`
	Origin             *Place    `bson:"origin,omitempty" json:"origin,omitempty"`
	Destination        *Place    `bson:"destination,omitempty" json:"destination,omitempty"`
	DepartureDate      string    `bson:"departureDate,omitempty" json:"departureDate,omitempty"`
	ReturnDate         string    `bson:"returnDate,omitempty" json:"returnDate,omitempty"`
	IsOneWay           bool      `bson:"isOneWay" json:"isOneWay"`
	Airline            string    `bson:"airline,omitempty" json:"airline,omitempty"`
	ConfirmationNumber string    `bson:"confirmationNumber,omitempty" json:"confirmationNumber,omitempty"`
	Confidence         float64   `bson:"confidence" json:"confidence"`
	ParserUsed         string    `bson:"parserUsed" json:"parserUsed"`
	ParseError         string    `bson:"parseError,omitempty" json:"parseError,omitempty"`
	ParseErrorKind     string    `bson:"parseErrorKind,omitempty" json:"parseErrorKind,omitempty"`
	Subject            string    `bson:"subject,omitempty" json:"subject,omitempty"`
	SourceEmailID      string    `bson:"sourceEmailId,omitempty" json:"sourceEmailId,omitempty"`
	CreatedAt          time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time `bson:"updatedAt" json:"updatedAt"`
}

// TripEvent is published whenever a trip is written.
type TripEvent struct {
	Type        string    `json:"type"`
	TripID      string    `json:"tripId"`
	UserEmail   string    `json:"userEmail"`
	Status      string    `json:"status"`
	ParserUsed  string    `json:"parserUsed"`
	Origin      string    `json:"origin,omitempty"`
	Destination string    `json:"destination,omitempty"`
	OccurredAt  time.Time `json:"occurredAt"`
}

const TripRecordedEvent = "trip.recorded"
