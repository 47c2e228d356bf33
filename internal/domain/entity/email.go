package entity

import (
	"time"
)

// Email log processing status
const (
	StatusPending    = "PENDING"
	StatusProcessing = "PROCESSING"
	StatusCompleted  = "COMPLETED"
	StatusFailed     = "FAILED"
	StatusSkipped    = "SKIPPED"
)

// Email ingestion channels
const (
	ChannelGmail   = "gmail"
	ChannelWebhook = "webhook"
)

// Email is an inbound message. The body fields are held in memory for
// parsing only and are never written to the email log.
type Email struct {
	EmailID          string                 `bson:"emailId"`
	Channel          string                 `bson:"channel"`
	From             string                 `bson:"from"`
	To               string                 `bson:"to"`
	Subject          string                 `bson:"subject"`
	Body             string                 `bson:"-"`
	HTMLBody         string                 `bson:"-"`
	ReceivedAt       time.Time              `bson:"receivedAt"`
	Labels           []string               `bson:"labels,omitempty"`
	ProcessedAt      time.Time              `bson:"processedAt,omitempty"`
	ProcessStatus    string                 `bson:"processStatus"`
	ProcessorType    string                 `bson:"processorType,omitempty"`
	ProcessStartedAt time.Time              `bson:"processStartedAt,omitempty"`
	ErrorDetail      string                 `bson:"errorDetail,omitempty"`
	ExtractedData    map[string]interface{} `bson:"extractedData,omitempty"`
}
