package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"flightmail-service/internal/domain/entity"
	"flightmail-service/pkg/logger"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestProducer_PublishTrip(t *testing.T) {
	writer := &fakeWriter{}
	p := &Producer{writer: writer, topic: "trips.recorded", logger: logger.NewNopLogger()}

	event := entity.TripEvent{
		Type:        entity.TripRecordedEvent,
		TripID:      "trip-1",
		UserEmail:   "traveler@example.com",
		Status:      entity.TripStatusConfirmed,
		ParserUsed:  "united",
		Origin:      "IAD",
		Destination: "CDG",
		OccurredAt:  time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	require.NoError(t, p.PublishTrip(context.Background(), event))
	require.Len(t, writer.messages, 1)

	msg := writer.messages[0]
	assert.Equal(t, "trips.recorded", msg.Topic)
	assert.Equal(t, []byte("traveler@example.com"), msg.Key)

	var decoded entity.TripEvent
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, event, decoded)

	require.NoError(t, p.Close())
	assert.True(t, writer.closed)
}

func TestProducer_PublishTripError(t *testing.T) {
	p := &Producer{writer: &fakeWriter{err: errors.New("broker down")}, topic: "t", logger: logger.NewNopLogger()}

	err := p.PublishTrip(context.Background(), entity.TripEvent{TripID: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")
}
