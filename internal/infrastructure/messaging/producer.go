package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"flightmail-service/internal/domain/entity"
	"flightmail-service/internal/domain/repository"
	"flightmail-service/pkg/logger"

	"github.com/segmentio/kafka-go"
)

// messageWriter is the subset of kafka.Writer the producer needs
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer publishes trip events to Kafka, keyed by user email so a
// user's events stay ordered within a partition.
type Producer struct {
	writer messageWriter
	topic  string
	logger logger.Logger
}

func NewProducer(brokers []string, topic string, logger logger.Logger) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.Hash{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		Async:        false,
	}

	return &Producer{
		writer: writer,
		topic:  topic,
		logger: logger,
	}
}

var _ repository.EventPublisher = (*Producer)(nil)

func (p *Producer) PublishTrip(ctx context.Context, event entity.TripEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	message := kafka.Message{
		Topic: p.topic,
		Key:   []byte(event.UserEmail),
		Value: data,
		Time:  time.Now(),
	}

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		return fmt.Errorf("failed to write message to Kafka: %w", err)
	}

	p.logger.Debug("Published trip event", "topic", p.topic, "tripId", event.TripID, "type", event.Type)
	return nil
}

func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}
