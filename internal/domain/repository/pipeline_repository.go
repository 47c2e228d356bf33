package repository

import (
	"context"

	"flightmail-service/internal/domain/entity"
	"flightmail-service/pkg/flightparser"
)

// ResultCache memoizes parser results by content hash. Get returns
// (nil, nil) on a miss.
type ResultCache interface {
	Get(ctx context.Context, key string) (*flightparser.ParserResult, error)
	Set(ctx context.Context, key string, result flightparser.ParserResult) error
}

// EventPublisher emits trip lifecycle events.
type EventPublisher interface {
	PublishTrip(ctx context.Context, event entity.TripEvent) error
}
