package repository

import (
	"context"

	"flightmail-service/internal/domain/entity"
)

// TripRepository stores trips keyed by user.
type TripRepository interface {
	// Upsert writes trip, replacing any existing trip with the same
	// DedupeKey. trip.ID is set to the stored ID.
	Upsert(ctx context.Context, trip *entity.Trip) error
	FindByID(ctx context.Context, userEmail, id string) (*entity.Trip, error)
	ListByUser(ctx context.Context, userEmail string, limit int) ([]*entity.Trip, error)
}
