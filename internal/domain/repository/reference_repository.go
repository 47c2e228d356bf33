package repository

import (
	"context"

	"flightmail-service/internal/domain/entity"
)

// AirlineRepository looks up carriers by IATA code
type AirlineRepository interface {
	GetByCode(ctx context.Context, code string) (*entity.Airline, error)
}

// AirportRepository looks up airport reference rows
type AirportRepository interface {
	GetByCode(ctx context.Context, code string) (*entity.Airport, error)
	FindByCity(ctx context.Context, city string) (*entity.Airport, error)
}

// Geocoder resolves an airport code or place name to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (*entity.Place, error)
}
