package entity

import (
	"time"

	"gorm.io/gorm"
)

// Airport is a reference row used to geocode IATA codes.
type Airport struct {
	ID          uint
	Code        string
	Name        string
	CityName    string
	CountryCode string
	Latitude    float64
	Longitude   float64
	TzName      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt
}

// ToPlace converts the airport row into a resolved Place.
func (a *Airport) ToPlace(query string) *Place {
	return &Place{
		Query:     query,
		Code:      a.Code,
		Name:      a.Name,
		City:      a.CityName,
		Country:   a.CountryCode,
		Latitude:  a.Latitude,
		Longitude: a.Longitude,
		Resolved:  true,
	}
}
