package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"flightmail-service/internal/domain/entity"
	"flightmail-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormAirportRepository reads the airport reference table
type GormAirportRepository struct {
	db *gorm.DB
}

func NewGormAirportRepository(db *gorm.DB) repository.AirportRepository {
	return &GormAirportRepository{
		db: db,
	}
}

// Airports GORM model for database mapping
type Airports struct {
	ID          uint           `gorm:"primaryKey"`
	AirportCode string         `gorm:"column:airportcode;unique"`
	AirportName string         `gorm:"column:airport_name"`
	CityName    string         `gorm:"column:cityname"`
	CountryCode string         `gorm:"column:countrycode"`
	Latitude    float64        `gorm:"column:latitude"`
	Longitude   float64        `gorm:"column:longitude"`
	TzName      string         `gorm:"column:tzname"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName overrides the default table name
func (Airports) TableName() string {
	return "m_airports"
}

// GetByCode finds an airport by IATA code
func (r *GormAirportRepository) GetByCode(ctx context.Context, code string) (*entity.Airport, error) {
	var airport Airports
	result := r.db.WithContext(ctx).Where("airportcode = ?", strings.ToUpper(code)).First(&airport)
	if result.Error != nil {
		return nil, translateGormError(result.Error)
	}
	return airport.toEntity(), nil
}

// FindByCity returns the first airport whose city name matches, case-insensitively
func (r *GormAirportRepository) FindByCity(ctx context.Context, city string) (*entity.Airport, error) {
	var airport Airports
	result := r.db.WithContext(ctx).
		Where("cityname ILIKE ?", strings.TrimSpace(city)).
		Order("airportcode").
		First(&airport)
	if result.Error != nil {
		return nil, translateGormError(result.Error)
	}
	return airport.toEntity(), nil
}

func (a Airports) toEntity() *entity.Airport {
	return &entity.Airport{
		ID:          a.ID,
		Code:        a.AirportCode,
		Name:        a.AirportName,
		CityName:    a.CityName,
		CountryCode: a.CountryCode,
		Latitude:    a.Latitude,
		Longitude:   a.Longitude,
		TzName:      a.TzName,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
		DeletedAt:   a.DeletedAt,
	}
}

func translateGormError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repository.ErrNotFound
	}
	return err
}
