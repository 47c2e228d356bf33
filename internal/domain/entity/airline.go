package entity

import (
	"time"

	"gorm.io/gorm"
)

// Airline maps a two-letter carrier code to its display name.
type Airline struct {
	ID        uint
	Code      string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt
}
