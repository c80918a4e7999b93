package db_models

import (
	"time"

	"github.com/google/uuid"
)

// Activity belongs to exactly one tour; Position keeps the display order.
type Activity struct {
	BaseModel
	TourID         uuid.UUID `gorm:"type:uuid;index;not null"`
	Position       int       `gorm:"not null"`
	Name           string
	Description    string
	StartTimestamp time.Time
	EndTimestamp   time.Time

	Location Location `gorm:"constraint:OnDelete:CASCADE;"`
}

type Location struct {
	BaseModel
	ActivityID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Name       string
	Latitude   float64
	Longitude  float64
	Type       string `gorm:"size:32"`
	Address    string
}
