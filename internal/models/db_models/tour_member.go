package db_models

import "github.com/google/uuid"

type TourMember struct {
	BaseModel
	TourID          uuid.UUID `gorm:"type:uuid;index;not null"`
	MemberID        *int
	FirstName       string `gorm:"size:50"`
	LastName        string `gorm:"size:50"`
	Age             int
	TouristUsername string `gorm:"size:50;index"`
}
