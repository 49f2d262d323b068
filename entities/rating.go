package entities

import (
	"github.com/google/uuid"
)

type Rating struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	DonorID       uuid.UUID `gorm:"type:uuid;index" json:"donor_id"`
	InstitutionID uuid.UUID `gorm:"type:uuid;index" json:"institution_id"`
	DonationID    uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"donation_id"`
	Rating        int       `json:"rating"` // 1..5
	Comment       string    `json:"comment"`

	Timestamp
}
