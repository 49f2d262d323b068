package entities

import (
	"time"

	"github.com/google/uuid"
)

const (
	DonationStatusPending   = "pending"
	DonationStatusScheduled = "scheduled"
	DonationStatusDelivered = "delivered"
	DonationStatusCancelled = "cancelled"

	ConditionNew      = "new"
	ConditionUsedGood = "used_good"
	ConditionUsedFair = "used_fair"
)

type Donation struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	DonorID       uuid.UUID  `gorm:"type:uuid;index" json:"donor_id"`
	InstitutionID *uuid.UUID `gorm:"type:uuid;index" json:"institution_id,omitempty"`
	Category      string     `json:"category"`
	Subcategory   string     `json:"subcategory"`
	Description   string     `json:"description"`
	Quantity      int        `json:"quantity"`
	Condition     string     `json:"condition"` // new, used_good, used_fair
	Images        []string   `gorm:"serializer:json" json:"images"`
	Status        string     `gorm:"index" json:"status"` // pending, scheduled, delivered, cancelled
	ScheduledDate *time.Time `json:"scheduled_date,omitempty"`
	DeliveredDate *time.Time `json:"delivered_date,omitempty"`

	Timestamp
}
