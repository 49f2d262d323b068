package entities

import (
	"benigna-backend/pkg/geo"

	"github.com/google/uuid"
)

type Address struct {
	Street       string  `json:"street"`
	Number       string  `json:"number"`
	Complement   string  `json:"complement,omitempty"`
	Neighborhood string  `json:"neighborhood"`
	City         string  `json:"city"`
	State        string  `json:"state"`
	ZipCode      string  `json:"zip_code"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
}

func (a Address) Coordinate() geo.Coordinate {
	return geo.Coordinate{Latitude: a.Latitude, Longitude: a.Longitude}
}

// WorkingHours is one weekday of an institution's schedule. DayOfWeek
// follows time.Weekday (0 = Sunday). Times are "HH:MM" on the same day.
type WorkingHours struct {
	DayOfWeek int    `json:"day_of_week"`
	IsOpen    bool   `json:"is_open"`
	OpenTime  string `json:"open_time"`
	CloseTime string `json:"close_time"`
}

// Institution shares its ID with the User account that owns it.
type Institution struct {
	ID                 uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name               string         `json:"name"`
	Email              string         `json:"email"`
	Phone              string         `json:"phone"`
	Description        string         `json:"description"`
	ProfileImage       string         `json:"profile_image,omitempty"`
	Address            Address        `gorm:"embedded;embeddedPrefix:address_" json:"address"`
	WorkingHours       []WorkingHours `gorm:"serializer:json" json:"working_hours"`
	AcceptedCategories []string       `gorm:"serializer:json" json:"accepted_categories"`
	Rating             float64        `json:"rating"`
	TotalRatings       int            `json:"total_ratings"`
	Verified           bool           `json:"verified"`

	Timestamp
}

// ApplyRatings sets Rating to the arithmetic mean of ratings and
// TotalRatings to their count. An empty set resets both to zero.
func (i *Institution) ApplyRatings(ratings []*Rating) {
	if len(ratings) == 0 {
		i.Rating = 0
		i.TotalRatings = 0
		return
	}
	sum := 0
	for _, r := range ratings {
		sum += r.Rating
	}
	i.Rating = float64(sum) / float64(len(ratings))
	i.TotalRatings = len(ratings)
}

func (i *Institution) AcceptsCategory(category string) bool {
	for _, c := range i.AcceptedCategories {
		if c == category {
			return true
		}
	}
	return false
}
