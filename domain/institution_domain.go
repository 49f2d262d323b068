package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetInstitutions   = "institutions retrieved successfully"
	MessageSuccessGetInstitution    = "institution retrieved successfully"
	MessageSuccessGetNearby         = "nearby institutions retrieved successfully"
	MessageSuccessGetSlots          = "delivery slots retrieved successfully"
	MessageSuccessGetOpenDays       = "open days retrieved successfully"
	MessageSuccessUpdateInstitution = "institution updated successfully"
	MessageSuccessVerifyInstitution = "institution verified successfully"
	MessageFailedGetInstitutions    = "failed to retrieve institutions"
	MessageFailedGetInstitution     = "failed to retrieve institution"
	MessageFailedGetNearby          = "failed to retrieve nearby institutions"
	MessageFailedGetSlots           = "failed to retrieve delivery slots"
	MessageFailedGetOpenDays        = "failed to retrieve open days"
	MessageFailedUpdateInstitution  = "failed to update institution"
	MessageFailedVerifyInstitution  = "failed to verify institution"

	ErrInstitutionNotFound = errors.New("institution not found")
	ErrInvalidCoordinates  = errors.New("invalid coordinates")
	ErrInvalidRadius       = errors.New("radius must be between 0 and 50 km")
	ErrInvalidDate         = errors.New("date must be in YYYY-MM-DD format")
)

type (
	InstitutionFilterRequest struct {
		SearchQuery string   `query:"q"`
		Category    string   `query:"category"`
		MaxDistance float64  `query:"max_distance" validate:"min=0"`
		MinRating   float64  `query:"min_rating" validate:"min=0,max=5"`
		OpenNow     bool     `query:"open_now"`
		Latitude    *float64 `query:"latitude" validate:"omitempty,latitude"`
		Longitude   *float64 `query:"longitude" validate:"omitempty,longitude"`
	}

	NearbyRequest struct {
		Latitude  float64 `query:"latitude" validate:"latitude"`
		Longitude float64 `query:"longitude" validate:"longitude"`
		Radius    float64 `query:"radius" validate:"gt=0,max=50"`
	}

	InstitutionUpdateRequest struct {
		Description        *string               `json:"description"`
		Address            *AddressRequest       `json:"address" validate:"omitempty"`
		WorkingHours       []WorkingHoursRequest `json:"working_hours" validate:"omitempty,dive"`
		AcceptedCategories []string              `json:"accepted_categories"`
	}

	AddressResponse struct {
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

	WorkingHoursResponse struct {
		DayOfWeek int    `json:"day_of_week"`
		IsOpen    bool   `json:"is_open"`
		OpenTime  string `json:"open_time"`
		CloseTime string `json:"close_time"`
	}

	InstitutionResponse struct {
		ID                 string                 `json:"id"`
		Name               string                 `json:"name"`
		Email              string                 `json:"email"`
		Phone              string                 `json:"phone"`
		Description        string                 `json:"description"`
		ProfileImage       string                 `json:"profile_image,omitempty"`
		Address            AddressResponse        `json:"address"`
		WorkingHours       []WorkingHoursResponse `json:"working_hours"`
		AcceptedCategories []string               `json:"accepted_categories"`
		Rating             float64                `json:"rating"`
		TotalRatings       int                    `json:"total_ratings"`
		Verified           bool                   `json:"verified"`
		OpenNow            bool                   `json:"open_now"`
		Distance           *float64               `json:"distance,omitempty"`
		DistanceLabel      string                 `json:"distance_label,omitempty"`
		CreatedAt          time.Time              `json:"created_at"`
	}

	InstitutionProfileResponse struct {
		Institution *InstitutionResponse `json:"institution"`
		Ratings     []*RatingResponse    `json:"ratings"`
	}

	SlotsResponse struct {
		Date  string   `json:"date"`
		Slots []string `json:"slots"`
	}
)
