package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessCreateRating = "rating submitted successfully"
	MessageSuccessGetRatings   = "ratings retrieved successfully"
	MessageFailedCreateRating  = "failed to submit rating"
	MessageFailedGetRatings    = "failed to retrieve ratings"

	ErrRatingNotFound       = errors.New("rating not found")
	ErrAlreadyRated         = errors.New("donation already rated")
	ErrDonationNotDelivered = errors.New("only delivered donations can be rated")
	ErrInvalidRating        = errors.New("rating must be between 1 and 5")
)

type (
	RatingRequest struct {
		DonationID string `json:"donation_id" validate:"required,uuid"`
		Rating     int    `json:"rating" validate:"required,min=1,max=5"`
		Comment    string `json:"comment" validate:"max=500"`
	}

	RatingResponse struct {
		ID            string    `json:"id"`
		DonorID       string    `json:"donor_id"`
		InstitutionID string    `json:"institution_id"`
		DonationID    string    `json:"donation_id"`
		Rating        int       `json:"rating"`
		Comment       string    `json:"comment"`
		CreatedAt     time.Time `json:"created_at"`
	}

	RatingResult struct {
		Rating            *RatingResponse `json:"rating"`
		InstitutionRating float64         `json:"institution_rating"`
		TotalRatings      int             `json:"total_ratings"`
	}
)
