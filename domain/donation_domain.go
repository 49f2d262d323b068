package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

const (
	MaxDonationImages    = 5
	MaxDonationImageSize = 5 * 1024 * 1024
)

var (
	MessageSuccessCreateDonation   = "donation created successfully"
	MessageSuccessGetDonations     = "donations retrieved successfully"
	MessageSuccessGetDonation      = "donation retrieved successfully"
	MessageSuccessScheduleDonation = "delivery scheduled successfully"
	MessageSuccessConfirmDonation  = "delivery confirmed successfully"
	MessageSuccessCancelDonation   = "donation cancelled successfully"
	MessageSuccessDeleteDonation   = "donation deleted successfully"

	MessageFailedCreateDonation   = "failed to create donation"
	MessageFailedGetDonations     = "failed to retrieve donations"
	MessageFailedGetDonation      = "failed to retrieve donation"
	MessageFailedScheduleDonation = "failed to schedule delivery"
	MessageFailedConfirmDonation  = "failed to confirm delivery"
	MessageFailedCancelDonation   = "failed to cancel donation"
	MessageFailedDeleteDonation   = "failed to delete donation"

	ErrDonationNotFound           = errors.New("donation not found")
	ErrUnauthorizedDonationAccess = errors.New("unauthorized access to donation")
	ErrInvalidDonationStatus      = errors.New("invalid donation status transition")
	ErrTooManyImages              = errors.New("a donation accepts at most 5 images")
	ErrImageTooLarge              = errors.New("images must be at most 5MB")
	ErrScheduleDateTooEarly       = errors.New("delivery date must be from tomorrow onwards")
	ErrSlotUnavailable            = errors.New("institution does not receive deliveries at this time")
)

type (
	DonationRequest struct {
		Category    string                  `json:"category" form:"category" validate:"required"`
		Subcategory string                  `json:"subcategory" form:"subcategory" validate:"required"`
		Description string                  `json:"description" form:"description" validate:"required,min=10"`
		Quantity    int                     `json:"quantity" form:"quantity" validate:"required,gt=0"`
		Condition   string                  `json:"condition" form:"condition" validate:"required,oneof=new used_good used_fair"`
		Images      []*multipart.FileHeader `json:"-" form:"images" validate:"max=5"`
	}

	ScheduleDonationRequest struct {
		InstitutionID string `json:"institution_id" validate:"required,uuid"`
		Date          string `json:"date" validate:"required,datetime=2006-01-02"`
		Time          string `json:"time" validate:"required,hhmm"`
	}

	DonationResponse struct {
		ID              string     `json:"id"`
		DonorID         string     `json:"donor_id"`
		InstitutionID   string     `json:"institution_id,omitempty"`
		InstitutionName string     `json:"institution_name,omitempty"`
		Category        string     `json:"category"`
		Subcategory     string     `json:"subcategory"`
		Description     string     `json:"description"`
		Quantity        int        `json:"quantity"`
		Condition       string     `json:"condition"`
		Images          []string   `json:"images"`
		Status          string     `json:"status"`
		ScheduledDate   *time.Time `json:"scheduled_date,omitempty"`
		DeliveredDate   *time.Time `json:"delivered_date,omitempty"`
		CanRate         bool       `json:"can_rate"`
		CreatedAt       time.Time  `json:"created_at"`
		UpdatedAt       time.Time  `json:"updated_at"`
	}
)
