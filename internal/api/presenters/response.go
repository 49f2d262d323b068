package presenters

import (
	"errors"

	"benigna-backend/domain"
	"benigna-backend/internal/utils/storage"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type Response struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func SuccessResponse(c *fiber.Ctx, data any, statusCode int, message string) error {
	return c.Status(statusCode).JSON(Response{
		Status:  true,
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *fiber.Ctx, statusCode int, message string, err error) error {
	response := Response{
		Status:  false,
		Message: message,
	}
	if err != nil {
		response.Error = err.Error()
	}
	return c.Status(statusCode).JSON(response)
}

// Failure renders err with the status StatusFor picks for it.
func Failure(c *fiber.Ctx, message string, err error) error {
	return ErrorResponse(c, StatusFor(err), message, err)
}

var statusByError = []struct {
	status int
	errs   []error
}{
	{fiber.StatusBadRequest, []error{
		domain.ErrValidation,
		domain.ErrParseUUID,
		domain.ErrCPFRequired,
		domain.ErrCNPJRequired,
		domain.ErrInvalidUserType,
		domain.ErrInvalidCoordinates,
		domain.ErrInvalidRadius,
		domain.ErrInvalidDate,
		domain.ErrTooManyImages,
		domain.ErrImageTooLarge,
		domain.ErrScheduleDateTooEarly,
		domain.ErrSlotUnavailable,
		domain.ErrInvalidRating,
		domain.ErrZipCodeLength,
		storage.ErrFileTypeNotAllowed,
		storage.ErrEmptyFile,
	}},
	{fiber.StatusUnauthorized, []error{
		domain.ErrTokenNotFound,
		domain.ErrTokenExpired,
		domain.ErrTokenInvalid,
		domain.ErrWrongPassword,
		domain.ErrEmailNotFound,
	}},
	{fiber.StatusForbidden, []error{
		domain.ErrUserNotAllowed,
		domain.ErrUnauthorizedDonationAccess,
	}},
	{fiber.StatusNotFound, []error{
		domain.ErrUserNotFound,
		domain.ErrInstitutionNotFound,
		domain.ErrDonationNotFound,
		domain.ErrRatingNotFound,
		domain.ErrCategoryNotFound,
		domain.ErrAddressNotFound,
		domain.ErrZipCodeNotFound,
	}},
	{fiber.StatusConflict, []error{
		domain.ErrEmailAlreadyExists,
		domain.ErrCPFAlreadyExists,
		domain.ErrCNPJAlreadyExists,
		domain.ErrAlreadyRated,
		domain.ErrCategoryAlreadyExists,
		domain.ErrSubcategoryExists,
		domain.ErrInvalidDonationStatus,
		domain.ErrDonationNotDelivered,
	}},
	{fiber.StatusBadGateway, []error{
		domain.ErrGeocodingUnavailable,
	}},
}

// StatusFor maps a service error to an HTTP status. Anything unknown is a
// 500.
func StatusFor(err error) int {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return fiber.StatusBadRequest
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code
	}
	for _, group := range statusByError {
		for _, target := range group.errs {
			if errors.Is(err, target) {
				return group.status
			}
		}
	}
	return fiber.StatusInternalServerError
}
