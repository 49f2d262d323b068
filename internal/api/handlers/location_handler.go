package handlers

import (
	"benigna-backend/domain"
	"benigna-backend/internal/api/presenters"
	"benigna-backend/pkg/geo"
	"benigna-backend/pkg/location"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	LocationHandler interface {
		Geocode(c *fiber.Ctx) error
		ReverseGeocode(c *fiber.Ctx) error
		LookupZipCode(c *fiber.Ctx) error
	}

	locationHandler struct {
		locationService location.LocationService
		validator       *validator.Validate
	}
)

func NewLocationHandler(locationService location.LocationService, validator *validator.Validate) LocationHandler {
	return &locationHandler{
		locationService: locationService,
		validator:       validator,
	}
}

func (h *locationHandler) Geocode(c *fiber.Ctx) error {
	req := new(domain.GeocodeRequest)
	if err := c.QueryParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGeocode, err)
	}

	res, err := h.locationService.Geocode(c.Context(), req.Address)
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedGeocode, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGeocode)
}

func (h *locationHandler) ReverseGeocode(c *fiber.Ctx) error {
	req := new(domain.ReverseGeocodeRequest)
	if err := c.QueryParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGeocode, err)
	}

	res, err := h.locationService.ReverseGeocode(c.Context(), geo.Coordinate{Latitude: req.Latitude, Longitude: req.Longitude})
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedGeocode, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGeocode)
}

func (h *locationHandler) LookupZipCode(c *fiber.Ctx) error {
	res, err := h.locationService.LookupZipCode(c.Context(), c.Params("zip"))
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedZipCode, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessZipCode)
}
