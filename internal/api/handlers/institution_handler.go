package handlers

import (
	"benigna-backend/domain"
	"benigna-backend/internal/api/presenters"
	"benigna-backend/pkg/geo"
	"benigna-backend/pkg/institution"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

const (
	defaultOpenDays = 14
	maxOpenDays     = 60
)

type (
	InstitutionHandler interface {
		GetInstitutions(c *fiber.Ctx) error
		GetNearbyInstitutions(c *fiber.Ctx) error
		GetInstitutionProfile(c *fiber.Ctx) error
		GetDeliverySlots(c *fiber.Ctx) error
		GetOpenDays(c *fiber.Ctx) error
		UpdateInstitution(c *fiber.Ctx) error
		VerifyInstitution(c *fiber.Ctx) error
	}

	institutionHandler struct {
		institutionService institution.InstitutionService
		validator          *validator.Validate
	}
)

func NewInstitutionHandler(institutionService institution.InstitutionService, validator *validator.Validate) InstitutionHandler {
	return &institutionHandler{
		institutionService: institutionService,
		validator:          validator,
	}
}

func (h *institutionHandler) GetInstitutions(c *fiber.Ctx) error {
	req := new(domain.InstitutionFilterRequest)
	if err := c.QueryParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetInstitutions, err)
	}

	res, err := h.institutionService.GetInstitutions(c.Context(), *req)
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedGetInstitutions, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetInstitutions)
}

func (h *institutionHandler) GetNearbyInstitutions(c *fiber.Ctx) error {
	req := &domain.NearbyRequest{Radius: 10}
	if err := c.QueryParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetNearby, err)
	}

	res, err := h.institutionService.GetNearbyInstitutions(c.Context(), *req)
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedGetNearby, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetNearby)
}

func (h *institutionHandler) GetInstitutionProfile(c *fiber.Ctx) error {
	query := new(domain.CoordinateQuery)
	if err := c.QueryParser(query); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(query); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetInstitution, err)
	}

	var origin *geo.Coordinate
	switch {
	case query.Latitude != nil && query.Longitude != nil:
		origin = &geo.Coordinate{Latitude: *query.Latitude, Longitude: *query.Longitude}
	case query.Latitude != nil || query.Longitude != nil:
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetInstitution, domain.ErrInvalidCoordinates)
	}

	res, err := h.institutionService.GetInstitutionProfile(c.Context(), c.Params("id"), origin)
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedGetInstitution, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetInstitution)
}

func (h *institutionHandler) GetDeliverySlots(c *fiber.Ctx) error {
	date := c.Query("date")
	if date == "" {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetSlots, domain.ErrInvalidDate)
	}

	res, err := h.institutionService.GetDeliverySlots(c.Context(), c.Params("id"), date)
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedGetSlots, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetSlots)
}

func (h *institutionHandler) GetOpenDays(c *fiber.Ctx) error {
	count := c.QueryInt("count", defaultOpenDays)
	if count < 1 {
		count = defaultOpenDays
	}
	if count > maxOpenDays {
		count = maxOpenDays
	}

	res, err := h.institutionService.GetOpenDays(c.Context(), c.Params("id"), count)
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedGetOpenDays, err)
	}
	return presenters.SuccessResponse(c, fiber.Map{"dates": res}, fiber.StatusOK, domain.MessageSuccessGetOpenDays)
}

func (h *institutionHandler) UpdateInstitution(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.InstitutionUpdateRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateInstitution, err)
	}

	res, err := h.institutionService.UpdateInstitution(c.Context(), userID, *req)
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedUpdateInstitution, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateInstitution)
}

func (h *institutionHandler) VerifyInstitution(c *fiber.Ctx) error {
	res, err := h.institutionService.VerifyInstitution(c.Context(), c.Params("id"))
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedVerifyInstitution, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessVerifyInstitution)
}
