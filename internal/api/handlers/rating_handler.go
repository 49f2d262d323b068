package handlers

import (
	"benigna-backend/domain"
	"benigna-backend/internal/api/presenters"
	"benigna-backend/pkg/rating"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	RatingHandler interface {
		RateDonation(c *fiber.Ctx) error
		GetInstitutionRatings(c *fiber.Ctx) error
	}

	ratingHandler struct {
		ratingService rating.RatingService
		validator     *validator.Validate
	}
)

func NewRatingHandler(ratingService rating.RatingService, validator *validator.Validate) RatingHandler {
	return &ratingHandler{
		ratingService: ratingService,
		validator:     validator,
	}
}

func (h *ratingHandler) RateDonation(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.RatingRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateRating, err)
	}

	res, err := h.ratingService.RateDonation(c.Context(), *req, userID)
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedCreateRating, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateRating)
}

func (h *ratingHandler) GetInstitutionRatings(c *fiber.Ctx) error {
	res, err := h.ratingService.GetInstitutionRatings(c.Context(), c.Params("id"))
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedGetRatings, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRatings)
}
