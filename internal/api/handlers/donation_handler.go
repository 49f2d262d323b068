package handlers

import (
	"benigna-backend/domain"
	"benigna-backend/internal/api/presenters"
	"benigna-backend/pkg/donation"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	DonationHandler interface {
		CreateDonation(c *fiber.Ctx) error
		GetDonorDonations(c *fiber.Ctx) error
		GetInstitutionDonations(c *fiber.Ctx) error
		GetDonationByID(c *fiber.Ctx) error
		ScheduleDelivery(c *fiber.Ctx) error
		ConfirmDelivery(c *fiber.Ctx) error
		CancelDonation(c *fiber.Ctx) error
		DeleteDonation(c *fiber.Ctx) error
	}

	donationHandler struct {
		donationService donation.DonationService
		validator       *validator.Validate
	}
)

func NewDonationHandler(donationService donation.DonationService, validator *validator.Validate) DonationHandler {
	return &donationHandler{
		donationService: donationService,
		validator:       validator,
	}
}

func (h *donationHandler) CreateDonation(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.DonationRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	// images are optional; JSON bodies carry none
	if form, err := c.MultipartForm(); err == nil {
		req.Images = form.File["images"]
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateDonation, err)
	}

	res, err := h.donationService.CreateDonation(c.Context(), *req, userID)
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedCreateDonation, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateDonation)
}

func (h *donationHandler) GetDonorDonations(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.donationService.GetDonorDonations(c.Context(), userID)
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedGetDonations, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetDonations)
}

func (h *donationHandler) GetInstitutionDonations(c *fiber.Ctx) error {
	institutionID := c.Locals("user_id").(string)

	res, err := h.donationService.GetInstitutionDonations(c.Context(), institutionID)
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedGetDonations, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetDonations)
}

func (h *donationHandler) GetDonationByID(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	role, _ := c.Locals("role").(string)

	res, err := h.donationService.GetDonationByID(c.Context(), c.Params("id"), userID, role)
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedGetDonation, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetDonation)
}

func (h *donationHandler) ScheduleDelivery(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.ScheduleDonationRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedScheduleDonation, err)
	}

	res, err := h.donationService.ScheduleDelivery(c.Context(), c.Params("id"), *req, userID)
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedScheduleDonation, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessScheduleDonation)
}

func (h *donationHandler) ConfirmDelivery(c *fiber.Ctx) error {
	institutionID := c.Locals("user_id").(string)

	res, err := h.donationService.ConfirmDelivery(c.Context(), c.Params("id"), institutionID)
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedConfirmDonation, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessConfirmDonation)
}

func (h *donationHandler) CancelDonation(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.donationService.CancelDonation(c.Context(), c.Params("id"), userID)
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedCancelDonation, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessCancelDonation)
}

func (h *donationHandler) DeleteDonation(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	if err := h.donationService.DeleteDonation(c.Context(), c.Params("id"), userID); err != nil {
		return presenters.Failure(c, domain.MessageFailedDeleteDonation, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteDonation)
}
