package handlers

import (
	"benigna-backend/domain"
	"benigna-backend/internal/api/presenters"
	"benigna-backend/pkg/statistics"

	"github.com/gofiber/fiber/v2"
)

type (
	StatisticsHandler interface {
		GetAdminStatistics(c *fiber.Ctx) error
		GetMyStatistics(c *fiber.Ctx) error
	}

	statisticsHandler struct {
		statisticsService statistics.StatisticsService
	}
)

func NewStatisticsHandler(statisticsService statistics.StatisticsService) StatisticsHandler {
	return &statisticsHandler{
		statisticsService: statisticsService,
	}
}

func (h *statisticsHandler) GetAdminStatistics(c *fiber.Ctx) error {
	res, err := h.statisticsService.GetAdminStatistics(c.Context())
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedGetStatistics, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetStatistics)
}

// GetMyStatistics serves the dashboard of the caller's role.
func (h *statisticsHandler) GetMyStatistics(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	var (
		res any
		err error
	)
	switch c.Locals("role").(string) {
	case domain.RoleDonor:
		res, err = h.statisticsService.GetDonorStatistics(c.Context(), userID)
	case domain.RoleInstitution:
		res, err = h.statisticsService.GetInstitutionStatistics(c.Context(), userID)
	default:
		res, err = h.statisticsService.GetAdminStatistics(c.Context())
	}
	if err != nil {
		return presenters.Failure(c, domain.MessageFailedGetStatistics, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetStatistics)
}
