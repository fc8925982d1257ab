package handler

import (
	"jinji/attendance-sync/internal/middleware"
	"jinji/attendance-sync/internal/models"
	"jinji/attendance-sync/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type PerformanceHandler struct {
	service *service.PerformanceService
	logger  *zap.Logger
}

func NewPerformanceHandler(service *service.PerformanceService, logger *zap.Logger) *PerformanceHandler {
	return &PerformanceHandler{service: service, logger: logger}
}

// Get answers null when the month has no review yet.
func (h *PerformanceHandler) Get(c *fiber.Ctx) error {
	employeeID, err := targetEmployee(c)
	if err != nil {
		return writeError(c, h.logger, "get performance", err)
	}
	review, err := h.service.Get(c.UserContext(), employeeID, c.Query("month"))
	if err != nil {
		return writeError(c, h.logger, "get performance", err)
	}
	if review == nil {
		return c.JSON(nil)
	}
	return c.JSON(review)
}

func (h *PerformanceHandler) Submit(c *fiber.Ctx) error {
	var review models.PerformanceReview
	if err := c.BodyParser(&review); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "invalid request body"})
	}
	if err := validate.Struct(review); err != nil {
		return writeError(c, h.logger, "submit performance", err)
	}
	if err := h.service.Submit(c.UserContext(), middleware.Claims(c), review); err != nil {
		return writeError(c, h.logger, "submit performance", err)
	}
	return ok(c, "performance review saved")
}
