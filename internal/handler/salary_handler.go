package handler

import (
	"jinji/attendance-sync/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type SalaryHandler struct {
	service *service.SalaryService
	logger  *zap.Logger
}

func NewSalaryHandler(service *service.SalaryService, logger *zap.Logger) *SalaryHandler {
	return &SalaryHandler{service: service, logger: logger}
}

func (h *SalaryHandler) GetStatement(c *fiber.Ctx) error {
	employeeID, err := targetEmployee(c)
	if err != nil {
		return writeError(c, h.logger, "get salary", err)
	}
	st, err := h.service.Statement(c.UserContext(), employeeID, c.Query("month"))
	if err != nil {
		return writeError(c, h.logger, "get salary", err)
	}
	return c.JSON(st)
}
