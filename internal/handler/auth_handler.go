package handler

import (
	"jinji/attendance-sync/internal/models"
	"jinji/attendance-sync/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AuthHandler struct {
	service *service.AuthService
	logger  *zap.Logger
}

func NewAuthHandler(service *service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger,
	}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return writeError(c, h.logger, "login", err)
	}

	resp, err := h.service.Login(c.UserContext(), req.EmployeeID, req.Password)
	if err != nil {
		return writeError(c, h.logger, "login", err)
	}
	return c.JSON(resp)
}
