package handler

import (
	"errors"

	"jinji/attendance-sync/internal/database"
	"jinji/attendance-sync/internal/middleware"
	"jinji/attendance-sync/internal/models"
	"jinji/attendance-sync/internal/repository"
	"jinji/attendance-sync/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var validate = validator.New()

// writeError maps service and storage errors onto status codes. Store
// outages get 503 with CodeStoreUnavailable so clients know to retry.
func writeError(c *fiber.Ctx, logger *zap.Logger, op string, err error) error {
	var ve validator.ValidationErrors
	switch {
	case errors.Is(err, database.ErrUnavailable):
		logger.Warn("Record store unavailable", zap.String("op", op), zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(models.ErrorResponse{
			Error: "record store temporarily unavailable",
			Code:  models.CodeStoreUnavailable,
		})
	case service.IsValidation(err):
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: err.Error()})
	case errors.As(err, &ve):
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: ve.Error()})
	case errors.Is(err, repository.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse{Error: "not found"})
	case errors.Is(err, service.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse{Error: err.Error()})
	}

	logger.Error("Request failed", zap.String("op", op), zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "internal error"})
}

// targetEmployee reads :emplid and checks the caller may access it.
func targetEmployee(c *fiber.Ctx) (int, error) {
	id, err := c.ParamsInt("emplid")
	if err != nil || id <= 0 {
		return 0, &service.ValidationError{Field: "emplid", Message: "must be a positive integer"}
	}
	if err := authorize(c, id); err != nil {
		return 0, err
	}
	return id, nil
}

func authorize(c *fiber.Ctx, employeeID int) error {
	claims := middleware.Claims(c)
	if claims == nil || !claims.CanAccess(employeeID) {
		return service.ErrForbidden
	}
	return nil
}

func ok(c *fiber.Ctx, message string) error {
	return c.JSON(models.MessageResponse{Message: message})
}
