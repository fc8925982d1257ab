package handler

import (
	"jinji/attendance-sync/internal/middleware"
	"jinji/attendance-sync/internal/models"
	"jinji/attendance-sync/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AttendanceHandler struct {
	service *service.AttendanceService
	logger  *zap.Logger
}

func NewAttendanceHandler(service *service.AttendanceService, logger *zap.Logger) *AttendanceHandler {
	return &AttendanceHandler{
		service: service,
		logger:  logger,
	}
}

// GetMonthly serves GET /attendance/:emplid?month=YYYYMM.
func (h *AttendanceHandler) GetMonthly(c *fiber.Ctx) error {
	employeeID, err := targetEmployee(c)
	if err != nil {
		return writeError(c, h.logger, "get monthly attendance", err)
	}
	data, err := h.service.Monthly(c.UserContext(), employeeID, c.Query("month"))
	if err != nil {
		return writeError(c, h.logger, "get monthly attendance", err)
	}
	return c.JSON(data)
}

// GetDaily serves GET /attendance/:emplid/:date. The body is null when the
// date has no record.
func (h *AttendanceHandler) GetDaily(c *fiber.Ctx) error {
	employeeID, err := targetEmployee(c)
	if err != nil {
		return writeError(c, h.logger, "get daily attendance", err)
	}
	rec, err := h.service.Daily(c.UserContext(), employeeID, c.Params("date"))
	if err != nil {
		return writeError(c, h.logger, "get daily attendance", err)
	}
	if rec == nil {
		return c.JSON(nil)
	}
	return c.JSON(rec)
}

func (h *AttendanceHandler) Update(c *fiber.Ctx) error {
	var rec models.AttendanceRecord
	if err := c.BodyParser(&rec); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "invalid request body"})
	}
	if err := validate.Struct(rec); err != nil {
		return writeError(c, h.logger, "update attendance", err)
	}
	if err := authorize(c, rec.EmployeeID); err != nil {
		return writeError(c, h.logger, "update attendance", err)
	}
	if err := h.service.Update(c.UserContext(), rec); err != nil {
		return writeError(c, h.logger, "update attendance", err)
	}
	return ok(c, "attendance updated")
}

func (h *AttendanceHandler) CreateLeave(c *fiber.Ctx) error {
	var leave models.LeaveRecord
	if err := c.BodyParser(&leave); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "invalid request body"})
	}
	if err := validate.Struct(leave); err != nil {
		return writeError(c, h.logger, "create leave", err)
	}
	if err := authorize(c, leave.EmployeeID); err != nil {
		return writeError(c, h.logger, "create leave", err)
	}
	if err := h.service.CreateLeave(c.UserContext(), leave); err != nil {
		return writeError(c, h.logger, "create leave", err)
	}
	return c.Status(fiber.StatusCreated).JSON(models.MessageResponse{Message: "leave recorded"})
}

func (h *AttendanceHandler) DeleteLeave(c *fiber.Ctx) error {
	employeeID, err := targetEmployee(c)
	if err != nil {
		return writeError(c, h.logger, "delete leave", err)
	}
	if err := h.service.DeleteLeave(c.UserContext(), employeeID, c.Params("date")); err != nil {
		return writeError(c, h.logger, "delete leave", err)
	}
	h.logger.Info("Leave deleted",
		zap.Int("employee_id", employeeID),
		zap.String("date", c.Params("date")),
		zap.Int("actor_id", middleware.Claims(c).EmployeeID),
	)
	return ok(c, "leave deleted")
}
