package router

import (
	"time"

	"jinji/attendance-sync/internal/handler"
	"jinji/attendance-sync/internal/middleware"
	"jinji/attendance-sync/internal/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Handlers struct {
	Auth        *handler.AuthHandler
	Attendance  *handler.AttendanceHandler
	Salary      *handler.SalaryHandler
	Performance *handler.PerformanceHandler
}

func New(h Handlers, tokens middleware.TokenParser, logger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "jinji-server",
		DisableStartupMessage: true,
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          15 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if fe, ok := err.(*fiber.Error); ok {
				code = fe.Code
			}
			return c.Status(code).JSON(models.ErrorResponse{Error: err.Error()})
		},
	})

	app.Use(middleware.RequestLogger(logger))

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	app.Post("/login", h.Auth.Login)

	auth := middleware.Auth(tokens)
	app.Get("/attendance/:emplid", auth, h.Attendance.GetMonthly)
	app.Get("/attendance/:emplid/:date", auth, h.Attendance.GetDaily)
	app.Put("/attendance", auth, h.Attendance.Update)
	app.Post("/leave", auth, h.Attendance.CreateLeave)
	app.Delete("/leave/:emplid/:date", auth, h.Attendance.DeleteLeave)
	app.Get("/salary/:emplid", auth, h.Salary.GetStatement)
	app.Get("/performance/:emplid", auth, h.Performance.Get)
	app.Post("/performance", auth, h.Performance.Submit)

	return app
}
