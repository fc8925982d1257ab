package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jinji/attendance-sync/internal/config"
	"jinji/attendance-sync/internal/database"
	"jinji/attendance-sync/internal/handler"
	"jinji/attendance-sync/internal/logger"
	"jinji/attendance-sync/internal/repository"
	"jinji/attendance-sync/internal/router"
	"jinji/attendance-sync/internal/service"

	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "config/local.yaml", "Path to configuration file")
	seedPath := flag.String("seed", "", "YAML file with employees and salaries to load before serving")
	seedOnly := flag.Bool("seed-only", false, "Exit after loading the seed file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if cfg.Server.JWTSecret == "" {
		log.Fatal("server.jwt_secret is required")
	}

	log.Info("Starting record store",
		zap.String("env", cfg.Env),
		zap.String("config_path", *configPath),
	)

	db, err := database.New(cfg.Server.StoragePath, log.Logger)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", zap.Error(err))
		}
	}()

	employeeRepo := repository.NewEmployeeRepository(db.DB)
	attendanceRepo := repository.NewAttendanceRepository(db.DB)
	leaveRepo := repository.NewLeaveRepository(db.DB)
	salaryRepo := repository.NewSalaryRepository(db.DB)
	performanceRepo := repository.NewPerformanceRepository(db.DB)

	authService := service.NewAuthService(employeeRepo, cfg.Server.JWTSecret, time.Duration(cfg.Server.TokenTTL)*time.Second, log.Logger)
	attendanceService := service.NewAttendanceService(attendanceRepo, leaveRepo, log.Logger)
	salaryService := service.NewSalaryService(salaryRepo)
	performanceService := service.NewPerformanceService(performanceRepo, log.Logger)

	if *seedPath != "" {
		if err := loadSeed(context.Background(), *seedPath, authService, salaryService, log.Logger); err != nil {
			log.Fatal("Failed to load seed file", zap.String("path", *seedPath), zap.Error(err))
		}
		if *seedOnly {
			return
		}
	}

	app := router.New(router.Handlers{
		Auth:        handler.NewAuthHandler(authService, log.Logger),
		Attendance:  handler.NewAttendanceHandler(attendanceService, log.Logger),
		Salary:      handler.NewSalaryHandler(salaryService, log.Logger),
		Performance: handler.NewPerformanceHandler(performanceService, log.Logger),
	}, authService, log.Logger)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		log.Info("Record store listening", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			log.Error("HTTP server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("Received shutdown signal", zap.String("signal", sig.String()))

	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		log.Warn("HTTP server shutdown error", zap.Error(err))
	}
	log.Info("Record store stopped")
}
