package service

import (
	"context"
	"errors"

	"jinji/attendance-sync/internal/dateutil"
	"jinji/attendance-sync/internal/models"
	"jinji/attendance-sync/internal/repository"

	"go.uber.org/zap"
)

type PerformanceService struct {
	reviews *repository.PerformanceRepository
	logger  *zap.Logger
}

func NewPerformanceService(reviews *repository.PerformanceRepository, logger *zap.Logger) *PerformanceService {
	return &PerformanceService{reviews: reviews, logger: logger}
}

// Get returns nil when no review exists yet.
func (s *PerformanceService) Get(ctx context.Context, employeeID int, month string) (*models.PerformanceReview, error) {
	if _, err := dateutil.ParseMonth(month); err != nil {
		return nil, invalid("month", "must be YYYYMM")
	}
	review, err := s.reviews.Get(ctx, employeeID, month)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return review, err
}

// Submit merges the actor's part of the review into the stored one. The
// employee owns the self comment; only a manager may set supervisor scores
// and comments, and a manager reviewing someone else leaves the self comment
// untouched.
func (s *PerformanceService) Submit(ctx context.Context, actor *Claims, in models.PerformanceReview) error {
	if _, err := dateutil.ParseMonth(in.Month); err != nil {
		return invalid("month", "must be YYYYMM")
	}
	if !actor.CanAccess(in.EmployeeID) {
		return ErrForbidden
	}
	isManager := actor.Role == models.RoleManager
	if in.HasSupervisorInput() && !isManager {
		return ErrForbidden
	}

	current, err := s.Get(ctx, in.EmployeeID, in.Month)
	if err != nil {
		return err
	}
	merged := models.PerformanceReview{EmployeeID: in.EmployeeID, Month: in.Month}
	if current != nil {
		merged = *current
	}

	if actor.EmployeeID == in.EmployeeID {
		merged.SubordinateInput = in.SubordinateInput
	}
	if isManager && actor.EmployeeID != in.EmployeeID {
		merged.SupervisorAbility = in.SupervisorAbility
		merged.SupervisorBehavior = in.SupervisorBehavior
		merged.SupervisorAttitude = in.SupervisorAttitude
		merged.SupervisorInput = in.SupervisorInput
	}

	if err := s.reviews.Upsert(ctx, merged); err != nil {
		return err
	}
	s.logger.Info("Performance review saved",
		zap.Int("employee_id", in.EmployeeID),
		zap.String("month", in.Month),
		zap.Int("actor_id", actor.EmployeeID),
	)
	return nil
}
