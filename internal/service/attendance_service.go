package service

import (
	"context"
	"errors"

	"jinji/attendance-sync/internal/dateutil"
	"jinji/attendance-sync/internal/models"
	"jinji/attendance-sync/internal/repository"

	"go.uber.org/zap"
)

type AttendanceService struct {
	attendances *repository.AttendanceRepository
	leaves      *repository.LeaveRepository
	logger      *zap.Logger
}

func NewAttendanceService(attendances *repository.AttendanceRepository, leaves *repository.LeaveRepository, logger *zap.Logger) *AttendanceService {
	return &AttendanceService{
		attendances: attendances,
		leaves:      leaves,
		logger:      logger,
	}
}

// Monthly returns the attendances and leaves for a YYYYMM month.
func (s *AttendanceService) Monthly(ctx context.Context, employeeID int, monthKey string) (*models.MonthlyAttendance, error) {
	month, err := dateutil.ParseMonth(monthKey)
	if err != nil {
		return nil, invalid("month", "must be YYYYMM")
	}

	attendances, err := s.attendances.ListByMonth(ctx, employeeID, month.DayPrefix())
	if err != nil {
		return nil, err
	}
	leaves, err := s.leaves.ListByMonth(ctx, employeeID, month.DayPrefix())
	if err != nil {
		return nil, err
	}
	return &models.MonthlyAttendance{Attendances: attendances, Leaves: leaves}, nil
}

// Daily returns the record for date, or nil when there is none.
func (s *AttendanceService) Daily(ctx context.Context, employeeID int, date string) (*models.AttendanceRecord, error) {
	if _, err := dateutil.ParseDay(date); err != nil {
		return nil, invalid("date", "must be YYYY-MM-DD")
	}
	rec, err := s.attendances.GetByDate(ctx, employeeID, date)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return rec, err
}

// Update stores rec after checking the rules between its fields. Field
// formats are checked where the payload is decoded.
func (s *AttendanceService) Update(ctx context.Context, rec models.AttendanceRecord) error {
	if err := ValidateAttendance(rec); err != nil {
		return err
	}
	if err := s.attendances.Upsert(ctx, rec); err != nil {
		return err
	}
	s.logger.Info("Attendance updated",
		zap.Int("employee_id", rec.EmployeeID),
		zap.String("date", rec.Date),
	)
	return nil
}

func (s *AttendanceService) CreateLeave(ctx context.Context, leave models.LeaveRecord) error {
	return s.leaves.Upsert(ctx, leave)
}

// DeleteLeave returns repository.ErrNotFound when there is no leave to delete.
func (s *AttendanceService) DeleteLeave(ctx context.Context, employeeID int, date string) error {
	if _, err := dateutil.ParseDay(date); err != nil {
		return invalid("date", "must be YYYY-MM-DD")
	}
	return s.leaves.Delete(ctx, employeeID, date)
}

// ValidateAttendance checks that times and leave type are not both set and
// that a clock-out follows a clock-in.
func ValidateAttendance(rec models.AttendanceRecord) error {
	onLeave := rec.LeaveType != nil && *rec.LeaveType != models.LeaveNone
	if onLeave && (rec.StartTime != nil || rec.EndTime != nil) {
		return invalid("leave_type", "cannot be combined with start or end time")
	}
	if rec.EndTime != nil {
		if rec.StartTime == nil {
			return invalid("end_time", "requires a start time")
		}
		if *rec.EndTime < *rec.StartTime {
			return invalid("end_time", "is before start time")
		}
	}
	return nil
}
