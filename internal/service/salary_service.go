package service

import (
	"context"

	"jinji/attendance-sync/internal/dateutil"
	"jinji/attendance-sync/internal/models"
	"jinji/attendance-sync/internal/repository"
)

type SalaryService struct {
	salaries *repository.SalaryRepository
}

func NewSalaryService(salaries *repository.SalaryRepository) *SalaryService {
	return &SalaryService{salaries: salaries}
}

// Statement returns the month's pay with deductions and take-home computed.
func (s *SalaryService) Statement(ctx context.Context, employeeID int, month string) (*models.SalaryStatement, error) {
	if _, err := dateutil.ParseMonth(month); err != nil {
		return nil, invalid("month", "must be YYYYMM")
	}
	salary, err := s.salaries.Get(ctx, employeeID, month)
	if err != nil {
		return nil, err
	}
	st := models.NewSalaryStatement(employeeID, month, *salary)
	return &st, nil
}

func (s *SalaryService) Record(ctx context.Context, employeeID int, month string, salary models.Salary) error {
	if _, err := dateutil.ParseMonth(month); err != nil {
		return invalid("month", "must be YYYYMM")
	}
	return s.salaries.Upsert(ctx, employeeID, month, salary)
}
