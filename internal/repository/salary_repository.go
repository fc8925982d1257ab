package repository

import (
	"context"
	"database/sql"

	"jinji/attendance-sync/internal/models"
)

type SalaryRepository struct {
	db *sql.DB
}

func NewSalaryRepository(db *sql.DB) *SalaryRepository {
	return &SalaryRepository{db: db}
}

func (r *SalaryRepository) Get(ctx context.Context, employeeID int, month string) (*models.Salary, error) {
	query := `
		SELECT basic_salary, overtime_allowance, health_insurance, nursing_care_insurance,
			pension, employment_insurance, income_tax, resident_tax
		FROM salaries
		WHERE employee_id = ? AND pay_month = ?
	`
	var s models.Salary
	err := r.db.QueryRowContext(ctx, query, employeeID, month).Scan(
		&s.BasicSalary,
		&s.OvertimeAllowance,
		&s.HealthInsurance,
		&s.NursingCareInsurance,
		&s.Pension,
		&s.EmploymentInsurance,
		&s.IncomeTax,
		&s.ResidentTax,
	)
	if err != nil {
		return nil, wrapErr("failed to get salary", err)
	}
	return &s, nil
}

func (r *SalaryRepository) Upsert(ctx context.Context, employeeID int, month string, s models.Salary) error {
	query := `
		INSERT INTO salaries (employee_id, pay_month, basic_salary, overtime_allowance, health_insurance,
			nursing_care_insurance, pension, employment_insurance, income_tax, resident_tax)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (employee_id, pay_month) DO UPDATE SET
			basic_salary = excluded.basic_salary,
			overtime_allowance = excluded.overtime_allowance,
			health_insurance = excluded.health_insurance,
			nursing_care_insurance = excluded.nursing_care_insurance,
			pension = excluded.pension,
			employment_insurance = excluded.employment_insurance,
			income_tax = excluded.income_tax,
			resident_tax = excluded.resident_tax
	`
	_, err := r.db.ExecContext(ctx, query,
		employeeID, month,
		s.BasicSalary, s.OvertimeAllowance, s.HealthInsurance, s.NursingCareInsurance,
		s.Pension, s.EmploymentInsurance, s.IncomeTax, s.ResidentTax,
	)
	if err != nil {
		return wrapErr("failed to upsert salary", err)
	}
	return nil
}
