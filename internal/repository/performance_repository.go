package repository

import (
	"context"
	"database/sql"

	"jinji/attendance-sync/internal/models"
)

type PerformanceRepository struct {
	db *sql.DB
}

func NewPerformanceRepository(db *sql.DB) *PerformanceRepository {
	return &PerformanceRepository{db: db}
}

func (r *PerformanceRepository) Get(ctx context.Context, employeeID int, month string) (*models.PerformanceReview, error) {
	query := `
		SELECT employee_id, review_month, subordinate_input, supervisor_ability,
			supervisor_behavior, supervisor_attitude, supervisor_input
		FROM performance_reviews
		WHERE employee_id = ? AND review_month = ?
	`
	var p models.PerformanceReview
	err := r.db.QueryRowContext(ctx, query, employeeID, month).Scan(
		&p.EmployeeID,
		&p.Month,
		&p.SubordinateInput,
		&p.SupervisorAbility,
		&p.SupervisorBehavior,
		&p.SupervisorAttitude,
		&p.SupervisorInput,
	)
	if err != nil {
		return nil, wrapErr("failed to get performance review", err)
	}
	return &p, nil
}

func (r *PerformanceRepository) Upsert(ctx context.Context, p models.PerformanceReview) error {
	query := `
		INSERT INTO performance_reviews (employee_id, review_month, subordinate_input, supervisor_ability,
			supervisor_behavior, supervisor_attitude, supervisor_input, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (employee_id, review_month) DO UPDATE SET
			subordinate_input = excluded.subordinate_input,
			supervisor_ability = excluded.supervisor_ability,
			supervisor_behavior = excluded.supervisor_behavior,
			supervisor_attitude = excluded.supervisor_attitude,
			supervisor_input = excluded.supervisor_input,
			updated_at = CURRENT_TIMESTAMP
	`
	_, err := r.db.ExecContext(ctx, query,
		p.EmployeeID, p.Month, p.SubordinateInput,
		p.SupervisorAbility, p.SupervisorBehavior, p.SupervisorAttitude, p.SupervisorInput,
	)
	if err != nil {
		return wrapErr("failed to upsert performance review", err)
	}
	return nil
}
