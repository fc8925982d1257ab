package repository

import (
	"context"
	"database/sql"

	"jinji/attendance-sync/internal/models"
)

type EmployeeRepository struct {
	db *sql.DB
}

func NewEmployeeRepository(db *sql.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

// Upsert creates the employee or replaces name, role and password hash.
func (r *EmployeeRepository) Upsert(ctx context.Context, e models.Employee) error {
	query := `
		INSERT INTO employees (employee_id, name, role, password_hash)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (employee_id) DO UPDATE SET
			name = excluded.name,
			role = excluded.role,
			password_hash = excluded.password_hash
	`
	if _, err := r.db.ExecContext(ctx, query, e.ID, e.Name, e.Role, e.PasswordHash); err != nil {
		return wrapErr("failed to upsert employee", err)
	}
	return nil
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id int) (*models.Employee, error) {
	var e models.Employee
	err := r.db.QueryRowContext(ctx,
		`SELECT employee_id, name, role, password_hash FROM employees WHERE employee_id = ?`, id,
	).Scan(&e.ID, &e.Name, &e.Role, &e.PasswordHash)
	if err != nil {
		return nil, wrapErr("failed to get employee", err)
	}
	return &e, nil
}
