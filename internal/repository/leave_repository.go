package repository

import (
	"context"
	"database/sql"

	"jinji/attendance-sync/internal/models"
)

type LeaveRepository struct {
	db *sql.DB
}

func NewLeaveRepository(db *sql.DB) *LeaveRepository {
	return &LeaveRepository{db: db}
}

// Upsert keeps at most one leave per employee and date.
func (r *LeaveRepository) Upsert(ctx context.Context, leave models.LeaveRecord) error {
	query := `
		INSERT INTO leaves (employee_id, leave_date, leave_type)
		VALUES (?, ?, ?)
		ON CONFLICT (employee_id, leave_date) DO UPDATE SET
			leave_type = excluded.leave_type
	`
	if _, err := r.db.ExecContext(ctx, query, leave.EmployeeID, leave.Date, int(leave.LeaveType)); err != nil {
		return wrapErr("failed to upsert leave", err)
	}
	return nil
}

func (r *LeaveRepository) Delete(ctx context.Context, employeeID int, date string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM leaves WHERE employee_id = ? AND leave_date = ?`, employeeID, date)
	if err != nil {
		return wrapErr("failed to delete leave", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return wrapErr("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *LeaveRepository) ListByMonth(ctx context.Context, employeeID int, prefix string) ([]models.LeaveRecord, error) {
	query := `
		SELECT employee_id, leave_date, leave_type
		FROM leaves
		WHERE employee_id = ? AND leave_date LIKE ? || '%'
		ORDER BY leave_date ASC
	`
	rows, err := r.db.QueryContext(ctx, query, employeeID, prefix)
	if err != nil {
		return nil, wrapErr("failed to query leaves", err)
	}
	defer rows.Close()

	leaves := []models.LeaveRecord{}
	for rows.Next() {
		var l models.LeaveRecord
		var lt int
		if err := rows.Scan(&l.EmployeeID, &l.Date, &lt); err != nil {
			return nil, wrapErr("failed to scan leave", err)
		}
		l.LeaveType = models.LeaveType(lt)
		leaves = append(leaves, l)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("error iterating leaves", err)
	}
	return leaves, nil
}
