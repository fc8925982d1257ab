package repository

import (
	"context"
	"database/sql"

	"jinji/attendance-sync/internal/models"
)

type AttendanceRepository struct {
	db *sql.DB
}

func NewAttendanceRepository(db *sql.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// Upsert stores rec, replacing any record for the same employee and date.
func (r *AttendanceRepository) Upsert(ctx context.Context, rec models.AttendanceRecord) error {
	var leaveType sql.NullInt64
	if rec.LeaveType != nil {
		leaveType = sql.NullInt64{Int64: int64(*rec.LeaveType), Valid: true}
	}

	query := `
		INSERT INTO attendances (employee_id, work_date, start_time, end_time, leave_type, updated_at)
		VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (employee_id, work_date) DO UPDATE SET
			start_time = excluded.start_time,
			end_time = excluded.end_time,
			leave_type = excluded.leave_type,
			updated_at = CURRENT_TIMESTAMP
	`
	_, err := r.db.ExecContext(ctx, query,
		rec.EmployeeID,
		rec.Date,
		nullString(rec.StartTime),
		nullString(rec.EndTime),
		leaveType,
	)
	if err != nil {
		return wrapErr("failed to upsert attendance", err)
	}
	return nil
}

// GetByDate returns ErrNotFound when the employee has no record for date.
func (r *AttendanceRepository) GetByDate(ctx context.Context, employeeID int, date string) (*models.AttendanceRecord, error) {
	query := `
		SELECT employee_id, work_date, start_time, end_time, leave_type
		FROM attendances
		WHERE employee_id = ? AND work_date = ?
	`
	rec, err := scanAttendance(r.db.QueryRowContext(ctx, query, employeeID, date))
	if err != nil {
		return nil, wrapErr("failed to get attendance", err)
	}
	return rec, nil
}

// ListByMonth returns records whose date starts with prefix (YYYY-MM-),
// ordered by date.
func (r *AttendanceRepository) ListByMonth(ctx context.Context, employeeID int, prefix string) ([]models.AttendanceRecord, error) {
	query := `
		SELECT employee_id, work_date, start_time, end_time, leave_type
		FROM attendances
		WHERE employee_id = ? AND work_date LIKE ? || '%'
		ORDER BY work_date ASC
	`
	rows, err := r.db.QueryContext(ctx, query, employeeID, prefix)
	if err != nil {
		return nil, wrapErr("failed to query attendances", err)
	}
	defer rows.Close()

	records := []models.AttendanceRecord{}
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, wrapErr("failed to scan attendance", err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("error iterating attendances", err)
	}
	return records, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAttendance(row rowScanner) (*models.AttendanceRecord, error) {
	var rec models.AttendanceRecord
	var start, end sql.NullString
	var leaveType sql.NullInt64
	if err := row.Scan(&rec.EmployeeID, &rec.Date, &start, &end, &leaveType); err != nil {
		return nil, err
	}
	rec.StartTime = stringPtr(start)
	rec.EndTime = stringPtr(end)
	if leaveType.Valid {
		lt := models.LeaveType(leaveType.Int64)
		rec.LeaveType = &lt
	}
	return &rec, nil
}
