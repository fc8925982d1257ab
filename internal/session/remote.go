// Package session holds the attendance screen's in-memory state: the month
// grid being shown and the single day selected for editing.
package session

import (
	"context"
	"errors"

	"jinji/attendance-sync/internal/models"
)

// Remote is the subset of the record store API the attendance screen uses.
// *client.APIClient satisfies it.
type Remote interface {
	FetchMonthlyAttendance(ctx context.Context, cred models.Credential, month string) (*models.MonthlyAttendance, error)
	FetchDailyAttendance(ctx context.Context, cred models.Credential, date string) (*models.AttendanceRecord, error)
	UpdateAttendance(ctx context.Context, cred models.Credential, rec models.AttendanceRecord) (*models.MessageResponse, error)
	CreateLeave(ctx context.Context, cred models.Credential, leave models.LeaveRecord) (*models.MessageResponse, error)
	DeleteLeave(ctx context.Context, cred models.Credential, employeeID int, date string) (*models.MessageResponse, error)
}

var (
	ErrNotSelectable    = errors.New("day is outside the displayed month")
	ErrNotEditable      = errors.New("no day is ready for editing")
	ErrNotSubmittable   = errors.New("nothing to submit")
	ErrLeaveSelected    = errors.New("clear the leave type before entering times")
	ErrInvalidTime      = errors.New("time must be HH:MM")
	ErrInvalidLeaveType = errors.New("unknown leave type")
	ErrStartRequired    = errors.New("start time is required when an end time is set")
	ErrEndBeforeStart   = errors.New("end time is before start time")
)
