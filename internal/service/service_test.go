package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"jinji/attendance-sync/internal/database"
	"jinji/attendance-sync/internal/models"
	"jinji/attendance-sync/internal/repository"

	"go.uber.org/zap"
)

type fixture struct {
	db          *database.DB
	auth        *AuthService
	attendance  *AttendanceService
	salary      *SalaryService
	performance *PerformanceService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := zap.NewNop()
	db, err := database.New(filepath.Join(t.TempDir(), "service.db"), logger)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	f := &fixture{
		db:          db,
		auth:        NewAuthService(repository.NewEmployeeRepository(db.DB), "test-secret", time.Hour, logger),
		attendance:  NewAttendanceService(repository.NewAttendanceRepository(db.DB), repository.NewLeaveRepository(db.DB), logger),
		salary:      NewSalaryService(repository.NewSalaryRepository(db.DB)),
		performance: NewPerformanceService(repository.NewPerformanceRepository(db.DB), logger),
	}
	ctx := context.Background()
	if err := f.auth.RegisterEmployee(ctx, 1001, "Sato", models.RoleStaff, "password1"); err != nil {
		t.Fatalf("register staff: %v", err)
	}
	if err := f.auth.RegisterEmployee(ctx, 2001, "Tanaka", models.RoleManager, "password2"); err != nil {
		t.Fatalf("register manager: %v", err)
	}
	return f
}

func strPtr(s string) *string { return &s }

func leavePtr(t models.LeaveType) *models.LeaveType { return &t }

func TestValidateAttendance(t *testing.T) {
	tests := []struct {
		name    string
		rec     models.AttendanceRecord
		wantErr bool
	}{
		{"times", models.AttendanceRecord{EmployeeID: 1, Date: "2025-04-10", StartTime: strPtr("09:00"), EndTime: strPtr("18:00")}, false},
		{"start only", models.AttendanceRecord{EmployeeID: 1, Date: "2025-04-10", StartTime: strPtr("09:00")}, false},
		{"leave", models.AttendanceRecord{EmployeeID: 1, Date: "2025-04-10", LeaveType: leavePtr(models.LeaveSick)}, false},
		{"empty record", models.AttendanceRecord{EmployeeID: 1, Date: "2025-04-10"}, false},
		{"end before start", models.AttendanceRecord{EmployeeID: 1, Date: "2025-04-10", StartTime: strPtr("18:00"), EndTime: strPtr("09:00")}, true},
		{"end without start", models.AttendanceRecord{EmployeeID: 1, Date: "2025-04-10", EndTime: strPtr("18:00")}, true},
		{"leave with times", models.AttendanceRecord{EmployeeID: 1, Date: "2025-04-10", StartTime: strPtr("09:00"), LeaveType: leavePtr(models.LeavePaid)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAttendance(tt.rec)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateAttendance() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !IsValidation(err) {
				t.Fatalf("expected ValidationError, got %T", err)
			}
		})
	}
}

func TestAttendanceMonthlyAndDaily(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if err := f.attendance.Update(ctx, models.AttendanceRecord{EmployeeID: 1001, Date: "2025-04-03", StartTime: strPtr("09:00"), EndTime: strPtr("17:30")}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := f.attendance.CreateLeave(ctx, models.LeaveRecord{EmployeeID: 1001, Date: "2025-04-04", LeaveType: models.LeavePaid}); err != nil {
		t.Fatalf("create leave: %v", err)
	}
	if err := f.attendance.Update(ctx, models.AttendanceRecord{EmployeeID: 1001, Date: "2025-05-01", StartTime: strPtr("09:00")}); err != nil {
		t.Fatalf("update next month: %v", err)
	}

	data, err := f.attendance.Monthly(ctx, 1001, "202504")
	if err != nil {
		t.Fatalf("monthly: %v", err)
	}
	if len(data.Attendances) != 1 || len(data.Leaves) != 1 {
		t.Fatalf("expected 1 attendance and 1 leave, got %d and %d", len(data.Attendances), len(data.Leaves))
	}

	if _, err := f.attendance.Monthly(ctx, 1001, "2025-04"); !IsValidation(err) {
		t.Fatalf("expected validation error for bad month, got %v", err)
	}

	rec, err := f.attendance.Daily(ctx, 1001, "2025-04-20")
	if err != nil {
		t.Fatalf("daily: %v", err)
	}
	if rec != nil {
		t.Fatalf("expected nil record, got %+v", rec)
	}

	if err := f.attendance.DeleteLeave(ctx, 1001, "2025-04-04"); err != nil {
		t.Fatalf("delete leave: %v", err)
	}
	if err := f.attendance.DeleteLeave(ctx, 1001, "2025-04-04"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestLoginAndParseToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.auth.Login(ctx, 1001, "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if _, err := f.auth.Login(ctx, 9999, "password1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for unknown employee, got %v", err)
	}

	resp, err := f.auth.Login(ctx, 1001, "password1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.Name != "Sato" || resp.Role != models.RoleStaff {
		t.Fatalf("unexpected login response: %+v", resp)
	}

	claims, err := f.auth.ParseToken(resp.Token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.EmployeeID != 1001 || !claims.CanAccess(1001) || claims.CanAccess(2001) {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	if _, err := f.auth.ParseToken(resp.Token + "x"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token, got %v", err)
	}

	other := NewAuthService(repository.NewEmployeeRepository(f.db.DB), "other-secret", time.Hour, zap.NewNop())
	if _, err := other.ParseToken(resp.Token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected token signed with another secret to be rejected, got %v", err)
	}
}

func TestExpiredToken(t *testing.T) {
	f := newFixture(t)
	short := NewAuthService(repository.NewEmployeeRepository(f.db.DB), "test-secret", -time.Minute, zap.NewNop())

	resp, err := short.Login(context.Background(), 1001, "password1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := short.ParseToken(resp.Token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected expired token to be rejected, got %v", err)
	}
}

func TestSalaryStatement(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.salary.Statement(ctx, 1001, "202504"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	pay := models.Salary{BasicSalary: 300000, OvertimeAllowance: 20000, HealthInsurance: 15000, Pension: 27000, IncomeTax: 8000}
	if err := f.salary.Record(ctx, 1001, "202504", pay); err != nil {
		t.Fatalf("record: %v", err)
	}
	st, err := f.salary.Statement(ctx, 1001, "202504")
	if err != nil {
		t.Fatalf("statement: %v", err)
	}
	if st.TotalDeductions != 50000 || st.TakeHome != 270000 {
		t.Fatalf("unexpected totals: deductions=%d take_home=%d", st.TotalDeductions, st.TakeHome)
	}
}

func TestPerformanceSubmitRoles(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	staff := &Claims{EmployeeID: 1001, Role: models.RoleStaff}
	manager := &Claims{EmployeeID: 2001, Role: models.RoleManager}

	if err := f.performance.Submit(ctx, staff, models.PerformanceReview{EmployeeID: 1001, Month: "202504", SubordinateInput: "shipped the release"}); err != nil {
		t.Fatalf("staff submit: %v", err)
	}

	err := f.performance.Submit(ctx, staff, models.PerformanceReview{EmployeeID: 1001, Month: "202504", SupervisorAbility: 5})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected staff scoring to be forbidden, got %v", err)
	}
	err = f.performance.Submit(ctx, staff, models.PerformanceReview{EmployeeID: 2001, Month: "202504", SubordinateInput: "x"})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected staff writing another review to be forbidden, got %v", err)
	}

	err = f.performance.Submit(ctx, manager, models.PerformanceReview{
		EmployeeID:        1001,
		Month:             "202504",
		SubordinateInput:  "overwritten?",
		SupervisorAbility: 4,
		SupervisorInput:   "solid month",
	})
	if err != nil {
		t.Fatalf("manager submit: %v", err)
	}

	review, err := f.performance.Get(ctx, 1001, "202504")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if review.SubordinateInput != "shipped the release" {
		t.Fatalf("manager overwrote self comment: %q", review.SubordinateInput)
	}
	if review.SupervisorAbility != 4 || review.SupervisorInput != "solid month" {
		t.Fatalf("supervisor fields not saved: %+v", review)
	}

	none, err := f.performance.Get(ctx, 1001, "202505")
	if err != nil || none != nil {
		t.Fatalf("expected no review, got %+v, %v", none, err)
	}
}
