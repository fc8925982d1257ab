package handler

import (
	"testing"

	"jinji/attendance-sync/internal/models"
)

func strPtr(s string) *string { return &s }

func leavePtr(t models.LeaveType) *models.LeaveType { return &t }

func TestAttendancePayloadValidation(t *testing.T) {
	tests := []struct {
		name    string
		rec     models.AttendanceRecord
		wantErr bool
	}{
		{"times", models.AttendanceRecord{EmployeeID: 1, Date: "2025-04-10", StartTime: strPtr("09:00"), EndTime: strPtr("18:00")}, false},
		{"leave", models.AttendanceRecord{EmployeeID: 1, Date: "2025-04-10", LeaveType: leavePtr(models.LeaveBereavement)}, false},
		{"empty record", models.AttendanceRecord{EmployeeID: 1, Date: "2025-04-10"}, false},
		{"missing employee", models.AttendanceRecord{Date: "2025-04-10"}, true},
		{"bad date", models.AttendanceRecord{EmployeeID: 1, Date: "2025-4-10"}, true},
		{"impossible date", models.AttendanceRecord{EmployeeID: 1, Date: "2025-02-30"}, true},
		{"short clock", models.AttendanceRecord{EmployeeID: 1, Date: "2025-04-10", StartTime: strPtr("9:00")}, true},
		{"bad clock", models.AttendanceRecord{EmployeeID: 1, Date: "2025-04-10", StartTime: strPtr("25:00")}, true},
		{"unknown leave", models.AttendanceRecord{EmployeeID: 1, Date: "2025-04-10", LeaveType: leavePtr(9)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(tt.rec)
			if (err != nil) != tt.wantErr {
				t.Fatalf("validate(%+v) error = %v, wantErr %v", tt.rec, err, tt.wantErr)
			}
		})
	}
}

func TestLeavePayloadValidation(t *testing.T) {
	if err := validate.Struct(models.LeaveRecord{EmployeeID: 1, Date: "2025-04-10", LeaveType: models.LeaveSick}); err != nil {
		t.Fatalf("expected valid leave, got %v", err)
	}
	for _, lt := range []models.LeaveType{models.LeaveNone, 9} {
		if err := validate.Struct(models.LeaveRecord{EmployeeID: 1, Date: "2025-04-10", LeaveType: lt}); err == nil {
			t.Fatalf("expected leave code %d to be rejected", lt)
		}
	}
	if err := validate.Struct(models.LeaveRecord{EmployeeID: 1, Date: "20250410", LeaveType: models.LeavePaid}); err == nil {
		t.Fatal("expected bad date to be rejected")
	}
}
