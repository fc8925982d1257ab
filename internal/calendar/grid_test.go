package calendar

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"jinji/attendance-sync/internal/dateutil"
	"jinji/attendance-sync/internal/models"
)

func strPtr(s string) *string { return &s }

func TestBuildGridApril2025(t *testing.T) {
	now := time.Date(2025, time.April, 15, 10, 0, 0, 0, time.UTC)
	days := BuildGrid(dateutil.Month{Year: 2025, Month: time.April}, nil, now)

	if len(days) != 35 {
		t.Fatalf("expected 35 cells, got %d", len(days))
	}
	if days[0].DateString != "2025-03-30" || days[1].DateString != "2025-03-31" {
		t.Fatalf("expected March 30/31 padding, got %s %s", days[0].DateString, days[1].DateString)
	}
	if days[0].IsCurrentMonth || days[1].IsCurrentMonth {
		t.Fatalf("leading padding marked as current month")
	}
	if days[2].DateString != "2025-04-01" || !days[2].IsCurrentMonth {
		t.Fatalf("expected April 1 at index 2, got %+v", days[2])
	}
	tail := days[32:]
	for i, want := range []string{"2025-05-01", "2025-05-02", "2025-05-03"} {
		if tail[i].DateString != want || tail[i].IsCurrentMonth {
			t.Fatalf("expected trailing padding %s, got %+v", want, tail[i])
		}
	}

	today := 0
	for _, d := range days {
		if d.IsToday {
			today++
			if d.DateString != "2025-04-15" {
				t.Fatalf("wrong cell marked today: %s", d.DateString)
			}
		}
	}
	if today != 1 {
		t.Fatalf("expected exactly one today cell, got %d", today)
	}
}

func TestBuildGridCompleteWeeks(t *testing.T) {
	now := time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC)
	m := dateutil.Month{Year: 2020, Month: time.January}
	for i := 0; i < 120; i++ {
		days := BuildGrid(m, nil, now)
		if len(days)%DaysPerWeek != 0 {
			t.Fatalf("%s: %d cells is not whole weeks", m, len(days))
		}
		if days[0].Date.Weekday() != time.Sunday {
			t.Fatalf("%s: grid starts on %s", m, days[0].Date.Weekday())
		}
		if days[len(days)-1].Date.Weekday() != time.Saturday {
			t.Fatalf("%s: grid ends on %s", m, days[len(days)-1].Date.Weekday())
		}

		seen := make(map[string]int)
		current := 0
		for _, d := range days {
			if d.IsCurrentMonth {
				current++
				seen[d.DateString]++
				if !m.Contains(d.Date) {
					t.Fatalf("%s: cell %s marked current month", m, d.DateString)
				}
			} else if m.Contains(d.Date) {
				t.Fatalf("%s: cell %s in month marked as padding", m, d.DateString)
			}
		}
		if current != m.Days() || len(seen) != m.Days() {
			t.Fatalf("%s: expected %d unique current-month cells, got %d (%d unique)", m, m.Days(), current, len(seen))
		}
		m = m.Next()
	}
}

func TestBuildGridFebruaryStartingSunday(t *testing.T) {
	// February 2015 starts on Sunday and has 28 days: no padding at all.
	days := BuildGrid(dateutil.Month{Year: 2015, Month: time.February}, nil, time.Now())
	if len(days) != 28 {
		t.Fatalf("expected 28 cells, got %d", len(days))
	}
	for _, d := range days {
		if !d.IsCurrentMonth {
			t.Fatalf("unexpected padding cell %s", d.DateString)
		}
	}
}

func TestBuildGridMergesData(t *testing.T) {
	data := &models.MonthlyAttendance{
		Attendances: []models.AttendanceRecord{
			{EmployeeID: 1, Date: "2025-04-01", StartTime: strPtr("09:00"), EndTime: strPtr("18:00")},
			{EmployeeID: 1, Date: "2025-03-31", StartTime: strPtr("09:00")},
		},
		Leaves: []models.LeaveRecord{
			{EmployeeID: 1, Date: "2025-04-02", LeaveType: models.LeavePaid},
		},
	}
	days := BuildGrid(dateutil.Month{Year: 2025, Month: time.April}, data, time.Now())

	for _, d := range days {
		switch d.DateString {
		case "2025-04-01":
			if d.Attendance == nil || d.Leave != nil {
				t.Fatalf("expected attendance only on April 1, got %+v", d)
			}
		case "2025-04-02":
			if d.Leave == nil || d.Leave.LeaveType != models.LeavePaid {
				t.Fatalf("expected paid leave on April 2, got %+v", d)
			}
		case "2025-03-31":
			if d.Annotated() {
				t.Fatalf("padding cell must not be annotated")
			}
		default:
			if d.Annotated() {
				t.Fatalf("unexpected annotation on %s", d.DateString)
			}
		}
	}
}

func TestMergeAnnotatesIffDateMatches(t *testing.T) {
	month := dateutil.Month{Year: 2025, Month: time.June}
	data := &models.MonthlyAttendance{
		Attendances: []models.AttendanceRecord{
			{EmployeeID: 1, Date: "2025-06-03", StartTime: strPtr("08:30")},
			{EmployeeID: 1, Date: "2025-06-17", StartTime: strPtr("10:00")},
		},
		Leaves: []models.LeaveRecord{
			{EmployeeID: 1, Date: "2025-06-17", LeaveType: models.LeaveSick},
			{EmployeeID: 1, Date: "2025-06-30", LeaveType: models.LeaveAbsence},
		},
	}
	attDates := map[string]bool{"2025-06-03": true, "2025-06-17": true}
	leaveDates := map[string]bool{"2025-06-17": true, "2025-06-30": true}

	for _, d := range BuildGrid(month, data, time.Now()) {
		if !d.IsCurrentMonth {
			continue
		}
		if (d.Attendance != nil) != attDates[d.DateString] {
			t.Fatalf("attendance annotation mismatch on %s", d.DateString)
		}
		if (d.Leave != nil) != leaveDates[d.DateString] {
			t.Fatalf("leave annotation mismatch on %s", d.DateString)
		}
	}
}

func TestMergeIdempotent(t *testing.T) {
	month := dateutil.Month{Year: 2025, Month: time.April}
	data := &models.MonthlyAttendance{
		Attendances: []models.AttendanceRecord{{EmployeeID: 1, Date: "2025-04-08", StartTime: strPtr("09:00")}},
		Leaves:      []models.LeaveRecord{{EmployeeID: 1, Date: "2025-04-09", LeaveType: models.LeaveSpecial}},
	}
	now := time.Now()
	once := Merge(BuildGrid(month, nil, now), data)
	twice := Merge(once, data)

	if len(once) != len(twice) {
		t.Fatalf("length changed: %d vs %d", len(once), len(twice))
	}
	for i := range once {
		a, b := once[i], twice[i]
		if a.DateString != b.DateString || a.IsCurrentMonth != b.IsCurrentMonth || a.IsToday != b.IsToday {
			t.Fatalf("cell %d changed: %+v vs %+v", i, a, b)
		}
		if (a.Attendance == nil) != (b.Attendance == nil) || (a.Leave == nil) != (b.Leave == nil) {
			t.Fatalf("annotation changed on %s", a.DateString)
		}
		if a.Attendance != nil && *a.Attendance.StartTime != *b.Attendance.StartTime {
			t.Fatalf("attendance changed on %s", a.DateString)
		}
	}
}

func TestMergeFirstRecordWinsOnDuplicates(t *testing.T) {
	data := &models.MonthlyAttendance{
		Attendances: []models.AttendanceRecord{
			{EmployeeID: 1, Date: "2025-04-08", StartTime: strPtr("09:00")},
			{EmployeeID: 1, Date: "2025-04-08", StartTime: strPtr("11:00")},
		},
		Leaves: []models.LeaveRecord{
			{EmployeeID: 1, Date: "2025-04-10", LeaveType: models.LeavePaid},
			{EmployeeID: 1, Date: "2025-04-10", LeaveType: models.LeaveSick},
		},
	}
	days := BuildGrid(dateutil.Month{Year: 2025, Month: time.April}, data, time.Now())

	d, ok := Find(days, "2025-04-08")
	if !ok || d.Attendance == nil || *d.Attendance.StartTime != "09:00" {
		t.Fatalf("expected first attendance to win, got %+v", d.Attendance)
	}
	d, ok = Find(days, "2025-04-10")
	if !ok || d.Leave == nil || d.Leave.LeaveType != models.LeavePaid {
		t.Fatalf("expected first leave to win, got %+v", d.Leave)
	}

	dups := DuplicateDates(data)
	if len(dups) != 2 || dups[0] != "2025-04-08" || dups[1] != "2025-04-10" {
		t.Fatalf("unexpected duplicates %v", dups)
	}
}

func TestMergeNilClearsAnnotations(t *testing.T) {
	data := &models.MonthlyAttendance{
		Leaves: []models.LeaveRecord{{EmployeeID: 1, Date: "2025-04-09", LeaveType: models.LeavePaid}},
	}
	days := BuildGrid(dateutil.Month{Year: 2025, Month: time.April}, data, time.Now())
	for _, d := range Merge(days, nil) {
		if d.Annotated() {
			t.Fatalf("expected no annotations, got one on %s", d.DateString)
		}
	}
}

func TestRender(t *testing.T) {
	now := time.Date(2025, time.April, 2, 0, 0, 0, 0, time.UTC)
	data := &models.MonthlyAttendance{
		Attendances: []models.AttendanceRecord{{EmployeeID: 1, Date: "2025-04-01", StartTime: strPtr("09:00")}},
		Leaves:      []models.LeaveRecord{{EmployeeID: 1, Date: "2025-04-03", LeaveType: models.LeavePaid}},
	}
	var buf bytes.Buffer
	if err := Render(&buf, BuildGrid(dateutil.Month{Year: 2025, Month: time.April}, data, now)); err != nil {
		t.Fatalf("render: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 6 {
		t.Fatalf("expected header plus 5 weeks, got %d lines", len(lines))
	}
	if !strings.Contains(lines[1], " 1 W") || !strings.Contains(lines[1], "[ 2]") || !strings.Contains(lines[1], " 3 L") {
		t.Fatalf("unexpected first week %q", lines[1])
	}
}
