package calendar

import (
	"jinji/attendance-sync/internal/models"
)

// Merge returns a copy of days with each current-month cell annotated by the
// attendance and leave record whose date string equals the cell's. Existing
// annotations are replaced, so merging the same data twice gives the same
// grid. When a date appears more than once the first record wins; use
// DuplicateDates to detect that upstream.
func Merge(days []Day, data *models.MonthlyAttendance) []Day {
	out := make([]Day, len(days))
	copy(out, days)

	var attendances map[string]*models.AttendanceRecord
	var leaves map[string]*models.LeaveRecord
	if data != nil {
		attendances = indexAttendances(data.Attendances)
		leaves = indexLeaves(data.Leaves)
	}

	for i := range out {
		out[i].Attendance = nil
		out[i].Leave = nil
		if !out[i].IsCurrentMonth {
			continue
		}
		out[i].Attendance = attendances[out[i].DateString]
		out[i].Leave = leaves[out[i].DateString]
	}
	return out
}

func indexAttendances(records []models.AttendanceRecord) map[string]*models.AttendanceRecord {
	idx := make(map[string]*models.AttendanceRecord, len(records))
	for i := range records {
		if _, seen := idx[records[i].Date]; seen {
			continue
		}
		rec := records[i]
		idx[rec.Date] = &rec
	}
	return idx
}

func indexLeaves(records []models.LeaveRecord) map[string]*models.LeaveRecord {
	idx := make(map[string]*models.LeaveRecord, len(records))
	for i := range records {
		if _, seen := idx[records[i].Date]; seen {
			continue
		}
		rec := records[i]
		idx[rec.Date] = &rec
	}
	return idx
}

// DuplicateDates lists dates that occur more than once among the attendances
// or among the leaves, in first-seen order.
func DuplicateDates(data *models.MonthlyAttendance) []string {
	if data == nil {
		return nil
	}
	var dups []string
	reported := make(map[string]bool)
	check := func(seen map[string]bool, date string) {
		if seen[date] && !reported[date] {
			reported[date] = true
			dups = append(dups, date)
		}
		seen[date] = true
	}

	seen := make(map[string]bool)
	for _, a := range data.Attendances {
		check(seen, a.Date)
	}
	seen = make(map[string]bool)
	for _, l := range data.Leaves {
		check(seen, l.Date)
	}
	return dups
}
