// Package calendar builds the month grid shown on the attendance screen and
// stamps remote attendance and leave records onto it.
package calendar

import (
	"time"

	"jinji/attendance-sync/internal/dateutil"
	"jinji/attendance-sync/internal/models"
)

// DaysPerWeek is the grid width. Weeks start on Sunday.
const DaysPerWeek = 7

// Day is one cell of the month grid.
type Day struct {
	Date           time.Time
	DateString     string
	IsCurrentMonth bool
	IsToday        bool
	Attendance     *models.AttendanceRecord
	Leave          *models.LeaveRecord
}

// Selectable reports whether the cell can be opened for editing. Padding
// cells from neighbouring months never can.
func (d Day) Selectable() bool {
	return d.IsCurrentMonth
}

// Annotated reports whether any record is attached to the cell.
func (d Day) Annotated() bool {
	return d.Attendance != nil || d.Leave != nil
}

// BuildGrid returns complete weeks covering month: trailing days of the
// previous month, every day of month, then leading days of the next month.
// data may be nil, in which case no cell is annotated.
func BuildGrid(month dateutil.Month, data *models.MonthlyAttendance, now time.Time) []Day {
	first := month.FirstDay()
	last := month.LastDay()

	lead := int(first.Weekday())
	trail := DaysPerWeek - 1 - int(last.Weekday())

	days := make([]Day, 0, lead+month.Days()+trail)

	for i := lead; i > 0; i-- {
		days = append(days, paddingDay(first.AddDate(0, 0, -i)))
	}

	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		days = append(days, Day{
			Date:           d,
			DateString:     dateutil.DayKey(d),
			IsCurrentMonth: true,
			IsToday:        dateutil.SameDay(d, now),
		})
	}

	for i := 1; i <= trail; i++ {
		days = append(days, paddingDay(last.AddDate(0, 0, i)))
	}

	return Merge(days, data)
}

func paddingDay(d time.Time) Day {
	return Day{Date: d, DateString: dateutil.DayKey(d)}
}

// Weeks splits a grid into rows of DaysPerWeek cells.
func Weeks(days []Day) [][]Day {
	weeks := make([][]Day, 0, len(days)/DaysPerWeek)
	for i := 0; i+DaysPerWeek <= len(days); i += DaysPerWeek {
		weeks = append(weeks, days[i:i+DaysPerWeek])
	}
	return weeks
}

// Find returns the cell for a YYYY-MM-DD key among current-month cells.
func Find(days []Day, date string) (Day, bool) {
	for _, d := range days {
		if d.IsCurrentMonth && d.DateString == date {
			return d, true
		}
	}
	return Day{}, false
}
