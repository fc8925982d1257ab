package calendar

import (
	"fmt"
	"io"
	"strings"

	"jinji/attendance-sync/internal/models"
)

var weekdayHeader = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// Render writes the grid as a week table. Padding cells are blank, today is
// bracketed, and annotated cells carry a marker: L for leave, W for a worked
// day.
func Render(w io.Writer, days []Day) error {
	if _, err := fmt.Fprintln(w, strings.Join(weekdayHeader, "   ")); err != nil {
		return err
	}
	for _, week := range Weeks(days) {
		cells := make([]string, len(week))
		for i, d := range week {
			cells[i] = cell(d)
		}
		if _, err := fmt.Fprintln(w, strings.Join(cells, " ")); err != nil {
			return err
		}
	}
	return nil
}

func cell(d Day) string {
	if !d.IsCurrentMonth {
		return "     "
	}
	mark := " "
	if d.Leave != nil {
		mark = "L"
	} else if d.Attendance != nil {
		switch d.Attendance.Entry().(type) {
		case models.OnLeave:
			mark = "L"
		case models.Worked:
			mark = "W"
		}
	}
	if d.IsToday {
		return fmt.Sprintf("[%2d]%s", d.Date.Day(), mark)
	}
	return fmt.Sprintf(" %2d %s", d.Date.Day(), mark)
}
