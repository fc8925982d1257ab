package session

import (
	"jinji/attendance-sync/internal/models"
	"jinji/attendance-sync/internal/retry"

	"go.uber.org/zap"
)

// AttendanceScreen wires a month view and a day session for one signed-in
// employee. A successful day submit refreshes the month.
type AttendanceScreen struct {
	Month *MonthView
	Day   *DaySession
}

func NewAttendanceScreen(remote Remote, retrier *retry.Retrier, cred models.Credential, logger *zap.Logger) *AttendanceScreen {
	month := NewMonthView(remote, retrier, cred, logger.Named("month"))
	return &AttendanceScreen{
		Month: month,
		Day:   NewDaySession(remote, retrier, cred, month, logger.Named("day")),
	}
}

// Leave discards the day selection.
func (s *AttendanceScreen) Leave() {
	s.Day.Reset()
}
