// Package dateutil converts between calendar dates and the two string keys
// the record store uses: YYYYMM for a month and YYYY-MM-DD for a day.
package dateutil

import (
	"fmt"
	"time"
)

const (
	MonthLayout = "200601"
	DayLayout   = "2006-01-02"
	TimeLayout  = "15:04"
)

// Month is a calendar month independent of any time zone.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the month containing t, in t's location.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// ParseMonth parses a YYYYMM key.
func ParseMonth(key string) (Month, error) {
	t, err := time.Parse(MonthLayout, key)
	if err != nil || len(key) != len(MonthLayout) {
		return Month{}, fmt.Errorf("invalid month %q: want YYYYMM", key)
	}
	return MonthOf(t), nil
}

// Key formats the month as YYYYMM.
func (m Month) Key() string {
	return fmt.Sprintf("%04d%02d", m.Year, int(m.Month))
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// FirstDay is the first date of the month at midnight UTC.
func (m Month) FirstDay() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// LastDay is the last date of the month at midnight UTC.
func (m Month) LastDay() time.Time {
	return m.FirstDay().AddDate(0, 1, -1)
}

// Days returns the number of days in the month.
func (m Month) Days() int {
	return m.LastDay().Day()
}

func (m Month) Next() Month {
	return MonthOf(m.FirstDay().AddDate(0, 1, 0))
}

func (m Month) Prev() Month {
	return MonthOf(m.FirstDay().AddDate(0, -1, 0))
}

// Contains reports whether the date falls inside the month.
func (m Month) Contains(t time.Time) bool {
	return t.Year() == m.Year && t.Month() == m.Month
}

// DayKey formats t as YYYY-MM-DD using t's own calendar date.
func DayKey(t time.Time) string {
	return t.Format(DayLayout)
}

// MonthKey formats t as YYYYMM.
func MonthKey(t time.Time) string {
	return t.Format(MonthLayout)
}

// ParseDay parses a YYYY-MM-DD key into midnight UTC.
func ParseDay(key string) (time.Time, error) {
	t, err := time.Parse(DayLayout, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", key)
	}
	return t, nil
}

// SameDay reports whether a and b fall on the same calendar date, each read
// in its own location.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// ValidClock reports whether s is a 24h HH:MM time.
func ValidClock(s string) bool {
	if len(s) != len(TimeLayout) {
		return false
	}
	_, err := time.Parse(TimeLayout, s)
	return err == nil
}

// DayPrefix returns the YYYY-MM- prefix shared by every day key of the month.
func (m Month) DayPrefix() string {
	return fmt.Sprintf("%04d-%02d-", m.Year, int(m.Month))
}
