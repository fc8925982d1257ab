package session

import (
	"context"
	"sync"
	"time"

	"jinji/attendance-sync/internal/calendar"
	"jinji/attendance-sync/internal/dateutil"
	"jinji/attendance-sync/internal/models"
	"jinji/attendance-sync/internal/retry"

	"go.uber.org/zap"
)

// MonthSnapshot is a copy of the month view's state.
type MonthSnapshot struct {
	Month   dateutil.Month
	Days    []calendar.Day
	Loading bool
	Message string
}

// MonthView owns the grid for the selected month. Responses for a month that
// is no longer selected, or for a superseded refresh, are dropped.
type MonthView struct {
	remote  Remote
	retrier *retry.Retrier
	cred    models.Credential
	logger  *zap.Logger
	now     func() time.Time

	mu         sync.RWMutex
	month      dateutil.Month
	generation uint64
	days       []calendar.Day
	loading    bool
	message    string
}

func NewMonthView(remote Remote, retrier *retry.Retrier, cred models.Credential, logger *zap.Logger) *MonthView {
	return &MonthView{
		remote:  remote,
		retrier: retrier,
		cred:    cred,
		logger:  logger,
		now:     time.Now,
	}
}

// SelectMonth shows an unannotated grid for month at once, then fetches the
// month's records and stamps them on. A fetch failure leaves the grid
// unannotated and is returned so the caller can show the message.
func (v *MonthView) SelectMonth(ctx context.Context, month dateutil.Month) error {
	v.mu.Lock()
	v.generation++
	gen := v.generation
	v.month = month
	v.days = calendar.BuildGrid(month, nil, v.now())
	v.loading = true
	v.message = ""
	v.mu.Unlock()

	return v.load(ctx, gen, month)
}

// Refresh re-fetches the selected month. It does nothing before the first
// SelectMonth.
func (v *MonthView) Refresh(ctx context.Context) error {
	v.mu.Lock()
	if v.month == (dateutil.Month{}) {
		v.mu.Unlock()
		return nil
	}
	v.generation++
	gen := v.generation
	month := v.month
	v.loading = true
	v.mu.Unlock()

	return v.load(ctx, gen, month)
}

func (v *MonthView) load(ctx context.Context, gen uint64, month dateutil.Month) error {
	key := month.Key()
	data, err := retry.Do(ctx, v.retrier, "fetch_monthly_attendance", func(ctx context.Context) (*models.MonthlyAttendance, error) {
		return v.remote.FetchMonthlyAttendance(ctx, v.cred, key)
	})

	v.mu.Lock()
	defer v.mu.Unlock()

	if gen != v.generation || month != v.month {
		v.logger.Debug("Discarding stale month response",
			zap.String("month", key),
			zap.String("selected", v.month.Key()),
		)
		return nil
	}

	v.loading = false
	if err != nil {
		v.logger.Warn("Monthly attendance unavailable, showing empty grid",
			zap.String("month", key),
			zap.Error(err),
		)
		v.days = calendar.BuildGrid(month, nil, v.now())
		v.message = err.Error()
		return err
	}

	if dups := calendar.DuplicateDates(data); len(dups) > 0 {
		v.logger.Warn("Duplicate records in monthly attendance, first record per date is shown",
			zap.String("month", key),
			zap.Strings("dates", dups),
		)
	}
	v.days = calendar.BuildGrid(month, data, v.now())
	v.message = ""
	return nil
}

// Snapshot returns a copy of the current state.
func (v *MonthView) Snapshot() MonthSnapshot {
	v.mu.RLock()
	defer v.mu.RUnlock()

	days := make([]calendar.Day, len(v.days))
	copy(days, v.days)
	return MonthSnapshot{
		Month:   v.month,
		Days:    days,
		Loading: v.loading,
		Message: v.message,
	}
}

// Day returns the current-month cell for a YYYY-MM-DD key.
func (v *MonthView) Day(date string) (calendar.Day, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return calendar.Find(v.days, date)
}

// Dismiss clears the failure message.
func (v *MonthView) Dismiss() {
	v.mu.Lock()
	v.message = ""
	v.mu.Unlock()
}
