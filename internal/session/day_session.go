package session

import (
	"context"
	"sync"

	"jinji/attendance-sync/internal/calendar"
	"jinji/attendance-sync/internal/client"
	"jinji/attendance-sync/internal/dateutil"
	"jinji/attendance-sync/internal/models"
	"jinji/attendance-sync/internal/retry"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// State is the day session's position in its lifecycle.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateEditing
	StateSubmitting
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateEditing:
		return "editing"
	case StateSubmitting:
		return "submitting"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Form holds the editable fields. Times are HH:MM or empty; a positive
// LeaveType means the day is taken as leave and the times are ignored.
type Form struct {
	StartTime string
	EndTime   string
	LeaveType models.LeaveType
}

// FormFromRecord fills a form from a fetched record.
func FormFromRecord(rec models.AttendanceRecord) Form {
	switch e := rec.Entry().(type) {
	case models.OnLeave:
		return Form{LeaveType: e.Type}
	case models.Worked:
		return Form{StartTime: e.Start, EndTime: e.End}
	default:
		return Form{}
	}
}

// Entry converts the form to a DayEntry.
func (f Form) Entry() models.DayEntry {
	if f.LeaveType > models.LeaveNone {
		return models.OnLeave{Type: f.LeaveType}
	}
	if f.StartTime == "" && f.EndTime == "" {
		return models.Unrecorded{}
	}
	return models.Worked{Start: f.StartTime, End: f.EndTime}
}

// Validate checks a worked-day form before it is sent.
func (f Form) Validate() error {
	if f.LeaveType > models.LeaveNone {
		if !f.LeaveType.Valid() {
			return ErrInvalidLeaveType
		}
		return nil
	}
	if f.EndTime != "" && f.StartTime == "" {
		return ErrStartRequired
	}
	if f.StartTime != "" && f.EndTime != "" && f.EndTime < f.StartTime {
		return ErrEndBeforeStart
	}
	return nil
}

// Selection is a copy of the day session's state.
type Selection struct {
	State   State
	Date    string
	Record  *models.AttendanceRecord
	Form    Form
	Message string
}

// Refresher re-fetches data shown alongside the day, typically the month grid.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// DaySession tracks the selected day, its fetched record and the edit form.
// Every select or submit bumps a generation counter; a response is applied
// only if its generation is still current, so a slow fetch for a previously
// selected day can never overwrite the current one.
type DaySession struct {
	remote  Remote
	retrier *retry.Retrier
	cred    models.Credential
	month   Refresher
	logger  *zap.Logger

	mu           sync.Mutex
	state        State
	date         string
	record       *models.AttendanceRecord
	form         Form
	message      string
	submitFailed bool
	generation   uint64
}

// NewDaySession creates an idle session. month may be nil.
func NewDaySession(remote Remote, retrier *retry.Retrier, cred models.Credential, month Refresher, logger *zap.Logger) *DaySession {
	return &DaySession{
		remote:  remote,
		retrier: retrier,
		cred:    cred,
		month:   month,
		logger:  logger,
	}
}

// SelectDay selects a grid cell. Padding cells are rejected.
func (s *DaySession) SelectDay(ctx context.Context, day calendar.Day) error {
	if !day.Selectable() {
		return ErrNotSelectable
	}
	return s.Select(ctx, day.DateString)
}

// Select replaces the selection with date and fetches its record. A date with
// no record yields an empty record in the Ready state.
func (s *DaySession) Select(ctx context.Context, date string) error {
	if _, err := dateutil.ParseDay(date); err != nil {
		return err
	}

	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.state = StateLoading
	s.date = date
	s.record = nil
	s.form = Form{}
	s.message = ""
	s.submitFailed = false
	s.mu.Unlock()

	return s.load(ctx, gen, date)
}

func (s *DaySession) load(ctx context.Context, gen uint64, date string) error {
	rec, err := retry.Do(ctx, s.retrier, "fetch_daily_attendance", func(ctx context.Context) (*models.AttendanceRecord, error) {
		return s.remote.FetchDailyAttendance(ctx, s.cred, date)
	})

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		s.logger.Debug("Discarding stale day response",
			zap.String("date", date),
			zap.String("selected", s.date),
		)
		return nil
	}

	if err != nil {
		s.state = StateError
		s.message = err.Error()
		s.submitFailed = false
		return err
	}

	if rec == nil {
		rec = &models.AttendanceRecord{EmployeeID: s.cred.EmployeeID, Date: date}
	}
	s.record = rec
	s.form = FormFromRecord(*rec)
	s.state = StateReady
	s.message = ""
	return nil
}

// editable reports whether the form may change. Caller holds s.mu.
func (s *DaySession) editable() bool {
	switch s.state {
	case StateReady, StateEditing:
		return true
	case StateError:
		return s.submitFailed
	default:
		return false
	}
}

func (s *DaySession) edit(apply func(f *Form) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.editable() {
		return ErrNotEditable
	}
	f := s.form
	if err := apply(&f); err != nil {
		return err
	}
	s.form = f
	s.state = StateEditing
	s.message = ""
	return nil
}

// SetLeaveType switches the day to leave (clearing both times) or, with
// LeaveNone, back to a worked day.
func (s *DaySession) SetLeaveType(lt models.LeaveType) error {
	if lt != models.LeaveNone && !lt.Valid() {
		return ErrInvalidLeaveType
	}
	return s.edit(func(f *Form) error {
		f.LeaveType = lt
		if lt > models.LeaveNone {
			f.StartTime = ""
			f.EndTime = ""
		}
		return nil
	})
}

// SetStartTime sets the clock-in time; "" clears it.
func (s *DaySession) SetStartTime(v string) error {
	return s.edit(func(f *Form) error {
		if err := checkTime(f, v); err != nil {
			return err
		}
		f.StartTime = v
		return nil
	})
}

// SetEndTime sets the clock-out time; "" clears it.
func (s *DaySession) SetEndTime(v string) error {
	return s.edit(func(f *Form) error {
		if err := checkTime(f, v); err != nil {
			return err
		}
		f.EndTime = v
		return nil
	})
}

func checkTime(f *Form, v string) error {
	if f.LeaveType > models.LeaveNone {
		return ErrLeaveSelected
	}
	if v != "" && !dateutil.ValidClock(v) {
		return ErrInvalidTime
	}
	return nil
}

// Submit sends the edited record, then re-fetches the month grid and the day
// so both show what the store now holds. On failure the form is kept for a
// retry.
func (s *DaySession) Submit(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateEditing && !(s.state == StateError && s.submitFailed) {
		s.mu.Unlock()
		return ErrNotSubmittable
	}
	if err := s.form.Validate(); err != nil {
		s.mu.Unlock()
		return err
	}
	s.generation++
	gen := s.generation
	s.state = StateSubmitting
	s.message = ""
	date := s.date
	form := s.form
	var previous models.DayEntry = models.Unrecorded{}
	if s.record != nil {
		previous = s.record.Entry()
	}
	s.mu.Unlock()

	if err := s.send(ctx, date, form, previous); err != nil {
		s.mu.Lock()
		if gen == s.generation {
			s.state = StateError
			s.message = err.Error()
			s.submitFailed = true
		}
		s.mu.Unlock()
		return err
	}

	s.logger.Info("Attendance submitted",
		zap.Int("employee_id", s.cred.EmployeeID),
		zap.String("date", date),
	)

	return s.resync(ctx, gen, date)
}

func (s *DaySession) send(ctx context.Context, date string, form Form, previous models.DayEntry) error {
	rec := models.NewAttendanceRecord(s.cred.EmployeeID, date, form.Entry())
	if _, err := retry.Do(ctx, s.retrier, "update_attendance", func(ctx context.Context) (*models.MessageResponse, error) {
		return s.remote.UpdateAttendance(ctx, s.cred, rec)
	}); err != nil {
		return err
	}

	if leave, ok := form.Entry().(models.OnLeave); ok {
		lr := models.LeaveRecord{EmployeeID: s.cred.EmployeeID, Date: date, LeaveType: leave.Type}
		_, err := retry.Do(ctx, s.retrier, "create_leave", func(ctx context.Context) (*models.MessageResponse, error) {
			return s.remote.CreateLeave(ctx, s.cred, lr)
		})
		return err
	}

	if _, wasLeave := previous.(models.OnLeave); wasLeave {
		_, err := retry.Do(ctx, s.retrier, "delete_leave", func(ctx context.Context) (*models.MessageResponse, error) {
			return s.remote.DeleteLeave(ctx, s.cred, s.cred.EmployeeID, date)
		})
		if err != nil && !client.IsNotFound(err) {
			return err
		}
	}
	return nil
}

// resync re-fetches the month and the day independently; either may finish
// first. A month failure stays on the month view, which keeps its grid and
// message, so only the day fetch decides the result.
func (s *DaySession) resync(ctx context.Context, gen uint64, date string) error {
	s.mu.Lock()
	current := gen == s.generation
	if current {
		s.state = StateLoading
	}
	s.mu.Unlock()

	var g errgroup.Group
	if s.month != nil {
		g.Go(func() error {
			if err := s.month.Refresh(ctx); err != nil {
				s.logger.Warn("Month refresh after submit failed",
					zap.String("date", date),
					zap.Error(err),
				)
			}
			return nil
		})
	}
	if current {
		g.Go(func() error {
			return s.load(ctx, gen, date)
		})
	}
	return g.Wait()
}

// Snapshot returns a copy of the current state.
func (s *DaySession) Snapshot() Selection {
	s.mu.Lock()
	defer s.mu.Unlock()

	sel := Selection{
		State:   s.state,
		Date:    s.date,
		Form:    s.form,
		Message: s.message,
	}
	if s.record != nil {
		rec := *s.record
		sel.Record = &rec
	}
	return sel
}

// Dismiss clears the failure message. After a failed submit the form stays
// open for editing; after a failed fetch the session returns to idle and the
// day can be selected again.
func (s *DaySession) Dismiss() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.message = ""
	if s.state != StateError {
		return
	}
	if s.submitFailed {
		s.state = StateEditing
		s.submitFailed = false
		return
	}
	s.state = StateIdle
}

// Reset discards the selection, e.g. when the user leaves the screen.
// In-flight responses are dropped.
func (s *DaySession) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.state = StateIdle
	s.date = ""
	s.record = nil
	s.form = Form{}
	s.message = ""
	s.submitFailed = false
}
