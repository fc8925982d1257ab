package session

import (
	"context"
	"strings"
	"sync"

	"jinji/attendance-sync/internal/client"
	"jinji/attendance-sync/internal/models"
)

// fakeRemote is an in-memory record store. Keys listed in gates block until
// the gate is closed; entered receives the key when such a call starts.
type fakeRemote struct {
	mu sync.Mutex

	monthly map[string]*models.MonthlyAttendance
	daily   map[string]*models.AttendanceRecord

	monthlyErrs []error
	dailyErrs   []error
	updateErrs  []error

	gates   map[string]chan struct{}
	entered chan string

	monthlyCalls int
	dailyCalls   int
	updates      []models.AttendanceRecord
	created      []models.LeaveRecord
	deleted      []string
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{
		monthly: make(map[string]*models.MonthlyAttendance),
		daily:   make(map[string]*models.AttendanceRecord),
		gates:   make(map[string]chan struct{}),
		entered: make(chan string, 16),
	}
}

func (f *fakeRemote) gate(key string) chan struct{} {
	ch := make(chan struct{})
	f.mu.Lock()
	f.gates[key] = ch
	f.mu.Unlock()
	return ch
}

func (f *fakeRemote) wait(ctx context.Context, key string) error {
	f.mu.Lock()
	ch, ok := f.gates[key]
	f.mu.Unlock()
	if !ok {
		return nil
	}
	f.entered <- key
	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func popErr(errs *[]error) error {
	if len(*errs) == 0 {
		return nil
	}
	err := (*errs)[0]
	*errs = (*errs)[1:]
	return err
}

func (f *fakeRemote) FetchMonthlyAttendance(ctx context.Context, cred models.Credential, month string) (*models.MonthlyAttendance, error) {
	if err := f.wait(ctx, month); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.monthlyCalls++
	if err := popErr(&f.monthlyErrs); err != nil {
		return nil, err
	}
	data := &models.MonthlyAttendance{}
	if m, ok := f.monthly[month]; ok {
		data.Attendances = append(data.Attendances, m.Attendances...)
		data.Leaves = append(data.Leaves, m.Leaves...)
	}
	prefix := month[:4] + "-" + month[4:] + "-"
	for date, rec := range f.daily {
		if strings.HasPrefix(date, prefix) {
			data.Attendances = append(data.Attendances, *rec)
		}
	}
	return data, nil
}

func (f *fakeRemote) FetchDailyAttendance(ctx context.Context, cred models.Credential, date string) (*models.AttendanceRecord, error) {
	if err := f.wait(ctx, date); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dailyCalls++
	if err := popErr(&f.dailyErrs); err != nil {
		return nil, err
	}
	rec, ok := f.daily[date]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (f *fakeRemote) UpdateAttendance(ctx context.Context, cred models.Credential, rec models.AttendanceRecord) (*models.MessageResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, rec)
	if err := popErr(&f.updateErrs); err != nil {
		return nil, err
	}
	cp := rec
	f.daily[rec.Date] = &cp
	return &models.MessageResponse{Message: "updated"}, nil
}

func (f *fakeRemote) CreateLeave(ctx context.Context, cred models.Credential, leave models.LeaveRecord) (*models.MessageResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, leave)
	return &models.MessageResponse{Message: "created"}, nil
}

func (f *fakeRemote) DeleteLeave(ctx context.Context, cred models.Credential, employeeID int, date string) (*models.MessageResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, date)
	return &models.MessageResponse{Message: "deleted"}, nil
}

func transientErr() error {
	return &client.APIError{Kind: client.Transient, StatusCode: 503, Message: "record store unavailable"}
}

func terminalErr(msg string) error {
	return &client.APIError{Kind: client.Terminal, StatusCode: 400, Message: msg}
}
