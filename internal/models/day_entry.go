package models

// DayEntry is what an employee recorded for a day: Worked, OnLeave or
// Unrecorded. The variants are mutually exclusive.
type DayEntry interface {
	isDayEntry()
}

// Worked is a day with clock-in/clock-out times. End may be empty while the
// day is still open.
type Worked struct {
	Start string
	End   string
}

// OnLeave is a day taken as leave.
type OnLeave struct {
	Type LeaveType
}

// Unrecorded is a day with nothing recorded yet.
type Unrecorded struct{}

func (Worked) isDayEntry()     {}
func (OnLeave) isDayEntry()    {}
func (Unrecorded) isDayEntry() {}

// NewAttendanceRecord builds the wire record for an entry. Leave days never
// carry times.
func NewAttendanceRecord(employeeID int, date string, entry DayEntry) AttendanceRecord {
	rec := AttendanceRecord{EmployeeID: employeeID, Date: date}
	switch e := entry.(type) {
	case Worked:
		if e.Start != "" {
			start := e.Start
			rec.StartTime = &start
		}
		if e.End != "" {
			end := e.End
			rec.EndTime = &end
		}
	case OnLeave:
		lt := e.Type
		rec.LeaveType = &lt
	}
	return rec
}

// Entry projects the record onto a DayEntry. A positive leave type wins over
// any times the store may still hold.
func (r AttendanceRecord) Entry() DayEntry {
	if r.LeaveType != nil && *r.LeaveType > LeaveNone {
		return OnLeave{Type: *r.LeaveType}
	}
	var w Worked
	if r.StartTime != nil {
		w.Start = *r.StartTime
	}
	if r.EndTime != nil {
		w.End = *r.EndTime
	}
	if w.Start == "" && w.End == "" {
		return Unrecorded{}
	}
	return w
}

// IsEmpty reports whether the record holds no times and no leave.
func (r AttendanceRecord) IsEmpty() bool {
	_, ok := r.Entry().(Unrecorded)
	return ok
}
