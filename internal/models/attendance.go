package models

// LeaveType is the leave code stored with a leave day. Zero means no leave.
type LeaveType int

const (
	LeaveNone LeaveType = iota
	LeavePaid
	LeaveMorningHalf
	LeaveAfternoonHalf
	LeaveSpecial
	LeaveCompensatory
	LeaveSick
	LeaveAbsence
	LeaveBereavement
)

var leaveTypeNames = map[LeaveType]string{
	LeaveNone:          "none",
	LeavePaid:          "paid",
	LeaveMorningHalf:   "morning_half",
	LeaveAfternoonHalf: "afternoon_half",
	LeaveSpecial:       "special",
	LeaveCompensatory:  "compensatory",
	LeaveSick:          "sick",
	LeaveAbsence:       "absence",
	LeaveBereavement:   "bereavement",
}

// Valid reports whether t is one of the eight leave codes.
func (t LeaveType) Valid() bool {
	return t >= LeavePaid && t <= LeaveBereavement
}

func (t LeaveType) String() string {
	if name, ok := leaveTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// AttendanceRecord is one employee's attendance for one date as exchanged
// with the record store. Times are HH:MM. A record carries either times or a
// leave type, never both; build records with NewAttendanceRecord to keep that.
type AttendanceRecord struct {
	EmployeeID int        `json:"emplid" validate:"required,gt=0"`
	Date       string     `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime  *string    `json:"start_time,omitempty" validate:"omitempty,len=5,datetime=15:04"`
	EndTime    *string    `json:"end_time,omitempty" validate:"omitempty,len=5,datetime=15:04"`
	LeaveType  *LeaveType `json:"leave_type,omitempty" validate:"omitempty,min=0,max=8"`
}

// LeaveRecord marks a date as a leave day.
type LeaveRecord struct {
	EmployeeID int       `json:"emplid" validate:"required,gt=0"`
	Date       string    `json:"date" validate:"required,datetime=2006-01-02"`
	LeaveType  LeaveType `json:"leave_type" validate:"min=1,max=8"`
}

// MonthlyAttendance is everything the record store holds for one employee and
// one YYYYMM period.
type MonthlyAttendance struct {
	Attendances []AttendanceRecord `json:"attendances"`
	Leaves      []LeaveRecord      `json:"leaves"`
}

// MessageResponse is the body returned by write operations.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body returned on failure. Code is set for failures a
// client may want to branch on.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// CodeStoreUnavailable marks a failure caused by the backing store being
// temporarily unreachable.
const CodeStoreUnavailable = "STORE_UNAVAILABLE"
