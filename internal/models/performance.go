package models

// PerformanceReview is the monthly exchange between an employee and their
// manager. Supervisor scores range 1..5; zero means not yet scored.
type PerformanceReview struct {
	EmployeeID         int    `json:"emplid" validate:"required,gt=0"`
	Month              string `json:"month" validate:"required,len=6,numeric"`
	SubordinateInput   string `json:"subordinate_input,omitempty" validate:"max=2000"`
	SupervisorAbility  int    `json:"supervisor_ability,omitempty" validate:"min=0,max=5"`
	SupervisorBehavior int    `json:"supervisor_behavior,omitempty" validate:"min=0,max=5"`
	SupervisorAttitude int    `json:"supervisor_attitude,omitempty" validate:"min=0,max=5"`
	SupervisorInput    string `json:"supervisor_input,omitempty" validate:"max=2000"`
}

// HasSupervisorInput reports whether any manager-only field is set.
func (r PerformanceReview) HasSupervisorInput() bool {
	return r.SupervisorAbility != 0 || r.SupervisorBehavior != 0 ||
		r.SupervisorAttitude != 0 || r.SupervisorInput != ""
}
