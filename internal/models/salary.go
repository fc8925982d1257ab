package models

// Salary holds one month's pay items as stored.
type Salary struct {
	BasicSalary          int `json:"basic_salary"`
	OvertimeAllowance    int `json:"overtime_allowance"`
	HealthInsurance      int `json:"health_insurance"`
	NursingCareInsurance int `json:"nursing_care_insurance"`
	Pension              int `json:"pension"`
	EmploymentInsurance  int `json:"employment_insurance"`
	IncomeTax            int `json:"income_tax"`
	ResidentTax          int `json:"resident_tax"`
}

// TotalDeductions sums insurance, pension and taxes.
func (s Salary) TotalDeductions() int {
	return s.HealthInsurance + s.NursingCareInsurance + s.Pension +
		s.EmploymentInsurance + s.IncomeTax + s.ResidentTax
}

// TakeHome is gross pay minus deductions.
func (s Salary) TakeHome() int {
	return s.BasicSalary + s.OvertimeAllowance - s.TotalDeductions()
}

type SalaryStatement struct {
	EmployeeID      int    `json:"emplid"`
	Month           string `json:"month"` // YYYYMM
	Salary          Salary `json:"salary"`
	TotalDeductions int    `json:"total_deductions"`
	TakeHome        int    `json:"take_home"`
}

// NewSalaryStatement fills in the derived totals.
func NewSalaryStatement(employeeID int, month string, s Salary) SalaryStatement {
	return SalaryStatement{
		EmployeeID:      employeeID,
		Month:           month,
		Salary:          s,
		TotalDeductions: s.TotalDeductions(),
		TakeHome:        s.TakeHome(),
	}
}
