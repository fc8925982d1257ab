package models

const (
	RoleStaff   = "staff"
	RoleManager = "manager"
)

type Employee struct {
	ID           int    `json:"emplid"`
	Name         string `json:"emplnm"`
	Role         string `json:"role"`
	PasswordHash string `json:"-"`
}

type LoginRequest struct {
	EmployeeID int    `json:"emplid" validate:"required,gt=0"`
	Password   string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token      string `json:"token"`
	EmployeeID int    `json:"emplid"`
	Name       string `json:"name"`
	Role       string `json:"role"`
}

// Credential identifies the signed-in employee. The token is opaque to the
// agent and forwarded unchanged as a bearer credential.
type Credential struct {
	EmployeeID int
	Token      string
}
