package auth

import "time"

// Role identifies what a token holder may do.
type Role string

const (
	RoleEmployee Role = "EMPLOYEE"
	RoleAdmin    Role = "ADMIN"
	RoleClient   Role = "CLIENT"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleEmployee, RoleAdmin, RoleClient:
		return true
	}
	return false
}

// Principal is the authenticated caller extracted from a token.
type Principal struct {
	ID        int64
	Name      string
	Role      Role
	SectorID  int64
	CompanyID int64
}

// Employee is the login profile of an ordering employee.
type Employee struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	RaCpf         string `json:"raCpf"`
	SectorID      int64  `json:"sectorId"`
	SectorName    string `json:"sectorName"`
	CompanyID     int64  `json:"companyId"`
	CompanyName   string `json:"companyName"`
	WorksWeekends bool   `json:"worksWeekends"`
}

// StaffUser is a system user account.
type StaffUser struct {
	ID           int64
	Name         string
	Login        string
	PasswordHash string
	Role         Role
	CompanyID    *int64
	Active       bool
}

// Session is returned by every successful login.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Role      Role      `json:"role"`
	Name      string    `json:"name"`
	Employee  *Employee `json:"employee,omitempty"`
	CompanyID *int64    `json:"companyId,omitempty"`
}
