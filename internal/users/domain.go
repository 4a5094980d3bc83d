package users

import "github.com/cida-marmitas/marmitas/internal/auth"

// User represents a system account. Password hashes never leave the repository.
type User struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Login       string    `json:"login"`
	Role        auth.Role `json:"role"`
	CompanyID   *int64    `json:"companyId,omitempty"`
	CompanyName *string   `json:"companyName,omitempty"`
	Active      bool      `json:"active"`
}

// SaveInput creates a user when ID is zero and updates it otherwise.
// Password is required on create; on update an empty password keeps the old one.
type SaveInput struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name" validate:"required,max=120"`
	Login     string    `json:"login" validate:"required,max=60"`
	Password  string    `json:"password"`
	Role      auth.Role `json:"role" validate:"required,oneof=ADMIN CLIENT"`
	CompanyID *int64    `json:"companyId"`
}
