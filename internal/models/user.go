package models

// Staff roles.
const (
	RoleAdmin   = "admin"
	RoleTecnico = "tecnico"
)

type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Phone     string `json:"phone,omitempty"`
	Specialty string `json:"specialty,omitempty"` // technicians only
	Role      string `json:"role"`                // admin | tecnico
	Active    bool   `json:"active"`

	Created       string `json:"created"`
	CreatedBy     string `json:"createdBy,omitempty"`
	LastLogin     string `json:"lastLogin,omitempty"`
	LastLoginIP   string `json:"lastLoginIP,omitempty"`
	DeactivatedAt string `json:"deactivatedAt,omitempty"`
	DeactivatedBy string `json:"deactivatedBy,omitempty"`
	ActivatedAt   string `json:"activatedAt,omitempty"`
	ActivatedBy   string `json:"activatedBy,omitempty"`
}
