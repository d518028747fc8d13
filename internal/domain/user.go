package domain

import "time"

// Role is the single enumerated role type used everywhere a role is
// checked. Route guards, services and the token layer all compare
// against these constants.
type Role string

const (
	RoleSuperAdmin Role = "SUPER_ADMIN"
	RoleAdmin      Role = "ADMIN"
	RoleCoach      Role = "COACH"
	RoleStudent    Role = "STUDENT"
	RoleSubscriber Role = "SUBSCRIBER"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleCoach, RoleStudent, RoleSubscriber:
		return true
	}
	return false
}

type User struct {
	ID           int32     `json:"id"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	SubRole      string    `json:"sub_role,omitempty"`
	PasswordHash string    `json:"-"`
	HasPassword  bool      `json:"has_password"`
	Code         string    `json:"code"`
	ProfileID    int32     `json:"profile_id"`
	Profile      *Profile  `json:"profile,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Profile holds the personal data owned exclusively by one user.
type Profile struct {
	ID          int32      `json:"id"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	PhoneNumber string     `json:"phone_number,omitempty"`
	Address     string     `json:"address,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// FullName joins first and last name for display and email templates.
func (p *Profile) FullName() string {
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}
