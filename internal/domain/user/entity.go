package user

import "time"

type Role string

const (
	RoleAdmin     Role = "ADMIN"     // Administrator with full access
	RoleCaregiver Role = "CAREGIVER" // Caregiver with limited access
)

// ParseRole maps a stored role name onto the closed Role type.
func ParseRole(name string) (Role, bool) {
	switch Role(name) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleCaregiver:
		return RoleCaregiver, true
	}
	return "", false
}

type User struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	RoleID       string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Join
	RoleName string
}

// RoleRecord is a row of the roles reference table.
type RoleRecord struct {
	ID          string
	Name        string
	Description *string
}

// IsAdmin checks if user holds the administrator role
func (u *User) IsAdmin() bool {
	return Role(u.RoleName) == RoleAdmin
}

// IsCaregiver checks if user holds the caregiver role
func (u *User) IsCaregiver() bool {
	return Role(u.RoleName) == RoleCaregiver
}
