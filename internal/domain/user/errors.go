package user

import "errors"

// User domain errors
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrUserAlreadyExists   = errors.New("user already exists")
	ErrRoleNotFound        = errors.New("invalid role")
	ErrAdminAccessRequired = errors.New("admin access required")
	ErrCaregiverAccessOnly = errors.New("caregiver access required")
)
