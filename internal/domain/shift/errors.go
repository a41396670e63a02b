package shift

import "errors"

// Shift domain errors. Ownership failures are deliberately reported as
// not-found so a caregiver cannot probe for shifts assigned to others.
var (
	ErrShiftNotFound     = errors.New("shift not found")
	ErrCaregiverNotFound = errors.New("caregiver not found")
	ErrInvalidStatus     = errors.New("invalid shift status")
)
