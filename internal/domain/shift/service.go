package shift

import "context"

// ShiftService defines scheduling operations. Status changes here are
// administrative; the caregiver-facing lifecycle lives in the visit
// state machine.
type ShiftService interface {
	// Create schedules a shift after verifying the client and caregiver exist.
	Create(ctx context.Context, req CreateShiftRequest) (ShiftResponse, error)

	// Update applies an admin edit to a shift.
	Update(ctx context.Context, req UpdateShiftRequest) (ShiftResponse, error)

	// Delete hard-deletes a shift (admin escape hatch).
	Delete(ctx context.Context, id string) error

	// ListAll returns every shift for the admin dashboard.
	ListAll(ctx context.Context, filter ListFilter) ([]ShiftResponse, error)

	// ListForCaregiver returns the caller's upcoming shifts.
	ListForCaregiver(ctx context.Context, caregiverID string, filter ListFilter) ([]ShiftResponse, error)
}
