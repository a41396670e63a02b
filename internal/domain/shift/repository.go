package shift

import (
	"context"
	"time"
)

// ShiftRepository defines data access methods for shifts.
type ShiftRepository interface {
	Create(ctx context.Context, s Shift) (Shift, error)

	// GetByID retrieves a shift regardless of ownership (admin paths).
	GetByID(ctx context.Context, id string) (Shift, error)

	// GetByIDForCaregiver retrieves a shift only when it is assigned to the
	// given caregiver. Absence and ownership mismatch are indistinguishable.
	GetByIDForCaregiver(ctx context.Context, id string, caregiverID string) (Shift, error)

	Update(ctx context.Context, req UpdateShiftRequest) (Shift, error)
	Delete(ctx context.Context, id string) error

	// MarkStarted moves a shift to in_progress and records the actual start.
	MarkStarted(ctx context.Context, id string, at time.Time) error

	// MarkCompleted moves a shift to completed and records the actual end.
	MarkCompleted(ctx context.Context, id string, at time.Time) error

	// ListAll returns every shift with client, caregiver, and visits embedded.
	ListAll(ctx context.Context, filter ListFilter) ([]Shift, error)

	// ListForCaregiver returns a caregiver's shifts dated from onwards, with
	// client, caregiver, and visits embedded.
	ListForCaregiver(ctx context.Context, caregiverID string, from time.Time, filter ListFilter) ([]Shift, error)
}
