package visit

import "context"

// VisitRepository defines data access methods for the append-only visit log.
type VisitRepository interface {
	// Create inserts a visit. The storage layer enforces a unique
	// (shift_id, type) constraint; a duplicate insert returns
	// ErrAlreadyStarted or ErrAlreadyEnded depending on the visit type.
	Create(ctx context.Context, v Visit) (Visit, error)

	// GetByShiftAndType returns the visit of the given type for a shift,
	// or nil when none exists.
	GetByShiftAndType(ctx context.Context, shiftID string, visitType VisitType) (*Visit, error)

	// ListByShift returns the visit log for a shift.
	ListByShift(ctx context.Context, shiftID string, filter ListFilter) ([]Visit, error)
}
