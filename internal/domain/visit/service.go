package visit

import "context"

// VisitService is the visit state machine. It owns the shift lifecycle
// invariants: a shift moves pending -> in_progress -> completed, driven
// exclusively by START and END visit events recorded by the shift's own
// caregiver. Ownership is enforced here, not in the route layer, so the
// invariants hold even when the service is called directly.
type VisitService interface {
	// RecordStart creates the START visit for a shift and moves the shift
	// to in_progress, recording the actual start time.
	RecordStart(ctx context.Context, caregiverID string, req RecordVisitRequest) (VisitResponse, error)

	// RecordEnd creates the END visit for a shift and moves the shift to
	// completed, recording the actual end time.
	RecordEnd(ctx context.Context, caregiverID string, req RecordVisitRequest) (VisitResponse, error)

	// ListShiftVisits returns the visit log for a shift owned by the caller.
	ListShiftVisits(ctx context.Context, caregiverID string, shiftID string, filter ListFilter) ([]VisitResponse, error)
}
