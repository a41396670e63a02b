package visit

import "time"

// VisitType distinguishes the two geolocation events a shift can carry.
type VisitType string

const (
	TypeStart VisitType = "START"
	TypeEnd   VisitType = "END"
)

// Visit is a single GPS-stamped check-in or check-out event. Visits are
// append-only: once created they are never updated or deleted.
type Visit struct {
	ID          string
	Type        VisitType
	Latitude    float64
	Longitude   float64
	Timestamp   time.Time
	ShiftID     string
	CaregiverID string
}
