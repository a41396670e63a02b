package visit

import (
	"time"

	"github.com/carebridge/evv-backend-go/internal/pkg/validator"
)

type RecordVisitRequest struct {
	ShiftID   string  `json:"shiftId"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (r *RecordVisitRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ShiftID) {
		errs = append(errs, validator.ValidationError{
			Field:   "shiftId",
			Message: "shiftId is required",
		})
	}

	if !validator.IsValidLatitude(r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if !validator.IsValidLongitude(r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type VisitResponse struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Timestamp   string  `json:"timestamp"`
	ShiftID     string  `json:"shiftId"`
	CaregiverID string  `json:"caregiverId"`
}

func NewVisitResponse(v Visit) VisitResponse {
	return VisitResponse{
		ID:          v.ID,
		Type:        string(v.Type),
		Latitude:    v.Latitude,
		Longitude:   v.Longitude,
		Timestamp:   v.Timestamp.UTC().Format(time.RFC3339),
		ShiftID:     v.ShiftID,
		CaregiverID: v.CaregiverID,
	}
}

// ListFilter carries pagination and sorting for visit listings.
type ListFilter struct {
	Skip      int
	Limit     int
	SortBy    string
	SortOrder string
}
