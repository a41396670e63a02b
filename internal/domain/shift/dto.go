package shift

import (
	"time"

	"github.com/carebridge/evv-backend-go/internal/domain/client"
	"github.com/carebridge/evv-backend-go/internal/domain/user"
	"github.com/carebridge/evv-backend-go/internal/domain/visit"
	"github.com/carebridge/evv-backend-go/internal/pkg/validator"
)

type CreateShiftRequest struct {
	Date        string  `json:"date"`
	StartTime   *string `json:"startTime"`
	EndTime     *string `json:"endTime"`
	ClientID    string  `json:"clientId"`
	CaregiverID string  `json:"caregiverId"`
}

func (r *CreateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, ok := validator.IsValidDate(r.Date); !ok {
		if _, ok := validator.IsValidDateTime(r.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be YYYY-MM-DD or ISO8601",
			})
		}
	}

	if r.StartTime != nil {
		if _, ok := validator.IsValidDateTime(*r.StartTime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "startTime",
				Message: "startTime must be an ISO8601 timestamp",
			})
		}
	}

	if r.EndTime != nil {
		if _, ok := validator.IsValidDateTime(*r.EndTime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "endTime",
				Message: "endTime must be an ISO8601 timestamp",
			})
		}
	}

	if validator.IsEmpty(r.ClientID) {
		errs = append(errs, validator.ValidationError{
			Field:   "clientId",
			Message: "clientId is required",
		})
	}

	if validator.IsEmpty(r.CaregiverID) {
		errs = append(errs, validator.ValidationError{
			Field:   "caregiverId",
			Message: "caregiverId is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateShiftRequest is the admin-only shift mutation. Caregivers never set
// status directly; their path is the visit state machine.
type UpdateShiftRequest struct {
	ID          string  `json:"-"`
	Date        *string `json:"date"`
	StartTime   *string `json:"startTime"`
	EndTime     *string `json:"endTime"`
	ClientID    *string `json:"clientId"`
	CaregiverID *string `json:"caregiverId"`
	Status      *string `json:"status"`
}

func (r *UpdateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Date != nil {
		if _, ok := validator.IsValidDate(*r.Date); !ok {
			if _, ok := validator.IsValidDateTime(*r.Date); !ok {
				errs = append(errs, validator.ValidationError{
					Field:   "date",
					Message: "date must be YYYY-MM-DD or ISO8601",
				})
			}
		}
	}

	if r.StartTime != nil {
		if _, ok := validator.IsValidDateTime(*r.StartTime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "startTime",
				Message: "startTime must be an ISO8601 timestamp",
			})
		}
	}

	if r.EndTime != nil {
		if _, ok := validator.IsValidDateTime(*r.EndTime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "endTime",
				Message: "endTime must be an ISO8601 timestamp",
			})
		}
	}

	if r.Status != nil {
		if _, ok := ParseStatus(*r.Status); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of pending, in_progress, completed, cancelled",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ShiftResponse struct {
	ID          string                 `json:"id"`
	Date        string                 `json:"date"`
	StartTime   *string                `json:"startTime,omitempty"`
	EndTime     *string                `json:"endTime,omitempty"`
	Status      string                 `json:"status"`
	ClientID    string                 `json:"clientId"`
	CaregiverID string                 `json:"caregiverId"`
	Client      *client.ClientResponse `json:"client,omitempty"`
	Caregiver   *user.UserResponse     `json:"caregiver,omitempty"`
	Visits      []visit.VisitResponse  `json:"visits,omitempty"`
}

func NewShiftResponse(s Shift) ShiftResponse {
	resp := ShiftResponse{
		ID:          s.ID,
		Date:        s.Date.UTC().Format(time.RFC3339),
		Status:      string(s.Status),
		ClientID:    s.ClientID,
		CaregiverID: s.CaregiverID,
	}

	if s.StartTime != nil {
		ts := s.StartTime.UTC().Format(time.RFC3339)
		resp.StartTime = &ts
	}
	if s.EndTime != nil {
		ts := s.EndTime.UTC().Format(time.RFC3339)
		resp.EndTime = &ts
	}
	if s.Client != nil {
		c := client.NewClientResponse(*s.Client)
		resp.Client = &c
	}
	if s.Caregiver != nil {
		u := user.NewUserResponse(*s.Caregiver)
		resp.Caregiver = &u
	}
	for _, v := range s.Visits {
		resp.Visits = append(resp.Visits, visit.NewVisitResponse(v))
	}

	return resp
}

// ListFilter carries pagination and sorting for shift listings.
type ListFilter struct {
	Skip      int
	Limit     int
	SortBy    string
	SortOrder string
}
