package shift

import (
	"time"

	"github.com/carebridge/evv-backend-go/internal/domain/client"
	"github.com/carebridge/evv-backend-go/internal/domain/user"
	"github.com/carebridge/evv-backend-go/internal/domain/visit"
)

// Status is the shift lifecycle state. Transitions only advance forward
// (pending -> in_progress -> completed) and are driven exclusively by visit
// events; cancelled is an administrative override.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// ParseStatus maps a stored status onto the closed Status type.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return Status(s), true
	}
	return "", false
}

// Shift is one scheduled caregiving assignment.
type Shift struct {
	ID          string
	Date        time.Time
	StartTime   *time.Time
	EndTime     *time.Time
	Status      Status
	ClientID    string
	CaregiverID string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joins
	Client    *client.Client
	Caregiver *user.User
	Visits    []visit.Visit
}
