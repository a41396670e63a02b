package shift

import (
	"context"
	"errors"
	"time"

	"github.com/carebridge/evv-backend-go/internal/domain/client"
	"github.com/carebridge/evv-backend-go/internal/domain/shift"
	"github.com/carebridge/evv-backend-go/internal/domain/user"
	"github.com/carebridge/evv-backend-go/internal/pkg/database"
	"github.com/carebridge/evv-backend-go/internal/pkg/validator"
)

type ShiftServiceImpl struct {
	db *database.DB
	shift.ShiftRepository
	client.ClientRepository
	user.UserRepository
}

func NewShiftService(
	db *database.DB,
	shiftRepo shift.ShiftRepository,
	clientRepo client.ClientRepository,
	userRepo user.UserRepository,
) shift.ShiftService {
	return &ShiftServiceImpl{
		db:               db,
		ShiftRepository:  shiftRepo,
		ClientRepository: clientRepo,
		UserRepository:   userRepo,
	}
}

// Create implements shift.ShiftService.
func (s *ShiftServiceImpl) Create(ctx context.Context, req shift.CreateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	if _, err := s.ClientRepository.GetByID(ctx, req.ClientID); err != nil {
		return shift.ShiftResponse{}, err
	}

	if _, err := s.UserRepository.GetByID(ctx, req.CaregiverID); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return shift.ShiftResponse{}, shift.ErrCaregiverNotFound
		}
		return shift.ShiftResponse{}, err
	}

	date, ok := validator.IsValidDate(req.Date)
	if !ok {
		date, _ = validator.IsValidDateTime(req.Date)
	}

	newShift := shift.Shift{
		Date:        date,
		Status:      shift.StatusPending,
		ClientID:    req.ClientID,
		CaregiverID: req.CaregiverID,
	}
	if req.StartTime != nil {
		t, _ := validator.IsValidDateTime(*req.StartTime)
		newShift.StartTime = &t
	}
	if req.EndTime != nil {
		t, _ := validator.IsValidDateTime(*req.EndTime)
		newShift.EndTime = &t
	}

	created, err := s.ShiftRepository.Create(ctx, newShift)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	return shift.NewShiftResponse(created), nil
}

// Update implements shift.ShiftService.
func (s *ShiftServiceImpl) Update(ctx context.Context, req shift.UpdateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	if req.ClientID != nil {
		if _, err := s.ClientRepository.GetByID(ctx, *req.ClientID); err != nil {
			return shift.ShiftResponse{}, err
		}
	}

	if req.CaregiverID != nil {
		if _, err := s.UserRepository.GetByID(ctx, *req.CaregiverID); err != nil {
			if errors.Is(err, user.ErrUserNotFound) {
				return shift.ShiftResponse{}, shift.ErrCaregiverNotFound
			}
			return shift.ShiftResponse{}, err
		}
	}

	updated, err := s.ShiftRepository.Update(ctx, req)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	return shift.NewShiftResponse(updated), nil
}

// Delete implements shift.ShiftService.
func (s *ShiftServiceImpl) Delete(ctx context.Context, id string) error {
	return s.ShiftRepository.Delete(ctx, id)
}

// ListAll implements shift.ShiftService.
func (s *ShiftServiceImpl) ListAll(ctx context.Context, filter shift.ListFilter) ([]shift.ShiftResponse, error) {
	shifts, err := s.ShiftRepository.ListAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return toResponses(shifts), nil
}

// ListForCaregiver implements shift.ShiftService.
func (s *ShiftServiceImpl) ListForCaregiver(ctx context.Context, caregiverID string, filter shift.ListFilter) ([]shift.ShiftResponse, error) {
	// Upcoming means anything dated today or later, in UTC.
	from := time.Now().UTC().Truncate(24 * time.Hour)

	shifts, err := s.ShiftRepository.ListForCaregiver(ctx, caregiverID, from, filter)
	if err != nil {
		return nil, err
	}
	return toResponses(shifts), nil
}

func toResponses(shifts []shift.Shift) []shift.ShiftResponse {
	responses := make([]shift.ShiftResponse, 0, len(shifts))
	for _, s := range shifts {
		responses = append(responses, shift.NewShiftResponse(s))
	}
	return responses
}
