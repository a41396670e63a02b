package visit

import (
	"context"
	"time"

	"github.com/carebridge/evv-backend-go/internal/domain/shift"
	"github.com/carebridge/evv-backend-go/internal/domain/visit"
	"github.com/carebridge/evv-backend-go/internal/pkg/database"
	"github.com/carebridge/evv-backend-go/internal/pkg/sse"
	"github.com/carebridge/evv-backend-go/internal/repository/postgresql"
)

// VisitServiceImpl enforces the visit lifecycle. Each record operation runs
// its existence checks and writes inside one transaction, with the storage
// layer's UNIQUE(shift_id, type) constraint closing the residual race
// between two concurrent requests for the same shift.
type VisitServiceImpl struct {
	db *database.DB
	visit.VisitRepository
	shift.ShiftRepository
	hub *sse.Hub
}

func NewVisitService(
	db *database.DB,
	visitRepo visit.VisitRepository,
	shiftRepo shift.ShiftRepository,
	hub *sse.Hub,
) visit.VisitService {
	return &VisitServiceImpl{
		db:              db,
		VisitRepository: visitRepo,
		ShiftRepository: shiftRepo,
		hub:             hub,
	}
}

// RecordStart implements visit.VisitService.
func (s *VisitServiceImpl) RecordStart(ctx context.Context, caregiverID string, req visit.RecordVisitRequest) (visit.VisitResponse, error) {
	if err := req.Validate(); err != nil {
		return visit.VisitResponse{}, err
	}

	var created visit.Visit
	err := postgresql.WithTransaction(ctx, s.db, func(ctx context.Context) error {
		// Ownership check doubles as the existence check: a shift assigned
		// to another caregiver is reported as not found.
		if _, err := s.ShiftRepository.GetByIDForCaregiver(ctx, req.ShiftID, caregiverID); err != nil {
			return err
		}

		existing, err := s.VisitRepository.GetByShiftAndType(ctx, req.ShiftID, visit.TypeStart)
		if err != nil {
			return err
		}
		if existing != nil {
			return visit.ErrAlreadyStarted
		}

		created, err = s.VisitRepository.Create(ctx, visit.Visit{
			Type:        visit.TypeStart,
			Latitude:    req.Latitude,
			Longitude:   req.Longitude,
			ShiftID:     req.ShiftID,
			CaregiverID: caregiverID,
		})
		if err != nil {
			return err
		}

		return s.ShiftRepository.MarkStarted(ctx, req.ShiftID, time.Now().UTC())
	})
	if err != nil {
		return visit.VisitResponse{}, err
	}

	resp := visit.NewVisitResponse(created)
	s.publish("visit:started", resp)
	return resp, nil
}

// RecordEnd implements visit.VisitService.
func (s *VisitServiceImpl) RecordEnd(ctx context.Context, caregiverID string, req visit.RecordVisitRequest) (visit.VisitResponse, error) {
	if err := req.Validate(); err != nil {
		return visit.VisitResponse{}, err
	}

	var created visit.Visit
	err := postgresql.WithTransaction(ctx, s.db, func(ctx context.Context) error {
		if _, err := s.ShiftRepository.GetByIDForCaregiver(ctx, req.ShiftID, caregiverID); err != nil {
			return err
		}

		start, err := s.VisitRepository.GetByShiftAndType(ctx, req.ShiftID, visit.TypeStart)
		if err != nil {
			return err
		}
		if start == nil {
			return visit.ErrNotStarted
		}

		end, err := s.VisitRepository.GetByShiftAndType(ctx, req.ShiftID, visit.TypeEnd)
		if err != nil {
			return err
		}
		if end != nil {
			return visit.ErrAlreadyEnded
		}

		created, err = s.VisitRepository.Create(ctx, visit.Visit{
			Type:        visit.TypeEnd,
			Latitude:    req.Latitude,
			Longitude:   req.Longitude,
			ShiftID:     req.ShiftID,
			CaregiverID: caregiverID,
		})
		if err != nil {
			return err
		}

		return s.ShiftRepository.MarkCompleted(ctx, req.ShiftID, time.Now().UTC())
	})
	if err != nil {
		return visit.VisitResponse{}, err
	}

	resp := visit.NewVisitResponse(created)
	s.publish("visit:ended", resp)
	return resp, nil
}

// ListShiftVisits implements visit.VisitService.
func (s *VisitServiceImpl) ListShiftVisits(ctx context.Context, caregiverID string, shiftID string, filter visit.ListFilter) ([]visit.VisitResponse, error) {
	if _, err := s.ShiftRepository.GetByIDForCaregiver(ctx, shiftID, caregiverID); err != nil {
		return nil, err
	}

	visits, err := s.VisitRepository.ListByShift(ctx, shiftID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]visit.VisitResponse, 0, len(visits))
	for _, v := range visits {
		responses = append(responses, visit.NewVisitResponse(v))
	}
	return responses, nil
}

func (s *VisitServiceImpl) publish(event string, data interface{}) {
	if s.hub == nil {
		return
	}
	s.hub.Broadcast(sse.Event{Event: event, Data: data})
}
