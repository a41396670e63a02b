package evvclient

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ShiftFeed keeps the caregiver's shift list responsive: visit mutations
// update the list optimistically and roll the whole snapshot back when the
// server refuses.
type ShiftFeed struct {
	client *Client
	store  *Store[[]Shift]

	mu            sync.Mutex
	refreshCancel context.CancelFunc
}

func NewShiftFeed(client *Client) *ShiftFeed {
	return &ShiftFeed{
		client: client,
		store:  NewStore([]Shift{}, cloneShifts),
	}
}

// Shifts returns a copy of the current shift list.
func (f *ShiftFeed) Shifts() []Shift {
	return f.store.Get()
}

// Refresh refetches the shift list from the server. A refresh superseded
// by a later refresh or a mutation is cancelled.
func (f *ShiftFeed) Refresh(ctx context.Context) error {
	f.cancelRefresh()

	ctx, cancel := context.WithCancel(ctx)
	f.mu.Lock()
	f.refreshCancel = cancel
	f.mu.Unlock()
	defer cancel()

	shifts, err := f.client.GetShifts(ctx)
	if err != nil {
		return err
	}

	f.store.Set(shifts)
	return nil
}

func (f *ShiftFeed) cancelRefresh() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.refreshCancel != nil {
		f.refreshCancel()
		f.refreshCancel = nil
	}
}

// StartVisit optimistically marks the shift in progress, then records the
// check-in through the reliability layer. On failure the list is restored
// to its pre-mutation snapshot. The cached shift list is invalidated either
// way so the next read reconciles with the server.
func (f *ShiftFeed) StartVisit(ctx context.Context, shiftID string, latitude, longitude float64) error {
	f.cancelRefresh()

	m := f.store.Begin()
	now := f.client.clock.Now().UTC().Format(time.RFC3339)
	m.Apply(func(shifts []Shift) []Shift {
		return applySyntheticStart(shifts, shiftID, latitude, longitude, now)
	})
	defer f.client.InvalidateShifts()

	if _, err := f.client.StartVisit(ctx, shiftID, latitude, longitude); err != nil {
		f.client.logger.Warn("visit start failed, rolling back",
			zap.String("shift_id", shiftID),
			zap.Error(err),
		)
		m.Rollback()
		return err
	}
	return nil
}

// EndVisit is the check-out counterpart of StartVisit.
func (f *ShiftFeed) EndVisit(ctx context.Context, shiftID string, latitude, longitude float64) error {
	f.cancelRefresh()

	m := f.store.Begin()
	now := f.client.clock.Now().UTC().Format(time.RFC3339)
	m.Apply(func(shifts []Shift) []Shift {
		return applySyntheticEnd(shifts, shiftID, latitude, longitude, now)
	})
	defer f.client.InvalidateShifts()

	if _, err := f.client.EndVisit(ctx, shiftID, latitude, longitude); err != nil {
		f.client.logger.Warn("visit end failed, rolling back",
			zap.String("shift_id", shiftID),
			zap.Error(err),
		)
		m.Rollback()
		return err
	}
	return nil
}

// BatchEntry is one visit mutation within a batch.
type BatchEntry struct {
	ShiftID   string
	Latitude  float64
	Longitude float64
	Type      string // "START" or "END"
}

// Batch applies the synthetic updates for all entries in one pass, then
// dispatches the real requests concurrently. Any failure rolls back the
// entire batch to the single snapshot taken before the first update.
func (f *ShiftFeed) Batch(ctx context.Context, entries []BatchEntry) error {
	if len(entries) == 0 {
		return nil
	}

	f.cancelRefresh()

	m := f.store.Begin()
	now := f.client.clock.Now().UTC().Format(time.RFC3339)
	m.Apply(func(shifts []Shift) []Shift {
		for _, e := range entries {
			if e.Type == "END" {
				shifts = applySyntheticEnd(shifts, e.ShiftID, e.Latitude, e.Longitude, now)
			} else {
				shifts = applySyntheticStart(shifts, e.ShiftID, e.Latitude, e.Longitude, now)
			}
		}
		return shifts
	})
	defer f.client.InvalidateShifts()

	errs := make([]error, len(entries))
	var wg sync.WaitGroup
	for i, e := range entries {
		wg.Add(1)
		go func(i int, e BatchEntry) {
			defer wg.Done()
			var err error
			if e.Type == "END" {
				_, err = f.client.EndVisit(ctx, e.ShiftID, e.Latitude, e.Longitude)
			} else {
				_, err = f.client.StartVisit(ctx, e.ShiftID, e.Latitude, e.Longitude)
			}
			errs[i] = err
		}(i, e)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			f.client.logger.Warn("batch mutation failed, rolling back", zap.Error(err))
			m.Rollback()
			return err
		}
	}
	return nil
}

func applySyntheticStart(shifts []Shift, shiftID string, latitude, longitude float64, now string) []Shift {
	for i := range shifts {
		if shifts[i].ID != shiftID {
			continue
		}
		shifts[i].Status = "in_progress"
		shifts[i].Visits = append(shifts[i].Visits, Visit{
			ID:          "tmp-" + uuid.NewString(),
			Type:        "START",
			Latitude:    latitude,
			Longitude:   longitude,
			Timestamp:   now,
			ShiftID:     shiftID,
			CaregiverID: shifts[i].CaregiverID,
		})
	}
	return shifts
}

func applySyntheticEnd(shifts []Shift, shiftID string, latitude, longitude float64, now string) []Shift {
	for i := range shifts {
		if shifts[i].ID != shiftID {
			continue
		}
		s := &shifts[i]
		s.Status = "completed"

		hasStart := false
		for j := len(s.Visits) - 1; j >= 0; j-- {
			if s.Visits[j].Type == "START" {
				hasStart = true
				break
			}
		}

		if hasStart {
			s.Visits = append(s.Visits, Visit{
				ID:          "tmp-" + uuid.NewString(),
				Type:        "END",
				Latitude:    latitude,
				Longitude:   longitude,
				Timestamp:   now,
				ShiftID:     shiftID,
				CaregiverID: s.CaregiverID,
			})
			continue
		}

		// No START to pair with: only the status flips. An empty visit log
		// stays empty; otherwise the most recently appended entry becomes
		// the closing one, mirroring how the server matches open visits.
		if len(s.Visits) == 0 {
			continue
		}
		v := &s.Visits[len(s.Visits)-1]
		v.Type = "END"
		v.Latitude = latitude
		v.Longitude = longitude
		v.Timestamp = now
	}
	return shifts
}

func cloneShifts(in []Shift) []Shift {
	out := make([]Shift, len(in))
	for i, s := range in {
		out[i] = s
		if s.StartTime != nil {
			t := *s.StartTime
			out[i].StartTime = &t
		}
		if s.EndTime != nil {
			t := *s.EndTime
			out[i].EndTime = &t
		}
		if s.Client != nil {
			c := *s.Client
			out[i].Client = &c
		}
		if s.Caregiver != nil {
			u := *s.Caregiver
			out[i].Caregiver = &u
		}
		if s.Visits != nil {
			out[i].Visits = append([]Visit(nil), s.Visits...)
		}
	}
	return out
}
