package evvclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedShifts() []Shift {
	return []Shift{
		{ID: "s1", Status: "pending", CaregiverID: "c1"},
		{ID: "s2", Status: "pending", CaregiverID: "c1"},
	}
}

func TestShiftFeed_StartVisitOptimisticUpdate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"data": map[string]interface{}{"visit": Visit{ID: "v1", Type: "START", ShiftID: "s1"}}})
	}))
	defer server.Close()

	feed := NewShiftFeed(NewClient(server.URL))
	feed.store.Set(seedShifts())

	require.NoError(t, feed.StartVisit(context.Background(), "s1", 10, 20))

	shifts := feed.Shifts()
	require.Len(t, shifts, 2)
	assert.Equal(t, "in_progress", shifts[0].Status)
	require.Len(t, shifts[0].Visits, 1)
	assert.Equal(t, "START", shifts[0].Visits[0].Type)
	assert.Equal(t, float64(10), shifts[0].Visits[0].Latitude)
	// Untouched shifts stay untouched.
	assert.Equal(t, "pending", shifts[1].Status)
	assert.Empty(t, shifts[1].Visits)
}

func TestShiftFeed_RollbackRestoresExactSnapshot(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "error", "message": "Visit already started"})
	}))
	defer server.Close()

	feed := NewShiftFeed(NewClient(server.URL, WithBackoff(instantBackoff)))
	feed.store.Set(seedShifts())

	before, err := json.Marshal(feed.Shifts())
	require.NoError(t, err)

	err = feed.StartVisit(context.Background(), "s1", 10, 20)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Visit already started", apiErr.Message)

	after, err := json.Marshal(feed.Shifts())
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestShiftFeed_BatchRollsBackAllOnAnyFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req recordVisitRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.ShiftID == "s2" {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "error", "message": "Shift not found"})
			return
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"data": map[string]interface{}{"visit": Visit{ID: "v1", Type: "START", ShiftID: req.ShiftID}}})
	}))
	defer server.Close()

	feed := NewShiftFeed(NewClient(server.URL, WithBackoff(instantBackoff)))
	feed.store.Set(seedShifts())

	before, err := json.Marshal(feed.Shifts())
	require.NoError(t, err)

	err = feed.Batch(context.Background(), []BatchEntry{
		{ShiftID: "s1", Latitude: 10, Longitude: 20, Type: "START"},
		{ShiftID: "s2", Latitude: 11, Longitude: 21, Type: "START"},
	})
	require.Error(t, err)

	after, err := json.Marshal(feed.Shifts())
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestApplySyntheticEnd_AppendsAfterStart(t *testing.T) {
	shifts := []Shift{{
		ID:     "s1",
		Status: "in_progress",
		Visits: []Visit{{ID: "tmp-1", Type: "START"}},
	}}

	shifts = applySyntheticEnd(shifts, "s1", 12, 22, "2026-08-28T10:00:00Z")

	assert.Equal(t, "completed", shifts[0].Status)
	require.Len(t, shifts[0].Visits, 2)
	assert.Equal(t, "END", shifts[0].Visits[1].Type)
}

func TestApplySyntheticEnd_NoStartUpdatesLastEntry(t *testing.T) {
	shifts := []Shift{{
		ID:     "s1",
		Status: "in_progress",
		Visits: []Visit{{ID: "tmp-1", Type: "PENDING", Timestamp: "2026-08-28T09:00:00Z"}},
	}}

	shifts = applySyntheticEnd(shifts, "s1", 12, 22, "2026-08-28T10:00:00Z")

	assert.Equal(t, "completed", shifts[0].Status)
	require.Len(t, shifts[0].Visits, 1)
	assert.Equal(t, "END", shifts[0].Visits[0].Type)
	assert.Equal(t, "2026-08-28T10:00:00Z", shifts[0].Visits[0].Timestamp)
}

func TestApplySyntheticEnd_EmptyVisitListOnlyFlipsStatus(t *testing.T) {
	shifts := []Shift{{ID: "s1", Status: "pending"}}

	shifts = applySyntheticEnd(shifts, "s1", 12, 22, "2026-08-28T10:00:00Z")

	assert.Equal(t, "completed", shifts[0].Status)
	assert.Empty(t, shifts[0].Visits)
}

func TestStore_SnapshotIsolatedFromLaterWrites(t *testing.T) {
	store := NewStore([]Shift{{ID: "s1", Status: "pending"}}, cloneShifts)

	m := store.Begin()
	m.Apply(func(shifts []Shift) []Shift {
		shifts[0].Status = "in_progress"
		return shifts
	})
	assert.Equal(t, "in_progress", store.Get()[0].Status)

	m.Rollback()
	assert.Equal(t, "pending", store.Get()[0].Status)
}
