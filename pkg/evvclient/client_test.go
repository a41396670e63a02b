package evvclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func instantBackoff(int) time.Duration { return time.Millisecond }

func TestClient_AttachesBearerTokenAndRequestID(t *testing.T) {
	var gotAuth, gotRequestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"data": map[string]interface{}{"shifts": []Shift{}}})
	}))
	defer server.Close()

	c := NewClient(server.URL)
	c.session.Set("token-123", User{ID: "u1"})

	_, err := c.GetShifts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer token-123", gotAuth)
	assert.NotEmpty(t, gotRequestID)
}

func TestClient_RetriesTransientFailures(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempts, 1) <= 2 {
			// Drop the connection to simulate a mid-flight transport failure.
			hj, ok := w.(http.Hijacker)
			require.True(t, ok)
			conn, _, err := hj.Hijack()
			require.NoError(t, err)
			conn.Close()
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"data": map[string]interface{}{"shifts": []Shift{{ID: "s1"}}}})
	}))
	defer server.Close()

	c := NewClient(server.URL, WithBackoff(instantBackoff))

	shifts, err := c.GetShifts(context.Background())
	require.NoError(t, err)
	require.Len(t, shifts, 1)
	assert.Equal(t, int32(3), atomic.LoadInt32(&attempts))
}

func TestClient_SurfacesSingleMessageAfterRetriesExhausted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hj, ok := w.(http.Hijacker)
		require.True(t, ok)
		conn, _, err := hj.Hijack()
		require.NoError(t, err)
		conn.Close()
	}))
	defer server.Close()

	c := NewClient(server.URL, WithBackoff(instantBackoff))

	_, err := c.GetShifts(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Network error, please try again", apiErr.Message)
}

func TestClient_SessionExpiryOnNonLogin401(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "error", "message": "Token expired"})
	}))
	defer server.Close()

	expired := false
	c := NewClient(server.URL, WithOnSessionExpired(func() { expired = true }))
	c.session.Set("stale-token", User{ID: "u1"})

	_, err := c.GetShifts(context.Background())
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.True(t, expired)
	assert.False(t, c.session.Authenticated())
}

func TestClient_Login401KeepsSessionAndSurfacesMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "error", "message": "Invalid credentials"})
	}))
	defer server.Close()

	expired := false
	c := NewClient(server.URL, WithOnSessionExpired(func() { expired = true }))

	_, err := c.Login(context.Background(), "cg@example.com", "wrong")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Invalid credentials", apiErr.Message)
	assert.False(t, expired)
}

func TestClient_ReadCacheServesFreshEntries(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"data": map[string]interface{}{"shifts": []Shift{{ID: "s1"}}}})
	}))
	defer server.Close()

	mock := clock.NewMock()
	c := NewClient(server.URL, WithClock(mock))

	_, err := c.GetShifts(context.Background())
	require.NoError(t, err)
	_, err = c.GetShifts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	mock.Add(cacheTTL)

	_, err = c.GetShifts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestClient_InvalidateShiftsForcesRefetch(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"data": map[string]interface{}{"shifts": []Shift{}}})
	}))
	defer server.Close()

	c := NewClient(server.URL)

	_, err := c.GetShifts(context.Background())
	require.NoError(t, err)
	c.InvalidateShifts()
	_, err = c.GetShifts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestOfflineQueue_DrainOrder(t *testing.T) {
	q := newOfflineQueue()

	first := &queuedRequest{path: "/clients", priority: PriorityMedium}
	second := &queuedRequest{path: "/visits/start", priority: PriorityHigh}
	third := &queuedRequest{path: "/users", priority: PriorityMedium}
	fourth := &queuedRequest{path: "/visits/end", priority: PriorityHigh}

	q.Enqueue(first)
	q.Enqueue(second)
	q.Enqueue(third)
	q.Enqueue(fourth)

	drained := q.Drain()
	require.Len(t, drained, 4)
	assert.Equal(t, "/visits/start", drained[0].path)
	assert.Equal(t, "/visits/end", drained[1].path)
	assert.Equal(t, "/clients", drained[2].path)
	assert.Equal(t, "/users", drained[3].path)
	assert.Equal(t, 0, q.Len())
}

func TestClient_OfflineRequestDispatchedOnReconnect(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"data": map[string]interface{}{"visit": Visit{ID: "v1", Type: "START"}}})
	}))
	defer server.Close()

	c := NewClient(server.URL)
	c.SetOnline(false)

	type result struct {
		visit Visit
		err   error
	}
	done := make(chan result, 1)
	go func() {
		v, err := c.StartVisit(context.Background(), "s1", 10, 20)
		done <- result{v, err}
	}()

	// The request must wait in the queue, not hit the network.
	require.Eventually(t, func() bool { return c.QueuedRequests() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))

	c.SetOnline(true)

	select {
	case res := <-done:
		require.NoError(t, res.err)
		assert.Equal(t, "v1", res.visit.ID)
	case <-time.After(time.Second):
		t.Fatal("queued request was not resolved after reconnect")
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}
