package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/carebridge/evv-backend-go/internal/config"
	"github.com/carebridge/evv-backend-go/internal/domain/auth"
	"github.com/carebridge/evv-backend-go/internal/domain/client"
	"github.com/carebridge/evv-backend-go/internal/domain/shift"
	"github.com/carebridge/evv-backend-go/internal/domain/user"
	"github.com/carebridge/evv-backend-go/internal/domain/visit"
	"github.com/carebridge/evv-backend-go/internal/pkg/jwt"
	"github.com/carebridge/evv-backend-go/internal/pkg/sse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeVisitService lets each test script the service outcome.
type fakeVisitService struct {
	recordStart func(ctx context.Context, caregiverID string, req visit.RecordVisitRequest) (visit.VisitResponse, error)
	recordEnd   func(ctx context.Context, caregiverID string, req visit.RecordVisitRequest) (visit.VisitResponse, error)
}

func (f *fakeVisitService) RecordStart(ctx context.Context, caregiverID string, req visit.RecordVisitRequest) (visit.VisitResponse, error) {
	return f.recordStart(ctx, caregiverID, req)
}

func (f *fakeVisitService) RecordEnd(ctx context.Context, caregiverID string, req visit.RecordVisitRequest) (visit.VisitResponse, error) {
	return f.recordEnd(ctx, caregiverID, req)
}

func (f *fakeVisitService) ListShiftVisits(ctx context.Context, caregiverID string, shiftID string, filter visit.ListFilter) ([]visit.VisitResponse, error) {
	return nil, nil
}

type stubAuthService struct {
	jwtService jwt.Service
}

func (stubAuthService) Register(ctx context.Context, req auth.RegisterRequest) (auth.AuthResponse, error) {
	return auth.AuthResponse{}, nil
}

func (stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (auth.AuthResponse, error) {
	return auth.AuthResponse{}, nil
}

func (s stubAuthService) Logout(ctx context.Context, token string) error {
	s.jwtService.RevokeToken(token)
	return nil
}

type stubShiftService struct{}

func (stubShiftService) Create(ctx context.Context, req shift.CreateShiftRequest) (shift.ShiftResponse, error) {
	return shift.ShiftResponse{}, nil
}

func (stubShiftService) Update(ctx context.Context, req shift.UpdateShiftRequest) (shift.ShiftResponse, error) {
	return shift.ShiftResponse{}, nil
}

func (stubShiftService) Delete(ctx context.Context, id string) error { return nil }

func (stubShiftService) ListAll(ctx context.Context, filter shift.ListFilter) ([]shift.ShiftResponse, error) {
	return nil, nil
}

func (stubShiftService) ListForCaregiver(ctx context.Context, caregiverID string, filter shift.ListFilter) ([]shift.ShiftResponse, error) {
	return []shift.ShiftResponse{}, nil
}

type stubClientService struct{}

func (stubClientService) Create(ctx context.Context, req client.CreateClientRequest) (client.ClientResponse, error) {
	return client.ClientResponse{}, nil
}

func (stubClientService) GetByID(ctx context.Context, id string) (client.ClientResponse, error) {
	return client.ClientResponse{}, nil
}

func (stubClientService) Update(ctx context.Context, req client.UpdateClientRequest) (client.ClientResponse, error) {
	return client.ClientResponse{}, nil
}

func (stubClientService) Delete(ctx context.Context, id string) error { return nil }

func (stubClientService) List(ctx context.Context, filter client.ListFilter) ([]client.ClientResponse, error) {
	return nil, nil
}

type stubUserService struct{}

func (stubUserService) Create(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	return user.UserResponse{}, nil
}

func (stubUserService) GetByID(ctx context.Context, id string) (user.UserResponse, error) {
	return user.UserResponse{}, nil
}

func (stubUserService) List(ctx context.Context, filter user.ListFilter) ([]user.UserResponse, error) {
	return nil, nil
}

func (stubUserService) ListRoles(ctx context.Context) ([]user.RoleResponse, error) {
	return nil, nil
}

func newTestRouter(t *testing.T, visitService visit.VisitService) (http.Handler, jwt.Service) {
	t.Helper()

	cfg := &config.Config{
		App: config.AppConfig{
			Env:            "test",
			AllowedOrigins: []string{"*"},
		},
	}
	jwtService := jwt.NewJWTService("test-secret-key-for-jwt", "1h")

	router := NewRouter(
		cfg,
		jwtService,
		NewAuthHandler(stubAuthService{jwtService: jwtService}),
		NewVisitHandler(visitService),
		NewShiftHandler(stubShiftService{}),
		NewClientHandler(stubClientService{}),
		NewUserHandler(stubUserService{}),
		NewEventHandler(sse.NewHub(), jwtService),
	)
	return router, jwtService
}

func caregiverToken(t *testing.T, jwtService jwt.Service) string {
	t.Helper()
	token, _, err := jwtService.GenerateAccessToken("caregiver-1", "cg@example.com", user.RoleCaregiver)
	require.NoError(t, err)
	return token
}

func TestVisitEndpoint_StartSuccess(t *testing.T) {
	fake := &fakeVisitService{
		recordStart: func(ctx context.Context, caregiverID string, req visit.RecordVisitRequest) (visit.VisitResponse, error) {
			assert.Equal(t, "caregiver-1", caregiverID)
			assert.Equal(t, "shift-1", req.ShiftID)
			return visit.VisitResponse{
				ID:      "visit-1",
				Type:    "START",
				ShiftID: req.ShiftID,
			}, nil
		},
	}
	router, jwtService := newTestRouter(t, fake)

	req := httptest.NewRequest(http.MethodPost, "/visits/start",
		strings.NewReader(`{"shiftId":"shift-1","latitude":10,"longitude":20}`))
	req.Header.Set("Authorization", "Bearer "+caregiverToken(t, jwtService))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		Data struct {
			Visit visit.VisitResponse `json:"visit"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "visit-1", body.Data.Visit.ID)
	assert.Equal(t, "START", body.Data.Visit.Type)
}

func TestVisitEndpoint_StartAlreadyStarted(t *testing.T) {
	fake := &fakeVisitService{
		recordStart: func(ctx context.Context, caregiverID string, req visit.RecordVisitRequest) (visit.VisitResponse, error) {
			return visit.VisitResponse{}, visit.ErrAlreadyStarted
		},
	}
	router, jwtService := newTestRouter(t, fake)

	req := httptest.NewRequest(http.MethodPost, "/visits/start",
		strings.NewReader(`{"shiftId":"shift-1","latitude":10,"longitude":20}`))
	req.Header.Set("Authorization", "Bearer "+caregiverToken(t, jwtService))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "error", body.Status)
	assert.Equal(t, "Visit already started", body.Message)
}

func TestVisitEndpoint_EndShiftNotFound(t *testing.T) {
	fake := &fakeVisitService{
		recordEnd: func(ctx context.Context, caregiverID string, req visit.RecordVisitRequest) (visit.VisitResponse, error) {
			return visit.VisitResponse{}, shift.ErrShiftNotFound
		},
	}
	router, jwtService := newTestRouter(t, fake)

	req := httptest.NewRequest(http.MethodPost, "/visits/end",
		strings.NewReader(`{"shiftId":"missing","latitude":10,"longitude":20}`))
	req.Header.Set("Authorization", "Bearer "+caregiverToken(t, jwtService))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Shift not found", body.Message)
}

func TestVisitEndpoint_MissingToken(t *testing.T) {
	router, _ := newTestRouter(t, &fakeVisitService{})

	req := httptest.NewRequest(http.MethodPost, "/visits/start",
		strings.NewReader(`{"shiftId":"shift-1","latitude":10,"longitude":20}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthEndpoint_LogoutRevokesToken(t *testing.T) {
	fake := &fakeVisitService{
		recordStart: func(ctx context.Context, caregiverID string, req visit.RecordVisitRequest) (visit.VisitResponse, error) {
			return visit.VisitResponse{ID: "visit-1", Type: "START"}, nil
		},
	}
	router, jwtService := newTestRouter(t, fake)
	token := caregiverToken(t, jwtService)

	// Token works before logout.
	req := httptest.NewRequest(http.MethodPost, "/visits/start",
		strings.NewReader(`{"shiftId":"shift-1","latitude":10,"longitude":20}`))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	logoutReq := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	logoutReq.Header.Set("Authorization", "Bearer "+token)
	logoutRec := httptest.NewRecorder()
	router.ServeHTTP(logoutRec, logoutReq)
	require.Equal(t, http.StatusOK, logoutRec.Code)

	// The revoked token is rejected from now on.
	req = httptest.NewRequest(http.MethodPost, "/visits/start",
		strings.NewReader(`{"shiftId":"shift-1","latitude":10,"longitude":20}`))
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestVisitEndpoint_AdminTokenRejected(t *testing.T) {
	router, jwtService := newTestRouter(t, &fakeVisitService{})

	token, _, err := jwtService.GenerateAccessToken("admin-1", "admin@example.com", user.RoleAdmin)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/visits/start",
		strings.NewReader(`{"shiftId":"shift-1","latitude":10,"longitude":20}`))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
