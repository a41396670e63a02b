package evvclient

import (
	"context"
	"fmt"
	"net/url"
)

// Visit is a single START or END geolocation event logged against a shift.
type Visit struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Timestamp   string  `json:"timestamp"`
	ShiftID     string  `json:"shiftId"`
	CaregiverID string  `json:"caregiverId"`
}

// CareClient is the person a shift is scheduled for.
type CareClient struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// Shift is a scheduled caregiver-client assignment with its visit log.
type Shift struct {
	ID          string      `json:"id"`
	Date        string      `json:"date"`
	StartTime   *string     `json:"startTime,omitempty"`
	EndTime     *string     `json:"endTime,omitempty"`
	Status      string      `json:"status"`
	ClientID    string      `json:"clientId"`
	CaregiverID string      `json:"caregiverId"`
	Client      *CareClient `json:"client,omitempty"`
	Caregiver   *User       `json:"caregiver,omitempty"`
	Visits      []Visit     `json:"visits,omitempty"`
}

// Role is a server-side role record.
type Role struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest creates a new account.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	RoleID    string `json:"roleId"`
}

type authResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Login authenticates and stores the session for subsequent calls. A 401
// here surfaces as an invalid-credentials error without touching session
// state.
func (c *Client) Login(ctx context.Context, email, password string) (User, error) {
	var resp authResponse
	err := c.post(ctx, loginPath, loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return User{}, err
	}

	c.session.Set(resp.Token, resp.User)
	return resp.User, nil
}

// Register creates an account and stores the resulting session.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (User, error) {
	var resp authResponse
	if err := c.post(ctx, "/auth/register", req, &resp); err != nil {
		return User{}, err
	}

	c.session.Set(resp.Token, resp.User)
	return resp.User, nil
}

const shiftsPath = "/caregiver/shifts"

// GetShifts returns the caregiver's upcoming shifts, served from the read
// cache when a fresh entry exists.
func (c *Client) GetShifts(ctx context.Context) ([]Shift, error) {
	var resp struct {
		Shifts []Shift `json:"shifts"`
	}
	if err := c.get(ctx, shiftsPath, &resp, true); err != nil {
		return nil, err
	}
	return resp.Shifts, nil
}

// InvalidateShifts drops the cached shift list so the next read refetches.
func (c *Client) InvalidateShifts() {
	c.cache.Invalidate("GET " + shiftsPath)
}

type recordVisitRequest struct {
	ShiftID   string  `json:"shiftId"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type visitResponse struct {
	Visit Visit `json:"visit"`
}

// StartVisit records a geolocated check-in for a shift.
func (c *Client) StartVisit(ctx context.Context, shiftID string, latitude, longitude float64) (Visit, error) {
	var resp visitResponse
	err := c.post(ctx, "/visits/start", recordVisitRequest{
		ShiftID:   shiftID,
		Latitude:  latitude,
		Longitude: longitude,
	}, &resp)
	return resp.Visit, err
}

// EndVisit records a geolocated check-out for a shift.
func (c *Client) EndVisit(ctx context.Context, shiftID string, latitude, longitude float64) (Visit, error) {
	var resp visitResponse
	err := c.post(ctx, "/visits/end", recordVisitRequest{
		ShiftID:   shiftID,
		Latitude:  latitude,
		Longitude: longitude,
	}, &resp)
	return resp.Visit, err
}

// GetShiftVisits returns the visit log for one of the caregiver's shifts.
func (c *Client) GetShiftVisits(ctx context.Context, shiftID string) ([]Visit, error) {
	var resp struct {
		Visits []Visit `json:"visits"`
	}
	path := fmt.Sprintf("%s/%s/visits", shiftsPath, url.PathEscape(shiftID))
	if err := c.get(ctx, path, &resp, false); err != nil {
		return nil, err
	}
	return resp.Visits, nil
}

// GetAllShifts returns every caregiver's shifts. Admin only.
func (c *Client) GetAllShifts(ctx context.Context) ([]Shift, error) {
	var resp struct {
		Shifts []Shift `json:"shifts"`
	}
	if err := c.get(ctx, "/shifts/caregivers", &resp, false); err != nil {
		return nil, err
	}
	return resp.Shifts, nil
}

// CreateShiftRequest schedules a caregiver-client assignment. Admin only.
type CreateShiftRequest struct {
	Date        string  `json:"date"`
	StartTime   *string `json:"startTime,omitempty"`
	EndTime     *string `json:"endTime,omitempty"`
	ClientID    string  `json:"clientId"`
	CaregiverID string  `json:"caregiverId"`
}

func (c *Client) CreateShift(ctx context.Context, req CreateShiftRequest) (Shift, error) {
	var shift Shift
	err := c.post(ctx, "/shifts", req, &shift)
	return shift, err
}

// GetClients lists care clients. Admin only.
func (c *Client) GetClients(ctx context.Context) ([]CareClient, error) {
	var resp struct {
		Clients []CareClient `json:"clients"`
	}
	if err := c.get(ctx, "/clients", &resp, true); err != nil {
		return nil, err
	}
	return resp.Clients, nil
}

// GetUsers lists accounts. Admin only.
func (c *Client) GetUsers(ctx context.Context) ([]User, error) {
	var resp struct {
		Users []User `json:"users"`
	}
	if err := c.get(ctx, "/users", &resp, true); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

// GetRoles lists assignable roles. Admin only.
func (c *Client) GetRoles(ctx context.Context) ([]Role, error) {
	var resp struct {
		Roles []Role `json:"roles"`
	}
	if err := c.get(ctx, "/roles", &resp, true); err != nil {
		return nil, err
	}
	return resp.Roles, nil
}
