package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/carebridge/evv-backend-go/internal/domain/client"
	"github.com/carebridge/evv-backend-go/internal/domain/shift"
	"github.com/carebridge/evv-backend-go/internal/domain/user"
	"github.com/carebridge/evv-backend-go/internal/domain/visit"
	"github.com/carebridge/evv-backend-go/internal/pkg/database"
	"github.com/carebridge/evv-backend-go/internal/pkg/validator"
	"github.com/jackc/pgx/v5"
)

type shiftRepository struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepository{db: db}
}

const shiftColumns = `
	s.id, s.date, s.start_time, s.end_time, s.status,
	s.client_id, s.caregiver_id, s.created_at, s.updated_at
`

// Create implements shift.ShiftRepository.
func (r *shiftRepository) Create(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO shifts (date, start_time, end_time, status, client_id, caregiver_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		s.Date,
		s.StartTime,
		s.EndTime,
		string(s.Status),
		s.ClientID,
		s.CaregiverID,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)

	if err != nil {
		return shift.Shift{}, fmt.Errorf("failed to create shift: %w", err)
	}

	return s, nil
}

// GetByID implements shift.ShiftRepository.
func (r *shiftRepository) GetByID(ctx context.Context, id string) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM shifts s WHERE s.id = $1`, shiftColumns)

	s, err := scanShift(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, fmt.Errorf("failed to get shift by ID: %w", err)
	}

	return s, nil
}

// GetByIDForCaregiver implements shift.ShiftRepository. A shift assigned to
// a different caregiver scans as no rows, so callers cannot distinguish
// ownership mismatch from absence.
func (r *shiftRepository) GetByIDForCaregiver(ctx context.Context, id string, caregiverID string) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM shifts s WHERE s.id = $1 AND s.caregiver_id = $2`, shiftColumns)

	s, err := scanShift(q.QueryRow(ctx, query, id, caregiverID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, fmt.Errorf("failed to get shift for caregiver: %w", err)
	}

	return s, nil
}

// Update implements shift.ShiftRepository.
func (r *shiftRepository) Update(ctx context.Context, req shift.UpdateShiftRequest) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	sets := []string{}
	args := []interface{}{req.ID}
	argIdx := 2

	appendSet := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argIdx))
		args = append(args, value)
		argIdx++
	}

	if req.Date != nil {
		t, ok := validator.IsValidDate(*req.Date)
		if !ok {
			t, _ = validator.IsValidDateTime(*req.Date)
		}
		appendSet("date", t)
	}
	if req.StartTime != nil {
		t, _ := validator.IsValidDateTime(*req.StartTime)
		appendSet("start_time", t)
	}
	if req.EndTime != nil {
		t, _ := validator.IsValidDateTime(*req.EndTime)
		appendSet("end_time", t)
	}
	if req.ClientID != nil {
		appendSet("client_id", *req.ClientID)
	}
	if req.CaregiverID != nil {
		appendSet("caregiver_id", *req.CaregiverID)
	}
	if req.Status != nil {
		appendSet("status", *req.Status)
	}

	sets = append(sets, "updated_at = NOW()")

	query := fmt.Sprintf(`
		UPDATE shifts s SET %s WHERE s.id = $1
		RETURNING %s
	`, strings.Join(sets, ", "), shiftColumns)

	s, err := scanShift(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, fmt.Errorf("failed to update shift: %w", err)
	}

	return s, nil
}

// Delete implements shift.ShiftRepository.
func (r *shiftRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM shifts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete shift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrShiftNotFound
	}

	return nil
}

// MarkStarted implements shift.ShiftRepository.
func (r *shiftRepository) MarkStarted(ctx context.Context, id string, at time.Time) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE shifts
		SET status = $2, start_time = $3, updated_at = NOW()
		WHERE id = $1
	`, id, string(shift.StatusInProgress), at)

	if err != nil {
		return fmt.Errorf("failed to mark shift started: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrShiftNotFound
	}

	return nil
}

// MarkCompleted implements shift.ShiftRepository.
func (r *shiftRepository) MarkCompleted(ctx context.Context, id string, at time.Time) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE shifts
		SET status = $2, end_time = $3, updated_at = NOW()
		WHERE id = $1
	`, id, string(shift.StatusCompleted), at)

	if err != nil {
		return fmt.Errorf("failed to mark shift completed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrShiftNotFound
	}

	return nil
}

// ListAll implements shift.ShiftRepository.
func (r *shiftRepository) ListAll(ctx context.Context, filter shift.ListFilter) ([]shift.Shift, error) {
	return r.list(ctx, filter, "", nil)
}

// ListForCaregiver implements shift.ShiftRepository.
func (r *shiftRepository) ListForCaregiver(ctx context.Context, caregiverID string, from time.Time, filter shift.ListFilter) ([]shift.Shift, error) {
	return r.list(ctx, filter, "WHERE s.caregiver_id = $3 AND s.date >= $4", []interface{}{caregiverID, from})
}

func (r *shiftRepository) list(ctx context.Context, filter shift.ListFilter, where string, extraArgs []interface{}) ([]shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	sortBy := sortColumn(filter.SortBy, map[string]string{
		"date":      "s.date",
		"status":    "s.status",
		"createdAt": "s.created_at",
	}, "s.date")
	order := sortDirection(filter.SortOrder)

	query := fmt.Sprintf(`
		SELECT %s,
			   c.id, c.name, c.address, c.created_at, c.updated_at,
			   u.id, u.email, u.first_name, u.last_name, u.role_id, r.name AS role_name
		FROM shifts s
		JOIN clients c ON c.id = s.client_id
		JOIN users u ON u.id = s.caregiver_id
		JOIN roles r ON r.id = u.role_id
		%s
		ORDER BY %s %s
		OFFSET $1 LIMIT $2
	`, shiftColumns, where, sortBy, order)

	args := append([]interface{}{filter.Skip, limitOrDefault(filter.Limit)}, extraArgs...)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	defer rows.Close()

	var shifts []shift.Shift
	for rows.Next() {
		var s shift.Shift
		var c client.Client
		var u user.User
		if err := rows.Scan(
			&s.ID, &s.Date, &s.StartTime, &s.EndTime, &s.Status,
			&s.ClientID, &s.CaregiverID, &s.CreatedAt, &s.UpdatedAt,
			&c.ID, &c.Name, &c.Address, &c.CreatedAt, &c.UpdatedAt,
			&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.RoleID, &u.RoleName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan shift row: %w", err)
		}
		s.Client = &c
		s.Caregiver = &u
		shifts = append(shifts, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachVisits(ctx, shifts); err != nil {
		return nil, err
	}

	return shifts, nil
}

// attachVisits loads the visit log for each listed shift in one query.
func (r *shiftRepository) attachVisits(ctx context.Context, shifts []shift.Shift) error {
	if len(shifts) == 0 {
		return nil
	}

	q := GetQuerier(ctx, r.db)

	ids := make([]string, 0, len(shifts))
	index := make(map[string]int, len(shifts))
	for i, s := range shifts {
		ids = append(ids, s.ID)
		index[s.ID] = i
	}

	rows, err := q.Query(ctx, `
		SELECT id, type, latitude, longitude, timestamp, shift_id, caregiver_id
		FROM visits
		WHERE shift_id = ANY($1)
		ORDER BY timestamp ASC
	`, ids)
	if err != nil {
		return fmt.Errorf("failed to load shift visits: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var v visit.Visit
		if err := rows.Scan(
			&v.ID, &v.Type, &v.Latitude, &v.Longitude, &v.Timestamp,
			&v.ShiftID, &v.CaregiverID,
		); err != nil {
			return fmt.Errorf("failed to scan visit row: %w", err)
		}
		if i, ok := index[v.ShiftID]; ok {
			shifts[i].Visits = append(shifts[i].Visits, v)
		}
	}

	return rows.Err()
}

func scanShift(row pgx.Row) (shift.Shift, error) {
	var s shift.Shift
	err := row.Scan(
		&s.ID, &s.Date, &s.StartTime, &s.EndTime, &s.Status,
		&s.ClientID, &s.CaregiverID, &s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}
