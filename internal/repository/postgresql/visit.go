package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/carebridge/evv-backend-go/internal/domain/visit"
	"github.com/carebridge/evv-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type visitRepository struct {
	db *database.DB
}

func NewVisitRepository(db *database.DB) visit.VisitRepository {
	return &visitRepository{db: db}
}

// Create implements visit.VisitRepository. The visits table carries
// UNIQUE(shift_id, type), so two concurrent inserts of the same event can
// never both commit; the loser surfaces the lifecycle conflict error.
func (r *visitRepository) Create(ctx context.Context, v visit.Visit) (visit.Visit, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO visits (type, latitude, longitude, shift_id, caregiver_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, timestamp
	`

	err := q.QueryRow(ctx, query,
		string(v.Type),
		v.Latitude,
		v.Longitude,
		v.ShiftID,
		v.CaregiverID,
	).Scan(&v.ID, &v.Timestamp)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if v.Type == visit.TypeEnd {
				return visit.Visit{}, visit.ErrAlreadyEnded
			}
			return visit.Visit{}, visit.ErrAlreadyStarted
		}
		return visit.Visit{}, fmt.Errorf("failed to create visit: %w", err)
	}

	return v, nil
}

// GetByShiftAndType implements visit.VisitRepository.
func (r *visitRepository) GetByShiftAndType(ctx context.Context, shiftID string, visitType visit.VisitType) (*visit.Visit, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, type, latitude, longitude, timestamp, shift_id, caregiver_id
		FROM visits
		WHERE shift_id = $1 AND type = $2
	`

	var v visit.Visit
	err := q.QueryRow(ctx, query, shiftID, string(visitType)).Scan(
		&v.ID, &v.Type, &v.Latitude, &v.Longitude, &v.Timestamp,
		&v.ShiftID, &v.CaregiverID,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // no visit of this type recorded yet
		}
		return nil, fmt.Errorf("failed to get visit by shift and type: %w", err)
	}

	return &v, nil
}

// ListByShift implements visit.VisitRepository.
func (r *visitRepository) ListByShift(ctx context.Context, shiftID string, filter visit.ListFilter) ([]visit.Visit, error) {
	q := GetQuerier(ctx, r.db)

	sortBy := sortColumn(filter.SortBy, map[string]string{
		"timestamp": "timestamp",
		"type":      "type",
	}, "timestamp")
	order := sortDirection(filter.SortOrder)

	query := fmt.Sprintf(`
		SELECT id, type, latitude, longitude, timestamp, shift_id, caregiver_id
		FROM visits
		WHERE shift_id = $1
		ORDER BY %s %s
		OFFSET $2 LIMIT $3
	`, sortBy, order)

	rows, err := q.Query(ctx, query, shiftID, filter.Skip, limitOrDefault(filter.Limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list visits: %w", err)
	}
	defer rows.Close()

	var visits []visit.Visit
	for rows.Next() {
		var v visit.Visit
		if err := rows.Scan(
			&v.ID, &v.Type, &v.Latitude, &v.Longitude, &v.Timestamp,
			&v.ShiftID, &v.CaregiverID,
		); err != nil {
			return nil, fmt.Errorf("failed to scan visit row: %w", err)
		}
		visits = append(visits, v)
	}

	return visits, rows.Err()
}
