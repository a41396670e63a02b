package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/carebridge/evv-backend-go/internal/domain/user"
	"github.com/carebridge/evv-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type userRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepository{db: db}
}

// Create implements user.UserRepository.
func (r *userRepository) Create(ctx context.Context, u user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (email, password_hash, first_name, last_name, role_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		u.Email,
		u.PasswordHash,
		u.FirstName,
		u.LastName,
		u.RoleID,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)

	if err != nil {
		return user.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return u, nil
}

// GetByID implements user.UserRepository.
func (r *userRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT u.id, u.email, u.password_hash, u.first_name, u.last_name,
			   u.role_id, u.created_at, u.updated_at, r.name AS role_name
		FROM users u
		JOIN roles r ON r.id = u.role_id
		WHERE u.id = $1
	`

	var u user.User
	err := q.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.RoleID, &u.CreatedAt, &u.UpdatedAt, &u.RoleName,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by ID: %w", err)
	}

	return u, nil
}

// GetByEmail implements user.UserRepository.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT u.id, u.email, u.password_hash, u.first_name, u.last_name,
			   u.role_id, u.created_at, u.updated_at, r.name AS role_name
		FROM users u
		JOIN roles r ON r.id = u.role_id
		WHERE u.email = $1
	`

	var u user.User
	err := q.QueryRow(ctx, query, email).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.RoleID, &u.CreatedAt, &u.UpdatedAt, &u.RoleName,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return u, nil
}

// List implements user.UserRepository.
func (r *userRepository) List(ctx context.Context, filter user.ListFilter) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	sortBy := sortColumn(filter.SortBy, map[string]string{
		"email":     "u.email",
		"firstName": "u.first_name",
		"lastName":  "u.last_name",
		"createdAt": "u.created_at",
	}, "u.created_at")
	order := sortDirection(filter.SortOrder)

	query := fmt.Sprintf(`
		SELECT u.id, u.email, u.password_hash, u.first_name, u.last_name,
			   u.role_id, u.created_at, u.updated_at, r.name AS role_name
		FROM users u
		JOIN roles r ON r.id = u.role_id
		ORDER BY %s %s
		OFFSET $1 LIMIT $2
	`, sortBy, order)

	rows, err := q.Query(ctx, query, filter.Skip, limitOrDefault(filter.Limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		var u user.User
		if err := rows.Scan(
			&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
			&u.RoleID, &u.CreatedAt, &u.UpdatedAt, &u.RoleName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

type roleRepository struct {
	db *database.DB
}

func NewRoleRepository(db *database.DB) user.RoleRepository {
	return &roleRepository{db: db}
}

// GetByID implements user.RoleRepository.
func (r *roleRepository) GetByID(ctx context.Context, id string) (user.RoleRecord, error) {
	q := GetQuerier(ctx, r.db)

	var rec user.RoleRecord
	err := q.QueryRow(ctx, `SELECT id, name, description FROM roles WHERE id = $1`, id).
		Scan(&rec.ID, &rec.Name, &rec.Description)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.RoleRecord{}, user.ErrRoleNotFound
		}
		return user.RoleRecord{}, fmt.Errorf("failed to get role by ID: %w", err)
	}

	return rec, nil
}

// GetByName implements user.RoleRepository.
func (r *roleRepository) GetByName(ctx context.Context, name string) (user.RoleRecord, error) {
	q := GetQuerier(ctx, r.db)

	var rec user.RoleRecord
	err := q.QueryRow(ctx, `SELECT id, name, description FROM roles WHERE name = $1`, name).
		Scan(&rec.ID, &rec.Name, &rec.Description)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.RoleRecord{}, user.ErrRoleNotFound
		}
		return user.RoleRecord{}, fmt.Errorf("failed to get role by name: %w", err)
	}

	return rec, nil
}

// List implements user.RoleRepository.
func (r *roleRepository) List(ctx context.Context) ([]user.RoleRecord, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id, name, description FROM roles ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	defer rows.Close()

	var roles []user.RoleRecord
	for rows.Next() {
		var rec user.RoleRecord
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Description); err != nil {
			return nil, fmt.Errorf("failed to scan role row: %w", err)
		}
		roles = append(roles, rec)
	}

	return roles, rows.Err()
}
