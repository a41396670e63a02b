package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/carebridge/evv-backend-go/internal/domain/client"
	"github.com/carebridge/evv-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type clientRepository struct {
	db *database.DB
}

func NewClientRepository(db *database.DB) client.ClientRepository {
	return &clientRepository{db: db}
}

// Create implements client.ClientRepository.
func (r *clientRepository) Create(ctx context.Context, c client.Client) (client.Client, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO clients (name, address)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query, c.Name, c.Address).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)

	if err != nil {
		return client.Client{}, fmt.Errorf("failed to create client: %w", err)
	}

	return c, nil
}

// GetByID implements client.ClientRepository.
func (r *clientRepository) GetByID(ctx context.Context, id string) (client.Client, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, address, created_at, updated_at
		FROM clients
		WHERE id = $1
	`

	var c client.Client
	err := q.QueryRow(ctx, query, id).
		Scan(&c.ID, &c.Name, &c.Address, &c.CreatedAt, &c.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return client.Client{}, client.ErrClientNotFound
		}
		return client.Client{}, fmt.Errorf("failed to get client by ID: %w", err)
	}

	return c, nil
}

// Update implements client.ClientRepository.
func (r *clientRepository) Update(ctx context.Context, req client.UpdateClientRequest) (client.Client, error) {
	q := GetQuerier(ctx, r.db)

	sets := []string{}
	args := []interface{}{req.ID}
	argIdx := 2

	appendSet := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argIdx))
		args = append(args, value)
		argIdx++
	}

	if req.Name != nil {
		appendSet("name", *req.Name)
	}
	if req.Address != nil {
		appendSet("address", *req.Address)
	}

	sets = append(sets, "updated_at = NOW()")

	query := fmt.Sprintf(`
		UPDATE clients SET %s WHERE id = $1
		RETURNING id, name, address, created_at, updated_at
	`, strings.Join(sets, ", "))

	var c client.Client
	err := q.QueryRow(ctx, query, args...).
		Scan(&c.ID, &c.Name, &c.Address, &c.CreatedAt, &c.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return client.Client{}, client.ErrClientNotFound
		}
		return client.Client{}, fmt.Errorf("failed to update client: %w", err)
	}

	return c, nil
}

// Delete implements client.ClientRepository.
func (r *clientRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return client.ErrClientNotFound
	}

	return nil
}

// List implements client.ClientRepository.
func (r *clientRepository) List(ctx context.Context, filter client.ListFilter) ([]client.Client, error) {
	q := GetQuerier(ctx, r.db)

	sortBy := sortColumn(filter.SortBy, map[string]string{
		"name":      "name",
		"createdAt": "created_at",
	}, "name")
	order := sortDirection(filter.SortOrder)

	query := fmt.Sprintf(`
		SELECT id, name, address, created_at, updated_at
		FROM clients
		ORDER BY %s %s
		OFFSET $1 LIMIT $2
	`, sortBy, order)

	rows, err := q.Query(ctx, query, filter.Skip, limitOrDefault(filter.Limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	var clients []client.Client
	for rows.Next() {
		var c client.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Address, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan client row: %w", err)
		}
		clients = append(clients, c)
	}

	return clients, rows.Err()
}
