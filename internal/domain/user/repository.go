package user

import "context"

// UserRepository defines data access methods for users.
type UserRepository interface {
	Create(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	List(ctx context.Context, filter ListFilter) ([]User, error)
}

// RoleRepository defines data access methods for the roles reference table.
type RoleRepository interface {
	GetByID(ctx context.Context, id string) (RoleRecord, error)
	GetByName(ctx context.Context, name string) (RoleRecord, error)
	List(ctx context.Context) ([]RoleRecord, error)
}

// ListFilter carries pagination and sorting for user listings.
type ListFilter struct {
	Skip      int
	Limit     int
	SortBy    string
	SortOrder string
}
