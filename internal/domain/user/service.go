package user

import "context"

type UserService interface {
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	GetByID(ctx context.Context, id string) (UserResponse, error)
	List(ctx context.Context, filter ListFilter) ([]UserResponse, error)
	ListRoles(ctx context.Context) ([]RoleResponse, error)
}
