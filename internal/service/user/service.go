package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/carebridge/evv-backend-go/internal/domain/user"
	"github.com/carebridge/evv-backend-go/internal/pkg/database"
	"golang.org/x/crypto/bcrypt"
)

type UserServiceImpl struct {
	db *database.DB
	user.UserRepository
	user.RoleRepository
}

func NewUserService(
	db *database.DB,
	userRepo user.UserRepository,
	roleRepo user.RoleRepository,
) user.UserService {
	return &UserServiceImpl{
		db:             db,
		UserRepository: userRepo,
		RoleRepository: roleRepo,
	}
}

// Create implements user.UserService.
func (s *UserServiceImpl) Create(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	if _, err := s.UserRepository.GetByEmail(ctx, req.Email); err == nil {
		return user.UserResponse{}, user.ErrUserAlreadyExists
	} else if !errors.Is(err, user.ErrUserNotFound) {
		return user.UserResponse{}, fmt.Errorf("failed to check existing user: %w", err)
	}

	role, err := s.RoleRepository.GetByID(ctx, req.RoleID)
	if err != nil {
		return user.UserResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.UserRepository.Create(ctx, user.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		RoleID:       role.ID,
	})
	if err != nil {
		return user.UserResponse{}, err
	}
	created.RoleName = role.Name

	return user.NewUserResponse(created), nil
}

// GetByID implements user.UserService.
func (s *UserServiceImpl) GetByID(ctx context.Context, id string) (user.UserResponse, error) {
	u, err := s.UserRepository.GetByID(ctx, id)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.NewUserResponse(u), nil
}

// List implements user.UserService.
func (s *UserServiceImpl) List(ctx context.Context, filter user.ListFilter) ([]user.UserResponse, error) {
	users, err := s.UserRepository.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, user.NewUserResponse(u))
	}
	return responses, nil
}

// ListRoles implements user.UserService.
func (s *UserServiceImpl) ListRoles(ctx context.Context) ([]user.RoleResponse, error) {
	roles, err := s.RoleRepository.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]user.RoleResponse, 0, len(roles))
	for _, r := range roles {
		responses = append(responses, user.NewRoleResponse(r))
	}
	return responses, nil
}
