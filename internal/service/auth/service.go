package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/carebridge/evv-backend-go/internal/domain/auth"
	"github.com/carebridge/evv-backend-go/internal/domain/user"
	"github.com/carebridge/evv-backend-go/internal/pkg/database"
	"github.com/carebridge/evv-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	db *database.DB
	user.UserRepository
	user.RoleRepository
	jwtService jwt.Service
}

func NewAuthService(
	db *database.DB,
	userRepo user.UserRepository,
	roleRepo user.RoleRepository,
	jwtService jwt.Service,
) auth.AuthService {
	return &AuthServiceImpl{
		db:             db,
		UserRepository: userRepo,
		RoleRepository: roleRepo,
		jwtService:     jwtService,
	}
}

// Register implements auth.AuthService.
func (s *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (auth.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.AuthResponse{}, err
	}

	if _, err := s.UserRepository.GetByEmail(ctx, req.Email); err == nil {
		return auth.AuthResponse{}, user.ErrUserAlreadyExists
	} else if !errors.Is(err, user.ErrUserNotFound) {
		return auth.AuthResponse{}, fmt.Errorf("failed to check existing user: %w", err)
	}

	role, err := s.RoleRepository.GetByID(ctx, req.RoleID)
	if err != nil {
		return auth.AuthResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return auth.AuthResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.UserRepository.Create(ctx, user.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		RoleID:       role.ID,
	})
	if err != nil {
		return auth.AuthResponse{}, err
	}
	created.RoleName = role.Name

	return s.respond(created)
}

// Login implements auth.AuthService.
func (s *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.AuthResponse{}, err
	}

	u, err := s.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.AuthResponse{}, auth.ErrInvalidCredentials
		}
		return auth.AuthResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return auth.AuthResponse{}, auth.ErrInvalidCredentials
	}

	return s.respond(u)
}

// Logout implements auth.AuthService.
func (s *AuthServiceImpl) Logout(ctx context.Context, token string) error {
	if token == "" {
		return auth.ErrNoToken
	}

	s.jwtService.RevokeToken(token)
	return nil
}

func (s *AuthServiceImpl) respond(u user.User) (auth.AuthResponse, error) {
	role, ok := user.ParseRole(u.RoleName)
	if !ok {
		return auth.AuthResponse{}, fmt.Errorf("user %s has unknown role %q", u.ID, u.RoleName)
	}

	token, _, err := s.jwtService.GenerateAccessToken(u.ID, u.Email, role)
	if err != nil {
		return auth.AuthResponse{}, fmt.Errorf("failed to generate token: %w", err)
	}

	return auth.AuthResponse{
		Token: token,
		User:  user.NewUserResponse(u),
	}, nil
}
