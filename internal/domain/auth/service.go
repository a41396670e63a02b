package auth

import "context"

// AuthService defines registration and login.
type AuthService interface {
	// Register creates a new user with a hashed password and issues a token.
	Register(ctx context.Context, req RegisterRequest) (AuthResponse, error)

	// Login verifies credentials and issues a token.
	Login(ctx context.Context, req LoginRequest) (AuthResponse, error)

	// Logout revokes the presented access token for the rest of its
	// validity window.
	Logout(ctx context.Context, token string) error
}
