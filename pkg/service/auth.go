package service

import (
	"context"

	"github.com/trackspring/client/pkg/api"
	"github.com/trackspring/client/pkg/models"
)

// AuthService registers users and obtains tokens.
type AuthService struct {
	client *api.Client
}

// NewAuthService returns an AuthService for the client.
func NewAuthService(c *api.Client) *AuthService {
	return &AuthService{client: c}
}

// Register creates an account and returns its token.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error) {
	var res models.AuthResponse
	err := s.client.Post(ctx, "/auth/register", nil, req, &res)
	return res, err
}

// Login exchanges credentials for a token.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error) {
	var res models.AuthResponse
	err := s.client.Post(ctx, "/auth/login", nil, req, &res)
	return res, err
}

// Me returns the user the current token belongs to.
func (s *AuthService) Me(ctx context.Context) (models.User, error) {
	var u models.User
	err := s.client.Get(ctx, "/auth/me", nil, &u)
	return u, err
}
