package services

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/lumob/backend/internal/auth"
	"github.com/lumob/backend/internal/models"
)

// AuthUserRepository is the interface that wraps user lookups needed by login
type AuthUserRepository interface {
	// GetByUsername retrieves a user by username. Returns (nil, nil) when the
	// user does not exist.
	GetByUsername(ctx context.Context, username string) (*models.Usuario, error)
}

// AuthPermissionRepository wraps the module grants read done at login
type AuthPermissionRepository interface {
	GetPermissoesUsuario(ctx context.Context, userID int) ([]string, error)
}

// authService verifies credentials and issues access tokens
type authService struct {
	userRepo       AuthUserRepository
	permissionRepo AuthPermissionRepository
	tokenGenerator *auth.TokenGenerator
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo AuthUserRepository, permissionRepo AuthPermissionRepository, tokenGenerator *auth.TokenGenerator) *authService {
	return &authService{
		userRepo:       userRepo,
		permissionRepo: permissionRepo,
		tokenGenerator: tokenGenerator,
	}
}

// Login verifies the username/password pair and returns a signed access token
// together with the authenticated user and its module grants.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, Invalid("Usuário e senha são obrigatórios.")
	}

	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, Unauthorized("Usuário ou senha inválidos.")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, Unauthorized("Usuário ou senha inválidos.")
	}

	modulos, err := s.permissionRepo.GetPermissoesUsuario(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user permissions: %w", err)
	}

	token, err := s.tokenGenerator.GenerateAccessToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &models.LoginResponse{
		AccessToken: token,
		User:        user,
		Modulos:     modulos,
	}, nil
}
