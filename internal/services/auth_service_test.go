package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/lumob/backend/internal/auth"
	"github.com/lumob/backend/internal/models"
)

// mockAuthUserRepository is a mock implementation of AuthUserRepository
type mockAuthUserRepository struct {
	user *models.Usuario
	err  error
}

func (m *mockAuthUserRepository) GetByUsername(ctx context.Context, username string) (*models.Usuario, error) {
	return m.user, m.err
}

// mockAuthPermissionRepository is a mock implementation of AuthPermissionRepository
type mockAuthPermissionRepository struct {
	modulos []string
	err     error
}

func (m *mockAuthPermissionRepository) GetPermissoesUsuario(ctx context.Context, userID int) ([]string, error) {
	return m.modulos, m.err
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestAuthService_Login(t *testing.T) {
	tokenGenerator := auth.NewTokenGenerator("test-secret", time.Hour)

	tests := []struct {
		name          string
		req           *models.LoginRequest
		userRepo      *mockAuthUserRepository
		expectedError error
	}{
		{
			name: "success",
			req:  &models.LoginRequest{Username: "admin", Password: "admin123"},
			userRepo: &mockAuthUserRepository{
				user: &models.Usuario{ID: 1, Username: "admin", Role: models.RoleAdmin},
			},
		},
		{
			name:          "empty credentials",
			req:           &models.LoginRequest{},
			userRepo:      &mockAuthUserRepository{},
			expectedError: ErrInvalid,
		},
		{
			name:          "unknown user",
			req:           &models.LoginRequest{Username: "ghost", Password: "admin123"},
			userRepo:      &mockAuthUserRepository{},
			expectedError: ErrUnauthorized,
		},
		{
			name: "wrong password",
			req:  &models.LoginRequest{Username: "admin", Password: "errada"},
			userRepo: &mockAuthUserRepository{
				user: &models.Usuario{ID: 1, Username: "admin", Role: models.RoleAdmin},
			},
			expectedError: ErrUnauthorized,
		},
		{
			name:          "repository error",
			req:           &models.LoginRequest{Username: "admin", Password: "admin123"},
			userRepo:      &mockAuthUserRepository{err: errors.New("database error")},
			expectedError: nil, // plain error, not classified
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.userRepo.user != nil {
				tt.userRepo.user.PasswordHash = hashOf(t, "admin123")
			}
			permissionRepo := &mockAuthPermissionRepository{modulos: []string{"Pessoal", "Obras"}}
			svc := NewAuthService(tt.userRepo, permissionRepo, tokenGenerator)

			resp, err := svc.Login(context.Background(), tt.req)

			if tt.expectedError != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedError)
				return
			}
			if tt.userRepo.err != nil {
				require.Error(t, err)
				assert.NotErrorIs(t, err, ErrUnauthorized)
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, resp.AccessToken)
			assert.Equal(t, "admin", resp.User.Username)
			assert.Equal(t, []string{"Pessoal", "Obras"}, resp.Modulos)

			// the issued token must validate and carry the user identity
			userID, username, role, err := tokenGenerator.ValidateAccessToken(resp.AccessToken)
			require.NoError(t, err)
			assert.Equal(t, 1, userID)
			assert.Equal(t, "admin", username)
			assert.Equal(t, models.RoleAdmin, role)
		})
	}
}
