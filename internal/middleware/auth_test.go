package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumob/backend/internal/auth"
	"github.com/lumob/backend/internal/models"
)

// mockPermissionLoader is a mock implementation of PermissionLoader
type mockPermissionLoader struct {
	modulos []string
	err     error
}

func (m *mockPermissionLoader) GetPermissoesUsuario(ctx context.Context, userID int) ([]string, error) {
	return m.modulos, m.err
}

func TestAuthMiddleware(t *testing.T) {
	tg := auth.NewTokenGenerator("test-secret", time.Hour)
	token, err := tg.GenerateAccessToken(7, "maria", "comum")
	require.NoError(t, err)

	tests := []struct {
		name           string
		setupRequest   func(r *http.Request)
		loader         *mockPermissionLoader
		expectedStatus int
	}{
		{
			name: "bearer header accepted",
			setupRequest: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer "+token)
			},
			loader:         &mockPermissionLoader{modulos: []string{"Pessoal"}},
			expectedStatus: http.StatusOK,
		},
		{
			name: "cookie accepted",
			setupRequest: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: "access_token", Value: token})
			},
			loader:         &mockPermissionLoader{modulos: []string{"Pessoal"}},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing token rejected",
			setupRequest:   func(r *http.Request) {},
			loader:         &mockPermissionLoader{},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "malformed token rejected",
			setupRequest: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer nonsense")
			},
			loader:         &mockPermissionLoader{},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var identity models.Identity
			var found bool
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				identity, found = GetIdentity(r.Context())
				w.WriteHeader(http.StatusOK)
			})
			handler := AuthMiddleware(tg, tt.loader)(next)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			tt.setupRequest(req)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.True(t, found)
				assert.Equal(t, 7, identity.ID)
				assert.Equal(t, "maria", identity.Username)
				assert.Equal(t, []string{"Pessoal"}, identity.Modulos)
			}
		})
	}
}

func TestAuthMiddleware_PermissionsReadPerRequest(t *testing.T) {
	tg := auth.NewTokenGenerator("test-secret", time.Hour)
	token, err := tg.GenerateAccessToken(7, "maria", "comum")
	require.NoError(t, err)

	loader := &mockPermissionLoader{modulos: []string{"Pessoal"}}
	var last models.Identity
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		last, _ = GetIdentity(r.Context())
	})
	handler := AuthMiddleware(tg, loader)(next)

	do := func() {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	do()
	assert.Equal(t, []string{"Pessoal"}, last.Modulos)

	// a revocation takes effect on the very next request, same token
	loader.modulos = nil
	do()
	assert.Empty(t, last.Modulos)
}

func TestAuthMiddleware_DenialBodyIsJSON(t *testing.T) {
	tg := auth.NewTokenGenerator("test-secret", time.Hour)
	handler := AuthMiddleware(tg, &mockPermissionLoader{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body["error"])
}
