package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lumob/backend/internal/models"
)

func okHandler() (http.Handler, *bool) {
	called := false
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}), &called
}

func TestRequireModule(t *testing.T) {
	tests := []struct {
		name           string
		identity       *models.Identity
		modulo         string
		expectedStatus int
	}{
		{
			name:           "admin always passes",
			identity:       &models.Identity{ID: 1, Username: "admin", Role: models.RoleAdmin},
			modulo:         "Obras",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "granted module passes",
			identity:       &models.Identity{ID: 2, Username: "maria", Role: "comum", Modulos: []string{"Pessoal", "Obras"}},
			modulo:         "Obras",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing grant is forbidden",
			identity:       &models.Identity{ID: 2, Username: "maria", Role: "comum", Modulos: []string{"Pessoal"}},
			modulo:         "Seguranca",
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "no identity is unauthorized",
			identity:       nil,
			modulo:         "Pessoal",
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, called := okHandler()
			handler := RequireModule(tt.modulo)(next)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.identity != nil {
				req = req.WithContext(WithIdentity(req.Context(), *tt.identity))
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, tt.expectedStatus == http.StatusOK, *called)
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name           string
		identity       *models.Identity
		expectedStatus int
	}{
		{
			name:           "admin passes",
			identity:       &models.Identity{ID: 1, Username: "admin", Role: models.RoleAdmin},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "module grants do not open the admin area",
			identity:       &models.Identity{ID: 2, Username: "maria", Role: "comum", Modulos: []string{"Pessoal", "Obras", "Seguranca"}},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "no identity is unauthorized",
			identity:       nil,
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, called := okHandler()
			handler := RequireAdmin(next)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.identity != nil {
				req = req.WithContext(WithIdentity(req.Context(), *tt.identity))
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, tt.expectedStatus == http.StatusOK, *called)
		})
	}
}
