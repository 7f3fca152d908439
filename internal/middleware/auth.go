package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/lumob/backend/internal/auth"
	"github.com/lumob/backend/internal/models"
)

const identityKey contextKey = "identity"

// PermissionLoader loads the module names an authenticated user may access
type PermissionLoader interface {
	// Method GetPermissoesUsuario returns the module names granted to a user.
	//
	// For admins the full module list is returned; for other roles only the
	// explicitly granted set.
	GetPermissoesUsuario(ctx context.Context, userID int) ([]string, error)
}

// AuthMiddleware validates the JWT access token, loads the user's module
// permissions and stores the resulting Identity in the request context.
// Permissions are re-read from storage on every request so grants and
// revocations take effect immediately.
func AuthMiddleware(tokenGenerator *auth.TokenGenerator, permissions PermissionLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var token string

			// Try Authorization header first
			authHeader := r.Header.Get("Authorization")
			if authHeader != "" {
				// Expected format: "Bearer <token>"
				parts := strings.Split(authHeader, " ")
				if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
					token = parts[1]
				}
			}

			// If not in header, try cookie
			if token == "" {
				cookie, err := r.Cookie("access_token")
				if err == nil {
					token = cookie.Value
				}
			}

			if token == "" {
				respondDenied(w, http.StatusUnauthorized, "autenticação necessária")
				return
			}

			userID, username, role, err := tokenGenerator.ValidateAccessToken(token)
			if err != nil {
				respondDenied(w, http.StatusUnauthorized, "token inválido ou expirado")
				return
			}

			modulos, err := permissions.GetPermissoesUsuario(r.Context(), userID)
			if err != nil {
				respondDenied(w, http.StatusInternalServerError, "erro ao carregar permissões do usuário")
				return
			}

			identity := models.Identity{
				ID:       userID,
				Username: username,
				Role:     role,
				Modulos:  modulos,
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetIdentity retrieves the authenticated identity from context
func GetIdentity(ctx context.Context) (models.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(models.Identity)
	return identity, ok
}

// WithIdentity returns a context carrying the given identity. Test helper
// and building block for the gate middlewares.
func WithIdentity(ctx context.Context, identity models.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

func respondDenied(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
