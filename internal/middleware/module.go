package middleware

import (
	"fmt"
	"net/http"

	"github.com/lumob/backend/internal/models"
)

// RequireModule gates a route group on a named module permission.
// Admins always pass; other roles pass only when the module is in their
// granted set. Runs after AuthMiddleware, which establishes the identity.
func RequireModule(modulo string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := GetIdentity(r.Context())
			if !ok {
				respondDenied(w, http.StatusUnauthorized, "autenticação necessária")
				return
			}

			if !identity.PodeAcessar(modulo) {
				respondDenied(w, http.StatusForbidden,
					fmt.Sprintf("Acesso negado. Você não tem permissão para acessar o Módulo %s.", modulo))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin gates a route group on the admin role. The user
// administration area is admin-only regardless of module grants.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := GetIdentity(r.Context())
		if !ok {
			respondDenied(w, http.StatusUnauthorized, "autenticação necessária")
			return
		}

		if identity.Role != models.RoleAdmin {
			respondDenied(w, http.StatusForbidden,
				"Acesso negado. Apenas administradores podem acessar o módulo Usuários.")
			return
		}

		next.ServeHTTP(w, r)
	})
}
