package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/lumob/backend/internal/middleware"
	"github.com/lumob/backend/internal/models"
)

// AuthService is the interface that wraps the login operation
type AuthService interface {
	// Login verifies the username/password pair and returns a signed access
	// token together with the authenticated user and its module grants.
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
}

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	BaseHandler
	service AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(svc AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service:     svc,
		BaseHandler: BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers the public auth routes
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", h.Login)
	r.Post("/auth/logout", h.Logout)
}

// RegisterProtectedRoutes registers the routes that need an authenticated identity
func (h *AuthHandler) RegisterProtectedRoutes(r chi.Router) {
	r.Get("/auth/me", h.Me)
}

// Login handles POST /auth/login. Accepts a JSON body or form fields so the
// intranet login page can post either way.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "application/json") {
		if err := DecodeJSON(r, &req); err != nil {
			h.RespondError(w, http.StatusBadRequest, "Corpo da requisição inválido.")
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			h.RespondError(w, http.StatusBadRequest, "Formulário inválido.")
			return
		}
		req.Username = r.PostFormValue("username")
		req.Password = r.PostFormValue("password")
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    resp.AccessToken,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	h.RespondJSON(w, http.StatusOK, resp)
}

// Logout handles POST /auth/logout, clearing the access token cookie
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "Sessão encerrada."})
}

// Me handles GET /auth/me, returning the authenticated identity with its modules
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "Não autenticado.")
		return
	}
	h.RespondJSON(w, http.StatusOK, identity)
}
