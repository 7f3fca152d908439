package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/lumob/backend/internal/middleware"
	"github.com/lumob/backend/internal/models"
)

// UserService is the interface that wraps account and permission management
type UserService interface {
	List(ctx context.Context) ([]models.Usuario, error)
	Get(ctx context.Context, id int) (*models.Usuario, error)
	Create(ctx context.Context, req *models.CreateUsuarioRequest) (*models.Usuario, error)
	Update(ctx context.Context, id int, req *models.UpdateUsuarioRequest) (*models.Usuario, error)
	ResetPassword(ctx context.Context, id int) error
	Delete(ctx context.Context, id, actingUserID int) error
	ListModulos(ctx context.Context) ([]models.Modulo, error)
	CreateModulo(ctx context.Context, m *models.Modulo) (*models.Modulo, error)
	GetPermissoes(ctx context.Context, userID int) ([]int, error)
	ReplacePermissoes(ctx context.Context, userID int, moduloIDs []int) error
	GrantPermissao(ctx context.Context, userID, moduloID int) error
	RevokePermissao(ctx context.Context, userID, moduloID int) error
}

// UsuarioHandler handles the admin-only user management HTTP requests
type UsuarioHandler struct {
	BaseHandler
	service UserService
}

// NewUsuarioHandler creates a new usuario handler
func NewUsuarioHandler(svc UserService, logger *zap.Logger) *UsuarioHandler {
	return &UsuarioHandler{
		service:     svc,
		BaseHandler: BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers the user management routes. The caller mounts
// these behind the admin gate.
func (h *UsuarioHandler) RegisterRoutes(r chi.Router) {
	r.Route("/usuarios", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
		r.Post("/{id}/reset-senha", h.ResetPassword)
		r.Get("/{id}/permissoes", h.GetPermissoes)
		r.Put("/{id}/permissoes", h.ReplacePermissoes)
		r.Post("/{id}/permissoes/{moduloID}", h.GrantPermissao)
		r.Delete("/{id}/permissoes/{moduloID}", h.RevokePermissao)
	})
	r.Route("/modulos", func(r chi.Router) {
		r.Get("/", h.ListModulos)
		r.Post("/", h.CreateModulo)
	})
}

// List handles GET /usuarios
func (h *UsuarioHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context())
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, users)
}

// Get handles GET /usuarios/{id}
func (h *UsuarioHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamInt(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "ID de usuário inválido.")
		return
	}

	user, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, user)
}

// Create handles POST /usuarios
func (h *UsuarioHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUsuarioRequest
	if err := DecodeJSON(r, &req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "Corpo da requisição inválido.")
		return
	}

	user, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusCreated, user)
}

// Update handles PUT /usuarios/{id}
func (h *UsuarioHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamInt(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "ID de usuário inválido.")
		return
	}

	var req models.UpdateUsuarioRequest
	if err := DecodeJSON(r, &req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "Corpo da requisição inválido.")
		return
	}

	user, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, user)
}

// Delete handles DELETE /usuarios/{id}
func (h *UsuarioHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamInt(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "ID de usuário inválido.")
		return
	}

	identity, _ := middleware.GetIdentity(r.Context())
	if err := h.service.Delete(r.Context(), id, identity.ID); err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "Usuário excluído."})
}

// ResetPassword handles POST /usuarios/{id}/reset-senha
func (h *UsuarioHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamInt(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "ID de usuário inválido.")
		return
	}

	if err := h.service.ResetPassword(r.Context(), id); err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "Senha redefinida para o padrão."})
}

// ListModulos handles GET /modulos
func (h *UsuarioHandler) ListModulos(w http.ResponseWriter, r *http.Request) {
	modulos, err := h.service.ListModulos(r.Context())
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, modulos)
}

// CreateModulo handles POST /modulos
func (h *UsuarioHandler) CreateModulo(w http.ResponseWriter, r *http.Request) {
	var m models.Modulo
	if err := DecodeJSON(r, &m); err != nil {
		h.RespondError(w, http.StatusBadRequest, "Corpo da requisição inválido.")
		return
	}

	created, err := h.service.CreateModulo(r.Context(), &m)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusCreated, created)
}

// GetPermissoes handles GET /usuarios/{id}/permissoes
func (h *UsuarioHandler) GetPermissoes(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamInt(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "ID de usuário inválido.")
		return
	}

	ids, err := h.service.GetPermissoes(r.Context(), id)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, map[string][]int{"modulos": ids})
}

// ReplacePermissoes handles PUT /usuarios/{id}/permissoes
func (h *UsuarioHandler) ReplacePermissoes(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamInt(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "ID de usuário inválido.")
		return
	}

	var req struct {
		Modulos []int `json:"modulos"`
	}
	if err := DecodeJSON(r, &req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "Corpo da requisição inválido.")
		return
	}

	if err := h.service.ReplacePermissoes(r.Context(), id, req.Modulos); err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "Permissões atualizadas."})
}

// GrantPermissao handles POST /usuarios/{id}/permissoes/{moduloID}
func (h *UsuarioHandler) GrantPermissao(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamInt(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "ID de usuário inválido.")
		return
	}
	moduloID, err := URLParamInt(r, "moduloID")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "ID de módulo inválido.")
		return
	}

	if err := h.service.GrantPermissao(r.Context(), id, moduloID); err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "Permissão concedida."})
}

// RevokePermissao handles DELETE /usuarios/{id}/permissoes/{moduloID}
func (h *UsuarioHandler) RevokePermissao(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamInt(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "ID de usuário inválido.")
		return
	}
	moduloID, err := URLParamInt(r, "moduloID")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "ID de módulo inválido.")
		return
	}

	if err := h.service.RevokePermissao(r.Context(), id, moduloID); err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "Permissão revogada."})
}
