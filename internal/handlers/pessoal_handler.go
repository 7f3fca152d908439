package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/lumob/backend/internal/models"
	"github.com/lumob/backend/internal/repositories"
	"github.com/lumob/backend/internal/services"
)

// PessoalService is the interface that wraps the HR module operations
type PessoalService interface {
	ListFuncionarios(ctx context.Context, filter repositories.FuncionarioFilter) ([]models.Funcionario, error)
	GetFuncionario(ctx context.Context, matricula string) (*models.Funcionario, error)
	NextMatricula(ctx context.Context) (string, error)
	CreateFuncionario(ctx context.Context, f *models.Funcionario, docs *models.FuncionarioDocumentos) (*models.Funcionario, error)
	UpdateFuncionario(ctx context.Context, matricula string, f *models.Funcionario, docs *models.FuncionarioDocumentos) (*models.Funcionario, error)
	DeleteFuncionario(ctx context.Context, matricula string) error
	GetDocumentos(ctx context.Context, matricula string) (*models.FuncionarioDocumentos, error)
	Dashboard(ctx context.Context) (*services.PessoalDashboard, error)

	ListCargos(ctx context.Context, nome string) ([]models.Cargo, error)
	GetCargo(ctx context.Context, id int) (*models.Cargo, error)
	CreateCargo(ctx context.Context, c *models.Cargo) (*models.Cargo, error)
	UpdateCargo(ctx context.Context, id int, c *models.Cargo) (*models.Cargo, error)
	DeleteCargo(ctx context.Context, id int) error

	ListNiveis(ctx context.Context, nome string) ([]models.Nivel, error)
	GetNivel(ctx context.Context, id int) (*models.Nivel, error)
	CreateNivel(ctx context.Context, n *models.Nivel) (*models.Nivel, error)
	UpdateNivel(ctx context.Context, id int, n *models.Nivel) (*models.Nivel, error)
	DeleteNivel(ctx context.Context, id int) error

	ListFerias(ctx context.Context, filter repositories.FeriasFilter) ([]models.Ferias, error)
	GetFerias(ctx context.Context, id int) (*models.Ferias, error)
	CreateFerias(ctx context.Context, f *models.Ferias) (*models.Ferias, error)
	UpdateFerias(ctx context.Context, id int, f *models.Ferias) (*models.Ferias, error)
	DeleteFerias(ctx context.Context, id int) error

	ListDependentes(ctx context.Context, filter repositories.DependenteFilter) ([]models.Dependente, error)
	GetDependente(ctx context.Context, id int) (*models.Dependente, error)
	CreateDependente(ctx context.Context, d *models.Dependente) (*models.Dependente, error)
	UpdateDependente(ctx context.Context, id int, d *models.Dependente) (*models.Dependente, error)
	DeleteDependente(ctx context.Context, id int) error
}

// AlertaService is the interface that wraps the HR alert computations
type AlertaService interface {
	Experiencia(ctx context.Context) ([]models.AlertaExperiencia, error)
	Documentos(ctx context.Context) ([]models.AlertaDocumento, error)
	Ferias(ctx context.Context) ([]models.AlertaFerias, error)
}

// FuncionarioRequest is the payload for creating or updating a funcionario.
// Documentos is optional; when present the dados pessoais are saved together.
type FuncionarioRequest struct {
	models.Funcionario
	Documentos *models.FuncionarioDocumentos `json:"documentos"`
}

// PessoalHandler handles the HR module HTTP requests
type PessoalHandler struct {
	BaseHandler
	service PessoalService
	alertas AlertaService
}

// NewPessoalHandler creates a new pessoal handler
func NewPessoalHandler(svc PessoalService, alertas AlertaService, logger *zap.Logger) *PessoalHandler {
	return &PessoalHandler{
		service:     svc,
		alertas:     alertas,
		BaseHandler: BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers the HR module routes. The caller mounts these
// behind the Pessoal module gate.
func (h *PessoalHandler) RegisterRoutes(r chi.Router) {
	r.Route("/pessoal", func(r chi.Router) {
		r.Get("/dashboard", h.Dashboard)

		r.Route("/funcionarios", func(r chi.Router) {
			r.Get("/", h.ListFuncionarios)
			r.Post("/", h.CreateFuncionario)
			r.Get("/proxima-matricula", h.NextMatricula)
			r.Get("/{matricula}", h.GetFuncionario)
			r.Put("/{matricula}", h.UpdateFuncionario)
			r.Delete("/{matricula}", h.DeleteFuncionario)
			r.Get("/{matricula}/documentos", h.GetDocumentos)
		})

		r.Route("/cargos", func(r chi.Router) {
			r.Get("/", h.ListCargos)
			r.Post("/", h.CreateCargo)
			r.Get("/{id}", h.GetCargo)
			r.Put("/{id}", h.UpdateCargo)
			r.Delete("/{id}", h.DeleteCargo)
		})

		r.Route("/niveis", func(r chi.Router) {
			r.Get("/", h.ListNiveis)
			r.Post("/", h.CreateNivel)
			r.Get("/{id}", h.GetNivel)
			r.Put("/{id}", h.UpdateNivel)
			r.Delete("/{id}", h.DeleteNivel)
		})

		r.Route("/ferias", func(r chi.Router) {
			r.Get("/", h.ListFerias)
			r.Post("/", h.CreateFerias)
			r.Get("/{id}", h.GetFerias)
			r.Put("/{id}", h.UpdateFerias)
			r.Delete("/{id}", h.DeleteFerias)
		})

		r.Route("/dependentes", func(r chi.Router) {
			r.Get("/", h.ListDependentes)
			r.Post("/", h.CreateDependente)
			r.Get("/{id}", h.GetDependente)
			r.Put("/{id}", h.UpdateDependente)
			r.Delete("/{id}", h.DeleteDependente)
		})

		r.Route("/alertas", func(r chi.Router) {
			r.Get("/experiencia", h.AlertasExperiencia)
			r.Get("/documentos", h.AlertasDocumentos)
			r.Get("/ferias", h.AlertasFerias)
		})
	})
}

// Dashboard handles GET /pessoal/dashboard
func (h *PessoalHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.service.Dashboard(r.Context())
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, dashboard)
}

// --- funcionários ---

// ListFuncionarios handles GET /pessoal/funcionarios
func (h *PessoalHandler) ListFuncionarios(w http.ResponseWriter, r *http.Request) {
	filter := repositories.FuncionarioFilter{
		Matricula: r.URL.Query().Get("matricula"),
		Nome:      r.URL.Query().Get("nome"),
		Status:    r.URL.Query().Get("status"),
		CargoID:   QueryInt(r, "cargo"),
	}

	funcionarios, err := h.service.ListFuncionarios(r.Context(), filter)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, funcionarios)
}

// GetFuncionario handles GET /pessoal/funcionarios/{matricula}
func (h *PessoalHandler) GetFuncionario(w http.ResponseWriter, r *http.Request) {
	f, err := h.service.GetFuncionario(r.Context(), chi.URLParam(r, "matricula"))
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, f)
}

// NextMatricula handles GET /pessoal/funcionarios/proxima-matricula
func (h *PessoalHandler) NextMatricula(w http.ResponseWriter, r *http.Request) {
	matricula, err := h.service.NextMatricula(r.Context())
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, map[string]string{"matricula": matricula})
}

// CreateFuncionario handles POST /pessoal/funcionarios
func (h *PessoalHandler) CreateFuncionario(w http.ResponseWriter, r *http.Request) {
	var req FuncionarioRequest
	if err := DecodeJSON(r, &req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "Corpo da requisição inválido.")
		return
	}

	f, err := h.service.CreateFuncionario(r.Context(), &req.Funcionario, req.Documentos)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusCreated, f)
}

// UpdateFuncionario handles PUT /pessoal/funcionarios/{matricula}
func (h *PessoalHandler) UpdateFuncionario(w http.ResponseWriter, r *http.Request) {
	var req FuncionarioRequest
	if err := DecodeJSON(r, &req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "Corpo da requisição inválido.")
		return
	}

	f, err := h.service.UpdateFuncionario(r.Context(), chi.URLParam(r, "matricula"), &req.Funcionario, req.Documentos)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, f)
}

// DeleteFuncionario handles DELETE /pessoal/funcionarios/{matricula}
func (h *PessoalHandler) DeleteFuncionario(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteFuncionario(r.Context(), chi.URLParam(r, "matricula")); err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "Funcionário excluído."})
}

// GetDocumentos handles GET /pessoal/funcionarios/{matricula}/documentos
func (h *PessoalHandler) GetDocumentos(w http.ResponseWriter, r *http.Request) {
	docs, err := h.service.GetDocumentos(r.Context(), chi.URLParam(r, "matricula"))
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	if docs == nil {
		h.RespondError(w, http.StatusNotFound, "Documentos não cadastrados para este funcionário.")
		return
	}
	h.RespondJSON(w, http.StatusOK, docs)
}

// --- cargos ---

// ListCargos handles GET /pessoal/cargos
func (h *PessoalHandler) ListCargos(w http.ResponseWriter, r *http.Request) {
	cargos, err := h.service.ListCargos(r.Context(), r.URL.Query().Get("nome"))
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, cargos)
}

// GetCargo handles GET /pessoal/cargos/{id}
func (h *PessoalHandler) GetCargo(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamInt(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "ID de cargo inválido.")
		return
	}

	cargo, err := h.service.GetCargo(r.Context(), id)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, cargo)
}

// CreateCargo handles POST /pessoal/cargos
func (h *PessoalHandler) CreateCargo(w http.ResponseWriter, r *http.Request) {
	var cargo models.Cargo
	if err := DecodeJSON(r, &cargo); err != nil {
		h.RespondError(w, http.StatusBadRequest, "Corpo da requisição inválido.")
		return
	}

	created, err := h.service.CreateCargo(r.Context(), &cargo)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusCreated, created)
}

// UpdateCargo handles PUT /pessoal/cargos/{id}
func (h *PessoalHandler) UpdateCargo(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamInt(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "ID de cargo inválido.")
		return
	}

	var cargo models.Cargo
	if err := DecodeJSON(r, &cargo); err != nil {
		h.RespondError(w, http.StatusBadRequest, "Corpo da requisição inválido.")
		return
	}

	updated, err := h.service.UpdateCargo(r.Context(), id, &cargo)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, updated)
}

// DeleteCargo handles DELETE /pessoal/cargos/{id}
func (h *PessoalHandler) DeleteCargo(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamInt(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "ID de cargo inválido.")
		return
	}

	if err := h.service.DeleteCargo(r.Context(), id); err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "Cargo excluído."})
}

// --- níveis ---

// ListNiveis handles GET /pessoal/niveis
func (h *PessoalHandler) ListNiveis(w http.ResponseWriter, r *http.Request) {
	niveis, err := h.service.ListNiveis(r.Context(), r.URL.Query().Get("nome"))
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, niveis)
}

// GetNivel handles GET /pessoal/niveis/{id}
func (h *PessoalHandler) GetNivel(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamInt(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "ID de nível inválido.")
		return
	}

	nivel, err := h.service.GetNivel(r.Context(), id)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, nivel)
}

// CreateNivel handles POST /pessoal/niveis
func (h *PessoalHandler) CreateNivel(w http.ResponseWriter, r *http.Request) {
	var nivel models.Nivel
	if err := DecodeJSON(r, &nivel); err != nil {
		h.RespondError(w, http.StatusBadRequest, "Corpo da requisição inválido.")
		return
	}

	created, err := h.service.CreateNivel(r.Context(), &nivel)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusCreated, created)
}

// UpdateNivel handles PUT /pessoal/niveis/{id}
func (h *PessoalHandler) UpdateNivel(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamInt(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "ID de nível inválido.")
		return
	}

	var nivel models.Nivel
	if err := DecodeJSON(r, &nivel); err != nil {
		h.RespondError(w, http.StatusBadRequest, "Corpo da requisição inválido.")
		return
	}

	updated, err := h.service.UpdateNivel(r.Context(), id, &nivel)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, updated)
}

// DeleteNivel handles DELETE /pessoal/niveis/{id}
func (h *PessoalHandler) DeleteNivel(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamInt(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "ID de nível inválido.")
		return
	}

	if err := h.service.DeleteNivel(r.Context(), id); err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "Nível excluído."})
}

// --- férias ---

// ListFerias handles GET /pessoal/ferias
func (h *PessoalHandler) ListFerias(w http.ResponseWriter, r *http.Request) {
	filter := repositories.FeriasFilter{
		Matricula:     r.URL.Query().Get("matricula"),
		Status:        r.URL.Query().Get("status"),
		PeriodoInicio: r.URL.Query().Get("periodo_inicio"),
		PeriodoFim:    r.URL.Query().Get("periodo_fim"),
	}

	ferias, err := h.service.ListFerias(r.Context(), filter)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, ferias)
}

// GetFerias handles GET /pessoal/ferias/{id}
func (h *PessoalHandler) GetFerias(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamInt(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "ID de férias inválido.")
		return
	}

	f, err := h.service.GetFerias(r.Context(), id)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, f)
}

// CreateFerias handles POST /pessoal/ferias
func (h *PessoalHandler) CreateFerias(w http.ResponseWriter, r *http.Request) {
	var f models.Ferias
	if err := DecodeJSON(r, &f); err != nil {
		h.RespondError(w, http.StatusBadRequest, "Corpo da requisição inválido.")
		return
	}

	created, err := h.service.CreateFerias(r.Context(), &f)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusCreated, created)
}

// UpdateFerias handles PUT /pessoal/ferias/{id}
func (h *PessoalHandler) UpdateFerias(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamInt(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "ID de férias inválido.")
		return
	}

	var f models.Ferias
	if err := DecodeJSON(r, &f); err != nil {
		h.RespondError(w, http.StatusBadRequest, "Corpo da requisição inválido.")
		return
	}

	updated, err := h.service.UpdateFerias(r.Context(), id, &f)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, updated)
}

// DeleteFerias handles DELETE /pessoal/ferias/{id}
func (h *PessoalHandler) DeleteFerias(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamInt(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "ID de férias inválido.")
		return
	}

	if err := h.service.DeleteFerias(r.Context(), id); err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "Registro de férias excluído."})
}

// --- dependentes ---

// ListDependentes handles GET /pessoal/dependentes
func (h *PessoalHandler) ListDependentes(w http.ResponseWriter, r *http.Request) {
	filter := repositories.DependenteFilter{
		Matricula:  r.URL.Query().Get("matricula"),
		Nome:       r.URL.Query().Get("nome"),
		Parentesco: r.URL.Query().Get("parentesco"),
	}

	dependentes, err := h.service.ListDependentes(r.Context(), filter)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, dependentes)
}

// GetDependente handles GET /pessoal/dependentes/{id}
func (h *PessoalHandler) GetDependente(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamInt(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "ID de dependente inválido.")
		return
	}

	d, err := h.service.GetDependente(r.Context(), id)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, d)
}

// CreateDependente handles POST /pessoal/dependentes
func (h *PessoalHandler) CreateDependente(w http.ResponseWriter, r *http.Request) {
	var d models.Dependente
	if err := DecodeJSON(r, &d); err != nil {
		h.RespondError(w, http.StatusBadRequest, "Corpo da requisição inválido.")
		return
	}

	created, err := h.service.CreateDependente(r.Context(), &d)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusCreated, created)
}

// UpdateDependente handles PUT /pessoal/dependentes/{id}
func (h *PessoalHandler) UpdateDependente(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamInt(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "ID de dependente inválido.")
		return
	}

	var d models.Dependente
	if err := DecodeJSON(r, &d); err != nil {
		h.RespondError(w, http.StatusBadRequest, "Corpo da requisição inválido.")
		return
	}

	updated, err := h.service.UpdateDependente(r.Context(), id, &d)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, updated)
}

// DeleteDependente handles DELETE /pessoal/dependentes/{id}
func (h *PessoalHandler) DeleteDependente(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamInt(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "ID de dependente inválido.")
		return
	}

	if err := h.service.DeleteDependente(r.Context(), id); err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "Dependente excluído."})
}

// --- alertas ---

// AlertasExperiencia handles GET /pessoal/alertas/experiencia
func (h *PessoalHandler) AlertasExperiencia(w http.ResponseWriter, r *http.Request) {
	alertas, err := h.alertas.Experiencia(r.Context())
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, alertas)
}

// AlertasDocumentos handles GET /pessoal/alertas/documentos
func (h *PessoalHandler) AlertasDocumentos(w http.ResponseWriter, r *http.Request) {
	alertas, err := h.alertas.Documentos(r.Context())
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, alertas)
}

// AlertasFerias handles GET /pessoal/alertas/ferias
func (h *PessoalHandler) AlertasFerias(w http.ResponseWriter, r *http.Request) {
	alertas, err := h.alertas.Ferias(r.Context())
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, alertas)
}
