package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/lumob/backend/internal/models"
	"github.com/lumob/backend/internal/repositories"
)

// ObrasService is the interface that wraps the works/contracts module operations
type ObrasService interface {
	ListClientes(ctx context.Context) ([]models.Cliente, error)
	GetCliente(ctx context.Context, id int) (*models.Cliente, error)
	CreateCliente(ctx context.Context, c *models.Cliente) (*models.Cliente, error)
	UpdateCliente(ctx context.Context, id int, c *models.Cliente) (*models.Cliente, error)
	DeleteCliente(ctx context.Context, id int) error

	ListContratos(ctx context.Context, filter repositories.ContratoFilter) ([]models.Contrato, error)
	GetContrato(ctx context.Context, id int) (*models.Contrato, error)
	CreateContrato(ctx context.Context, c *models.Contrato) (*models.Contrato, error)
	UpdateContrato(ctx context.Context, id int, c *models.Contrato) (*models.Contrato, error)
	DeleteContrato(ctx context.Context, id int) error

	ListObras(ctx context.Context, filter repositories.ObraFilter) ([]models.Obra, error)
	GetObra(ctx context.Context, id int) (*models.Obra, error)
	CreateObra(ctx context.Context, o *models.Obra) (*models.Obra, error)
	UpdateObra(ctx context.Context, id int, o *models.Obra) (*models.Obra, error)
	DeleteObra(ctx context.Context, id int) error
	Dashboard(ctx context.Context) (*models.ObrasDashboard, error)

	ListARTs(ctx context.Context, obraID int) ([]models.ART, error)
	GetART(ctx context.Context, id int) (*models.ART, error)
	CreateART(ctx context.Context, a *models.ART) (*models.ART, error)
	UpdateART(ctx context.Context, id int, a *models.ART) (*models.ART, error)
	DeleteART(ctx context.Context, id int) error

	ListMedicoes(ctx context.Context, obraID int) ([]models.Medicao, error)
	GetMedicao(ctx context.Context, id int) (*models.Medicao, error)
	CreateMedicao(ctx context.Context, m *models.Medicao) (*models.Medicao, error)
	UpdateMedicao(ctx context.Context, id int, m *models.Medicao) (*models.Medicao, error)
	DeleteMedicao(ctx context.Context, id int) error

	ListAvancos(ctx context.Context, obraID int) ([]models.AvancoFisico, error)
	GetAvanco(ctx context.Context, id int) (*models.AvancoFisico, error)
	CreateAvanco(ctx context.Context, a *models.AvancoFisico) (*models.AvancoFisico, error)
	UpdateAvanco(ctx context.Context, id int, a *models.AvancoFisico) (*models.AvancoFisico, error)
	DeleteAvanco(ctx context.Context, id int) error

	ListSeguros(ctx context.Context, obraID int) ([]models.Seguro, error)
	GetSeguro(ctx context.Context, id int) (*models.Seguro, error)
	CreateSeguro(ctx context.Context, s *models.Seguro) (*models.Seguro, error)
	UpdateSeguro(ctx context.Context, id int, s *models.Seguro) (*models.Seguro, error)
	DeleteSeguro(ctx context.Context, id int) error

	ListREIDIs(ctx context.Context, obraID int) ([]models.REIDI, error)
	GetREIDI(ctx context.Context, id int) (*models.REIDI, error)
	CreateREIDI(ctx context.Context, re *models.REIDI) (*models.REIDI, error)
	UpdateREIDI(ctx context.Context, id int, re *models.REIDI) (*models.REIDI, error)
	DeleteREIDI(ctx context.Context, id int) error
}

// ObrasHandler handles the works/contracts module HTTP requests
type ObrasHandler struct {
	BaseHandler
	service ObrasService
}

// NewObrasHandler creates a new obras handler
func NewObrasHandler(svc ObrasService, logger *zap.Logger) *ObrasHandler {
	return &ObrasHandler{
		service:     svc,
		BaseHandler: BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers the obras module routes. The caller mounts these
// behind the Obras module gate.
func (h *ObrasHandler) RegisterRoutes(r chi.Router) {
	r.Route("/obras", func(r chi.Router) {
		r.Get("/dashboard", h.Dashboard)

		r.Route("/clientes", func(r chi.Router) {
			r.Get("/", h.ListClientes)
			r.Post("/", h.CreateCliente)
			r.Get("/{id}", h.GetCliente)
			r.Put("/{id}", h.UpdateCliente)
			r.Delete("/{id}", h.DeleteCliente)
		})

		r.Route("/contratos", func(r chi.Router) {
			r.Get("/", h.ListContratos)
			r.Post("/", h.CreateContrato)
			r.Get("/{id}", h.GetContrato)
			r.Put("/{id}", h.UpdateContrato)
			r.Delete("/{id}", h.DeleteContrato)
		})

		r.Route("/obras", func(r chi.Router) {
			r.Get("/", h.ListObras)
			r.Post("/", h.CreateObra)
			r.Get("/{id}", h.GetObra)
			r.Put("/{id}", h.UpdateObra)
			r.Delete("/{id}", h.DeleteObra)
		})

		r.Route("/arts", func(r chi.Router) {
			r.Get("/", h.ListARTs)
			r.Post("/", h.CreateART)
			r.Get("/{id}", h.GetART)
			r.Put("/{id}", h.UpdateART)
			r.Delete("/{id}", h.DeleteART)
		})

		r.Route("/medicoes", func(r chi.Router) {
			r.Get("/", h.ListMedicoes)
			r.Post("/", h.CreateMedicao)
			r.Get("/{id}", h.GetMedicao)
			r.Put("/{id}", h.UpdateMedicao)
			r.Delete("/{id}", h.DeleteMedicao)
		})

		r.Route("/avancos-fisicos", func(r chi.Router) {
			r.Get("/", h.ListAvancos)
			r.Post("/", h.CreateAvanco)
			r.Get("/{id}", h.GetAvanco)
			r.Put("/{id}", h.UpdateAvanco)
			r.Delete("/{id}", h.DeleteAvanco)
		})

		r.Route("/seguros", func(r chi.Router) {
			r.Get("/", h.ListSeguros)
			r.Post("/", h.CreateSeguro)
			r.Get("/{id}", h.GetSeguro)
			r.Put("/{id}", h.UpdateSeguro)
			r.Delete("/{id}", h.DeleteSeguro)
		})

		r.Route("/reidis", func(r chi.Router) {
			r.Get("/", h.ListREIDIs)
			r.Post("/", h.CreateREIDI)
			r.Get("/{id}", h.GetREIDI)
			r.Put("/{id}", h.UpdateREIDI)
			r.Delete("/{id}", h.DeleteREIDI)
		})
	})
}

// Dashboard handles GET /obras/dashboard
func (h *ObrasHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.service.Dashboard(r.Context())
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, dashboard)
}

// --- clientes ---

// ListClientes handles GET /obras/clientes
func (h *ObrasHandler) ListClientes(w http.ResponseWriter, r *http.Request) {
	clientes, err := h.service.ListClientes(r.Context())
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, clientes)
}

// GetCliente handles GET /obras/clientes/{id}
func (h *ObrasHandler) GetCliente(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamInt(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "ID de cliente inválido.")
		return
	}

	c, err := h.service.GetCliente(r.Context(), id)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, c)
}

// CreateCliente handles POST /obras/clientes
func (h *ObrasHandler) CreateCliente(w http.ResponseWriter, r *http.Request) {
	var c models.Cliente
	if err := DecodeJSON(r, &c); err != nil {
		h.RespondError(w, http.StatusBadRequest, "Corpo da requisição inválido.")
		return
	}

	created, err := h.service.CreateCliente(r.Context(), &c)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusCreated, created)
}

// UpdateCliente handles PUT /obras/clientes/{id}
func (h *ObrasHandler) UpdateCliente(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamInt(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "ID de cliente inválido.")
		return
	}

	var c models.Cliente
	if err := DecodeJSON(r, &c); err != nil {
		h.RespondError(w, http.StatusBadRequest, "Corpo da requisição inválido.")
		return
	}

	updated, err := h.service.UpdateCliente(r.Context(), id, &c)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, updated)
}

// DeleteCliente handles DELETE /obras/clientes/{id}
func (h *ObrasHandler) DeleteCliente(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamInt(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "ID de cliente inválido.")
		return
	}

	if err := h.service.DeleteCliente(r.Context(), id); err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "Cliente excluído."})
}

// --- contratos ---

// ListContratos handles GET /obras/contratos
func (h *ObrasHandler) ListContratos(w http.ResponseWriter, r *http.Request) {
	filter := repositories.ContratoFilter{
		Numero:    r.URL.Query().Get("numero"),
		ClienteID: QueryInt(r, "cliente"),
		Status:    r.URL.Query().Get("status"),
	}

	contratos, err := h.service.ListContratos(r.Context(), filter)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, contratos)
}

// GetContrato handles GET /obras/contratos/{id}
func (h *ObrasHandler) GetContrato(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamInt(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "ID de contrato inválido.")
		return
	}

	c, err := h.service.GetContrato(r.Context(), id)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, c)
}

// CreateContrato handles POST /obras/contratos
func (h *ObrasHandler) CreateContrato(w http.ResponseWriter, r *http.Request) {
	var c models.Contrato
	if err := DecodeJSON(r, &c); err != nil {
		h.RespondError(w, http.StatusBadRequest, "Corpo da requisição inválido.")
		return
	}

	created, err := h.service.CreateContrato(r.Context(), &c)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusCreated, created)
}

// UpdateContrato handles PUT /obras/contratos/{id}
func (h *ObrasHandler) UpdateContrato(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamInt(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "ID de contrato inválido.")
		return
	}

	var c models.Contrato
	if err := DecodeJSON(r, &c); err != nil {
		h.RespondError(w, http.StatusBadRequest, "Corpo da requisição inválido.")
		return
	}

	updated, err := h.service.UpdateContrato(r.Context(), id, &c)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, updated)
}

// DeleteContrato handles DELETE /obras/contratos/{id}
func (h *ObrasHandler) DeleteContrato(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamInt(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "ID de contrato inválido.")
		return
	}

	if err := h.service.DeleteContrato(r.Context(), id); err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "Contrato excluído."})
}

// --- obras ---

// ListObras handles GET /obras/obras
func (h *ObrasHandler) ListObras(w http.ResponseWriter, r *http.Request) {
	filter := repositories.ObraFilter{
		Numero: r.URL.Query().Get("numero"),
		Nome:   r.URL.Query().Get("nome"),
		Status: r.URL.Query().Get("status"),
	}

	obras, err := h.service.ListObras(r.Context(), filter)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, obras)
}

// GetObra handles GET /obras/obras/{id}
func (h *ObrasHandler) GetObra(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamInt(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "ID de obra inválido.")
		return
	}

	o, err := h.service.GetObra(r.Context(), id)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, o)
}

// CreateObra handles POST /obras/obras
func (h *ObrasHandler) CreateObra(w http.ResponseWriter, r *http.Request) {
	var o models.Obra
	if err := DecodeJSON(r, &o); err != nil {
		h.RespondError(w, http.StatusBadRequest, "Corpo da requisição inválido.")
		return
	}

	created, err := h.service.CreateObra(r.Context(), &o)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusCreated, created)
}

// UpdateObra handles PUT /obras/obras/{id}
func (h *ObrasHandler) UpdateObra(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamInt(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "ID de obra inválido.")
		return
	}

	var o models.Obra
	if err := DecodeJSON(r, &o); err != nil {
		h.RespondError(w, http.StatusBadRequest, "Corpo da requisição inválido.")
		return
	}

	updated, err := h.service.UpdateObra(r.Context(), id, &o)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, updated)
}

// DeleteObra handles DELETE /obras/obras/{id}
func (h *ObrasHandler) DeleteObra(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamInt(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "ID de obra inválido.")
		return
	}

	if err := h.service.DeleteObra(r.Context(), id); err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "Obra excluída."})
}

// --- ARTs ---

// ListARTs handles GET /obras/arts
func (h *ObrasHandler) ListARTs(w http.ResponseWriter, r *http.Request) {
	arts, err := h.service.ListARTs(r.Context(), QueryInt(r, "obra"))
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, arts)
}

// GetART handles GET /obras/arts/{id}
func (h *ObrasHandler) GetART(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamInt(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "ID de ART inválido.")
		return
	}

	a, err := h.service.GetART(r.Context(), id)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, a)
}

// CreateART handles POST /obras/arts
func (h *ObrasHandler) CreateART(w http.ResponseWriter, r *http.Request) {
	var a models.ART
	if err := DecodeJSON(r, &a); err != nil {
		h.RespondError(w, http.StatusBadRequest, "Corpo da requisição inválido.")
		return
	}

	created, err := h.service.CreateART(r.Context(), &a)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusCreated, created)
}

// UpdateART handles PUT /obras/arts/{id}
func (h *ObrasHandler) UpdateART(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamInt(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "ID de ART inválido.")
		return
	}

	var a models.ART
	if err := DecodeJSON(r, &a); err != nil {
		h.RespondError(w, http.StatusBadRequest, "Corpo da requisição inválido.")
		return
	}

	updated, err := h.service.UpdateART(r.Context(), id, &a)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, updated)
}

// DeleteART handles DELETE /obras/arts/{id}
func (h *ObrasHandler) DeleteART(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamInt(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "ID de ART inválido.")
		return
	}

	if err := h.service.DeleteART(r.Context(), id); err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "ART excluída."})
}

// --- medições ---

// ListMedicoes handles GET /obras/medicoes
func (h *ObrasHandler) ListMedicoes(w http.ResponseWriter, r *http.Request) {
	medicoes, err := h.service.ListMedicoes(r.Context(), QueryInt(r, "obra"))
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, medicoes)
}

// GetMedicao handles GET /obras/medicoes/{id}
func (h *ObrasHandler) GetMedicao(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamInt(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "ID de medição inválido.")
		return
	}

	m, err := h.service.GetMedicao(r.Context(), id)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, m)
}

// CreateMedicao handles POST /obras/medicoes
func (h *ObrasHandler) CreateMedicao(w http.ResponseWriter, r *http.Request) {
	var m models.Medicao
	if err := DecodeJSON(r, &m); err != nil {
		h.RespondError(w, http.StatusBadRequest, "Corpo da requisição inválido.")
		return
	}

	created, err := h.service.CreateMedicao(r.Context(), &m)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusCreated, created)
}

// UpdateMedicao handles PUT /obras/medicoes/{id}
func (h *ObrasHandler) UpdateMedicao(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamInt(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "ID de medição inválido.")
		return
	}

	var m models.Medicao
	if err := DecodeJSON(r, &m); err != nil {
		h.RespondError(w, http.StatusBadRequest, "Corpo da requisição inválido.")
		return
	}

	updated, err := h.service.UpdateMedicao(r.Context(), id, &m)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, updated)
}

// DeleteMedicao handles DELETE /obras/medicoes/{id}
func (h *ObrasHandler) DeleteMedicao(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamInt(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "ID de medição inválido.")
		return
	}

	if err := h.service.DeleteMedicao(r.Context(), id); err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "Medição excluída."})
}

// --- avanços físicos ---

// ListAvancos handles GET /obras/avancos-fisicos
func (h *ObrasHandler) ListAvancos(w http.ResponseWriter, r *http.Request) {
	avancos, err := h.service.ListAvancos(r.Context(), QueryInt(r, "obra"))
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, avancos)
}

// GetAvanco handles GET /obras/avancos-fisicos/{id}
func (h *ObrasHandler) GetAvanco(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamInt(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "ID de avanço inválido.")
		return
	}

	a, err := h.service.GetAvanco(r.Context(), id)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, a)
}

// CreateAvanco handles POST /obras/avancos-fisicos
func (h *ObrasHandler) CreateAvanco(w http.ResponseWriter, r *http.Request) {
	var a models.AvancoFisico
	if err := DecodeJSON(r, &a); err != nil {
		h.RespondError(w, http.StatusBadRequest, "Corpo da requisição inválido.")
		return
	}

	created, err := h.service.CreateAvanco(r.Context(), &a)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusCreated, created)
}

// UpdateAvanco handles PUT /obras/avancos-fisicos/{id}
func (h *ObrasHandler) UpdateAvanco(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamInt(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "ID de avanço inválido.")
		return
	}

	var a models.AvancoFisico
	if err := DecodeJSON(r, &a); err != nil {
		h.RespondError(w, http.StatusBadRequest, "Corpo da requisição inválido.")
		return
	}

	updated, err := h.service.UpdateAvanco(r.Context(), id, &a)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, updated)
}

// DeleteAvanco handles DELETE /obras/avancos-fisicos/{id}
func (h *ObrasHandler) DeleteAvanco(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamInt(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "ID de avanço inválido.")
		return
	}

	if err := h.service.DeleteAvanco(r.Context(), id); err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "Avanço físico excluído."})
}

// --- seguros ---

// ListSeguros handles GET /obras/seguros
func (h *ObrasHandler) ListSeguros(w http.ResponseWriter, r *http.Request) {
	seguros, err := h.service.ListSeguros(r.Context(), QueryInt(r, "obra"))
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, seguros)
}

// GetSeguro handles GET /obras/seguros/{id}
func (h *ObrasHandler) GetSeguro(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamInt(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "ID de seguro inválido.")
		return
	}

	s, err := h.service.GetSeguro(r.Context(), id)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, s)
}

// CreateSeguro handles POST /obras/seguros
func (h *ObrasHandler) CreateSeguro(w http.ResponseWriter, r *http.Request) {
	var s models.Seguro
	if err := DecodeJSON(r, &s); err != nil {
		h.RespondError(w, http.StatusBadRequest, "Corpo da requisição inválido.")
		return
	}

	created, err := h.service.CreateSeguro(r.Context(), &s)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusCreated, created)
}

// UpdateSeguro handles PUT /obras/seguros/{id}
func (h *ObrasHandler) UpdateSeguro(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamInt(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "ID de seguro inválido.")
		return
	}

	var s models.Seguro
	if err := DecodeJSON(r, &s); err != nil {
		h.RespondError(w, http.StatusBadRequest, "Corpo da requisição inválido.")
		return
	}

	updated, err := h.service.UpdateSeguro(r.Context(), id, &s)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, updated)
}

// DeleteSeguro handles DELETE /obras/seguros/{id}
func (h *ObrasHandler) DeleteSeguro(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamInt(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "ID de seguro inválido.")
		return
	}

	if err := h.service.DeleteSeguro(r.Context(), id); err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "Seguro excluído."})
}

// --- REIDIs ---

// ListREIDIs handles GET /obras/reidis
func (h *ObrasHandler) ListREIDIs(w http.ResponseWriter, r *http.Request) {
	reidis, err := h.service.ListREIDIs(r.Context(), QueryInt(r, "obra"))
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, reidis)
}

// GetREIDI handles GET /obras/reidis/{id}
func (h *ObrasHandler) GetREIDI(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamInt(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "ID de REIDI inválido.")
		return
	}

	re, err := h.service.GetREIDI(r.Context(), id)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, re)
}

// CreateREIDI handles POST /obras/reidis
func (h *ObrasHandler) CreateREIDI(w http.ResponseWriter, r *http.Request) {
	var re models.REIDI
	if err := DecodeJSON(r, &re); err != nil {
		h.RespondError(w, http.StatusBadRequest, "Corpo da requisição inválido.")
		return
	}

	created, err := h.service.CreateREIDI(r.Context(), &re)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusCreated, created)
}

// UpdateREIDI handles PUT /obras/reidis/{id}
func (h *ObrasHandler) UpdateREIDI(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamInt(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "ID de REIDI inválido.")
		return
	}

	var re models.REIDI
	if err := DecodeJSON(r, &re); err != nil {
		h.RespondError(w, http.StatusBadRequest, "Corpo da requisição inválido.")
		return
	}

	updated, err := h.service.UpdateREIDI(r.Context(), id, &re)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, updated)
}

// DeleteREIDI handles DELETE /obras/reidis/{id}
func (h *ObrasHandler) DeleteREIDI(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamInt(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "ID de REIDI inválido.")
		return
	}

	if err := h.service.DeleteREIDI(r.Context(), id); err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "REIDI excluído."})
}
