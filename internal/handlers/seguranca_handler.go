package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/lumob/backend/internal/models"
	"github.com/lumob/backend/internal/repositories"
)

// SegurancaService is the interface that wraps the workplace safety module operations
type SegurancaService interface {
	Dashboard(ctx context.Context) (*models.SegurancaDashboard, error)

	ListIncidentes(ctx context.Context, filter repositories.IncidenteFilter) ([]models.IncidenteAcidente, error)
	GetIncidente(ctx context.Context, id int) (*models.IncidenteAcidente, error)
	CreateIncidente(ctx context.Context, i *models.IncidenteAcidente) (*models.IncidenteAcidente, error)
	UpdateIncidente(ctx context.Context, id int, i *models.IncidenteAcidente) (*models.IncidenteAcidente, error)
	DeleteIncidente(ctx context.Context, id int) error

	ListASOs(ctx context.Context, filter repositories.ASOFilter) ([]models.ASO, error)
	GetASO(ctx context.Context, id int) (*models.ASO, error)
	CreateASO(ctx context.Context, a *models.ASO) (*models.ASO, error)
	UpdateASO(ctx context.Context, id int, a *models.ASO) (*models.ASO, error)
	DeleteASO(ctx context.Context, id int) error

	ListTreinamentos(ctx context.Context) ([]models.Treinamento, error)
	GetTreinamento(ctx context.Context, id int) (*models.Treinamento, error)
	CreateTreinamento(ctx context.Context, t *models.Treinamento) (*models.Treinamento, error)
	UpdateTreinamento(ctx context.Context, id int, t *models.Treinamento) (*models.Treinamento, error)
	DeleteTreinamento(ctx context.Context, id int) error

	ListAgendamentos(ctx context.Context, treinamentoID int) ([]models.TreinamentoAgendamento, error)
	GetAgendamento(ctx context.Context, id int) (*models.TreinamentoAgendamento, error)
	CreateAgendamento(ctx context.Context, ag *models.TreinamentoAgendamento) (*models.TreinamentoAgendamento, error)
	UpdateAgendamento(ctx context.Context, id int, ag *models.TreinamentoAgendamento) (*models.TreinamentoAgendamento, error)
	DeleteAgendamento(ctx context.Context, id int) error

	ListParticipantes(ctx context.Context, agendamentoID int) ([]models.TreinamentoParticipante, error)
	GetParticipante(ctx context.Context, id int) (*models.TreinamentoParticipante, error)
	CreateParticipante(ctx context.Context, p *models.TreinamentoParticipante) (*models.TreinamentoParticipante, error)
	UpdateParticipante(ctx context.Context, id int, p *models.TreinamentoParticipante) (*models.TreinamentoParticipante, error)
	DeleteParticipante(ctx context.Context, id int) error
}

// SegurancaHandler handles the workplace safety module HTTP requests
type SegurancaHandler struct {
	BaseHandler
	service SegurancaService
}

// NewSegurancaHandler creates a new seguranca handler
func NewSegurancaHandler(svc SegurancaService, logger *zap.Logger) *SegurancaHandler {
	return &SegurancaHandler{
		service:     svc,
		BaseHandler: BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers the seguranca module routes. The caller mounts
// these behind the Seguranca module gate.
func (h *SegurancaHandler) RegisterRoutes(r chi.Router) {
	r.Route("/seguranca", func(r chi.Router) {
		r.Get("/dashboard", h.Dashboard)

		r.Route("/incidentes", func(r chi.Router) {
			r.Get("/", h.ListIncidentes)
			r.Post("/", h.CreateIncidente)
			r.Get("/{id}", h.GetIncidente)
			r.Put("/{id}", h.UpdateIncidente)
			r.Delete("/{id}", h.DeleteIncidente)
		})

		r.Route("/asos", func(r chi.Router) {
			r.Get("/", h.ListASOs)
			r.Post("/", h.CreateASO)
			r.Get("/{id}", h.GetASO)
			r.Put("/{id}", h.UpdateASO)
			r.Delete("/{id}", h.DeleteASO)
		})

		r.Route("/treinamentos", func(r chi.Router) {
			r.Get("/", h.ListTreinamentos)
			r.Post("/", h.CreateTreinamento)
			r.Get("/{id}", h.GetTreinamento)
			r.Put("/{id}", h.UpdateTreinamento)
			r.Delete("/{id}", h.DeleteTreinamento)
			r.Get("/{id}/agendamentos", h.ListAgendamentosByTreinamento)
		})

		r.Route("/agendamentos", func(r chi.Router) {
			r.Get("/", h.ListAgendamentos)
			r.Post("/", h.CreateAgendamento)
			r.Get("/{id}", h.GetAgendamento)
			r.Put("/{id}", h.UpdateAgendamento)
			r.Delete("/{id}", h.DeleteAgendamento)
			r.Get("/{id}/participantes", h.ListParticipantes)
		})

		r.Route("/participantes", func(r chi.Router) {
			r.Post("/", h.CreateParticipante)
			r.Get("/{id}", h.GetParticipante)
			r.Put("/{id}", h.UpdateParticipante)
			r.Delete("/{id}", h.DeleteParticipante)
		})
	})
}

// Dashboard handles GET /seguranca/dashboard
func (h *SegurancaHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.service.Dashboard(r.Context())
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, dashboard)
}

// --- incidentes e acidentes ---

// ListIncidentes handles GET /seguranca/incidentes
func (h *SegurancaHandler) ListIncidentes(w http.ResponseWriter, r *http.Request) {
	filter := repositories.IncidenteFilter{
		Tipo:                 r.URL.Query().Get("tipo"),
		Status:               r.URL.Query().Get("status"),
		ObraID:               QueryInt(r, "obra"),
		ResponsavelMatricula: r.URL.Query().Get("responsavel"),
	}

	incidentes, err := h.service.ListIncidentes(r.Context(), filter)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, incidentes)
}

// GetIncidente handles GET /seguranca/incidentes/{id}
func (h *SegurancaHandler) GetIncidente(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamInt(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "ID de ocorrência inválido.")
		return
	}

	i, err := h.service.GetIncidente(r.Context(), id)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, i)
}

// CreateIncidente handles POST /seguranca/incidentes
func (h *SegurancaHandler) CreateIncidente(w http.ResponseWriter, r *http.Request) {
	var i models.IncidenteAcidente
	if err := DecodeJSON(r, &i); err != nil {
		h.RespondError(w, http.StatusBadRequest, "Corpo da requisição inválido.")
		return
	}

	created, err := h.service.CreateIncidente(r.Context(), &i)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusCreated, created)
}

// UpdateIncidente handles PUT /seguranca/incidentes/{id}
func (h *SegurancaHandler) UpdateIncidente(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamInt(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "ID de ocorrência inválido.")
		return
	}

	var i models.IncidenteAcidente
	if err := DecodeJSON(r, &i); err != nil {
		h.RespondError(w, http.StatusBadRequest, "Corpo da requisição inválido.")
		return
	}

	updated, err := h.service.UpdateIncidente(r.Context(), id, &i)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, updated)
}

// DeleteIncidente handles DELETE /seguranca/incidentes/{id}
func (h *SegurancaHandler) DeleteIncidente(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamInt(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "ID de ocorrência inválido.")
		return
	}

	if err := h.service.DeleteIncidente(r.Context(), id); err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "Ocorrência excluída."})
}

// --- ASOs ---

// ListASOs handles GET /seguranca/asos
func (h *SegurancaHandler) ListASOs(w http.ResponseWriter, r *http.Request) {
	filter := repositories.ASOFilter{
		Matricula:     r.URL.Query().Get("matricula"),
		Tipo:          r.URL.Query().Get("tipo"),
		Resultado:     r.URL.Query().Get("resultado"),
		EmissaoInicio: r.URL.Query().Get("emissao_inicio"),
		EmissaoFim:    r.URL.Query().Get("emissao_fim"),
	}

	asos, err := h.service.ListASOs(r.Context(), filter)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, asos)
}

// GetASO handles GET /seguranca/asos/{id}
func (h *SegurancaHandler) GetASO(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamInt(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "ID de ASO inválido.")
		return
	}

	a, err := h.service.GetASO(r.Context(), id)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, a)
}

// CreateASO handles POST /seguranca/asos
func (h *SegurancaHandler) CreateASO(w http.ResponseWriter, r *http.Request) {
	var a models.ASO
	if err := DecodeJSON(r, &a); err != nil {
		h.RespondError(w, http.StatusBadRequest, "Corpo da requisição inválido.")
		return
	}

	created, err := h.service.CreateASO(r.Context(), &a)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusCreated, created)
}

// UpdateASO handles PUT /seguranca/asos/{id}
func (h *SegurancaHandler) UpdateASO(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamInt(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "ID de ASO inválido.")
		return
	}

	var a models.ASO
	if err := DecodeJSON(r, &a); err != nil {
		h.RespondError(w, http.StatusBadRequest, "Corpo da requisição inválido.")
		return
	}

	updated, err := h.service.UpdateASO(r.Context(), id, &a)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, updated)
}

// DeleteASO handles DELETE /seguranca/asos/{id}
func (h *SegurancaHandler) DeleteASO(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamInt(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "ID de ASO inválido.")
		return
	}

	if err := h.service.DeleteASO(r.Context(), id); err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "ASO excluído."})
}

// --- treinamentos ---

// ListTreinamentos handles GET /seguranca/treinamentos
func (h *SegurancaHandler) ListTreinamentos(w http.ResponseWriter, r *http.Request) {
	treinamentos, err := h.service.ListTreinamentos(r.Context())
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, treinamentos)
}

// GetTreinamento handles GET /seguranca/treinamentos/{id}
func (h *SegurancaHandler) GetTreinamento(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamInt(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "ID de treinamento inválido.")
		return
	}

	t, err := h.service.GetTreinamento(r.Context(), id)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, t)
}

// CreateTreinamento handles POST /seguranca/treinamentos
func (h *SegurancaHandler) CreateTreinamento(w http.ResponseWriter, r *http.Request) {
	var t models.Treinamento
	if err := DecodeJSON(r, &t); err != nil {
		h.RespondError(w, http.StatusBadRequest, "Corpo da requisição inválido.")
		return
	}

	created, err := h.service.CreateTreinamento(r.Context(), &t)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusCreated, created)
}

// UpdateTreinamento handles PUT /seguranca/treinamentos/{id}
func (h *SegurancaHandler) UpdateTreinamento(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamInt(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "ID de treinamento inválido.")
		return
	}

	var t models.Treinamento
	if err := DecodeJSON(r, &t); err != nil {
		h.RespondError(w, http.StatusBadRequest, "Corpo da requisição inválido.")
		return
	}

	updated, err := h.service.UpdateTreinamento(r.Context(), id, &t)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, updated)
}

// DeleteTreinamento handles DELETE /seguranca/treinamentos/{id}
func (h *SegurancaHandler) DeleteTreinamento(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamInt(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "ID de treinamento inválido.")
		return
	}

	if err := h.service.DeleteTreinamento(r.Context(), id); err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "Treinamento excluído."})
}

// ListAgendamentosByTreinamento handles GET /seguranca/treinamentos/{id}/agendamentos
func (h *SegurancaHandler) ListAgendamentosByTreinamento(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamInt(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "ID de treinamento inválido.")
		return
	}

	agendamentos, err := h.service.ListAgendamentos(r.Context(), id)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, agendamentos)
}

// --- agendamentos ---

// ListAgendamentos handles GET /seguranca/agendamentos
func (h *SegurancaHandler) ListAgendamentos(w http.ResponseWriter, r *http.Request) {
	agendamentos, err := h.service.ListAgendamentos(r.Context(), QueryInt(r, "treinamento"))
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, agendamentos)
}

// GetAgendamento handles GET /seguranca/agendamentos/{id}
func (h *SegurancaHandler) GetAgendamento(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamInt(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "ID de agendamento inválido.")
		return
	}

	ag, err := h.service.GetAgendamento(r.Context(), id)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, ag)
}

// CreateAgendamento handles POST /seguranca/agendamentos
func (h *SegurancaHandler) CreateAgendamento(w http.ResponseWriter, r *http.Request) {
	var ag models.TreinamentoAgendamento
	if err := DecodeJSON(r, &ag); err != nil {
		h.RespondError(w, http.StatusBadRequest, "Corpo da requisição inválido.")
		return
	}

	created, err := h.service.CreateAgendamento(r.Context(), &ag)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusCreated, created)
}

// UpdateAgendamento handles PUT /seguranca/agendamentos/{id}
func (h *SegurancaHandler) UpdateAgendamento(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamInt(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "ID de agendamento inválido.")
		return
	}

	var ag models.TreinamentoAgendamento
	if err := DecodeJSON(r, &ag); err != nil {
		h.RespondError(w, http.StatusBadRequest, "Corpo da requisição inválido.")
		return
	}

	updated, err := h.service.UpdateAgendamento(r.Context(), id, &ag)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, updated)
}

// DeleteAgendamento handles DELETE /seguranca/agendamentos/{id}. Removing an
// agendamento also removes its participantes.
func (h *SegurancaHandler) DeleteAgendamento(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamInt(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "ID de agendamento inválido.")
		return
	}

	if err := h.service.DeleteAgendamento(r.Context(), id); err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "Agendamento excluído."})
}

// --- participantes ---

// ListParticipantes handles GET /seguranca/agendamentos/{id}/participantes
func (h *SegurancaHandler) ListParticipantes(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamInt(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "ID de agendamento inválido.")
		return
	}

	participantes, err := h.service.ListParticipantes(r.Context(), id)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, participantes)
}

// GetParticipante handles GET /seguranca/participantes/{id}
func (h *SegurancaHandler) GetParticipante(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamInt(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "ID de participante inválido.")
		return
	}

	p, err := h.service.GetParticipante(r.Context(), id)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, p)
}

// CreateParticipante handles POST /seguranca/participantes
func (h *SegurancaHandler) CreateParticipante(w http.ResponseWriter, r *http.Request) {
	var p models.TreinamentoParticipante
	if err := DecodeJSON(r, &p); err != nil {
		h.RespondError(w, http.StatusBadRequest, "Corpo da requisição inválido.")
		return
	}

	created, err := h.service.CreateParticipante(r.Context(), &p)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusCreated, created)
}

// UpdateParticipante handles PUT /seguranca/participantes/{id}
func (h *SegurancaHandler) UpdateParticipante(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamInt(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "ID de participante inválido.")
		return
	}

	var p models.TreinamentoParticipante
	if err := DecodeJSON(r, &p); err != nil {
		h.RespondError(w, http.StatusBadRequest, "Corpo da requisição inválido.")
		return
	}

	updated, err := h.service.UpdateParticipante(r.Context(), id, &p)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, updated)
}

// DeleteParticipante handles DELETE /seguranca/participantes/{id}
func (h *SegurancaHandler) DeleteParticipante(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamInt(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "ID de participante inválido.")
		return
	}

	if err := h.service.DeleteParticipante(r.Context(), id); err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "Participante excluído."})
}
