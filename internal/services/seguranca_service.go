package services

import (
	"context"
	"fmt"

	"github.com/lumob/backend/internal/models"
	"github.com/lumob/backend/internal/repositories"
)

// IncidenteRepository wraps incidente/acidente data access
type IncidenteRepository interface {
	List(ctx context.Context, filter repositories.IncidenteFilter) ([]models.IncidenteAcidente, error)
	GetByID(ctx context.Context, id int) (*models.IncidenteAcidente, error)
	Create(ctx context.Context, i *models.IncidenteAcidente) error
	Update(ctx context.Context, i *models.IncidenteAcidente) error
	Delete(ctx context.Context, id int) error
	TipoCounts(ctx context.Context) (map[string]int, error)
	StatusCounts(ctx context.Context) (map[string]int, error)
	MonthCounts(ctx context.Context) ([]models.RegistroMensal, error)
}

// ASORepository wraps ASO data access
type ASORepository interface {
	List(ctx context.Context, filter repositories.ASOFilter) ([]models.ASO, error)
	GetByID(ctx context.Context, id int) (*models.ASO, error)
	Create(ctx context.Context, a *models.ASO) error
	Update(ctx context.Context, a *models.ASO) error
	Delete(ctx context.Context, id int) error
}

// TreinamentoRepository wraps the treinamento catalog, turmas and participações
type TreinamentoRepository interface {
	List(ctx context.Context) ([]models.Treinamento, error)
	GetByID(ctx context.Context, id int) (*models.Treinamento, error)
	ExistsNome(ctx context.Context, nome string, excludeID int) (bool, error)
	Create(ctx context.Context, t *models.Treinamento) error
	Update(ctx context.Context, t *models.Treinamento) error
	Delete(ctx context.Context, id int) error

	ListAgendamentos(ctx context.Context, treinamentoID int) ([]models.TreinamentoAgendamento, error)
	GetAgendamentoByID(ctx context.Context, id int) (*models.TreinamentoAgendamento, error)
	CreateAgendamento(ctx context.Context, ag *models.TreinamentoAgendamento) error
	UpdateAgendamento(ctx context.Context, ag *models.TreinamentoAgendamento) error
	DeleteAgendamento(ctx context.Context, id int) error

	ListParticipantes(ctx context.Context, agendamentoID int) ([]models.TreinamentoParticipante, error)
	GetParticipanteByID(ctx context.Context, id int) (*models.TreinamentoParticipante, error)
	ExistsParticipante(ctx context.Context, agendamentoID int, matricula string) (bool, error)
	CreateParticipante(ctx context.Context, p *models.TreinamentoParticipante) error
	UpdateParticipante(ctx context.Context, p *models.TreinamentoParticipante) error
	DeleteParticipante(ctx context.Context, id int) error
}

// SegurancaFuncionarioRepository wraps the funcionario lookup needed to
// validate matriculas referenced by safety records
type SegurancaFuncionarioRepository interface {
	GetByMatricula(ctx context.Context, matricula string) (*models.Funcionario, error)
}

// segurancaService implements the occupational safety module operations
type segurancaService struct {
	incidenteRepo   IncidenteRepository
	asoRepo         ASORepository
	treinamentoRepo TreinamentoRepository
	funcionarioRepo SegurancaFuncionarioRepository
}

// NewSegurancaService creates a new segurança service
func NewSegurancaService(
	incidenteRepo IncidenteRepository,
	asoRepo ASORepository,
	treinamentoRepo TreinamentoRepository,
	funcionarioRepo SegurancaFuncionarioRepository,
) *segurancaService {
	return &segurancaService{
		incidenteRepo:   incidenteRepo,
		asoRepo:         asoRepo,
		treinamentoRepo: treinamentoRepo,
		funcionarioRepo: funcionarioRepo,
	}
}

func (s *segurancaService) checkMatricula(ctx context.Context, matricula string) error {
	f, err := s.funcionarioRepo.GetByMatricula(ctx, matricula)
	if err != nil {
		return fmt.Errorf("failed to check matricula: %w", err)
	}
	if f == nil {
		return NotFound(fmt.Sprintf("Funcionário '%s' não encontrado.", matricula))
	}
	return nil
}

// --- incidentes e acidentes ---

// ListIncidentes returns registros matching the optional filters
func (s *segurancaService) ListIncidentes(ctx context.Context, filter repositories.IncidenteFilter) ([]models.IncidenteAcidente, error) {
	return s.incidenteRepo.List(ctx, filter)
}

// GetIncidente returns one registro
func (s *segurancaService) GetIncidente(ctx context.Context, id int) (*models.IncidenteAcidente, error) {
	i, err := s.incidenteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get incidente: %w", err)
	}
	if i == nil {
		return nil, NotFound("Registro não encontrado.")
	}
	return i, nil
}

func (s *segurancaService) validateIncidente(ctx context.Context, i *models.IncidenteAcidente) error {
	if i.TipoRegistro != models.RegistroIncidente && i.TipoRegistro != models.RegistroAcidente {
		return Invalid("Tipo de registro deve ser 'Incidente' ou 'Acidente'.")
	}
	if i.DataHoraOcorrencia.IsZero() || i.LocalOcorrencia == "" || i.DescricaoResumida == "" {
		return Invalid("Data/hora, local e descrição da ocorrência são obrigatórios.")
	}
	if i.ResponsavelMatricula != "" {
		if err := s.checkMatricula(ctx, i.ResponsavelMatricula); err != nil {
			return err
		}
	}
	return nil
}

// CreateIncidente registers an incidente/acidente
func (s *segurancaService) CreateIncidente(ctx context.Context, i *models.IncidenteAcidente) (*models.IncidenteAcidente, error) {
	if err := s.validateIncidente(ctx, i); err != nil {
		return nil, err
	}
	if i.StatusRegistro == "" {
		i.StatusRegistro = "Aberto"
	}
	if err := s.incidenteRepo.Create(ctx, i); err != nil {
		return nil, fmt.Errorf("failed to create incidente: %w", err)
	}
	return i, nil
}

// UpdateIncidente updates an incidente/acidente
func (s *segurancaService) UpdateIncidente(ctx context.Context, id int, i *models.IncidenteAcidente) (*models.IncidenteAcidente, error) {
	if _, err := s.GetIncidente(ctx, id); err != nil {
		return nil, err
	}
	if err := s.validateIncidente(ctx, i); err != nil {
		return nil, err
	}
	i.ID = id
	if err := s.incidenteRepo.Update(ctx, i); err != nil {
		return nil, fmt.Errorf("failed to update incidente: %w", err)
	}
	return i, nil
}

// DeleteIncidente removes an incidente/acidente
func (s *segurancaService) DeleteIncidente(ctx context.Context, id int) error {
	if _, err := s.GetIncidente(ctx, id); err != nil {
		return err
	}
	return s.incidenteRepo.Delete(ctx, id)
}

// Dashboard aggregates the safety landing page counters
func (s *segurancaService) Dashboard(ctx context.Context) (*models.SegurancaDashboard, error) {
	porTipo, err := s.incidenteRepo.TipoCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count registros by tipo: %w", err)
	}

	porStatus, err := s.incidenteRepo.StatusCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count registros by status: %w", err)
	}

	porMes, err := s.incidenteRepo.MonthCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count registros by month: %w", err)
	}

	total := 0
	for _, c := range porTipo {
		total += c
	}

	return &models.SegurancaDashboard{
		TotalRegistros:     total,
		RegistrosPorTipo:   porTipo,
		RegistrosPorStatus: porStatus,
		RegistrosPorMes:    porMes,
	}, nil
}

// --- ASOs ---

// ListASOs returns ASOs matching the optional filters
func (s *segurancaService) ListASOs(ctx context.Context, filter repositories.ASOFilter) ([]models.ASO, error) {
	return s.asoRepo.List(ctx, filter)
}

// GetASO returns one ASO
func (s *segurancaService) GetASO(ctx context.Context, id int) (*models.ASO, error) {
	a, err := s.asoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get aso: %w", err)
	}
	if a == nil {
		return nil, NotFound("ASO não encontrado.")
	}
	return a, nil
}

func (s *segurancaService) validateASO(ctx context.Context, a *models.ASO) error {
	if a.MatriculaFuncionario == "" || a.TipoASO == "" || a.DataEmissao.IsZero() {
		return Invalid("Matrícula, tipo e data de emissão do ASO são obrigatórios.")
	}
	if a.DataVencimento != nil && a.DataVencimento.Before(a.DataEmissao) {
		return Invalid("Data de vencimento do ASO anterior à emissão.")
	}
	return s.checkMatricula(ctx, a.MatriculaFuncionario)
}

// CreateASO registers an ASO
func (s *segurancaService) CreateASO(ctx context.Context, a *models.ASO) (*models.ASO, error) {
	if err := s.validateASO(ctx, a); err != nil {
		return nil, err
	}
	if err := s.asoRepo.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("failed to create aso: %w", err)
	}
	return a, nil
}

// UpdateASO updates an ASO
func (s *segurancaService) UpdateASO(ctx context.Context, id int, a *models.ASO) (*models.ASO, error) {
	if _, err := s.GetASO(ctx, id); err != nil {
		return nil, err
	}
	if err := s.validateASO(ctx, a); err != nil {
		return nil, err
	}
	a.ID = id
	if err := s.asoRepo.Update(ctx, a); err != nil {
		return nil, fmt.Errorf("failed to update aso: %w", err)
	}
	return a, nil
}

// DeleteASO removes an ASO
func (s *segurancaService) DeleteASO(ctx context.Context, id int) error {
	if _, err := s.GetASO(ctx, id); err != nil {
		return err
	}
	return s.asoRepo.Delete(ctx, id)
}

// --- treinamentos ---

// ListTreinamentos returns the treinamento catalog
func (s *segurancaService) ListTreinamentos(ctx context.Context) ([]models.Treinamento, error) {
	return s.treinamentoRepo.List(ctx)
}

// GetTreinamento returns one treinamento
func (s *segurancaService) GetTreinamento(ctx context.Context, id int) (*models.Treinamento, error) {
	t, err := s.treinamentoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get treinamento: %w", err)
	}
	if t == nil {
		return nil, NotFound("Treinamento não encontrado.")
	}
	return t, nil
}

func (s *segurancaService) validateTreinamento(ctx context.Context, t *models.Treinamento, excludeID int) error {
	if t.NomeTreinamento == "" {
		return Invalid("Nome do treinamento é obrigatório.")
	}
	if t.CargaHorariaHoras <= 0 {
		return Invalid("Carga horária deve ser maior que zero.")
	}
	exists, err := s.treinamentoRepo.ExistsNome(ctx, t.NomeTreinamento, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check treinamento nome: %w", err)
	}
	if exists {
		return Conflict(fmt.Sprintf("Treinamento '%s' já existe.", t.NomeTreinamento))
	}
	return nil
}

// CreateTreinamento registers a treinamento after checking the name is free
func (s *segurancaService) CreateTreinamento(ctx context.Context, t *models.Treinamento) (*models.Treinamento, error) {
	if err := s.validateTreinamento(ctx, t, 0); err != nil {
		return nil, err
	}
	if err := s.treinamentoRepo.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to create treinamento: %w", err)
	}
	return t, nil
}

// UpdateTreinamento updates a treinamento keeping the name unique
func (s *segurancaService) UpdateTreinamento(ctx context.Context, id int, t *models.Treinamento) (*models.Treinamento, error) {
	if _, err := s.GetTreinamento(ctx, id); err != nil {
		return nil, err
	}
	if err := s.validateTreinamento(ctx, t, id); err != nil {
		return nil, err
	}
	t.ID = id
	if err := s.treinamentoRepo.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to update treinamento: %w", err)
	}
	return t, nil
}

// DeleteTreinamento removes a treinamento
func (s *segurancaService) DeleteTreinamento(ctx context.Context, id int) error {
	if _, err := s.GetTreinamento(ctx, id); err != nil {
		return err
	}
	return s.treinamentoRepo.Delete(ctx, id)
}

// --- agendamentos ---

// ListAgendamentos returns turmas, optionally filtered by treinamento
func (s *segurancaService) ListAgendamentos(ctx context.Context, treinamentoID int) ([]models.TreinamentoAgendamento, error) {
	return s.treinamentoRepo.ListAgendamentos(ctx, treinamentoID)
}

// GetAgendamento returns one turma
func (s *segurancaService) GetAgendamento(ctx context.Context, id int) (*models.TreinamentoAgendamento, error) {
	ag, err := s.treinamentoRepo.GetAgendamentoByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get agendamento: %w", err)
	}
	if ag == nil {
		return nil, NotFound("Agendamento não encontrado.")
	}
	return ag, nil
}

func (s *segurancaService) validateAgendamento(ctx context.Context, ag *models.TreinamentoAgendamento) error {
	if _, err := s.GetTreinamento(ctx, ag.IDTreinamento); err != nil {
		return err
	}
	if ag.DataHoraInicio.IsZero() || ag.DataHoraFim.IsZero() {
		return Invalid("Data/hora de início e fim da turma são obrigatórias.")
	}
	if !ag.DataHoraFim.After(ag.DataHoraInicio) {
		return Invalid("O fim da turma deve ser posterior ao início.")
	}
	return nil
}

// CreateAgendamento schedules a turma
func (s *segurancaService) CreateAgendamento(ctx context.Context, ag *models.TreinamentoAgendamento) (*models.TreinamentoAgendamento, error) {
	if err := s.validateAgendamento(ctx, ag); err != nil {
		return nil, err
	}
	if ag.StatusAgendamento == "" {
		ag.StatusAgendamento = "Agendado"
	}
	if err := s.treinamentoRepo.CreateAgendamento(ctx, ag); err != nil {
		return nil, fmt.Errorf("failed to create agendamento: %w", err)
	}
	return ag, nil
}

// UpdateAgendamento updates a turma
func (s *segurancaService) UpdateAgendamento(ctx context.Context, id int, ag *models.TreinamentoAgendamento) (*models.TreinamentoAgendamento, error) {
	if _, err := s.GetAgendamento(ctx, id); err != nil {
		return nil, err
	}
	if err := s.validateAgendamento(ctx, ag); err != nil {
		return nil, err
	}
	ag.ID = id
	if err := s.treinamentoRepo.UpdateAgendamento(ctx, ag); err != nil {
		return nil, fmt.Errorf("failed to update agendamento: %w", err)
	}
	return ag, nil
}

// DeleteAgendamento removes a turma and its participações
func (s *segurancaService) DeleteAgendamento(ctx context.Context, id int) error {
	if _, err := s.GetAgendamento(ctx, id); err != nil {
		return err
	}
	return s.treinamentoRepo.DeleteAgendamento(ctx, id)
}

// --- participantes ---

// ListParticipantes returns the participações of a turma
func (s *segurancaService) ListParticipantes(ctx context.Context, agendamentoID int) ([]models.TreinamentoParticipante, error) {
	if _, err := s.GetAgendamento(ctx, agendamentoID); err != nil {
		return nil, err
	}
	return s.treinamentoRepo.ListParticipantes(ctx, agendamentoID)
}

// GetParticipante returns one participação
func (s *segurancaService) GetParticipante(ctx context.Context, id int) (*models.TreinamentoParticipante, error) {
	p, err := s.treinamentoRepo.GetParticipanteByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get participante: %w", err)
	}
	if p == nil {
		return nil, NotFound("Participante não encontrado.")
	}
	return p, nil
}

// CreateParticipante enrolls a funcionario in a turma, once per turma
func (s *segurancaService) CreateParticipante(ctx context.Context, p *models.TreinamentoParticipante) (*models.TreinamentoParticipante, error) {
	if _, err := s.GetAgendamento(ctx, p.IDAgendamento); err != nil {
		return nil, err
	}
	if err := s.checkMatricula(ctx, p.MatriculaFuncionario); err != nil {
		return nil, err
	}

	exists, err := s.treinamentoRepo.ExistsParticipante(ctx, p.IDAgendamento, p.MatriculaFuncionario)
	if err != nil {
		return nil, fmt.Errorf("failed to check participante: %w", err)
	}
	if exists {
		return nil, Conflict("Funcionário já inscrito nesta turma.")
	}

	if err := s.treinamentoRepo.CreateParticipante(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create participante: %w", err)
	}
	return p, nil
}

// UpdateParticipante updates presença, nota and certificado of a participação
func (s *segurancaService) UpdateParticipante(ctx context.Context, id int, p *models.TreinamentoParticipante) (*models.TreinamentoParticipante, error) {
	current, err := s.GetParticipante(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.NotaAvaliacao != nil && (*p.NotaAvaliacao < 0 || *p.NotaAvaliacao > 10) {
		return nil, Invalid("Nota de avaliação deve estar entre 0 e 10.")
	}

	p.ID = id
	p.IDAgendamento = current.IDAgendamento
	p.MatriculaFuncionario = current.MatriculaFuncionario
	if err := s.treinamentoRepo.UpdateParticipante(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to update participante: %w", err)
	}
	return p, nil
}

// DeleteParticipante removes a participação
func (s *segurancaService) DeleteParticipante(ctx context.Context, id int) error {
	if _, err := s.GetParticipante(ctx, id); err != nil {
		return err
	}
	return s.treinamentoRepo.DeleteParticipante(ctx, id)
}
