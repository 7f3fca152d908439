package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumob/backend/internal/models"
	"github.com/lumob/backend/internal/repositories"
)

type mockIncidenteRepository struct {
	porID        map[int]*models.IncidenteAcidente
	tipoCounts   map[string]int
	statusCounts map[string]int
	monthCounts  []models.RegistroMensal
	created      *models.IncidenteAcidente
	updated      *models.IncidenteAcidente
	deleted      int
}

func (m *mockIncidenteRepository) List(ctx context.Context, filter repositories.IncidenteFilter) ([]models.IncidenteAcidente, error) {
	return nil, nil
}

func (m *mockIncidenteRepository) GetByID(ctx context.Context, id int) (*models.IncidenteAcidente, error) {
	return m.porID[id], nil
}

func (m *mockIncidenteRepository) Create(ctx context.Context, i *models.IncidenteAcidente) error {
	m.created = i
	return nil
}

func (m *mockIncidenteRepository) Update(ctx context.Context, i *models.IncidenteAcidente) error {
	m.updated = i
	return nil
}

func (m *mockIncidenteRepository) Delete(ctx context.Context, id int) error {
	m.deleted = id
	return nil
}

func (m *mockIncidenteRepository) TipoCounts(ctx context.Context) (map[string]int, error) {
	return m.tipoCounts, nil
}

func (m *mockIncidenteRepository) StatusCounts(ctx context.Context) (map[string]int, error) {
	return m.statusCounts, nil
}

func (m *mockIncidenteRepository) MonthCounts(ctx context.Context) ([]models.RegistroMensal, error) {
	return m.monthCounts, nil
}

type mockASORepository struct {
	porID   map[int]*models.ASO
	created *models.ASO
	updated *models.ASO
	deleted int
}

func (m *mockASORepository) List(ctx context.Context, filter repositories.ASOFilter) ([]models.ASO, error) {
	return nil, nil
}

func (m *mockASORepository) GetByID(ctx context.Context, id int) (*models.ASO, error) {
	return m.porID[id], nil
}

func (m *mockASORepository) Create(ctx context.Context, a *models.ASO) error {
	m.created = a
	return nil
}

func (m *mockASORepository) Update(ctx context.Context, a *models.ASO) error {
	m.updated = a
	return nil
}

func (m *mockASORepository) Delete(ctx context.Context, id int) error {
	m.deleted = id
	return nil
}

type mockTreinamentoRepository struct {
	treinamentos       map[int]*models.Treinamento
	nomeExists         bool
	agendamentos       map[int]*models.TreinamentoAgendamento
	participantes      map[int]*models.TreinamentoParticipante
	participanteExists bool
	createdTreinamento *models.Treinamento
	createdAgendamento *models.TreinamentoAgendamento
	createdPart        *models.TreinamentoParticipante
	updatedPart        *models.TreinamentoParticipante
	deletedAgendamento int
}

func (m *mockTreinamentoRepository) List(ctx context.Context) ([]models.Treinamento, error) {
	return nil, nil
}

func (m *mockTreinamentoRepository) GetByID(ctx context.Context, id int) (*models.Treinamento, error) {
	return m.treinamentos[id], nil
}

func (m *mockTreinamentoRepository) ExistsNome(ctx context.Context, nome string, excludeID int) (bool, error) {
	return m.nomeExists, nil
}

func (m *mockTreinamentoRepository) Create(ctx context.Context, t *models.Treinamento) error {
	m.createdTreinamento = t
	return nil
}

func (m *mockTreinamentoRepository) Update(ctx context.Context, t *models.Treinamento) error {
	return nil
}

func (m *mockTreinamentoRepository) Delete(ctx context.Context, id int) error {
	return nil
}

func (m *mockTreinamentoRepository) ListAgendamentos(ctx context.Context, treinamentoID int) ([]models.TreinamentoAgendamento, error) {
	return nil, nil
}

func (m *mockTreinamentoRepository) GetAgendamentoByID(ctx context.Context, id int) (*models.TreinamentoAgendamento, error) {
	return m.agendamentos[id], nil
}

func (m *mockTreinamentoRepository) CreateAgendamento(ctx context.Context, ag *models.TreinamentoAgendamento) error {
	m.createdAgendamento = ag
	return nil
}

func (m *mockTreinamentoRepository) UpdateAgendamento(ctx context.Context, ag *models.TreinamentoAgendamento) error {
	return nil
}

func (m *mockTreinamentoRepository) DeleteAgendamento(ctx context.Context, id int) error {
	m.deletedAgendamento = id
	return nil
}

func (m *mockTreinamentoRepository) ListParticipantes(ctx context.Context, agendamentoID int) ([]models.TreinamentoParticipante, error) {
	return nil, nil
}

func (m *mockTreinamentoRepository) GetParticipanteByID(ctx context.Context, id int) (*models.TreinamentoParticipante, error) {
	return m.participantes[id], nil
}

func (m *mockTreinamentoRepository) ExistsParticipante(ctx context.Context, agendamentoID int, matricula string) (bool, error) {
	return m.participanteExists, nil
}

func (m *mockTreinamentoRepository) CreateParticipante(ctx context.Context, p *models.TreinamentoParticipante) error {
	m.createdPart = p
	return nil
}

func (m *mockTreinamentoRepository) UpdateParticipante(ctx context.Context, p *models.TreinamentoParticipante) error {
	m.updatedPart = p
	return nil
}

func (m *mockTreinamentoRepository) DeleteParticipante(ctx context.Context, id int) error {
	return nil
}

type mockSegurancaFuncionarioRepository struct {
	funcionarios map[string]*models.Funcionario
}

func (m *mockSegurancaFuncionarioRepository) GetByMatricula(ctx context.Context, matricula string) (*models.Funcionario, error) {
	return m.funcionarios[matricula], nil
}

func newSegurancaTestService(
	incidenteRepo *mockIncidenteRepository,
	asoRepo *mockASORepository,
	treinamentoRepo *mockTreinamentoRepository,
) *segurancaService {
	funcionarioRepo := &mockSegurancaFuncionarioRepository{
		funcionarios: map[string]*models.Funcionario{
			"MATR001": ativo("MATR001", "Maria Souza"),
		},
	}
	if incidenteRepo == nil {
		incidenteRepo = &mockIncidenteRepository{}
	}
	if asoRepo == nil {
		asoRepo = &mockASORepository{}
	}
	if treinamentoRepo == nil {
		treinamentoRepo = &mockTreinamentoRepository{}
	}
	return NewSegurancaService(incidenteRepo, asoRepo, treinamentoRepo, funcionarioRepo)
}

func TestSegurancaService_CreateIncidente(t *testing.T) {
	tests := []struct {
		name      string
		incidente *models.IncidenteAcidente
		wantErr   error
	}{
		{
			name: "success defaults status to Aberto",
			incidente: &models.IncidenteAcidente{
				TipoRegistro:       models.RegistroIncidente,
				DataHoraOcorrencia: date(2026, time.March, 10),
				LocalOcorrencia:    "Canteiro - bloco B",
				DescricaoResumida:  "Queda de material do andaime.",
			},
		},
		{
			name: "unknown tipo de registro",
			incidente: &models.IncidenteAcidente{
				TipoRegistro:       "Ocorrencia",
				DataHoraOcorrencia: date(2026, time.March, 10),
				LocalOcorrencia:    "Canteiro - bloco B",
				DescricaoResumida:  "Queda de material do andaime.",
			},
			wantErr: ErrInvalid,
		},
		{
			name: "missing local",
			incidente: &models.IncidenteAcidente{
				TipoRegistro:       models.RegistroAcidente,
				DataHoraOcorrencia: date(2026, time.March, 10),
				DescricaoResumida:  "Corte na mão direita.",
			},
			wantErr: ErrInvalid,
		},
		{
			name: "responsavel matricula desconhecida",
			incidente: &models.IncidenteAcidente{
				TipoRegistro:         models.RegistroAcidente,
				DataHoraOcorrencia:   date(2026, time.March, 10),
				LocalOcorrencia:      "Canteiro - bloco B",
				DescricaoResumida:    "Corte na mão direita.",
				ResponsavelMatricula: "MATR999",
			},
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			incidenteRepo := &mockIncidenteRepository{}
			svc := newSegurancaTestService(incidenteRepo, nil, nil)

			got, err := svc.CreateIncidente(context.Background(), tt.incidente)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Aberto", got.StatusRegistro)
			assert.Equal(t, incidenteRepo.created, got)
		})
	}
}

func TestSegurancaService_Dashboard(t *testing.T) {
	incidenteRepo := &mockIncidenteRepository{
		tipoCounts:   map[string]int{"Incidente": 4, "Acidente": 2},
		statusCounts: map[string]int{"Aberto": 3, "Fechado": 3},
		monthCounts: []models.RegistroMensal{
			{AnoMes: "2026-02", Total: 4},
			{AnoMes: "2026-03", Total: 2},
		},
	}
	svc := newSegurancaTestService(incidenteRepo, nil, nil)

	got, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 6, got.TotalRegistros)
	assert.Equal(t, incidenteRepo.tipoCounts, got.RegistrosPorTipo)
	assert.Equal(t, incidenteRepo.statusCounts, got.RegistrosPorStatus)
	assert.Equal(t, incidenteRepo.monthCounts, got.RegistrosPorMes)
}

func TestSegurancaService_CreateASO(t *testing.T) {
	tests := []struct {
		name    string
		aso     *models.ASO
		wantErr error
	}{
		{
			name: "success",
			aso: &models.ASO{
				MatriculaFuncionario: "MATR001",
				TipoASO:              "Admissional",
				DataEmissao:          date(2026, time.January, 10),
				Resultado:            "Apto",
			},
		},
		{
			name: "missing tipo",
			aso: &models.ASO{
				MatriculaFuncionario: "MATR001",
				DataEmissao:          date(2026, time.January, 10),
			},
			wantErr: ErrInvalid,
		},
		{
			name: "vencimento anterior a emissao",
			aso: &models.ASO{
				MatriculaFuncionario: "MATR001",
				TipoASO:              "Periodico",
				DataEmissao:          date(2026, time.January, 10),
				DataVencimento:       datePtr(date(2025, time.December, 1)),
			},
			wantErr: ErrInvalid,
		},
		{
			name: "funcionario desconhecido",
			aso: &models.ASO{
				MatriculaFuncionario: "MATR999",
				TipoASO:              "Admissional",
				DataEmissao:          date(2026, time.January, 10),
			},
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			asoRepo := &mockASORepository{}
			svc := newSegurancaTestService(nil, asoRepo, nil)

			got, err := svc.CreateASO(context.Background(), tt.aso)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, asoRepo.created, got)
		})
	}
}

func TestSegurancaService_CreateTreinamento(t *testing.T) {
	tests := []struct {
		name        string
		treinamento *models.Treinamento
		nomeExists  bool
		wantErr     error
	}{
		{
			name: "success",
			treinamento: &models.Treinamento{
				NomeTreinamento:   "NR-35 Trabalho em Altura",
				CargaHorariaHoras: 8,
				TipoTreinamento:   "Obrigatorio",
			},
		},
		{
			name:        "carga horaria zero",
			treinamento: &models.Treinamento{NomeTreinamento: "NR-35 Trabalho em Altura"},
			wantErr:     ErrInvalid,
		},
		{
			name: "duplicate nome",
			treinamento: &models.Treinamento{
				NomeTreinamento:   "NR-35 Trabalho em Altura",
				CargaHorariaHoras: 8,
			},
			nomeExists: true,
			wantErr:    ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			treinamentoRepo := &mockTreinamentoRepository{nomeExists: tt.nomeExists}
			svc := newSegurancaTestService(nil, nil, treinamentoRepo)

			got, err := svc.CreateTreinamento(context.Background(), tt.treinamento)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, treinamentoRepo.createdTreinamento, got)
		})
	}
}

func TestSegurancaService_CreateAgendamento(t *testing.T) {
	treinamentos := map[int]*models.Treinamento{
		5: {ID: 5, NomeTreinamento: "NR-35 Trabalho em Altura", CargaHorariaHoras: 8},
	}

	tests := []struct {
		name        string
		agendamento *models.TreinamentoAgendamento
		wantErr     error
	}{
		{
			name: "success defaults status to Agendado",
			agendamento: &models.TreinamentoAgendamento{
				IDTreinamento:  5,
				DataHoraInicio: time.Date(2026, time.April, 6, 8, 0, 0, 0, time.UTC),
				DataHoraFim:    time.Date(2026, time.April, 6, 17, 0, 0, 0, time.UTC),
			},
		},
		{
			name: "treinamento desconhecido",
			agendamento: &models.TreinamentoAgendamento{
				IDTreinamento:  99,
				DataHoraInicio: time.Date(2026, time.April, 6, 8, 0, 0, 0, time.UTC),
				DataHoraFim:    time.Date(2026, time.April, 6, 17, 0, 0, 0, time.UTC),
			},
			wantErr: ErrNotFound,
		},
		{
			name: "fim antes do inicio",
			agendamento: &models.TreinamentoAgendamento{
				IDTreinamento:  5,
				DataHoraInicio: time.Date(2026, time.April, 6, 17, 0, 0, 0, time.UTC),
				DataHoraFim:    time.Date(2026, time.April, 6, 8, 0, 0, 0, time.UTC),
			},
			wantErr: ErrInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			treinamentoRepo := &mockTreinamentoRepository{treinamentos: treinamentos}
			svc := newSegurancaTestService(nil, nil, treinamentoRepo)

			got, err := svc.CreateAgendamento(context.Background(), tt.agendamento)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Agendado", got.StatusAgendamento)
		})
	}
}

func TestSegurancaService_CreateParticipante(t *testing.T) {
	agendamentos := map[int]*models.TreinamentoAgendamento{
		3: {ID: 3, IDTreinamento: 5},
	}

	tests := []struct {
		name         string
		participante *models.TreinamentoParticipante
		jaInscrito   bool
		wantErr      error
	}{
		{
			name: "success",
			participante: &models.TreinamentoParticipante{
				IDAgendamento:        3,
				MatriculaFuncionario: "MATR001",
			},
		},
		{
			name: "turma desconhecida",
			participante: &models.TreinamentoParticipante{
				IDAgendamento:        99,
				MatriculaFuncionario: "MATR001",
			},
			wantErr: ErrNotFound,
		},
		{
			name: "funcionario desconhecido",
			participante: &models.TreinamentoParticipante{
				IDAgendamento:        3,
				MatriculaFuncionario: "MATR999",
			},
			wantErr: ErrNotFound,
		},
		{
			name: "ja inscrito na turma",
			participante: &models.TreinamentoParticipante{
				IDAgendamento:        3,
				MatriculaFuncionario: "MATR001",
			},
			jaInscrito: true,
			wantErr:    ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			treinamentoRepo := &mockTreinamentoRepository{
				agendamentos:       agendamentos,
				participanteExists: tt.jaInscrito,
			}
			svc := newSegurancaTestService(nil, nil, treinamentoRepo)

			got, err := svc.CreateParticipante(context.Background(), tt.participante)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, treinamentoRepo.createdPart, got)
		})
	}
}

func TestSegurancaService_UpdateParticipante(t *testing.T) {
	nota := 11.0
	treinamentoRepo := &mockTreinamentoRepository{
		participantes: map[int]*models.TreinamentoParticipante{
			7: {ID: 7, IDAgendamento: 3, MatriculaFuncionario: "MATR001"},
		},
	}
	svc := newSegurancaTestService(nil, nil, treinamentoRepo)

	_, err := svc.UpdateParticipante(context.Background(), 7, &models.TreinamentoParticipante{NotaAvaliacao: &nota})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)

	notaOK := 9.5
	got, err := svc.UpdateParticipante(context.Background(), 7, &models.TreinamentoParticipante{
		IDAgendamento:        99,
		MatriculaFuncionario: "MATR555",
		Presenca:             true,
		NotaAvaliacao:        &notaOK,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, got.IDAgendamento)
	assert.Equal(t, "MATR001", got.MatriculaFuncionario)
	assert.True(t, got.Presenca)
}
