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

type mockFuncionarioRepository struct {
	funcionarios    map[string]*models.Funcionario
	nextMatricula   string
	nextErr         error
	cpfExists       bool
	cpfErr          error
	checkedCpf      string
	checkedExclude  string
	created         *models.Funcionario
	updated         *models.Funcionario
	updatedOld      string
	deleted         string
	savedDocs       *models.FuncionarioDocumentos
	statusCounts    map[string]int
	cargoCounts     map[string]int
	nivelCounts     map[string]int
	aniversariantes []repositories.Aniversariante
	mesConsultado   int
}

func (m *mockFuncionarioRepository) NextMatricula(ctx context.Context) (string, error) {
	return m.nextMatricula, m.nextErr
}

func (m *mockFuncionarioRepository) List(ctx context.Context, filter repositories.FuncionarioFilter) ([]models.Funcionario, error) {
	var out []models.Funcionario
	for _, f := range m.funcionarios {
		out = append(out, *f)
	}
	return out, nil
}

func (m *mockFuncionarioRepository) GetByMatricula(ctx context.Context, matricula string) (*models.Funcionario, error) {
	return m.funcionarios[matricula], nil
}

func (m *mockFuncionarioRepository) Create(ctx context.Context, f *models.Funcionario) error {
	m.created = f
	return nil
}

func (m *mockFuncionarioRepository) Update(ctx context.Context, oldMatricula string, f *models.Funcionario) error {
	m.updatedOld = oldMatricula
	m.updated = f
	if m.funcionarios == nil {
		m.funcionarios = map[string]*models.Funcionario{}
	}
	delete(m.funcionarios, oldMatricula)
	m.funcionarios[f.Matricula] = f
	return nil
}

func (m *mockFuncionarioRepository) Delete(ctx context.Context, matricula string) error {
	m.deleted = matricula
	return nil
}

func (m *mockFuncionarioRepository) SaveDocumentos(ctx context.Context, d *models.FuncionarioDocumentos) error {
	m.savedDocs = d
	return nil
}

func (m *mockFuncionarioRepository) GetDocumentos(ctx context.Context, matricula string) (*models.FuncionarioDocumentos, error) {
	return m.savedDocs, nil
}

func (m *mockFuncionarioRepository) ExistsCpf(ctx context.Context, cpf, excludeMatricula string) (bool, error) {
	m.checkedCpf = cpf
	m.checkedExclude = excludeMatricula
	return m.cpfExists, m.cpfErr
}

func (m *mockFuncionarioRepository) StatusCounts(ctx context.Context) (map[string]int, error) {
	return m.statusCounts, nil
}

func (m *mockFuncionarioRepository) CargoCounts(ctx context.Context) (map[string]int, error) {
	return m.cargoCounts, nil
}

func (m *mockFuncionarioRepository) NivelCounts(ctx context.Context) (map[string]int, error) {
	return m.nivelCounts, nil
}

func (m *mockFuncionarioRepository) Aniversariantes(ctx context.Context, mes int) ([]repositories.Aniversariante, error) {
	m.mesConsultado = mes
	return m.aniversariantes, nil
}

type mockCargoRepository struct {
	cargosPorNome map[string]*models.Cargo
	cargosPorID   map[int]*models.Cargo
	niveisPorNome map[string]*models.Nivel
	niveisPorID   map[int]*models.Nivel
	createdCargo  *models.Cargo
	createdNivel  *models.Nivel
	deletedCargo  int
	deletedNivel  int
}

func (m *mockCargoRepository) ListCargos(ctx context.Context, nome string) ([]models.Cargo, error) {
	return nil, nil
}

func (m *mockCargoRepository) GetCargoByID(ctx context.Context, id int) (*models.Cargo, error) {
	return m.cargosPorID[id], nil
}

func (m *mockCargoRepository) GetCargoByNome(ctx context.Context, nome string) (*models.Cargo, error) {
	return m.cargosPorNome[nome], nil
}

func (m *mockCargoRepository) CreateCargo(ctx context.Context, c *models.Cargo) error {
	m.createdCargo = c
	return nil
}

func (m *mockCargoRepository) UpdateCargo(ctx context.Context, c *models.Cargo) error {
	return nil
}

func (m *mockCargoRepository) DeleteCargo(ctx context.Context, id int) error {
	m.deletedCargo = id
	return nil
}

func (m *mockCargoRepository) ListNiveis(ctx context.Context, nome string) ([]models.Nivel, error) {
	return nil, nil
}

func (m *mockCargoRepository) GetNivelByID(ctx context.Context, id int) (*models.Nivel, error) {
	return m.niveisPorID[id], nil
}

func (m *mockCargoRepository) GetNivelByNome(ctx context.Context, nome string) (*models.Nivel, error) {
	return m.niveisPorNome[nome], nil
}

func (m *mockCargoRepository) CreateNivel(ctx context.Context, n *models.Nivel) error {
	m.createdNivel = n
	return nil
}

func (m *mockCargoRepository) UpdateNivel(ctx context.Context, n *models.Nivel) error {
	return nil
}

func (m *mockCargoRepository) DeleteNivel(ctx context.Context, id int) error {
	m.deletedNivel = id
	return nil
}

type mockFeriasRepository struct {
	porID   map[int]*models.Ferias
	created *models.Ferias
	updated *models.Ferias
	deleted int
}

func (m *mockFeriasRepository) List(ctx context.Context, filter repositories.FeriasFilter) ([]models.Ferias, error) {
	return nil, nil
}

func (m *mockFeriasRepository) GetByID(ctx context.Context, id int) (*models.Ferias, error) {
	return m.porID[id], nil
}

func (m *mockFeriasRepository) Create(ctx context.Context, f *models.Ferias) error {
	m.created = f
	return nil
}

func (m *mockFeriasRepository) Update(ctx context.Context, f *models.Ferias) error {
	m.updated = f
	return nil
}

func (m *mockFeriasRepository) Delete(ctx context.Context, id int) error {
	m.deleted = id
	return nil
}

type mockDependenteRepository struct {
	porID     map[int]*models.Dependente
	cpfExists bool
	created   *models.Dependente
	deleted   int
}

func (m *mockDependenteRepository) List(ctx context.Context, filter repositories.DependenteFilter) ([]models.Dependente, error) {
	return nil, nil
}

func (m *mockDependenteRepository) GetByID(ctx context.Context, id int) (*models.Dependente, error) {
	return m.porID[id], nil
}

func (m *mockDependenteRepository) ExistsCpf(ctx context.Context, cpf string, excludeID int) (bool, error) {
	return m.cpfExists, nil
}

func (m *mockDependenteRepository) Create(ctx context.Context, d *models.Dependente) error {
	m.created = d
	return nil
}

func (m *mockDependenteRepository) Update(ctx context.Context, d *models.Dependente) error {
	return nil
}

func (m *mockDependenteRepository) Delete(ctx context.Context, id int) error {
	m.deleted = id
	return nil
}

func ativo(matricula, nome string) *models.Funcionario {
	return &models.Funcionario{
		Matricula:    matricula,
		NomeCompleto: nome,
		DataAdmissao: date(2024, time.March, 1),
		Status:       models.StatusAtivo,
	}
}

func TestPessoalService_CreateFuncionario(t *testing.T) {
	tests := []struct {
		name        string
		funcionario *models.Funcionario
		docs        *models.FuncionarioDocumentos
		setup       func(repo *mockFuncionarioRepository)
		wantErr     error
		wantMsg     string
		check       func(t *testing.T, repo *mockFuncionarioRepository, got *models.Funcionario)
	}{
		{
			name: "generates matricula when empty",
			funcionario: &models.Funcionario{
				NomeCompleto: "João da Silva",
				DataAdmissao: date(2026, time.January, 5),
			},
			setup: func(repo *mockFuncionarioRepository) {
				repo.nextMatricula = "MATR013"
			},
			check: func(t *testing.T, repo *mockFuncionarioRepository, got *models.Funcionario) {
				assert.Equal(t, "MATR013", got.Matricula)
				assert.Equal(t, models.StatusAtivo, got.Status)
				require.NotNil(t, repo.created)
			},
		},
		{
			name: "explicit matricula already taken",
			funcionario: &models.Funcionario{
				Matricula:    "MATR001",
				NomeCompleto: "João da Silva",
				DataAdmissao: date(2026, time.January, 5),
			},
			setup: func(repo *mockFuncionarioRepository) {
				repo.funcionarios = map[string]*models.Funcionario{
					"MATR001": ativo("MATR001", "Maria Souza"),
				}
			},
			wantErr: ErrConflict,
			wantMsg: "Matrícula 'MATR001' já existe.",
		},
		{
			name:        "missing nome",
			funcionario: &models.Funcionario{DataAdmissao: date(2026, time.January, 5)},
			wantErr:     ErrInvalid,
		},
		{
			name:        "missing data admissao",
			funcionario: &models.Funcionario{NomeCompleto: "João da Silva"},
			wantErr:     ErrInvalid,
		},
		{
			name: "cpf already registered",
			funcionario: &models.Funcionario{
				NomeCompleto: "João da Silva",
				DataAdmissao: date(2026, time.January, 5),
			},
			docs: &models.FuncionarioDocumentos{CpfNumero: "123.456.789-00"},
			setup: func(repo *mockFuncionarioRepository) {
				repo.nextMatricula = "MATR013"
				repo.cpfExists = true
			},
			wantErr: ErrConflict,
			wantMsg: "CPF '123.456.789-00' já cadastrado para outro funcionário.",
		},
		{
			name: "documentos saved with the new matricula",
			funcionario: &models.Funcionario{
				NomeCompleto: "João da Silva",
				DataAdmissao: date(2026, time.January, 5),
			},
			docs: &models.FuncionarioDocumentos{CpfNumero: "123.456.789-00"},
			setup: func(repo *mockFuncionarioRepository) {
				repo.nextMatricula = "MATR013"
			},
			check: func(t *testing.T, repo *mockFuncionarioRepository, got *models.Funcionario) {
				require.NotNil(t, repo.savedDocs)
				assert.Equal(t, "MATR013", repo.savedDocs.MatriculaFuncionario)
				assert.Equal(t, "123.456.789-00", repo.checkedCpf)
				assert.Empty(t, repo.checkedExclude)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockFuncionarioRepository{}
			if tt.setup != nil {
				tt.setup(repo)
			}
			svc := NewPessoalService(repo, &mockCargoRepository{}, &mockFeriasRepository{}, &mockDependenteRepository{})

			got, err := svc.CreateFuncionario(context.Background(), tt.funcionario, tt.docs)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				if tt.wantMsg != "" {
					assert.Equal(t, tt.wantMsg, err.Error())
				}
				return
			}
			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t, repo, got)
			}
		})
	}
}

func TestPessoalService_UpdateFuncionario_MatriculaConflict(t *testing.T) {
	repo := &mockFuncionarioRepository{
		funcionarios: map[string]*models.Funcionario{
			"MATR001": ativo("MATR001", "Maria Souza"),
			"MATR002": ativo("MATR002", "João da Silva"),
		},
	}
	svc := NewPessoalService(repo, &mockCargoRepository{}, &mockFeriasRepository{}, &mockDependenteRepository{})

	f := &models.Funcionario{
		Matricula:    "MATR002",
		NomeCompleto: "Maria Souza",
		DataAdmissao: date(2024, time.March, 1),
	}
	_, err := svc.UpdateFuncionario(context.Background(), "MATR001", f, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestPessoalService_UpdateFuncionario_CpfExcludesOwnRecord(t *testing.T) {
	repo := &mockFuncionarioRepository{
		funcionarios: map[string]*models.Funcionario{
			"MATR001": ativo("MATR001", "Maria Souza"),
		},
	}
	svc := NewPessoalService(repo, &mockCargoRepository{}, &mockFeriasRepository{}, &mockDependenteRepository{})

	f := &models.Funcionario{
		NomeCompleto: "Maria Souza",
		DataAdmissao: date(2024, time.March, 1),
	}
	docs := &models.FuncionarioDocumentos{CpfNumero: "123.456.789-00"}
	_, err := svc.UpdateFuncionario(context.Background(), "MATR001", f, docs)
	require.NoError(t, err)
	assert.Equal(t, "MATR001", repo.checkedExclude)
	assert.Equal(t, "MATR001", repo.updatedOld)
}

func TestPessoalService_DeleteFuncionario_NotFound(t *testing.T) {
	svc := NewPessoalService(&mockFuncionarioRepository{}, &mockCargoRepository{}, &mockFeriasRepository{}, &mockDependenteRepository{})

	err := svc.DeleteFuncionario(context.Background(), "MATR999")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPessoalService_Dashboard(t *testing.T) {
	repo := &mockFuncionarioRepository{
		statusCounts: map[string]int{"Ativo": 10, "Ferias": 2, "Inativo": 1},
		cargoCounts:  map[string]int{"Engenheiro Civil": 3, "Pedreiro": 8},
		nivelCounts:  map[string]int{"Pleno": 6, "Senior": 5},
		aniversariantes: []repositories.Aniversariante{
			{Matricula: "MATR003", NomeCompleto: "Ana Lima"},
		},
	}
	svc := NewPessoalService(repo, &mockCargoRepository{}, &mockFeriasRepository{}, &mockDependenteRepository{})
	svc.now = fixedNow(date(2026, time.July, 15))

	got, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 13, got.TotalFuncionarios)
	assert.Equal(t, 7, repo.mesConsultado)
	assert.Equal(t, repo.cargoCounts, got.FuncionariosPorCargo)
	assert.Equal(t, repo.nivelCounts, got.FuncionariosPorNivel)
	require.Len(t, got.AniversariantesDoMes, 1)
	assert.Equal(t, "Ana Lima", got.AniversariantesDoMes[0].NomeCompleto)
}

func TestPessoalService_CreateCargo(t *testing.T) {
	tests := []struct {
		name    string
		cargo   *models.Cargo
		setup   func(repo *mockCargoRepository)
		wantErr error
	}{
		{
			name:  "success",
			cargo: &models.Cargo{NomeCargo: "Engenheiro Civil", CBO: "2142-05"},
		},
		{
			name:    "missing nome",
			cargo:   &models.Cargo{CBO: "2142-05"},
			wantErr: ErrInvalid,
		},
		{
			name:  "duplicate nome",
			cargo: &models.Cargo{NomeCargo: "Engenheiro Civil"},
			setup: func(repo *mockCargoRepository) {
				repo.cargosPorNome = map[string]*models.Cargo{
					"Engenheiro Civil": {ID: 1, NomeCargo: "Engenheiro Civil"},
				}
			},
			wantErr: ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cargoRepo := &mockCargoRepository{}
			if tt.setup != nil {
				tt.setup(cargoRepo)
			}
			svc := NewPessoalService(&mockFuncionarioRepository{}, cargoRepo, &mockFeriasRepository{}, &mockDependenteRepository{})

			got, err := svc.CreateCargo(context.Background(), tt.cargo)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, cargoRepo.createdCargo, got)
		})
	}
}

func TestPessoalService_UpdateCargo_AllowsSameRecordName(t *testing.T) {
	cargoRepo := &mockCargoRepository{
		cargosPorID: map[int]*models.Cargo{
			2: {ID: 2, NomeCargo: "Mestre de Obras"},
		},
		cargosPorNome: map[string]*models.Cargo{
			"Mestre de Obras": {ID: 2, NomeCargo: "Mestre de Obras"},
		},
	}
	svc := NewPessoalService(&mockFuncionarioRepository{}, cargoRepo, &mockFeriasRepository{}, &mockDependenteRepository{})

	got, err := svc.UpdateCargo(context.Background(), 2, &models.Cargo{NomeCargo: "Mestre de Obras", Descricao: "Coordena equipes de campo"})
	require.NoError(t, err)
	assert.Equal(t, 2, got.ID)
}

func TestPessoalService_CreateFerias(t *testing.T) {
	funcionarios := map[string]*models.Funcionario{
		"MATR001": ativo("MATR001", "Maria Souza"),
	}

	tests := []struct {
		name    string
		ferias  *models.Ferias
		wantErr error
	}{
		{
			name: "success with default status",
			ferias: &models.Ferias{
				MatriculaFuncionario:    "MATR001",
				PeriodoAquisitivoInicio: date(2025, time.January, 1),
				PeriodoAquisitivoFim:    date(2025, time.December, 31),
			},
		},
		{
			name: "missing matricula",
			ferias: &models.Ferias{
				PeriodoAquisitivoInicio: date(2025, time.January, 1),
				PeriodoAquisitivoFim:    date(2025, time.December, 31),
			},
			wantErr: ErrInvalid,
		},
		{
			name: "unknown funcionario",
			ferias: &models.Ferias{
				MatriculaFuncionario:    "MATR999",
				PeriodoAquisitivoInicio: date(2025, time.January, 1),
				PeriodoAquisitivoFim:    date(2025, time.December, 31),
			},
			wantErr: ErrNotFound,
		},
		{
			name: "periodo aquisitivo invertido",
			ferias: &models.Ferias{
				MatriculaFuncionario:    "MATR001",
				PeriodoAquisitivoInicio: date(2025, time.December, 31),
				PeriodoAquisitivoFim:    date(2025, time.January, 1),
			},
			wantErr: ErrInvalid,
		},
		{
			name: "periodo de gozo invertido",
			ferias: &models.Ferias{
				MatriculaFuncionario:    "MATR001",
				PeriodoAquisitivoInicio: date(2025, time.January, 1),
				PeriodoAquisitivoFim:    date(2025, time.December, 31),
				DataInicioGozo:          datePtr(date(2026, time.February, 10)),
				DataFimGozo:             datePtr(date(2026, time.February, 1)),
			},
			wantErr: ErrInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			feriasRepo := &mockFeriasRepository{}
			svc := NewPessoalService(&mockFuncionarioRepository{funcionarios: funcionarios}, &mockCargoRepository{}, feriasRepo, &mockDependenteRepository{})

			got, err := svc.CreateFerias(context.Background(), tt.ferias)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, models.FeriasProgramada, got.StatusFerias)
			assert.Equal(t, feriasRepo.created, got)
		})
	}
}

func TestPessoalService_CreateDependente(t *testing.T) {
	funcionarios := map[string]*models.Funcionario{
		"MATR001": ativo("MATR001", "Maria Souza"),
	}

	tests := []struct {
		name       string
		dependente *models.Dependente
		cpfExists  bool
		wantErr    error
	}{
		{
			name: "success",
			dependente: &models.Dependente{
				MatriculaFuncionario: "MATR001",
				NomeCompleto:         "Pedro Souza",
				Parentesco:           "Filho",
			},
		},
		{
			name: "missing required fields",
			dependente: &models.Dependente{
				MatriculaFuncionario: "MATR001",
				NomeCompleto:         "Pedro Souza",
			},
			wantErr: ErrInvalid,
		},
		{
			name: "duplicate cpf",
			dependente: &models.Dependente{
				MatriculaFuncionario: "MATR001",
				NomeCompleto:         "Pedro Souza",
				Parentesco:           "Filho",
				Cpf:                  "987.654.321-00",
			},
			cpfExists: true,
			wantErr:   ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			depRepo := &mockDependenteRepository{cpfExists: tt.cpfExists}
			svc := NewPessoalService(&mockFuncionarioRepository{funcionarios: funcionarios}, &mockCargoRepository{}, &mockFeriasRepository{}, depRepo)

			got, err := svc.CreateDependente(context.Background(), tt.dependente)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, depRepo.created, got)
		})
	}
}
