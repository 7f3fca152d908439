package services

import (
	"context"
	"fmt"
	"time"

	"github.com/lumob/backend/internal/models"
	"github.com/lumob/backend/internal/repositories"
)

// FuncionarioRepository is the interface that wraps funcionario data access
type FuncionarioRepository interface {
	NextMatricula(ctx context.Context) (string, error)
	List(ctx context.Context, filter repositories.FuncionarioFilter) ([]models.Funcionario, error)
	GetByMatricula(ctx context.Context, matricula string) (*models.Funcionario, error)
	Create(ctx context.Context, f *models.Funcionario) error
	Update(ctx context.Context, oldMatricula string, f *models.Funcionario) error
	Delete(ctx context.Context, matricula string) error
	SaveDocumentos(ctx context.Context, d *models.FuncionarioDocumentos) error
	GetDocumentos(ctx context.Context, matricula string) (*models.FuncionarioDocumentos, error)
	ExistsCpf(ctx context.Context, cpf, excludeMatricula string) (bool, error)
	StatusCounts(ctx context.Context) (map[string]int, error)
	CargoCounts(ctx context.Context) (map[string]int, error)
	NivelCounts(ctx context.Context) (map[string]int, error)
	Aniversariantes(ctx context.Context, mes int) ([]repositories.Aniversariante, error)
}

// CargoRepository wraps cargo and nivel catalog data access
type CargoRepository interface {
	ListCargos(ctx context.Context, nome string) ([]models.Cargo, error)
	GetCargoByID(ctx context.Context, id int) (*models.Cargo, error)
	GetCargoByNome(ctx context.Context, nome string) (*models.Cargo, error)
	CreateCargo(ctx context.Context, c *models.Cargo) error
	UpdateCargo(ctx context.Context, c *models.Cargo) error
	DeleteCargo(ctx context.Context, id int) error
	ListNiveis(ctx context.Context, nome string) ([]models.Nivel, error)
	GetNivelByID(ctx context.Context, id int) (*models.Nivel, error)
	GetNivelByNome(ctx context.Context, nome string) (*models.Nivel, error)
	CreateNivel(ctx context.Context, n *models.Nivel) error
	UpdateNivel(ctx context.Context, n *models.Nivel) error
	DeleteNivel(ctx context.Context, id int) error
}

// FeriasRepository wraps ferias data access
type FeriasRepository interface {
	List(ctx context.Context, filter repositories.FeriasFilter) ([]models.Ferias, error)
	GetByID(ctx context.Context, id int) (*models.Ferias, error)
	Create(ctx context.Context, f *models.Ferias) error
	Update(ctx context.Context, f *models.Ferias) error
	Delete(ctx context.Context, id int) error
}

// DependenteRepository wraps dependente data access
type DependenteRepository interface {
	List(ctx context.Context, filter repositories.DependenteFilter) ([]models.Dependente, error)
	GetByID(ctx context.Context, id int) (*models.Dependente, error)
	ExistsCpf(ctx context.Context, cpf string, excludeID int) (bool, error)
	Create(ctx context.Context, d *models.Dependente) error
	Update(ctx context.Context, d *models.Dependente) error
	Delete(ctx context.Context, id int) error
}

// PessoalDashboard aggregates the HR landing-page indicators
type PessoalDashboard struct {
	FuncionariosPorStatus map[string]int                `json:"funcionarios_por_status"`
	FuncionariosPorCargo  map[string]int                `json:"funcionarios_por_cargo"`
	FuncionariosPorNivel  map[string]int                `json:"funcionarios_por_nivel"`
	TotalFuncionarios     int                           `json:"total_funcionarios"`
	AniversariantesDoMes  []repositories.Aniversariante `json:"aniversariantes_do_mes"`
}

// pessoalService implements the HR module operations
type pessoalService struct {
	funcionarioRepo FuncionarioRepository
	cargoRepo       CargoRepository
	feriasRepo      FeriasRepository
	dependenteRepo  DependenteRepository
	now             func() time.Time
}

// NewPessoalService creates a new pessoal service
func NewPessoalService(
	funcionarioRepo FuncionarioRepository,
	cargoRepo CargoRepository,
	feriasRepo FeriasRepository,
	dependenteRepo DependenteRepository,
) *pessoalService {
	return &pessoalService{
		funcionarioRepo: funcionarioRepo,
		cargoRepo:       cargoRepo,
		feriasRepo:      feriasRepo,
		dependenteRepo:  dependenteRepo,
		now:             time.Now,
	}
}

// --- funcionários ---

// ListFuncionarios returns funcionarios matching the optional filters
func (s *pessoalService) ListFuncionarios(ctx context.Context, filter repositories.FuncionarioFilter) ([]models.Funcionario, error) {
	return s.funcionarioRepo.List(ctx, filter)
}

// GetFuncionario returns one funcionario by matricula
func (s *pessoalService) GetFuncionario(ctx context.Context, matricula string) (*models.Funcionario, error) {
	f, err := s.funcionarioRepo.GetByMatricula(ctx, matricula)
	if err != nil {
		return nil, fmt.Errorf("failed to get funcionario: %w", err)
	}
	if f == nil {
		return nil, NotFound("Funcionário não encontrado.")
	}
	return f, nil
}

// NextMatricula suggests the next free matricula in the MATR sequence
func (s *pessoalService) NextMatricula(ctx context.Context) (string, error) {
	return s.funcionarioRepo.NextMatricula(ctx)
}

// CreateFuncionario registers a funcionario together with his dados pessoais.
// An empty matricula is filled from the MATR sequence.
func (s *pessoalService) CreateFuncionario(ctx context.Context, f *models.Funcionario, docs *models.FuncionarioDocumentos) (*models.Funcionario, error) {
	if f.NomeCompleto == "" {
		return nil, Invalid("Nome completo é obrigatório.")
	}
	if f.DataAdmissao.IsZero() {
		return nil, Invalid("Data de admissão é obrigatória.")
	}
	if f.Status == "" {
		f.Status = models.StatusAtivo
	}

	if f.Matricula == "" {
		matricula, err := s.funcionarioRepo.NextMatricula(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to generate matricula: %w", err)
		}
		f.Matricula = matricula
	} else {
		existing, err := s.funcionarioRepo.GetByMatricula(ctx, f.Matricula)
		if err != nil {
			return nil, fmt.Errorf("failed to check matricula: %w", err)
		}
		if existing != nil {
			return nil, Conflict(fmt.Sprintf("Matrícula '%s' já existe.", f.Matricula))
		}
	}

	if docs != nil && docs.CpfNumero != "" {
		exists, err := s.funcionarioRepo.ExistsCpf(ctx, docs.CpfNumero, "")
		if err != nil {
			return nil, fmt.Errorf("failed to check cpf: %w", err)
		}
		if exists {
			return nil, Conflict(fmt.Sprintf("CPF '%s' já cadastrado para outro funcionário.", docs.CpfNumero))
		}
	}

	if err := s.funcionarioRepo.Create(ctx, f); err != nil {
		return nil, fmt.Errorf("failed to create funcionario: %w", err)
	}

	if docs != nil {
		docs.MatriculaFuncionario = f.Matricula
		if err := s.funcionarioRepo.SaveDocumentos(ctx, docs); err != nil {
			return nil, fmt.Errorf("failed to save documentos: %w", err)
		}
	}
	return f, nil
}

// UpdateFuncionario updates a funcionario and optionally his dados pessoais
func (s *pessoalService) UpdateFuncionario(ctx context.Context, matricula string, f *models.Funcionario, docs *models.FuncionarioDocumentos) (*models.Funcionario, error) {
	current, err := s.GetFuncionario(ctx, matricula)
	if err != nil {
		return nil, err
	}

	if f.Matricula == "" {
		f.Matricula = current.Matricula
	}
	if f.Matricula != matricula {
		existing, err := s.funcionarioRepo.GetByMatricula(ctx, f.Matricula)
		if err != nil {
			return nil, fmt.Errorf("failed to check matricula: %w", err)
		}
		if existing != nil {
			return nil, Conflict(fmt.Sprintf("Matrícula '%s' já existe.", f.Matricula))
		}
	}

	if docs != nil && docs.CpfNumero != "" {
		exists, err := s.funcionarioRepo.ExistsCpf(ctx, docs.CpfNumero, matricula)
		if err != nil {
			return nil, fmt.Errorf("failed to check cpf: %w", err)
		}
		if exists {
			return nil, Conflict(fmt.Sprintf("CPF '%s' já cadastrado para outro funcionário.", docs.CpfNumero))
		}
	}

	if err := s.funcionarioRepo.Update(ctx, matricula, f); err != nil {
		return nil, fmt.Errorf("failed to update funcionario: %w", err)
	}

	if docs != nil {
		docs.MatriculaFuncionario = f.Matricula
		if err := s.funcionarioRepo.SaveDocumentos(ctx, docs); err != nil {
			return nil, fmt.Errorf("failed to save documentos: %w", err)
		}
	}
	return s.GetFuncionario(ctx, f.Matricula)
}

// DeleteFuncionario removes a funcionario
func (s *pessoalService) DeleteFuncionario(ctx context.Context, matricula string) error {
	if _, err := s.GetFuncionario(ctx, matricula); err != nil {
		return err
	}
	return s.funcionarioRepo.Delete(ctx, matricula)
}

// GetDocumentos returns the dados pessoais of a funcionario, (nil, nil) when
// none were registered yet
func (s *pessoalService) GetDocumentos(ctx context.Context, matricula string) (*models.FuncionarioDocumentos, error) {
	if _, err := s.GetFuncionario(ctx, matricula); err != nil {
		return nil, err
	}
	return s.funcionarioRepo.GetDocumentos(ctx, matricula)
}

// Dashboard aggregates the HR landing page data
func (s *pessoalService) Dashboard(ctx context.Context) (*PessoalDashboard, error) {
	counts, err := s.funcionarioRepo.StatusCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count funcionarios: %w", err)
	}

	total := 0
	for _, c := range counts {
		total += c
	}

	porCargo, err := s.funcionarioRepo.CargoCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count funcionarios by cargo: %w", err)
	}

	porNivel, err := s.funcionarioRepo.NivelCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count funcionarios by nivel: %w", err)
	}

	aniversariantes, err := s.funcionarioRepo.Aniversariantes(ctx, int(s.now().Month()))
	if err != nil {
		return nil, fmt.Errorf("failed to list aniversariantes: %w", err)
	}

	return &PessoalDashboard{
		FuncionariosPorStatus: counts,
		FuncionariosPorCargo:  porCargo,
		FuncionariosPorNivel:  porNivel,
		TotalFuncionarios:     total,
		AniversariantesDoMes:  aniversariantes,
	}, nil
}

// --- cargos e níveis ---

// ListCargos returns cargos filtered by name
func (s *pessoalService) ListCargos(ctx context.Context, nome string) ([]models.Cargo, error) {
	return s.cargoRepo.ListCargos(ctx, nome)
}

// GetCargo returns one cargo
func (s *pessoalService) GetCargo(ctx context.Context, id int) (*models.Cargo, error) {
	c, err := s.cargoRepo.GetCargoByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get cargo: %w", err)
	}
	if c == nil {
		return nil, NotFound("Cargo não encontrado.")
	}
	return c, nil
}

// CreateCargo registers a cargo after checking the name is free
func (s *pessoalService) CreateCargo(ctx context.Context, c *models.Cargo) (*models.Cargo, error) {
	if c.NomeCargo == "" {
		return nil, Invalid("Nome do cargo é obrigatório.")
	}

	existing, err := s.cargoRepo.GetCargoByNome(ctx, c.NomeCargo)
	if err != nil {
		return nil, fmt.Errorf("failed to check cargo nome: %w", err)
	}
	if existing != nil {
		return nil, Conflict(fmt.Sprintf("Cargo '%s' já existe.", c.NomeCargo))
	}

	if err := s.cargoRepo.CreateCargo(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to create cargo: %w", err)
	}
	return c, nil
}

// UpdateCargo updates a cargo keeping the name unique
func (s *pessoalService) UpdateCargo(ctx context.Context, id int, c *models.Cargo) (*models.Cargo, error) {
	if _, err := s.GetCargo(ctx, id); err != nil {
		return nil, err
	}

	existing, err := s.cargoRepo.GetCargoByNome(ctx, c.NomeCargo)
	if err != nil {
		return nil, fmt.Errorf("failed to check cargo nome: %w", err)
	}
	if existing != nil && existing.ID != id {
		return nil, Conflict(fmt.Sprintf("Cargo '%s' já existe.", c.NomeCargo))
	}

	c.ID = id
	if err := s.cargoRepo.UpdateCargo(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to update cargo: %w", err)
	}
	return c, nil
}

// DeleteCargo removes a cargo
func (s *pessoalService) DeleteCargo(ctx context.Context, id int) error {
	if _, err := s.GetCargo(ctx, id); err != nil {
		return err
	}
	return s.cargoRepo.DeleteCargo(ctx, id)
}

// ListNiveis returns niveis filtered by name
func (s *pessoalService) ListNiveis(ctx context.Context, nome string) ([]models.Nivel, error) {
	return s.cargoRepo.ListNiveis(ctx, nome)
}

// GetNivel returns one nivel
func (s *pessoalService) GetNivel(ctx context.Context, id int) (*models.Nivel, error) {
	n, err := s.cargoRepo.GetNivelByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get nivel: %w", err)
	}
	if n == nil {
		return nil, NotFound("Nível não encontrado.")
	}
	return n, nil
}

// CreateNivel registers a nivel after checking the name is free
func (s *pessoalService) CreateNivel(ctx context.Context, n *models.Nivel) (*models.Nivel, error) {
	if n.NomeNivel == "" {
		return nil, Invalid("Nome do nível é obrigatório.")
	}

	existing, err := s.cargoRepo.GetNivelByNome(ctx, n.NomeNivel)
	if err != nil {
		return nil, fmt.Errorf("failed to check nivel nome: %w", err)
	}
	if existing != nil {
		return nil, Conflict(fmt.Sprintf("Nível '%s' já existe.", n.NomeNivel))
	}

	if err := s.cargoRepo.CreateNivel(ctx, n); err != nil {
		return nil, fmt.Errorf("failed to create nivel: %w", err)
	}
	return n, nil
}

// UpdateNivel updates a nivel keeping the name unique
func (s *pessoalService) UpdateNivel(ctx context.Context, id int, n *models.Nivel) (*models.Nivel, error) {
	if _, err := s.GetNivel(ctx, id); err != nil {
		return nil, err
	}

	existing, err := s.cargoRepo.GetNivelByNome(ctx, n.NomeNivel)
	if err != nil {
		return nil, fmt.Errorf("failed to check nivel nome: %w", err)
	}
	if existing != nil && existing.ID != id {
		return nil, Conflict(fmt.Sprintf("Nível '%s' já existe.", n.NomeNivel))
	}

	n.ID = id
	if err := s.cargoRepo.UpdateNivel(ctx, n); err != nil {
		return nil, fmt.Errorf("failed to update nivel: %w", err)
	}
	return n, nil
}

// DeleteNivel removes a nivel
func (s *pessoalService) DeleteNivel(ctx context.Context, id int) error {
	if _, err := s.GetNivel(ctx, id); err != nil {
		return err
	}
	return s.cargoRepo.DeleteNivel(ctx, id)
}

// --- férias ---

// ListFerias returns ferias records matching the optional filters
func (s *pessoalService) ListFerias(ctx context.Context, filter repositories.FeriasFilter) ([]models.Ferias, error) {
	return s.feriasRepo.List(ctx, filter)
}

// GetFerias returns one ferias record
func (s *pessoalService) GetFerias(ctx context.Context, id int) (*models.Ferias, error) {
	f, err := s.feriasRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get ferias: %w", err)
	}
	if f == nil {
		return nil, NotFound("Registro de férias não encontrado.")
	}
	return f, nil
}

func (s *pessoalService) validateFerias(ctx context.Context, f *models.Ferias) error {
	if f.MatriculaFuncionario == "" {
		return Invalid("Matrícula do funcionário é obrigatória.")
	}
	if _, err := s.GetFuncionario(ctx, f.MatriculaFuncionario); err != nil {
		return err
	}
	if f.PeriodoAquisitivoFim.Before(f.PeriodoAquisitivoInicio) {
		return Invalid("Período aquisitivo inválido: fim anterior ao início.")
	}
	if f.DataInicioGozo != nil && f.DataFimGozo != nil && f.DataFimGozo.Before(*f.DataInicioGozo) {
		return Invalid("Período de gozo inválido: fim anterior ao início.")
	}
	if f.StatusFerias == "" {
		f.StatusFerias = models.FeriasProgramada
	}
	return nil
}

// CreateFerias registers a ferias record
func (s *pessoalService) CreateFerias(ctx context.Context, f *models.Ferias) (*models.Ferias, error) {
	if err := s.validateFerias(ctx, f); err != nil {
		return nil, err
	}
	if err := s.feriasRepo.Create(ctx, f); err != nil {
		return nil, fmt.Errorf("failed to create ferias: %w", err)
	}
	return f, nil
}

// UpdateFerias updates a ferias record
func (s *pessoalService) UpdateFerias(ctx context.Context, id int, f *models.Ferias) (*models.Ferias, error) {
	if _, err := s.GetFerias(ctx, id); err != nil {
		return nil, err
	}
	if err := s.validateFerias(ctx, f); err != nil {
		return nil, err
	}
	f.ID = id
	if err := s.feriasRepo.Update(ctx, f); err != nil {
		return nil, fmt.Errorf("failed to update ferias: %w", err)
	}
	return f, nil
}

// DeleteFerias removes a ferias record
func (s *pessoalService) DeleteFerias(ctx context.Context, id int) error {
	if _, err := s.GetFerias(ctx, id); err != nil {
		return err
	}
	return s.feriasRepo.Delete(ctx, id)
}

// --- dependentes ---

// ListDependentes returns dependentes matching the optional filters
func (s *pessoalService) ListDependentes(ctx context.Context, filter repositories.DependenteFilter) ([]models.Dependente, error) {
	return s.dependenteRepo.List(ctx, filter)
}

// GetDependente returns one dependente
func (s *pessoalService) GetDependente(ctx context.Context, id int) (*models.Dependente, error) {
	d, err := s.dependenteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get dependente: %w", err)
	}
	if d == nil {
		return nil, NotFound("Dependente não encontrado.")
	}
	return d, nil
}

func (s *pessoalService) validateDependente(ctx context.Context, d *models.Dependente, excludeID int) error {
	if d.MatriculaFuncionario == "" || d.NomeCompleto == "" || d.Parentesco == "" {
		return Invalid("Matrícula, nome e parentesco do dependente são obrigatórios.")
	}
	if _, err := s.GetFuncionario(ctx, d.MatriculaFuncionario); err != nil {
		return err
	}
	if d.Cpf != "" {
		exists, err := s.dependenteRepo.ExistsCpf(ctx, d.Cpf, excludeID)
		if err != nil {
			return fmt.Errorf("failed to check dependente cpf: %w", err)
		}
		if exists {
			return Conflict(fmt.Sprintf("CPF '%s' já cadastrado para outro dependente.", d.Cpf))
		}
	}
	return nil
}

// CreateDependente registers a dependente
func (s *pessoalService) CreateDependente(ctx context.Context, d *models.Dependente) (*models.Dependente, error) {
	if err := s.validateDependente(ctx, d, 0); err != nil {
		return nil, err
	}
	if err := s.dependenteRepo.Create(ctx, d); err != nil {
		return nil, fmt.Errorf("failed to create dependente: %w", err)
	}
	return d, nil
}

// UpdateDependente updates a dependente
func (s *pessoalService) UpdateDependente(ctx context.Context, id int, d *models.Dependente) (*models.Dependente, error) {
	if _, err := s.GetDependente(ctx, id); err != nil {
		return nil, err
	}
	if err := s.validateDependente(ctx, d, id); err != nil {
		return nil, err
	}
	d.ID = id
	if err := s.dependenteRepo.Update(ctx, d); err != nil {
		return nil, fmt.Errorf("failed to update dependente: %w", err)
	}
	return d, nil
}

// DeleteDependente removes a dependente
func (s *pessoalService) DeleteDependente(ctx context.Context, id int) error {
	if _, err := s.GetDependente(ctx, id); err != nil {
		return err
	}
	return s.dependenteRepo.Delete(ctx, id)
}
