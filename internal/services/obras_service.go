package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/lumob/backend/internal/models"
	"github.com/lumob/backend/internal/repositories"
)

// ClienteRepository wraps cliente data access
type ClienteRepository interface {
	List(ctx context.Context) ([]models.Cliente, error)
	GetByID(ctx context.Context, id int) (*models.Cliente, error)
	ExistsCnpj(ctx context.Context, cnpj string, excludeID int) (bool, error)
	Create(ctx context.Context, c *models.Cliente) error
	Update(ctx context.Context, c *models.Cliente) error
	Delete(ctx context.Context, id int) error
}

// ContratoRepository wraps contrato data access
type ContratoRepository interface {
	List(ctx context.Context, filter repositories.ContratoFilter) ([]models.Contrato, error)
	GetByID(ctx context.Context, id int) (*models.Contrato, error)
	ExistsNumero(ctx context.Context, numero string, excludeID int) (bool, error)
	Create(ctx context.Context, c *models.Contrato) error
	Update(ctx context.Context, c *models.Contrato) error
	Delete(ctx context.Context, id int) error
	SomaContratosAtivos(ctx context.Context) (float64, error)
}

// ObraRepository wraps obra data access
type ObraRepository interface {
	List(ctx context.Context, filter repositories.ObraFilter) ([]models.Obra, error)
	GetByID(ctx context.Context, id int) (*models.Obra, error)
	ExistsNumero(ctx context.Context, numero string, excludeID int) (bool, error)
	Create(ctx context.Context, o *models.Obra) error
	Update(ctx context.Context, o *models.Obra) error
	Delete(ctx context.Context, id int) error
	StatusCounts(ctx context.Context) (map[string]int, error)
	AvancoMedioObrasAtivas(ctx context.Context) (float64, error)
}

// ArtRepository wraps ART data access
type ArtRepository interface {
	List(ctx context.Context, obraID int) ([]models.ART, error)
	GetByID(ctx context.Context, id int) (*models.ART, error)
	ExistsNumero(ctx context.Context, numero string, excludeID int) (bool, error)
	Create(ctx context.Context, a *models.ART) error
	Update(ctx context.Context, a *models.ART) error
	Delete(ctx context.Context, id int) error
}

// MedicaoRepository wraps medição data access
type MedicaoRepository interface {
	List(ctx context.Context, obraID int) ([]models.Medicao, error)
	GetByID(ctx context.Context, id int) (*models.Medicao, error)
	ExistsNumeroObra(ctx context.Context, obraID, numero, excludeID int) (bool, error)
	Create(ctx context.Context, m *models.Medicao) error
	Update(ctx context.Context, m *models.Medicao) error
	Delete(ctx context.Context, id int) error
	SomaMedicoesAprovadas(ctx context.Context) (float64, error)
}

// AvancoRepository wraps avanço físico data access. Create and Update apply
// the 100% accumulation cap inside a transaction and return
// *repositories.ErrLimiteAvanco when the cap would be exceeded.
type AvancoRepository interface {
	List(ctx context.Context, obraID int) ([]models.AvancoFisico, error)
	GetByID(ctx context.Context, id int) (*models.AvancoFisico, error)
	Create(ctx context.Context, a *models.AvancoFisico) error
	Update(ctx context.Context, a *models.AvancoFisico) error
	Delete(ctx context.Context, id int) error
}

// SeguroRepository wraps seguro data access
type SeguroRepository interface {
	List(ctx context.Context, obraID int) ([]models.Seguro, error)
	GetByID(ctx context.Context, id int) (*models.Seguro, error)
	ExistsApolice(ctx context.Context, numero string, excludeID int) (bool, error)
	Create(ctx context.Context, s *models.Seguro) error
	Update(ctx context.Context, s *models.Seguro) error
	Delete(ctx context.Context, id int) error
}

// ReidiRepository wraps REIDI data access
type ReidiRepository interface {
	List(ctx context.Context, obraID int) ([]models.REIDI, error)
	GetByID(ctx context.Context, id int) (*models.REIDI, error)
	ExistsPortaria(ctx context.Context, numero string, excludeID int) (bool, error)
	Create(ctx context.Context, re *models.REIDI) error
	Update(ctx context.Context, re *models.REIDI) error
	Delete(ctx context.Context, id int) error
}

// obrasService implements the works/contracts module operations
type obrasService struct {
	clienteRepo  ClienteRepository
	contratoRepo ContratoRepository
	obraRepo     ObraRepository
	artRepo      ArtRepository
	medicaoRepo  MedicaoRepository
	avancoRepo   AvancoRepository
	seguroRepo   SeguroRepository
	reidiRepo    ReidiRepository
}

// NewObrasService creates a new obras service
func NewObrasService(
	clienteRepo ClienteRepository,
	contratoRepo ContratoRepository,
	obraRepo ObraRepository,
	artRepo ArtRepository,
	medicaoRepo MedicaoRepository,
	avancoRepo AvancoRepository,
	seguroRepo SeguroRepository,
	reidiRepo ReidiRepository,
) *obrasService {
	return &obrasService{
		clienteRepo:  clienteRepo,
		contratoRepo: contratoRepo,
		obraRepo:     obraRepo,
		artRepo:      artRepo,
		medicaoRepo:  medicaoRepo,
		avancoRepo:   avancoRepo,
		seguroRepo:   seguroRepo,
		reidiRepo:    reidiRepo,
	}
}

// --- clientes ---

// ListClientes returns all clientes
func (s *obrasService) ListClientes(ctx context.Context) ([]models.Cliente, error) {
	return s.clienteRepo.List(ctx)
}

// GetCliente returns one cliente
func (s *obrasService) GetCliente(ctx context.Context, id int) (*models.Cliente, error) {
	c, err := s.clienteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get cliente: %w", err)
	}
	if c == nil {
		return nil, NotFound("Cliente não encontrado.")
	}
	return c, nil
}

func (s *obrasService) validateCliente(ctx context.Context, c *models.Cliente, excludeID int) error {
	if c.NomeCliente == "" || c.CnpjCliente == "" {
		return Invalid("Nome e CNPJ do cliente são obrigatórios.")
	}
	exists, err := s.clienteRepo.ExistsCnpj(ctx, c.CnpjCliente, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check cnpj: %w", err)
	}
	if exists {
		return Conflict(fmt.Sprintf("CNPJ '%s' já cadastrado para outro cliente.", c.CnpjCliente))
	}
	return nil
}

// CreateCliente registers a cliente after checking CNPJ uniqueness
func (s *obrasService) CreateCliente(ctx context.Context, c *models.Cliente) (*models.Cliente, error) {
	if err := s.validateCliente(ctx, c, 0); err != nil {
		return nil, err
	}
	if err := s.clienteRepo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to create cliente: %w", err)
	}
	return c, nil
}

// UpdateCliente updates a cliente keeping the CNPJ unique
func (s *obrasService) UpdateCliente(ctx context.Context, id int, c *models.Cliente) (*models.Cliente, error) {
	if _, err := s.GetCliente(ctx, id); err != nil {
		return nil, err
	}
	if err := s.validateCliente(ctx, c, id); err != nil {
		return nil, err
	}
	c.ID = id
	if err := s.clienteRepo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to update cliente: %w", err)
	}
	return c, nil
}

// DeleteCliente removes a cliente
func (s *obrasService) DeleteCliente(ctx context.Context, id int) error {
	if _, err := s.GetCliente(ctx, id); err != nil {
		return err
	}
	return s.clienteRepo.Delete(ctx, id)
}

// --- contratos ---

// ListContratos returns contratos matching the optional filters
func (s *obrasService) ListContratos(ctx context.Context, filter repositories.ContratoFilter) ([]models.Contrato, error) {
	return s.contratoRepo.List(ctx, filter)
}

// GetContrato returns one contrato
func (s *obrasService) GetContrato(ctx context.Context, id int) (*models.Contrato, error) {
	c, err := s.contratoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get contrato: %w", err)
	}
	if c == nil {
		return nil, NotFound("Contrato não encontrado.")
	}
	return c, nil
}

func (s *obrasService) validateContrato(ctx context.Context, c *models.Contrato, excludeID int) error {
	if c.NumeroContrato == "" {
		return Invalid("Número do contrato é obrigatório.")
	}
	if _, err := s.GetCliente(ctx, c.IDCliente); err != nil {
		return err
	}
	exists, err := s.contratoRepo.ExistsNumero(ctx, c.NumeroContrato, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check contrato numero: %w", err)
	}
	if exists {
		return Conflict(fmt.Sprintf("Contrato '%s' já existe.", c.NumeroContrato))
	}
	return nil
}

// CreateContrato registers a contrato after checking the number is free
func (s *obrasService) CreateContrato(ctx context.Context, c *models.Contrato) (*models.Contrato, error) {
	if err := s.validateContrato(ctx, c, 0); err != nil {
		return nil, err
	}
	if err := s.contratoRepo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to create contrato: %w", err)
	}
	return c, nil
}

// UpdateContrato updates a contrato keeping the number unique
func (s *obrasService) UpdateContrato(ctx context.Context, id int, c *models.Contrato) (*models.Contrato, error) {
	if _, err := s.GetContrato(ctx, id); err != nil {
		return nil, err
	}
	if err := s.validateContrato(ctx, c, id); err != nil {
		return nil, err
	}
	c.ID = id
	if err := s.contratoRepo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to update contrato: %w", err)
	}
	return c, nil
}

// DeleteContrato removes a contrato
func (s *obrasService) DeleteContrato(ctx context.Context, id int) error {
	if _, err := s.GetContrato(ctx, id); err != nil {
		return err
	}
	return s.contratoRepo.Delete(ctx, id)
}

// --- obras ---

// ListObras returns obras matching the optional filters
func (s *obrasService) ListObras(ctx context.Context, filter repositories.ObraFilter) ([]models.Obra, error) {
	return s.obraRepo.List(ctx, filter)
}

// GetObra returns one obra
func (s *obrasService) GetObra(ctx context.Context, id int) (*models.Obra, error) {
	o, err := s.obraRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get obra: %w", err)
	}
	if o == nil {
		return nil, NotFound("Obra não encontrada.")
	}
	return o, nil
}

func (s *obrasService) validateObra(ctx context.Context, o *models.Obra, excludeID int) error {
	if o.NumeroObra == "" || o.NomeObra == "" {
		return Invalid("Número e nome da obra são obrigatórios.")
	}
	if o.IDContrato == nil || *o.IDContrato <= 0 {
		return Invalid("Contrato da obra é obrigatório.")
	}
	if _, err := s.GetContrato(ctx, *o.IDContrato); err != nil {
		return err
	}
	exists, err := s.obraRepo.ExistsNumero(ctx, o.NumeroObra, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check obra numero: %w", err)
	}
	if exists {
		return Conflict(fmt.Sprintf("Obra '%s' já existe.", o.NumeroObra))
	}
	return nil
}

// CreateObra registers an obra after checking the number is free
func (s *obrasService) CreateObra(ctx context.Context, o *models.Obra) (*models.Obra, error) {
	if err := s.validateObra(ctx, o, 0); err != nil {
		return nil, err
	}
	if err := s.obraRepo.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to create obra: %w", err)
	}
	return o, nil
}

// UpdateObra updates an obra keeping the number unique
func (s *obrasService) UpdateObra(ctx context.Context, id int, o *models.Obra) (*models.Obra, error) {
	if _, err := s.GetObra(ctx, id); err != nil {
		return nil, err
	}
	if err := s.validateObra(ctx, o, id); err != nil {
		return nil, err
	}
	o.ID = id
	if err := s.obraRepo.Update(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to update obra: %w", err)
	}
	return o, nil
}

// DeleteObra removes an obra
func (s *obrasService) DeleteObra(ctx context.Context, id int) error {
	if _, err := s.GetObra(ctx, id); err != nil {
		return err
	}
	return s.obraRepo.Delete(ctx, id)
}

// Dashboard aggregates the obras landing page indicators
func (s *obrasService) Dashboard(ctx context.Context) (*models.ObrasDashboard, error) {
	counts, err := s.obraRepo.StatusCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count obras: %w", err)
	}

	total := 0
	for _, c := range counts {
		total += c
	}

	valorContratos, err := s.contratoRepo.SomaContratosAtivos(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to sum contratos: %w", err)
	}

	valorMedicoes, err := s.medicaoRepo.SomaMedicoesAprovadas(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to sum medicoes: %w", err)
	}

	avancoMedio, err := s.obraRepo.AvancoMedioObrasAtivas(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to average avanco: %w", err)
	}

	return &models.ObrasDashboard{
		TotalObras:              total,
		ObrasPorStatus:          counts,
		ValorContratosAtivos:    valorContratos,
		ValorMedicoesRealizadas: valorMedicoes,
		AvancoMedioObrasAtivas:  avancoMedio,
	}, nil
}

// --- ARTs ---

// ListARTs returns ARTs, optionally filtered by obra
func (s *obrasService) ListARTs(ctx context.Context, obraID int) ([]models.ART, error) {
	return s.artRepo.List(ctx, obraID)
}

// GetART returns one ART
func (s *obrasService) GetART(ctx context.Context, id int) (*models.ART, error) {
	a, err := s.artRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get art: %w", err)
	}
	if a == nil {
		return nil, NotFound("ART não encontrada.")
	}
	return a, nil
}

func (s *obrasService) validateART(ctx context.Context, a *models.ART, excludeID int) error {
	if a.NumeroArt == "" {
		return Invalid("Número da ART é obrigatório.")
	}
	if _, err := s.GetObra(ctx, a.IDObra); err != nil {
		return err
	}
	exists, err := s.artRepo.ExistsNumero(ctx, a.NumeroArt, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check art numero: %w", err)
	}
	if exists {
		return Conflict(fmt.Sprintf("ART '%s' já existe.", a.NumeroArt))
	}
	return nil
}

// CreateART registers an ART after checking the number is free
func (s *obrasService) CreateART(ctx context.Context, a *models.ART) (*models.ART, error) {
	if err := s.validateART(ctx, a, 0); err != nil {
		return nil, err
	}
	if err := s.artRepo.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("failed to create art: %w", err)
	}
	return a, nil
}

// UpdateART updates an ART keeping the number unique
func (s *obrasService) UpdateART(ctx context.Context, id int, a *models.ART) (*models.ART, error) {
	if _, err := s.GetART(ctx, id); err != nil {
		return nil, err
	}
	if err := s.validateART(ctx, a, id); err != nil {
		return nil, err
	}
	a.ID = id
	if err := s.artRepo.Update(ctx, a); err != nil {
		return nil, fmt.Errorf("failed to update art: %w", err)
	}
	return a, nil
}

// DeleteART removes an ART
func (s *obrasService) DeleteART(ctx context.Context, id int) error {
	if _, err := s.GetART(ctx, id); err != nil {
		return err
	}
	return s.artRepo.Delete(ctx, id)
}

// --- medições ---

// ListMedicoes returns medições, optionally filtered by obra
func (s *obrasService) ListMedicoes(ctx context.Context, obraID int) ([]models.Medicao, error) {
	return s.medicaoRepo.List(ctx, obraID)
}

// GetMedicao returns one medição
func (s *obrasService) GetMedicao(ctx context.Context, id int) (*models.Medicao, error) {
	m, err := s.medicaoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get medicao: %w", err)
	}
	if m == nil {
		return nil, NotFound("Medição não encontrada.")
	}
	return m, nil
}

func (s *obrasService) validateMedicao(ctx context.Context, m *models.Medicao, excludeID int) error {
	if m.NumeroMedicao <= 0 {
		return Invalid("Número da medição deve ser maior que zero.")
	}
	if _, err := s.GetObra(ctx, m.IDObra); err != nil {
		return err
	}
	exists, err := s.medicaoRepo.ExistsNumeroObra(ctx, m.IDObra, m.NumeroMedicao, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check medicao numero: %w", err)
	}
	if exists {
		return Conflict(fmt.Sprintf("A obra já possui a medição nº %d.", m.NumeroMedicao))
	}
	return nil
}

// CreateMedicao registers a medição keeping the number unique per obra
func (s *obrasService) CreateMedicao(ctx context.Context, m *models.Medicao) (*models.Medicao, error) {
	if err := s.validateMedicao(ctx, m, 0); err != nil {
		return nil, err
	}
	if err := s.medicaoRepo.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to create medicao: %w", err)
	}
	return m, nil
}

// UpdateMedicao updates a medição keeping the number unique per obra
func (s *obrasService) UpdateMedicao(ctx context.Context, id int, m *models.Medicao) (*models.Medicao, error) {
	if _, err := s.GetMedicao(ctx, id); err != nil {
		return nil, err
	}
	if err := s.validateMedicao(ctx, m, id); err != nil {
		return nil, err
	}
	m.ID = id
	if err := s.medicaoRepo.Update(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to update medicao: %w", err)
	}
	return m, nil
}

// DeleteMedicao removes a medição
func (s *obrasService) DeleteMedicao(ctx context.Context, id int) error {
	if _, err := s.GetMedicao(ctx, id); err != nil {
		return err
	}
	return s.medicaoRepo.Delete(ctx, id)
}

// --- avanços físicos ---

// ListAvancos returns avanços físicos, optionally filtered by obra
func (s *obrasService) ListAvancos(ctx context.Context, obraID int) ([]models.AvancoFisico, error) {
	return s.avancoRepo.List(ctx, obraID)
}

// GetAvanco returns one avanço físico
func (s *obrasService) GetAvanco(ctx context.Context, id int) (*models.AvancoFisico, error) {
	a, err := s.avancoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get avanco: %w", err)
	}
	if a == nil {
		return nil, NotFound("Avanço físico não encontrado.")
	}
	return a, nil
}

// limiteMessage turns a cap violation into a user-facing rejection that
// names the obra and the accumulated percentage
func (s *obrasService) limiteMessage(ctx context.Context, limite *repositories.ErrLimiteAvanco) error {
	nome := fmt.Sprintf("nº %d", limite.IDObra)
	if obra, err := s.obraRepo.GetByID(ctx, limite.IDObra); err == nil && obra != nil {
		nome = fmt.Sprintf("%s - %s", obra.NumeroObra, obra.NomeObra)
	}
	return Invalid(fmt.Sprintf(
		"O avanço de %.2f%% não pode ser lançado: a obra %s já acumula %.2f%% e o total ultrapassaria 100%%.",
		limite.Novo, nome, limite.Acumulado,
	))
}

func validatePercentual(p float64) error {
	if p < 0 || p > 100 {
		return Invalid("O percentual de avanço deve estar entre 0 e 100.")
	}
	return nil
}

// CreateAvanco registers an avanço físico. The accumulated progress of the
// obra, including this lançamento, may not exceed 100%.
func (s *obrasService) CreateAvanco(ctx context.Context, a *models.AvancoFisico) (*models.AvancoFisico, error) {
	if err := validatePercentual(a.Percentual); err != nil {
		return nil, err
	}
	if a.DataAvanco.IsZero() {
		return nil, Invalid("Data do avanço é obrigatória.")
	}
	if _, err := s.GetObra(ctx, a.IDObra); err != nil {
		return nil, err
	}

	if err := s.avancoRepo.Create(ctx, a); err != nil {
		var limite *repositories.ErrLimiteAvanco
		if errors.As(err, &limite) {
			return nil, s.limiteMessage(ctx, limite)
		}
		return nil, fmt.Errorf("failed to create avanco: %w", err)
	}
	return a, nil
}

// UpdateAvanco replaces an avanço físico under the same 100% cap, not
// counting the record being replaced
func (s *obrasService) UpdateAvanco(ctx context.Context, id int, a *models.AvancoFisico) (*models.AvancoFisico, error) {
	if _, err := s.GetAvanco(ctx, id); err != nil {
		return nil, err
	}
	if err := validatePercentual(a.Percentual); err != nil {
		return nil, err
	}
	if _, err := s.GetObra(ctx, a.IDObra); err != nil {
		return nil, err
	}

	a.ID = id
	if err := s.avancoRepo.Update(ctx, a); err != nil {
		var limite *repositories.ErrLimiteAvanco
		if errors.As(err, &limite) {
			return nil, s.limiteMessage(ctx, limite)
		}
		return nil, fmt.Errorf("failed to update avanco: %w", err)
	}
	return a, nil
}

// DeleteAvanco removes an avanço físico
func (s *obrasService) DeleteAvanco(ctx context.Context, id int) error {
	if _, err := s.GetAvanco(ctx, id); err != nil {
		return err
	}
	return s.avancoRepo.Delete(ctx, id)
}

// --- seguros ---

// ListSeguros returns seguros, optionally filtered by obra
func (s *obrasService) ListSeguros(ctx context.Context, obraID int) ([]models.Seguro, error) {
	return s.seguroRepo.List(ctx, obraID)
}

// GetSeguro returns one seguro
func (s *obrasService) GetSeguro(ctx context.Context, id int) (*models.Seguro, error) {
	sg, err := s.seguroRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get seguro: %w", err)
	}
	if sg == nil {
		return nil, NotFound("Seguro não encontrado.")
	}
	return sg, nil
}

func (s *obrasService) validateSeguro(ctx context.Context, sg *models.Seguro, excludeID int) error {
	if sg.NumeroApolice == "" || sg.Seguradora == "" {
		return Invalid("Número da apólice e seguradora são obrigatórios.")
	}
	if _, err := s.GetObra(ctx, sg.IDObra); err != nil {
		return err
	}
	exists, err := s.seguroRepo.ExistsApolice(ctx, sg.NumeroApolice, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check apolice: %w", err)
	}
	if exists {
		return Conflict(fmt.Sprintf("Apólice '%s' já cadastrada.", sg.NumeroApolice))
	}
	return nil
}

// CreateSeguro registers a seguro after checking the policy number is free
func (s *obrasService) CreateSeguro(ctx context.Context, sg *models.Seguro) (*models.Seguro, error) {
	if err := s.validateSeguro(ctx, sg, 0); err != nil {
		return nil, err
	}
	if err := s.seguroRepo.Create(ctx, sg); err != nil {
		return nil, fmt.Errorf("failed to create seguro: %w", err)
	}
	return sg, nil
}

// UpdateSeguro updates a seguro keeping the policy number unique
func (s *obrasService) UpdateSeguro(ctx context.Context, id int, sg *models.Seguro) (*models.Seguro, error) {
	if _, err := s.GetSeguro(ctx, id); err != nil {
		return nil, err
	}
	if err := s.validateSeguro(ctx, sg, id); err != nil {
		return nil, err
	}
	sg.ID = id
	if err := s.seguroRepo.Update(ctx, sg); err != nil {
		return nil, fmt.Errorf("failed to update seguro: %w", err)
	}
	return sg, nil
}

// DeleteSeguro removes a seguro
func (s *obrasService) DeleteSeguro(ctx context.Context, id int) error {
	if _, err := s.GetSeguro(ctx, id); err != nil {
		return err
	}
	return s.seguroRepo.Delete(ctx, id)
}

// --- REIDIs ---

// ListREIDIs returns REIDIs, optionally filtered by obra
func (s *obrasService) ListREIDIs(ctx context.Context, obraID int) ([]models.REIDI, error) {
	return s.reidiRepo.List(ctx, obraID)
}

// GetREIDI returns one REIDI
func (s *obrasService) GetREIDI(ctx context.Context, id int) (*models.REIDI, error) {
	re, err := s.reidiRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get reidi: %w", err)
	}
	if re == nil {
		return nil, NotFound("REIDI não encontrado.")
	}
	return re, nil
}

func (s *obrasService) validateREIDI(ctx context.Context, re *models.REIDI, excludeID int) error {
	if re.NumeroPortaria == "" {
		return Invalid("Número da portaria é obrigatório.")
	}
	if _, err := s.GetObra(ctx, re.IDObra); err != nil {
		return err
	}
	exists, err := s.reidiRepo.ExistsPortaria(ctx, re.NumeroPortaria, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check portaria: %w", err)
	}
	if exists {
		return Conflict(fmt.Sprintf("Portaria '%s' já cadastrada.", re.NumeroPortaria))
	}
	return nil
}

// CreateREIDI registers a REIDI after checking the portaria number is free
func (s *obrasService) CreateREIDI(ctx context.Context, re *models.REIDI) (*models.REIDI, error) {
	if err := s.validateREIDI(ctx, re, 0); err != nil {
		return nil, err
	}
	if err := s.reidiRepo.Create(ctx, re); err != nil {
		return nil, fmt.Errorf("failed to create reidi: %w", err)
	}
	return re, nil
}

// UpdateREIDI updates a REIDI keeping the portaria number unique
func (s *obrasService) UpdateREIDI(ctx context.Context, id int, re *models.REIDI) (*models.REIDI, error) {
	if _, err := s.GetREIDI(ctx, id); err != nil {
		return nil, err
	}
	if err := s.validateREIDI(ctx, re, id); err != nil {
		return nil, err
	}
	re.ID = id
	if err := s.reidiRepo.Update(ctx, re); err != nil {
		return nil, fmt.Errorf("failed to update reidi: %w", err)
	}
	return re, nil
}

// DeleteREIDI removes a REIDI
func (s *obrasService) DeleteREIDI(ctx context.Context, id int) error {
	if _, err := s.GetREIDI(ctx, id); err != nil {
		return err
	}
	return s.reidiRepo.Delete(ctx, id)
}
