package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumob/backend/internal/models"
	"github.com/lumob/backend/internal/repositories"
)

// mockObraRepository is a mock implementation of ObraRepository
type mockObraRepository struct {
	obras       []models.Obra
	obra        *models.Obra
	exists      bool
	statusCount map[string]int
	avancoMedio float64
	err         error
}

func (m *mockObraRepository) List(ctx context.Context, filter repositories.ObraFilter) ([]models.Obra, error) {
	return m.obras, m.err
}

func (m *mockObraRepository) GetByID(ctx context.Context, id int) (*models.Obra, error) {
	return m.obra, m.err
}

func (m *mockObraRepository) ExistsNumero(ctx context.Context, numero string, excludeID int) (bool, error) {
	return m.exists, m.err
}

func (m *mockObraRepository) Create(ctx context.Context, o *models.Obra) error {
	return m.err
}

func (m *mockObraRepository) Update(ctx context.Context, o *models.Obra) error {
	return m.err
}

func (m *mockObraRepository) Delete(ctx context.Context, id int) error {
	return m.err
}

func (m *mockObraRepository) StatusCounts(ctx context.Context) (map[string]int, error) {
	return m.statusCount, m.err
}

func (m *mockObraRepository) AvancoMedioObrasAtivas(ctx context.Context) (float64, error) {
	return m.avancoMedio, m.err
}

// mockAvancoRepository is a mock implementation of AvancoRepository
type mockAvancoRepository struct {
	avancos   []models.AvancoFisico
	avanco    *models.AvancoFisico
	createErr error
	updateErr error
	err       error
}

func (m *mockAvancoRepository) List(ctx context.Context, obraID int) ([]models.AvancoFisico, error) {
	return m.avancos, m.err
}

func (m *mockAvancoRepository) GetByID(ctx context.Context, id int) (*models.AvancoFisico, error) {
	return m.avanco, m.err
}

func (m *mockAvancoRepository) Create(ctx context.Context, a *models.AvancoFisico) error {
	return m.createErr
}

func (m *mockAvancoRepository) Update(ctx context.Context, a *models.AvancoFisico) error {
	return m.updateErr
}

func (m *mockAvancoRepository) Delete(ctx context.Context, id int) error {
	return m.err
}

// mockContratoRepository is a mock implementation of ContratoRepository
type mockContratoRepository struct {
	contratos  []models.Contrato
	contrato   *models.Contrato
	exists     bool
	somaAtivos float64
	err        error
}

func (m *mockContratoRepository) List(ctx context.Context, filter repositories.ContratoFilter) ([]models.Contrato, error) {
	return m.contratos, m.err
}

func (m *mockContratoRepository) GetByID(ctx context.Context, id int) (*models.Contrato, error) {
	return m.contrato, m.err
}

func (m *mockContratoRepository) ExistsNumero(ctx context.Context, numero string, excludeID int) (bool, error) {
	return m.exists, m.err
}

func (m *mockContratoRepository) Create(ctx context.Context, c *models.Contrato) error {
	return m.err
}

func (m *mockContratoRepository) Update(ctx context.Context, c *models.Contrato) error {
	return m.err
}

func (m *mockContratoRepository) Delete(ctx context.Context, id int) error {
	return m.err
}

func (m *mockContratoRepository) SomaContratosAtivos(ctx context.Context) (float64, error) {
	return m.somaAtivos, m.err
}

// mockMedicaoRepository is a mock implementation of MedicaoRepository
type mockMedicaoRepository struct {
	medicoes      []models.Medicao
	medicao       *models.Medicao
	exists        bool
	somaAprovadas float64
	err           error
}

func (m *mockMedicaoRepository) List(ctx context.Context, obraID int) ([]models.Medicao, error) {
	return m.medicoes, m.err
}

func (m *mockMedicaoRepository) GetByID(ctx context.Context, id int) (*models.Medicao, error) {
	return m.medicao, m.err
}

func (m *mockMedicaoRepository) ExistsNumeroObra(ctx context.Context, obraID, numero, excludeID int) (bool, error) {
	return m.exists, m.err
}

func (m *mockMedicaoRepository) Create(ctx context.Context, md *models.Medicao) error {
	return m.err
}

func (m *mockMedicaoRepository) Update(ctx context.Context, md *models.Medicao) error {
	return m.err
}

func (m *mockMedicaoRepository) Delete(ctx context.Context, id int) error {
	return m.err
}

func (m *mockMedicaoRepository) SomaMedicoesAprovadas(ctx context.Context) (float64, error) {
	return m.somaAprovadas, m.err
}

func newAvancoTestService(obraRepo *mockObraRepository, avancoRepo *mockAvancoRepository) *obrasService {
	return NewObrasService(nil, nil, obraRepo, nil, nil, avancoRepo, nil, nil)
}

func TestObrasService_CreateAvanco(t *testing.T) {
	obra := &models.Obra{ID: 7, NumeroObra: "OBR-007", NomeObra: "Subestação Leste"}
	dia := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		avanco        *models.AvancoFisico
		obraRepo      *mockObraRepository
		avancoRepo    *mockAvancoRepository
		expectedError error
		errorContains string
	}{
		{
			name:       "success",
			avanco:     &models.AvancoFisico{IDObra: 7, Percentual: 40, DataAvanco: dia},
			obraRepo:   &mockObraRepository{obra: obra},
			avancoRepo: &mockAvancoRepository{},
		},
		{
			name:       "zero percent accepted",
			avanco:     &models.AvancoFisico{IDObra: 7, Percentual: 0, DataAvanco: dia},
			obraRepo:   &mockObraRepository{obra: obra},
			avancoRepo: &mockAvancoRepository{},
		},
		{
			name:          "negative percent rejected",
			avanco:        &models.AvancoFisico{IDObra: 7, Percentual: -0.5, DataAvanco: dia},
			obraRepo:      &mockObraRepository{obra: obra},
			avancoRepo:    &mockAvancoRepository{},
			expectedError: ErrInvalid,
		},
		{
			name:          "over 100 percent rejected",
			avanco:        &models.AvancoFisico{IDObra: 7, Percentual: 100.01, DataAvanco: dia},
			obraRepo:      &mockObraRepository{obra: obra},
			avancoRepo:    &mockAvancoRepository{},
			expectedError: ErrInvalid,
		},
		{
			name:          "missing date rejected",
			avanco:        &models.AvancoFisico{IDObra: 7, Percentual: 10},
			obraRepo:      &mockObraRepository{obra: obra},
			avancoRepo:    &mockAvancoRepository{},
			expectedError: ErrInvalid,
		},
		{
			name:          "unknown obra rejected",
			avanco:        &models.AvancoFisico{IDObra: 99, Percentual: 10, DataAvanco: dia},
			obraRepo:      &mockObraRepository{obra: nil},
			avancoRepo:    &mockAvancoRepository{},
			expectedError: ErrNotFound,
		},
		{
			name:     "accumulation cap exceeded",
			avanco:   &models.AvancoFisico{IDObra: 7, Percentual: 41, DataAvanco: dia},
			obraRepo: &mockObraRepository{obra: obra},
			avancoRepo: &mockAvancoRepository{
				createErr: &repositories.ErrLimiteAvanco{IDObra: 7, Acumulado: 60, Novo: 41},
			},
			expectedError: ErrInvalid,
			errorContains: "OBR-007 - Subestação Leste já acumula 60.00%",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newAvancoTestService(tt.obraRepo, tt.avancoRepo)

			created, err := svc.CreateAvanco(context.Background(), tt.avanco)

			if tt.expectedError != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedError)
				if tt.errorContains != "" {
					assert.Contains(t, err.Error(), tt.errorContains)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.avanco, created)
		})
	}
}

func TestObrasService_UpdateAvanco_CapExceeded(t *testing.T) {
	obra := &models.Obra{ID: 7, NumeroObra: "OBR-007", NomeObra: "Subestação Leste"}
	avancoRepo := &mockAvancoRepository{
		avanco:    &models.AvancoFisico{ID: 3, IDObra: 7, Percentual: 20},
		updateErr: &repositories.ErrLimiteAvanco{IDObra: 7, Acumulado: 80, Novo: 30},
	}
	svc := newAvancoTestService(&mockObraRepository{obra: obra}, avancoRepo)

	_, err := svc.UpdateAvanco(context.Background(), 3, &models.AvancoFisico{
		IDObra: 7, Percentual: 30, DataAvanco: time.Now(),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "ultrapassaria 100%")
}

func TestObrasService_CreateAvanco_CapMessageWithoutObraName(t *testing.T) {
	// When the obra lookup fails after the cap fires, the message falls back
	// to the numeric id.
	obraRepo := &mockObraRepository{obra: &models.Obra{ID: 7, NumeroObra: "OBR-007", NomeObra: "Subestação Leste"}}
	avancoRepo := &mockAvancoRepository{
		createErr: &repositories.ErrLimiteAvanco{IDObra: 7, Acumulado: 95.5, Novo: 10},
	}
	svc := newAvancoTestService(obraRepo, avancoRepo)

	_, err := svc.CreateAvanco(context.Background(), &models.AvancoFisico{
		IDObra: 7, Percentual: 10, DataAvanco: time.Now(),
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "95.50%")
	assert.Contains(t, err.Error(), "10.00%")
}

func TestObrasService_Dashboard(t *testing.T) {
	obraRepo := &mockObraRepository{
		statusCount: map[string]int{"Em Andamento": 3, "Planejamento": 2},
		avancoMedio: 42.5,
	}
	contratoRepo := &mockContratoRepository{somaAtivos: 1500000}
	medicaoRepo := &mockMedicaoRepository{somaAprovadas: 320000}

	svc := NewObrasService(nil, contratoRepo, obraRepo, nil, medicaoRepo, &mockAvancoRepository{}, nil, nil)

	dashboard, err := svc.Dashboard(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 5, dashboard.TotalObras)
	assert.Equal(t, 3, dashboard.ObrasPorStatus["Em Andamento"])
	assert.Equal(t, float64(1500000), dashboard.ValorContratosAtivos)
	assert.Equal(t, float64(320000), dashboard.ValorMedicoesRealizadas)
	assert.Equal(t, 42.5, dashboard.AvancoMedioObrasAtivas)
}

func TestObrasService_CreateContrato_DuplicateNumero(t *testing.T) {
	contratoRepo := &mockContratoRepository{exists: true}
	clienteRepo := &mockClienteRepository{cliente: &models.Cliente{ID: 1, NomeCliente: "Energisa"}}

	svc := NewObrasService(clienteRepo, contratoRepo, nil, nil, nil, nil, nil, nil)

	_, err := svc.CreateContrato(context.Background(), &models.Contrato{
		IDCliente:      1,
		NumeroContrato: "CT-2025-001",
		ValorContrato:  100000,
		StatusContrato: "Ativo",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
}

// mockClienteRepository is a mock implementation of ClienteRepository
type mockClienteRepository struct {
	clientes []models.Cliente
	cliente  *models.Cliente
	exists   bool
	err      error
}

func (m *mockClienteRepository) List(ctx context.Context) ([]models.Cliente, error) {
	return m.clientes, m.err
}

func (m *mockClienteRepository) GetByID(ctx context.Context, id int) (*models.Cliente, error) {
	return m.cliente, m.err
}

func (m *mockClienteRepository) ExistsCnpj(ctx context.Context, cnpj string, excludeID int) (bool, error) {
	return m.exists, m.err
}

func (m *mockClienteRepository) Create(ctx context.Context, c *models.Cliente) error {
	return m.err
}

func (m *mockClienteRepository) Update(ctx context.Context, c *models.Cliente) error {
	return m.err
}

func (m *mockClienteRepository) Delete(ctx context.Context, id int) error {
	return m.err
}

func TestObrasService_CreateObra(t *testing.T) {
	contrato := &models.Contrato{ID: 3, NumeroContrato: "CT-2025-001"}
	idContrato := 3

	tests := []struct {
		name          string
		obra          *models.Obra
		obraRepo      *mockObraRepository
		contratoRepo  *mockContratoRepository
		expectedError error
	}{
		{
			name:         "success",
			obra:         &models.Obra{NumeroObra: "OBR-010", NomeObra: "LT 138kV", IDContrato: &idContrato},
			obraRepo:     &mockObraRepository{},
			contratoRepo: &mockContratoRepository{contrato: contrato},
		},
		{
			name:          "missing contrato rejected",
			obra:          &models.Obra{NumeroObra: "OBR-010", NomeObra: "LT 138kV"},
			obraRepo:      &mockObraRepository{},
			contratoRepo:  &mockContratoRepository{contrato: contrato},
			expectedError: ErrInvalid,
		},
		{
			name:          "unknown contrato rejected",
			obra:          &models.Obra{NumeroObra: "OBR-010", NomeObra: "LT 138kV", IDContrato: &idContrato},
			obraRepo:      &mockObraRepository{},
			contratoRepo:  &mockContratoRepository{contrato: nil},
			expectedError: ErrNotFound,
		},
		{
			name:          "duplicate numero rejected",
			obra:          &models.Obra{NumeroObra: "OBR-010", NomeObra: "LT 138kV", IDContrato: &idContrato},
			obraRepo:      &mockObraRepository{exists: true},
			contratoRepo:  &mockContratoRepository{contrato: contrato},
			expectedError: ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewObrasService(nil, tt.contratoRepo, tt.obraRepo, nil, nil, nil, nil, nil)

			created, err := svc.CreateObra(context.Background(), tt.obra)

			if tt.expectedError != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.obra, created)
		})
	}
}

func TestObrasService_GetObra_NotFound(t *testing.T) {
	svc := newAvancoTestService(&mockObraRepository{obra: nil}, &mockAvancoRepository{})

	_, err := svc.GetObra(context.Background(), 42)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestObrasService_ListAvancos(t *testing.T) {
	avancoRepo := &mockAvancoRepository{
		avancos: []models.AvancoFisico{{ID: 1, IDObra: 7, Percentual: 25}},
	}
	svc := newAvancoTestService(&mockObraRepository{}, avancoRepo)

	avancos, err := svc.ListAvancos(context.Background(), 7)

	require.NoError(t, err)
	require.Len(t, avancos, 1)
	assert.Equal(t, 25.0, avancos[0].Percentual)
}

func TestErrLimiteAvancoClassification(t *testing.T) {
	var target *repositories.ErrLimiteAvanco
	err := error(&repositories.ErrLimiteAvanco{IDObra: 1, Acumulado: 99, Novo: 2})

	assert.True(t, errors.As(err, &target))
	assert.Equal(t, 99.0, target.Acumulado)
}
