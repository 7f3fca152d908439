package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lumob/backend/internal/models"
	"go.uber.org/zap"
)

// ContratoFilter holds the optional list filters for contratos.
// Numero matches as a substring of Numero_Contrato.
type ContratoFilter struct {
	Numero    string
	ClienteID int
	Status    string
}

// contratoRepository handles the contratos table
type contratoRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewContratoRepository creates a new contrato repository
func NewContratoRepository(db *sql.DB, logger *zap.Logger) *contratoRepository {
	return &contratoRepository{
		db:     db,
		logger: logger,
	}
}

const contratoSelect = `
	SELECT
		ct.ID_Contratos, ct.ID_Clientes, ct.Numero_Contrato, ct.Valor_Contrato,
		ct.Data_Assinatura, ct.Data_Ordem_Inicio, ct.Prazo_Contrato_Dias,
		ct.Data_Termino_Previsto, ct.Status_Contrato, ct.Observacoes,
		cl.Nome_Cliente
	FROM contratos ct
	LEFT JOIN clientes cl ON ct.ID_Clientes = cl.ID_Clientes
`

func scanContrato(rows *sql.Rows) (*models.Contrato, error) {
	c := &models.Contrato{}
	var observacoes, nomeCliente sql.NullString
	var prazoDias sql.NullInt64

	if err := rows.Scan(
		&c.ID, &c.IDCliente, &c.NumeroContrato, &c.ValorContrato,
		&c.DataAssinatura, &c.DataOrdemInicio, &prazoDias,
		&c.DataTerminoPrevisto, &c.StatusContrato, &observacoes,
		&nomeCliente,
	); err != nil {
		return nil, fmt.Errorf("failed to scan contrato: %w", err)
	}

	c.PrazoContratoDias = int(prazoDias.Int64)
	c.Observacoes = observacoes.String
	c.NomeCliente = nomeCliente.String
	return c, nil
}

// List returns contratos, optionally filtered
func (r *contratoRepository) List(ctx context.Context, filter ContratoFilter) ([]models.Contrato, error) {
	query := contratoSelect + ` WHERE 1=1`
	var args []any

	if filter.Numero != "" {
		query += ` AND ct.Numero_Contrato LIKE ?`
		args = append(args, "%"+filter.Numero+"%")
	}
	if filter.ClienteID > 0 {
		query += ` AND ct.ID_Clientes = ?`
		args = append(args, filter.ClienteID)
	}
	if filter.Status != "" {
		query += ` AND ct.Status_Contrato = ?`
		args = append(args, filter.Status)
	}
	query += ` ORDER BY ct.Numero_Contrato`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to list contratos", zap.Error(err))
		return nil, fmt.Errorf("failed to list contratos: %w", err)
	}
	defer rows.Close()

	var contratos []models.Contrato
	for rows.Next() {
		c, err := scanContrato(rows)
		if err != nil {
			return nil, err
		}
		contratos = append(contratos, *c)
	}
	return contratos, rows.Err()
}

// GetByID retrieves one contrato. Returns (nil, nil) when no row matches.
func (r *contratoRepository) GetByID(ctx context.Context, id int) (*models.Contrato, error) {
	rows, err := r.db.QueryContext(ctx, contratoSelect+` WHERE ct.ID_Contratos = ?`, id)
	if err != nil {
		r.logger.Error("failed to get contrato", zap.Error(err), zap.Int("id", id))
		return nil, fmt.Errorf("failed to get contrato: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanContrato(rows)
}

// ExistsNumero checks whether another contrato already holds the given number.
// excludeID skips the record being updated; pass 0 on create.
func (r *contratoRepository) ExistsNumero(ctx context.Context, numero string, excludeID int) (bool, error) {
	query := `SELECT COUNT(*) FROM contratos WHERE Numero_Contrato = ? AND ID_Contratos != ?`

	var count int
	if err := r.db.QueryRowContext(ctx, query, numero, excludeID).Scan(&count); err != nil {
		r.logger.Error("failed to check contrato numero", zap.Error(err))
		return false, fmt.Errorf("failed to check contrato numero: %w", err)
	}
	return count > 0, nil
}

// Create inserts a new contrato
func (r *contratoRepository) Create(ctx context.Context, c *models.Contrato) error {
	query := `
		INSERT INTO contratos
			(ID_Clientes, Numero_Contrato, Valor_Contrato, Data_Assinatura, Data_Ordem_Inicio,
			 Prazo_Contrato_Dias, Data_Termino_Previsto, Status_Contrato, Observacoes,
			 Data_Criacao, Data_Modificacao)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())
	`

	result, err := r.db.ExecContext(ctx, query,
		c.IDCliente, c.NumeroContrato, c.ValorContrato, c.DataAssinatura, c.DataOrdemInicio,
		c.PrazoContratoDias, c.DataTerminoPrevisto, c.StatusContrato, nullif(c.Observacoes),
	)
	if err != nil {
		r.logger.Error("failed to create contrato", zap.Error(err))
		return fmt.Errorf("failed to create contrato: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	c.ID = int(id)
	return nil
}

// Update updates a contrato
func (r *contratoRepository) Update(ctx context.Context, c *models.Contrato) error {
	query := `
		UPDATE contratos
		SET ID_Clientes = ?, Numero_Contrato = ?, Valor_Contrato = ?, Data_Assinatura = ?,
			Data_Ordem_Inicio = ?, Prazo_Contrato_Dias = ?, Data_Termino_Previsto = ?,
			Status_Contrato = ?, Observacoes = ?, Data_Modificacao = NOW()
		WHERE ID_Contratos = ?
	`

	if _, err := r.db.ExecContext(ctx, query,
		c.IDCliente, c.NumeroContrato, c.ValorContrato, c.DataAssinatura, c.DataOrdemInicio,
		c.PrazoContratoDias, c.DataTerminoPrevisto, c.StatusContrato, nullif(c.Observacoes), c.ID,
	); err != nil {
		r.logger.Error("failed to update contrato", zap.Error(err), zap.Int("id", c.ID))
		return fmt.Errorf("failed to update contrato: %w", err)
	}
	return nil
}

// Delete removes a contrato
func (r *contratoRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM contratos WHERE ID_Contratos = ?`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		r.logger.Error("failed to delete contrato", zap.Error(err), zap.Int("id", id))
		return fmt.Errorf("failed to delete contrato: %w", err)
	}
	return nil
}

// SomaContratosAtivos returns the total value of contracts in the given status
func (r *contratoRepository) SomaContratosAtivos(ctx context.Context) (float64, error) {
	query := `SELECT COALESCE(SUM(Valor_Contrato), 0) FROM contratos WHERE Status_Contrato = 'Ativo'`

	var total float64
	if err := r.db.QueryRowContext(ctx, query).Scan(&total); err != nil {
		r.logger.Error("failed to sum contratos ativos", zap.Error(err))
		return 0, fmt.Errorf("failed to sum contratos ativos: %w", err)
	}
	return total, nil
}
