package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lumob/backend/internal/models"
	"go.uber.org/zap"
)

// ObraFilter holds the optional list filters for obras
type ObraFilter struct {
	Numero string
	Nome   string
	Status string
}

// obraRepository handles the obras table
type obraRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewObraRepository creates a new obra repository
func NewObraRepository(db *sql.DB, logger *zap.Logger) *obraRepository {
	return &obraRepository{
		db:     db,
		logger: logger,
	}
}

const obraSelect = `
	SELECT
		o.ID_Obras, o.ID_Contratos, o.Numero_Obra, o.Nome_Obra, o.Endereco_Obra,
		o.Escopo_Obra, o.Valor_Obra, o.Valor_Aditivo_Total, o.Status_Obra,
		o.Data_Inicio_Prevista, o.Data_Fim_Prevista,
		ct.Numero_Contrato, cl.Nome_Cliente
	FROM obras o
	LEFT JOIN contratos ct ON o.ID_Contratos = ct.ID_Contratos
	LEFT JOIN clientes cl ON ct.ID_Clientes = cl.ID_Clientes
`

func scanObra(rows *sql.Rows) (*models.Obra, error) {
	o := &models.Obra{}
	var endereco, escopo, numeroContrato, nomeCliente sql.NullString
	var valorAditivo sql.NullFloat64

	if err := rows.Scan(
		&o.ID, &o.IDContrato, &o.NumeroObra, &o.NomeObra, &endereco,
		&escopo, &o.ValorObra, &valorAditivo, &o.StatusObra,
		&o.DataInicioPrevista, &o.DataFimPrevista,
		&numeroContrato, &nomeCliente,
	); err != nil {
		return nil, fmt.Errorf("failed to scan obra: %w", err)
	}

	o.EnderecoObra = endereco.String
	o.EscopoObra = escopo.String
	o.ValorAditivoTotal = valorAditivo.Float64
	o.NumeroContrato = numeroContrato.String
	o.NomeCliente = nomeCliente.String
	return o, nil
}

// List returns obras, optionally filtered
func (r *obraRepository) List(ctx context.Context, filter ObraFilter) ([]models.Obra, error) {
	query := obraSelect + ` WHERE 1=1`
	var args []any

	if filter.Numero != "" {
		query += ` AND o.Numero_Obra LIKE ?`
		args = append(args, "%"+filter.Numero+"%")
	}
	if filter.Nome != "" {
		query += ` AND o.Nome_Obra LIKE ?`
		args = append(args, "%"+filter.Nome+"%")
	}
	if filter.Status != "" {
		query += ` AND o.Status_Obra = ?`
		args = append(args, filter.Status)
	}
	query += ` ORDER BY o.Numero_Obra`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to list obras", zap.Error(err))
		return nil, fmt.Errorf("failed to list obras: %w", err)
	}
	defer rows.Close()

	var obras []models.Obra
	for rows.Next() {
		o, err := scanObra(rows)
		if err != nil {
			return nil, err
		}
		obras = append(obras, *o)
	}
	return obras, rows.Err()
}

// GetByID retrieves one obra. Returns (nil, nil) when no row matches.
func (r *obraRepository) GetByID(ctx context.Context, id int) (*models.Obra, error) {
	rows, err := r.db.QueryContext(ctx, obraSelect+` WHERE o.ID_Obras = ?`, id)
	if err != nil {
		r.logger.Error("failed to get obra", zap.Error(err), zap.Int("id", id))
		return nil, fmt.Errorf("failed to get obra: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanObra(rows)
}

// ExistsNumero checks whether another obra already holds the given number.
// excludeID skips the record being updated; pass 0 on create.
func (r *obraRepository) ExistsNumero(ctx context.Context, numero string, excludeID int) (bool, error) {
	query := `SELECT COUNT(*) FROM obras WHERE Numero_Obra = ? AND ID_Obras != ?`

	var count int
	if err := r.db.QueryRowContext(ctx, query, numero, excludeID).Scan(&count); err != nil {
		r.logger.Error("failed to check obra numero", zap.Error(err))
		return false, fmt.Errorf("failed to check obra numero: %w", err)
	}
	return count > 0, nil
}

// Create inserts a new obra
func (r *obraRepository) Create(ctx context.Context, o *models.Obra) error {
	query := `
		INSERT INTO obras
			(ID_Contratos, Numero_Obra, Nome_Obra, Endereco_Obra, Escopo_Obra,
			 Valor_Obra, Valor_Aditivo_Total, Status_Obra, Data_Inicio_Prevista, Data_Fim_Prevista,
			 Data_Criacao, Data_Modificacao)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())
	`

	result, err := r.db.ExecContext(ctx, query,
		o.IDContrato, o.NumeroObra, o.NomeObra, nullif(o.EnderecoObra), nullif(o.EscopoObra),
		o.ValorObra, o.ValorAditivoTotal, o.StatusObra, o.DataInicioPrevista, o.DataFimPrevista,
	)
	if err != nil {
		r.logger.Error("failed to create obra", zap.Error(err))
		return fmt.Errorf("failed to create obra: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	o.ID = int(id)
	return nil
}

// Update updates an obra
func (r *obraRepository) Update(ctx context.Context, o *models.Obra) error {
	query := `
		UPDATE obras
		SET ID_Contratos = ?, Numero_Obra = ?, Nome_Obra = ?, Endereco_Obra = ?, Escopo_Obra = ?,
			Valor_Obra = ?, Valor_Aditivo_Total = ?, Status_Obra = ?,
			Data_Inicio_Prevista = ?, Data_Fim_Prevista = ?, Data_Modificacao = NOW()
		WHERE ID_Obras = ?
	`

	if _, err := r.db.ExecContext(ctx, query,
		o.IDContrato, o.NumeroObra, o.NomeObra, nullif(o.EnderecoObra), nullif(o.EscopoObra),
		o.ValorObra, o.ValorAditivoTotal, o.StatusObra, o.DataInicioPrevista, o.DataFimPrevista,
		o.ID,
	); err != nil {
		r.logger.Error("failed to update obra", zap.Error(err), zap.Int("id", o.ID))
		return fmt.Errorf("failed to update obra: %w", err)
	}
	return nil
}

// Delete removes an obra
func (r *obraRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM obras WHERE ID_Obras = ?`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		r.logger.Error("failed to delete obra", zap.Error(err), zap.Int("id", id))
		return fmt.Errorf("failed to delete obra: %w", err)
	}
	return nil
}

// StatusCounts returns the number of obras grouped by status
func (r *obraRepository) StatusCounts(ctx context.Context) (map[string]int, error) {
	query := `SELECT Status_Obra, COUNT(*) FROM obras GROUP BY Status_Obra`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("failed to count obras by status", zap.Error(err))
		return nil, fmt.Errorf("failed to count obras by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan obra status count: %w", err)
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

// AvancoMedioObrasAtivas averages the latest avanço físico of every obra
// in execution. Obras without any lançamento count as zero.
func (r *obraRepository) AvancoMedioObrasAtivas(ctx context.Context) (float64, error) {
	query := `
		SELECT COALESCE(AVG(COALESCE(ult.total, 0)), 0)
		FROM obras o
		LEFT JOIN (
			SELECT ID_Obras, SUM(Percentual_Avanco_Fisico) AS total
			FROM avancos_fisicos
			GROUP BY ID_Obras
		) ult ON o.ID_Obras = ult.ID_Obras
		WHERE o.Status_Obra = 'Em Andamento'
	`

	var media float64
	if err := r.db.QueryRowContext(ctx, query).Scan(&media); err != nil {
		r.logger.Error("failed to average avanco of active obras", zap.Error(err))
		return 0, fmt.Errorf("failed to average avanco of active obras: %w", err)
	}
	return media, nil
}
