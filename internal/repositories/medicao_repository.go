package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lumob/backend/internal/models"
	"go.uber.org/zap"
)

// medicaoRepository handles the medicoes table
type medicaoRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewMedicaoRepository creates a new medição repository
func NewMedicaoRepository(db *sql.DB, logger *zap.Logger) *medicaoRepository {
	return &medicaoRepository{
		db:     db,
		logger: logger,
	}
}

const medicaoSelect = `
	SELECT
		m.ID_Medicoes, m.ID_Obras, m.Numero_Medicao, m.Valor_Medicao, m.Data_Medicao,
		m.Mes_Referencia, m.Data_Aprovacao, m.Status_Medicao, m.Observacao_Medicao,
		o.Numero_Obra, o.Nome_Obra
	FROM medicoes m
	LEFT JOIN obras o ON m.ID_Obras = o.ID_Obras
`

func scanMedicao(rows *sql.Rows) (*models.Medicao, error) {
	m := &models.Medicao{}
	var mesReferencia, observacao, numeroObra, nomeObra sql.NullString

	if err := rows.Scan(
		&m.ID, &m.IDObra, &m.NumeroMedicao, &m.ValorMedicao, &m.DataMedicao,
		&mesReferencia, &m.DataAprovacao, &m.StatusMedicao, &observacao,
		&numeroObra, &nomeObra,
	); err != nil {
		return nil, fmt.Errorf("failed to scan medicao: %w", err)
	}

	m.MesReferencia = mesReferencia.String
	m.ObservacaoMedicao = observacao.String
	m.NumeroObra = numeroObra.String
	m.NomeObra = nomeObra.String
	return m, nil
}

// List returns medições, optionally filtered by obra
func (r *medicaoRepository) List(ctx context.Context, obraID int) ([]models.Medicao, error) {
	query := medicaoSelect + ` WHERE 1=1`
	var args []any

	if obraID > 0 {
		query += ` AND m.ID_Obras = ?`
		args = append(args, obraID)
	}
	query += ` ORDER BY o.Numero_Obra, m.Numero_Medicao`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to list medicoes", zap.Error(err))
		return nil, fmt.Errorf("failed to list medicoes: %w", err)
	}
	defer rows.Close()

	var medicoes []models.Medicao
	for rows.Next() {
		m, err := scanMedicao(rows)
		if err != nil {
			return nil, err
		}
		medicoes = append(medicoes, *m)
	}
	return medicoes, rows.Err()
}

// GetByID retrieves one medição. Returns (nil, nil) when no row matches.
func (r *medicaoRepository) GetByID(ctx context.Context, id int) (*models.Medicao, error) {
	rows, err := r.db.QueryContext(ctx, medicaoSelect+` WHERE m.ID_Medicoes = ?`, id)
	if err != nil {
		r.logger.Error("failed to get medicao", zap.Error(err), zap.Int("id", id))
		return nil, fmt.Errorf("failed to get medicao: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanMedicao(rows)
}

// ExistsNumeroObra checks whether the obra already has a medição with the
// given sequential number. excludeID skips the record being updated.
func (r *medicaoRepository) ExistsNumeroObra(ctx context.Context, obraID, numero, excludeID int) (bool, error) {
	query := `SELECT COUNT(*) FROM medicoes WHERE ID_Obras = ? AND Numero_Medicao = ? AND ID_Medicoes != ?`

	var count int
	if err := r.db.QueryRowContext(ctx, query, obraID, numero, excludeID).Scan(&count); err != nil {
		r.logger.Error("failed to check medicao numero", zap.Error(err))
		return false, fmt.Errorf("failed to check medicao numero: %w", err)
	}
	return count > 0, nil
}

// Create inserts a new medição
func (r *medicaoRepository) Create(ctx context.Context, m *models.Medicao) error {
	query := `
		INSERT INTO medicoes
			(ID_Obras, Numero_Medicao, Valor_Medicao, Data_Medicao, Mes_Referencia,
			 Data_Aprovacao, Status_Medicao, Observacao_Medicao, Data_Criacao, Data_Modificacao)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())
	`

	result, err := r.db.ExecContext(ctx, query,
		m.IDObra, m.NumeroMedicao, m.ValorMedicao, m.DataMedicao, nullif(m.MesReferencia),
		m.DataAprovacao, m.StatusMedicao, nullif(m.ObservacaoMedicao),
	)
	if err != nil {
		r.logger.Error("failed to create medicao", zap.Error(err))
		return fmt.Errorf("failed to create medicao: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	m.ID = int(id)
	return nil
}

// Update updates a medição
func (r *medicaoRepository) Update(ctx context.Context, m *models.Medicao) error {
	query := `
		UPDATE medicoes
		SET ID_Obras = ?, Numero_Medicao = ?, Valor_Medicao = ?, Data_Medicao = ?,
			Mes_Referencia = ?, Data_Aprovacao = ?, Status_Medicao = ?, Observacao_Medicao = ?,
			Data_Modificacao = NOW()
		WHERE ID_Medicoes = ?
	`

	if _, err := r.db.ExecContext(ctx, query,
		m.IDObra, m.NumeroMedicao, m.ValorMedicao, m.DataMedicao, nullif(m.MesReferencia),
		m.DataAprovacao, m.StatusMedicao, nullif(m.ObservacaoMedicao), m.ID,
	); err != nil {
		r.logger.Error("failed to update medicao", zap.Error(err), zap.Int("id", m.ID))
		return fmt.Errorf("failed to update medicao: %w", err)
	}
	return nil
}

// Delete removes a medição
func (r *medicaoRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM medicoes WHERE ID_Medicoes = ?`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		r.logger.Error("failed to delete medicao", zap.Error(err), zap.Int("id", id))
		return fmt.Errorf("failed to delete medicao: %w", err)
	}
	return nil
}

// SomaMedicoesAprovadas returns the total value of approved medições
func (r *medicaoRepository) SomaMedicoesAprovadas(ctx context.Context) (float64, error) {
	query := `SELECT COALESCE(SUM(Valor_Medicao), 0) FROM medicoes WHERE Status_Medicao = 'Aprovada'`

	var total float64
	if err := r.db.QueryRowContext(ctx, query).Scan(&total); err != nil {
		r.logger.Error("failed to sum medicoes aprovadas", zap.Error(err))
		return 0, fmt.Errorf("failed to sum medicoes aprovadas: %w", err)
	}
	return total, nil
}
