package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lumob/backend/internal/models"
	"go.uber.org/zap"
)

// ASOFilter narrows the ASO listing. Empty fields are ignored; the
// emission bounds are inclusive ISO dates (YYYY-MM-DD).
type ASOFilter struct {
	Matricula     string
	Tipo          string
	Resultado     string
	EmissaoInicio string
	EmissaoFim    string
}

// asoRepository handles the asos table
type asoRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewASORepository creates a new ASO repository
func NewASORepository(db *sql.DB, logger *zap.Logger) *asoRepository {
	return &asoRepository{
		db:     db,
		logger: logger,
	}
}

const asoSelect = `
	SELECT
		a.ID_Asos, a.Matricula_Funcionario, a.Tipo_Aso, a.Data_Emissao, a.Data_Vencimento,
		a.Resultado, a.Medico_Responsavel, a.Observacoes,
		f.Nome_Completo AS Nome_Funcionario
	FROM asos a
	LEFT JOIN funcionarios f ON a.Matricula_Funcionario = f.Matricula
`

func scanASO(rows *sql.Rows) (*models.ASO, error) {
	a := &models.ASO{}
	var medico, observacoes, nomeFuncionario sql.NullString

	if err := rows.Scan(
		&a.ID, &a.MatriculaFuncionario, &a.TipoASO, &a.DataEmissao, &a.DataVencimento,
		&a.Resultado, &medico, &observacoes,
		&nomeFuncionario,
	); err != nil {
		return nil, fmt.Errorf("failed to scan aso: %w", err)
	}

	a.MedicoResponsavel = medico.String
	a.Observacoes = observacoes.String
	a.NomeFuncionario = nomeFuncionario.String
	return a, nil
}

// List returns ASOs matching the optional filters
func (r *asoRepository) List(ctx context.Context, filter ASOFilter) ([]models.ASO, error) {
	query := asoSelect + ` WHERE 1=1`
	var args []any

	if filter.Matricula != "" {
		query += ` AND a.Matricula_Funcionario = ?`
		args = append(args, filter.Matricula)
	}
	if filter.Tipo != "" {
		query += ` AND a.Tipo_Aso = ?`
		args = append(args, filter.Tipo)
	}
	if filter.Resultado != "" {
		query += ` AND a.Resultado = ?`
		args = append(args, filter.Resultado)
	}
	if filter.EmissaoInicio != "" {
		query += ` AND a.Data_Emissao >= ?`
		args = append(args, filter.EmissaoInicio)
	}
	if filter.EmissaoFim != "" {
		query += ` AND a.Data_Emissao <= ?`
		args = append(args, filter.EmissaoFim)
	}
	query += ` ORDER BY f.Nome_Completo, a.Data_Emissao DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to list asos", zap.Error(err))
		return nil, fmt.Errorf("failed to list asos: %w", err)
	}
	defer rows.Close()

	var asos []models.ASO
	for rows.Next() {
		a, err := scanASO(rows)
		if err != nil {
			return nil, err
		}
		asos = append(asos, *a)
	}
	return asos, rows.Err()
}

// GetByID retrieves one ASO. Returns (nil, nil) when no row matches.
func (r *asoRepository) GetByID(ctx context.Context, id int) (*models.ASO, error) {
	rows, err := r.db.QueryContext(ctx, asoSelect+` WHERE a.ID_Asos = ?`, id)
	if err != nil {
		r.logger.Error("failed to get aso", zap.Error(err), zap.Int("id", id))
		return nil, fmt.Errorf("failed to get aso: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanASO(rows)
}

// Create inserts a new ASO
func (r *asoRepository) Create(ctx context.Context, a *models.ASO) error {
	query := `
		INSERT INTO asos
			(Matricula_Funcionario, Tipo_Aso, Data_Emissao, Data_Vencimento, Resultado,
			 Medico_Responsavel, Observacoes, Data_Criacao, Data_Modificacao)
		VALUES (?, ?, ?, ?, ?, ?, ?, NOW(), NOW())
	`

	result, err := r.db.ExecContext(ctx, query,
		a.MatriculaFuncionario, a.TipoASO, a.DataEmissao, a.DataVencimento, a.Resultado,
		nullif(a.MedicoResponsavel), nullif(a.Observacoes),
	)
	if err != nil {
		r.logger.Error("failed to create aso", zap.Error(err))
		return fmt.Errorf("failed to create aso: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	a.ID = int(id)
	return nil
}

// Update updates an ASO
func (r *asoRepository) Update(ctx context.Context, a *models.ASO) error {
	query := `
		UPDATE asos
		SET Matricula_Funcionario = ?, Tipo_Aso = ?, Data_Emissao = ?, Data_Vencimento = ?,
			Resultado = ?, Medico_Responsavel = ?, Observacoes = ?, Data_Modificacao = NOW()
		WHERE ID_Asos = ?
	`

	if _, err := r.db.ExecContext(ctx, query,
		a.MatriculaFuncionario, a.TipoASO, a.DataEmissao, a.DataVencimento, a.Resultado,
		nullif(a.MedicoResponsavel), nullif(a.Observacoes), a.ID,
	); err != nil {
		r.logger.Error("failed to update aso", zap.Error(err), zap.Int("id", a.ID))
		return fmt.Errorf("failed to update aso: %w", err)
	}
	return nil
}

// Delete removes an ASO
func (r *asoRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM asos WHERE ID_Asos = ?`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		r.logger.Error("failed to delete aso", zap.Error(err), zap.Int("id", id))
		return fmt.Errorf("failed to delete aso: %w", err)
	}
	return nil
}
