package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lumob/backend/internal/models"
	"go.uber.org/zap"
)

// seguroRepository handles the seguros table
type seguroRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSeguroRepository creates a new seguro repository
func NewSeguroRepository(db *sql.DB, logger *zap.Logger) *seguroRepository {
	return &seguroRepository{
		db:     db,
		logger: logger,
	}
}

const seguroSelect = `
	SELECT
		s.ID_Seguros, s.ID_Obras, s.Numero_Apolice, s.Seguradora, s.Tipo_Seguro,
		s.Valor_Segurado, s.Data_Inicio_Vigencia, s.Data_Fim_Vigencia, s.Status_Seguro,
		s.Observacoes_Seguro,
		o.Numero_Obra, o.Nome_Obra
	FROM seguros s
	LEFT JOIN obras o ON s.ID_Obras = o.ID_Obras
`

func scanSeguro(rows *sql.Rows) (*models.Seguro, error) {
	s := &models.Seguro{}
	var observacoes, numeroObra, nomeObra sql.NullString
	var valor sql.NullFloat64

	if err := rows.Scan(
		&s.ID, &s.IDObra, &s.NumeroApolice, &s.Seguradora, &s.TipoSeguro,
		&valor, &s.DataInicioVigencia, &s.DataFimVigencia, &s.StatusSeguro,
		&observacoes,
		&numeroObra, &nomeObra,
	); err != nil {
		return nil, fmt.Errorf("failed to scan seguro: %w", err)
	}

	s.ValorSegurado = valor.Float64
	s.Observacoes = observacoes.String
	s.NumeroObra = numeroObra.String
	s.NomeObra = nomeObra.String
	return s, nil
}

// List returns seguros, optionally filtered by obra
func (r *seguroRepository) List(ctx context.Context, obraID int) ([]models.Seguro, error) {
	query := seguroSelect + ` WHERE 1=1`
	var args []any

	if obraID > 0 {
		query += ` AND s.ID_Obras = ?`
		args = append(args, obraID)
	}
	query += ` ORDER BY o.Numero_Obra, s.Numero_Apolice`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to list seguros", zap.Error(err))
		return nil, fmt.Errorf("failed to list seguros: %w", err)
	}
	defer rows.Close()

	var seguros []models.Seguro
	for rows.Next() {
		s, err := scanSeguro(rows)
		if err != nil {
			return nil, err
		}
		seguros = append(seguros, *s)
	}
	return seguros, rows.Err()
}

// GetByID retrieves one seguro. Returns (nil, nil) when no row matches.
func (r *seguroRepository) GetByID(ctx context.Context, id int) (*models.Seguro, error) {
	rows, err := r.db.QueryContext(ctx, seguroSelect+` WHERE s.ID_Seguros = ?`, id)
	if err != nil {
		r.logger.Error("failed to get seguro", zap.Error(err), zap.Int("id", id))
		return nil, fmt.Errorf("failed to get seguro: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanSeguro(rows)
}

// ExistsApolice checks whether another seguro already holds the given policy
// number. excludeID skips the record being updated; pass 0 on create.
func (r *seguroRepository) ExistsApolice(ctx context.Context, numero string, excludeID int) (bool, error) {
	query := `SELECT COUNT(*) FROM seguros WHERE Numero_Apolice = ? AND ID_Seguros != ?`

	var count int
	if err := r.db.QueryRowContext(ctx, query, numero, excludeID).Scan(&count); err != nil {
		r.logger.Error("failed to check seguro apolice", zap.Error(err))
		return false, fmt.Errorf("failed to check seguro apolice: %w", err)
	}
	return count > 0, nil
}

// Create inserts a new seguro
func (r *seguroRepository) Create(ctx context.Context, s *models.Seguro) error {
	query := `
		INSERT INTO seguros
			(ID_Obras, Numero_Apolice, Seguradora, Tipo_Seguro, Valor_Segurado,
			 Data_Inicio_Vigencia, Data_Fim_Vigencia, Status_Seguro, Observacoes_Seguro,
			 Data_Criacao, Data_Modificacao)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())
	`

	result, err := r.db.ExecContext(ctx, query,
		s.IDObra, s.NumeroApolice, s.Seguradora, s.TipoSeguro, s.ValorSegurado,
		s.DataInicioVigencia, s.DataFimVigencia, s.StatusSeguro, nullif(s.Observacoes),
	)
	if err != nil {
		r.logger.Error("failed to create seguro", zap.Error(err))
		return fmt.Errorf("failed to create seguro: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	s.ID = int(id)
	return nil
}

// Update updates a seguro
func (r *seguroRepository) Update(ctx context.Context, s *models.Seguro) error {
	query := `
		UPDATE seguros
		SET ID_Obras = ?, Numero_Apolice = ?, Seguradora = ?, Tipo_Seguro = ?, Valor_Segurado = ?,
			Data_Inicio_Vigencia = ?, Data_Fim_Vigencia = ?, Status_Seguro = ?,
			Observacoes_Seguro = ?, Data_Modificacao = NOW()
		WHERE ID_Seguros = ?
	`

	if _, err := r.db.ExecContext(ctx, query,
		s.IDObra, s.NumeroApolice, s.Seguradora, s.TipoSeguro, s.ValorSegurado,
		s.DataInicioVigencia, s.DataFimVigencia, s.StatusSeguro, nullif(s.Observacoes), s.ID,
	); err != nil {
		r.logger.Error("failed to update seguro", zap.Error(err), zap.Int("id", s.ID))
		return fmt.Errorf("failed to update seguro: %w", err)
	}
	return nil
}

// Delete removes a seguro
func (r *seguroRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM seguros WHERE ID_Seguros = ?`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		r.logger.Error("failed to delete seguro", zap.Error(err), zap.Int("id", id))
		return fmt.Errorf("failed to delete seguro: %w", err)
	}
	return nil
}
