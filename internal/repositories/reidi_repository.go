package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lumob/backend/internal/models"
	"go.uber.org/zap"
)

// reidiRepository handles the reidis table
type reidiRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewReidiRepository creates a new REIDI repository
func NewReidiRepository(db *sql.DB, logger *zap.Logger) *reidiRepository {
	return &reidiRepository{
		db:     db,
		logger: logger,
	}
}

const reidiSelect = `
	SELECT
		re.ID_Reidis, re.ID_Obras, re.Numero_Portaria, re.Numero_Ato_Declaratorio,
		re.Data_Aprovacao_Reidi, re.Data_Validade_Reidi, re.Status_Reidi, re.Observacoes_Reidi,
		o.Numero_Obra, o.Nome_Obra
	FROM reidis re
	LEFT JOIN obras o ON re.ID_Obras = o.ID_Obras
`

func scanREIDI(rows *sql.Rows) (*models.REIDI, error) {
	re := &models.REIDI{}
	var atoDeclaratorio, observacoes, numeroObra, nomeObra sql.NullString

	if err := rows.Scan(
		&re.ID, &re.IDObra, &re.NumeroPortaria, &atoDeclaratorio,
		&re.DataAprovacao, &re.DataValidade, &re.StatusReidi, &observacoes,
		&numeroObra, &nomeObra,
	); err != nil {
		return nil, fmt.Errorf("failed to scan reidi: %w", err)
	}

	re.NumeroAtoDeclaratorio = atoDeclaratorio.String
	re.Observacoes = observacoes.String
	re.NumeroObra = numeroObra.String
	re.NomeObra = nomeObra.String
	return re, nil
}

// List returns REIDIs, optionally filtered by obra
func (r *reidiRepository) List(ctx context.Context, obraID int) ([]models.REIDI, error) {
	query := reidiSelect + ` WHERE 1=1`
	var args []any

	if obraID > 0 {
		query += ` AND re.ID_Obras = ?`
		args = append(args, obraID)
	}
	query += ` ORDER BY o.Numero_Obra, re.Numero_Portaria`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to list reidis", zap.Error(err))
		return nil, fmt.Errorf("failed to list reidis: %w", err)
	}
	defer rows.Close()

	var reidis []models.REIDI
	for rows.Next() {
		re, err := scanREIDI(rows)
		if err != nil {
			return nil, err
		}
		reidis = append(reidis, *re)
	}
	return reidis, rows.Err()
}

// GetByID retrieves one REIDI. Returns (nil, nil) when no row matches.
func (r *reidiRepository) GetByID(ctx context.Context, id int) (*models.REIDI, error) {
	rows, err := r.db.QueryContext(ctx, reidiSelect+` WHERE re.ID_Reidis = ?`, id)
	if err != nil {
		r.logger.Error("failed to get reidi", zap.Error(err), zap.Int("id", id))
		return nil, fmt.Errorf("failed to get reidi: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanREIDI(rows)
}

// ExistsPortaria checks whether another REIDI already holds the given portaria
// number. excludeID skips the record being updated; pass 0 on create.
func (r *reidiRepository) ExistsPortaria(ctx context.Context, numero string, excludeID int) (bool, error) {
	query := `SELECT COUNT(*) FROM reidis WHERE Numero_Portaria = ? AND ID_Reidis != ?`

	var count int
	if err := r.db.QueryRowContext(ctx, query, numero, excludeID).Scan(&count); err != nil {
		r.logger.Error("failed to check reidi portaria", zap.Error(err))
		return false, fmt.Errorf("failed to check reidi portaria: %w", err)
	}
	return count > 0, nil
}

// Create inserts a new REIDI
func (r *reidiRepository) Create(ctx context.Context, re *models.REIDI) error {
	query := `
		INSERT INTO reidis
			(ID_Obras, Numero_Portaria, Numero_Ato_Declaratorio, Data_Aprovacao_Reidi,
			 Data_Validade_Reidi, Status_Reidi, Observacoes_Reidi, Data_Criacao, Data_Modificacao)
		VALUES (?, ?, ?, ?, ?, ?, ?, NOW(), NOW())
	`

	result, err := r.db.ExecContext(ctx, query,
		re.IDObra, re.NumeroPortaria, nullif(re.NumeroAtoDeclaratorio), re.DataAprovacao,
		re.DataValidade, re.StatusReidi, nullif(re.Observacoes),
	)
	if err != nil {
		r.logger.Error("failed to create reidi", zap.Error(err))
		return fmt.Errorf("failed to create reidi: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	re.ID = int(id)
	return nil
}

// Update updates a REIDI
func (r *reidiRepository) Update(ctx context.Context, re *models.REIDI) error {
	query := `
		UPDATE reidis
		SET ID_Obras = ?, Numero_Portaria = ?, Numero_Ato_Declaratorio = ?,
			Data_Aprovacao_Reidi = ?, Data_Validade_Reidi = ?, Status_Reidi = ?,
			Observacoes_Reidi = ?, Data_Modificacao = NOW()
		WHERE ID_Reidis = ?
	`

	if _, err := r.db.ExecContext(ctx, query,
		re.IDObra, re.NumeroPortaria, nullif(re.NumeroAtoDeclaratorio), re.DataAprovacao,
		re.DataValidade, re.StatusReidi, nullif(re.Observacoes), re.ID,
	); err != nil {
		r.logger.Error("failed to update reidi", zap.Error(err), zap.Int("id", re.ID))
		return fmt.Errorf("failed to update reidi: %w", err)
	}
	return nil
}

// Delete removes a REIDI
func (r *reidiRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM reidis WHERE ID_Reidis = ?`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		r.logger.Error("failed to delete reidi", zap.Error(err), zap.Int("id", id))
		return fmt.Errorf("failed to delete reidi: %w", err)
	}
	return nil
}
