package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lumob/backend/internal/models"
	"go.uber.org/zap"
)

// artRepository handles the arts table
type artRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewArtRepository creates a new ART repository
func NewArtRepository(db *sql.DB, logger *zap.Logger) *artRepository {
	return &artRepository{
		db:     db,
		logger: logger,
	}
}

const artSelect = `
	SELECT
		a.ID_Arts, a.ID_Obras, a.Numero_Art, a.Data_Pagamento, a.Valor_Pagamento, a.Status_Art,
		o.Numero_Obra, o.Nome_Obra
	FROM arts a
	LEFT JOIN obras o ON a.ID_Obras = o.ID_Obras
`

func scanART(rows *sql.Rows) (*models.ART, error) {
	a := &models.ART{}
	var valor sql.NullFloat64
	var numeroObra, nomeObra sql.NullString

	if err := rows.Scan(
		&a.ID, &a.IDObra, &a.NumeroArt, &a.DataPagamento, &valor, &a.StatusArt,
		&numeroObra, &nomeObra,
	); err != nil {
		return nil, fmt.Errorf("failed to scan art: %w", err)
	}

	a.ValorPagamento = valor.Float64
	a.NumeroObra = numeroObra.String
	a.NomeObra = nomeObra.String
	return a, nil
}

// List returns ARTs, optionally filtered by obra
func (r *artRepository) List(ctx context.Context, obraID int) ([]models.ART, error) {
	query := artSelect + ` WHERE 1=1`
	var args []any

	if obraID > 0 {
		query += ` AND a.ID_Obras = ?`
		args = append(args, obraID)
	}
	query += ` ORDER BY o.Numero_Obra, a.Numero_Art`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to list arts", zap.Error(err))
		return nil, fmt.Errorf("failed to list arts: %w", err)
	}
	defer rows.Close()

	var arts []models.ART
	for rows.Next() {
		a, err := scanART(rows)
		if err != nil {
			return nil, err
		}
		arts = append(arts, *a)
	}
	return arts, rows.Err()
}

// GetByID retrieves one ART. Returns (nil, nil) when no row matches.
func (r *artRepository) GetByID(ctx context.Context, id int) (*models.ART, error) {
	rows, err := r.db.QueryContext(ctx, artSelect+` WHERE a.ID_Arts = ?`, id)
	if err != nil {
		r.logger.Error("failed to get art", zap.Error(err), zap.Int("id", id))
		return nil, fmt.Errorf("failed to get art: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanART(rows)
}

// ExistsNumero checks whether another ART already holds the given number.
// excludeID skips the record being updated; pass 0 on create.
func (r *artRepository) ExistsNumero(ctx context.Context, numero string, excludeID int) (bool, error) {
	query := `SELECT COUNT(*) FROM arts WHERE Numero_Art = ? AND ID_Arts != ?`

	var count int
	if err := r.db.QueryRowContext(ctx, query, numero, excludeID).Scan(&count); err != nil {
		r.logger.Error("failed to check art numero", zap.Error(err))
		return false, fmt.Errorf("failed to check art numero: %w", err)
	}
	return count > 0, nil
}

// Create inserts a new ART
func (r *artRepository) Create(ctx context.Context, a *models.ART) error {
	query := `
		INSERT INTO arts
			(ID_Obras, Numero_Art, Data_Pagamento, Valor_Pagamento, Status_Art,
			 Data_Criacao, Data_Modificacao)
		VALUES (?, ?, ?, ?, ?, NOW(), NOW())
	`

	result, err := r.db.ExecContext(ctx, query,
		a.IDObra, a.NumeroArt, a.DataPagamento, a.ValorPagamento, a.StatusArt,
	)
	if err != nil {
		r.logger.Error("failed to create art", zap.Error(err))
		return fmt.Errorf("failed to create art: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	a.ID = int(id)
	return nil
}

// Update updates an ART
func (r *artRepository) Update(ctx context.Context, a *models.ART) error {
	query := `
		UPDATE arts
		SET ID_Obras = ?, Numero_Art = ?, Data_Pagamento = ?, Valor_Pagamento = ?, Status_Art = ?,
			Data_Modificacao = NOW()
		WHERE ID_Arts = ?
	`

	if _, err := r.db.ExecContext(ctx, query,
		a.IDObra, a.NumeroArt, a.DataPagamento, a.ValorPagamento, a.StatusArt, a.ID,
	); err != nil {
		r.logger.Error("failed to update art", zap.Error(err), zap.Int("id", a.ID))
		return fmt.Errorf("failed to update art: %w", err)
	}
	return nil
}

// Delete removes an ART
func (r *artRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM arts WHERE ID_Arts = ?`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		r.logger.Error("failed to delete art", zap.Error(err), zap.Int("id", id))
		return fmt.Errorf("failed to delete art: %w", err)
	}
	return nil
}
