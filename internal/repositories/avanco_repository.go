package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lumob/backend/internal/models"
	"go.uber.org/zap"
)

// ErrLimiteAvanco is returned when a lançamento would push the accumulated
// physical progress of an obra past 100%. Acumulado carries the sum of the
// other lançamentos of the obra at the moment of the check.
type ErrLimiteAvanco struct {
	IDObra    int
	Acumulado float64
	Novo      float64
}

func (e *ErrLimiteAvanco) Error() string {
	return fmt.Sprintf("avanco would exceed 100%% for obra %d: accumulated %.2f%% + new %.2f%%",
		e.IDObra, e.Acumulado, e.Novo)
}

// avancoRepository handles the avancos_fisicos table
type avancoRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewAvancoRepository creates a new avanço físico repository
func NewAvancoRepository(db *sql.DB, logger *zap.Logger) *avancoRepository {
	return &avancoRepository{
		db:     db,
		logger: logger,
	}
}

const avancoSelect = `
	SELECT
		a.ID_Avancos_Fisicos, a.ID_Obras, a.Percentual_Avanco_Fisico, a.Data_Avanco,
		o.Numero_Obra, o.Nome_Obra
	FROM avancos_fisicos a
	LEFT JOIN obras o ON a.ID_Obras = o.ID_Obras
`

func scanAvanco(rows *sql.Rows) (*models.AvancoFisico, error) {
	a := &models.AvancoFisico{}
	var numeroObra, nomeObra sql.NullString

	if err := rows.Scan(
		&a.ID, &a.IDObra, &a.Percentual, &a.DataAvanco,
		&numeroObra, &nomeObra,
	); err != nil {
		return nil, fmt.Errorf("failed to scan avanco fisico: %w", err)
	}

	a.NumeroObra = numeroObra.String
	a.NomeObra = nomeObra.String
	return a, nil
}

// List returns avanços físicos, optionally filtered by obra
func (r *avancoRepository) List(ctx context.Context, obraID int) ([]models.AvancoFisico, error) {
	query := avancoSelect + ` WHERE 1=1`
	var args []any

	if obraID > 0 {
		query += ` AND a.ID_Obras = ?`
		args = append(args, obraID)
	}
	query += ` ORDER BY o.Numero_Obra, a.Data_Avanco DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to list avancos fisicos", zap.Error(err))
		return nil, fmt.Errorf("failed to list avancos fisicos: %w", err)
	}
	defer rows.Close()

	var avancos []models.AvancoFisico
	for rows.Next() {
		a, err := scanAvanco(rows)
		if err != nil {
			return nil, err
		}
		avancos = append(avancos, *a)
	}
	return avancos, rows.Err()
}

// GetByID retrieves one avanço físico. Returns (nil, nil) when no row matches.
func (r *avancoRepository) GetByID(ctx context.Context, id int) (*models.AvancoFisico, error) {
	rows, err := r.db.QueryContext(ctx, avancoSelect+` WHERE a.ID_Avancos_Fisicos = ?`, id)
	if err != nil {
		r.logger.Error("failed to get avanco fisico", zap.Error(err), zap.Int("id", id))
		return nil, fmt.Errorf("failed to get avanco fisico: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanAvanco(rows)
}

// Create inserts a new avanço físico inside a transaction. The accumulated
// percentage of the obra is read with a locking SELECT so concurrent
// lançamentos cannot jointly exceed 100%.
func (r *avancoRepository) Create(ctx context.Context, a *models.AvancoFisico) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	acumulado, err := r.acumuladoForUpdate(ctx, tx, a.IDObra, 0)
	if err != nil {
		return err
	}
	if acumulado+a.Percentual > 100.0 {
		return &ErrLimiteAvanco{IDObra: a.IDObra, Acumulado: acumulado, Novo: a.Percentual}
	}

	query := `
		INSERT INTO avancos_fisicos
			(ID_Obras, Percentual_Avanco_Fisico, Data_Avanco, Data_Criacao, Data_Modificacao)
		VALUES (?, ?, ?, NOW(), NOW())
	`

	result, err := tx.ExecContext(ctx, query, a.IDObra, a.Percentual, a.DataAvanco)
	if err != nil {
		r.logger.Error("failed to create avanco fisico", zap.Error(err))
		return fmt.Errorf("failed to create avanco fisico: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	a.ID = int(id)

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit avanco fisico: %w", err)
	}
	return nil
}

// Update replaces an avanço físico inside a transaction, applying the same
// 100% cap but excluding the record being updated from the accumulated sum.
func (r *avancoRepository) Update(ctx context.Context, a *models.AvancoFisico) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	acumulado, err := r.acumuladoForUpdate(ctx, tx, a.IDObra, a.ID)
	if err != nil {
		return err
	}
	if acumulado+a.Percentual > 100.0 {
		return &ErrLimiteAvanco{IDObra: a.IDObra, Acumulado: acumulado, Novo: a.Percentual}
	}

	query := `
		UPDATE avancos_fisicos
		SET ID_Obras = ?, Percentual_Avanco_Fisico = ?, Data_Avanco = ?, Data_Modificacao = NOW()
		WHERE ID_Avancos_Fisicos = ?
	`

	if _, err := tx.ExecContext(ctx, query, a.IDObra, a.Percentual, a.DataAvanco, a.ID); err != nil {
		r.logger.Error("failed to update avanco fisico", zap.Error(err), zap.Int("id", a.ID))
		return fmt.Errorf("failed to update avanco fisico: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit avanco fisico: %w", err)
	}
	return nil
}

func (r *avancoRepository) acumuladoForUpdate(ctx context.Context, tx *sql.Tx, obraID, excludeID int) (float64, error) {
	query := `
		SELECT COALESCE(SUM(Percentual_Avanco_Fisico), 0)
		FROM avancos_fisicos
		WHERE ID_Obras = ? AND ID_Avancos_Fisicos != ?
		FOR UPDATE
	`

	var total float64
	if err := tx.QueryRowContext(ctx, query, obraID, excludeID).Scan(&total); err != nil {
		r.logger.Error("failed to sum avancos for update", zap.Error(err), zap.Int("obra_id", obraID))
		return 0, fmt.Errorf("failed to sum avancos for update: %w", err)
	}
	return total, nil
}

// Delete removes an avanço físico
func (r *avancoRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM avancos_fisicos WHERE ID_Avancos_Fisicos = ?`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		r.logger.Error("failed to delete avanco fisico", zap.Error(err), zap.Int("id", id))
		return fmt.Errorf("failed to delete avanco fisico: %w", err)
	}
	return nil
}
