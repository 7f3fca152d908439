package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lumob/backend/internal/models"
	"go.uber.org/zap"
)

// cargoRepository handles the cargos and niveis lookup tables
type cargoRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewCargoRepository creates a new cargo repository
func NewCargoRepository(db *sql.DB, logger *zap.Logger) *cargoRepository {
	return &cargoRepository{
		db:     db,
		logger: logger,
	}
}

// ListCargos returns all cargos, optionally filtered by name
func (r *cargoRepository) ListCargos(ctx context.Context, nome string) ([]models.Cargo, error) {
	query := `SELECT ID_Cargos, Nome_Cargo, Descricao_Cargo, Cbo FROM cargos WHERE 1=1`
	var args []any

	if nome != "" {
		query += ` AND Nome_Cargo LIKE ?`
		args = append(args, "%"+nome+"%")
	}
	query += ` ORDER BY Nome_Cargo`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to list cargos", zap.Error(err))
		return nil, fmt.Errorf("failed to list cargos: %w", err)
	}
	defer rows.Close()

	var cargos []models.Cargo
	for rows.Next() {
		var c models.Cargo
		var descricao, cbo sql.NullString
		if err := rows.Scan(&c.ID, &c.NomeCargo, &descricao, &cbo); err != nil {
			return nil, fmt.Errorf("failed to scan cargo: %w", err)
		}
		c.Descricao = descricao.String
		c.CBO = cbo.String
		cargos = append(cargos, c)
	}
	return cargos, rows.Err()
}

// GetCargoByID retrieves a cargo by id. Returns (nil, nil) when no row matches.
func (r *cargoRepository) GetCargoByID(ctx context.Context, id int) (*models.Cargo, error) {
	query := `SELECT ID_Cargos, Nome_Cargo, Descricao_Cargo, Cbo FROM cargos WHERE ID_Cargos = ?`

	c := &models.Cargo{}
	var descricao, cbo sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.NomeCargo, &descricao, &cbo)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("failed to get cargo", zap.Error(err), zap.Int("id", id))
		return nil, fmt.Errorf("failed to get cargo: %w", err)
	}
	c.Descricao = descricao.String
	c.CBO = cbo.String
	return c, nil
}

// GetCargoByNome retrieves a cargo by exact name. Returns (nil, nil) when no row matches.
func (r *cargoRepository) GetCargoByNome(ctx context.Context, nome string) (*models.Cargo, error) {
	query := `SELECT ID_Cargos, Nome_Cargo, Descricao_Cargo, Cbo FROM cargos WHERE Nome_Cargo = ?`

	c := &models.Cargo{}
	var descricao, cbo sql.NullString
	err := r.db.QueryRowContext(ctx, query, nome).Scan(&c.ID, &c.NomeCargo, &descricao, &cbo)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("failed to get cargo by nome", zap.Error(err), zap.String("nome", nome))
		return nil, fmt.Errorf("failed to get cargo by nome: %w", err)
	}
	c.Descricao = descricao.String
	c.CBO = cbo.String
	return c, nil
}

// CreateCargo inserts a new cargo
func (r *cargoRepository) CreateCargo(ctx context.Context, c *models.Cargo) error {
	query := `INSERT INTO cargos (Nome_Cargo, Descricao_Cargo, Cbo) VALUES (?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, c.NomeCargo, nullif(c.Descricao), nullif(c.CBO))
	if err != nil {
		r.logger.Error("failed to create cargo", zap.Error(err))
		return fmt.Errorf("failed to create cargo: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	c.ID = int(id)
	return nil
}

// UpdateCargo updates a cargo
func (r *cargoRepository) UpdateCargo(ctx context.Context, c *models.Cargo) error {
	query := `UPDATE cargos SET Nome_Cargo = ?, Descricao_Cargo = ?, Cbo = ? WHERE ID_Cargos = ?`

	if _, err := r.db.ExecContext(ctx, query, c.NomeCargo, nullif(c.Descricao), nullif(c.CBO), c.ID); err != nil {
		r.logger.Error("failed to update cargo", zap.Error(err), zap.Int("id", c.ID))
		return fmt.Errorf("failed to update cargo: %w", err)
	}
	return nil
}

// DeleteCargo removes a cargo
func (r *cargoRepository) DeleteCargo(ctx context.Context, id int) error {
	query := `DELETE FROM cargos WHERE ID_Cargos = ?`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		r.logger.Error("failed to delete cargo", zap.Error(err), zap.Int("id", id))
		return fmt.Errorf("failed to delete cargo: %w", err)
	}
	return nil
}

// ListNiveis returns all niveis, optionally filtered by name
func (r *cargoRepository) ListNiveis(ctx context.Context, nome string) ([]models.Nivel, error) {
	query := `SELECT ID_Niveis, Nome_Nivel, Descricao FROM niveis WHERE 1=1`
	var args []any

	if nome != "" {
		query += ` AND Nome_Nivel LIKE ?`
		args = append(args, "%"+nome+"%")
	}
	query += ` ORDER BY Nome_Nivel`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to list niveis", zap.Error(err))
		return nil, fmt.Errorf("failed to list niveis: %w", err)
	}
	defer rows.Close()

	var niveis []models.Nivel
	for rows.Next() {
		var n models.Nivel
		var descricao sql.NullString
		if err := rows.Scan(&n.ID, &n.NomeNivel, &descricao); err != nil {
			return nil, fmt.Errorf("failed to scan nivel: %w", err)
		}
		n.Descricao = descricao.String
		niveis = append(niveis, n)
	}
	return niveis, rows.Err()
}

// GetNivelByID retrieves a nivel by id. Returns (nil, nil) when no row matches.
func (r *cargoRepository) GetNivelByID(ctx context.Context, id int) (*models.Nivel, error) {
	query := `SELECT ID_Niveis, Nome_Nivel, Descricao FROM niveis WHERE ID_Niveis = ?`

	n := &models.Nivel{}
	var descricao sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(&n.ID, &n.NomeNivel, &descricao)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("failed to get nivel", zap.Error(err), zap.Int("id", id))
		return nil, fmt.Errorf("failed to get nivel: %w", err)
	}
	n.Descricao = descricao.String
	return n, nil
}

// GetNivelByNome retrieves a nivel by exact name. Returns (nil, nil) when no row matches.
func (r *cargoRepository) GetNivelByNome(ctx context.Context, nome string) (*models.Nivel, error) {
	query := `SELECT ID_Niveis, Nome_Nivel, Descricao FROM niveis WHERE Nome_Nivel = ?`

	n := &models.Nivel{}
	var descricao sql.NullString
	err := r.db.QueryRowContext(ctx, query, nome).Scan(&n.ID, &n.NomeNivel, &descricao)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("failed to get nivel by nome", zap.Error(err), zap.String("nome", nome))
		return nil, fmt.Errorf("failed to get nivel by nome: %w", err)
	}
	n.Descricao = descricao.String
	return n, nil
}

// CreateNivel inserts a new nivel
func (r *cargoRepository) CreateNivel(ctx context.Context, n *models.Nivel) error {
	query := `INSERT INTO niveis (Nome_Nivel, Descricao) VALUES (?, ?)`

	result, err := r.db.ExecContext(ctx, query, n.NomeNivel, nullif(n.Descricao))
	if err != nil {
		r.logger.Error("failed to create nivel", zap.Error(err))
		return fmt.Errorf("failed to create nivel: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	n.ID = int(id)
	return nil
}

// UpdateNivel updates a nivel
func (r *cargoRepository) UpdateNivel(ctx context.Context, n *models.Nivel) error {
	query := `UPDATE niveis SET Nome_Nivel = ?, Descricao = ? WHERE ID_Niveis = ?`

	if _, err := r.db.ExecContext(ctx, query, n.NomeNivel, nullif(n.Descricao), n.ID); err != nil {
		r.logger.Error("failed to update nivel", zap.Error(err), zap.Int("id", n.ID))
		return fmt.Errorf("failed to update nivel: %w", err)
	}
	return nil
}

// DeleteNivel removes a nivel
func (r *cargoRepository) DeleteNivel(ctx context.Context, id int) error {
	query := `DELETE FROM niveis WHERE ID_Niveis = ?`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		r.logger.Error("failed to delete nivel", zap.Error(err), zap.Int("id", id))
		return fmt.Errorf("failed to delete nivel: %w", err)
	}
	return nil
}
