package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lumob/backend/internal/models"
	"go.uber.org/zap"
)

// moduloRepository handles the modulos and permissoes_usuarios tables
type moduloRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewModuloRepository creates a new modulo repository
func NewModuloRepository(db *sql.DB, logger *zap.Logger) *moduloRepository {
	return &moduloRepository{
		db:     db,
		logger: logger,
	}
}

// List returns all modules ordered by name
func (r *moduloRepository) List(ctx context.Context) ([]models.Modulo, error) {
	query := `SELECT ID_Modulo, Nome_Modulo FROM modulos ORDER BY Nome_Modulo`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("failed to list modulos", zap.Error(err))
		return nil, fmt.Errorf("failed to list modulos: %w", err)
	}
	defer rows.Close()

	var modulos []models.Modulo
	for rows.Next() {
		var m models.Modulo
		if err := rows.Scan(&m.ID, &m.Nome); err != nil {
			return nil, fmt.Errorf("failed to scan modulo: %w", err)
		}
		modulos = append(modulos, m)
	}
	return modulos, rows.Err()
}

// GetByNome retrieves a module by name. Returns (nil, nil) when no row matches.
func (r *moduloRepository) GetByNome(ctx context.Context, nome string) (*models.Modulo, error) {
	query := `SELECT ID_Modulo, Nome_Modulo FROM modulos WHERE Nome_Modulo = ?`

	m := &models.Modulo{}
	err := r.db.QueryRowContext(ctx, query, nome).Scan(&m.ID, &m.Nome)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("failed to get modulo by nome", zap.Error(err), zap.String("nome", nome))
		return nil, fmt.Errorf("failed to get modulo by nome: %w", err)
	}
	return m, nil
}

// Create inserts a new module
func (r *moduloRepository) Create(ctx context.Context, m *models.Modulo) error {
	query := `INSERT INTO modulos (Nome_Modulo) VALUES (?)`

	result, err := r.db.ExecContext(ctx, query, m.Nome)
	if err != nil {
		r.logger.Error("failed to create modulo", zap.Error(err))
		return fmt.Errorf("failed to create modulo: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	m.ID = int(id)
	return nil
}

// GetPermissoesUsuario returns the module names a user may access.
// Admins get every module; other roles only their explicit grants.
func (r *moduloRepository) GetPermissoesUsuario(ctx context.Context, userID int) ([]string, error) {
	var role string
	err := r.db.QueryRowContext(ctx, `SELECT role FROM usuarios WHERE id = ?`, userID).Scan(&role)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("failed to get usuario role", zap.Error(err), zap.Int("user_id", userID))
		return nil, fmt.Errorf("failed to get usuario role: %w", err)
	}

	query := `
		SELECT m.Nome_Modulo
		FROM permissoes_usuarios pu
		JOIN modulos m ON pu.ID_Modulo = m.ID_Modulo
		WHERE pu.ID_Usuario = ?
		ORDER BY m.Nome_Modulo
	`
	args := []any{userID}
	if role == models.RoleAdmin {
		query = `SELECT Nome_Modulo FROM modulos ORDER BY Nome_Modulo`
		args = nil
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to get permissoes do usuario", zap.Error(err), zap.Int("user_id", userID))
		return nil, fmt.Errorf("failed to get permissoes do usuario: %w", err)
	}
	defer rows.Close()

	var nomes []string
	for rows.Next() {
		var nome string
		if err := rows.Scan(&nome); err != nil {
			return nil, fmt.Errorf("failed to scan permissao: %w", err)
		}
		nomes = append(nomes, nome)
	}
	return nomes, rows.Err()
}

// GetPermissoesIDs returns the module ids explicitly granted to a user
func (r *moduloRepository) GetPermissoesIDs(ctx context.Context, userID int) ([]int, error) {
	query := `SELECT ID_Modulo FROM permissoes_usuarios WHERE ID_Usuario = ?`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		r.logger.Error("failed to get permissao ids", zap.Error(err), zap.Int("user_id", userID))
		return nil, fmt.Errorf("failed to get permissao ids: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan permissao id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ReplacePermissoes replaces a user's explicit module grants with the given
// set, inside one transaction
func (r *moduloRepository) ReplacePermissoes(ctx context.Context, userID int, moduloIDs []int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM permissoes_usuarios WHERE ID_Usuario = ?`, userID); err != nil {
		r.logger.Error("failed to clear permissoes", zap.Error(err), zap.Int("user_id", userID))
		return fmt.Errorf("failed to clear permissoes: %w", err)
	}

	for _, moduloID := range moduloIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO permissoes_usuarios (ID_Usuario, ID_Modulo) VALUES (?, ?)`,
			userID, moduloID,
		); err != nil {
			r.logger.Error("failed to insert permissao", zap.Error(err),
				zap.Int("user_id", userID), zap.Int("modulo_id", moduloID))
			return fmt.Errorf("failed to insert permissao: %w", err)
		}
	}

	return tx.Commit()
}

// GrantPermissao adds one explicit grant, ignoring duplicates
func (r *moduloRepository) GrantPermissao(ctx context.Context, userID, moduloID int) error {
	query := `INSERT IGNORE INTO permissoes_usuarios (ID_Usuario, ID_Modulo) VALUES (?, ?)`

	if _, err := r.db.ExecContext(ctx, query, userID, moduloID); err != nil {
		r.logger.Error("failed to grant permissao", zap.Error(err),
			zap.Int("user_id", userID), zap.Int("modulo_id", moduloID))
		return fmt.Errorf("failed to grant permissao: %w", err)
	}
	return nil
}

// RevokePermissao removes one explicit grant
func (r *moduloRepository) RevokePermissao(ctx context.Context, userID, moduloID int) error {
	query := `DELETE FROM permissoes_usuarios WHERE ID_Usuario = ? AND ID_Modulo = ?`

	if _, err := r.db.ExecContext(ctx, query, userID, moduloID); err != nil {
		r.logger.Error("failed to revoke permissao", zap.Error(err),
			zap.Int("user_id", userID), zap.Int("modulo_id", moduloID))
		return fmt.Errorf("failed to revoke permissao: %w", err)
	}
	return nil
}
