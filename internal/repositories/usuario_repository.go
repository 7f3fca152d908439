package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lumob/backend/internal/models"
	"go.uber.org/zap"
)

// usuarioRepository handles data access for the usuarios table
type usuarioRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewUsuarioRepository creates a new usuario repository
func NewUsuarioRepository(db *sql.DB, logger *zap.Logger) *usuarioRepository {
	return &usuarioRepository{
		db:     db,
		logger: logger,
	}
}

const usuarioColumns = "id, username, password, role, email"

func scanUsuario(row *sql.Row) (*models.Usuario, error) {
	u := &models.Usuario{}
	var email sql.NullString
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &email)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	u.Email = email.String
	return u, nil
}

// GetByID retrieves a user by id. Returns (nil, nil) when no row matches.
func (r *usuarioRepository) GetByID(ctx context.Context, id int) (*models.Usuario, error) {
	query := `SELECT ` + usuarioColumns + ` FROM usuarios WHERE id = ?`

	u, err := scanUsuario(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		r.logger.Error("failed to get usuario by id", zap.Error(err), zap.Int("id", id))
		return nil, fmt.Errorf("failed to get usuario by id: %w", err)
	}
	return u, nil
}

// GetByUsername retrieves a user by username. Returns (nil, nil) when no row matches.
func (r *usuarioRepository) GetByUsername(ctx context.Context, username string) (*models.Usuario, error) {
	query := `SELECT ` + usuarioColumns + ` FROM usuarios WHERE username = ?`

	u, err := scanUsuario(r.db.QueryRowContext(ctx, query, username))
	if err != nil {
		r.logger.Error("failed to get usuario by username", zap.Error(err), zap.String("username", username))
		return nil, fmt.Errorf("failed to get usuario by username: %w", err)
	}
	return u, nil
}

// GetByEmail retrieves a user by email. Returns (nil, nil) when no row matches.
func (r *usuarioRepository) GetByEmail(ctx context.Context, email string) (*models.Usuario, error) {
	query := `SELECT ` + usuarioColumns + ` FROM usuarios WHERE email = ?`

	u, err := scanUsuario(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		r.logger.Error("failed to get usuario by email", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("failed to get usuario by email: %w", err)
	}
	return u, nil
}

// List returns all users ordered by username
func (r *usuarioRepository) List(ctx context.Context) ([]models.Usuario, error) {
	query := `SELECT id, username, email, role FROM usuarios ORDER BY username`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("failed to list usuarios", zap.Error(err))
		return nil, fmt.Errorf("failed to list usuarios: %w", err)
	}
	defer rows.Close()

	var usuarios []models.Usuario
	for rows.Next() {
		var u models.Usuario
		var email sql.NullString
		if err := rows.Scan(&u.ID, &u.Username, &email, &u.Role); err != nil {
			return nil, fmt.Errorf("failed to scan usuario: %w", err)
		}
		u.Email = email.String
		usuarios = append(usuarios, u)
	}
	return usuarios, rows.Err()
}

// Create inserts a new user with an already-hashed password
func (r *usuarioRepository) Create(ctx context.Context, u *models.Usuario) error {
	query := `INSERT INTO usuarios (username, password, role, email) VALUES (?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, u.Username, u.PasswordHash, u.Role, u.Email)
	if err != nil {
		r.logger.Error("failed to create usuario", zap.Error(err))
		return fmt.Errorf("failed to create usuario: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	u.ID = int(id)
	return nil
}

// Update updates username, email, role and optionally the password hash.
// An empty PasswordHash keeps the stored password.
func (r *usuarioRepository) Update(ctx context.Context, u *models.Usuario) error {
	query := `UPDATE usuarios SET username = ?, email = ?, role = ?`
	args := []any{u.Username, u.Email, u.Role}

	if u.PasswordHash != "" {
		query += `, password = ?`
		args = append(args, u.PasswordHash)
	}

	query += ` WHERE id = ?`
	args = append(args, u.ID)

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.Error("failed to update usuario", zap.Error(err), zap.Int("id", u.ID))
		return fmt.Errorf("failed to update usuario: %w", err)
	}
	return nil
}

// ResetPassword overwrites the stored password hash
func (r *usuarioRepository) ResetPassword(ctx context.Context, id int, passwordHash string) error {
	query := `UPDATE usuarios SET password = ? WHERE id = ?`

	if _, err := r.db.ExecContext(ctx, query, passwordHash, id); err != nil {
		r.logger.Error("failed to reset usuario password", zap.Error(err), zap.Int("id", id))
		return fmt.Errorf("failed to reset usuario password: %w", err)
	}
	return nil
}

// Delete removes a user and its module permissions in one transaction.
// Permissions go first to avoid foreign key errors.
func (r *usuarioRepository) Delete(ctx context.Context, id int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM permissoes_usuarios WHERE ID_Usuario = ?`, id); err != nil {
		r.logger.Error("failed to delete usuario permissions", zap.Error(err), zap.Int("id", id))
		return fmt.Errorf("failed to delete usuario permissions: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM usuarios WHERE id = ?`, id); err != nil {
		r.logger.Error("failed to delete usuario", zap.Error(err), zap.Int("id", id))
		return fmt.Errorf("failed to delete usuario: %w", err)
	}

	return tx.Commit()
}
