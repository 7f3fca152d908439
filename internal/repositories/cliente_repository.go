package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lumob/backend/internal/models"
	"go.uber.org/zap"
)

// clienteRepository handles the clientes table
type clienteRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewClienteRepository creates a new cliente repository
func NewClienteRepository(db *sql.DB, logger *zap.Logger) *clienteRepository {
	return &clienteRepository{
		db:     db,
		logger: logger,
	}
}

const clienteSelect = `
	SELECT
		ID_Clientes, Nome_Cliente, CNPJ_Cliente, Razao_Social_Cliente, Endereco_Cliente,
		Telefone_Cliente, Email_Cliente, Contato_Principal_Nome
	FROM clientes
`

func scanCliente(rows *sql.Rows) (*models.Cliente, error) {
	c := &models.Cliente{}
	var razaoSocial, endereco, telefone, email, contato sql.NullString

	if err := rows.Scan(
		&c.ID, &c.NomeCliente, &c.CnpjCliente, &razaoSocial, &endereco,
		&telefone, &email, &contato,
	); err != nil {
		return nil, fmt.Errorf("failed to scan cliente: %w", err)
	}

	c.RazaoSocialCliente = razaoSocial.String
	c.EnderecoCliente = endereco.String
	c.TelefoneCliente = telefone.String
	c.EmailCliente = email.String
	c.ContatoPrincipal = contato.String
	return c, nil
}

// List returns all clientes ordered by name
func (r *clienteRepository) List(ctx context.Context) ([]models.Cliente, error) {
	rows, err := r.db.QueryContext(ctx, clienteSelect+` ORDER BY Nome_Cliente`)
	if err != nil {
		r.logger.Error("failed to list clientes", zap.Error(err))
		return nil, fmt.Errorf("failed to list clientes: %w", err)
	}
	defer rows.Close()

	var clientes []models.Cliente
	for rows.Next() {
		c, err := scanCliente(rows)
		if err != nil {
			return nil, err
		}
		clientes = append(clientes, *c)
	}
	return clientes, rows.Err()
}

// GetByID retrieves one cliente. Returns (nil, nil) when no row matches.
func (r *clienteRepository) GetByID(ctx context.Context, id int) (*models.Cliente, error) {
	rows, err := r.db.QueryContext(ctx, clienteSelect+` WHERE ID_Clientes = ?`, id)
	if err != nil {
		r.logger.Error("failed to get cliente", zap.Error(err), zap.Int("id", id))
		return nil, fmt.Errorf("failed to get cliente: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanCliente(rows)
}

// ExistsCnpj checks whether another cliente already holds the given CNPJ.
// excludeID skips the record being updated; pass 0 on create.
func (r *clienteRepository) ExistsCnpj(ctx context.Context, cnpj string, excludeID int) (bool, error) {
	query := `SELECT COUNT(*) FROM clientes WHERE CNPJ_Cliente = ? AND ID_Clientes != ?`

	var count int
	if err := r.db.QueryRowContext(ctx, query, cnpj, excludeID).Scan(&count); err != nil {
		r.logger.Error("failed to check cliente cnpj", zap.Error(err))
		return false, fmt.Errorf("failed to check cliente cnpj: %w", err)
	}
	return count > 0, nil
}

// Create inserts a new cliente
func (r *clienteRepository) Create(ctx context.Context, c *models.Cliente) error {
	query := `
		INSERT INTO clientes
			(Nome_Cliente, CNPJ_Cliente, Razao_Social_Cliente, Endereco_Cliente,
			 Telefone_Cliente, Email_Cliente, Contato_Principal_Nome, Data_Criacao, Data_Modificacao)
		VALUES (?, ?, ?, ?, ?, ?, ?, NOW(), NOW())
	`

	result, err := r.db.ExecContext(ctx, query,
		c.NomeCliente, c.CnpjCliente, nullif(c.RazaoSocialCliente), nullif(c.EnderecoCliente),
		nullif(c.TelefoneCliente), nullif(c.EmailCliente), nullif(c.ContatoPrincipal),
	)
	if err != nil {
		r.logger.Error("failed to create cliente", zap.Error(err))
		return fmt.Errorf("failed to create cliente: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	c.ID = int(id)
	return nil
}

// Update updates a cliente
func (r *clienteRepository) Update(ctx context.Context, c *models.Cliente) error {
	query := `
		UPDATE clientes
		SET Nome_Cliente = ?, CNPJ_Cliente = ?, Razao_Social_Cliente = ?, Endereco_Cliente = ?,
			Telefone_Cliente = ?, Email_Cliente = ?, Contato_Principal_Nome = ?,
			Data_Modificacao = NOW()
		WHERE ID_Clientes = ?
	`

	if _, err := r.db.ExecContext(ctx, query,
		c.NomeCliente, c.CnpjCliente, nullif(c.RazaoSocialCliente), nullif(c.EnderecoCliente),
		nullif(c.TelefoneCliente), nullif(c.EmailCliente), nullif(c.ContatoPrincipal), c.ID,
	); err != nil {
		r.logger.Error("failed to update cliente", zap.Error(err), zap.Int("id", c.ID))
		return fmt.Errorf("failed to update cliente: %w", err)
	}
	return nil
}

// Delete removes a cliente
func (r *clienteRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM clientes WHERE ID_Clientes = ?`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		r.logger.Error("failed to delete cliente", zap.Error(err), zap.Int("id", id))
		return fmt.Errorf("failed to delete cliente: %w", err)
	}
	return nil
}
