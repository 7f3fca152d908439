package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lumob/backend/internal/models"
	"go.uber.org/zap"
)

// DependenteFilter holds the optional list filters for dependentes.
// Matricula and Nome match as substrings; Parentesco matches exactly.
type DependenteFilter struct {
	Matricula  string
	Nome       string
	Parentesco string
}

// dependenteRepository handles the dependentes table
type dependenteRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewDependenteRepository creates a new dependente repository
func NewDependenteRepository(db *sql.DB, logger *zap.Logger) *dependenteRepository {
	return &dependenteRepository{
		db:     db,
		logger: logger,
	}
}

const dependenteSelect = `
	SELECT
		d.ID_Dependente, d.Matricula_Funcionario, d.Nome_Completo, d.Parentesco,
		d.Data_Nascimento, d.Cpf, d.Contato_Emergencia, d.Telefone_Emergencia, d.Observacoes,
		f.Nome_Completo AS Nome_Funcionario
	FROM dependentes d
	LEFT JOIN funcionarios f ON d.Matricula_Funcionario = f.Matricula
`

func scanDependente(rows *sql.Rows) (*models.Dependente, error) {
	d := &models.Dependente{}
	var cpf, contato, telefone, observacoes, nomeFuncionario sql.NullString

	if err := rows.Scan(
		&d.ID, &d.MatriculaFuncionario, &d.NomeCompleto, &d.Parentesco,
		&d.DataNascimento, &cpf, &contato, &telefone, &observacoes,
		&nomeFuncionario,
	); err != nil {
		return nil, fmt.Errorf("failed to scan dependente: %w", err)
	}

	d.Cpf = cpf.String
	d.ContatoEmergencia = contato.String
	d.TelefoneEmergencia = telefone.String
	d.Observacoes = observacoes.String
	d.NomeFuncionario = nomeFuncionario.String
	return d, nil
}

// List returns dependentes, optionally filtered
func (r *dependenteRepository) List(ctx context.Context, filter DependenteFilter) ([]models.Dependente, error) {
	query := dependenteSelect + ` WHERE 1=1`
	var args []any

	if filter.Matricula != "" {
		query += ` AND d.Matricula_Funcionario LIKE ?`
		args = append(args, "%"+filter.Matricula+"%")
	}
	if filter.Nome != "" {
		query += ` AND d.Nome_Completo LIKE ?`
		args = append(args, "%"+filter.Nome+"%")
	}
	if filter.Parentesco != "" {
		query += ` AND d.Parentesco = ?`
		args = append(args, filter.Parentesco)
	}
	query += ` ORDER BY f.Nome_Completo, d.Nome_Completo`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to list dependentes", zap.Error(err))
		return nil, fmt.Errorf("failed to list dependentes: %w", err)
	}
	defer rows.Close()

	var dependentes []models.Dependente
	for rows.Next() {
		d, err := scanDependente(rows)
		if err != nil {
			return nil, err
		}
		dependentes = append(dependentes, *d)
	}
	return dependentes, rows.Err()
}

// GetByID retrieves one dependente. Returns (nil, nil) when no row matches.
func (r *dependenteRepository) GetByID(ctx context.Context, id int) (*models.Dependente, error) {
	rows, err := r.db.QueryContext(ctx, dependenteSelect+` WHERE d.ID_Dependente = ?`, id)
	if err != nil {
		r.logger.Error("failed to get dependente", zap.Error(err), zap.Int("id", id))
		return nil, fmt.Errorf("failed to get dependente: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanDependente(rows)
}

// ExistsCpf checks whether another dependente already holds the given CPF.
// excludeID skips the record being updated; pass 0 on create.
func (r *dependenteRepository) ExistsCpf(ctx context.Context, cpf string, excludeID int) (bool, error) {
	query := `SELECT COUNT(*) FROM dependentes WHERE Cpf = ? AND ID_Dependente != ?`

	var count int
	if err := r.db.QueryRowContext(ctx, query, cpf, excludeID).Scan(&count); err != nil {
		r.logger.Error("failed to check dependente cpf", zap.Error(err))
		return false, fmt.Errorf("failed to check dependente cpf: %w", err)
	}
	return count > 0, nil
}

// Create inserts a new dependente
func (r *dependenteRepository) Create(ctx context.Context, d *models.Dependente) error {
	query := `
		INSERT INTO dependentes
			(Matricula_Funcionario, Nome_Completo, Parentesco, Data_Nascimento, Cpf,
			 Contato_Emergencia, Telefone_Emergencia, Observacoes, Data_Criacao, Data_Modificacao)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())
	`

	result, err := r.db.ExecContext(ctx, query,
		d.MatriculaFuncionario, d.NomeCompleto, d.Parentesco, d.DataNascimento,
		nullif(d.Cpf), nullif(d.ContatoEmergencia), nullif(d.TelefoneEmergencia), nullif(d.Observacoes),
	)
	if err != nil {
		r.logger.Error("failed to create dependente", zap.Error(err))
		return fmt.Errorf("failed to create dependente: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	d.ID = int(id)
	return nil
}

// Update updates a dependente
func (r *dependenteRepository) Update(ctx context.Context, d *models.Dependente) error {
	query := `
		UPDATE dependentes
		SET Matricula_Funcionario = ?, Nome_Completo = ?, Parentesco = ?, Data_Nascimento = ?,
			Cpf = ?, Contato_Emergencia = ?, Telefone_Emergencia = ?, Observacoes = ?,
			Data_Modificacao = NOW()
		WHERE ID_Dependente = ?
	`

	if _, err := r.db.ExecContext(ctx, query,
		d.MatriculaFuncionario, d.NomeCompleto, d.Parentesco, d.DataNascimento,
		nullif(d.Cpf), nullif(d.ContatoEmergencia), nullif(d.TelefoneEmergencia), nullif(d.Observacoes),
		d.ID,
	); err != nil {
		r.logger.Error("failed to update dependente", zap.Error(err), zap.Int("id", d.ID))
		return fmt.Errorf("failed to update dependente: %w", err)
	}
	return nil
}

// Delete removes a dependente
func (r *dependenteRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM dependentes WHERE ID_Dependente = ?`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		r.logger.Error("failed to delete dependente", zap.Error(err), zap.Int("id", id))
		return fmt.Errorf("failed to delete dependente: %w", err)
	}
	return nil
}
