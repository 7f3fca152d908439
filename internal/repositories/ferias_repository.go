package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lumob/backend/internal/models"
	"go.uber.org/zap"
)

// FeriasFilter holds the optional list filters for ferias. The periodo
// bounds match against the acquisition period, inclusive on both ends.
type FeriasFilter struct {
	Matricula     string
	Status        string
	PeriodoInicio string
	PeriodoFim    string
}

// feriasRepository handles the ferias table
type feriasRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewFeriasRepository creates a new ferias repository
func NewFeriasRepository(db *sql.DB, logger *zap.Logger) *feriasRepository {
	return &feriasRepository{
		db:     db,
		logger: logger,
	}
}

const feriasSelect = `
	SELECT
		f.ID_Ferias, f.Matricula_Funcionario, f.Periodo_Aquisitivo_Inicio, f.Periodo_Aquisitivo_Fim,
		f.Data_Inicio_Gozo, f.Data_Fim_Gozo, f.Dias_Gozo, f.Status_Ferias, f.Observacoes,
		func.Nome_Completo AS Nome_Funcionario
	FROM ferias f
	LEFT JOIN funcionarios func ON f.Matricula_Funcionario = func.Matricula
`

func scanFerias(rows *sql.Rows) (*models.Ferias, error) {
	f := &models.Ferias{}
	var observacoes, nomeFuncionario sql.NullString

	if err := rows.Scan(
		&f.ID, &f.MatriculaFuncionario, &f.PeriodoAquisitivoInicio, &f.PeriodoAquisitivoFim,
		&f.DataInicioGozo, &f.DataFimGozo, &f.DiasGozo, &f.StatusFerias, &observacoes,
		&nomeFuncionario,
	); err != nil {
		return nil, fmt.Errorf("failed to scan ferias: %w", err)
	}

	f.Observacoes = observacoes.String
	f.NomeFuncionario = nomeFuncionario.String
	return f, nil
}

// List returns ferias records, optionally filtered
func (r *feriasRepository) List(ctx context.Context, filter FeriasFilter) ([]models.Ferias, error) {
	query := feriasSelect + ` WHERE 1=1`
	var args []any

	if filter.Matricula != "" {
		query += ` AND f.Matricula_Funcionario LIKE ?`
		args = append(args, "%"+filter.Matricula+"%")
	}
	if filter.Status != "" {
		query += ` AND f.Status_Ferias = ?`
		args = append(args, filter.Status)
	}
	if filter.PeriodoInicio != "" {
		query += ` AND f.Periodo_Aquisitivo_Inicio >= ?`
		args = append(args, filter.PeriodoInicio)
	}
	if filter.PeriodoFim != "" {
		query += ` AND f.Periodo_Aquisitivo_Fim <= ?`
		args = append(args, filter.PeriodoFim)
	}
	query += ` ORDER BY f.Periodo_Aquisitivo_Inicio DESC, func.Nome_Completo`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to list ferias", zap.Error(err))
		return nil, fmt.Errorf("failed to list ferias: %w", err)
	}
	defer rows.Close()

	var ferias []models.Ferias
	for rows.Next() {
		f, err := scanFerias(rows)
		if err != nil {
			return nil, err
		}
		ferias = append(ferias, *f)
	}
	return ferias, rows.Err()
}

// GetByID retrieves one ferias record. Returns (nil, nil) when no row matches.
func (r *feriasRepository) GetByID(ctx context.Context, id int) (*models.Ferias, error) {
	rows, err := r.db.QueryContext(ctx, feriasSelect+` WHERE f.ID_Ferias = ?`, id)
	if err != nil {
		r.logger.Error("failed to get ferias", zap.Error(err), zap.Int("id", id))
		return nil, fmt.Errorf("failed to get ferias: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanFerias(rows)
}

// Create inserts a new ferias record
func (r *feriasRepository) Create(ctx context.Context, f *models.Ferias) error {
	query := `
		INSERT INTO ferias
			(Matricula_Funcionario, Periodo_Aquisitivo_Inicio, Periodo_Aquisitivo_Fim,
			 Data_Inicio_Gozo, Data_Fim_Gozo, Dias_Gozo, Status_Ferias, Observacoes,
			 Data_Criacao, Data_Modificacao)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())
	`

	result, err := r.db.ExecContext(ctx, query,
		f.MatriculaFuncionario, f.PeriodoAquisitivoInicio, f.PeriodoAquisitivoFim,
		f.DataInicioGozo, f.DataFimGozo, f.DiasGozo, f.StatusFerias, nullif(f.Observacoes),
	)
	if err != nil {
		r.logger.Error("failed to create ferias", zap.Error(err))
		return fmt.Errorf("failed to create ferias: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	f.ID = int(id)
	return nil
}

// Update updates a ferias record
func (r *feriasRepository) Update(ctx context.Context, f *models.Ferias) error {
	query := `
		UPDATE ferias
		SET Matricula_Funcionario = ?, Periodo_Aquisitivo_Inicio = ?, Periodo_Aquisitivo_Fim = ?,
			Data_Inicio_Gozo = ?, Data_Fim_Gozo = ?, Dias_Gozo = ?, Status_Ferias = ?,
			Observacoes = ?, Data_Modificacao = NOW()
		WHERE ID_Ferias = ?
	`

	if _, err := r.db.ExecContext(ctx, query,
		f.MatriculaFuncionario, f.PeriodoAquisitivoInicio, f.PeriodoAquisitivoFim,
		f.DataInicioGozo, f.DataFimGozo, f.DiasGozo, f.StatusFerias, nullif(f.Observacoes), f.ID,
	); err != nil {
		r.logger.Error("failed to update ferias", zap.Error(err), zap.Int("id", f.ID))
		return fmt.Errorf("failed to update ferias: %w", err)
	}
	return nil
}

// Delete removes a ferias record
func (r *feriasRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM ferias WHERE ID_Ferias = ?`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		r.logger.Error("failed to delete ferias", zap.Error(err), zap.Int("id", id))
		return fmt.Errorf("failed to delete ferias: %w", err)
	}
	return nil
}

// ListProgramadasEGozo returns every ferias record in the Programada or Gozo
// status, unfiltered by date. The upcoming-vacation windows are applied by the
// alert service.
func (r *feriasRepository) ListProgramadasEGozo(ctx context.Context) ([]models.Ferias, error) {
	query := feriasSelect + `
		WHERE f.Status_Ferias IN (?, ?)
		ORDER BY f.Data_Inicio_Gozo ASC
	`

	rows, err := r.db.QueryContext(ctx, query, models.FeriasProgramada, models.FeriasGozo)
	if err != nil {
		r.logger.Error("failed to list ferias programadas/gozo", zap.Error(err))
		return nil, fmt.Errorf("failed to list ferias programadas/gozo: %w", err)
	}
	defer rows.Close()

	var ferias []models.Ferias
	for rows.Next() {
		f, err := scanFerias(rows)
		if err != nil {
			return nil, err
		}
		ferias = append(ferias, *f)
	}
	return ferias, rows.Err()
}
