package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lumob/backend/internal/models"
	"go.uber.org/zap"
)

// IncidenteFilter holds the optional list filters for incidentes/acidentes
type IncidenteFilter struct {
	Tipo                 string
	Status               string
	ObraID               int
	ResponsavelMatricula string
}

// incidenteRepository handles the incidentes_acidentes table
type incidenteRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewIncidenteRepository creates a new incidente/acidente repository
func NewIncidenteRepository(db *sql.DB, logger *zap.Logger) *incidenteRepository {
	return &incidenteRepository{
		db:     db,
		logger: logger,
	}
}

const incidenteSelect = `
	SELECT
		i.ID_Incidentes_Acidentes, i.Tipo_Registro, i.Data_Hora_Ocorrencia, i.Local_Ocorrencia,
		i.ID_Obras, i.Descricao_Resumida, i.Causas_Identificadas, i.Acoes_Corretivas_Tomadas,
		i.Acoes_Preventivas_Recomendadas, i.Status_Registro, i.Responsavel_Investigacao_Matricula,
		i.Data_Fechamento, i.Observacoes,
		o.Numero_Obra, o.Nome_Obra, f.Nome_Completo AS Nome_Responsavel
	FROM incidentes_acidentes i
	LEFT JOIN obras o ON i.ID_Obras = o.ID_Obras
	LEFT JOIN funcionarios f ON i.Responsavel_Investigacao_Matricula = f.Matricula
`

func scanIncidente(rows *sql.Rows) (*models.IncidenteAcidente, error) {
	i := &models.IncidenteAcidente{}
	var causas, corretivas, preventivas, responsavel, observacoes sql.NullString
	var numeroObra, nomeObra, nomeResponsavel sql.NullString

	if err := rows.Scan(
		&i.ID, &i.TipoRegistro, &i.DataHoraOcorrencia, &i.LocalOcorrencia,
		&i.IDObra, &i.DescricaoResumida, &causas, &corretivas,
		&preventivas, &i.StatusRegistro, &responsavel,
		&i.DataFechamento, &observacoes,
		&numeroObra, &nomeObra, &nomeResponsavel,
	); err != nil {
		return nil, fmt.Errorf("failed to scan incidente: %w", err)
	}

	i.CausasIdentificadas = causas.String
	i.AcoesCorretivas = corretivas.String
	i.AcoesPreventivas = preventivas.String
	i.ResponsavelMatricula = responsavel.String
	i.Observacoes = observacoes.String
	i.NumeroObra = numeroObra.String
	i.NomeObra = nomeObra.String
	i.NomeResponsavel = nomeResponsavel.String
	return i, nil
}

// List returns registros de incidente/acidente, optionally filtered
func (r *incidenteRepository) List(ctx context.Context, filter IncidenteFilter) ([]models.IncidenteAcidente, error) {
	query := incidenteSelect + ` WHERE 1=1`
	var args []any

	if filter.Tipo != "" {
		query += ` AND i.Tipo_Registro = ?`
		args = append(args, filter.Tipo)
	}
	if filter.Status != "" {
		query += ` AND i.Status_Registro = ?`
		args = append(args, filter.Status)
	}
	if filter.ObraID > 0 {
		query += ` AND i.ID_Obras = ?`
		args = append(args, filter.ObraID)
	}
	if filter.ResponsavelMatricula != "" {
		query += ` AND i.Responsavel_Investigacao_Matricula = ?`
		args = append(args, filter.ResponsavelMatricula)
	}
	query += ` ORDER BY i.Data_Hora_Ocorrencia DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to list incidentes", zap.Error(err))
		return nil, fmt.Errorf("failed to list incidentes: %w", err)
	}
	defer rows.Close()

	var incidentes []models.IncidenteAcidente
	for rows.Next() {
		i, err := scanIncidente(rows)
		if err != nil {
			return nil, err
		}
		incidentes = append(incidentes, *i)
	}
	return incidentes, rows.Err()
}

// GetByID retrieves one registro. Returns (nil, nil) when no row matches.
func (r *incidenteRepository) GetByID(ctx context.Context, id int) (*models.IncidenteAcidente, error) {
	rows, err := r.db.QueryContext(ctx, incidenteSelect+` WHERE i.ID_Incidentes_Acidentes = ?`, id)
	if err != nil {
		r.logger.Error("failed to get incidente", zap.Error(err), zap.Int("id", id))
		return nil, fmt.Errorf("failed to get incidente: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanIncidente(rows)
}

// Create inserts a new registro de incidente/acidente
func (r *incidenteRepository) Create(ctx context.Context, i *models.IncidenteAcidente) error {
	query := `
		INSERT INTO incidentes_acidentes
			(Tipo_Registro, Data_Hora_Ocorrencia, Local_Ocorrencia, ID_Obras, Descricao_Resumida,
			 Causas_Identificadas, Acoes_Corretivas_Tomadas, Acoes_Preventivas_Recomendadas,
			 Status_Registro, Responsavel_Investigacao_Matricula, Data_Fechamento, Observacoes,
			 Data_Criacao, Data_Modificacao)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())
	`

	result, err := r.db.ExecContext(ctx, query,
		i.TipoRegistro, i.DataHoraOcorrencia, i.LocalOcorrencia, i.IDObra, i.DescricaoResumida,
		nullif(i.CausasIdentificadas), nullif(i.AcoesCorretivas), nullif(i.AcoesPreventivas),
		i.StatusRegistro, nullif(i.ResponsavelMatricula), i.DataFechamento, nullif(i.Observacoes),
	)
	if err != nil {
		r.logger.Error("failed to create incidente", zap.Error(err))
		return fmt.Errorf("failed to create incidente: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	i.ID = int(id)
	return nil
}

// Update updates a registro de incidente/acidente
func (r *incidenteRepository) Update(ctx context.Context, i *models.IncidenteAcidente) error {
	query := `
		UPDATE incidentes_acidentes
		SET Tipo_Registro = ?, Data_Hora_Ocorrencia = ?, Local_Ocorrencia = ?, ID_Obras = ?,
			Descricao_Resumida = ?, Causas_Identificadas = ?, Acoes_Corretivas_Tomadas = ?,
			Acoes_Preventivas_Recomendadas = ?, Status_Registro = ?,
			Responsavel_Investigacao_Matricula = ?, Data_Fechamento = ?, Observacoes = ?,
			Data_Modificacao = NOW()
		WHERE ID_Incidentes_Acidentes = ?
	`

	if _, err := r.db.ExecContext(ctx, query,
		i.TipoRegistro, i.DataHoraOcorrencia, i.LocalOcorrencia, i.IDObra, i.DescricaoResumida,
		nullif(i.CausasIdentificadas), nullif(i.AcoesCorretivas), nullif(i.AcoesPreventivas),
		i.StatusRegistro, nullif(i.ResponsavelMatricula), i.DataFechamento, nullif(i.Observacoes),
		i.ID,
	); err != nil {
		r.logger.Error("failed to update incidente", zap.Error(err), zap.Int("id", i.ID))
		return fmt.Errorf("failed to update incidente: %w", err)
	}
	return nil
}

// Delete removes a registro de incidente/acidente
func (r *incidenteRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM incidentes_acidentes WHERE ID_Incidentes_Acidentes = ?`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		r.logger.Error("failed to delete incidente", zap.Error(err), zap.Int("id", id))
		return fmt.Errorf("failed to delete incidente: %w", err)
	}
	return nil
}

// TipoCounts returns the number of registros grouped by tipo
func (r *incidenteRepository) TipoCounts(ctx context.Context) (map[string]int, error) {
	return r.groupCounts(ctx, "Tipo_Registro")
}

// StatusCounts returns the number of registros grouped by status
func (r *incidenteRepository) StatusCounts(ctx context.Context) (map[string]int, error) {
	return r.groupCounts(ctx, "Status_Registro")
}

// MonthCounts returns the number of registros per month of occurrence,
// oldest first, for the dashboard trend series
func (r *incidenteRepository) MonthCounts(ctx context.Context) ([]models.RegistroMensal, error) {
	query := `
		SELECT DATE_FORMAT(Data_Hora_Ocorrencia, '%Y-%m') AS AnoMes, COUNT(*)
		FROM incidentes_acidentes
		GROUP BY AnoMes
		ORDER BY AnoMes
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("failed to count incidentes by month", zap.Error(err))
		return nil, fmt.Errorf("failed to count incidentes by month: %w", err)
	}
	defer rows.Close()

	var counts []models.RegistroMensal
	for rows.Next() {
		var m models.RegistroMensal
		if err := rows.Scan(&m.AnoMes, &m.Total); err != nil {
			return nil, fmt.Errorf("failed to scan incidente month count: %w", err)
		}
		counts = append(counts, m)
	}
	return counts, rows.Err()
}

func (r *incidenteRepository) groupCounts(ctx context.Context, column string) (map[string]int, error) {
	query := fmt.Sprintf(`SELECT %s, COUNT(*) FROM incidentes_acidentes GROUP BY %s`, column, column)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("failed to count incidentes", zap.Error(err), zap.String("column", column))
		return nil, fmt.Errorf("failed to count incidentes: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var key string
		var count int
		if err := rows.Scan(&key, &count); err != nil {
			return nil, fmt.Errorf("failed to scan incidente count: %w", err)
		}
		counts[key] = count
	}
	return counts, rows.Err()
}
