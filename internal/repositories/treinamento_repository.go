package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lumob/backend/internal/models"
	"go.uber.org/zap"
)

// treinamentoRepository handles the treinamentos catalog plus the
// treinamentos_agendamentos and treinamentos_participantes tables
type treinamentoRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewTreinamentoRepository creates a new treinamento repository
func NewTreinamentoRepository(db *sql.DB, logger *zap.Logger) *treinamentoRepository {
	return &treinamentoRepository{
		db:     db,
		logger: logger,
	}
}

// --- catálogo de treinamentos ---

const treinamentoSelect = `
	SELECT
		ID_Treinamentos, Nome_Treinamento, Descricao, Carga_Horaria_Horas, Tipo_Treinamento,
		Validade_Dias, Instrutor_Responsavel
	FROM treinamentos
`

func scanTreinamento(rows *sql.Rows) (*models.Treinamento, error) {
	t := &models.Treinamento{}
	var descricao, instrutor sql.NullString
	var validade sql.NullInt64

	if err := rows.Scan(
		&t.ID, &t.NomeTreinamento, &descricao, &t.CargaHorariaHoras, &t.TipoTreinamento,
		&validade, &instrutor,
	); err != nil {
		return nil, fmt.Errorf("failed to scan treinamento: %w", err)
	}

	t.Descricao = descricao.String
	t.ValidadeDias = int(validade.Int64)
	t.InstrutorResponsavel = instrutor.String
	return t, nil
}

// List returns all treinamentos ordered by name
func (r *treinamentoRepository) List(ctx context.Context) ([]models.Treinamento, error) {
	rows, err := r.db.QueryContext(ctx, treinamentoSelect+` ORDER BY Nome_Treinamento`)
	if err != nil {
		r.logger.Error("failed to list treinamentos", zap.Error(err))
		return nil, fmt.Errorf("failed to list treinamentos: %w", err)
	}
	defer rows.Close()

	var treinamentos []models.Treinamento
	for rows.Next() {
		t, err := scanTreinamento(rows)
		if err != nil {
			return nil, err
		}
		treinamentos = append(treinamentos, *t)
	}
	return treinamentos, rows.Err()
}

// GetByID retrieves one treinamento. Returns (nil, nil) when no row matches.
func (r *treinamentoRepository) GetByID(ctx context.Context, id int) (*models.Treinamento, error) {
	rows, err := r.db.QueryContext(ctx, treinamentoSelect+` WHERE ID_Treinamentos = ?`, id)
	if err != nil {
		r.logger.Error("failed to get treinamento", zap.Error(err), zap.Int("id", id))
		return nil, fmt.Errorf("failed to get treinamento: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanTreinamento(rows)
}

// ExistsNome checks whether another treinamento already has the given name.
// excludeID skips the record being updated; pass 0 on create.
func (r *treinamentoRepository) ExistsNome(ctx context.Context, nome string, excludeID int) (bool, error) {
	query := `SELECT COUNT(*) FROM treinamentos WHERE Nome_Treinamento = ? AND ID_Treinamentos != ?`

	var count int
	if err := r.db.QueryRowContext(ctx, query, nome, excludeID).Scan(&count); err != nil {
		r.logger.Error("failed to check treinamento nome", zap.Error(err))
		return false, fmt.Errorf("failed to check treinamento nome: %w", err)
	}
	return count > 0, nil
}

// Create inserts a new treinamento
func (r *treinamentoRepository) Create(ctx context.Context, t *models.Treinamento) error {
	query := `
		INSERT INTO treinamentos
			(Nome_Treinamento, Descricao, Carga_Horaria_Horas, Tipo_Treinamento, Validade_Dias,
			 Instrutor_Responsavel, Data_Criacao, Data_Modificacao)
		VALUES (?, ?, ?, ?, ?, ?, NOW(), NOW())
	`

	result, err := r.db.ExecContext(ctx, query,
		t.NomeTreinamento, nullif(t.Descricao), t.CargaHorariaHoras, t.TipoTreinamento,
		t.ValidadeDias, nullif(t.InstrutorResponsavel),
	)
	if err != nil {
		r.logger.Error("failed to create treinamento", zap.Error(err))
		return fmt.Errorf("failed to create treinamento: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	t.ID = int(id)
	return nil
}

// Update updates a treinamento
func (r *treinamentoRepository) Update(ctx context.Context, t *models.Treinamento) error {
	query := `
		UPDATE treinamentos
		SET Nome_Treinamento = ?, Descricao = ?, Carga_Horaria_Horas = ?, Tipo_Treinamento = ?,
			Validade_Dias = ?, Instrutor_Responsavel = ?, Data_Modificacao = NOW()
		WHERE ID_Treinamentos = ?
	`

	if _, err := r.db.ExecContext(ctx, query,
		t.NomeTreinamento, nullif(t.Descricao), t.CargaHorariaHoras, t.TipoTreinamento,
		t.ValidadeDias, nullif(t.InstrutorResponsavel), t.ID,
	); err != nil {
		r.logger.Error("failed to update treinamento", zap.Error(err), zap.Int("id", t.ID))
		return fmt.Errorf("failed to update treinamento: %w", err)
	}
	return nil
}

// Delete removes a treinamento
func (r *treinamentoRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM treinamentos WHERE ID_Treinamentos = ?`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		r.logger.Error("failed to delete treinamento", zap.Error(err), zap.Int("id", id))
		return fmt.Errorf("failed to delete treinamento: %w", err)
	}
	return nil
}

// --- agendamentos ---

const agendamentoSelect = `
	SELECT
		ag.ID_Agendamentos, ag.ID_Treinamentos, ag.Data_Hora_Inicio, ag.Data_Hora_Fim,
		ag.Local_Treinamento, ag.Status_Agendamento, ag.Observacoes,
		t.Nome_Treinamento
	FROM treinamentos_agendamentos ag
	LEFT JOIN treinamentos t ON ag.ID_Treinamentos = t.ID_Treinamentos
`

func scanAgendamento(rows *sql.Rows) (*models.TreinamentoAgendamento, error) {
	ag := &models.TreinamentoAgendamento{}
	var local, observacoes, nomeTreinamento sql.NullString

	if err := rows.Scan(
		&ag.ID, &ag.IDTreinamento, &ag.DataHoraInicio, &ag.DataHoraFim,
		&local, &ag.StatusAgendamento, &observacoes,
		&nomeTreinamento,
	); err != nil {
		return nil, fmt.Errorf("failed to scan agendamento: %w", err)
	}

	ag.LocalTreinamento = local.String
	ag.Observacoes = observacoes.String
	ag.NomeTreinamento = nomeTreinamento.String
	return ag, nil
}

// ListAgendamentos returns turmas, optionally filtered by treinamento
func (r *treinamentoRepository) ListAgendamentos(ctx context.Context, treinamentoID int) ([]models.TreinamentoAgendamento, error) {
	query := agendamentoSelect + ` WHERE 1=1`
	var args []any

	if treinamentoID > 0 {
		query += ` AND ag.ID_Treinamentos = ?`
		args = append(args, treinamentoID)
	}
	query += ` ORDER BY ag.Data_Hora_Inicio DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to list agendamentos", zap.Error(err))
		return nil, fmt.Errorf("failed to list agendamentos: %w", err)
	}
	defer rows.Close()

	var agendamentos []models.TreinamentoAgendamento
	for rows.Next() {
		ag, err := scanAgendamento(rows)
		if err != nil {
			return nil, err
		}
		agendamentos = append(agendamentos, *ag)
	}
	return agendamentos, rows.Err()
}

// GetAgendamentoByID retrieves one turma. Returns (nil, nil) when no row matches.
func (r *treinamentoRepository) GetAgendamentoByID(ctx context.Context, id int) (*models.TreinamentoAgendamento, error) {
	rows, err := r.db.QueryContext(ctx, agendamentoSelect+` WHERE ag.ID_Agendamentos = ?`, id)
	if err != nil {
		r.logger.Error("failed to get agendamento", zap.Error(err), zap.Int("id", id))
		return nil, fmt.Errorf("failed to get agendamento: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanAgendamento(rows)
}

// CreateAgendamento inserts a new turma
func (r *treinamentoRepository) CreateAgendamento(ctx context.Context, ag *models.TreinamentoAgendamento) error {
	query := `
		INSERT INTO treinamentos_agendamentos
			(ID_Treinamentos, Data_Hora_Inicio, Data_Hora_Fim, Local_Treinamento,
			 Status_Agendamento, Observacoes, Data_Criacao, Data_Modificacao)
		VALUES (?, ?, ?, ?, ?, ?, NOW(), NOW())
	`

	result, err := r.db.ExecContext(ctx, query,
		ag.IDTreinamento, ag.DataHoraInicio, ag.DataHoraFim, nullif(ag.LocalTreinamento),
		ag.StatusAgendamento, nullif(ag.Observacoes),
	)
	if err != nil {
		r.logger.Error("failed to create agendamento", zap.Error(err))
		return fmt.Errorf("failed to create agendamento: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	ag.ID = int(id)
	return nil
}

// UpdateAgendamento updates a turma
func (r *treinamentoRepository) UpdateAgendamento(ctx context.Context, ag *models.TreinamentoAgendamento) error {
	query := `
		UPDATE treinamentos_agendamentos
		SET ID_Treinamentos = ?, Data_Hora_Inicio = ?, Data_Hora_Fim = ?, Local_Treinamento = ?,
			Status_Agendamento = ?, Observacoes = ?, Data_Modificacao = NOW()
		WHERE ID_Agendamentos = ?
	`

	if _, err := r.db.ExecContext(ctx, query,
		ag.IDTreinamento, ag.DataHoraInicio, ag.DataHoraFim, nullif(ag.LocalTreinamento),
		ag.StatusAgendamento, nullif(ag.Observacoes), ag.ID,
	); err != nil {
		r.logger.Error("failed to update agendamento", zap.Error(err), zap.Int("id", ag.ID))
		return fmt.Errorf("failed to update agendamento: %w", err)
	}
	return nil
}

// DeleteAgendamento removes a turma together with its participantes
func (r *treinamentoRepository) DeleteAgendamento(ctx context.Context, id int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM treinamentos_participantes WHERE ID_Agendamentos = ?`, id); err != nil {
		r.logger.Error("failed to delete participantes of agendamento", zap.Error(err), zap.Int("id", id))
		return fmt.Errorf("failed to delete participantes of agendamento: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM treinamentos_agendamentos WHERE ID_Agendamentos = ?`, id); err != nil {
		r.logger.Error("failed to delete agendamento", zap.Error(err), zap.Int("id", id))
		return fmt.Errorf("failed to delete agendamento: %w", err)
	}
	return tx.Commit()
}

// --- participantes ---

const participanteSelect = `
	SELECT
		p.ID_Participantes, p.ID_Agendamentos, p.Matricula_Funcionario, p.Presenca,
		p.Nota_Avaliacao, p.Data_Conclusao, p.Certificado_Emitido,
		f.Nome_Completo AS Nome_Funcionario, t.Nome_Treinamento
	FROM treinamentos_participantes p
	LEFT JOIN funcionarios f ON p.Matricula_Funcionario = f.Matricula
	LEFT JOIN treinamentos_agendamentos ag ON p.ID_Agendamentos = ag.ID_Agendamentos
	LEFT JOIN treinamentos t ON ag.ID_Treinamentos = t.ID_Treinamentos
`

func scanParticipante(rows *sql.Rows) (*models.TreinamentoParticipante, error) {
	p := &models.TreinamentoParticipante{}
	var nomeFuncionario, nomeTreinamento sql.NullString

	if err := rows.Scan(
		&p.ID, &p.IDAgendamento, &p.MatriculaFuncionario, &p.Presenca,
		&p.NotaAvaliacao, &p.DataConclusao, &p.CertificadoEmitido,
		&nomeFuncionario, &nomeTreinamento,
	); err != nil {
		return nil, fmt.Errorf("failed to scan participante: %w", err)
	}

	p.NomeFuncionario = nomeFuncionario.String
	p.NomeTreinamento = nomeTreinamento.String
	return p, nil
}

// ListParticipantes returns the participants of a turma
func (r *treinamentoRepository) ListParticipantes(ctx context.Context, agendamentoID int) ([]models.TreinamentoParticipante, error) {
	query := participanteSelect + ` WHERE p.ID_Agendamentos = ? ORDER BY f.Nome_Completo`

	rows, err := r.db.QueryContext(ctx, query, agendamentoID)
	if err != nil {
		r.logger.Error("failed to list participantes", zap.Error(err))
		return nil, fmt.Errorf("failed to list participantes: %w", err)
	}
	defer rows.Close()

	var participantes []models.TreinamentoParticipante
	for rows.Next() {
		p, err := scanParticipante(rows)
		if err != nil {
			return nil, err
		}
		participantes = append(participantes, *p)
	}
	return participantes, rows.Err()
}

// GetParticipanteByID retrieves one participação. Returns (nil, nil) when no row matches.
func (r *treinamentoRepository) GetParticipanteByID(ctx context.Context, id int) (*models.TreinamentoParticipante, error) {
	rows, err := r.db.QueryContext(ctx, participanteSelect+` WHERE p.ID_Participantes = ?`, id)
	if err != nil {
		r.logger.Error("failed to get participante", zap.Error(err), zap.Int("id", id))
		return nil, fmt.Errorf("failed to get participante: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanParticipante(rows)
}

// ExistsParticipante checks whether the employee is already enrolled in the turma
func (r *treinamentoRepository) ExistsParticipante(ctx context.Context, agendamentoID int, matricula string) (bool, error) {
	query := `SELECT COUNT(*) FROM treinamentos_participantes WHERE ID_Agendamentos = ? AND Matricula_Funcionario = ?`

	var count int
	if err := r.db.QueryRowContext(ctx, query, agendamentoID, matricula).Scan(&count); err != nil {
		r.logger.Error("failed to check participante", zap.Error(err))
		return false, fmt.Errorf("failed to check participante: %w", err)
	}
	return count > 0, nil
}

// CreateParticipante enrolls an employee in a turma
func (r *treinamentoRepository) CreateParticipante(ctx context.Context, p *models.TreinamentoParticipante) error {
	query := `
		INSERT INTO treinamentos_participantes
			(ID_Agendamentos, Matricula_Funcionario, Presenca, Nota_Avaliacao, Data_Conclusao,
			 Certificado_Emitido, Data_Criacao, Data_Modificacao)
		VALUES (?, ?, ?, ?, ?, ?, NOW(), NOW())
	`

	result, err := r.db.ExecContext(ctx, query,
		p.IDAgendamento, p.MatriculaFuncionario, p.Presenca, p.NotaAvaliacao, p.DataConclusao,
		p.CertificadoEmitido,
	)
	if err != nil {
		r.logger.Error("failed to create participante", zap.Error(err))
		return fmt.Errorf("failed to create participante: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	p.ID = int(id)
	return nil
}

// UpdateParticipante updates a participação (presence, grade, certificate)
func (r *treinamentoRepository) UpdateParticipante(ctx context.Context, p *models.TreinamentoParticipante) error {
	query := `
		UPDATE treinamentos_participantes
		SET Presenca = ?, Nota_Avaliacao = ?, Data_Conclusao = ?, Certificado_Emitido = ?,
			Data_Modificacao = NOW()
		WHERE ID_Participantes = ?
	`

	if _, err := r.db.ExecContext(ctx, query,
		p.Presenca, p.NotaAvaliacao, p.DataConclusao, p.CertificadoEmitido, p.ID,
	); err != nil {
		r.logger.Error("failed to update participante", zap.Error(err), zap.Int("id", p.ID))
		return fmt.Errorf("failed to update participante: %w", err)
	}
	return nil
}

// DeleteParticipante removes a participação
func (r *treinamentoRepository) DeleteParticipante(ctx context.Context, id int) error {
	query := `DELETE FROM treinamentos_participantes WHERE ID_Participantes = ?`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		r.logger.Error("failed to delete participante", zap.Error(err), zap.Int("id", id))
		return fmt.Errorf("failed to delete participante: %w", err)
	}
	return nil
}
