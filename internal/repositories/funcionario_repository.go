package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lumob/backend/internal/models"
	"go.uber.org/zap"
)

// FuncionarioFilter holds the optional list filters for funcionarios
type FuncionarioFilter struct {
	Matricula string
	Nome      string
	Status    string
	CargoID   int
}

// funcionarioRepository handles the funcionarios and funcionarios_documentos tables
type funcionarioRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewFuncionarioRepository creates a new funcionario repository
func NewFuncionarioRepository(db *sql.DB, logger *zap.Logger) *funcionarioRepository {
	return &funcionarioRepository{
		db:     db,
		logger: logger,
	}
}

// NextMatricula generates the next sequential matricula (MATR001, MATR002, ...)
func (r *funcionarioRepository) NextMatricula(ctx context.Context) (string, error) {
	query := `
		SELECT Matricula FROM funcionarios
		WHERE Matricula REGEXP '^MATR[0-9]+$'
		ORDER BY LENGTH(Matricula) DESC, Matricula DESC
		LIMIT 1
	`

	var last string
	err := r.db.QueryRowContext(ctx, query).Scan(&last)
	if err == sql.ErrNoRows {
		return "MATR001", nil
	}
	if err != nil {
		r.logger.Error("failed to get last matricula", zap.Error(err))
		return "", fmt.Errorf("failed to get last matricula: %w", err)
	}

	var num int
	if _, err := fmt.Sscanf(last, "MATR%d", &num); err != nil {
		return "MATR001", nil
	}
	return fmt.Sprintf("MATR%03d", num+1), nil
}

// List returns funcionarios with cargo and nivel names, optionally filtered
func (r *funcionarioRepository) List(ctx context.Context, filter FuncionarioFilter) ([]models.Funcionario, error) {
	query := `
		SELECT
			f.Matricula, f.Nome_Completo, f.Data_Admissao, f.ID_Cargos, f.ID_Niveis,
			f.Status, f.Tipo_Contratacao, c.Nome_Cargo, n.Nome_Nivel
		FROM funcionarios f
		LEFT JOIN cargos c ON f.ID_Cargos = c.ID_Cargos
		LEFT JOIN niveis n ON f.ID_Niveis = n.ID_Niveis
		WHERE 1=1
	`
	var args []any

	if filter.Matricula != "" {
		query += " AND f.Matricula LIKE ?"
		args = append(args, "%"+filter.Matricula+"%")
	}
	if filter.Nome != "" {
		query += " AND f.Nome_Completo LIKE ?"
		args = append(args, "%"+filter.Nome+"%")
	}
	if filter.Status != "" {
		query += " AND f.Status = ?"
		args = append(args, filter.Status)
	}
	if filter.CargoID != 0 {
		query += " AND f.ID_Cargos = ?"
		args = append(args, filter.CargoID)
	}

	query += " ORDER BY f.Nome_Completo"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to list funcionarios", zap.Error(err))
		return nil, fmt.Errorf("failed to list funcionarios: %w", err)
	}
	defer rows.Close()

	var funcionarios []models.Funcionario
	for rows.Next() {
		f, err := scanFuncionario(rows)
		if err != nil {
			return nil, err
		}
		funcionarios = append(funcionarios, *f)
	}
	return funcionarios, rows.Err()
}

func scanFuncionario(rows *sql.Rows) (*models.Funcionario, error) {
	f := &models.Funcionario{}
	var idCargo, idNivel sql.NullInt64
	var tipoContratacao, nomeCargo, nomeNivel sql.NullString

	if err := rows.Scan(
		&f.Matricula, &f.NomeCompleto, &f.DataAdmissao, &idCargo, &idNivel,
		&f.Status, &tipoContratacao, &nomeCargo, &nomeNivel,
	); err != nil {
		return nil, fmt.Errorf("failed to scan funcionario: %w", err)
	}

	if idCargo.Valid {
		v := int(idCargo.Int64)
		f.IDCargo = &v
	}
	if idNivel.Valid {
		v := int(idNivel.Int64)
		f.IDNivel = &v
	}
	f.TipoContratacao = tipoContratacao.String
	f.NomeCargo = nomeCargo.String
	f.NomeNivel = nomeNivel.String
	return f, nil
}

// GetByMatricula retrieves one funcionario with cargo and nivel names.
// Returns (nil, nil) when no row matches.
func (r *funcionarioRepository) GetByMatricula(ctx context.Context, matricula string) (*models.Funcionario, error) {
	query := `
		SELECT
			f.Matricula, f.Nome_Completo, f.Data_Admissao, f.ID_Cargos, f.ID_Niveis,
			f.Status, f.Tipo_Contratacao, c.Nome_Cargo, n.Nome_Nivel
		FROM funcionarios f
		LEFT JOIN cargos c ON f.ID_Cargos = c.ID_Cargos
		LEFT JOIN niveis n ON f.ID_Niveis = n.ID_Niveis
		WHERE f.Matricula = ?
	`

	rows, err := r.db.QueryContext(ctx, query, matricula)
	if err != nil {
		r.logger.Error("failed to get funcionario", zap.Error(err), zap.String("matricula", matricula))
		return nil, fmt.Errorf("failed to get funcionario: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanFuncionario(rows)
}

// Create inserts a new funcionario
func (r *funcionarioRepository) Create(ctx context.Context, f *models.Funcionario) error {
	query := `
		INSERT INTO funcionarios
			(Matricula, Nome_Completo, Data_Admissao, ID_Cargos, ID_Niveis, Status, Tipo_Contratacao, Data_Criacao, Data_Modificacao)
		VALUES (?, ?, ?, ?, ?, ?, ?, NOW(), NOW())
	`

	if _, err := r.db.ExecContext(ctx, query,
		f.Matricula, f.NomeCompleto, f.DataAdmissao, f.IDCargo, f.IDNivel, f.Status, f.TipoContratacao,
	); err != nil {
		r.logger.Error("failed to create funcionario", zap.Error(err))
		return fmt.Errorf("failed to create funcionario: %w", err)
	}
	return nil
}

// Update updates the main funcionario record, optionally renaming the matricula
func (r *funcionarioRepository) Update(ctx context.Context, oldMatricula string, f *models.Funcionario) error {
	query := `
		UPDATE funcionarios
		SET Matricula = ?, Nome_Completo = ?, Data_Admissao = ?, ID_Cargos = ?,
			ID_Niveis = ?, Status = ?, Data_Modificacao = NOW()
		WHERE Matricula = ?
	`

	if _, err := r.db.ExecContext(ctx, query,
		f.Matricula, f.NomeCompleto, f.DataAdmissao, f.IDCargo, f.IDNivel, f.Status, oldMatricula,
	); err != nil {
		r.logger.Error("failed to update funcionario", zap.Error(err), zap.String("matricula", oldMatricula))
		return fmt.Errorf("failed to update funcionario: %w", err)
	}
	return nil
}

// Delete removes a funcionario; related tables cascade
func (r *funcionarioRepository) Delete(ctx context.Context, matricula string) error {
	query := `DELETE FROM funcionarios WHERE Matricula = ?`

	if _, err := r.db.ExecContext(ctx, query, matricula); err != nil {
		r.logger.Error("failed to delete funcionario", zap.Error(err), zap.String("matricula", matricula))
		return fmt.Errorf("failed to delete funcionario: %w", err)
	}
	return nil
}

// SaveDocumentos inserts or updates the personal data and documents row
func (r *funcionarioRepository) SaveDocumentos(ctx context.Context, d *models.FuncionarioDocumentos) error {
	query := `
		INSERT INTO funcionarios_documentos (
			Matricula_Funcionario, Data_Nascimento, Estado_Civil, Nacionalidade, Naturalidade, Genero,
			Rg_Numero, Rg_OrgaoEmissor, Rg_UfEmissor, Rg_DataEmissao, Cpf_Numero,
			Ctps_Numero, Ctps_Serie, Pispasep,
			Cnh_Numero, Cnh_Categoria, Cnh_DataValidade, Cnh_OrgaoEmissor,
			TitEleitor_Numero, TitEleitor_Zona, TitEleitor_Secao, Observacoes
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			Data_Nascimento = VALUES(Data_Nascimento), Estado_Civil = VALUES(Estado_Civil),
			Nacionalidade = VALUES(Nacionalidade), Naturalidade = VALUES(Naturalidade),
			Genero = VALUES(Genero), Rg_Numero = VALUES(Rg_Numero),
			Rg_OrgaoEmissor = VALUES(Rg_OrgaoEmissor), Rg_UfEmissor = VALUES(Rg_UfEmissor),
			Rg_DataEmissao = VALUES(Rg_DataEmissao), Cpf_Numero = VALUES(Cpf_Numero),
			Ctps_Numero = VALUES(Ctps_Numero), Ctps_Serie = VALUES(Ctps_Serie),
			Pispasep = VALUES(Pispasep), Cnh_Numero = VALUES(Cnh_Numero),
			Cnh_Categoria = VALUES(Cnh_Categoria), Cnh_DataValidade = VALUES(Cnh_DataValidade),
			Cnh_OrgaoEmissor = VALUES(Cnh_OrgaoEmissor), TitEleitor_Numero = VALUES(TitEleitor_Numero),
			TitEleitor_Zona = VALUES(TitEleitor_Zona), TitEleitor_Secao = VALUES(TitEleitor_Secao),
			Observacoes = VALUES(Observacoes)
	`

	if _, err := r.db.ExecContext(ctx, query,
		d.MatriculaFuncionario, d.DataNascimento, nullif(d.EstadoCivil), nullif(d.Nacionalidade),
		nullif(d.Naturalidade), nullif(d.Genero), nullif(d.RgNumero), nullif(d.RgOrgaoEmissor),
		nullif(d.RgUfEmissor), d.RgDataEmissao, nullif(d.CpfNumero), nullif(d.CtpsNumero),
		nullif(d.CtpsSerie), nullif(d.PisPasep), nullif(d.CnhNumero), nullif(d.CnhCategoria),
		d.CnhDataValidade, nullif(d.CnhOrgaoEmissor), nullif(d.TitEleitorNumero),
		nullif(d.TitEleitorZona), nullif(d.TitEleitorSecao), nullif(d.Observacoes),
	); err != nil {
		r.logger.Error("failed to save documentos", zap.Error(err), zap.String("matricula", d.MatriculaFuncionario))
		return fmt.Errorf("failed to save documentos: %w", err)
	}
	return nil
}

// GetDocumentos retrieves the documents row for a funcionario.
// Returns (nil, nil) when no row matches.
func (r *funcionarioRepository) GetDocumentos(ctx context.Context, matricula string) (*models.FuncionarioDocumentos, error) {
	query := `
		SELECT
			Matricula_Funcionario, Data_Nascimento, Estado_Civil, Nacionalidade, Naturalidade, Genero,
			Rg_Numero, Rg_OrgaoEmissor, Rg_UfEmissor, Rg_DataEmissao, Cpf_Numero,
			Ctps_Numero, Ctps_Serie, Pispasep,
			Cnh_Numero, Cnh_Categoria, Cnh_DataValidade, Cnh_OrgaoEmissor,
			TitEleitor_Numero, TitEleitor_Zona, TitEleitor_Secao, Observacoes
		FROM funcionarios_documentos
		WHERE Matricula_Funcionario = ?
	`

	d := &models.FuncionarioDocumentos{}
	var estadoCivil, nacionalidade, naturalidade, genero, rgNumero, rgOrgao, rgUf sql.NullString
	var cpf, ctpsNumero, ctpsSerie, pispasep, cnhNumero, cnhCategoria, cnhOrgao sql.NullString
	var titNumero, titZona, titSecao, observacoes sql.NullString

	err := r.db.QueryRowContext(ctx, query, matricula).Scan(
		&d.MatriculaFuncionario, &d.DataNascimento, &estadoCivil, &nacionalidade, &naturalidade, &genero,
		&rgNumero, &rgOrgao, &rgUf, &d.RgDataEmissao, &cpf,
		&ctpsNumero, &ctpsSerie, &pispasep,
		&cnhNumero, &cnhCategoria, &d.CnhDataValidade, &cnhOrgao,
		&titNumero, &titZona, &titSecao, &observacoes,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("failed to get documentos", zap.Error(err), zap.String("matricula", matricula))
		return nil, fmt.Errorf("failed to get documentos: %w", err)
	}

	d.EstadoCivil = estadoCivil.String
	d.Nacionalidade = nacionalidade.String
	d.Naturalidade = naturalidade.String
	d.Genero = genero.String
	d.RgNumero = rgNumero.String
	d.RgOrgaoEmissor = rgOrgao.String
	d.RgUfEmissor = rgUf.String
	d.CpfNumero = cpf.String
	d.CtpsNumero = ctpsNumero.String
	d.CtpsSerie = ctpsSerie.String
	d.PisPasep = pispasep.String
	d.CnhNumero = cnhNumero.String
	d.CnhCategoria = cnhCategoria.String
	d.CnhOrgaoEmissor = cnhOrgao.String
	d.TitEleitorNumero = titNumero.String
	d.TitEleitorZona = titZona.String
	d.TitEleitorSecao = titSecao.String
	d.Observacoes = observacoes.String
	return d, nil
}

// ExistsCpf checks whether any funcionario already holds the given CPF,
// optionally excluding one matricula (for edits)
func (r *funcionarioRepository) ExistsCpf(ctx context.Context, cpf, excludeMatricula string) (bool, error) {
	query := `SELECT EXISTS(SELECT * FROM funcionarios_documentos WHERE Cpf_Numero = ?`
	args := []any{cpf}
	if excludeMatricula != "" {
		query += ` AND Matricula_Funcionario != ?`
		args = append(args, excludeMatricula)
	}
	query += `)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		r.logger.Error("failed to check cpf existence", zap.Error(err))
		return false, fmt.Errorf("failed to check cpf existence: %w", err)
	}
	return exists, nil
}

// ListAtivos returns every active funcionario, with cargo name, ordered by
// admission date. The probation alert windows are computed by the caller.
func (r *funcionarioRepository) ListAtivos(ctx context.Context) ([]models.Funcionario, error) {
	query := `
		SELECT
			f.Matricula, f.Nome_Completo, f.Data_Admissao, f.ID_Cargos, f.ID_Niveis,
			f.Status, f.Tipo_Contratacao, c.Nome_Cargo, n.Nome_Nivel
		FROM funcionarios f
		LEFT JOIN cargos c ON f.ID_Cargos = c.ID_Cargos
		LEFT JOIN niveis n ON f.ID_Niveis = n.ID_Niveis
		WHERE f.Status = 'Ativo'
		ORDER BY f.Data_Admissao ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("failed to list funcionarios ativos", zap.Error(err))
		return nil, fmt.Errorf("failed to list funcionarios ativos: %w", err)
	}
	defer rows.Close()

	var funcionarios []models.Funcionario
	for rows.Next() {
		f, err := scanFuncionario(rows)
		if err != nil {
			return nil, err
		}
		funcionarios = append(funcionarios, *f)
	}
	return funcionarios, rows.Err()
}

// ListAtivosComCNH returns active funcionarios holding a CNH with a validity
// date. Windowing happens in the alert service.
func (r *funcionarioRepository) ListAtivosComCNH(ctx context.Context) ([]models.AlertaDocumento, error) {
	query := `
		SELECT
			f.Matricula, f.Nome_Completo, c.Nome_Cargo, fd.Cnh_Numero, fd.Cnh_DataValidade
		FROM funcionarios f
		LEFT JOIN cargos c ON f.ID_Cargos = c.ID_Cargos
		JOIN funcionarios_documentos fd ON f.Matricula = fd.Matricula_Funcionario
		WHERE f.Status = 'Ativo' AND fd.Cnh_DataValidade IS NOT NULL
		ORDER BY fd.Cnh_DataValidade ASC, f.Nome_Completo ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("failed to list CNHs ativas", zap.Error(err))
		return nil, fmt.Errorf("failed to list CNHs ativas: %w", err)
	}
	defer rows.Close()

	var docs []models.AlertaDocumento
	for rows.Next() {
		var d models.AlertaDocumento
		var nomeCargo, cnhNumero sql.NullString
		if err := rows.Scan(&d.Matricula, &d.NomeCompleto, &nomeCargo, &cnhNumero, &d.DataVencimento); err != nil {
			return nil, fmt.Errorf("failed to scan CNH ativa: %w", err)
		}
		d.NomeCargo = nomeCargo.String
		d.NumeroDocumento = cnhNumero.String
		d.TipoDocumento = "CNH"
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// StatusCounts returns the funcionario headcount per status
func (r *funcionarioRepository) StatusCounts(ctx context.Context) (map[string]int, error) {
	query := `SELECT Status, COUNT(*) AS Total FROM funcionarios GROUP BY Status`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("failed to count funcionarios by status", zap.Error(err))
		return nil, fmt.Errorf("failed to count funcionarios by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var total int
		if err := rows.Scan(&status, &total); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		counts[status] = total
	}
	return counts, rows.Err()
}

// CargoCounts returns the funcionario headcount per cargo name
func (r *funcionarioRepository) CargoCounts(ctx context.Context) (map[string]int, error) {
	query := `
		SELECT c.Nome_Cargo, COUNT(f.Matricula) AS Total
		FROM funcionarios f
		JOIN cargos c ON f.ID_Cargos = c.ID_Cargos
		GROUP BY c.Nome_Cargo
	`
	return r.namedCounts(ctx, query, "cargo")
}

// NivelCounts returns the funcionario headcount per nivel name
func (r *funcionarioRepository) NivelCounts(ctx context.Context) (map[string]int, error) {
	query := `
		SELECT n.Nome_Nivel, COUNT(f.Matricula) AS Total
		FROM funcionarios f
		JOIN niveis n ON f.ID_Niveis = n.ID_Niveis
		GROUP BY n.Nome_Nivel
	`
	return r.namedCounts(ctx, query, "nivel")
}

func (r *funcionarioRepository) namedCounts(ctx context.Context, query, grouping string) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("failed to count funcionarios", zap.Error(err), zap.String("grouping", grouping))
		return nil, fmt.Errorf("failed to count funcionarios by %s: %w", grouping, err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var nome string
		var total int
		if err := rows.Scan(&nome, &total); err != nil {
			return nil, fmt.Errorf("failed to scan %s count: %w", grouping, err)
		}
		counts[nome] = total
	}
	return counts, rows.Err()
}

// Aniversariante is a birthday list entry for the HR dashboard
type Aniversariante struct {
	Matricula      string     `json:"matricula"`
	NomeCompleto   string     `json:"nome_completo"`
	DataNascimento *time.Time `json:"data_nascimento"`
	NomeCargo      string     `json:"nome_cargo,omitempty"`
	Naturalidade   string     `json:"naturalidade,omitempty"`
}

// Aniversariantes returns active funcionarios with a birthday in the given month
func (r *funcionarioRepository) Aniversariantes(ctx context.Context, mes int) ([]Aniversariante, error) {
	query := `
		SELECT
			fd.Matricula_Funcionario, f.Nome_Completo, fd.Data_Nascimento, c.Nome_Cargo, fd.Naturalidade
		FROM funcionarios_documentos fd
		JOIN funcionarios f ON fd.Matricula_Funcionario = f.Matricula
		LEFT JOIN cargos c ON f.ID_Cargos = c.ID_Cargos
		WHERE fd.Data_Nascimento IS NOT NULL
			AND MONTH(fd.Data_Nascimento) = ?
			AND f.Status = 'Ativo'
		ORDER BY DAY(fd.Data_Nascimento), f.Nome_Completo
	`

	rows, err := r.db.QueryContext(ctx, query, mes)
	if err != nil {
		r.logger.Error("failed to list aniversariantes", zap.Error(err), zap.Int("mes", mes))
		return nil, fmt.Errorf("failed to list aniversariantes: %w", err)
	}
	defer rows.Close()

	var aniversariantes []Aniversariante
	for rows.Next() {
		var a Aniversariante
		var nomeCargo, naturalidade sql.NullString
		if err := rows.Scan(&a.Matricula, &a.NomeCompleto, &a.DataNascimento, &nomeCargo, &naturalidade); err != nil {
			return nil, fmt.Errorf("failed to scan aniversariante: %w", err)
		}
		a.NomeCargo = nomeCargo.String
		a.Naturalidade = naturalidade.String
		aniversariantes = append(aniversariantes, a)
	}
	return aniversariantes, rows.Err()
}

// nullif maps "" to NULL so optional text columns stay NULL in storage
func nullif(s string) any {
	if s == "" {
		return nil
	}
	return s
}
