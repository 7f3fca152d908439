package models

import "time"

// Tipos de registro de segurança
const (
	RegistroIncidente = "Incidente"
	RegistroAcidente  = "Acidente"
)

// IncidenteAcidente é um registro de incidente ou acidente de trabalho
type IncidenteAcidente struct {
	ID                    int        `json:"id_incidente_acidente"`
	TipoRegistro          string     `json:"tipo_registro"`
	DataHoraOcorrencia    time.Time  `json:"data_hora_ocorrencia"`
	LocalOcorrencia       string     `json:"local_ocorrencia"`
	IDObra                *int       `json:"id_obra"`
	DescricaoResumida     string     `json:"descricao_resumida"`
	CausasIdentificadas   string     `json:"causas_identificadas,omitempty"`
	AcoesCorretivas       string     `json:"acoes_corretivas_tomadas,omitempty"`
	AcoesPreventivas      string     `json:"acoes_preventivas_recomendadas,omitempty"`
	StatusRegistro        string     `json:"status_registro"`
	ResponsavelMatricula  string     `json:"responsavel_investigacao_matricula,omitempty"`
	DataFechamento        *time.Time `json:"data_fechamento"`
	Observacoes           string     `json:"observacoes,omitempty"`
	NumeroObra            string     `json:"numero_obra,omitempty"`
	NomeObra              string     `json:"nome_obra,omitempty"`
	NomeResponsavel       string     `json:"nome_responsavel_investigacao,omitempty"`
}

// ASO é um Atestado de Saúde Ocupacional de um funcionário
type ASO struct {
	ID                   int        `json:"id_aso"`
	MatriculaFuncionario string     `json:"matricula_funcionario"`
	TipoASO              string     `json:"tipo_aso"`
	DataEmissao          time.Time  `json:"data_emissao"`
	DataVencimento       *time.Time `json:"data_vencimento"`
	Resultado            string     `json:"resultado"`
	MedicoResponsavel    string     `json:"medico_responsavel,omitempty"`
	Observacoes          string     `json:"observacoes,omitempty"`
	NomeFuncionario      string     `json:"nome_funcionario,omitempty"`
}

// Treinamento é um tipo de treinamento do catálogo de segurança
type Treinamento struct {
	ID                   int    `json:"id_treinamento"`
	NomeTreinamento      string `json:"nome_treinamento"`
	Descricao            string `json:"descricao,omitempty"`
	CargaHorariaHoras    int    `json:"carga_horaria_horas"`
	TipoTreinamento      string `json:"tipo_treinamento"`
	ValidadeDias         int    `json:"validade_dias"`
	InstrutorResponsavel string `json:"instrutor_responsavel,omitempty"`
}

// TreinamentoAgendamento é uma turma agendada de um treinamento
type TreinamentoAgendamento struct {
	ID                int       `json:"id_agendamento"`
	IDTreinamento     int       `json:"id_treinamento"`
	DataHoraInicio    time.Time `json:"data_hora_inicio"`
	DataHoraFim       time.Time `json:"data_hora_fim"`
	LocalTreinamento  string    `json:"local_treinamento,omitempty"`
	StatusAgendamento string    `json:"status_agendamento"`
	Observacoes       string    `json:"observacoes,omitempty"`
	NomeTreinamento   string    `json:"nome_treinamento,omitempty"`
}

// TreinamentoParticipante é a participação de um funcionário em uma turma
type TreinamentoParticipante struct {
	ID                   int        `json:"id_participante"`
	IDAgendamento        int        `json:"id_agendamento"`
	MatriculaFuncionario string     `json:"matricula_funcionario"`
	Presenca             bool       `json:"presenca"`
	NotaAvaliacao        *float64   `json:"nota_avaliacao"`
	DataConclusao        *time.Time `json:"data_conclusao"`
	CertificadoEmitido   bool       `json:"certificado_emitido"`
	NomeFuncionario      string     `json:"nome_funcionario,omitempty"`
	NomeTreinamento      string     `json:"nome_treinamento,omitempty"`
}

// RegistroMensal é a contagem de registros de um mês (AnoMes "2026-03")
type RegistroMensal struct {
	AnoMes string `json:"ano_mes"`
	Total  int    `json:"total"`
}

// SegurancaDashboard agrega os indicadores do painel do módulo Segurança
type SegurancaDashboard struct {
	TotalRegistros     int              `json:"total_registros"`
	RegistrosPorTipo   map[string]int   `json:"registros_por_tipo"`
	RegistrosPorStatus map[string]int   `json:"registros_por_status"`
	RegistrosPorMes    []RegistroMensal `json:"registros_por_mes"`
}
