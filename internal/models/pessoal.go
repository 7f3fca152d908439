package models

import "time"

// Status de funcionário (ENUM da tabela funcionarios)
const (
	StatusAtivo    = "Ativo"
	StatusInativo  = "Inativo"
	StatusFerias   = "Ferias"
	StatusAfastado = "Afastado"
)

// Tipos de contratação
const (
	ContratacaoCLT        = "CLT"
	ContratacaoPJ         = "PJ"
	ContratacaoTemporario = "Temporario"
)

// Funcionario é o registro principal de um empregado, com cargo e nível juntados
type Funcionario struct {
	Matricula       string     `json:"matricula"`
	NomeCompleto    string     `json:"nome_completo"`
	DataAdmissao    time.Time  `json:"data_admissao"`
	IDCargo         *int       `json:"id_cargo"`
	IDNivel         *int       `json:"id_nivel"`
	Status          string     `json:"status"`
	TipoContratacao string     `json:"tipo_contratacao,omitempty"`
	NomeCargo       string     `json:"nome_cargo,omitempty"`
	NomeNivel       string     `json:"nome_nivel,omitempty"`
	DataCriacao     *time.Time `json:"data_criacao,omitempty"`
	DataModificacao *time.Time `json:"data_modificacao,omitempty"`
}

// FuncionarioDocumentos agrupa dados pessoais e documentos de um funcionário
type FuncionarioDocumentos struct {
	MatriculaFuncionario string     `json:"matricula_funcionario"`
	DataNascimento       *time.Time `json:"data_nascimento"`
	EstadoCivil          string     `json:"estado_civil,omitempty"`
	Nacionalidade        string     `json:"nacionalidade,omitempty"`
	Naturalidade         string     `json:"naturalidade,omitempty"`
	Genero               string     `json:"genero,omitempty"`
	RgNumero             string     `json:"rg_numero,omitempty"`
	RgOrgaoEmissor       string     `json:"rg_orgao_emissor,omitempty"`
	RgUfEmissor          string     `json:"rg_uf_emissor,omitempty"`
	RgDataEmissao        *time.Time `json:"rg_data_emissao"`
	CpfNumero            string     `json:"cpf_numero,omitempty"`
	CtpsNumero           string     `json:"ctps_numero,omitempty"`
	CtpsSerie            string     `json:"ctps_serie,omitempty"`
	PisPasep             string     `json:"pis_pasep,omitempty"`
	CnhNumero            string     `json:"cnh_numero,omitempty"`
	CnhCategoria         string     `json:"cnh_categoria,omitempty"`
	CnhDataValidade      *time.Time `json:"cnh_data_validade"`
	CnhOrgaoEmissor      string     `json:"cnh_orgao_emissor,omitempty"`
	TitEleitorNumero     string     `json:"tit_eleitor_numero,omitempty"`
	TitEleitorZona       string     `json:"tit_eleitor_zona,omitempty"`
	TitEleitorSecao      string     `json:"tit_eleitor_secao,omitempty"`
	Observacoes          string     `json:"observacoes,omitempty"`
}

// Cargo é uma função/cargo do quadro de pessoal
type Cargo struct {
	ID        int    `json:"id_cargo"`
	NomeCargo string `json:"nome_cargo"`
	Descricao string `json:"descricao_cargo,omitempty"`
	CBO       string `json:"cbo,omitempty"`
}

// Nivel é o nível de senioridade de um cargo
type Nivel struct {
	ID        int    `json:"id_nivel"`
	NomeNivel string `json:"nome_nivel"`
	Descricao string `json:"descricao,omitempty"`
}

// Status de férias (ENUM da tabela ferias)
const (
	FeriasProgramada = "Programada"
	FeriasGozo       = "Gozo"
	FeriasConcluida  = "Concluida"
)

// Ferias é um registro de férias de um funcionário
type Ferias struct {
	ID                      int        `json:"id_ferias"`
	MatriculaFuncionario    string     `json:"matricula_funcionario"`
	PeriodoAquisitivoInicio time.Time  `json:"periodo_aquisitivo_inicio"`
	PeriodoAquisitivoFim    time.Time  `json:"periodo_aquisitivo_fim"`
	DataInicioGozo          *time.Time `json:"data_inicio_gozo"`
	DataFimGozo             *time.Time `json:"data_fim_gozo"`
	DiasGozo                int        `json:"dias_gozo"`
	StatusFerias            string     `json:"status_ferias"`
	Observacoes             string     `json:"observacoes,omitempty"`
	NomeFuncionario         string     `json:"nome_funcionario,omitempty"`
}

// Dependente é um dependente vinculado a um funcionário
type Dependente struct {
	ID                   int        `json:"id_dependente"`
	MatriculaFuncionario string     `json:"matricula_funcionario"`
	NomeCompleto         string     `json:"nome_completo"`
	Parentesco           string     `json:"parentesco"`
	DataNascimento       *time.Time `json:"data_nascimento"`
	Cpf                  string     `json:"cpf,omitempty"`
	ContatoEmergencia    string     `json:"contato_emergencia,omitempty"`
	TelefoneEmergencia   string     `json:"telefone_emergencia,omitempty"`
	Observacoes          string     `json:"observacoes,omitempty"`
	NomeFuncionario      string     `json:"nome_funcionario,omitempty"`
}
