package models

import "time"

// Cliente é o contratante de um contrato/obra
type Cliente struct {
	ID                  int    `json:"id_cliente"`
	NomeCliente         string `json:"nome_cliente"`
	CnpjCliente         string `json:"cnpj_cliente"`
	RazaoSocialCliente  string `json:"razao_social_cliente,omitempty"`
	EnderecoCliente     string `json:"endereco_cliente,omitempty"`
	TelefoneCliente     string `json:"telefone_cliente,omitempty"`
	EmailCliente        string `json:"email_cliente,omitempty"`
	ContatoPrincipal    string `json:"contato_principal_nome,omitempty"`
}

// Contrato é um contrato firmado com um cliente
type Contrato struct {
	ID                  int        `json:"id_contrato"`
	IDCliente           int        `json:"id_cliente"`
	NumeroContrato      string     `json:"numero_contrato"`
	ValorContrato       float64    `json:"valor_contrato"`
	DataAssinatura      *time.Time `json:"data_assinatura"`
	DataOrdemInicio     *time.Time `json:"data_ordem_inicio"`
	PrazoContratoDias   int        `json:"prazo_contrato_dias"`
	DataTerminoPrevisto *time.Time `json:"data_termino_previsto"`
	StatusContrato      string     `json:"status_contrato"`
	Observacoes         string     `json:"observacoes,omitempty"`
	NomeCliente         string     `json:"nome_cliente,omitempty"`
}

// Obra é uma obra/ordem de serviço vinculada a um contrato
type Obra struct {
	ID                int        `json:"id_obra"`
	IDContrato        *int       `json:"id_contrato"`
	NumeroObra        string     `json:"numero_obra"`
	NomeObra          string     `json:"nome_obra"`
	EnderecoObra      string     `json:"endereco_obra,omitempty"`
	EscopoObra        string     `json:"escopo_obra,omitempty"`
	ValorObra         float64    `json:"valor_obra"`
	ValorAditivoTotal float64    `json:"valor_aditivo_total"`
	StatusObra        string     `json:"status_obra"`
	DataInicioPrevista *time.Time `json:"data_inicio_prevista"`
	DataFimPrevista   *time.Time `json:"data_fim_prevista"`
	NumeroContrato    string     `json:"numero_contrato,omitempty"`
	NomeCliente       string     `json:"nome_cliente,omitempty"`
}

// ART é uma Anotação de Responsabilidade Técnica de uma obra
type ART struct {
	ID             int        `json:"id_art"`
	IDObra         int        `json:"id_obra"`
	NumeroArt      string     `json:"numero_art"`
	DataPagamento  *time.Time `json:"data_pagamento"`
	ValorPagamento float64    `json:"valor_pagamento"`
	StatusArt      string     `json:"status_art"`
	NumeroObra     string     `json:"numero_obra,omitempty"`
	NomeObra       string     `json:"nome_obra,omitempty"`
}

// Medicao é uma medição mensal de serviços executados em uma obra
type Medicao struct {
	ID               int        `json:"id_medicao"`
	IDObra           int        `json:"id_obra"`
	NumeroMedicao    int        `json:"numero_medicao"`
	ValorMedicao     float64    `json:"valor_medicao"`
	DataMedicao      *time.Time `json:"data_medicao"`
	MesReferencia    string     `json:"mes_referencia,omitempty"`
	DataAprovacao    *time.Time `json:"data_aprovacao"`
	StatusMedicao    string     `json:"status_medicao"`
	ObservacaoMedicao string    `json:"observacao_medicao,omitempty"`
	NumeroObra       string     `json:"numero_obra,omitempty"`
	NomeObra         string     `json:"nome_obra,omitempty"`
}

// AvancoFisico é um lançamento pontual de percentual de avanço físico de uma obra
type AvancoFisico struct {
	ID         int       `json:"id_avanco_fisico"`
	IDObra     int       `json:"id_obra"`
	Percentual float64   `json:"percentual_avanco_fisico"`
	DataAvanco time.Time `json:"data_avanco"`
	NumeroObra string    `json:"numero_obra,omitempty"`
	NomeObra   string    `json:"nome_obra,omitempty"`
}

// Seguro é uma apólice de seguro vinculada a uma obra
type Seguro struct {
	ID                int        `json:"id_seguro"`
	IDObra            int        `json:"id_obra"`
	NumeroApolice     string     `json:"numero_apolice"`
	Seguradora        string     `json:"seguradora"`
	TipoSeguro        string     `json:"tipo_seguro"`
	ValorSegurado     float64    `json:"valor_segurado"`
	DataInicioVigencia *time.Time `json:"data_inicio_vigencia"`
	DataFimVigencia   *time.Time `json:"data_fim_vigencia"`
	StatusSeguro      string     `json:"status_seguro"`
	Observacoes       string     `json:"observacoes_seguro,omitempty"`
	NumeroObra        string     `json:"numero_obra,omitempty"`
	NomeObra          string     `json:"nome_obra,omitempty"`
}

// REIDI é o enquadramento de uma obra no regime especial de incentivo
type REIDI struct {
	ID                    int        `json:"id_reidi"`
	IDObra                int        `json:"id_obra"`
	NumeroPortaria        string     `json:"numero_portaria"`
	NumeroAtoDeclaratorio string     `json:"numero_ato_declaratorio"`
	DataAprovacao         *time.Time `json:"data_aprovacao_reidi"`
	DataValidade          *time.Time `json:"data_validade_reidi"`
	StatusReidi           string     `json:"status_reidi"`
	Observacoes           string     `json:"observacoes_reidi,omitempty"`
	NumeroObra            string     `json:"numero_obra,omitempty"`
	NomeObra              string     `json:"nome_obra,omitempty"`
}

// ObrasDashboard agrega os indicadores do painel do módulo Obras
type ObrasDashboard struct {
	TotalObras            int                `json:"total_obras"`
	ObrasPorStatus        map[string]int     `json:"obras_por_status"`
	ValorContratosAtivos  float64            `json:"valor_contratos_ativos"`
	ValorMedicoesRealizadas float64          `json:"valor_medicoes_realizadas"`
	AvancoMedioObrasAtivas float64           `json:"avanco_medio_obras_ativas"`
}
