package models

import "time"

// Tipos de vencimento de período de experiência
const (
	Vencimento30Dias = "1º Período de Experiência (30 Dias)"
	Vencimento90Dias = "2º Período de Experiência (90 Dias)"
)

// AlertaExperiencia é um aviso de período de experiência a vencer ou recém-vencido.
// DiasRestantes é negativo quando o vencimento passou mas ainda está na janela de graça.
type AlertaExperiencia struct {
	Matricula      string    `json:"matricula"`
	NomeCompleto   string    `json:"nome_completo"`
	DataAdmissao   time.Time `json:"data_admissao"`
	NomeCargo      string    `json:"nome_cargo,omitempty"`
	Status         string    `json:"status"`
	TipoVencimento string    `json:"tipo_vencimento"`
	DataVencimento time.Time `json:"data_vencimento"`
	DiasRestantes  int       `json:"dias_restantes"`
}

// AlertaDocumento é um aviso de documento de funcionário a vencer (hoje, somente CNH)
type AlertaDocumento struct {
	Matricula      string    `json:"matricula"`
	NomeCompleto   string    `json:"nome_completo"`
	NomeCargo      string    `json:"nome_cargo,omitempty"`
	TipoDocumento  string    `json:"tipo_documento"`
	NumeroDocumento string   `json:"numero_documento,omitempty"`
	DataVencimento time.Time `json:"data_vencimento"`
	DiasRestantes  int       `json:"dias_restantes"`
}

// AlertaFerias é um aviso de férias programadas próximas ou em gozo.
// DataReferencia é o início do gozo (Programada) ou o fim do gozo (Gozo).
type AlertaFerias struct {
	Ferias
	DataReferencia time.Time `json:"data_referencia"`
	DiasRestantes  int       `json:"dias_restantes"`
}
