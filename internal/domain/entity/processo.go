package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProcessoStatus acompanha o andamento do caso vendido.
type ProcessoStatus string

const (
	ProcessoAguardandoDocumentos ProcessoStatus = "aguardando_documentos"
	ProcessoEmAnalise            ProcessoStatus = "em_analise"
	ProcessoEnviado              ProcessoStatus = "enviado"
	ProcessoEmAndamento          ProcessoStatus = "em_andamento"
	ProcessoConcluido            ProcessoStatus = "concluido"
	ProcessoCancelado            ProcessoStatus = "cancelado"
)

var processoOrder = map[ProcessoStatus]int{
	ProcessoAguardandoDocumentos: 0,
	ProcessoEmAnalise:            1,
	ProcessoEnviado:              2,
	ProcessoEmAndamento:          3,
	ProcessoConcluido:            4,
}

// Valid indica se o status é conhecido.
func (s ProcessoStatus) Valid() bool {
	_, ok := processoOrder[s]
	return ok || s == ProcessoCancelado
}

// Terminal indica que o processo não muda mais de status.
func (s ProcessoStatus) Terminal() bool {
	return s == ProcessoConcluido || s == ProcessoCancelado
}

// CanTransitionTo: o andamento só avança (pode pular etapas); cancelamento vale de qualquer status não terminal.
func (s ProcessoStatus) CanTransitionTo(next ProcessoStatus) bool {
	if !next.Valid() || s.Terminal() || s == next {
		return false
	}
	if next == ProcessoCancelado {
		return true
	}
	return processoOrder[next] > processoOrder[s]
}

// Processo é um caso vendido a um cliente. Os campos monetários não mudam após a criação.
type Processo struct {
	ID             string
	EmpresaID      string
	Numero         string // PROC-{ano}-{seq}
	Tipo           string
	ClienteID      string
	ClienteNome    string
	ClienteDoc     string
	VendedorID     string
	Status         ProcessoStatus
	ValorTotal     decimal.Decimal
	ValorEntrada   decimal.Decimal
	Parcelas       int
	DataGarantia   *time.Time
	ContratoKey    string
	ComprovanteKey string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ValorFinanciado é o saldo dividido em faturas.
func (p *Processo) ValorFinanciado() decimal.Decimal {
	return p.ValorTotal.Sub(p.ValorEntrada)
}
