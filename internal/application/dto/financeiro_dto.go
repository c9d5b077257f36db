package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCentroCustoRequest cadastro manual de centro de custo.
type CreateCentroCustoRequest struct {
	Nome      string          `json:"nome" validate:"required,max=150"`
	Tipo      string          `json:"tipo" validate:"required,oneof=receita despesa"`
	ParentID  *string         `json:"parent_id" validate:"omitempty,uuid"`
	Orcamento decimal.Decimal `json:"orcamento"`
}

// UpdateCentroCustoRequest atualização de centro de custo.
type UpdateCentroCustoRequest struct {
	Nome      string           `json:"nome" validate:"max=150"`
	Orcamento *decimal.Decimal `json:"orcamento"`
	Status    string           `json:"status" validate:"omitempty,oneof=ativo inativo"`
}

// CentroCustoResponse resposta de centro de custo.
type CentroCustoResponse struct {
	ID        string          `json:"id"`
	UsuarioID string          `json:"usuario_id"`
	Nome      string          `json:"nome"`
	Tipo      string          `json:"tipo"`
	ParentID  *string         `json:"parent_id,omitempty"`
	Orcamento decimal.Decimal `json:"orcamento"`
	Status    string          `json:"status"`
}

// CreateLancamentoRequest lançamento manual de receita ou despesa.
type CreateLancamentoRequest struct {
	Descricao     string          `json:"descricao" validate:"required,max=255"`
	Valor         decimal.Decimal `json:"valor"`
	Data          *time.Time      `json:"data"`
	CentroCustoID string          `json:"centro_custo_id" validate:"required,uuid"`
	Status        string          `json:"status" validate:"omitempty,oneof=confirmado pendente"`
}

// ReceitaResponse resposta de receita.
type ReceitaResponse struct {
	ID            string          `json:"id"`
	UsuarioID     string          `json:"usuario_id"`
	CentroCustoID string          `json:"centro_custo_id"`
	ProcessoID    *string         `json:"processo_id,omitempty"`
	FaturaID      *string         `json:"fatura_id,omitempty"`
	Descricao     string          `json:"descricao"`
	Valor         decimal.Decimal `json:"valor"`
	Data          time.Time       `json:"data"`
	Status        string          `json:"status"`
}

// DespesaResponse resposta de despesa.
type DespesaResponse struct {
	ID            string          `json:"id"`
	UsuarioID     string          `json:"usuario_id"`
	CentroCustoID string          `json:"centro_custo_id"`
	Descricao     string          `json:"descricao"`
	Valor         decimal.Decimal `json:"valor"`
	Data          time.Time       `json:"data"`
	Status        string          `json:"status"`
}

// ContaBancariaRequest cadastro/atualização de conta bancária.
type ContaBancariaRequest struct {
	Banco   string          `json:"banco" validate:"required,max=100"`
	Agencia string          `json:"agencia" validate:"required,max=10"`
	Conta   string          `json:"conta" validate:"required,max=20"`
	Tipo    string          `json:"tipo" validate:"required,oneof=corrente poupanca"`
	Saldo   decimal.Decimal `json:"saldo"`
}

// ContaBancariaResponse resposta de conta bancária.
type ContaBancariaResponse struct {
	ID      string          `json:"id"`
	Banco   string          `json:"banco"`
	Agencia string          `json:"agencia"`
	Conta   string          `json:"conta"`
	Tipo    string          `json:"tipo"`
	Saldo   decimal.Decimal `json:"saldo"`
}

// CartaoCreditoRequest cadastro/atualização de cartão.
type CartaoCreditoRequest struct {
	Nome             string          `json:"nome" validate:"required,max=100"`
	Bandeira         string          `json:"bandeira" validate:"required,max=30"`
	Final            string          `json:"final" validate:"required,len=4,numeric"`
	Limite           decimal.Decimal `json:"limite"`
	LimiteDisponivel decimal.Decimal `json:"limite_disponivel"`
	DiaVencimento    int             `json:"dia_vencimento" validate:"required,min=1,max=31"`
}

// CartaoCreditoResponse resposta de cartão.
type CartaoCreditoResponse struct {
	ID               string          `json:"id"`
	Nome             string          `json:"nome"`
	Bandeira         string          `json:"bandeira"`
	Final            string          `json:"final"`
	Limite           decimal.Decimal `json:"limite"`
	LimiteDisponivel decimal.Decimal `json:"limite_disponivel"`
	DiaVencimento    int             `json:"dia_vencimento"`
}

// LancamentoFilter filtros da listagem de receitas e despesas. Período [De, Ate).
type LancamentoFilter struct {
	Status string
	Search string
	De     *time.Time
	Ate    *time.Time
	Page   PageRequest
}
