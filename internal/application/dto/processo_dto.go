package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProcessoRequest venda de um processo com plano de pagamento.
type CreateProcessoRequest struct {
	Tipo               string          `json:"tipo" validate:"required,max=80"`
	ClienteID          string          `json:"cliente_id" validate:"required,uuid"`
	ValorTotal         decimal.Decimal `json:"valor_total"`
	ValorEntrada       decimal.Decimal `json:"valor_entrada"`
	Parcelas           int             `json:"parcelas" validate:"min=0,max=120"`
	PrimeiroVencimento *time.Time      `json:"primeiro_vencimento"` // padrão: um mês após a criação
	DataGarantia       *time.Time      `json:"data_garantia"`
	FormaPagamento     string          `json:"forma_pagamento" validate:"max=40"`
}

// UpdateProcessoStatusRequest mudança de andamento.
type UpdateProcessoStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// UpdateArquivosRequest chaves de objetos já enviados ao storage.
type UpdateArquivosRequest struct {
	ContratoKey    string `json:"contrato_key"`
	ComprovanteKey string `json:"comprovante_key"`
}

// ProcessoResponse resposta de processo.
type ProcessoResponse struct {
	ID             string          `json:"id"`
	EmpresaID      string          `json:"empresa_id"`
	Numero         string          `json:"numero"`
	Tipo           string          `json:"tipo"`
	ClienteID      string          `json:"cliente_id"`
	ClienteNome    string          `json:"cliente_nome"`
	ClienteDoc     string          `json:"cliente_documento"`
	VendedorID     string          `json:"vendedor_id"`
	Status         string          `json:"status"`
	ValorTotal     decimal.Decimal `json:"valor_total"`
	ValorEntrada   decimal.Decimal `json:"valor_entrada"`
	Parcelas       int             `json:"parcelas"`
	DataGarantia   *time.Time      `json:"data_garantia,omitempty"`
	ContratoKey    string          `json:"contrato_key,omitempty"`
	ComprovanteKey string          `json:"comprovante_key,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// CreateProcessoResponse registro composto devolvido após a criação.
type CreateProcessoResponse struct {
	Processo    ProcessoResponse     `json:"processo"`
	Faturas     []FaturaResponse     `json:"faturas"`
	Receita     *ReceitaResponse     `json:"receita,omitempty"`
	CentroCusto *CentroCustoResponse `json:"centro_custo,omitempty"`
}

// ProcessoDetailResponse processo com suas faturas.
type ProcessoDetailResponse struct {
	Processo ProcessoResponse `json:"processo"`
	Faturas  []FaturaResponse `json:"faturas"`
}
