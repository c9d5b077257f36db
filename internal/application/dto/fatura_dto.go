package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// UpdateFaturaStatusRequest mudança de status de uma fatura.
type UpdateFaturaStatusRequest struct {
	Status         string     `json:"status" validate:"required,oneof=paga atrasada cancelada"`
	FormaPagamento string     `json:"forma_pagamento" validate:"max=40"`
	DataPagamento  *time.Time `json:"data_pagamento"`
}

// FaturaResponse resposta de fatura.
type FaturaResponse struct {
	ID             string          `json:"id"`
	ProcessoID     string          `json:"processo_id"`
	ClienteID      string          `json:"cliente_id"`
	ClienteNome    string          `json:"cliente_nome"`
	Valor          decimal.Decimal `json:"valor"`
	Parcela        int             `json:"parcela"`
	TotalParcelas  int             `json:"total_parcelas"`
	Vencimento     time.Time       `json:"vencimento"`
	DataPagamento  *time.Time      `json:"data_pagamento,omitempty"`
	Status         string          `json:"status"`
	FormaPagamento string          `json:"forma_pagamento,omitempty"`
}

// FaturaStatusResponse resultado da mudança de status. Receita vem preenchida quando o pagamento gerou lançamento.
type FaturaStatusResponse struct {
	Fatura  FaturaResponse   `json:"fatura"`
	Receita *ReceitaResponse `json:"receita,omitempty"`
	// JaProcessada indica que a fatura já estava no status pedido (nenhum efeito colateral).
	JaProcessada bool `json:"ja_processada"`
}

// MarkOverdueResponse resultado da marcação de atrasadas.
type MarkOverdueResponse struct {
	Atualizadas int64 `json:"atualizadas"`
}
