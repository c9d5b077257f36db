package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// FaturaStatus é o estado de uma parcela.
type FaturaStatus string

const (
	FaturaPendente  FaturaStatus = "pendente"
	FaturaPaga      FaturaStatus = "paga"
	FaturaAtrasada  FaturaStatus = "atrasada"
	FaturaCancelada FaturaStatus = "cancelada"
)

var faturaTransitions = map[FaturaStatus][]FaturaStatus{
	FaturaPendente: {FaturaPaga, FaturaAtrasada, FaturaCancelada},
	FaturaAtrasada: {FaturaPaga, FaturaCancelada},
}

// Valid indica se o status é conhecido.
func (s FaturaStatus) Valid() bool {
	switch s {
	case FaturaPendente, FaturaPaga, FaturaAtrasada, FaturaCancelada:
		return true
	}
	return false
}

// CanTransitionTo verifica se a mudança de status é permitida. Paga e cancelada são terminais.
func (s FaturaStatus) CanTransitionTo(next FaturaStatus) bool {
	for _, allowed := range faturaTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Fatura é uma parcela do plano de pagamento de um Processo.
type Fatura struct {
	ID             string
	EmpresaID      string
	ProcessoID     string
	ClienteID      string
	ClienteNome    string
	Valor          decimal.Decimal
	Parcela        int // 1-based
	TotalParcelas  int
	Vencimento     time.Time
	DataPagamento  *time.Time
	Status         FaturaStatus
	FormaPagamento string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
