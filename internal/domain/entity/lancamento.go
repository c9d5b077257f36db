package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status de lançamentos financeiros.
const (
	LancamentoConfirmado = "confirmado"
	LancamentoPendente   = "pendente"
)

// Receita é uma entrada no livro de receitas. Apenas inserção no fluxo normal.
type Receita struct {
	ID            string
	EmpresaID     string
	UsuarioID     string
	CentroCustoID string
	ProcessoID    *string
	FaturaID      *string // preenchido quando a receita vem do pagamento de uma fatura
	Descricao     string
	Valor         decimal.Decimal
	Data          time.Time
	Status        string
	CreatedAt     time.Time
}

// Despesa é uma saída no livro de despesas.
type Despesa struct {
	ID            string
	EmpresaID     string
	UsuarioID     string
	CentroCustoID string
	Descricao     string
	Valor         decimal.Decimal
	Data          time.Time
	Status        string
	CreatedAt     time.Time
}
