package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ProcessoTotals agregados de processos criados no período.
type ProcessoTotals struct {
	Quantidade   int
	ValorTotal   decimal.Decimal
	ValorEntrada decimal.Decimal
}

// FaturaTotals soma e quantidade de faturas por status.
type FaturaTotals struct {
	Status     string
	Quantidade int
	Valor      decimal.Decimal
}

// MonthlyAmount valor agregado por mês (YYYY-MM).
type MonthlyAmount struct {
	Mes   string
	Valor decimal.Decimal
}

// DashboardRepository consultas somente leitura para o painel.
type DashboardRepository interface {
	ProcessoTotals(ctx context.Context, empresaID string, from, to time.Time) (ProcessoTotals, error)
	FaturaTotalsByStatus(ctx context.Context, empresaID string) ([]FaturaTotals, error)
	ReceitasByMonth(ctx context.Context, empresaID string, from, to time.Time) ([]MonthlyAmount, error)
	DespesasByMonth(ctx context.Context, empresaID string, from, to time.Time) ([]MonthlyAmount, error)
}
