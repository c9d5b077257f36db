package dto

import "github.com/shopspring/decimal"

// DashboardResumo painel da empresa: totais do mês, ticket médio, faturas em aberto e gráfico mensal.
type DashboardResumo struct {
	ProcessosMes     int             `json:"processos_mes"`
	VendidoMes       decimal.Decimal `json:"vendido_mes"`
	TicketMedio      decimal.Decimal `json:"ticket_medio"`
	FaturasPendentes decimal.Decimal `json:"faturas_pendentes"`
	FaturasAtrasadas decimal.Decimal `json:"faturas_atrasadas"`
	QtdAtrasadas     int             `json:"qtd_atrasadas"`
	Grafico          []PontoMensal   `json:"grafico"`
	Referencia       string          `json:"referencia"` // ex.: "Março 2024"
}

// PontoMensal receitas e despesas de um mês.
type PontoMensal struct {
	Mes      string          `json:"mes"` // YYYY-MM
	Receitas decimal.Decimal `json:"receitas"`
	Despesas decimal.Decimal `json:"despesas"`
	Saldo    decimal.Decimal `json:"saldo"`
}
