// Package analytics contém os casos de uso do painel e dos relatórios exportados.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/limpcred/limpcred-api/internal/application/dto"
	"github.com/limpcred/limpcred-api/internal/application/session"
	"github.com/limpcred/limpcred-api/internal/domain/entity"
	"github.com/limpcred/limpcred-api/internal/domain/repository"
)

const graficoMeses = 6 // meses no gráfico de receitas x despesas

// DashboardUseCase gera o resumo do mês corrente e o gráfico dos últimos meses.
//
// Fonte de dados: DashboardRepository (consultas somente leitura).
type DashboardUseCase struct {
	repo repository.DashboardRepository
	now  func() time.Time
	loc  *time.Location
}

// NewDashboardUseCase constrói o caso de uso. loc nil usa UTC.
func NewDashboardUseCase(repo repository.DashboardRepository, loc *time.Location, opts ...Option) *DashboardUseCase {
	if loc == nil {
		loc = time.UTC
	}
	o := buildOptions(opts)
	return &DashboardUseCase{repo: repo, now: o.now, loc: loc}
}

// GetResumo monta o DashboardResumo da empresa da sessão.
//
// Quatro consultas em paralelo:
//  1. ProcessoTotals(mês)        → processos, vendido e ticket médio
//  2. FaturaTotalsByStatus       → pendentes e atrasadas
//  3. ReceitasByMonth(6 meses)   → gráfico
//  4. DespesasByMonth(6 meses)   → gráfico
func (uc *DashboardUseCase) GetResumo(ctx context.Context, sess session.Session) (*dto.DashboardResumo, error) {
	if err := sess.Require(entity.CapDashboardVer); err != nil {
		return nil, err
	}
	now := uc.now().In(uc.loc)

	// ── Intervalos ─────────────────────────────────────────────────────────────
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, uc.loc)
	monthEnd := monthStart.AddDate(0, 1, 0)
	chartStart := monthStart.AddDate(0, -(graficoMeses - 1), 0)

	type totalsResult struct {
		totals repository.ProcessoTotals
		err    error
	}
	type faturasResult struct {
		rows []repository.FaturaTotals
		err  error
	}
	type monthlyResult struct {
		rows []repository.MonthlyAmount
		err  error
	}

	totalsCh := make(chan totalsResult, 1)
	faturasCh := make(chan faturasResult, 1)
	receitasCh := make(chan monthlyResult, 1)
	despesasCh := make(chan monthlyResult, 1)

	go func() {
		t, err := uc.repo.ProcessoTotals(ctx, sess.EmpresaID, monthStart, monthEnd)
		totalsCh <- totalsResult{t, err}
	}()
	go func() {
		rows, err := uc.repo.FaturaTotalsByStatus(ctx, sess.EmpresaID)
		faturasCh <- faturasResult{rows, err}
	}()
	go func() {
		rows, err := uc.repo.ReceitasByMonth(ctx, sess.EmpresaID, chartStart, monthEnd)
		receitasCh <- monthlyResult{rows, err}
	}()
	go func() {
		rows, err := uc.repo.DespesasByMonth(ctx, sess.EmpresaID, chartStart, monthEnd)
		despesasCh <- monthlyResult{rows, err}
	}()

	totals := <-totalsCh
	faturas := <-faturasCh
	receitas := <-receitasCh
	despesas := <-despesasCh

	if totals.err != nil {
		return nil, fmt.Errorf("dashboard: processos do mês: %w", totals.err)
	}
	if faturas.err != nil {
		return nil, fmt.Errorf("dashboard: faturas: %w", faturas.err)
	}
	if receitas.err != nil {
		return nil, fmt.Errorf("dashboard: receitas: %w", receitas.err)
	}
	if despesas.err != nil {
		return nil, fmt.Errorf("dashboard: despesas: %w", despesas.err)
	}

	out := &dto.DashboardResumo{
		ProcessosMes:     totals.totals.Quantidade,
		VendidoMes:       totals.totals.ValorTotal.Round(2),
		TicketMedio:      decimal.Zero,
		FaturasPendentes: decimal.Zero,
		FaturasAtrasadas: decimal.Zero,
		Grafico:          buildGrafico(chartStart, graficoMeses, receitas.rows, despesas.rows),
		Referencia:       MonthLabel(now),
	}
	if totals.totals.Quantidade > 0 {
		out.TicketMedio = totals.totals.ValorTotal.Div(decimal.NewFromInt(int64(totals.totals.Quantidade))).Round(2)
	}
	for _, f := range faturas.rows {
		switch entity.FaturaStatus(f.Status) {
		case entity.FaturaPendente:
			out.FaturasPendentes = f.Valor.Round(2)
		case entity.FaturaAtrasada:
			out.FaturasAtrasadas = f.Valor.Round(2)
			out.QtdAtrasadas = f.Quantidade
		}
	}
	return out, nil
}

// buildGrafico preenche todos os meses do intervalo, inclusive os sem lançamentos.
func buildGrafico(start time.Time, meses int, receitas, despesas []repository.MonthlyAmount) []dto.PontoMensal {
	rec := make(map[string]decimal.Decimal, len(receitas))
	for _, r := range receitas {
		rec[r.Mes] = r.Valor
	}
	desp := make(map[string]decimal.Decimal, len(despesas))
	for _, d := range despesas {
		desp[d.Mes] = d.Valor
	}
	out := make([]dto.PontoMensal, 0, meses)
	for i := 0; i < meses; i++ {
		mes := start.AddDate(0, i, 0).Format("2006-01")
		r, d := rec[mes].Round(2), desp[mes].Round(2)
		out = append(out, dto.PontoMensal{Mes: mes, Receitas: r, Despesas: d, Saldo: r.Sub(d)})
	}
	return out
}

// MonthLabel devolve o mês por extenso, ex.: "Março 2026".
func MonthLabel(t time.Time) string {
	months := [...]string{
		"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
		"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
