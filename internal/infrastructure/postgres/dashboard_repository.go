package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/limpcred/limpcred-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas somente leitura do painel.
type DashboardRepo struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository constrói o adaptador do painel.
func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepo {
	return &DashboardRepo{pool: pool}
}

// ProcessoTotals conta processos não cancelados criados em [from, to) e soma valores.
func (r *DashboardRepo) ProcessoTotals(ctx context.Context, empresaID string, from, to time.Time) (repository.ProcessoTotals, error) {
	const query = `
	SELECT
	    COUNT(*)                            AS quantidade,
	    COALESCE(SUM(valor_total),   0)     AS valor_total,
	    COALESCE(SUM(valor_entrada), 0)     AS valor_entrada
	FROM processos
	WHERE empresa_id = $1
	  AND created_at >= $2 AND created_at < $3
	  AND status <> 'cancelado'`

	var t repository.ProcessoTotals
	err := r.pool.QueryRow(ctx, query, empresaID, from, to).Scan(&t.Quantidade, &t.ValorTotal, &t.ValorEntrada)
	if err != nil {
		return repository.ProcessoTotals{}, mapError("dashboard.ProcessoTotals", err)
	}
	return t, nil
}

// FaturaTotalsByStatus agrupa quantidade e valor das faturas por status.
func (r *DashboardRepo) FaturaTotalsByStatus(ctx context.Context, empresaID string) ([]repository.FaturaTotals, error) {
	const query = `
	SELECT status, COUNT(*), COALESCE(SUM(valor), 0)
	FROM faturas
	WHERE empresa_id = $1
	GROUP BY status
	ORDER BY status`

	rows, err := r.pool.Query(ctx, query, empresaID)
	if err != nil {
		return nil, mapError("dashboard.FaturaTotalsByStatus", err)
	}
	defer rows.Close()
	var out []repository.FaturaTotals
	for rows.Next() {
		var t repository.FaturaTotals
		if err := rows.Scan(&t.Status, &t.Quantidade, &t.Valor); err != nil {
			return nil, mapError("dashboard.FaturaTotalsByStatus scan", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// ReceitasByMonth soma receitas confirmadas por mês (YYYY-MM).
func (r *DashboardRepo) ReceitasByMonth(ctx context.Context, empresaID string, from, to time.Time) ([]repository.MonthlyAmount, error) {
	return r.byMonth(ctx, "dashboard.ReceitasByMonth", "receitas", empresaID, from, to)
}

// DespesasByMonth soma despesas confirmadas por mês (YYYY-MM).
func (r *DashboardRepo) DespesasByMonth(ctx context.Context, empresaID string, from, to time.Time) ([]repository.MonthlyAmount, error) {
	return r.byMonth(ctx, "dashboard.DespesasByMonth", "despesas", empresaID, from, to)
}

// byMonth table é sempre "receitas" ou "despesas".
func (r *DashboardRepo) byMonth(ctx context.Context, op, table, empresaID string, from, to time.Time) ([]repository.MonthlyAmount, error) {
	query := `
	SELECT to_char(date_trunc('month', data), 'YYYY-MM') AS mes, COALESCE(SUM(valor), 0)
	FROM ` + table + `
	WHERE empresa_id = $1
	  AND data >= $2 AND data < $3
	  AND status = 'confirmado'
	GROUP BY mes
	ORDER BY mes`

	rows, err := r.pool.Query(ctx, query, empresaID, from, to)
	if err != nil {
		return nil, mapError(op, err)
	}
	defer rows.Close()
	var out []repository.MonthlyAmount
	for rows.Next() {
		var m repository.MonthlyAmount
		if err := rows.Scan(&m.Mes, &m.Valor); err != nil {
			return nil, mapError(op+" scan", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
