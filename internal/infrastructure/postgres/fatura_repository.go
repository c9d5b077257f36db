package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/limpcred/limpcred-api/internal/domain"
	"github.com/limpcred/limpcred-api/internal/domain/entity"
	"github.com/limpcred/limpcred-api/internal/domain/repository"
)

var _ repository.FaturaRepository = (*FaturaRepo)(nil)

// FaturaRepo implementação de FaturaRepository (usável com pool ou tx).
type FaturaRepo struct {
	q Querier
}

// NewFaturaRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewFaturaRepository(q Querier) *FaturaRepo {
	return &FaturaRepo{q: q}
}

const faturaColumns = `f.id, f.empresa_id, f.processo_id, f.cliente_id, f.cliente_nome, f.valor, f.parcela, f.total_parcelas,
	f.vencimento, f.data_pagamento, f.status, f.forma_pagamento, f.created_at, f.updated_at`

func scanFatura(row pgx.Row) (*entity.Fatura, error) {
	var f entity.Fatura
	var status string
	err := row.Scan(&f.ID, &f.EmpresaID, &f.ProcessoID, &f.ClienteID, &f.ClienteNome, &f.Valor,
		&f.Parcela, &f.TotalParcelas, &f.Vencimento, &f.DataPagamento, &status, &f.FormaPagamento,
		&f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	f.Status = entity.FaturaStatus(status)
	return &f, nil
}

// Create persiste uma parcela.
func (r *FaturaRepo) Create(ctx context.Context, f *entity.Fatura) error {
	query := `
		INSERT INTO faturas (id, empresa_id, processo_id, cliente_id, cliente_nome, valor, parcela, total_parcelas,
			vencimento, data_pagamento, status, forma_pagamento, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		f.ID, f.EmpresaID, f.ProcessoID, f.ClienteID, f.ClienteNome, f.Valor, f.Parcela, f.TotalParcelas,
		f.Vencimento, f.DataPagamento, string(f.Status), f.FormaPagamento, f.CreatedAt, f.UpdatedAt,
	)
	return mapError("insert fatura", err)
}

func (r *FaturaRepo) get(ctx context.Context, op, suffix, id string) (*entity.Fatura, error) {
	f, err := scanFatura(r.q.QueryRow(ctx, `SELECT `+faturaColumns+` FROM faturas f WHERE f.id = $1`+suffix, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError(op, err)
	}
	return f, nil
}

// GetByID obtém uma fatura por ID.
func (r *FaturaRepo) GetByID(ctx context.Context, id string) (*entity.Fatura, error) {
	return r.get(ctx, "get fatura", "", id)
}

// GetByIDForUpdate obtém a fatura bloqueando a linha (SELECT FOR UPDATE).
func (r *FaturaRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Fatura, error) {
	return r.get(ctx, "get fatura for update", " FOR UPDATE", id)
}

// ListByProcesso lista as parcelas de um processo em ordem.
func (r *FaturaRepo) ListByProcesso(ctx context.Context, processoID string) ([]*entity.Fatura, error) {
	return r.list(ctx, "list faturas by processo",
		`SELECT `+faturaColumns+` FROM faturas f WHERE f.processo_id = $1 ORDER BY f.parcela`, processoID)
}

// List lista faturas da empresa por vencimento. VendedorID filtra pelo vendedor do processo.
func (r *FaturaRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.Fatura, error) {
	base := `SELECT ` + faturaColumns + ` FROM faturas f`
	var w whereBuilder
	w.add("f.empresa_id = $%d", f.EmpresaID)
	if f.VendedorID != "" {
		base += ` JOIN processos p ON p.id = f.processo_id`
		w.add("p.vendedor_id = $%d", f.VendedorID)
	}
	if f.Status != "" {
		w.add("f.status = $%d", f.Status)
	}
	if f.From != nil {
		w.add("f.vencimento >= $%d", *f.From)
	}
	if f.To != nil {
		w.add("f.vencimento < $%d", *f.To)
	}
	if f.Search != "" {
		w.addSearch(f.Search, "f.cliente_nome")
	}
	query, args := w.page(base, "f.vencimento, f.parcela", f)
	return r.list(ctx, "list faturas", query, args...)
}

// UpdateStatus grava status, pagamento e forma de pagamento.
func (r *FaturaRepo) UpdateStatus(ctx context.Context, f *entity.Fatura) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE faturas SET status = $2, data_pagamento = $3, forma_pagamento = $4, updated_at = $5
		WHERE id = $1`, f.ID, string(f.Status), f.DataPagamento, f.FormaPagamento, f.UpdatedAt)
	if err != nil {
		return mapError("update fatura status", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// MarkOverdue move pendentes vencidas antes de today para atrasada.
func (r *FaturaRepo) MarkOverdue(ctx context.Context, empresaID string, today time.Time) (int64, error) {
	tag, err := r.q.Exec(ctx, `
		UPDATE faturas SET status = $3, updated_at = now()
		WHERE empresa_id = $1 AND status = $4 AND vencimento < $2`,
		empresaID, today, string(entity.FaturaAtrasada), string(entity.FaturaPendente))
	if err != nil {
		return 0, mapError("mark overdue", err)
	}
	return tag.RowsAffected(), nil
}

func (r *FaturaRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.Fatura, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(op, err)
	}
	defer rows.Close()
	var list []*entity.Fatura
	for rows.Next() {
		f, err := scanFatura(rows)
		if err != nil {
			return nil, mapError(op+" scan", err)
		}
		list = append(list, f)
	}
	return list, mapError(op, rows.Err())
}
