package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/limpcred/limpcred-api/internal/domain"
	"github.com/limpcred/limpcred-api/internal/domain/entity"
	"github.com/limpcred/limpcred-api/internal/domain/repository"
)

var (
	_ repository.ReceitaRepository = (*ReceitaRepo)(nil)
	_ repository.DespesaRepository = (*DespesaRepo)(nil)
)

// ReceitaRepo livro de receitas (usável com pool ou tx).
type ReceitaRepo struct {
	q Querier
}

// NewReceitaRepository constrói o adaptador.
func NewReceitaRepository(q Querier) *ReceitaRepo {
	return &ReceitaRepo{q: q}
}

const receitaColumns = `id, empresa_id, usuario_id, centro_custo_id, processo_id, fatura_id, descricao, valor, data, status, created_at`

// Create insere a receita. O índice único parcial em fatura_id devolve ErrDuplicate para a segunda receita da mesma fatura.
func (r *ReceitaRepo) Create(ctx context.Context, rc *entity.Receita) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO receitas (`+receitaColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		rc.ID, rc.EmpresaID, rc.UsuarioID, rc.CentroCustoID, rc.ProcessoID, rc.FaturaID,
		rc.Descricao, rc.Valor, rc.Data, rc.Status, rc.CreatedAt,
	)
	return mapError("insert receita", err)
}

// ExistsByFatura indica se a fatura já gerou receita.
func (r *ReceitaRepo) ExistsByFatura(ctx context.Context, faturaID string) (bool, error) {
	var ok bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM receitas WHERE fatura_id = $1)`, faturaID).Scan(&ok)
	if err != nil {
		return false, mapError("receita exists", err)
	}
	return ok, nil
}

// List lista receitas por data (mais recentes primeiro).
func (r *ReceitaRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.Receita, error) {
	w := lancamentoWhere(f)
	query, args := w.page(`SELECT `+receitaColumns+` FROM receitas`, "data DESC, created_at DESC", f)
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError("list receitas", err)
	}
	defer rows.Close()
	var list []*entity.Receita
	for rows.Next() {
		var rc entity.Receita
		if err := rows.Scan(&rc.ID, &rc.EmpresaID, &rc.UsuarioID, &rc.CentroCustoID, &rc.ProcessoID, &rc.FaturaID,
			&rc.Descricao, &rc.Valor, &rc.Data, &rc.Status, &rc.CreatedAt); err != nil {
			return nil, mapError("scan receita", err)
		}
		list = append(list, &rc)
	}
	return list, mapError("list receitas", rows.Err())
}

// DespesaRepo livro de despesas (usável com pool ou tx).
type DespesaRepo struct {
	q Querier
}

// NewDespesaRepository constrói o adaptador.
func NewDespesaRepository(q Querier) *DespesaRepo {
	return &DespesaRepo{q: q}
}

const despesaColumns = `id, empresa_id, usuario_id, centro_custo_id, descricao, valor, data, status, created_at`

func scanDespesa(row pgx.Row) (*entity.Despesa, error) {
	var d entity.Despesa
	err := row.Scan(&d.ID, &d.EmpresaID, &d.UsuarioID, &d.CentroCustoID, &d.Descricao, &d.Valor, &d.Data, &d.Status, &d.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Create insere a despesa.
func (r *DespesaRepo) Create(ctx context.Context, d *entity.Despesa) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO despesas (`+despesaColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		d.ID, d.EmpresaID, d.UsuarioID, d.CentroCustoID, d.Descricao, d.Valor, d.Data, d.Status, d.CreatedAt,
	)
	return mapError("insert despesa", err)
}

// GetByID obtém uma despesa por ID.
func (r *DespesaRepo) GetByID(ctx context.Context, id string) (*entity.Despesa, error) {
	d, err := scanDespesa(r.q.QueryRow(ctx, `SELECT `+despesaColumns+` FROM despesas WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError("get despesa", err)
	}
	return d, nil
}

// List lista despesas por data (mais recentes primeiro).
func (r *DespesaRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.Despesa, error) {
	w := lancamentoWhere(f)
	query, args := w.page(`SELECT `+despesaColumns+` FROM despesas`, "data DESC, created_at DESC", f)
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError("list despesas", err)
	}
	defer rows.Close()
	var list []*entity.Despesa
	for rows.Next() {
		d, err := scanDespesa(rows)
		if err != nil {
			return nil, mapError("scan despesa", err)
		}
		list = append(list, d)
	}
	return list, mapError("list despesas", rows.Err())
}

// Delete remove uma despesa.
func (r *DespesaRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM despesas WHERE id = $1`, id)
	if err != nil {
		return mapError("delete despesa", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func lancamentoWhere(f repository.ListFilter) *whereBuilder {
	w := &whereBuilder{}
	w.add("empresa_id = $%d", f.EmpresaID)
	if f.UsuarioID != "" {
		w.add("usuario_id = $%d", f.UsuarioID)
	}
	if f.Status != "" {
		w.add("status = $%d", f.Status)
	}
	if f.From != nil {
		w.add("data >= $%d", *f.From)
	}
	if f.To != nil {
		w.add("data < $%d", *f.To)
	}
	if f.Search != "" {
		w.addSearch(f.Search, "descricao")
	}
	return w
}
