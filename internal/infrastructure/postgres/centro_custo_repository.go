package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/limpcred/limpcred-api/internal/domain"
	"github.com/limpcred/limpcred-api/internal/domain/entity"
	"github.com/limpcred/limpcred-api/internal/domain/repository"
)

var _ repository.CentroCustoRepository = (*CentroCustoRepo)(nil)

// CentroCustoRepo implementação de CentroCustoRepository (usável com pool ou tx).
type CentroCustoRepo struct {
	q Querier
}

// NewCentroCustoRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewCentroCustoRepository(q Querier) *CentroCustoRepo {
	return &CentroCustoRepo{q: q}
}

const centroColumns = `id, empresa_id, usuario_id, nome, tipo, parent_id, orcamento, status, created_at, updated_at`

func scanCentro(row pgx.Row) (*entity.CentroCusto, error) {
	var c entity.CentroCusto
	var tipo string
	err := row.Scan(&c.ID, &c.EmpresaID, &c.UsuarioID, &c.Nome, &tipo, &c.ParentID,
		&c.Orcamento, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.Tipo = entity.TipoCentro(tipo)
	return &c, nil
}

// Create persiste um centro de custo.
func (r *CentroCustoRepo) Create(ctx context.Context, c *entity.CentroCusto) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO centros_custo (`+centroColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		c.ID, c.EmpresaID, c.UsuarioID, c.Nome, string(c.Tipo), c.ParentID,
		c.Orcamento, c.Status, c.CreatedAt, c.UpdatedAt,
	)
	return mapError("insert centro de custo", err)
}

// LockOwner pega um advisory lock transacional por (empresa, usuário).
func (r *CentroCustoRepo) LockOwner(ctx context.Context, empresaID, usuarioID string) error {
	_, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1), hashtext($2))`,
		"centros:"+empresaID, usuarioID)
	return mapError("lock centros de custo", err)
}

// GetByID obtém um centro por ID.
func (r *CentroCustoRepo) GetByID(ctx context.Context, id string) (*entity.CentroCusto, error) {
	c, err := scanCentro(r.q.QueryRow(ctx, `SELECT `+centroColumns+` FROM centros_custo WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError("get centro de custo", err)
	}
	return c, nil
}

// ListByUsuario lista os centros do dono na empresa.
func (r *CentroCustoRepo) ListByUsuario(ctx context.Context, empresaID, usuarioID string) ([]*entity.CentroCusto, error) {
	return r.list(ctx, "list centros by usuario", `
		SELECT `+centroColumns+` FROM centros_custo
		WHERE empresa_id = $1 AND usuario_id = $2
		ORDER BY created_at, nome`, empresaID, usuarioID)
}

// ListByEmpresa lista todos os centros da empresa.
func (r *CentroCustoRepo) ListByEmpresa(ctx context.Context, empresaID string) ([]*entity.CentroCusto, error) {
	return r.list(ctx, "list centros", `
		SELECT `+centroColumns+` FROM centros_custo
		WHERE empresa_id = $1
		ORDER BY parent_id NULLS FIRST, nome`, empresaID)
}

// IncrementOrcamento soma delta no próprio UPDATE.
func (r *CentroCustoRepo) IncrementOrcamento(ctx context.Context, id string, delta decimal.Decimal) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE centros_custo SET orcamento = orcamento + $2, updated_at = now() WHERE id = $1`, id, delta)
	if err != nil {
		return mapError("increment orçamento", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Update atualiza nome, orçamento e status.
func (r *CentroCustoRepo) Update(ctx context.Context, c *entity.CentroCusto) error {
	_, err := r.q.Exec(ctx, `
		UPDATE centros_custo SET nome = $2, orcamento = $3, status = $4, updated_at = $5 WHERE id = $1`,
		c.ID, c.Nome, c.Orcamento, c.Status, c.UpdatedAt)
	return mapError("update centro de custo", err)
}

func (r *CentroCustoRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.CentroCusto, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(op, err)
	}
	defer rows.Close()
	var list []*entity.CentroCusto
	for rows.Next() {
		c, err := scanCentro(rows)
		if err != nil {
			return nil, mapError(op+" scan", err)
		}
		list = append(list, c)
	}
	return list, mapError(op, rows.Err())
}
