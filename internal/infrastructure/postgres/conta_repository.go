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
	_ repository.ContaBancariaRepository = (*ContaBancariaRepo)(nil)
	_ repository.CartaoCreditoRepository = (*CartaoCreditoRepo)(nil)
)

// ContaBancariaRepo contas bancárias da empresa.
type ContaBancariaRepo struct {
	q Querier
}

// NewContaBancariaRepository constrói o adaptador.
func NewContaBancariaRepository(q Querier) *ContaBancariaRepo {
	return &ContaBancariaRepo{q: q}
}

const contaColumns = `id, empresa_id, usuario_id, banco, agencia, conta, tipo, saldo, created_at, updated_at`

func scanConta(row pgx.Row) (*entity.ContaBancaria, error) {
	var c entity.ContaBancaria
	if err := row.Scan(&c.ID, &c.EmpresaID, &c.UsuarioID, &c.Banco, &c.Agencia, &c.Conta, &c.Tipo,
		&c.Saldo, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ContaBancariaRepo) Create(ctx context.Context, c *entity.ContaBancaria) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO contas_bancarias (`+contaColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		c.ID, c.EmpresaID, c.UsuarioID, c.Banco, c.Agencia, c.Conta, c.Tipo, c.Saldo, c.CreatedAt, c.UpdatedAt)
	return mapError("insert conta bancaria", err)
}

func (r *ContaBancariaRepo) GetByID(ctx context.Context, id string) (*entity.ContaBancaria, error) {
	c, err := scanConta(r.q.QueryRow(ctx, `SELECT `+contaColumns+` FROM contas_bancarias WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError("get conta bancaria", err)
	}
	return c, nil
}

func (r *ContaBancariaRepo) ListByEmpresa(ctx context.Context, empresaID string) ([]*entity.ContaBancaria, error) {
	rows, err := r.q.Query(ctx, `SELECT `+contaColumns+` FROM contas_bancarias WHERE empresa_id = $1 ORDER BY banco, conta`, empresaID)
	if err != nil {
		return nil, mapError("list contas bancarias", err)
	}
	defer rows.Close()
	var list []*entity.ContaBancaria
	for rows.Next() {
		c, err := scanConta(rows)
		if err != nil {
			return nil, mapError("scan conta bancaria", err)
		}
		list = append(list, c)
	}
	return list, mapError("list contas bancarias", rows.Err())
}

func (r *ContaBancariaRepo) Update(ctx context.Context, c *entity.ContaBancaria) error {
	_, err := r.q.Exec(ctx, `
		UPDATE contas_bancarias SET banco = $2, agencia = $3, conta = $4, tipo = $5, saldo = $6, updated_at = $7
		WHERE id = $1`, c.ID, c.Banco, c.Agencia, c.Conta, c.Tipo, c.Saldo, c.UpdatedAt)
	return mapError("update conta bancaria", err)
}

func (r *ContaBancariaRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.q, "contas_bancarias", id)
}

// CartaoCreditoRepo cartões de crédito da empresa.
type CartaoCreditoRepo struct {
	q Querier
}

// NewCartaoCreditoRepository constrói o adaptador.
func NewCartaoCreditoRepository(q Querier) *CartaoCreditoRepo {
	return &CartaoCreditoRepo{q: q}
}

const cartaoColumns = `id, empresa_id, usuario_id, nome, bandeira, final, limite, limite_disponivel, dia_vencimento, created_at, updated_at`

func scanCartao(row pgx.Row) (*entity.CartaoCredito, error) {
	var c entity.CartaoCredito
	if err := row.Scan(&c.ID, &c.EmpresaID, &c.UsuarioID, &c.Nome, &c.Bandeira, &c.Final, &c.Limite,
		&c.LimiteDisponivel, &c.DiaVencimento, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CartaoCreditoRepo) Create(ctx context.Context, c *entity.CartaoCredito) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO cartoes_credito (`+cartaoColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		c.ID, c.EmpresaID, c.UsuarioID, c.Nome, c.Bandeira, c.Final, c.Limite, c.LimiteDisponivel,
		c.DiaVencimento, c.CreatedAt, c.UpdatedAt)
	return mapError("insert cartao", err)
}

func (r *CartaoCreditoRepo) GetByID(ctx context.Context, id string) (*entity.CartaoCredito, error) {
	c, err := scanCartao(r.q.QueryRow(ctx, `SELECT `+cartaoColumns+` FROM cartoes_credito WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError("get cartao", err)
	}
	return c, nil
}

func (r *CartaoCreditoRepo) ListByEmpresa(ctx context.Context, empresaID string) ([]*entity.CartaoCredito, error) {
	rows, err := r.q.Query(ctx, `SELECT `+cartaoColumns+` FROM cartoes_credito WHERE empresa_id = $1 ORDER BY nome`, empresaID)
	if err != nil {
		return nil, mapError("list cartoes", err)
	}
	defer rows.Close()
	var list []*entity.CartaoCredito
	for rows.Next() {
		c, err := scanCartao(rows)
		if err != nil {
			return nil, mapError("scan cartao", err)
		}
		list = append(list, c)
	}
	return list, mapError("list cartoes", rows.Err())
}

func (r *CartaoCreditoRepo) Update(ctx context.Context, c *entity.CartaoCredito) error {
	_, err := r.q.Exec(ctx, `
		UPDATE cartoes_credito SET nome = $2, bandeira = $3, final = $4, limite = $5, limite_disponivel = $6,
			dia_vencimento = $7, updated_at = $8
		WHERE id = $1`, c.ID, c.Nome, c.Bandeira, c.Final, c.Limite, c.LimiteDisponivel, c.DiaVencimento, c.UpdatedAt)
	return mapError("update cartao", err)
}

func (r *CartaoCreditoRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.q, "cartoes_credito", id)
}

// deleteByID remove por chave primária; table é sempre uma constante do pacote.
func deleteByID(ctx context.Context, q Querier, table, id string) error {
	tag, err := q.Exec(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		return mapError("delete "+table, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
