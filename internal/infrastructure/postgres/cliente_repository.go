package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/limpcred/limpcred-api/internal/domain/entity"
	"github.com/limpcred/limpcred-api/internal/domain/repository"
)

var _ repository.ClienteRepository = (*ClienteRepo)(nil)

// ClienteRepo implementação de ClienteRepository (usável com pool ou tx).
type ClienteRepo struct {
	q Querier
}

// NewClienteRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewClienteRepository(q Querier) *ClienteRepo {
	return &ClienteRepo{q: q}
}

const clienteColumns = `id, empresa_id, vendedor_id, nome, email, telefone, documento, endereco, status, created_at, updated_at`

func scanCliente(row pgx.Row) (*entity.Cliente, error) {
	var c entity.Cliente
	err := row.Scan(&c.ID, &c.EmpresaID, &c.VendedorID, &c.Nome, &c.Email, &c.Telefone,
		&c.Documento, &c.Endereco, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste um novo cliente. Documento repetido na empresa vira ErrDuplicate.
func (r *ClienteRepo) Create(ctx context.Context, c *entity.Cliente) error {
	query := `
		INSERT INTO clientes (` + clienteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.EmpresaID, c.VendedorID, c.Nome, c.Email, c.Telefone,
		c.Documento, c.Endereco, c.Status, c.CreatedAt, c.UpdatedAt,
	)
	return mapError("insert cliente", err)
}

// GetByID obtém um cliente por ID.
func (r *ClienteRepo) GetByID(ctx context.Context, id string) (*entity.Cliente, error) {
	c, err := scanCliente(r.q.QueryRow(ctx, `SELECT `+clienteColumns+` FROM clientes WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError("get cliente", err)
	}
	return c, nil
}

// GetByEmpresaAndDocumento obtém um cliente pelo CPF/CNPJ dentro da empresa.
func (r *ClienteRepo) GetByEmpresaAndDocumento(ctx context.Context, empresaID, documento string) (*entity.Cliente, error) {
	c, err := scanCliente(r.q.QueryRow(ctx,
		`SELECT `+clienteColumns+` FROM clientes WHERE empresa_id = $1 AND documento = $2`, empresaID, documento))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError("get cliente by documento", err)
	}
	return c, nil
}

// List lista clientes da empresa; VendedorID restringe à carteira do vendedor.
func (r *ClienteRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.Cliente, error) {
	var w whereBuilder
	w.add("empresa_id = $%d", f.EmpresaID)
	if f.VendedorID != "" {
		w.add("vendedor_id = $%d", f.VendedorID)
	}
	if f.Status != "" {
		w.add("status = $%d", f.Status)
	}
	if f.Search != "" {
		w.addSearch(f.Search, "nome", "documento", "email")
	}
	query, args := w.page(`SELECT `+clienteColumns+` FROM clientes`, "nome", f)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError("list clientes", err)
	}
	defer rows.Close()
	var list []*entity.Cliente
	for rows.Next() {
		c, err := scanCliente(rows)
		if err != nil {
			return nil, mapError("scan cliente", err)
		}
		list = append(list, c)
	}
	return list, mapError("list clientes", rows.Err())
}

// Update atualiza um cliente.
func (r *ClienteRepo) Update(ctx context.Context, c *entity.Cliente) error {
	query := `
		UPDATE clientes SET nome = $2, email = $3, telefone = $4, documento = $5, endereco = $6,
			status = $7, vendedor_id = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Nome, c.Email, c.Telefone, c.Documento, c.Endereco, c.Status, c.VendedorID, c.UpdatedAt,
	)
	return mapError("update cliente", err)
}
