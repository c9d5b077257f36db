package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/limpcred/limpcred-api/internal/domain/entity"
	"github.com/limpcred/limpcred-api/internal/domain/repository"
)

var _ repository.EmpresaRepository = (*EmpresaRepo)(nil)

// EmpresaRepo implementação de EmpresaRepository (usável com pool ou tx).
type EmpresaRepo struct {
	q Querier
}

// NewEmpresaRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewEmpresaRepository(q Querier) *EmpresaRepo {
	return &EmpresaRepo{q: q}
}

const empresaColumns = `id, razao_social, nome_fantasia, cnpj, email, telefone, endereco, status, created_at, updated_at`

func scanEmpresa(row pgx.Row) (*entity.Empresa, error) {
	var e entity.Empresa
	err := row.Scan(&e.ID, &e.RazaoSocial, &e.NomeFantasia, &e.CNPJ, &e.Email, &e.Telefone,
		&e.Endereco, &e.Status, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Create persiste uma nova empresa.
func (r *EmpresaRepo) Create(ctx context.Context, e *entity.Empresa) error {
	query := `
		INSERT INTO empresas (` + empresaColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.RazaoSocial, e.NomeFantasia, e.CNPJ, e.Email, e.Telefone,
		e.Endereco, e.Status, e.CreatedAt, e.UpdatedAt,
	)
	return mapError("insert empresa", err)
}

func (r *EmpresaRepo) getOne(ctx context.Context, op, where string, arg any) (*entity.Empresa, error) {
	e, err := scanEmpresa(r.q.QueryRow(ctx, `SELECT `+empresaColumns+` FROM empresas WHERE `+where, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError(op, err)
	}
	return e, nil
}

// GetByID obtém uma empresa por ID.
func (r *EmpresaRepo) GetByID(ctx context.Context, id string) (*entity.Empresa, error) {
	return r.getOne(ctx, "get empresa", "id = $1", id)
}

// GetByCNPJ obtém uma empresa pelo CNPJ.
func (r *EmpresaRepo) GetByCNPJ(ctx context.Context, cnpj string) (*entity.Empresa, error) {
	return r.getOne(ctx, "get empresa by cnpj", "cnpj = $1", cnpj)
}

// Update atualiza os dados cadastrais.
func (r *EmpresaRepo) Update(ctx context.Context, e *entity.Empresa) error {
	query := `
		UPDATE empresas SET razao_social = $2, nome_fantasia = $3, email = $4, telefone = $5,
			endereco = $6, status = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.RazaoSocial, e.NomeFantasia, e.Email, e.Telefone, e.Endereco, e.Status, e.UpdatedAt,
	)
	return mapError("update empresa", err)
}

// List lista todas as empresas com paginação.
func (r *EmpresaRepo) List(ctx context.Context, limit, offset int) ([]*entity.Empresa, error) {
	limit, offset = pageArgs(limit, offset)
	return r.list(ctx, "list empresas",
		`SELECT `+empresaColumns+` FROM empresas ORDER BY razao_social LIMIT $1 OFFSET $2`, limit, offset)
}

// AddAdmin vincula o admin à empresa. Repetir o vínculo não é erro.
func (r *EmpresaRepo) AddAdmin(ctx context.Context, adminID, empresaID string) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO empresa_admins (admin_id, empresa_id) VALUES ($1, $2)
		ON CONFLICT (admin_id, empresa_id) DO NOTHING`, adminID, empresaID)
	return mapError("add empresa admin", err)
}

// IsAdminOf indica se o admin pode selecionar a empresa.
func (r *EmpresaRepo) IsAdminOf(ctx context.Context, adminID, empresaID string) (bool, error) {
	var ok bool
	err := r.q.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM empresa_admins WHERE admin_id = $1 AND empresa_id = $2)`,
		adminID, empresaID).Scan(&ok)
	if err != nil {
		return false, mapError("is admin of", err)
	}
	return ok, nil
}

// ListByAdmin lista as empresas liberadas para o admin.
func (r *EmpresaRepo) ListByAdmin(ctx context.Context, adminID string) ([]*entity.Empresa, error) {
	return r.list(ctx, "list empresas by admin", `
		SELECT e.id, e.razao_social, e.nome_fantasia, e.cnpj, e.email, e.telefone, e.endereco, e.status, e.created_at, e.updated_at
		FROM empresas e
		JOIN empresa_admins a ON a.empresa_id = e.id
		WHERE a.admin_id = $1
		ORDER BY e.razao_social`, adminID)
}

func (r *EmpresaRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.Empresa, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(op, err)
	}
	defer rows.Close()
	var list []*entity.Empresa
	for rows.Next() {
		e, err := scanEmpresa(rows)
		if err != nil {
			return nil, mapError(op+" scan", err)
		}
		list = append(list, e)
	}
	return list, mapError(op, rows.Err())
}
