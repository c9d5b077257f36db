package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/limpcred/limpcred-api/internal/domain"
	"github.com/limpcred/limpcred-api/internal/domain/entity"
	"github.com/limpcred/limpcred-api/internal/domain/repository"
)

var _ repository.UsuarioRepository = (*UsuarioRepo)(nil)

// UsuarioRepo implementação de UsuarioRepository (usável com pool ou tx).
type UsuarioRepo struct {
	q Querier
}

// NewUsuarioRepository constrói o adaptador.
func NewUsuarioRepository(q Querier) *UsuarioRepo {
	return &UsuarioRepo{q: q}
}

const usuarioColumns = `id, empresa_id, nome, email, telefone, endereco, password_hash, tipo, status, permissoes, created_at, updated_at`

func scanUsuario(row pgx.Row) (*entity.Usuario, error) {
	var u entity.Usuario
	var tipo string
	err := row.Scan(&u.ID, &u.EmpresaID, &u.Nome, &u.Email, &u.Telefone, &u.Endereco,
		&u.PasswordHash, &tipo, &u.Status, &u.Permissoes, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	u.Tipo = entity.Role(tipo)
	return &u, nil
}

// Create persiste um usuário. Email repetido vira ErrEmailAlreadyExists.
func (r *UsuarioRepo) Create(ctx context.Context, u *entity.Usuario) error {
	perms := u.Permissoes
	if perms == nil {
		perms = []string{}
	}
	query := `
		INSERT INTO usuarios (` + usuarioColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		u.ID, u.EmpresaID, u.Nome, u.Email, u.Telefone, u.Endereco, u.PasswordHash,
		string(u.Tipo), u.Status, perms, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil && isUniqueViolation(err) {
		return domain.ErrEmailAlreadyExists
	}
	return mapError("insert usuario", err)
}

func (r *UsuarioRepo) getOne(ctx context.Context, op, where string, arg any) (*entity.Usuario, error) {
	u, err := scanUsuario(r.q.QueryRow(ctx, `SELECT `+usuarioColumns+` FROM usuarios WHERE `+where, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError(op, err)
	}
	return u, nil
}

// GetByID obtém um usuário por ID.
func (r *UsuarioRepo) GetByID(ctx context.Context, id string) (*entity.Usuario, error) {
	return r.getOne(ctx, "get usuario", "id = $1", id)
}

// GetByEmail obtém um usuário pelo email (sem diferenciar maiúsculas).
func (r *UsuarioRepo) GetByEmail(ctx context.Context, email string) (*entity.Usuario, error) {
	return r.getOne(ctx, "get usuario by email", "lower(email) = lower($1)", email)
}

// Update atualiza dados, papel e permissões. Senha vazia mantém a atual.
func (r *UsuarioRepo) Update(ctx context.Context, u *entity.Usuario) error {
	perms := u.Permissoes
	if perms == nil {
		perms = []string{}
	}
	query := `
		UPDATE usuarios SET nome = $2, email = $3, telefone = $4, endereco = $5,
			password_hash = COALESCE(NULLIF($6::text, ''), password_hash),
			tipo = $7, status = $8, permissoes = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		u.ID, u.Nome, u.Email, u.Telefone, u.Endereco, u.PasswordHash,
		string(u.Tipo), u.Status, perms, u.UpdatedAt,
	)
	if err != nil && isUniqueViolation(err) {
		return domain.ErrEmailAlreadyExists
	}
	return mapError("update usuario", err)
}

// ListByEmpresa lista usuários da empresa.
func (r *UsuarioRepo) ListByEmpresa(ctx context.Context, empresaID string, limit, offset int) ([]*entity.Usuario, error) {
	limit, offset = pageArgs(limit, offset)
	rows, err := r.q.Query(ctx, `
		SELECT `+usuarioColumns+` FROM usuarios
		WHERE empresa_id = $1 ORDER BY nome LIMIT $2 OFFSET $3`, empresaID, limit, offset)
	if err != nil {
		return nil, mapError("list usuarios", err)
	}
	defer rows.Close()
	var list []*entity.Usuario
	for rows.Next() {
		u, err := scanUsuario(rows)
		if err != nil {
			return nil, mapError("scan usuario", err)
		}
		list = append(list, u)
	}
	return list, mapError("list usuarios", rows.Err())
}
