package repository

import (
	"context"

	"github.com/limpcred/limpcred-api/internal/domain/entity"
)

// UsuarioRepository define a porta de persistência de Usuario.
type UsuarioRepository interface {
	Create(ctx context.Context, usuario *entity.Usuario) error
	GetByID(ctx context.Context, id string) (*entity.Usuario, error)
	// GetByEmail busca em todas as empresas; o email é único no sistema.
	GetByEmail(ctx context.Context, email string) (*entity.Usuario, error)
	Update(ctx context.Context, usuario *entity.Usuario) error
	ListByEmpresa(ctx context.Context, empresaID string, limit, offset int) ([]*entity.Usuario, error)
}
