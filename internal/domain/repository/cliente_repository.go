package repository

import (
	"context"

	"github.com/limpcred/limpcred-api/internal/domain/entity"
)

// ClienteRepository define a porta de persistência de Cliente.
type ClienteRepository interface {
	Create(ctx context.Context, cliente *entity.Cliente) error
	GetByID(ctx context.Context, id string) (*entity.Cliente, error)
	GetByEmpresaAndDocumento(ctx context.Context, empresaID, documento string) (*entity.Cliente, error)
	List(ctx context.Context, f ListFilter) ([]*entity.Cliente, error)
	Update(ctx context.Context, cliente *entity.Cliente) error
}
