package repository

import (
	"context"

	"github.com/limpcred/limpcred-api/internal/domain/entity"
)

// EmpresaRepository define a porta de persistência de Empresa e do vínculo admin ↔ empresa.
type EmpresaRepository interface {
	Create(ctx context.Context, empresa *entity.Empresa) error
	GetByID(ctx context.Context, id string) (*entity.Empresa, error)
	GetByCNPJ(ctx context.Context, cnpj string) (*entity.Empresa, error)
	Update(ctx context.Context, empresa *entity.Empresa) error
	List(ctx context.Context, limit, offset int) ([]*entity.Empresa, error)
	// AddAdmin libera a empresa para seleção pelo admin (idempotente).
	AddAdmin(ctx context.Context, adminID, empresaID string) error
	IsAdminOf(ctx context.Context, adminID, empresaID string) (bool, error)
	ListByAdmin(ctx context.Context, adminID string) ([]*entity.Empresa, error)
}
