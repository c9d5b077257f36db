package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/limpcred/limpcred-api/internal/domain/entity"
)

// CentroCustoRepository define a porta de persistência de CentroCusto.
type CentroCustoRepository interface {
	Create(ctx context.Context, centro *entity.CentroCusto) error
	// LockOwner serializa o provisionamento automático dos centros de um usuário até o fim da transação.
	LockOwner(ctx context.Context, empresaID, usuarioID string) error
	GetByID(ctx context.Context, id string) (*entity.CentroCusto, error)
	ListByUsuario(ctx context.Context, empresaID, usuarioID string) ([]*entity.CentroCusto, error)
	ListByEmpresa(ctx context.Context, empresaID string) ([]*entity.CentroCusto, error)
	// IncrementOrcamento soma delta ao orçamento de forma atômica (sem ler-modificar-escrever).
	IncrementOrcamento(ctx context.Context, id string, delta decimal.Decimal) error
	Update(ctx context.Context, centro *entity.CentroCusto) error
}
