package repository

import (
	"context"

	"github.com/limpcred/limpcred-api/internal/domain/entity"
)

// ContaBancariaRepository define a porta de persistência de ContaBancaria.
type ContaBancariaRepository interface {
	Create(ctx context.Context, conta *entity.ContaBancaria) error
	GetByID(ctx context.Context, id string) (*entity.ContaBancaria, error)
	ListByEmpresa(ctx context.Context, empresaID string) ([]*entity.ContaBancaria, error)
	Update(ctx context.Context, conta *entity.ContaBancaria) error
	Delete(ctx context.Context, id string) error
}

// CartaoCreditoRepository define a porta de persistência de CartaoCredito.
type CartaoCreditoRepository interface {
	Create(ctx context.Context, cartao *entity.CartaoCredito) error
	GetByID(ctx context.Context, id string) (*entity.CartaoCredito, error)
	ListByEmpresa(ctx context.Context, empresaID string) ([]*entity.CartaoCredito, error)
	Update(ctx context.Context, cartao *entity.CartaoCredito) error
	Delete(ctx context.Context, id string) error
}
