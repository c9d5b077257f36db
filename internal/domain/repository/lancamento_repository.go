package repository

import (
	"context"

	"github.com/limpcred/limpcred-api/internal/domain/entity"
)

// ReceitaRepository define a porta de persistência do livro de receitas.
type ReceitaRepository interface {
	Create(ctx context.Context, receita *entity.Receita) error
	ExistsByFatura(ctx context.Context, faturaID string) (bool, error)
	List(ctx context.Context, f ListFilter) ([]*entity.Receita, error)
}

// DespesaRepository define a porta de persistência do livro de despesas.
type DespesaRepository interface {
	Create(ctx context.Context, despesa *entity.Despesa) error
	GetByID(ctx context.Context, id string) (*entity.Despesa, error)
	List(ctx context.Context, f ListFilter) ([]*entity.Despesa, error)
	Delete(ctx context.Context, id string) error
}
