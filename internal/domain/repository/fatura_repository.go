package repository

import (
	"context"
	"time"

	"github.com/limpcred/limpcred-api/internal/domain/entity"
)

// FaturaRepository define a porta de persistência de Fatura.
type FaturaRepository interface {
	Create(ctx context.Context, fatura *entity.Fatura) error
	GetByID(ctx context.Context, id string) (*entity.Fatura, error)
	// GetByIDForUpdate bloqueia a linha até o fim da transação (usar somente dentro de TxRunner).
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Fatura, error)
	ListByProcesso(ctx context.Context, processoID string) ([]*entity.Fatura, error)
	List(ctx context.Context, f ListFilter) ([]*entity.Fatura, error)
	UpdateStatus(ctx context.Context, fatura *entity.Fatura) error
	// MarkOverdue move para atrasada as faturas pendentes vencidas antes de today. Retorna quantas mudaram.
	MarkOverdue(ctx context.Context, empresaID string, today time.Time) (int64, error)
}
