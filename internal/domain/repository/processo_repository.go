package repository

import (
	"context"
	"time"

	"github.com/limpcred/limpcred-api/internal/domain/entity"
)

// ProcessoRepository define a porta de persistência de Processo.
type ProcessoRepository interface {
	Create(ctx context.Context, processo *entity.Processo) error
	GetByID(ctx context.Context, id string) (*entity.Processo, error)
	List(ctx context.Context, f ListFilter) ([]*entity.Processo, error)
	// LockNumbering serializa a numeração da empresa no ano até o fim da transação corrente.
	LockNumbering(ctx context.Context, empresaID string, year int) error
	// LatestNumero devolve o maior número entre os processos criados em [from, to), ou "" se não houver.
	LatestNumero(ctx context.Context, empresaID string, from, to time.Time) (string, error)
	UpdateStatus(ctx context.Context, id string, status entity.ProcessoStatus, updatedAt time.Time) error
	UpdateArquivos(ctx context.Context, id, contratoKey, comprovanteKey string, updatedAt time.Time) error
}
