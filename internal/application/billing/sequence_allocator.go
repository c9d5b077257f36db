package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/limpcred/limpcred-api/internal/domain/repository"
	"github.com/limpcred/limpcred-api/internal/domain/sequence"
)

// AllocateNumero calcula o próximo número PROC-{ano}-{seq} da empresa.
// Deve rodar na mesma transação que insere o processo: o lock de numeração só é liberado no commit.
func AllocateNumero(ctx context.Context, repo repository.ProcessoRepository, empresaID string, now time.Time) (string, error) {
	year := now.Year()
	if err := repo.LockNumbering(ctx, empresaID, year); err != nil {
		return "", fmt.Errorf("numeração: lock: %w", err)
	}
	from, to := sequence.YearRange(year, now.Location())
	latest, err := repo.LatestNumero(ctx, empresaID, from, to)
	if err != nil {
		return "", fmt.Errorf("numeração: último número: %w", err)
	}
	seq, err := sequence.Next(latest)
	if err != nil {
		return "", fmt.Errorf("numeração: %w", err)
	}
	return sequence.Format(year, seq), nil
}
