package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/limpcred/limpcred-api/internal/domain/entity"
	"github.com/limpcred/limpcred-api/internal/domain/installment"
	"github.com/limpcred/limpcred-api/internal/domain/repository"
)

// GenerateFaturas cria uma fatura pendente por parcela do saldo (total - entrada) do processo.
// Sem saldo ou sem parcelas não gera nada.
func GenerateFaturas(
	ctx context.Context,
	repo repository.FaturaRepository,
	p *entity.Processo,
	firstDue time.Time,
	formaPagamento string,
	now time.Time,
) ([]*entity.Fatura, error) {
	if p.Parcelas < 1 || !p.ValorFinanciado().IsPositive() {
		return nil, nil
	}
	valores, err := installment.Split(p.ValorTotal, p.ValorEntrada, p.Parcelas)
	if err != nil {
		return nil, err
	}
	vencimentos := installment.DueDates(firstDue, p.Parcelas)

	faturas := make([]*entity.Fatura, 0, p.Parcelas)
	for i, valor := range valores {
		f := &entity.Fatura{
			ID:             uuid.New().String(),
			EmpresaID:      p.EmpresaID,
			ProcessoID:     p.ID,
			ClienteID:      p.ClienteID,
			ClienteNome:    p.ClienteNome,
			Valor:          valor,
			Parcela:        i + 1,
			TotalParcelas:  p.Parcelas,
			Vencimento:     vencimentos[i],
			Status:         entity.FaturaPendente,
			FormaPagamento: formaPagamento,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := repo.Create(ctx, f); err != nil {
			return nil, fmt.Errorf("fatura %d/%d: %w", f.Parcela, f.TotalParcelas, err)
		}
		faturas = append(faturas, f)
	}
	return faturas, nil
}
