package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/limpcred/limpcred-api/internal/domain/entity"
	"github.com/limpcred/limpcred-api/internal/domain/repository"
)

// RecordEntrada lança a entrada do processo como receita do centro do cliente. Entrada zero não gera lançamento.
func RecordEntrada(
	ctx context.Context,
	repo repository.ReceitaRepository,
	p *entity.Processo,
	centro *entity.CentroCusto,
	now time.Time,
) (*entity.Receita, error) {
	if !p.ValorEntrada.IsPositive() {
		return nil, nil
	}
	processoID := p.ID
	r := &entity.Receita{
		ID:            uuid.New().String(),
		EmpresaID:     p.EmpresaID,
		UsuarioID:     p.VendedorID,
		CentroCustoID: centro.ID,
		ProcessoID:    &processoID,
		Descricao:     fmt.Sprintf("Entrada - %s - %s", p.Numero, p.ClienteNome),
		Valor:         p.ValorEntrada.Round(2),
		Data:          now,
		Status:        entity.LancamentoConfirmado,
		CreatedAt:     now,
	}
	if err := repo.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("receita de entrada: %w", err)
	}
	return r, nil
}

// RecordPagamento lança o valor de uma fatura paga. O índice único em receitas.fatura_id
// rejeita um segundo lançamento para a mesma fatura.
func RecordPagamento(
	ctx context.Context,
	repo repository.ReceitaRepository,
	f *entity.Fatura,
	p *entity.Processo,
	centro *entity.CentroCusto,
	pagoEm time.Time,
) (*entity.Receita, error) {
	processoID, faturaID := p.ID, f.ID
	r := &entity.Receita{
		ID:            uuid.New().String(),
		EmpresaID:     f.EmpresaID,
		UsuarioID:     p.VendedorID,
		CentroCustoID: centro.ID,
		ProcessoID:    &processoID,
		FaturaID:      &faturaID,
		Descricao:     fmt.Sprintf("Parcela %d/%d - %s - %s", f.Parcela, f.TotalParcelas, p.Numero, f.ClienteNome),
		Valor:         f.Valor,
		Data:          pagoEm,
		Status:        entity.LancamentoConfirmado,
		CreatedAt:     pagoEm,
	}
	if err := repo.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("receita de parcela: %w", err)
	}
	return r, nil
}
