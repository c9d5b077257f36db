package billing

import (
	"context"
	"fmt"

	"github.com/limpcred/limpcred-api/internal/application/session"
	"github.com/limpcred/limpcred-api/internal/domain"
	"github.com/limpcred/limpcred-api/internal/domain/entity"
	"github.com/limpcred/limpcred-api/internal/domain/repository"
)

// CarneUseCase gera o carnê em PDF com as parcelas de um processo.
type CarneUseCase struct {
	empresas  repository.EmpresaRepository
	processos repository.ProcessoRepository
	faturas   repository.FaturaRepository
	generator CarneGenerator
}

// NewCarneUseCase constrói o caso de uso.
func NewCarneUseCase(
	empresas repository.EmpresaRepository,
	processos repository.ProcessoRepository,
	faturas repository.FaturaRepository,
	generator CarneGenerator,
) *CarneUseCase {
	return &CarneUseCase{empresas: empresas, processos: processos, faturas: faturas, generator: generator}
}

// Generate devolve os bytes do PDF e o nome sugerido do arquivo.
func (uc *CarneUseCase) Generate(ctx context.Context, sess session.Session, processoID string) ([]byte, string, error) {
	if !sess.Can(entity.CapFaturasVer) {
		return nil, "", domain.ErrForbidden
	}
	p, err := uc.processos.GetByID(ctx, processoID)
	if err != nil {
		return nil, "", err
	}
	if p == nil || p.EmpresaID != sess.EmpresaID {
		return nil, "", domain.ErrNotFound
	}
	if !sess.Can(entity.CapProcessosVerTodos) && p.VendedorID != sess.UserID {
		return nil, "", domain.ErrNotFound
	}
	empresa, err := uc.empresas.GetByID(ctx, p.EmpresaID)
	if err != nil {
		return nil, "", err
	}
	if empresa == nil {
		return nil, "", domain.ErrNotFound
	}
	faturas, err := uc.faturas.ListByProcesso(ctx, p.ID)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.generator.GenerateCarne(ctx, empresa, p, faturas)
	if err != nil {
		return nil, "", fmt.Errorf("carnê: %w", err)
	}
	return pdf, fmt.Sprintf("carne-%s.pdf", p.Numero), nil
}
