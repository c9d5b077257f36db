package billing

import (
	"context"
	"fmt"
	"strings"

	"github.com/limpcred/limpcred-api/internal/application/dto"
	"github.com/limpcred/limpcred-api/internal/application/ports"
	"github.com/limpcred/limpcred-api/internal/application/session"
	"github.com/limpcred/limpcred-api/internal/domain"
	"github.com/limpcred/limpcred-api/internal/domain/entity"
	"github.com/limpcred/limpcred-api/internal/domain/repository"
)

// ProcessoUseCase consultas e mudanças de andamento de processos já criados.
type ProcessoUseCase struct {
	processos repository.ProcessoRepository
	faturas   repository.FaturaRepository
	opts      options
}

// NewProcessoUseCase constrói o caso de uso.
func NewProcessoUseCase(processos repository.ProcessoRepository, faturas repository.FaturaRepository, opts ...Option) *ProcessoUseCase {
	return &ProcessoUseCase{processos: processos, faturas: faturas, opts: buildOptions(opts)}
}

// List lista processos; vendedores sem ver_todos só veem os próprios.
func (uc *ProcessoUseCase) List(ctx context.Context, sess session.Session, status, search string, page dto.PageRequest) ([]dto.ProcessoResponse, error) {
	if !sess.Can(entity.CapProcessosCriar) && !sess.Can(entity.CapProcessosVerTodos) {
		return nil, domain.ErrForbidden
	}
	if status != "" && !entity.ProcessoStatus(status).Valid() {
		return nil, fmt.Errorf("%w: status desconhecido", domain.ErrInvalidInput)
	}
	page.DefaultPage()
	list, err := uc.processos.List(ctx, repository.ListFilter{
		EmpresaID:  sess.EmpresaID,
		VendedorID: sess.OwnerFilter(entity.CapProcessosVerTodos),
		Status:     status,
		Search:     strings.TrimSpace(search),
		Limit:      page.Limit,
		Offset:     page.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProcessoResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.FromProcesso(p))
	}
	return out, nil
}

// Get devolve o processo com suas faturas.
func (uc *ProcessoUseCase) Get(ctx context.Context, sess session.Session, id string) (*dto.ProcessoDetailResponse, error) {
	p, err := uc.load(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	faturas, err := uc.faturas.ListByProcesso(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	return &dto.ProcessoDetailResponse{Processo: dto.FromProcesso(p), Faturas: dto.FromFaturas(faturas)}, nil
}

// UpdateStatus avança o andamento do processo (ou cancela).
func (uc *ProcessoUseCase) UpdateStatus(ctx context.Context, sess session.Session, id string, in dto.UpdateProcessoStatusRequest) (*dto.ProcessoResponse, error) {
	if err := sess.Require(entity.CapProcessosStatus); err != nil {
		return nil, err
	}
	p, err := uc.load(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	next := entity.ProcessoStatus(in.Status)
	if !next.Valid() {
		return nil, fmt.Errorf("%w: status desconhecido", domain.ErrInvalidInput)
	}
	if !p.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s → %s", domain.ErrInvalidTransition, p.Status, next)
	}
	now := uc.opts.today()
	if err := uc.processos.UpdateStatus(ctx, p.ID, next, now); err != nil {
		return nil, err
	}
	previous := p.Status
	p.Status, p.UpdatedAt = next, now

	uc.opts.publisher.Publish(ports.DomainEvent{
		Type:      ports.EventProcessoStatusAlterado,
		EmpresaID: p.EmpresaID,
		UsuarioID: p.VendedorID,
		EntityID:  p.ID,
		Payload: map[string]string{
			"numero":   p.Numero,
			"anterior": string(previous),
			"status":   string(next),
		},
		OccurredAt: now,
	})
	out := dto.FromProcesso(p)
	return &out, nil
}

// UpdateArquivos associa ao processo as chaves de contrato e comprovante já enviadas ao storage.
func (uc *ProcessoUseCase) UpdateArquivos(ctx context.Context, sess session.Session, id string, in dto.UpdateArquivosRequest) (*dto.ProcessoResponse, error) {
	if err := sess.Require(entity.CapDocumentosGerenciar); err != nil {
		return nil, err
	}
	p, err := uc.load(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	prefix := "empresas/" + sess.EmpresaID + "/"
	for _, k := range []string{in.ContratoKey, in.ComprovanteKey} {
		if k != "" && !strings.HasPrefix(k, prefix) {
			return nil, fmt.Errorf("%w: chave de arquivo de outra empresa", domain.ErrInvalidInput)
		}
	}
	if in.ContratoKey != "" {
		p.ContratoKey = in.ContratoKey
	}
	if in.ComprovanteKey != "" {
		p.ComprovanteKey = in.ComprovanteKey
	}
	p.UpdatedAt = uc.opts.today()
	if err := uc.processos.UpdateArquivos(ctx, p.ID, p.ContratoKey, p.ComprovanteKey, p.UpdatedAt); err != nil {
		return nil, err
	}
	out := dto.FromProcesso(p)
	return &out, nil
}

// load busca o processo aplicando tenant e posse.
func (uc *ProcessoUseCase) load(ctx context.Context, sess session.Session, id string) (*entity.Processo, error) {
	p, err := uc.processos.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil || p.EmpresaID != sess.EmpresaID {
		return nil, domain.ErrNotFound
	}
	if !sess.Can(entity.CapProcessosVerTodos) && p.VendedorID != sess.UserID {
		return nil, domain.ErrNotFound
	}
	return p, nil
}
