package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/limpcred/limpcred-api/internal/application/dto"
	"github.com/limpcred/limpcred-api/internal/application/ports"
	"github.com/limpcred/limpcred-api/internal/application/session"
	"github.com/limpcred/limpcred-api/internal/domain"
	"github.com/limpcred/limpcred-api/internal/domain/entity"
	"github.com/limpcred/limpcred-api/internal/domain/repository"
	"github.com/limpcred/limpcred-api/pkg/metrics"
)

// FaturaUseCase consulta e muda o status de faturas. O pagamento gera a receita da parcela.
type FaturaUseCase struct {
	tx      TxRunner
	faturas repository.FaturaRepository
	opts    options
}

// NewFaturaUseCase constrói o caso de uso.
func NewFaturaUseCase(tx TxRunner, faturas repository.FaturaRepository, opts ...Option) *FaturaUseCase {
	return &FaturaUseCase{tx: tx, faturas: faturas, opts: buildOptions(opts)}
}

// List lista faturas da empresa. Vendedores só veem faturas dos próprios processos.
func (uc *FaturaUseCase) List(ctx context.Context, sess session.Session, status string, page dto.PageRequest) ([]dto.FaturaResponse, error) {
	if err := sess.Require(entity.CapFaturasVer); err != nil {
		return nil, err
	}
	if status != "" && !entity.FaturaStatus(status).Valid() {
		return nil, fmt.Errorf("%w: status desconhecido", domain.ErrInvalidInput)
	}
	page.DefaultPage()
	list, err := uc.faturas.List(ctx, repository.ListFilter{
		EmpresaID:  sess.EmpresaID,
		VendedorID: sess.OwnerFilter(entity.CapProcessosVerTodos),
		Status:     status,
		Limit:      page.Limit,
		Offset:     page.Offset,
	})
	if err != nil {
		return nil, err
	}
	return dto.FromFaturas(list), nil
}

// Get devolve uma fatura da empresa da sessão.
func (uc *FaturaUseCase) Get(ctx context.Context, sess session.Session, id string) (*dto.FaturaResponse, error) {
	if err := sess.Require(entity.CapFaturasVer); err != nil {
		return nil, err
	}
	f, err := uc.faturas.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if f == nil || f.EmpresaID != sess.EmpresaID {
		return nil, domain.ErrNotFound
	}
	out := dto.FromFatura(f)
	return &out, nil
}

// UpdateStatus aplica a transição pedida. Repetir o status atual não tem efeito colateral:
// pagar duas vezes a mesma fatura devolve JaProcessada=true e não lança nova receita.
func (uc *FaturaUseCase) UpdateStatus(ctx context.Context, sess session.Session, id string, in dto.UpdateFaturaStatusRequest) (*dto.FaturaStatusResponse, error) {
	if err := sess.Require(entity.CapFaturasGerenciar); err != nil {
		return nil, err
	}
	target := entity.FaturaStatus(in.Status)
	if !target.Valid() || target == entity.FaturaPendente {
		return nil, fmt.Errorf("%w: status desconhecido", domain.ErrInvalidInput)
	}

	now := uc.opts.today()
	var (
		fatura   *entity.Fatura
		processo *entity.Processo
		receita  *entity.Receita
		already  bool
	)
	err := uc.tx.RunBilling(ctx, func(r Repos) error {
		f, err := r.Faturas.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if f == nil || f.EmpresaID != sess.EmpresaID {
			return domain.ErrNotFound
		}
		fatura = f
		if f.Status == target {
			already = true
			return nil
		}
		if !f.Status.CanTransitionTo(target) {
			return fmt.Errorf("%w: %s → %s", domain.ErrInvalidTransition, f.Status, target)
		}

		f.Status = target
		f.UpdatedAt = now
		if target == entity.FaturaPaga {
			pagoEm := now
			if in.DataPagamento != nil {
				pagoEm = in.DataPagamento.In(uc.opts.loc)
			}
			f.DataPagamento = &pagoEm
			if in.FormaPagamento != "" {
				f.FormaPagamento = in.FormaPagamento
			}
		}
		if err := r.Faturas.UpdateStatus(ctx, f); err != nil {
			return fmt.Errorf("fatura: %w", err)
		}
		if target != entity.FaturaPaga {
			return nil
		}

		exists, err := r.Receitas.ExistsByFatura(ctx, f.ID)
		if err != nil {
			return err
		}
		if exists {
			return nil
		}
		processo, err = r.Processos.GetByID(ctx, f.ProcessoID)
		if err != nil {
			return err
		}
		if processo == nil {
			return fmt.Errorf("processo da fatura: %w", domain.ErrNotFound)
		}
		centro, err := ProvisionCentroCliente(ctx, r.CentrosCusto, processo.VendedorID, f.EmpresaID, processo.ClienteNome, f.Valor, now)
		if err != nil {
			return err
		}
		receita, err = RecordPagamento(ctx, r.Receitas, f, processo, centro, *f.DataPagamento)
		return err
	})
	if err != nil {
		return nil, err
	}

	out := &dto.FaturaStatusResponse{Fatura: dto.FromFatura(fatura), JaProcessada: already}
	if already {
		return out, nil
	}
	metrics.FaturasStatus.WithLabelValues(fatura.EmpresaID, string(fatura.Status)).Inc()
	if receita != nil {
		rr := dto.FromReceita(receita)
		out.Receita = &rr
		metrics.ReceitaRegistrada.WithLabelValues(fatura.EmpresaID, "parcela").Add(receita.Valor.InexactFloat64())
		uc.opts.publisher.Publish(ports.DomainEvent{
			Type:      ports.EventFaturaPaga,
			EmpresaID: fatura.EmpresaID,
			UsuarioID: processo.VendedorID,
			EntityID:  fatura.ID,
			Payload: map[string]string{
				"numero":  processo.Numero,
				"parcela": fmt.Sprintf("%d/%d", fatura.Parcela, fatura.TotalParcelas),
				"valor":   fatura.Valor.StringFixed(2),
			},
			OccurredAt: now,
		})
	}
	uc.opts.log.Info().
		Str("fatura_id", fatura.ID).
		Str("status", string(fatura.Status)).
		Msg("status da fatura alterado")
	return out, nil
}

// MarkOverdue marca como atrasadas as faturas pendentes com vencimento anterior a hoje.
func (uc *FaturaUseCase) MarkOverdue(ctx context.Context, sess session.Session) (*dto.MarkOverdueResponse, error) {
	if err := sess.Require(entity.CapFaturasGerenciar); err != nil {
		return nil, err
	}
	now := uc.opts.today()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	n, err := uc.faturas.MarkOverdue(ctx, sess.EmpresaID, today)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		metrics.FaturasStatus.WithLabelValues(sess.EmpresaID, string(entity.FaturaAtrasada)).Add(float64(n))
	}
	return &dto.MarkOverdueResponse{Atualizadas: n}, nil
}
