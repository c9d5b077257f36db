package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/limpcred/limpcred-api/internal/application/dto"
	"github.com/limpcred/limpcred-api/internal/application/ports"
	"github.com/limpcred/limpcred-api/internal/application/session"
	"github.com/limpcred/limpcred-api/internal/domain"
	"github.com/limpcred/limpcred-api/internal/domain/entity"
	"github.com/limpcred/limpcred-api/internal/domain/installment"
	"github.com/limpcred/limpcred-api/pkg/metrics"
)

// CreateProcessoUseCase registra a venda de um processo e todos os registros derivados
// (número, centro de custo do cliente, faturas, receita da entrada) numa única transação.
type CreateProcessoUseCase struct {
	tx   TxRunner
	opts options
}

// NewCreateProcessoUseCase constrói o caso de uso.
func NewCreateProcessoUseCase(tx TxRunner, opts ...Option) *CreateProcessoUseCase {
	return &CreateProcessoUseCase{tx: tx, opts: buildOptions(opts)}
}

// Execute valida, numera, persiste e gera os derivados. Qualquer falha desfaz tudo.
func (uc *CreateProcessoUseCase) Execute(ctx context.Context, sess session.Session, in dto.CreateProcessoRequest) (*dto.CreateProcessoResponse, error) {
	if err := sess.Require(entity.CapProcessosCriar); err != nil {
		return nil, err
	}
	if err := validateCreateProcesso(in); err != nil {
		return nil, err
	}

	now := uc.opts.today()
	firstDue := installment.FirstDueDate(now)
	if in.PrimeiroVencimento != nil {
		firstDue = in.PrimeiroVencimento.In(uc.opts.loc)
	}

	var (
		processo *entity.Processo
		faturas  []*entity.Fatura
		receita  *entity.Receita
		centro   *entity.CentroCusto
	)
	err := uc.tx.RunBilling(ctx, func(r Repos) error {
		cliente, err := r.Clientes.GetByID(ctx, in.ClienteID)
		if err != nil {
			return err
		}
		if cliente == nil || cliente.EmpresaID != sess.EmpresaID {
			return fmt.Errorf("cliente: %w", domain.ErrNotFound)
		}
		if !sess.Can(entity.CapClientesVerTodos) && cliente.VendedorID != sess.UserID {
			return domain.ErrForbidden
		}

		numero, err := AllocateNumero(ctx, r.Processos, sess.EmpresaID, now)
		if err != nil {
			return err
		}
		processo = &entity.Processo{
			ID:           uuid.New().String(),
			EmpresaID:    sess.EmpresaID,
			Numero:       numero,
			Tipo:         strings.TrimSpace(in.Tipo),
			ClienteID:    cliente.ID,
			ClienteNome:  cliente.Nome,
			ClienteDoc:   cliente.Documento,
			VendedorID:   sess.UserID,
			Status:       entity.ProcessoAguardandoDocumentos,
			ValorTotal:   in.ValorTotal.Round(2),
			ValorEntrada: in.ValorEntrada.Round(2),
			Parcelas:     in.Parcelas,
			DataGarantia: in.DataGarantia,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := r.Processos.Create(ctx, processo); err != nil {
			return fmt.Errorf("processo: %w", err)
		}

		centro, err = ProvisionCentroCliente(ctx, r.CentrosCusto, sess.UserID, sess.EmpresaID, cliente.Nome, processo.ValorEntrada, now)
		if err != nil {
			return err
		}

		faturas, err = GenerateFaturas(ctx, r.Faturas, processo, firstDue, in.FormaPagamento, now)
		if err != nil {
			return err
		}

		receita, err = RecordEntrada(ctx, r.Receitas, processo, centro, now)
		return err
	})
	if err != nil {
		if !errors.Is(err, domain.ErrForbidden) && !errors.Is(err, domain.ErrNotFound) {
			uc.opts.log.Error().Err(err).
				Str("empresa_id", sess.EmpresaID).
				Str("cliente_id", in.ClienteID).
				Msg("falha ao criar processo")
		}
		return nil, err
	}

	metrics.ProcessosCriados.WithLabelValues(processo.EmpresaID).Inc()
	metrics.FaturasGeradas.WithLabelValues(processo.EmpresaID).Add(float64(len(faturas)))
	if receita != nil {
		metrics.ReceitaRegistrada.WithLabelValues(processo.EmpresaID, "entrada").Add(receita.Valor.InexactFloat64())
	}
	uc.opts.publisher.Publish(ports.DomainEvent{
		Type:      ports.EventProcessoCriado,
		EmpresaID: processo.EmpresaID,
		UsuarioID: processo.VendedorID,
		EntityID:  processo.ID,
		Payload: map[string]string{
			"numero":       processo.Numero,
			"cliente_nome": processo.ClienteNome,
			"valor_total":  processo.ValorTotal.StringFixed(2),
		},
		OccurredAt: now,
	})
	uc.opts.log.Info().
		Str("empresa_id", processo.EmpresaID).
		Str("numero", processo.Numero).
		Int("faturas", len(faturas)).
		Msg("processo criado")

	out := &dto.CreateProcessoResponse{
		Processo: dto.FromProcesso(processo),
		Faturas:  dto.FromFaturas(faturas),
	}
	if receita != nil {
		rr := dto.FromReceita(receita)
		out.Receita = &rr
	}
	if centro != nil {
		cc := dto.FromCentroCusto(centro)
		out.CentroCusto = &cc
	}
	return out, nil
}

func validateCreateProcesso(in dto.CreateProcessoRequest) error {
	if strings.TrimSpace(in.Tipo) == "" || in.ClienteID == "" {
		return fmt.Errorf("%w: tipo e cliente são obrigatórios", domain.ErrInvalidInput)
	}
	if !in.ValorTotal.IsPositive() {
		return fmt.Errorf("%w: valor total deve ser maior que zero", domain.ErrInvalidInput)
	}
	if in.ValorEntrada.IsNegative() || in.ValorEntrada.GreaterThan(in.ValorTotal) {
		return fmt.Errorf("%w: entrada deve estar entre zero e o valor total", domain.ErrInvalidInput)
	}
	if in.Parcelas < 0 {
		return fmt.Errorf("%w: número de parcelas inválido", domain.ErrInvalidInput)
	}
	saldo := in.ValorTotal.Round(2).Sub(in.ValorEntrada.Round(2))
	if saldo.IsPositive() && in.Parcelas < 1 {
		return fmt.Errorf("%w: informe as parcelas do saldo", domain.ErrInvalidInput)
	}
	if saldo.IsPositive() && saldo.Shift(2).IntPart() < int64(in.Parcelas) {
		return fmt.Errorf("%w: cada parcela deve ser de pelo menos R$ 0,01", domain.ErrInvalidInput)
	}
	return nil
}
