package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/limpcred/limpcred-api/internal/application/billing"
	"github.com/limpcred/limpcred-api/internal/application/dto"
	"github.com/limpcred/limpcred-api/internal/application/session"
	"github.com/limpcred/limpcred-api/internal/domain"
	"github.com/limpcred/limpcred-api/internal/domain/entity"
	"github.com/limpcred/limpcred-api/internal/domain/repository"
)

// FinanceiroUseCase centros de custo e lançamentos manuais de receitas e despesas.
type FinanceiroUseCase struct {
	tx       billing.TxRunner
	centros  repository.CentroCustoRepository
	receitas repository.ReceitaRepository
	despesas repository.DespesaRepository
	now      func() time.Time
}

// NewFinanceiroUseCase constrói o caso de uso.
func NewFinanceiroUseCase(
	tx billing.TxRunner,
	centros repository.CentroCustoRepository,
	receitas repository.ReceitaRepository,
	despesas repository.DespesaRepository,
) *FinanceiroUseCase {
	return &FinanceiroUseCase{tx: tx, centros: centros, receitas: receitas, despesas: despesas, now: time.Now}
}

// CreateCentro cadastra um centro de custo. O pai deve ser raiz, da mesma empresa e do mesmo tipo.
// Centro de receita nasce com orçamento zero: o valor é a soma das receitas atribuídas a ele.
func (uc *FinanceiroUseCase) CreateCentro(ctx context.Context, sess session.Session, in dto.CreateCentroCustoRequest) (*dto.CentroCustoResponse, error) {
	if err := sess.Require(entity.CapFinanceiroGerenciar); err != nil {
		return nil, err
	}
	tipo := entity.TipoCentro(in.Tipo)
	if tipo != entity.TipoReceita && tipo != entity.TipoDespesa {
		return nil, fmt.Errorf("%w: tipo de centro desconhecido", domain.ErrInvalidInput)
	}
	if in.Orcamento.IsNegative() {
		return nil, fmt.Errorf("%w: orçamento negativo", domain.ErrInvalidInput)
	}
	if tipo == entity.TipoReceita && !in.Orcamento.IsZero() {
		return nil, errOrcamentoReceita
	}
	if in.ParentID != nil {
		parent, err := uc.loadCentro(ctx, sess, *in.ParentID)
		if err != nil {
			return nil, err
		}
		if parent.ParentID != nil || parent.Tipo != tipo {
			return nil, fmt.Errorf("%w: centro pai inválido", domain.ErrInvalidInput)
		}
	}
	now := uc.now()
	c := &entity.CentroCusto{
		ID:        uuid.New().String(),
		EmpresaID: sess.EmpresaID,
		UsuarioID: sess.UserID,
		Nome:      strings.TrimSpace(in.Nome),
		Tipo:      tipo,
		ParentID:  in.ParentID,
		Orcamento: in.Orcamento.Round(2),
		Status:    entity.StatusAtivo,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.centros.Create(ctx, c); err != nil {
		return nil, err
	}
	out := dto.FromCentroCusto(c)
	return &out, nil
}

// ListCentros lista os centros de custo da empresa.
func (uc *FinanceiroUseCase) ListCentros(ctx context.Context, sess session.Session) ([]dto.CentroCustoResponse, error) {
	if err := sess.Require(entity.CapFinanceiroGerenciar); err != nil {
		return nil, err
	}
	list, err := uc.centros.ListByEmpresa(ctx, sess.EmpresaID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CentroCustoResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.FromCentroCusto(c))
	}
	return out, nil
}

var errOrcamentoReceita = fmt.Errorf("%w: orçamento de centro de receita vem das receitas lançadas", domain.ErrInvalidInput)

// UpdateCentro altera nome, status e, em centros de despesa, o orçamento.
func (uc *FinanceiroUseCase) UpdateCentro(ctx context.Context, sess session.Session, id string, in dto.UpdateCentroCustoRequest) (*dto.CentroCustoResponse, error) {
	if err := sess.Require(entity.CapFinanceiroGerenciar); err != nil {
		return nil, err
	}
	c, err := uc.loadCentro(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	if v := strings.TrimSpace(in.Nome); v != "" {
		c.Nome = v
	}
	if in.Orcamento != nil {
		if c.Tipo == entity.TipoReceita {
			return nil, errOrcamentoReceita
		}
		if in.Orcamento.IsNegative() {
			return nil, fmt.Errorf("%w: orçamento negativo", domain.ErrInvalidInput)
		}
		c.Orcamento = in.Orcamento.Round(2)
	}
	if in.Status != "" {
		c.Status = in.Status
	}
	c.UpdatedAt = uc.now()
	if err := uc.centros.Update(ctx, c); err != nil {
		return nil, err
	}
	out := dto.FromCentroCusto(c)
	return &out, nil
}

// CreateReceita lança uma receita manual e soma o valor ao orçamento do centro, na mesma transação.
func (uc *FinanceiroUseCase) CreateReceita(ctx context.Context, sess session.Session, in dto.CreateLancamentoRequest) (*dto.ReceitaResponse, error) {
	if err := sess.Require(entity.CapFinanceiroGerenciar); err != nil {
		return nil, err
	}
	valor, err := positiveAmount(in.Valor)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	r := &entity.Receita{
		ID:            uuid.New().String(),
		EmpresaID:     sess.EmpresaID,
		UsuarioID:     sess.UserID,
		CentroCustoID: in.CentroCustoID,
		Descricao:     strings.TrimSpace(in.Descricao),
		Valor:         valor,
		Data:          dateOr(in.Data, now),
		Status:        statusOr(in.Status),
		CreatedAt:     now,
	}
	err = uc.tx.RunBilling(ctx, func(repos billing.Repos) error {
		c, err := repos.CentrosCusto.GetByID(ctx, in.CentroCustoID)
		if err != nil {
			return err
		}
		if c == nil || c.EmpresaID != sess.EmpresaID {
			return domain.ErrNotFound
		}
		if c.Tipo != entity.TipoReceita {
			return fmt.Errorf("%w: centro de custo não é de receita", domain.ErrInvalidInput)
		}
		if err := repos.Receitas.Create(ctx, r); err != nil {
			return err
		}
		return repos.CentrosCusto.IncrementOrcamento(ctx, c.ID, valor)
	})
	if err != nil {
		return nil, err
	}
	out := dto.FromReceita(r)
	return &out, nil
}

// ListReceitas lista receitas da empresa no período.
func (uc *FinanceiroUseCase) ListReceitas(ctx context.Context, sess session.Session, f dto.LancamentoFilter) ([]dto.ReceitaResponse, error) {
	if err := sess.Require(entity.CapFinanceiroGerenciar); err != nil {
		return nil, err
	}
	list, err := uc.receitas.List(ctx, lancamentoFilter(sess, f))
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReceitaResponse, 0, len(list))
	for _, r := range list {
		out = append(out, dto.FromReceita(r))
	}
	return out, nil
}

// CreateDespesa lança uma despesa num centro de despesa da empresa.
func (uc *FinanceiroUseCase) CreateDespesa(ctx context.Context, sess session.Session, in dto.CreateLancamentoRequest) (*dto.DespesaResponse, error) {
	if err := sess.Require(entity.CapFinanceiroGerenciar); err != nil {
		return nil, err
	}
	valor, err := positiveAmount(in.Valor)
	if err != nil {
		return nil, err
	}
	c, err := uc.loadCentro(ctx, sess, in.CentroCustoID)
	if err != nil {
		return nil, err
	}
	if c.Tipo != entity.TipoDespesa {
		return nil, fmt.Errorf("%w: centro de custo não é de despesa", domain.ErrInvalidInput)
	}
	now := uc.now()
	d := &entity.Despesa{
		ID:            uuid.New().String(),
		EmpresaID:     sess.EmpresaID,
		UsuarioID:     sess.UserID,
		CentroCustoID: c.ID,
		Descricao:     strings.TrimSpace(in.Descricao),
		Valor:         valor,
		Data:          dateOr(in.Data, now),
		Status:        statusOr(in.Status),
		CreatedAt:     now,
	}
	if err := uc.despesas.Create(ctx, d); err != nil {
		return nil, err
	}
	out := dto.FromDespesa(d)
	return &out, nil
}

// ListDespesas lista despesas da empresa no período.
func (uc *FinanceiroUseCase) ListDespesas(ctx context.Context, sess session.Session, f dto.LancamentoFilter) ([]dto.DespesaResponse, error) {
	if err := sess.Require(entity.CapFinanceiroGerenciar); err != nil {
		return nil, err
	}
	list, err := uc.despesas.List(ctx, lancamentoFilter(sess, f))
	if err != nil {
		return nil, err
	}
	out := make([]dto.DespesaResponse, 0, len(list))
	for _, d := range list {
		out = append(out, dto.FromDespesa(d))
	}
	return out, nil
}

// DeleteDespesa remove uma despesa da empresa.
func (uc *FinanceiroUseCase) DeleteDespesa(ctx context.Context, sess session.Session, id string) error {
	if err := sess.Require(entity.CapFinanceiroGerenciar); err != nil {
		return err
	}
	d, err := uc.despesas.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if d == nil || d.EmpresaID != sess.EmpresaID {
		return domain.ErrNotFound
	}
	return uc.despesas.Delete(ctx, id)
}

func (uc *FinanceiroUseCase) loadCentro(ctx context.Context, sess session.Session, id string) (*entity.CentroCusto, error) {
	c, err := uc.centros.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil || c.EmpresaID != sess.EmpresaID {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func lancamentoFilter(sess session.Session, f dto.LancamentoFilter) repository.ListFilter {
	f.Page.DefaultPage()
	return repository.ListFilter{
		EmpresaID: sess.EmpresaID,
		Status:    f.Status,
		Search:    strings.TrimSpace(f.Search),
		From:      f.De,
		To:        f.Ate,
		Limit:     f.Page.Limit,
		Offset:    f.Page.Offset,
	}
}

func positiveAmount(v decimal.Decimal) (decimal.Decimal, error) {
	v = v.Round(2)
	if !v.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: valor deve ser maior que zero", domain.ErrInvalidInput)
	}
	return v, nil
}

func dateOr(t *time.Time, def time.Time) time.Time {
	if t == nil || t.IsZero() {
		return def
	}
	return *t
}

func statusOr(s string) string {
	if s == "" {
		return entity.LancamentoConfirmado
	}
	return s
}
