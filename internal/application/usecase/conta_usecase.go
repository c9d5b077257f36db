package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/limpcred/limpcred-api/internal/application/dto"
	"github.com/limpcred/limpcred-api/internal/application/session"
	"github.com/limpcred/limpcred-api/internal/domain"
	"github.com/limpcred/limpcred-api/internal/domain/entity"
	"github.com/limpcred/limpcred-api/internal/domain/repository"
)

// ContaUseCase contas bancárias e cartões de crédito (saldos e limites informados manualmente).
type ContaUseCase struct {
	contas  repository.ContaBancariaRepository
	cartoes repository.CartaoCreditoRepository
	now     func() time.Time
}

// NewContaUseCase constrói o caso de uso.
func NewContaUseCase(contas repository.ContaBancariaRepository, cartoes repository.CartaoCreditoRepository) *ContaUseCase {
	return &ContaUseCase{contas: contas, cartoes: cartoes, now: time.Now}
}

// CreateConta cadastra uma conta bancária.
func (uc *ContaUseCase) CreateConta(ctx context.Context, sess session.Session, in dto.ContaBancariaRequest) (*dto.ContaBancariaResponse, error) {
	if err := sess.Require(entity.CapFinanceiroGerenciar); err != nil {
		return nil, err
	}
	now := uc.now()
	c := &entity.ContaBancaria{
		ID:        uuid.New().String(),
		EmpresaID: sess.EmpresaID,
		UsuarioID: sess.UserID,
		CreatedAt: now,
	}
	applyConta(c, in, now)
	if err := uc.contas.Create(ctx, c); err != nil {
		return nil, err
	}
	out := dto.FromContaBancaria(c)
	return &out, nil
}

// ListContas lista as contas da empresa.
func (uc *ContaUseCase) ListContas(ctx context.Context, sess session.Session) ([]dto.ContaBancariaResponse, error) {
	if err := sess.Require(entity.CapFinanceiroGerenciar); err != nil {
		return nil, err
	}
	list, err := uc.contas.ListByEmpresa(ctx, sess.EmpresaID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ContaBancariaResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.FromContaBancaria(c))
	}
	return out, nil
}

// UpdateConta substitui os dados da conta.
func (uc *ContaUseCase) UpdateConta(ctx context.Context, sess session.Session, id string, in dto.ContaBancariaRequest) (*dto.ContaBancariaResponse, error) {
	c, err := uc.loadConta(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	applyConta(c, in, uc.now())
	if err := uc.contas.Update(ctx, c); err != nil {
		return nil, err
	}
	out := dto.FromContaBancaria(c)
	return &out, nil
}

// DeleteConta remove a conta.
func (uc *ContaUseCase) DeleteConta(ctx context.Context, sess session.Session, id string) error {
	if _, err := uc.loadConta(ctx, sess, id); err != nil {
		return err
	}
	return uc.contas.Delete(ctx, id)
}

// CreateCartao cadastra um cartão de crédito.
func (uc *ContaUseCase) CreateCartao(ctx context.Context, sess session.Session, in dto.CartaoCreditoRequest) (*dto.CartaoCreditoResponse, error) {
	if err := sess.Require(entity.CapFinanceiroGerenciar); err != nil {
		return nil, err
	}
	now := uc.now()
	c := &entity.CartaoCredito{
		ID:        uuid.New().String(),
		EmpresaID: sess.EmpresaID,
		UsuarioID: sess.UserID,
		CreatedAt: now,
	}
	if err := applyCartao(c, in, now); err != nil {
		return nil, err
	}
	if err := uc.cartoes.Create(ctx, c); err != nil {
		return nil, err
	}
	out := dto.FromCartaoCredito(c)
	return &out, nil
}

// ListCartoes lista os cartões da empresa.
func (uc *ContaUseCase) ListCartoes(ctx context.Context, sess session.Session) ([]dto.CartaoCreditoResponse, error) {
	if err := sess.Require(entity.CapFinanceiroGerenciar); err != nil {
		return nil, err
	}
	list, err := uc.cartoes.ListByEmpresa(ctx, sess.EmpresaID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CartaoCreditoResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.FromCartaoCredito(c))
	}
	return out, nil
}

// UpdateCartao substitui os dados do cartão.
func (uc *ContaUseCase) UpdateCartao(ctx context.Context, sess session.Session, id string, in dto.CartaoCreditoRequest) (*dto.CartaoCreditoResponse, error) {
	c, err := uc.loadCartao(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	if err := applyCartao(c, in, uc.now()); err != nil {
		return nil, err
	}
	if err := uc.cartoes.Update(ctx, c); err != nil {
		return nil, err
	}
	out := dto.FromCartaoCredito(c)
	return &out, nil
}

// DeleteCartao remove o cartão.
func (uc *ContaUseCase) DeleteCartao(ctx context.Context, sess session.Session, id string) error {
	if _, err := uc.loadCartao(ctx, sess, id); err != nil {
		return err
	}
	return uc.cartoes.Delete(ctx, id)
}

func (uc *ContaUseCase) loadConta(ctx context.Context, sess session.Session, id string) (*entity.ContaBancaria, error) {
	if err := sess.Require(entity.CapFinanceiroGerenciar); err != nil {
		return nil, err
	}
	c, err := uc.contas.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil || c.EmpresaID != sess.EmpresaID {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func (uc *ContaUseCase) loadCartao(ctx context.Context, sess session.Session, id string) (*entity.CartaoCredito, error) {
	if err := sess.Require(entity.CapFinanceiroGerenciar); err != nil {
		return nil, err
	}
	c, err := uc.cartoes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil || c.EmpresaID != sess.EmpresaID {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func applyConta(c *entity.ContaBancaria, in dto.ContaBancariaRequest, now time.Time) {
	c.Banco = strings.TrimSpace(in.Banco)
	c.Agencia = strings.TrimSpace(in.Agencia)
	c.Conta = strings.TrimSpace(in.Conta)
	c.Tipo = in.Tipo
	c.Saldo = in.Saldo.Round(2)
	c.UpdatedAt = now
}

// limite disponível nunca passa do limite
func applyCartao(c *entity.CartaoCredito, in dto.CartaoCreditoRequest, now time.Time) error {
	limite, disponivel := in.Limite.Round(2), in.LimiteDisponivel.Round(2)
	if limite.IsNegative() || disponivel.IsNegative() || disponivel.GreaterThan(limite) {
		return fmt.Errorf("%w: limite inválido", domain.ErrInvalidInput)
	}
	if in.DiaVencimento < 1 || in.DiaVencimento > 31 {
		return fmt.Errorf("%w: dia de vencimento inválido", domain.ErrInvalidInput)
	}
	c.Nome = strings.TrimSpace(in.Nome)
	c.Bandeira = strings.TrimSpace(in.Bandeira)
	c.Final = in.Final
	c.Limite = limite
	c.LimiteDisponivel = disponivel
	c.DiaVencimento = in.DiaVencimento
	c.UpdatedAt = now
	return nil
}
