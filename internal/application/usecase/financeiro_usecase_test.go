package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/limpcred/limpcred-api/internal/application/dto"
	"github.com/limpcred/limpcred-api/internal/application/session"
	"github.com/limpcred/limpcred-api/internal/application/usecase"
	"github.com/limpcred/limpcred-api/internal/domain"
	"github.com/limpcred/limpcred-api/internal/domain/entity"
)

type financeiroFixture struct {
	db         *memFinanceiro
	uc         *usecase.FinanceiroUseCase
	financeiro session.Session
}

func newFinanceiroFixture() *financeiroFixture {
	db := newMemFinanceiro()
	return &financeiroFixture{
		db:         db,
		uc:         usecase.NewFinanceiroUseCase(financeiroTx{db}, memCentros{db}, memReceitas{db}, memDespesas{db}),
		financeiro: session.New(uuid.New().String(), uuid.New().String(), entity.RoleFinanceiro, nil),
	}
}

func (fx *financeiroFixture) centro(t *testing.T, nome, tipo string, parent *string) dto.CentroCustoResponse {
	t.Helper()
	out, err := fx.uc.CreateCentro(context.Background(), fx.financeiro, dto.CreateCentroCustoRequest{Nome: nome, Tipo: tipo, ParentID: parent})
	require.NoError(t, err)
	return *out
}

func TestFinanceiro_CentroComPaiDeUmNivel(t *testing.T) {
	fx := newFinanceiroFixture()
	raiz := fx.centro(t, "Operacional", "despesa", nil)
	filho := fx.centro(t, "Aluguel", "despesa", &raiz.ID)
	assert.Equal(t, raiz.ID, *filho.ParentID)

	_, err := fx.uc.CreateCentro(context.Background(), fx.financeiro, dto.CreateCentroCustoRequest{Nome: "Neto", Tipo: "despesa", ParentID: &filho.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "aninhamento de um nível só")

	_, err = fx.uc.CreateCentro(context.Background(), fx.financeiro, dto.CreateCentroCustoRequest{Nome: "Vendas", Tipo: "receita", ParentID: &raiz.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "pai de outro tipo")

	_, err = fx.uc.CreateCentro(context.Background(), fx.financeiro, dto.CreateCentroCustoRequest{Nome: "X", Tipo: "outro"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFinanceiro_ReceitaManualSomaOrcamento(t *testing.T) {
	fx := newFinanceiroFixture()
	centro := fx.centro(t, "Consultoria", "receita", nil)

	out, err := fx.uc.CreateReceita(context.Background(), fx.financeiro, dto.CreateLancamentoRequest{
		Descricao:     "Consultoria avulsa",
		Valor:         decimal.RequireFromString("150.005"),
		CentroCustoID: centro.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "150.01", out.Valor.StringFixed(2))
	assert.Equal(t, entity.LancamentoConfirmado, out.Status)
	assert.Equal(t, "150.01", fx.db.centros[centro.ID].Orcamento.StringFixed(2))
}

func TestFinanceiro_ReceitaDesfeitaQuandoOrcamentoFalha(t *testing.T) {
	fx := newFinanceiroFixture()
	centro := fx.centro(t, "Consultoria", "receita", nil)
	fx.db.failIncrement = true

	_, err := fx.uc.CreateReceita(context.Background(), fx.financeiro, dto.CreateLancamentoRequest{
		Descricao: "Consultoria", Valor: decimal.NewFromInt(100), CentroCustoID: centro.ID,
	})
	assert.ErrorIs(t, err, errInjected)
	assert.Empty(t, fx.db.receitas)
}

func TestFinanceiro_LancamentoValidaCentroEValor(t *testing.T) {
	fx := newFinanceiroFixture()
	receita := fx.centro(t, "Vendas", "receita", nil)
	despesa := fx.centro(t, "Aluguel", "despesa", nil)

	_, err := fx.uc.CreateReceita(context.Background(), fx.financeiro, dto.CreateLancamentoRequest{Descricao: "x", Valor: decimal.NewFromInt(10), CentroCustoID: despesa.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = fx.uc.CreateDespesa(context.Background(), fx.financeiro, dto.CreateLancamentoRequest{Descricao: "x", Valor: decimal.NewFromInt(10), CentroCustoID: receita.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = fx.uc.CreateDespesa(context.Background(), fx.financeiro, dto.CreateLancamentoRequest{Descricao: "x", Valor: decimal.Zero, CentroCustoID: despesa.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = fx.uc.CreateDespesa(context.Background(), fx.financeiro, dto.CreateLancamentoRequest{Descricao: "x", Valor: decimal.NewFromInt(10), CentroCustoID: uuid.New().String()})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFinanceiro_DespesaListaPorPeriodoEExclui(t *testing.T) {
	fx := newFinanceiroFixture()
	centro := fx.centro(t, "Aluguel", "despesa", nil)
	marco := time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC)
	abril := time.Date(2026, time.April, 5, 0, 0, 0, 0, time.UTC)

	d1, err := fx.uc.CreateDespesa(context.Background(), fx.financeiro, dto.CreateLancamentoRequest{Descricao: "Aluguel março", Valor: decimal.NewFromInt(1000), Data: &marco, CentroCustoID: centro.ID})
	require.NoError(t, err)
	_, err = fx.uc.CreateDespesa(context.Background(), fx.financeiro, dto.CreateLancamentoRequest{Descricao: "Aluguel abril", Valor: decimal.NewFromInt(1000), Data: &abril, CentroCustoID: centro.ID})
	require.NoError(t, err)

	de := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	ate := time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)
	list, err := fx.uc.ListDespesas(context.Background(), fx.financeiro, dto.LancamentoFilter{De: &de, Ate: &ate})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Aluguel março", list[0].Descricao)

	outra := session.New(uuid.New().String(), uuid.New().String(), entity.RoleFinanceiro, nil)
	assert.ErrorIs(t, fx.uc.DeleteDespesa(context.Background(), outra, d1.ID), domain.ErrNotFound)
	require.NoError(t, fx.uc.DeleteDespesa(context.Background(), fx.financeiro, d1.ID))
	assert.Len(t, fx.db.despesas, 1)
}

func TestFinanceiro_VendedorSemAcesso(t *testing.T) {
	fx := newFinanceiroFixture()
	vendedor := session.New(uuid.New().String(), fx.financeiro.EmpresaID, entity.RoleVendedor, nil)

	_, err := fx.uc.ListCentros(context.Background(), vendedor)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = fx.uc.ListReceitas(context.Background(), vendedor, dto.LancamentoFilter{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestFinanceiro_UpdateCentro(t *testing.T) {
	fx := newFinanceiroFixture()
	centro := fx.centro(t, "Marketing", "despesa", nil)
	orc := decimal.RequireFromString("2500")

	out, err := fx.uc.UpdateCentro(context.Background(), fx.financeiro, centro.ID, dto.UpdateCentroCustoRequest{Orcamento: &orc, Status: entity.StatusInativo})
	require.NoError(t, err)
	assert.Equal(t, "Marketing", out.Nome)
	assert.True(t, out.Orcamento.Equal(orc))
	assert.Equal(t, entity.StatusInativo, out.Status)

	neg := decimal.NewFromInt(-1)
	_, err = fx.uc.UpdateCentro(context.Background(), fx.financeiro, centro.ID, dto.UpdateCentroCustoRequest{Orcamento: &neg})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFinanceiro_OrcamentoDeReceitaSoPorLancamentos(t *testing.T) {
	fx := newFinanceiroFixture()
	ctx := context.Background()

	_, err := fx.uc.CreateCentro(ctx, fx.financeiro, dto.CreateCentroCustoRequest{
		Nome: "Vendas", Tipo: "receita", Orcamento: decimal.NewFromInt(1000),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "centro de receita não nasce com orçamento")

	centro := fx.centro(t, "Vendas", "receita", nil)
	assert.True(t, centro.Orcamento.IsZero())

	_, err = fx.uc.CreateReceita(ctx, fx.financeiro, dto.CreateLancamentoRequest{
		Descricao: "Consultoria", Valor: decimal.RequireFromString("300.00"), CentroCustoID: centro.ID,
	})
	require.NoError(t, err)

	orc := decimal.RequireFromString("99999")
	_, err = fx.uc.UpdateCentro(ctx, fx.financeiro, centro.ID, dto.UpdateCentroCustoRequest{Orcamento: &orc})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err := fx.uc.UpdateCentro(ctx, fx.financeiro, centro.ID, dto.UpdateCentroCustoRequest{Nome: "Vendas Diretas"})
	require.NoError(t, err)
	assert.Equal(t, "Vendas Diretas", out.Nome)
	assert.Equal(t, "300.00", out.Orcamento.StringFixed(2))
	assert.Equal(t, "300.00", fx.db.centros[centro.ID].Orcamento.StringFixed(2))
}
