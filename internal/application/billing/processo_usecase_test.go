package billing_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/limpcred/limpcred-api/internal/application/billing"
	"github.com/limpcred/limpcred-api/internal/application/dto"
	"github.com/limpcred/limpcred-api/internal/application/session"
	"github.com/limpcred/limpcred-api/internal/domain"
	"github.com/limpcred/limpcred-api/internal/domain/entity"
)

func (fx *fixture) processoUC() *billing.ProcessoUseCase {
	return billing.NewProcessoUseCase(&memProcessos{fx.db}, &memFaturas{fx.db}, billing.WithClock(clock()))
}

func TestProcessoGet_WithFaturas(t *testing.T) {
	fx := newFixture()
	created := seedProcesso(t, fx)

	out, err := fx.processoUC().Get(context.Background(), fx.vendedor, created.Processo.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Processo.Numero, out.Processo.Numero)
	require.Len(t, out.Faturas, 5)
	assert.Equal(t, 1, out.Faturas[0].Parcela)

	other := session.New(uuid.New().String(), fx.empresaID, entity.RoleVendedor, nil)
	_, err = fx.processoUC().Get(context.Background(), other, created.Processo.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProcessoUpdateStatus(t *testing.T) {
	fx := newFixture()
	created := seedProcesso(t, fx)
	uc := fx.processoUC()
	ctx := context.Background()
	id := created.Processo.ID

	out, err := uc.UpdateStatus(ctx, fx.vendedor, id, dto.UpdateProcessoStatusRequest{Status: "enviado"})
	require.NoError(t, err)
	assert.Equal(t, "enviado", out.Status)

	_, err = uc.UpdateStatus(ctx, fx.vendedor, id, dto.UpdateProcessoStatusRequest{Status: "em_analise"})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = uc.UpdateStatus(ctx, fx.vendedor, id, dto.UpdateProcessoStatusRequest{Status: "arquivado"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.UpdateStatus(ctx, fx.admin, id, dto.UpdateProcessoStatusRequest{Status: "cancelado"})
	require.NoError(t, err)
	_, err = uc.UpdateStatus(ctx, fx.admin, id, dto.UpdateProcessoStatusRequest{Status: "concluido"})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestProcessoUpdateArquivos_RejectsForeignKeys(t *testing.T) {
	fx := newFixture()
	created := seedProcesso(t, fx)
	uc := fx.processoUC()
	ctx := context.Background()

	key := "empresas/" + fx.empresaID + "/clientes/12345678900/contrato/1.pdf"
	out, err := uc.UpdateArquivos(ctx, fx.vendedor, created.Processo.ID, dto.UpdateArquivosRequest{ContratoKey: key})
	require.NoError(t, err)
	assert.Equal(t, key, out.ContratoKey)

	_, err = uc.UpdateArquivos(ctx, fx.vendedor, created.Processo.ID, dto.UpdateArquivosRequest{ComprovanteKey: "empresas/outra/x.pdf"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

type stubCarne struct{ faturas int }

func (s *stubCarne) GenerateCarne(_ context.Context, _ *entity.Empresa, _ *entity.Processo, faturas []*entity.Fatura) ([]byte, error) {
	s.faturas = len(faturas)
	return []byte("%PDF-1.4"), nil
}

func TestCarneGenerate(t *testing.T) {
	fx := newFixture()
	created := seedProcesso(t, fx)
	gen := &stubCarne{}
	uc := billing.NewCarneUseCase(&memEmpresas{fx.db}, &memProcessos{fx.db}, &memFaturas{fx.db}, gen)

	pdf, name, err := uc.Generate(context.Background(), fx.vendedor, created.Processo.ID)
	require.NoError(t, err)
	assert.Equal(t, "carne-PROC-2026-0001.pdf", name)
	assert.NotEmpty(t, pdf)
	assert.Equal(t, 5, gen.faturas)

	_, _, err = uc.Generate(context.Background(), fx.vendedor, uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
