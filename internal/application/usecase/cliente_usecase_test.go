package usecase_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/limpcred/limpcred-api/internal/application/dto"
	"github.com/limpcred/limpcred-api/internal/application/session"
	"github.com/limpcred/limpcred-api/internal/application/usecase"
	"github.com/limpcred/limpcred-api/internal/domain"
	"github.com/limpcred/limpcred-api/internal/domain/entity"
)

func TestCliente_CreateNormalizaDocumento(t *testing.T) {
	repo := newMemClientes()
	uc := usecase.NewClienteUseCase(repo)
	vendedor := session.New(uuid.New().String(), uuid.New().String(), entity.RoleVendedor, nil)

	out, err := uc.Create(context.Background(), vendedor, dto.CreateClienteRequest{
		Nome:      "Maria Souza",
		Documento: "123.456.789-00",
		Email:     "Maria@Email.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "12345678900", out.Documento)
	assert.Equal(t, vendedor.UserID, out.VendedorID)
	assert.Equal(t, vendedor.EmpresaID, out.EmpresaID)
	assert.Equal(t, "maria@email.com", out.Email)

	_, err = uc.Create(context.Background(), vendedor, dto.CreateClienteRequest{Nome: "Outra", Documento: "12345678900"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(context.Background(), vendedor, dto.CreateClienteRequest{Nome: "Curto", Documento: "123"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCliente_VendedorSoVeCarteiraPropria(t *testing.T) {
	repo := newMemClientes()
	uc := usecase.NewClienteUseCase(repo)
	empresaID := uuid.New().String()
	ana := session.New(uuid.New().String(), empresaID, entity.RoleVendedor, nil)
	beto := session.New(uuid.New().String(), empresaID, entity.RoleVendedor, nil)
	financeiro := session.New(uuid.New().String(), empresaID, entity.RoleFinanceiro, nil)

	c1, err := uc.Create(context.Background(), ana, dto.CreateClienteRequest{Nome: "Cliente Ana", Documento: "11111111111"})
	require.NoError(t, err)
	_, err = uc.Create(context.Background(), beto, dto.CreateClienteRequest{Nome: "Cliente Beto", Documento: "22222222222"})
	require.NoError(t, err)

	list, err := uc.List(context.Background(), ana, "", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Cliente Ana", list[0].Nome)

	_, err = uc.GetByID(context.Background(), beto, c1.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	all, err := uc.List(context.Background(), financeiro, "", dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// financeiro consulta, mas não altera
	_, err = uc.Update(context.Background(), financeiro, c1.ID, dto.UpdateClienteRequest{Nome: "X"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCliente_UpdateParcial(t *testing.T) {
	repo := newMemClientes()
	uc := usecase.NewClienteUseCase(repo)
	vendedor := session.New(uuid.New().String(), uuid.New().String(), entity.RoleVendedor, nil)
	c, err := uc.Create(context.Background(), vendedor, dto.CreateClienteRequest{Nome: "Maria", Documento: "12345678900", Telefone: "1199999"})
	require.NoError(t, err)

	out, err := uc.Update(context.Background(), vendedor, c.ID, dto.UpdateClienteRequest{
		Nome:     "Maria Souza",
		Endereco: &dto.EnderecoDTO{CEP: "01001000", Cidade: "São Paulo", UF: "SP"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Maria Souza", out.Nome)
	assert.Equal(t, "1199999", out.Telefone)
	assert.Equal(t, "São Paulo", out.Endereco.Cidade)
	assert.Equal(t, "12345678900", out.Documento)
}
