package usecase_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/limpcred/limpcred-api/internal/application/dto"
	"github.com/limpcred/limpcred-api/internal/application/session"
	"github.com/limpcred/limpcred-api/internal/application/usecase"
	"github.com/limpcred/limpcred-api/internal/domain"
	"github.com/limpcred/limpcred-api/internal/domain/entity"
)

type cadastroFixture struct {
	empresas *memEmpresas
	usuarios *memUsuarios
	tx       *cadastroTx
	admin    session.Session
}

func newCadastroFixture() *cadastroFixture {
	empresas, usuarios := newMemEmpresas(), newMemUsuarios()
	empresaID, adminID := uuid.New().String(), uuid.New().String()
	empresas.empresas[empresaID] = entity.Empresa{ID: empresaID, RazaoSocial: "Limp Cred LTDA", CNPJ: "11222333000181", Status: entity.StatusAtivo}
	empresas.admins[adminID] = map[string]bool{empresaID: true}
	usuarios.usuarios[adminID] = entity.Usuario{ID: adminID, EmpresaID: empresaID, Email: "admin@limpcred.com", Tipo: entity.RoleAdmin, Status: entity.StatusAtivo}
	return &cadastroFixture{
		empresas: empresas,
		usuarios: usuarios,
		tx:       &cadastroTx{empresas: empresas, usuarios: usuarios},
		admin:    session.New(adminID, empresaID, entity.RoleAdmin, nil),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Empresas
// ──────────────────────────────────────────────────────────────────────────────

func TestEmpresa_CreateVinculaAoAdmin(t *testing.T) {
	fx := newCadastroFixture()
	uc := usecase.NewEmpresaUseCase(fx.tx, fx.empresas)

	out, err := uc.Create(context.Background(), fx.admin, dto.CreateEmpresaRequest{
		RazaoSocial: "  Nova Empresa LTDA ",
		CNPJ:        "98.765.432/0001-10",
	})
	require.NoError(t, err)
	assert.Equal(t, "98765432000110", out.CNPJ)
	assert.Equal(t, "Nova Empresa LTDA", out.RazaoSocial)
	assert.Equal(t, entity.StatusAtivo, out.Status)
	assert.Equal(t, 1, fx.tx.calls)

	ok, _ := fx.empresas.IsAdminOf(context.Background(), fx.admin.UserID, out.ID)
	assert.True(t, ok, "quem cadastra a empresa passa a poder selecioná-la")

	list, err := uc.List(context.Background(), fx.admin)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestEmpresa_CreateCNPJDuplicado(t *testing.T) {
	fx := newCadastroFixture()
	uc := usecase.NewEmpresaUseCase(fx.tx, fx.empresas)

	_, err := uc.Create(context.Background(), fx.admin, dto.CreateEmpresaRequest{RazaoSocial: "Outra", CNPJ: "11222333000181"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestEmpresa_VendedorNaoGerencia(t *testing.T) {
	fx := newCadastroFixture()
	uc := usecase.NewEmpresaUseCase(fx.tx, fx.empresas)
	vendedor := session.New(uuid.New().String(), fx.admin.EmpresaID, entity.RoleVendedor, nil)

	_, err := uc.Create(context.Background(), vendedor, dto.CreateEmpresaRequest{RazaoSocial: "X", CNPJ: "98765432000110"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.List(context.Background(), vendedor)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestEmpresa_GetEUpdateSoDasEmpresasDoAdmin(t *testing.T) {
	fx := newCadastroFixture()
	uc := usecase.NewEmpresaUseCase(fx.tx, fx.empresas)
	alheia := uuid.New().String()
	fx.empresas.empresas[alheia] = entity.Empresa{ID: alheia, RazaoSocial: "Alheia", CNPJ: "00000000000191"}

	_, err := uc.GetByID(context.Background(), fx.admin, alheia)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	out, err := uc.Update(context.Background(), fx.admin, fx.admin.EmpresaID, dto.UpdateEmpresaRequest{
		NomeFantasia: "LimpCred",
		Status:       entity.StatusInativo,
	})
	require.NoError(t, err)
	assert.Equal(t, "LimpCred", out.NomeFantasia)
	assert.Equal(t, "Limp Cred LTDA", out.RazaoSocial, "campos vazios não alteram")
	assert.Equal(t, entity.StatusInativo, out.Status)
}

func TestEmpresa_AddAdminExigeUsuarioAdmin(t *testing.T) {
	fx := newCadastroFixture()
	uc := usecase.NewEmpresaUseCase(fx.tx, fx.empresas)
	outroAdmin, vendedor := uuid.New().String(), uuid.New().String()
	fx.usuarios.usuarios[outroAdmin] = entity.Usuario{ID: outroAdmin, Tipo: entity.RoleAdmin}
	fx.usuarios.usuarios[vendedor] = entity.Usuario{ID: vendedor, Tipo: entity.RoleVendedor}

	require.NoError(t, uc.AddAdmin(context.Background(), fx.admin, fx.admin.EmpresaID, dto.AddAdminRequest{AdminID: outroAdmin}))
	ok, _ := fx.empresas.IsAdminOf(context.Background(), outroAdmin, fx.admin.EmpresaID)
	assert.True(t, ok)

	err := uc.AddAdmin(context.Background(), fx.admin, fx.admin.EmpresaID, dto.AddAdminRequest{AdminID: vendedor})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = uc.AddAdmin(context.Background(), fx.admin, fx.admin.EmpresaID, dto.AddAdminRequest{AdminID: uuid.New().String()})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Usuários
// ──────────────────────────────────────────────────────────────────────────────

func TestUsuario_CreateComSenhaEPermissoes(t *testing.T) {
	fx := newCadastroFixture()
	uc := usecase.NewUsuarioUseCase(fx.usuarios)

	out, err := uc.Create(context.Background(), fx.admin, dto.CreateUsuarioRequest{
		Nome:       "João Vendedor",
		Email:      " Joao@LimpCred.com ",
		Password:   "segredo123",
		Tipo:       "vendedor",
		Permissoes: []string{"dashboard:ver", "dashboard:ver"},
	})
	require.NoError(t, err)
	assert.Equal(t, "joao@limpcred.com", out.Email)
	assert.Equal(t, fx.admin.EmpresaID, out.EmpresaID)
	assert.Equal(t, []string{"dashboard:ver"}, out.Permissoes)

	stored := fx.usuarios.usuarios[out.ID]
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("segredo123")))
}

func TestUsuario_CreateRejeitaEntradasInvalidas(t *testing.T) {
	fx := newCadastroFixture()
	uc := usecase.NewUsuarioUseCase(fx.usuarios)

	_, err := uc.Create(context.Background(), fx.admin, dto.CreateUsuarioRequest{Nome: "X", Email: "x@x.com", Tipo: "gerente"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(context.Background(), fx.admin, dto.CreateUsuarioRequest{Nome: "X", Email: "x@x.com", Tipo: "vendedor", Permissoes: []string{"tudo"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(context.Background(), fx.admin, dto.CreateUsuarioRequest{Nome: "X", Email: "ADMIN@limpcred.com", Tipo: "vendedor"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestUsuario_UpdateMantemSenhaQuandoVazia(t *testing.T) {
	fx := newCadastroFixture()
	uc := usecase.NewUsuarioUseCase(fx.usuarios)
	created, err := uc.Create(context.Background(), fx.admin, dto.CreateUsuarioRequest{
		Nome: "Ana", Email: "ana@limpcred.com", Password: "segredo123", Tipo: "vendedor",
	})
	require.NoError(t, err)

	out, err := uc.Update(context.Background(), fx.admin, created.ID, dto.UpdateUsuarioRequest{Tipo: "financeiro"})
	require.NoError(t, err)
	assert.Equal(t, "financeiro", out.Tipo)
	stored := fx.usuarios.usuarios[created.ID]
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("segredo123")))

	_, err = uc.Update(context.Background(), fx.admin, created.ID, dto.UpdateUsuarioRequest{Password: "novasenha1"})
	require.NoError(t, err)
	stored = fx.usuarios.usuarios[created.ID]
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("novasenha1")))
}

func TestUsuario_AdminNaoInativaASiMesmo(t *testing.T) {
	fx := newCadastroFixture()
	uc := usecase.NewUsuarioUseCase(fx.usuarios)

	_, err := uc.Update(context.Background(), fx.admin, fx.admin.UserID, dto.UpdateUsuarioRequest{Status: entity.StatusInativo})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUsuario_OutraEmpresaNaoEncontrado(t *testing.T) {
	fx := newCadastroFixture()
	uc := usecase.NewUsuarioUseCase(fx.usuarios)
	alheio := uuid.New().String()
	fx.usuarios.usuarios[alheio] = entity.Usuario{ID: alheio, EmpresaID: uuid.New().String(), Tipo: entity.RoleVendedor}

	_, err := uc.GetByID(context.Background(), fx.admin, alheio)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	list, err := uc.List(context.Background(), fx.admin, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
