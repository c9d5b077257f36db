package usecase_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/limpcred/limpcred-api/internal/application/dto"
	"github.com/limpcred/limpcred-api/internal/application/session"
	"github.com/limpcred/limpcred-api/internal/application/usecase"
	"github.com/limpcred/limpcred-api/internal/domain"
	"github.com/limpcred/limpcred-api/internal/domain/entity"
)

func TestFileExt(t *testing.T) {
	cases := map[string]string{
		"contrato.PDF":    ".pdf",
		"Foto.JPÉG":       ".jpeg",
		"  scan.png  ":    ".png",
		"sem-extensao":    "",
		"arquivo.tar.gz":  ".gz",
		"estranho.p d-f!": ".pdf",
	}
	for in, want := range cases {
		assert.Equal(t, want, usecase.FileExt(in), in)
	}
}

func TestDocumentKey(t *testing.T) {
	at := time.Unix(0, 1773568800000000000)
	key := usecase.DocumentKey("emp-1", "12345678900", usecase.DocContrato, at, ".pdf")
	assert.Equal(t, "empresas/emp-1/clientes/12345678900/contrato/1773568800000000000.pdf", key)
}

type documentoFixture struct {
	storage  *fakeStorage
	uc       *usecase.DocumentoUseCase
	vendedor session.Session
	cliente  entity.Cliente
}

func newDocumentoFixture() *documentoFixture {
	clientes := newMemClientes()
	vendedor := session.New(uuid.New().String(), uuid.New().String(), entity.RoleVendedor, nil)
	cliente := entity.Cliente{ID: uuid.New().String(), EmpresaID: vendedor.EmpresaID, VendedorID: vendedor.UserID, Nome: "Maria", Documento: "12345678900"}
	clientes.clientes[cliente.ID] = cliente
	storage := &fakeStorage{}
	return &documentoFixture{
		storage:  storage,
		uc:       usecase.NewDocumentoUseCase(usecase.NewClienteUseCase(clientes), storage),
		vendedor: vendedor,
		cliente:  cliente,
	}
}

func TestDocumento_UploadURL(t *testing.T) {
	fx := newDocumentoFixture()

	out, err := fx.uc.UploadURL(context.Background(), fx.vendedor, fx.cliente.ID, dto.UploadURLRequest{
		Tipo: usecase.DocRGCNH, NomeArquivo: "RG frente.JPG", ContentType: "image/jpeg",
	})
	require.NoError(t, err)
	prefix := "empresas/" + fx.vendedor.EmpresaID + "/clientes/12345678900/rg_cnh/"
	assert.True(t, strings.HasPrefix(out.Key, prefix), out.Key)
	assert.True(t, strings.HasSuffix(out.Key, ".jpg"), out.Key)
	assert.Equal(t, "https://s3.local/put/"+out.Key, out.URL)
	assert.True(t, out.ExpiresAt.After(time.Now()))
}

func TestDocumento_RejeitaTipoEExtensao(t *testing.T) {
	fx := newDocumentoFixture()

	_, err := fx.uc.UploadURL(context.Background(), fx.vendedor, fx.cliente.ID, dto.UploadURLRequest{Tipo: "selfie", NomeArquivo: "a.jpg"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = fx.uc.UploadURL(context.Background(), fx.vendedor, fx.cliente.ID, dto.UploadURLRequest{Tipo: usecase.DocContrato, NomeArquivo: "contrato.exe"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	outro := session.New(uuid.New().String(), fx.vendedor.EmpresaID, entity.RoleVendedor, nil)
	_, err = fx.uc.UploadURL(context.Background(), outro, fx.cliente.ID, dto.UploadURLRequest{Tipo: usecase.DocContrato, NomeArquivo: "c.pdf"})
	assert.ErrorIs(t, err, domain.ErrNotFound, "cliente de outro vendedor")
}

func TestDocumento_UploadDireto(t *testing.T) {
	fx := newDocumentoFixture()
	body := strings.NewReader("%PDF-1.4 conteudo")

	out, err := fx.uc.Upload(context.Background(), fx.vendedor, fx.cliente.ID, usecase.DocComprovante, "comprovante.pdf", "application/pdf", body, body.Size())
	require.NoError(t, err)
	assert.Equal(t, int64(17), fx.storage.uploaded[out.Key])

	_, err = fx.uc.Upload(context.Background(), fx.vendedor, fx.cliente.ID, usecase.DocComprovante, "grande.pdf", "application/pdf", strings.NewReader(""), usecase.MaxUploadSize+1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDocumento_DownloadSoDaPropriaEmpresa(t *testing.T) {
	fx := newDocumentoFixture()

	ok := "empresas/" + fx.vendedor.EmpresaID + "/clientes/12345678900/contrato/1.pdf"
	out, err := fx.uc.DownloadURL(context.Background(), fx.vendedor, ok)
	require.NoError(t, err)
	assert.Equal(t, "https://s3.local/get/"+ok, out.URL)

	_, err = fx.uc.DownloadURL(context.Background(), fx.vendedor, "empresas/outra/clientes/1/contrato/1.pdf")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = fx.uc.DownloadURL(context.Background(), fx.vendedor, "empresas/"+fx.vendedor.EmpresaID+"/../outra/x.pdf")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumento_SemStorageIndisponivel(t *testing.T) {
	fx := newDocumentoFixture()
	uc := usecase.NewDocumentoUseCase(usecase.NewClienteUseCase(newMemClientes()), nil)

	_, err := uc.UploadURL(context.Background(), fx.vendedor, fx.cliente.ID, dto.UploadURLRequest{Tipo: usecase.DocContrato, NomeArquivo: "c.pdf"})
	assert.ErrorIs(t, err, domain.ErrUnavailable)

	_, err = uc.DownloadURL(context.Background(), fx.vendedor, "empresas/"+fx.vendedor.EmpresaID+"/x.pdf")
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}
