package usecase

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/limpcred/limpcred-api/internal/application/dto"
	"github.com/limpcred/limpcred-api/internal/application/ports"
	"github.com/limpcred/limpcred-api/internal/application/session"
	"github.com/limpcred/limpcred-api/internal/domain"
	"github.com/limpcred/limpcred-api/internal/domain/entity"
)

// Tipos de documento aceitos por cliente.
const (
	DocContrato            = "contrato"
	DocComprovante         = "comprovante"
	DocRGCNH               = "rg_cnh"
	DocComprovanteEndereco = "comprovante_endereco"
)

// MaxUploadSize limite do envio direto (multipart).
const MaxUploadSize int64 = 10 << 20

const presignTTL = 15 * time.Minute

var allowedExt = map[string]bool{".pdf": true, ".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".heic": true}

// DocumentoUseCase documentos de clientes no storage de objetos.
type DocumentoUseCase struct {
	clientes *ClienteUseCase
	storage  ports.ObjectStorage
	now      func() time.Time
}

// NewDocumentoUseCase constrói o caso de uso.
func NewDocumentoUseCase(clientes *ClienteUseCase, storage ports.ObjectStorage) *DocumentoUseCase {
	return &DocumentoUseCase{clientes: clientes, storage: storage, now: time.Now}
}

// UploadURL gera uma URL pré-assinada (PUT) para o documento do cliente.
func (uc *DocumentoUseCase) UploadURL(ctx context.Context, sess session.Session, clienteID string, in dto.UploadURLRequest) (*dto.UploadURLResponse, error) {
	key, err := uc.keyFor(ctx, sess, clienteID, in.Tipo, in.NomeArquivo)
	if err != nil {
		return nil, err
	}
	url, exp, err := uc.storage.GenerateUploadURL(ctx, key, in.ContentType, presignTTL)
	if err != nil {
		return nil, err
	}
	return &dto.UploadURLResponse{Key: key, URL: url, ExpiresAt: exp}, nil
}

// Upload envia o arquivo diretamente pela API.
func (uc *DocumentoUseCase) Upload(ctx context.Context, sess session.Session, clienteID, tipo, nomeArquivo, contentType string, body io.Reader, size int64) (*dto.DocumentoUploadResponse, error) {
	if size <= 0 || size > MaxUploadSize {
		return nil, fmt.Errorf("%w: arquivo vazio ou maior que 10 MB", domain.ErrInvalidInput)
	}
	key, err := uc.keyFor(ctx, sess, clienteID, tipo, nomeArquivo)
	if err != nil {
		return nil, err
	}
	if err := uc.storage.Upload(ctx, key, contentType, body, size); err != nil {
		return nil, err
	}
	return &dto.DocumentoUploadResponse{Key: key, Size: size}, nil
}

// DownloadURL gera uma URL pré-assinada (GET). Só chaves da empresa da sessão.
func (uc *DocumentoUseCase) DownloadURL(ctx context.Context, sess session.Session, key string) (*dto.DownloadURLResponse, error) {
	if !sess.Can(entity.CapDocumentosGerenciar) && !sess.Can(entity.CapClientesVerTodos) {
		return nil, domain.ErrForbidden
	}
	if !strings.HasPrefix(key, EmpresaPrefix(sess.EmpresaID)) || strings.Contains(key, "..") {
		return nil, domain.ErrNotFound
	}
	if err := uc.storageEnabled(); err != nil {
		return nil, err
	}
	url, exp, err := uc.storage.GenerateDownloadURL(ctx, key, presignTTL)
	if err != nil {
		return nil, err
	}
	return &dto.DownloadURLResponse{URL: url, ExpiresAt: exp}, nil
}

func (uc *DocumentoUseCase) storageEnabled() error {
	if uc.storage == nil {
		return fmt.Errorf("%w: armazenamento de documentos não configurado", domain.ErrUnavailable)
	}
	return nil
}

func (uc *DocumentoUseCase) keyFor(ctx context.Context, sess session.Session, clienteID, tipo, nomeArquivo string) (string, error) {
	if err := sess.Require(entity.CapDocumentosGerenciar); err != nil {
		return "", err
	}
	if err := uc.storageEnabled(); err != nil {
		return "", err
	}
	switch tipo {
	case DocContrato, DocComprovante, DocRGCNH, DocComprovanteEndereco:
	default:
		return "", fmt.Errorf("%w: tipo de documento desconhecido", domain.ErrInvalidInput)
	}
	ext := FileExt(nomeArquivo)
	if !allowedExt[ext] {
		return "", fmt.Errorf("%w: extensão de arquivo não permitida", domain.ErrInvalidInput)
	}
	c, err := uc.clientes.Load(ctx, sess, clienteID)
	if err != nil {
		return "", err
	}
	return DocumentKey(c.EmpresaID, c.Documento, tipo, uc.now(), ext), nil
}

// EmpresaPrefix prefixo de todas as chaves da empresa.
func EmpresaPrefix(empresaID string) string {
	return "empresas/" + empresaID + "/"
}

// DocumentKey monta empresas/{empresa}/clientes/{documento}/{tipo}/{unixNano}{ext}.
func DocumentKey(empresaID, documento, tipo string, at time.Time, ext string) string {
	return fmt.Sprintf("%sclientes/%s/%s/%d%s", EmpresaPrefix(empresaID), documento, tipo, at.UnixNano(), ext)
}

// FileExt extensão em minúsculas, sem acentos e só com letras e dígitos ("Foto.JPÉG" → ".jpeg").
func FileExt(nome string) string {
	ext := filepath.Ext(strings.TrimSpace(nome))
	if ext == "" {
		return ""
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	clean, _, err := transform.String(t, ext[1:])
	if err != nil {
		return ""
	}
	var b strings.Builder
	b.WriteByte('.')
	for _, r := range strings.ToLower(clean) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
