// Package ports declara os adaptadores externos usados pelos casos de uso.
package ports

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrCEPNotFound o serviço de CEP respondeu, mas o CEP não existe.
var ErrCEPNotFound = errors.New("CEP não encontrado")

// EnderecoCEP endereço resolvido a partir do CEP.
type EnderecoCEP struct {
	CEP        string
	Logradouro string
	Bairro     string
	Cidade     string
	UF         string
}

// CEPService consulta de CEP (ViaCEP).
type CEPService interface {
	Lookup(ctx context.Context, cep string) (*EnderecoCEP, error)
}

// ObjectStorage armazenamento de documentos (S3 compatível).
type ObjectStorage interface {
	GenerateUploadURL(ctx context.Context, key, contentType string, expiresIn time.Duration) (string, time.Time, error)
	GenerateDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, time.Time, error)
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) error
}

// Tipos de evento de domínio publicados no barramento.
const (
	EventProcessoCriado         = "processo.criado"
	EventFaturaPaga             = "fatura.paga"
	EventProcessoStatusAlterado = "processo.status_alterado"
)

// DomainEvent evento publicado após o commit da operação que o originou.
type DomainEvent struct {
	Type       string            `json:"type"`
	EmpresaID  string            `json:"empresa_id"`
	UsuarioID  string            `json:"usuario_id"`
	EntityID   string            `json:"entity_id"`
	Payload    map[string]string `json:"payload,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
}

// EventPublisher publicação assíncrona (não bloqueia a requisição).
type EventPublisher interface {
	Publish(evt DomainEvent)
}

// NopPublisher descarta eventos (barramento não configurado).
type NopPublisher struct{}

// Publish não faz nada.
func (NopPublisher) Publish(DomainEvent) {}

// IdempotencyStore marca chaves de requisição já processadas.
type IdempotencyStore interface {
	// MarkProcessed retorna true se a chave foi marcada agora; false se já existia.
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

// GoogleProfile dados do usuário autenticado pelo Google.
type GoogleProfile struct {
	Subject       string
	Email         string
	EmailVerified bool
	Name          string
}

// GoogleAuthenticator fluxo authorization-code do Google.
type GoogleAuthenticator interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*GoogleProfile, error)
}
