package repository

import (
	"context"

	"github.com/limpcred/limpcred-api/internal/domain/entity"
)

// NotificacaoRepository define a porta de persistência de notificações e tokens de push.
type NotificacaoRepository interface {
	Create(ctx context.Context, n *entity.Notificacao) error
	ListByUsuario(ctx context.Context, usuarioID string, apenasNaoLidas bool, limit, offset int) ([]*entity.Notificacao, error)
	MarkRead(ctx context.Context, id, usuarioID string) error
	SaveToken(ctx context.Context, token *entity.TokenNotificacao) error
}

// SuporteRepository define a porta de persistência de mensagens de suporte.
type SuporteRepository interface {
	Create(ctx context.Context, m *entity.MensagemSuporte) error
	GetByID(ctx context.Context, id string) (*entity.MensagemSuporte, error)
	List(ctx context.Context, f ListFilter) ([]*entity.MensagemSuporte, error)
	Update(ctx context.Context, m *entity.MensagemSuporte) error
}
