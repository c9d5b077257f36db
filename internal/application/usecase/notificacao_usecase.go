package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/limpcred/limpcred-api/internal/application/dto"
	"github.com/limpcred/limpcred-api/internal/application/ports"
	"github.com/limpcred/limpcred-api/internal/application/session"
	"github.com/limpcred/limpcred-api/internal/domain"
	"github.com/limpcred/limpcred-api/internal/domain/entity"
	"github.com/limpcred/limpcred-api/internal/domain/repository"
)

// NotificacaoUseCase caixa de notificações do usuário e registro de tokens de push.
type NotificacaoUseCase struct {
	repo repository.NotificacaoRepository
	now  func() time.Time
}

// NewNotificacaoUseCase constrói o caso de uso.
func NewNotificacaoUseCase(repo repository.NotificacaoRepository) *NotificacaoUseCase {
	return &NotificacaoUseCase{repo: repo, now: time.Now}
}

// List lista as notificações do usuário logado.
func (uc *NotificacaoUseCase) List(ctx context.Context, sess session.Session, apenasNaoLidas bool, page dto.PageRequest) ([]dto.NotificacaoResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByUsuario(ctx, sess.UserID, apenasNaoLidas, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NotificacaoResponse, 0, len(list))
	for _, n := range list {
		out = append(out, dto.FromNotificacao(n))
	}
	return out, nil
}

// MarkRead marca uma notificação do usuário como lida.
func (uc *NotificacaoUseCase) MarkRead(ctx context.Context, sess session.Session, id string) error {
	return uc.repo.MarkRead(ctx, id, sess.UserID)
}

// RegisterToken guarda o token de push do dispositivo.
func (uc *NotificacaoUseCase) RegisterToken(ctx context.Context, sess session.Session, in dto.RegisterTokenRequest) error {
	token := strings.TrimSpace(in.Token)
	if token == "" {
		return domain.ErrInvalidInput
	}
	return uc.repo.SaveToken(ctx, &entity.TokenNotificacao{
		UsuarioID:  sess.UserID,
		Token:      token,
		Plataforma: in.Plataforma,
		UpdatedAt:  uc.now(),
	})
}

// HandleEvent grava a notificação correspondente a um evento de domínio. Tipos desconhecidos são ignorados.
func (uc *NotificacaoUseCase) HandleEvent(ctx context.Context, evt ports.DomainEvent) error {
	n := NotificacaoFromEvent(evt)
	if n == nil {
		return nil
	}
	n.ID = uuid.New().String()
	n.CreatedAt = uc.now()
	return uc.repo.Create(ctx, n)
}

// NotificacaoFromEvent monta título e mensagem para o destinatário do evento.
func NotificacaoFromEvent(evt ports.DomainEvent) *entity.Notificacao {
	if evt.UsuarioID == "" {
		return nil
	}
	p := evt.Payload
	n := &entity.Notificacao{EmpresaID: evt.EmpresaID, UsuarioID: evt.UsuarioID, Tipo: evt.Type}
	switch evt.Type {
	case ports.EventProcessoCriado:
		n.Titulo = "Processo criado"
		n.Mensagem = fmt.Sprintf("Processo %s criado para %s (R$ %s).", p["numero"], p["cliente_nome"], p["valor_total"])
	case ports.EventFaturaPaga:
		n.Titulo = "Parcela paga"
		n.Mensagem = fmt.Sprintf("Parcela %s do processo %s foi paga (R$ %s).", p["parcela"], p["numero"], p["valor"])
	case ports.EventProcessoStatusAlterado:
		n.Titulo = "Status do processo alterado"
		n.Mensagem = fmt.Sprintf("Processo %s: %s → %s.", p["numero"], p["anterior"], p["status"])
	default:
		return nil
	}
	return n
}
