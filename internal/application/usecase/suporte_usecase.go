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

// SuporteUseCase chamados de suporte. Qualquer usuário abre; quem tem suporte:responder vê e responde todos.
type SuporteUseCase struct {
	repo repository.SuporteRepository
	now  func() time.Time
}

// NewSuporteUseCase constrói o caso de uso.
func NewSuporteUseCase(repo repository.SuporteRepository) *SuporteUseCase {
	return &SuporteUseCase{repo: repo, now: time.Now}
}

// Create abre um chamado.
func (uc *SuporteUseCase) Create(ctx context.Context, sess session.Session, in dto.CreateSuporteRequest) (*dto.SuporteResponse, error) {
	assunto, mensagem := strings.TrimSpace(in.Assunto), strings.TrimSpace(in.Mensagem)
	if assunto == "" || mensagem == "" {
		return nil, domain.ErrInvalidInput
	}
	now := uc.now()
	m := &entity.MensagemSuporte{
		ID:        uuid.New().String(),
		EmpresaID: sess.EmpresaID,
		UsuarioID: sess.UserID,
		Assunto:   assunto,
		Mensagem:  mensagem,
		Status:    entity.SuporteAberta,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	out := dto.FromSuporte(m)
	return &out, nil
}

// List lista chamados: todos da empresa para quem responde, os próprios para os demais.
func (uc *SuporteUseCase) List(ctx context.Context, sess session.Session, status string, page dto.PageRequest) ([]dto.SuporteResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, repository.ListFilter{
		EmpresaID: sess.EmpresaID,
		UsuarioID: sess.OwnerFilter(entity.CapSuporteResponder),
		Status:    status,
		Limit:     page.Limit,
		Offset:    page.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.SuporteResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.FromSuporte(m))
	}
	return out, nil
}

// Update responde ou fecha um chamado. Responder exige suporte:responder; o autor só pode fechar.
func (uc *SuporteUseCase) Update(ctx context.Context, sess session.Session, id string, in dto.UpdateSuporteRequest) (*dto.SuporteResponse, error) {
	m, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil || m.EmpresaID != sess.EmpresaID {
		return nil, domain.ErrNotFound
	}
	responder := sess.Can(entity.CapSuporteResponder)
	if !responder && m.UsuarioID != sess.UserID {
		return nil, domain.ErrNotFound
	}
	if m.Status == entity.SuporteFechada {
		return nil, fmt.Errorf("%w: chamado fechado", domain.ErrInvalidTransition)
	}
	if resposta := strings.TrimSpace(in.Resposta); resposta != "" {
		if !responder {
			return nil, domain.ErrForbidden
		}
		m.Resposta = resposta
		m.Status = entity.SuporteRespondida
	}
	switch in.Status {
	case "":
	case entity.SuporteFechada:
		m.Status = entity.SuporteFechada
	case entity.SuporteAberta, entity.SuporteRespondida:
		if !responder {
			return nil, domain.ErrForbidden
		}
		m.Status = in.Status
	default:
		return nil, fmt.Errorf("%w: status desconhecido", domain.ErrInvalidInput)
	}
	m.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	out := dto.FromSuporte(m)
	return &out, nil
}
