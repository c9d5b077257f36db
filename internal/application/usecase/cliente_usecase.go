package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/limpcred/limpcred-api/internal/application/dto"
	"github.com/limpcred/limpcred-api/internal/application/session"
	"github.com/limpcred/limpcred-api/internal/domain"
	"github.com/limpcred/limpcred-api/internal/domain/entity"
	"github.com/limpcred/limpcred-api/internal/domain/repository"
)

// ClienteUseCase carteira de clientes. O vendedor só enxerga os clientes que cadastrou.
type ClienteUseCase struct {
	repo repository.ClienteRepository
	now  func() time.Time
}

// NewClienteUseCase constrói o caso de uso com a porta de persistência.
func NewClienteUseCase(repo repository.ClienteRepository) *ClienteUseCase {
	return &ClienteUseCase{repo: repo, now: time.Now}
}

// Create cadastra o cliente na carteira de quem está logado.
// Devolve domain.ErrDuplicate se o documento já estiver cadastrado na empresa.
func (uc *ClienteUseCase) Create(ctx context.Context, sess session.Session, in dto.CreateClienteRequest) (*dto.ClienteResponse, error) {
	if err := sess.Require(entity.CapClientesGerenciar); err != nil {
		return nil, err
	}
	doc := onlyDigits(in.Documento)
	if len(doc) != 11 && len(doc) != 14 {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByEmpresaAndDocumento(ctx, sess.EmpresaID, doc)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := uc.now()
	c := &entity.Cliente{
		ID:         uuid.New().String(),
		EmpresaID:  sess.EmpresaID,
		VendedorID: sess.UserID,
		Nome:       strings.TrimSpace(in.Nome),
		Email:      normalizeEmail(in.Email),
		Telefone:   in.Telefone,
		Documento:  doc,
		Endereco:   in.Endereco.ToEndereco(),
		Status:     entity.StatusAtivo,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	out := dto.FromCliente(c)
	return &out, nil
}

// GetByID obtém um cliente visível para a sessão.
func (uc *ClienteUseCase) GetByID(ctx context.Context, sess session.Session, id string) (*dto.ClienteResponse, error) {
	c, err := uc.Load(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	out := dto.FromCliente(c)
	return &out, nil
}

// List lista clientes com busca por nome, documento ou email.
func (uc *ClienteUseCase) List(ctx context.Context, sess session.Session, search string, page dto.PageRequest) ([]dto.ClienteResponse, error) {
	if !canSeeClientes(sess) {
		return nil, domain.ErrForbidden
	}
	page.DefaultPage()
	list, err := uc.repo.List(ctx, repository.ListFilter{
		EmpresaID:  sess.EmpresaID,
		VendedorID: sess.OwnerFilter(entity.CapClientesVerTodos),
		Search:     strings.TrimSpace(search),
		Limit:      page.Limit,
		Offset:     page.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClienteResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.FromCliente(c))
	}
	return out, nil
}

// Update atualiza os campos informados. O documento não muda depois do cadastro.
func (uc *ClienteUseCase) Update(ctx context.Context, sess session.Session, id string, in dto.UpdateClienteRequest) (*dto.ClienteResponse, error) {
	if err := sess.Require(entity.CapClientesGerenciar); err != nil {
		return nil, err
	}
	c, err := uc.Load(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	if v := strings.TrimSpace(in.Nome); v != "" {
		c.Nome = v
	}
	if in.Email != "" {
		c.Email = normalizeEmail(in.Email)
	}
	if in.Telefone != "" {
		c.Telefone = in.Telefone
	}
	if in.Status != "" {
		c.Status = in.Status
	}
	if in.Endereco != nil {
		c.Endereco = in.Endereco.ToEndereco()
	}
	c.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	out := dto.FromCliente(c)
	return &out, nil
}

// Load busca o cliente aplicando empresa e carteira do vendedor. Usado também pelo envio de documentos.
func (uc *ClienteUseCase) Load(ctx context.Context, sess session.Session, id string) (*entity.Cliente, error) {
	if !canSeeClientes(sess) {
		return nil, domain.ErrForbidden
	}
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil || c.EmpresaID != sess.EmpresaID {
		return nil, domain.ErrNotFound
	}
	if owner := sess.OwnerFilter(entity.CapClientesVerTodos); owner != "" && c.VendedorID != owner {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func canSeeClientes(sess session.Session) bool {
	return sess.Can(entity.CapClientesGerenciar) || sess.Can(entity.CapClientesVerTodos)
}
