package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/limpcred/limpcred-api/internal/application/dto"
	"github.com/limpcred/limpcred-api/internal/application/session"
	"github.com/limpcred/limpcred-api/internal/domain"
	"github.com/limpcred/limpcred-api/internal/domain/entity"
	"github.com/limpcred/limpcred-api/internal/domain/repository"
)

// UsuarioUseCase cadastro de usuários da empresa (somente admin).
type UsuarioUseCase struct {
	repo repository.UsuarioRepository
	now  func() time.Time
}

// NewUsuarioUseCase constrói o caso de uso com a porta de persistência.
func NewUsuarioUseCase(repo repository.UsuarioRepository) *UsuarioUseCase {
	return &UsuarioUseCase{repo: repo, now: time.Now}
}

// Create cadastra um usuário na empresa da sessão. Sem senha, o usuário só entra com Google.
func (uc *UsuarioUseCase) Create(ctx context.Context, sess session.Session, in dto.CreateUsuarioRequest) (*dto.UsuarioResponse, error) {
	if err := sess.Require(entity.CapUsuariosGerenciar); err != nil {
		return nil, err
	}
	role, ok := entity.ParseRole(in.Tipo)
	if !ok {
		return nil, fmt.Errorf("%w: tipo de usuário desconhecido", domain.ErrInvalidInput)
	}
	perms, err := parsePermissoes(in.Permissoes)
	if err != nil {
		return nil, err
	}
	email := normalizeEmail(in.Email)
	existing, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	u := &entity.Usuario{
		ID:           uuid.New().String(),
		EmpresaID:    sess.EmpresaID,
		Nome:         strings.TrimSpace(in.Nome),
		Email:        email,
		Telefone:     in.Telefone,
		Endereco:     in.Endereco.ToEndereco(),
		PasswordHash: hash,
		Tipo:         role,
		Status:       entity.StatusAtivo,
		Permissoes:   perms,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	out := dto.FromUsuario(u)
	return &out, nil
}

// GetByID obtém um usuário da empresa da sessão.
func (uc *UsuarioUseCase) GetByID(ctx context.Context, sess session.Session, id string) (*dto.UsuarioResponse, error) {
	u, err := uc.load(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	out := dto.FromUsuario(u)
	return &out, nil
}

// List lista usuários da empresa com paginação.
func (uc *UsuarioUseCase) List(ctx context.Context, sess session.Session, page dto.PageRequest) ([]dto.UsuarioResponse, error) {
	if err := sess.Require(entity.CapUsuariosGerenciar); err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, err := uc.repo.ListByEmpresa(ctx, sess.EmpresaID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UsuarioResponse, 0, len(list))
	for _, u := range list {
		out = append(out, dto.FromUsuario(u))
	}
	return out, nil
}

// Update altera dados, papel, status, permissões ou senha. O admin não pode inativar a si mesmo.
func (uc *UsuarioUseCase) Update(ctx context.Context, sess session.Session, id string, in dto.UpdateUsuarioRequest) (*dto.UsuarioResponse, error) {
	u, err := uc.load(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	if v := strings.TrimSpace(in.Nome); v != "" {
		u.Nome = v
	}
	if in.Telefone != "" {
		u.Telefone = in.Telefone
	}
	if in.Endereco != nil {
		u.Endereco = in.Endereco.ToEndereco()
	}
	if in.Tipo != "" {
		role, ok := entity.ParseRole(in.Tipo)
		if !ok {
			return nil, fmt.Errorf("%w: tipo de usuário desconhecido", domain.ErrInvalidInput)
		}
		u.Tipo = role
	}
	if in.Status != "" {
		if u.ID == sess.UserID && in.Status != entity.StatusAtivo {
			return nil, fmt.Errorf("%w: não é possível inativar o próprio usuário", domain.ErrConflict)
		}
		u.Status = in.Status
	}
	if in.Permissoes != nil {
		perms, err := parsePermissoes(in.Permissoes)
		if err != nil {
			return nil, err
		}
		u.Permissoes = perms
	}
	// hash vazio mantém a senha atual
	u.PasswordHash = ""
	if in.Password != "" {
		if u.PasswordHash, err = HashPassword(in.Password); err != nil {
			return nil, err
		}
	}
	u.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	out := dto.FromUsuario(u)
	return &out, nil
}

func (uc *UsuarioUseCase) load(ctx context.Context, sess session.Session, id string) (*entity.Usuario, error) {
	if err := sess.Require(entity.CapUsuariosGerenciar); err != nil {
		return nil, err
	}
	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil || u.EmpresaID != sess.EmpresaID {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

// HashPassword gera o hash bcrypt; senha vazia devolve hash vazio.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func parsePermissoes(in []string) ([]string, error) {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, p := range in {
		c, ok := entity.ParseCapability(strings.TrimSpace(p))
		if !ok {
			return nil, fmt.Errorf("%w: permissão desconhecida %q", domain.ErrInvalidInput, p)
		}
		if !seen[string(c)] {
			seen[string(c)] = true
			out = append(out, string(c))
		}
	}
	return out, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
