package auth

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/limpcred/limpcred-api/internal/application/dto"
	"github.com/limpcred/limpcred-api/internal/application/ports"
	"github.com/limpcred/limpcred-api/internal/application/session"
	"github.com/limpcred/limpcred-api/internal/domain"
	"github.com/limpcred/limpcred-api/internal/domain/entity"
	"github.com/limpcred/limpcred-api/internal/domain/repository"
	"github.com/limpcred/limpcred-api/pkg/jwt"
)

// JWTConfig configuração para geração de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticação: login por senha ou Google e seleção de empresa.
type AuthUseCase struct {
	usuarios repository.UsuarioRepository
	empresas repository.EmpresaRepository
	google   ports.GoogleAuthenticator
	jwtCfg   JWTConfig
}

// NewAuthUseCase constrói o caso de uso de auth. google pode ser nil (login com Google desativado).
func NewAuthUseCase(usuarios repository.UsuarioRepository, empresas repository.EmpresaRepository, google ports.GoogleAuthenticator, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{usuarios: usuarios, empresas: empresas, google: google, jwtCfg: jwtCfg}
}

// Login verifica email/senha, gera o JWT e devolve token + usuário + empresas selecionáveis.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.usuarios.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if user.PasswordHash == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	return uc.issue(ctx, user)
}

// GoogleURL devolve a URL de consentimento do Google para o state informado.
func (uc *AuthUseCase) GoogleURL(state string) (string, error) {
	if uc.google == nil {
		return "", fmt.Errorf("%w: login com Google não configurado", domain.ErrUnavailable)
	}
	return uc.google.AuthCodeURL(state), nil
}

// LoginGoogle troca o código de autorização e entra com o usuário cadastrado com o mesmo email.
// Só emails verificados pelo Google são aceitos; não há cadastro automático.
func (uc *AuthUseCase) LoginGoogle(ctx context.Context, in dto.GoogleLoginRequest) (*dto.LoginResponse, error) {
	if uc.google == nil {
		return nil, fmt.Errorf("%w: login com Google não configurado", domain.ErrUnavailable)
	}
	profile, err := uc.google.Exchange(ctx, in.Code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	if !profile.EmailVerified || profile.Email == "" {
		return nil, fmt.Errorf("%w: email do Google não verificado", domain.ErrUnauthorized)
	}
	user, err := uc.usuarios.GetByEmail(ctx, strings.ToLower(profile.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return uc.issue(ctx, user)
}

// SwitchEmpresa valida a troca de empresa do admin e devolve a sessão apontando para ela.
func (uc *AuthUseCase) SwitchEmpresa(ctx context.Context, sess session.Session, empresaID string) (session.Session, error) {
	if empresaID == sess.EmpresaID {
		return sess, nil
	}
	if !sess.IsAdmin() {
		return sess, domain.ErrForbidden
	}
	ok, err := uc.empresas.IsAdminOf(ctx, sess.UserID, empresaID)
	if err != nil {
		return sess, err
	}
	if !ok {
		return sess, domain.ErrForbidden
	}
	return sess.WithEmpresa(empresaID), nil
}

// SelectEmpresa reemite o token do admin para a empresa escolhida.
func (uc *AuthUseCase) SelectEmpresa(ctx context.Context, sess session.Session, in dto.SelectEmpresaRequest) (*dto.LoginResponse, error) {
	user, err := uc.loadActive(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}
	// a sessão pode ter vindo de outra empresa via X-Empresa-ID; a origem é o cadastro do usuário
	base := session.New(user.ID, user.EmpresaID, user.Tipo, user.Permissoes)
	next, err := uc.SwitchEmpresa(ctx, base, in.EmpresaID)
	if err != nil {
		return nil, err
	}
	empresa, err := uc.empresas.GetByID(ctx, next.EmpresaID)
	if err != nil {
		return nil, err
	}
	if empresa == nil {
		return nil, domain.ErrNotFound
	}
	if !empresa.Ativa() {
		return nil, fmt.Errorf("%w: empresa inativa", domain.ErrForbidden)
	}
	return uc.respond(ctx, user, next.EmpresaID)
}

// Me devolve o usuário da sessão, a empresa ativa e as capacidades efetivas.
func (uc *AuthUseCase) Me(ctx context.Context, sess session.Session) (*dto.MeResponse, error) {
	user, err := uc.loadActive(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}
	empresa, err := uc.empresas.GetByID(ctx, sess.EmpresaID)
	if err != nil {
		return nil, err
	}
	if empresa == nil {
		return nil, domain.ErrNotFound
	}
	empresas, err := uc.selectable(ctx, user)
	if err != nil {
		return nil, err
	}
	return &dto.MeResponse{
		User:        dto.FromUsuario(user),
		Empresa:     dto.FromEmpresa(empresa),
		Empresas:    empresas,
		Capacidades: sess.Capabilities(),
	}, nil
}

func (uc *AuthUseCase) issue(ctx context.Context, user *entity.Usuario) (*dto.LoginResponse, error) {
	if !user.Ativo() {
		return nil, domain.ErrForbidden
	}
	if user.Tipo != entity.RoleAdmin {
		empresa, err := uc.empresas.GetByID(ctx, user.EmpresaID)
		if err != nil {
			return nil, err
		}
		if empresa == nil || !empresa.Ativa() {
			return nil, fmt.Errorf("%w: empresa inativa", domain.ErrForbidden)
		}
	}
	return uc.respond(ctx, user, user.EmpresaID)
}

func (uc *AuthUseCase) respond(ctx context.Context, user *entity.Usuario, empresaID string) (*dto.LoginResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, empresaID, string(user.Tipo), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes, user.Permissoes...)
	if err != nil {
		return nil, err
	}
	empresas, err := uc.selectable(ctx, user)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: dto.FromUsuario(user), Empresas: empresas}, nil
}

// selectable empresas que o usuário pode escolher; não-admins só têm a própria.
func (uc *AuthUseCase) selectable(ctx context.Context, user *entity.Usuario) ([]dto.EmpresaResponse, error) {
	var list []*entity.Empresa
	if user.Tipo == entity.RoleAdmin {
		var err error
		if list, err = uc.empresas.ListByAdmin(ctx, user.ID); err != nil {
			return nil, err
		}
	}
	hasOwn := false
	for _, e := range list {
		if e.ID == user.EmpresaID {
			hasOwn = true
		}
	}
	if !hasOwn {
		own, err := uc.empresas.GetByID(ctx, user.EmpresaID)
		if err != nil {
			return nil, err
		}
		if own != nil {
			list = append([]*entity.Empresa{own}, list...)
		}
	}
	out := make([]dto.EmpresaResponse, 0, len(list))
	for _, e := range list {
		out = append(out, dto.FromEmpresa(e))
	}
	return out, nil
}

func (uc *AuthUseCase) loadActive(ctx context.Context, id string) (*entity.Usuario, error) {
	user, err := uc.usuarios.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if !user.Ativo() {
		return nil, domain.ErrForbidden
	}
	return user, nil
}
