// Package session representa o usuário autenticado e a empresa selecionada durante uma requisição.
// É criada pelo middleware de autenticação e passada explicitamente aos casos de uso.
package session

import (
	"sort"

	"github.com/limpcred/limpcred-api/internal/domain"
	"github.com/limpcred/limpcred-api/internal/domain/entity"
)

// Session contexto explícito da requisição.
type Session struct {
	UserID    string
	EmpresaID string
	Role      entity.Role
	caps      map[entity.Capability]struct{}
}

// New monta a sessão com as capacidades do papel mais as permissões extras válidas.
func New(userID, empresaID string, role entity.Role, extra []string) Session {
	caps := make(map[entity.Capability]struct{})
	for _, c := range role.Capabilities() {
		caps[c] = struct{}{}
	}
	for _, p := range extra {
		if c, ok := entity.ParseCapability(p); ok {
			caps[c] = struct{}{}
		}
	}
	return Session{UserID: userID, EmpresaID: empresaID, Role: role, caps: caps}
}

// Can verifica uma capacidade.
func (s Session) Can(c entity.Capability) bool {
	_, ok := s.caps[c]
	return ok
}

// Require devolve domain.ErrForbidden se a capacidade faltar.
func (s Session) Require(c entity.Capability) error {
	if !s.Can(c) {
		return domain.ErrForbidden
	}
	return nil
}

// IsAdmin indica papel admin.
func (s Session) IsAdmin() bool { return s.Role == entity.RoleAdmin }

// WithEmpresa devolve uma cópia da sessão apontando para outra empresa (seleção de empresa do admin).
func (s Session) WithEmpresa(empresaID string) Session {
	s.EmpresaID = empresaID
	return s
}

// OwnerFilter devolve o vendedor a filtrar: vazio quando a sessão pode ver todos os registros.
func (s Session) OwnerFilter(verTodos entity.Capability) string {
	if s.Can(verTodos) {
		return ""
	}
	return s.UserID
}

// CheckTenant garante que o registro pertence à empresa da sessão.
func (s Session) CheckTenant(empresaID string) error {
	if empresaID != s.EmpresaID {
		return domain.ErrNotFound
	}
	return nil
}

// Capabilities lista as capacidades efetivas em ordem alfabética.
func (s Session) Capabilities() []string {
	out := make([]string, 0, len(s.caps))
	for c := range s.caps {
		out = append(out, string(c))
	}
	sort.Strings(out)
	return out
}
