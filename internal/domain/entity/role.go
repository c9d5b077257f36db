package entity

import "strings"

// Role é o tipo de usuário. Define o conjunto base de capacidades.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleVendedor   Role = "vendedor"
	RoleFinanceiro Role = "financeiro"
)

// ParseRole converte texto livre (token, formulário) em Role. ok=false se desconhecido.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleVendedor:
		return RoleVendedor, true
	case RoleFinanceiro:
		return RoleFinanceiro, true
	}
	return "", false
}

// Capability é uma ação que pode ser liberada por papel ou por permissão individual.
type Capability string

const (
	CapEmpresasGerenciar   Capability = "empresas:gerenciar"
	CapUsuariosGerenciar   Capability = "usuarios:gerenciar"
	CapClientesGerenciar   Capability = "clientes:gerenciar"
	CapClientesVerTodos    Capability = "clientes:ver_todos"
	CapProcessosCriar      Capability = "processos:criar"
	CapProcessosVerTodos   Capability = "processos:ver_todos"
	CapProcessosStatus     Capability = "processos:status"
	CapFaturasVer          Capability = "faturas:ver"
	CapFaturasGerenciar    Capability = "faturas:gerenciar"
	CapFinanceiroGerenciar Capability = "financeiro:gerenciar"
	CapDashboardVer        Capability = "dashboard:ver"
	CapRelatoriosExportar  Capability = "relatorios:exportar"
	CapDocumentosGerenciar Capability = "documentos:gerenciar"
	CapSuporteResponder    Capability = "suporte:responder"
)

// AllCapabilities lista todas as capacidades conhecidas.
var AllCapabilities = []Capability{
	CapEmpresasGerenciar, CapUsuariosGerenciar,
	CapClientesGerenciar, CapClientesVerTodos,
	CapProcessosCriar, CapProcessosVerTodos, CapProcessosStatus,
	CapFaturasVer, CapFaturasGerenciar,
	CapFinanceiroGerenciar, CapDashboardVer, CapRelatoriosExportar,
	CapDocumentosGerenciar, CapSuporteResponder,
}

var roleCapabilities = map[Role][]Capability{
	RoleAdmin: AllCapabilities,
	RoleVendedor: {
		CapClientesGerenciar,
		CapProcessosCriar,
		CapProcessosStatus,
		CapFaturasVer,
		CapDocumentosGerenciar,
	},
	RoleFinanceiro: {
		CapClientesVerTodos,
		CapProcessosVerTodos,
		CapFaturasVer,
		CapFaturasGerenciar,
		CapFinanceiroGerenciar,
		CapDashboardVer,
		CapRelatoriosExportar,
	},
}

// Capabilities devolve as capacidades base do papel. Papel desconhecido não tem nenhuma.
func (r Role) Capabilities() []Capability {
	return roleCapabilities[r]
}

// ParseCapability valida uma permissão textual.
func ParseCapability(s string) (Capability, bool) {
	for _, c := range AllCapabilities {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}
