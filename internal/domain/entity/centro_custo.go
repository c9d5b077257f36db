package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TipoCentro classifica centros de custo e lançamentos.
type TipoCentro string

const (
	TipoReceita TipoCentro = "receita"
	TipoDespesa TipoCentro = "despesa"
)

// Nome do centro pai onde ficam os centros por cliente.
const CentroReceitaClientes = "Receita Clientes"

// NomeCentroCliente devolve o nome do centro de custo filho de um cliente.
func NomeCentroCliente(clienteNome string) string {
	return "Cliente - " + clienteNome
}

// CentroCusto agrupa receitas ou despesas. Aninhamento de um único nível (ParentID).
type CentroCusto struct {
	ID        string
	EmpresaID string
	UsuarioID string
	Nome      string
	Tipo      TipoCentro
	ParentID  *string
	Orcamento decimal.Decimal
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsChildOf compara o ParentID com o id informado.
func (c *CentroCusto) IsChildOf(parentID string) bool {
	return c.ParentID != nil && *c.ParentID == parentID
}
