package entity

import "time"

// Status de registros cadastrais (empresas, usuários, clientes, centros de custo).
const (
	StatusAtivo   = "ativo"
	StatusInativo = "inativo"
)

// Empresa representa um tenant do sistema. Nunca é removida fisicamente, apenas inativada.
type Empresa struct {
	ID           string
	RazaoSocial  string
	NomeFantasia string
	CNPJ         string
	Email        string
	Telefone     string
	Endereco     Endereco
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Ativa indica se a empresa pode operar.
func (e *Empresa) Ativa() bool { return e.Status == StatusAtivo }
