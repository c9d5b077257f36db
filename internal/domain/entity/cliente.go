package entity

import "time"

// Cliente é um cliente de uma empresa, cadastrado por um vendedor.
type Cliente struct {
	ID         string
	EmpresaID  string
	VendedorID string
	Nome       string
	Email      string
	Telefone   string
	Documento  string // CPF ou CNPJ, somente dígitos
	Endereco   Endereco
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
