package dto

import "time"

// CreateClienteRequest cadastro de cliente pelo vendedor.
type CreateClienteRequest struct {
	Nome      string      `json:"nome" validate:"required,min=2,max=150"`
	Email     string      `json:"email" validate:"omitempty,email"`
	Telefone  string      `json:"telefone" validate:"max=20"`
	Documento string      `json:"documento" validate:"required,numeric,min=11,max=14"`
	Endereco  EnderecoDTO `json:"endereco"`
}

// UpdateClienteRequest atualização parcial.
type UpdateClienteRequest struct {
	Nome     string       `json:"nome" validate:"max=150"`
	Email    string       `json:"email" validate:"omitempty,email"`
	Telefone string       `json:"telefone" validate:"max=20"`
	Status   string       `json:"status" validate:"omitempty,oneof=ativo inativo"`
	Endereco *EnderecoDTO `json:"endereco"`
}

// ClienteResponse resposta de cliente.
type ClienteResponse struct {
	ID         string      `json:"id"`
	EmpresaID  string      `json:"empresa_id"`
	VendedorID string      `json:"vendedor_id"`
	Nome       string      `json:"nome"`
	Email      string      `json:"email,omitempty"`
	Telefone   string      `json:"telefone,omitempty"`
	Documento  string      `json:"documento"`
	Endereco   EnderecoDTO `json:"endereco"`
	Status     string      `json:"status"`
	CreatedAt  time.Time   `json:"created_at"`
}
