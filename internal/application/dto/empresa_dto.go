package dto

import "time"

// EnderecoDTO endereço em requisições e respostas.
type EnderecoDTO struct {
	CEP         string `json:"cep" validate:"omitempty,len=8,numeric"`
	Logradouro  string `json:"logradouro"`
	Numero      string `json:"numero"`
	Complemento string `json:"complemento,omitempty"`
	Bairro      string `json:"bairro"`
	Cidade      string `json:"cidade"`
	UF          string `json:"uf" validate:"omitempty,len=2"`
}

// CreateEmpresaRequest cadastro de empresa (admin).
type CreateEmpresaRequest struct {
	RazaoSocial  string      `json:"razao_social" validate:"required,min=2,max=200"`
	NomeFantasia string      `json:"nome_fantasia" validate:"max=200"`
	CNPJ         string      `json:"cnpj" validate:"required,len=14,numeric"`
	Email        string      `json:"email" validate:"omitempty,email"`
	Telefone     string      `json:"telefone" validate:"max=20"`
	Endereco     EnderecoDTO `json:"endereco"`
}

// UpdateEmpresaRequest atualização parcial (campos vazios são ignorados).
type UpdateEmpresaRequest struct {
	RazaoSocial  string       `json:"razao_social" validate:"max=200"`
	NomeFantasia string       `json:"nome_fantasia" validate:"max=200"`
	Email        string       `json:"email" validate:"omitempty,email"`
	Telefone     string       `json:"telefone" validate:"max=20"`
	Endereco     *EnderecoDTO `json:"endereco"`
	Status       string       `json:"status" validate:"omitempty,oneof=ativo inativo"`
}

// AddAdminRequest libera a empresa para outro admin.
type AddAdminRequest struct {
	AdminID string `json:"admin_id" validate:"required,uuid"`
}

// EmpresaResponse resposta de empresa.
type EmpresaResponse struct {
	ID           string      `json:"id"`
	RazaoSocial  string      `json:"razao_social"`
	NomeFantasia string      `json:"nome_fantasia"`
	CNPJ         string      `json:"cnpj"`
	Email        string      `json:"email,omitempty"`
	Telefone     string      `json:"telefone,omitempty"`
	Endereco     EnderecoDTO `json:"endereco"`
	Status       string      `json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
}
