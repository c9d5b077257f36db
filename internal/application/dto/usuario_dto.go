package dto

import "time"

// CreateUsuarioRequest cadastro de usuário pelo admin.
type CreateUsuarioRequest struct {
	Nome       string      `json:"nome" validate:"required,min=2,max=150"`
	Email      string      `json:"email" validate:"required,email"`
	Password   string      `json:"password" validate:"omitempty,min=8"`
	Telefone   string      `json:"telefone" validate:"max=20"`
	Tipo       string      `json:"tipo" validate:"required,oneof=admin vendedor financeiro"`
	Permissoes []string    `json:"permissoes"`
	Endereco   EnderecoDTO `json:"endereco"`
}

// UpdateUsuarioRequest atualização parcial.
type UpdateUsuarioRequest struct {
	Nome       string       `json:"nome" validate:"max=150"`
	Telefone   string       `json:"telefone" validate:"max=20"`
	Tipo       string       `json:"tipo" validate:"omitempty,oneof=admin vendedor financeiro"`
	Status     string       `json:"status" validate:"omitempty,oneof=ativo inativo"`
	Permissoes []string     `json:"permissoes"`
	Password   string       `json:"password" validate:"omitempty,min=8"`
	Endereco   *EnderecoDTO `json:"endereco"`
}

// UsuarioResponse resposta de usuário (sem hash de senha).
type UsuarioResponse struct {
	ID         string      `json:"id"`
	EmpresaID  string      `json:"empresa_id"`
	Nome       string      `json:"nome"`
	Email      string      `json:"email"`
	Telefone   string      `json:"telefone,omitempty"`
	Tipo       string      `json:"tipo"`
	Status     string      `json:"status"`
	Permissoes []string    `json:"permissoes"`
	Endereco   EnderecoDTO `json:"endereco"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}
