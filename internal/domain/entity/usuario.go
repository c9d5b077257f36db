package entity

import "time"

// Usuario representa um usuário do sistema (pertence a uma Empresa).
type Usuario struct {
	ID           string
	EmpresaID    string
	Nome         string
	Email        string
	Telefone     string
	Endereco     Endereco
	PasswordHash string // bcrypt; vazio para contas que só entram com Google
	Tipo         Role
	Status       string
	Permissoes   []string // capacidades extras além das do papel
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Ativo indica se o usuário pode autenticar.
func (u *Usuario) Ativo() bool { return u.Status == StatusAtivo }
