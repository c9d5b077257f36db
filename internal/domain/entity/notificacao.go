package entity

import "time"

// Notificacao mensagem exibida ao usuário no app.
type Notificacao struct {
	ID        string
	EmpresaID string
	UsuarioID string
	Titulo    string
	Mensagem  string
	Tipo      string
	Lida      bool
	CreatedAt time.Time
}

// TokenNotificacao token de push de um dispositivo.
type TokenNotificacao struct {
	UsuarioID  string
	Token      string
	Plataforma string // android, ios, web
	UpdatedAt  time.Time
}
