package dto

import "time"

// NotificacaoResponse resposta de notificação.
type NotificacaoResponse struct {
	ID        string    `json:"id"`
	Titulo    string    `json:"titulo"`
	Mensagem  string    `json:"mensagem"`
	Tipo      string    `json:"tipo"`
	Lida      bool      `json:"lida"`
	CreatedAt time.Time `json:"created_at"`
}

// RegisterTokenRequest registro do token de push do dispositivo.
type RegisterTokenRequest struct {
	Token      string `json:"token" validate:"required,max=512"`
	Plataforma string `json:"plataforma" validate:"required,oneof=android ios web"`
}

// CreateSuporteRequest abertura de chamado.
type CreateSuporteRequest struct {
	Assunto  string `json:"assunto" validate:"required,max=150"`
	Mensagem string `json:"mensagem" validate:"required,max=4000"`
}

// UpdateSuporteRequest resposta ou fechamento de chamado.
type UpdateSuporteRequest struct {
	Resposta string `json:"resposta" validate:"max=4000"`
	Status   string `json:"status" validate:"omitempty,oneof=aberta respondida fechada"`
}

// SuporteResponse resposta de chamado.
type SuporteResponse struct {
	ID        string    `json:"id"`
	UsuarioID string    `json:"usuario_id"`
	Assunto   string    `json:"assunto"`
	Mensagem  string    `json:"mensagem"`
	Status    string    `json:"status"`
	Resposta  string    `json:"resposta,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
