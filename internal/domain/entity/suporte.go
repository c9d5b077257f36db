package entity

import "time"

// Status de mensagens de suporte.
const (
	SuporteAberta     = "aberta"
	SuporteRespondida = "respondida"
	SuporteFechada    = "fechada"
)

// MensagemSuporte chamado aberto por um usuário.
type MensagemSuporte struct {
	ID        string
	EmpresaID string
	UsuarioID string
	Assunto   string
	Mensagem  string
	Status    string
	Resposta  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
