package domain

import "errors"

// Erros de domínio (sem dependências externas). As mensagens são exibidas ao usuário final.
var (
	ErrNotFound           = errors.New("registro não encontrado")
	ErrUserNotFound       = errors.New("usuário não encontrado")
	ErrEmailAlreadyExists = errors.New("o email já está cadastrado")
	ErrInvalidInput       = errors.New("dados inválidos")
	ErrDuplicate          = errors.New("registro duplicado")
	ErrUnauthorized       = errors.New("senha incorreta")
	ErrForbidden          = errors.New("permissão negada")
	ErrConflict           = errors.New("conflito com o estado atual")
	ErrInvalidTransition  = errors.New("transição de status não permitida")
	// ErrSystemConfiguring é transitório: o banco ainda está sendo provisionado (tabela ausente, servidor iniciando).
	ErrSystemConfiguring = errors.New("o sistema está se configurando, aguarde um momento")
	ErrUnavailable       = errors.New("serviço indisponível, verifique sua conexão")
)
