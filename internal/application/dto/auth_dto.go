package dto

// LoginRequest login por email e senha.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// GoogleLoginRequest troca o código de autorização do Google por uma sessão.
type GoogleLoginRequest struct {
	Code string `json:"code" validate:"required"`
}

// GoogleURLResponse URL de consentimento do Google.
type GoogleURLResponse struct {
	URL string `json:"url"`
}

// SelectEmpresaRequest troca a empresa ativa do admin.
type SelectEmpresaRequest struct {
	EmpresaID string `json:"empresa_id" validate:"required,uuid"`
}

// LoginResponse token + usuário + empresas que o usuário pode selecionar.
type LoginResponse struct {
	Token    string            `json:"token"`
	User     UsuarioResponse   `json:"user"`
	Empresas []EmpresaResponse `json:"empresas"`
}

// MeResponse usuário logado, empresa ativa e capacidades efetivas.
type MeResponse struct {
	User        UsuarioResponse   `json:"user"`
	Empresa     EmpresaResponse   `json:"empresa"`
	Empresas    []EmpresaResponse `json:"empresas"`
	Capacidades []string          `json:"capacidades"`
}
