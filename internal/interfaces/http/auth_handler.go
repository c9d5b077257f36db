package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/limpcred/limpcred-api/internal/application/auth"
	"github.com/limpcred/limpcred-api/internal/application/dto"
)

// AuthHandler login, login com Google e seleção de empresa.
type AuthHandler struct {
	uc   *auth.AuthUseCase
	errs *ErrorWriter
}

// NewAuthHandler constrói o handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, errs *ErrorWriter) *AuthHandler {
	return &AuthHandler{uc: uc, errs: errs}
}

// Login godoc
// @Summary      Login com email e senha
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := bindBody(c, &in); err != nil {
		return h.errs.Write(c, err)
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(out)
}

// GoogleURL godoc
// @Summary      URL de consentimento do Google
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.GoogleURLResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/auth/google/url [get]
func (h *AuthHandler) GoogleURL(c *fiber.Ctx) error {
	url, err := h.uc.GoogleURL(uuid.NewString())
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(dto.GoogleURLResponse{URL: url})
}

// LoginGoogle godoc
// @Summary      Login com o código de autorização do Google
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GoogleLoginRequest  true  "code"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/auth/google [post]
func (h *AuthHandler) LoginGoogle(c *fiber.Ctx) error {
	var in dto.GoogleLoginRequest
	if err := bindBody(c, &in); err != nil {
		return h.errs.Write(c, err)
	}
	out, err := h.uc.LoginGoogle(c.UserContext(), in)
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(out)
}

// Me godoc
// @Summary      Usuário autenticado, empresa ativa e capacidades
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MeResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	sess, err := mustSession(c)
	if err != nil {
		return h.errs.Write(c, err)
	}
	out, err := h.uc.Me(c.UserContext(), sess)
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(out)
}

// SelectEmpresa godoc
// @Summary      Seleciona a empresa ativa do admin e reemite o token
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SelectEmpresaRequest  true  "empresa_id"
// @Success      200   {object}  dto.LoginResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/empresa [post]
func (h *AuthHandler) SelectEmpresa(c *fiber.Ctx) error {
	sess, err := mustSession(c)
	if err != nil {
		return h.errs.Write(c, err)
	}
	var in dto.SelectEmpresaRequest
	if err := bindBody(c, &in); err != nil {
		return h.errs.Write(c, err)
	}
	out, err := h.uc.SelectEmpresa(c.UserContext(), sess, in)
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(out)
}
