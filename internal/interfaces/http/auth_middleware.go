package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/limpcred/limpcred-api/internal/application/dto"
	"github.com/limpcred/limpcred-api/internal/application/session"
	"github.com/limpcred/limpcred-api/internal/domain"
	"github.com/limpcred/limpcred-api/internal/domain/entity"
	"github.com/limpcred/limpcred-api/pkg/jwt"
)

// Chaves de Locals e cabeçalhos usados pela autenticação.
const (
	LocalSession    = "session"
	HeaderEmpresaID = "X-Empresa-ID"
)

// empresaSwitcher troca a empresa da sessão do admin. Implementado por *auth.AuthUseCase.
type empresaSwitcher interface {
	SwitchEmpresa(ctx context.Context, sess session.Session, empresaID string) (session.Session, error)
}

// AuthMiddleware valida o Bearer Token, monta a session.Session e a guarda em c.Locals.
// O cabeçalho X-Empresa-ID (opcional) seleciona outra empresa administrada pelo admin.
func AuthMiddleware(jwtSecret string, switcher empresaSwitcher, errs *ErrorWriter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "cabeçalho Authorization obrigatório"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vazio"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido ou expirado"})
		}
		role, ok := entity.ParseRole(claims.Role)
		if !ok || claims.UserID == "" || claims.EmpresaID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "token sem papel ou empresa"})
		}

		sess := session.New(claims.UserID, claims.EmpresaID, role, claims.Permissions)
		if empresaID := strings.TrimSpace(c.Get(HeaderEmpresaID)); empresaID != "" && empresaID != sess.EmpresaID {
			sess, err = switcher.SwitchEmpresa(c.UserContext(), sess, empresaID)
			if err != nil {
				return errs.Write(c, err)
			}
		}
		c.Locals(LocalSession, sess)
		return c.Next()
	}
}

// RequireCapability bloqueia a rota (403) quando a sessão não tem a capacidade.
// Deve vir depois do AuthMiddleware.
func RequireCapability(cap entity.Capability) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, ok := GetSession(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "sessão não encontrada"})
		}
		if !sess.Can(cap) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: domain.ErrForbidden.Error()})
		}
		return c.Next()
	}
}

// GetSession devolve a sessão montada pelo AuthMiddleware.
func GetSession(c *fiber.Ctx) (session.Session, bool) {
	sess, ok := c.Locals(LocalSession).(session.Session)
	return sess, ok
}

// mustSession usado pelos handlers das rotas protegidas.
func mustSession(c *fiber.Ctx) (session.Session, error) {
	sess, ok := GetSession(c)
	if !ok {
		return session.Session{}, fiber.NewError(fiber.StatusUnauthorized, "sessão não encontrada")
	}
	return sess, nil
}
