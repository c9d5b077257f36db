package http

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/limpcred/limpcred-api/internal/application/dto"
	"github.com/limpcred/limpcred-api/internal/domain"
	"github.com/limpcred/limpcred-api/pkg/logger"
)

// RetryAfterSeconds valor do Retry-After enquanto o sistema se configura.
const RetryAfterSeconds = "10"

var validate = validator.New(validator.WithRequiredStructEnabled())

// errorMapping status e código HTTP de cada categoria de erro de domínio.
type errorMapping struct {
	target error
	status int
	code   string
}

var errorMappings = []errorMapping{
	{domain.ErrSystemConfiguring, fiber.StatusServiceUnavailable, "SYSTEM_CONFIGURING"},
	{domain.ErrUnavailable, fiber.StatusServiceUnavailable, "UNAVAILABLE"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrUserNotFound, fiber.StatusNotFound, "USER_NOT_FOUND"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrInvalidTransition, fiber.StatusConflict, "INVALID_TRANSITION"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
}

// ErrorWriter converte erros dos casos de uso em respostas HTTP e registra os não classificados.
type ErrorWriter struct {
	log *logger.Logger
}

// NewErrorWriter constrói o ErrorWriter. log nil descarta os registros.
func NewErrorWriter(log *logger.Logger) *ErrorWriter {
	if log == nil {
		log = logger.Nop()
	}
	return &ErrorWriter{log: log.Named("http")}
}

// Write responde com o status da categoria do erro.
// A mensagem é a do erro (já em português); erros não classificados recebem mensagem genérica.
func (w *ErrorWriter) Write(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := strings.ToUpper(strings.ReplaceAll(utils.StatusMessage(fe.Code), " ", "_"))
		if code == "" {
			code = "ERROR"
		}
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: code, Message: fe.Message})
	}
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			if m.status == fiber.StatusServiceUnavailable {
				c.Set(fiber.HeaderRetryAfter, RetryAfterSeconds)
				w.log.Warn().Err(err).Str("path", c.Path()).Msg("serviço indisponível")
			}
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: publicMessage(err, m.target)})
		}
	}
	w.log.Error().Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("erro não tratado")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Code:    "INTERNAL",
		Message: "erro inesperado, tente novamente",
	})
}

// publicMessage mantém o detalhe quando o erro começa pela mensagem de domínio
// ("dados inválidos: CNPJ deve ter 14 dígitos"); senão só a mensagem de domínio, sem prefixos internos.
func publicMessage(err, target error) string {
	if msg := err.Error(); strings.HasPrefix(msg, target.Error()) {
		return msg
	}
	return target.Error()
}

// FiberErrorHandler erros devolvidos pelos handlers ou gerados pelo próprio Fiber (rota inexistente, corpo grande).
func (w *ErrorWriter) FiberErrorHandler(c *fiber.Ctx, err error) error {
	return w.Write(c, err)
}

// bindBody lê o JSON do corpo e valida com as tags validate.
func bindBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return invalid("corpo da requisição inválido")
	}
	return validateStruct(out)
}

// bindQuery lê os parâmetros de consulta e valida.
func bindQuery(c *fiber.Ctx, out any) error {
	if err := c.QueryParser(out); err != nil {
		return invalid("parâmetros de consulta inválidos")
	}
	return validateStruct(out)
}

func validateStruct(out any) error {
	if err := validate.Struct(out); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return invalid(describeValidation(verrs))
		}
		return invalid(err.Error())
	}
	return nil
}

// describeValidation "campo nome: required; campo cnpj: len".
func describeValidation(verrs validator.ValidationErrors) string {
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msg := "campo " + strings.ToLower(fe.Field()) + ": " + fe.Tag()
		if fe.Param() != "" {
			msg += "=" + fe.Param()
		}
		parts = append(parts, msg)
	}
	return strings.Join(parts, "; ")
}

type validationError struct{ msg string }

func (e validationError) Error() string { return domain.ErrInvalidInput.Error() + ": " + e.msg }
func (e validationError) Unwrap() error { return domain.ErrInvalidInput }

func invalid(msg string) error { return validationError{msg: msg} }

func pageFromQuery(c *fiber.Ctx) (dto.PageRequest, error) {
	var p dto.PageRequest
	if err := bindQuery(c, &p); err != nil {
		return p, err
	}
	p.DefaultPage()
	return p, nil
}

// dateQuery lê uma data opcional YYYY-MM-DD da query string.
func dateQuery(c *fiber.Ctx, name string) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, invalid(name + " deve estar no formato AAAA-MM-DD")
	}
	return &t, nil
}
