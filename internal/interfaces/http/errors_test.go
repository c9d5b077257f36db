package http_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/limpcred/limpcred-api/internal/application/dto"
	"github.com/limpcred/limpcred-api/internal/domain"
	apphttp "github.com/limpcred/limpcred-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// ErrorWriter: categoria de erro → status HTTP
// ──────────────────────────────────────────────────────────────────────────────

func writeErr(t *testing.T, err error) (*http.Response, dto.ErrorResponse) {
	t.Helper()
	errs := apphttp.NewErrorWriter(nil)
	app := fiber.New(fiber.Config{ErrorHandler: errs.FiberErrorHandler})
	app.Get("/x", func(c *fiber.Ctx) error { return errs.Write(c, err) })

	resp, terr := app.Test(httptest.NewRequest(http.MethodGet, "/x", nil), -1)
	require.NoError(t, terr)
	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	resp.Body.Close()
	return resp, body
}

func TestErrorWriter_Mapeamento(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"configurando", domain.ErrSystemConfiguring, http.StatusServiceUnavailable, "SYSTEM_CONFIGURING"},
		{"indisponivel", domain.ErrUnavailable, http.StatusServiceUnavailable, "UNAVAILABLE"},
		{"validacao", domain.ErrInvalidInput, http.StatusBadRequest, "VALIDATION"},
		{"senha", domain.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"usuario", domain.ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND"},
		{"permissao", domain.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{"nao encontrado", domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"email", domain.ErrEmailAlreadyExists, http.StatusConflict, "EMAIL_EXISTS"},
		{"duplicado", domain.ErrDuplicate, http.StatusConflict, "DUPLICATE"},
		{"transicao", domain.ErrInvalidTransition, http.StatusConflict, "INVALID_TRANSITION"},
		{"conflito", domain.ErrConflict, http.StatusConflict, "CONFLICT"},
		{"envolto", fmt.Errorf("repo: %w", domain.ErrNotFound), http.StatusNotFound, "NOT_FOUND"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, body := writeErr(t, tc.err)
			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, tc.code, body.Code)
		})
	}
}

func TestErrorWriter_ConfigurandoDefineRetryAfter(t *testing.T) {
	resp, body := writeErr(t, fmt.Errorf("%w: relation \"processos\" does not exist", domain.ErrSystemConfiguring))

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, apphttp.RetryAfterSeconds, resp.Header.Get("Retry-After"))
	assert.Contains(t, body.Message, "se configurando")
}

func TestErrorWriter_DetalheSoQuandoComecaPelaMensagemDeDominio(t *testing.T) {
	_, body := writeErr(t, fmt.Errorf("%w: CNPJ deve ter 14 dígitos", domain.ErrInvalidInput))
	assert.Equal(t, "dados inválidos: CNPJ deve ter 14 dígitos", body.Message)

	_, body = writeErr(t, fmt.Errorf("pgx: select empresas: %w", domain.ErrNotFound))
	assert.Equal(t, domain.ErrNotFound.Error(), body.Message)
}

func TestErrorWriter_ErroNaoClassificado500(t *testing.T) {
	resp, body := writeErr(t, errors.New("conexão recusada 10.0.0.5:5432"))

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "INTERNAL", body.Code)
	assert.NotContains(t, body.Message, "10.0.0.5")
}

func TestErrorWriter_FiberError(t *testing.T) {
	resp, body := writeErr(t, fiber.NewError(fiber.StatusRequestEntityTooLarge, "corpo muito grande"))

	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
	assert.Equal(t, "corpo muito grande", body.Message)
}

func TestFiberErrorHandler_RotaInexistente404(t *testing.T) {
	errs := apphttp.NewErrorWriter(nil)
	app := fiber.New(fiber.Config{ErrorHandler: errs.FiberErrorHandler})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/nao-existe", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
