package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/limpcred/limpcred-api/internal/application/dto"
	"github.com/limpcred/limpcred-api/internal/application/ports"
	"github.com/limpcred/limpcred-api/pkg/logger"
)

// HeaderIdempotencyKey chave enviada pelo cliente para não repetir uma operação (ex.: duplo clique em "pagar").
const HeaderIdempotencyKey = "Idempotency-Key"

const maxIdempotencyKeyLen = 128

// Idempotency rejeita com 409 uma requisição cuja chave já foi usada pelo mesmo usuário e empresa.
// Sem o cabeçalho a requisição segue normalmente. Se a operação falhar a chave é liberada.
// store nil desativa o middleware. Deve vir depois do AuthMiddleware.
func Idempotency(store ports.IdempotencyStore, ttl time.Duration, log *logger.Logger) fiber.Handler {
	if log == nil {
		log = logger.Nop()
	}
	log = log.Named("idempotency")
	return func(c *fiber.Ctx) error {
		key := c.Get(HeaderIdempotencyKey)
		if store == nil || key == "" || c.Method() == fiber.MethodGet {
			return c.Next()
		}
		if len(key) > maxIdempotencyKeyLen {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "Idempotency-Key muito longa"})
		}
		sess, ok := GetSession(c)
		if !ok {
			return c.Next()
		}
		full := sess.EmpresaID + ":" + sess.UserID + ":" + c.Method() + ":" + c.Path() + ":" + key

		fresh, err := store.MarkProcessed(c.UserContext(), full, ttl)
		if err != nil {
			// sem Redis a operação segue; a proteção do banco continua valendo
			log.Warn().Err(err).Msg("falha ao marcar chave de idempotência")
			return c.Next()
		}
		if !fresh {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Code:    "DUPLICATE_REQUEST",
				Message: "requisição já processada",
			})
		}

		err = c.Next()
		if err != nil || c.Response().StatusCode() >= fiber.StatusBadRequest {
			if rerr := store.Release(c.UserContext(), full); rerr != nil {
				log.Warn().Err(rerr).Msg("falha ao liberar chave de idempotência")
			}
		}
		return err
	}
}
