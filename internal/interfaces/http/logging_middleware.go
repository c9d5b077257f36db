package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/limpcred/limpcred-api/pkg/logger"
	"github.com/limpcred/limpcred-api/pkg/metrics"
)

// RequestLogger registra cada requisição e alimenta as métricas HTTP.
// A rota (padrão com :params) é usada como rótulo para não explodir a cardinalidade.
func RequestLogger(log *logger.Logger) fiber.Handler {
	if log == nil {
		log = logger.Nop()
	}
	log = log.Named("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// o ErrorHandler do Fiber ainda não rodou: grava a resposta agora para medir o status final
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		elapsed := time.Since(start)
		status := c.Response().StatusCode()
		route := c.Route().Path

		metrics.HTTPRequests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		metrics.HTTPDuration.WithLabelValues(c.Method(), route).Observe(elapsed.Seconds())

		evt := log.Info()
		if status >= fiber.StatusInternalServerError {
			evt = log.Error()
		}
		evt.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", elapsed).
			Str("ip", c.IP()).
			Msg("requisição")
		return nil
	}
}
