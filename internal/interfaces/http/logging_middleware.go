package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/team-feedback/pkg/logger"
)

// RequestLogger registra método, ruta, estado y duración de cada petición.
// Las respuestas 5xx salen en nivel error y las 4xx en warn.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		ev := log.Info()
		switch {
		case status >= fiber.StatusInternalServerError:
			ev = log.Error().Err(err)
		case status >= fiber.StatusBadRequest:
			ev = log.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Str("user_id", GetUserID(c)).
			Msg("request.complete")
		return err
	}
}
