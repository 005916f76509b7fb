package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/mmrconsultoria/portal-os/pkg/logger"
)

// RequestLogger escribe una línea por request con estado, duración y usuario.
func RequestLogger(log *logger.Logger) fiber.Handler {
	l := log.Component("http")
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

		ev := l.Info()
		if status >= fiber.StatusInternalServerError {
			ev = l.Error().Err(err)
		} else if status >= fiber.StatusBadRequest {
			ev = l.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("company", GetCompanyCode(c)).
			Str("user", GetUserID(c)).
			Msg("request")
		return err
	}
}
