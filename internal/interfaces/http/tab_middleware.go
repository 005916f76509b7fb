package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mmrconsultoria/portal-os/internal/application/dto"
	"github.com/mmrconsultoria/portal-os/internal/domain/entity"
)

// RequireTab verifica que la sesión tenga habilitada la pestaña del portal.
// "all" habilita todas. Debe usarse DESPUÉS de AuthMiddleware.
//
// Comportamiento:
//   - 401 Unauthorized → no hay identidad en el contexto.
//   - 403 Forbidden    → la pestaña no está entre las del token.
func RequireTab(tab string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := GetIdentity(c)
		if id == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "sessão não encontrada no token",
			})
		}
		tabs := id.Tabs
		if len(tabs) == 0 {
			tabs = entity.TabsForRole(id.Role)
		}
		for _, t := range tabs {
			if t == entity.TabAll || t == tab {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Code:    "TAB_DISABLED",
			Message: "a aba '" + tab + "' não está liberada para este usuário",
		})
	}
}
