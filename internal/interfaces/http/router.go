package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mmrconsultoria/portal-os/internal/application/auth"
	"github.com/mmrconsultoria/portal-os/internal/application/movement"
	"github.com/mmrconsultoria/portal-os/internal/application/nfe"
	"github.com/mmrconsultoria/portal-os/internal/application/report"
	"github.com/mmrconsultoria/portal-os/internal/domain/entity"
	"github.com/mmrconsultoria/portal-os/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	MovementUC *movement.MovementUseCase
	ReportUC   *report.ReportUseCase
	NFeUC      *nfe.ImportUseCase
	JWTSecret  string
	Log        *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	errs := errorMapper{log: log.Component("http")}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, errs)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("", AuthMiddleware(deps.JWTSecret))
	admin := RequireRole(entity.RoleAdmin)

	protected.Get("/auth/me", authHandler.Me)
	protected.Post("/auth/users", admin, authHandler.CreateUser)

	// Entrada/Saída OS
	movHandler := NewMovementHandler(deps.MovementUC, errs)
	movements := protected.Group("/movements")
	movements.Post("/import", admin, movHandler.Import)
	movements.Post("/", RequireTab(entity.TabMovements), movHandler.Register)
	movements.Get("/", RequireTab(entity.TabMovements), movHandler.List)

	// Reporte de ciclos (solo admin)
	reportHandler := NewReportHandler(deps.ReportUC, errs)
	reports := protected.Group("/reports", admin)
	reports.Get("/cycles", reportHandler.Cycles)
	reports.Get("/cycles/export.xlsx", reportHandler.ExportXLSX)
	reports.Get("/cycles/export.pdf", reportHandler.ExportPDF)

	// Importación NF-e (solo admin)
	nfeHandler := NewNFeHandler(deps.NFeUC, errs)
	protected.Post("/nfe/import", admin, nfeHandler.Import)
}
