package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/mmrconsultoria/portal-os/internal/application/auth"
	"github.com/mmrconsultoria/portal-os/internal/application/movement"
	appnfe "github.com/mmrconsultoria/portal-os/internal/application/nfe"
	"github.com/mmrconsultoria/portal-os/internal/application/report"
	infranfe "github.com/mmrconsultoria/portal-os/internal/infrastructure/nfe"
	infrapdf "github.com/mmrconsultoria/portal-os/internal/infrastructure/pdf"
	"github.com/mmrconsultoria/portal-os/internal/infrastructure/postgres"
	infraxlsx "github.com/mmrconsultoria/portal-os/internal/infrastructure/xlsx"
	httpRouter "github.com/mmrconsultoria/portal-os/internal/interfaces/http"
	"github.com/mmrconsultoria/portal-os/pkg/config"
	"github.com/mmrconsultoria/portal-os/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("timezone", cfg.Portal.Timezone).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET no configurado")
	}
	loc, err := time.LoadLocation(cfg.Portal.Timezone)
	if err != nil {
		log.Fatal().Err(err).Msg("zona horaria del portal")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	movementRepo := postgres.NewMovementEventRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	xlsxWriter := infraxlsx.NewWriter()

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	movementUC := movement.NewMovementUseCase(movementRepo, infraxlsx.NewReader(), loc, log).
		WithTxRunner(txRunner)
	reportUC := report.NewReportUseCase(movementRepo, xlsxWriter, infrapdf.NewMarotoPDFGenerator(), report.Config{
		Location: loc,
		CacheTTL: cfg.Portal.ReportCacheTTL,
		TopN:     cfg.Portal.ReportTopN,
	}, log)
	nfeUC := appnfe.NewImportUseCase(infranfe.NewCollector(), infranfe.NewParser(), xlsxWriter, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.Portal.UploadMaxBytes(),
		ReadTimeout:  time.Second * 60,
		WriteTimeout: time.Second * 60,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("access")))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Portal OS API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		MovementUC: movementUC,
		ReportUC:   reportUC,
		NFeUC:      nfeUC,
		JWTSecret:  cfg.JWT.Secret,
		Log:        log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
