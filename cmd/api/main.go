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

	"github.com/reconciliemos/cuentas-api/docs"
	"github.com/reconciliemos/cuentas-api/internal/application/auth"
	"github.com/reconciliemos/cuentas-api/internal/application/usecase"
	"github.com/reconciliemos/cuentas-api/internal/infrastructure/mail"
	"github.com/reconciliemos/cuentas-api/internal/infrastructure/objectstore"
	"github.com/reconciliemos/cuentas-api/internal/infrastructure/postgres"
	httpRouter "github.com/reconciliemos/cuentas-api/internal/interfaces/http"
	"github.com/reconciliemos/cuentas-api/pkg/config"
	"github.com/reconciliemos/cuentas-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()

	if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)

	// Colaboradores externos: correo y object store. Sin SMTP configurado el
	// servicio arranca con el mailer nulo (los envíos se registran y descartan).
	var mailer usecase.Mailer
	if cfg.SMTP.Host != "" {
		smtpSender, err := mail.NewSMTPSender(cfg.SMTP)
		if err != nil {
			log.Fatal().Err(err).Msg("cliente SMTP")
		}
		mailer = smtpSender
	} else {
		log.Warn().Msg("SMTP_HOST vacío: correos informativos deshabilitados")
		mailer = mail.NewNopSender(log)
	}

	fileStore, err := objectstore.NewMinioStore(cfg.Minio)
	if err != nil {
		log.Fatal().Err(err).Msg("cliente MinIO")
	}
	if err := fileStore.EnsureBucket(ctx); err != nil {
		log.Fatal().Err(err).Msg("bucket de fotos de perfil")
	}

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)
	userUC := usecase.NewUserUseCase(userRepo, mailer, fileStore, log, usecase.WelcomeMailConfig{
		SiteName:  "Reconciliemos Colombia",
		ClientURL: cfg.App.ClientURL,
		LogoURL:   cfg.App.LogoURL,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs. La definición va
	// embebida en el binario: el arranque no depende del directorio de trabajo.
	app.Use(swagger.New(swagger.Config{
		BasePath:    "/",
		FileContent: docs.SwaggerJSON,
		Path:        "docs",
		Title:       "Cuentas API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		UserUC:    userUC,
		Users:     userRepo,
		JWTSecret: cfg.JWT.Secret,
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
