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
	"github.com/tu-usuario/asistencia-pro/internal/application/attendance"
	"github.com/tu-usuario/asistencia-pro/internal/application/auth"
	"github.com/tu-usuario/asistencia-pro/internal/application/challenge"
	"github.com/tu-usuario/asistencia-pro/internal/application/scope"
	"github.com/tu-usuario/asistencia-pro/internal/application/usecase"
	"github.com/tu-usuario/asistencia-pro/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/asistencia-pro/internal/interfaces/http"
	"github.com/tu-usuario/asistencia-pro/pkg/config"
	"github.com/tu-usuario/asistencia-pro/pkg/logger"
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

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	challengeRepo := postgres.NewChallengeRepository(pool)
	assignmentRepo := postgres.NewAssignmentRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	chCfg := challenge.Config{
		RotationPeriod: cfg.Challenge.RotationPeriod(),
		NumericLength:  cfg.Challenge.NumericLength,
		QRTTL:          cfg.Challenge.QRTTL(),
		StoreRetries:   cfg.Challenge.StoreRetries,
	}
	generator := challenge.NewGenerator(challengeRepo, chCfg)
	rotator := challenge.NewRotator(generator, challengeRepo, log, chCfg)
	display := challenge.NewDisplayUseCase(challengeRepo, generator, chCfg)
	resolver := scope.NewResolver(assignmentRepo)
	checkInUC := attendance.NewCheckInUseCase(resolver, txRunner, chCfg)
	locationUC := usecase.NewLocationUseCase(locationRepo, rotator)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// Rotación: cada ubicación activa rota color y numeric por su cuenta.
	rotator.Start(ctx)
	activeLocs, err := locationRepo.ListActive()
	if err != nil {
		log.Fatal().Err(err).Msg("listar ubicaciones activas")
	}
	for _, loc := range activeLocs {
		rotator.ScheduleLocation(loc.ID)
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Asistencia API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		LocationUC: locationUC,
		Display:    display,
		CheckIn:    checkInUC,
		Resolver:   resolver,
		JWTSecret:  cfg.JWT.Secret,
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

	stop()
	rotator.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
