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

	_ "github.com/jhoicas/CuentaCorriente-api/docs"
	"github.com/jhoicas/CuentaCorriente-api/internal/application/accounts"
	"github.com/jhoicas/CuentaCorriente-api/internal/application/auth"
	"github.com/jhoicas/CuentaCorriente-api/internal/application/customers"
	"github.com/jhoicas/CuentaCorriente-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/CuentaCorriente-api/internal/infrastructure/pdf"
	"github.com/jhoicas/CuentaCorriente-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/CuentaCorriente-api/internal/interfaces/http"
	"github.com/jhoicas/CuentaCorriente-api/pkg/config"
	"github.com/jhoicas/CuentaCorriente-api/pkg/logger"
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
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	merchantRepo := postgres.NewMerchantRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	membershipRepo := postgres.NewMembershipRepository(pool)
	accountRepo := postgres.NewAccountRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	jwtCfg := auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}
	authUC := auth.NewAuthUseCase(txRunner, userRepo, merchantRepo, membershipRepo, jwtCfg)
	merchantUC := usecase.NewMerchantUseCase(merchantRepo)
	membershipUC := customers.NewMembershipUseCase(
		txRunner, membershipRepo, merchantRepo, userRepo, accountRepo, movementRepo,
	)
	accountUC := accounts.NewAccountUseCase(txRunner, accountRepo, membershipRepo, movementRepo)

	// PDF: resumen de cuenta para descargar desde el panel
	statementGenerator := infrapdf.NewMarotoStatementGenerator()
	statementUC := accounts.NewStatementUseCase(
		accountRepo, membershipRepo, merchantRepo, movementRepo, statementGenerator,
	)

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
		Title:    "CuentaCorriente API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		MerchantUC:   merchantUC,
		MembershipUC: membershipUC,
		AccountUC:    accountUC,
		StatementUC:  statementUC,
		JWTSecret:    cfg.JWT.Secret,
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
