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

	"github.com/drxproject/plm-api/internal/application/auth"
	"github.com/drxproject/plm-api/internal/application/bootstrap"
	"github.com/drxproject/plm-api/internal/application/report"
	"github.com/drxproject/plm-api/internal/application/stage"
	"github.com/drxproject/plm-api/internal/application/usecase"
	infrapdf "github.com/drxproject/plm-api/internal/infrastructure/pdf"
	"github.com/drxproject/plm-api/internal/infrastructure/postgres"
	httpRouter "github.com/drxproject/plm-api/internal/interfaces/http"
	"github.com/drxproject/plm-api/pkg/config"
	"github.com/drxproject/plm-api/pkg/logger"
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

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	stageRepo := postgres.NewStageRepository(pool)
	historyRepo := postgres.NewStageHistoryRepository(pool)
	bomRepo := postgres.NewBomRepository(pool)
	materialRepo := postgres.NewMaterialRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Datos mínimos: catálogo fijo de etapas y primer admin.
	seeder := bootstrap.NewSeeder(stageRepo, userRepo, log)
	if err := seeder.Run(bootstrap.AdminConfig{
		Email:    cfg.Seed.AdminEmail,
		Password: cfg.Seed.AdminPassword,
		Name:     cfg.Seed.AdminName,
	}); err != nil {
		log.Fatal().Err(err).Msg("sembrado inicial")
	}

	productUC := usecase.NewProductUseCase(txRunner, productRepo, userRepo, historyRepo, bomRepo)
	materialUC := usecase.NewMaterialUseCase(txRunner, materialRepo, bomRepo)
	userUC := usecase.NewUserUseCase(userRepo)
	transitionUC := stage.NewTransitionUseCase(txRunner, productRepo, historyRepo)

	pdfGenerator := infrapdf.NewMarotoPortfolioGenerator()
	portfolioUC := report.NewPortfolioPDFUseCase(productUC, pdfGenerator)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

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
		Title:    "PLM API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:    productUC,
		MaterialUC:   materialUC,
		UserUC:       userUC,
		TransitionUC: transitionUC,
		PortfolioUC:  portfolioUC,
		AuthUC:       authUC,
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
