package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Atelier-api/internal/bootstrap"
	httpRouter "github.com/jhoicas/Atelier-api/internal/interfaces/http"
	"github.com/jhoicas/Atelier-api/pkg/config"
	"github.com/jhoicas/Atelier-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.App.StorageDriver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es requerido")
	}

	ctx := context.Background()
	svc, closeStorage, err := bootstrap.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer closeStorage()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    20 * 1024 * 1024, // reportes WB
	})
	app.Use(recover.New())

	deps := httpRouter.RouterDeps{
		AppName:        cfg.App.Name,
		CatalogUC:      svc.Catalog,
		RecordMovement: svc.RecordMovement,
		BalanceUC:      svc.Balance,
		PurchaseUC:     svc.Purchase,
		ActUC:          svc.Act,
		RecipeUC:       svc.Recipe,
		OrderUC:        svc.Order,
		WriteOffUC:     svc.WriteOff,
		WBImportUC:     svc.WBImport,
		StockUC:        svc.Stock,
		SupplyUC:       svc.Supply,
		FinanceUC:      svc.Finance,
		AuthUC:         svc.Auth,
		JWTSecret:      cfg.JWT.Secret,
	}
	if cfg.Metrics.Enabled {
		deps.Metrics = svc.Metrics.Handler()
	}
	httpRouter.Router(app, deps)

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
