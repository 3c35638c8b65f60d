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
	"github.com/jhoicas/Ofertas-api/internal/application/auth"
	"github.com/jhoicas/Ofertas-api/internal/application/discount"
	"github.com/jhoicas/Ofertas-api/internal/application/notification"
	"github.com/jhoicas/Ofertas-api/internal/application/order"
	"github.com/jhoicas/Ofertas-api/internal/application/sale"
	"github.com/jhoicas/Ofertas-api/internal/infrastructure/mailer"
	"github.com/jhoicas/Ofertas-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Ofertas-api/internal/infrastructure/scheduler"
	httpRouter "github.com/jhoicas/Ofertas-api/internal/interfaces/http"
	"github.com/jhoicas/Ofertas-api/pkg/config"
	"github.com/jhoicas/Ofertas-api/pkg/logger"
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

	saleRepo := postgres.NewSaleRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	bundleRepo := postgres.NewBundleRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)

	lifecycleUC := sale.NewLifecycleUseCase(saleRepo, log)
	applyUC := discount.NewApplyUseCase(saleRepo, productRepo, bundleRepo, cfg.Scheduler.StartTolerance, log)
	revertUC := discount.NewRevertUseCase(saleRepo, productRepo, bundleRepo, log)

	smtpMailer := mailer.NewSMTPMailer(cfg.SMTP)
	announcementUC := notification.NewAnnouncementUseCase(userRepo, productRepo, categoryRepo, smtpMailer, log)
	deliveryUC := order.NewDeliveryUseCase(orderRepo, log)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// Planificador: en cada tick arranca/termina ventas y luego aplica y
	// revierte descuentos. El orden importa: la activación precede a la
	// aplicación para que un mismo tick pueda hacer ambas.
	sched := scheduler.New(scheduler.RealClock{}, cfg.Scheduler.TickInterval, log)
	sched.AddJob("sale-lifecycle", func(ctx context.Context, now time.Time) {
		lifecycleUC.StartScheduledSales(ctx, now)
		lifecycleUC.EndExpiredSales(ctx, now)
	})
	sched.AddJob("discount-engine", func(ctx context.Context, now time.Time) {
		applyUC.Apply(ctx, now)
		revertUC.Revert(ctx, now)
	})
	sched.Start()

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
		Title:    "Ofertas API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		AnnouncementUC: announcementUC,
		DeliveryUC:     deliveryUC,
		Scheduler:      sched,
		Delays: httpRouter.ScheduleDelays{
			Notify:   cfg.Scheduler.NotifyDelay,
			Delivery: cfg.Scheduler.DeliveryDelay,
		},
		JWTSecret: cfg.JWT.Secret,
		Log:       log,
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

	sched.Stop()
	log.Info().Msg("aplicación detenida")
}
