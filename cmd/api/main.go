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

	"github.com/jhoicas/Caja-api/internal/application/auth"
	"github.com/jhoicas/Caja-api/internal/application/catalog"
	"github.com/jhoicas/Caja-api/internal/application/reports"
	"github.com/jhoicas/Caja-api/internal/application/sales"
	"github.com/jhoicas/Caja-api/internal/application/shifts"
	"github.com/jhoicas/Caja-api/internal/application/stock"
	"github.com/jhoicas/Caja-api/internal/application/users"
	infrapdf "github.com/jhoicas/Caja-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Caja-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Caja-api/internal/interfaces/http"
	"github.com/jhoicas/Caja-api/pkg/config"
	"github.com/jhoicas/Caja-api/pkg/logger"
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

	// Repositorios sobre el pool (los transaccionales los construye el TxRunner)
	userRepo := postgres.NewUserRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	shiftRepo := postgres.NewShiftRepository(pool)
	closingRepo := postgres.NewClosingRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	reportsRepo := postgres.NewReportsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Casos de uso
	authUC := auth.NewUseCase(userRepo, auth.TokenConfig{
		Secret:            cfg.JWT.Secret,
		Issuer:            cfg.JWT.Issuer,
		ExpirationMinutes: cfg.JWT.Expiration,
	})
	usersUC := users.NewUseCase(userRepo)
	productUC := catalog.NewProductUseCase(productRepo, saleRepo)
	clientUC := catalog.NewClientUseCase(clientRepo, saleRepo, reportsRepo)
	stockUC := stock.NewUseCase(txRunner, movementRepo)
	createSaleUC := sales.NewCreateSaleUseCase(txRunner, shiftRepo)
	voidSaleUC := sales.NewVoidSaleUseCase(txRunner)
	receiptGenerator := infrapdf.NewMarotoReceiptGenerator()
	saleQueryUC := sales.NewQueryUseCase(saleRepo, productRepo, userRepo, clientRepo,
		receiptGenerator, sales.StoreInfo{
			Name:    cfg.POS.StoreName,
			Address: cfg.POS.StoreAddress,
			Phone:   cfg.POS.StorePhone,
		})
	shiftUC := shifts.NewUseCase(txRunner, shiftRepo, saleRepo, closingRepo)
	reportsUC := reports.NewUseCase(reportsRepo, shiftRepo, productRepo)

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
		Title:    "Caja POS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		UsersUC:    usersUC,
		ProductUC:  productUC,
		ClientUC:   clientUC,
		StockUC:    stockUC,
		CreateSale: createSaleUC,
		VoidSale:   voidSaleUC,
		SaleQuery:  saleQueryUC,
		ShiftUC:    shiftUC,
		ReportsUC:  reportsUC,
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
