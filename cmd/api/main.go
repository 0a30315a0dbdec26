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
	_ "github.com/jhoicas/almacen-api/docs"
	"github.com/jhoicas/almacen-api/internal/application/fulfillment"
	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/application/receiving"
	"github.com/jhoicas/almacen-api/internal/domain/fee"
	"github.com/jhoicas/almacen-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/almacen-api/internal/interfaces/http"
	"github.com/jhoicas/almacen-api/pkg/config"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	inventoryRepo := postgres.NewInventoryRecordRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	locationRepo := postgres.NewStorageLocationRepository(pool)
	noticeRepo := postgres.NewShipmentNoticeRepository(pool)
	orderRepo := postgres.NewSalesOrderRepository(pool)
	poRepo := postgres.NewPurchaseOrderRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	feeCalc, err := fee.New(cfg.Fees.Tiers)
	if err != nil {
		log.Fatal().Err(err).Msg("tabla de tarifas inválida")
	}

	ledgerUC := ledger.NewUseCase(txRunner)
	capacity := ledger.NewCapacityManager(inventoryRepo, locationRepo, itemRepo)
	receivingUC := receiving.NewUseCase(txRunner, feeCalc)
	fulfillmentUC := fulfillment.NewUseCase(txRunner, feeCalc)

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
		Title:    "Almacén API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		LedgerUC:      ledgerUC,
		Capacity:      capacity,
		ReceivingUC:   receivingUC,
		FulfillmentUC: fulfillmentUC,
		InventoryRepo: inventoryRepo,
		MovementRepo:  movementRepo,
		LocationRepo:  locationRepo,
		NoticeRepo:    noticeRepo,
		OrderRepo:     orderRepo,
		PORepo:        poRepo,
		JWTSecret:     cfg.JWT.Secret,
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
