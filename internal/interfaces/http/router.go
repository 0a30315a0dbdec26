package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/almacen-api/internal/application/fulfillment"
	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/application/receiving"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	LedgerUC      *ledger.UseCase
	Capacity      *ledger.CapacityManager
	ReceivingUC   *receiving.UseCase
	FulfillmentUC *fulfillment.UseCase

	InventoryRepo repository.InventoryRecordRepository
	MovementRepo  repository.StockMovementRepository
	LocationRepo  repository.StorageLocationRepository
	NoticeRepo    repository.ShipmentNoticeRepository
	OrderRepo     repository.SalesOrderRepository
	PORepo        repository.PurchaseOrderRepository

	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Salud (público)
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Inventario: libro, movimientos, traslados (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.LedgerUC, deps.InventoryRepo, deps.MovementRepo)
	invGroup.Get("/", inventoryHandler.List)
	invGroup.Get("/movements", inventoryHandler.ListMovements)
	invGroup.Post("/transfer", inventoryHandler.Transfer)
	invGroup.Put("/status", RequireRole("supervisor", "admin"), inventoryHandler.UpdateStatus)

	// Ubicaciones y sugerencia de guardado (protegido)
	locations := protected.Group("/locations")
	locationHandler := NewLocationHandler(deps.Capacity, deps.LocationRepo, deps.InventoryRepo)
	locations.Post("/", locationHandler.Create)
	locations.Get("/", locationHandler.List)
	locations.Get("/suggest", locationHandler.Suggest)
	locations.Get("/:id", locationHandler.GetByID)

	// Órdenes de compra: intake mínimo (protegido)
	purchaseOrders := protected.Group("/purchase-orders")
	poHandler := NewPurchaseOrderHandler(deps.PORepo)
	purchaseOrders.Post("/", poHandler.Create)
	purchaseOrders.Get("/", poHandler.List)
	purchaseOrders.Get("/:id", poHandler.GetByID)
	purchaseOrders.Post("/:id/send", poHandler.Send)
	purchaseOrders.Post("/:id/cancel", poHandler.Cancel)

	// Recepción: avisos de embarque y guardado (protegido)
	notices := protected.Group("/shipment-notices")
	receivingHandler := NewReceivingHandler(deps.ReceivingUC, deps.NoticeRepo)
	notices.Post("/", receivingHandler.Create)
	notices.Get("/", receivingHandler.List)
	notices.Get("/:id", receivingHandler.GetByID)
	notices.Post("/:id/arrive", receivingHandler.MarkArrived)
	notices.Post("/:id/process", receivingHandler.MarkProcessed)
	notices.Post("/:id/cancel", receivingHandler.Cancel)
	notices.Put("/:id/lines", receivingHandler.UpdateLines)
	notices.Post("/:id/putaway", receivingHandler.Putaway)
	notices.Post("/:id/bulk-putaway", receivingHandler.BulkPutaway)
	notices.Get("/:id/putaway-complete", receivingHandler.PutawayComplete)
	notices.Post("/:id/block-putaway", RequireRole("supervisor", "admin"), receivingHandler.BlockPutaway)
	notices.Delete("/:id/block-putaway", RequireRole("supervisor", "admin"), receivingHandler.UnblockPutaway)

	// Despacho: pedidos de venta (protegido)
	salesOrders := protected.Group("/sales-orders")
	fulfillmentHandler := NewFulfillmentHandler(deps.FulfillmentUC, deps.OrderRepo)
	salesOrders.Post("/", fulfillmentHandler.Create)
	salesOrders.Get("/", fulfillmentHandler.List)
	salesOrders.Get("/:id", fulfillmentHandler.GetByID)
	salesOrders.Put("/:id/lines", fulfillmentHandler.UpdateLines)
	salesOrders.Post("/:id/confirm", fulfillmentHandler.Confirm)
	salesOrders.Post("/:id/ship", fulfillmentHandler.Ship)
	salesOrders.Post("/:id/complete", fulfillmentHandler.Complete)
	salesOrders.Post("/:id/cancel", fulfillmentHandler.Cancel)
}
