package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// SalesOrderRepository puerto para pedidos de venta, sus líneas y las
// reservas (asignaciones de stock) creadas al confirmar.
type SalesOrderRepository interface {
	Create(ctx context.Context, order *entity.SalesOrder) error
	// GetByID devuelve el pedido con sus líneas, o nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.SalesOrder, error)
	// GetByIDForUpdate igual que GetByID bloqueando la fila del pedido.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.SalesOrder, error)
	// Update persiste cabecera y líneas (reemplazo completo de líneas).
	Update(ctx context.Context, order *entity.SalesOrder) error
	List(ctx context.Context, limit, offset int) ([]*entity.SalesOrder, error)

	CreateAllocations(ctx context.Context, allocations []entity.StockAllocation) error
	ListAllocations(ctx context.Context, orderID string) ([]entity.StockAllocation, error)
	DeleteAllocations(ctx context.Context, orderID string) error
	// AllocatedQuantity suma las reservas activas sobre la clave (ítem, ubicación),
	// de cualquier pedido. Disponible = cantidad del registro − este valor.
	AllocatedQuantity(ctx context.Context, itemID, locationID string) (decimal.Decimal, error)
}
