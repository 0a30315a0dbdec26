package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// InventoryRecordRepository puerto para consultar/actualizar registros de
// inventario por (ítem, ubicación). Usado dentro de transacciones para
// garantizar consistencia; GetForUpdate bloquea la fila (SELECT FOR UPDATE)
// y serializa las mutaciones concurrentes sobre la misma clave.
type InventoryRecordRepository interface {
	// Get devuelve el registro o nil si no existe.
	Get(ctx context.Context, itemID, locationID string) (*entity.InventoryRecord, error)
	// GetForUpdate devuelve el registro bloqueando la fila, o nil si no existe.
	GetForUpdate(ctx context.Context, itemID, locationID string) (*entity.InventoryRecord, error)
	Upsert(ctx context.Context, record *entity.InventoryRecord) error
	// Delete elimina el registro (usado cuando la cantidad llega a cero y no
	// queda ninguna referencia activa).
	Delete(ctx context.Context, itemID, locationID string) error
	ListByItem(ctx context.Context, itemID string) ([]*entity.InventoryRecord, error)
	ListByLocation(ctx context.Context, locationID string) ([]*entity.InventoryRecord, error)
	List(ctx context.Context, limit, offset int) ([]*entity.InventoryRecord, error)
	// UtilizationByLocation suma las cantidades de todos los registros de la ubicación.
	UtilizationByLocation(ctx context.Context, locationID string) (decimal.Decimal, error)
}
