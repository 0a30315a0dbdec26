package fulfillment

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios de despacho atados a esa tx. Confirmar (reservar) y despachar
// (descontar) tocan pedido y registros de inventario como una sola unidad.
type TxRunner interface {
	RunFulfillment(ctx context.Context, fn func(
		invRepo repository.InventoryRecordRepository,
		movRepo repository.StockMovementRepository,
		locRepo repository.StorageLocationRepository,
		orderRepo repository.SalesOrderRepository,
	) error) error
}
