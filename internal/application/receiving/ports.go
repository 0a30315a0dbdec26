package receiving

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios de recepción atados a esa tx. La creación de un aviso (que
// cierra la orden de compra) y cada acomodo (que toca línea y registro de
// inventario a la vez) son unidades de trabajo: o todo, o nada.
type TxRunner interface {
	RunReceiving(ctx context.Context, fn func(
		invRepo repository.InventoryRecordRepository,
		movRepo repository.StockMovementRepository,
		locRepo repository.StorageLocationRepository,
		noticeRepo repository.ShipmentNoticeRepository,
		poRepo repository.PurchaseOrderRepository,
	) error) error
}
