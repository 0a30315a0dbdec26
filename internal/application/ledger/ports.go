package ledger

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el libro de inventario:
// o se aplican todos los efectos de la operación, o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		invRepo repository.InventoryRecordRepository,
		movRepo repository.StockMovementRepository,
		locRepo repository.StorageLocationRepository,
	) error) error
}
