package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// UseCase expone las operaciones del libro de inventario de forma transaccional:
// AddStock, ReduceStock, TransferStock y UpdateStatus. Toda mutación de cantidades
// pasa por aquí (o por los Apply* dentro de las transacciones de recepción/despacho)
// y queda registrada en el libro de movimientos con su referencia de origen.
type UseCase struct {
	txRunner TxRunner
}

// NewUseCase construye el caso de uso del libro.
func NewUseCase(txRunner TxRunner) *UseCase {
	return &UseCase{txRunner: txRunner}
}

// AddStock agrega stock a (ítem, ubicación): crea o fusiona el registro.
// Falla con ErrCapacityExceeded si la ubicación no admite la cantidad.
func (uc *UseCase) AddStock(ctx context.Context, in AddStockInput) error {
	txID := uuid.NewString()
	now := time.Now()
	return uc.txRunner.Run(ctx, func(
		invRepo repository.InventoryRecordRepository,
		movRepo repository.StockMovementRepository,
		locRepo repository.StorageLocationRepository,
	) error {
		return ApplyAddStock(ctx, invRepo, movRepo, locRepo, in, txID, now)
	})
}

// ReduceStock descuenta stock de (ítem, ubicación). Falla con
// ErrInsufficientStock si la cantidad supera la existente, sin efecto alguno.
func (uc *UseCase) ReduceStock(ctx context.Context, itemID, locationID string, quantity decimal.Decimal, sourceRef string) error {
	txID := uuid.NewString()
	now := time.Now()
	return uc.txRunner.Run(ctx, func(
		invRepo repository.InventoryRecordRepository,
		movRepo repository.StockMovementRepository,
		locRepo repository.StorageLocationRepository,
	) error {
		return ApplyReduceStock(ctx, invRepo, movRepo, itemID, locationID, quantity, sourceRef, txID, now)
	})
}

// TransferStock traslada stock entre ubicaciones: resta en origen y suma en
// destino dentro de la misma transacción. O se aplican ambos efectos o ninguno;
// la suma de cantidades origen+destino se conserva.
func (uc *UseCase) TransferStock(ctx context.Context, itemID, fromLocationID, toLocationID string, quantity decimal.Decimal, sourceRef string) error {
	if fromLocationID == toLocationID {
		return domain.ErrInvalidInput
	}
	txID := uuid.NewString()
	now := time.Now()
	return uc.txRunner.Run(ctx, func(
		invRepo repository.InventoryRecordRepository,
		movRepo repository.StockMovementRepository,
		locRepo repository.StorageLocationRepository,
	) error {
		// Bloquea origen y verifica existencias antes de tocar el destino
		origin, err := invRepo.GetForUpdate(ctx, itemID, fromLocationID)
		if err != nil {
			return err
		}
		if origin == nil || origin.Quantity.LessThan(quantity) {
			return domain.ErrInsufficientStock
		}
		unitCost := origin.UnitCost

		if err := ApplyReduceStock(ctx, invRepo, movRepo, itemID, fromLocationID, quantity, sourceRef, txID, now); err != nil {
			return err
		}
		return ApplyAddStock(ctx, invRepo, movRepo, locRepo, AddStockInput{
			ItemID:     itemID,
			LocationID: toLocationID,
			Quantity:   quantity,
			UnitCost:   unitCost,
			SourceRef:  sourceRef,
		}, txID, now)
	})
}

// UpdateStatus cambia el estado de ciclo de vida del registro (available,
// reserved, blocked) sin tocar cantidades.
func (uc *UseCase) UpdateStatus(ctx context.Context, itemID, locationID string, status entity.InventoryStatus, notes string) error {
	if !status.IsValid() {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, func(
		invRepo repository.InventoryRecordRepository,
		movRepo repository.StockMovementRepository,
		locRepo repository.StorageLocationRepository,
	) error {
		rec, err := invRepo.GetForUpdate(ctx, itemID, locationID)
		if err != nil {
			return err
		}
		if rec == nil {
			return domain.ErrNotFound
		}
		rec.Status = status
		rec.Notes = notes
		rec.UpdatedAt = time.Now()
		return invRepo.Upsert(ctx, rec)
	})
}
