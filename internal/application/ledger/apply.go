package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/inventory"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// AddStockInput entrada para una adición de stock.
type AddStockInput struct {
	ItemID     string
	LocationID string
	Quantity   decimal.Decimal
	UnitCost   decimal.Decimal
	SourceRef  string
}

// ApplyAddStock crea o fusiona el registro (ítem, ubicación) bajo bloqueo de fila,
// validando capacidad contra la ubicación destino, y escribe el asiento de entrada.
// Pensado para ejecutarse dentro de una transacción (los repos deben estar atados
// a la tx); los casos de uso de recepción y despacho lo reutilizan en las suyas.
func ApplyAddStock(
	ctx context.Context,
	invRepo repository.InventoryRecordRepository,
	movRepo repository.StockMovementRepository,
	locRepo repository.StorageLocationRepository,
	in AddStockInput, txID string, now time.Time,
) error {
	if in.ItemID == "" || in.LocationID == "" || !in.Quantity.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	if in.UnitCost.IsNegative() {
		return domain.ErrInvalidInput
	}

	loc, err := locRepo.GetByID(ctx, in.LocationID)
	if err != nil {
		return err
	}
	if loc == nil {
		return domain.ErrNotFound
	}
	ok, err := canAccept(ctx, invRepo, loc, in.Quantity)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrCapacityExceeded
	}

	rec, err := invRepo.GetForUpdate(ctx, in.ItemID, in.LocationID)
	if err != nil {
		return err
	}
	if rec == nil {
		rec = &entity.InventoryRecord{
			ItemID:     in.ItemID,
			LocationID: in.LocationID,
			Quantity:   in.Quantity,
			Status:     entity.InventoryStatusAvailable,
			UnitCost:   in.UnitCost,
			SourceRef:  in.SourceRef,
			UpdatedAt:  now,
		}
	} else {
		rec.UnitCost = inventory.AverageCost(rec.Quantity, rec.UnitCost, in.Quantity, in.UnitCost)
		rec.Quantity = rec.Quantity.Add(in.Quantity)
		rec.SourceRef = in.SourceRef
		rec.UpdatedAt = now
	}
	if err := invRepo.Upsert(ctx, rec); err != nil {
		return err
	}

	return movRepo.Create(ctx, &entity.StockMovement{
		ID:            uuid.NewString(),
		TransactionID: txID,
		ItemID:        in.ItemID,
		LocationID:    in.LocationID,
		Type:          entity.MovementTypeIN,
		Quantity:      in.Quantity,
		UnitCost:      in.UnitCost,
		SourceRef:     in.SourceRef,
		CreatedAt:     now,
	})
}

// ApplyReduceStock decrementa la cantidad del registro bajo bloqueo de fila.
// Falla con ErrInsufficientStock si la cantidad pedida supera la existente;
// en ese caso no escribe nada. La cantidad nunca queda negativa.
func ApplyReduceStock(
	ctx context.Context,
	invRepo repository.InventoryRecordRepository,
	movRepo repository.StockMovementRepository,
	itemID, locationID string, quantity decimal.Decimal,
	sourceRef, txID string, now time.Time,
) error {
	if itemID == "" || locationID == "" || !quantity.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}

	rec, err := invRepo.GetForUpdate(ctx, itemID, locationID)
	if err != nil {
		return err
	}
	if rec == nil || rec.Quantity.LessThan(quantity) {
		return domain.ErrInsufficientStock
	}
	rec.Quantity = rec.Quantity.Sub(quantity)
	rec.UpdatedAt = now
	if err := invRepo.Upsert(ctx, rec); err != nil {
		return err
	}

	return movRepo.Create(ctx, &entity.StockMovement{
		ID:            uuid.NewString(),
		TransactionID: txID,
		ItemID:        itemID,
		LocationID:    locationID,
		Type:          entity.MovementTypeOUT,
		Quantity:      quantity.Neg(),
		UnitCost:      rec.UnitCost,
		SourceRef:     sourceRef,
		CreatedAt:     now,
	})
}

// canAccept verifica si la ubicación admite la cantidad adicional:
// utilización actual + adicional ≤ capacidad.
func canAccept(
	ctx context.Context,
	invRepo repository.InventoryRecordRepository,
	loc *entity.StorageLocation,
	additional decimal.Decimal,
) (bool, error) {
	util, err := invRepo.UtilizationByLocation(ctx, loc.ID)
	if err != nil {
		return false, err
	}
	return util.Add(additional).LessThanOrEqual(loc.Capacity), nil
}
