package receiving

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// Placement colocación propuesta: una línea del aviso hacia una ubicación.
type Placement struct {
	LineNo     int
	LocationID string
	Quantity   decimal.Decimal
}

// Putaway acomoda una cantidad de una línea del aviso en una ubicación.
// La suma al libro de inventario, la resta de la cantidad restante y el
// incremento de la ya acomodada ocurren en una sola transacción: o los tres
// efectos, o ninguno. La cantidad debe ser positiva y no exceder la restante
// de la línea (ErrInvalidInput); la capacidad de la ubicación se valida antes
// de colocar (ErrCapacityExceeded).
func (uc *UseCase) Putaway(ctx context.Context, noticeID string, p Placement) error {
	return uc.txRunner.RunReceiving(ctx, func(
		invRepo repository.InventoryRecordRepository,
		movRepo repository.StockMovementRepository,
		locRepo repository.StorageLocationRepository,
		noticeRepo repository.ShipmentNoticeRepository,
		poRepo repository.PurchaseOrderRepository,
	) error {
		notice, err := loadForPutaway(ctx, noticeRepo, noticeID)
		if err != nil {
			return err
		}
		return applyPlacement(ctx, invRepo, movRepo, locRepo, noticeRepo, notice, p, uuid.NewString(), time.Now())
	})
}

// BulkPutaway acomoda varias colocaciones en una sola transacción, todo o
// nada: si cualquier colocación falla la validación, ninguna se aplica.
// El error reporta la línea ofensora.
func (uc *UseCase) BulkPutaway(ctx context.Context, noticeID string, placements []Placement) error {
	if len(placements) == 0 {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.RunReceiving(ctx, func(
		invRepo repository.InventoryRecordRepository,
		movRepo repository.StockMovementRepository,
		locRepo repository.StorageLocationRepository,
		noticeRepo repository.ShipmentNoticeRepository,
		poRepo repository.PurchaseOrderRepository,
	) error {
		notice, err := loadForPutaway(ctx, noticeRepo, noticeID)
		if err != nil {
			return err
		}
		txID := uuid.NewString()
		now := time.Now()
		for _, p := range placements {
			if err := applyPlacement(ctx, invRepo, movRepo, locRepo, noticeRepo, notice, p, txID, now); err != nil {
				return fmt.Errorf("línea %d: %w", p.LineNo, err)
			}
		}
		return nil
	})
}

// CompletePutaway informa si todas las líneas del aviso tienen cantidad
// restante cero. No cambia el estado del aviso: esa decisión queda en el
// llamador.
func (uc *UseCase) CompletePutaway(ctx context.Context, noticeID string) (bool, error) {
	var complete bool
	err := uc.txRunner.RunReceiving(ctx, func(
		invRepo repository.InventoryRecordRepository,
		movRepo repository.StockMovementRepository,
		locRepo repository.StorageLocationRepository,
		noticeRepo repository.ShipmentNoticeRepository,
		poRepo repository.PurchaseOrderRepository,
	) error {
		notice, err := noticeRepo.GetByID(ctx, noticeID)
		if err != nil {
			return err
		}
		if notice == nil {
			return domain.ErrNotFound
		}
		complete = notice.FullyPutAway()
		return nil
	})
	return complete, err
}

// loadForPutaway carga el aviso bajo bloqueo y valida que admita acomodo:
// debe haber llegado (o estar procesado con restante pendiente) y no estar
// bloqueado.
func loadForPutaway(ctx context.Context, noticeRepo repository.ShipmentNoticeRepository, noticeID string) (*entity.ShipmentNotice, error) {
	notice, err := noticeRepo.GetByIDForUpdate(ctx, noticeID)
	if err != nil {
		return nil, err
	}
	if notice == nil {
		return nil, domain.ErrNotFound
	}
	if notice.Status != entity.ShipmentStatusArrived && notice.Status != entity.ShipmentStatusProcessed {
		return nil, domain.ErrInvalidTransition
	}
	if notice.PutawayBlocked {
		return nil, domain.ErrInvalidTransition
	}
	return notice, nil
}

// applyPlacement aplica una colocación sobre el aviso ya cargado y bloqueado.
// Mantiene el invariante de la línea: embarcada == restante + acomodada.
func applyPlacement(
	ctx context.Context,
	invRepo repository.InventoryRecordRepository,
	movRepo repository.StockMovementRepository,
	locRepo repository.StorageLocationRepository,
	noticeRepo repository.ShipmentNoticeRepository,
	notice *entity.ShipmentNotice,
	p Placement, txID string, now time.Time,
) error {
	line := notice.LineByNo(p.LineNo)
	if line == nil {
		return domain.ErrNotFound
	}
	if !p.Quantity.GreaterThan(decimal.Zero) || p.Quantity.GreaterThan(line.RemainingQuantity) {
		return domain.ErrInvalidInput
	}
	if err := ledger.ApplyAddStock(ctx, invRepo, movRepo, locRepo, ledger.AddStockInput{
		ItemID:     line.ItemID,
		LocationID: p.LocationID,
		Quantity:   p.Quantity,
		UnitCost:   line.ActualUnitPrice,
		SourceRef:  notice.ID,
	}, txID, now); err != nil {
		return err
	}
	line.RemainingQuantity = line.RemainingQuantity.Sub(p.Quantity)
	line.PutAwayQuantity = line.PutAwayQuantity.Add(p.Quantity)
	return noticeRepo.UpdateLine(ctx, notice.ID, line)
}
